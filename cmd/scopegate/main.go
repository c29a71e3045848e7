// scopegate gates a company-research agent behind a clarification
// analyst: it classifies each chat turn as needing clarification,
// rejected, or ready for research, and only researchable conversations
// advance to brief writing.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"scopegate/internal/clarify"
	"scopegate/internal/config"
	"scopegate/internal/oracle"
	"scopegate/internal/server"
	"scopegate/internal/state"
)

var (
	logger     *zap.Logger
	debugMode  bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "scopegate",
	Short: "Clarification gate for the account deep-research agent",
	Long: `scopegate decides whether a company-research request is safe,
unambiguous, and sufficiently specified to proceed, or whether it must
loop back to the user for clarification, or be rejected outright.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if debugMode {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP chat endpoint",
	RunE:  runServe,
}

var askCmd = &cobra.Command{
	Use:   "ask [request...]",
	Short: "Classify a research request from the terminal",
	Long: `Runs a local conversation against the clarification gate. While the
gate keeps asking for clarification, answers are read from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "scopegate.yaml", "path to config file")
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	serveCmd.Flags().String("static", "", "static assets directory (overrides config)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd != nil {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}
		if static, _ := cmd.Flags().GetString("static"); static != "" {
			cfg.StaticDir = static
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config) (*clarify.Graph, error) {
	classifier := oracle.NewGeminiClassifier(cfg, logger)
	return clarify.NewEngine(cfg, classifier, logger)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("no API key configured; set GEMINI_API_KEY")
	}

	graph, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, graph, logger)
	return srv.Run(ctx)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("no API key configured; set GEMINI_API_KEY")
	}

	graph, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conv := &state.Conversation{}
	conv.AppendUser(strings.Join(args, " "))
	reader := bufio.NewReader(os.Stdin)

	for {
		outcome, err := graph.Advance(ctx, conv)
		if err != nil {
			return err
		}

		if reply, ok := conv.LastAgentMessage(); ok {
			fmt.Println(reply)
		}

		switch outcome.Halt {
		case clarify.DecisionTerminal:
			if conv.Status == state.StatusReadyForResearch {
				fmt.Printf("\nScope: buyer=%s (%s)", conv.BuyerEntity, conv.BuyerDomain)
				if conv.SellerEntity != "" {
					fmt.Printf(" seller=%s", conv.SellerEntity)
				}
				if conv.ResearchFocus != "" {
					fmt.Printf(" focus=%s", conv.ResearchFocus)
				}
				fmt.Printf("\nBrief: %s\n", conv.ResearchBrief)
			}
			return nil
		case clarify.DecisionAwaitInput:
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				return nil
			}
			conv.AppendUser(line)
		}
	}
}
