// Package config holds the configuration surface for the clarification
// gate. Precedence is fixed and documented: environment variables
// override file/caller-supplied values, which override defaults.
// Configuration is resolved once at process entry and never re-derived
// mid-turn.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface. MaxConcurrentResearchUnits
// and MaxResearcherIterations are forward-looking: the downstream
// research engine reads them, the gate itself does not.
type Config struct {
	ResearchModel              string `yaml:"research_model"`
	ResearchModelMaxTokens     int    `yaml:"research_model_max_tokens"`
	AllowClarification         bool   `yaml:"allow_clarification"`
	MaxStructuredOutputRetries int    `yaml:"max_structured_output_retries"`
	MaxConcurrentResearchUnits int    `yaml:"max_concurrent_research_units"`
	MaxResearcherIterations    int    `yaml:"max_researcher_iterations"`

	// MaxClarificationRounds bounds the clarification loop. Once a
	// conversation has been asked to clarify this many times, the next
	// CLARIFICATION_NEEDED verdict is converted to a rejection so a
	// conversation cannot loop indefinitely.
	MaxClarificationRounds int `yaml:"max_clarification_rounds"`

	// OracleTimeout is the deadline for one oracle request attempt.
	OracleTimeout string `yaml:"oracle_timeout"`

	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiBaseURL string `yaml:"gemini_base_url"`

	ListenAddr string `yaml:"listen_addr"`
	StaticDir  string `yaml:"static_dir"`
}

// DefaultConfig returns the defaults every other layer overrides.
func DefaultConfig() *Config {
	return &Config{
		ResearchModel:              "gemini-2.5-pro",
		ResearchModelMaxTokens:     4096,
		AllowClarification:         true,
		MaxStructuredOutputRetries: 3,
		MaxConcurrentResearchUnits: 3,
		MaxResearcherIterations:    3,
		MaxClarificationRounds:     5,
		OracleTimeout:              "60s",
		GeminiBaseURL:              "https://generativelanguage.googleapis.com/v1beta",
		ListenAddr:                 ":8000",
	}
}

// Load reads configuration from a YAML file, then applies environment
// overrides. A missing file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Environment
// always wins over file and caller values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RESEARCH_MODEL"); v != "" {
		c.ResearchModel = v
	}
	if n, ok := envInt("RESEARCH_MODEL_MAX_TOKENS"); ok {
		c.ResearchModelMaxTokens = n
	}
	if b, ok := envBool("ALLOW_CLARIFICATION"); ok {
		c.AllowClarification = b
	}
	if n, ok := envInt("MAX_STRUCTURED_OUTPUT_RETRIES"); ok {
		c.MaxStructuredOutputRetries = n
	}
	if n, ok := envInt("MAX_CONCURRENT_RESEARCH_UNITS"); ok {
		c.MaxConcurrentResearchUnits = n
	}
	if n, ok := envInt("MAX_RESEARCHER_ITERATIONS"); ok {
		c.MaxResearcherIterations = n
	}
	if n, ok := envInt("MAX_CLARIFICATION_ROUNDS"); ok {
		c.MaxClarificationRounds = n
	}
	if v := os.Getenv("ORACLE_TIMEOUT"); v != "" {
		c.OracleTimeout = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		c.GeminiBaseURL = v
	}
	if v := os.Getenv("SCOPEGATE_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("SCOPEGATE_STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// GetOracleTimeout returns the oracle deadline as a duration.
func (c *Config) GetOracleTimeout() time.Duration {
	d, err := time.ParseDuration(c.OracleTimeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// Validate checks configuration sanity.
func (c *Config) Validate() error {
	if c.ResearchModel == "" {
		return fmt.Errorf("research_model must not be empty")
	}
	if c.ResearchModelMaxTokens <= 0 {
		return fmt.Errorf("research_model_max_tokens must be positive, got %d", c.ResearchModelMaxTokens)
	}
	if c.MaxStructuredOutputRetries <= 0 {
		return fmt.Errorf("max_structured_output_retries must be positive, got %d", c.MaxStructuredOutputRetries)
	}
	if c.MaxClarificationRounds <= 0 {
		return fmt.Errorf("max_clarification_rounds must be positive, got %d", c.MaxClarificationRounds)
	}
	if _, err := time.ParseDuration(c.OracleTimeout); err != nil {
		return fmt.Errorf("invalid oracle_timeout %q: %w", c.OracleTimeout, err)
	}
	return nil
}
