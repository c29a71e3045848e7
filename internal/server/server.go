// Package server is the transport shim: it maps inbound chat turns to
// conversation state, drives the clarification graph, and maps routing
// results back to a response payload. It is deliberately thin; all
// decision logic lives in the clarify package.
package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scopegate/internal/clarify"
	"scopegate/internal/config"
	"scopegate/internal/state"
)

// ChatRequest is one inbound turn. History, when supplied, replaces the
// stored transcript before the new message is appended (callers that
// keep their own history stay authoritative over it).
type ChatRequest struct {
	ConversationID string        `json:"conversation_id"`
	Message        string        `json:"message" binding:"required"`
	History        []ChatMessage `json:"history"`
}

// ChatMessage mirrors one transcript entry on the wire.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the payload for one completed turn.
type ChatResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
	Status         string `json:"status"`
	BuyerEntity    string `json:"buyer_entity,omitempty"`
}

// Server exposes the clarification gate over HTTP.
type Server struct {
	cfg    *config.Config
	graph  *clarify.Graph
	store  *ConvStore
	log    *zap.Logger
	router *gin.Engine
}

// New builds the server and its routes. A nil logger is replaced with a
// no-op logger.
func New(cfg *config.Config, graph *clarify.Graph, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		graph:  graph,
		store:  NewConvStore(),
		log:    log,
		router: router,
	}

	router.POST("/chat", s.handleChat)
	router.GET("/healthz", s.handleHealthz)
	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
		router.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(cfg.StaticDir, "index.html"))
		})
	}
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleChat processes one turn: append the user message, advance the
// graph, report the last agent message plus terminal fields. The stored
// conversation is swapped only on success, so a failed turn leaves it
// exactly as it was.
func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	id := req.ConversationID
	if id == "" {
		id = uuid.NewString()
	}

	entry := s.store.acquire(id)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.conv.Status == state.StatusRejected {
		c.JSON(http.StatusConflict, gin.H{"detail": "conversation has been closed"})
		return
	}

	working := entry.conv.Clone()
	if len(req.History) > 0 {
		working.Messages = working.Messages[:0]
		for _, m := range req.History {
			working.Append(wireRole(m.Role), m.Content)
		}
	}
	working.AppendUser(req.Message)

	outcome, err := s.graph.Advance(c.Request.Context(), working)
	if err != nil {
		s.log.Error("turn failed", zap.String("conversation_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	entry.conv = working

	response, _ := working.LastAgentMessage()
	s.log.Info("turn completed",
		zap.String("conversation_id", id),
		zap.String("status", string(working.Status)),
		zap.String("halt", outcome.Halt.String()))

	c.JSON(http.StatusOK, ChatResponse{
		ConversationID: id,
		Response:       response,
		Status:         string(working.Status),
		BuyerEntity:    working.BuyerEntity,
	})
}

func wireRole(role string) state.Role {
	switch role {
	case "assistant", "agent":
		return state.RoleAgent
	case "system":
		return state.RoleSystem
	default:
		return state.RoleUser
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.router,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", s.cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
