package oracle

import (
	"go.uber.org/zap"

	"scopegate/internal/config"
)

// NewGeminiClassifier wires a classifier whose factory builds a fresh
// request-scoped Gemini client from configuration on every invocation.
func NewGeminiClassifier(cfg *config.Config, log *zap.Logger) *Classifier {
	factory := func() LLMClient {
		return NewGeminiClient(GeminiConfig{
			APIKey:          cfg.GeminiAPIKey,
			BaseURL:         cfg.GeminiBaseURL,
			Model:           cfg.ResearchModel,
			MaxOutputTokens: cfg.ResearchModelMaxTokens,
			Timeout:         cfg.GetOracleTimeout(),
		}, log)
	}
	return NewClassifier(factory, cfg.MaxStructuredOutputRetries, log)
}
