package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"scopegate/internal/state"
)

const defaultRetryBackoff = 500 * time.Millisecond

// Classifier converts a system instruction plus conversation history
// into a validated classification. One outbound request per attempt;
// malformed or invalid output consumes the retry budget. No state is
// retained between invocations.
type Classifier struct {
	factory     ClientFactory
	maxAttempts int
	backoff     time.Duration
	log         *zap.Logger
}

// NewClassifier creates a classifier. maxAttempts is the total request
// budget (the configured retry maximum); values below 1 are clamped to
// 1. A nil logger is replaced with a no-op logger.
func NewClassifier(factory ClientFactory, maxAttempts int, log *zap.Logger) *Classifier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{
		factory:     factory,
		maxAttempts: maxAttempts,
		backoff:     defaultRetryBackoff,
		log:         log,
	}
}

// Classify issues structured-output requests until one yields a valid
// classification or the attempt budget is exhausted. Exhaustion by
// timeout returns *TimeoutError, otherwise *ValidationError; neither is
// ever silently mapped to a status.
func (c *Classifier) Classify(ctx context.Context, instruction string, history []state.Message) (*state.Classification, error) {
	client := c.factory()
	userPrompt := renderTranscript(history)

	var lastErr error
	var lastTimeout bool
	attempts := 0

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, c.backoff<<uint(attempt-2)); err != nil {
				lastErr = err
				lastTimeout = errors.Is(err, context.DeadlineExceeded)
				break
			}
		}
		attempts++

		raw, err := client.CompleteWithSchema(ctx, instruction, userPrompt, ClassificationSchema)
		if err != nil {
			lastErr = err
			lastTimeout = isTimeout(err)
			c.log.Warn("oracle request failed",
				zap.Int("attempt", attempt),
				zap.Bool("timeout", lastTimeout),
				zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		cls, err := parseClassification(raw)
		if err != nil {
			lastErr = err
			lastTimeout = false
			c.log.Warn("oracle output unparseable", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if err := cls.Validate(); err != nil {
			lastErr = err
			lastTimeout = false
			c.log.Warn("oracle output failed validation", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		c.log.Debug("classification accepted",
			zap.String("status", string(cls.Status)),
			zap.Int("attempt", attempt))
		return cls, nil
	}

	if lastTimeout {
		return nil, &TimeoutError{Attempts: attempts, LastErr: lastErr}
	}
	return nil, &ValidationError{Attempts: attempts, LastErr: lastErr}
}

// parseClassification decodes the raw response. If the body is not bare
// JSON it falls back to scanning for an embedded object, since some
// providers wrap structured output in prose or code fences.
func parseClassification(raw string) (*state.Classification, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty response")
	}

	var cls state.Classification
	if err := json.Unmarshal([]byte(trimmed), &cls); err == nil {
		return &cls, nil
	}

	for _, candidate := range findJSONCandidates(trimmed) {
		var fallback state.Classification
		if err := json.Unmarshal([]byte(candidate), &fallback); err == nil && fallback.Status != "" {
			return &fallback, nil
		}
	}
	return nil, fmt.Errorf("no JSON object found in response (%d bytes)", len(trimmed))
}

// renderTranscript flattens the ordered history into a role-tagged
// transcript for the single user slot of the structured request.
func renderTranscript(history []state.Message) string {
	var b strings.Builder
	for _, m := range history {
		switch m.Role {
		case state.RoleAgent:
			b.WriteString("Assistant: ")
		case state.RoleSystem:
			b.WriteString("System: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
