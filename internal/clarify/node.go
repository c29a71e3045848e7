package clarify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"scopegate/internal/config"
	"scopegate/internal/prompt"
	"scopegate/internal/state"
)

// DefaultRefusal is appended when the oracle rejects a request without
// supplying its own refusal text.
const DefaultRefusal = "I cannot fulfill this request."

// loopCapRefusal is used when a conversation exhausts its clarification
// rounds without ever becoming researchable.
const loopCapRefusal = "I was unable to narrow down the request after several rounds of clarification. Please start a new conversation with the company name, its domain, and what the report should focus on."

// Classifier is the oracle surface the clarify node consults.
type Classifier interface {
	Classify(ctx context.Context, instruction string, history []state.Message) (*state.Classification, error)
}

// ClarifyNode is the sole decision point of a turn. It reads
// configuration and state, consults the oracle, and emits a routing
// decision plus a state update. Oracle failures propagate untouched and
// leave the conversation unmodified.
type ClarifyNode struct {
	cfg        *config.Config
	classifier Classifier
	now        func() time.Time
	log        *zap.Logger
}

// NewClarifyNode creates the clarification node. A nil logger is
// replaced with a no-op logger.
func NewClarifyNode(cfg *config.Config, classifier Classifier, log *zap.Logger) *ClarifyNode {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClarifyNode{
		cfg:        cfg,
		classifier: classifier,
		now:        time.Now,
		log:        log,
	}
}

func (n *ClarifyNode) Name() NodeName { return NodeClarify }

// Run classifies the conversation and applies exactly one outcome
// field-group to it.
func (n *ClarifyNode) Run(ctx context.Context, conv *state.Conversation) (Decision, error) {
	// Deterministic bypass: not a classification outcome, the oracle is
	// never consulted.
	if !n.cfg.AllowClarification {
		n.log.Debug("clarification disabled, bypassing oracle")
		return Goto(NodeWriteBrief), nil
	}

	instruction := prompt.ClarifyInstructions(n.now())
	cls, err := n.classifier.Classify(ctx, instruction, conv.Messages)
	if err != nil {
		return Decision{}, fmt.Errorf("clarification analysis failed: %w", err)
	}

	switch cls.Status {
	case state.StatusClarificationNeeded:
		if conv.ClarificationLoopCount >= n.cfg.MaxClarificationRounds {
			n.log.Info("clarification round limit reached, rejecting",
				zap.Int("rounds", conv.ClarificationLoopCount))
			conv.AppendAgent(loopCapRefusal)
			conv.SetRejected(loopCapRefusal)
			return HaltTerminal(), nil
		}
		conv.AppendAgent(clarificationText(cls))
		conv.SetClarificationNeeded()
		n.log.Info("asking for clarification",
			zap.Int("round", conv.ClarificationLoopCount),
			zap.Int("questions", len(cls.Questions)))
		return HaltAwaitingInput(), nil

	case state.StatusRejected:
		msg := cls.Message
		if strings.TrimSpace(msg) == "" {
			msg = DefaultRefusal
		}
		conv.AppendAgent(msg)
		conv.SetRejected(msg)
		n.log.Info("request rejected")
		return HaltTerminal(), nil

	case state.StatusReadyForResearch:
		conv.SetReadyForResearch(cls.BuyerEntity, cls.BuyerDomain, cls.SellerEntity, cls.ResearchFocus)
		conv.AppendAgent(fmt.Sprintf("Understood. Initiating research on %s...", cls.BuyerEntity))
		n.log.Info("scope confirmed",
			zap.String("buyer_entity", cls.BuyerEntity),
			zap.String("buyer_domain", cls.BuyerDomain))
		return Goto(NodeWriteBrief), nil
	}

	// Unreachable with a validated classification; treat as a contract
	// violation rather than inventing a status.
	return Decision{}, fmt.Errorf("classifier returned unknown status %q", string(cls.Status))
}

// clarificationText forms the agent message for a clarification round:
// the reason, then the questions newline-joined. The questions block is
// omitted when the list is empty.
func clarificationText(cls *state.Classification) string {
	if len(cls.Questions) == 0 {
		return cls.Reason
	}
	return cls.Reason + "\n\n" + strings.Join(cls.Questions, "\n")
}
