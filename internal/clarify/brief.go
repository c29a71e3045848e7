package clarify

import (
	"context"
	"fmt"

	"scopegate/internal/state"
)

// BriefPlaceholder is the fixed artifact the stub emits. The full
// research engine replaces this node with a real brief writer fed by
// the extracted entities.
const BriefPlaceholder = "Research Brief Placeholder"

// WriteBriefNode is the terminal stub of the graph. It requires a
// conversation marked ready for research, or an unclassified one when
// the clarification bypass routed here directly; being invoked on a
// rejected or awaiting conversation is a routing bug, not a user-facing
// failure.
type WriteBriefNode struct{}

// NewWriteBriefNode creates the stub node.
func NewWriteBriefNode() *WriteBriefNode { return &WriteBriefNode{} }

func (n *WriteBriefNode) Name() NodeName { return NodeWriteBrief }

func (n *WriteBriefNode) Run(_ context.Context, conv *state.Conversation) (Decision, error) {
	if conv.Status == state.StatusRejected || conv.Status == state.StatusClarificationNeeded {
		return Decision{}, fmt.Errorf("write_research_brief invoked with status %q", string(conv.Status))
	}
	conv.ResearchBrief = BriefPlaceholder
	return HaltTerminal(), nil
}
