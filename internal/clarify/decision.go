// Package clarify implements the clarification orchestration engine:
// a two-node graph that classifies each user turn and routes it to
// another clarification round, a terminal rejection, or the
// brief-writing stage.
package clarify

// NodeName identifies a node in the graph.
type NodeName string

const (
	NodeClarify    NodeName = "clarify_with_user"
	NodeWriteBrief NodeName = "write_research_brief"
)

// DecisionKind is the tag of a routing decision.
type DecisionKind int

const (
	// DecisionGoto advances the traversal to the named node.
	DecisionGoto DecisionKind = iota
	// DecisionAwaitInput halts the traversal; the conversation resumes
	// on the next user turn.
	DecisionAwaitInput
	// DecisionTerminal halts the traversal; the conversation is done.
	DecisionTerminal
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionGoto:
		return "goto"
	case DecisionAwaitInput:
		return "await_input"
	case DecisionTerminal:
		return "terminal"
	}
	return "unknown"
}

// Decision is the tagged routing value a node returns. Next is set only
// for DecisionGoto.
type Decision struct {
	Kind DecisionKind
	Next NodeName
}

// Goto routes to the named node.
func Goto(next NodeName) Decision { return Decision{Kind: DecisionGoto, Next: next} }

// HaltAwaitingInput stops the traversal pending new user input.
func HaltAwaitingInput() Decision { return Decision{Kind: DecisionAwaitInput} }

// HaltTerminal stops the traversal for good.
func HaltTerminal() Decision { return Decision{Kind: DecisionTerminal} }
