package clarify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"scopegate/internal/config"
	"scopegate/internal/state"
)

// Graph runs one node-to-node traversal per Advance call, starting at
// the entry node and following Goto decisions until a node halts. The
// clarification graph is a two-node DAG; a node revisited within one
// traversal means the routing contract is broken, so the traversal
// fails instead of looping.
type Graph struct {
	entry NodeName
	nodes map[NodeName]Node
	log   *zap.Logger
}

// Node is one executable stage of the graph.
type Node interface {
	Name() NodeName
	Run(ctx context.Context, conv *state.Conversation) (Decision, error)
}

// Outcome describes where a traversal stopped.
type Outcome struct {
	Halt    DecisionKind
	Visited []NodeName
}

// NewGraph builds a graph from the given nodes. The entry node must be
// among them.
func NewGraph(entry NodeName, log *zap.Logger, nodes ...Node) (*Graph, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := make(map[NodeName]Node, len(nodes))
	for _, n := range nodes {
		if _, dup := m[n.Name()]; dup {
			return nil, fmt.Errorf("duplicate node %q", string(n.Name()))
		}
		m[n.Name()] = n
	}
	if _, ok := m[entry]; !ok {
		return nil, fmt.Errorf("entry node %q not registered", string(entry))
	}
	return &Graph{entry: entry, nodes: m, log: log}, nil
}

// NewEngine wires the standard two-node clarification graph: the
// clarify node as entry, the brief-writing stub as its only successor.
func NewEngine(cfg *config.Config, classifier Classifier, log *zap.Logger) (*Graph, error) {
	return NewGraph(NodeClarify, log,
		NewClarifyNode(cfg, classifier, log),
		NewWriteBriefNode(),
	)
}

// Advance runs one traversal over conv. Synchronous from the caller's
// perspective; the only suspension point is the oracle call inside the
// clarify node, bounded by ctx.
func (g *Graph) Advance(ctx context.Context, conv *state.Conversation) (Outcome, error) {
	visited := make(map[NodeName]bool, len(g.nodes))
	var order []NodeName

	current := g.entry
	for {
		node, ok := g.nodes[current]
		if !ok {
			return Outcome{}, fmt.Errorf("routed to unknown node %q", string(current))
		}
		if visited[current] {
			return Outcome{}, fmt.Errorf("node %q re-entered within one traversal", string(current))
		}
		visited[current] = true
		order = append(order, current)

		decision, err := node.Run(ctx, conv)
		if err != nil {
			return Outcome{}, fmt.Errorf("node %q: %w", string(current), err)
		}

		g.log.Debug("node decision",
			zap.String("node", string(current)),
			zap.String("decision", decision.Kind.String()))

		switch decision.Kind {
		case DecisionGoto:
			current = decision.Next
		case DecisionAwaitInput, DecisionTerminal:
			return Outcome{Halt: decision.Kind, Visited: order}, nil
		default:
			return Outcome{}, fmt.Errorf("node %q returned unknown decision kind %d", string(current), decision.Kind)
		}
	}
}
