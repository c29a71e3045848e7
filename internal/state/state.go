// Package state holds the conversation state threaded through one
// processing turn of the clarification gate, plus the structured
// classification the oracle returns. Pure data: no I/O, no goroutines.
package state

// Role tags a message with its author.
type Role string

const (
	RoleUser   Role = "user"
	RoleAgent  Role = "agent"
	RoleSystem Role = "system"
)

// Status is the outcome of the clarification analysis for one turn.
// The zero value means the conversation has not been classified yet.
type Status string

const (
	StatusClarificationNeeded Status = "CLARIFICATION_NEEDED"
	StatusReadyForResearch    Status = "READY_FOR_RESEARCH"
	StatusRejected            Status = "REJECTED"
)

// Valid reports whether s is one of the three known outcomes.
func (s Status) Valid() bool {
	switch s {
	case StatusClarificationNeeded, StatusReadyForResearch, StatusRejected:
		return true
	}
	return false
}

// Message is one entry in the conversation transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the mutable record for a single conversation.
// Messages is append-only: entries are added to the tail and never
// mutated or reordered. Order is chronological turn order.
//
// Ownership: the transport owns the value between turns, the graph
// owns it for the duration of one Advance call. Only the clarify node
// writes Status and the research fields; only the brief node writes
// ResearchBrief.
type Conversation struct {
	Messages               []Message
	ClarificationLoopCount int
	Status                 Status

	// Populated together only when Status == StatusReadyForResearch.
	BuyerEntity   string
	BuyerDomain   string
	SellerEntity  string
	ResearchFocus string

	// Populated only when Status == StatusRejected.
	RejectionMessage string

	// Populated by the brief-writing stub.
	ResearchBrief string
}

// Append adds one message to the tail of the transcript.
func (c *Conversation) Append(role Role, content string) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
}

// AppendUser appends a user-authored message.
func (c *Conversation) AppendUser(content string) { c.Append(RoleUser, content) }

// AppendAgent appends an agent-authored message.
func (c *Conversation) AppendAgent(content string) { c.Append(RoleAgent, content) }

// LastAgentMessage returns the most recent agent message, if any.
func (c *Conversation) LastAgentMessage() (string, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAgent {
			return c.Messages[i].Content, true
		}
	}
	return "", false
}

// Clone returns a deep copy. The transport advances a clone and swaps
// it in only on success, so a failed turn leaves the stored
// conversation untouched.
func (c *Conversation) Clone() *Conversation {
	cp := *c
	cp.Messages = make([]Message, len(c.Messages))
	copy(cp.Messages, c.Messages)
	return &cp
}

// SetReadyForResearch applies the extracted research scope and clears
// the fields belonging to the other two outcomes.
func (c *Conversation) SetReadyForResearch(buyerEntity, buyerDomain, sellerEntity, researchFocus string) {
	c.Status = StatusReadyForResearch
	c.BuyerEntity = buyerEntity
	c.BuyerDomain = buyerDomain
	c.SellerEntity = sellerEntity
	c.ResearchFocus = researchFocus
	c.RejectionMessage = ""
}

// SetClarificationNeeded marks the conversation as awaiting user input
// and clears the fields belonging to the other two outcomes.
func (c *Conversation) SetClarificationNeeded() {
	c.Status = StatusClarificationNeeded
	c.ClarificationLoopCount++
	c.clearResearchFields()
	c.RejectionMessage = ""
}

// SetRejected marks the conversation as terminally refused.
func (c *Conversation) SetRejected(message string) {
	c.Status = StatusRejected
	c.RejectionMessage = message
	c.clearResearchFields()
}

func (c *Conversation) clearResearchFields() {
	c.BuyerEntity = ""
	c.BuyerDomain = ""
	c.SellerEntity = ""
	c.ResearchFocus = ""
}
