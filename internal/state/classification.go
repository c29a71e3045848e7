package state

import (
	"fmt"
	"strings"
)

// Classification is the structured answer the oracle produces for one
// invocation. Field names match the JSON contract in the analyst
// prompt. A Classification is created fresh per call, validated,
// consumed by the clarify node, then discarded.
type Classification struct {
	Status Status `json:"status"`

	// Scenario A: clarification needed.
	Reason    string   `json:"reason,omitempty"`
	Questions []string `json:"questions,omitempty"`

	// Scenario B: ready for research.
	BuyerEntity   string `json:"buyer_entity,omitempty"`
	BuyerDomain   string `json:"buyer_domain,omitempty"`
	SellerEntity  string `json:"seller_entity,omitempty"`
	ResearchFocus string `json:"research_focus,omitempty"`

	// Scenario C: rejected.
	Message string `json:"message,omitempty"`
}

// Validate checks that the fields required for the declared status are
// present and non-blank. A failed validation means the oracle output
// is unusable and the request must be retried.
func (c *Classification) Validate() error {
	switch c.Status {
	case StatusClarificationNeeded:
		if strings.TrimSpace(c.Reason) == "" {
			return fmt.Errorf("status %s requires a reason", c.Status)
		}
	case StatusReadyForResearch:
		if strings.TrimSpace(c.BuyerEntity) == "" {
			return fmt.Errorf("status %s requires buyer_entity", c.Status)
		}
		if strings.TrimSpace(c.BuyerDomain) == "" {
			return fmt.Errorf("status %s requires buyer_domain", c.Status)
		}
	case StatusRejected:
		// A blank message is tolerated; the clarify node substitutes a
		// default refusal text.
	default:
		return fmt.Errorf("unknown status %q", string(c.Status))
	}
	return nil
}
