package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationValidate(t *testing.T) {
	t.Run("clarification requires reason", func(t *testing.T) {
		cls := &Classification{Status: StatusClarificationNeeded, Questions: []string{"which Delta?"}}
		assert.Error(t, cls.Validate())

		cls.Reason = "ambiguous entity"
		assert.NoError(t, cls.Validate())
	})

	t.Run("clarification allows empty question list", func(t *testing.T) {
		cls := &Classification{Status: StatusClarificationNeeded, Reason: "scope unclear"}
		assert.NoError(t, cls.Validate())
	})

	t.Run("ready requires buyer entity and domain", func(t *testing.T) {
		cls := &Classification{Status: StatusReadyForResearch, BuyerEntity: "Salesforce"}
		assert.Error(t, cls.Validate())

		cls.BuyerDomain = "   "
		assert.Error(t, cls.Validate())

		cls.BuyerDomain = "salesforce.com"
		assert.NoError(t, cls.Validate())
	})

	t.Run("rejected tolerates blank message", func(t *testing.T) {
		cls := &Classification{Status: StatusRejected}
		assert.NoError(t, cls.Validate())
	})

	t.Run("unknown status fails", func(t *testing.T) {
		assert.Error(t, (&Classification{}).Validate())
		assert.Error(t, (&Classification{Status: "PENDING"}).Validate())
	})
}

func TestClassificationJSONContract(t *testing.T) {
	raw := `{
		"status": "READY_FOR_RESEARCH",
		"buyer_entity": "Salesforce",
		"buyer_domain": "salesforce.com",
		"seller_entity": "ZoomInfo",
		"research_focus": "Sales opportunity for data solutions"
	}`

	var cls Classification
	require.NoError(t, json.Unmarshal([]byte(raw), &cls))
	assert.Equal(t, StatusReadyForResearch, cls.Status)
	assert.Equal(t, "Salesforce", cls.BuyerEntity)
	assert.Equal(t, "salesforce.com", cls.BuyerDomain)
	assert.Equal(t, "ZoomInfo", cls.SellerEntity)
	assert.NoError(t, cls.Validate())
}
