package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateMatches_AllPredicateParts(t *testing.T) {
	e := Estimate{
		ID:         "fed_march_nochange",
		Prob:       96,
		RequireAll: []string{"fed", "march"},
		RequireAny: []string{"no change", "hold", "unchanged"},
		Exclude:    []string{"chair", "cut"},
	}

	assert.True(t, e.Matches("Fed decision in March: no change?"))
	assert.False(t, e.Matches("Fed decision in March: 25bps cut?"), "excluded keyword")
	assert.False(t, e.Matches("Fed holds in April"), "missing require_all")
	assert.False(t, e.Matches("Fed March meeting outcome"), "missing require_any")
}

func TestEstimateMatches_EmptyRequireAnyIsPermissive(t *testing.T) {
	e := Estimate{RequireAll: []string{"openai", "ipo"}}

	assert.True(t, e.Matches("OpenAI IPO by December"))
	assert.False(t, e.Matches("OpenAI revenue above 10B"))
}

func TestEstimateMatches_CaseInsensitive(t *testing.T) {
	e := Estimate{RequireAll: []string{"arsenal", "premier league"}}

	assert.True(t, e.Matches("ARSENAL to win the PREMIER LEAGUE"))
}
