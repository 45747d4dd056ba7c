package strategy

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/botarena/internal/domain"
)

var recessionRef = stubRefs{{
	ID:         "recession_2026",
	Prob:       30,
	Source:     "RSM/JPMorgan consensus",
	RequireAll: []string{"recession"},
}}

func contrarianParams() domain.RiskParams {
	return domain.RiskParams{
		MinEdge:         8,
		KellyFraction:   0.25,
		MinVolume:       50000,
		MaxPositions:    5,
		MinDaysToExpiry: 7,
	}
}

func TestValueContrarian_ProposesUnderpricedMarket(t *testing.T) {
	s := NewValueContrarian(recessionRef)
	u := polyOnly(snap(domain.VenuePolymarket, "US recession this year?", 20, 60000))
	st := domain.NewState(testNow)

	props, err := s.Propose(profileWith(s.Tag(), contrarianParams()), u, st, testNow)

	require.NoError(t, err)
	require.Len(t, props, 1)
	p := props[0]
	assert.Equal(t, domain.BuyYes, p.Direction)
	assert.Equal(t, 10.0, p.EdgePP)
	assert.Equal(t, 30.0, p.EstimatedProb)
	// kelly(0.30, 0.20, 10000, 0.25): f=0.125 → 312.50 menos comisión.
	assert.InDelta(t, 309.38, p.Stake, 0.001)
	assert.Equal(t, domain.ConfidenceMedium, p.Confidence)
	assert.Equal(t, "RSM/JPMorgan consensus", p.Source)
}

func TestValueContrarian_HighEdgeRaisesConfidence(t *testing.T) {
	s := NewValueContrarian(recessionRef)
	u := polyOnly(snap(domain.VenuePolymarket, "US recession this year?", 17, 60000))
	st := domain.NewState(testNow)

	props, err := s.Propose(profileWith(s.Tag(), contrarianParams()), u, st, testNow)

	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, 13.0, props[0].EdgePP)
	assert.Equal(t, domain.ConfidenceHigh, props[0].Confidence)
}

func TestValueContrarian_RejectsBelowFloors(t *testing.T) {
	s := NewValueContrarian(recessionRef)
	st := domain.NewState(testNow)
	profile := profileWith(s.Tag(), contrarianParams())

	// Edge 5pp < 8pp mínimo.
	props, err := s.Propose(profile, polyOnly(snap(domain.VenuePolymarket, "US recession this year?", 25, 60000)), st, testNow)
	require.NoError(t, err)
	assert.Empty(t, props)

	// Volumen por debajo del suelo.
	props, err = s.Propose(profile, polyOnly(snap(domain.VenuePolymarket, "US recession this year?", 20, 40000)), st, testNow)
	require.NoError(t, err)
	assert.Empty(t, props)

	// Sin referencia que matchee no hay edge que medir.
	props, err = s.Propose(profile, polyOnly(snap(domain.VenuePolymarket, "Something without coverage", 20, 60000)), st, testNow)
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestValueContrarian_ExpiryFilterFailsOpen(t *testing.T) {
	s := NewValueContrarian(recessionRef)
	st := domain.NewState(testNow)
	profile := profileWith(s.Tag(), contrarianParams())

	near := snap(domain.VenuePolymarket, "US recession this year?", 20, 60000)
	near.EndDate = testNow.Add(2 * 24 * time.Hour).Format(time.RFC3339)
	props, err := s.Propose(profile, polyOnly(near), st, testNow)
	require.NoError(t, err)
	assert.Empty(t, props, "expiring in 2 days with a 7 day floor")

	// Fecha ilegible: el filtro se salta, la propuesta sale.
	garbled := snap(domain.VenuePolymarket, "US recession this year?", 20, 60000)
	garbled.EndDate = "soon-ish"
	props, err = s.Propose(profile, polyOnly(garbled), st, testNow)
	require.NoError(t, err)
	assert.Len(t, props, 1)
}

func TestValueContrarian_RanksByEdgeAndTruncates(t *testing.T) {
	refs := make(stubRefs, 0, 7)
	snaps := make([]domain.Snapshot, 0, 7)
	for i := 0; i < 7; i++ {
		title := fmt.Sprintf("Scenario %d resolves YES?", i)
		refs = append(refs, domain.Estimate{
			ID:         fmt.Sprintf("ref_%d", i),
			Prob:       float64(40 + 2*i), // edges 10,12,...,22
			Source:     "test",
			RequireAll: []string{fmt.Sprintf("scenario %d", i)},
		})
		snaps = append(snaps, snap(domain.VenuePolymarket, title, 30, 60000))
	}
	s := NewValueContrarian(refs)
	st := domain.NewState(testNow)

	props, err := s.Propose(profileWith(s.Tag(), contrarianParams()), polyOnly(snaps...), st, testNow)

	require.NoError(t, err)
	require.Len(t, props, 5)
	assert.Equal(t, 22.0, props[0].EdgePP)
	for i := 1; i < len(props); i++ {
		assert.GreaterOrEqual(t, props[i-1].EdgePP, props[i].EdgePP)
	}
}
