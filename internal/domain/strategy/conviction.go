package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// HighConviction concentra capital en los edges enormes: umbral de edge
// alto, Kelly completo y un mínimo de apuesta elevado. Pocas posiciones,
// mucho tamaño.
type HighConviction struct {
	refs ReferenceSource
}

// NewHighConviction crea la variante con la fuente de referencias dada.
func NewHighConviction(refs ReferenceSource) *HighConviction {
	return &HighConviction{refs: refs}
}

func (s *HighConviction) Tag() string { return "high_conviction" }

func (s *HighConviction) RequiredVenues() []domain.Venue { return nil }

// Propose implementa Strategy; descarta cualquier apuesta menor de $50.
func (s *HighConviction) Propose(profile domain.Profile, u domain.Universe, state *domain.State, _ time.Time) ([]domain.Proposal, error) {
	params := profile.Params

	var out []domain.Proposal
	for _, mkt := range u.All() {
		if !mkt.Tradeable() {
			continue
		}
		ref, ok := s.refs.Lookup(mkt.Title)
		if !ok {
			continue
		}
		edge := math.Abs(mkt.YesPct - ref.Prob)
		if edge < params.MinEdge {
			continue
		}
		if mkt.Volume < params.MinVolume {
			continue
		}
		stake, dir := domain.KellyStake(ref.Prob/100, mkt.YesPct/100, state.Bankroll, params.KellyFraction)
		if stake < 50 {
			continue
		}

		underpriced := mkt.YesPct < ref.Prob
		if dir == "" {
			dir = domain.BuyNo
			if underpriced {
				dir = domain.BuyYes
			}
		}
		sideTxt := "The crowd is way too bullish. Fading this with conviction."
		if underpriced {
			sideTxt = "The market is sleeping on this. Buying YES hard."
		}

		out = append(out, domain.Proposal{
			Market:        mkt.Title,
			NormKey:       mkt.NormKey,
			Venue:         string(mkt.Venue),
			URL:           mkt.URL,
			Category:      mkt.Category,
			Direction:     dir,
			MarketPrice:   mkt.YesPct,
			EstimatedProb: ref.Prob,
			EdgePP:        round1(edge),
			Stake:         stake,
			KellyFraction: params.KellyFraction,
			Source:        ref.Source,
			Rationale: fmt.Sprintf(
				"MASSIVE EDGE: %.0fpp between market (%.0f%%) and reference (%.0f%%). This is the kind of trade you SIZE UP on. Full Kelly. $%.0f on the line. %s Volume $%.0f means we can get filled. LET'S GO.",
				edge, mkt.YesPct, ref.Prob, stake, sideTxt, mkt.Volume,
			),
			Confidence: domain.ConfidenceMaximum,
		})
	}
	return rankAndTruncate(out, params.MaxPositions), nil
}
