package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// ValueContrarian compra mercados claramente desalineados con las odds de
// referencia. Solo entra con edge suficiente, liquidez adecuada y margen
// hasta la resolución; el lado lo decide el signo del desalineamiento.
type ValueContrarian struct {
	refs ReferenceSource
}

// NewValueContrarian crea la variante con la fuente de referencias dada.
func NewValueContrarian(refs ReferenceSource) *ValueContrarian {
	return &ValueContrarian{refs: refs}
}

func (s *ValueContrarian) Tag() string { return "contrarian_value" }

func (s *ValueContrarian) RequiredVenues() []domain.Venue { return nil }

// Propose implementa Strategy sobre el universo combinado de ambos venues.
func (s *ValueContrarian) Propose(profile domain.Profile, u domain.Universe, state *domain.State, now time.Time) ([]domain.Proposal, error) {
	params := profile.Params
	minDays := params.MinDaysToExpiry
	if minDays == 0 {
		minDays = 7
	}

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
		if days, known := mkt.DaysToExpiry(now); known && days < minDays {
			continue
		}
		stake, _ := domain.KellyStake(ref.Prob/100, mkt.YesPct/100, state.Bankroll, params.KellyFraction)
		if stake < 10 {
			continue
		}

		underpriced := mkt.YesPct < ref.Prob
		dir := domain.BuyNo
		sideTxt := "Buying NO: the market is overvaluing this outcome."
		if underpriced {
			dir = domain.BuyYes
			sideTxt = "Buying YES: the market is undervaluing this outcome."
		}
		confidence := domain.ConfidenceMedium
		if edge >= 12 {
			confidence = domain.ConfidenceHigh
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
				"Market prices this at %.0f%% but %s suggests %.0f%%. That's a %.0fpp edge. %s Volume ($%.0f) is adequate for execution. Using %.0f%% Kelly sizing for downside protection.",
				mkt.YesPct, ref.Source, ref.Prob, edge, sideTxt, mkt.Volume, params.KellyFraction*100,
			),
			Confidence: confidence,
		})
	}
	return rankAndTruncate(out, params.MaxPositions), nil
}
