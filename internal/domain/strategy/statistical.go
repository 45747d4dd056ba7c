package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// StatisticalValue opera divergencias contra base rates históricos: misma
// forma que ValueContrarian pero con umbrales más estrictos, Kelly más
// conservador y más margen hasta la resolución.
type StatisticalValue struct {
	refs ReferenceSource
}

// NewStatisticalValue crea la variante con la fuente de referencias dada.
func NewStatisticalValue(refs ReferenceSource) *StatisticalValue {
	return &StatisticalValue{refs: refs}
}

func (s *StatisticalValue) Tag() string { return "statistical_value" }

func (s *StatisticalValue) RequiredVenues() []domain.Venue { return nil }

// Propose implementa Strategy sobre el universo combinado.
func (s *StatisticalValue) Propose(profile domain.Profile, u domain.Universe, state *domain.State, now time.Time) ([]domain.Proposal, error) {
	params := profile.Params
	minDays := params.MinDaysToExpiry
	if minDays == 0 {
		minDays = 14
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
		stake, dir := domain.KellyStake(ref.Prob/100, mkt.YesPct/100, state.Bankroll, params.KellyFraction)
		if stake < 10 {
			continue
		}

		underpriced := mkt.YesPct < ref.Prob
		if dir == "" {
			dir = domain.BuyNo
			if underpriced {
				dir = domain.BuyYes
			}
		}
		sideTxt := "The market is pricing in too much certainty relative to historical precedent."
		if underpriced {
			sideTxt = "The market appears to be discounting information that base rates clearly support."
		}
		confidence := domain.ConfidenceMedium
		if edge >= 15 {
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
				"Bayesian analysis: prior from %s = %.0f%%. Market likelihood = %.0f%%. The %.0fpp divergence exceeds my threshold. Historical base rates for similar events support the reference estimate. %s Using conservative %.0f%% Kelly: discipline over conviction.",
				ref.Source, ref.Prob, mkt.YesPct, edge, sideTxt, params.KellyFraction*100,
			),
			Confidence: confidence,
		})
	}
	return rankAndTruncate(out, params.MaxPositions), nil
}
