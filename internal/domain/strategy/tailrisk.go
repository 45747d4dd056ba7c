package strategy

import (
	"fmt"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// TailRisk opera los extremos de la banda: long shots baratos y
// certezas caras donde el mercado infravalora la cola. Sin referencia
// aplica un ajuste heurístico fijo de 5pp; con referencia exige que el
// desacuerdo supere el mispricing mínimo.
type TailRisk struct {
	refs ReferenceSource
}

// NewTailRisk crea la variante con la fuente de referencias dada.
func NewTailRisk(refs ReferenceSource) *TailRisk {
	return &TailRisk{refs: refs}
}

func (s *TailRisk) Tag() string { return "tail_risk" }

func (s *TailRisk) RequiredVenues() []domain.Venue { return nil }

// Propose implementa Strategy sobre el universo combinado.
func (s *TailRisk) Propose(profile domain.Profile, u domain.Universe, state *domain.State, _ time.Time) ([]domain.Proposal, error) {
	params := profile.Params

	var out []domain.Proposal
	for _, mkt := range u.All() {
		if !mkt.Tradeable() {
			continue
		}
		if mkt.Volume < params.MinVolume {
			continue
		}
		ref, hasRef := s.refs.Lookup(mkt.Title)
		yes := mkt.YesPct

		switch {
		case yes >= 2 && yes <= params.LowThreshold:
			var edge, est float64
			if hasRef {
				if ref.Prob <= yes+params.MinMispricing {
					continue
				}
				edge = ref.Prob - yes
				est = ref.Prob / 100
			} else {
				edge = 5
				est = (yes + 5) / 100
			}
			stake, _ := domain.KellyStake(est, yes/100, state.Bankroll, params.KellyFraction)
			if stake < 5 {
				continue
			}
			out = append(out, s.proposal(mkt, ref, hasRef, domain.BuyYes, edge, est, stake, params.KellyFraction,
				fmt.Sprintf(
					"Long shot at %.0f%%. %s Buying YES at %.0f¢ means risking %.0f¢ to win %.0f¢: a %.1fx payoff. Using small size because most long shots don't hit, but when they do the asymmetry is powerful.",
					yes, refTxt(ref, hasRef, "Reference suggests %.0f%%, significantly higher.", "Markets systematically underprice tail events."),
					yes, yes, 100-yes, (100-yes)/yes,
				)))

		case params.HighThreshold > 0 && yes >= params.HighThreshold:
			var edge, est float64
			if hasRef {
				if ref.Prob >= yes-params.MinMispricing {
					continue
				}
				edge = yes - ref.Prob
				est = ref.Prob / 100
			} else {
				edge = 5
				est = (yes - 5) / 100
			}
			stake, _ := domain.KellyStake(1-est, (100-yes)/100, state.Bankroll, params.KellyFraction)
			if stake < 5 {
				continue
			}
			out = append(out, s.proposal(mkt, ref, hasRef, domain.BuyNo, edge, est, stake, params.KellyFraction,
				fmt.Sprintf(
					"Market at %.0f%%, priced as near-certain. %s Buying NO at %.0f¢ to capture the tail risk premium. If the upset happens this pays %.0f¢ on a %.0f¢ investment. The world is more uncertain than %.0f%% implies.",
					yes, refTxt(ref, hasRef, "But reference suggests only %.0f%%.", "Markets systematically overprice near-certainties."),
					100-yes, yes, 100-yes, yes,
				)))
		}
	}
	return rankAndTruncate(out, params.MaxPositions), nil
}

func (s *TailRisk) proposal(mkt domain.Snapshot, ref domain.Estimate, hasRef bool, dir domain.Direction, edge, est, stake, kelly float64, rationale string) domain.Proposal {
	estProb := round1(est * 100)
	source := "Tail risk premium model"
	confidence := domain.ConfidenceLow
	if hasRef {
		estProb = ref.Prob
		source = ref.Source
		confidence = domain.ConfidenceMedium
	}
	category := mkt.Category
	if category == "" {
		category = "Other"
	}
	return domain.Proposal{
		Market:        mkt.Title,
		NormKey:       mkt.NormKey,
		Venue:         string(mkt.Venue),
		URL:           mkt.URL,
		Category:      category,
		Direction:     dir,
		MarketPrice:   mkt.YesPct,
		EstimatedProb: estProb,
		EdgePP:        round1(edge),
		Stake:         stake,
		KellyFraction: kelly,
		Source:        source,
		Rationale:     rationale,
		Confidence:    confidence,
	}
}

func refTxt(ref domain.Estimate, hasRef bool, withRef, withoutRef string) string {
	if hasRef {
		return fmt.Sprintf(withRef, ref.Prob)
	}
	return withoutRef
}
