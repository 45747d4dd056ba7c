package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// MomentumNarrative busca mercados de Polymarket cuyo volumen de 24h se
// dispara respecto al histórico: señal de narrativa en movimiento. Entra
// pronto, con referencia que respalde el edge.
type MomentumNarrative struct {
	refs ReferenceSource
}

// NewMomentumNarrative crea la variante con la fuente de referencias dada.
func NewMomentumNarrative(refs ReferenceSource) *MomentumNarrative {
	return &MomentumNarrative{refs: refs}
}

func (s *MomentumNarrative) Tag() string { return "momentum_narrative" }

// RequiredVenues exige Polymarket: es el único venue con volumen 24h.
func (s *MomentumNarrative) RequiredVenues() []domain.Venue {
	return []domain.Venue{domain.VenuePolymarket}
}

// Propose filtra por surge de volumen y edge contra referencia.
func (s *MomentumNarrative) Propose(profile domain.Profile, u domain.Universe, state *domain.State, _ time.Time) ([]domain.Proposal, error) {
	params := profile.Params
	surgeFloor := params.VolumeSurgeRatio / 100
	if surgeFloor <= 0 {
		surgeFloor = 0.02
	}

	var out []domain.Proposal
	for _, mkt := range u.Polymarket.Snapshots {
		if mkt.Closed || !mkt.Active {
			continue
		}
		if !mkt.Tradeable() {
			continue
		}
		if mkt.Volume24h < params.MinVolume24h {
			continue
		}
		if mkt.Volume <= 0 {
			continue
		}
		// Un 24h mayor que 1.5x el total delata datos corruptos, no surge.
		if mkt.Volume24h > mkt.Volume*1.5 {
			continue
		}
		if mkt.Volume < 50000 {
			continue
		}
		surge := mkt.Volume24h / mkt.Volume
		if surge < surgeFloor {
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
		stake, dir := domain.KellyStake(ref.Prob/100, mkt.YesPct/100, state.Bankroll, params.KellyFraction)
		if stake < 10 {
			continue
		}
		if dir == "" {
			dir = domain.BuyYes
		}

		category := mkt.Category
		if category == "" {
			category = "Other"
		}
		confidence := domain.ConfidenceMedium
		if edge >= 8 || surge >= 0.05 {
			confidence = domain.ConfidenceHigh
		}

		out = append(out, domain.Proposal{
			Market:        mkt.Title,
			NormKey:       mkt.NormKey,
			Venue:         string(mkt.Venue),
			URL:           mkt.URL,
			Category:      category,
			Direction:     dir,
			MarketPrice:   mkt.YesPct,
			EstimatedProb: ref.Prob,
			EdgePP:        round1(edge),
			Stake:         stake,
			KellyFraction: params.KellyFraction,
			Source:        fmt.Sprintf("Volume surge: $%.0f in 24h (%.1f%% of total)", mkt.Volume24h, surge*100),
			Rationale: fmt.Sprintf(
				"Volume surge detected: $%.0f traded in the last 24h (%.1f%% of all-time volume). Reference data from %s suggests %.0f%% vs market at %.0f%%. When volume spikes like this, the market is repricing in real time. Getting ahead of the crowd.",
				mkt.Volume24h, surge*100, ref.Source, ref.Prob, mkt.YesPct,
			),
			Confidence: confidence,
		})
	}
	return rankAndTruncate(out, params.MaxPositions), nil
}
