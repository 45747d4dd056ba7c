package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// CrossPlatformArb explota discrepancias de precio entre Polymarket y
// Kalshi sobre el mismo evento: compra YES en el venue barato y NO en el
// caro, fijando el spread sea cual sea el desenlace.
type CrossPlatformArb struct{}

// NewCrossPlatformArb crea la variante. No necesita referencias: el otro
// venue ES la referencia.
func NewCrossPlatformArb() *CrossPlatformArb {
	return &CrossPlatformArb{}
}

func (s *CrossPlatformArb) Tag() string { return "cross_platform_arb" }

// RequiredVenues exige datos de ambos venues: sin uno de los dos lados no
// hay spread que medir.
func (s *CrossPlatformArb) RequiredVenues() []domain.Venue {
	return []domain.Venue{domain.VenuePolymarket, domain.VenueKalshi}
}

// Propose empareja mercados por solape de keywords sobre títulos
// normalizados y propone los gaps que superan el spread mínimo.
func (s *CrossPlatformArb) Propose(profile domain.Profile, u domain.Universe, state *domain.State, _ time.Time) ([]domain.Proposal, error) {
	params := profile.Params

	var out []domain.Proposal
	for _, pm := range u.Polymarket.Snapshots {
		if pm.Closed || !pm.Active {
			continue
		}
		if !pm.Tradeable() {
			continue
		}
		for _, km := range u.Kalshi.Snapshots {
			if !km.Tradeable() {
				continue
			}
			if domain.KeywordOverlap(pm.NormKey, km.NormKey) < 0.5 {
				continue
			}
			gap := pm.YesPct - km.YesPct
			absGap := math.Abs(gap)
			if absGap < params.MinSpread {
				continue
			}

			buyVenue, buyPrice, buyURL := string(domain.VenuePolymarket), pm.YesPct, pm.URL
			sellVenue, sellPrice := string(domain.VenueKalshi), km.YesPct
			if gap > 0 {
				buyVenue, buyPrice, buyURL = string(domain.VenueKalshi), km.YesPct, km.URL
				sellVenue, sellPrice = string(domain.VenuePolymarket), pm.YesPct
			}

			stake := state.Bankroll * (absGap / 100) * params.KellyFraction
			stake = math.Min(stake, state.Bankroll*0.20)
			if stake < 10 {
				continue
			}

			category := pm.Category
			if category == "" {
				category = domain.GuessCategory(pm.Title)
			}
			confidence := domain.ConfidenceMedium
			if absGap >= 10 {
				confidence = domain.ConfidenceHigh
			}

			out = append(out, domain.Proposal{
				Market:        pm.Title,
				NormKey:       pm.NormKey,
				Venue:         fmt.Sprintf("%s → %s", buyVenue, sellVenue),
				URL:           buyURL,
				Category:      category,
				Direction:     domain.Arb,
				MarketPrice:   pm.YesPct,
				EstimatedProb: km.YesPct,
				EdgePP:        round1(absGap),
				Stake:         round2(stake),
				KellyFraction: params.KellyFraction,
				Source:        fmt.Sprintf("%s vs %s", buyVenue, sellVenue),
				Rationale: fmt.Sprintf(
					"SPREAD DETECTED: %s has YES at %.0f¢, %s at %.0f¢. That's a %.0f¢ spread. Buy YES on %s, buy NO on %s: %.0f¢ locked in per contract regardless of outcome. Execution risk: settlement timing and platform fees reduce the effective spread.",
					buyVenue, buyPrice, sellVenue, sellPrice, absGap, buyVenue, sellVenue, absGap,
				),
				Confidence: confidence,
				Arb: &domain.ArbDetail{
					BuyVenue:  buyVenue,
					BuyPrice:  buyPrice,
					SellVenue: sellVenue,
					SellPrice: sellPrice,
					Spread:    round1(absGap),
				},
			})
		}
	}

	// Un mercado puede matchear varios contratos del otro venue: tras
	// ordenar por edge nos quedamos con el mejor gap por clave.
	out = rankAndTruncate(out, -1)
	seen := make(map[string]bool)
	unique := out[:0]
	for _, p := range out {
		if seen[p.NormKey] {
			continue
		}
		seen[p.NormKey] = true
		unique = append(unique, p)
	}
	if len(unique) > params.MaxPositions {
		unique = unique[:params.MaxPositions]
	}
	return unique, nil
}
