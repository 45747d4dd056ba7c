package arena

import (
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
	"github.com/alejandrodnm/botarena/internal/domain/strategy"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// stubStrategy devuelve propuestas fijas; sustituye a las variantes
// reales en los tests del engine y del runner.
type stubStrategy struct {
	tag    string
	venues []domain.Venue
	props  []domain.Proposal
	err    error
	calls  int
}

func (s *stubStrategy) Tag() string                    { return s.tag }
func (s *stubStrategy) RequiredVenues() []domain.Venue { return s.venues }

func (s *stubStrategy) Propose(domain.Profile, domain.Universe, *domain.State, time.Time) ([]domain.Proposal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.props, nil
}

func newTestEngine(stubs ...strategy.Strategy) *Engine {
	reg := strategy.NewRegistry(nil)
	for _, s := range stubs {
		reg.Register(s)
	}
	return NewEngine(reg)
}

func stubProfile(id, tag string, maxPositions int) domain.Profile {
	return domain.Profile{
		ID:       id,
		Name:     "Agent " + id,
		Strategy: tag,
		Params:   domain.RiskParams{MaxPositions: maxPositions, KellyFraction: 0.25},
	}
}

func yesProposal(title string, price, stake float64) domain.Proposal {
	return domain.Proposal{
		Market:      title,
		NormKey:     domain.NormalizeTitle(title),
		Venue:       string(domain.VenuePolymarket),
		Direction:   domain.BuyYes,
		MarketPrice: price,
		Stake:       stake,
		EdgePP:      10,
		Confidence:  domain.ConfidenceMedium,
	}
}

func openPosition(title string, dir domain.Direction, entry, current, stake float64) domain.Position {
	return domain.Position{
		TradeID:      newTradeID(),
		Market:       title,
		NormKey:      domain.NormalizeTitle(title),
		Direction:    dir,
		EntryPrice:   entry,
		CurrentPrice: current,
		Stake:        stake,
		OpenedAt:     testNow.Add(-24 * time.Hour),
		Venue:        string(domain.VenuePolymarket),
	}
}

func polySnapshot(title string, yesPct float64) domain.Snapshot {
	return domain.Snapshot{
		Venue:   domain.VenuePolymarket,
		Title:   title,
		NormKey: domain.NormalizeTitle(title),
		YesPct:  yesPct,
		Active:  true,
	}
}

func kalshiSnapshot(title string, yesPct float64) domain.Snapshot {
	return domain.Snapshot{
		Venue:   domain.VenueKalshi,
		Title:   title,
		NormKey: domain.NormalizeTitle(title),
		YesPct:  yesPct,
		Active:  true,
	}
}

func bothVenuesUp(poly, kalshi []domain.Snapshot) domain.Universe {
	return domain.Universe{
		Polymarket: domain.VenueData{Snapshots: poly, OK: true},
		Kalshi:     domain.VenueData{Snapshots: kalshi, OK: true},
		FetchedAt:  testNow,
	}
}

func kalshiDown(poly ...domain.Snapshot) domain.Universe {
	return domain.Universe{
		Polymarket: domain.VenueData{Snapshots: poly, OK: true},
		Kalshi:     domain.VenueData{OK: false},
		FetchedAt:  testNow,
	}
}
