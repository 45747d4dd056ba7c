package strategy

import (
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// stubRefs implementa ReferenceSource sobre una lista ordenada, igual que
// la knowledge base real: primera coincidencia gana.
type stubRefs []domain.Estimate

func (r stubRefs) Lookup(title string) (domain.Estimate, bool) {
	for _, e := range r {
		if e.Matches(title) {
			return e, true
		}
	}
	return domain.Estimate{}, false
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func snap(venue domain.Venue, title string, yesPct, volume float64) domain.Snapshot {
	return domain.Snapshot{
		Venue:   venue,
		Title:   title,
		NormKey: domain.NormalizeTitle(title),
		YesPct:  yesPct,
		Volume:  volume,
		EndDate: testNow.Add(60 * 24 * time.Hour).Format(time.RFC3339),
		URL:     "https://example.com/m",
		Active:  true,
	}
}

func polyOnly(snaps ...domain.Snapshot) domain.Universe {
	return domain.Universe{
		Polymarket: domain.VenueData{Snapshots: snaps, OK: true},
		Kalshi:     domain.VenueData{OK: true},
		FetchedAt:  testNow,
	}
}

func bothVenues(poly, kalshi []domain.Snapshot) domain.Universe {
	return domain.Universe{
		Polymarket: domain.VenueData{Snapshots: poly, OK: true},
		Kalshi:     domain.VenueData{Snapshots: kalshi, OK: true},
		FetchedAt:  testNow,
	}
}

func profileWith(tag string, params domain.RiskParams) domain.Profile {
	return domain.Profile{
		ID:       "test-agent",
		Name:     "Test Agent",
		Strategy: tag,
		Params:   params,
	}
}
