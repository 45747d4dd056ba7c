package polymarket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alejandrodnm/botarena/internal/adapters/polymarket"
	"github.com/alejandrodnm/botarena/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventsFixture cubre las dos formas de outcomePrices (string JSON y array),
// un mercado sin precios y uno con precio cero.
const eventsFixture = `[
	{
		"title": "Fed decision",
		"slug": "fed-decision",
		"tags": [{"label": "Economy"}],
		"markets": [
			{
				"question": "Will the Fed cut rates in 2026?",
				"outcomePrices": "[\"0.35\", \"0.65\"]",
				"volumeNum": 125000.5,
				"volume24hr": 8000,
				"liquidityNum": 40000,
				"endDate": "2026-12-31T00:00:00Z",
				"active": true,
				"closed": false
			},
			{
				"question": "Will the Fed hike rates in 2026?",
				"outcomePrices": ["0.62", "0.38"],
				"volume": "90000",
				"volume24hr": 3000,
				"liquidity": "12000",
				"endDate": "2026-12-31T00:00:00Z",
				"closed": true
			}
		]
	},
	{
		"title": "Bitcoin above 150k by June?",
		"slug": "bitcoin-150k",
		"markets": [
			{"question": "Sin precios"},
			{"question": "Precio cero", "outcomePrices": ["0", "1"]},
			{"outcomePrices": ["0.10", "0.90"], "volumeNum": 500}
		]
	}
]`

func fetchFixture(t *testing.T, payload string) []domain.Snapshot {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "0" {
			w.Write([]byte(payload))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	source := polymarket.NewSource(polymarket.NewClient(srv.URL))
	snaps, err := source.FetchMarkets(context.Background())
	require.NoError(t, err)
	return snaps
}

func TestFetchMarkets_ParsesBothPriceForms(t *testing.T) {
	snaps := fetchFixture(t, eventsFixture)
	require.Len(t, snaps, 3)

	fed := snaps[0]
	assert.Equal(t, domain.VenuePolymarket, fed.Venue)
	assert.Equal(t, "Will the Fed cut rates in 2026?", fed.Title)
	assert.Equal(t, "fed cut rates", fed.NormKey)
	assert.InDelta(t, 35.0, fed.YesPct, 0.001)
	assert.InDelta(t, 125000.5, fed.Volume, 0.001)
	assert.InDelta(t, 8000, fed.Volume24h, 0.001)
	assert.InDelta(t, 40000, fed.Liquidity, 0.001)
	assert.Equal(t, "Economy", fed.Category)
	assert.Equal(t, "https://polymarket.com/event/fed-decision", fed.URL)
	assert.True(t, fed.Active)
	assert.False(t, fed.Closed)

	// Array literal + campos volume/liquidity como string
	hike := snaps[1]
	assert.InDelta(t, 62.0, hike.YesPct, 0.001)
	assert.InDelta(t, 90000, hike.Volume, 0.001)
	assert.InDelta(t, 12000, hike.Liquidity, 0.001)
	assert.True(t, hike.Closed)
	// "active" ausente → true
	assert.True(t, hike.Active)
}

func TestFetchMarkets_SkipsUnpriceableMarkets(t *testing.T) {
	snaps := fetchFixture(t, eventsFixture)
	require.Len(t, snaps, 3)

	// Del segundo event solo sobrevive el mercado con precio 0.10;
	// sin question cae al title del event.
	btc := snaps[2]
	assert.Equal(t, "Bitcoin above 150k by June?", btc.Title)
	assert.InDelta(t, 10.0, btc.YesPct, 0.001)
}

func TestFetchMarkets_CategoryFallsBackToGuess(t *testing.T) {
	snaps := fetchFixture(t, eventsFixture)
	require.Len(t, snaps, 3)

	// El event de Bitcoin no trae tags → se infiere por keywords
	assert.Equal(t, "Economics", snaps[2].Category)
}

func TestFetchMarkets_AcceptsDataWrappedRoot(t *testing.T) {
	wrapped := `{"data": [{
		"title": "Wrapped",
		"slug": "wrapped",
		"markets": [{"question": "Q", "outcomePrices": ["0.5", "0.5"]}]
	}]}`

	snaps := fetchFixture(t, wrapped)
	require.Len(t, snaps, 1)
	assert.InDelta(t, 50.0, snaps[0].YesPct, 0.001)
}

func TestFetchMarkets_RoundsYesPctToOneDecimal(t *testing.T) {
	payload := `[{
		"title": "Rounding",
		"slug": "rounding",
		"markets": [{"question": "Q", "outcomePrices": ["0.33333", "0.66667"]}]
	}]`

	snaps := fetchFixture(t, payload)
	require.Len(t, snaps, 1)
	assert.InDelta(t, 33.3, snaps[0].YesPct, 0.0001)
}
