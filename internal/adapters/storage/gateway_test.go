package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/botarena/internal/adapters/storage"
	"github.com/alejandrodnm/botarena/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T) *storage.Gateway {
	t.Helper()
	fs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	g := storage.NewGateway(fs)
	t.Cleanup(func() { g.Close() })
	return g
}

func TestGateway_LoadStates_EmptyStore(t *testing.T) {
	g := newTestGateway(t)

	states, err := g.LoadStates(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, states)
	assert.Empty(t, states)
}

func TestGateway_StatesRoundtrip(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st := domain.NewState(now)
	st.Bankroll = 9500
	st.TotalTrades = 3
	st.WinningTrades = 1
	st.Positions = []domain.Position{{
		TradeID:      "a1b2c3d4e5f6",
		Market:       "Will the Fed cut rates in 2026?",
		NormKey:      "fed cut rates",
		Direction:    domain.BuyYes,
		EntryPrice:   40.8,
		CurrentPrice: 40,
		Stake:        500,
		OpenedAt:     now,
		Venue:        string(domain.VenuePolymarket),
	}}

	require.NoError(t, g.SaveStates(ctx, map[string]*domain.State{"tiago": st}))

	out, err := g.LoadStates(ctx)
	require.NoError(t, err)
	require.Contains(t, out, "tiago")
	assert.InDelta(t, 9500, out["tiago"].Bankroll, 1e-9)
	assert.Equal(t, 3, out["tiago"].TotalTrades)
	require.Len(t, out["tiago"].Positions, 1)
	assert.Equal(t, "a1b2c3d4e5f6", out["tiago"].Positions[0].TradeID)
	assert.Equal(t, domain.BuyYes, out["tiago"].Positions[0].Direction)
	assert.True(t, out["tiago"].Positions[0].OpenedAt.Equal(now))
}

func TestGateway_TradesRoundtrip(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	trades := []domain.Trade{{
		ID:         "a1b2c3d4e5f6",
		AgentID:    "mako",
		AgentName:  "Mako Vance",
		Timestamp:  now,
		Market:     "Will BTC close above 100k?",
		Direction:  domain.Arb,
		EntryPrice: 48,
		Stake:      600,
		Status:     domain.TradeOpen,
		Arb: &domain.ArbDetail{
			BuyVenue:  "Kalshi",
			BuyPrice:  48,
			SellVenue: "Polymarket",
			SellPrice: 60,
			Spread:    12,
		},
	}}

	require.NoError(t, g.SaveTrades(ctx, trades))

	out, err := g.LoadTrades(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.Arb, out[0].Direction)
	require.NotNil(t, out[0].Arb)
	assert.InDelta(t, 12, out[0].Arb.Spread, 1e-9)
}

func TestGateway_CyclesRoundtrip(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	cycles := []domain.Cycle{{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		AgentID:   "freya",
		Decision:  domain.DecisionHold,
		HoldReasons: []domain.ReasonCount{
			{Reason: domain.ReasonDependencyUnavailable, Count: 1},
		},
		TradeIDs: []string{},
	}}

	require.NoError(t, g.SaveCycles(ctx, cycles))

	out, err := g.LoadCycles(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.DecisionHold, out[0].Decision)
	require.Len(t, out[0].HoldReasons, 1)
	assert.Equal(t, domain.ReasonDependencyUnavailable, out[0].HoldReasons[0].Reason)
}

func TestGateway_UniverseCache(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	// Sin cache previa
	_, ok, err := g.LoadUniverse(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	u := domain.Universe{
		Polymarket: domain.VenueData{
			OK: true,
			Snapshots: []domain.Snapshot{{
				Venue:  domain.VenuePolymarket,
				Title:  "Will it rain tomorrow?",
				YesPct: 35,
			}},
		},
		Kalshi:    domain.VenueData{OK: false},
		FetchedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, g.SaveUniverse(ctx, u))

	got, ok, err := g.LoadUniverse(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Polymarket.OK)
	assert.False(t, got.Kalshi.OK)
	require.Len(t, got.Polymarket.Snapshots, 1)
	assert.InDelta(t, 35, got.Polymarket.Snapshots[0].YesPct, 1e-9)
}

func TestGateway_ResetKeepsUniverseCache(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, g.SaveStates(ctx, map[string]*domain.State{"ollie": domain.NewState(now)}))
	require.NoError(t, g.SaveTrades(ctx, []domain.Trade{{ID: "t1"}}))
	require.NoError(t, g.SaveCycles(ctx, []domain.Cycle{{AgentID: "ollie"}}))
	require.NoError(t, g.SaveUniverse(ctx, domain.Universe{FetchedAt: now}))

	require.NoError(t, g.Reset(ctx))

	states, err := g.LoadStates(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)

	trades, err := g.LoadTrades(ctx)
	require.NoError(t, err)
	assert.Empty(t, trades)

	cycles, err := g.LoadCycles(ctx)
	require.NoError(t, err)
	assert.Empty(t, cycles)

	_, ok, err := g.LoadUniverse(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGateway_CorruptDocumentSurfacesError(t *testing.T) {
	fs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	g := storage.NewGateway(fs)
	defer g.Close()

	ctx := context.Background()
	require.NoError(t, fs.Put(ctx, "agents_state.json", []byte("{esto no es json")))

	_, err = g.LoadStates(ctx)
	assert.Error(t, err)
}
