package arena

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/botarena/internal/domain"
)

func TestBuildResult_PayloadShape(t *testing.T) {
	state := domain.NewState(testNow.Add(-time.Hour))
	state.Bankroll = 9900
	state.Positions = []domain.Position{openPosition("Fed cuts rates?", domain.BuyYes, 40.8, 40, 100)}

	out := &Outcome{
		Now: testNow,
		Agents: []AgentSummary{{
			Profile:       stubProfile("tiago", "stub", 5),
			State:         state,
			UnrealizedPnL: -3.9216,
			TotalEquity:   9996.0784,
			Cycle:         domain.Cycle{Decision: domain.DecisionHold},
		}},
		NewTrades: []domain.Trade{{ID: "aaa111bbb222"}},
	}
	u := bothVenuesUp(
		[]domain.Snapshot{polySnapshot("A?", 40), polySnapshot("B?", 60)},
		[]domain.Snapshot{kalshiSnapshot("C?", 30)},
	)

	res := buildResult(out, u,
		[]domain.Trade{{ID: "aaa111bbb222", Timestamp: testNow}},
		[]domain.Cycle{{AgentID: "tiago", Decision: domain.DecisionTrade}},
	)

	assert.Equal(t, testNow.Unix(), res.Timestamp)
	assert.Equal(t, "2026-03-01T12:00:00Z", res.LastUpdated)
	assert.Equal(t, "01 Mar 2026 12:00 GMT", res.LastUpdatedHuman)
	assert.Equal(t, 3, res.TotalMarkets)
	assert.Equal(t, 2, res.PolymarketCount)
	assert.Equal(t, 1, res.KalshiCount)
	assert.Equal(t, 1, res.NewTradesCount)
	require.Len(t, res.RecentTrades, 1)
	require.Len(t, res.RecentCycles, 1)
	assert.Equal(t, "tiago", res.RecentCycles[0].AgentID)

	require.Len(t, res.Agents, 1)
	row := res.Agents[0]
	assert.Equal(t, "tiago", row.ID)
	assert.Equal(t, 9900.0, row.Bankroll)
	assert.Equal(t, 9996.08, row.TotalEquity)
	assert.Equal(t, -3.92, row.UnrealizedPnL)
	assert.Equal(t, -0.04, row.ReturnPct)
	assert.Equal(t, 0.04, row.DrawdownPct)
	assert.Equal(t, 1, row.OpenPositions)
}

func TestAgentRow_FreshAgentDefaults(t *testing.T) {
	state := domain.NewState(testNow)

	row := agentRow(AgentSummary{
		Profile:     stubProfile("ming", "stub", 6),
		State:       state,
		TotalEquity: domain.InitialBankroll,
	})

	assert.Equal(t, domain.InitialBankroll, row.Bankroll)
	assert.Zero(t, row.WinRate)
	assert.Zero(t, row.ReturnPct)
	assert.Zero(t, row.DrawdownPct)
	assert.NotNil(t, row.Positions)
	assert.Empty(t, row.Positions)
	assert.NotNil(t, row.NewTrades)
}

func TestAgentRow_WinRateRounding(t *testing.T) {
	state := domain.NewState(testNow)
	state.TotalTrades = 3
	state.WinningTrades = 1

	row := agentRow(AgentSummary{Profile: stubProfile("pepper", "stub", 3), State: state, TotalEquity: domain.InitialBankroll})

	// 1/3 → 33.333…% redondeado a un decimal.
	assert.Equal(t, 33.3, row.WinRate)
}

func TestRecentTrades_NewestFirstCapped(t *testing.T) {
	all := make([]domain.Trade, 60)
	for i := range all {
		all[i] = domain.Trade{
			ID:        fmt.Sprintf("t-%02d", i),
			Timestamp: testNow.Add(time.Duration(i) * time.Minute),
		}
	}

	recent := recentTrades(all)

	require.Len(t, recent, 50)
	assert.Equal(t, "t-59", recent[0].ID)
	assert.Equal(t, "t-10", recent[len(recent)-1].ID)

	// El log original queda intacto (orden cronológico).
	assert.Equal(t, "t-00", all[0].ID)
}

func TestRecentCycles_KeepsHeadOfLog(t *testing.T) {
	all := make([]domain.Cycle, 60)
	for i := range all {
		all[i] = domain.Cycle{AgentID: fmt.Sprintf("a-%02d", i)}
	}

	recent := recentCycles(all)

	require.Len(t, recent, 50)
	assert.Equal(t, "a-00", recent[0].AgentID)
	assert.Equal(t, "a-49", recent[len(recent)-1].AgentID)
}
