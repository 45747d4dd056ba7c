package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewState_SeedsBankrollAndCurve(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := NewState(now)

	assert.Equal(t, InitialBankroll, st.Bankroll)
	assert.Equal(t, InitialBankroll, st.PeakEquity)
	assert.Len(t, st.EquityCurve, 1)
	assert.Equal(t, InitialBankroll, st.EquityCurve[0].Value)
	assert.Empty(t, st.Positions)
}

func TestState_AppendEquityEvictsOldest(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	st := NewState(now)

	for i := 0; i < 200; i++ {
		st.AppendEquity(now.Add(time.Duration(i)*time.Hour), float64(10000+i))
	}

	assert.Len(t, st.EquityCurve, EquityCurveCap)
	// Sobreviven las 168 muestras más recientes: la última vale 10199.
	assert.Equal(t, 10199.0, st.EquityCurve[EquityCurveCap-1].Value)
	assert.Equal(t, 10032.0, st.EquityCurve[0].Value)
}

func TestState_AppendEquityRoundsToCents(t *testing.T) {
	st := NewState(time.Now())
	st.AppendEquity(time.Now(), 10123.45678)

	assert.Equal(t, 10123.46, st.EquityCurve[len(st.EquityCurve)-1].Value)
}

func TestState_HasPositionAndOpenStake(t *testing.T) {
	st := NewState(time.Now())
	st.Positions = append(st.Positions,
		Position{NormKey: "fed cut rates", Stake: 100},
		Position{NormKey: "us recession", Stake: 250.5},
	)

	assert.True(t, st.HasPosition("fed cut rates"))
	assert.False(t, st.HasPosition("arsenal premier league"))
	assert.InDelta(t, 350.5, st.OpenStake(), 0.001)
}

func TestState_WinRate(t *testing.T) {
	st := &State{}
	assert.Equal(t, 0.0, st.WinRate())

	st.TotalTrades = 4
	st.WinningTrades = 3
	assert.Equal(t, 75.0, st.WinRate())
}
