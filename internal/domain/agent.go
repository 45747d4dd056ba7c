package domain

import (
	"math"
	"time"
)

// RiskParams are the per-agent strategy thresholds. Zero values mean the
// owning strategy does not use that knob.
type RiskParams struct {
	MinEdge          float64 `json:"min_edge,omitempty" yaml:"min_edge"`
	KellyFraction    float64 `json:"kelly_fraction" yaml:"kelly_fraction"`
	MinVolume        float64 `json:"min_volume,omitempty" yaml:"min_volume"`
	MinVolume24h     float64 `json:"min_volume_24h,omitempty" yaml:"min_volume_24h"`
	VolumeSurgeRatio float64 `json:"volume_surge_ratio,omitempty" yaml:"volume_surge_ratio"`
	MaxPositions     int     `json:"max_positions" yaml:"max_positions"`
	MinDaysToExpiry  float64 `json:"min_days_to_expiry,omitempty" yaml:"min_days_to_expiry"`
	MinSpread        float64 `json:"min_spread,omitempty" yaml:"min_spread"`
	LowThreshold     float64 `json:"low_threshold,omitempty" yaml:"low_threshold"`
	HighThreshold    float64 `json:"high_threshold,omitempty" yaml:"high_threshold"`
	MinMispricing    float64 `json:"min_mispricing,omitempty" yaml:"min_mispricing"`
}

// Profile es la configuración inmutable de un agente: identidad de display
// más la variante de estrategia y sus umbrales. El engine nunca la muta.
type Profile struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Emoji        string     `json:"emoji" yaml:"emoji"`
	Color        string     `json:"color" yaml:"color"`
	Title        string     `json:"title" yaml:"title"`
	Personality  string     `json:"personality" yaml:"personality"`
	Strategy     string     `json:"strategy" yaml:"strategy"`
	StrategyName string     `json:"strategy_name" yaml:"strategy_name"`
	Description  string     `json:"strategy_desc" yaml:"strategy_desc"`
	Params       RiskParams `json:"-" yaml:"params"`
}

// EquityCurveCap bounds the per-agent equity history to one week of
// hourly samples.
const EquityCurveCap = 168

// EquityPoint is one equity sample on an agent's curve.
type EquityPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// State is the mutable book of one agent: cash, open positions, counters
// and equity history. Mutated exactly once per cycle.
type State struct {
	Bankroll      float64       `json:"bankroll"`
	TotalTrades   int           `json:"total_trades"`
	WinningTrades int           `json:"winning_trades"`
	RealizedPnL   float64       `json:"total_pnl"`
	PeakEquity    float64       `json:"peak_bankroll"`
	Positions     []Position    `json:"positions"`
	EquityCurve   []EquityPoint `json:"equity_curve"`
}

// NewState arranca un agente con el bankroll inicial y un primer punto
// en la curva de equity.
func NewState(now time.Time) *State {
	return &State{
		Bankroll:    InitialBankroll,
		PeakEquity:  InitialBankroll,
		EquityCurve: []EquityPoint{{Time: now, Value: InitialBankroll}},
	}
}

// HasPosition reports whether an open position exists for the normalized
// market key.
func (s *State) HasPosition(normKey string) bool {
	for _, p := range s.Positions {
		if p.NormKey == normKey {
			return true
		}
	}
	return false
}

// OpenStake is the total capital committed to open positions.
func (s *State) OpenStake() float64 {
	var total float64
	for _, p := range s.Positions {
		total += p.Stake
	}
	return total
}

// AppendEquity adds one sample to the curve, evicting the oldest entries
// beyond EquityCurveCap. Values are stored rounded to cents.
func (s *State) AppendEquity(now time.Time, equity float64) {
	s.EquityCurve = append(s.EquityCurve, EquityPoint{
		Time:  now,
		Value: math.Round(equity*100) / 100,
	})
	if n := len(s.EquityCurve); n > EquityCurveCap {
		s.EquityCurve = s.EquityCurve[n-EquityCurveCap:]
	}
}

// WinRate is the percentage of settled winners over total trades.
func (s *State) WinRate() float64 {
	if s.TotalTrades == 0 {
		return 0
	}
	return float64(s.WinningTrades) / float64(s.TotalTrades) * 100
}
