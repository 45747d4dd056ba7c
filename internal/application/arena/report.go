package arena

import (
	"math"
	"sort"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// Result es el payload completo de un ciclo, listo para servir por la API
// o volcar a consola. Los nombres JSON los consume el dashboard tal cual.
type Result struct {
	Timestamp        int64          `json:"timestamp"`
	LastUpdated      string         `json:"lastUpdated"`
	LastUpdatedHuman string         `json:"lastUpdatedHuman"`
	TotalMarkets     int            `json:"totalMarkets"`
	PolymarketCount  int            `json:"polymarketCount"`
	KalshiCount      int            `json:"kalshiCount"`
	Agents           []AgentRow     `json:"bots"`
	RecentTrades     []domain.Trade `json:"recentTrades"`
	RecentCycles     []domain.Cycle `json:"recentCycles"`
	NewTradesCount   int            `json:"newTradesCount"`
}

// AgentRow es la fila de un agente en el leaderboard: identidad de display
// más las métricas del ciclo, ya redondeadas.
type AgentRow struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Emoji         string               `json:"emoji"`
	Color         string               `json:"color"`
	Title         string               `json:"title"`
	Personality   string               `json:"personality"`
	Strategy      string               `json:"strategy"`
	StrategyName  string               `json:"strategy_name"`
	Description   string               `json:"strategy_desc"`
	Bankroll      float64              `json:"bankroll"`
	TotalEquity   float64              `json:"total_equity"`
	TotalTrades   int                  `json:"total_trades"`
	WinningTrades int                  `json:"winning_trades"`
	WinRate       float64              `json:"win_rate"`
	RealizedPnL   float64              `json:"total_pnl"`
	UnrealizedPnL float64              `json:"unrealized_pnl"`
	ReturnPct     float64              `json:"return_pct"`
	PeakEquity    float64              `json:"peak_bankroll"`
	DrawdownPct   float64              `json:"drawdown_pct"`
	OpenPositions int                  `json:"open_positions"`
	Positions     []domain.Position    `json:"positions"`
	EquityCurve   []domain.EquityPoint `json:"equity_curve"`
	NewTrades     []domain.Trade       `json:"new_trades"`
	Params        domain.RiskParams    `json:"strategy_params"`
	LatestCycle   domain.Cycle         `json:"latest_cycle"`
}

const (
	updatedLayout   = "2006-01-02T15:04:05Z"
	humanLayout     = "02 Jan 2006 15:04 GMT"
	recentTradesMax = 50
	recentCyclesMax = 50
)

// buildResult arma el payload de display a partir del outcome del engine,
// el universo del ciclo y los logs globales ya actualizados.
func buildResult(out *Outcome, u domain.Universe, allTrades []domain.Trade, allCycles []domain.Cycle) *Result {
	res := &Result{
		Timestamp:        out.Now.Unix(),
		LastUpdated:      out.Now.UTC().Format(updatedLayout),
		LastUpdatedHuman: out.Now.UTC().Format(humanLayout),
		TotalMarkets:     u.TotalMarkets(),
		PolymarketCount:  len(u.Polymarket.Snapshots),
		KalshiCount:      len(u.Kalshi.Snapshots),
		Agents:           make([]AgentRow, 0, len(out.Agents)),
		RecentTrades:     recentTrades(allTrades),
		RecentCycles:     recentCycles(allCycles),
		NewTradesCount:   len(out.NewTrades),
	}
	for _, a := range out.Agents {
		res.Agents = append(res.Agents, agentRow(a))
	}
	return res
}

// agentRow proyecta el resumen de un agente a su fila de display.
func agentRow(a AgentSummary) AgentRow {
	s := a.State
	row := AgentRow{
		ID:            a.Profile.ID,
		Name:          a.Profile.Name,
		Emoji:         a.Profile.Emoji,
		Color:         a.Profile.Color,
		Title:         a.Profile.Title,
		Personality:   a.Profile.Personality,
		Strategy:      a.Profile.Strategy,
		StrategyName:  a.Profile.StrategyName,
		Description:   a.Profile.Description,
		Bankroll:      round2(s.Bankroll),
		TotalEquity:   round2(a.TotalEquity),
		TotalTrades:   s.TotalTrades,
		WinningTrades: s.WinningTrades,
		WinRate:       round1(s.WinRate()),
		RealizedPnL:   round2(s.RealizedPnL),
		UnrealizedPnL: round2(a.UnrealizedPnL),
		ReturnPct:     round2((a.TotalEquity - domain.InitialBankroll) / domain.InitialBankroll * 100),
		PeakEquity:    round2(s.PeakEquity),
		OpenPositions: len(s.Positions),
		Positions:     s.Positions,
		EquityCurve:   s.EquityCurve,
		NewTrades:     a.NewTrades,
		Params:        a.Profile.Params,
		LatestCycle:   a.Cycle,
	}
	if s.PeakEquity > 0 {
		row.DrawdownPct = round2((s.PeakEquity - a.TotalEquity) / s.PeakEquity * 100)
	}
	if row.Positions == nil {
		row.Positions = []domain.Position{}
	}
	if row.NewTrades == nil {
		row.NewTrades = []domain.Trade{}
	}
	return row
}

// recentCycles devuelve la cabeza del log de ciclos, que ya viene más
// reciente primero.
func recentCycles(all []domain.Cycle) []domain.Cycle {
	head := all
	if len(head) > recentCyclesMax {
		head = head[:recentCyclesMax]
	}
	recent := make([]domain.Cycle, len(head))
	copy(recent, head)
	return recent
}

// recentTrades devuelve los últimos trades del log, más recientes primero.
func recentTrades(all []domain.Trade) []domain.Trade {
	tail := all
	if len(tail) > recentTradesMax {
		tail = tail[len(tail)-recentTradesMax:]
	}
	recent := make([]domain.Trade, len(tail))
	copy(recent, tail)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	return recent
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
