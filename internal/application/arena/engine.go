// Package arena implementa el núcleo de decisión del simulador: en cada
// ciclo los agentes evalúan el mismo universo de mercados, el coordinador
// admite sus propuestas bajo caps y las posiciones abiertas se re-marcan
// a precio actual. El paquete es el único punto de entrada para el
// scheduler y la API HTTP.
package arena

import (
	"log/slog"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
	"github.com/alejandrodnm/botarena/internal/domain/strategy"
)

// Engine ejecuta el pase de decisión de un ciclo. Es puro: no hace I/O,
// recibe el reloj como argumento y nunca devuelve error. El fallo de una
// variante se aísla al agente afectado; los demás siguen su pase normal.
type Engine struct {
	registry *strategy.Registry
}

// NewEngine crea el engine sobre el registry de variantes dado.
func NewEngine(reg *strategy.Registry) *Engine {
	return &Engine{registry: reg}
}

// Outcome agrega el resultado de un ciclo: estados mutados, trades nuevos
// en orden de admisión y un registro de auditoría por agente.
type Outcome struct {
	States    map[string]*domain.State
	Agents    []AgentSummary
	NewTrades []domain.Trade
	Cycles    []domain.Cycle
	Now       time.Time
}

// AgentSummary condensa las métricas derivadas de un agente tras su pase.
// Los valores van sin redondear; el shaping para display vive en report.go.
type AgentSummary struct {
	Profile       domain.Profile
	State         *domain.State
	UnrealizedPnL float64
	TotalEquity   float64
	NewTrades     []domain.Trade
	Cycle         domain.Cycle
}

// RunCycle procesa los agentes secuencialmente contra el mismo universo y
// el mismo timestamp. Los agentes son independientes entre sí: no comparten
// estado mutable y el orden del roster no altera sus decisiones.
//
// Por agente: chequeo de dependencias de datos → propuestas de la variante
// → admisión bajo caps → mark-to-market → muestra de equity. Un agente sin
// estado previo arranca con el bankroll inicial.
func (e *Engine) RunCycle(profiles []domain.Profile, u domain.Universe, states map[string]*domain.State, now time.Time) *Outcome {
	if states == nil {
		states = make(map[string]*domain.State)
	}
	out := &Outcome{States: states, Now: now}

	for _, p := range profiles {
		strat, ok := e.registry.Get(p.Strategy)
		if !ok {
			slog.Warn("unknown strategy, agent skipped", "agent", p.ID, "strategy", p.Strategy)
			continue
		}

		state, ok := states[p.ID]
		if !ok {
			state = domain.NewState(now)
			states[p.ID] = state
		}

		proposals, rejections := e.propose(strat, p, u, state, now)
		admitted, capRejections := admitTrades(p, state, proposals, now)
		rejections = append(rejections, capRejections...)

		unrealized := markToMarket(state, u)
		equity := state.Bankroll + state.OpenStake() + unrealized
		if equity > state.PeakEquity {
			state.PeakEquity = equity
		}
		state.AppendEquity(now, equity)

		cycle := buildCycle(now, p.ID, admitted, rejections)

		out.NewTrades = append(out.NewTrades, admitted...)
		out.Cycles = append(out.Cycles, cycle)
		out.Agents = append(out.Agents, AgentSummary{
			Profile:       p,
			State:         state,
			UnrealizedPnL: unrealized,
			TotalEquity:   equity,
			NewTrades:     admitted,
			Cycle:         cycle,
		})
	}
	return out
}

// propose pide propuestas a la variante tras verificar sus dependencias de
// datos. Un venue requerido sin datos este ciclo degrada al agente a HOLD
// con DEPENDENCY_DATA_UNAVAILABLE sin llegar a evaluar la variante. Un
// error interno de la variante la deja en cero propuestas; el resto del
// pase (mark-to-market, equity) continúa igual.
func (e *Engine) propose(strat strategy.Strategy, p domain.Profile, u domain.Universe, state *domain.State, now time.Time) ([]domain.Proposal, []rejection) {
	var rejections []rejection
	for _, v := range strat.RequiredVenues() {
		if !u.Venue(v).Available() {
			slog.Warn("venue data unavailable, agent holds", "agent", p.ID, "venue", v)
			rejections = append(rejections, rejection{reason: domain.ReasonDependencyUnavailable})
		}
	}
	if len(rejections) > 0 {
		return nil, rejections
	}

	proposals, err := strat.Propose(p, u, state, now)
	if err != nil {
		slog.Warn("strategy failed, agent holds this cycle",
			"agent", p.ID,
			"strategy", strat.Tag(),
			"err", err,
		)
		return nil, nil
	}
	return proposals, nil
}
