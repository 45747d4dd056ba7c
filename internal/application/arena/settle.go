package arena

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/alejandrodnm/botarena/internal/domain"
)

var (
	// ErrUnknownAgent indica que el agente no existe en el estado guardado.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrUnknownPosition indica que el agente no tiene abierta esa posición.
	ErrUnknownPosition = errors.New("no open position with that trade id")
)

// SettleTrade cierra una posición abierta contra el resultado final de su
// mercado: acredita stake más P&L al bankroll, fija el P&L realizado del
// trade y lo marca WON o LOST. La posición desaparece del libro del
// agente. A diferencia del ciclo, esta operación sí devuelve error: es un
// comando explícito del operador y un fallo debe ser visible.
func (r *Runner) SettleTrade(ctx context.Context, agentID, tradeID string, won bool) (*domain.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	states, err := r.store.LoadStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("arena.SettleTrade: load states: %w", err)
	}
	state, ok := states[agentID]
	if !ok {
		return nil, fmt.Errorf("arena.SettleTrade: %w: %q", ErrUnknownAgent, agentID)
	}

	idx := -1
	for i, pos := range state.Positions {
		if pos.TradeID == tradeID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("arena.SettleTrade: %w: agent %q, trade %q", ErrUnknownPosition, agentID, tradeID)
	}

	pos := state.Positions[idx]
	pnl := math.Round(settlementPnL(pos, won)*100) / 100

	state.Positions = append(state.Positions[:idx], state.Positions[idx+1:]...)
	state.Bankroll += pos.Stake + pnl
	state.RealizedPnL += pnl
	if won {
		state.WinningTrades++
	}

	status := domain.TradeWon
	if !won {
		status = domain.TradeLost
	}

	trades, err := r.store.LoadTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("arena.SettleTrade: load trades: %w", err)
	}
	settled := domain.Trade{ID: tradeID, AgentID: agentID, Status: status, PnL: pnl}
	for i := range trades {
		if trades[i].ID == tradeID {
			trades[i].Status = status
			trades[i].PnL = pnl
			settled = trades[i]
			break
		}
	}

	if err := r.store.SaveStates(ctx, states); err != nil {
		return nil, fmt.Errorf("arena.SettleTrade: save states: %w", err)
	}
	if err := r.store.SaveTrades(ctx, trades); err != nil {
		return nil, fmt.Errorf("arena.SettleTrade: save trades: %w", err)
	}
	return &settled, nil
}

// settlementPnL calcula el P&L realizado de una posición al resolverse su
// mercado. Un ganador cobra $1 por share; un perdedor pierde el stake
// entero. ARB cobra el spread neto fijado a la entrada con independencia
// del lado ganador: el flag won solo decide si cuenta como acierto.
func settlementPnL(pos domain.Position, won bool) float64 {
	if pos.Direction == domain.Arb {
		if pos.Arb == nil {
			return 0
		}
		return pos.Stake * math.Max(pos.Arb.Spread/100-2*domain.FeesPct/100, 0)
	}
	if !won {
		return -pos.Stake
	}

	entry := pos.EntryPrice
	if pos.Direction == domain.BuyNo {
		entry = 100 - entry
	}
	if entry <= 0 {
		return 0
	}
	shares := pos.Stake / (entry / 100)
	return shares - pos.Stake
}
