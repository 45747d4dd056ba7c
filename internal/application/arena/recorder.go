package arena

import (
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// Caps de los logs globales. El de trades es cronológico y conserva la
// cola; el de ciclos va de más reciente a más antiguo y conserva la
// cabeza. 360 ciclos cubren unas dos semanas al ritmo por defecto.
const (
	TradeLogCap = 500
	CycleLogCap = 360
)

// buildCycle condensa el pase de un agente en su registro de auditoría.
// TRADE lleva la lista de razones vacía, nunca nil: el dashboard la
// itera sin comprobar. HOLD reporta cada código distinto que disparó,
// con su cuenta, ordenado de más fuerte a más débil. Un HOLD sin
// rechazos con código es el caso por defecto: nada pasó los filtros.
func buildCycle(now time.Time, agentID string, admitted []domain.Trade, rejections []rejection) domain.Cycle {
	c := domain.Cycle{
		Timestamp:   now,
		AgentID:     agentID,
		Decision:    domain.DecisionHold,
		HoldReasons: []domain.ReasonCount{},
		TradeIDs:    []string{},
	}

	if len(admitted) > 0 {
		c.Decision = domain.DecisionTrade
		for _, t := range admitted {
			c.TradeIDs = append(c.TradeIDs, t.ID)
		}
		return c
	}

	counts := make(map[domain.HoldReason]int)
	for _, r := range rejections {
		counts[r.reason]++
	}
	if len(counts) == 0 {
		counts[domain.ReasonNoQualifyingEdge] = 1
	}
	for reason, n := range counts {
		c.HoldReasons = append(c.HoldReasons, domain.ReasonCount{Reason: reason, Count: n})
	}
	domain.SortReasons(c.HoldReasons)
	return c
}

// appendTrades añade los trades nuevos al final del log global y lo
// recorta al cap conservando los más recientes.
func appendTrades(log []domain.Trade, fresh []domain.Trade) []domain.Trade {
	log = append(log, fresh...)
	if n := len(log); n > TradeLogCap {
		log = log[n-TradeLogCap:]
	}
	return log
}

// prependCycles inserta los registros del ciclo al frente del log global
// y lo recorta al cap.
func prependCycles(log []domain.Cycle, fresh []domain.Cycle) []domain.Cycle {
	merged := make([]domain.Cycle, 0, len(fresh)+len(log))
	merged = append(merged, fresh...)
	merged = append(merged, log...)
	if len(merged) > CycleLogCap {
		merged = merged[:CycleLogCap]
	}
	return merged
}
