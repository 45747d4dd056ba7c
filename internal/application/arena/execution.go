package arena

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// rejection es un rechazo del coordinador con el código que lo causó.
// Los duplicados de mercado se descartan en silencio: no llevan código
// y no aparecen en el registro del ciclo.
type rejection struct {
	reason domain.HoldReason
}

// admitTrades aplica las propuestas de un agente en orden de ranking y
// muta su estado: debita el stake, cuenta el trade y abre la posición.
//
// El cap de posiciones se comprueba antes que el dedup: un agente lleno
// reporta AT_MAX_POSITIONS por cada propuesta restante aunque alguna
// fuese además duplicada. Las claves admitidas entran al set de dedup al
// momento, así dos propuestas del mismo ciclo sobre el mismo mercado
// nunca se admiten ambas.
func admitTrades(p domain.Profile, state *domain.State, proposals []domain.Proposal, now time.Time) ([]domain.Trade, []rejection) {
	held := make(map[string]bool, len(state.Positions))
	for _, pos := range state.Positions {
		held[pos.NormKey] = true
	}

	var admitted []domain.Trade
	var rejections []rejection

	for i, prop := range proposals {
		if len(state.Positions) >= p.Params.MaxPositions {
			for range proposals[i:] {
				rejections = append(rejections, rejection{reason: domain.ReasonAtMaxPositions})
			}
			break
		}
		if held[prop.NormKey] {
			continue
		}

		trade := openTrade(p, prop, now)
		admitted = append(admitted, trade)

		state.Bankroll -= prop.Stake
		state.TotalTrades++
		state.Positions = append(state.Positions, domain.Position{
			TradeID:      trade.ID,
			Market:       prop.Market,
			NormKey:      prop.NormKey,
			Direction:    prop.Direction,
			EntryPrice:   trade.EntryPrice,
			CurrentPrice: prop.MarketPrice, // marca inicial: precio de mercado sin slippage
			Stake:        prop.Stake,
			OpenedAt:     now,
			Venue:        prop.Venue,
			URL:          prop.URL,
			Arb:          prop.Arb,
		})
		held[prop.NormKey] = true
	}
	return admitted, rejections
}

// openTrade materializa una propuesta como registro persistente, con el
// precio de entrada ya deslizado contra el agente.
func openTrade(p domain.Profile, prop domain.Proposal, now time.Time) domain.Trade {
	entry := math.Round(domain.ApplySlippage(prop.MarketPrice, prop.Direction)*100) / 100
	return domain.Trade{
		ID:            newTradeID(),
		AgentID:       p.ID,
		AgentName:     p.Name,
		Timestamp:     now,
		Market:        prop.Market,
		NormKey:       prop.NormKey,
		Venue:         prop.Venue,
		URL:           prop.URL,
		Category:      prop.Category,
		Direction:     prop.Direction,
		EntryPrice:    entry,
		MarketPrice:   prop.MarketPrice,
		EstimatedProb: prop.EstimatedProb,
		EdgePP:        prop.EdgePP,
		Stake:         prop.Stake,
		KellyFraction: prop.KellyFraction,
		Source:        prop.Source,
		Rationale:     prop.Rationale,
		Confidence:    prop.Confidence,
		Status:        domain.TradeOpen,
		Arb:           prop.Arb,
	}
}

// newTradeID genera un id corto (12 hex) legible en logs y URLs.
func newTradeID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
