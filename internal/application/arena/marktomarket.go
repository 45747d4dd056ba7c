package arena

import (
	"math"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// maxMarkJumpPP descarta re-marks con saltos implausibles: casi siempre
// son dos mercados distintos que normalizan a la misma clave, no un
// movimiento real de precio.
const maxMarkJumpPP = 15.0

// markToMarket actualiza la marca de cada posición abierta con el precio
// actual de su mercado (match exacto por clave normalizada; el primer
// snapshot con la clave gana) y devuelve el P&L no realizado total del
// agente. Posiciones sin match conservan su marca anterior.
func markToMarket(state *domain.State, u domain.Universe) float64 {
	marks := make(map[string]float64)
	for _, snap := range u.All() {
		if _, ok := marks[snap.NormKey]; !ok {
			marks[snap.NormKey] = snap.YesPct
		}
	}

	var unrealized float64
	for i := range state.Positions {
		pos := &state.Positions[i]
		if price, ok := marks[pos.NormKey]; ok && math.Abs(price-pos.CurrentPrice) <= maxMarkJumpPP {
			pos.CurrentPrice = price
		}
		unrealized += positionPnL(*pos)
	}
	return unrealized
}

// positionPnL calcula el P&L no realizado de una posición si se cerrase a
// la marca actual, con slippage de salida. ARB es aparte: su spread queda
// fijado a la entrada y el precio de marca no lo mueve.
func positionPnL(pos domain.Position) float64 {
	if pos.Direction == domain.Arb {
		if pos.Arb == nil {
			return 0
		}
		net := pos.Arb.Spread/100 - 2*domain.FeesPct/100
		return pos.Stake * math.Max(net, 0)
	}

	entry, current := pos.EntryPrice, pos.CurrentPrice
	if entry <= 0 || entry >= 100 || current <= 0 {
		return 0
	}

	exitSlip := 1 - domain.SlippagePct/100
	switch pos.Direction {
	case domain.BuyYes:
		shares := pos.Stake / (entry / 100)
		return shares*(current*exitSlip/100) - pos.Stake
	case domain.BuyNo:
		noEntry := 100 - entry
		if noEntry <= 0 {
			return 0
		}
		noCurrent := 100 - current
		shares := pos.Stake / (noEntry / 100)
		return shares*(noCurrent*exitSlip/100) - pos.Stake
	}
	return 0
}
