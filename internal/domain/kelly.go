package domain

import "math"

// Constantes de riesgo del simulador. Precios y probabilidades en escala 0–100
// salvo donde se indique lo contrario.
const (
	// Banda de precios operables: fuera de [5,95] el payoff no compensa.
	MinTradeablePrice = 5.0
	MaxTradeablePrice = 95.0

	// MaxStakePerTrade es el techo absoluto por trade en dólares.
	MaxStakePerTrade = 800.0

	// maxBankrollFrac limita cada trade a una fracción del bankroll libre.
	maxBankrollFrac = 0.15

	// SlippagePct simula el deslizamiento de precio al cruzar el book.
	SlippagePct = 2.0

	// FeesPct es la comisión aplicada sobre el importe apostado.
	FeesPct = 1.0

	// InitialBankroll es el capital inicial de cada agente.
	InitialBankroll = 10000.0
)

// KellyStake dimensiona una apuesta con el criterio de Kelly fraccional.
//
// Para cada lado del binario: b = 1/precio − 1 (odds netas) y
// f = (b·p − (1−p)) / b. Se elige el lado con fracción positiva mayor
// (empate resuelve a YES). La apuesta se recorta a
// min(bankroll×0.15, MaxStakePerTrade) y se descuenta la comisión.
//
// estProb y marketPrice van en escala 0–1. Devuelve (0, "") si alguna
// probabilidad está a menos de 0.01 de los extremos o si ningún lado
// tiene fracción positiva.
func KellyStake(estProb, marketPrice, bankroll, fraction float64) (float64, Direction) {
	if estProb <= 0.01 || estProb >= 0.99 || marketPrice <= 0.01 || marketPrice >= 0.99 {
		return 0, ""
	}

	bYes := (1 / marketPrice) - 1
	fYes := (bYes*estProb - (1 - estProb)) / bYes

	noPrice := 1 - marketPrice
	noProb := 1 - estProb
	bNo := (1 / noPrice) - 1
	fNo := (bNo*noProb - (1 - noProb)) / bNo

	switch {
	case fYes > 0 && fYes >= fNo:
		return clampStake(bankroll*fYes*fraction, bankroll), BuyYes
	case fNo > 0:
		return clampStake(bankroll*fNo*fraction, bankroll), BuyNo
	}
	return 0, ""
}

func clampStake(bet, bankroll float64) float64 {
	bet = math.Min(bet, math.Min(bankroll*maxBankrollFrac, MaxStakePerTrade))
	bet *= 1 - FeesPct/100
	return math.Round(bet*100) / 100
}

// ApplySlippage desplaza el precio de entrada contra el agente: sube para
// BUY_YES (techo 99), baja para BUY_NO (suelo 1) y deja ARB intacto.
func ApplySlippage(marketPrice float64, dir Direction) float64 {
	slip := SlippagePct / 100
	switch dir {
	case BuyYes:
		return math.Min(marketPrice*(1+slip), 99)
	case BuyNo:
		return math.Max(marketPrice*(1-slip), 1)
	}
	return marketPrice
}
