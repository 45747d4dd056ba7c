package kalshi

import "strconv"

// DTOs raw de la trade API de Kalshi. Solo se usan dentro de este paquete;
// la conversión a domain entities se hace en markets.go.

// marketsResponse es la respuesta paginada de GET /markets.
type marketsResponse struct {
	Markets []market `json:"markets"`
	Cursor  string   `json:"cursor"`
}

// market es un mercado binario de Kalshi. Los precios van en centavos
// (0–100); los campos *_dollars llegan como strings decimales.
type market struct {
	Ticker           string  `json:"ticker"`
	EventTicker      string  `json:"event_ticker"`
	Title            string  `json:"title"`
	Category         string  `json:"category"`
	YesPrice         float64 `json:"yes_price"`
	YesBid           float64 `json:"yes_bid"`
	YesAsk           float64 `json:"yes_ask"`
	LastPrice        float64 `json:"last_price"`
	Volume           float64 `json:"volume"`
	OpenInterest     float64 `json:"open_interest"`
	CloseTime        string  `json:"close_time"`
	ExpirationTime   string  `json:"expiration_time"`
	YesBidDollars    string  `json:"yes_bid_dollars"`
	YesAskDollars    string  `json:"yes_ask_dollars"`
	LastPriceDollars string  `json:"last_price_dollars"`
}

// resolveYesPct aplica la cadena de fallbacks de precio. Los books de un
// solo lado son habituales en mercados ilíquidos: se resuelven con el lado
// cotizado en vez de descartarse como precio cero.
//
// Orden: yes_price → midpoint(bid, ask) con ambos lados → ask solo →
// bid solo → last_price → variantes en dólares × 100.
func (m market) resolveYesPct() float64 {
	candidates := []float64{
		m.YesPrice,
		midpoint(m.YesBid, m.YesAsk),
		m.YesAsk,
		m.YesBid,
		m.LastPrice,
	}

	bidUSD := parseDollars(m.YesBidDollars)
	askUSD := parseDollars(m.YesAskDollars)
	candidates = append(candidates,
		midpoint(bidUSD, askUSD)*100,
		askUSD*100,
		bidUSD*100,
		parseDollars(m.LastPriceDollars)*100,
	)

	for _, p := range candidates {
		if p > 0 && p <= 100 {
			return p
		}
	}
	return 0
}

// midpoint devuelve el punto medio solo cuando ambos lados están cotizados.
func midpoint(bid, ask float64) float64 {
	if bid > 0 && ask > 0 {
		return (bid + ask) / 2
	}
	return 0
}

// parseDollars convierte un campo *_dollars ("0.5500") a float.
func parseDollars(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
