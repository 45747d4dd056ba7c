package polymarket

import (
	"math"

	"github.com/tidwall/gjson"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// parseEvents aplana el payload de /events en snapshots de dominio.
// El root puede ser una lista o venir envuelto en {"data": [...]}.
func parseEvents(body []byte) []domain.Snapshot {
	root := gjson.ParseBytes(body)
	events := root
	if root.IsObject() {
		events = root.Get("data")
	}

	var snaps []domain.Snapshot
	events.ForEach(func(_, event gjson.Result) bool {
		event.Get("markets").ForEach(func(_, market gjson.Result) bool {
			if snap, ok := snapshotFromMarket(event, market); ok {
				snaps = append(snaps, snap)
			}
			return true
		})
		return true
	})
	return snaps
}

// snapshotFromMarket mapea un mercado binario de Gamma a Snapshot.
// ok=false si el mercado no trae un precio YES utilizable.
func snapshotFromMarket(event, market gjson.Result) (domain.Snapshot, bool) {
	prices := market.Get("outcomePrices")
	if prices.Type == gjson.String {
		// A veces llega como string JSON: "[\"0.35\", \"0.65\"]"
		prices = gjson.Parse(prices.String())
	}
	arr := prices.Array()
	if len(arr) < 2 {
		return domain.Snapshot{}, false
	}

	yes := arr[0].Float() * 100
	if yes <= 0 {
		return domain.Snapshot{}, false
	}

	title := market.Get("question").String()
	if title == "" {
		title = event.Get("title").String()
	}

	category := event.Get("tags.0.label").String()
	if category == "" {
		category = domain.GuessCategory(title)
	}

	active := true
	if a := market.Get("active"); a.Exists() {
		active = a.Bool()
	}

	return domain.Snapshot{
		Venue:     domain.VenuePolymarket,
		Title:     title,
		NormKey:   domain.NormalizeTitle(title),
		YesPct:    math.Round(yes*10) / 10,
		Volume:    firstNumber(market, "volumeNum", "volume"),
		Volume24h: market.Get("volume24hr").Float(),
		Liquidity: firstNumber(market, "liquidityNum", "liquidity"),
		Category:  category,
		EndDate:   market.Get("endDate").String(),
		URL:       "https://polymarket.com/event/" + event.Get("slug").String(),
		Active:    active,
		Closed:    market.Get("closed").Bool(),
	}, true
}

// firstNumber devuelve el primer campo presente de la lista, como float.
func firstNumber(r gjson.Result, keys ...string) float64 {
	for _, key := range keys {
		if v := r.Get(key); v.Exists() {
			return v.Float()
		}
	}
	return 0
}
