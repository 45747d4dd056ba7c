package refbook

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// Book es la knowledge base de probabilidades de referencia: una lista
// ordenada de estimaciones con predicado de matching. La primera que
// acepta el título gana, así que el orden forma parte del contrato.
type Book struct {
	estimates []domain.Estimate
}

// New crea un Book con las estimaciones dadas, en ese orden.
func New(estimates []domain.Estimate) *Book {
	return &Book{estimates: estimates}
}

// FromYAML carga la tabla desde un fichero YAML (lista de estimaciones).
func FromYAML(path string) (*Book, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refbook.FromYAML: reading %s: %w", path, err)
	}
	var estimates []domain.Estimate
	if err := yaml.Unmarshal(raw, &estimates); err != nil {
		return nil, fmt.Errorf("refbook.FromYAML: parsing %s: %w", path, err)
	}
	return &Book{estimates: estimates}, nil
}

// Lookup devuelve la primera estimación cuyo predicado acepta el título.
func (b *Book) Lookup(title string) (domain.Estimate, bool) {
	for _, e := range b.estimates {
		if e.Matches(title) {
			return e, true
		}
	}
	return domain.Estimate{}, false
}

// Len devuelve el número de estimaciones cargadas.
func (b *Book) Len() int {
	return len(b.estimates)
}

// Default devuelve la tabla editorial de arranque. Las probabilidades son
// snapshots manuales de odds externas; se actualizan editando esta tabla
// o cargando un YAML propio.
func Default() *Book {
	return New([]domain.Estimate{
		{
			ID: "fed_march_nochange", Prob: 96, Source: "CME FedWatch",
			RequireAll: []string{"fed", "march"},
			RequireAny: []string{"no change", "hold", "unchanged"},
			Exclude:    []string{"chair", "nominate", "powell", "warsh", "decrease", "cut", "bps", "25", "50", "75", "100", "increase", "hike"},
		},
		{
			ID: "fed_april_nochange", Prob: 82, Source: "CME FedWatch",
			RequireAll: []string{"fed", "april"},
			RequireAny: []string{"no change", "hold", "unchanged"},
			Exclude:    []string{"chair", "nominate", "decrease", "cut", "bps", "increase", "hike"},
		},
		{
			ID: "fed_rate_cuts_2026", Prob: 47, Source: "CME FedWatch",
			RequireAll: []string{"fed", "rate", "cut"},
			RequireAny: []string{"2026", "by end of", "total"},
			Exclude:    []string{"chair", "nominate", "march", "april", "may", "january"},
		},
		{
			ID: "recession_2026", Prob: 30, Source: "RSM/JPMorgan consensus",
			RequireAll: []string{"recession"},
			RequireAny: []string{"2026", "us", "united states"},
			Exclude:    []string{"global", "china", "europe", "germany", "uk", "japan"},
		},
		{
			ID: "dem_house_2026", Prob: 85, Source: "Polling consensus",
			RequireAll: []string{"house"},
			RequireAny: []string{"democrat", "democratic party", "2026 midterm"},
			Exclude:    []string{"senate", "white house", "speaker", "majority leader"},
		},
		{
			ID: "china_taiwan_invade", Prob: 4, Source: "ASPI/CFR analysts",
			RequireAll: []string{"china", "taiwan"},
			RequireAny: []string{"invade", "invasion", "attack", "blockade"},
			Exclude:    []string{"gta", "game", "esport"},
		},
		{
			ID: "ukraine_ceasefire", Prob: 36, Source: "Brookings consensus",
			RequireAll: []string{"ceasefire"},
			RequireAny: []string{"ukraine", "russia"},
			Exclude:    []string{"israel", "iran", "gaza", "gta", "eurovision", "broken", "game"},
		},
		{
			ID: "arsenal_epl", Prob: 83, Source: "OddsChecker (-500)",
			RequireAll: []string{"arsenal", "premier league"},
			Exclude:    []string{"champions league", "ucl", "fa cup", "game", "esport"},
		},
		{
			ID: "f1_russell", Prob: 33, Source: "Ladbrokes (2/1)",
			RequireAll: []string{"russell"},
			RequireAny: []string{"f1", "formula 1", "drivers championship"},
			Exclude:    []string{"game", "esport", "lol", "valorant"},
		},
		{
			ID: "okc_nba", Prob: 30, Source: "Yahoo Sports (+230)",
			RequireAll: []string{"thunder"},
			RequireAny: []string{"nba", "nba champion"},
			Exclude:    []string{"game", "esport", "round", "series"},
		},
		{
			ID: "us_iran_strike", Prob: 78, Source: "Polymarket consensus",
			RequireAll: []string{"strike", "iran"},
			RequireAny: []string{"us", "united states", "israel"},
			Exclude:    []string{"next strike on", "february", "ceasefire broken", "game"},
		},
		{
			ID: "khamenei_out", Prob: 12, Source: "Expert consensus",
			RequireAll: []string{"khamenei"},
			RequireAny: []string{"out", "supreme leader", "leave", "no longer"},
			Exclude:    []string{"game"},
		},
		{
			ID: "openai_ipo", Prob: 50, Source: "Analyst reports",
			RequireAll: []string{"openai", "ipo"},
			Exclude:    []string{"market cap", "closing", "less than", "revenue"},
		},
		{
			ID: "spain_world_cup", Prob: 20, Source: "BetMGM (+400)",
			RequireAll: []string{"spain", "world cup"},
			Exclude:    []string{"game", "esport", "group stage"},
		},
		{
			ID: "warsh_fed_chair", Prob: 93, Source: "Market consensus",
			RequireAll: []string{"warsh"},
			RequireAny: []string{"fed chair", "nominate", "federal reserve", "chairman"},
			Exclude:    []string{"confirmed", "hassett", "rate", "cut", "bps"},
		},
	})
}
