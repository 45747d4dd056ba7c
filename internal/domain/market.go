package domain

import (
	"regexp"
	"strings"
	"time"
)

// Venue identifica la plataforma de origen de un snapshot.
type Venue string

const (
	VenuePolymarket Venue = "Polymarket"
	VenueKalshi     Venue = "Kalshi"
)

// Snapshot es la foto puntual de un mercado binario en un venue.
// YesPct usa escala 0–100; un snapshot admitido siempre cumple YesPct > 0.
type Snapshot struct {
	Venue     Venue   `json:"platform"`
	Title     string  `json:"title"`
	NormKey   string  `json:"norm_key"` // clave canónica, calculada al ingerir
	YesPct    float64 `json:"yes_pct"`
	Volume    float64 `json:"volume"`
	Volume24h float64 `json:"volume_24hr"`
	Liquidity float64 `json:"liquidity"`
	Category  string  `json:"category"`
	EndDate   string  `json:"end_date"` // RFC3339; vacío o malformado = sin restricción
	URL       string  `json:"url"`
	Active    bool    `json:"active"`
	Closed    bool    `json:"closed"`
}

// DaysToExpiry devuelve los días hasta la resolución del mercado.
// ok=false si EndDate falta o no parsea — el filtro de expiry se salta (fail open).
func (s Snapshot) DaysToExpiry(now time.Time) (float64, bool) {
	if s.EndDate == "" {
		return 0, false
	}
	end, err := time.Parse(time.RFC3339, s.EndDate)
	if err != nil {
		return 0, false
	}
	return end.Sub(now).Hours() / 24, true
}

// esportsKeywords excluye mercados de esports y micro-eventos de partidas:
// ruido sin señal fundamental que contamina el matching por título.
var esportsKeywords = []string{
	"lol:", "dota", "csgo", "cs2", "valorant", "overwatch", "league of legends",
	"game winner", "map winner", "round winner", "esport", "fearx", "t1 vs",
	"gen.g", "cloud9", "fnatic vs", "navi vs", "g2 vs", "100 thieves",
	"total kills", "in game 1", "in game 2", "in game 3", "in game 4", "in game 5",
	"first blood", "first tower", "first baron", "dragon", "rift herald",
}

// Tradeable aplica la banda de precio [5,95] y la deny-list de esports.
func (s Snapshot) Tradeable() bool {
	if s.YesPct < MinTradeablePrice || s.YesPct > MaxTradeablePrice {
		return false
	}
	title := strings.ToLower(s.Title)
	for _, kw := range esportsKeywords {
		if strings.Contains(title, kw) {
			return false
		}
	}
	return true
}

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
	titleNoise   = []string{
		"will ", "what ", "who ", "which ", "when ", "how ", "the ",
		"by end of ", "before ", "in 2026", "in 2025", "in 2027",
	}
)

// NormalizeTitle canonicaliza un título de mercado para matching cross-venue
// y dedup de posiciones. Determinista e idempotente.
func NormalizeTitle(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	t = nonAlnumRe.ReplaceAllString(t, "")
	t = multiSpaceRe.ReplaceAllString(t, " ")
	for _, noise := range titleNoise {
		t = strings.ReplaceAll(t, noise, "")
	}
	return strings.TrimSpace(t)
}

// KeywordOverlap mide el solape de palabras entre dos títulos normalizados:
// |intersección| / min(|set A|, |set B|). Rango [0,1].
func KeywordOverlap(t1, t2 string) float64 {
	words1 := wordSet(t1)
	words2 := wordSet(t2)
	if len(words1) == 0 || len(words2) == 0 {
		return 0
	}
	shared := 0
	for w := range words1 {
		if words2[w] {
			shared++
		}
	}
	m := len(words1)
	if len(words2) < m {
		m = len(words2)
	}
	return float64(shared) / float64(m)
}

func wordSet(t string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(t) {
		set[w] = true
	}
	return set
}

// categoryKeywords mapea palabras clave a categorías de display.
// El orden importa: la primera categoría que matchea gana.
var categoryKeywords = []struct {
	name string
	kws  []string
}{
	{"Politics", []string{"election", "trump", "democrat", "republican", "house", "senate", "congress", "president", "governor", "vote", "impeach", "nominate", "fed chair"}},
	{"Economics", []string{"fed", "rate", "inflation", "cpi", "gdp", "recession", "unemployment", "bitcoin", "crypto", "s&p", "stock", "gold", "tariff"}},
	{"Geopolitics", []string{"war", "ceasefire", "ukraine", "russia", "china", "taiwan", "iran", "strike", "nuclear", "nato", "invasion", "khamenei"}},
	{"Sports", []string{"nba", "nfl", "mlb", "nhl", "f1", "formula", "premier league", "champions league", "world cup", "march madness", "ncaa", "pga", "masters", "super bowl", "arsenal", "manchester"}},
	{"Tech", []string{"ai", "gpt", "claude", "gemini", "openai", "anthropic", "google", "spacex", "tesla", "nvidia", "apple", "ipo", "tech"}},
	{"Entertainment", []string{"oscar", "grammy", "emmy", "box office", "movie", "film", "actor", "actress", "director"}},
}

// GuessCategory infiere la categoría de display desde el título.
func GuessCategory(title string) string {
	t := strings.ToLower(title)
	for _, cat := range categoryKeywords {
		for _, kw := range cat.kws {
			if strings.Contains(t, kw) {
				return cat.name
			}
		}
	}
	return "Other"
}

// VenueData agrupa los snapshots de un venue con el resultado del fetch.
// OK=false distingue "fetch falló" de "mercado legítimamente vacío".
type VenueData struct {
	Snapshots []Snapshot `json:"snapshots"`
	OK        bool       `json:"ok"`
}

// Available devuelve true si el fetch funcionó y hay al menos un snapshot.
func (v VenueData) Available() bool {
	return v.OK && len(v.Snapshots) > 0
}

// Universe es la colección read-only de snapshots de un ciclo, por venue.
type Universe struct {
	Polymarket VenueData `json:"polymarket"`
	Kalshi     VenueData `json:"kalshi"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Venue devuelve los datos del venue pedido.
func (u Universe) Venue(v Venue) VenueData {
	switch v {
	case VenuePolymarket:
		return u.Polymarket
	case VenueKalshi:
		return u.Kalshi
	}
	return VenueData{}
}

// All devuelve todos los snapshots combinados (Polymarket primero).
func (u Universe) All() []Snapshot {
	all := make([]Snapshot, 0, len(u.Polymarket.Snapshots)+len(u.Kalshi.Snapshots))
	all = append(all, u.Polymarket.Snapshots...)
	all = append(all, u.Kalshi.Snapshots...)
	return all
}

// TotalMarkets es el número total de snapshots del ciclo.
func (u Universe) TotalMarkets() int {
	return len(u.Polymarket.Snapshots) + len(u.Kalshi.Snapshots)
}

// TruncateTitle recorta un título a maxLen caracteres para display.
func TruncateTitle(title string, maxLen int) string {
	if len(title) <= maxLen {
		return title
	}
	if maxLen <= 3 {
		return title[:maxLen]
	}
	return title[:maxLen-3] + "..."
}
