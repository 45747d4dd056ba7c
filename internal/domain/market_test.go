package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// --- Normalización de títulos ---

func TestNormalizeTitle_StripsNoiseAndPunctuation(t *testing.T) {
	got := NormalizeTitle("Will the Fed cut rates in 2026?")

	assert.Equal(t, "fed cut rates", got)
}

func TestNormalizeTitle_Idempotent(t *testing.T) {
	titles := []string{
		"Will the Fed cut rates in 2026?",
		"Who will win the 2026 World Cup?",
		"US recession before 2027",
		"  Arsenal to win   the Premier League!  ",
		"",
	}
	for _, title := range titles {
		once := NormalizeTitle(title)
		assert.Equal(t, once, NormalizeTitle(once), "title %q", title)
	}
}

func TestKeywordOverlap_Ratios(t *testing.T) {
	assert.Equal(t, 1.0, KeywordOverlap("fed cut rates", "fed cut rates"))
	assert.Equal(t, 1.0, KeywordOverlap("fed cut rates", "fed cut rates march"))
	assert.Equal(t, 0.5, KeywordOverlap("fed rates", "fed hike"))
	assert.Equal(t, 0.0, KeywordOverlap("fed cut rates", "arsenal premier league"))
	assert.Equal(t, 0.0, KeywordOverlap("", "fed"))
}

// --- Filtro de operabilidad ---

func TestSnapshotTradeable_PriceBand(t *testing.T) {
	cases := []struct {
		price float64
		want  bool
	}{
		{4.9, false},
		{5.0, true},
		{50.0, true},
		{95.0, true},
		{95.1, false},
	}
	for _, tc := range cases {
		s := Snapshot{Title: "US recession this year", YesPct: tc.price}
		assert.Equal(t, tc.want, s.Tradeable(), "price %.1f", tc.price)
	}
}

func TestSnapshotTradeable_RejectsEsports(t *testing.T) {
	blocked := []string{
		"LoL: T1 vs Gen.G — game winner",
		"CS2 Major: first blood in game 3",
		"Valorant champions map winner",
	}
	for _, title := range blocked {
		s := Snapshot{Title: title, YesPct: 50}
		assert.False(t, s.Tradeable(), "title %q", title)
	}

	s := Snapshot{Title: "US recession this year", YesPct: 50}
	assert.True(t, s.Tradeable())
}

func TestSnapshot_DaysToExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	s := Snapshot{EndDate: "2026-03-08T00:00:00Z"}
	days, ok := s.DaysToExpiry(now)
	assert.True(t, ok)
	assert.InDelta(t, 7.0, days, 0.001)

	_, ok = Snapshot{EndDate: ""}.DaysToExpiry(now)
	assert.False(t, ok)

	_, ok = Snapshot{EndDate: "next tuesday"}.DaysToExpiry(now)
	assert.False(t, ok)
}

func TestGuessCategory_KeywordBuckets(t *testing.T) {
	assert.Equal(t, "Politics", GuessCategory("Will Trump win the nomination?"))
	assert.Equal(t, "Economics", GuessCategory("Bitcoin above 100k"))
	assert.Equal(t, "Geopolitics", GuessCategory("Russia Ukraine ceasefire"))
	assert.Equal(t, "Other", GuessCategory("Something unclassifiable"))
}

// --- Universo ---

func TestUniverse_VenueAvailability(t *testing.T) {
	u := Universe{
		Polymarket: VenueData{Snapshots: []Snapshot{{Title: "x"}}, OK: true},
		Kalshi:     VenueData{Snapshots: nil, OK: true},
	}

	assert.True(t, u.Venue(VenuePolymarket).Available())
	assert.False(t, u.Venue(VenueKalshi).Available(), "empty venue is unavailable")
	assert.False(t, VenueData{Snapshots: []Snapshot{{}}, OK: false}.Available(), "failed fetch is unavailable")

	assert.Equal(t, 1, u.TotalMarkets())
	assert.Len(t, u.All(), 1)
}
