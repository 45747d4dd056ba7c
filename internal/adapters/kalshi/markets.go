package kalshi

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/alejandrodnm/botarena/internal/domain"
)

const (
	marketsPageSize = 100
	marketsPages    = 3 // ~300 mercados abiertos por fetch
)

// Source implementa ports.MarketSource sobre la trade API de Kalshi.
type Source struct {
	client *Client
}

// NewSource envuelve el client dado.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// Venue identifica la fuente.
func (s *Source) Venue() domain.Venue { return domain.VenueKalshi }

// FetchMarkets descarga hasta marketsPages páginas de mercados abiertos,
// siguiendo el cursor hasta agotarlo.
func (s *Source) FetchMarkets(ctx context.Context) ([]domain.Snapshot, error) {
	var snaps []domain.Snapshot
	cursor := ""

	for page := 0; page < marketsPages; page++ {
		url := fmt.Sprintf("%s/markets?status=open&limit=%d", s.client.base, marketsPageSize)
		if cursor != "" {
			url += "&cursor=" + cursor
		}

		var resp marketsResponse
		if err := s.client.get(ctx, url, &resp); err != nil {
			return nil, fmt.Errorf("kalshi.FetchMarkets: page %d: %w", page, err)
		}

		for _, m := range resp.Markets {
			if snap, ok := snapshotFromMarket(m); ok {
				snaps = append(snaps, snap)
			}
		}
		slog.Debug("fetched kalshi markets page", "page", page, "count", len(resp.Markets))

		cursor = resp.Cursor
		if cursor == "" {
			break
		}
	}

	slog.Info("kalshi markets fetched", "total", len(snaps))
	return snaps, nil
}

// snapshotFromMarket mapea un mercado de Kalshi a Snapshot.
// ok=false si la cadena de precios no produce un YES utilizable.
func snapshotFromMarket(m market) (domain.Snapshot, bool) {
	yes := m.resolveYesPct()
	if yes <= 0 {
		return domain.Snapshot{}, false
	}

	category := m.Category
	if category == "" {
		category = "Other"
	}

	end := m.CloseTime
	if end == "" {
		end = m.ExpirationTime
	}

	return domain.Snapshot{
		Venue:     domain.VenueKalshi,
		Title:     m.Title,
		NormKey:   domain.NormalizeTitle(m.Title),
		YesPct:    math.Round(yes*10) / 10,
		Volume:    m.Volume,
		Volume24h: 0, // la API de markets no expone volumen 24h
		Liquidity: m.OpenInterest,
		Category:  category,
		EndDate:   end,
		URL:       "https://kalshi.com/markets/" + strings.ToLower(m.Ticker),
		Active:    true, // status=open ya viene filtrado upstream
		Closed:    false,
	}, true
}
