package polymarket

// markets.go — descarga del universo de mercados vía la Gamma events API.
//
// Gamma pagina por offset y devuelve events, cada uno con su lista de
// mercados binarios. El payload no es estable entre despliegues
// (outcomePrices llega a veces como array y a veces como string JSON),
// así que el parse usa gjson en vez de structs rígidos.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/botarena/internal/domain"
)

const (
	eventsPageSize = 100
	eventsPages    = 2 // top ~200 events por volumen 24h
)

// Source implementa ports.MarketSource sobre la Gamma API.
type Source struct {
	client *Client
}

// NewSource envuelve el client dado.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// Venue identifica la fuente.
func (s *Source) Venue() domain.Venue { return domain.VenuePolymarket }

// FetchMarkets descarga las páginas de events ordenadas por volumen 24h y
// las aplana en snapshots. Una página que falla aborta el fetch completo:
// el caller decide qué hacer con un venue caído.
func (s *Source) FetchMarkets(ctx context.Context) ([]domain.Snapshot, error) {
	var snaps []domain.Snapshot
	for page := 0; page < eventsPages; page++ {
		offset := page * eventsPageSize
		url := fmt.Sprintf(
			"%s/events?limit=%d&active=true&archived=false&closed=false&order=volume24hr&ascending=false&offset=%d",
			s.client.base, eventsPageSize, offset,
		)

		body, err := s.client.get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("polymarket.FetchMarkets: offset %d: %w", offset, err)
		}

		got := parseEvents(body)
		snaps = append(snaps, got...)
		slog.Debug("fetched polymarket events page", "offset", offset, "markets", len(got))
	}

	slog.Info("polymarket markets fetched", "total", len(snaps))
	return snaps, nil
}
