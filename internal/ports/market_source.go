package ports

import (
	"context"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// MarketSource obtiene los snapshots actuales de un venue.
type MarketSource interface {
	// Venue identifica la plataforma que sirve este source.
	Venue() domain.Venue

	// FetchMarkets devuelve los mercados activos del venue, ya
	// normalizados a Snapshot. Pagina internamente lo que haga falta.
	FetchMarkets(ctx context.Context) ([]domain.Snapshot, error)
}
