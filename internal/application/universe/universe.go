package universe

// universe.go — montaje de la foto de mercados del ciclo.
//
// Los venues se descargan en paralelo y cada uno degrada por separado: un
// fetch fallido marca su VenueData con OK=false y el ciclo continúa. La
// foto completa se cachea con TTL para que invocaciones cercanas en el
// tiempo no refetcheen.

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/botarena/internal/domain"
	"github.com/alejandrodnm/botarena/internal/ports"
)

// DefaultTTL es la frescura por defecto de la cache de mercados.
const DefaultTTL = 1500 * time.Second

// Service monta y cachea el universo de mercados.
type Service struct {
	sources []ports.MarketSource
	store   ports.ArenaStore
	ttl     time.Duration
}

// New crea el Service con los venues dados. Con ttl <= 0 usa DefaultTTL.
func New(store ports.ArenaStore, ttl time.Duration, sources ...ports.MarketSource) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{sources: sources, store: store, ttl: ttl}
}

// Current devuelve el universo del ciclo. Sirve la cache si aún es fresca;
// con force la salta y refetcha. Nunca devuelve error: un venue caído queda
// marcado OK=false y son los estrategas quienes reaccionan a su ausencia.
func (s *Service) Current(ctx context.Context, force bool) domain.Universe {
	if !force {
		if u, ok := s.cached(ctx); ok {
			return u
		}
	}

	u := s.fetchAll(ctx)
	if err := s.store.SaveUniverse(ctx, u); err != nil {
		slog.Warn("universe cache write failed", "err", err)
	}
	return u
}

// cached devuelve la cache si existe y está dentro del TTL.
func (s *Service) cached(ctx context.Context) (domain.Universe, bool) {
	u, ok, err := s.store.LoadUniverse(ctx)
	if err != nil {
		slog.Warn("universe cache read failed", "err", err)
		return domain.Universe{}, false
	}
	if !ok {
		return domain.Universe{}, false
	}

	age := time.Since(u.FetchedAt)
	if age >= s.ttl {
		return domain.Universe{}, false
	}

	slog.Debug("serving cached universe",
		"age", age.Round(time.Second),
		"markets", u.TotalMarkets(),
	)
	return u, true
}

// fetchAll dispara todos los venues en paralelo y monta el Universe.
func (s *Service) fetchAll(ctx context.Context) domain.Universe {
	data := make([]domain.VenueData, len(s.sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			snaps, err := src.FetchMarkets(gctx)
			if err != nil {
				// Un venue caído no aborta el ciclo
				slog.Warn("venue fetch failed", "venue", src.Venue(), "err", err)
				data[i] = domain.VenueData{OK: false}
				return nil
			}
			data[i] = domain.VenueData{Snapshots: snaps, OK: true}
			return nil
		})
	}
	_ = g.Wait() // los fallos por venue ya quedaron degradados arriba

	u := domain.Universe{FetchedAt: time.Now().UTC()}
	for i, src := range s.sources {
		switch src.Venue() {
		case domain.VenuePolymarket:
			u.Polymarket = data[i]
		case domain.VenueKalshi:
			u.Kalshi = data[i]
		}
	}

	slog.Info("universe assembled",
		"polymarket", len(u.Polymarket.Snapshots),
		"kalshi", len(u.Kalshi.Snapshots),
		"poly_ok", u.Polymarket.OK,
		"kalshi_ok", u.Kalshi.OK,
	)
	return u
}
