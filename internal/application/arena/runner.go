package arena

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
	"github.com/alejandrodnm/botarena/internal/ports"
)

// UniverseProvider sirve la foto de mercados del ciclo. Definido en el
// lado consumidor para poder stubearlo en tests.
type UniverseProvider interface {
	Current(ctx context.Context, force bool) domain.Universe
}

// Runner orquesta un ciclo completo: universo → engine → persistencia.
// El mutex garantiza at-most-one ciclo en vuelo: el estado se persiste
// como documento completo y dos ciclos solapados se pisarían las
// escrituras con pérdida del último en llegar.
type Runner struct {
	mu       sync.Mutex
	universe UniverseProvider
	store    ports.ArenaStore
	engine   *Engine
	profiles []domain.Profile
}

// NewRunner crea el Runner con todas las dependencias inyectadas.
func NewRunner(universe UniverseProvider, store ports.ArenaStore, engine *Engine, profiles []domain.Profile) *Runner {
	return &Runner{
		universe: universe,
		store:    store,
		engine:   engine,
		profiles: profiles,
	}
}

// RunOnce ejecuta exactamente un ciclo y devuelve el payload resultante.
// Nunca devuelve error: los fallos de fetch degradan venues, los de carga
// arrancan agentes en limpio y los de guardado se registran y el ciclo
// sigue con lo que haya en memoria. Con force salta la cache de mercados.
func (r *Runner) RunOnce(ctx context.Context, force bool) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	u := r.universe.Current(ctx, force)

	states, err := r.store.LoadStates(ctx)
	if err != nil {
		slog.Warn("state load failed, starting agents fresh", "err", err)
		states = make(map[string]*domain.State)
	}
	trades, err := r.store.LoadTrades(ctx)
	if err != nil {
		slog.Warn("trade log load failed, continuing empty", "err", err)
		trades = nil
	}
	cycles, err := r.store.LoadCycles(ctx)
	if err != nil {
		slog.Warn("cycle log load failed, continuing empty", "err", err)
		cycles = nil
	}

	now := time.Now().UTC()
	out := r.engine.RunCycle(r.profiles, u, states, now)

	allTrades := appendTrades(trades, out.NewTrades)
	allCycles := prependCycles(cycles, out.Cycles)

	if err := r.store.SaveStates(ctx, out.States); err != nil {
		slog.Warn("state save failed", "err", err)
	}
	if err := r.store.SaveTrades(ctx, allTrades); err != nil {
		slog.Warn("trade log save failed", "err", err)
	}
	if err := r.store.SaveCycles(ctx, allCycles); err != nil {
		slog.Warn("cycle log save failed", "err", err)
	}

	slog.Info("arena cycle complete",
		"markets", u.TotalMarkets(),
		"agents", len(out.Agents),
		"new_trades", len(out.NewTrades),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return buildResult(out, u, allTrades, allCycles)
}

// Run ejecuta ciclos hasta que el contexto se cancele. El primero sale
// inmediatamente; el resto al ritmo del intervalo. each, si no es nil,
// recibe el payload de cada ciclo.
func (r *Runner) Run(ctx context.Context, interval time.Duration, each func(*Result)) error {
	slog.Info("arena runner starting",
		"interval", interval,
		"agents", len(r.profiles),
	)

	emit := func(res *Result) {
		if each != nil {
			each(res)
		}
	}
	emit(r.RunOnce(ctx, false))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("arena runner stopped")
			return nil
		case <-ticker.C:
			emit(r.RunOnce(ctx, false))
		}
	}
}

// Reset borra el estado de todos los agentes y los logs globales. La
// cache de mercados sobrevive al reset.
func (r *Runner) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Reset(ctx)
}
