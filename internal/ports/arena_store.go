package ports

import (
	"context"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// ArenaStore persiste el estado completo de la arena: estados de agente,
// log de trades, log de ciclos y la cache del universo. Todas las
// operaciones son de documento completo (cargar todo / guardar todo).
type ArenaStore interface {
	// LoadStates devuelve los estados por agente; mapa vacío si nunca
	// se ha guardado nada.
	LoadStates(ctx context.Context) (map[string]*domain.State, error)
	SaveStates(ctx context.Context, states map[string]*domain.State) error

	// LoadTrades devuelve el log global de trades, más antiguo primero.
	LoadTrades(ctx context.Context) ([]domain.Trade, error)
	SaveTrades(ctx context.Context, trades []domain.Trade) error

	// LoadCycles devuelve el log global de ciclos, más reciente primero.
	LoadCycles(ctx context.Context) ([]domain.Cycle, error)
	SaveCycles(ctx context.Context, cycles []domain.Cycle) error

	// LoadUniverse devuelve la última foto del universo cacheada.
	// ok=false si no hay cache.
	LoadUniverse(ctx context.Context) (domain.Universe, bool, error)
	SaveUniverse(ctx context.Context, u domain.Universe) error

	// Reset borra estados, trades y ciclos. La cache del universo
	// sobrevive: los datos de mercado no pertenecen a ningún agente.
	Reset(ctx context.Context) error

	// Close cierra el backend subyacente.
	Close() error
}
