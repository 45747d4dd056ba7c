package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alejandrodnm/botarena/internal/domain"
	"github.com/alejandrodnm/botarena/internal/ports"
)

// Claves bajo las que el gateway guarda cada documento. Con el backend de
// ficheros son literalmente los nombres de fichero dentro del data dir.
const (
	keyStates   = "agents_state.json"
	keyTrades   = "trade_log.json"
	keyCycles   = "cycle_log.json"
	keyUniverse = "market_cache.json"
)

// Gateway expone el ports.ArenaStore tipado sobre cualquier ports.BlobStore.
// Serializa cada documento completo como JSON indentado.
type Gateway struct {
	blobs ports.BlobStore
}

// NewGateway envuelve el blob store dado.
func NewGateway(blobs ports.BlobStore) *Gateway {
	return &Gateway{blobs: blobs}
}

// LoadStates devuelve los estados por agente. Si nunca se guardó nada
// devuelve un mapa vacío, no un error.
func (g *Gateway) LoadStates(ctx context.Context) (map[string]*domain.State, error) {
	states := make(map[string]*domain.State)
	if err := g.load(ctx, keyStates, &states); err != nil {
		return nil, err
	}
	return states, nil
}

func (g *Gateway) SaveStates(ctx context.Context, states map[string]*domain.State) error {
	return g.save(ctx, keyStates, states)
}

func (g *Gateway) LoadTrades(ctx context.Context) ([]domain.Trade, error) {
	var trades []domain.Trade
	if err := g.load(ctx, keyTrades, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (g *Gateway) SaveTrades(ctx context.Context, trades []domain.Trade) error {
	return g.save(ctx, keyTrades, trades)
}

func (g *Gateway) LoadCycles(ctx context.Context) ([]domain.Cycle, error) {
	var cycles []domain.Cycle
	if err := g.load(ctx, keyCycles, &cycles); err != nil {
		return nil, err
	}
	return cycles, nil
}

func (g *Gateway) SaveCycles(ctx context.Context, cycles []domain.Cycle) error {
	return g.save(ctx, keyCycles, cycles)
}

// LoadUniverse devuelve la última foto de mercados cacheada; ok=false si no hay.
func (g *Gateway) LoadUniverse(ctx context.Context) (domain.Universe, bool, error) {
	data, err := g.blobs.Get(ctx, keyUniverse)
	if errors.Is(err, ports.ErrNotFound) {
		return domain.Universe{}, false, nil
	}
	if err != nil {
		return domain.Universe{}, false, err
	}

	var u domain.Universe
	if err := json.Unmarshal(data, &u); err != nil {
		return domain.Universe{}, false, fmt.Errorf("storage.Gateway: decode %s: %w", keyUniverse, err)
	}
	return u, true, nil
}

func (g *Gateway) SaveUniverse(ctx context.Context, u domain.Universe) error {
	return g.save(ctx, keyUniverse, u)
}

// Reset borra estados, trades y ciclos. La cache de mercados sobrevive:
// los datos de mercado no pertenecen a ningún agente.
func (g *Gateway) Reset(ctx context.Context) error {
	for _, key := range []string{keyStates, keyTrades, keyCycles} {
		if err := g.blobs.Delete(ctx, key); err != nil {
			return fmt.Errorf("storage.Gateway: reset %s: %w", key, err)
		}
	}
	return nil
}

func (g *Gateway) Close() error { return g.blobs.Close() }

// load deserializa el documento bajo key en dst. Clave inexistente no es
// error: dst conserva su valor cero.
func (g *Gateway) load(ctx context.Context, key string, dst any) error {
	data, err := g.blobs.Get(ctx, key)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("storage.Gateway: decode %s: %w", key, err)
	}
	return nil
}

func (g *Gateway) save(ctx context.Context, key string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage.Gateway: encode %s: %w", key, err)
	}
	return g.blobs.Put(ctx, key, data)
}

var _ ports.ArenaStore = (*Gateway)(nil)
