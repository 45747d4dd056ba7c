package ports

import (
	"context"
	"errors"
)

// ErrNotFound señala que la clave pedida no existe en el store.
var ErrNotFound = errors.New("ports: blob not found")

// BlobStore persiste documentos completos bajo una clave. La semántica es
// siempre whole-blob: un Put reemplaza el documento entero, sin updates
// parciales. Implementaciones: fichero local, SQLite, Redis y Postgres.
type BlobStore interface {
	// Get devuelve el blob guardado bajo key, o ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put guarda el blob bajo key, reemplazando el valor anterior.
	Put(ctx context.Context, key string, data []byte) error

	// Delete elimina la clave. Borrar una clave inexistente no es error.
	Delete(ctx context.Context, key string) error

	// Close libera la conexión o los descriptores del backend.
	Close() error
}
