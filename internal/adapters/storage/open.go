package storage

import (
	"fmt"
	"strings"

	"github.com/alejandrodnm/botarena/internal/ports"
)

// Open elige el backend de blobs según el DSN:
//
//	redis://host:6379/0      → Redis
//	postgres://user@host/db  → Postgres
//	sqlite:ruta | arena.db   → SQLite
//	cualquier otra ruta      → directorio de ficheros JSON
func Open(dsn string) (ports.BlobStore, error) {
	switch {
	case dsn == "":
		return nil, fmt.Errorf("storage.Open: empty DSN")
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return NewRedisStore(dsn, "botarena:")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresStore(dsn)
	case strings.HasPrefix(dsn, "sqlite:"):
		return NewSQLiteStore(strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return NewSQLiteStore(dsn)
	default:
		return NewFileStore(dsn)
	}
}
