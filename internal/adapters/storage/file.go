package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alejandrodnm/botarena/internal/ports"
)

// FileStore guarda cada blob como un fichero dentro de un directorio.
// Es el backend por defecto: sin servicios externos y los documentos se
// pueden inspeccionar con cualquier editor. Los writes pasan por un
// fichero temporal + rename, así un proceso interrumpido nunca deja un
// documento a medias.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio si no existe y devuelve el store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewFileStore: mkdir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage.FileStore: read %q: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage.FileStore: write %q: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("storage.FileStore: rename %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage.FileStore: delete %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// path traduce la clave a una ruta dentro del directorio del store.
// filepath.Base evita que una clave con separadores escape del directorio.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

var _ ports.BlobStore = (*FileStore)(nil)
