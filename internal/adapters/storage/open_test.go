package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyDSNErrors(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpen_DispatchesByDSN(t *testing.T) {
	dir := t.TempDir()

	files, err := Open(filepath.Join(dir, "blobs"))
	require.NoError(t, err)
	defer files.Close()
	assert.IsType(t, &FileStore{}, files)

	byScheme, err := Open("sqlite:" + filepath.Join(dir, "arena.sqlite3"))
	require.NoError(t, err)
	defer byScheme.Close()
	assert.IsType(t, &SQLiteStore{}, byScheme)

	byExtension, err := Open(filepath.Join(dir, "arena.db"))
	require.NoError(t, err)
	defer byExtension.Close()
	assert.IsType(t, &SQLiteStore{}, byExtension)
}

func TestOpen_InvalidRedisURLErrors(t *testing.T) {
	_, err := Open("redis://bad url with spaces")
	assert.Error(t, err)
}
