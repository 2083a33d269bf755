package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	db, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestOpenSQLite_Memory(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.QueryRow(`SELECT 1`).Scan(&one))
	assert.Equal(t, 1, one)
}
