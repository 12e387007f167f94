package sqlstore

import (
	"context"
	"strings"
	"testing"

	"github.com/rubenv/pgtest"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

// openRamStoreForTest opens a store on a ramsql database private to t.
func openRamStoreForTest(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), Config{
		Driver: DriverRamSQL,
		DSN:    strings.ReplaceAll(t.Name(), "/", "_"),
		Logger: logger.Test(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

// openPgStoreForTest opens a store on a throwaway postgres, skipping t if postgres binaries are
// not installed.
func openPgStoreForTest(t *testing.T) *Store {
	t.Helper()

	pg, err := pgtest.Start()
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	t.Cleanup(func() {
		require.NoError(t, pg.Stop())
	})

	s, err := New(context.Background(), pg.DB, Config{Logger: logger.Test(t)})
	require.NoError(t, err)

	return s
}
