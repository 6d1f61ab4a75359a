package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repasoapp/repaso/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, going through the same open path as production.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	d, err := db.Open(":memory:")
	require.NoError(t, err)
	return d.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
