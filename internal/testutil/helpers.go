package testutil

import (
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// MustGrid parses an ASCII map and fails the test on error
func MustGrid(t testing.TB, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.ParseGrid(rows)
	require.NoError(t, err)
	return g
}
