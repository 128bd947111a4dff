package adapters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renshaw/repodigest/apps/server/internal/ingest/adapters"
)

func TestTempScratch_CreateIsUniquePerRun(t *testing.T) {
	s := adapters.NewTempScratch(t.TempDir())

	a, err := s.Create()
	require.NoError(t, err)
	b, err := s.Create()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.DirExists(t, a)
	assert.DirExists(t, b)
}

func TestTempScratch_RemoveIsIdempotent(t *testing.T) {
	s := adapters.NewTempScratch(t.TempDir())

	dir, err := s.Create()
	require.NoError(t, err)

	s.Remove(dir)
	assert.NoDirExists(t, dir)
	s.Remove(dir) // second remove of a missing path must not panic
}
