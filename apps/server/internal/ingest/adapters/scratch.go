package adapters

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
)

// Compile-time check: *TempScratch implements ingest.Scratch.
var _ ingest.Scratch = (*TempScratch)(nil)

// TempScratch hands out UUID-named directories under the OS temp dir (or a
// configured base). Each pipeline run gets its own directory, so concurrent
// runs never collide.
type TempScratch struct {
	base string
}

// NewTempScratch creates a TempScratch. base="" uses os.TempDir().
func NewTempScratch(base string) *TempScratch {
	if base == "" {
		base = os.TempDir()
	}
	return &TempScratch{base: base}
}

// Create makes a fresh exclusively-owned scratch directory.
func (s *TempScratch) Create() (string, error) {
	dir := filepath.Join(s.base, "repodigest-"+uuid.New().String())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Remove deletes a scratch directory. Best-effort and idempotent: a missing
// path is not an error, and cleanup failure is never escalated.
func (s *TempScratch) Remove(path string) {
	_ = os.RemoveAll(path) //nolint:errcheck // cleanup is best-effort
}
