package ingest_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
)

// zipball builds an in-memory zip from path→content pairs.
func zipball(t *testing.T, files map[string]string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for path, content := range files {
		w, err := zw.Create(path)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func TestExtractArchive_SingleRoot(t *testing.T) {
	dir := t.TempDir()
	z := zipball(t, map[string]string{
		"acme-billing-api-main/README.md":   "hi",
		"acme-billing-api-main/src/main.go": "package main",
	})

	root, err := ingest.ExtractArchive(z, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "unpacked", "acme-billing-api-main"), root)

	content, err := os.ReadFile(filepath.Join(root, "src", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main", string(content))
}

func TestExtractArchive_RootNameIsImplementationDefined(t *testing.T) {
	// The fetcher must locate the root regardless of its generated name.
	dir := t.TempDir()
	z := zipball(t, map[string]string{"whatever-0dec0ded/f.txt": "x"})

	root, err := ingest.ExtractArchive(z, dir)
	require.NoError(t, err)
	assert.Equal(t, "whatever-0dec0ded", filepath.Base(root))
}

func TestExtractArchive_MultipleTopLevelEntries_Fails(t *testing.T) {
	dir := t.TempDir()
	z := zipball(t, map[string]string{
		"root-a/f.txt": "a",
		"root-b/f.txt": "b",
	})

	_, err := ingest.ExtractArchive(z, dir)
	var extraction ingest.ExtractionError
	require.ErrorAs(t, err, &extraction)
}

func TestExtractArchive_TopLevelFile_Fails(t *testing.T) {
	dir := t.TempDir()
	z := zipball(t, map[string]string{"loose.txt": "x"})

	_, err := ingest.ExtractArchive(z, dir)
	var extraction ingest.ExtractionError
	require.ErrorAs(t, err, &extraction)
}

func TestExtractArchive_NotAZip_Fails(t *testing.T) {
	dir := t.TempDir()

	_, err := ingest.ExtractArchive(bytes.NewReader([]byte("this is not a zip")), dir)
	var extraction ingest.ExtractionError
	require.ErrorAs(t, err, &extraction)
}

func TestExtractArchive_EntryEscapingRoot_Fails(t *testing.T) {
	dir := t.TempDir()
	z := zipball(t, map[string]string{
		"root/ok.txt":     "fine",
		"root/../../evil": "nope",
	})

	_, err := ingest.ExtractArchive(z, dir)
	var extraction ingest.ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Contains(t, extraction.Reason, "escapes")
}
