package ingest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
)

func snap() ingest.Snapshot {
	return ingest.Snapshot{
		Ref: ingest.RepoRef{Owner: "acme", Name: "billing-api", Kind: ingest.RefBranch, Value: "main"},
		ID:  "main",
	}
}

// ─── token estimate ──────────────────────────────────────────────────────────

func TestEstimateTokens_IntegerDivision(t *testing.T) {
	assert.Equal(t, 1000, ingest.EstimateTokens(strings.Repeat("x", 4000)))
	assert.Equal(t, 0, ingest.EstimateTokens("abc"))
	assert.Equal(t, 1, ingest.EstimateTokens("abcd"))
	assert.Equal(t, 1, ingest.EstimateTokens("abcdefg"))
}

// ─── assembly ────────────────────────────────────────────────────────────────

func TestAssembleDigest_Layout(t *testing.T) {
	files := []ingest.FileEntry{
		{Path: "src/a.go", Content: "package a"},
		{Path: "README.md", Content: "hi"},
	}

	d := ingest.AssembleDigest(snap(), files, 1)

	// Counts: 11 content chars → 2 tokens.
	assert.Equal(t, 2, d.EstimatedTokens)
	assert.Equal(t, 1, d.IgnoredCount)

	assert.Contains(t, d.Summary, "Repository: acme/billing-api (ref: main)")
	assert.Contains(t, d.Summary, "Total files included: 2")
	assert.Contains(t, d.Summary, "Ignored files: 1")
	assert.Contains(t, d.Summary, "Approximate token count: 2")

	// Files sorted by path: README.md before src/a.go.
	require.Len(t, d.Files, 2)
	assert.Equal(t, "README.md", d.Files[0].Path)
	assert.Equal(t, "src/a.go", d.Files[1].Path)

	// Fixed section order: summary, heading, tree, blocks.
	iSummary := strings.Index(d.Text, "# Repository Summary")
	iHeading := strings.Index(d.Text, "# Directory Structure")
	iReadme := strings.Index(d.Text, "FILE: README.md")
	iSrc := strings.Index(d.Text, "FILE: src/a.go")
	require.True(t, iSummary >= 0 && iHeading > iSummary && iReadme > iHeading && iSrc > iReadme)

	// Delimiter lines are exactly 48 '='.
	delim := strings.Repeat("=", 48)
	assert.Contains(t, d.Text, delim+"\nFILE: README.md\n"+delim+"\nhi\n\n")
}

func TestAssembleDigest_TreeMatchesAcceptedPaths(t *testing.T) {
	files := []ingest.FileEntry{
		{Path: "a/b.txt", Content: "b"},
		{Path: "a/c.txt", Content: "c"},
		{Path: "d.txt", Content: "d"},
	}

	d := ingest.AssembleDigest(snap(), files, 0)
	assert.Equal(t, "├── a\n│   ├── b.txt\n│   └── c.txt\n└── d.txt\n", d.DirectoryTree)
}

func TestAssembleDigest_Idempotent(t *testing.T) {
	files := []ingest.FileEntry{
		{Path: "src/a.go", Content: "package a\n"},
		{Path: "README.md", Content: "# readme\n"},
	}

	first := ingest.AssembleDigest(snap(), files, 3)
	second := ingest.AssembleDigest(snap(), files, 3)
	assert.Equal(t, first.Text, second.Text)
}

func TestAssembleDigest_DoesNotMutateInput(t *testing.T) {
	files := []ingest.FileEntry{
		{Path: "z.txt", Content: "z"},
		{Path: "a.txt", Content: "a"},
	}

	_ = ingest.AssembleDigest(snap(), files, 0)
	assert.Equal(t, "z.txt", files[0].Path)
}

func TestAssembleDigest_NoFiles(t *testing.T) {
	d := ingest.AssembleDigest(snap(), nil, 7)

	assert.Equal(t, 0, d.EstimatedTokens)
	assert.Contains(t, d.Summary, "Total files included: 0")
	assert.Contains(t, d.Summary, "Ignored files: 7")
	assert.Equal(t, "", d.DirectoryTree)
	assert.NotContains(t, d.Text, "FILE:")
}

func TestAssembleDigest_TokensCountContentOnly(t *testing.T) {
	// 4000 chars of content → exactly 1000 tokens, regardless of how much
	// the summary and delimiters add to the rendered text.
	files := []ingest.FileEntry{{Path: "big.txt", Content: strings.Repeat("x", 4000)}}

	d := ingest.AssembleDigest(snap(), files, 0)
	assert.Equal(t, 1000, d.EstimatedTokens)
}
