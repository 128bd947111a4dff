package ingest

import (
	"fmt"
	"sort"
	"strings"
)

// TokenEstimateDivisor approximates tokens from character count: one token
// per ~4 characters of content. A heuristic, not a tokenizer.
const TokenEstimateDivisor = 4

// fileDelimiter frames each file block in the rendered digest.
const fileDelimiter = "================================================"

// EstimateTokens returns len(text) / TokenEstimateDivisor, integer division.
func EstimateTokens(text string) int {
	return len(text) / TokenEstimateDivisor
}

// AssembleDigest renders the accepted files into the final digest. Every step
// is deterministic and side-effect-free: two calls with the same inputs yield
// byte-identical output. The digest is atomic — callers never see a partial
// rendering.
func AssembleDigest(snap Snapshot, files []FileEntry, ignored int) *Digest {
	sorted := make([]FileEntry, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	paths := make([]string, len(sorted))
	contentLen := 0
	for i, f := range sorted {
		paths[i] = f.Path
		contentLen += len(f.Content)
	}
	tree := RenderTree(paths)
	tokens := contentLen / TokenEstimateDivisor

	var blocks strings.Builder
	for _, f := range sorted {
		blocks.WriteString(fileDelimiter)
		blocks.WriteByte('\n')
		blocks.WriteString("FILE: ")
		blocks.WriteString(f.Path)
		blocks.WriteByte('\n')
		blocks.WriteString(fileDelimiter)
		blocks.WriteByte('\n')
		blocks.WriteString(f.Content)
		blocks.WriteString("\n\n")
	}

	summary := fmt.Sprintf(
		"# Repository Summary\nRepository: %s/%s (ref: %s)\nTotal files included: %d\nIgnored files: %d\nApproximate token count: %d\n\n",
		snap.Ref.Owner, snap.Ref.Name, snap.ID, len(sorted), ignored, tokens,
	)

	return &Digest{
		Owner:           snap.Ref.Owner,
		Name:            snap.Ref.Name,
		SnapshotID:      snap.ID,
		Summary:         summary,
		DirectoryTree:   tree,
		Files:           sorted,
		IgnoredCount:    ignored,
		EstimatedTokens: tokens,
		Text:            summary + "# Directory Structure\n" + tree + "\n" + blocks.String(),
	}
}
