package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
)

// ─── URL shapes ──────────────────────────────────────────────────────────────

func TestParseRepoURL_BareRoot(t *testing.T) {
	for _, url := range []string{
		"https://github.com/acme/billing-api",
		"https://github.com/acme/billing-api/",
	} {
		ref, err := ingest.ParseRepoURL(url)
		require.NoError(t, err, url)
		assert.Equal(t, "acme", ref.Owner)
		assert.Equal(t, "billing-api", ref.Name)
		assert.Equal(t, ingest.RefDefault, ref.Kind)
		assert.Empty(t, ref.Value)
	}
}

func TestParseRepoURL_Tree(t *testing.T) {
	ref, err := ingest.ParseRepoURL("https://github.com/acme/billing-api/tree/develop")
	require.NoError(t, err)
	assert.Equal(t, ingest.RefBranch, ref.Kind)
	assert.Equal(t, "develop", ref.Value)
}

func TestParseRepoURL_Tree_CapturesSingleSegment(t *testing.T) {
	// Branch names with slashes are captured up to the first slash.
	ref, err := ingest.ParseRepoURL("https://github.com/acme/billing-api/tree/feature/wire")
	require.NoError(t, err)
	assert.Equal(t, ingest.RefBranch, ref.Kind)
	assert.Equal(t, "feature", ref.Value)
}

func TestParseRepoURL_Commit(t *testing.T) {
	ref, err := ingest.ParseRepoURL("https://github.com/acme/billing-api/commit/AbC123def")
	require.NoError(t, err)
	assert.Equal(t, ingest.RefCommit, ref.Kind)
	assert.Equal(t, "AbC123def", ref.Value)
}

func TestParseRepoURL_Pull(t *testing.T) {
	ref, err := ingest.ParseRepoURL("https://github.com/acme/billing-api/pull/42")
	require.NoError(t, err)
	assert.Equal(t, ingest.RefPullRequest, ref.Kind)
	assert.Equal(t, "42", ref.Value)
}

func TestParseRepoURL_Invalid(t *testing.T) {
	for _, url := range []string{
		"",
		"not a url",
		"https://gitlab.com/acme/billing-api",
		"https://github.com/acme",
		"https://github.com/acme/billing-api/releases/tag/v1",
		"https://github.com/acme/billing-api/pull/not-a-number",
	} {
		_, err := ingest.ParseRepoURL(url)
		var invalid ingest.InvalidReferenceError
		require.ErrorAs(t, err, &invalid, url)
	}
}
