package adapters_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
	"github.com/renshaw/repodigest/apps/server/internal/ingest/adapters"
	githubauth "github.com/renshaw/repodigest/apps/server/internal/platform/github"
)

// newProvider spins up a fake GitHub API and returns a provider pointed at it.
func newProvider(t *testing.T, handler http.Handler) *adapters.GitHubProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return adapters.NewGitHubProvider(githubauth.NewTokenClient("test-token", srv.URL))
}

func jsonHandler(t *testing.T, path, body string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(body))
		assert.NoError(t, err)
	})
	return mux
}

// ─── ResolveDefaultBranch ────────────────────────────────────────────────────

func TestResolveDefaultBranch(t *testing.T) {
	p := newProvider(t, jsonHandler(t, "GET /repos/acme/billing-api",
		`{"full_name":"acme/billing-api","default_branch":"trunk"}`))

	branch, err := p.ResolveDefaultBranch(context.Background(), "acme", "billing-api")
	require.NoError(t, err)
	assert.Equal(t, "trunk", branch)
}

func TestResolveDefaultBranch_NotFound_MapsToProviderError(t *testing.T) {
	p := newProvider(t, http.NotFoundHandler())

	_, err := p.ResolveDefaultBranch(context.Background(), "acme", "gone")
	var provider ingest.ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Equal(t, http.StatusNotFound, provider.StatusCode)
}

// ─── ResolvePullRequestHead ──────────────────────────────────────────────────

func TestResolvePullRequestHead(t *testing.T) {
	p := newProvider(t, jsonHandler(t, "GET /repos/acme/billing-api/pulls/42",
		`{"number":42,"head":{"sha":"0dec0ded"}}`))

	sha, err := p.ResolvePullRequestHead(context.Background(), "acme", "billing-api", 42)
	require.NoError(t, err)
	assert.Equal(t, "0dec0ded", sha)
}

// ─── ListTree ────────────────────────────────────────────────────────────────

func TestListTree(t *testing.T) {
	p := newProvider(t, jsonHandler(t, "GET /repos/acme/billing-api/git/trees/main",
		`{"sha":"main","truncated":false,"tree":[
			{"path":"README.md","size":2,"type":"blob"},
			{"path":"src","type":"tree"},
			{"path":"src/a.go","size":9,"type":"blob"}
		]}`))

	items, truncated, err := p.ListTree(context.Background(), "acme", "billing-api", "main")
	require.NoError(t, err)
	assert.False(t, truncated)
	require.Len(t, items, 3)
	assert.Equal(t, ingest.TreeItem{Path: "README.md", Size: 2, Type: "blob"}, items[0])
	assert.Equal(t, "tree", items[1].Type)
}

func TestListTree_TruncatedFlagPropagates(t *testing.T) {
	p := newProvider(t, jsonHandler(t, "GET /repos/acme/huge/git/trees/main",
		`{"sha":"main","truncated":true,"tree":[]}`))

	_, truncated, err := p.ListTree(context.Background(), "acme", "huge", "main")
	require.NoError(t, err)
	assert.True(t, truncated)
}

// ─── FetchArchive ────────────────────────────────────────────────────────────

func TestFetchArchive_StreamsZipball(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("acme-billing-api-main/README.md")
	require.NoError(t, err)
	_, err = w.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/billing-api/zipball/main", func(w http.ResponseWriter, r *http.Request) {
		// The credential must travel with the archive request.
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(buf.Bytes())
	})
	p := newProvider(t, mux)

	rc, err := p.FetchArchive(context.Background(), "acme", "billing-api", "main")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), got)
}

func TestFetchArchive_NotFound(t *testing.T) {
	p := newProvider(t, http.NotFoundHandler())

	_, err := p.FetchArchive(context.Background(), "acme", "gone", "main")
	var provider ingest.ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Equal(t, http.StatusNotFound, provider.StatusCode)
}
