// Package adapters implements the ingest ports against real infrastructure:
// the GitHub REST API via the official go-github library, and the local
// filesystem for scratch extraction space.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
)

// Compile-time check: *GitHubProvider implements ingest.Provider.
var _ ingest.Provider = (*GitHubProvider)(nil)

// GitHubProvider wraps an authenticated go-github client. The same underlying
// http.Client (carrying the credential) is reused for archive downloads,
// which go through a plain GET because GitHub serves zipballs via redirect to
// a download host rather than through the JSON API.
type GitHubProvider struct {
	gh    *gogithub.Client
	httpc *http.Client
}

// NewGitHubProvider creates a GitHubProvider from an authenticated client.
// Build the client with platform/github.NewTokenClient or NewAppClient.
func NewGitHubProvider(gh *gogithub.Client) *GitHubProvider {
	return &GitHubProvider{gh: gh, httpc: gh.Client()}
}

// ResolveDefaultBranch returns the repository's default branch name.
func (p *GitHubProvider) ResolveDefaultBranch(ctx context.Context, owner, name string) (string, error) {
	repo, _, err := p.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", providerErr("get repository", err)
	}
	return repo.GetDefaultBranch(), nil
}

// ResolvePullRequestHead returns the head commit SHA of a pull request.
func (p *GitHubProvider) ResolvePullRequestHead(ctx context.Context, owner, name string, number int) (string, error) {
	pr, _, err := p.gh.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return "", providerErr("get pull request", err)
	}
	return pr.GetHead().GetSHA(), nil
}

// ListTree returns the recursive tree listing for a snapshot together with
// the provider's truncation flag.
func (p *GitHubProvider) ListTree(ctx context.Context, owner, name, snapshotID string) ([]ingest.TreeItem, bool, error) {
	tree, _, err := p.gh.Git.GetTree(ctx, owner, name, snapshotID, true)
	if err != nil {
		return nil, false, providerErr("get tree", err)
	}

	items := make([]ingest.TreeItem, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		items = append(items, ingest.TreeItem{
			Path: e.GetPath(),
			Size: int64(e.GetSize()),
			Type: e.GetType(),
		})
	}
	return items, tree.GetTruncated(), nil
}

// FetchArchive streams the snapshot zipball. The URL is built from the
// client's base URL so the same code serves both api.github.com and a local
// mock; redirects to codeload are followed by the http client.
func (p *GitHubProvider) FetchArchive(ctx context.Context, owner, name, snapshotID string) (io.ReadCloser, error) {
	u := p.gh.BaseURL.JoinPath("repos", owner, name, "zipball", snapshotID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create archive request: %w", err)
	}

	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close() //nolint:errcheck // already failing
		return nil, ingest.ProviderError{StatusCode: resp.StatusCode, Op: "fetch archive"}
	}
	return resp.Body, nil
}

// providerErr converts go-github errors into ingest.ProviderError when an
// HTTP status is available, preserving the status for the API layer.
func providerErr(op string, err error) error {
	var ghErr *gogithub.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ingest.ProviderError{StatusCode: ghErr.Response.StatusCode, Op: op}
	}
	return fmt.Errorf("%s: %w", op, err)
}
