package ingest

import (
	"context"
	"io"
	"time"
)

// TreeItem is one entry of a provider tree listing. Type distinguishes blobs
// from trees and submodules; only blobs survive into a preview.
type TreeItem struct {
	Path string
	Size int64
	Type string
}

// Provider abstracts the source-hosting platform's REST and archive API.
// The adapters layer implements it with go-github; tests use stubs.
type Provider interface {
	// ResolveDefaultBranch returns the repository's default branch name.
	ResolveDefaultBranch(ctx context.Context, owner, name string) (string, error)
	// ResolvePullRequestHead returns the head commit SHA of a pull request.
	ResolvePullRequestHead(ctx context.Context, owner, name string, number int) (string, error)
	// ListTree returns the full recursive listing for a snapshot and whether
	// the provider truncated it.
	ListTree(ctx context.Context, owner, name, snapshotID string) (items []TreeItem, truncated bool, err error)
	// FetchArchive streams the snapshot as a zip archive. The caller closes
	// the reader.
	FetchArchive(ctx context.Context, owner, name, snapshotID string) (io.ReadCloser, error)
}

// Scratch provides per-run extraction directories. Each pipeline run owns
// exactly one directory; Remove is idempotent and never fails loudly on a
// missing path.
type Scratch interface {
	Create() (string, error)
	Remove(path string)
}

// RefCache memoizes network-resolved references (default branch names, PR
// head SHAs) for a short TTL. Cache failures must never fail a run — callers
// log and fall through to the provider.
type RefCache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
