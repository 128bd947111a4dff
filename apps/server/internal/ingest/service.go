package ingest

import (
	"context"
	"fmt"
	"log/slog"
)

// Service is the application-level use-case orchestrator for the two consumer
// operations, Preview and Generate. It depends only on port interfaces and
// keeps no state between calls — concurrent runs share nothing except the
// injected collaborators.
type Service struct {
	provider Provider
	scratch  Scratch
	cache    RefCache
	log      *slog.Logger
}

// NewService creates a Service. cache may be nil, in which case every Default
// and PullRequest resolution hits the provider.
func NewService(provider Provider, scratch Scratch, cache RefCache, log *slog.Logger) *Service {
	return &Service{provider: provider, scratch: scratch, cache: cache, log: log}
}

// Preview resolves the URL and returns the snapshot's complete file listing
// without downloading content. Fast path for the filter-selection UI.
// Truncated provider listings are rejected with TreeTruncatedError — partial
// trees are never silently returned.
func (s *Service) Preview(ctx context.Context, url string) ([]FileEntry, error) {
	ref, err := ParseRepoURL(url)
	if err != nil {
		return nil, err
	}
	snap, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	items, truncated, err := s.provider.ListTree(ctx, snap.Ref.Owner, snap.Ref.Name, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("list tree: %w", err)
	}
	if truncated {
		return nil, TreeTruncatedError{Snapshot: snap.ID}
	}

	var files []FileEntry
	for _, item := range items {
		if item.Type != "blob" {
			continue
		}
		files = append(files, FileEntry{Path: item.Path, Size: item.Size})
	}
	return files, nil
}

// Generate runs the full pipeline: resolve, download, extract, filter,
// assemble. The scratch directory is exclusively owned by this run and
// removed on every exit path. The returned digest is complete or nil — never
// partial.
func (s *Service) Generate(ctx context.Context, url string, cfg FilterConfig) (*Digest, error) {
	ref, err := ParseRepoURL(url)
	if err != nil {
		return nil, err
	}
	snap, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	dir, err := s.scratch.Create()
	if err != nil {
		return nil, FilesystemError{Op: "create scratch dir", Err: err}
	}
	defer s.scratch.Remove(dir)

	archive, err := s.provider.FetchArchive(ctx, snap.Ref.Owner, snap.Ref.Name, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch archive: %w", err)
	}
	root, err := ExtractArchive(archive, dir)
	archive.Close()
	if err != nil {
		return nil, err
	}

	accepted, ignored, err := FilterFiles(root, cfg)
	if err != nil {
		return nil, err
	}

	digest := AssembleDigest(snap, accepted, ignored)
	s.log.Info("digest generated",
		"repo", snap.Ref.Owner+"/"+snap.Ref.Name,
		"ref", snap.ID,
		"included", len(accepted),
		"ignored", ignored,
		"tokens", digest.EstimatedTokens,
	)
	return digest, nil
}
