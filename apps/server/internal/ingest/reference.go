package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Recognized URL shapes. The bare-root pattern is anchored at both ends; the
// others are prefix matches, so a deeper path after the captured ref is
// tolerated and ignored (matching the behavior users expect from pasted
// browser URLs).
var (
	reRoot   = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/?$`)
	reTree   = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/tree/([^/]+)`)
	reCommit = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/commit/([0-9a-fA-F]+)`)
	rePull   = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/pull/([0-9]+)`)
)

// ParseRepoURL extracts owner, name and ref descriptor from a repository URL.
// Four shapes are recognized: bare root, /tree/<ref>, /commit/<sha> and
// /pull/<number>. Anything else is an InvalidReferenceError.
//
// Branch names containing "/" are captured up to the first slash only — a
// single-segment capture, same as the shape matching this tool has always
// used.
func ParseRepoURL(raw string) (RepoRef, error) {
	if m := reTree.FindStringSubmatch(raw); m != nil {
		return RepoRef{Owner: m[1], Name: m[2], Kind: RefBranch, Value: m[3]}, nil
	}
	if m := reCommit.FindStringSubmatch(raw); m != nil {
		return RepoRef{Owner: m[1], Name: m[2], Kind: RefCommit, Value: m[3]}, nil
	}
	if m := rePull.FindStringSubmatch(raw); m != nil {
		return RepoRef{Owner: m[1], Name: m[2], Kind: RefPullRequest, Value: m[3]}, nil
	}
	if m := reRoot.FindStringSubmatch(raw); m != nil {
		return RepoRef{Owner: m[1], Name: m[2], Kind: RefDefault}, nil
	}
	return RepoRef{}, InvalidReferenceError{URL: raw}
}

// Cache TTLs for network-resolved refs. PR heads move with every push, so
// they are cached only briefly; default branch names are near-static.
const (
	defaultBranchTTL = 5 * time.Minute
	prHeadTTL        = 30 * time.Second
)

// resolve turns a RepoRef into a Snapshot. Only RefDefault and RefPullRequest
// need a provider metadata call; branch and commit refs are used verbatim —
// a bad ref surfaces later as a 404 from the tree or archive fetch.
func (s *Service) resolve(ctx context.Context, ref RepoRef) (Snapshot, error) {
	switch ref.Kind {
	case RefBranch, RefCommit:
		return Snapshot{Ref: ref, ID: ref.Value}, nil

	case RefDefault:
		key := "default-branch:" + ref.Owner + "/" + ref.Name
		if id, ok := s.cached(ctx, key); ok {
			return Snapshot{Ref: ref, ID: id}, nil
		}
		branch, err := s.provider.ResolveDefaultBranch(ctx, ref.Owner, ref.Name)
		if err != nil {
			return Snapshot{}, fmt.Errorf("resolve default branch: %w", err)
		}
		s.remember(ctx, key, branch, defaultBranchTTL)
		return Snapshot{Ref: ref, ID: branch}, nil

	case RefPullRequest:
		number, err := strconv.Atoi(ref.Value)
		if err != nil {
			return Snapshot{}, InvalidReferenceError{URL: ref.Value}
		}
		key := fmt.Sprintf("pr-head:%s/%s#%d", ref.Owner, ref.Name, number)
		if id, ok := s.cached(ctx, key); ok {
			return Snapshot{Ref: ref, ID: id}, nil
		}
		sha, err := s.provider.ResolvePullRequestHead(ctx, ref.Owner, ref.Name, number)
		if err != nil {
			return Snapshot{}, fmt.Errorf("resolve pull request head: %w", err)
		}
		s.remember(ctx, key, sha, prHeadTTL)
		return Snapshot{Ref: ref, ID: sha}, nil

	default:
		return Snapshot{}, fmt.Errorf("unknown ref kind %q", ref.Kind)
	}
}

// cached reads a ref from the cache. Cache errors are logged and treated as
// misses — the provider remains the source of truth.
func (s *Service) cached(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	v, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("ref cache get failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (s *Service) remember(ctx context.Context, key, value string, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.log.Warn("ref cache set failed", "key", key, "error", err)
	}
}
