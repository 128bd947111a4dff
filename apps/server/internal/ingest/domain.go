// Package ingest turns a GitHub repository reference into a single
// deterministic text digest. It owns the pipeline: resolve the reference to an
// immutable snapshot, fetch the snapshot, filter its files, and assemble the
// digest. All provider and filesystem access goes through the ports in
// ports.go — no framework imports here.
package ingest

// RefKind classifies how a repository URL designates a snapshot.
type RefKind string

const (
	// RefDefault is a bare repo root URL — the default branch, resolved via
	// a repository metadata call.
	RefDefault RefKind = "default"
	// RefBranch is a /tree/<ref> URL. The ref may also be a tag; both are
	// used verbatim without an existence check.
	RefBranch RefKind = "branch"
	// RefCommit is a /commit/<sha> URL.
	RefCommit RefKind = "commit"
	// RefPullRequest is a /pull/<number> URL. Value holds the PR number,
	// resolved to the PR head commit via a metadata call.
	RefPullRequest RefKind = "pull"
)

// RepoRef is a parsed repository URL: who owns it, what it is called, and
// which snapshot the user pointed at. Value is empty only for RefDefault;
// for RefPullRequest it holds the numeric PR identifier, not a ref name.
type RepoRef struct {
	Owner string
	Name  string
	Kind  RefKind
	Value string
}

// Snapshot is a RepoRef resolved to an immutable identifier — a commit SHA or
// a branch/tag name — usable to fetch both the tree listing and the archive.
// Once resolved it never changes for the lifetime of one pipeline run.
type Snapshot struct {
	Ref RepoRef
	ID  string
}

// FileEntry is one file of a snapshot, root-relative with posix separators.
// Content is empty in preview listings and populated after filtering.
type FileEntry struct {
	Path    string
	Size    int64
	Content string
}

// FilterConfig drives the filter engine's gates. See filter.Run for the gate
// order and semantics.
type FilterConfig struct {
	// MaxSizeBytes rejects files larger than this many bytes. Nil disables
	// the size gate.
	MaxSizeBytes *int64
	// GlobPatterns are matched against the root-relative path. A leading
	// "!" makes a pattern an exclusion; exclusions always win.
	GlobPatterns []string
	// IncludedPathPrefixes is the allowlist of raw string prefixes. An
	// empty list admits nothing — there is no implicit allow-all.
	IncludedPathPrefixes []string
}

// Digest is the final artifact of one pipeline run. It is assembled once,
// never mutated afterwards, and not persisted anywhere.
type Digest struct {
	Owner      string
	Name       string
	SnapshotID string

	Summary         string
	DirectoryTree   string
	Files           []FileEntry
	IgnoredCount    int
	EstimatedTokens int

	// Text is the fully rendered digest: summary, directory structure
	// heading, tree, then one delimited block per file, in that order.
	Text string
}
