package ingest

import "fmt"

// InvalidReferenceError is returned when a URL does not match any of the
// supported repository URL shapes. Not recoverable — the caller must correct
// the input.
type InvalidReferenceError struct {
	URL string
}

// Error implements the error interface.
func (e InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid or unsupported repository URL %q", e.URL)
}

// ProviderError is returned when a provider call fails with an HTTP status.
// A 404 is specialized: it usually means the repository does not exist or is
// private to the configured credential.
type ProviderError struct {
	StatusCode int
	Op         string
}

// Error implements the error interface.
func (e ProviderError) Error() string {
	if e.StatusCode == 404 {
		return "repository not found or is private; check the URL"
	}
	return fmt.Sprintf("%s: provider returned status %d", e.Op, e.StatusCode)
}

// TreeTruncatedError is returned when the provider marks a recursive tree
// listing as truncated. Partial trees are never silently returned.
type TreeTruncatedError struct {
	Snapshot string
}

// Error implements the error interface.
func (e TreeTruncatedError) Error() string {
	return fmt.Sprintf("tree listing for %q is truncated: repository too large for the recursive tree API", e.Snapshot)
}

// ExtractionError is returned when a downloaded archive is structurally
// unexpected — most commonly when it does not contain exactly one top-level
// directory.
type ExtractionError struct {
	Reason string
}

// Error implements the error interface.
func (e ExtractionError) Error() string {
	return "archive extraction failed: " + e.Reason
}

// FilesystemError wraps scratch-area failures (create, write, walk). Per-file
// read problems during filtering are not FilesystemErrors — they increment
// the ignored count and the run proceeds.
type FilesystemError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e FilesystemError) Error() string {
	return fmt.Sprintf("scratch filesystem %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e FilesystemError) Unwrap() error { return e.Err }
