// Package api holds the wire-level request and response types of the
// repodigest HTTP API. The ingest domain package has its own types; handlers
// translate between the two at the boundary (e.g. maxSizeKb here is kilobytes,
// the filter engine works in bytes).
package api

// TreeEntry is one file in the preview listing returned by GET /api/tree.
type TreeEntry struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Filters carries the user-selected filter settings for a generate request.
type Filters struct {
	// MaxSizeKb is the per-file size ceiling in kilobytes. Nil means no ceiling.
	MaxSizeKb *int `json:"maxSizeKb,omitempty"`
	// GlobPatterns are evaluated in order; patterns prefixed with "!" exclude.
	GlobPatterns []string `json:"globPatterns,omitempty"`
	// IncludedPaths is the path-prefix allowlist. An empty list admits nothing.
	IncludedPaths []string `json:"includedPaths,omitempty"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Url     string  `json:"url" binding:"required"`
	Filters Filters `json:"filters"`
}

// ErrorResponse is the JSON shape of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
