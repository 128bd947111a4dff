// Package handler translates HTTP requests into calls on the ingest.Service
// and maps domain errors back to status codes.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
	"github.com/renshaw/repodigest/pkg/api"
)

// Handler holds the handler dependencies.
type Handler struct {
	svc *ingest.Service
	log *slog.Logger
}

// RegisterRoutes mounts the repodigest API onto the given Gin engine.
func RegisterRoutes(r *gin.Engine, svc *ingest.Service, log *slog.Logger) {
	h := &Handler{svc: svc, log: log}

	r.GET("/api/tree", h.Tree)
	r.POST("/api/generate", h.Generate)
}

// Tree handles GET /api/tree?url=… — the fast preview listing used by the
// filter-selection UI. Only metadata is fetched, never content.
func (h *Handler) Tree(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "url parameter is required"})
		return
	}

	files, err := h.svc.Preview(c.Request.Context(), url)
	if err != nil {
		h.fail(c, "preview failed", url, err)
		return
	}

	entries := make([]api.TreeEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, api.TreeEntry{Path: f.Path, Size: f.Size})
	}
	c.JSON(http.StatusOK, entries)
}

// Generate handles POST /api/generate — the full pipeline. Responds with the
// digest as text/plain. Long-running: the overall wall clock is bounded by
// the server's write timeout, and the request context aborts in-flight
// provider calls when the client goes away.
func (h *Handler) Generate(c *gin.Context) {
	var req api.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	digest, err := h.svc.Generate(c.Request.Context(), req.Url, toFilterConfig(req.Filters))
	if err != nil {
		h.fail(c, "generate failed", req.Url, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(digest.Text))
}

// toFilterConfig converts wire-level filters (kilobytes) into the engine's
// FilterConfig (bytes).
func toFilterConfig(f api.Filters) ingest.FilterConfig {
	cfg := ingest.FilterConfig{
		GlobPatterns:         f.GlobPatterns,
		IncludedPathPrefixes: f.IncludedPaths,
	}
	if f.MaxSizeKb != nil {
		maxBytes := int64(*f.MaxSizeKb) * 1024
		cfg.MaxSizeBytes = &maxBytes
	}
	return cfg
}

// fail maps a pipeline error to its HTTP status. Every error reaches the
// caller as a structured body; nothing is swallowed.
func (h *Handler) fail(c *gin.Context, msg, url string, err error) {
	status := http.StatusInternalServerError

	var invalid ingest.InvalidReferenceError
	var provider ingest.ProviderError
	var truncated ingest.TreeTruncatedError
	switch {
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
	case errors.As(err, &provider):
		status = provider.StatusCode
	case errors.As(err, &truncated):
		status = http.StatusRequestEntityTooLarge
	}

	if status >= http.StatusInternalServerError {
		h.log.Error(msg, "url", url, "error", err)
	} else {
		h.log.Info(msg, "url", url, "status", status, "error", err)
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}
