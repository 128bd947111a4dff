// Command mock-github is a tiny in-memory stand-in for the GitHub REST API,
// covering exactly the endpoints the repodigest server consumes: repository
// metadata, pull request head lookup, recursive tree listing, and zipball
// download. Point the server at it with GITHUB_API_URL=http://localhost:9090.
package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

// repo is one seeded repository: its default branch and the file content of
// every seeded ref.
type repo struct {
	defaultBranch string
	// refs maps branch/tag/sha → path → content.
	refs map[string]map[string]string
	// prs maps PR number → head commit SHA. The SHA must also be a key in
	// refs for the zipball and tree endpoints to serve it.
	prs map[int]string
}

// store holds seeded repos keyed by "owner/name".
type store struct {
	mu    sync.RWMutex
	repos map[string]*repo
}

func newStore() *store {
	return &store{repos: make(map[string]*repo)}
}

func (s *store) get(owner, name string) *repo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repos[owner+"/"+name]
}

func (s *store) files(owner, name, ref string) map[string]string {
	r := s.get(owner, name)
	if r == nil {
		return nil
	}
	return r.refs[ref]
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	s := newStore()
	seedRepos(s)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/repos/:owner/:repo", func(c *gin.Context) {
		r := s.get(c.Param("owner"), c.Param("repo"))
		if r == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"full_name":      c.Param("owner") + "/" + c.Param("repo"),
			"default_branch": r.defaultBranch,
		})
	})

	router.GET("/repos/:owner/:repo/pulls/:number", func(c *gin.Context) {
		r := s.get(c.Param("owner"), c.Param("repo"))
		number, err := strconv.Atoi(c.Param("number"))
		if r == nil || err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		sha, ok := r.prs[number]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"number": number,
			"head":   gin.H{"sha": sha},
		})
	})

	router.GET("/repos/:owner/:repo/git/trees/:ref", func(c *gin.Context) {
		files := s.files(c.Param("owner"), c.Param("repo"), c.Param("ref"))
		if files == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}

		paths := make([]string, 0, len(files))
		for p := range files {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		tree := make([]gin.H, 0, len(paths))
		for _, p := range paths {
			tree = append(tree, gin.H{
				"path": p,
				"size": len(files[p]),
				"type": "blob",
				"mode": "100644",
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"sha":       c.Param("ref"),
			"tree":      tree,
			"truncated": false,
		})
	})

	router.GET("/repos/:owner/:repo/zipball/:ref", func(c *gin.Context) {
		owner, name, ref := c.Param("owner"), c.Param("repo"), c.Param("ref")
		files := s.files(owner, name, ref)
		if files == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}

		buf, err := buildZipball(owner, name, ref, files)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/zip", buf)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}
	log.Info("mock-github listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("mock-github failed", "error", err)
		os.Exit(1)
	}
}

// buildZipball renders files into a zip with the single generated top-level
// directory real GitHub zipballs have.
func buildZipball(owner, name, ref string, files map[string]string) ([]byte, error) {
	root := fmt.Sprintf("%s-%s-%s/", owner, name, ref)

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range paths {
		w, err := zw.Create(root + p)
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", p, err)
		}
		if _, err := w.Write([]byte(files[p])); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", p, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}
