package ingest

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// binaryProbeSize is how many leading bytes are inspected for the null-byte
// binary heuristic.
const binaryProbeSize = 1024

// FileProbe is what the gates see for each regular file under the extraction
// root: where it is on disk, its root-relative posix path, and its size.
type FileProbe struct {
	AbsPath string
	RelPath string
	Size    int64
}

// Gate is one filtering predicate. A file must pass every gate, in order, to
// be accepted; the first gate that returns false rejects it (counted as
// ignored, never an error).
type Gate struct {
	Name string
	Keep func(f FileProbe) bool
}

// Gates builds the ordered gate sequence for a FilterConfig:
//
//  1. binary — reject if the first 1024 bytes contain a null byte, or the
//     file cannot be opened at all.
//  2. prefix — reject unless the relative path starts with at least one
//     allowlisted prefix. This is a raw string prefix, not segment-aware:
//     "src" matches both src/a.go and srcold/b.go. Intentional — kept for
//     compatibility with existing saved filter selections.
//  3. size — reject files larger than MaxSizeBytes, when set.
//  4. glob — reject on any "!" exclusion match; otherwise, when inclusion
//     patterns exist, require at least one to match.
//
// Returns an error only for glob patterns that fail to compile.
func Gates(cfg FilterConfig) ([]Gate, error) {
	var includes, excludes []glob.Glob
	for _, p := range cfg.GlobPatterns {
		pattern, excluded := strings.CutPrefix(p, "!")
		// No separator argument: "*" crosses "/" so "vendor/*" covers the
		// whole subtree, matching fnmatch-style expectations.
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", p, err)
		}
		if excluded {
			excludes = append(excludes, g)
		} else {
			includes = append(includes, g)
		}
	}

	return []Gate{
		{Name: "binary", Keep: func(f FileProbe) bool {
			return !looksBinary(f.AbsPath)
		}},
		{Name: "prefix", Keep: func(f FileProbe) bool {
			for _, p := range cfg.IncludedPathPrefixes {
				if strings.HasPrefix(f.RelPath, p) {
					return true
				}
			}
			return false
		}},
		{Name: "size", Keep: func(f FileProbe) bool {
			return cfg.MaxSizeBytes == nil || f.Size <= *cfg.MaxSizeBytes
		}},
		{Name: "glob", Keep: func(f FileProbe) bool {
			for _, g := range excludes {
				if g.Match(f.RelPath) {
					return false
				}
			}
			if len(includes) == 0 {
				return true
			}
			for _, g := range includes {
				if g.Match(f.RelPath) {
					return true
				}
			}
			return false
		}},
	}, nil
}

// looksBinary reports whether the first binaryProbeSize bytes contain a null
// byte. Unopenable files are treated as binary, not as fatal errors.
func looksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	chunk := make([]byte, binaryProbeSize)
	n, err := f.Read(chunk)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(chunk[:n], 0) >= 0
}

// FilterFiles walks every regular file under root exactly once, applies the
// gates in order, and reads survivors as text. Invalid UTF-8 sequences are
// dropped rather than failing the file. Accepted entries are returned sorted
// by relative path. Purely local — no provider calls.
func FilterFiles(root string, cfg FilterConfig) (accepted []FileEntry, ignored int, err error) {
	gates, err := Gates(cfg)
	if err != nil {
		return nil, 0, err
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			ignored++
			return nil
		}
		probe := FileProbe{AbsPath: path, RelPath: filepath.ToSlash(rel), Size: info.Size()}

		for _, g := range gates {
			if !g.Keep(probe) {
				ignored++
				return nil
			}
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			ignored++
			return nil
		}
		accepted = append(accepted, FileEntry{
			Path:    probe.RelPath,
			Size:    probe.Size,
			Content: strings.ToValidUTF8(string(raw), ""),
		})
		return nil
	})
	if walkErr != nil {
		return nil, 0, FilesystemError{Op: "walk", Err: walkErr}
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Path < accepted[j].Path })
	return accepted, ignored, nil
}
