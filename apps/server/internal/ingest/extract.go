package ingest

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractArchive spools the zip stream into scratchDir, unpacks it, and
// returns the archive's single top-level directory. Provider archives wrap
// the snapshot in one generated root folder (named from owner/name/ref);
// anything other than exactly one top-level directory is an ExtractionError.
func ExtractArchive(archive io.Reader, scratchDir string) (string, error) {
	// Zip needs random access, so the stream is spooled to disk first
	// rather than buffered in memory.
	spoolPath := filepath.Join(scratchDir, "snapshot.zip")
	spool, err := os.Create(spoolPath)
	if err != nil {
		return "", FilesystemError{Op: "create spool", Err: err}
	}
	size, err := io.Copy(spool, archive)
	if err != nil {
		spool.Close()
		return "", FilesystemError{Op: "spool archive", Err: err}
	}

	zr, err := zip.NewReader(spool, size)
	if err != nil {
		spool.Close()
		return "", ExtractionError{Reason: "not a valid zip archive"}
	}

	unpackDir := filepath.Join(scratchDir, "unpacked")
	if err := os.Mkdir(unpackDir, 0o755); err != nil {
		spool.Close()
		return "", FilesystemError{Op: "create unpack dir", Err: err}
	}
	for _, zf := range zr.File {
		if err := extractEntry(zf, unpackDir); err != nil {
			spool.Close()
			return "", err
		}
	}
	if err := spool.Close(); err != nil {
		return "", FilesystemError{Op: "close spool", Err: err}
	}

	entries, err := os.ReadDir(unpackDir)
	if err != nil {
		return "", FilesystemError{Op: "read unpack dir", Err: err}
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return "", ExtractionError{Reason: "expected exactly one top-level directory"}
	}
	return filepath.Join(unpackDir, entries[0].Name()), nil
}

func extractEntry(zf *zip.File, unpackDir string) error {
	dest := filepath.Join(unpackDir, filepath.FromSlash(zf.Name))
	// Entries must stay inside the unpack dir (zip-slip).
	if !strings.HasPrefix(dest, unpackDir+string(os.PathSeparator)) {
		return ExtractionError{Reason: "entry escapes archive root: " + zf.Name}
	}

	if zf.FileInfo().IsDir() {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return FilesystemError{Op: "create dir", Err: err}
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return FilesystemError{Op: "create dir", Err: err}
	}
	src, err := zf.Open()
	if err != nil {
		return ExtractionError{Reason: "open entry " + zf.Name + ": " + err.Error()}
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return FilesystemError{Op: "create file", Err: err}
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return FilesystemError{Op: "write file", Err: err}
	}
	return out.Close()
}
