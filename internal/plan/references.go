package plan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Rewriter replaces references to a plan's active path with its archive path
// in every document under the layout root.
type Rewriter struct {
	layout    Layout
	logger    *slog.Logger
	readFile  func(string) ([]byte, error)
	writeFile func(string, []byte, os.FileMode) error
}

// NewRewriter creates a rewriter over the given layout.
func NewRewriter(layout Layout, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rewriter{
		layout:    layout,
		logger:    logger,
		readFile:  os.ReadFile,
		writeFile: os.WriteFile,
	}
}

// Rewrite updates references to the archived document name and returns the
// root-relative, slash-separated paths of the files it changed.
//
// Matching is a literal substring replacement, so a longer path that merely
// ends with the active path is rewritten too. Files that cannot be read or
// written are skipped and left out of the result.
func (r *Rewriter) Rewrite(name string) []string {
	oldRef := r.layout.ActiveRef(name)
	newRef := r.layout.ArchiveRef(name)

	var updated []string

	walkErr := filepath.WalkDir(r.layout.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory: skip it, keep walking elsewhere.
			r.logger.Debug("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() && path != r.layout.Root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !r.layout.IsDocument(d.Name()) {
			return nil
		}
		if d.Name() == name || r.layout.isSkippedDir(filepath.Base(filepath.Dir(path))) {
			return nil
		}

		if r.rewriteFile(path, d, oldRef, newRef) {
			rel, relErr := filepath.Rel(r.layout.Root, path)
			if relErr != nil {
				rel = path
			}
			updated = append(updated, filepath.ToSlash(rel))
		}
		return nil
	})
	if walkErr != nil {
		r.logger.Debug("reference walk stopped early", "root", r.layout.Root, "err", walkErr)
	}

	return updated
}

// rewriteFile reports whether path was changed on disk.
func (r *Rewriter) rewriteFile(path string, d fs.DirEntry, oldRef, newRef string) bool {
	data, err := r.readFile(path)
	if err != nil {
		r.logger.Debug("skipping unreadable document", "path", path, "err", err)
		return false
	}

	content := string(data)
	if !strings.Contains(content, oldRef) {
		return false
	}
	updated := strings.ReplaceAll(content, oldRef, newRef)
	if updated == content {
		return false
	}

	mode := os.FileMode(0644)
	if info, err := d.Info(); err == nil {
		mode = info.Mode().Perm()
	}

	if err := r.writeFile(path, []byte(updated), mode); err != nil {
		r.logger.Debug("skipping unwritable document", "path", path, "err", err)
		return false
	}
	return true
}
