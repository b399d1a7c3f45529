package plan

import (
	"path"
	"path/filepath"
	"strings"
)

// Default directory conventions, relative to the root.
const (
	DefaultPlansDir   = "plans"
	DefaultActiveDir  = "active"
	DefaultArchiveDir = "archive"
	DefaultExtension  = ".md"
	DefaultIndexDir   = "indexes"
)

// Layout describes where plan documents live beneath a root directory.
type Layout struct {
	Root       string
	PlansDir   string
	ActiveDir  string
	ArchiveDir string
	Extension  string
	// SkipDirs names directories holding generated files that the reference
	// rewriter must not touch.
	SkipDirs []string
}

// DefaultLayout returns the conventional layout rooted at root.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:       root,
		PlansDir:   DefaultPlansDir,
		ActiveDir:  DefaultActiveDir,
		ArchiveDir: DefaultArchiveDir,
		Extension:  DefaultExtension,
		SkipDirs:   []string{DefaultIndexDir},
	}
}

// PlansPath is the directory containing the active and archive directories.
func (l Layout) PlansPath() string {
	return filepath.Join(l.Root, l.PlansDir)
}

// ActivePath is the absolute active directory.
func (l Layout) ActivePath() string {
	return filepath.Join(l.Root, l.PlansDir, l.ActiveDir)
}

// ArchivePath is the absolute archive directory.
func (l Layout) ArchivePath() string {
	return filepath.Join(l.Root, l.PlansDir, l.ArchiveDir)
}

// ActiveRef is the textual path other documents use to reference an active plan.
func (l Layout) ActiveRef(name string) string {
	return path.Join(filepath.ToSlash(l.PlansDir), filepath.ToSlash(l.ActiveDir), name)
}

// ArchiveRef is the textual path of an archived plan.
func (l Layout) ArchiveRef(name string) string {
	return path.Join(filepath.ToSlash(l.PlansDir), filepath.ToSlash(l.ArchiveDir), name)
}

// IsDocument reports whether name carries the document extension.
func (l Layout) IsDocument(name string) bool {
	return strings.HasSuffix(name, l.Extension)
}

func (l Layout) isSkippedDir(name string) bool {
	for _, dir := range l.SkipDirs {
		if name == dir {
			return true
		}
	}
	return false
}
