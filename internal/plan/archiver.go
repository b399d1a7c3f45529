package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// collisionTimestampLayout formats the suffix used when an archived name is taken.
const collisionTimestampLayout = "20060102-150405"

// ArchiveResult describes one archiver run.
type ArchiveResult struct {
	// Archived holds the original names of the moved documents, in processing order.
	Archived []string
	// Destinations maps each archived name to its file name in the archive,
	// which differs from the original after a collision.
	Destinations map[string]string
	Kept         []string
	Warnings     []string
	UpdatedFiles []string
	IndexRebuilt bool
	// Skipped is set when another archiver run held the lock.
	Skipped bool
}

// Archiver moves completed plans from the active directory to the archive.
type Archiver struct {
	layout    Layout
	rebuilder IndexRebuilder
	rewriter  *Rewriter
	journal   *Journal
	lock      *ArchiveLock
	logger    *slog.Logger
	now       func() time.Time
}

// NewArchiver creates an archiver over layout that rebuilds indexes with rebuilder.
func NewArchiver(layout Layout, rebuilder IndexRebuilder) *Archiver {
	logger := slog.Default()
	return &Archiver{
		layout:    layout,
		rebuilder: rebuilder,
		rewriter:  NewRewriter(layout, logger),
		journal:   NewJournal(layout.ArchivePath()),
		lock:      NewArchiveLock(layout.PlansPath()),
		logger:    logger,
		now:       time.Now,
	}
}

// WithLogger sets the logger used by the archiver and its rewriter.
func (a *Archiver) WithLogger(logger *slog.Logger) *Archiver {
	if logger == nil {
		return a
	}
	a.logger = logger
	a.rewriter.logger = logger
	return a
}

// WithClock sets the clock used for collision suffixes (useful for testing).
func (a *Archiver) WithClock(now func() time.Time) *Archiver {
	a.now = now
	a.journal.now = now
	return a
}

// WithoutJournal disables the archive journal.
func (a *Archiver) WithoutJournal() *Archiver {
	a.journal = nil
	return a
}

// Run archives every completed plan in the active directory, rewrites
// references to them, and rebuilds indexes once for the whole batch.
//
// Index failures and per-document problems are reported as warnings. An
// error is returned only when the archive directory cannot be prepared or
// the active directory cannot be listed.
func (a *Archiver) Run(ctx context.Context) (*ArchiveResult, error) {
	result := &ArchiveResult{Destinations: map[string]string{}}

	if err := a.lock.Acquire(); err != nil {
		if errors.Is(err, ErrArchiveLocked) {
			a.logger.Info("archiver already running, skipping", "lock", a.lock.Path(), "err", err)
			result.Skipped = true
			return result, nil
		}
		return nil, err
	}
	defer a.lock.Release()

	if err := os.MkdirAll(a.layout.ArchivePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	names, err := a.activeDocuments()
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		fm := ReadFrontmatter(filepath.Join(a.layout.ActivePath(), name))
		decision := Decide(fm, name)

		if decision.Warning != "" {
			a.addWarning(result, decision.Warning)
		}
		if !decision.Archive {
			result.Kept = append(result.Kept, name)
			continue
		}

		dest, err := a.move(name)
		if err != nil {
			a.logger.Warn("failed to archive plan", "plan", name, "err", err)
			a.addWarning(result, fmt.Sprintf("Warning: Failed to archive plan '%s': %v", name, err))
			result.Kept = append(result.Kept, name)
			continue
		}

		result.Archived = append(result.Archived, name)
		result.Destinations[name] = dest
		a.logger.Debug("archived plan", "plan", name, "destination", dest)
		a.journalLog(func(j *Journal) error { return j.PlanArchived(name, dest) })
	}

	if len(result.Archived) == 0 {
		return result, nil
	}

	seen := make(map[string]bool)
	for _, name := range result.Archived {
		updated := a.rewriter.Rewrite(name)
		if len(updated) == 0 {
			continue
		}
		// A document referencing several archived plans is listed once.
		for _, f := range updated {
			if !seen[f] {
				seen[f] = true
				result.UpdatedFiles = append(result.UpdatedFiles, f)
			}
		}
		a.journalLog(func(j *Journal) error { return j.ReferencesUpdated(name, updated) })
	}

	if a.rebuilder == nil {
		return result, nil
	}
	if err := a.rebuilder.Rebuild(ctx, a.layout.Root); err != nil {
		a.logger.Warn("failed to update indexes", "err", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("Warning: Failed to update indexes: %v", err))
		a.journalLog(func(j *Journal) error { return j.IndexRebuildFailed(err) })
	} else {
		result.IndexRebuilt = true
	}

	return result, nil
}

// activeDocuments lists candidate documents in name order. Hidden files are
// templates or drafts and are never candidates.
func (a *Archiver) activeDocuments() ([]string, error) {
	entries, err := os.ReadDir(a.layout.ActivePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read active plans directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !a.layout.IsDocument(name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// move renames the active document into the archive and returns the file
// name it was given there.
func (a *Archiver) move(name string) (string, error) {
	dest, err := a.resolveDestination(name)
	if err != nil {
		return "", err
	}
	src := filepath.Join(a.layout.ActivePath(), name)
	if err := os.Rename(src, filepath.Join(a.layout.ArchivePath(), dest)); err != nil {
		return "", fmt.Errorf("failed to move plan: %w", err)
	}
	return dest, nil
}

// resolveDestination returns name if it is free in the archive. Otherwise it
// appends a timestamp, then a counter, until the name is unused.
func (a *Archiver) resolveDestination(name string) (string, error) {
	taken, err := a.archiveHas(name)
	if err != nil || !taken {
		return name, err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	base := fmt.Sprintf("%s-%s", stem, a.now().Format(collisionTimestampLayout))

	candidate := base + ext
	for suffix := 2; ; suffix++ {
		taken, err := a.archiveHas(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d%s", base, suffix, ext)
	}
}

func (a *Archiver) archiveHas(name string) (bool, error) {
	_, err := os.Lstat(filepath.Join(a.layout.ArchivePath(), name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check archive for %s: %w", name, err)
}

func (a *Archiver) addWarning(result *ArchiveResult, warning string) {
	result.Warnings = append(result.Warnings, warning)
	a.journalLog(func(j *Journal) error { return j.Warning(warning) })
}

func (a *Archiver) journalLog(write func(*Journal) error) {
	if a.journal == nil {
		return
	}
	if err := write(a.journal); err != nil {
		a.logger.Warn("failed to write archive journal", "path", a.journal.Path(), "err", err)
	}
}
