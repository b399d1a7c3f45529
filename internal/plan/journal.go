package plan

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const journalFileName = "archive.log"

// Journal event types.
const (
	EventPlanArchived       = "plan_archived"
	EventArchiveWarning     = "archive_warning"
	EventReferencesUpdated  = "references_updated"
	EventIndexRebuildFailed = "index_rebuild_failed"
)

// JournalEvent is a single archive journal entry.
type JournalEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
}

// Journal appends archive events to a JSON Lines file.
type Journal struct {
	path string
	now  func() time.Time
}

// NewJournal creates a journal stored in dir.
func NewJournal(dir string) *Journal {
	return &Journal{
		path: filepath.Join(dir, journalFileName),
		now:  time.Now,
	}
}

// Path returns the journal file location.
func (j *Journal) Path() string {
	return j.path
}

// Log appends one event.
func (j *Journal) Log(event string, data map[string]any) error {
	entry := JournalEvent{
		Timestamp: j.now(),
		Event:     event,
		Data:      data,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(line)
	return err
}

// PlanArchived logs a plan_archived event.
func (j *Journal) PlanArchived(name, destination string) error {
	return j.Log(EventPlanArchived, map[string]any{
		"plan":        name,
		"destination": destination,
	})
}

// Warning logs an archive_warning event.
func (j *Journal) Warning(message string) error {
	return j.Log(EventArchiveWarning, map[string]any{
		"message": message,
	})
}

// ReferencesUpdated logs a references_updated event.
func (j *Journal) ReferencesUpdated(name string, files []string) error {
	return j.Log(EventReferencesUpdated, map[string]any{
		"plan":  name,
		"files": files,
	})
}

// IndexRebuildFailed logs an index_rebuild_failed event.
func (j *Journal) IndexRebuildFailed(err error) error {
	return j.Log(EventIndexRebuildFailed, map[string]any{
		"error": err.Error(),
	})
}

// ReadJournal loads all well-formed events from the journal in dir.
// Malformed lines are skipped.
func ReadJournal(dir string) ([]JournalEvent, error) {
	f, err := os.Open(filepath.Join(dir, journalFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []JournalEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev JournalEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}
