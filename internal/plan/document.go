package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Location names where a plan document lives.
type Location string

const (
	LocationActive  Location = "active"
	LocationArchive Location = "archive"
)

// Document summarizes one plan document for listing.
type Document struct {
	Name               string
	Location           Location
	Path               string
	Status             string
	QualityGatesPassed bool
	Frontmatter        Frontmatter
}

// ListDocuments returns the plans in the active directory followed by those
// in the archive, each group in name order. Missing directories are empty.
func ListDocuments(layout Layout) ([]Document, error) {
	active, err := listDir(layout, layout.ActivePath(), LocationActive)
	if err != nil {
		return nil, err
	}
	archived, err := listDir(layout, layout.ArchivePath(), LocationArchive)
	if err != nil {
		return nil, err
	}
	return append(active, archived...), nil
}

func listDir(layout Layout, dir string, loc Location) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s plans directory: %w", loc, err)
	}

	var docs []Document
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !layout.IsDocument(name) {
			continue
		}
		path := filepath.Join(dir, name)
		fm := ReadFrontmatter(path)
		status, _ := fm.Status()
		docs = append(docs, Document{
			Name:               name,
			Location:           loc,
			Path:               path,
			Status:             status,
			QualityGatesPassed: fm.QualityGatesPassed(),
			Frontmatter:        fm,
		})
	}
	return docs, nil
}
