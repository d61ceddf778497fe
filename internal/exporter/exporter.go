// Package exporter serializes collections and backups into downloadable
// artifacts. It is the inverse of the importer: pure serialization, no
// persisted side effects beyond reading the state it is given.
package exporter

import (
	"fmt"
	"time"

	"github.com/ondrel/curio/internal/apperr"
	"github.com/ondrel/curio/internal/models"
)

// Format is a supported output format.
type Format string

// Output formats.
const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
)

// Artifact is a ready-to-download export: content plus the derived filename
// and media type.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// repoURL returns the external page for a list reference.
func repoURL(repo string) string {
	return "https://github.com/" + repo
}

// ExportCollection serializes one collection. Supported formats: json,
// markdown, html, csv.
func ExportCollection(c models.Collection, format Format) (*Artifact, error) {
	switch format {
	case FormatJSON:
		data, err := collectionJSON(c)
		if err != nil {
			return nil, err
		}
		return &Artifact{Filename: FilenameStem(c.Name) + ".json", ContentType: "application/json", Data: data}, nil
	case FormatMarkdown:
		return &Artifact{Filename: FilenameStem(c.Name) + ".md", ContentType: "text/markdown", Data: []byte(CollectionMarkdown(c))}, nil
	case FormatHTML:
		return &Artifact{Filename: FilenameStem(c.Name) + ".html", ContentType: "text/html", Data: []byte(CollectionHTML(c))}, nil
	case FormatCSV:
		return &Artifact{Filename: FilenameStem(c.Name) + ".csv", ContentType: "text/csv", Data: []byte(CollectionCSV(c))}, nil
	default:
		return nil, fmt.Errorf("exporter: %w: %q for a single collection", apperr.ErrUnsupportedFormat, format)
	}
}

// ExportCollections serializes many collections. Supported formats: json,
// markdown.
func ExportCollections(cs []models.Collection, format Format) (*Artifact, error) {
	stem := DatedFilenameStem("curio-collections", time.Now())
	switch format {
	case FormatJSON:
		data, err := collectionsJSON(cs)
		if err != nil {
			return nil, err
		}
		return &Artifact{Filename: stem + ".json", ContentType: "application/json", Data: data}, nil
	case FormatMarkdown:
		return &Artifact{Filename: stem + ".md", ContentType: "text/markdown", Data: []byte(CollectionsMarkdown(cs))}, nil
	default:
		return nil, fmt.Errorf("exporter: %w: %q for multiple collections", apperr.ErrUnsupportedFormat, format)
	}
}

// ExportBackup serializes the full-backup envelope. JSON only.
func ExportBackup(b models.Backup, format Format) (*Artifact, error) {
	if format != FormatJSON {
		return nil, fmt.Errorf("exporter: %w: %q for a full backup", apperr.ErrUnsupportedFormat, format)
	}
	data, err := backupJSON(b)
	if err != nil {
		return nil, err
	}
	stem := DatedFilenameStem("curio-backup", time.Now())
	return &Artifact{Filename: stem + ".json", ContentType: "application/json", Data: data}, nil
}
