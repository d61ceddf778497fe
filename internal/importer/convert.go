package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ondrel/curio/internal/models"
)

// ImportedCategory is assigned to CSV rows that carry no category column.
const ImportedCategory = "Imported"

// CSVToCollection maps parsed CSV rows into a collection named name.
// Header variants are tried in priority order; rows without a resolvable
// repo key are dropped.
func CSVToCollection(rows []Row, name string) models.Collection {
	now := time.Now()
	lists := []models.ListRef{}
	for _, row := range rows {
		repo := resolveRepo(row)
		if repo == "" {
			continue
		}
		lists = append(lists, models.ListRef{
			Repo:    repo,
			Name:    firstOf(row, "name", "title", "repository"),
			Cate:    resolveCategory(row),
			AddedAt: now,
		})
	}
	return models.Collection{Name: name, Lists: lists}
}

// resolveRepo finds the owner/name key: an explicit repository/repo column
// first, then a GitHub URL in any of the usual link columns.
func resolveRepo(row Row) string {
	for _, key := range []string{"repository", "repo"} {
		v := strings.TrimSpace(row[key])
		if v == "" {
			continue
		}
		if repo, ok := RepoFromURL(v); ok {
			return repo
		}
		return v
	}
	for _, key := range []string{"github url", "url", "link"} {
		if repo, ok := RepoFromURL(row[key]); ok {
			return repo
		}
	}
	return ""
}

func resolveCategory(row Row) string {
	if v := strings.TrimSpace(row["category"]); v != "" {
		return v
	}
	if v := strings.TrimSpace(row["cate"]); v != "" {
		return v
	}
	return ImportedCategory
}

func firstOf(row Row, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
	}
	return ""
}

// MarkdownToCollection wraps a parsed Markdown document into a collection.
func MarkdownToCollection(doc *Document) models.Collection {
	now := time.Now()
	name := doc.Title
	if name == "" {
		name = "Imported List"
	}
	lists := make([]models.ListRef, 0, len(doc.Items))
	for _, item := range doc.Items {
		lists = append(lists, models.ListRef{
			Repo:    item.Repo,
			Name:    item.Name,
			Cate:    item.Cate,
			AddedAt: now,
		})
	}
	return models.Collection{
		Name:        name,
		Description: doc.Description,
		Lists:       lists,
	}
}

// ImportCollection converts a successful parse result into collection
// drafts. JSON input may be a single collection or a multi-collection
// document (caller-supplied ids are preserved); CSV and Markdown input
// always produce exactly one collection, named fallbackName when the
// content itself carries no title.
func ImportCollection(res *ParseResult, fallbackName string) ([]models.Collection, error) {
	if res == nil || !res.Success {
		msg := "parse failed"
		if res != nil && res.Error != "" {
			msg = res.Error
		}
		return nil, fmt.Errorf("importer: %s", msg)
	}

	switch res.Format {
	case FormatJSON:
		return importJSONCollections(res.JSON)
	case FormatCSV:
		c := CSVToCollection(res.Rows, fallbackName)
		if c.Name == "" {
			c.Name = "Imported List"
		}
		return []models.Collection{c}, nil
	case FormatMarkdown:
		c := MarkdownToCollection(res.Markdown)
		if c.Name == "Imported List" && fallbackName != "" {
			c.Name = fallbackName
		}
		return []models.Collection{c}, nil
	default:
		return nil, fmt.Errorf("importer: unsupported format %q", res.Format)
	}
}

func importJSONCollections(data any) ([]models.Collection, error) {
	shape, msgs := ValidateCollectionData(data)
	if shape == ShapeUnknown {
		return nil, fmt.Errorf("importer: %s", strings.Join(msgs, "; "))
	}
	if len(msgs) > 0 {
		return nil, fmt.Errorf("importer: invalid collection data: %s", strings.Join(msgs, "; "))
	}

	switch shape {
	case ShapeSingle:
		c, err := decodeCollection(data)
		if err != nil {
			return nil, err
		}
		return []models.Collection{c}, nil
	case ShapeCollections:
		obj := data.(map[string]any)
		seq := obj["collections"].([]any)
		out := make([]models.Collection, 0, len(seq))
		for _, item := range seq {
			c, err := decodeCollection(item)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("importer: data is a full backup; restore it through the backup import")
	}
}

// decodeCollection round-trips a decoded JSON object into the typed model.
func decodeCollection(data any) (models.Collection, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return models.Collection{}, fmt.Errorf("importer: encode collection: %w", err)
	}
	var c models.Collection
	if err := json.Unmarshal(raw, &c); err != nil {
		return models.Collection{}, fmt.Errorf("importer: decode collection: %w", err)
	}
	if c.Lists == nil {
		c.Lists = []models.ListRef{}
	}
	return c, nil
}
