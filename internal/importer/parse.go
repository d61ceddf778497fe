package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Row is one CSV data row keyed by lower-cased header field name.
type Row map[string]string

// Item is one parsed Markdown link-list entry.
type Item struct {
	Name string
	Repo string
	Cate string
}

// Document is the result of parsing a Markdown collection file.
type Document struct {
	Title       string
	Description string
	Items       []Item
}

// ParseResult is the tagged outcome of Parse. Exactly one of JSON, Rows,
// Markdown is populated on success; Error carries a human-readable message
// on failure. Parse never panics or returns a Go error across this boundary.
type ParseResult struct {
	Success  bool
	Format   Format
	Error    string
	JSON     any
	Rows     []Row
	Markdown *Document
}

func failure(format Format, msg string) *ParseResult {
	return &ParseResult{Format: format, Error: msg}
}

// Parse dispatches content to the parser for format. Pass FormatUnknown (or
// "") to detect the format from content and filename first.
func Parse(content string, format Format, filename string) *ParseResult {
	if format == "" || format == FormatUnknown {
		format = DetectFormat(content, filename)
	}
	switch format {
	case FormatJSON:
		return parseJSON(content)
	case FormatCSV:
		return parseCSV(content)
	case FormatMarkdown:
		return parseMarkdown(content)
	default:
		return failure(FormatUnknown, "unrecognized file format")
	}
}

// parseJSON delegates to the standard decoder; failures carry the
// underlying parse error message.
func parseJSON(content string) *ParseResult {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return failure(FormatJSON, fmt.Sprintf("invalid JSON: %v", err))
	}
	return &ParseResult{Success: true, Format: FormatJSON, JSON: data}
}

// parseCSV reads the header row (lower-cased, trimmed field names) and the
// data rows. Double-quote enclosed fields may contain commas; a doubled
// quote inside a quoted field decodes to one quote. Fewer than two lines is
// an error.
func parseCSV(content string) *ParseResult {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return failure(FormatCSV, "CSV must have a header row and at least one data row")
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return failure(FormatCSV, fmt.Sprintf("invalid CSV: %v", err))
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		row := make(Row, len(header))
		for i, field := range record {
			if i < len(header) {
				row[header[i]] = field
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return failure(FormatCSV, "CSV must have a header row and at least one data row")
	}
	return &ParseResult{Success: true, Format: FormatCSV, Rows: rows}
}

var (
	titleRe    = regexp.MustCompile(`^#\s+(.+)$`)
	categoryRe = regexp.MustCompile(`^#{2,3}\s+(.+)$`)
	mdItemRe   = regexp.MustCompile(`^\s*[-*]\s+\[([^\]]+)\]\(([^)]+)\)`)
	repoURLRe  = regexp.MustCompile(`github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)`)
)

// parseMarkdown walks the document line by line. The level-1 heading sets
// the title, level-2/3 headings set the category for subsequent items, and
// a link-list item is captured when its URL points at a GitHub repository.
// The first plain paragraph after the title becomes the description.
func parseMarkdown(content string) *ParseResult {
	doc := &Document{}
	category := ""
	sawHeading := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := titleRe.FindStringSubmatch(trimmed); m != nil {
			doc.Title = strings.TrimSpace(m[1])
			sawHeading = true
			continue
		}
		if m := categoryRe.FindStringSubmatch(trimmed); m != nil {
			category = strings.TrimSpace(m[1])
			sawHeading = true
			continue
		}

		if m := mdItemRe.FindStringSubmatch(line); m != nil {
			label, url := m[1], m[2]
			repo, ok := RepoFromURL(url)
			if !ok {
				continue
			}
			doc.Items = append(doc.Items, Item{
				Name: label,
				Repo: repo,
				Cate: category,
			})
			continue
		}

		// Plain text right after the title, before any items, is the
		// collection description.
		if doc.Description == "" && sawHeading && len(doc.Items) == 0 && category == "" {
			doc.Description = trimmed
		}
	}

	return &ParseResult{Success: true, Format: FormatMarkdown, Markdown: doc}
}

// RepoFromURL extracts the owner/repo identifier from a GitHub repository
// URL. Returns false when the URL does not point at a repository page.
func RepoFromURL(url string) (string, bool) {
	m := repoURLRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	owner := m[1]
	repo := strings.TrimSuffix(m[2], ".git")
	if owner == "" || repo == "" {
		return "", false
	}
	return owner + "/" + repo, true
}
