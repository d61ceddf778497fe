// Package importer detects and parses external collection files (JSON, CSV,
// Markdown) into domain objects. Parsing is pure and synchronous; the only
// entry point that touches persisted state is the backup restore.
package importer

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Format identifies a supported import file format.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatUnknown  Format = "unknown"
)

var (
	headingRe  = regexp.MustCompile(`(?m)^#\s+`)
	linkItemRe = regexp.MustCompile(`(?m)^\s*[-*]\s+\[[^\]]+\]\([^)]+\)`)
)

// DetectFormat decides the format of content. The file extension wins when
// recognized; otherwise the content is sniffed: a leading brace or bracket
// means JSON, a multi-field first line means CSV, a top-level heading or a
// link-list item means Markdown.
func DetectFormat(content, filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".md":
		return FormatMarkdown
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return FormatJSON
	}

	firstLine, _, _ := strings.Cut(trimmed, "\n")
	if strings.Contains(firstLine, ",") && len(strings.Split(firstLine, ",")) > 1 {
		return FormatCSV
	}

	if headingRe.MatchString(content) || linkItemRe.MatchString(content) {
		return FormatMarkdown
	}

	return FormatUnknown
}
