package exporter

import (
	"strings"

	"github.com/ondrel/curio/internal/models"
)

// csvHeader is the fixed column set for collection CSV exports.
var csvHeader = []string{"Name", "Repository", "Category", "GitHub URL", "Added At"}

// CollectionCSV renders one row per list item. Every field is wrapped in
// double quotes with internal quotes doubled, so embedded commas and quotes
// survive a round trip through the CSV importer.
func CollectionCSV(c models.Collection) string {
	var sb strings.Builder

	writeCSVRow(&sb, csvHeader)
	for _, l := range c.Lists {
		writeCSVRow(&sb, []string{
			l.Name,
			l.Repo,
			l.Cate,
			repoURL(l.Repo),
			l.AddedAt.Format("2006-01-02"),
		})
	}

	return sb.String()
}

func writeCSVRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
