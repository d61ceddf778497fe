package exporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ondrel/curio/internal/models"
)

// Uncategorized is the bucket heading for items without a category.
const Uncategorized = "Uncategorized"

// CollectionMarkdown renders one collection: H1 name, optional description
// paragraph, metadata lines, then items grouped by category under H3
// headings.
func CollectionMarkdown(c models.Collection) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", c.Name)
	if c.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", c.Description)
	}
	fmt.Fprintf(&sb, "Created: %s\n", c.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Updated: %s\n\n", c.UpdatedAt.Format("2006-01-02"))

	for _, cate := range categoryOrder(c.Lists) {
		fmt.Fprintf(&sb, "### %s\n\n", cate)
		for _, l := range c.Lists {
			if categoryOf(l) != cate {
				continue
			}
			fmt.Fprintf(&sb, "- [%s](%s)\n", l.Name, repoURL(l.Repo))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// CollectionsMarkdown concatenates per-collection blocks behind an
// aggregate header, separated by horizontal rules.
func CollectionsMarkdown(cs []models.Collection) string {
	var sb strings.Builder

	sb.WriteString("# My Collections\n\n")
	fmt.Fprintf(&sb, "Exported: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&sb, "Collections: %d\n\n", len(cs))

	for i, c := range cs {
		if i > 0 {
			sb.WriteString("---\n\n")
		}
		sb.WriteString(CollectionMarkdown(c))
	}

	return sb.String()
}

// categoryOrder returns the distinct category buckets in first-seen order,
// with Uncategorized standing in for empty categories.
func categoryOrder(lists []models.ListRef) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range lists {
		cate := categoryOf(l)
		if _, ok := seen[cate]; ok {
			continue
		}
		seen[cate] = struct{}{}
		out = append(out, cate)
	}
	return out
}

func categoryOf(l models.ListRef) string {
	if l.Cate == "" {
		return Uncategorized
	}
	return l.Cate
}
