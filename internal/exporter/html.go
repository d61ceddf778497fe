package exporter

import (
	"fmt"
	"html"
	"strings"

	"github.com/ondrel/curio/internal/models"
)

// CollectionHTML renders a self-contained styled document listing every
// item as a link to its repository page, with an inline category tag.
func CollectionHTML(c models.Collection) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(c.Name))
	sb.WriteString(`<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #1f2937; }
  h1 { border-bottom: 2px solid #e5e7eb; padding-bottom: .5rem; }
  .meta { color: #6b7280; font-size: .875rem; }
  ul { list-style: none; padding: 0; }
  li { padding: .5rem 0; border-bottom: 1px solid #f3f4f6; }
  a { color: #2563eb; text-decoration: none; }
  a:hover { text-decoration: underline; }
  .cate { display: inline-block; margin-left: .5rem; padding: .1rem .5rem; background: #f3f4f6; border-radius: 9999px; font-size: .75rem; color: #6b7280; }
</style>
`)
	sb.WriteString("</head>\n<body>\n")

	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(c.Name))
	if c.Description != "" {
		fmt.Fprintf(&sb, "<p>%s</p>\n", html.EscapeString(c.Description))
	}
	fmt.Fprintf(&sb, "<p class=\"meta\">%d lists &middot; created %s</p>\n",
		len(c.Lists), c.CreatedAt.Format("2006-01-02"))

	sb.WriteString("<ul>\n")
	for _, l := range c.Lists {
		fmt.Fprintf(&sb, "  <li><a href=\"%s\">%s</a>",
			html.EscapeString(repoURL(l.Repo)), html.EscapeString(l.Name))
		if l.Cate != "" {
			fmt.Fprintf(&sb, "<span class=\"cate\">%s</span>", html.EscapeString(l.Cate))
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n</body>\n</html>\n")

	return sb.String()
}
