package mcpserver

// ImportFormatContract describes the file shapes the import tools accept.
// LLM consumers should follow it when preparing content for import.
const ImportFormatContract = `# Curio Import Format Contract

Curio imports collections from three file formats. Format is detected from
the file extension first, then from the content itself.

## JSON

Three shapes are accepted:

1. A single collection object:
` + "```" + `json
{"name": "Frontend", "lists": [{"repo": "owner/name", "name": "awesome-x", "cate": "UI"}]}
` + "```" + `
2. A collections envelope: ` + "`" + `{"collections": [ ...collection objects... ]}` + "`" + `
3. A backup envelope with ` + "`" + `version` + "`" + ` plus ` + "`" + `collections` + "`" + ` or
   ` + "`" + `preferences` + "`" + `. Backups go through the backup restore path, not
   the collection import path.

Rules: ` + "`" + `name` + "`" + ` is required, at most 100 characters; description at
most 500; every list entry needs a ` + "`" + `repo` + "`" + ` in owner/name form.

## CSV

First line is the header. Recognized columns (case-insensitive):
` + "`" + `repository` + "`" + ` or ` + "`" + `repo` + "`" + ` (owner/name or a GitHub URL),
` + "`" + `name` + "`" + ` or ` + "`" + `title` + "`" + `, ` + "`" + `category` + "`" + ` or ` + "`" + `cate` + "`" + `,
` + "`" + `github url` + "`" + `, ` + "`" + `url` + "`" + `, ` + "`" + `link` + "`" + `. Rows without a
resolvable repo are skipped. All rows land in one collection.

## Markdown

` + "```" + `markdown
# Collection Name

Optional description paragraph.

## Category

- [display name](https://github.com/owner/name)
` + "```" + `

The H1 becomes the collection name, H2/H3 headings become categories, and
link items under them become list entries. Links that are not GitHub
repository URLs are skipped.
`
