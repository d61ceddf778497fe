// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Curio tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ondrel/curio/internal/catalog"
	"github.com/ondrel/curio/internal/collections"
	"github.com/ondrel/curio/internal/exporter"
	"github.com/ondrel/curio/internal/models"
)

// Server wraps the MCP server with Curio tools.
type Server struct {
	mcp  *server.MCPServer
	cols *collections.Manager
	db   *catalog.DB
}

// New creates a new MCP server with all Curio tools registered.
func New(cols *collections.Manager, db *catalog.DB) *Server {
	s := &Server{cols: cols, db: db}

	s.mcp = server.NewMCPServer(
		"Curio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_lists",
		mcp.WithDescription("Full-text search through the catalog of awesome lists."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchLists)

	s.mcp.AddTool(mcp.NewTool("list_collections",
		mcp.WithDescription("List all collections with their ids, names and list counts."),
	), s.listCollections)

	s.mcp.AddTool(mcp.NewTool("get_collection",
		mcp.WithDescription("Read a collection with all of its list entries."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Collection id")),
	), s.getCollection)

	s.mcp.AddTool(mcp.NewTool("add_list_to_collection",
		mcp.WithDescription("Add a list to a collection by repo key. Adding a repo that is "+
			"already present is a no-op."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Collection id")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repo key in owner/name form")),
		mcp.WithString("cate", mcp.Description("Optional category tag for the entry")),
	), s.addListToCollection)

	s.mcp.AddTool(mcp.NewTool("export_collection_markdown",
		mcp.WithDescription("Render a collection as a Markdown document grouped by category."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Collection id")),
	), s.exportCollectionMarkdown)

	s.mcp.AddTool(mcp.NewTool("get_import_contract",
		mcp.WithDescription("Returns the file format contract for importing collections. "+
			"Call this before preparing JSON, CSV or Markdown content for import."),
	), s.getImportContract)

	// Resource: import format contract.
	s.mcp.AddResource(
		mcp.NewResource("curio://import-formats", "Import Format Contract",
			mcp.WithResourceDescription("File shapes accepted by the collection importer."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readImportFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchLists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listCollections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type summary struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Lists int    `json:"lists"`
	}
	all := s.cols.All()
	items := make([]summary, len(all))
	for i, c := range all {
		items[i] = summary{ID: c.ID, Name: c.Name, Lists: len(c.Lists)}
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, ok := s.cols.ByID(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(c, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addListToCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	repo, err := req.RequireString("repo")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, ok := s.cols.ByID(id); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}

	ref := models.ListRef{Repo: repo}
	if cate, cateErr := req.RequireString("cate"); cateErr == nil {
		ref.Cate = cate
	}
	// Enrich from the catalog when the repo is indexed.
	if src, srcErr := s.db.GetSource(repo); srcErr == nil {
		ref.Name = src.Name
		if ref.Cate == "" {
			ref.Cate = src.Topic
		}
	}

	s.cols.AddList(id, ref)
	return mcp.NewToolResultText(fmt.Sprintf("added %s to %s", repo, id)), nil
}

func (s *Server) exportCollectionMarkdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, ok := s.cols.ByID(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	a, err := exporter.ExportCollection(c, exporter.FormatMarkdown)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(a.Data)), nil
}

func (s *Server) getImportContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ImportFormatContract), nil
}

func (s *Server) readImportFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "curio://import-formats",
			MIMEType: "text/markdown",
			Text:     ImportFormatContract,
		},
	}, nil
}
