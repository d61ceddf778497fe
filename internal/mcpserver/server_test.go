package mcpserver

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ondrel/curio/internal/catalog"
	"github.com/ondrel/curio/internal/collections"
	"github.com/ondrel/curio/internal/models"
)

func testServer(t *testing.T) (*Server, *collections.Manager) {
	t.Helper()

	dbFile, err := os.CreateTemp("", "curio-mcp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := catalog.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.UpsertSource(models.Source{
		Repo: "alice/awesome-go", Name: "awesome-go", User: "alice", Topic: "go",
	}); err != nil {
		t.Fatal(err)
	}

	cols := collections.NewManager()
	return New(cols, db), cols
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	// mcp-go has no test helper for dispatching a tool call, so the tool
	// handler functions are called directly.
	switch name {
	case "search_lists":
		result, err = srv.searchLists(ctx, req)
	case "list_collections":
		result, err = srv.listCollections(ctx, req)
	case "get_collection":
		result, err = srv.getCollection(ctx, req)
	case "add_list_to_collection":
		result, err = srv.addListToCollection(ctx, req)
	case "export_collection_markdown":
		result, err = srv.exportCollectionMarkdown(ctx, req)
	case "get_import_contract":
		result, err = srv.getImportContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchListsTool(t *testing.T) {
	srv, _ := testServer(t)

	res := callTool(t, srv, "search_lists", map[string]interface{}{"query": "awesome-go"})
	if res.IsError {
		t.Fatalf("search_lists errored: %s", resultText(res))
	}
	if !strings.Contains(resultText(res), "alice/awesome-go") {
		t.Errorf("search result missing hit: %s", resultText(res))
	}

	res = callTool(t, srv, "search_lists", map[string]interface{}{})
	if !res.IsError {
		t.Error("missing query should be a tool error")
	}
}

func TestCollectionTools(t *testing.T) {
	srv, cols := testServer(t)
	c := cols.Create(models.Collection{Name: "Backend"})

	res := callTool(t, srv, "list_collections", nil)
	if !strings.Contains(resultText(res), c.ID) {
		t.Errorf("list_collections missing %s: %s", c.ID, resultText(res))
	}

	res = callTool(t, srv, "get_collection", map[string]interface{}{"id": c.ID})
	if !strings.Contains(resultText(res), "Backend") {
		t.Errorf("get_collection body: %s", resultText(res))
	}

	res = callTool(t, srv, "get_collection", map[string]interface{}{"id": "nope"})
	if !res.IsError {
		t.Error("unknown id should be a tool error")
	}
}

func TestAddListToCollectionEnrichesFromCatalog(t *testing.T) {
	srv, cols := testServer(t)
	c := cols.Create(models.Collection{Name: "Backend"})

	res := callTool(t, srv, "add_list_to_collection", map[string]interface{}{
		"id": c.ID, "repo": "alice/awesome-go",
	})
	if res.IsError {
		t.Fatalf("add failed: %s", resultText(res))
	}

	got, _ := cols.ByID(c.ID)
	if len(got.Lists) != 1 {
		t.Fatalf("lists = %+v", got.Lists)
	}
	if got.Lists[0].Name != "awesome-go" || got.Lists[0].Cate != "go" {
		t.Errorf("entry not enriched from catalog: %+v", got.Lists[0])
	}
}

func TestExportCollectionMarkdownTool(t *testing.T) {
	srv, cols := testServer(t)
	c := cols.Create(models.Collection{
		Name:  "Backend",
		Lists: []models.ListRef{{Repo: "alice/awesome-go", Name: "awesome-go", Cate: "go"}},
	})

	res := callTool(t, srv, "export_collection_markdown", map[string]interface{}{"id": c.ID})
	text := resultText(res)
	if !strings.Contains(text, "# Backend") || !strings.Contains(text, "alice/awesome-go") {
		t.Errorf("markdown export body:\n%s", text)
	}
}

func TestGetImportContractTool(t *testing.T) {
	srv, _ := testServer(t)

	res := callTool(t, srv, "get_import_contract", nil)
	text := resultText(res)
	for _, want := range []string{"JSON", "CSV", "Markdown"} {
		if !strings.Contains(text, want) {
			t.Errorf("contract missing %q section", want)
		}
	}
}
