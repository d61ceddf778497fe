package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ondrel/curio/internal/api"
	"github.com/ondrel/curio/internal/catalog"
	"github.com/ondrel/curio/internal/collections"
	"github.com/ondrel/curio/internal/listmgmt"
	"github.com/ondrel/curio/internal/models"
	"github.com/ondrel/curio/internal/recommend"
	"github.com/ondrel/curio/internal/store"
	"github.com/ondrel/curio/internal/testutil"
)

type env struct {
	svc    *api.Service
	server *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := testutil.TestStore(t)
	db := testutil.TestDB(t)
	logger := testutil.TestLogger()

	svc := &api.Service{
		Collections: collections.NewManager(),
		Lists:       listmgmt.NewManager(nil),
		Store:       st,
		Catalog:     db,
		Searcher:    catalog.NewSearcher(db, 10*time.Millisecond),
		Recommender: recommend.NewService(db, logger),
		Logger:      logger,
	}
	srv := httptest.NewServer(api.NewRouter(svc, false, "", nil))
	t.Cleanup(srv.Close)
	return &env{svc: svc, server: srv}
}

func (e *env) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestCollectionLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, "POST", "/collections", api.CreateCollectionRequest{Name: "Frontend", Color: "#333"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decode[models.Collection](t, resp)
	if created.ID == "" || created.Name != "Frontend" {
		t.Fatalf("created = %+v", created)
	}

	resp = e.do(t, "GET", "/collections/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}

	newName := "Frontend Picks"
	resp = e.do(t, "PATCH", "/collections/"+created.ID, models.CollectionPatch{Name: &newName})
	updated := decode[models.Collection](t, resp)
	if updated.Name != "Frontend Picks" {
		t.Errorf("patched name = %q", updated.Name)
	}

	resp = e.do(t, "POST", "/collections/"+created.ID+"/lists",
		api.AddListRequest{Repo: "sindresorhus/awesome", Name: "awesome", Cate: "General"})
	withList := decode[models.Collection](t, resp)
	if len(withList.Lists) != 1 || withList.Lists[0].Repo != "sindresorhus/awesome" {
		t.Errorf("lists after add = %+v", withList.Lists)
	}

	resp = e.do(t, "DELETE", "/collections/"+created.ID+"/lists/sindresorhus/awesome", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("remove list status = %d", resp.StatusCode)
	}
	got, _ := e.svc.Collections.ByID(created.ID)
	if len(got.Lists) != 0 {
		t.Errorf("lists after remove = %+v", got.Lists)
	}

	resp = e.do(t, "DELETE", "/collections/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = e.do(t, "GET", "/collections/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.StatusCode)
	}
}

func TestCreateCollectionRejectsInvalidDraft(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, "POST", "/collections", api.CreateCollectionRequest{Name: ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty name status = %d", resp.StatusCode)
	}

	resp = e.do(t, "POST", "/collections", api.CreateCollectionRequest{Name: strings.Repeat("x", 101)})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("long name status = %d", resp.StatusCode)
	}
}

func TestActiveSelectionRoundTrip(t *testing.T) {
	e := newEnv(t)
	created := e.svc.Collections.Create(models.Collection{Name: "A"})

	resp := e.do(t, "PUT", "/collections/active", api.ActiveRequest{ID: created.ID})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("set active status = %d", resp.StatusCode)
	}

	resp = e.do(t, "GET", "/collections/active", nil)
	if got := decode[api.ActiveRequest](t, resp); got.ID != created.ID {
		t.Errorf("active = %q, want %q", got.ID, created.ID)
	}
}

func TestReorderCollections(t *testing.T) {
	e := newEnv(t)
	a := e.svc.Collections.Create(models.Collection{Name: "A"})
	b := e.svc.Collections.Create(models.Collection{Name: "B"})

	resp := e.do(t, "PUT", "/collections/order", api.ReorderRequest{Collections: []models.Collection{b, a}})
	got := decode[api.CollectionListResponse](t, resp)
	if len(got.Collections) != 2 || got.Collections[0].ID != b.ID {
		t.Errorf("order after reorder = %+v", got.Collections)
	}
}

func TestListConfigToggleOverHTTP(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, "POST", "/list-config/toggle", api.RepoRequest{Repo: "a/one"})
	got := decode[api.ListConfigResponse](t, resp)
	if len(got.Config.DisabledLists) != 1 || got.Config.DisabledLists[0] != "a/one" {
		t.Fatalf("disabled after toggle = %v", got.Config.DisabledLists)
	}

	resp = e.do(t, "POST", "/list-config/toggle", api.RepoRequest{Repo: "a/one"})
	got = decode[api.ListConfigResponse](t, resp)
	if len(got.Config.DisabledLists) != 0 {
		t.Errorf("disabled after second toggle = %v", got.Config.DisabledLists)
	}

	resp = e.do(t, "POST", "/list-config/toggle", api.RepoRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing repo status = %d", resp.StatusCode)
	}
}

func TestCustomListsOverHTTP(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, "POST", "/custom-lists", models.CustomList{Repo: "me/mine", Name: "mine"})
	got := decode[api.CustomListsResponse](t, resp)
	if len(got.Lists) != 1 {
		t.Fatalf("custom lists = %+v", got.Lists)
	}

	resp = e.do(t, "DELETE", "/custom-lists/me/mine", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove status = %d", resp.StatusCode)
	}
	if got := e.svc.Lists.CustomLists(); len(got) != 0 {
		t.Errorf("custom lists after remove = %+v", got)
	}
}

func TestImportJSONOverHTTP(t *testing.T) {
	e := newEnv(t)

	content := `{"name":"From File","lists":[{"repo":"a/one","name":"one","cate":"Go"}]}`
	resp := e.do(t, "POST", "/import", api.ImportRequest{Filename: "picks.json", Content: content})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d", resp.StatusCode)
	}
	got := decode[api.ImportResponse](t, resp)
	if got.Imported != 1 || got.Collections[0].Name != "From File" {
		t.Errorf("import response = %+v", got)
	}

	resp = e.do(t, "POST", "/import", api.ImportRequest{Content: "{broken"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("broken import status = %d", resp.StatusCode)
	}
}

func TestExportCollectionDownloadHeaders(t *testing.T) {
	e := newEnv(t)
	c := e.svc.Collections.Create(models.Collection{
		Name:  "Frontend",
		Lists: []models.ListRef{{Repo: "a/one", Name: "one", Cate: "CSS"}},
	})

	resp := e.do(t, "GET", "/export/collections/"+c.ID+"?format=markdown", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	resp = e.do(t, "GET", "/export/collections/missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing collection status = %d", resp.StatusCode)
	}

	resp = e.do(t, "GET", "/export/collections/"+c.ID+"?format=docx", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d", resp.StatusCode)
	}
}

func TestBackupRoundTripOverHTTP(t *testing.T) {
	e := newEnv(t)
	e.svc.Collections.Create(models.Collection{Name: "Keep Me"})
	e.svc.Store.Write(store.KeyCollections, e.svc.Collections.All())

	resp := e.do(t, "GET", "/export/backup", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export backup status = %d", resp.StatusCode)
	}
	var backup bytes.Buffer
	if _, err := backup.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}

	// Restore into a fresh environment.
	e2 := newEnv(t)
	req, _ := http.NewRequest("POST", e2.server.URL+"/import/backup", bytes.NewReader(backup.Bytes()))
	restoreResp, err := e2.server.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer restoreResp.Body.Close()
	if restoreResp.StatusCode != http.StatusNoContent {
		t.Fatalf("restore status = %d", restoreResp.StatusCode)
	}

	all := e2.svc.Collections.All()
	if len(all) != 1 || all[0].Name != "Keep Me" {
		t.Errorf("collections after restore = %+v", all)
	}
}

func TestAISettingsNeverExposesKey(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, "PUT", "/ai-settings", models.AISettings{
		Provider: "openai", APIKey: "sk-secret", Model: "gpt-4o-mini", Enabled: true, MaxTokens: 512,
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("put status = %d", resp.StatusCode)
	}

	resp = e.do(t, "GET", "/ai-settings", nil)
	var raw bytes.Buffer
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(raw.String(), "sk-secret") {
		t.Fatalf("API key leaked: %s", raw.String())
	}
	var got map[string]any
	if err := json.Unmarshal(raw.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["hasKey"] != true || got["provider"] != "openai" {
		t.Errorf("settings body = %v", got)
	}

	// An empty incoming key keeps the stored one.
	resp = e.do(t, "PUT", "/ai-settings", models.AISettings{Provider: "openai", Model: "gpt-4o", Enabled: true})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("second put status = %d", resp.StatusCode)
	}
	cfg := store.Read(e.svc.Store, store.KeyAISettings, models.AISettings{})
	if cfg.APIKey != "sk-secret" || cfg.Model != "gpt-4o" {
		t.Errorf("stored settings = %+v", cfg)
	}
}

func TestSearchEndpoint(t *testing.T) {
	e := newEnv(t)
	if err := e.svc.Catalog.UpsertSource(models.Source{Repo: "alice/awesome-go", Name: "awesome-go", Topic: "go"}); err != nil {
		t.Fatal(err)
	}

	resp := e.do(t, "GET", "/search?q=awesome-go", nil)
	got := decode[api.SearchResponse](t, resp)
	if len(got.Results) != 1 || got.Results[0].Repo != "alice/awesome-go" {
		t.Errorf("search results = %+v", got.Results)
	}

	resp = e.do(t, "GET", "/search", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing q status = %d", resp.StatusCode)
	}
}

func TestAuthTokenMode(t *testing.T) {
	st := testutil.TestStore(t)
	svc := &api.Service{
		Collections: collections.NewManager(),
		Lists:       listmgmt.NewManager(nil),
		Store:       st,
		Logger:      testutil.TestLogger(),
	}
	srv := httptest.NewServer(api.NewRouter(svc, true, "hunter2", nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/collections")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d", resp.StatusCode)
	}

	req, _ := http.NewRequest("GET", srv.URL+"/collections", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong token status = %d", resp.StatusCode)
	}

	req.Header.Set("Authorization", "Bearer hunter2")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid token status = %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, "GET", "/health", nil)
	got := decode[map[string]string](t, resp)
	if got["status"] != "ok" || got["version"] == "" {
		t.Errorf("health body = %v", got)
	}
}
