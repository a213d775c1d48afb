package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/existflow/gleam/internal/blob"
	"github.com/existflow/gleam/internal/model"
	"github.com/existflow/gleam/internal/store"
)

func testServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	b := blob.NewMemory()
	if err := b.Set(blob.KeyProjects, "[]"); err != nil {
		t.Fatal(err)
	}
	s, err := store.Open(b)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	n := 0
	s.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	s.Now = func() time.Time {
		return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	}
	return New(s), s
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	rec := do(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestProjectLifecycle(t *testing.T) {
	srv, s := testServer(t)

	rec := do(t, srv, http.MethodPost, "/api/v1/projects", `{"name":"Writing"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var p model.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Name != "Writing" || p.Slot != 0 {
		t.Fatalf("created project = %+v", p)
	}

	rec = do(t, srv, http.MethodPatch, "/api/v1/projects/"+p.ID, `{"isFinished":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d", rec.Code)
	}
	got, ok := s.ResolveProject(p.ID)
	if !ok || !got.IsFinished {
		t.Fatalf("project after patch = %+v, ok=%v", got, ok)
	}

	rec = do(t, srv, http.MethodDelete, "/api/v1/projects/"+p.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if _, ok := s.ResolveProject(p.ID); ok {
		t.Fatal("project survived delete")
	}
}

func TestProjectCapConflict(t *testing.T) {
	srv, _ := testServer(t)
	for i := 0; i < model.MaxActiveProjects; i++ {
		rec := do(t, srv, http.MethodPost, "/api/v1/projects", fmt.Sprintf(`{"name":"p%d"}`, i))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, rec.Code)
		}
	}
	rec := do(t, srv, http.MethodPost, "/api/v1/projects", `{"name":"overflow"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("overflow status = %d, want 409", rec.Code)
	}
}

func TestEntriesByMonth(t *testing.T) {
	srv, s := testServer(t)
	p, err := s.AddProject("Reading")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEntry("2024-05-01", p.ID, "ch 1", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEntry("2024-04-30", p.ID, "ch 0", 1); err != nil {
		t.Fatal(err)
	}

	rec := do(t, srv, http.MethodGet, "/api/v1/entries?month=2024-05", "")
	var entries []model.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Date != "2024-05-01" {
		t.Fatalf("entries = %+v", entries)
	}

	rec = do(t, srv, http.MethodGet, "/api/v1/entries", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("unfiltered entries = %d, want 2", len(entries))
	}
}

func TestAddEntryValidation(t *testing.T) {
	srv, s := testServer(t)
	p, err := s.AddProject("Movement")
	if err != nil {
		t.Fatal(err)
	}

	rec := do(t, srv, http.MethodPost, "/api/v1/entries",
		fmt.Sprintf(`{"date":"2024-05-03","projectId":%q,"content":"   "}`, p.ID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank content status = %d, want 400", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/api/v1/entries",
		fmt.Sprintf(`{"date":"05/03/2024","projectId":%q,"content":"run"}`, p.ID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want 400", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/api/v1/entries",
		fmt.Sprintf(`{"date":"2024-05-03","projectId":%q,"content":"run"}`, p.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid entry status = %d, body %s", rec.Code, rec.Body)
	}
	var e model.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if e.Intensity != model.DefaultIntensity {
		t.Fatalf("intensity = %d, want default %d", e.Intensity, model.DefaultIntensity)
	}
}

func TestInspirationFilters(t *testing.T) {
	srv, s := testServer(t)
	p, err := s.AddProject("Writing")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddInspiration("loose thought", ""); err != nil {
		t.Fatal(err)
	}
	linked, err := s.AddInspiration("plot twist", p.ID)
	if err != nil {
		t.Fatal(err)
	}

	rec := do(t, srv, http.MethodGet, "/api/v1/inspirations?filter=UNLINKED", "")
	var got []model.Inspiration
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Content != "loose thought" {
		t.Fatalf("unlinked = %+v", got)
	}

	rec = do(t, srv, http.MethodGet, "/api/v1/inspirations?filter="+p.ID, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != linked.ID {
		t.Fatalf("by project = %+v", got)
	}
}

func TestBackupRoundTripOverHTTP(t *testing.T) {
	srv, s := testServer(t)
	p, err := s.AddProject("Reading")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEntry("2024-05-02", p.ID, "ch 2", 3); err != nil {
		t.Fatal(err)
	}

	rec := do(t, srv, http.MethodGet, "/api/v1/backup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	snapshot := rec.Body.String()

	s.DeleteProject(p.ID)
	if len(s.Projects()) != 0 {
		t.Fatal("expected empty store before import")
	}

	rec = do(t, srv, http.MethodPost, "/api/v1/backup", snapshot)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed import status = %d, want 400", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/api/v1/backup?confirm=true", snapshot)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("import status = %d, body %s", rec.Code, rec.Body)
	}
	if len(s.Projects()) != 1 || len(s.Entries()) != 1 {
		t.Fatalf("after import: %d projects, %d entries", len(s.Projects()), len(s.Entries()))
	}
}
