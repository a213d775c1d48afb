package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/existflow/gleam/internal/blob"
	"github.com/existflow/gleam/internal/model"
)

// testStore opens a store over an empty in-memory sink with a fixed clock
// and sequential ids.
func testStore(t *testing.T) *Store {
	t.Helper()
	b := blob.NewMemory()
	if err := b.Set(blob.KeyProjects, "[]"); err != nil {
		t.Fatal(err)
	}
	s, err := Open(b)
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
	return s
}

func addProjects(t *testing.T, s *Store, names ...string) []model.Project {
	t.Helper()
	out := make([]model.Project, 0, len(names))
	for _, name := range names {
		p, err := s.AddProject(name)
		if err != nil {
			t.Fatalf("add project %q: %v", name, err)
		}
		out = append(out, p)
	}
	return out
}

func assertSlotsDense(t *testing.T, projects []model.Project) {
	t.Helper()
	for i, p := range projects {
		if p.Slot != i {
			t.Fatalf("slot at index %d is %d, want %d (order %v)", i, p.Slot, i, projects)
		}
	}
}

func TestOpenSeedsStarterProjects(t *testing.T) {
	s, err := Open(blob.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if got := len(s.Projects()); got != 3 {
		t.Fatalf("expected 3 starter projects, got %d", got)
	}
	assertSlotsDense(t, s.Projects())
}

func TestAddProjectAssignsSlotAndColor(t *testing.T) {
	s := testStore(t)
	for i := 0; i < 3; i++ {
		p, err := s.AddProject(fmt.Sprintf("p%d", i))
		if err != nil {
			t.Fatal(err)
		}
		if p.Slot != i {
			t.Fatalf("project %d got slot %d", i, p.Slot)
		}
		if p.Color != model.Palette[i%len(model.Palette)] {
			t.Fatalf("project %d got color %s", i, p.Color)
		}
	}
}

func TestAddProjectCap(t *testing.T) {
	s := testStore(t)
	for i := 0; i < model.MaxActiveProjects; i++ {
		if _, err := s.AddProject(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	_, err := s.AddProject("one too many")
	if !errors.Is(err, ErrProjectCap) {
		t.Fatalf("expected ErrProjectCap, got %v", err)
	}
	if got := len(s.Projects()); got != model.MaxActiveProjects {
		t.Fatalf("collection changed on rejected add: %d projects", got)
	}

	// Finishing one frees a slot.
	finished := true
	s.UpdateProject(s.Projects()[0].ID, ProjectUpdate{IsFinished: &finished})
	if _, err := s.AddProject("tenth"); err != nil {
		t.Fatalf("expected add to succeed after finishing one: %v", err)
	}
}

func TestReorderProjectsSplice(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A", "B", "C")

	s.ReorderProjects(ps[0].ID, ps[2].ID)

	got := s.Projects()
	wantNames := []string{"B", "C", "A"}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Fatalf("order %d: got %s, want %s", i, got[i].Name, name)
		}
	}
	assertSlotsDense(t, got)
}

func TestReorderProjectsUnknownIDNoop(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A", "B")

	s.ReorderProjects("nope", ps[0].ID)
	s.ReorderProjects(ps[0].ID, "nope")

	got := s.Projects()
	if got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("order changed on unknown id: %v", got)
	}
}

func TestReorderSequencesKeepSlotsDense(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A", "B", "C", "D", "E")

	moves := [][2]int{{4, 0}, {0, 3}, {2, 2}, {1, 4}, {3, 1}}
	for _, mv := range moves {
		s.ReorderProjects(ps[mv[0]].ID, ps[mv[1]].ID)

		got := s.Projects()
		assertSlotsDense(t, got)
		seen := map[string]bool{}
		for _, p := range got {
			if seen[p.ID] {
				t.Fatalf("duplicate project %s after reorder", p.ID)
			}
			seen[p.ID] = true
		}
		if len(got) != 5 {
			t.Fatalf("project count changed: %d", len(got))
		}
	}
}

func TestDeleteProjectOrphansEntries(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A", "B")

	e, err := s.AddEntry("2024-05-01", ps[0].ID, "wrote a page", 1)
	if err != nil {
		t.Fatal(err)
	}

	s.DeleteProject(ps[0].ID)

	if _, ok := s.ResolveProject(ps[0].ID); ok {
		t.Fatal("project still resolvable after delete")
	}
	got, ok := s.EntryForCell("2024-05-01", ps[0].ID)
	if !ok {
		t.Fatal("entry deleted along with project")
	}
	if got.ProjectID != ps[0].ID || got.ID != e.ID {
		t.Fatalf("entry mutated: %+v", got)
	}
	assertSlotsDense(t, s.Projects())
}

func TestAddEntryOccupiedCell(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A")

	first, err := s.AddEntry("2024-05-01", ps[0].ID, "morning pages", 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.AddEntry("2024-05-01", ps[0].ID, "evening pages", 1)
	if err != nil {
		t.Fatal(err)
	}

	// The second add must land on the same record, never duplicate the cell.
	if second.ID != first.ID {
		t.Fatalf("second add created a new entry: %s vs %s", second.ID, first.ID)
	}
	if len(s.Entries()) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(s.Entries()))
	}
	got, _ := s.EntryForCell("2024-05-01", ps[0].ID)
	if got.Content != "evening pages" {
		t.Fatalf("content not updated: %q", got.Content)
	}
}

func TestAddEntryValidation(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A")

	cases := []struct {
		date, content string
		want          error
	}{
		{"2024-05-01", "", ErrEmptyContent},
		{"2024-05-01", "   \n", ErrEmptyContent},
		{"not-a-date", "fine", ErrBadDate},
		{"2024-13-40", "fine", ErrBadDate},
	}
	for i, tc := range cases {
		if _, err := s.AddEntry(tc.date, ps[0].ID, tc.content, 1); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
	if len(s.Entries()) != 0 {
		t.Fatalf("rejected adds mutated the collection: %d entries", len(s.Entries()))
	}
}

func TestUpdateEntryRejectsEmptyContent(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A")
	e, _ := s.AddEntry("2024-05-01", ps[0].ID, "kept", 1)

	empty := "  "
	if err := s.UpdateEntry(e.ID, EntryUpdate{Content: &empty}); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	got, _ := s.EntryForCell("2024-05-01", ps[0].ID)
	if got.Content != "kept" {
		t.Fatalf("content changed on rejected update: %q", got.Content)
	}
}

func TestEntryIntensityClamped(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A")

	e, _ := s.AddEntry("2024-05-01", ps[0].ID, "x", 9)
	if e.Intensity != model.MaxIntensity {
		t.Fatalf("intensity not clamped: %d", e.Intensity)
	}
	neg := -1
	s.UpdateEntry(e.ID, EntryUpdate{Intensity: &neg})
	got, _ := s.EntryForCell("2024-05-01", ps[0].ID)
	if got.Intensity != model.MinIntensity {
		t.Fatalf("intensity not clamped on update: %d", got.Intensity)
	}
}

func TestDeleteEntryUnknownIDNoop(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A")
	s.AddEntry("2024-05-01", ps[0].ID, "x", 1)

	s.DeleteEntry("missing")
	if len(s.Entries()) != 1 {
		t.Fatalf("unknown-id delete mutated entries: %d", len(s.Entries()))
	}
}

func TestAddInspirationPrependsAndRejectsEmpty(t *testing.T) {
	s := testStore(t)

	for _, content := range []string{"", "   "} {
		if _, err := s.AddInspiration(content, ""); !errors.Is(err, ErrEmptyContent) {
			t.Fatalf("content %q: expected ErrEmptyContent, got %v", content, err)
		}
	}
	if len(s.Inspirations()) != 0 {
		t.Fatal("rejected adds mutated the pool")
	}

	first, err := s.AddInspiration("x", "")
	if err != nil {
		t.Fatal(err)
	}
	if first.IsHidden {
		t.Fatal("new inspiration born hidden")
	}
	second, _ := s.AddInspiration("y", "")

	got := s.Inspirations()
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("newest not first: %v", got)
	}
}

func TestUpdateInspirationLinkAndHide(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A")
	insp, _ := s.AddInspiration("idea", "")

	pid := ps[0].ID
	hidden := true
	if err := s.UpdateInspiration(insp.ID, InspirationUpdate{ProjectID: &pid, IsHidden: &hidden}); err != nil {
		t.Fatal(err)
	}

	got := s.Inspirations()[0]
	if got.ProjectID != pid || !got.IsHidden {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.CreatedAt != insp.CreatedAt {
		t.Fatal("createdAt mutated on update")
	}

	// Unlink with an explicit empty project id.
	none := ""
	s.UpdateInspiration(insp.ID, InspirationUpdate{ProjectID: &none})
	if s.Inspirations()[0].Linked() {
		t.Fatal("inspiration still linked after unlink")
	}
}

func TestMutationsSurviveFailingSink(t *testing.T) {
	b := blob.NewMemory()
	b.Set(blob.KeyProjects, "[]")
	s, err := Open(b)
	if err != nil {
		t.Fatal(err)
	}
	b.FailSet = errors.New("quota exceeded")

	// Persistence is fire-and-forget: sink failures never surface.
	p, err := s.AddProject("A")
	if err != nil {
		t.Fatalf("mutation failed on sink error: %v", err)
	}
	if _, ok := s.ResolveProject(p.ID); !ok {
		t.Fatal("in-memory state lost on sink error")
	}
}

func TestPersistenceRoundTripThroughBlob(t *testing.T) {
	b := blob.NewMemory()
	b.Set(blob.KeyProjects, "[]")
	s, err := Open(b)
	if err != nil {
		t.Fatal(err)
	}
	p, _ := s.AddProject("A")
	s.AddEntry("2024-05-01", p.ID, "note", 1)
	s.AddInspiration("idea", p.ID)

	// A second store over the same sink sees the same state.
	s2, err := Open(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(s2.Projects()) != 1 || len(s2.Entries()) != 1 || len(s2.Inspirations()) != 1 {
		t.Fatalf("reload mismatch: %d/%d/%d",
			len(s2.Projects()), len(s2.Entries()), len(s2.Inspirations()))
	}
	if s2.Projects()[0] != s.Projects()[0] {
		t.Fatalf("project changed across reload: %+v vs %+v", s2.Projects()[0], s.Projects()[0])
	}
}
