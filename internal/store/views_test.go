package store

import (
	"reflect"
	"testing"
)

func TestAvailableMonths(t *testing.T) {
	s := testStore(t) // clock fixed to 2024-05-20
	ps := addProjects(t, s, "A")
	s.AddEntry("2024-03-01", ps[0].ID, "x", 1)
	s.AddEntry("2024-01-15", ps[0].ID, "y", 1)

	got := s.AvailableMonths()
	want := []string{"ALL", "2024-05", "2024-03", "2024-01"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAvailableMonthsDeduplicates(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A")
	s.AddEntry("2024-05-01", ps[0].ID, "x", 1)
	s.AddEntry("2024-05-19", ps[0].ID, "y", 1)

	got := s.AvailableMonths()
	want := []string{"ALL", "2024-05"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGridProjectsExcludesFinished(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A", "B")
	finished := true
	s.UpdateProject(ps[0].ID, ProjectUpdate{IsFinished: &finished})

	got := s.GridProjects()
	if len(got) != 1 || got[0].ID != ps[1].ID {
		t.Fatalf("grid projects: %v", got)
	}
}

func TestVisibleProjects(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "active", "quiet-finished", "finished-with-entry")
	finished := true
	s.UpdateProject(ps[1].ID, ProjectUpdate{IsFinished: &finished})
	s.UpdateProject(ps[2].ID, ProjectUpdate{IsFinished: &finished})
	s.AddEntry("2024-04-02", ps[2].ID, "trace", 1)

	names := func(month string) []string {
		var out []string
		for _, p := range s.VisibleProjects(month) {
			out = append(out, p.Name)
		}
		return out
	}

	if got := names("2024-04"); !reflect.DeepEqual(got, []string{"active", "finished-with-entry"}) {
		t.Fatalf("2024-04: %v", got)
	}
	if got := names("2024-05"); !reflect.DeepEqual(got, []string{"active"}) {
		t.Fatalf("2024-05: %v", got)
	}
	if got := names(MonthAll); !reflect.DeepEqual(got, []string{"active", "quiet-finished", "finished-with-entry"}) {
		t.Fatalf("ALL: %v", got)
	}
}

func TestStatsFiltersAndSorts(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "Writing", "Reading")
	finished := true
	s.UpdateProject(ps[1].ID, ProjectUpdate{IsFinished: &finished})

	s.AddEntry("2024-05-03", ps[0].ID, "first", 1)
	s.AddEntry("2024-05-10", ps[0].ID, "second", 1)
	s.AddEntry("2024-04-01", ps[0].ID, "older month", 1)

	s.AddInspiration("visible idea", ps[0].ID)
	hiddenInsp, _ := s.AddInspiration("hidden idea", ps[0].ID)
	hidden := true
	s.UpdateInspiration(hiddenInsp.ID, InspirationUpdate{IsHidden: &hidden})

	stats := s.Stats("2024-05", "", StatusAll)
	if len(stats) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(stats))
	}
	writing := stats[0]
	if len(writing.Entries) != 2 {
		t.Fatalf("expected 2 entries in month, got %d", len(writing.Entries))
	}
	if writing.Entries[0].Date != "2024-05-10" || writing.Entries[1].Date != "2024-05-03" {
		t.Fatalf("entries not date-descending: %v", writing.Entries)
	}
	if len(writing.Inspirations) != 1 || writing.Inspirations[0].Content != "visible idea" {
		t.Fatalf("hidden inspiration leaked into stats: %v", writing.Inspirations)
	}

	// ALL month includes every entry.
	all := s.Stats(MonthAll, "", StatusAll)
	if len(all[0].Entries) != 3 {
		t.Fatalf("ALL month: expected 3 entries, got %d", len(all[0].Entries))
	}

	// Name search is case-insensitive substring.
	if got := s.Stats(MonthAll, "writ", StatusAll); len(got) != 1 || got[0].Project.Name != "Writing" {
		t.Fatalf("search: %v", got)
	}

	// Status filters.
	if got := s.Stats(MonthAll, "", StatusOngoing); len(got) != 1 || got[0].Project.Name != "Writing" {
		t.Fatalf("ongoing: %v", got)
	}
	if got := s.Stats(MonthAll, "", StatusFinished); len(got) != 1 || got[0].Project.Name != "Reading" {
		t.Fatalf("finished: %v", got)
	}
}

func TestFilterInspirations(t *testing.T) {
	s := testStore(t)
	ps := addProjects(t, s, "A")

	linked, _ := s.AddInspiration("linked thought", ps[0].ID)
	s.AddInspiration("loose thought", "")
	hiddenInsp, _ := s.AddInspiration("buried thought", "")
	hidden := true
	s.UpdateInspiration(hiddenInsp.ID, InspirationUpdate{IsHidden: &hidden})

	contents := func(query, filter string) []string {
		var out []string
		for _, i := range s.FilterInspirations(query, filter) {
			out = append(out, i.Content)
		}
		return out
	}

	if got := contents("", FilterAll); !reflect.DeepEqual(got, []string{"loose thought", "linked thought"}) {
		t.Fatalf("ALL: %v", got)
	}
	if got := contents("", FilterUnlinked); !reflect.DeepEqual(got, []string{"loose thought"}) {
		t.Fatalf("UNLINKED: %v", got)
	}
	if got := contents("", FilterHidden); !reflect.DeepEqual(got, []string{"buried thought"}) {
		t.Fatalf("HIDDEN: %v", got)
	}
	if got := contents("", ps[0].ID); !reflect.DeepEqual(got, []string{"linked thought"}) {
		t.Fatalf("project filter: %v", got)
	}
	if got := contents("LINKED", FilterAll); !reflect.DeepEqual(got, []string{"linked thought"}) {
		t.Fatalf("case-insensitive search: %v", got)
	}
	// Unlinked filter never shows the hidden item even though it is unlinked.
	if got := contents("buried", FilterUnlinked); len(got) != 0 {
		t.Fatalf("hidden leaked through UNLINKED: %v", got)
	}

	if _, ok := s.ResolveProject(linked.ProjectID); !ok {
		t.Fatal("linked project should resolve")
	}
	s.DeleteProject(ps[0].ID)
	if _, ok := s.ResolveProject(linked.ProjectID); ok {
		t.Fatal("deleted project should read as unlinked")
	}
}
