package reveal

import "testing"

func TestShortDragSnapsShut(t *testing.T) {
	var g Gesture
	g.Start(200)
	g.Move(150) // 50px, under threshold
	if g.State() != Dragging {
		t.Fatalf("expected dragging, got %s", g.State())
	}
	if g.Release() {
		t.Fatal("expected release to snap shut")
	}
	if g.State() != Resting || g.Offset() != 0 {
		t.Fatalf("expected resting at 0, got %s at %v", g.State(), g.Offset())
	}
}

func TestLongDragLatchesOpen(t *testing.T) {
	var g Gesture
	g.Start(200)
	g.Move(100) // 100px, past threshold
	if !g.Release() {
		t.Fatal("expected release to latch open")
	}
	if g.State() != Revealed || g.Offset() != MaxReveal {
		t.Fatalf("expected revealed at %d, got %s at %v", MaxReveal, g.State(), g.Offset())
	}
}

func TestSlopIgnoresJitter(t *testing.T) {
	var g Gesture
	g.Start(200)
	g.Move(195) // inside the dead zone
	if g.Offset() != 0 {
		t.Fatalf("expected no offset inside slop, got %v", g.Offset())
	}
}

func TestOffsetClampedToMaxReveal(t *testing.T) {
	var g Gesture
	g.Start(1000)
	g.Move(0)
	if g.Offset() != MaxReveal {
		t.Fatalf("expected offset clamped to %d, got %v", MaxReveal, g.Offset())
	}
}

func TestRevealedRowDragsBackShut(t *testing.T) {
	var g Gesture
	g.Open()
	g.Start(100)
	g.Move(280) // drag right past the latch point
	if g.Release() {
		t.Fatal("expected drag back to close the row")
	}
	if g.State() != Resting {
		t.Fatalf("expected resting, got %s", g.State())
	}
}
