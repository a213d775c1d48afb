// Package reveal tracks the swipe-to-reveal gesture on a list row: drag a
// row sideways past a threshold and its action buttons stay exposed. The
// state here is UI-local and ephemeral; it never touches persisted data.
package reveal

// State is the discrete gesture state of one row.
type State int

const (
	Resting State = iota
	Dragging
	Revealed
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Revealed:
		return "revealed"
	default:
		return "resting"
	}
}

const (
	// Threshold is how far a drag must travel on release to latch open.
	Threshold = 70
	// MaxReveal is the full width of the exposed action area.
	MaxReveal = 180
	// slop is the dead zone before a pointer-down counts as a drag.
	slop = 15
)

// Gesture is the per-row reveal state machine.
type Gesture struct {
	state       State
	startX      float64
	startOffset float64
	offset      float64
}

// State returns the current discrete state.
func (g *Gesture) State() State { return g.state }

// Offset returns how far the row is currently slid open, 0..MaxReveal.
func (g *Gesture) Offset() float64 { return g.offset }

// Start begins tracking a drag at pointer position x.
func (g *Gesture) Start(x float64) {
	g.startX = x
	g.startOffset = g.offset
	if g.state != Revealed {
		g.state = Dragging
	}
}

// Move updates the drag with the current pointer position. Movement inside
// the slop zone is ignored.
func (g *Gesture) Move(x float64) {
	delta := g.startX - x // dragging left opens
	if delta > -slop && delta < slop {
		return
	}
	g.state = Dragging
	g.offset = clamp(g.startOffset+delta, 0, MaxReveal)
}

// Release ends the drag: past the threshold the row latches open,
// otherwise it snaps shut. Returns true when the row ends up revealed.
func (g *Gesture) Release() bool {
	if g.offset > Threshold {
		g.state = Revealed
		g.offset = MaxReveal
		return true
	}
	g.Reset()
	return false
}

// Reset snaps the row shut.
func (g *Gesture) Reset() {
	g.state = Resting
	g.offset = 0
}

// Open latches the row fully open without a drag (keyboard path).
func (g *Gesture) Open() {
	g.state = Revealed
	g.offset = MaxReveal
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
