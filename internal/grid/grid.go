// Package grid owns the fixed panel array, the current topology mode, and
// the per-panel state written by the engine each tick.
package grid

import (
	"fmt"
	"sync"
	"time"

	"panelfx/internal/colorspace"
)

// Panel is an immutable panel identity.
type Panel struct {
	ID     int
	Column int
	Row    int
}

// PanelState is the color/brightness/timestamp of one panel at a point in
// time. Brightness is clamped to [0,1]; color channels are clamped 0-255.
type PanelState struct {
	Color      colorspace.RGBCCTColor
	Brightness float64
	Timestamp  int64 // Unix milliseconds from the wall clock (not a monotonic clock)
}

func newState(color colorspace.RGBCCTColor, brightness float64, now time.Time) PanelState {
	return PanelState{
		Color:      color.Clamped(),
		Brightness: colorspace.Clamp(brightness, 0, 1),
		Timestamp:  now.UnixMilli(),
	}
}

// TopologyMode selects how panels are ordered into sequences for effects.
type TopologyMode string

const (
	TopologyCircular TopologyMode = "circular"
	TopologyLinear   TopologyMode = "linear"
	TopologySingular TopologyMode = "singular"
)

// Grid owns the fixed panel array, the current topology mode, and
// per-panel state. It is safe for concurrent use; the engine is its sole
// writer but sinks read it concurrently.
type Grid struct {
	mu      sync.RWMutex
	columns int
	rows    int
	panels  []Panel
	states  []PanelState
	mode    TopologyMode

	now func() time.Time // overridable for tests
}

// New constructs a Grid with columns*rowsPerColumn panels, all initialized
// to black, in the given initial topology mode.
func New(columns, rowsPerColumn int, initialMode TopologyMode) *Grid {
	n := columns * rowsPerColumn
	panels := make([]Panel, n)
	states := make([]PanelState, n)
	for i := 0; i < n; i++ {
		panels[i] = Panel{ID: i, Column: i / rowsPerColumn, Row: i % rowsPerColumn}
		states[i] = PanelState{Color: colorspace.Black, Brightness: 0}
	}
	return &Grid{
		columns: columns,
		rows:    rowsPerColumn,
		panels:  panels,
		states:  states,
		mode:    initialMode,
		now:     time.Now,
	}
}

// N returns the number of panels.
func (g *Grid) N() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.panels)
}

// Columns returns the column count.
func (g *Grid) Columns() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.columns
}

// RowsPerColumn returns the row count per column.
func (g *Grid) RowsPerColumn() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rows
}

// Panels returns a copy of the panel identity array.
func (g *Grid) Panels() []Panel {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Panel, len(g.panels))
	copy(out, g.panels)
	return out
}

// Mode returns the current topology mode.
func (g *Grid) Mode() TopologyMode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mode
}

// SetMode changes the current topology mode.
func (g *Grid) SetMode(mode TopologyMode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mode = mode
}

// State returns the current state of panel id.
func (g *Grid) State(id int) (PanelState, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if id < 0 || id >= len(g.states) {
		return PanelState{}, fmt.Errorf("grid: panel id %d out of range [0,%d)", id, len(g.states))
	}
	return g.states[id], nil
}

// States returns a copy of every panel's current state, in id order.
func (g *Grid) States() []PanelState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]PanelState, len(g.states))
	copy(out, g.states)
	return out
}

// SetState sets the state of a single panel, stamping the current time.
func (g *Grid) SetState(id int, color colorspace.RGBCCTColor, brightness float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id < 0 || id >= len(g.states) {
		return fmt.Errorf("grid: panel id %d out of range [0,%d)", id, len(g.states))
	}
	g.states[id] = newState(color, brightness, g.now())
	return nil
}

// SetAll replaces every panel's state. len(states) must equal N().
func (g *Grid) SetAll(states []PanelState) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(states) != len(g.states) {
		return fmt.Errorf("grid: expected %d states, got %d", len(g.states), len(states))
	}
	now := g.now()
	for i, s := range states {
		g.states[i] = newState(s.Color, s.Brightness, now)
	}
	return nil
}

// SetUniform sets every panel to the same color and brightness.
func (g *Grid) SetUniform(color colorspace.RGBCCTColor, brightness float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	for i := range g.states {
		g.states[i] = newState(color, brightness, now)
	}
}

// Reset sets every panel back to black at zero brightness.
func (g *Grid) Reset() {
	g.SetUniform(colorspace.Black, 0)
}

// Sequences returns the ordered panel-id traversals for the current
// topology. Concatenating all returned sequences yields a permutation of
// [0,N).
func (g *Grid) Sequences() [][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sequencesFor(g.mode, g.columns, g.rows)
}

func sequencesFor(mode TopologyMode, columns, rows int) [][]int {
	n := columns * rows
	switch mode {
	case TopologyLinear:
		seqs := make([][]int, columns)
		for c := 0; c < columns; c++ {
			seq := make([]int, rows)
			for r := 0; r < rows; r++ {
				seq[r] = c*rows + r
			}
			seqs[c] = seq
		}
		return seqs

	case TopologyCircular:
		seq := make([]int, 0, n)
		for c := 0; c < columns; c++ {
			if c%2 == 0 {
				for r := 0; r < rows; r++ {
					seq = append(seq, c*rows+r)
				}
			} else {
				for r := rows - 1; r >= 0; r-- {
					seq = append(seq, c*rows+r)
				}
			}
		}
		return [][]int{seq}

	default: // TopologySingular and any unrecognized mode
		seq := make([]int, n)
		for i := 0; i < n; i++ {
			seq[i] = i
		}
		return [][]int{seq}
	}
}
