package effects

import (
	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

// Blackout is a one-shot effect that fades the grid's captured snapshot
// down to nothing over transitionDuration.
type Blackout struct {
	startTime    float64
	durationMS   float64
	snapshot     []grid.PanelState
	lastProgress float64
	done         bool
}

// NewBlackout constructs an uninitialized Blackout effect.
func NewBlackout() *Blackout { return &Blackout{} }

func (e *Blackout) Name() Name { return NameBlackout }
func (e *Blackout) Kind() Kind { return KindOneshot }

func (e *Blackout) Defaults() Params {
	return Params{"transitionDuration": Num(500)}
}

func (e *Blackout) Initialize(ctx Context) {
	e.startTime = ms(ctx.ElapsedTime)
	e.durationMS = ctx.Params.NumberOr("transitionDuration", 500)
	e.snapshot = ctx.Grid.States()
	e.lastProgress = 0
	e.done = e.durationMS <= 0
}

func (e *Blackout) Compute(ctx Context) []grid.PanelState {
	elapsed := ms(ctx.ElapsedTime) - e.startTime
	progress := 1.0
	if e.durationMS > 0 {
		progress = clamp01(elapsed / e.durationMS)
	}
	e.lastProgress = progress
	if progress >= 1 {
		e.done = true
	}

	eased := easeInOutQuad(progress)
	remaining := 1 - eased

	states := make([]grid.PanelState, len(e.snapshot))
	for i, s := range e.snapshot {
		faded := colorspace.RGBCCTColor{
			R:    colorspace.ClampChannel(float64(s.Color.R) * remaining),
			G:    colorspace.ClampChannel(float64(s.Color.G) * remaining),
			B:    colorspace.ClampChannel(float64(s.Color.B) * remaining),
			Cool: colorspace.ClampChannel(float64(s.Color.Cool) * remaining),
			Warm: colorspace.ClampChannel(float64(s.Color.Warm) * remaining),
		}
		states[i] = grid.PanelState{Color: faded, Brightness: colorspace.Clamp(s.Brightness*remaining, 0, 1)}
	}
	return states
}

func (e *Blackout) Cleanup()          {}
func (e *Blackout) IsDone() bool      { return e.done }
func (e *Blackout) Progress() float64 { return e.lastProgress }
