package effects

import (
	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

// Static is a continuous effect that holds the grid at an explicit list of
// panel colors, re-transitioning in place whenever the caller supplies a
// different panelColors value.
type Static struct {
	brightness      float64
	durationMS      float64
	targetColors    []colorspace.RGBCCTColor
	previousColors  []colorspace.RGBCCTColor
	transitionStart float64
	initialized     bool
}

// NewStatic constructs an uninitialized Static effect.
func NewStatic() *Static { return &Static{} }

func (e *Static) Name() Name { return NameStatic }
func (e *Static) Kind() Kind { return KindContinuous }

func (e *Static) Defaults() Params {
	return Params{
		"panelColors":        ColorListVal(nil),
		"brightness":         Num(1),
		"transitionDuration": Num(500),
	}
}

func (e *Static) Initialize(ctx Context) {
	e.brightness = ctx.Params.NumberOr("brightness", 1)
	e.durationMS = ctx.Params.NumberOr("transitionDuration", 500)
	e.targetColors = padColors(ctx.Params.ColorListOr("panelColors", nil), ctx.Grid.N())
	e.previousColors = statesToColors(ctx.Grid.States())
	e.transitionStart = ms(ctx.ElapsedTime)
	e.initialized = true
}

func padColors(colors []colorspace.RGBCCTColor, n int) []colorspace.RGBCCTColor {
	out := make([]colorspace.RGBCCTColor, n)
	for i := 0; i < n && i < len(colors); i++ {
		out[i] = colors[i]
	}
	return out
}

func statesToColors(states []grid.PanelState) []colorspace.RGBCCTColor {
	out := make([]colorspace.RGBCCTColor, len(states))
	for i, s := range states {
		out[i] = s.Color
	}
	return out
}

func sameColors(a, b []colorspace.RGBCCTColor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (e *Static) Compute(ctx Context) []grid.PanelState {
	n := ctx.Grid.N()
	newTarget := padColors(ctx.Params.ColorListOr("panelColors", nil), n)
	if !e.initialized {
		e.previousColors = statesToColors(ctx.Grid.States())
		e.targetColors = newTarget
		e.transitionStart = ms(ctx.ElapsedTime)
		e.initialized = true
	} else if !sameColors(newTarget, e.targetColors) {
		e.previousColors = statesToColors(ctx.Grid.States())
		e.targetColors = newTarget
		e.transitionStart = ms(ctx.ElapsedTime)
	}

	elapsed := ms(ctx.ElapsedTime) - e.transitionStart
	progress := 1.0
	if e.durationMS > 0 {
		progress = clamp01(elapsed / e.durationMS)
	}
	eased := easeOutCubic(progress)

	states := make([]grid.PanelState, n)
	for i := 0; i < n; i++ {
		prev := colorspace.Black
		if i < len(e.previousColors) {
			prev = e.previousColors[i]
		}
		target := colorspace.Black
		if i < len(e.targetColors) {
			target = e.targetColors[i]
		}
		color := colorspace.LerpRGBCCT(prev, target, eased)
		states[i] = grid.PanelState{Color: color.Clamped(), Brightness: colorspace.Clamp(e.brightness, 0, 1)}
	}
	return states
}

func (e *Static) Cleanup()          {}
func (e *Static) IsDone() bool      { return false }
func (e *Static) Progress() float64 { return 1 }
