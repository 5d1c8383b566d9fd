package effects

import (
	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

// SequentialFade is a one-shot effect that fades panels to a target color
// one after another, in sequence order, across every sequence of the
// current topology.
type SequentialFade struct {
	startTime    float64
	startColor   colorspace.RGBCCTColor
	targetColor  colorspace.RGBCCTColor
	brightness   float64
	delayMS      float64
	fadeMS       float64
	lastProgress float64
	done         bool
}

// NewSequentialFade constructs an uninitialized SequentialFade effect.
func NewSequentialFade() *SequentialFade { return &SequentialFade{} }

func (e *SequentialFade) Name() Name { return NameSequentialFade }
func (e *SequentialFade) Kind() Kind { return KindOneshot }

func (e *SequentialFade) Defaults() Params {
	return Params{
		"colorPreset":         Str(""),
		"brightness":          Num(1),
		"delayBetweenPanels":  Num(100),
		"fadeDuration":        Num(500),
		"startColor":          Col(colorspace.Black),
	}
}

func (e *SequentialFade) Initialize(ctx Context) {
	e.startTime = ms(ctx.ElapsedTime)
	e.startColor = ctx.Params.ColorOr("startColor", colorspace.Black)
	e.targetColor = resolveColor(ctx, ctx.Params.StringOr("colorPreset", ""))
	e.brightness = ctx.Params.NumberOr("brightness", 1)

	if ctx.Params.HasNumber("transitionDuration") {
		total := ctx.Params.NumberOr("transitionDuration", 0)
		n := ctx.Grid.N()
		if n < 1 {
			n = 1
		}
		e.delayMS = 0.3 * total / float64(n)
		e.fadeMS = 0.7 * total
	} else {
		e.delayMS = ctx.Params.NumberOr("delayBetweenPanels", 100)
		e.fadeMS = ctx.Params.NumberOr("fadeDuration", 500)
	}

	e.lastProgress = 0
	e.done = false
}

func (e *SequentialFade) Compute(ctx Context) []grid.PanelState {
	n := ctx.Grid.N()
	states := make([]grid.PanelState, n)
	for i := range states {
		states[i] = grid.PanelState{Color: e.startColor.Clamped(), Brightness: colorspace.Clamp(e.brightness, 0, 1)}
	}

	elapsed := ms(ctx.ElapsedTime) - e.startTime
	allDone := true

	for _, seq := range ctx.Grid.Sequences() {
		for k, panelID := range seq {
			localElapsed := elapsed - float64(k)*e.delayMS
			progress := 0.0
			if e.fadeMS > 0 {
				progress = clamp01(localElapsed / e.fadeMS)
			} else if localElapsed >= 0 {
				progress = 1
			}
			if progress < 1 {
				allDone = false
			}
			eased := easeOutQuad(progress)
			color := colorspace.LerpRGBCCT(e.startColor, e.targetColor, eased)
			if panelID >= 0 && panelID < n {
				states[panelID] = grid.PanelState{Color: color.Clamped(), Brightness: colorspace.Clamp(e.brightness, 0, 1)}
			}
		}
	}

	e.done = allDone
	if allDone {
		e.lastProgress = 1
	} else {
		e.lastProgress = clamp01(elapsed / (e.fadeMS + e.delayMS*float64(maxSeqLen(ctx.Grid))))
	}
	return states
}

func maxSeqLen(g *grid.Grid) int {
	max := 0
	for _, s := range g.Sequences() {
		if len(s) > max {
			max = len(s)
		}
	}
	return max
}

func (e *SequentialFade) Cleanup()          {}
func (e *SequentialFade) IsDone() bool      { return e.done }
func (e *SequentialFade) Progress() float64 { return e.lastProgress }
