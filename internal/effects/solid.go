package effects

import (
	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

// Solid is a one-shot effect that transitions every panel from a start
// color to a resolved target color over transitionDuration.
type Solid struct {
	startTime      float64 // elapsed ms at Initialize
	startColor     colorspace.RGBCCTColor
	targetColor    colorspace.RGBCCTColor
	brightness     float64
	durationMS     float64
	lastProgress   float64
	done           bool
}

// NewSolid constructs an uninitialized Solid effect.
func NewSolid() *Solid { return &Solid{} }

func (e *Solid) Name() Name { return NameSolid }
func (e *Solid) Kind() Kind { return KindOneshot }

func (e *Solid) Defaults() Params {
	return Params{
		"colorPreset":        Str(""),
		"brightness":         Num(1),
		"transitionDuration": Num(1000),
		"startColor":         Col(colorspace.Black),
	}
}

func (e *Solid) Initialize(ctx Context) {
	e.startTime = ms(ctx.ElapsedTime)
	e.startColor = ctx.Params.ColorOr("startColor", colorspace.Black)
	e.targetColor = resolveColor(ctx, ctx.Params.StringOr("colorPreset", ""))
	e.brightness = ctx.Params.NumberOr("brightness", 1)
	e.durationMS = ctx.Params.NumberOr("transitionDuration", 1000)
	e.lastProgress = 0
	e.done = e.durationMS <= 0
}

func (e *Solid) Compute(ctx Context) []grid.PanelState {
	elapsed := ms(ctx.ElapsedTime) - e.startTime
	progress := 1.0
	if e.durationMS > 0 {
		progress = clamp01(elapsed / e.durationMS)
	}
	e.lastProgress = progress
	if progress >= 1 {
		e.done = true
	}

	eased := easeOutQuad(progress)
	color := colorspace.LerpRGBCCT(e.startColor, e.targetColor, eased)
	return uniformStates(ctx.Grid.N(), color, e.brightness)
}

func (e *Solid) Cleanup()          {}
func (e *Solid) IsDone() bool      { return e.done }
func (e *Solid) Progress() float64 { return e.lastProgress }
