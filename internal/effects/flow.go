package effects

import (
	"math"

	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

// FlowMode selects whether Flow lights every panel in the gradient or only
// a moving bright "chase" zone.
type FlowMode string

const (
	FlowFull  FlowMode = "full"
	FlowChase FlowMode = "chase"
)

// Flow is a continuous effect that scrolls a gradient across the current
// topology's sequences at a configurable speed.
type Flow struct {
	startTime  float64
	gradient   colorspace.Gradient
	speed      float64
	brightness float64
	mode       FlowMode
	chaseLen   float64
	waveHeight float64
	scale      float64
	timeOffset float64
}

// NewFlow constructs an uninitialized Flow effect.
func NewFlow() *Flow { return &Flow{} }

func (e *Flow) Name() Name { return NameFlow }
func (e *Flow) Kind() Kind { return KindContinuous }

func (e *Flow) Defaults() Params {
	return Params{
		"colorPreset": Str(""),
		"speed":       Num(0.1),
		"brightness":  Num(1),
		"mode":        Str(string(FlowFull)),
		"chaseLength": Num(3),
		"waveHeight":  Num(0),
		"scale":       Num(1),
	}
}

func (e *Flow) Initialize(ctx Context) {
	e.startTime = ms(ctx.ElapsedTime)
	e.gradient = resolveGradient(ctx, ctx.Params.StringOr("colorPreset", ""))
	e.speed = ctx.Params.NumberOr("speed", 0.1)
	e.brightness = ctx.Params.NumberOr("brightness", 1)
	e.mode = FlowMode(ctx.Params.StringOr("mode", string(FlowFull)))
	e.chaseLen = ctx.Params.NumberOr("chaseLength", 3)
	e.waveHeight = ctx.Params.NumberOr("waveHeight", 0)
	e.scale = ctx.Params.NumberOr("scale", 1)
}

func wrap01(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v += 1
	}
	return v
}

func (e *Flow) Compute(ctx Context) []grid.PanelState {
	elapsed := ms(ctx.ElapsedTime) - e.startTime
	e.timeOffset = wrap01(elapsed * e.speed / 1000)

	n := ctx.Grid.N()
	states := make([]grid.PanelState, n)

	if ctx.Grid.Mode() == grid.TopologySingular {
		color := e.gradient.Sample(e.timeOffset)
		for i := range states {
			states[i] = grid.PanelState{Color: color.Clamped(), Brightness: colorspace.Clamp(e.brightness, 0, 1)}
		}
		return states
	}

	for _, seq := range ctx.Grid.Sequences() {
		seqLen := len(seq)
		if seqLen == 0 {
			continue
		}
		for k, panelID := range seq {
			normalized := float64(k) / float64(seqLen)
			gradientPos := wrap01(normalized*e.scale + e.timeOffset)
			color := e.gradient.Sample(gradientPos)

			brightness := e.brightness
			if e.mode == FlowChase {
				d := math.Min(normalized, 1-normalized)
				falloff := e.chaseLen / float64(seqLen)
				if falloff > 0 && d < falloff {
					brightness = e.brightness * (1 - d/falloff)
				} else {
					brightness = 0
				}
			}
			if e.waveHeight > 0 {
				brightness += brightness * e.waveHeight * math.Sin(4*math.Pi*normalized+2*math.Pi*e.timeOffset)
				brightness = colorspace.Clamp(brightness, 0, 1)
			}

			if panelID >= 0 && panelID < n {
				states[panelID] = grid.PanelState{Color: color.Clamped(), Brightness: colorspace.Clamp(brightness, 0, 1)}
			}
		}
	}
	return states
}

func (e *Flow) Cleanup()          {}
func (e *Flow) IsDone() bool      { return false }
func (e *Flow) Progress() float64 { return e.timeOffset }
