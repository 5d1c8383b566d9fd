package effects

import (
	"math"

	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

// Strobe is a continuous effect that snaps the whole grid between a
// resolved color and off at a configured frequency and duty cycle.
type Strobe struct {
	startTime  float64
	color      colorspace.RGBCCTColor
	brightness float64
	frequency  float64
	dutyCycle  float64
	phase      float64
}

// NewStrobe constructs an uninitialized Strobe effect.
func NewStrobe() *Strobe { return &Strobe{} }

func (e *Strobe) Name() Name { return NameStrobe }
func (e *Strobe) Kind() Kind { return KindContinuous }

func (e *Strobe) Defaults() Params {
	return Params{
		"colorPreset": Str(""),
		"brightness":  Num(1),
		"frequency":   Num(10),
		"dutyCycle":   Num(0.5),
	}
}

func (e *Strobe) Initialize(ctx Context) {
	e.startTime = ms(ctx.ElapsedTime)
	e.color = resolveColor(ctx, ctx.Params.StringOr("colorPreset", ""))
	e.brightness = ctx.Params.NumberOr("brightness", 1)
	e.frequency = ctx.Params.NumberOr("frequency", 10)
	e.dutyCycle = ctx.Params.NumberOr("dutyCycle", 0.5)
}

func (e *Strobe) Compute(ctx Context) []grid.PanelState {
	elapsed := ms(ctx.ElapsedTime) - e.startTime

	brightness := 0.0
	if e.frequency > 0 {
		cycle := 1000 / e.frequency
		e.phase = math.Mod(elapsed, cycle) / cycle
		if e.phase < e.dutyCycle {
			brightness = e.brightness
		}
	}

	return uniformStates(ctx.Grid.N(), e.color, brightness)
}

func (e *Strobe) Cleanup()          {}
func (e *Strobe) IsDone() bool      { return false }
func (e *Strobe) Progress() float64 { return e.phase }
