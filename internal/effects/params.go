// Package effects implements the six panel-lighting effect state machines
// and the runner that drives whichever one is currently active.
package effects

import (
	"time"

	"panelfx/internal/colormanager"
	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

// Kind tags whether an effect terminates on its own or runs until
// superseded or stopped.
type Kind string

const (
	KindContinuous Kind = "continuous"
	KindOneshot    Kind = "oneshot"
)

// Name identifies one of the six effect variants on the wire and in
// persisted presets.
type Name string

const (
	NameSolid          Name = "solid"
	NameSequentialFade Name = "sequentialFade"
	NameFlow           Name = "flow"
	NameStrobe         Name = "strobe"
	NameBlackout       Name = "blackout"
	NameStatic         Name = "static"
)

// ParamKind tags which field of a ParamValue is populated.
type ParamKind string

const (
	ParamNumber    ParamKind = "number"
	ParamBool      ParamKind = "bool"
	ParamString    ParamKind = "string"
	ParamColor     ParamKind = "color"
	ParamGradient  ParamKind = "gradient"
	ParamColorList ParamKind = "colorList"
)

// ParamValue is the tagged union every effect parameter value is held in:
// exactly one of Number/Bool/String/Color/Gradient/ColorList is
// meaningful, selected by Kind. It has no custom JSON encoding, so on the
// wire and in the preset file each value is an object with these field
// names (e.g. {"Kind":"number","Number":1}); a bare JSON number, string or
// color object does not decode into it.
type ParamValue struct {
	Kind      ParamKind
	Number    float64
	Bool      bool
	String    string
	Color     colorspace.RGBCCTColor
	Gradient  colorspace.Gradient
	ColorList []colorspace.RGBCCTColor
}

// Num builds a numeric ParamValue.
func Num(v float64) ParamValue { return ParamValue{Kind: ParamNumber, Number: v} }

// Flag builds a boolean ParamValue.
func Flag(v bool) ParamValue { return ParamValue{Kind: ParamBool, Bool: v} }

// Str builds a string ParamValue.
func Str(v string) ParamValue { return ParamValue{Kind: ParamString, String: v} }

// Col builds a color ParamValue.
func Col(v colorspace.RGBCCTColor) ParamValue { return ParamValue{Kind: ParamColor, Color: v} }

// Grad builds a gradient ParamValue.
func Grad(v colorspace.Gradient) ParamValue { return ParamValue{Kind: ParamGradient, Gradient: v} }

// ColorListVal builds a list-of-colors ParamValue.
func ColorListVal(v []colorspace.RGBCCTColor) ParamValue {
	return ParamValue{Kind: ParamColorList, ColorList: v}
}

// Params is the effective param map a runner hands to an effect: the
// effect's defaults overridden by caller-supplied values.
type Params map[string]ParamValue

// Merge returns defaults with every key in overrides replaced.
func Merge(defaults, overrides Params) Params {
	out := make(Params, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// NumberOr returns the numeric value of key, or def if absent/wrong kind.
func (p Params) NumberOr(key string, def float64) float64 {
	if v, ok := p[key]; ok && v.Kind == ParamNumber {
		return v.Number
	}
	return def
}

// BoolOr returns the boolean value of key, or def if absent/wrong kind.
func (p Params) BoolOr(key string, def bool) bool {
	if v, ok := p[key]; ok && v.Kind == ParamBool {
		return v.Bool
	}
	return def
}

// StringOr returns the string value of key, or def if absent/wrong kind.
func (p Params) StringOr(key string, def string) string {
	if v, ok := p[key]; ok && v.Kind == ParamString {
		return v.String
	}
	return def
}

// ColorOr returns the color value of key, or def if absent/wrong kind.
func (p Params) ColorOr(key string, def colorspace.RGBCCTColor) colorspace.RGBCCTColor {
	if v, ok := p[key]; ok && v.Kind == ParamColor {
		return v.Color
	}
	return def
}

// ColorListOr returns the color-list value of key, or def if absent/wrong kind.
func (p Params) ColorListOr(key string, def []colorspace.RGBCCTColor) []colorspace.RGBCCTColor {
	if v, ok := p[key]; ok && v.Kind == ParamColorList {
		return v.ColorList
	}
	return def
}

// HasNumber reports whether key is present with numeric kind.
func (p Params) HasNumber(key string) bool {
	v, ok := p[key]
	return ok && v.Kind == ParamNumber
}

// Context is everything an effect needs to compute one frame. Grid and
// Colors are read-only references: an effect must never mutate Grid from
// inside Compute, it only reads snapshots from it (e.g. for Blackout and
// Static's "previous" capture); the engine is the grid's sole writer.
type Context struct {
	DeltaTime   time.Duration
	ElapsedTime time.Duration
	Grid        *grid.Grid
	Colors      *colormanager.Manager
	Params      Params
}

// ms converts a duration to float64 milliseconds.
func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Effect is the shared protocol all six variants implement.
type Effect interface {
	Name() Name
	Kind() Kind
	Defaults() Params
	Initialize(ctx Context)
	Compute(ctx Context) []grid.PanelState
	Cleanup()
	IsDone() bool
	Progress() float64
}

// resolveColor resolves the colorPreset param to a representative color,
// falling back to warm/cool white when the preset name is missing or
// unknown, per the SolidColor/Strobe resolution rule.
func resolveColor(ctx Context, presetName string) colorspace.RGBCCTColor {
	if presetName == "" {
		return colorspace.RGBCCTColor{R: 255, G: 255, B: 255, Cool: 255, Warm: 0}
	}
	c, ok := ctx.Colors.ResolveColor(presetName)
	if !ok {
		return colorspace.RGBCCTColor{R: 255, G: 255, B: 255, Cool: 255, Warm: 0}
	}
	return c
}

// resolveGradient resolves the colorPreset param to a gradient, falling
// back to a default red->blue gradient in RGB space when missing/unknown.
func resolveGradient(ctx Context, presetName string) colorspace.Gradient {
	if presetName != "" {
		if g, ok := ctx.Colors.ResolveGradient(presetName); ok {
			return g
		}
	}
	return colorspace.NewGradient(colorspace.SpaceRGB,
		colorspace.GradientStop{Position: 0, Color: colorspace.RGBCCTColor{R: 255}},
		colorspace.GradientStop{Position: 1, Color: colorspace.RGBCCTColor{B: 255}},
	)
}

func uniformStates(n int, color colorspace.RGBCCTColor, brightness float64) []grid.PanelState {
	out := make([]grid.PanelState, n)
	for i := range out {
		out[i] = grid.PanelState{Color: color.Clamped(), Brightness: colorspace.Clamp(brightness, 0, 1)}
	}
	return out
}
