// Package colorspace provides pure color types and conversions for RGBCCT
// panel colors: RGB<->HSV, gradient stops, and linear/HSV interpolation.
package colorspace

import (
	"math"
	"sort"
)

// RGBCCTColor is a five-channel panel color: red, green, blue, cool-white,
// warm-white, each 0-255. Alpha is optional and only used for blending; it
// never reaches the wire.
type RGBCCTColor struct {
	R, G, B, Cool, Warm int
	Alpha                float64
}

// Black is the zero RGBCCT color.
var Black = RGBCCTColor{}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampChannel rounds and clamps a channel value to the 0-255 integer range.
func ClampChannel(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return r
}

// Clamped returns c with every channel clamped to 0-255.
func (c RGBCCTColor) Clamped() RGBCCTColor {
	return RGBCCTColor{
		R:    clampInt(c.R),
		G:    clampInt(c.G),
		B:    clampInt(c.B),
		Cool: clampInt(c.Cool),
		Warm: clampInt(c.Warm),
	}
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// HSVColor is hue in [0,360), saturation and value in [0,1].
type HSVColor struct {
	H, S, V float64
}

// RGBToHSV converts the R,G,B channels of c (Cool/Warm ignored) to HSV.
func RGBToHSV(c RGBCCTColor) HSVColor {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	v := max
	var s float64
	if max > 0 {
		s = delta / max
	}

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case max == g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	return HSVColor{H: h, S: s, V: v}
}

// HSVToRGB converts an HSV color to RGBCCT, leaving Cool/Warm at 0.
func HSVToRGB(hsv HSVColor) RGBCCTColor {
	h := math.Mod(hsv.H, 360)
	if h < 0 {
		h += 360
	}
	s := Clamp(hsv.S, 0, 1)
	v := Clamp(hsv.V, 0, 1)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBCCTColor{
		R: ClampChannel((r + m) * 255),
		G: ClampChannel((g + m) * 255),
		B: ClampChannel((b + m) * 255),
	}
}

// LerpRGBCCT performs a per-channel linear interpolation of a and b at t,
// rounding and clamping each output channel. Cool/Warm always lerp linearly.
func LerpRGBCCT(a, b RGBCCTColor, t float64) RGBCCTColor {
	t = Clamp(t, 0, 1)
	return RGBCCTColor{
		R:    ClampChannel(lerp(float64(a.R), float64(b.R), t)),
		G:    ClampChannel(lerp(float64(a.G), float64(b.G), t)),
		B:    ClampChannel(lerp(float64(a.B), float64(b.B), t)),
		Cool: ClampChannel(lerp(float64(a.Cool), float64(b.Cool), t)),
		Warm: ClampChannel(lerp(float64(a.Warm), float64(b.Warm), t)),
	}
}

// LerpHSVRGB interpolates between two RGBCCT endpoints in HSV space, taking
// the shortest hue arc, and lerping Cool/Warm linearly.
func LerpHSVRGB(a, b RGBCCTColor, t float64) RGBCCTColor {
	t = Clamp(t, 0, 1)
	ha := RGBToHSV(a)
	hb := RGBToHSV(b)

	h1, h2 := ha.H, hb.H
	if math.Abs(h2-h1) > 180 {
		if h2 > h1 {
			h1 += 360
		} else {
			h2 += 360
		}
	}

	out := HSVToRGB(HSVColor{
		H: math.Mod(lerp(h1, h2, t), 360),
		S: lerp(ha.S, hb.S, t),
		V: lerp(ha.V, hb.V, t),
	})
	out.Cool = ClampChannel(lerp(float64(a.Cool), float64(b.Cool), t))
	out.Warm = ClampChannel(lerp(float64(a.Warm), float64(b.Warm), t))
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ColorSpace tags how a gradient's stops are interpolated.
type ColorSpace string

const (
	SpaceRGB ColorSpace = "rgb"
	SpaceHSV ColorSpace = "hsv"
)

// GradientStop is a positioned color stop.
type GradientStop struct {
	Position float64
	Color    RGBCCTColor
}

// Gradient is an ordered sequence of color stops with a declared
// interpolation color space. NewGradient normalizes stops to be sorted by
// position ascending.
type Gradient struct {
	Stops []GradientStop
	Space ColorSpace
}

// NewGradient builds a Gradient with its stops sorted by position.
func NewGradient(space ColorSpace, stops ...GradientStop) Gradient {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return Gradient{Stops: sorted, Space: space}
}

// Reversed returns a gradient with stop positions mirrored (p -> 1-p) and
// reordered, used for the reverse-direction commutativity test in RGB space.
func (g Gradient) Reversed() Gradient {
	stops := make([]GradientStop, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = GradientStop{Position: 1 - s.Position, Color: s.Color}
	}
	return NewGradient(g.Space, stops...)
}

// Sample interpolates the gradient at position p in [0,1], bracketing the
// nearest stops and interpolating in the gradient's declared color space.
func (g Gradient) Sample(p float64) RGBCCTColor {
	p = Clamp(p, 0, 1)
	if len(g.Stops) == 0 {
		return Black
	}
	if len(g.Stops) == 1 {
		return g.Stops[0].Color.Clamped()
	}

	first := g.Stops[0]
	last := g.Stops[len(g.Stops)-1]
	if p <= first.Position {
		return first.Color.Clamped()
	}
	if p >= last.Position {
		return last.Color.Clamped()
	}

	lo, hi := first, last
	for i := 0; i < len(g.Stops)-1; i++ {
		if g.Stops[i].Position <= p && p <= g.Stops[i+1].Position {
			lo, hi = g.Stops[i], g.Stops[i+1]
			break
		}
	}

	span := hi.Position - lo.Position
	var local float64
	if span != 0 {
		local = (p - lo.Position) / span
	}

	if g.Space == SpaceHSV {
		return LerpHSVRGB(lo.Color, hi.Color, local)
	}
	return LerpRGBCCT(lo.Color, hi.Color, local)
}
