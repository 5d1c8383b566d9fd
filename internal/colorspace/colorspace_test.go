package colorspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToHSVAndBack(t *testing.T) {
	cases := []RGBCCTColor{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 255, G: 255, B: 255},
		{R: 0, G: 0, B: 0},
	}
	for _, c := range cases {
		hsv := RGBToHSV(c)
		back := HSVToRGB(hsv)
		assert.InDelta(t, c.R, back.R, 1, "red channel for %+v", c)
		assert.InDelta(t, c.G, back.G, 1, "green channel for %+v", c)
		assert.InDelta(t, c.B, back.B, 1, "blue channel for %+v", c)
	}
}

func TestLerpHSVShortestArc(t *testing.T) {
	red := RGBCCTColor{R: 255, G: 0, B: 0}   // hue 0
	blue := RGBCCTColor{R: 0, G: 0, B: 255}  // hue 240
	mid := LerpHSVRGB(red, blue, 0.5)
	hsv := RGBToHSV(mid)

	// Shortest arc from 0 to 240 goes through 300 (not through 120/cyan).
	assert.True(t, hsv.H > 270 || hsv.H < 30, "expected magenta-range hue, got %v", hsv.H)
}

func TestClampChannel(t *testing.T) {
	assert.Equal(t, 0, ClampChannel(-10))
	assert.Equal(t, 255, ClampChannel(300))
	assert.Equal(t, 128, ClampChannel(128.4))
	assert.Equal(t, 128, ClampChannel(127.6))
}

func TestLerpRGBCCTClampsAndRounds(t *testing.T) {
	a := RGBCCTColor{R: 0, G: 0, B: 0, Cool: 0, Warm: 0}
	b := RGBCCTColor{R: 255, G: 255, B: 255, Cool: 255, Warm: 255}

	mid := LerpRGBCCT(a, b, 0.5)
	assert.Equal(t, 128, mid.R)
	assert.Equal(t, 128, mid.Cool)
	assert.Equal(t, 128, mid.Warm)

	clampedLow := LerpRGBCCT(a, b, -1)
	assert.Equal(t, a, clampedLow)

	clampedHigh := LerpRGBCCT(a, b, 2)
	assert.Equal(t, b, clampedHigh)
}

func TestGradientSampleEndpoints(t *testing.T) {
	g := NewGradient(SpaceRGB,
		GradientStop{Position: 0, Color: RGBCCTColor{R: 255}},
		GradientStop{Position: 1, Color: RGBCCTColor{B: 255}},
	)

	require.Equal(t, RGBCCTColor{R: 255}, g.Sample(0))
	require.Equal(t, RGBCCTColor{B: 255}, g.Sample(1))
	require.Equal(t, RGBCCTColor{R: 255}, g.Sample(-1))
	require.Equal(t, RGBCCTColor{B: 255}, g.Sample(2))
}

func TestGradientSampleIdempotentAtStops(t *testing.T) {
	g := NewGradient(SpaceRGB,
		GradientStop{Position: 0, Color: RGBCCTColor{R: 255}},
		GradientStop{Position: 0.5, Color: RGBCCTColor{G: 255}},
		GradientStop{Position: 1, Color: RGBCCTColor{B: 255}},
	)
	for _, s := range g.Stops {
		sampled := g.Sample(s.Position)
		assert.InDelta(t, s.Color.R, sampled.R, 1)
		assert.InDelta(t, s.Color.G, sampled.G, 1)
		assert.InDelta(t, s.Color.B, sampled.B, 1)
	}
}

func TestGradientSampleReversedCommutesInRGB(t *testing.T) {
	g := NewGradient(SpaceRGB,
		GradientStop{Position: 0, Color: RGBCCTColor{R: 200, G: 10, B: 30}},
		GradientStop{Position: 0.4, Color: RGBCCTColor{R: 10, G: 200, B: 50}},
		GradientStop{Position: 1, Color: RGBCCTColor{R: 30, G: 60, B: 220}},
	)
	rev := g.Reversed()

	for _, p := range []float64{0, 0.1, 0.25, 0.4, 0.6, 0.9, 1} {
		a := g.Sample(p)
		b := rev.Sample(1 - p)
		assert.InDelta(t, a.R, b.R, 1, "p=%v", p)
		assert.InDelta(t, a.G, b.G, 1, "p=%v", p)
		assert.InDelta(t, a.B, b.B, 1, "p=%v", p)
	}
}

func TestGradientSampleSingleStop(t *testing.T) {
	g := NewGradient(SpaceRGB, GradientStop{Position: 0.5, Color: RGBCCTColor{R: 100}})
	assert.Equal(t, RGBCCTColor{R: 100}, g.Sample(0))
	assert.Equal(t, RGBCCTColor{R: 100}, g.Sample(1))
}

func TestGradientSampleEmpty(t *testing.T) {
	g := Gradient{Space: SpaceRGB}
	assert.Equal(t, Black, g.Sample(0.5))
}

func TestNewGradientSortsStops(t *testing.T) {
	g := NewGradient(SpaceRGB,
		GradientStop{Position: 1, Color: RGBCCTColor{B: 255}},
		GradientStop{Position: 0, Color: RGBCCTColor{R: 255}},
	)
	require.Len(t, g.Stops, 2)
	assert.Equal(t, 0.0, g.Stops[0].Position)
	assert.Equal(t, 1.0, g.Stops[1].Position)
}

func TestHSVToRGBWraps(t *testing.T) {
	c := HSVToRGB(HSVColor{H: -30, S: 1, V: 1})
	c2 := HSVToRGB(HSVColor{H: 330, S: 1, V: 1})
	assert.Equal(t, c2, c)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestRGBToHSVGrayscale(t *testing.T) {
	hsv := RGBToHSV(RGBCCTColor{R: 128, G: 128, B: 128})
	assert.Equal(t, 0.0, hsv.S)
	assert.False(t, math.IsNaN(hsv.H))
}
