package effects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

func TestStaticPadsPanelColorsToN(t *testing.T) {
	g := grid.New(1, 4, grid.TopologySingular)
	eff := NewStatic()
	params := Merge(eff.Defaults(), Params{
		"panelColors":        ColorListVal([]colorspace.RGBCCTColor{{R: 255}}),
		"transitionDuration": Num(0),
	})
	ctx := newTestCtx(g, 0, params)
	eff.Initialize(ctx)

	states := eff.Compute(ctx)
	require.Len(t, states, 4)
	assert.Equal(t, 255, states[0].Color.R)
	assert.Equal(t, 0, states[1].Color.R)
}

func TestStaticRestartsTransitionOnTargetChange(t *testing.T) {
	g := grid.New(1, 2, grid.TopologySingular)
	eff := NewStatic()
	params := Merge(eff.Defaults(), Params{
		"panelColors":        ColorListVal([]colorspace.RGBCCTColor{{R: 100}, {R: 100}}),
		"transitionDuration": Num(200),
	})
	ctx := newTestCtx(g, 0, params)
	eff.Initialize(ctx)

	ctx.ElapsedTime = 200 * time.Millisecond
	states := eff.Compute(ctx)
	assert.Equal(t, 100, states[0].Color.R)
	// The engine writes each frame into the grid; Static captures the
	// previous colors from there when the target changes.
	require.NoError(t, g.SetAll(states))

	ctx.ElapsedTime = 200 * time.Millisecond
	ctx.Params = Merge(eff.Defaults(), Params{
		"panelColors":        ColorListVal([]colorspace.RGBCCTColor{{B: 200}, {B: 200}}),
		"transitionDuration": Num(200),
	})
	states = eff.Compute(ctx)
	assert.Equal(t, 100, states[0].Color.R, "transition restarts from the previous captured color")
	assert.Less(t, states[0].Color.B, 200)

	ctx.ElapsedTime = 400 * time.Millisecond
	states = eff.Compute(ctx)
	assert.Equal(t, 200, states[0].Color.B)
}

func TestStaticNeverCompletes(t *testing.T) {
	g := grid.New(1, 2, grid.TopologySingular)
	eff := NewStatic()
	ctx := newTestCtx(g, 0, eff.Defaults())
	eff.Initialize(ctx)
	eff.Compute(ctx)
	assert.False(t, eff.IsDone())
}
