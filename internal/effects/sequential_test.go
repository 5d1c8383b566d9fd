package effects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelfx/internal/colorspace"
	"panelfx/internal/grid"
)

func TestSequentialFadeColorProgressAt150ms(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyLinear)
	eff := NewSequentialFade()
	params := Merge(eff.Defaults(), Params{
		"delayBetweenPanels": Num(100),
		"fadeDuration":       Num(500),
		"startColor":         Col(colorspace.Black),
	})
	ctx := newTestCtx(g, 0, params)
	eff.Initialize(ctx)

	ctx.ElapsedTime = 150 * time.Millisecond
	states := eff.Compute(ctx)
	require.Len(t, states, g.N())
	assert.False(t, eff.IsDone())

	seqs := g.Sequences()
	firstPanel := seqs[0][0]
	secondPanel := seqs[0][1]
	assert.Greater(t, states[firstPanel].Color.R, states[secondPanel].Color.R)
}

func TestSequentialFadeSplitsTransitionDuration(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyLinear)
	eff := NewSequentialFade()
	params := Merge(eff.Defaults(), Params{"transitionDuration": Num(1000)})
	ctx := newTestCtx(g, 0, params)
	eff.Initialize(ctx)

	assert.InDelta(t, 0.3*1000/float64(g.N()), eff.delayMS, 1e-9)
	assert.InDelta(t, 700, eff.fadeMS, 1e-9)
}

func TestSequentialFadeCompletesWhenAllPanelsDone(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyLinear)
	eff := NewSequentialFade()
	params := Merge(eff.Defaults(), Params{
		"delayBetweenPanels": Num(10),
		"fadeDuration":        Num(50),
	})
	ctx := newTestCtx(g, 0, params)
	eff.Initialize(ctx)

	ctx.ElapsedTime = 2 * time.Second
	eff.Compute(ctx)
	assert.True(t, eff.IsDone())
	assert.Equal(t, 1.0, eff.Progress())
}
