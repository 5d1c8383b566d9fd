package effects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelfx/internal/grid"
)

func TestRunnerUpdateReturnsNilWhenIdle(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	r := NewRunner()
	ctx := newTestCtx(g, 0, nil)
	assert.Nil(t, r.Update(ctx))
}

func TestRunnerRunEffectInitializesAndComputes(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	r := NewRunner()
	ctx := newTestCtx(g, 0, nil)
	r.RunEffect(NewSolid(), Params{"transitionDuration": Num(0)}, ctx)

	require.NotNil(t, r.Current())
	states := r.Update(ctx)
	require.Len(t, states, g.N())
	assert.Nil(t, r.Current(), "oneshot effect at progress=1 clears the runner")
}

func TestRunnerSetEffectCleansUpPrevious(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	r := NewRunner()
	ctx := newTestCtx(g, 0, nil)
	r.RunEffect(NewStrobe(), nil, ctx)
	require.NotNil(t, r.Current())

	r.RunEffect(NewFlow(), nil, ctx)
	assert.Equal(t, NameFlow, r.Current().Name())
}

func TestRunnerStopCurrentEffectClears(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	r := NewRunner()
	ctx := newTestCtx(g, 0, nil)
	r.RunEffect(NewStrobe(), nil, ctx)
	r.StopCurrentEffect()
	assert.Nil(t, r.Current())
	assert.Nil(t, r.Update(ctx))
}

func TestRunnerContinuousEffectRunsIndefinitely(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	r := NewRunner()
	ctx := newTestCtx(g, 0, nil)
	r.RunEffect(NewStrobe(), nil, ctx)

	for i := 0; i < 5; i++ {
		ctx.ElapsedTime += 20 * time.Millisecond
		states := r.Update(ctx)
		require.Len(t, states, g.N())
	}
	assert.NotNil(t, r.Current())
}
