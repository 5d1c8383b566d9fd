package effects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"panelfx/internal/grid"
)

func TestStrobeAt0_51_101ms(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	eff := NewStrobe()
	params := Merge(eff.Defaults(), Params{"frequency": Num(10), "dutyCycle": Num(0.5)})
	ctx := newTestCtx(g, 0, params)
	eff.Initialize(ctx)

	ctx.ElapsedTime = 0
	states := eff.Compute(ctx)
	assert.Equal(t, 1.0, states[0].Brightness, "on at t=0")

	ctx.ElapsedTime = 51 * time.Millisecond
	states = eff.Compute(ctx)
	assert.Equal(t, 0.0, states[0].Brightness, "off just past half the 100ms cycle")

	ctx.ElapsedTime = 101 * time.Millisecond
	states = eff.Compute(ctx)
	assert.Equal(t, 1.0, states[0].Brightness, "on again at the start of the next cycle")
}

func TestStrobeNeverCompletes(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	eff := NewStrobe()
	ctx := newTestCtx(g, 0, eff.Defaults())
	eff.Initialize(ctx)
	eff.Compute(ctx)
	assert.False(t, eff.IsDone())
}

func TestStrobeZeroFrequencyStaysOff(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	eff := NewStrobe()
	params := Merge(eff.Defaults(), Params{"frequency": Num(0)})
	ctx := newTestCtx(g, 0, params)
	eff.Initialize(ctx)

	ctx.ElapsedTime = 200 * time.Millisecond
	states := eff.Compute(ctx)
	assert.Equal(t, 0.0, states[0].Brightness)
}
