package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelfx/internal/colormanager"
	"panelfx/internal/effects"
	"panelfx/internal/grid"
)

type recordingSink struct {
	mu    sync.Mutex
	calls int
	last  []grid.PanelState
}

func (s *recordingSink) Render(states []grid.PanelState, mode grid.TopologyMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = states
	return nil
}

func (s *recordingSink) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type erroringSink struct{}

func (erroringSink) Render([]grid.PanelState, grid.TopologyMode) error {
	return errors.New("boom")
}

type panickingEffect struct{}

func (panickingEffect) Name() effects.Name       { return effects.NameSolid }
func (panickingEffect) Kind() effects.Kind       { return effects.KindContinuous }
func (panickingEffect) Defaults() effects.Params { return effects.Params{} }
func (panickingEffect) Initialize(effects.Context) {}
func (panickingEffect) Compute(effects.Context) []grid.PanelState {
	panic("deliberate failure")
}
func (panickingEffect) Cleanup()          {}
func (panickingEffect) IsDone() bool      { return false }
func (panickingEffect) Progress() float64 { return 0 }

func TestEngineStartStopIsIdempotent(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	e := New(g, colormanager.New(nil), 60, nil)
	e.Start()
	e.Start()
	assert.True(t, e.IsRunning())
	e.Stop()
	e.Stop()
	assert.False(t, e.IsRunning())
}

func TestEngineTicksDriveSinks(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	e := New(g, colormanager.New(nil), 100, nil)
	sink := &recordingSink{}
	e.AddSink(sink)

	e.Start()
	defer e.Stop()
	time.Sleep(80 * time.Millisecond)
	assert.Greater(t, sink.Calls(), 0)
}

func TestEngineSinkErrorDoesNotStopTicking(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	e := New(g, colormanager.New(nil), 100, nil)
	e.AddSink(erroringSink{})
	good := &recordingSink{}
	e.AddSink(good)

	e.Start()
	defer e.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.Greater(t, good.Calls(), 0)
}

func TestEngineRunEffectAndStop(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	e := New(g, colormanager.New(nil), 100, nil)
	e.RunEffect(effects.NewStrobe(), effects.Params{})

	name, active := e.ActiveEffectName()
	require.True(t, active)
	assert.Equal(t, effects.NameStrobe, name)

	e.StopCurrentEffect()
	_, active = e.ActiveEffectName()
	assert.False(t, active)
}

func TestEnginePanicInComputeClearsRunnerAndContinues(t *testing.T) {
	g := grid.New(2, 7, grid.TopologyCircular)
	e := New(g, colormanager.New(nil), 100, nil)
	e.RunEffect(panickingEffect{}, effects.Params{})

	e.Start()
	defer e.Stop()
	time.Sleep(50 * time.Millisecond)
	_, active := e.ActiveEffectName()
	assert.False(t, active, "a panicking compute should clear the active effect")
}
