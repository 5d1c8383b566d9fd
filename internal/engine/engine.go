// Package engine runs the fixed-rate tick loop that drives the active
// effect and fans its output out to every registered rendering sink.
package engine

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"panelfx/internal/colormanager"
	"panelfx/internal/effects"
	"panelfx/internal/grid"
)

// Sink receives the grid's current per-panel states and topology on every
// tick, regardless of whether an effect changed them this frame.
type Sink interface {
	Render(states []grid.PanelState, mode grid.TopologyMode) error
}

// Engine owns the tick loop, the active EffectRunner, and the set of
// output sinks that mirror every frame.
type Engine struct {
	mu sync.RWMutex

	grid    *grid.Grid
	colors  *colormanager.Manager
	runner  *effects.Runner
	sinks   []Sink
	log     *logrus.Entry

	targetFPS int
	ticker    *time.Ticker
	stopChan  chan struct{}
	running   bool

	startedAt   time.Time
	lastTick    time.Time
	activeName  effects.Name
	activeSet   bool

	fpsMu      sync.Mutex
	fpsWindow  time.Time
	fpsCount   int
	currentFPS float64
}

// New constructs an idle Engine at the given target frame rate (default 60
// when fps <= 0).
func New(g *grid.Grid, colors *colormanager.Manager, fps int, log *logrus.Entry) *Engine {
	if fps <= 0 {
		fps = 60
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{
		grid:      g,
		colors:    colors,
		runner:    effects.NewRunner(),
		log:       log,
		targetFPS: fps,
		stopChan:  make(chan struct{}),
	}
}

// AddSink registers an output sink. It may be called while the engine is
// running: each tick renders to a copy of the sink list taken under the
// engine's lock.
func (e *Engine) AddSink(s Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, s)
}

// Start begins the tick loop. Idempotent: calling Start while already
// running is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.startedAt = time.Now()
	e.lastTick = e.startedAt
	e.stopChan = make(chan struct{})
	interval := time.Second / time.Duration(e.targetFPS)
	e.ticker = time.NewTicker(interval)
	ticker := e.ticker
	stop := e.stopChan
	e.mu.Unlock()

	go e.loop(ticker, stop)
}

// Stop clears the timer and the active effect, leaving the grid's last
// frame in place.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	e.mu.Unlock()

	e.StopCurrentEffect()
}

func (e *Engine) loop(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			e.tick(now)
		}
	}
}

// tick holds e.mu for the full duration of the runner update, per spec §5's
// single-writer discipline: RunEffect/StopCurrentEffect take the same lock,
// so a command can never land mid-computation and hand the active effect a
// torn runner state within one tick.
func (e *Engine) tick(now time.Time) {
	e.mu.Lock()
	dt := now.Sub(e.lastTick)
	e.lastTick = now
	elapsed := now.Sub(e.startedAt)
	states := e.computeFrameLocked(dt, elapsed)
	if e.runner.Current() == nil {
		e.activeSet = false
	}
	e.mu.Unlock()

	if len(states) == e.grid.N() {
		_ = e.grid.SetAll(states)
	}

	current := e.grid.States()
	mode := e.grid.Mode()

	e.mu.RLock()
	sinks := make([]Sink, len(e.sinks))
	copy(sinks, e.sinks)
	e.mu.RUnlock()

	for _, s := range sinks {
		if err := s.Render(current, mode); err != nil {
			e.log.WithError(err).Warn("sink render failed")
		}
	}

	e.recordFrame(now)
}

// computeFrameLocked invokes the runner's update, recovering from a panic
// inside compute so a single bad effect never wedges the tick loop. Caller
// must hold e.mu.
func (e *Engine) computeFrameLocked(dt, elapsed time.Duration) (states []grid.PanelState) {
	defer func() {
		if r := recover(); r != nil {
			e.log.WithField("panic", r).Error("effect compute panicked, clearing runner")
			e.runner.StopCurrentEffect()
			e.activeSet = false
			states = nil
		}
	}()
	ctx := effects.Context{
		DeltaTime:   dt,
		ElapsedTime: elapsed,
		Grid:        e.grid,
		Colors:      e.colors,
	}
	return e.runner.Update(ctx)
}

func (e *Engine) recordFrame(now time.Time) {
	e.fpsMu.Lock()
	defer e.fpsMu.Unlock()
	if e.fpsWindow.IsZero() {
		e.fpsWindow = now
	}
	e.fpsCount++
	if elapsed := now.Sub(e.fpsWindow); elapsed >= time.Second {
		e.currentFPS = float64(e.fpsCount) / elapsed.Seconds()
		e.fpsCount = 0
		e.fpsWindow = now
	}
}

// CurrentFPS returns the most recently completed one-second rolling frame
// rate measurement.
func (e *Engine) CurrentFPS() float64 {
	e.fpsMu.Lock()
	defer e.fpsMu.Unlock()
	return e.currentFPS
}

// RunEffect initializes eff with deltaTime=0 and the current elapsed time,
// then installs it as the active effect. Holds e.mu for the whole call so
// it can never interleave with a tick's runner.Update.
func (e *Engine) RunEffect(eff effects.Effect, params effects.Params) {
	e.mu.Lock()
	defer e.mu.Unlock()

	elapsed := time.Since(e.startedAt)
	if e.startedAt.IsZero() {
		elapsed = 0
	}
	e.activeName = eff.Name()
	e.activeSet = true

	ctx := effects.Context{
		DeltaTime:   0,
		ElapsedTime: elapsed,
		Grid:        e.grid,
		Colors:      e.colors,
	}
	e.runner.RunEffect(eff, params, ctx)
}

// StopCurrentEffect clears the runner, leaving the last written frame. Holds
// e.mu for the whole call so it can never interleave with a tick's
// runner.Update.
func (e *Engine) StopCurrentEffect() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runner.StopCurrentEffect()
	e.activeSet = false
}

// ActiveEffectName returns the name of the currently running effect, and
// whether one is active.
func (e *Engine) ActiveEffectName() (effects.Name, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.activeName, e.activeSet
}

// IsRunning reports whether the tick loop is active.
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// TargetFPS returns the configured tick rate.
func (e *Engine) TargetFPS() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.targetFPS
}

// Grid returns the panel grid the engine drives.
func (e *Engine) Grid() *grid.Grid { return e.grid }

// Colors returns the color preset manager.
func (e *Engine) Colors() *colormanager.Manager { return e.colors }
