package effects

import "panelfx/internal/grid"

// Runner holds at most one active Effect and drives its lifecycle: init,
// per-frame compute, and cleanup once the effect reports completion.
type Runner struct {
	current Effect
	params  Params
}

// NewRunner constructs an idle Runner.
func NewRunner() *Runner { return &Runner{} }

// SetEffect cleans up any previously active effect, then stores eff with
// its merged param map (eff's defaults overridden by overrides) as the
// active effect without initializing it. Callers that need initialization
// immediately should call RunEffect instead.
func (r *Runner) SetEffect(eff Effect, overrides Params) {
	if r.current != nil {
		r.current.Cleanup()
	}
	r.current = eff
	if eff == nil {
		r.params = nil
		return
	}
	r.params = Merge(eff.Defaults(), overrides)
}

// RunEffect initializes eff with ctx (ctx.DeltaTime is forced to 0 for the
// initialize call per the fixed-rate engine's "runEffect" contract) and
// installs it as the active effect.
func (r *Runner) RunEffect(eff Effect, overrides Params, ctx Context) {
	r.SetEffect(eff, overrides)
	if r.current == nil {
		return
	}
	initCtx := ctx
	initCtx.DeltaTime = 0
	initCtx.Params = r.params
	r.current.Initialize(initCtx)
}

// StopCurrentEffect clears the runner without touching the grid's last
// written frame.
func (r *Runner) StopCurrentEffect() {
	if r.current != nil {
		r.current.Cleanup()
	}
	r.current = nil
	r.params = nil
}

// Current returns the active effect, or nil when idle.
func (r *Runner) Current() Effect { return r.current }

// Update advances the active effect by one frame, returning its computed
// states, or nil if the runner is idle. When the active effect reports
// completion after this frame, the runner clears itself.
func (r *Runner) Update(ctx Context) []grid.PanelState {
	if r.current == nil {
		return nil
	}
	ctx.Params = r.params
	states := r.current.Compute(ctx)
	if r.current.IsDone() {
		r.current.Cleanup()
		r.current = nil
		r.params = nil
	}
	return states
}
