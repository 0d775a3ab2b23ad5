package core

import (
	"context"

	"github.com/chess10kp/whereami/internal/dispatch"
	"github.com/chess10kp/whereami/internal/hypr"
	"github.com/chess10kp/whereami/internal/registry"
)

// Refresher produces snapshots.
type Refresher interface {
	Refresh(ctx context.Context) (registry.Snapshot, error)
}

// Actor issues window actions.
type Actor interface {
	Focus(ctx context.Context, c hypr.Client) dispatch.Result
	Close(ctx context.Context, c hypr.Client) dispatch.Result
}

// Runner executes effects. Run may block on the compositor and is meant to
// be called off the update path.
type Runner struct {
	refresher Refresher
	actor     Actor
}

func NewRunner(refresher Refresher, actor Actor) *Runner {
	return &Runner{refresher: refresher, actor: actor}
}

// Run executes eff and returns the event that reports its outcome, or nil
// for QuitEffect.
func (r *Runner) Run(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case RefreshEffect:
		snap, err := r.refresher.Refresh(ctx)
		if err != nil {
			return RefreshFailed{Err: err}
		}
		return SnapshotLoaded{Snapshot: snap}
	case FocusEffect:
		return FocusDispatched{Result: r.actor.Focus(ctx, eff.Client)}
	case CloseEffect:
		return CloseDispatched{Result: r.actor.Close(ctx, eff.Client)}
	}
	return nil
}

// Drive feeds ev to the engine and runs the resulting effects inline until
// none remain or a QuitEffect is reached. It reports whether the engine
// quit. Used by non-interactive callers and tests.
func Drive(ctx context.Context, e *Engine, r *Runner, ev Event) bool {
	queue := e.Update(ev)
	for len(queue) > 0 {
		eff := queue[0]
		queue = queue[1:]
		if _, ok := eff.(QuitEffect); ok {
			return true
		}
		if next := r.Run(ctx, eff); next != nil {
			queue = append(queue, e.Update(next)...)
		}
	}
	return false
}
