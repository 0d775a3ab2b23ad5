// Package core holds the switcher state and the pure transition function
// over it. Nothing here performs I/O; effects are handed to a Runner.
package core

import (
	"fmt"

	"github.com/chess10kp/whereami/internal/cursor"
	"github.com/chess10kp/whereami/internal/logger"
	"github.com/chess10kp/whereami/internal/registry"
	"github.com/chess10kp/whereami/internal/search"
)

// Ranker builds the display list for a snapshot and query.
type Ranker interface {
	Filter(snap registry.Snapshot, query string) search.DisplayList
}

type Options struct {
	// WrapNavigation lets the cursor run off one end onto the other.
	WrapNavigation bool
}

// Engine is the single owner of snapshot, display list, cursor and query.
// It is not safe for concurrent use; callers serialize events.
type Engine struct {
	ranker Ranker
	opts   Options

	snap    registry.Snapshot
	loaded  bool
	list    search.DisplayList
	cur     cursor.Cursor
	query   string
	stale   bool
	status  string
	lastSeq uint64
	done    bool
}

func NewEngine(ranker Ranker, opts Options) *Engine {
	return &Engine{
		ranker: ranker,
		opts:   opts,
		cur:    cursor.New(0),
	}
}

// Init returns the effects to run at startup.
func (e *Engine) Init() []Effect {
	return []Effect{RefreshEffect{}}
}

// Update applies ev and returns the effects it requests.
func (e *Engine) Update(ev Event) []Effect {
	log := logger.Component("core")
	if e.done {
		log.Debug().Str("event", fmt.Sprintf("%T", ev)).Msg("event after quit ignored")
		return nil
	}

	switch ev := ev.(type) {
	case Tick:
		return []Effect{RefreshEffect{}}

	case SnapshotLoaded:
		e.applySnapshot(ev.Snapshot)
		return nil

	case RefreshFailed:
		e.stale = true
		log.Warn().Err(ev.Err).Msg("keeping previous snapshot")
		return nil

	case Navigate:
		e.cur.Move(ev.Dir, e.opts.WrapNavigation)
		return nil

	case Hover:
		e.cur.Set(ev.Index)
		return nil

	case Select:
		return e.focusSelected()

	case SelectAndFocus:
		e.cur.Set(ev.Index)
		return e.focusSelected()

	case CloseSelected:
		return e.closeSelected()

	case SelectAndClose:
		e.cur.Set(ev.Index)
		return e.closeSelected()

	case QueryChanged:
		e.query = ev.Query
		e.rebuild()
		e.cur.OnQueryChanged(e.list.Len())
		return nil

	case FocusDispatched:
		if ev.Result.Err != nil {
			e.status = ev.Result.Err.Error()
			return nil
		}
		e.done = true
		return []Effect{QuitEffect{}}

	case CloseDispatched:
		if ev.Result.Err != nil {
			e.status = ev.Result.Err.Error()
			return nil
		}
		e.status = ""
		return []Effect{RefreshEffect{}}

	case Quit:
		e.done = true
		return []Effect{QuitEffect{}}
	}

	panic(fmt.Sprintf("core: unhandled event %T", ev))
}

func (e *Engine) applySnapshot(snap registry.Snapshot) {
	if snap.Seq != 0 && snap.Seq < e.lastSeq {
		log := logger.Component("core")
		log.Warn().
			Uint64("seq", snap.Seq).
			Uint64("latest", e.lastSeq).
			Msg("older snapshot applied after a newer one")
	}
	if snap.Seq > e.lastSeq {
		e.lastSeq = snap.Seq
	}

	e.snap = snap
	e.loaded = true
	e.stale = false
	e.rebuild()
	e.cur.OnListChanged(e.list.Len())
}

func (e *Engine) rebuild() {
	e.list = e.ranker.Filter(e.snap, e.query)
}

func (e *Engine) focusSelected() []Effect {
	entry, ok := e.Selected()
	if !ok {
		return nil
	}
	return []Effect{FocusEffect{Client: entry.Client}}
}

func (e *Engine) closeSelected() []Effect {
	entry, ok := e.Selected()
	if !ok {
		return nil
	}
	return []Effect{CloseEffect{Client: entry.Client}}
}

// Selected returns the entry under the cursor.
func (e *Engine) Selected() (search.Entry, bool) {
	idx, ok := e.cur.Index()
	if !ok {
		return search.Entry{}, false
	}
	return e.list.At(idx)
}

func (e *Engine) List() search.DisplayList { return e.list }
func (e *Engine) Cursor() cursor.Cursor    { return e.cur }
func (e *Engine) Query() string            { return e.query }
func (e *Engine) Snapshot() registry.Snapshot {
	return e.snap
}

// Loaded reports whether any snapshot has been applied yet.
func (e *Engine) Loaded() bool { return e.loaded }

// Stale is set after a failed refresh and cleared by the next good one.
func (e *Engine) Stale() bool { return e.stale }

// Status is the last dispatch failure, if any.
func (e *Engine) Status() string { return e.status }

// Done reports whether the engine has requested termination.
func (e *Engine) Done() bool { return e.done }
