package core

import (
	"github.com/chess10kp/whereami/internal/cursor"
	"github.com/chess10kp/whereami/internal/dispatch"
	"github.com/chess10kp/whereami/internal/hypr"
	"github.com/chess10kp/whereami/internal/registry"
)

// Event is anything that can change engine state. The set is closed.
type Event interface {
	event()
}

// Tick is the periodic refresh timer.
type Tick struct{}

// SnapshotLoaded carries a completed refresh.
type SnapshotLoaded struct {
	Snapshot registry.Snapshot
}

// RefreshFailed carries a failed refresh. Err wraps
// registry.ErrRegistryUnavailable.
type RefreshFailed struct {
	Err error
}

// Navigate moves the cursor one row.
type Navigate struct {
	Dir cursor.Direction
}

// Hover selects the row at Index without acting on it.
type Hover struct {
	Index int
}

// Select focuses the client under the cursor.
type Select struct{}

// SelectAndFocus moves the cursor to Index and focuses that client.
type SelectAndFocus struct {
	Index int
}

// CloseSelected closes the client under the cursor.
type CloseSelected struct{}

// SelectAndClose moves the cursor to Index and closes that client.
type SelectAndClose struct {
	Index int
}

// QueryChanged replaces the search query.
type QueryChanged struct {
	Query string
}

// FocusDispatched reports the outcome of a FocusEffect.
type FocusDispatched struct {
	Result dispatch.Result
}

// CloseDispatched reports the outcome of a CloseEffect.
type CloseDispatched struct {
	Result dispatch.Result
}

// Quit ends the session without acting.
type Quit struct{}

func (Tick) event()            {}
func (SnapshotLoaded) event()  {}
func (RefreshFailed) event()   {}
func (Navigate) event()        {}
func (Hover) event()           {}
func (Select) event()          {}
func (SelectAndFocus) event()  {}
func (CloseSelected) event()   {}
func (SelectAndClose) event()  {}
func (QueryChanged) event()    {}
func (FocusDispatched) event() {}
func (CloseDispatched) event() {}
func (Quit) event()            {}

// Effect is work requested by Update. Effects are executed by a Runner and
// their results come back as events.
type Effect interface {
	effect()
}

// RefreshEffect fetches a new snapshot.
type RefreshEffect struct{}

// FocusEffect focuses Client.
type FocusEffect struct {
	Client hypr.Client
}

// CloseEffect closes Client.
type CloseEffect struct {
	Client hypr.Client
}

// QuitEffect terminates the process. It produces no event.
type QuitEffect struct{}

func (RefreshEffect) effect() {}
func (FocusEffect) effect()   {}
func (CloseEffect) effect()   {}
func (QuitEffect) effect()    {}
