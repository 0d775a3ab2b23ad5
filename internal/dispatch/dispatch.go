// Package dispatch issues focus and close commands to the compositor.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/chess10kp/whereami/internal/hypr"
	"github.com/chess10kp/whereami/internal/logger"
)

// ErrDispatchIssue means the command could not even be started.
var ErrDispatchIssue = errors.New("dispatch could not be issued")

// UnknownWorkspace is sent when a client reports no workspace.
const UnknownWorkspace = 0

// Action names a dispatch.
type Action string

const (
	ActionFocus Action = "focus"
	ActionClose Action = "close"
)

// FocusMode selects how Focus reaches a window.
type FocusMode int

const (
	// FocusWorkspace switches to the client's workspace.
	FocusWorkspace FocusMode = iota
	// FocusWindow focuses the client by address.
	FocusWindow
)

// Compositor is the set of dispatch commands used here.
type Compositor interface {
	DispatchWorkspace(id int) error
	DispatchCloseWindow(address string) error
	DispatchFocusWindow(address string) error
}

// Result reports whether a command was issued. The command's own exit
// status is never observed.
type Result struct {
	Action Action
	Client hypr.Client
	Issued bool
	Err    error
}

// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	wm   Compositor
	mode FocusMode
}

func New(wm Compositor, mode FocusMode) *Dispatcher {
	return &Dispatcher{wm: wm, mode: mode}
}

// Focus brings the client to the front.
func (d *Dispatcher) Focus(ctx context.Context, c hypr.Client) Result {
	log := logger.Component("dispatch")
	if err := ctx.Err(); err != nil {
		return failed(ActionFocus, c, err)
	}

	var err error
	switch d.mode {
	case FocusWindow:
		err = d.wm.DispatchFocusWindow(c.Address)
	default:
		id, ok := c.WorkspaceID()
		if !ok {
			id = UnknownWorkspace
			log.Warn().Str("address", c.Address).Msg("client has no workspace, focusing the unknown workspace sentinel")
		}
		err = d.wm.DispatchWorkspace(id)
	}
	if err != nil {
		log.Error().Err(err).Str("address", c.Address).Msg("focus not issued")
		return failed(ActionFocus, c, err)
	}

	log.Info().Str("address", c.Address).Str("title", c.DisplayLabel()).Msg("focus issued")
	return Result{Action: ActionFocus, Client: c, Issued: true}
}

// Close asks the compositor to close the client's window.
func (d *Dispatcher) Close(ctx context.Context, c hypr.Client) Result {
	log := logger.Component("dispatch")
	if err := ctx.Err(); err != nil {
		return failed(ActionClose, c, err)
	}

	if err := d.wm.DispatchCloseWindow(c.Address); err != nil {
		log.Error().Err(err).Str("address", c.Address).Msg("close not issued")
		return failed(ActionClose, c, err)
	}

	log.Info().Str("address", c.Address).Str("title", c.DisplayLabel()).Msg("close issued")
	return Result{Action: ActionClose, Client: c, Issued: true}
}

func failed(a Action, c hypr.Client, err error) Result {
	return Result{
		Action: a,
		Client: c,
		Err:    fmt.Errorf("%w: %s %s: %w", ErrDispatchIssue, a, c.Address, err),
	}
}
