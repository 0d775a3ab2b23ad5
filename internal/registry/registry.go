// Package registry polls the compositor for its client list and publishes
// immutable snapshots of it.
package registry

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync/atomic"
	"time"

	"github.com/chess10kp/whereami/internal/hypr"
	"github.com/chess10kp/whereami/internal/logger"
)

// ErrRegistryUnavailable wraps every failure to obtain a fresh snapshot.
// Callers keep showing the previous snapshot.
var ErrRegistryUnavailable = errors.New("registry unavailable")

// Lister is the part of the compositor interface the poller needs.
type Lister interface {
	Clients(ctx context.Context) ([]hypr.Client, error)
}

// Snapshot is one atomic capture of the client list. Seq increases with
// every refresh issued by the same poller.
type Snapshot struct {
	Clients    []hypr.Client
	CapturedAt time.Time
	Seq        uint64
}

// Len returns the number of clients.
func (s Snapshot) Len() int {
	return len(s.Clients)
}

// Hash identifies the snapshot content. Two snapshots with the same clients
// in the same order hash equal regardless of capture time. Every client
// field takes part; absent optional fields hash apart from empty ones.
func (s Snapshot) Hash() string {
	h := md5.New()
	for _, c := range s.Clients {
		fmt.Fprintf(h, "%q %q ", c.Address, c.Class)
		writeOptional(h, c.Title)
		if c.Workspace == nil {
			h.Write([]byte("- "))
		} else {
			fmt.Fprintf(h, "%d ", c.Workspace.ID)
			writeOptional(h, c.Workspace.Name)
		}
		fmt.Fprintf(h, "%d %t\n", c.Fullscreen, c.Floating)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func writeOptional(w io.Writer, s *string) {
	if s == nil {
		io.WriteString(w, "- ")
		return
	}
	fmt.Fprintf(w, "%q ", *s)
}

// Options control what a refresh publishes.
type Options struct {
	// SelfTitle is the switcher's own window title; matching clients are
	// dropped.
	SelfTitle string
	// SortByWorkspace stably orders clients by workspace id, absent
	// workspaces sorting as 0.
	SortByWorkspace bool
}

// Poller fetches snapshots on demand. It holds no state besides the
// sequence counter and is safe for concurrent use.
type Poller struct {
	lister Lister
	opts   Options
	seq    atomic.Uint64
	now    func() time.Time
}

func NewPoller(lister Lister, opts Options) *Poller {
	return &Poller{
		lister: lister,
		opts:   opts,
		now:    time.Now,
	}
}

// Refresh captures a new snapshot.
func (p *Poller) Refresh(ctx context.Context) (Snapshot, error) {
	log := logger.Component("registry")
	seq := p.seq.Add(1)
	start := p.now()

	clients, err := p.lister.Clients(ctx)
	if err != nil {
		log.Warn().Err(err).Uint64("seq", seq).Msg("refresh failed")
		return Snapshot{}, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	kept := make([]hypr.Client, 0, len(clients))
	for _, c := range clients {
		if p.isSelf(c) {
			continue
		}
		kept = append(kept, c)
	}

	if p.opts.SortByWorkspace {
		sort.SliceStable(kept, func(i, j int) bool {
			return workspaceKey(kept[i]) < workspaceKey(kept[j])
		})
	}

	log.Debug().
		Uint64("seq", seq).
		Int("clients", len(kept)).
		Int("excluded", len(clients)-len(kept)).
		Dur("took", p.now().Sub(start)).
		Msg("refreshed")

	return Snapshot{Clients: kept, CapturedAt: p.now(), Seq: seq}, nil
}

func (p *Poller) isSelf(c hypr.Client) bool {
	if p.opts.SelfTitle == "" || c.Title == nil {
		return false
	}
	return *c.Title == p.opts.SelfTitle
}

func workspaceKey(c hypr.Client) int {
	id, _ := c.WorkspaceID()
	return id
}
