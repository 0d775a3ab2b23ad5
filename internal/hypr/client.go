package hypr

import "fmt"

// NoTitleLabel is shown for clients that never set a title.
const NoTitleLabel = "No title"

// SpecialWorkspaceLabel is shown instead of the id of any negative
// (scratchpad-like) workspace.
const SpecialWorkspaceLabel = "Special Workspace"

// FullscreenState mirrors the integer hyprctl reports in "fullscreen".
type FullscreenState int

const (
	FullscreenNone FullscreenState = iota
	FullscreenFull
	FullscreenMaximized
)

func (s FullscreenState) String() string {
	switch s {
	case FullscreenFull:
		return "fullscreen"
	case FullscreenMaximized:
		return "maximized"
	default:
		return "none"
	}
}

// Workspace is the workspace a client lives on.
type Workspace struct {
	ID   int     `json:"id" yaml:"id"`
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Client is one window as reported by `hyprctl clients -j`.
//
// A Client belongs to exactly one snapshot and is never mutated after
// decoding.
type Client struct {
	Address    string          `json:"address" yaml:"address"`
	Title      *string         `json:"title,omitempty" yaml:"title,omitempty"`
	Class      string          `json:"class" yaml:"class"`
	Workspace  *Workspace      `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	Fullscreen FullscreenState `json:"fullscreen" yaml:"fullscreen"`
	Floating   bool            `json:"floating" yaml:"floating"`
}

// Label returns the string searched against and whether the client has one.
// Clients with an empty or missing title are not searchable.
func (c Client) Label() (string, bool) {
	if c.Title == nil || *c.Title == "" {
		return "", false
	}
	return *c.Title, true
}

// DisplayLabel returns the title, or NoTitleLabel when there is none.
func (c Client) DisplayLabel() string {
	if label, ok := c.Label(); ok {
		return label
	}
	return NoTitleLabel
}

// WorkspaceID returns the workspace id and false when the client reports no
// workspace. Callers decide what an absent workspace means.
func (c Client) WorkspaceID() (int, bool) {
	if c.Workspace == nil {
		return 0, false
	}
	return c.Workspace.ID, true
}

// IsSpecial reports whether the client sits on a special workspace.
func (c Client) IsSpecial() bool {
	id, ok := c.WorkspaceID()
	return ok && id < 0
}

// WorkspaceLabel renders the workspace for display.
func (c Client) WorkspaceLabel() string {
	id, ok := c.WorkspaceID()
	switch {
	case !ok:
		return "?"
	case id < 0:
		return SpecialWorkspaceLabel
	default:
		return fmt.Sprintf("%d", id)
	}
}

// Status is the short layout state shown next to each entry.
func (c Client) Status() string {
	switch c.Fullscreen {
	case FullscreenFull:
		return "Fullscreen"
	case FullscreenMaximized:
		return "Maximised"
	}
	if c.Floating {
		return "Float"
	}
	return "Tiled"
}

// Equal compares two clients field by field.
func (c Client) Equal(o Client) bool {
	if c.Address != o.Address || c.Class != o.Class ||
		c.Fullscreen != o.Fullscreen || c.Floating != o.Floating {
		return false
	}
	if !equalStringPtr(c.Title, o.Title) {
		return false
	}
	switch {
	case c.Workspace == nil && o.Workspace == nil:
		return true
	case c.Workspace == nil || o.Workspace == nil:
		return false
	}
	return c.Workspace.ID == o.Workspace.ID && equalStringPtr(c.Workspace.Name, o.Workspace.Name)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
