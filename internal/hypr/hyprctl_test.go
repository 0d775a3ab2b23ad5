package hypr

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleClients = `[
  {
    "address": "0x5581a1b0",
    "mapped": true,
    "at": [10, 40],
    "workspace": {"id": 1, "name": "1"},
    "floating": false,
    "class": "firefox",
    "title": "Browser",
    "fullscreen": 0
  },
  {
    "address": "0x5581a2c0",
    "workspace": {"id": -98, "name": "special:magic"},
    "floating": true,
    "class": "kitty",
    "title": "scratch",
    "fullscreen": 2
  },
  {
    "address": "0x5581a3d0",
    "class": "xwayland",
    "fullscreen": 1
  }
]`

type recordingCommander struct {
	out    []byte
	err    error
	starts []string
}

func (r *recordingCommander) Output(ctx context.Context, args ...string) ([]byte, error) {
	return r.out, r.err
}

func (r *recordingCommander) Start(args ...string) error {
	r.starts = append(r.starts, strings.Join(args, " "))
	return nil
}

func TestParseClients(t *testing.T) {
	clients, err := ParseClients([]byte(sampleClients))
	require.NoError(t, err)
	require.Len(t, clients, 3)

	assert.Equal(t, "0x5581a1b0", clients[0].Address)
	label, ok := clients[0].Label()
	assert.True(t, ok)
	assert.Equal(t, "Browser", label)
	assert.Equal(t, "1", clients[0].WorkspaceLabel())
	assert.Equal(t, "Tiled", clients[0].Status())

	assert.True(t, clients[1].IsSpecial())
	assert.Equal(t, SpecialWorkspaceLabel, clients[1].WorkspaceLabel())
	assert.Equal(t, "Maximised", clients[1].Status())

	_, ok = clients[2].Label()
	assert.False(t, ok)
	assert.Equal(t, NoTitleLabel, clients[2].DisplayLabel())
	_, ok = clients[2].WorkspaceID()
	assert.False(t, ok)
	assert.Equal(t, FullscreenFull, clients[2].Fullscreen)
	assert.Equal(t, "Fullscreen", clients[2].Status())
}

func TestParseClients_Malformed(t *testing.T) {
	for _, in := range []string{"", "   ", "null", "{", `{"address": "x"}`, "hyprctl: socket not found"} {
		_, err := ParseClients([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseClients_EmptyArray(t *testing.T) {
	clients, err := ParseClients([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestHyprctl_Dispatch(t *testing.T) {
	rc := &recordingCommander{out: []byte(sampleClients)}
	h := NewHyprctl(rc)

	clients, err := h.Clients(context.Background())
	require.NoError(t, err)
	assert.Len(t, clients, 3)

	require.NoError(t, h.DispatchWorkspace(-98))
	require.NoError(t, h.DispatchCloseWindow("0x5581a1b0"))
	require.NoError(t, h.DispatchFocusWindow("0x5581a2c0"))

	assert.Equal(t, []string{
		"dispatch workspace -98",
		"dispatch closewindow address:0x5581a1b0",
		"dispatch focuswindow address:0x5581a2c0",
	}, rc.starts)
}

func TestClientEqual(t *testing.T) {
	a, err := ParseClients([]byte(sampleClients))
	require.NoError(t, err)
	b, err := ParseClients([]byte(sampleClients))
	require.NoError(t, err)

	for i := range a {
		assert.True(t, a[i].Equal(b[i]))
	}
	assert.False(t, a[0].Equal(a[1]))

	b[0].Workspace = nil
	assert.False(t, a[0].Equal(b[0]))
}

func TestExecCommander_StartMissingBinary(t *testing.T) {
	cmd := NewExecCommander("/nonexistent/whereami-hyprctl")
	err := cmd.Start("dispatch", "workspace 1")
	assert.Error(t, err)
}

func TestNewExecCommander_Default(t *testing.T) {
	assert.Equal(t, DefaultCommand, NewExecCommander("  ").Path)
}
