package hypr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

// DefaultCommand is the compositor control binary.
const DefaultCommand = "hyprctl"

// Commander runs the compositor control binary. Output waits for the command
// and returns its stdout; Start only spawns it.
type Commander interface {
	Output(ctx context.Context, args ...string) ([]byte, error)
	Start(args ...string) error
}

// ExecCommander runs a real executable.
type ExecCommander struct {
	Path string
}

// NewExecCommander returns a commander for path, falling back to hyprctl.
func NewExecCommander(path string) *ExecCommander {
	if strings.TrimSpace(path) == "" {
		path = DefaultCommand
	}
	return &ExecCommander{Path: path}
}

func (e *ExecCommander) Output(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.Path, args...)
	cmd.Env = childEnv()
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", e.Path, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", e.Path, strings.Join(args, " "), err)
	}
	return out, nil
}

// Start spawns the command in its own session and reaps it in the
// background. Its exit status is not observed.
func (e *ExecCommander) Start(args ...string) error {
	cmd := exec.Command(e.Path, args...)
	cmd.Env = childEnv()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", e.Path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// childEnv drops LD_PRELOAD so injected libraries do not leak into hyprctl.
func childEnv() []string {
	env := os.Environ()
	out := env[:0:0]
	for _, e := range env {
		if strings.HasPrefix(e, "LD_PRELOAD=") {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Hyprctl speaks the hyprctl command line protocol over a Commander.
type Hyprctl struct {
	cmd Commander
}

func NewHyprctl(cmd Commander) *Hyprctl {
	return &Hyprctl{cmd: cmd}
}

// Clients lists every client. Empty or malformed output is an error.
func (h *Hyprctl) Clients(ctx context.Context) ([]Client, error) {
	out, err := h.cmd.Output(ctx, "clients", "-j")
	if err != nil {
		return nil, err
	}
	return ParseClients(out)
}

// ParseClients decodes the JSON array printed by `hyprctl clients -j`.
func ParseClients(data []byte) ([]Client, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty client list output")
	}
	var clients []Client
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("failed to parse client list: %w", err)
	}
	if clients == nil {
		return nil, fmt.Errorf("client list output is not an array")
	}
	return clients, nil
}

// DispatchWorkspace switches to the workspace with the given id.
func (h *Hyprctl) DispatchWorkspace(id int) error {
	return h.cmd.Start("dispatch", "workspace "+strconv.Itoa(id))
}

// DispatchCloseWindow closes the window with the given address.
func (h *Hyprctl) DispatchCloseWindow(address string) error {
	return h.cmd.Start("dispatch", "closewindow address:"+address)
}

// DispatchFocusWindow focuses the window with the given address, switching
// workspace if needed.
func (h *Hyprctl) DispatchFocusWindow(address string) error {
	return h.cmd.Start("dispatch", "focuswindow address:"+address)
}
