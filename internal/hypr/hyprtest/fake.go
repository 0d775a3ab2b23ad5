// Package hyprtest provides an in-memory hypr.Commander for tests.
package hyprtest

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/chess10kp/whereami/internal/hypr"
)

// Commander records every call and serves canned client lists.
type Commander struct {
	mu       sync.Mutex
	output   []byte
	outErr   error
	startErr error
	outputs  [][]string
	starts   [][]string
}

func New() *Commander {
	return &Commander{output: []byte("[]")}
}

// SetClients makes the next Output calls return clients encoded as JSON.
func (c *Commander) SetClients(clients []hypr.Client) {
	data, err := json.Marshal(clients)
	if err != nil {
		panic(err)
	}
	c.SetOutput(data, nil)
}

// SetOutput sets the raw output and error for Output calls.
func (c *Commander) SetOutput(out []byte, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.output = out
	c.outErr = err
}

// SetStartErr makes Start fail with err.
func (c *Commander) SetStartErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startErr = err
}

func (c *Commander) Output(ctx context.Context, args ...string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outputs = append(c.outputs, append([]string(nil), args...))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.outErr != nil {
		return nil, c.outErr
	}
	return append([]byte(nil), c.output...), nil
}

func (c *Commander) Start(args ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.starts = append(c.starts, append([]string(nil), args...))
	return c.startErr
}

// Starts returns every Start call joined by spaces.
func (c *Commander) Starts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.starts))
	for i, args := range c.starts {
		out[i] = strings.Join(args, " ")
	}
	return out
}

// OutputCalls returns how many times Output ran.
func (c *Commander) OutputCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.outputs)
}

// Client builds a tiled client on workspace ws. An empty title leaves
// Title nil.
func Client(address, title string, ws int) hypr.Client {
	c := hypr.Client{Address: address, Class: strings.ToLower(title)}
	if title != "" {
		t := title
		c.Title = &t
	}
	c.Workspace = &hypr.Workspace{ID: ws}
	return c
}
