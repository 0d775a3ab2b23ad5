package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the config file is looked up when none is given.
const DefaultPath = "~/.config/whereami/config.toml"

// MinRefreshInterval is the floor applied to behavior.refresh_interval.
const MinRefreshInterval = 50 * time.Millisecond

// Focus modes.
const (
	FocusModeWorkspace = "workspace"
	FocusModeWindow    = "window"
)

type Config struct {
	Behavior BehaviorConfig `toml:"behavior"`
	Window   WindowConfig   `toml:"window"`
	Search   SearchConfig   `toml:"search"`
	Hyprctl  HyprctlConfig  `toml:"hyprctl"`
	Lock     LockConfig     `toml:"lock"`
	Log      LogConfig      `toml:"log"`
	Keys     KeysConfig     `toml:"keys"`
	Colors   ColorsConfig   `toml:"colors"`
}

type BehaviorConfig struct {
	RefreshInterval int    `toml:"refresh_interval"` // milliseconds
	WrapNavigation  bool   `toml:"wrap_navigation"`
	SortByWorkspace bool   `toml:"sort_by_workspace"`
	FocusMode       string `toml:"focus_mode"`
}

type WindowConfig struct {
	// Title is advertised as the terminal title and excluded from the list.
	Title string `toml:"title"`
}

type SearchConfig struct {
	CaseSensitive bool `toml:"case_sensitive"`
	MaxResults    int  `toml:"max_results"` // 0 means unlimited
	CacheSize     int  `toml:"cache_size"`
}

type HyprctlConfig struct {
	Command string `toml:"command"`
}

type LockConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Pretty bool   `toml:"pretty"`
}

type KeysConfig struct {
	Up          []string `toml:"up"`
	Down        []string `toml:"down"`
	Select      []string `toml:"select"`
	Close       []string `toml:"close"`
	Quit        []string `toml:"quit"`
	FocusSearch []string `toml:"focus_search"`
}

type ColorsConfig struct {
	Text               string       `toml:"text"`
	SelectedText       string       `toml:"selected_text"`
	SelectedBackground string       `toml:"selected_background"`
	Match              string       `toml:"match"`
	SearchBorder       string       `toml:"search_border"`
	Status             StatusColors `toml:"status"`
}

type StatusColors struct {
	Fullscreen string `toml:"fullscreen"`
	Maximized  string `toml:"maximized"`
	Floating   string `toml:"floating"`
	Tiled      string `toml:"tiled"`
}

var DefaultConfig = Config{
	Behavior: BehaviorConfig{
		RefreshInterval: 1000,
		WrapNavigation:  true,
		SortByWorkspace: false,
		FocusMode:       FocusModeWorkspace,
	},
	Window: WindowConfig{
		Title: "whereami",
	},
	Search: SearchConfig{
		CaseSensitive: false,
		MaxResults:    0,
		CacheSize:     128,
	},
	Hyprctl: HyprctlConfig{
		Command: "hyprctl",
	},
	Lock: LockConfig{
		Path: "/tmp/whereami.pid",
	},
	Log: LogConfig{
		Level:  "info",
		File:   "~/.cache/whereami/whereami.log",
		Pretty: false,
	},
	Keys: KeysConfig{
		Up:          []string{"up", "ctrl+p", "ctrl+k"},
		Down:        []string{"down", "ctrl+n", "ctrl+j"},
		Select:      []string{"enter"},
		Close:       []string{"delete", "ctrl+d"},
		Quit:        []string{"esc", "ctrl+c"},
		FocusSearch: []string{","},
	},
	Colors: ColorsConfig{
		Text:               "#ebdbb2",
		SelectedText:       "#0e1419",
		SelectedBackground: "#89b4fa",
		Match:              "#fabd2f",
		SearchBorder:       "#313244",
		Status: StatusColors{
			Fullscreen: "#fb4934",
			Maximized:  "#fe8019",
			Floating:   "#83a598",
			Tiled:      "#b8bb26",
		},
	},
}

// Default returns a deep copy of DefaultConfig.
func Default() *Config {
	cfg := DefaultConfig
	k := DefaultConfig.Keys
	cfg.Keys = KeysConfig{
		Up:          append([]string(nil), k.Up...),
		Down:        append([]string(nil), k.Down...),
		Select:      append([]string(nil), k.Select...),
		Close:       append([]string(nil), k.Close...),
		Quit:        append([]string(nil), k.Quit...),
		FocusSearch: append([]string(nil), k.FocusSearch...),
	}
	return &cfg
}

// LoadConfig reads the TOML file at path on top of the defaults. A missing
// file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	expandedPath := expandPath(path)

	cfg := Default()
	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		cfg.expandPaths()
		return cfg, nil
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", expandedPath, err)
	}

	cfg.expandPaths()
	return cfg, nil
}

func LoadAndValidateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) expandPaths() {
	c.Lock.Path = expandPath(c.Lock.Path)
	c.Log.File = expandPath(c.Log.File)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

func SaveConfig(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(expandedPath, data, 0644)
}

// RefreshInterval returns the poll cadence with MinRefreshInterval applied.
func (c *Config) RefreshInterval() time.Duration {
	d := time.Duration(c.Behavior.RefreshInterval) * time.Millisecond
	if d < MinRefreshInterval {
		return MinRefreshInterval
	}
	return d
}

func (c *Config) Validate() error {
	if err := c.validateBehavior(); err != nil {
		return err
	}
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateHyprctl(); err != nil {
		return err
	}
	if err := c.validateLock(); err != nil {
		return err
	}
	if err := c.validateLog(); err != nil {
		return err
	}
	if err := c.validateKeys(); err != nil {
		return err
	}
	return nil
}

// validateBehavior rejects negative intervals. Values between 0 and the
// floor are accepted and raised by RefreshInterval.
func (c *Config) validateBehavior() error {
	b := c.Behavior
	if b.RefreshInterval < 0 || b.RefreshInterval > 3600000 {
		return fmt.Errorf("invalid refresh_interval: %d (must be 0-3600000ms)", b.RefreshInterval)
	}
	switch b.FocusMode {
	case FocusModeWorkspace, FocusModeWindow:
	default:
		return fmt.Errorf("invalid focus_mode: %q (must be %q or %q)", b.FocusMode, FocusModeWorkspace, FocusModeWindow)
	}
	return nil
}

func (c *Config) validateWindow() error {
	if strings.TrimSpace(c.Window.Title) == "" {
		return fmt.Errorf("window title must not be empty")
	}
	return nil
}

func (c *Config) validateSearch() error {
	s := c.Search
	if s.MaxResults < 0 || s.MaxResults > 10000 {
		return fmt.Errorf("invalid max_results: %d (must be 0-10000)", s.MaxResults)
	}
	if s.CacheSize < 0 || s.CacheSize > 10000 {
		return fmt.Errorf("invalid cache_size: %d (must be 0-10000)", s.CacheSize)
	}
	return nil
}

func (c *Config) validateHyprctl() error {
	if strings.TrimSpace(c.Hyprctl.Command) == "" {
		return fmt.Errorf("hyprctl command must not be empty")
	}
	return nil
}

func (c *Config) validateLock() error {
	if strings.TrimSpace(c.Lock.Path) == "" {
		return fmt.Errorf("lock path must not be empty")
	}
	return nil
}

// validateLog accepts an empty level as info.
func (c *Config) validateLog() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "off", "disabled":
		return nil
	}
	return fmt.Errorf("invalid log level: %q (must be trace, debug, info, warn, error or off)", c.Log.Level)
}

func (c *Config) validateKeys() error {
	k := c.Keys
	bindings := map[string][]string{
		"up":     k.Up,
		"down":   k.Down,
		"select": k.Select,
		"quit":   k.Quit,
	}
	for name, keys := range bindings {
		if len(keys) == 0 {
			return fmt.Errorf("keys.%s must bind at least one key", name)
		}
	}
	return nil
}

func ValidateConfig(path string) error {
	_, err := LoadAndValidateConfig(path)
	return err
}
