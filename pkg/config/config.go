// Package config loads vaultpaper settings from an optional TOML file.
//
// The file carries the same knobs the CLI exposes as flags; flags win
// when both are given. A missing file is not an error - every field has
// a working default - but a file that exists and fails to parse is,
// since silently ignoring a config the user wrote would be worse.
//
// Example:
//
//	vault = "~/notes"
//	output = "~/Pictures/vault.png"
//	set-wallpaper = true
//
//	[layout]
//	iterations = 500
//	spread = 3.0
//	seed = 42
//	min-dist = 0.05
//
//	[image]
//	width = 2560
//	height = 1440
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFilename is the config file looked up in the vault root and in
// the user config directory when --config is not given.
const DefaultFilename = "vaultpaper.toml"

// Config mirrors the TOML file. Zero values mean "not set"; the pipeline
// applies its own defaults on top.
type Config struct {
	Vault        string `toml:"vault"`
	Output       string `toml:"output"`
	SetWallpaper bool   `toml:"set-wallpaper"`
	Prune        bool   `toml:"prune"`

	Layout LayoutConfig `toml:"layout"`
	Image  ImageConfig  `toml:"image"`
	Watch  WatchConfig  `toml:"watch"`
}

// LayoutConfig holds the layout tunables.
type LayoutConfig struct {
	Iterations    int     `toml:"iterations"`
	Spread        float64 `toml:"spread"`
	Seed          int64   `toml:"seed"`
	MinDist       float64 `toml:"min-dist"`
	MinDistPasses int     `toml:"min-dist-passes"`
	RingMargin    float64 `toml:"ring-margin"`
}

// ImageConfig holds the output frame settings.
type ImageConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// WatchConfig holds the watcher settings.
type WatchConfig struct {
	// DebounceMillis is the quiet period after the last filesystem
	// event before a recompute fires.
	DebounceMillis int `toml:"debounce-ms"`
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("parse %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.expandPaths()
	return cfg, nil
}

// LoadDefault looks for the config file in the standard locations: the
// given vault root first, then the user config directory. Returns a zero
// Config when no file exists.
func LoadDefault(vaultRoot string) (Config, error) {
	var candidates []string
	if vaultRoot != "" {
		candidates = append(candidates, filepath.Join(vaultRoot, DefaultFilename))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "vaultpaper", DefaultFilename))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}
	return Config{}, nil
}

// expandPaths resolves a leading "~/" in path fields against the user's
// home directory.
func (c *Config) expandPaths() {
	c.Vault = expandHome(c.Vault)
	c.Output = expandHome(c.Output)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
