package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tmolenaar/vaultpaper/pkg/pipeline"
)

func TestBuildOptionsFlagsWinOverConfig(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "vaultpaper.toml")
	cfgBody := `
output = "from-config.png"
set-wallpaper = true

[layout]
iterations = 999
spread = 9.0

[image]
width = 800

[watch]
debounce-ms = 250
`
	if err := os.WriteFile(cfgPath, []byte(cfgBody), 0644); err != nil {
		t.Fatal(err)
	}

	o := pipelineOpts{
		configPath: cfgPath,
		output:     "from-flag.png",
		iterations: 100,
	}
	popts, err := o.buildOptions(root)
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}

	if popts.Output != "from-flag.png" {
		t.Errorf("Output = %q, flag must win over config", popts.Output)
	}
	if popts.Layout.Iterations != 100 {
		t.Errorf("Iterations = %d, flag must win over config", popts.Layout.Iterations)
	}
	// Fields only the config sets fall through from it.
	if !popts.SetWallpaper {
		t.Error("SetWallpaper must come from config when no flag is set")
	}
	if popts.Layout.Spread != 9.0 {
		t.Errorf("Spread = %v, want config value 9.0", popts.Layout.Spread)
	}
	if popts.Render.Width != 800 {
		t.Errorf("Width = %d, want config value 800", popts.Render.Width)
	}
	if popts.WatchDebounce != 250*time.Millisecond {
		t.Errorf("WatchDebounce = %v, want config value 250ms", popts.WatchDebounce)
	}

	// With the --debounce flag set, the config key loses.
	o.debounceMs = 100
	popts, err = o.buildOptions(root)
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}
	if popts.WatchDebounce != 100*time.Millisecond {
		t.Errorf("WatchDebounce = %v, flag must win over config", popts.WatchDebounce)
	}
}

func TestBuildOptionsDefaults(t *testing.T) {
	// Empty temp dir: no config file anywhere near, everything defaults.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := t.TempDir()

	o := pipelineOpts{}
	popts, err := o.buildOptions(root)
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}
	if popts.VaultRoot != root {
		t.Errorf("VaultRoot = %q, want %q", popts.VaultRoot, root)
	}
	if popts.Output != pipeline.DefaultOutput {
		t.Errorf("Output = %q, want %q", popts.Output, pipeline.DefaultOutput)
	}
}

func TestBuildOptionsBadConfig(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "broken.toml")
	if err := os.WriteFile(cfgPath, []byte("vault = [nope"), 0644); err != nil {
		t.Fatal(err)
	}

	o := pipelineOpts{configPath: cfgPath}
	if _, err := o.buildOptions(root); err == nil {
		t.Fatal("buildOptions() with broken config: expected error, got nil")
	}
}
