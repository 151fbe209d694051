//go:build darwin

package wallpaper

import (
	"fmt"
	"os/exec"
)

func setWallpaper(path string) error {
	script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to %q`, path)
	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}
