//go:build linux

package wallpaper

import (
	"fmt"
	"os/exec"
)

// setWallpaper tries the common desktop tools in order. GNOME-family
// desktops ship gsettings; feh covers most bare window managers.
func setWallpaper(path string) error {
	uri := "file://" + path
	attempts := [][]string{
		{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri},
		{"gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri},
		{"feh", "--bg-fill", path},
	}

	var lastErr error
	applied := false
	for _, argv := range attempts {
		if _, err := exec.LookPath(argv[0]); err != nil {
			lastErr = err
			continue
		}
		if out, err := exec.Command(argv[0], argv[1:]...).CombinedOutput(); err != nil {
			lastErr = fmt.Errorf("%s: %w: %s", argv[0], err, out)
			continue
		}
		applied = true
		// Keep going through gsettings attempts so both light and dark
		// variants are updated, but feh is a terminal fallback.
		if argv[0] == "feh" {
			break
		}
	}
	if applied {
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, lastErr)
	}
	return ErrUnsupported
}
