// Package wallpaper sets the desktop background to an image file.
//
// This is thin platform glue around the graph pipeline: one system call
// on Windows, a scripting bridge on macOS, and the common desktop
// configuration tools on Linux. Failures here are reported to the caller
// and are only fatal when the run was explicitly asked to set the
// wallpaper.
package wallpaper

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrUnsupported is returned when no wallpaper mechanism exists for the
// current platform or desktop environment.
var ErrUnsupported = errors.New("setting the wallpaper is not supported on this platform")

// Set makes the image at path the desktop background. The path is made
// absolute first; most desktop APIs silently ignore relative paths.
func Set(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	return setWallpaper(abs)
}
