//go:build !windows && !linux && !darwin

package wallpaper

func setWallpaper(path string) error {
	return ErrUnsupported
}
