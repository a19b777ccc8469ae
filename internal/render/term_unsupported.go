//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package render

// IsTerminal always reports false where terminal detection is unavailable.
func IsTerminal(fd uintptr) bool {
	return false
}
