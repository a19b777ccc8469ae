//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package render

import "golang.org/x/sys/unix"

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), termiosReadRequest)
	return err == nil
}
