//go:build darwin

package logger

import (
	"syscall"
	"unsafe"
)

// isTerminal reports whether the file descriptor refers to a terminal.
// On macOS the terminal-attributes ioctl is TIOCGETA; it only succeeds
// on a tty.
func isTerminal(fd uintptr) bool {
	var termios syscall.Termios
	_, _, errno := syscall.Syscall6(
		syscall.SYS_IOCTL,
		fd,
		syscall.TIOCGETA,
		uintptr(unsafe.Pointer(&termios)),
		0, 0, 0,
	)
	return errno == 0
}
