//go:build linux

package logger

import (
	"syscall"
	"unsafe"
)

// tcgets is the Linux ioctl number for reading terminal attributes.
const tcgets = 0x5401

// isTerminal reports whether the file descriptor refers to a terminal.
// The attributes ioctl only succeeds on a tty.
func isTerminal(fd uintptr) bool {
	var termios syscall.Termios
	_, _, errno := syscall.Syscall6(
		syscall.SYS_IOCTL,
		fd,
		tcgets,
		uintptr(unsafe.Pointer(&termios)),
		0, 0, 0,
	)
	return errno == 0
}
