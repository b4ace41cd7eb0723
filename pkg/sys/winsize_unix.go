//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

// Reported in place of a zero dimension, which serial consoles and ptys that
// were never resized return.
const defaultRows, defaultCols = 24, 80

func winSize(file *os.File) (row, col int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}
	return nonZero(ws.Row, defaultRows), nonZero(ws.Col, defaultCols)
}

func nonZero(n uint16, fallback int) int {
	if n == 0 {
		return fallback
	}
	return int(n)
}
