package sys

import (
	"os"

	"golang.org/x/sys/windows"
)

func winSize(file *os.File) (row, col int) {
	var info windows.ConsoleScreenBufferInfo
	if windows.GetConsoleScreenBufferInfo(windows.Handle(file.Fd()), &info) != nil {
		return -1, -1
	}
	// The window rectangle is inclusive on both ends.
	w := info.Window
	return int(w.Bottom-w.Top) + 1, int(w.Right-w.Left) + 1
}
