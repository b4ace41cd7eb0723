// Package must has helpers that turn errors into panics, for tests and
// for the few places where an error cannot happen.
package must

import (
	"io"
	"os"
	"path/filepath"
)

// OK panics if err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, or panics if err is not nil.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// Pipe is like os.Pipe, but panics on failure.
func Pipe() (r, w *os.File) {
	r, w, err := os.Pipe()
	OK(err)
	return r, w
}

// ReadAllAndClose reads r until EOF and closes it.
func ReadAllAndClose(r io.ReadCloser) []byte {
	defer func() { OK(r.Close()) }()
	return OK1(io.ReadAll(r))
}

// WriteFile creates or truncates a file with the given content, creating
// missing parent directories first.
func WriteFile(name, content string) {
	OK(os.MkdirAll(filepath.Dir(name), 0700))
	OK(os.WriteFile(name, []byte(content), 0600))
}
