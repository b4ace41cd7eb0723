// Package testutil has helpers for tests that touch the process environment:
// temporary directories, the working directory and environment variables.
package testutil

// Cleanuper is the part of [testing.TB] the helpers need to undo their
// changes.
type Cleanuper interface {
	Cleanup(func())
}
