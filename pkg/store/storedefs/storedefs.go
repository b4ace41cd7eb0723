// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"
	"time"
)

// ErrNoMatchingEntry is the error returned when a query for an entry
// completes with no result.
var ErrNoMatchingEntry = errors.New("no matching history entry")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextSeq() (int, error)
	AddEntry(e Entry) (int, error)
	DelEntry(seq int) error
	Entry(seq int) (Entry, error)
	Entries(from, upto int) ([]Entry, error)
	PrevEntry(upto int, prefix string) (Entry, error)
}

// Entry is an evaluation in the history: the code that was evaluated, and
// either its result or the error it failed with.
type Entry struct {
	Seq    int       `json:"-"`
	Code   string    `json:"code"`
	Result string    `json:"result,omitempty"`
	Error  string    `json:"error,omitempty"`
	Time   time.Time `json:"time"`
}
