// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"src.zlang.sh/pkg/store/storedefs"
)

var start = time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

var entries = []storedefs.Entry{
	{Code: "(+ 1 2)", Result: "3"},
	{Code: "(f 1)", Error: "unbound variable: f"},
	{Code: `"s"`, Result: "s"},
	{Code: "(+ 3 4)", Result: "7"},
}

// TestEntries tests the history functionality of a Store.
func TestEntries(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextSeq() -> %v, %v, want %v, nil", startSeq, err, 1)
	}

	// AddEntry
	for i, e := range entries {
		e.Time = start.Add(time.Duration(i) * time.Minute)
		wantSeq := startSeq + i
		seq, err := store.AddEntry(e)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddEntry(%v) -> %v, %v, want %v, nil", e, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextSeq()
	wantedEndSeq := startSeq + len(entries)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextSeq() -> %v, %v, want %v, nil", endSeq, err, wantedEndSeq)
	}

	// Entry
	for i, want := range entries {
		want.Seq = startSeq + i
		want.Time = start.Add(time.Duration(i) * time.Minute)
		got, err := store.Entry(want.Seq)
		if err != nil {
			t.Errorf("store.Entry(%v) -> error %v", want.Seq, err)
		}
		if diff := cmp.Diff(want, got, timeEqual); diff != "" {
			t.Errorf("store.Entry(%v) (-want +got):\n%s", want.Seq, diff)
		}
	}

	// Entries
	got, err := store.Entries(startSeq+1, startSeq+3)
	if err != nil {
		t.Errorf("store.Entries -> error %v", err)
	}
	if len(got) != 2 || got[0].Code != entries[1].Code || got[1].Code != entries[2].Code {
		t.Errorf("store.Entries(%d, %d) -> %v", startSeq+1, startSeq+3, got)
	}

	// PrevEntry
	e, err := store.PrevEntry(endSeq, "(+")
	if err != nil || e.Seq != startSeq+3 {
		t.Errorf("store.PrevEntry(%d, \"(+\") -> %v, %v", endSeq, e, err)
	}
	e, err = store.PrevEntry(startSeq+3, "(+")
	if err != nil || e.Seq != startSeq {
		t.Errorf("store.PrevEntry(%d, \"(+\") -> %v, %v", startSeq+3, e, err)
	}
	_, err = store.PrevEntry(startSeq, "")
	if err != storedefs.ErrNoMatchingEntry {
		t.Errorf("store.PrevEntry(%d, \"\") -> error %v, want ErrNoMatchingEntry", startSeq, err)
	}

	// DelEntry
	if err := store.DelEntry(startSeq); err != nil {
		t.Errorf("store.DelEntry(%d) -> error %v", startSeq, err)
	}
	if _, err := store.Entry(startSeq); err != storedefs.ErrNoMatchingEntry {
		t.Errorf("store.Entry(%d) after deletion -> error %v, want ErrNoMatchingEntry", startSeq, err)
	}
	if seq, _ := store.NextSeq(); seq != endSeq {
		t.Errorf("store.NextSeq() after deletion -> %d, want %d", seq, endSeq)
	}
}

var timeEqual = cmpopts.EquateApproxTime(0)
