package store

import (
	"path/filepath"
	"testing"
	"time"

	"src.zlang.sh/pkg/store/storedefs"
	"src.zlang.sh/pkg/store/storetest"
	"src.zlang.sh/pkg/testutil"
)

func TestEntries(t *testing.T) {
	storetest.TestEntries(t, MustTempStore(t))
}

func TestAddEntry_FillsTime(t *testing.T) {
	st := MustTempStore(t)
	before := time.Now()
	seq, err := st.AddEntry(storedefs.Entry{Code: "1", Result: "1"})
	if err != nil {
		t.Fatal(err)
	}
	e, err := st.Entry(seq)
	if err != nil {
		t.Fatal(err)
	}
	if e.Time.Before(before.Add(-time.Second)) {
		t.Errorf("entry time %v is before the time it was added", e.Time)
	}
}

func TestNewStore_PersistsAcrossOpens(t *testing.T) {
	dbname := filepath.Join(testutil.TempDir(t), "db")
	st, err := NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddEntry(storedefs.Entry{Code: "(+ 1 1)", Result: "2"}); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	e, err := st.Entry(1)
	if err != nil || e.Code != "(+ 1 1)" || e.Result != "2" {
		t.Errorf("Entry(1) after reopening -> %v, %v", e, err)
	}
}

func TestNewStore_Error(t *testing.T) {
	_, err := NewStore(filepath.Join(testutil.TempDir(t), "no", "such", "db"))
	if err == nil {
		t.Errorf("NewStore in missing directory returns no error")
	}
}
