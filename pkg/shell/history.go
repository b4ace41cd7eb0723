package shell

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"src.zlang.sh/pkg/prog"
	"src.zlang.sh/pkg/store"
	"src.zlang.sh/pkg/store/storedefs"
	"src.zlang.sh/pkg/sys"
)

type entryInJSON struct {
	Seq int `json:"seq"`
	storedefs.Entry
}

func showHistory(fds [3]*os.File, db string, asJSON bool) error {
	if db == "" {
		return prog.BadUsage("-history needs a database; set it with -db or in the config file")
	}
	st, err := store.NewStore(db)
	if err != nil {
		return err
	}
	defer st.Close()
	next, err := st.NextSeq()
	if err != nil {
		return err
	}
	entries, err := st.Entries(0, next)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(fds[1])
		for _, e := range entries {
			if err := enc.Encode(entryInJSON{e.Seq, e}); err != nil {
				return err
			}
		}
		return nil
	}

	width := -1
	if sys.IsATTY(fds[1].Fd()) {
		_, width = sys.WinSize(fds[1])
	}
	for _, e := range entries {
		fmt.Fprintln(fds[1], truncate(formatEntry(e), width))
	}
	return nil
}

func formatEntry(e storedefs.Entry) string {
	code := strings.ReplaceAll(e.Code, "\n", " ")
	if e.Error != "" {
		return fmt.Sprintf("%5d  %s  !! %s", e.Seq, code, e.Error)
	}
	return fmt.Sprintf("%5d  %s  => %s", e.Seq, code, e.Result)
}

// Truncates s to at most width runes. A width of 0 or less means no limit.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == width {
			return s[:i]
		}
		n++
	}
	return s
}
