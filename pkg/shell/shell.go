// Package shell is the entry point for evaluating zi code from the command
// line, either as a script or interactively.
package shell

import (
	"fmt"
	"os"

	"src.zlang.sh/pkg/config"
	"src.zlang.sh/pkg/eval"
	"src.zlang.sh/pkg/logutil"
	"src.zlang.sh/pkg/prog"
	"src.zlang.sh/pkg/store"
	"src.zlang.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It always runs, so it should be the last
// of a composite program.
type Program struct {
	codeInArg bool
	parseOnly bool
	history   bool
	repr      bool
	format    string
	db        string
	maxDepth  int

	json   *bool
	config *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.codeInArg, "c", false, "Take the first argument as code to evaluate")
	fs.BoolVar(&p.parseOnly, "parseonly", false, "Parse the input and show the result without evaluating it")
	fs.BoolVar(&p.history, "history", false, "List the evaluation history")
	fs.BoolVar(&p.repr, "repr", false, "Show results in their debug representation")
	fs.StringVar(&p.format, "format", "",
		"Input format: sexp, json or yaml; for files, derived from the extension by default")
	fs.StringVar(&p.db, "db", "", "Path to the history database")
	fs.IntVar(&p.maxDepth, "max-depth", 0, "Maximum nesting depth of evaluation")
	p.json = fs.JSON()
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.format != "" && !validFormat(p.format) {
		return prog.BadUsage(fmt.Sprintf("unknown format %q", p.format))
	}
	if p.codeInArg && len(args) == 0 {
		return prog.BadUsage("-c requires an argument")
	}
	if len(args) > 1 {
		return prog.BadUsage("too many arguments")
	}
	if p.maxDepth < 0 {
		return prog.BadUsage("-max-depth must be non-negative")
	}

	cfg, err := config.LoadDefault(*p.config)
	if err != nil {
		return err
	}
	if p.db != "" {
		cfg.DB = p.db
	}
	if p.maxDepth > 0 {
		cfg.MaxDepth = p.maxDepth
	}

	if p.history {
		return showHistory(fds, cfg.DB, *p.json)
	}

	interactive := len(args) == 0 && !p.parseOnly
	var src source
	if !interactive {
		src, err = p.readSource(fds[0], args)
		if err != nil {
			fmt.Fprintln(fds[2], err)
			return prog.Exit(2)
		}
	}
	if p.parseOnly {
		return parseOnly(fds, src, *p.json)
	}

	ev, cleanup, err := newEvaler(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	st := openHistory(fds, cfg.DB)
	if st != nil {
		defer st.Close()
	}
	out := &outputter{ev: ev, st: st, repr: p.repr}

	if interactive {
		interact(fds, out)
		return nil
	}
	return script(fds, out, src)
}

func newEvaler(cfg *config.Config) (*eval.Evaler, func(), error) {
	table, closeBridge, err := cfg.Bridge.Open()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := closeBridge(); err != nil {
			logger.Println("closing bridge:", err)
		}
	}
	ev, err := eval.NewEvaler(table, eval.WithMaxDepth(cfg.MaxDepth))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Printf("evaler ready, bridge %q, max depth %d", cfg.Bridge.Driver, ev.MaxDepth())
	return ev, cleanup, nil
}

// Opens the history database. Failing to do so is not fatal; there is just no
// history for the session.
func openHistory(fds [3]*os.File, db string) store.DBStore {
	if db == "" {
		return nil
	}
	st, err := store.NewStore(db)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
		fmt.Fprintln(fds[2], "History will not be recorded.")
		return nil
	}
	return st
}

func record(st storedefs.Store, code, result string, evalErr error) {
	if st == nil {
		return
	}
	e := storedefs.Entry{Code: code, Result: result}
	if evalErr != nil {
		e.Error = evalErr.Error()
	}
	if _, err := st.AddEntry(e); err != nil {
		logger.Println("cannot add history entry:", err)
	}
}
