package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"src.zlang.sh/pkg/diag"
	"src.zlang.sh/pkg/lit"
	"src.zlang.sh/pkg/sys"
)

// Prompt is written before each line when stdin is a terminal.
const Prompt = "zi> "

type lineEditor struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func newLineEditor(in, out *os.File) *lineEditor {
	ed := &lineEditor{in: bufio.NewReader(in), out: out}
	if sys.IsATTY(in.Fd()) {
		ed.prompt = Prompt
	}
	return ed
}

func (ed *lineEditor) ReadCode() (string, error) {
	fmt.Fprint(ed.out, ed.prompt)
	line, err := ed.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// Runs a session that evaluates stdin line by line. Errors are shown and the
// session moves on to the next line.
func interact(fds [3]*os.File, out *outputter) {
	ed := newLineEditor(fds[0], fds[2])
	for cmdNum := 1; ; cmdNum++ {
		line, err := ed.ReadCode()
		if strings.TrimSpace(line) != "" {
			evalLine(fds, out, lit.Source{Name: fmt.Sprintf("[tty %v]", cmdNum), Code: line})
		}
		if err == io.EOF {
			if ed.prompt != "" {
				fmt.Fprintln(fds[2])
			}
			return
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			return
		}
	}
}

func evalLine(fds [3]*os.File, out *outputter, src lit.Source) {
	trees, err := lit.ReadAll(src)
	if err != nil {
		diag.ShowError(fds[2], err)
		return
	}
	for _, tree := range trees {
		if !out.eval(fds, tree) {
			return
		}
	}
}
