// Zi evaluates programs of Z, a small expression language, given as text,
// JSON or YAML literal trees. It can also run an interactive session and
// serve as a language server.
package main

import (
	"os"

	"src.zlang.sh/pkg/buildinfo"
	"src.zlang.sh/pkg/lsp"
	"src.zlang.sh/pkg/prog"
	"src.zlang.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &lsp.Program{}, &shell.Program{})))
}
