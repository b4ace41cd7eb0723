package diag

import (
	"errors"
	"fmt"
	"io"
)

// Shower is implemented by errors that know how to show themselves with
// source context.
type Shower interface {
	// Show returns a possibly multi-line rendering, with every line after the
	// first prefixed by indent.
	Show(indent string) string
}

// ShowError writes err to w. If err, or an error it wraps, is a Shower, its
// Show method is used; otherwise the message is written with Complain.
func ShowError(w io.Writer, err error) {
	var shower Shower
	if errors.As(err, &shower) {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		Complain(w, err.Error())
	}
}

// Complain writes msg to w in bold red, followed by a newline.
func Complain(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s%s\n", messageStart, msg, messageEnd)
}
