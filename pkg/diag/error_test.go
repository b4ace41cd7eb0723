package diag

import (
	"testing"
)

type testErrorTag struct{}

func (testErrorTag) ErrorTag() string { return "some error" }

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	err := &Error[testErrorTag]{
		Message: "bad list",
		Context: *contextInParen("[test]", "(+ 1 (x))"),
	}

	wantErrorString := "some error: [test]:1:1: bad list"
	if gotErrorString := err.Error(); gotErrorString != wantErrorString {
		t.Errorf("Error() -> %q, want %q", gotErrorString, wantErrorString)
	}

	wantRanging := Ranging{From: 0, To: 8}
	if gotRanging := err.Range(); gotRanging != wantRanging {
		t.Errorf("Range() -> %v, want %v", gotRanging, wantRanging)
	}

	// Type is capitalized in return value of Show
	wantShow := dedent(`
		Some error: {bad list}
		  [test]:1:1: <(+ 1 (x)>)`)
	if gotShow := err.Show(""); gotShow != wantShow {
		t.Errorf("Show() -> %q, want %q", gotShow, wantShow)
	}
}
