package diag

import (
	"testing"
)

var contextTests = []struct {
	Name    string
	Context *Context
	Indent  string

	WantShow        string
	WantShowCompact string
}{
	{
		Name:    "single-line culprit",
		Context: contextInParen("[test]", "echo (bad)"),
		Indent:  "_",

		WantShow: lines(
			"[test]:1:6:",
			"_echo <(bad)>",
		),
		WantShowCompact: "[test]:1:6: echo <(bad)>",
	},
	{
		Name:    "multi-line culprit",
		Context: contextInParen("[test]", "echo (bad\nbad)\nmore"),
		Indent:  "_",

		WantShow: lines(
			"[test]:1:6:",
			"_echo <(bad>",
			"_<bad)>",
		),
		WantShowCompact: lines(
			"[test]:1:6: echo <(bad>",
			"_            <bad)>",
		),
	},
	{
		Name: "trailing newline in culprit is removed",
		//                             012345678 9
		Context: NewContext("[test]", "echo bad\n", Ranging{5, 9}),
		Indent:  "_",

		WantShow: lines(
			"[test]:1:6:",
			"_echo <bad>",
		),
		WantShowCompact: "[test]:1:6: echo <bad>",
	},
	{
		Name: "empty culprit",
		//                             012345
		Context: NewContext("[test]", "echo x", Ranging{5, 5}),

		WantShow: lines(
			"[test]:1:6:",
			"echo <^>x",
		),
		WantShowCompact: "[test]:1:6: echo <^>x",
	},
	{
		Name: "culprit on second line",
		//                             0123 456789
		Context: NewContext("[test]", "(+ 1\n  (foo))", Ranging{7, 12}),

		WantShow: lines(
			"[test]:2:3:",
			"  <(foo)>)",
		),
		WantShowCompact: "[test]:2:3:   <(foo)>)",
	},
	{
		Name:    "unknown position",
		Context: NewContext("[test]", "echo", Ranging{-1, -1}),

		WantShow:        "[test], unknown position",
		WantShowCompact: "[test], unknown position",
	},
	{
		Name:    "invalid position",
		Context: NewContext("[test]", "echo", Ranging{0, 5}),

		WantShow:        "[test], invalid position 0-5",
		WantShowCompact: "[test], invalid position 0-5",
	},
}

func TestContext(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range contextTests {
		t.Run(test.Name, func(t *testing.T) {
			gotShow := test.Context.Show(test.Indent)
			if gotShow != test.WantShow {
				t.Errorf("Show() -> %q, want %q", gotShow, test.WantShow)
			}
			gotShowCompact := test.Context.ShowCompact(test.Indent)
			if gotShowCompact != test.WantShowCompact {
				t.Errorf("ShowCompact() -> %q, want %q",
					gotShowCompact, test.WantShowCompact)
			}
		})
	}
}
