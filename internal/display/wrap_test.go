package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWrapTo(t *testing.T) {
	tests := map[string]struct {
		text  string
		width int
		exp   string
	}{
		"fits":       {text: "short line", width: 20, exp: "short line"},
		"word break": {text: "the quick brown fox", width: 10, exp: "the quick\nbrown fox"},
		"long word":  {text: "abcdefghij", width: 4, exp: "abcd\nefgh\nij"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "wrapped", WrapTo(tt.text, tt.width), tt.exp)
		})
	}
}

func TestWrap_DefaultWidth(t *testing.T) {
	for _, line := range strings.Split(Wrap(strings.Repeat("word ", 40)), "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line longer than %d: %q", DefaultWidth, line)
		}
	}
}

func TestFit(t *testing.T) {
	tests := map[string]struct {
		s     string
		width int
		exp   string
	}{
		"fits":      {s: "HUD", width: 10, exp: "HUD"},
		"cut":       {s: "allies 5  enemies 6", width: 10, exp: "allies 5 …"},
		"zero":      {s: "anything", width: 0, exp: ""},
		"multibyte": {s: "∞∞∞∞", width: 3, exp: "∞∞…"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "fit", Fit(tt.s, tt.width), tt.exp)
		})
	}
}

func TestIndent(t *testing.T) {
	testutil.AssertEqual(t, "indent", Indent("a\nb", 2), "  a\n  b")
}

func TestCapitalize(t *testing.T) {
	tests := map[string]struct {
		s   string
		exp string
	}{
		"word":    {s: "menu", exp: "Menu"},
		"empty":   {s: "", exp: ""},
		"already": {s: "Urban", exp: "Urban"},
		"unicode": {s: "éclair", exp: "Éclair"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "capitalized", Capitalize(tt.s), tt.exp)
		})
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]struct {
		id  string
		exp string
	}{
		"underscore": {id: "red_dot", exp: "Red Dot"},
		"dash":       {id: "counter-uav", exp: "Counter Uav"},
		"single":     {id: "urban", exp: "Urban"},
		"doubled":    {id: "a__b", exp: "A B"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "label", Label(tt.id), tt.exp)
		})
	}
}
