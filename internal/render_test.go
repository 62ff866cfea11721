package internal

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func renderString(t *testing.T, r *Renderer, line, pattern, template string) string {
	t.Helper()
	var sb strings.Builder
	if err := r.RenderLine(&sb, line, regexp.MustCompile(pattern), template); err != nil {
		t.Fatalf("RenderLine(%q) returned error: %v", line, err)
	}
	return sb.String()
}

func TestSplitRuns(t *testing.T) {
	tests := []struct {
		name       string
		owners     OwnerArray
		expansions ExpansionMap
		want       []Run
	}{
		{
			name:   "empty line has no runs",
			owners: OwnerArray{},
			want:   nil,
		},
		{
			name:   "single unowned run",
			owners: OwnerArray{u, u, u},
			want:   []Run{{0, 3, u}},
		},
		{
			name:   "owner changes split runs",
			owners: OwnerArray{u, 1, 2, 0, u},
			want:   []Run{{0, 1, u}, {1, 2, 1}, {2, 3, 2}, {3, 4, 0}, {4, 5, u}},
		},
		{
			name:       "expansion offsets split a same owner stretch",
			owners:     OwnerArray{0, 0},
			expansions: ExpansionMap{1: {"X"}, 2: {"X"}},
			want:       []Run{{0, 1, 0}, {1, 2, 0}},
		},
		{
			name:       "offset zero does not create an empty run",
			owners:     OwnerArray{u, u},
			expansions: ExpansionMap{0: {"X"}},
			want:       []Run{{0, 2, u}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRuns(tt.owners, tt.expansions)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitRuns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitRuns_PartitionLine(t *testing.T) {
	cases := []struct {
		pattern string
		line    string
	}{
		{"foo", "foo bar foo"},
		{`(\w)(\w*)`, "one two  three"},
		{"", "abc"},
		{`(a(b))c`, "xabcxabc"},
		{"é", "héé"},
	}

	for _, c := range cases {
		re := regexp.MustCompile(c.pattern)
		matches := Collect(c.line, re)
		owners := Annotate(len(c.line), matches)
		runs := SplitRuns(owners, IndexExpansions(c.line, re, matches, "_"))

		pos := 0
		for _, run := range runs {
			if run.Start != pos {
				t.Errorf("%q/%q: run %+v does not start at %d", c.pattern, c.line, run, pos)
			}
			if run.End <= run.Start {
				t.Errorf("%q/%q: empty run %+v", c.pattern, c.line, run)
			}
			for i := run.Start; i < run.End; i++ {
				if owners[i] != run.Owner {
					t.Errorf("%q/%q: byte %d owned by %d inside run %+v", c.pattern, c.line, i, owners[i], run)
				}
			}
			pos = run.End
		}
		if pos != len(c.line) {
			t.Errorf("%q/%q: runs end at %d, line has %d bytes", c.pattern, c.line, pos, len(c.line))
		}
	}
}

func TestRender_ExpansionPlacement(t *testing.T) {
	p := DefaultPalette(true)
	got := renderString(t, NewRenderer(p), "ab", "a", "X")

	want := p.Group(0).Sprint("a") + p.Insertion().Sprint("X") + "b\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_EndToEnd(t *testing.T) {
	p := DefaultPalette(true)
	got := renderString(t, NewRenderer(p), "foo bar foo", "foo", "baz")

	foo := p.Group(0).Sprint("foo")
	baz := p.Insertion().Sprint("baz")
	want := foo + baz + " bar " + foo + baz + "\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_InnerGroupColor(t *testing.T) {
	p := DefaultPalette(true)
	got := renderString(t, NewRenderer(p), "xabcx", "(a(b))c", "")

	want := "x" +
		p.Group(1).Sprint("a") +
		p.Group(2).Sprint("b") +
		p.Group(0).Sprint("c") +
		p.Insertion().Sprint("") +
		"x\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_ZeroLengthMatches(t *testing.T) {
	p := DefaultPalette(true)
	got := renderString(t, NewRenderer(p), "ab", "", "X")

	x := p.Insertion().Sprint("X")
	want := x + "a" + x + "b" + x + "\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_EmptyLine(t *testing.T) {
	p := DefaultPalette(false)
	if got := renderString(t, NewRenderer(p), "", "^", "X"); got != "X\n" {
		t.Errorf("expected %q, got %q", "X\n", got)
	}
	if got := renderString(t, NewRenderer(p), "", "z", "X"); got != "\n" {
		t.Errorf("expected %q, got %q", "\n", got)
	}
}

func TestRender_AdjacentMatchesEachGetExpansion(t *testing.T) {
	p := DefaultPalette(false)
	got := renderString(t, NewRenderer(p), "aab", "a", "[$0]")
	if got != "a[a]a[a]b\n" {
		t.Errorf("expected %q, got %q", "a[a]a[a]b\n", got)
	}
}

func TestRender_ExpansionAtEndOfLine(t *testing.T) {
	p := DefaultPalette(false)
	got := renderString(t, NewRenderer(p), "abc", "c$", "!")
	if got != "abc!\n" {
		t.Errorf("expected %q, got %q", "abc!\n", got)
	}
	if strings.Count(got, "!") != 1 {
		t.Errorf("expansion emitted more than once: %q", got)
	}
}

func TestRender_ColorsDisabled(t *testing.T) {
	got := renderString(t, NewRenderer(DefaultPalette(false)), "foo bar foo", "foo", "baz")
	if got != "foobaz bar foobaz\n" {
		t.Errorf("expected plain output, got %q", got)
	}
}

func TestRender_PaletteWrapsAround(t *testing.T) {
	p := DefaultPalette(true)
	got := renderString(t, NewRenderer(p), "abcdefg", "(a)(b)(c)(d)(e)(f)(g)", "")

	if !strings.Contains(got, p.Group(0).Sprint("f")) {
		t.Errorf("group 6 should reuse the first palette color, got %q", got)
	}
	if !strings.Contains(got, p.Group(1).Sprint("g")) {
		t.Errorf("group 7 should reuse the second palette color, got %q", got)
	}
}

func TestRender_InvalidUTF8(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(DefaultPalette(false))
	err := r.Render(&sb, "a\xffb", OwnerArray{u, 0, u}, nil)
	if !errors.Is(err, ErrNonUTF8) {
		t.Errorf("expected ErrNonUTF8, got %v", err)
	}
}
