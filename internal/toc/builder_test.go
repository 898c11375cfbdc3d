package toc

import (
	"testing"

	"github.com/user/docsite/internal/errors"
)

type event struct {
	level int
	title string
	id    string
}

func build(t *testing.T, c *Contents, page string, base int, events []event) error {
	t.Helper()
	b := NewBuilder(c, page, base)
	for _, ev := range events {
		if err := b.Add(ev.level, ev.title, ev.id); err != nil {
			return err
		}
	}
	return nil
}

func titles(hs []*Heading) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuilder_SiblingsAndChildren(t *testing.T) {
	c := &Contents{}
	err := build(t, c, "a", 2, []event{
		{2, "A", "a"},
		{3, "B", "b"},
		{3, "C", "c"},
		{2, "D", "d"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := titles(c.Entries); !equal(got, []string{"A", "D"}) {
		t.Fatalf("Expected top level [A D], got %v", got)
	}
	if got := titles(c.Entries[0].Subheadings); !equal(got, []string{"B", "C"}) {
		t.Errorf("Expected A to hold [B C], got %v", got)
	}
	if n := len(c.Entries[1].Subheadings); n != 0 {
		t.Errorf("Expected D to have no subheadings, got %d", n)
	}
	if !c.Entries[0].PageEntry || c.Entries[1].PageEntry {
		t.Error("Expected only A to be the page entry")
	}
	for _, h := range []*Heading{c.Entries[1], c.Entries[0].Subheadings[1]} {
		if h.Page != "a" {
			t.Errorf("Expected %s to belong to page a, got %q", h.Title, h.Page)
		}
	}
}

func TestBuilder_RootKeepsPageID(t *testing.T) {
	c := &Contents{}
	b := NewBuilder(c, "getting-started", 2)
	if b.Root().Title != "" {
		t.Fatal("Expected root title to be empty before the first heading")
	}

	if err := b.Add(2, "Getting Started", "getting-started-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	root := c.Entries[0]
	if root != b.Root() {
		t.Fatal("Expected the first entry to be the page root")
	}
	if root.ID != "getting-started" || root.Title != "Getting Started" {
		t.Errorf("Expected root getting-started/Getting Started, got %s/%s", root.ID, root.Title)
	}
}

func TestBuilder_PagesShareContents(t *testing.T) {
	c := &Contents{}
	if err := build(t, c, "one", 2, []event{{2, "One", "one"}, {3, "Setup", "setup"}}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := build(t, c, "two", 2, []event{{2, "Two", "two"}, {3, "Usage", "usage"}, {4, "Flags", "flags"}}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := titles(c.Entries); !equal(got, []string{"One", "Two"}) {
		t.Fatalf("Expected [One Two], got %v", got)
	}
	if got := c.Entries[1].Subheadings[0].Subheadings[0].Title; got != "Flags" {
		t.Errorf("Expected Two > Usage > Flags, got %s", got)
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		events []event
		check  func(error) bool
	}{
		{
			name:   "level skip",
			events: []event{{2, "A", "a"}, {4, "B", "b"}},
			check: func(err error) bool {
				var e *errors.HeadingLevelSkipError
				return errors.As(err, &e) && e.From == 2 && e.To == 4
			},
		},
		{
			name:   "skip after returning",
			events: []event{{2, "A", "a"}, {3, "B", "b"}, {2, "C", "c"}, {4, "D", "d"}},
			check: func(err error) bool {
				var e *errors.HeadingLevelSkipError
				return errors.As(err, &e) && e.From == 2 && e.To == 4
			},
		},
		{
			name:   "first heading too deep",
			events: []event{{3, "A", "a"}},
			check: func(err error) bool {
				var e *errors.StructuralViolationError
				return errors.As(err, &e)
			},
		},
		{
			name:   "above base level",
			events: []event{{2, "A", "a"}, {1, "B", "b"}},
			check: func(err error) bool {
				var e *errors.StructuralViolationError
				return errors.As(err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := build(t, &Contents{}, "page", 2, tt.events)
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !tt.check(err) {
				t.Errorf("Unexpected error %T: %v", err, err)
			}
		})
	}
}

func TestBuilder_Depth(t *testing.T) {
	tests := []struct {
		name   string
		levels []int
		want   int
	}{
		{"single", []int{2}, 0},
		{"flat", []int{2, 2, 2}, 0},
		{"staircase", []int{2, 3, 4, 5}, 3},
		{"up and down", []int{2, 3, 4, 3, 2, 3}, 2},
		{"return to deepest", []int{2, 3, 2, 3, 4, 5, 6, 3}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]event, len(tt.levels))
			maxLevel := 0
			for i, level := range tt.levels {
				events[i] = event{level, "h", ""}
				if level > maxLevel {
					maxLevel = level
				}
			}

			c := &Contents{}
			if err := build(t, c, "page", 2, events); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got := c.Depth(); got != tt.want || got != maxLevel-2 {
				t.Errorf("Expected depth %d (max level %d - base 2), got %d", tt.want, maxLevel, got)
			}
		})
	}
}

func TestBuilder_DeepDocument(t *testing.T) {
	c := &Contents{}
	b := NewBuilder(c, "page", 1)
	for i := 0; i < 10000; i++ {
		if err := b.Add(1, "top", ""); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if err := b.Add(2, "sub", ""); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if len(c.Entries) != 10000 {
		t.Errorf("Expected 10000 top-level entries, got %d", len(c.Entries))
	}
}
