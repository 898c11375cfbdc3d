// Package toc assembles the table of contents of a documentation section from
// the headings of its pages and projects it into navigation trees.
package toc

import (
	"fmt"

	"github.com/user/docsite/internal/errors"
)

// Heading is one entry of a table of contents. Page names the page the
// heading appears on. The entry for the page itself has PageEntry set and
// carries the page name as its ID; further headings at the page level sit
// beside it as top-level entries.
type Heading struct {
	ID          string
	Title       string
	Page        string
	PageEntry   bool
	Subheadings []*Heading
}

// Contents is the heading hierarchy of one section, shared by every page of
// the section.
type Contents struct {
	Entries []*Heading
}

// Depth returns the number of levels below the top-level entries.
func (c *Contents) Depth() int {
	type item struct {
		h     *Heading
		depth int
	}

	deepest := 0
	stack := make([]item, 0, len(c.Entries))
	for _, h := range c.Entries {
		stack = append(stack, item{h, 0})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth > deepest {
			deepest = it.depth
		}
		for _, sub := range it.h.Subheadings {
			stack = append(stack, item{sub, it.depth + 1})
		}
	}
	return deepest
}

// Builder adds the headings of one page to a Contents. The first heading
// names the page entry; later headings nest under it by level.
type Builder struct {
	contents *Contents
	root     *Heading
	base     int

	started bool
	level   int
	current *Heading
	active  *[]*Heading
	stack   []*[]*Heading
}

// NewBuilder returns a builder for page, whose headings start at level base.
func NewBuilder(c *Contents, page string, base int) *Builder {
	return &Builder{
		contents: c,
		root:     &Heading{ID: page, Page: page, PageEntry: true},
		base:     base,
		level:    base,
		active:   &c.Entries,
	}
}

// Add records a heading event in document order.
func (b *Builder) Add(level int, title, id string) error {
	heading := &Heading{ID: id, Title: title, Page: b.root.ID}

	if !b.started {
		if level != b.base {
			return errors.NewStructuralViolationError(
				fmt.Sprintf("First heading of %s is h%d, expected h%d", b.root.ID, level, b.base),
				map[string]interface{}{"page": b.root.ID, "level": level, "base": b.base})
		}
		b.started = true
		b.root.Title = title
		heading = b.root
	}

	switch {
	case level > b.level:
		if level != b.level+1 {
			return errors.NewHeadingLevelSkipError(b.level, level)
		}
		b.stack = append(b.stack, b.active)
		b.active = &b.current.Subheadings
		b.level++

	case level < b.level:
		if level < b.base {
			return errors.NewStructuralViolationError(
				fmt.Sprintf("Heading h%d of %s is above the page level h%d", level, b.root.ID, b.base),
				map[string]interface{}{"page": b.root.ID, "level": level, "base": b.base})
		}
		for b.level > level {
			b.active = b.stack[len(b.stack)-1]
			b.stack = b.stack[:len(b.stack)-1]
			b.level--
		}
	}

	*b.active = append(*b.active, heading)
	b.current = heading
	return nil
}

// Root returns the page entry. Its Title is empty until the first heading.
func (b *Builder) Root() *Heading {
	return b.root
}
