package toc

import (
	"github.com/user/docsite/internal/htmltree"
)

// cursor walks one list of sibling headings.
type cursor struct {
	entries []*Heading
	index   int
	list    *htmltree.Element
	page    string
	current bool
}

// Project renders c as nested ordered lists for the given page. The page's
// own entry is plain text and its subtree is expanded; every other entry
// links to its page or anchor. The tree records ids in ids, normally the id
// set of the page the projection is bound into.
func Project(c *Contents, page string, ids htmltree.IDSet) (*htmltree.Tree, error) {
	tree := htmltree.NewTree(ids)
	ol, err := htmltree.AddElement(tree, "ol")
	if err != nil {
		return nil, err
	}

	stack := []*cursor{{entries: c.Entries, list: ol}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.index >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.index]
		top.index++

		topLevel := len(stack) == 1
		owner, current := top.page, top.current
		if topLevel {
			owner = entry.Page
			current = entry.Page == page
		}

		li, err := htmltree.AddElement(top.list, "li")
		if err != nil {
			return nil, err
		}

		if len(entry.Subheadings) > 0 {
			if err := htmltree.SetAttribute(li, "class", "collapsible"); err != nil {
				return nil, err
			}
			input, err := htmltree.AddElement(li, "input")
			if err != nil {
				return nil, err
			}
			if err := htmltree.SetAttribute(input, "type", "checkbox"); err != nil {
				return nil, err
			}
			if current {
				if err := htmltree.SetFlag(input, "checked"); err != nil {
					return nil, err
				}
			}
		}

		if entry.PageEntry && current {
			if err := htmltree.AddText(li, entry.Title, true); err != nil {
				return nil, err
			}
		} else if err := addLink(li, entryURL(entry, owner, page), entry.Title); err != nil {
			return nil, err
		}

		if len(entry.Subheadings) > 0 {
			sub, err := htmltree.AddElement(li, "ol")
			if err != nil {
				return nil, err
			}
			stack = append(stack, &cursor{
				entries: entry.Subheadings,
				list:    sub,
				page:    owner,
				current: current,
			})
		}
	}

	return tree, nil
}

func entryURL(entry *Heading, owner, page string) string {
	switch {
	case entry.PageEntry:
		return owner + ".html"
	case owner == page:
		return "#" + entry.ID
	default:
		return owner + ".html#" + entry.ID
	}
}

func addLink(li *htmltree.Element, href, title string) error {
	a, err := htmltree.AddElement(li, "a")
	if err != nil {
		return err
	}
	if err := htmltree.SetAttribute(a, "href", href); err != nil {
		return err
	}
	return htmltree.AddText(a, title, true)
}
