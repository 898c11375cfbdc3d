package site

import (
	"github.com/user/docsite/internal/htmltree"
	"github.com/user/docsite/internal/validation"
)

// sectionURL returns the href of a section's index page.
func sectionURL(index string) string {
	if index == validation.IndexPage {
		return "."
	}
	return index + ".html"
}

// buildNavbar lists every named section, marking the one whose index is
// current as active. The tree records ids in ids.
func buildNavbar(sections []Section, current string, ids htmltree.IDSet) (*htmltree.Tree, error) {
	tree := htmltree.NewTree(ids)
	for _, s := range sections {
		if s.Name == "" {
			continue
		}

		li, err := htmltree.AddElement(tree, "li")
		if err != nil {
			return nil, err
		}
		a, err := htmltree.AddElement(li, "a")
		if err != nil {
			return nil, err
		}
		if err := htmltree.SetAttribute(a, "href", sectionURL(s.Index)); err != nil {
			return nil, err
		}
		if s.Index == current {
			if err := htmltree.SetAttribute(a, "class", "active"); err != nil {
				return nil, err
			}
		}
		if err := htmltree.AddText(a, s.Name, true); err != nil {
			return nil, err
		}
	}
	return tree, nil
}
