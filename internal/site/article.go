package site

import (
	"fmt"
	"strings"

	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/highlight"
	"github.com/user/docsite/internal/htmltree"
	"github.com/user/docsite/internal/markdown"
	"github.com/user/docsite/internal/toc"
	"github.com/user/docsite/internal/validation"
)

// containers maps container kinds to the element they open.
var containers = map[markdown.Kind]string{
	markdown.KindBlockQuote: "blockquote",
	markdown.KindItem:       "li",
	markdown.KindParagraph:  "p",
	markdown.KindEmphasis:   "em",
	markdown.KindStrong:     "b",
	markdown.KindLink:       "a",
}

// Article is a page body assembled from its document.
type Article struct {
	Tree    *htmltree.Tree
	Anchors htmltree.IDSet
	Links   []*validation.Link
}

// articleBuilder turns document events into a tree. Container nodes push the
// current parent; their exit pops it.
type articleBuilder struct {
	page        string
	source      string
	offset      int
	highlighter highlight.Highlighter
	contents    *toc.Builder

	article *Article
	parent  htmltree.Container
	stack   []htmltree.Container

	heading *openHeading
	image   *openImage
}

type openHeading struct {
	el    *htmltree.Element
	level int
	title strings.Builder
}

type openImage struct {
	el  *htmltree.Element
	alt strings.Builder
}

// buildArticle assembles doc into a tree sharing ids. Headings are shifted
// by offset; when contents is set they are also added to it.
func buildArticle(page string, doc *markdown.Document, ids htmltree.IDSet, offset int,
	h highlight.Highlighter, contents *toc.Builder) (*Article, error) {
	tree := htmltree.NewTree(ids)
	b := &articleBuilder{
		page:        page,
		source:      page + ".md",
		offset:      offset,
		highlighter: h,
		contents:    contents,
		article:     &Article{Tree: tree, Anchors: htmltree.NewIDSet()},
		parent:      tree,
	}

	for ev, node := range doc.Events() {
		var err error
		if ev == markdown.Enter {
			err = b.enter(node)
		} else {
			err = b.exit(node)
		}
		if err != nil {
			return nil, errors.Locate(err, b.source, node.Line)
		}
	}

	if len(b.stack) > 0 {
		return nil, errors.Locate(errors.NewStructuralViolationError(
			fmt.Sprintf("Unpopped elements in %s", b.source),
			map[string]interface{}{"open_elements": len(b.stack)}), b.source, 0)
	}
	return b.article, nil
}

func (b *articleBuilder) push(tag string) (*htmltree.Element, error) {
	el, err := htmltree.AddElement(b.parent, tag)
	if err != nil {
		return nil, err
	}
	b.stack = append(b.stack, b.parent)
	b.parent = el
	return el, nil
}

func (b *articleBuilder) pop() error {
	if len(b.stack) == 0 {
		return errors.NewStructuralViolationError("Exit event without an open element", nil)
	}
	b.parent = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *articleBuilder) enter(node *markdown.Node) error {
	if b.image != nil {
		if node.Kind == markdown.KindText || node.Kind == markdown.KindCode {
			b.image.alt.WriteString(node.Literal)
		}
		return nil
	}

	if tag, ok := containers[node.Kind]; ok {
		el, err := b.push(tag)
		if err != nil {
			return err
		}
		if node.Kind == markdown.KindLink {
			b.article.Links = append(b.article.Links, &validation.Link{
				Source:  b.page,
				Line:    node.Line,
				URL:     node.URL,
				Element: el,
			})
		}
		return nil
	}

	switch node.Kind {
	case markdown.KindDocument:
		return nil

	case markdown.KindList:
		tag := "ul"
		if node.ListType == markdown.Ordered {
			tag = "ol"
		}
		_, err := b.push(tag)
		return err

	case markdown.KindHeading:
		level := node.Level + b.offset
		if b.heading != nil {
			return errors.NewStructuralViolationError(
				fmt.Sprintf("Tried to add h%d to h%d", level, b.heading.level), nil)
		}
		el, err := b.push(fmt.Sprintf("h%d", level))
		if err != nil {
			return err
		}
		b.heading = &openHeading{el: el, level: level}
		return nil

	case markdown.KindImage:
		el, err := htmltree.AddElement(b.parent, "img")
		if err != nil {
			return err
		}
		if err := htmltree.SetAttribute(el, "src", node.URL); err != nil {
			return err
		}
		b.image = &openImage{el: el}
		return nil

	case markdown.KindText:
		b.addTitle(node.Literal)
		return htmltree.AddText(b.parent, node.Literal, false)

	case markdown.KindSoftBreak:
		b.addTitle(" ")
		return htmltree.AddText(b.parent, " ", false)

	case markdown.KindLineBreak:
		_, err := htmltree.AddElement(b.parent, "br")
		return err

	case markdown.KindThematicBreak:
		_, err := htmltree.AddElement(b.parent, "hr")
		return err

	case markdown.KindCode:
		b.addTitle(node.Literal)
		code, err := htmltree.AddElement(b.parent, "code")
		if err != nil {
			return err
		}
		return htmltree.AddText(code, node.Literal, true)

	case markdown.KindCodeBlock:
		fragment, err := b.highlighter.Highlight(node.Literal, node.Info)
		if err != nil {
			return err
		}
		return htmltree.AddRaw(b.parent, fragment)
	}

	name := node.Name
	if name == "" {
		name = node.Kind.String()
	}
	return errors.NewStructuralViolationError(
		fmt.Sprintf("Unhandled %s in %s:%d", name, b.source, node.Line),
		map[string]interface{}{"kind": name})
}

func (b *articleBuilder) exit(node *markdown.Node) error {
	switch node.Kind {
	case markdown.KindDocument:
		return nil

	case markdown.KindImage:
		if b.image == nil {
			return errors.NewStructuralViolationError("Image exit without an open image", nil)
		}
		img := b.image
		b.image = nil
		return htmltree.SetAttribute(img.el, "alt", img.alt.String())

	case markdown.KindHeading:
		if err := b.pop(); err != nil {
			return err
		}
		return b.closeHeading()
	}

	if b.image != nil {
		return nil
	}
	return b.pop()
}

func (b *articleBuilder) addTitle(s string) {
	if b.heading != nil {
		b.heading.title.WriteString(s)
	}
}

func (b *articleBuilder) closeHeading() error {
	if b.heading == nil {
		return errors.NewStructuralViolationError("Popped a heading but none was open", nil)
	}
	h := b.heading
	b.heading = nil

	title := h.title.String()
	id := htmltree.Urlify(title)
	if err := htmltree.SetAttribute(h.el, "id", id); err != nil {
		return err
	}
	b.article.Anchors[id] = struct{}{}

	if b.contents != nil {
		return b.contents.Add(h.level, title, id)
	}
	return nil
}
