package htmltree

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/user/docsite/internal/errors"
)

// IDSet holds the element ids claimed in one page. A map is a reference, so
// every tree created over the same IDSet observes the same ids.
type IDSet map[string]struct{}

// NewIDSet returns an empty identifier set.
func NewIDSet() IDSet {
	return make(IDSet)
}

// Has reports whether id is already claimed.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	c := make(IDSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Tree is the root of a content tree. Trees produced by ParseSkeleton also
// carry the placeholder names they declare and their heading watermark.
type Tree struct {
	Content []Node

	ids          IDSet
	placeholders []string
	headingLevel int
}

// NewTree creates an empty tree sharing ids.
func NewTree(ids IDSet) *Tree {
	if ids == nil {
		ids = NewIDSet()
	}
	return &Tree{ids: ids}
}

// IDs returns the identifier set shared by the tree and its elements.
func (t *Tree) IDs() IDSet {
	return t.ids
}

// Placeholders returns the declared placeholder names in document order.
func (t *Tree) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// HeadingLevel returns the deepest h1..h6 level found while parsing, or 0.
func (t *Tree) HeadingLevel() int {
	return t.headingLevel
}

// AddElement appends a new element to parent and returns it.
func AddElement(parent Container, tag string) (*Element, error) {
	if m := parent.model(); m == ModelNone || m == ModelText {
		return nil, errors.NewStructuralViolationError(
			"Tried to add element <"+tag+"> to "+describe(parent),
			map[string]interface{}{"tag": tag, "parent_model": m.String()})
	}
	model, ok := ModelOf(tag)
	if !ok {
		return nil, errors.NewStructuralViolationError(
			"Unknown element <"+tag+">",
			map[string]interface{}{"tag": tag})
	}

	el := &Element{Tag: tag, Model: model, ids: parent.idSet()}
	if model != ModelNone {
		el.Children = []Node{}
	}
	children := parent.children()
	*children = append(*children, el)
	return el, nil
}

// AddText appends text to parent, merging it into a directly preceding run of
// the same kind. Inside <pre> the text becomes a Preformatted run. Blank text
// offered to a ModelNoText container is dropped; any other text there is a
// violation.
func AddText(parent Container, text string, suppressIfBlank bool) error {
	switch parent.model() {
	case ModelAny, ModelText:
	case ModelNoText:
		if strings.TrimSpace(text) == "" {
			return nil
		}
		fallthrough
	default:
		return errors.NewStructuralViolationError(
			describe(parent)+": can't accept text '"+text+"'",
			map[string]interface{}{"text": text, "parent_model": parent.model().String()})
	}

	children := parent.children()
	var prev Node
	if n := len(*children); n > 0 {
		prev = (*children)[n-1]
	}

	if parent.tag() == "pre" {
		if run, ok := prev.(*Preformatted); ok {
			run.Value += text
			return nil
		}
		*children = append(*children, &Preformatted{Value: text})
		return nil
	}

	if run, ok := prev.(*Text); ok {
		run.Value += text
		run.SuppressIfBlank = run.SuppressIfBlank && suppressIfBlank
		return nil
	}
	*children = append(*children, &Text{Value: text, SuppressIfBlank: suppressIfBlank})
	return nil
}

// AddRaw appends pre-rendered markup to parent.
func AddRaw(parent Container, markup string) error {
	if m := parent.model(); m == ModelNone || m == ModelText {
		return errors.NewStructuralViolationError(
			"Tried to add html to "+describe(parent),
			map[string]interface{}{"parent_model": m.String()})
	}
	children := parent.children()
	*children = append(*children, &Raw{Markup: markup})
	return nil
}

func addPlaceholder(parent Container, name string) error {
	if m := parent.model(); m != ModelAny && m != ModelNoText {
		return errors.NewStructuralViolationError(
			"Tried to add placeholder "+name+" to "+describe(parent),
			map[string]interface{}{"placeholder": name, "parent_model": m.String()})
	}
	children := parent.children()
	*children = append(*children, &Placeholder{Name: name})
	return nil
}

// SetAttribute sets name=value on el. An id must be unique in the element's
// identifier set.
func SetAttribute(el *Element, name, value string) error {
	return setAttribute(el, Attribute{Name: name, Value: value})
}

// SetFlag sets a bare attribute such as checked.
func SetFlag(el *Element, name string) error {
	return setAttribute(el, Attribute{Name: name, Bare: true})
}

func setAttribute(el *Element, attr Attribute) error {
	if _, ok := el.Attr(attr.Name); ok {
		return errors.NewStructuralViolationError(
			"Attribute "+attr.Name+" already set on <"+el.Tag+">",
			map[string]interface{}{"attribute": attr.Name})
	}

	if attr.Name == "id" {
		if attr.Bare {
			return errors.NewStructuralViolationError(
				"id on <"+el.Tag+"> needs a value", nil)
		}
		if el.ids.Has(attr.Value) {
			return errors.NewDuplicateIdentifierError(attr.Value)
		}
		el.ids[attr.Value] = struct{}{}
	}

	el.Attrs = append(el.Attrs, attr)
	return nil
}

var spaceRun = regexp.MustCompile(` +`)

// Urlify derives an anchor id from heading text: characters other than
// letters, numbers, '_', ' ' and '-' are removed, runs of spaces become a single
// '-', and the result is lowercased.
func Urlify(text string) string {
	kept := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == ' ' || r == '-' {
			return r
		}
		return -1
	}, text)
	return strings.ToLower(spaceRun.ReplaceAllString(kept, "-"))
}
