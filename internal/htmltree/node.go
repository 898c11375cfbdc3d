package htmltree

// Node is one entry of a content tree. The set of implementations is closed:
// *Element, *Text, *Preformatted, *Raw, *Doctype and *Placeholder.
type Node interface {
	isNode()
}

// Attribute is a single element attribute. Bare attributes render without a
// value (<input checked>).
type Attribute struct {
	Name  string
	Value string
	Bare  bool
}

// Element is a tag with ordered attributes and, unless its model is
// ModelNone, an ordered list of children.
type Element struct {
	Tag      string
	Attrs    []Attribute
	Model    ContentModel
	Children []Node

	ids IDSet
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text is a run of literal text. Adjacent runs are merged on insertion.
// When SuppressIfBlank is set and the run normalizes to a single space, it is
// not rendered.
type Text struct {
	Value           string
	SuppressIfBlank bool
}

// Preformatted is literal text inside <pre>; it is escaped but its
// whitespace is kept.
type Preformatted struct {
	Value string
}

// Raw is pre-rendered markup written verbatim.
type Raw struct {
	Markup string
}

// Doctype is the document type declaration, only valid as the first entry of
// a tree.
type Doctype struct {
	Literal string
}

// Placeholder is a named slot resolved against Bindings at render time.
type Placeholder struct {
	Name string
}

func (*Element) isNode()      {}
func (*Text) isNode()         {}
func (*Preformatted) isNode() {}
func (*Raw) isNode()          {}
func (*Doctype) isNode()      {}
func (*Placeholder) isNode()  {}

// Container is anything nodes can be appended to: a *Tree or an *Element.
type Container interface {
	model() ContentModel
	tag() string
	children() *[]Node
	idSet() IDSet
}

func (e *Element) model() ContentModel { return e.Model }
func (e *Element) tag() string         { return e.Tag }
func (e *Element) children() *[]Node   { return &e.Children }
func (e *Element) idSet() IDSet        { return e.ids }

func (t *Tree) model() ContentModel { return ModelNoText }
func (t *Tree) tag() string         { return "" }
func (t *Tree) children() *[]Node   { return &t.Content }
func (t *Tree) idSet() IDSet        { return t.ids }

func describe(c Container) string {
	if c.tag() == "" {
		return "document"
	}
	return "<" + c.tag() + ">"
}
