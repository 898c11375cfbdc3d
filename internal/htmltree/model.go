package htmltree

// ContentModel constrains which node kinds an element may contain.
type ContentModel int

const (
	// ModelNone elements are void: no children, rendered as an open tag only.
	ModelNone ContentModel = iota
	// ModelText elements hold text runs only (script bodies).
	ModelText
	// ModelNoText elements hold elements and placeholders only; blank text
	// between tags is dropped.
	ModelNoText
	// ModelAny elements hold anything.
	ModelAny
)

func (m ContentModel) String() string {
	switch m {
	case ModelNone:
		return "NONE"
	case ModelText:
		return "TEXT"
	case ModelNoText:
		return "NOTEXT"
	case ModelAny:
		return "ANY"
	}
	return "UNKNOWN"
}

// elements is the fixed tag table. Tags outside it are rejected.
var elements = map[string]ContentModel{
	"a":          ModelAny,
	"article":    ModelAny,
	"b":          ModelAny,
	"blockquote": ModelAny,
	"body":       ModelNoText,
	"br":         ModelNone,
	"code":       ModelAny,
	"div":        ModelAny,
	"em":         ModelAny,
	"footer":     ModelAny,
	"h1":         ModelAny,
	"h2":         ModelAny,
	"h3":         ModelAny,
	"h4":         ModelAny,
	"h5":         ModelAny,
	"h6":         ModelAny,
	"head":       ModelNoText,
	"header":     ModelAny,
	"hr":         ModelNone,
	"html":       ModelNoText,
	"img":        ModelNone,
	"input":      ModelNone,
	"label":      ModelAny,
	"li":         ModelAny,
	"link":       ModelNone,
	"main":       ModelAny,
	"meta":       ModelNone,
	"nav":        ModelAny,
	"ol":         ModelNoText,
	"p":          ModelAny,
	"pre":        ModelAny,
	"script":     ModelText,
	"section":    ModelAny,
	"span":       ModelAny,
	"title":      ModelAny,
	"ul":         ModelNoText,
}

// ModelOf returns the content model of tag and whether the tag is known.
func ModelOf(tag string) (ContentModel, bool) {
	m, ok := elements[tag]
	return m, ok
}

// headingLevel returns 1..6 for h1..h6 and 0 for anything else.
func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}
