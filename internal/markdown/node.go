// Package markdown parses page sources into a flat stream of enter and exit
// events over a closed set of node kinds.
package markdown

// EventType tells whether an event opens or closes a node.
type EventType int

const (
	Enter EventType = iota
	Exit
)

func (e EventType) String() string {
	if e == Exit {
		return "exit"
	}
	return "enter"
}

// Kind is the closed set of node kinds a Document yields.
type Kind int

const (
	KindUnknown Kind = iota
	KindDocument
	KindBlockQuote
	KindList
	KindItem
	KindCodeBlock
	KindHeading
	KindParagraph
	KindThematicBreak
	KindText
	KindSoftBreak
	KindLineBreak
	KindCode
	KindEmphasis
	KindStrong
	KindLink
	KindImage
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindDocument:      "document",
	KindBlockQuote:    "block_quote",
	KindList:          "list",
	KindItem:          "item",
	KindCodeBlock:     "code_block",
	KindHeading:       "heading",
	KindParagraph:     "paragraph",
	KindThematicBreak: "thematic_break",
	KindText:          "text",
	KindSoftBreak:     "softbreak",
	KindLineBreak:     "linebreak",
	KindCode:          "code",
	KindEmphasis:      "emph",
	KindStrong:        "strong",
	KindLink:          "link",
	KindImage:         "image",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Leaf reports whether nodes of this kind are emitted with Enter only.
func (k Kind) Leaf() bool {
	switch k {
	case KindCodeBlock, KindThematicBreak, KindText, KindSoftBreak, KindLineBreak, KindCode, KindUnknown:
		return true
	}
	return false
}

// ListType distinguishes bullet and ordered lists.
type ListType int

const (
	Bullet ListType = iota
	Ordered
)

// Node is one node of a parsed document.
type Node struct {
	Kind Kind
	// Name is the parser's own kind name, set for KindUnknown.
	Name     string
	Literal  string
	URL      string
	ListType ListType
	Level    int
	Info     string
	Line     int
}
