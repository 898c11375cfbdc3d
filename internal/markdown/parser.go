package markdown

import (
	"iter"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DocumentParser turns page source into a Document.
type DocumentParser interface {
	Parse(source []byte) (*Document, error)
}

// GoldmarkParser parses CommonMark with goldmark.
type GoldmarkParser struct {
	md goldmark.Markdown
}

// NewGoldmarkParser creates a CommonMark parser. Extensions that add node
// kinds outside the closed set are not enabled.
func NewGoldmarkParser() *GoldmarkParser {
	return &GoldmarkParser{
		md: goldmark.New(),
	}
}

// Parse parses source. CommonMark accepts any input, so the error is
// reserved for implementations that can reject a document.
func (p *GoldmarkParser) Parse(source []byte) (*Document, error) {
	root := p.md.Parser().Parse(text.NewReader(source))
	return &Document{
		source:     source,
		root:       root,
		lineStarts: lineStarts(source),
	}, nil
}

// Document is a parsed page.
type Document struct {
	source     []byte
	root       ast.Node
	lineStarts []int
}

// Events yields the document's nodes in order. Container kinds produce an
// Enter and an Exit event; leaf kinds produce Enter only.
func (d *Document) Events() iter.Seq2[EventType, *Node] {
	return func(yield func(EventType, *Node) bool) {
		type open struct {
			n    ast.Node
			node *Node
		}

		var stack []open
		line := 1
		cur := d.root
		for cur != nil || len(stack) > 0 {
			if cur == nil {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if !yield(Exit, top.node) {
					return
				}
				cur = top.n.NextSibling()
				continue
			}

			if l := d.lineOf(cur); l > 0 {
				line = l
			}
			node := d.convert(cur, line)

			switch n := cur.(type) {
			case *ast.AutoLink:
				label := &Node{Kind: KindText, Literal: string(n.Label(d.source)), Line: line}
				if !yield(Enter, node) || !yield(Enter, label) || !yield(Exit, node) {
					return
				}
				cur = cur.NextSibling()
				continue

			case *ast.Text:
				if !yield(Enter, node) {
					return
				}
				if n.HardLineBreak() {
					if !yield(Enter, &Node{Kind: KindLineBreak, Line: line}) {
						return
					}
				} else if n.SoftLineBreak() {
					if !yield(Enter, &Node{Kind: KindSoftBreak, Line: line}) {
						return
					}
				}
				cur = cur.NextSibling()
				continue
			}

			if !yield(Enter, node) {
				return
			}
			if node.Kind.Leaf() {
				cur = cur.NextSibling()
				continue
			}
			stack = append(stack, open{n: cur, node: node})
			cur = cur.FirstChild()
		}
	}
}

func (d *Document) convert(n ast.Node, line int) *Node {
	node := &Node{Line: line}

	switch n := n.(type) {
	case *ast.Document:
		node.Kind = KindDocument
	case *ast.Blockquote:
		node.Kind = KindBlockQuote
	case *ast.List:
		node.Kind = KindList
		if n.IsOrdered() {
			node.ListType = Ordered
		}
	case *ast.ListItem:
		node.Kind = KindItem
	case *ast.FencedCodeBlock:
		node.Kind = KindCodeBlock
		node.Literal = d.blockText(n)
		if n.Info != nil {
			node.Info = strings.TrimSpace(string(n.Info.Segment.Value(d.source)))
		}
	case *ast.CodeBlock:
		node.Kind = KindCodeBlock
		node.Literal = d.blockText(n)
	case *ast.Heading:
		node.Kind = KindHeading
		node.Level = n.Level
	case *ast.Paragraph, *ast.TextBlock:
		node.Kind = KindParagraph
	case *ast.ThematicBreak:
		node.Kind = KindThematicBreak
	case *ast.Text:
		node.Kind = KindText
		node.Literal = resolve(n.Segment.Value(d.source))
	case *ast.String:
		node.Kind = KindText
		node.Literal = string(n.Value)
	case *ast.CodeSpan:
		node.Kind = KindCode
		node.Literal = d.codeSpanText(n)
	case *ast.Emphasis:
		node.Kind = KindEmphasis
		if n.Level >= 2 {
			node.Kind = KindStrong
		}
	case *ast.Link:
		node.Kind = KindLink
		node.URL = string(n.Destination)
	case *ast.AutoLink:
		node.Kind = KindLink
		node.URL = string(n.URL(d.source))
	case *ast.Image:
		node.Kind = KindImage
		node.URL = string(n.Destination)
	default:
		node.Kind = KindUnknown
		node.Name = n.Kind().String()
	}
	return node
}

func (d *Document) blockText(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(d.source))
	}
	return sb.String()
}

func (d *Document) codeSpanText(n *ast.CodeSpan) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(d.source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return sb.String()
}

// lineOf returns the 1-based source line where n starts, or 0 when n carries
// no position of its own.
func (d *Document) lineOf(n ast.Node) int {
	if fenced, ok := n.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
		return d.line(fenced.Info.Segment.Start)
	}
	for c := n; c != nil; c = c.FirstChild() {
		if t, ok := c.(*ast.Text); ok {
			return d.line(t.Segment.Start)
		}
		if c.Type() == ast.TypeBlock && c.Lines().Len() > 0 {
			return d.line(c.Lines().At(0).Start)
		}
	}
	return 0
}

func (d *Document) line(offset int) int {
	return sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
}

func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func resolve(value []byte) string {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}
