package htmltree

import (
	"regexp"
	"strings"

	"github.com/user/docsite/internal/errors"
)

var (
	// Unicode whitespace, including no-break space and the separator classes.
	whitespace = regexp.MustCompile(`[\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}]+`)

	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
)

// EscapeText escapes &, < and > for element content.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttribute escapes &, <, >, " and ' for quoted attribute values.
func EscapeAttribute(s string) string {
	return attrEscaper.Replace(s)
}

// frame is a cursor over one child list. closeTag is written when the frame
// is exhausted; root and placeholder frames have none.
type frame struct {
	nodes    []Node
	index    int
	closeTag string
	slot     bool
}

// Render serializes t, substituting placeholders from b. It walks the tree
// with an explicit frame stack, so nesting depth is bounded by memory only.
func Render(t *Tree, b *Bindings) (string, error) {
	if len(t.Content) == 0 {
		return "", errors.NewStructuralViolationError("document is empty", nil)
	}

	var out strings.Builder
	stack := []*frame{{nodes: t.Content}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.index >= len(top.nodes) {
			stack = stack[:len(stack)-1]
			if top.closeTag != "" {
				out.WriteString("</" + top.closeTag + ">")
			}
			continue
		}

		node := top.nodes[top.index]
		top.index++

		switch n := node.(type) {
		case *Doctype:
			out.WriteString(n.Literal)

		case *Element:
			writeOpenTag(&out, n)
			if len(n.Children) > 0 {
				stack = append(stack, &frame{nodes: n.Children, closeTag: n.Tag, slot: top.slot})
			} else if n.Children != nil {
				out.WriteString("</" + n.Tag + ">")
			}

		case *Placeholder:
			if top.slot {
				return "", errors.NewStructuralViolationError(
					"placeholder "+n.Name+" inside bound content",
					map[string]interface{}{"placeholder": n.Name})
			}
			content, ok := b.Lookup(n.Name)
			if !ok {
				return "", errors.NewUnboundPlaceholderError(n.Name)
			}
			stack = append(stack, &frame{nodes: content.Content, slot: true})

		case *Preformatted:
			out.WriteString(EscapeText(n.Value))

		case *Raw:
			out.WriteString(n.Markup)

		case *Text:
			text := whitespace.ReplaceAllString(n.Value, " ")
			if text == " " && n.SuppressIfBlank {
				continue
			}
			out.WriteString(EscapeText(text))

		default:
			return "", errors.NewStructuralViolationError("unexpected node in tree", nil)
		}
	}

	return out.String(), nil
}

func writeOpenTag(out *strings.Builder, el *Element) {
	out.WriteString("<" + el.Tag)
	for _, a := range el.Attrs {
		out.WriteString(" " + a.Name)
		if !a.Bare {
			out.WriteString(`="` + EscapeAttribute(a.Value) + `"`)
		}
	}
	out.WriteString(">")
}
