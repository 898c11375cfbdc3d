package htmltree

import (
	"bytes"
	"io"
	"regexp"

	"golang.org/x/net/html"

	"github.com/user/docsite/internal/errors"
)

const doctypeLiteral = "<!DOCTYPE html>"

var (
	// A text chunk made only of {{name}} tokens and whitespace is a run of
	// placeholders. Anything else is literal text.
	placeholderRun   = regexp.MustCompile(`^\s*(?:\{\{\s*[a-z]+\s*\}\}\s*)+$`)
	placeholderToken = regexp.MustCompile(`\{\{\s*([a-z]+)\s*\}\}`)
)

// skeletonParser drives an html.Tokenizer and keeps the stack of open
// elements.
type skeletonParser struct {
	name    string
	z       *html.Tokenizer
	tree    *Tree
	current Container
	stack   []Container
	line    int
}

// ParseSkeleton parses a page skeleton into a tree with a fresh identifier
// set. name is used to locate errors.
func ParseSkeleton(name string, r io.Reader) (*Tree, error) {
	tree := NewTree(NewIDSet())
	p := &skeletonParser{
		name:    name,
		z:       html.NewTokenizer(r),
		tree:    tree,
		current: tree,
		line:    1,
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return tree, nil
}

func (p *skeletonParser) run() error {
	for {
		tt := p.z.Next()
		raw := p.z.Raw()
		line := p.line
		p.line += bytes.Count(raw, []byte("\n"))

		var err error
		switch tt {
		case html.ErrorToken:
			if p.z.Err() == io.EOF {
				return p.finish()
			}
			return errors.WrapErrorWithContext(p.z.Err(), "Failed to tokenize skeleton",
				errors.ExitTemplateError, &errors.ErrorContext{Source: p.name, Line: line})

		case html.StartTagToken, html.SelfClosingTagToken:
			assigned := assignedAttrs(raw)
			err = p.startTag(p.z.Token(), assigned, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			err = p.endTag(p.z.Token().Data)

		case html.TextToken:
			err = p.text(string(p.z.Text()))

		case html.DoctypeToken:
			err = p.doctype(string(raw))

		case html.CommentToken:
			// The tokenizer reports <!...> and <?...?> as bogus comments.
			if bytes.HasPrefix(raw, []byte("<!")) && !bytes.HasPrefix(raw, []byte("<!--")) {
				err = errors.NewUnknownDeclarationError(string(raw), "not a doctype")
			}
		}

		if err != nil {
			return errors.Locate(err, p.name, line)
		}
	}
}

func (p *skeletonParser) startTag(tok html.Token, assigned map[string]bool, selfClosing bool) error {
	el, err := AddElement(p.current, tok.Data)
	if err != nil {
		return err
	}

	for _, attr := range tok.Attr {
		if attr.Val == "" && !assigned[attr.Key] {
			err = SetFlag(el, attr.Key)
		} else {
			err = SetAttribute(el, attr.Key, attr.Val)
		}
		if err != nil {
			return err
		}
	}

	if el.Model != ModelNone {
		if selfClosing {
			return errors.NewStructuralViolationError(
				"got unexpected self-closing tag <"+tok.Data+"/>",
				map[string]interface{}{"tag": tok.Data})
		}
		p.stack = append(p.stack, p.current)
		p.current = el
	}

	if level := headingLevel(tok.Data); level > p.tree.headingLevel {
		p.tree.headingLevel = level
	}
	return nil
}

func (p *skeletonParser) endTag(tag string) error {
	if p.current.tag() != tag {
		return errors.NewStructuralViolationError(
			"tried to close "+tag+" but current element is "+describe(p.current),
			map[string]interface{}{"tag": tag})
	}
	if len(p.stack) == 0 {
		return errors.NewStructuralViolationError("Got end tag on an empty document", nil)
	}
	p.current = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *skeletonParser) text(data string) error {
	if !placeholderRun.MatchString(data) {
		return AddText(p.current, data, true)
	}

	for _, match := range placeholderToken.FindAllStringSubmatch(data, -1) {
		name := match[1]
		for _, declared := range p.tree.placeholders {
			if declared == name {
				return errors.NewDuplicatePlaceholderError(name)
			}
		}
		if err := addPlaceholder(p.current, name); err != nil {
			return err
		}
		p.tree.placeholders = append(p.tree.placeholders, name)
	}
	return nil
}

func (p *skeletonParser) doctype(raw string) error {
	if raw != doctypeLiteral {
		return errors.NewUnknownDeclarationError(raw, "only "+doctypeLiteral+" is accepted")
	}
	if p.current != Container(p.tree) || len(p.tree.Content) > 0 {
		return errors.NewUnknownDeclarationError(raw, "doctype must be the first item of the document")
	}
	p.tree.Content = append(p.tree.Content, &Doctype{Literal: raw})
	return nil
}

func (p *skeletonParser) finish() error {
	if len(p.stack) > 0 {
		return errors.Locate(errors.NewStructuralViolationError(
			"Unclosed element "+describe(p.current)+" at end of skeleton",
			map[string]interface{}{"open_elements": len(p.stack)}), p.name, p.line)
	}
	return nil
}

// assignedAttrs scans the raw text of a start tag and reports which attribute
// names are followed by "=". The tokenizer gives bare and empty attributes
// the same empty value.
func assignedAttrs(raw []byte) map[string]bool {
	assigned := make(map[string]bool)
	isSpace := func(c byte) bool {
		return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
	}

	i := 1
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	for i < len(raw) {
		for i < len(raw) && (isSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}

		start := i
		i++
		for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' && raw[i] != '=' {
			i++
		}
		name := string(bytes.ToLower(raw[start:i]))

		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || raw[i] != '=' {
			continue
		}
		assigned[name] = true
		i++
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i < len(raw) && (raw[i] == '"' || raw[i] == '\'') {
			quote := raw[i]
			i++
			for i < len(raw) && raw[i] != quote {
				i++
			}
			i++
			continue
		}
		for i < len(raw) && !isSpace(raw[i]) && raw[i] != '>' {
			i++
		}
	}
	return assigned
}
