// Package highlight renders code blocks to highlighted HTML fragments.
package highlight

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/user/docsite/internal/errors"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "algol_nu"

// Highlighter maps code and a language tag to a markup fragment.
type Highlighter interface {
	Highlight(code, language string) (string, error)
	Stylesheet() (string, error)
}

// lexerNames maps code block info strings to chroma lexers. An empty info
// string is highlighted as a shell session.
var lexerNames = map[string]string{
	"php":   "php",
	"shell": "console",
	"json":  "json",
	"":      "console",
}

// ChromaHighlighter highlights with chroma using CSS classes.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
	lexers    map[string]chroma.Lexer
}

// NewChromaHighlighter creates a highlighter for the named style.
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if styleName == "" {
		styleName = DefaultStyle
	}
	style, ok := styles.Registry[styleName]
	if !ok {
		return nil, errors.NewInvalidSettingError("highlight.style", styleName, "unknown chroma style")
	}

	h := &ChromaHighlighter{
		style:     style,
		formatter: html.New(html.WithClasses(true)),
		lexers:    make(map[string]chroma.Lexer, len(lexerNames)),
	}
	for info, name := range lexerNames {
		lexer := lexers.Get(name)
		if lexer == nil {
			return nil, errors.NewError(fmt.Sprintf("chroma has no lexer %q", name), errors.ExitGeneralError)
		}
		h.lexers[info] = chroma.Coalesce(lexer)
	}
	return h, nil
}

// Highlight returns code as a <div class="highlight"> fragment.
func (h *ChromaHighlighter) Highlight(code, language string) (string, error) {
	lexer, ok := h.lexers[language]
	if !ok {
		return "", errors.NewStructuralViolationError(
			fmt.Sprintf("Unknown code block type: %s", language),
			map[string]interface{}{"language": language})
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", errors.WrapError(err, "Failed to tokenize "+language+" code", errors.ExitContentError)
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="highlight">`)
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", errors.WrapError(err, "Failed to format highlighted code", errors.ExitContentError)
	}
	buf.WriteString("</div>")
	return buf.String(), nil
}

// Stylesheet returns the CSS rules for the highlighter's classes.
func (h *ChromaHighlighter) Stylesheet() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", errors.WrapError(err, "Failed to write highlight stylesheet", errors.ExitGeneralError)
	}
	return buf.String(), nil
}
