package highlight

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/docsite/internal/errors"
)

func newHighlighter(t *testing.T) *ChromaHighlighter {
	t.Helper()
	h, err := NewChromaHighlighter("")
	if err != nil {
		t.Fatalf("NewChromaHighlighter failed: %v", err)
	}
	return h
}

func TestHighlight_Languages(t *testing.T) {
	h := newHighlighter(t)

	tests := []struct {
		language string
		code     string
		contains string
	}{
		{"php", "$value = strlen('abc');\n", "strlen"},
		{"shell", "$ php run.php\nok\n", "run.php"},
		{"json", "{\"a\": [1, 2]}\n", "2"},
		{"", "$ ls\n", "ls"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			out, err := h.Highlight(tt.code, tt.language)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
			if err != nil {
				t.Fatalf("Failed to parse fragment: %v", err)
			}
			if doc.Find("div.highlight pre").Length() != 1 {
				t.Errorf("Expected a <pre> inside div.highlight, got %s", out)
			}
			if doc.Find("span[class]").Length() == 0 {
				t.Errorf("Expected classed spans, got %s", out)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("Expected %q in output, got %s", tt.contains, out)
			}
		})
	}
}

func TestHighlight_UnknownLanguage(t *testing.T) {
	h := newHighlighter(t)

	var violation *errors.StructuralViolationError
	_, err := h.Highlight("print 1", "python")
	if !errors.As(err, &violation) {
		t.Fatalf("Expected StructuralViolationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unknown code block type: python") {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestNewChromaHighlighter_UnknownStyle(t *testing.T) {
	if _, err := NewChromaHighlighter("no-such-style"); err == nil {
		t.Error("Expected an error for an unknown style")
	}
}

func TestStylesheet(t *testing.T) {
	css, err := newHighlighter(t).Stylesheet()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("Expected chroma class rules, got %q", css)
	}
}
