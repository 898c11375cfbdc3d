package site

import (
	"strings"
	"testing"

	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/highlight"
	"github.com/user/docsite/internal/htmltree"
	"github.com/user/docsite/internal/markdown"
	"github.com/user/docsite/internal/toc"
)

func assemble(t *testing.T, src string, ids htmltree.IDSet, contents *toc.Builder) (*Article, error) {
	t.Helper()
	doc, err := markdown.NewGoldmarkParser().Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	h, err := highlight.NewChromaHighlighter("")
	if err != nil {
		t.Fatalf("Failed to create highlighter: %v", err)
	}
	if ids == nil {
		ids = htmltree.NewIDSet()
	}
	return buildArticle("page", doc, ids, 1, h, contents)
}

func renderArticle(t *testing.T, a *Article) string {
	t.Helper()
	out, err := htmltree.Render(a.Tree, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return out
}

func TestBuildArticle_Elements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"paragraph", "Hello\nworld\n", "<p>Hello world</p>"},
		{"emphasis", "*a* and **b**\n", "<p><em>a</em> and <b>b</b></p>"},
		{"bullet list", "- one\n- two\n", "<ul><li><p>one</p></li><li><p>two</p></li></ul>"},
		{"ordered list", "1. one\n", "<ol><li><p>one</p></li></ol>"},
		{"blockquote", "> quoted\n", "<blockquote><p>quoted</p></blockquote>"},
		{"thematic break", "a\n\n---\n\nb\n", "<p>a</p><hr><p>b</p>"},
		{"line break", "a\\\nb\n", "<p>a<br>b</p>"},
		{"inline code", "run `a < b`\n", "<p>run <code>a &lt; b</code></p>"},
		{"image", "![the *logo*](logo.png)\n", `<p><img src="logo.png" alt="the logo"></p>`},
		{"heading", "# Getting Started!\n", `<h2 id="getting-started">Getting Started!</h2>`},
		{"heading with code", "# Use `make`\n", `<h2 id="use-make">Use <code>make</code></h2>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := assemble(t, tt.src, nil, nil)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got := renderArticle(t, a); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuildArticle_CodeBlock(t *testing.T) {
	a, err := assemble(t, "```json\n{\"a\": 1}\n```\n", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out := renderArticle(t, a); !strings.HasPrefix(out, `<div class="highlight">`) {
		t.Errorf("Expected raw highlighted fragment, got %q", out)
	}
}

func TestBuildArticle_LinksAndAnchors(t *testing.T) {
	a, err := assemble(t, "# Intro\n\nSee [next](@next#setup).\n\n## Details\n", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(a.Links) != 1 {
		t.Fatalf("Expected 1 link, got %d", len(a.Links))
	}
	link := a.Links[0]
	if link.Source != "page" || link.Line != 3 || link.URL != "@next#setup" || link.Element.Tag != "a" {
		t.Errorf("Unexpected link %+v", link)
	}
	if !a.Anchors.Has("intro") || !a.Anchors.Has("details") || len(a.Anchors) != 2 {
		t.Errorf("Unexpected anchors %v", a.Anchors)
	}
}

func TestBuildArticle_SharedIDs(t *testing.T) {
	ids := htmltree.NewIDSet()
	ids["intro"] = struct{}{}

	_, err := assemble(t, "# Intro\n", ids, nil)
	var dup *errors.DuplicateIdentifierError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateIdentifierError against the skeleton's ids, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "page.md:1") {
		t.Errorf("Expected location page.md:1, got %q", err.Error())
	}
}

func TestBuildArticle_FeedsContents(t *testing.T) {
	contents := &toc.Contents{}
	_, err := assemble(t, "# Page\n\n## A\n\n### B\n\n## C\n", nil, toc.NewBuilder(contents, "page", 2))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(contents.Entries) != 1 {
		t.Fatalf("Expected one page entry, got %d", len(contents.Entries))
	}
	root := contents.Entries[0]
	if root.ID != "page" || root.Title != "Page" {
		t.Errorf("Unexpected root %s/%s", root.ID, root.Title)
	}
	if len(root.Subheadings) != 2 || root.Subheadings[0].ID != "a" || root.Subheadings[0].Subheadings[0].ID != "b" {
		t.Errorf("Unexpected hierarchy under %s", root.Title)
	}
}
