package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/highlight"
	"github.com/user/docsite/internal/logging"
	"github.com/user/docsite/internal/validation"
)

const pageSkeleton = `<!DOCTYPE html>
<html>
  <head><title>Docs</title></head>
  <body>
    <header><h1>Site</h1></header>
    <nav><ul>{{navbar}}</ul></nav>
    <main>{{article}}</main>
  </body>
</html>
`

const documentationSkeleton = `<!DOCTYPE html>
<html>
  <head><title>Docs</title></head>
  <body>
    <header><h1>Site</h1></header>
    <nav><ul>{{navbar}}</ul></nav>
    <div class="toc">{{toc}}</div>
    <main>{{article}}</main>
  </body>
</html>
`

func testManifest() *Manifest {
	return &Manifest{Sections: []Section{
		{Name: "Home", Template: "page", Index: "index"},
		{Name: "Guide", Template: "documentation", Index: "guide", Pages: []string{"install", "usage"}},
		{Template: "page", Index: "sample-code"},
	}}
}

func writeSite(t *testing.T, pages map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"templates/page.html":          pageSkeleton,
		"templates/documentation.html": documentationSkeleton,
		"content/index.md":             "# Welcome\n\nRead the [guide](@guide) or [install](@install#requirements).\n",
		"content/guide.md":             "# Guide\n\nStart with [installing](@install).\n",
		"content/install.md":           "# Install\n\n## Requirements\n\nPHP 8.\n\n## Steps\n\n```shell\n$ composer install\n```\n",
		"content/usage.md":             "# Usage\n\n## Running\n\nSee [requirements](@install#requirements) and [below](@#flags).\n\n### Flags\n\nUse `--verbose`.\n",
		"content/sample-code.md":       "# Sample\n\n```php\necho 'hi';\n```\n",
	}
	for name, content := range pages {
		files[name] = content
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return root
}

func newTestBuilder(t *testing.T, root string) *Builder {
	t.Helper()
	h, err := highlight.NewChromaHighlighter("")
	if err != nil {
		t.Fatalf("Failed to create highlighter: %v", err)
	}
	logger := logging.NewNopLogger()
	return NewBuilder(Options{
		ContentDir:   filepath.Join(root, "content"),
		TemplatesDir: filepath.Join(root, "templates"),
		Manifest:     testManifest(),
		Highlighter:  h,
		Checker:      validation.NewChecker(validation.Options{}, logger),
	}, logger)
}

func pageDoc(t *testing.T, s *Site, name string) *goquery.Document {
	t.Helper()
	for _, p := range s.Pages {
		if p.Name == name {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
			if err != nil {
				t.Fatalf("Failed to parse %s: %v", name, err)
			}
			return doc
		}
	}
	t.Fatalf("Page %s not built", name)
	return nil
}

func TestBuild_Site(t *testing.T) {
	root := writeSite(t, nil)
	s, err := newTestBuilder(t, root).Build(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var names []string
	for _, p := range s.Pages {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "index,guide,install,usage,sample-code" {
		t.Fatalf("Unexpected page order %v", names)
	}

	index := pageDoc(t, s, "index")
	if !strings.HasPrefix(s.Pages[0].HTML, "<!DOCTYPE html>") {
		t.Error("Expected pages to start with the doctype")
	}
	navLinks := index.Find("nav ul li a")
	if navLinks.Length() != 2 {
		t.Fatalf("Expected 2 navbar entries, got %d", navLinks.Length())
	}
	if href, _ := navLinks.Eq(0).Attr("href"); href != "." || !navLinks.Eq(0).HasClass("active") {
		t.Errorf("Expected active Home link to '.', got %q", href)
	}
	if href, _ := index.Find("main a").Eq(1).Attr("href"); href != "install.html#requirements" {
		t.Errorf("Expected resolved cross-page link, got %q", href)
	}
	if id, _ := index.Find("main h2").Attr("id"); id != "welcome" {
		t.Errorf("Expected body headings shifted below the skeleton's h1, got id %q", id)
	}

	usage := pageDoc(t, s, "usage")
	if href, _ := usage.Find(`nav a.active`).Attr("href"); href != "guide.html" {
		t.Errorf("Expected Guide active on a section page, got %q", href)
	}
	if href, _ := usage.Find("main a").Eq(1).Attr("href"); href != "#flags" {
		t.Errorf("Expected same-page anchor, got %q", href)
	}
	if usage.Find("main h4#flags").Length() != 1 {
		t.Error("Expected ### to render as h4 with an id")
	}
	if usage.Find("main code").Text() != "--verbose" {
		t.Errorf("Expected inline code, got %q", usage.Find("main code").Text())
	}

	tocTop := usage.Find("div.toc > ol > li")
	if tocTop.Length() != 2 {
		t.Fatalf("Expected 2 pages in the table of contents, got %d", tocTop.Length())
	}
	if href, _ := tocTop.Eq(0).ChildrenFiltered("a").Attr("href"); href != "install.html" {
		t.Errorf("Expected link to install.html, got %q", href)
	}
	if _, ok := tocTop.Eq(1).ChildrenFiltered("input").Attr("checked"); !ok {
		t.Error("Expected the current page to be expanded")
	}
	if href, _ := tocTop.Eq(1).Find("ol ol ol a").Attr("href"); href != "#flags" {
		t.Errorf("Expected nested same-page anchor, got %q", href)
	}

	guide := pageDoc(t, s, "guide")
	if guide.Find("div.toc input[checked]").Length() != 0 {
		t.Error("Expected nothing expanded on the section index")
	}

	install := pageDoc(t, s, "install")
	if install.Find("main div.highlight pre").Length() != 1 {
		t.Error("Expected the shell block to be highlighted")
	}

	sample := pageDoc(t, s, "sample-code")
	if sample.Find("nav a.active").Length() != 0 {
		t.Error("Expected no active entry for an unnamed section")
	}

	if got := strings.Join(s.Pages[2].Anchors, ","); got != "install,requirements,steps" {
		t.Errorf("Expected sorted anchors for install, got %s", got)
	}
	if s.Stylesheet == "" {
		t.Error("Expected a highlight stylesheet")
	}
}

func TestBuild_Failures(t *testing.T) {
	tests := []struct {
		name     string
		pages    map[string]string
		check    func(error) bool
		location string
	}{
		{
			name:  "broken link",
			pages: map[string]string{"content/guide.md": "# Guide\n\n[x](@nowhere)\n"},
			check: func(err error) bool {
				var e *errors.BrokenLinkError
				return errors.As(err, &e)
			},
			location: "guide.md:3",
		},
		{
			name:  "duplicate heading",
			pages: map[string]string{"content/install.md": "# Install\n\n## Steps\n\n## Steps\n"},
			check: func(err error) bool {
				var e *errors.DuplicateIdentifierError
				return errors.As(err, &e) && e.ID == "steps"
			},
			location: "install.md:5",
		},
		{
			name:  "heading skip",
			pages: map[string]string{"content/usage.md": "# Usage\n\n### Deep\n"},
			check: func(err error) bool {
				var e *errors.HeadingLevelSkipError
				return errors.As(err, &e)
			},
			location: "usage.md:3",
		},
		{
			name:  "unknown code block",
			pages: map[string]string{"content/index.md": "# Home\n\n```python\nprint(1)\n```\n"},
			check: func(err error) bool {
				var e *errors.StructuralViolationError
				return errors.As(err, &e) && strings.Contains(err.Error(), "Unknown code block type: python")
			},
			location: "index.md:3",
		},
		{
			name:  "unhandled node",
			pages: map[string]string{"content/index.md": "# Home\n\n<div>raw</div>\n"},
			check: func(err error) bool {
				var e *errors.StructuralViolationError
				return errors.As(err, &e) && strings.Contains(err.Error(), "Unhandled HTMLBlock")
			},
			location: "index.md:3",
		},
		{
			name:  "unbound placeholder",
			pages: map[string]string{"templates/page.html": "<main>{{article}}{{footer}}</main>"},
			check: func(err error) bool {
				var e *errors.UnboundPlaceholderError
				return errors.As(err, &e) && e.Name == "footer"
			},
			location: "index.html",
		},
		{
			name:  "missing page",
			pages: map[string]string{},
			check: func(err error) bool {
				var e *errors.IOError
				return errors.As(err, &e)
			},
			location: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeSite(t, tt.pages)
			if tt.name == "missing page" {
				_ = os.Remove(filepath.Join(root, "content", "usage.md"))
			}

			s, err := newTestBuilder(t, root).Build(context.Background())
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if s != nil {
				t.Error("Expected no site on failure")
			}
			if !tt.check(err) {
				t.Errorf("Unexpected error %T: %v", err, err)
			}
			if tt.location != "" && !strings.HasPrefix(err.Error(), tt.location) {
				t.Errorf("Expected error located at %s, got %q", tt.location, err.Error())
			}
		})
	}
}

func TestAssemble_CollectsLinksAndAnchors(t *testing.T) {
	root := writeSite(t, nil)
	b := newTestBuilder(t, root)

	asm, err := b.Assemble(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(asm.Links) != 5 {
		t.Errorf("Expected 5 links, got %d", len(asm.Links))
	}
	if !asm.Index["usage"].Has("flags") || !asm.Index["index"].Has("welcome") {
		t.Errorf("Expected anchors in the page index, got %v", asm.Index)
	}
	if len(asm.Contents) != 1 || len(asm.Contents["guide"].Entries) != 2 {
		t.Errorf("Expected one table of contents with 2 pages, got %v", asm.Contents)
	}

	result, err := b.Check(context.Background(), asm)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.IsValid() {
		t.Errorf("Expected valid links, got %v", result.Issues)
	}
}

func TestAssemble_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestBuilder(t, writeSite(t, nil)).Assemble(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
