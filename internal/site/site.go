// Package site assembles documentation pages from markdown sources and page
// skeletons and renders them.
package site

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/highlight"
	"github.com/user/docsite/internal/logging"
	"github.com/user/docsite/internal/markdown"
	"github.com/user/docsite/internal/toc"
	"github.com/user/docsite/internal/validation"
)

// Placeholders bound by the builder
const (
	ArticlePlaceholder = "article"
	NavbarPlaceholder  = "navbar"
	TOCPlaceholder     = "toc"
)

// Observer is told how a build advances.
type Observer interface {
	SectionStarted(name string, pages int)
	PageAssembled(page string)
	LinksChecked(result *validation.Result)
}

type nopObserver struct{}

func (nopObserver) SectionStarted(string, int)      {}
func (nopObserver) PageAssembled(string)            {}
func (nopObserver) LinksChecked(*validation.Result) {}

// Options configures a Builder. Highlighter and Checker are required.
type Options struct {
	ContentDir   string
	TemplatesDir string
	Manifest     *Manifest
	Parser       markdown.DocumentParser
	Highlighter  highlight.Highlighter
	Checker      *validation.Checker
	Observer     Observer
}

// Builder builds the pages of a site.
type Builder struct {
	opts     Options
	registry *Registry
	logger   *logging.Logger
}

// NewBuilder creates a builder. The skeleton registry lives as long as the
// builder.
func NewBuilder(opts Options, logger *logging.Logger) *Builder {
	if opts.Manifest == nil {
		opts.Manifest = DefaultManifest()
	}
	if opts.Parser == nil {
		opts.Parser = markdown.NewGoldmarkParser()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Builder{
		opts:     opts,
		registry: NewRegistry(opts.TemplatesDir, logger),
		logger:   logger,
	}
}

// Page is one assembled page.
type Page struct {
	Name     string
	Section  Section
	Instance *Instance
	Article  *Article
}

// Assembly holds every page of the site before links are resolved.
type Assembly struct {
	Pages    []*Page
	Contents map[string]*toc.Contents
	Index    validation.PageIndex
	Links    []*validation.Link
}

// RenderedPage is the final markup of one page.
type RenderedPage struct {
	Name    string
	HTML    string
	Anchors []string
}

// Site is the result of a successful build.
type Site struct {
	Pages      []*RenderedPage
	Stylesheet string
	Links      *validation.Result
}

// Assemble parses and assembles every page listed in the manifest.
func (b *Builder) Assemble(ctx context.Context) (*Assembly, error) {
	if err := b.opts.Manifest.Validate(); err != nil {
		return nil, err
	}

	asm := &Assembly{
		Contents: make(map[string]*toc.Contents),
		Index:    make(validation.PageIndex),
	}

	for _, section := range b.opts.Manifest.Sections {
		b.opts.Observer.SectionStarted(section.Name, 1+len(section.Pages))
		b.logger.Info("Building section",
			logging.String("section", section.Name),
			logging.String("template", section.Template),
			logging.Int("pages", 1+len(section.Pages)))

		var contents *toc.Contents
		if section.HasContents() {
			contents = &toc.Contents{}
			asm.Contents[section.Index] = contents
		}

		if err := b.assemblePage(ctx, asm, section, section.Index, nil); err != nil {
			return nil, err
		}
		for _, name := range section.Pages {
			if err := b.assemblePage(ctx, asm, section, name, contents); err != nil {
				return nil, err
			}
		}
	}

	return asm, nil
}

func (b *Builder) assemblePage(ctx context.Context, asm *Assembly, section Section, name string, contents *toc.Contents) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := asm.Index[name]; exists {
		return errors.NewStructuralViolationError("Page "+name+" exists multiple times",
			map[string]interface{}{"page": name})
	}

	instance, err := b.registry.Instantiate(section.Template)
	if err != nil {
		return err
	}

	path := filepath.Join(b.opts.ContentDir, name+".md")
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError("Reading page", path, err)
	}
	doc, err := b.opts.Parser.Parse(source)
	if err != nil {
		return errors.Locate(err, name+".md", 0)
	}

	var headings *toc.Builder
	if contents != nil {
		headings = toc.NewBuilder(contents, name, instance.HeadingLevel+1)
	}

	article, err := buildArticle(name, doc, instance.IDs, instance.HeadingLevel, b.opts.Highlighter, headings)
	if err != nil {
		return err
	}
	if err := instance.Bindings.Bind(ArticlePlaceholder, article.Tree); err != nil {
		return errors.Locate(err, section.Template+".html", 0)
	}

	asm.Pages = append(asm.Pages, &Page{
		Name:     name,
		Section:  section,
		Instance: instance,
		Article:  article,
	})
	asm.Index[name] = article.Anchors
	asm.Links = append(asm.Links, article.Links...)

	b.opts.Observer.PageAssembled(name)
	b.logger.Debug("Assembled page",
		logging.String("page", name),
		logging.Int("anchors", len(article.Anchors)),
		logging.Int("links", len(article.Links)))
	return nil
}

// Check resolves the links of an assembled site without changing it.
func (b *Builder) Check(ctx context.Context, asm *Assembly) (*validation.Result, error) {
	result, err := b.opts.Checker.Check(ctx, asm.Links, asm.Index)
	if err != nil {
		return nil, err
	}
	b.opts.Observer.LinksChecked(result)
	return result, nil
}

// Build assembles every page, resolves links and renders the pages. The
// first failure aborts the build.
func (b *Builder) Build(ctx context.Context) (*Site, error) {
	asm, err := b.Assemble(ctx)
	if err != nil {
		return nil, err
	}

	result, err := b.Check(ctx, asm)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	if err := validation.Apply(asm.Links, result); err != nil {
		return nil, err
	}

	site := &Site{Links: result}
	for _, page := range asm.Pages {
		html, err := b.render(asm, page)
		if err != nil {
			return nil, errors.Locate(err, page.Name+".html", 0)
		}
		site.Pages = append(site.Pages, &RenderedPage{
			Name:    page.Name,
			HTML:    html,
			Anchors: slices.Sorted(maps.Keys(page.Article.Anchors)),
		})
	}

	css, err := b.opts.Highlighter.Stylesheet()
	if err != nil {
		return nil, err
	}
	site.Stylesheet = css

	return site, nil
}

func (b *Builder) render(asm *Assembly, page *Page) (string, error) {
	bindings := page.Instance.Bindings

	if bindings.Has(NavbarPlaceholder) {
		navbar, err := buildNavbar(b.opts.Manifest.Sections, page.Section.Index, page.Instance.IDs)
		if err != nil {
			return "", err
		}
		if err := bindings.Bind(NavbarPlaceholder, navbar); err != nil {
			return "", err
		}
	}

	if contents, ok := asm.Contents[page.Section.Index]; ok && bindings.Has(TOCPlaceholder) {
		projection, err := toc.Project(contents, page.Name, page.Instance.IDs)
		if err != nil {
			return "", err
		}
		if err := bindings.Bind(TOCPlaceholder, projection); err != nil {
			return "", err
		}
	}

	return page.Instance.Render()
}
