// Package validation resolves and checks the links of a built site.
package validation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/htmltree"
	"github.com/user/docsite/internal/logging"
	"github.com/user/docsite/internal/worker_pool"
)

// IndexPage is the page an "@." link points to.
const IndexPage = "index"

// Link is a link found in a page body. Source is the page name and Element
// receives the resolved href.
type Link struct {
	Source  string
	Line    int
	URL     string
	Element *htmltree.Element
}

// PageIndex maps each page name to the anchor ids it defines.
type PageIndex map[string]htmltree.IDSet

// Options configures a Checker.
type Options struct {
	Remote  bool
	Workers int
	Timeout time.Duration
	Client  *http.Client
}

// Checker resolves site-local links and checks remote ones.
type Checker struct {
	opts   Options
	client *http.Client
	pool   *worker_pool.WorkerPool
	logger *logging.Logger
}

// NewChecker creates a link checker.
func NewChecker(opts Options, logger *logging.Logger) *Checker {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Checker{
		opts:   opts,
		client: client,
		pool:   worker_pool.NewWorkerPool(opts.Workers),
		logger: logger,
	}
}

// Result holds the outcome of checking every link of a site.
type Result struct {
	Links     int
	Remote    int
	Resolved  map[string]string
	Redirects map[string]string
	Issues    []*errors.BrokenLinkError
}

// IsValid returns true if no link is broken
func (r *Result) IsValid() bool {
	return len(r.Issues) == 0
}

// Err returns the first issue, or nil.
func (r *Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return r.Issues[0]
}

// Href returns the resolved href for link.
func (r *Result) Href(link *Link) (string, bool) {
	href, ok := r.Resolved[cacheKey(link)]
	return href, ok
}

// Check resolves every distinct link once. Broken links are collected in the
// result; the error is reserved for cancellation.
func (c *Checker) Check(ctx context.Context, links []*Link, index PageIndex) (*Result, error) {
	result := &Result{
		Links:     len(links),
		Resolved:  make(map[string]string),
		Redirects: make(map[string]string),
	}

	var remote []*Link
	for _, link := range links {
		key := cacheKey(link)
		if _, done := result.Resolved[key]; done {
			continue
		}

		if !strings.HasPrefix(link.URL, "@") {
			result.Resolved[key] = link.URL
			if c.opts.Remote && isRemote(link.URL) {
				remote = append(remote, link)
			}
			continue
		}

		href, err := resolveLocal(link, index)
		if err != nil {
			result.Issues = append(result.Issues, err)
		}
		result.Resolved[key] = href
	}

	if len(remote) > 0 {
		if err := c.checkRemote(ctx, remote, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Apply sets the href of every link from result.
func Apply(links []*Link, result *Result) error {
	for _, link := range links {
		href, ok := result.Href(link)
		if !ok {
			return brokenLink(link, "it was never resolved")
		}
		if err := htmltree.SetAttribute(link.Element, "href", href); err != nil {
			return errors.Locate(err, link.Source, link.Line)
		}
	}
	return nil
}

// brokenLink reports link at its line in the page's markdown source.
func brokenLink(link *Link, reason string) *errors.BrokenLinkError {
	return errors.NewBrokenLinkError(link.Source+".md", link.Line, link.URL, reason)
}

// resolveLocal resolves @page#fragment, @page, @#fragment and @. links.
func resolveLocal(link *Link, index PageIndex) (string, *errors.BrokenLinkError) {
	parts := strings.Split(link.URL[1:], "#")
	if len(parts) > 2 {
		return "", brokenLink(link, "the url has more than one fragment")
	}

	path := parts[0]
	page := link.Source
	href := ""
	if path != "" {
		page = path
		href = path + ".html"
		if path == "." {
			page = IndexPage
			href = "."
		}
		if _, ok := index[page]; !ok {
			return "", brokenLink(link, "this page doesn't exist")
		}
	}

	if len(parts) == 2 {
		fragment := parts[1]
		if !index[page].Has(fragment) {
			return "", brokenLink(link,
				fmt.Sprintf("there is no matching id on page %s", page))
		}
		href += "#" + fragment
	}

	return href, nil
}

func (c *Checker) checkRemote(ctx context.Context, links []*Link, result *Result) error {
	type outcome struct {
		status   int
		location string
	}

	tasks := make([]worker_pool.Task[outcome], len(links))
	for i, link := range links {
		target := link.URL
		tasks[i] = func(ctx context.Context) (outcome, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
			if err != nil {
				return outcome{}, err
			}
			resp, err := c.client.Do(req)
			if err != nil {
				return outcome{}, err
			}
			defer resp.Body.Close()
			return outcome{status: resp.StatusCode, location: resp.Request.URL.String()}, nil
		}
	}

	c.logger.Info("Checking remote links",
		logging.Int("count", len(links)),
		logging.Int("workers", c.pool.GetMaxWorkers()))

	results := worker_pool.Run(ctx, c.pool, tasks)
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, r := range results {
		link := links[i]
		result.Remote++
		switch {
		case r.Error != nil:
			result.Issues = append(result.Issues,
				brokenLink(link, "the request failed: "+r.Error.Error()))
		case r.Value.status != http.StatusOK:
			result.Issues = append(result.Issues,
				brokenLink(link,
					fmt.Sprintf("got response %d %s", r.Value.status, http.StatusText(r.Value.status))))
		case r.Value.location != link.URL:
			result.Redirects[link.URL] = r.Value.location
			c.logger.Warn("Link redirects",
				logging.String("url", link.URL),
				logging.String("resolved", r.Value.location))
		}
	}
	return nil
}

// cacheKey identifies a distinct link. Same-page fragments depend on the
// page they appear in.
func cacheKey(link *Link) string {
	if strings.HasPrefix(link.URL, "@#") {
		return link.Source + "\x00" + link.URL
	}
	return link.URL
}

func isRemote(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
