package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/user/docsite/internal/config"
	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/logging"
	"github.com/user/docsite/internal/site"
)

// BrokenLink is one unresolvable link in a check report.
type BrokenLink struct {
	Source  string `json:"source"`
	Line    int    `json:"line"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Redirect is a remote link that answered with a redirect.
type Redirect struct {
	URL      string `json:"url"`
	Location string `json:"location"`
}

// CheckReport summarizes the pages and links of a site without writing it.
type CheckReport struct {
	Valid     bool         `json:"valid"`
	Mode      string       `json:"mode"`
	Remote    bool         `json:"remote"`
	Sections  int          `json:"sections"`
	Pages     int          `json:"pages"`
	Anchors   int          `json:"anchors"`
	Links     int          `json:"links"`
	Checked   int          `json:"checked_remote"`
	Broken    []BrokenLink `json:"broken"`
	Redirects []Redirect   `json:"redirects"`
}

// CheckHandler assembles the site and validates its links.
type CheckHandler struct {
	*BaseHandler
	config  config.SiteConfig
	verbose bool
}

// NewCheckHandler creates a check handler. verbose lists every redirect in
// the text report.
func NewCheckHandler(cfg config.SiteConfig, verbose bool, logger *logging.Logger) *CheckHandler {
	return &CheckHandler{
		BaseHandler: NewBaseHandler(cfg.BaseConfig, logger),
		config:      cfg,
		verbose:     verbose,
	}
}

// Handle returns a report for a site whose pages all assemble. Broken links
// are part of the report, not an error.
func (h *CheckHandler) Handle(ctx context.Context) (*CheckReport, error) {
	h.Logger.Info("Starting link check",
		logging.String("root", h.config.Root),
		logging.Bool("remote_urls", h.config.CheckRemoteURLs()),
	)

	builder, err := newSiteBuilder(&h.config, nil, h.Logger)
	if err != nil {
		return nil, err
	}

	asm, err := builder.Assemble(ctx)
	if err != nil {
		return nil, err
	}

	result, err := builder.Check(ctx, asm)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Valid:     result.IsValid(),
		Mode:      h.config.Mode,
		Remote:    h.config.CheckRemoteURLs(),
		Sections:  sectionCount(asm),
		Pages:     len(asm.Pages),
		Links:     result.Links,
		Checked:   result.Remote,
		Broken:    []BrokenLink{},
		Redirects: []Redirect{},
	}
	for _, ids := range asm.Index {
		report.Anchors += len(ids)
	}

	for _, issue := range result.Issues {
		report.Broken = append(report.Broken, brokenLink(issue))
	}
	for url, location := range result.Redirects {
		report.Redirects = append(report.Redirects, Redirect{URL: url, Location: location})
	}
	sort.Slice(report.Redirects, func(i, j int) bool {
		return report.Redirects[i].URL < report.Redirects[j].URL
	})

	h.Logger.Info("Link check finished",
		logging.Int("links", report.Links),
		logging.Int("broken", len(report.Broken)))
	return report, nil
}

func sectionCount(asm *site.Assembly) int {
	seen := make(map[string]bool)
	for _, page := range asm.Pages {
		seen[page.Section.Index] = true
	}
	return len(seen)
}

func brokenLink(issue *errors.BrokenLinkError) BrokenLink {
	link := BrokenLink{URL: issue.URL, Message: issue.Message}
	if issue.Context != nil {
		link.Source = issue.Context.Source
		link.Line = issue.Context.Line
	}
	return link
}

func (h *CheckHandler) FormatTextReport(report *CheckReport) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Link Report\n")
	sb.WriteString("===========\n\n")

	status := "✓ Status: Valid"
	if !report.Valid {
		status = fmt.Sprintf("✗ Status: %d broken link(s)", len(report.Broken))
	}
	sb.WriteString(status + "\n")
	sb.WriteString(fmt.Sprintf("   Mode: %s\n", report.Mode))
	sb.WriteString(fmt.Sprintf("   Sections: %d, Pages: %d, Anchors: %d\n", report.Sections, report.Pages, report.Anchors))
	if report.Remote {
		sb.WriteString(fmt.Sprintf("   Links: %d (%d remote checked)\n", report.Links, report.Checked))
	} else {
		sb.WriteString(fmt.Sprintf("   Links: %d (remote links not checked)\n", report.Links))
	}
	sb.WriteString("\n")

	if len(report.Broken) > 0 {
		sb.WriteString("Broken Links:\n")
		for _, link := range report.Broken {
			sb.WriteString(fmt.Sprintf("   ✗ %s:%d: %s\n", link.Source, link.Line, link.Message))
		}
		sb.WriteString("\n")
	}

	if len(report.Redirects) > 0 {
		sb.WriteString("Redirects:\n")
		shown := report.Redirects
		if !h.verbose {
			shown = limitSlice(shown, 10)
		}
		for _, r := range shown {
			sb.WriteString(fmt.Sprintf("   → %s → %s\n", r.URL, r.Location))
		}
		if len(shown) < len(report.Redirects) {
			sb.WriteString(fmt.Sprintf("      ... and %d more\n", len(report.Redirects)-len(shown)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (h *CheckHandler) FormatJSONReport(report *CheckReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}

func limitSlice[T any](slice []T, limit int) []T {
	if len(slice) <= limit {
		return slice
	}
	return slice[:limit]
}
