package handlers

import (
	"github.com/user/docsite/internal/config"
	"github.com/user/docsite/internal/highlight"
	"github.com/user/docsite/internal/logging"
	"github.com/user/docsite/internal/site"
	"github.com/user/docsite/internal/validation"
)

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	Config config.BaseConfig
	Logger *logging.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(cfg config.BaseConfig, logger *logging.Logger) *BaseHandler {
	return &BaseHandler{
		Config: cfg,
		Logger: logger,
	}
}

// newSiteBuilder wires the parser, highlighter and link checker described by
// cfg into a site builder.
func newSiteBuilder(cfg *config.SiteConfig, observer site.Observer, logger *logging.Logger) (*site.Builder, error) {
	manifest, err := site.LoadManifest(cfg.Path(cfg.Manifest))
	if err != nil {
		return nil, err
	}

	highlighter, err := highlight.NewChromaHighlighter(cfg.Highlight.Style)
	if err != nil {
		return nil, err
	}

	checker := validation.NewChecker(validation.Options{
		Remote:  cfg.CheckRemoteURLs(),
		Workers: cfg.LinkCheck.GetWorkers(),
		Timeout: cfg.LinkCheck.GetTimeout(),
	}, logger.Named("links"))

	return site.NewBuilder(site.Options{
		ContentDir:   cfg.Path(cfg.ContentDir),
		TemplatesDir: cfg.Path(cfg.TemplatesDir),
		Manifest:     manifest,
		Highlighter:  highlighter,
		Checker:      checker,
		Observer:     observer,
	}, logger), nil
}
