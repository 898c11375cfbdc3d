package handlers

import (
	"context"

	"github.com/user/docsite/internal/config"
	"github.com/user/docsite/internal/export"
	"github.com/user/docsite/internal/logging"
	"github.com/user/docsite/internal/site"
)

// BuildObserver follows a build from assembly to the last written file.
type BuildObserver interface {
	site.Observer
	export.Observer
}

// BuildHandler builds the site and writes it to the output directory.
type BuildHandler struct {
	*BaseHandler
	config   config.SiteConfig
	observer BuildObserver
}

// NewBuildHandler creates a build handler. observer may be nil.
func NewBuildHandler(cfg config.SiteConfig, observer BuildObserver, logger *logging.Logger) *BuildHandler {
	return &BuildHandler{
		BaseHandler: NewBaseHandler(cfg.BaseConfig, logger),
		config:      cfg,
		observer:    observer,
	}
}

// Handle builds every page before touching the output directory, so a failed
// build leaves the previous output in place.
func (h *BuildHandler) Handle(ctx context.Context) (*export.Summary, error) {
	h.Logger.Info("Starting build",
		logging.String("root", h.config.Root),
		logging.String("mode", h.config.Mode),
		logging.Bool("remote_urls", h.config.CheckRemoteURLs()),
	)

	builder, err := newSiteBuilder(&h.config, h.observer, h.Logger)
	if err != nil {
		return nil, err
	}

	s, err := builder.Build(ctx)
	if err != nil {
		h.Logger.Error("Build failed", logging.Error(err))
		return nil, err
	}

	assetsDir := h.config.AssetsDir
	if assetsDir != "" {
		assetsDir = h.config.Path(assetsDir)
	}
	writer := export.NewWriter(h.config.Path(h.config.OutputDir), assetsDir, h.Logger)
	writer.AnchorIndex = h.config.AnchorIndex
	writer.Observer = h.observer

	summary, err := writer.Write(s)
	if err != nil {
		h.Logger.Error("Writing output failed", logging.Error(err))
		return nil, err
	}

	h.Logger.Info("Build finished",
		logging.Int("pages", len(s.Pages)),
		logging.Int("links", s.Links.Links),
		logging.Int64("bytes", summary.TotalBytes))
	return summary, nil
}
