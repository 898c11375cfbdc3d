package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/docsite/internal/config"
	"github.com/user/docsite/internal/handlers"
	"github.com/user/docsite/internal/tui"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [dev|release]",
		Short: "Build the documentation site",
		Long: `Build every page listed in the site manifest and write the result to the
output directory.

The optional argument selects the release mode:
  dev:     site-local links are checked, external links are not (default)
  release: external links are also requested and must answer 200 OK

The output directory is emptied only after every page has been built, so a
failing build leaves the previous output untouched.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{config.ModeDev, config.ModeRelease},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args)
		},
	}

	cmd.Flags().String("output", "", "Output directory (default \"docs\")")
	cmd.Flags().Bool("anchor-index", false, "Also write anchors.json listing the ids of every page")
	cmd.Flags().Bool("remote-urls", false, "Check external links regardless of the release mode")
	cmd.Flags().String("style", "", "Chroma style used for code blocks")

	return cmd
}

func init() {
	rootCmd.AddCommand(newBuildCmd())
}

func runBuild(cmd *cobra.Command, args []string) error {
	overrides := siteOverrides(cmd, map[string]string{
		"output":       "output_dir",
		"anchor-index": "anchor_index",
		"remote-urls":  "remote_urls",
		"style":        "highlight.style",
	})
	if len(args) == 1 {
		overrides["mode"] = args[0]
	}

	cfg, err := config.LoadSiteConfig(rootFlag, overrides)
	if err != nil {
		return HandleCommandError(err, nil, false)
	}

	logger, err := InitLogger(cfg, debugFlag, verboseFlag)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	showProgress := !verboseFlag
	progress := tui.NewBuildProgress(fmt.Sprintf("Docsite Build (%s)", cfg.Mode))
	progress.SetWriter(cmd.OutOrStdout())

	var observer handlers.BuildObserver
	if showProgress {
		progress.Start()
		observer = progress
	}

	handler := handlers.NewBuildHandler(*cfg, observer, logger)
	if _, err := handler.Handle(cmd.Context()); err != nil {
		return HandleCommandError(err, progress.SimpleProgress, showProgress)
	}

	if showProgress {
		progress.Finish(cfg.Path(cfg.OutputDir))
	}
	return nil
}
