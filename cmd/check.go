package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/docsite/internal/config"
	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/handlers"
	"github.com/user/docsite/internal/tui"
)

type checkOptions struct {
	outputFormat string
	details      bool
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the links of the documentation site",
		Long: `Assemble every page and validate its links without writing any output.

The check command reports:
  - Links to pages that do not exist
  - Links to anchors missing from their target page
  - External links that fail or redirect (with --remote-urls)

The command exits with status 3 when a link is broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "text", "Output format (text, json)")
	cmd.Flags().BoolVarP(&opts.details, "details", "d", false, "List every redirect")
	cmd.Flags().Bool("remote-urls", false, "Also request external links")

	return cmd
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	switch opts.outputFormat {
	case "text", "json":
	default:
		return errors.NewInvalidSettingError("output", opts.outputFormat, "must be text or json")
	}

	overrides := siteOverrides(cmd, map[string]string{
		"remote-urls": "remote_urls",
	})

	cfg, err := config.LoadSiteConfig(rootFlag, overrides)
	if err != nil {
		return HandleCommandError(err, nil, false)
	}

	logger, err := InitLogger(cfg, debugFlag, verboseFlag)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	handler := handlers.NewCheckHandler(*cfg, opts.details, logger)

	showProgress := opts.outputFormat != "json" && !verboseFlag
	progress := tui.NewSimpleProgress("Docsite Check")
	progress.SetWriter(cmd.ErrOrStderr())
	if showProgress {
		progress.Start()
		progress.Info(fmt.Sprintf("Root: %s", cfg.Root))
		progress.Step("Assembling pages and checking links...")
	}

	report, err := handler.Handle(cmd.Context())
	if err != nil {
		return HandleCommandError(err, progress, showProgress)
	}

	if showProgress {
		progress.Done()
	}

	out := cmd.OutOrStdout()
	switch opts.outputFormat {
	case "json":
		output, err := handler.FormatJSONReport(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, output)
	default:
		fmt.Fprint(out, handler.FormatTextReport(report))
	}

	if !report.Valid {
		return errors.NewError(fmt.Sprintf("%d broken link(s)", len(report.Broken)), errors.ExitValidationError)
	}
	return nil
}
