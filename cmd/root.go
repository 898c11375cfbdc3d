package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/docsite/internal/errors"
)

var (
	debugFlag   bool
	verboseFlag bool
	rootFlag    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Static documentation site generator",
	Long: `Build a static documentation website from Markdown pages and HTML skeletons.

Docsite reads the pages listed in the site manifest, places each one into its
section's skeleton, builds the navigation bar and tables of contents, checks
every link and writes the finished pages to the output directory.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCodeOf(err).Int())
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed log output instead of progress UI")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "Site root containing content, templates and assets")
}
