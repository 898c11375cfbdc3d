package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/docsite/internal/config"
	"github.com/user/docsite/internal/logging"
	"github.com/user/docsite/internal/tui"
)

// InitLogger creates a configured logger for CLI commands.
// The log directory comes from cfg and is resolved against the site root.
// When verbose is true, log output also goes to stderr in place of the
// progress UI. The caller is responsible for calling logger.Sync() when done.
func InitLogger(cfg *config.SiteConfig, debug bool, verbose bool) (*logging.Logger, error) {
	logCfg := &logging.Config{
		LogDir:         cfg.Path(cfg.Logging.LogDir),
		FileLevel:      logging.LevelFromString(cfg.Logging.FileLevel),
		ConsoleLevel:   logging.LevelFromString(cfg.Logging.ConsoleLevel),
		EnableCaller:   debug,
		ConsoleEnabled: verbose,
	}
	if debug {
		logCfg.FileLevel = logging.LevelFromString("debug")
	}

	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

// siteOverrides collects the settings given on the command line. Only flags
// the user set are included, so config files keep their values otherwise.
func siteOverrides(cmd *cobra.Command, flags map[string]string) map[string]interface{} {
	overrides := map[string]interface{}{}
	if debugFlag {
		overrides["debug"] = true
	}

	for flag, key := range flags {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		overrides[key] = f.Value.String()
	}
	return overrides
}

// HandleCommandError reports err through the progress UI when it is shown,
// otherwise on stderr. It returns err unchanged so callers can chain it.
func HandleCommandError(err error, progress *tui.SimpleProgress, showProgress bool) error {
	if err == nil {
		return nil
	}

	message := err.Error()
	if userErr, ok := err.(interface{ GetUserMessage() string }); ok {
		message = userErr.GetUserMessage()
	}

	if showProgress && progress != nil {
		progress.Error(message)
		progress.Failed(nil)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", message)
	}
	return err
}
