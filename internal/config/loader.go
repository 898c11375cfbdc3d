package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/user/docsite/internal/errors"
)

// EnvPrefix prefixes every environment variable read by the loader
const EnvPrefix = "DOCSITE"

// defaults lists every setting with its default value. Environment variables
// can replace a default but not a value from a config file.
var defaults = map[string]interface{}{
	"root":                  ".",
	"debug":                 false,
	"mode":                  ModeDev,
	"content_dir":           "content",
	"templates_dir":         "templates",
	"output_dir":            "docs",
	"assets_dir":            "assets",
	"manifest":              "site.yaml",
	"anchor_index":          false,
	"highlight.style":       "algol_nu",
	"link_check.workers":    4,
	"link_check.timeout":    10,
	"logging.log_dir":       ".docsite/logs",
	"logging.file_level":    "info",
	"logging.console_level": "debug",
}

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	return &Loader{v: v}
}

// Load reads every configuration source for the site rooted at root.
// Precedence: CLI > <root>/.docsite/config.yaml > ~/.docsite.yaml > Environment > Defaults
func (l *Loader) Load(root string, cliOverrides map[string]interface{}) (*viper.Viper, error) {
	if root == "" {
		root = "."
	}
	_ = godotenv.Load(filepath.Join(root, ".env"))

	// 1. Defaults, replaced by DOCSITE_* variables
	l.loadDefaults()

	// 2. Load from ~/.docsite.yaml (global user config)
	if err := l.loadGlobalConfig(); err != nil {
		return nil, err
	}

	// 3. Load from <root>/.docsite/config.yaml (project-specific config)
	if err := l.loadProjectConfig(root); err != nil {
		return nil, err
	}

	// 4. Apply CLI overrides
	l.v.Set("root", root)
	l.applyCLIOverrides(cliOverrides)

	return l.v, nil
}

func (l *Loader) loadDefaults() {
	for key, value := range defaults {
		if env, ok := os.LookupEnv(EnvKey(key)); ok {
			value = env
		}
		l.v.SetDefault(key, value)
	}
	if env, ok := os.LookupEnv(EnvKey("remote_urls")); ok {
		l.v.SetDefault("remote_urls", env)
	}
}

// loadGlobalConfig loads configuration from ~/.docsite.yaml
func (l *Loader) loadGlobalConfig() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil // Not a fatal error
	}

	globalConfig := filepath.Join(homeDir, ".docsite.yaml")
	if _, err := os.Stat(globalConfig); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(globalConfig)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.NewConfigFileError(globalConfig, err)
	}

	return nil
}

// loadProjectConfig loads configuration from .docsite/config.yaml
func (l *Loader) loadProjectConfig(root string) error {
	configPath := filepath.Join(root, ".docsite", "config.yaml")
	if _, err := os.Stat(configPath); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(configPath)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.NewConfigFileError(configPath, err)
	}

	return nil
}

// applyCLIOverrides applies CLI flag overrides
func (l *Loader) applyCLIOverrides(overrides map[string]interface{}) {
	for key, value := range overrides {
		// Only set if value is not nil/zero
		if value != nil {
			l.v.Set(key, value)
		}
	}
}

// EnvKey returns the environment variable that replaces the default of key
// Example: link_check.workers -> DOCSITE_LINK_CHECK_WORKERS
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// LoadSiteConfig loads and validates the site configuration
func LoadSiteConfig(root string, cliOverrides map[string]interface{}) (*SiteConfig, error) {
	v, err := NewLoader().Load(root, cliOverrides)
	if err != nil {
		return nil, err
	}

	cfg := &SiteConfig{}
	decoderConfig := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
		TagName:          "mapstructure",
		Squash:           true,
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, errors.WrapError(err, "Failed to decode site configuration", errors.ExitConfigError)
	}

	if err := validateSiteConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateSiteConfig(cfg *SiteConfig) error {
	switch cfg.Mode {
	case ModeDev, ModeRelease:
	default:
		return errors.NewConfigurationError(fmt.Sprintf("Unknown release mode: %s", cfg.Mode))
	}

	if cfg.LinkCheck.Workers < 0 {
		return errors.NewInvalidSettingError("link_check.workers", fmt.Sprint(cfg.LinkCheck.Workers), "must not be negative")
	}
	if cfg.LinkCheck.Timeout < 0 {
		return errors.NewInvalidSettingError("link_check.timeout", fmt.Sprint(cfg.LinkCheck.Timeout), "must not be negative")
	}

	for key, value := range map[string]string{
		"content_dir":   cfg.ContentDir,
		"templates_dir": cfg.TemplatesDir,
		"output_dir":    cfg.OutputDir,
		"manifest":      cfg.Manifest,
	} {
		if value == "" {
			return errors.NewInvalidSettingError(key, value, "must not be empty")
		}
	}

	return nil
}
