package config

import (
	"path/filepath"
	"time"
)

// Build modes
const (
	ModeDev     = "dev"
	ModeRelease = "release"
)

// BaseConfig holds settings shared by every command
type BaseConfig struct {
	Root  string `mapstructure:"root"`
	Debug bool   `mapstructure:"debug"`
}

// HighlightConfig holds code highlighting settings
type HighlightConfig struct {
	Style string `mapstructure:"style"` // chroma style name
}

// LinkCheckConfig holds remote link checking settings
type LinkCheckConfig struct {
	Workers int `mapstructure:"workers"`
	Timeout int `mapstructure:"timeout"` // Timeout in seconds per request
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	LogDir       string `mapstructure:"log_dir"`
	FileLevel    string `mapstructure:"file_level"`    // debug, info, warn, error
	ConsoleLevel string `mapstructure:"console_level"` // debug, info, warn, error
}

// SiteConfig holds configuration for building the documentation site
type SiteConfig struct {
	BaseConfig
	Mode         string          `mapstructure:"mode"`        // dev or release
	RemoteURLs   *bool           `mapstructure:"remote_urls"` // nil: derived from Mode
	ContentDir   string          `mapstructure:"content_dir"`
	TemplatesDir string          `mapstructure:"templates_dir"`
	OutputDir    string          `mapstructure:"output_dir"`
	AssetsDir    string          `mapstructure:"assets_dir"`
	Manifest     string          `mapstructure:"manifest"`
	AnchorIndex  bool            `mapstructure:"anchor_index"`
	Highlight    HighlightConfig `mapstructure:"highlight"`
	LinkCheck    LinkCheckConfig `mapstructure:"link_check"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

// CheckRemoteURLs reports whether external links are checked over HTTP
func (c *SiteConfig) CheckRemoteURLs() bool {
	if c.RemoteURLs != nil {
		return *c.RemoteURLs
	}
	return c.Mode == ModeRelease
}

// Path resolves a configured directory or file against Root
func (c *SiteConfig) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// GetTimeout returns the link check timeout as a time.Duration
func (c *LinkCheckConfig) GetTimeout() time.Duration {
	if c.Timeout == 0 {
		return 10 * time.Second // Default timeout
	}
	return time.Duration(c.Timeout) * time.Second
}

// GetWorkers returns the number of concurrent link checks with a default
func (c *LinkCheckConfig) GetWorkers() int {
	if c.Workers == 0 {
		return 4
	}
	return c.Workers
}
