package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/docsite/internal/errors"
)

// isolate points HOME at an empty directory so a developer's global config
// does not leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for key := range defaults {
		_ = os.Unsetenv(EnvKey(key))
	}
	_ = os.Unsetenv(EnvKey("remote_urls"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoadSiteConfig_DefaultValues(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	cfg, err := LoadSiteConfig(root, map[string]interface{}{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Root != root {
		t.Errorf("Expected root %s, got %s", root, cfg.Root)
	}
	if cfg.Mode != ModeDev {
		t.Errorf("Expected mode 'dev', got '%s'", cfg.Mode)
	}
	if cfg.CheckRemoteURLs() {
		t.Error("Expected remote URLs not to be checked in dev mode")
	}
	if cfg.OutputDir != "docs" || cfg.ContentDir != "content" || cfg.TemplatesDir != "templates" {
		t.Errorf("Unexpected directories %s %s %s", cfg.OutputDir, cfg.ContentDir, cfg.TemplatesDir)
	}
	if cfg.Highlight.Style != "algol_nu" {
		t.Errorf("Expected style 'algol_nu', got '%s'", cfg.Highlight.Style)
	}
	if cfg.LinkCheck.GetWorkers() != 4 || cfg.LinkCheck.GetTimeout().Seconds() != 10 {
		t.Errorf("Unexpected link check settings %+v", cfg.LinkCheck)
	}
	if got := cfg.Path(cfg.OutputDir); got != filepath.Join(root, "docs") {
		t.Errorf("Expected output path under root, got %s", got)
	}
}

func TestLoadSiteConfig_Precedence(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	writeFile(t, filepath.Join(os.Getenv("HOME"), ".docsite.yaml"), `
output_dir: global-out
highlight:
  style: monokai
link_check:
  workers: 2
`)
	writeFile(t, filepath.Join(root, ".docsite", "config.yaml"), `
output_dir: project-out
link_check:
  timeout: 30
`)
	t.Setenv("DOCSITE_OUTPUT_DIR", "env-out")
	t.Setenv("DOCSITE_ASSETS_DIR", "env-assets")

	cfg, err := LoadSiteConfig(root, map[string]interface{}{
		"mode":  ModeRelease,
		"debug": nil,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.OutputDir != "project-out" {
		t.Errorf("Expected project config to win over global and env, got %s", cfg.OutputDir)
	}
	if cfg.Highlight.Style != "monokai" {
		t.Errorf("Expected global style, got %s", cfg.Highlight.Style)
	}
	if cfg.LinkCheck.Workers != 2 || cfg.LinkCheck.Timeout != 30 {
		t.Errorf("Expected merged link_check {2 30}, got %+v", cfg.LinkCheck)
	}
	if cfg.AssetsDir != "env-assets" {
		t.Errorf("Expected env to replace the default, got %s", cfg.AssetsDir)
	}
	if cfg.Mode != ModeRelease || !cfg.CheckRemoteURLs() {
		t.Errorf("Expected CLI release mode with remote checks, got %s", cfg.Mode)
	}
}

func TestLoadSiteConfig_RemoteURLsOverride(t *testing.T) {
	isolate(t)
	t.Setenv("DOCSITE_REMOTE_URLS", "false")

	cfg, err := LoadSiteConfig(t.TempDir(), map[string]interface{}{"mode": ModeRelease})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.CheckRemoteURLs() {
		t.Error("Expected explicit remote_urls=false to win over release mode")
	}
}

func TestLoadSiteConfig_UnknownMode(t *testing.T) {
	isolate(t)

	_, err := LoadSiteConfig(t.TempDir(), map[string]interface{}{"mode": "staging"})
	var cfgErr *errors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if errors.ExitCodeOf(err) != errors.ExitConfigError {
		t.Errorf("Expected config exit code, got %d", errors.ExitCodeOf(err))
	}
}

func TestLoadSiteConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"negative workers", map[string]interface{}{"link_check.workers": -1}},
		{"negative timeout", map[string]interface{}{"link_check.timeout": -5}},
		{"empty output", map[string]interface{}{"output_dir": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := LoadSiteConfig(t.TempDir(), tt.overrides)
			var invalid *errors.InvalidSettingError
			if !errors.As(err, &invalid) {
				t.Errorf("Expected InvalidSettingError, got %v", err)
			}
		})
	}
}

func TestLoadSiteConfig_BrokenProjectFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".docsite", "config.yaml"), "output_dir: [unclosed\n")

	_, err := LoadSiteConfig(root, nil)
	var fileErr *errors.ConfigFileError
	if !errors.As(err, &fileErr) {
		t.Errorf("Expected ConfigFileError, got %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	if got := EnvKey("link_check.workers"); got != "DOCSITE_LINK_CHECK_WORKERS" {
		t.Errorf("Unexpected env key %s", got)
	}
}
