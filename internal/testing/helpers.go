package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTempSite writes files below a fresh temporary site root and returns
// the root. Keys are slash-separated paths relative to the root.
func CreateTempSite(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	WriteFiles(t, root, files)
	return root
}

// WriteFiles writes files below dir, creating parent directories
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for relPath, content := range files {
		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))

		parentDir := filepath.Dir(fullPath)
		if err := os.MkdirAll(parentDir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", parentDir, err)
		}

		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file %s: %v", fullPath, err)
		}
	}
}

// IsolateHome points HOME at an empty directory so no global config leaks
// into a test
func IsolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

// AssertFileExists checks if a file exists at the given path
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist at the given path
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains the expected content
func AssertFileContains(t *testing.T, path, expected string) {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), expected) {
		t.Errorf("File %s does not contain expected content.\nExpected substring: %s\nActual content:\n%s",
			path, expected, string(content))
	}
}
