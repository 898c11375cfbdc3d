package site

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/docsite/internal/errors"
)

// Section is a group of pages sharing a skeleton and a table of contents.
// A section without a name is built but left out of the navigation bar.
type Section struct {
	Name     string   `yaml:"name"`
	Template string   `yaml:"template"`
	Index    string   `yaml:"index"`
	Pages    []string `yaml:"pages"`
}

// HasContents reports whether the section has sub-pages and therefore a
// table of contents.
func (s Section) HasContents() bool {
	return len(s.Pages) > 0
}

// Manifest lists the sections of the site in navigation order.
type Manifest struct {
	Sections []Section `yaml:"sections"`
}

// DefaultManifest returns the layout used when no manifest file exists.
func DefaultManifest() *Manifest {
	return &Manifest{
		Sections: []Section{
			{Name: "Home", Template: "page", Index: "index"},
			{
				Name:     "Documentation",
				Template: "documentation",
				Index:    "documentation",
				Pages: []string{
					"getting-started",
					"running-tests",
					"writing-tests",
					"test-fixtures",
					"assertions",
				},
			},
			{Name: "Contributing", Template: "page", Index: "contributing"},
			{Template: "page", Index: "sample-code"},
		},
	}
}

// LoadManifest reads a manifest from path, falling back to DefaultManifest
// when the file does not exist.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultManifest(), nil
	}
	if err != nil {
		return nil, errors.NewIOError("Reading manifest", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.NewConfigFileError(path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Locate(err, path, 0)
	}
	return &m, nil
}

// Validate checks that every section names a skeleton and an index page and
// that page names are unique across the site.
func (m *Manifest) Validate() error {
	if len(m.Sections) == 0 {
		return errors.NewStructuralViolationError("Manifest has no sections", nil)
	}

	seen := make(map[string]bool)
	for i, s := range m.Sections {
		if s.Template == "" || s.Index == "" {
			return errors.NewStructuralViolationError(
				fmt.Sprintf("Section %d needs a template and an index page", i+1),
				map[string]interface{}{"section": s.Name})
		}
		for _, page := range append([]string{s.Index}, s.Pages...) {
			if seen[page] {
				return errors.NewStructuralViolationError(
					fmt.Sprintf("Page %s exists multiple times", page),
					map[string]interface{}{"page": page, "section": s.Name})
			}
			seen[page] = true
		}
	}
	return nil
}

// PageCount returns the number of pages the manifest produces.
func (m *Manifest) PageCount() int {
	n := 0
	for _, s := range m.Sections {
		n += 1 + len(s.Pages)
	}
	return n
}
