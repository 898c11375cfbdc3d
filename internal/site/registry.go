package site

import (
	"os"
	"path/filepath"

	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/htmltree"
	"github.com/user/docsite/internal/logging"
)

// Registry parses skeletons on first use and keeps them for one build.
type Registry struct {
	dir       string
	logger    *logging.Logger
	skeletons map[string]*htmltree.Tree
}

// NewRegistry creates a registry reading <dir>/<name>.html.
func NewRegistry(dir string, logger *logging.Logger) *Registry {
	return &Registry{
		dir:       dir,
		logger:    logger,
		skeletons: make(map[string]*htmltree.Tree),
	}
}

// Skeleton returns the parsed skeleton called name.
func (r *Registry) Skeleton(name string) (*htmltree.Tree, error) {
	if tree, ok := r.skeletons[name]; ok {
		return tree, nil
	}

	path := filepath.Join(r.dir, name+".html")
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("Reading skeleton", path, err)
	}
	defer f.Close()

	tree, err := htmltree.ParseSkeleton(name+".html", f)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Parsed skeleton",
		logging.String("skeleton", name),
		logging.Strings("placeholders", tree.Placeholders()),
		logging.Int("heading_level", tree.HeadingLevel()))

	r.skeletons[name] = tree
	return tree, nil
}

// Instance is one page's use of a skeleton. The skeleton tree is shared;
// the identifier set and bindings belong to the page.
type Instance struct {
	Skeleton     *htmltree.Tree
	IDs          htmltree.IDSet
	Bindings     *htmltree.Bindings
	HeadingLevel int
}

// Instantiate returns a fresh instance of the skeleton called name.
func (r *Registry) Instantiate(name string) (*Instance, error) {
	skeleton, err := r.Skeleton(name)
	if err != nil {
		return nil, err
	}
	return &Instance{
		Skeleton:     skeleton,
		IDs:          skeleton.IDs().Clone(),
		Bindings:     skeleton.NewBindings(),
		HeadingLevel: skeleton.HeadingLevel(),
	}, nil
}

// Render renders the instance with its current bindings.
func (i *Instance) Render() (string, error) {
	return htmltree.Render(i.Skeleton, i.Bindings)
}
