package htmltree

import (
	"github.com/user/docsite/internal/errors"
)

// Bindings holds the content bound to the placeholders of one skeleton. Its
// key set is fixed when it is created from the skeleton: binding or looking up
// any other name is rejected.
type Bindings struct {
	names []string
	index map[string]int
	slots []*Tree
}

// NewBindings returns empty bindings over the placeholders declared by t.
func (t *Tree) NewBindings() *Bindings {
	b := &Bindings{
		names: t.Placeholders(),
		index: make(map[string]int, len(t.placeholders)),
		slots: make([]*Tree, len(t.placeholders)),
	}
	for i, name := range b.names {
		b.index[name] = i
	}
	return b
}

// Names returns the declared placeholder names.
func (b *Bindings) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Has reports whether name is a declared placeholder.
func (b *Bindings) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Bind sets the content for a declared placeholder, replacing any earlier
// binding.
func (b *Bindings) Bind(name string, content *Tree) error {
	i, ok := b.index[name]
	if !ok {
		return errors.NewStructuralViolationError(
			"Skeleton has no placeholder named "+name,
			map[string]interface{}{"placeholder": name, "declared": b.names})
	}
	b.slots[i] = content
	return nil
}

// Lookup returns the content bound to name.
func (b *Bindings) Lookup(name string) (*Tree, bool) {
	if b == nil {
		return nil, false
	}
	i, ok := b.index[name]
	if !ok || b.slots[i] == nil {
		return nil, false
	}
	return b.slots[i], true
}
