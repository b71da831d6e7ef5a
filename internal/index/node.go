package index

import (
	"iter"
	"slices"

	"github.com/letsgetlow/wad/internal/format"
)

// MapsName is the reserved top-level namespace holding one child namespace
// per discovered game map.
const MapsName = "MAPS"

// Node is one entry in the lump index tree: either a format.Lump leaf or a
// *Namespace.
type Node interface {
	// Name returns the node's key within its parent namespace.
	Name() string
}

// Namespace is a named grouping of lumps and nested namespaces.
//
// A namespace holds at most one child per name; inserting a second child
// under the same name replaces the first. Namespaces are immutable once the
// index they belong to has been built.
type Namespace struct {
	name     string
	children map[string]Node
}

// NewNamespace returns an empty namespace. It is exported for the builder
// and for tests; consumers receive namespaces from a built index.
func NewNamespace(name string) *Namespace {
	return &Namespace{name: name, children: make(map[string]Node)}
}

// Name returns the namespace name with any _START suffix already stripped.
func (ns *Namespace) Name() string { return ns.name }

// Len returns the number of direct children.
func (ns *Namespace) Len() int { return len(ns.children) }

// Child returns the direct child with the given (uppercase) name.
func (ns *Namespace) Child(name string) (Node, bool) {
	n, ok := ns.children[name]
	return n, ok
}

// Lump returns the direct child lump with the given name. ok is false when
// the name is absent or names a nested namespace.
func (ns *Namespace) Lump(name string) (format.Lump, bool) {
	l, ok := ns.children[name].(format.Lump)
	return l, ok
}

// Namespace returns the direct child namespace with the given name. ok is
// false when the name is absent or names a lump.
func (ns *Namespace) Namespace(name string) (*Namespace, bool) {
	c, ok := ns.children[name].(*Namespace)
	return c, ok
}

// Children iterates the direct children in lexical name order.
func (ns *Namespace) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, name := range ns.sortedNames() {
			if !yield(ns.children[name]) {
				return
			}
		}
	}
}

// Lumps iterates the direct child lumps in lexical name order, skipping
// nested namespaces.
func (ns *Namespace) Lumps() iter.Seq[format.Lump] {
	return func(yield func(format.Lump) bool) {
		for _, name := range ns.sortedNames() {
			if l, ok := ns.children[name].(format.Lump); ok {
				if !yield(l) {
					return
				}
			}
		}
	}
}

// Namespaces iterates the direct child namespaces in lexical name order.
func (ns *Namespace) Namespaces() iter.Seq[*Namespace] {
	return func(yield func(*Namespace) bool) {
		for _, name := range ns.sortedNames() {
			if c, ok := ns.children[name].(*Namespace); ok {
				if !yield(c) {
					return
				}
			}
		}
	}
}

func (ns *Namespace) sortedNames() []string {
	names := make([]string, 0, len(ns.children))
	for name := range ns.children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// put inserts a child, replacing any existing child with the same name.
// Name collisions within one level resolve last-write-wins: the directory
// is ordered, and later entries shadow earlier ones the way the engine's
// own linear lump search would.
func (ns *Namespace) put(n Node) {
	ns.children[n.Name()] = n
}
