package wad

import (
	"strings"

	"golang.org/x/sync/errgroup"
)

// Chain is a prioritized list of archives, typically one IWAD followed by
// any number of PWADs. Lookups search the archives back to front, so a lump
// in a later archive shadows the same path in an earlier one. This is the
// engine's own add-on model.
//
// A Chain holds already-built archives and is itself immutable and safe for
// concurrent readers.
type Chain struct {
	archives []*Archive
}

// NewChain builds a chain from archives in order of increasing priority.
func NewChain(archives ...*Archive) *Chain {
	return &Chain{archives: archives}
}

// OpenChain opens and indexes the archives at paths in order of increasing
// priority. The archives are parsed concurrently; the first failure aborts
// the whole chain.
func OpenChain(paths []string, opts ...Option) (*Chain, error) {
	archives := make([]*Archive, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			a, err := Open(path, opts...)
			if err != nil {
				return err
			}
			archives[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Chain{archives: archives}, nil
}

// Len returns the number of archives in the chain.
func (c *Chain) Len() int { return len(c.archives) }

// Archives returns the chain's archives in priority order, lowest first.
func (c *Chain) Archives() []*Archive { return c.archives }

// Lookup resolves a lump by namespace path and leaf name, searching the
// highest-priority archive first.
func (c *Chain) Lookup(path []string, name string) (Lump, bool) {
	for i := len(c.archives) - 1; i >= 0; i-- {
		if lump, ok := c.archives[i].Lookup(path, name); ok {
			return lump, true
		}
	}
	return Lump{}, false
}

// Map returns the highest-priority version of the named map's namespace.
func (c *Chain) Map(name string) (*Namespace, bool) {
	name = strings.ToUpper(name)
	for i := len(c.archives) - 1; i >= 0; i-- {
		if m, ok := c.archives[i].Maps().Namespace(name); ok {
			return m, true
		}
	}
	return nil, false
}
