package wad

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/letsgetlow/wad/internal/format"
	"github.com/letsgetlow/wad/internal/index"
)

// Archive is an immutable, navigable index over one WAD buffer.
//
// The index is built eagerly by New and never changes afterwards, so an
// Archive and every Lump it hands out may be shared between goroutines
// without synchronization. A changed archive on disk requires re-parsing
// into a new Archive.
type Archive struct {
	name   string
	kind   Kind
	data   []byte
	root   *Namespace
	logger *slog.Logger
}

// New parses data and builds the lump index.
//
// name is a caller-supplied label for the archive; it is reported by Name
// and never derived from content. The buffer is retained by the Archive
// and by every Lump resolved from it, and must not be modified afterwards.
// Any malformed input aborts the whole parse; no partial index is returned.
func New(name string, data []byte, opts ...Option) (*Archive, error) {
	a := &Archive{
		name:   name,
		data:   data,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}

	h, err := format.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	dir, err := format.NewDirectory(data, h)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	root, err := index.Build(index.Tokenize(dir.Lumps()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	a.kind = h.Kind
	a.root = root
	a.logger.Debug("indexed archive",
		"name", name,
		"kind", h.Kind.String(),
		"lumps", h.LumpCount,
	)
	return a, nil
}

// Open reads the file at path and builds its index. The archive name is the
// file's base name.
func Open(path string, opts ...Option) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return New(filepath.Base(path), data, opts...)
}

// Name returns the caller-supplied archive label.
func (a *Archive) Name() string { return a.name }

// Kind returns the archive flavor, KindIWAD or KindPWAD.
func (a *Archive) Kind() Kind { return a.kind }

// Root returns the root namespace of the index.
func (a *Archive) Root() *Namespace { return a.root }

// Maps returns the reserved MAPS namespace holding one child namespace per
// discovered map. It is empty when the archive contains no map markers.
func (a *Archive) Maps() *Namespace {
	maps, _ := a.root.Namespace(MapsName)
	return maps
}

// Lookup resolves a lump by namespace path and leaf name.
//
// Path segments and the leaf compare case-insensitively. ok is false when
// any segment or the leaf is absent, or when a segment resolves to a lump
// instead of a namespace.
func (a *Archive) Lookup(path []string, name string) (Lump, bool) {
	ns := a.root
	for _, seg := range path {
		next, ok := ns.Namespace(strings.ToUpper(seg))
		if !ok {
			return Lump{}, false
		}
		ns = next
	}
	return ns.Lump(strings.ToUpper(name))
}
