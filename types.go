package wad

import (
	"github.com/letsgetlow/wad/internal/format"
	"github.com/letsgetlow/wad/internal/index"
)

// Re-export types from the internal packages for the public API.
type (
	// Kind identifies the archive flavor: base game data or add-on content.
	Kind = format.Kind

	// Header is the parsed 12-byte WAD file header.
	Header = format.Header

	// Lump is a zero-copy view of one named byte range in the archive.
	Lump = format.Lump

	// Node is one entry in the index tree: a Lump or a *Namespace.
	Node = index.Node

	// Namespace is a named grouping of lumps and nested namespaces.
	Namespace = index.Namespace
)

const (
	// KindIWAD marks an internal WAD carrying a complete game's data.
	KindIWAD = format.KindIWAD

	// KindPWAD marks a patch WAD carrying add-on content.
	KindPWAD = format.KindPWAD

	// MapsName is the reserved top-level namespace holding discovered maps.
	MapsName = index.MapsName
)

// IsMapLump reports whether name is one of the reserved per-map lump names
// (THINGS, LINEDEFS, ..., BEHAVIOR).
func IsMapLump(name string) bool { return index.IsMapLump(name) }
