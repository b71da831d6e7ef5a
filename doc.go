// Package wad builds a navigable index over Doom-engine WAD archives.
//
// A WAD file is a flat container of named byte blobs ("lumps") described by
// a trailing directory table. This package parses the header and directory
// in a single forward pass and reconstructs the structure the flat listing
// implies: namespaces delimited by paired *_START/*_END marker lumps, and
// per-map groupings introduced by MAP01- or E1M1-style markers. The result
// is an immutable tree of zero-copy views into the original buffer.
//
// Open an archive and resolve lumps by namespace path:
//
//	archive, err := wad.Open("doom.wad")
//	if err != nil {
//		log.Fatal(err)
//	}
//	lump, ok := archive.Lookup([]string{"P", "P1"}, "W13_A")
//
// Archive also implements fs.FS over the namespace tree, so standard
// library consumers can walk and read lumps without knowing the format.
//
// The package only interprets lump names, offsets and lengths. Decoding
// lump content (graphics, sounds, map geometry) is left to consumers of
// the index.
package wad
