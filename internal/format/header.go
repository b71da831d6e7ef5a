package format

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// On-disk sizes of the fixed WAD structures.
const (
	HeaderSize = 12
	EntrySize  = 16
	NameSize   = 8
)

// Kind identifies the archive flavor: base game data or add-on content.
type Kind int

const (
	// KindIWAD marks an internal WAD carrying a complete game's data.
	KindIWAD Kind = iota

	// KindPWAD marks a patch WAD carrying add-on content layered over an IWAD.
	KindPWAD
)

func (k Kind) String() string {
	switch k {
	case KindIWAD:
		return "IWAD"
	case KindPWAD:
		return "PWAD"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinel errors for header and directory parsing.
var (
	// ErrBufferTooSmall is returned when the buffer cannot hold the header
	// or the declared directory table.
	ErrBufferTooSmall = errors.New("wad: buffer too small")

	// ErrInvalidMagic is returned when the first four bytes are neither
	// "IWAD" nor "PWAD".
	ErrInvalidMagic = errors.New("wad: invalid magic")
)

// Header is the parsed 12-byte WAD file header.
type Header struct {
	Kind      Kind
	LumpCount int
	DirOffset int
}

// ParseHeader reads the archive header from the first 12 bytes of data.
//
// The magic is a 4-byte ASCII tag; lump count and directory offset are
// little-endian signed 32-bit integers.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrBufferTooSmall, len(data), HeaderSize)
	}

	var kind Kind
	switch string(data[0:4]) {
	case "IWAD":
		kind = KindIWAD
	case "PWAD":
		kind = KindPWAD
	default:
		return Header{}, fmt.Errorf("%w: %q", ErrInvalidMagic, data[0:4])
	}

	return Header{
		Kind:      kind,
		LumpCount: int(int32(binary.LittleEndian.Uint32(data[4:8]))),
		DirOffset: int(int32(binary.LittleEndian.Uint32(data[8:12]))),
	}, nil
}
