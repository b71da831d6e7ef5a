package format

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"iter"
	"strings"
)

// OutOfBoundsError is returned when a directory entry declares a payload
// range that falls outside the archive buffer.
type OutOfBoundsError struct {
	Name       string
	Start, End int
	BufferLen  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("wad: lump %s out of bounds: [%d, %d) in %d-byte buffer", e.Name, e.Start, e.End, e.BufferLen)
}

// Directory reads the archive's trailing entry table.
//
// The table is a flat list of fixed 16-byte entries starting at the header's
// directory offset. Directory does not retain any parse state; each call to
// Lumps starts over from the first entry.
type Directory struct {
	data  []byte
	start int
	end   int
}

// NewDirectory validates the directory table bounds declared by the header.
func NewDirectory(data []byte, h Header) (*Directory, error) {
	if h.LumpCount < 0 || h.DirOffset < 0 {
		return nil, fmt.Errorf("%w: negative directory bounds (%d lumps at %d)", ErrBufferTooSmall, h.LumpCount, h.DirOffset)
	}
	end := h.DirOffset + h.LumpCount*EntrySize
	if end > len(data) {
		return nil, fmt.Errorf("%w: directory ends at %d, buffer is %d bytes", ErrBufferTooSmall, end, len(data))
	}
	return &Directory{data: data, start: h.DirOffset, end: end}, nil
}

// Lumps returns a forward-only sequence of entry views in directory order.
//
// Each entry is decoded as a little-endian signed offset and length followed
// by an 8-byte NUL-padded name, which is truncated at the first NUL and
// uppercased. Bounds are validated eagerly: an entry whose payload range
// leaves the buffer yields an *OutOfBoundsError and ends the sequence, so a
// successfully consumed sequence only ever hands out dereferenceable views.
func (d *Directory) Lumps() iter.Seq2[Lump, error] {
	return func(yield func(Lump, error) bool) {
		for pos := d.start; pos < d.end; pos += EntrySize {
			entry := d.data[pos : pos+EntrySize]
			off := int(int32(binary.LittleEndian.Uint32(entry[0:4])))
			length := int(int32(binary.LittleEndian.Uint32(entry[4:8])))
			name := decodeName(entry[8:16])

			if length == 0 {
				// Markers carry no payload; their recorded offset is
				// conventionally meaningless and is not range checked.
				if !yield(NewLump(name, off, off, nil), nil) {
					return
				}
				continue
			}
			if length < 0 || off < 0 || off+length > len(d.data) {
				yield(Lump{}, &OutOfBoundsError{Name: name, Start: off, End: off + length, BufferLen: len(d.data)})
				return
			}
			if !yield(NewLump(name, off, off+length, d.data[off:off+length]), nil) {
				return
			}
		}
	}
}

// decodeName truncates an 8-byte name field at the first NUL and folds it to
// uppercase. Lump names compare case-insensitively on the uppercased form.
func decodeName(field []byte) string {
	i := bytes.IndexByte(field, 0)
	if i == -1 {
		i = len(field)
	}
	return strings.ToUpper(string(field[:i]))
}
