package format

// Lump is a zero-copy view of one named byte range inside an archive buffer.
//
// The byte slice returned by Bytes aliases the archive buffer and must be
// treated as immutable. The view stays valid for the lifetime of the buffer
// it was built from; lump payloads are never copied.
type Lump struct {
	name  string
	start int
	end   int
	data  []byte
}

// NewLump builds a view over data, which must be the buffer sub-slice
// covering [start, end).
func NewLump(name string, start, end int, data []byte) Lump {
	return Lump{name: name, start: start, end: end, data: data}
}

// Name returns the lump name, uppercased, at most eight ASCII bytes.
func (l Lump) Name() string { return l.name }

// Start returns the byte offset of the lump payload in the archive buffer.
func (l Lump) Start() int { return l.start }

// End returns the byte offset one past the lump payload.
func (l Lump) End() int { return l.end }

// Size returns the payload length in bytes.
func (l Lump) Size() int { return l.end - l.start }

// IsMarker reports whether the lump is a zero-length boundary marker.
func (l Lump) IsMarker() bool { return l.start == l.end }

// Bytes returns the lump payload.
//
// The slice aliases the archive buffer; callers must not modify it.
func (l Lump) Bytes() []byte { return l.data }
