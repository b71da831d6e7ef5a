package wad

import (
	"github.com/letsgetlow/wad/internal/format"
	"github.com/letsgetlow/wad/internal/index"
)

// Sentinel errors re-exported from internal/format.
var (
	// ErrBufferTooSmall is returned when the buffer cannot hold the header
	// or the declared directory table.
	ErrBufferTooSmall = format.ErrBufferTooSmall

	// ErrInvalidMagic is returned when the first four bytes are neither
	// "IWAD" nor "PWAD".
	ErrInvalidMagic = format.ErrInvalidMagic
)

// Typed errors re-exported from the internal packages. All are returned
// from New/Open; match them with errors.As.
type (
	// OutOfBoundsError reports a directory entry whose payload range falls
	// outside the archive buffer.
	OutOfBoundsError = format.OutOfBoundsError

	// UnknownMarkerError reports a zero-length entry whose name matches
	// neither a map pattern nor a _START/_END suffix.
	UnknownMarkerError = index.UnknownMarkerError

	// MismatchedEndError reports an end marker closing a namespace other
	// than the currently open one.
	MismatchedEndError = index.MismatchedEndError

	// DanglingEndError reports an end marker with no open namespace.
	DanglingEndError = index.DanglingEndError

	// UnterminatedNamespaceError reports a directory that ended with a
	// namespace still open.
	UnterminatedNamespaceError = index.UnterminatedNamespaceError
)
