package index

import (
	"fmt"
	"iter"
	"strings"

	"github.com/letsgetlow/wad/internal/format"
)

// TokenKind classifies one directory entry.
type TokenKind int

const (
	// TokenLump is an ordinary named byte blob.
	TokenLump TokenKind = iota

	// TokenNamespaceStart is a zero-length marker ending in _START.
	TokenNamespaceStart

	// TokenNamespaceEnd is a zero-length marker ending in _END.
	TokenNamespaceEnd

	// TokenMapStart is a zero-length marker naming a game map (MAP01, E1M1).
	TokenMapStart
)

// Token is the semantic classification of a single directory entry.
// Lump is only set for TokenLump.
type Token struct {
	Kind TokenKind
	Name string
	Lump format.Lump
}

// UnknownMarkerError is returned for a zero-length entry whose name matches
// neither a map pattern nor a _START/_END suffix.
type UnknownMarkerError struct {
	Name string
}

func (e *UnknownMarkerError) Error() string {
	return fmt.Sprintf("wad: unknown marker type %q", e.Name)
}

// Tokenize classifies each directory entry in order.
//
// Classification is pure and buffers nothing beyond the current entry; the
// token sequence preserves directory order exactly. Errors from the entry
// sequence pass through and end the stream.
func Tokenize(lumps iter.Seq2[format.Lump, error]) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for lump, err := range lumps {
			if err != nil {
				yield(Token{}, err)
				return
			}
			tok, err := classify(lump)
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

func classify(lump format.Lump) (Token, error) {
	name := lump.Name()
	if !lump.IsMarker() {
		return Token{Kind: TokenLump, Name: name, Lump: lump}, nil
	}
	switch {
	case isMapName(name):
		return Token{Kind: TokenMapStart, Name: name}, nil
	case strings.HasSuffix(name, "_START"):
		return Token{Kind: TokenNamespaceStart, Name: name}, nil
	case strings.HasSuffix(name, "_END"):
		return Token{Kind: TokenNamespaceEnd, Name: name}, nil
	default:
		return Token{}, &UnknownMarkerError{Name: name}
	}
}

// isMapName matches the two map marker shapes: MAP followed by two digits
// (Doom II, Heretic) or E digit M digit (Doom).
func isMapName(name string) bool {
	switch len(name) {
	case 5:
		return name[0] == 'M' && name[1] == 'A' && name[2] == 'P' &&
			isDigit(name[3]) && isDigit(name[4])
	case 4:
		return name[0] == 'E' && isDigit(name[1]) && name[2] == 'M' && isDigit(name[3])
	default:
		return false
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
