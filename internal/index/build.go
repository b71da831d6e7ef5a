package index

import (
	"fmt"
	"iter"
	"strings"
)

// Reserved map lump names. Membership in this set is the only criterion for
// a lump belonging to the currently open map run. BEHAVIOR is the
// Hexen/Heretic extension; carrying it is harmless for plain Doom WADs.
var mapLumps = map[string]struct{}{
	"THINGS":   {},
	"LINEDEFS": {},
	"SIDEDEFS": {},
	"VERTEXES": {},
	"SECTORS":  {},
	"SEGS":     {},
	"SSECTORS": {},
	"NODES":    {},
	"REJECT":   {},
	"BLOCKMAP": {},
	"BEHAVIOR": {},
}

// IsMapLump reports whether name is one of the reserved per-map lump names.
func IsMapLump(name string) bool {
	_, ok := mapLumps[name]
	return ok
}

// MismatchedEndError is returned when an end marker closes a namespace other
// than the one currently open.
type MismatchedEndError struct {
	Expected string // name of the open namespace
	Found    string // stripped name carried by the end marker
}

func (e *MismatchedEndError) Error() string {
	return fmt.Sprintf("wad: mismatched end marker: expected %q, found %q", e.Expected, e.Found)
}

// DanglingEndError is returned when an end marker appears with no namespace
// open.
type DanglingEndError struct {
	Name string
}

func (e *DanglingEndError) Error() string {
	return fmt.Sprintf("wad: dangling end marker %q", e.Name)
}

// UnterminatedNamespaceError is returned when the directory ends while a
// namespace is still open. A truncated archive fails rather than silently
// closing its open frames.
type UnterminatedNamespaceError struct {
	Name string
}

func (e *UnterminatedNamespaceError) Error() string {
	return fmt.Sprintf("wad: unterminated namespace %q", e.Name)
}

// Build consumes the token sequence and produces the root namespace.
//
// The flat, ordered token stream is folded into a tree in a single pass
// using an explicit stack of open namespace frames, so nesting depth is
// bounded by the input and not by the call stack. A map start marker opens
// a map run: consecutive recognized map lumps are collected under the
// reserved MAPS namespace, and the first token of any other kind closes the
// run and is processed by the enclosing frame instead. The root namespace
// always contains a MAPS child, empty when no map markers were present.
func Build(tokens iter.Seq2[Token, error]) (*Namespace, error) {
	root := NewNamespace("")
	maps := NewNamespace(MapsName)
	stack := []*Namespace{root}

	// Non-nil while consuming a map run. Map runs never nest and are never
	// wrapped in _START/_END.
	var openMap *Namespace

	for tok, err := range tokens {
		if err != nil {
			return nil, err
		}

		if openMap != nil {
			if tok.Kind == TokenLump && IsMapLump(tok.Name) {
				openMap.put(tok.Lump)
				continue
			}
			// First non-map-lump token ends the run and falls through to
			// the enclosing frame.
			openMap = nil
		}

		switch tok.Kind {
		case TokenLump:
			stack[len(stack)-1].put(tok.Lump)

		case TokenMapStart:
			openMap = NewNamespace(tok.Name)
			maps.put(openMap)

		case TokenNamespaceStart:
			stack = append(stack, NewNamespace(strings.TrimSuffix(tok.Name, "_START")))

		case TokenNamespaceEnd:
			name := strings.TrimSuffix(tok.Name, "_END")
			if len(stack) == 1 {
				return nil, &DanglingEndError{Name: tok.Name}
			}
			frame := stack[len(stack)-1]
			if frame.Name() != name {
				return nil, &MismatchedEndError{Expected: frame.Name(), Found: name}
			}
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].put(frame)
		}
	}

	if len(stack) > 1 {
		return nil, &UnterminatedNamespaceError{Name: stack[len(stack)-1].Name()}
	}

	// Inserted after all plain lumps so a stray lump named MAPS cannot
	// shadow the reserved namespace.
	root.put(maps)
	return root, nil
}
