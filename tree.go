package wad

import (
	"fmt"
	"io"
	"strings"
)

// WriteTree writes a human-readable dump of the namespace tree to w.
// Children print in lexical name order, namespaces suffixed with a slash
// and lumps with their byte range.
func WriteTree(w io.Writer, ns *Namespace) error {
	return writeTree(w, ns, 0)
}

func writeTree(w io.Writer, ns *Namespace, depth int) error {
	indent := strings.Repeat("  ", depth)
	for child := range ns.Children() {
		switch n := child.(type) {
		case *Namespace:
			if _, err := fmt.Fprintf(w, "%s%s/\n", indent, n.Name()); err != nil {
				return err
			}
			if err := writeTree(w, n, depth+1); err != nil {
				return err
			}
		case Lump:
			if _, err := fmt.Fprintf(w, "%s%s [%d, %d)\n", indent, n.Name(), n.Start(), n.End()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tree returns the WriteTree dump of the archive's root namespace.
func (a *Archive) Tree() string {
	var sb strings.Builder
	_ = WriteTree(&sb, a.root) // strings.Builder writes never fail
	return sb.String()
}
