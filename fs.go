package wad

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"strings"
	"time"
)

// Interface compliance.
var (
	_ fs.FS         = (*Archive)(nil)
	_ fs.StatFS     = (*Archive)(nil)
	_ fs.ReadFileFS = (*Archive)(nil)
	_ fs.ReadDirFS  = (*Archive)(nil)
)

// Open implements fs.FS over the namespace tree. Namespaces open as
// directories and lumps open as read-only files. Path elements compare
// case-insensitively; "." opens the root namespace.
func (a *Archive) Open(name string) (fs.File, error) {
	node, err := a.resolve("open", name)
	if err != nil {
		return nil, err
	}
	switch n := node.(type) {
	case *Namespace:
		return &namespaceDir{ns: n, path: name, info: dirInfo(n)}, nil
	case Lump:
		return &lumpFile{Reader: bytes.NewReader(n.Bytes()), info: lumpInfo(n)}, nil
	default:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
}

// ReadFile implements fs.ReadFileFS.
//
// Unlike Lump.Bytes, the returned slice is a copy the caller may modify.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	node, err := a.resolve("readfile", name)
	if err != nil {
		return nil, err
	}
	lump, ok := node.(Lump)
	if !ok {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: errIsDirectory}
	}
	return bytes.Clone(lump.Bytes()), nil
}

// ReadDir implements fs.ReadDirFS, listing a namespace's direct children in
// lexical name order.
func (a *Archive) ReadDir(name string) ([]fs.DirEntry, error) {
	node, err := a.resolve("readdir", name)
	if err != nil {
		return nil, err
	}
	ns, ok := node.(*Namespace)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errNotDirectory}
	}
	return dirEntries(ns), nil
}

// Stat implements fs.StatFS.
func (a *Archive) Stat(name string) (fs.FileInfo, error) {
	node, err := a.resolve("stat", name)
	if err != nil {
		return nil, err
	}
	switch n := node.(type) {
	case *Namespace:
		return dirInfo(n), nil
	case Lump:
		return lumpInfo(n), nil
	default:
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
}

var (
	errIsDirectory  = errors.New("is a directory")
	errNotDirectory = errors.New("not a directory")
)

func (a *Archive) resolve(op, name string) (Node, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return a.root, nil
	}
	var node Node = a.root
	for _, seg := range strings.Split(name, "/") {
		ns, ok := node.(*Namespace)
		if !ok {
			return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
		}
		node, ok = ns.Child(strings.ToUpper(seg))
		if !ok {
			return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
		}
	}
	return node, nil
}

// lumpFile serves one lump's payload through the fs.File interface.
// The underlying reader aliases the archive buffer.
type lumpFile struct {
	*bytes.Reader
	info fileInfo
}

func (f *lumpFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *lumpFile) Close() error               { return nil }

// namespaceDir serves a namespace as a directory.
type namespaceDir struct {
	ns      *Namespace
	path    string
	info    fileInfo
	entries []fs.DirEntry
	offset  int
}

func (d *namespaceDir) Stat() (fs.FileInfo, error) { return d.info, nil }
func (d *namespaceDir) Close() error               { return nil }

func (d *namespaceDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.path, Err: errIsDirectory}
}

func (d *namespaceDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if d.entries == nil {
		d.entries = dirEntries(d.ns)
	}
	remaining := len(d.entries) - d.offset
	if n <= 0 {
		entries := d.entries[d.offset:]
		d.offset = len(d.entries)
		return entries, nil
	}
	if remaining == 0 {
		return nil, io.EOF
	}
	if n > remaining {
		n = remaining
	}
	entries := d.entries[d.offset : d.offset+n]
	d.offset += n
	return entries, nil
}

func dirEntries(ns *Namespace) []fs.DirEntry {
	entries := make([]fs.DirEntry, 0, ns.Len())
	for child := range ns.Children() {
		switch n := child.(type) {
		case *Namespace:
			entries = append(entries, fs.FileInfoToDirEntry(dirInfo(n)))
		case Lump:
			entries = append(entries, fs.FileInfoToDirEntry(lumpInfo(n)))
		}
	}
	return entries
}

// fileInfo implements fs.FileInfo for lumps and namespaces. WADs carry no
// timestamps or permissions, so ModTime is the zero time and modes are
// fixed at 0444 for lumps and 0555 for namespaces.
type fileInfo struct {
	name string
	size int64
	dir  bool
}

func lumpInfo(l Lump) fileInfo {
	return fileInfo{name: l.Name(), size: int64(l.Size())}
}

func dirInfo(ns *Namespace) fileInfo {
	name := ns.Name()
	if name == "" {
		name = "."
	}
	return fileInfo{name: name, dir: true}
}

func (fi fileInfo) Name() string { return fi.name }
func (fi fileInfo) Size() int64  { return fi.size }
func (fi fileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return fi.dir }
func (fi fileInfo) Sys() any           { return nil }
