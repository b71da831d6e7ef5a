package wad

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLump describes one directory entry for buildWAD.
type testLump struct {
	name   string
	data   string
	marker bool
}

func lump(name, data string) testLump { return testLump{name: name, data: data} }
func marker(name string) testLump     { return testLump{name: name, marker: true} }

// buildWAD assembles a syntactically valid archive: header, payloads in
// entry order, directory table at the end.
func buildWAD(magic string, lumps ...testLump) []byte {
	var payloads bytes.Buffer
	type placed struct {
		off, size int
		name      string
	}
	entries := make([]placed, 0, len(lumps))

	base := 12
	for _, l := range lumps {
		if l.marker {
			entries = append(entries, placed{off: base + payloads.Len(), name: l.name})
			continue
		}
		entries = append(entries, placed{off: base + payloads.Len(), size: len(l.data), name: l.name})
		payloads.WriteString(l.data)
	}

	dirOffset := base + payloads.Len()
	buf := make([]byte, 0, dirOffset+16*len(entries))
	buf = append(buf, magic...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(entries)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dirOffset))
	buf = append(buf, payloads.Bytes()...)
	for _, e := range entries {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(e.off))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(e.size))
		var name [8]byte
		copy(name[:], e.name)
		buf = append(buf, name[:]...)
	}
	return buf
}

func TestNewIndexesFlatArchive(t *testing.T) {
	t.Parallel()

	// Bit-exact layout: header "IWAD" || LE32(2) || LE32(12), directory at
	// offset 12, payloads after the two 16-byte entries.
	var buf []byte
	buf = append(buf, "IWAD"...)
	buf = binary.LittleEndian.AppendUint32(buf, 2)
	buf = binary.LittleEndian.AppendUint32(buf, 12)
	buf = binary.LittleEndian.AppendUint32(buf, 44)
	buf = binary.LittleEndian.AppendUint32(buf, 4)
	buf = append(buf, "LUMP1\x00\x00\x00"...)
	buf = binary.LittleEndian.AppendUint32(buf, 48)
	buf = binary.LittleEndian.AppendUint32(buf, 3)
	buf = append(buf, "LUMP2\x00\x00\x00"...)
	buf = append(buf, "AAAABBB"...)
	require.Len(t, buf, 51)

	a, err := New("test.wad", buf)
	require.NoError(t, err)
	assert.Equal(t, "test.wad", a.Name())
	assert.Equal(t, KindIWAD, a.Kind())

	l1, ok := a.Lookup(nil, "LUMP1")
	require.True(t, ok)
	assert.Equal(t, 44, l1.Start())
	assert.Equal(t, 48, l1.End())
	assert.Equal(t, []byte("AAAA"), l1.Bytes())

	l2, ok := a.Lookup(nil, "LUMP2")
	require.True(t, ok)
	assert.Equal(t, 48, l2.Start())
	assert.Equal(t, 51, l2.End())
	assert.Equal(t, []byte("BBB"), l2.Bytes())
}

func TestLookupThroughNamespaces(t *testing.T) {
	t.Parallel()

	a, err := New("t", buildWAD("PWAD",
		marker("P_START"),
		marker("P1_START"),
		lump("W13_A", "patchdata"),
		marker("P1_END"),
		marker("P_END"),
		lump("DSPISTOL", "pcm"),
	))
	require.NoError(t, err)
	assert.Equal(t, KindPWAD, a.Kind())

	l, ok := a.Lookup([]string{"P", "P1"}, "W13_A")
	require.True(t, ok)
	assert.Equal(t, []byte("patchdata"), l.Bytes())

	// Case-insensitive on every segment.
	_, ok = a.Lookup([]string{"p", "p1"}, "w13_a")
	assert.True(t, ok)

	_, ok = a.Lookup(nil, "DSPISTOL")
	assert.True(t, ok)

	_, ok = a.Lookup([]string{"P", "P1"}, "MISSING")
	assert.False(t, ok)
	_, ok = a.Lookup([]string{"P", "NOPE"}, "W13_A")
	assert.False(t, ok)

	// A path segment resolving to a lump is not a namespace.
	_, ok = a.Lookup([]string{"DSPISTOL"}, "ANY")
	assert.False(t, ok)
}

func TestMaps(t *testing.T) {
	t.Parallel()

	a, err := New("t", buildWAD("IWAD",
		marker("E1M1"),
		lump("THINGS", "tt"),
		lump("LINEDEFS", "ll"),
		lump("SND", "ss"),
	))
	require.NoError(t, err)

	maps := a.Maps()
	require.NotNil(t, maps)
	assert.Equal(t, 1, maps.Len())

	m, ok := maps.Namespace("E1M1")
	require.True(t, ok)
	_, ok = m.Lump("THINGS")
	assert.True(t, ok)
	_, ok = m.Lump("SND")
	assert.False(t, ok)

	l, ok := a.Lookup([]string{"MAPS", "E1M1"}, "LINEDEFS")
	require.True(t, ok)
	assert.Equal(t, []byte("ll"), l.Bytes())

	_, ok = a.Lookup(nil, "SND")
	assert.True(t, ok)
}

func TestMapsEmptyWithoutMarkers(t *testing.T) {
	t.Parallel()

	a, err := New("t", buildWAD("IWAD", lump("LUMP1", "x")))
	require.NoError(t, err)
	require.NotNil(t, a.Maps())
	assert.Equal(t, 0, a.Maps().Len())
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  []byte
		check func(t *testing.T, err error)
	}{
		{
			name: "invalid magic",
			data: buildWAD("WAD2", lump("LUMP1", "x")),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrInvalidMagic)
			},
		},
		{
			name: "short buffer",
			data: []byte("IWAD"),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrBufferTooSmall)
			},
		},
		{
			name: "directory past buffer",
			data: func() []byte {
				b := buildWAD("IWAD", lump("LUMP1", "x"))
				return b[:len(b)-8]
			}(),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrBufferTooSmall)
			},
		},
		{
			name: "unknown marker",
			data: buildWAD("IWAD", marker("WEIRD")),
			check: func(t *testing.T, err error) {
				var unknown *UnknownMarkerError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, "WEIRD", unknown.Name)
			},
		},
		{
			name: "mismatched end marker",
			data: buildWAD("IWAD", marker("X_START"), marker("Y_END")),
			check: func(t *testing.T, err error) {
				var mismatch *MismatchedEndError
				require.ErrorAs(t, err, &mismatch)
				assert.Equal(t, "X", mismatch.Expected)
				assert.Equal(t, "Y", mismatch.Found)
			},
		},
		{
			name: "dangling end marker",
			data: buildWAD("IWAD", marker("Y_END")),
			check: func(t *testing.T, err error) {
				var dangling *DanglingEndError
				require.ErrorAs(t, err, &dangling)
				assert.Equal(t, "Y_END", dangling.Name)
			},
		},
		{
			name: "unterminated namespace",
			data: buildWAD("IWAD", marker("S_START"), lump("SPR1", "x")),
			check: func(t *testing.T, err error) {
				var open *UnterminatedNamespaceError
				require.ErrorAs(t, err, &open)
				assert.Equal(t, "S", open.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := New("bad.wad", tt.data)
			assert.Nil(t, a, "no partial index on failure")
			tt.check(t, err)
		})
	}
}

func TestNewOutOfBoundsLump(t *testing.T) {
	t.Parallel()

	// Hand-build a directory entry whose payload range leaves the buffer.
	var buf []byte
	buf = append(buf, "IWAD"...)
	buf = binary.LittleEndian.AppendUint32(buf, 1)
	buf = binary.LittleEndian.AppendUint32(buf, 12)
	buf = binary.LittleEndian.AppendUint32(buf, 28)
	buf = binary.LittleEndian.AppendUint32(buf, 1000)
	buf = append(buf, "HUGE\x00\x00\x00\x00"...)

	a, err := New("bad.wad", buf)
	assert.Nil(t, a)
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, "HUGE", oob.Name)
	assert.Equal(t, 28, oob.Start)
	assert.Equal(t, 1028, oob.End)
}

func TestNewIsIdempotent(t *testing.T) {
	t.Parallel()

	data := buildWAD("IWAD",
		lump("LUMP1", "aaaa"),
		marker("S_START"),
		lump("SPR1", "bb"),
		marker("S_END"),
		marker("E1M1"),
		lump("THINGS", "t"),
	)

	a1, err := New("t", data)
	require.NoError(t, err)
	a2, err := New("t", data)
	require.NoError(t, err)
	assert.Equal(t, a1.Root(), a2.Root())
}

func TestConcurrentReaders(t *testing.T) {
	t.Parallel()

	data := buildWAD("IWAD",
		lump("LUMP1", "aaaa"),
		marker("S_START"),
		lump("SPR1", "bb"),
		marker("S_END"),
	)

	// Independent builds over the same shared buffer plus concurrent reads
	// of one archive need no synchronization.
	a, err := New("t", data)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := New("t", data)
			assert.NoError(t, err)
			for range 100 {
				l, ok := a.Lookup(nil, "LUMP1")
				assert.True(t, ok)
				assert.Equal(t, []byte("aaaa"), l.Bytes())
				_, ok = b.Lookup([]string{"S"}, "SPR1")
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "game.wad")
	require.NoError(t, os.WriteFile(path, buildWAD("IWAD", lump("LUMP1", "x")), 0o644))

	a, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "game.wad", a.Name())
	_, ok := a.Lookup(nil, "LUMP1")
	assert.True(t, ok)

	_, err = Open(filepath.Join(t.TempDir(), "missing.wad"))
	require.Error(t, err)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New("logged.wad", buildWAD("IWAD", lump("LUMP1", "x")), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "indexed archive")
	assert.Contains(t, out.String(), "logged.wad")
}

func TestTreeDump(t *testing.T) {
	t.Parallel()

	a, err := New("t", buildWAD("IWAD",
		lump("LUMP1", "aaaa"),
		marker("S_START"),
		lump("SPR1", "bb"),
		marker("S_END"),
	))
	require.NoError(t, err)

	want := "LUMP1 [12, 16)\n" +
		"MAPS/\n" +
		"S/\n" +
		"  SPR1 [16, 18)\n"
	assert.Equal(t, want, a.Tree())
}

func BenchmarkNew(b *testing.B) {
	lumps := make([]testLump, 0, 1024)
	for i := range 256 {
		switch i % 8 {
		case 0:
			lumps = append(lumps, marker("E1M1"), lump("THINGS", "tttt"), lump("LINEDEFS", "llll"))
		default:
			lumps = append(lumps, lump("LMP"+string(rune('A'+i%26)), "datadata"))
		}
	}
	data := buildWAD("IWAD", lumps...)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for b.Loop() {
		if _, err := New("bench.wad", data); err != nil {
			b.Fatal(err)
		}
	}
}
