// Command wadls lists the contents of WAD archives.
//
// With one archive it prints the namespace tree; with several it treats
// them as a patch chain (IWAD first, PWADs after) and prints each archive's
// summary. The -maps flag lists discovered maps and their lumps instead.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/letsgetlow/wad"
)

func main() {
	maps := flag.Bool("maps", false, "list maps and their lumps instead of the full tree")
	verbose := flag.Bool("v", false, "log parse progress to stderr")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: wadls [-maps] [-v] wadfile [patch.wad ...]")
		os.Exit(2)
	}

	var opts []wad.Option
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, wad.WithLogger(logger))
	}

	chain, err := wad.OpenChain(flag.Args(), opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wadls:", err)
		os.Exit(1)
	}

	for _, archive := range chain.Archives() {
		fmt.Printf("%s (%s, %d maps)\n", archive.Name(), archive.Kind(), archive.Maps().Len())
		if *maps {
			listMaps(archive)
			continue
		}
		if err := wad.WriteTree(os.Stdout, archive.Root()); err != nil {
			fmt.Fprintln(os.Stderr, "wadls:", err)
			os.Exit(1)
		}
	}
}

func listMaps(archive *wad.Archive) {
	for m := range archive.Maps().Namespaces() {
		fmt.Printf("  %s\n", m.Name())
		for lump := range m.Lumps() {
			fmt.Printf("    %-8s %d bytes\n", lump.Name(), lump.Size())
		}
	}
}
