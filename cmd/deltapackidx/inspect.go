package main

import (
	"fmt"

	"github.com/rpcpool/deltapackidx/deltaindex"
	"github.com/urfave/cli/v2"
)

func newCmd_Inspect() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print header and entry-count information for a sealed index",
		ArgsUsage: "<index-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lookup",
				Usage: "look up a single node (40 hex chars) and print its entry",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument: <index-file>")
			}
			return runInspect(c.Args().Get(0), c.String("lookup"))
		},
	}
}

func runInspect(path, lookup string) error {
	idx, err := deltaindex.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	fmt.Printf("entries: %d\n", idx.NumEntries())
	for _, kv := range idx.Metadata().KeyVals {
		fmt.Printf("metadata: %s = %s\n", kv.Key, kv.Value)
	}

	if lookup == "" {
		return nil
	}
	node, err := parseNodeHex(lookup)
	if err != nil {
		return fmt.Errorf("bad lookup node: %w", err)
	}
	entry, err := idx.GetEntry(node)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	fmt.Printf("node: %s\n", entry.Node)
	fmt.Printf("pack_entry_offset: %d\n", entry.PackEntryOffset)
	fmt.Printf("pack_entry_size: %d\n", entry.PackEntrySize)
	switch entry.DeltaBaseOffset.Kind {
	case deltaindex.DeltaBaseFullText:
		fmt.Println("delta_base: full-text")
	case deltaindex.DeltaBaseMissing:
		fmt.Println("delta_base: missing")
	case deltaindex.DeltaBaseOffsetKind:
		base, err := idx.ReadEntry(entry.DeltaBaseOffset.Offset)
		if err != nil {
			return fmt.Errorf("failed to resolve delta base: %w", err)
		}
		fmt.Printf("delta_base: %s (offset %d)\n", base.Node, entry.DeltaBaseOffset.Offset)
	}
	return nil
}
