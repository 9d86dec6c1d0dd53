package main

import (
	"fmt"

	"github.com/rpcpool/deltapackidx/deltaindex"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

func newCmd_Verify() *cli.Command {
	return &cli.Command{
		Name:        "verify",
		Usage:       "Verify a sealed index's internal consistency",
		Description: "Walks every entry in the index and checks that the entry table is sorted, that every node resolves back to itself via GetEntry, and that every delta-base offset resolves to a readable entry.",
		ArgsUsage:   "<index-file>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument: <index-file>")
			}
			return runVerify(c.Args().Get(0))
		},
	}
}

func runVerify(path string) error {
	idx, err := deltaindex.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	n := idx.NumEntries()
	klog.Infof("verifying %d entries", n)

	var prev *deltaindex.Node
	for i := 0; i < n; i++ {
		entry, err := idx.ReadEntry(uint32(i) * deltaindex.EntrySize)
		if err != nil {
			return fmt.Errorf("failed to read entry %d: %w", i, err)
		}
		node := entry.Node
		if prev != nil && !prev.Less(node) {
			return fmt.Errorf("entry table out of order at index %d: %s is not less than %s", i, prev, node)
		}
		prev = &node

		got, err := idx.GetEntry(node)
		if err != nil {
			return fmt.Errorf("GetEntry failed for %s at index %d: %w", node, i, err)
		}
		if got.Node != node {
			return fmt.Errorf("GetEntry(%s) returned mismatched node %s", node, got.Node)
		}

		if entry.DeltaBaseOffset.Kind == deltaindex.DeltaBaseOffsetKind {
			if _, err := idx.ReadEntry(entry.DeltaBaseOffset.Offset); err != nil {
				return fmt.Errorf("entry %s has unreadable delta base at offset %d: %w", node, entry.DeltaBaseOffset.Offset, err)
			}
		}

		if i > 0 && i%100_000 == 0 {
			klog.Infof("verified %d/%d", i, n)
		}
	}
	klog.Infof("ok: %d entries verified", n)
	return nil
}
