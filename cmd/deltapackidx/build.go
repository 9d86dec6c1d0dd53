package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rpcpool/deltapackidx/deltaindex"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

func newCmd_Build() *cli.Command {
	return &cli.Command{
		Name:        "build",
		Usage:       "Build a sealed delta-pack index from a manifest file",
		Description: "Reads a manifest of (node, delta-base, pack-offset, pack-size) tuples and writes a sealed DeltaIndex file.",
		ArgsUsage:   "<manifest-file> <output-index-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pack-digest",
				Usage: "optional metadata value recorded under the \"pack-digest\" key",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return fmt.Errorf("expected exactly 2 arguments: <manifest-file> <output-index-file>")
			}
			return runBuild(c.Context, c.Args().Get(0), c.Args().Get(1), c.String("pack-digest"))
		},
	}
}

// manifest line format: one record per line, tab-separated:
//
//	<40-hex-char node> <delta-base-node-hex-or-"-"> <offset> <size>
func runBuild(ctx context.Context, manifestPath, outputPath, packDigest string) error {
	manifestFile, err := os.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	defer manifestFile.Close()

	b := deltaindex.NewBuilder()
	if packDigest != "" {
		if err := b.SetMetadata([]byte("pack-digest"), []byte(packDigest)); err != nil {
			return fmt.Errorf("failed to set metadata: %w", err)
		}
	}

	klog.Infof("reading manifest %s", manifestPath)
	scanner := bufio.NewScanner(manifestFile)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		loc, node, err := parseManifestLine(line)
		if err != nil {
			return fmt.Errorf("manifest line %d: %w", lineNo, err)
		}
		b.Insert(node, loc)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	klog.Infof("inserted %d entries", b.Len())

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	klog.Infof("sealing index to %s", outputPath)
	if err := b.SealAndClose(ctx, out); err != nil {
		return fmt.Errorf("failed to seal index: %w", err)
	}
	klog.Infof("done")
	return nil
}

func parseManifestLine(line string) (deltaindex.DeltaLocation, deltaindex.Node, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return deltaindex.DeltaLocation{}, deltaindex.Node{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	node, err := parseNodeHex(fields[0])
	if err != nil {
		return deltaindex.DeltaLocation{}, deltaindex.Node{}, fmt.Errorf("bad node: %w", err)
	}

	var base *deltaindex.Node
	if fields[1] != "-" {
		b, err := parseNodeHex(fields[1])
		if err != nil {
			return deltaindex.DeltaLocation{}, deltaindex.Node{}, fmt.Errorf("bad delta base: %w", err)
		}
		base = &b
	}

	offset, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return deltaindex.DeltaLocation{}, deltaindex.Node{}, fmt.Errorf("bad offset: %w", err)
	}
	size, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return deltaindex.DeltaLocation{}, deltaindex.Node{}, fmt.Errorf("bad size: %w", err)
	}

	return deltaindex.DeltaLocation{DeltaBase: base, Offset: offset, Size: size}, node, nil
}

func parseNodeHex(s string) (deltaindex.Node, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return deltaindex.Node{}, err
	}
	n, ok := deltaindex.NodeFromSlice(b)
	if !ok {
		return deltaindex.Node{}, fmt.Errorf("expected %d bytes, got %d", deltaindex.NodeSize, len(b))
	}
	return n, nil
}
