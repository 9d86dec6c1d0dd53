package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rpcpool/deltapackidx/revisiondag"
	"github.com/urfave/cli/v2"
)

func newCmd_Phase() *cli.Command {
	return &cli.Command{
		Name:        "phase",
		Usage:       "Propagate public/draft phases over a packed revision log",
		Description: "Loads a packed revision-log file and prints the public and draft revision sets derived from the given heads.",
		ArgsUsage:   "<revlog-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "public",
				Usage: "comma-separated list of public head revisions",
			},
			&cli.StringFlag{
				Name:  "draft",
				Usage: "comma-separated list of draft head revisions",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument: <revlog-file>")
			}
			return runPhase(c.Args().Get(0), c.String("public"), c.String("draft"))
		},
	}
}

func runPhase(path, publicList, draftList string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read revlog file: %w", err)
	}
	dag, err := revisiondag.Open(data)
	if err != nil {
		return fmt.Errorf("failed to open revision dag: %w", err)
	}

	publicHeads, err := parseRevList(publicList)
	if err != nil {
		return fmt.Errorf("bad --public: %w", err)
	}
	draftHeads, err := parseRevList(draftList)
	if err != nil {
		return fmt.Errorf("bad --draft: %w", err)
	}

	public, draft := dag.PhaseSets(publicHeads, draftHeads)
	fmt.Printf("revisions: %d\n", dag.Len())
	fmt.Printf("public: %v\n", public.ToSlice())
	fmt.Printf("draft: %v\n", draft.ToSlice())
	return nil
}

func parseRevList(s string) ([]uint32, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, uint32(v))
	}
	return out, nil
}
