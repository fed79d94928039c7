package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/shadowgc/gc"
	"github.com/joshuapare/shadowgc/internal/cons"
)

var (
	treeDepth      int
	treeIterations int
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVarP(&treeDepth, "depth", "d", 10, "Tree depth (0 = a single leaf)")
	cmd.Flags().IntVarP(&treeIterations, "iterations", "i", 4, "Trees to build")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Build and release full binary trees",
		Long: `The tree command allocates --iterations full binary trees of pairs of the
given --depth, counting each one, and collects after releasing it.

Example:
  gcctl tree --depth 16
  gcctl tree -d 12 -i 10 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree()
		},
	}
}

type treeResult struct {
	Iteration int `json:"iteration"`
	Nodes     int `json:"nodes"`
	Leaves    int `json:"leaves"`
	Reclaimed int `json:"reclaimed"`
}

type treeReport struct {
	Depth   int          `json:"depth"`
	Results []treeResult `json:"results"`
	Stats   gc.Stats     `json:"stats"`
}

func runTree() error {
	if treeDepth < 0 || treeDepth > 20 {
		return fmt.Errorf("invalid --depth %d (want 0-20)", treeDepth)
	}
	if treeIterations < 1 {
		return fmt.Errorf("invalid --iterations %d", treeIterations)
	}

	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()
	s := cons.New(h)

	report := treeReport{Depth: treeDepth}
	for i := 1; i <= treeIterations; i++ {
		h.Enter()
		tree, err := s.Tree(treeDepth)
		if err != nil {
			h.Leave()
			return fmt.Errorf("iteration %d: %w", i, err)
		}
		res := treeResult{
			Iteration: i,
			Nodes:     s.CountNodes(tree),
			Leaves:    int(s.Sum(tree)),
		}
		h.Leave()
		res.Reclaimed = h.Collect()
		report.Results = append(report.Results, res)
		printVerbose("iteration %d done\n", i)
	}
	report.Stats = h.Stats()

	if jsonOut {
		return printJSON(report)
	}
	for _, r := range report.Results {
		printInfo("tree %d: %s nodes (%s leaves), %s reclaimed\n",
			r.Iteration, count(r.Nodes), count(r.Leaves), bytesOf(r.Reclaimed))
	}
	printInfo("heap: %s pages, %s collections\n",
		count(report.Stats.Pages), count(report.Stats.Collections))
	return nil
}
