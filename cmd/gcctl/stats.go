package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/shadowgc/gc"
	"github.com/joshuapare/shadowgc/internal/cons"
)

var (
	statsLength int
	statsKeep   bool
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVarP(&statsLength, "length", "n", 10000, "Cells in the workload list")
	cmd.Flags().BoolVar(&statsKeep, "keep", false, "Keep the list rooted for the final collection")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show heap statistics after a workload",
		Long: `The stats command builds and increments a list of --length cells, runs a
final collection, and prints heap and per-pool statistics. With --keep the list
stays rooted, so the final collection reclaims only the replaced leaves.

Example:
  gcctl stats
  gcctl stats --length 500000 --keep --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	if statsLength < 0 {
		return fmt.Errorf("invalid --length %d", statsLength)
	}
	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()
	s := cons.New(h)

	h.Enter()
	head, err := s.Chain(statsLength)
	if err == nil {
		err = s.IncAll(head)
	}
	if err != nil {
		h.Leave()
		return err
	}
	if !statsKeep {
		h.Reset()
	}
	h.Collect()
	st := h.Stats()
	h.Leave()

	if jsonOut {
		return printJSON(st)
	}
	printStats(st)
	return nil
}

func printStats(st gc.Stats) {
	printInfo("Heap\n")
	printInfo("  strategy:     %s\n", st.Strategy)
	printInfo("  collections:  %s\n", count(st.Collections))
	printInfo("  pages:        %s (%s)\n", count(st.Pages), bytesOf(st.HeapBytes))
	printInfo("  reclaimed:    %s last, %s total\n", bytesOf(st.LastReclaimed), bytesOf(int(st.TotalReclaimed)))
	printInfo("  marked:       %s last\n", count(st.LastMarked))
	if st.LastDeferred > 0 {
		printInfo("  deferred:     %s last\n", count(st.LastDeferred))
	}
	printInfo("  last pause:   %s\n", st.LastPause)
	printInfo("  roots:        %s in %s frames (capacity %s, grown %dx)\n",
		count(st.Roots), count(st.Frames), count(st.RootCapacity), st.RootGrows)

	printInfo("\nPools\n")
	printInfo("  %-8s %6s %8s %10s %10s %12s %6s\n", "NAME", "SLOT", "PAGES", "SLOTS", "FREE", "ALLOCS", "GROWS")
	for _, p := range st.Pools {
		printInfo("  %-8s %6d %8s %10s %10s %12s %6d\n",
			p.Name, p.SlotSize, count(p.Pages), count(p.Slots), count(p.Free), count(int(p.Allocs)), p.Grows)
	}
}
