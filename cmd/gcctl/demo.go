package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/shadowgc/internal/cons"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the five-element list walkthrough",
		Long: `The demo command builds the list (1 2 3 4 5), collects while it is rooted,
increments every element, collects again, then releases the list and collects
a final time.

Example:
  gcctl demo
  gcctl demo --strategy recursive --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

// demoStep is one collection of the walkthrough.
type demoStep struct {
	Step      string  `json:"step"`
	Reclaimed int     `json:"reclaimed"`
	Values    []int64 `json:"values,omitempty"`
}

func runDemo() error {
	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()
	s := cons.New(h)

	var steps []demoStep
	collect := func(step string, values []int64) {
		steps = append(steps, demoStep{Step: step, Reclaimed: h.Collect(), Values: values})
	}

	h.Enter()
	list, err := s.List(1, 2, 3, 4, 5)
	if err != nil {
		return err
	}
	h.Reset(list)
	collect("rooted", s.Values(list))
	collect("again", nil)

	if err := s.IncAll(list); err != nil {
		return err
	}
	collect("incremented", s.Values(list))
	h.Leave()
	collect("released", nil)

	if jsonOut {
		return printJSON(steps)
	}
	for _, st := range steps {
		printInfo("%-12s %s reclaimed", st.Step+":", bytesOf(st.Reclaimed))
		if st.Values != nil {
			printInfo("  %v", st.Values)
		}
		printInfo("\n")
	}
	return nil
}
