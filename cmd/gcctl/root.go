package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/shadowgc/gc"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// Heap flags; they override the config file
	configPath   string
	strategyName string
	depthLimit   int
	maxPages     int

	// heapOpts is resolved from the config file and flags before a command runs.
	heapOpts *gc.Options
)

var rootCmd = &cobra.Command{
	Use:   "gcctl",
	Short: "Exercise the shadowgc pooled allocator and collector",
	Long: `gcctl builds lists and trees on a shadowgc heap, releases them, and
reports the bytes each collection reclaimed. Heap settings come from an optional
TOML file (--config) and can be overridden with flags.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configure(cmd)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log collector events to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().
		StringVar(&strategyName, "strategy", "", "Mark strategy: worklist or recursive")
	rootCmd.PersistentFlags().
		IntVar(&depthLimit, "depth-limit", 0, "Trace depth limit for the recursive strategy")
	rootCmd.PersistentFlags().
		IntVar(&maxPages, "max-pages", 0, "Cap on heap pages (0 = unlimited)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newHeap creates a heap from the resolved options.
func newHeap() (*gc.Heap, error) {
	h, err := gc.NewHeap(heapOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create heap: %w", err)
	}
	return h, nil
}

// Helper functions for output

var printer = message.NewPrinter(language.English)

// count formats n with thousands separators
func count(n int) string {
	return printer.Sprintf("%d", n)
}

// bytesOf formats a byte count in IEC units
func bytesOf(n int) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
