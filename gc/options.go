package gc

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/shadowgc/internal/buf"
)

const (
	// DefaultDepthLimit is the recursion bound for MarkRecursive.
	DefaultDepthLimit = 1 << 16

	// DefaultGrowthThreshold is the free-slot fraction at or below which a pool
	// grows after a collection.
	DefaultGrowthThreshold = 0.3

	// DefaultRootCapacity is the initial number of root stack entries (one page).
	DefaultRootCapacity = PageSize / 8
)

// Options configures a Heap. Zero fields take their defaults.
type Options struct {
	// Strategy selects the mark algorithm. Default MarkWorklist.
	Strategy MarkStrategy

	// DepthLimit bounds nested traces under MarkRecursive. Default 65536.
	DepthLimit int

	// GrowthThreshold: after a slow-path collection, a pool whose free slots are
	// at or below this fraction of its capacity gains pages+1 new pages.
	// Must be in (0, 1]. Default 0.3.
	GrowthThreshold float64

	// MaxPages caps the number of heap pages across all pools. 0 means no cap.
	MaxPages int

	// RootCapacity is the initial root stack size in entries. It is rounded up
	// so the backing mapping is a power of two of at least one page.
	RootCapacity int

	// Logger receives debug events and fatal errors. Default discards.
	Logger *slog.Logger
}

// DefaultOptions holds the values used for nil or zero options.
var DefaultOptions = Options{
	Strategy:        MarkWorklist,
	DepthLimit:      DefaultDepthLimit,
	GrowthThreshold: DefaultGrowthThreshold,
	RootCapacity:    DefaultRootCapacity,
}

func (o Options) withDefaults() Options {
	if o.DepthLimit == 0 {
		o.DepthLimit = DefaultDepthLimit
	}
	if o.GrowthThreshold == 0 {
		o.GrowthThreshold = DefaultGrowthThreshold
	}
	if o.RootCapacity == 0 {
		o.RootCapacity = DefaultRootCapacity
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.Strategy != MarkWorklist && o.Strategy != MarkRecursive:
		return fmt.Errorf("%w: strategy %v", ErrInvalidOptions, o.Strategy)
	case o.DepthLimit < 1:
		return fmt.Errorf("%w: depth limit %d", ErrInvalidOptions, o.DepthLimit)
	case !(o.GrowthThreshold > 0 && o.GrowthThreshold <= 1):
		return fmt.Errorf("%w: growth threshold %v not in (0, 1]", ErrInvalidOptions, o.GrowthThreshold)
	case o.MaxPages < 0:
		return fmt.Errorf("%w: max pages %d", ErrInvalidOptions, o.MaxPages)
	case o.RootCapacity < 1:
		return fmt.Errorf("%w: root capacity %d", ErrInvalidOptions, o.RootCapacity)
	}
	if _, ok := buf.MulSize(o.MaxPages, PageSize); !ok {
		return fmt.Errorf("%w: max pages %d overflows", ErrInvalidOptions, o.MaxPages)
	}
	if _, ok := buf.MulSize(o.RootCapacity, refBytes); !ok {
		return fmt.Errorf("%w: root capacity %d overflows", ErrInvalidOptions, o.RootCapacity)
	}
	return nil
}

// rootStackBytes is the mapping size for the initial root stack.
func (o Options) rootStackBytes() int {
	size := PageSize
	for size/refBytes < o.RootCapacity {
		size *= 2
	}
	return size
}
