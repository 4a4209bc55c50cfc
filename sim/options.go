package sim

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/plus3/rockfall/well"
)

var (
	ErrEmptyPattern  = errors.New("sim: empty jet pattern")
	ErrNegativeDrops = errors.New("sim: negative drop count")
)

// Options configures a Simulator.
type Options struct {
	// Capacity is the number of rows kept by the well store.
	Capacity int
	// CycleSkip lets Run jump over repeated states instead of simulating
	// every drop. The resulting height is the same either way.
	CycleSkip bool
	Logger    hclog.Logger
	// Observer, if set, is called for every position a shape passes through.
	Observer Observer
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Capacity:  well.DefaultCapacity,
		CycleSkip: true,
		Logger:    hclog.NewNullLogger(),
	}
}

func WithCapacity(rows int) Option {
	return func(o *Options) {
		o.Capacity = rows
	}
}

func WithCycleSkip(enabled bool) Option {
	return func(o *Options) {
		o.CycleSkip = enabled
	}
}

func WithLogger(logger hclog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *Options) {
		o.Observer = observer
	}
}
