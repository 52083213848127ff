package rolling

import (
	"github.com/davidvella/dayroll/window"
)

// options defines all configuration options for the engine.
type options struct {
	closure     window.Closure // Which window edges are included
	minPeriods  int            // Minimum non-NaN observations for a value
	center      bool           // Ask the indexer for centred windows
	concurrency int            // Maximum groups computed at once
}

// Option is a function that configures the engine options.
type Option func(*options)

// WithClosure sets the window closure. The empty closure means the default.
func WithClosure(c window.Closure) Option {
	return func(o *options) {
		o.closure = c
	}
}

// WithMinPeriods sets the minimum number of non-NaN observations a window
// needs to produce a value.
func WithMinPeriods(n int) Option {
	return func(o *options) {
		o.minPeriods = n
	}
}

// WithCenter requests centred windows. Only indexers that define centring
// accept it.
func WithCenter(center bool) Option {
	return func(o *options) {
		o.center = center
	}
}

// WithConcurrency sets how many groups GroupBy computes at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		closure:     window.DefaultClosure,
		minPeriods:  0,
		center:      false,
		concurrency: 8,
	}
}
