package proccache

import "fmt"

type config struct {
	resolvers []Resolver
	validate  bool
	negative  bool
}

// Option is a function that sets a value in a config.
type Option func(*config) error

// getOpts creates a config and applies Options to it.
func getOpts(opts []Option) (config, error) {
	cfg := config{
		validate: true,
	}
	for i, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, fmt.Errorf("option %d failed: %s", i, err)
		}
	}
	return cfg, nil
}

// WithResolver adds a registry resolver for the slot to look up the
// process from. Resolvers are consulted in the order given; the first one
// that knows the name supplies the handle.
func WithResolver(r ...Resolver) Option {
	return func(cfg *config) error {
		cfg.resolvers = append(cfg.resolvers, r...)
		return nil
	}
}

// WithLivenessCheck controls whether a cached handle is validated on
// every cache hit. When disabled, Get returns the cached handle without
// checking that the referenced process still exists.
//
// Default is true.
func WithLivenessCheck(check bool) Option {
	return func(cfg *config) error {
		cfg.validate = check
		return nil
	}
}

// WithNegativeCaching controls whether a failed resolution is remembered.
// When enabled, a Get that finds the name unregistered caches the miss,
// and subsequent Gets return a nil handle without a registry lookup until
// Reset is called. When disabled, every Get of an empty slot performs a
// fresh lookup.
//
// Default is false.
func WithNegativeCaching(negative bool) Option {
	return func(cfg *config) error {
		cfg.negative = negative
		return nil
	}
}
