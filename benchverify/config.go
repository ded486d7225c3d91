// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchverify

import (
	"fmt"
	"sync"
)

// Config is the invocation configuration of one benchmark group.
//
// The zero Config lets the runner pick iteration counts adaptively
// and does not verify results.
type Config struct {
	// Iterations and Rounds fix the number of calls per round and
	// the number of rounds. Zero means not declared. If either is
	// declared, the group runs in fixed mode and an undeclared count
	// is 1.
	Iterations int
	Rounds     int

	// Verify checks that the benchmarked function returns the same
	// result every time it is invoked.
	Verify bool
}

// An Option adjusts a Config. Options set only the fields they name.
type Option func(*Config)

// Verify turns on result verification.
func Verify() Option {
	return func(c *Config) { c.Verify = true }
}

// Iterations sets the number of calls per round. Zero clears a
// previous declaration.
func Iterations(n int) Option {
	return func(c *Config) { c.Iterations = n }
}

// Rounds sets the number of rounds. Zero clears a previous
// declaration.
func Rounds(n int) Option {
	return func(c *Config) { c.Rounds = n }
}

// Fixed sets both counts.
func Fixed(iterations, rounds int) Option {
	return func(c *Config) {
		c.Iterations = iterations
		c.Rounds = rounds
	}
}

// With returns c adjusted by opts, in order.
func (c Config) With(opts ...Option) Config {
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Fixed reports whether c declares iteration or round counts.
func (c Config) Fixed() bool {
	return c.Iterations != 0 || c.Rounds != 0
}

// Counts returns the rounds and iterations of fixed mode, with
// undeclared counts defaulting to 1.
func (c Config) Counts() (rounds, iterations int) {
	rounds, iterations = c.Rounds, c.Iterations
	if rounds == 0 {
		rounds = 1
	}
	if iterations == 0 {
		iterations = 1
	}
	return rounds, iterations
}

// Validate reports an error if a declared count is less than 1.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must be at least 1, got %d", c.Rounds)
	}
	return nil
}

// A Resolver holds the configuration of benchmark groups.
// It is safe for concurrent use.
type Resolver struct {
	mu      sync.Mutex
	configs map[string]Config
}

// NewResolver returns a Resolver in which every group has the zero
// Config.
func NewResolver() *Resolver {
	return &Resolver{configs: make(map[string]Config)}
}

// Default is the Resolver used by suites that are not given one.
var Default = NewResolver()

// Apply adjusts the configuration of group by opts, starting from its
// current configuration, and returns the result. If the result is not
// valid, the configuration is left unchanged.
func (r *Resolver) Apply(group string, opts ...Option) (Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.configs[group].With(opts...)
	if err := c.Validate(); err != nil {
		return r.configs[group], fmt.Errorf("group %s: %w", group, err)
	}
	r.configs[group] = c
	return c, nil
}

// Resolve returns the configuration of group.
func (r *Resolver) Resolve(group string) Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.configs[group]
}
