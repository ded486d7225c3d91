// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchverify

import (
	"sync"
	"testing"
)

func TestConfigWith(t *testing.T) {
	for _, test := range []struct {
		name string
		opts []Option
		want Config
	}{
		{"none", nil, Config{}},
		{"verify then rounds", []Option{Verify(), Rounds(5)}, Config{Verify: true, Rounds: 5}},
		{"rounds then verify", []Option{Rounds(5), Verify()}, Config{Verify: true, Rounds: 5}},
		{"later wins", []Option{Rounds(5), Rounds(3)}, Config{Rounds: 3}},
		{"fixed", []Option{Fixed(10, 2)}, Config{Iterations: 10, Rounds: 2}},
		{"fixed then iterations", []Option{Fixed(10, 2), Iterations(4)}, Config{Iterations: 4, Rounds: 2}},
		{"clear", []Option{Fixed(10, 2), Iterations(0), Rounds(0)}, Config{}},
	} {
		t.Run(test.name, func(t *testing.T) {
			if got := (Config{}).With(test.opts...); got != test.want {
				t.Errorf("want %+v, got %+v", test.want, got)
			}
		})
	}
}

func TestConfigCounts(t *testing.T) {
	for _, test := range []struct {
		c                  Config
		fixed              bool
		rounds, iterations int
	}{
		{Config{}, false, 1, 1},
		{Config{Verify: true}, false, 1, 1},
		{Config{Rounds: 5}, true, 5, 1},
		{Config{Iterations: 7}, true, 1, 7},
		{Config{Rounds: 2, Iterations: 3}, true, 2, 3},
	} {
		if got := test.c.Fixed(); got != test.fixed {
			t.Errorf("%+v.Fixed() = %v, want %v", test.c, got, test.fixed)
		}
		r, i := test.c.Counts()
		if r != test.rounds || i != test.iterations {
			t.Errorf("%+v.Counts() = %d, %d, want %d, %d", test.c, r, i, test.rounds, test.iterations)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Rounds: 1, Iterations: 1}).Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}
	if err := (Config{Rounds: -1}).Validate(); err == nil {
		t.Errorf("negative rounds accepted")
	}
	if err := (Config{Iterations: -3}).Validate(); err == nil {
		t.Errorf("negative iterations accepted")
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver()
	if got := r.Resolve("unknown"); got != (Config{}) {
		t.Errorf("unknown group has config %+v", got)
	}

	if _, err := r.Apply("G", Verify()); err != nil {
		t.Fatal(err)
	}
	// Adjustments accumulate.
	c, err := r.Apply("G", Rounds(5))
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Verify: true, Rounds: 5}
	if c != want || r.Resolve("G") != want {
		t.Errorf("want %+v, got %+v and %+v", want, c, r.Resolve("G"))
	}

	// Invalid adjustments leave the configuration alone.
	if _, err := r.Apply("G", Rounds(-1), Verify()); err == nil {
		t.Errorf("invalid adjustment accepted")
	}
	if got := r.Resolve("G"); got != want {
		t.Errorf("want %+v after rejected adjustment, got %+v", want, got)
	}

	// Groups are independent.
	if got := r.Resolve("H"); got != (Config{}) {
		t.Errorf("group H has config %+v", got)
	}
}

func TestResolverConcurrent(t *testing.T) {
	r := NewResolver()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Apply("G", Verify())
				r.Resolve("G")
			}
		}()
	}
	wg.Wait()
	if !r.Resolve("G").Verify {
		t.Errorf("verify not set")
	}
}
