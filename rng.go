// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"sync"

	"github.com/cpmech/gosl/rnd"
)

// rng is a private, seedable random source. Every Population owns its own
// rng so that concurrently-evolving islands never race on shared generator
// state.
type rng struct {
	mu   sync.Mutex
	seed int
	// state is a splitmix64-style counter seeded from seed; it is only
	// used to derive further seeds (meta-RNG) or raw uint64 draws cheaply
	// and reproducibly without pulling in gosl's global generator, whose
	// init touches process-wide state (rnd.Init) unsuitable for per-island
	// reseeding under concurrent evolution.
	state uint64
}

func newRNG(seed int) *rng {
	r := &rng{seed: seed}
	r.state = uint64(seed)*0x9E3779B97F4A7C15 + 1
	return r
}

// next draws the next raw 64-bit value deterministically from the seed.
func (r *rng) next() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// nextID draws a fresh 64-bit individual identifier, unique with
// overwhelming probability.
func (r *rng) nextID() uint64 {
	return r.next()
}

// float64 draws a value uniformly in [lo, hi) from the local state, using
// the same 53-bit-mantissa construction math/rand uses.
func (r *rng) float64(lo, hi float64) float64 {
	u := float64(r.next()>>11) / (1 << 53) // 53 bits of mantissa, as math/rand does
	return lo + u*(hi-lo)
}

func (r *rng) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// flipCoin mirrors gosl/rnd.FlipCoin(p): true with probability p.
func (r *rng) flipCoin(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.float64(0, 1) < p
}

// metaRNG derives N distinct per-island population seeds from a single
// archipelago-level seed: when a seed is supplied, it seeds a meta-RNG
// used to derive distinct per-island population seeds, rather than being
// shared verbatim across islands.
type metaRNG struct {
	r *rng
}

func newMetaRNG(seed int) *metaRNG {
	return &metaRNG{r: newRNG(seed)}
}

func (m *metaRNG) nextSeed() int {
	return int(int32(m.r.next()))
}

// globalRNGOnce guards the one-time rnd.Init of gosl's process-wide
// generator, which globalSeed draws from (rnd.Int) only when a Population
// is constructed without an explicit seed. Its use is documented as introducing hidden
// cross-island ordering; callers that need reproducibility must pass
// explicit seeds instead.
var globalRNGOnce sync.Once

func globalSeed() int {
	globalRNGOnce.Do(func() { rnd.Init(0) })
	return rnd.Int(0, 1<<31-1)
}
