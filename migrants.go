// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import "sync"

// MigrantDB is a sequence of IndividualsGroup, one per island, each slot
// holding the emigrants most recently published by that island.
// Guarded by a single mutex: writes come from
// post-evolve publish, ExtractMigrants, and SetMigrantsDB; reads come from
// pre-evolve pull and GetMigrantsDB.
type MigrantDB struct {
	mu   sync.Mutex
	pool []IndividualsGroup
}

func newMigrantDB(n int) *MigrantDB {
	return &MigrantDB{pool: make([]IndividualsGroup, n)}
}

func (m *MigrantDB) pushBackSlot() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pool = append(m.pool, IndividualsGroup{})
}

func (m *MigrantDB) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pool)
}

// publish overwrites slot i with the emigrants selected for the most recent
// evolve step of island i.
func (m *MigrantDB) publish(i int, group IndividualsGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.pool) {
		return newErr(ErrOutOfRange, "island index %d out of range [0,%d)", i, len(m.pool))
	}
	m.pool[i] = group
	return nil
}

// read returns a copy of slot i without clearing it, used by the pre-evolve
// pull (a destination may observe the same emigrants published by several
// sources across several of its own evolve steps; migration reads and
// publishes do not compose into a transaction).
func (m *MigrantDB) read(i int) (IndividualsGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.pool) {
		return IndividualsGroup{}, newErr(ErrOutOfRange, "island index %d out of range [0,%d)", i, len(m.pool))
	}
	return m.pool[i].Clone(), nil
}

// extract atomically reads-and-clears slot i (Archipelago.ExtractMigrants).
func (m *MigrantDB) extract(i int) (IndividualsGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.pool) {
		return IndividualsGroup{}, newErr(ErrOutOfRange, "island index %d out of range [0,%d)", i, len(m.pool))
	}
	g := m.pool[i]
	m.pool[i] = IndividualsGroup{}
	return g, nil
}

// snapshot returns a deep copy of the entire database (GetMigrantsDB).
func (m *MigrantDB) snapshot() []IndividualsGroup {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]IndividualsGroup, len(m.pool))
	for i, g := range m.pool {
		out[i] = g.Clone()
	}
	return out
}

// replace overwrites the whole database (SetMigrantsDB); the caller
// validates |db| == size before calling.
func (m *MigrantDB) replace(db []IndividualsGroup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]IndividualsGroup, len(db))
	for i, g := range db {
		out[i] = g.Clone()
	}
	m.pool = out
}

// MigrationPolicy fixes the two decision points the evolve step otherwise
// leaves open, as a configuration surface that lives outside the core loop:
// how many (and which) of a source island's published emigrants a
// destination should pull, and which individuals a newly-evolved
// population should publish.
// The zero value is the documented default: Bernoulli-per-individual pull
// weighted by edge weight, and champion-only (or top-crowding-front for
// multiobjective) publish.
type MigrationPolicy struct {
	// Pull decides, given a source's published group and the edge weight
	// feeding the destination from that source, which indices of group to
	// pull. A nil Pull uses DefaultPull.
	Pull func(group IndividualsGroup, weight float64, r *rng) []int

	// Select decides, given the destination's freshly-evolved population,
	// which individuals to publish as its own emigrants. A nil Select uses
	// DefaultSelect.
	Select func(pop Population) (IndividualsGroup, error)

	// Replace decides how pulled emigrants are merged into the destination
	// population. A nil Replace uses DefaultReplace (append).
	Replace func(pop *Population, incoming IndividualsGroup) error
}

func (p MigrationPolicy) pull(group IndividualsGroup, weight float64, r *rng) []int {
	if p.Pull != nil {
		return p.Pull(group, weight, r)
	}
	return DefaultPull(group, weight, r)
}

func (p MigrationPolicy) selectEmigrants(pop Population) (IndividualsGroup, error) {
	if p.Select != nil {
		return p.Select(pop)
	}
	return DefaultSelect(pop)
}

func (p MigrationPolicy) replace(pop *Population, incoming IndividualsGroup) error {
	if p.Replace != nil {
		return p.Replace(pop, incoming)
	}
	return DefaultReplace(pop, incoming)
}

// DefaultPull is the suggested default pull policy: include
// individual k of group independently with probability clip(weight,0,1),
// drawn from the destination island's own RNG so that the decision is
// reproducible given the destination's seed.
func DefaultPull(group IndividualsGroup, weight float64, r *rng) []int {
	p := weight
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	var idx []int
	for k := 0; k < group.Len(); k++ {
		if r.flipCoin(p) {
			idx = append(idx, k)
		}
	}
	return idx
}

// DefaultSelect is the suggested default publish policy: the current
// champion for single-objective populations, or the first non-dominated
// front (by crowding distance, capped at a handful of individuals) for
// multiobjective ones.
func DefaultSelect(pop Population) (IndividualsGroup, error) {
	var group IndividualsGroup
	if pop.Len() == 0 {
		return group, nil
	}
	if pop.problem.Nobj() <= 1 {
		best, err := pop.Champion(nil)
		if err != nil {
			return group, err
		}
		group.Append(pop.At(best))
		return group, nil
	}
	info := SortPopulationMO(pop.fs, pop.problem.Nobj())
	const topK = 4
	var front0 []rankedIndividual
	for i, fi := range info {
		if fi.Front == 0 {
			front0 = append(front0, rankedIndividual{i, fi.Crowding})
		}
	}
	sortRankedByCrowdingDesc(front0)
	n := topK
	if n > len(front0) {
		n = len(front0)
	}
	for i := 0; i < n; i++ {
		group.Append(pop.At(front0[i].idx))
	}
	return group, nil
}

// rankedIndividual pairs a population index with its crowding distance, for
// DefaultSelect's top-K front-0 ranking.
type rankedIndividual struct {
	idx      int
	crowding float64
}

func sortRankedByCrowdingDesc(r []rankedIndividual) {
	for i := 1; i < len(r); i++ {
		for j := i; j > 0 && r[j].crowding > r[j-1].crowding; j-- {
			r[j], r[j-1] = r[j-1], r[j]
		}
	}
}

// DefaultReplace is the default merge policy: append the pulled
// emigrants to the destination population, re-using their already-evaluated
// fitness (PushBackBoth, population.go).
func DefaultReplace(pop *Population, incoming IndividualsGroup) error {
	for i := 0; i < incoming.Len(); i++ {
		ind := incoming.At(i)
		if err := pop.PushBackBoth(ind.X, ind.F); err != nil {
			return err
		}
	}
	return nil
}
