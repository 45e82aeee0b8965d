// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Archipelago owns a set of Islands, a pointer→index map, a Topology and a
// MigrantDB, and coordinates archipelago-wide evolve/wait/migration.
type Archipelago struct {
	idxMu   sync.RWMutex
	islands []*Island       // boxed: stable addresses across growth
	idxMap  map[*Island]int // m_idx_map

	topoMu sync.RWMutex // guards replacing the Topology value itself; the Topology is internally thread-safe on top of that
	topo   Topology

	migrants *MigrantDB

	policy  MigrationPolicy
	opts    ArchipelagoOptions
	meta    *metaRNG
	log     *zap.Logger
	metrics *metricsSet
}

// NewArchipelago creates an empty archipelago ready for PushBack.
func NewArchipelago(opts ArchipelagoOptions) *Archipelago {
	opts.Default()
	a := &Archipelago{
		idxMap:   make(map[*Island]int),
		topo:     opts.DefaultTopology,
		migrants: newMigrantDB(0),
		policy:   opts.MigrationPolicy,
		opts:     opts,
		meta:     newMetaRNG(opts.Seed),
		log:      zap.NewNop(),
	}
	if opts.MetricsNamespace != "" {
		a.metrics = newMetricsSet(opts.MetricsNamespace)
	}
	return a
}

// SetLogger injects a structured logger used for island/migration events
//; the zero value is zap.NewNop().
func (a *Archipelago) SetLogger(log *zap.Logger) {
	a.log = log
	for _, isl := range a.islandsSnapshot() {
		isl.mu.Lock()
		isl.log = log
		isl.mu.Unlock()
	}
}

// Size returns the current number of islands.
func (a *Archipelago) Size() int {
	a.idxMu.RLock()
	defer a.idxMu.RUnlock()
	return len(a.islands)
}

// PushBack constructs an island bound to algo and a fresh random Population
// of problem built from opts (see PushBackPopulation for the
// Population-first shape), takes ownership of
// it, and wires it into the idx map, MigrantDB and Topology. Fails
// with ErrOverflow if the resulting size would exceed opts.MaxIslands.
func (a *Archipelago) PushBack(ctx context.Context, algo Algorithm, problem Problem, opts IslandOptions) (int, error) {
	opts.Default()
	if opts.Seed == 0 {
		opts.Seed = a.meta.nextSeed()
	}
	if opts.UDI == nil {
		opts.UDI = a.opts.DefaultUDI()
	}
	isl, err := NewIsland(ctx, algo, problem, opts)
	if err != nil {
		return -1, err
	}
	return a.pushBackIsland(isl)
}

// PushBackPopulation constructs an island from an already-built Population,
// for callers that already have a Population (possibly deserialized or
// migrated from elsewhere) rather than wanting a fresh random one.
func (a *Archipelago) PushBackPopulation(algo Algorithm, pop Population, opts IslandOptions) (int, error) {
	if opts.UDI == nil {
		opts.UDI = a.opts.DefaultUDI()
	}
	isl, err := NewIslandFromPopulation(algo, pop, opts)
	if err != nil {
		return -1, err
	}
	return a.pushBackIsland(isl)
}

func (a *Archipelago) pushBackIsland(isl *Island) (int, error) {
	a.idxMu.Lock()
	if len(a.islands) >= a.opts.MaxIslands {
		a.idxMu.Unlock()
		isl.close()
		return -1, newErr(ErrOverflow, "archipelago size would exceed MaxIslands=%d", a.opts.MaxIslands)
	}
	idx := len(a.islands)
	a.islands = append(a.islands, isl)
	a.idxMap[isl] = idx
	a.idxMu.Unlock()

	isl.attach(a)
	isl.log = a.log
	isl.metrics = a.metrics

	a.migrants.pushBackSlot()

	a.topoMu.Lock()
	a.topo.PushBack()
	a.topoMu.Unlock()

	if a.metrics != nil {
		a.metrics.setIslandStatus(isl.name, IslandIdle)
	}
	return idx, nil
}

// At provides O(1) bounds-checked indexed access to an island.
func (a *Archipelago) At(i int) (*Island, error) {
	a.idxMu.RLock()
	defer a.idxMu.RUnlock()
	if i < 0 || i >= len(a.islands) {
		return nil, newErr(ErrOutOfRange, "island index %d out of range [0,%d)", i, len(a.islands))
	}
	return a.islands[i], nil
}

// GetIslandIdx looks up isl's current index; fails with ErrNotFound if isl
// does not belong to this archipelago.
func (a *Archipelago) GetIslandIdx(isl *Island) (int, error) {
	a.idxMu.RLock()
	defer a.idxMu.RUnlock()
	idx, ok := a.idxMap[isl]
	if !ok {
		return -1, newErr(ErrNotFound, "island does not belong to this archipelago")
	}
	return idx, nil
}

// islandsSnapshot returns the current island slice; the slice header is
// copied but islands are shared pointers, matching "iterators over islands
// are invalidated by push_back" (new snapshots must be retaken after growth).
func (a *Archipelago) islandsSnapshot() []*Island {
	a.idxMu.RLock()
	defer a.idxMu.RUnlock()
	out := make([]*Island, len(a.islands))
	copy(out, a.islands)
	return out
}

// Evolve calls Evolve(n) on every island in index order and returns
// immediately.
func (a *Archipelago) Evolve(n int) {
	for _, isl := range a.islandsSnapshot() {
		isl.Evolve(n)
	}
}

// Wait calls Wait on every island in index order.
func (a *Archipelago) Wait() {
	for _, isl := range a.islandsSnapshot() {
		isl.Wait()
	}
}

// WaitCheck calls WaitCheck on every island in index order, draining all of
// them even once an error is found, and returns the first error encountered
//.
func (a *Archipelago) WaitCheck() error {
	var first error
	for _, isl := range a.islandsSnapshot() {
		if err := isl.WaitCheck(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Status returns Idle iff every island is idle with no latched error, Error
// if any island has one latched, else Busy.
func (a *Archipelago) Status() IslandStatus {
	islands := a.islandsSnapshot()
	sawBusy := false
	for _, isl := range islands {
		switch isl.Status() {
		case IslandError:
			return IslandError
		case IslandBusy:
			sawBusy = true
		}
	}
	if sawBusy {
		return IslandBusy
	}
	return IslandIdle
}

// waitAllIdle blocks until every current island is idle, used internally
// before operations that require quiescence (SetTopology, Clone, Close, Load).
func (a *Archipelago) waitAllIdle() {
	a.Wait()
}

// GetTopology returns a deep copy of the current topology.
func (a *Archipelago) GetTopology() Topology {
	a.topoMu.RLock()
	defer a.topoMu.RUnlock()
	return a.topo.Clone()
}

// SetTopology replaces the topology, requiring the new one to already
// accept Size() vertices; it first waits for all islands to idle, avoiding
// a race against in-flight migration reads.
func (a *Archipelago) SetTopology(t Topology) error {
	a.waitAllIdle()
	size := a.Size()
	if t.NumVertices() != size {
		return newErr(ErrContractViolation, "topology has %d vertices, archipelago has %d islands", t.NumVertices(), size)
	}
	a.topoMu.Lock()
	a.topo = t
	a.topoMu.Unlock()
	return nil
}

// GetIslandConnections forwards to the topology with index validation
//.
func (a *Archipelago) GetIslandConnections(idx int) ([]int, []float64, error) {
	if idx < 0 || idx >= a.Size() {
		return nil, nil, newErr(ErrOutOfRange, "island index %d out of range [0,%d)", idx, a.Size())
	}
	a.topoMu.RLock()
	defer a.topoMu.RUnlock()
	return a.topo.GetConnections(idx)
}

// ExtractMigrants atomically reads-and-clears MigrantDB[i].
func (a *Archipelago) ExtractMigrants(i int) (IndividualsGroup, error) {
	return a.migrants.extract(i)
}

// GetMigrantsDB returns a deep copy of the whole migrant database.
func (a *Archipelago) GetMigrantsDB() []IndividualsGroup {
	return a.migrants.snapshot()
}

// SetMigrantsDB replaces the whole migrant database; requires |db| == Size().
func (a *Archipelago) SetMigrantsDB(db []IndividualsGroup) error {
	if len(db) != a.Size() {
		return newErr(ErrContractViolation, "migrant database has %d slots, archipelago has %d islands", len(db), a.Size())
	}
	a.migrants.replace(db)
	return nil
}

// GetChampionsX returns each island's single-objective champion decision
// vector; fails with ErrInvalidOperation if any island is multi-objective
//.
func (a *Archipelago) GetChampionsX() ([]DecisionVector, error) {
	islands := a.islandsSnapshot()
	out := make([]DecisionVector, len(islands))
	for i, isl := range islands {
		pop := isl.GetPopulation()
		best, err := pop.Champion(nil)
		if err != nil {
			return nil, err
		}
		out[i] = pop.Xs()[best]
	}
	return out, nil
}

// GetChampionsF is GetChampionsX's fitness-vector sibling.
func (a *Archipelago) GetChampionsF() ([]FitnessVector, error) {
	islands := a.islandsSnapshot()
	out := make([]FitnessVector, len(islands))
	for i, isl := range islands {
		pop := isl.GetPopulation()
		best, err := pop.Champion(nil)
		if err != nil {
			return nil, err
		}
		out[i] = pop.Fs()[best]
	}
	return out, nil
}

// Close waits for every island to go idle, then stops their worker
// goroutines: islands are only released once the whole archipelago is idle.
func (a *Archipelago) Close() {
	a.waitAllIdle()
	for _, isl := range a.islandsSnapshot() {
		isl.close()
	}
}

// Clone constructs a new, idle archipelago containing copies of the
// islands, idx map, migrant DB and topology; it does not preserve pending
// tasks. If the source is evolving, it first waits for it to idle.
func (a *Archipelago) Clone(ctx context.Context) (*Archipelago, error) {
	a.waitAllIdle()
	out := NewArchipelago(a.opts)
	// a private copy keeps the pushes below off a's own topology; the grown
	// topology and migrant DB are replaced by exact copies afterwards.
	out.topo = a.GetTopology()
	for _, isl := range a.islandsSnapshot() {
		pop := isl.GetPopulation()
		opts := IslandOptions{Name: isl.GetName(), UDI: NewThreadUDI(1)}
		if _, err := out.PushBackPopulation(isl.GetAlgorithm(), pop, opts); err != nil {
			return nil, err
		}
	}
	out.topo = a.GetTopology()
	out.migrants.replace(a.GetMigrantsDB())
	return out, nil
}

// preEvolveHook pulls emigrants from neighbor buffers into isl's population
// ahead of its own evolve step.
func (a *Archipelago) preEvolveHook(ctx context.Context, isl *Island) error {
	idx, err := a.GetIslandIdx(isl)
	if err != nil {
		return err
	}
	sources, weights, err := a.GetIslandConnections(idx)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return nil
	}

	isl.mu.Lock()
	popPtr := &isl.pop
	r := popPtr.rng
	var toMerge IndividualsGroup
	for k, s := range sources {
		group, err := a.migrants.read(s)
		if err != nil {
			isl.mu.Unlock()
			return err
		}
		chosen := a.policy.pull(group, weights[k], r)
		for _, c := range chosen {
			toMerge.Append(group.At(c))
		}
	}
	err = a.policy.replace(popPtr, toMerge)
	isl.mu.Unlock()

	if err != nil {
		return err
	}
	if a.metrics != nil && toMerge.Len() > 0 {
		a.metrics.observeMigration("pulled", toMerge.Len())
	}
	return nil
}

// postEvolveHook selects emigrants from isl's freshly-evolved population
// and publishes them into MigrantDB[idx].
func (a *Archipelago) postEvolveHook(ctx context.Context, isl *Island) error {
	idx, err := a.GetIslandIdx(isl)
	if err != nil {
		return err
	}
	pop := isl.GetPopulation()
	group, err := a.policy.selectEmigrants(pop)
	if err != nil {
		return err
	}
	if err := a.migrants.publish(idx, group); err != nil {
		return err
	}
	if a.metrics != nil {
		a.metrics.observeMigration("published", group.Len())
	}
	return nil
}
