// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"context"
	"strconv"
	"sync"

	"github.com/cpmech/gosl/chk"
	"go.uber.org/zap"
)

// IslandStatus summarizes an Island's state machine: idle, busy, or
// error (meaning some previous task failed and the failure has not yet been
// consumed by WaitCheck).
type IslandStatus int

const (
	IslandIdle IslandStatus = iota
	IslandBusy
	IslandError
)

func (s IslandStatus) String() string {
	switch s {
	case IslandBusy:
		return "busy"
	case IslandError:
		return "error"
	default:
		return "idle"
	}
}

// Island holds one population and performs the reproduction operation. It
// owns a private FIFO task queue serviced by one background goroutine, so
// Evolve(n) can be non-blocking while still guaranteeing at most one
// evolution task executing at a time per island.
type Island struct {
	name      string
	problem   Problem
	udi       UDI
	batchEval BatchEvaluator
	log       *zap.Logger
	metrics   *metricsSet

	// archi is a non-owning back-reference, checked for nil at every
	// migration hook.
	archi *Archipelago

	mu      sync.Mutex
	cond    *sync.Cond
	algo    Algorithm
	pop     Population
	pending int
	busy    bool
	err     error
	closed  bool
}

// NewIsland constructs a standalone island (no archipelago) from an
// Algorithm and a fresh, randomly-initialized Population of size
// opts.PopulationSize bound to problem. If opts.BatchEvaluator is set, or
// problem itself implements BatchProblem, the initial generation is
// evaluated in one vectorized call instead of one Problem.Fitness call per
// individual.
func NewIsland(ctx context.Context, algo Algorithm, problem Problem, opts IslandOptions) (*Island, error) {
	opts.Default()
	pop, err := newRandomPopulationPreferBatch(ctx, problem, opts)
	if err != nil {
		return nil, err
	}
	return NewIslandFromPopulation(algo, pop, opts)
}

// newRandomPopulationPreferBatch builds the initial generation via whichever
// batch evaluation path is available (an explicit opts.BatchEvaluator takes
// precedence over the Problem's own optional BatchFitness), falling back to
// NewRandomPopulation's one-by-one evaluation when neither is present.
func newRandomPopulationPreferBatch(ctx context.Context, problem Problem, opts IslandOptions) (Population, error) {
	batch := opts.BatchEvaluator
	if batch == nil {
		if bp, ok := problem.(BatchProblem); ok {
			batch = BatchEvaluatorFunc(func(ctx context.Context, problem Problem, xs []DecisionVector) ([]FitnessVector, error) {
				return bp.BatchFitness(ctx, xs)
			})
		}
	}
	if batch == nil {
		return NewRandomPopulation(ctx, problem, opts.PopulationSize, opts.Seed)
	}

	pop := NewPopulation(problem, opts.Seed)
	xs := make([]DecisionVector, opts.PopulationSize)
	for i := range xs {
		xs[i] = pop.RandomDecisionVector()
	}
	fs, err := evalBatch(ctx, batch, problem, xs)
	if err != nil {
		return Population{}, err
	}
	for i, x := range xs {
		if err := pop.PushBackBoth(x, fs[i]); err != nil {
			return Population{}, err
		}
	}
	return pop, nil
}

// evalBatch invokes the BatchEvaluator guarded by the same panic-to-error
// recovery Population.evalFitness applies to the per-individual path, and
// checks the returned slice length against the request (the same
// dimension invariant Population enforces per-individual applies to a
// batch result too).
func evalBatch(ctx context.Context, batch BatchEvaluator, problem Problem, xs []DecisionVector) (fs []FitnessVector, err error) {
	defer recoverAsUserFailure("BatchEvaluator.EvaluateBatch", &err)
	fs, err = batch.EvaluateBatch(ctx, problem, xs)
	if err != nil {
		return nil, wrapUserFailure(err, "BatchEvaluator.EvaluateBatch failed")
	}
	if len(fs) != len(xs) {
		return nil, newErr(ErrDimensionMismatch, "BatchEvaluator returned %d fitness vectors for %d decision vectors", len(fs), len(xs))
	}
	return fs, nil
}

// NewIslandFromPopulation constructs a standalone island from an Algorithm
// and an already-built Population, with or without an explicit UDI.
func NewIslandFromPopulation(algo Algorithm, pop Population, opts IslandOptions) (*Island, error) {
	if algo == nil {
		return nil, newErr(ErrInvalidOperation, "Algorithm must not be nil")
	}
	opts.Default()
	udi := opts.UDI
	if udi == nil {
		udi = NewThreadUDI(1)
	}
	name := opts.Name
	if name == "" {
		name = "island"
	}
	isl := &Island{
		name:      name,
		problem:   pop.Problem(),
		udi:       udi,
		batchEval: opts.BatchEvaluator,
		log:       zap.NewNop(),
		algo:      algo,
		pop:       pop,
	}
	isl.cond = sync.NewCond(&isl.mu)
	go isl.loop()
	return isl, nil
}

// GetName returns the island's descriptive name.
func (isl *Island) GetName() string { return isl.name }

// GetExtraInfo returns descriptive, implementation-defined island state;
// archigoga reports the UDI kind and population size.
func (isl *Island) GetExtraInfo() string {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	return "udi=" + isl.udi.Name() + " size=" + strconv.Itoa(isl.pop.Len())
}

// GetAlgorithm returns a snapshot of the current Algorithm, safe to read
// during concurrent evolution. Since Algorithm is an opaque
// user-supplied handle, "snapshot" means "the handle value itself", as the
// contract requires Algorithm.Evolve not to retain mutable references to
// its inputs.
func (isl *Island) GetAlgorithm() Algorithm {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	return isl.algo
}

// GetPopulation returns a deep-copy snapshot of the current Population,
// safe to read during concurrent evolution.
func (isl *Island) GetPopulation() Population {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	return isl.pop.Clone()
}

// Evolve enqueues n evolution tasks and returns immediately.
func (isl *Island) Evolve(n int) {
	if n <= 0 {
		return
	}
	isl.mu.Lock()
	isl.pending += n
	isl.cond.Broadcast()
	isl.mu.Unlock()
}

// Status reports {idle, busy, error}.
func (isl *Island) Status() IslandStatus {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	if isl.err != nil {
		return IslandError
	}
	if isl.busy || isl.pending > 0 {
		return IslandBusy
	}
	return IslandIdle
}

// Wait blocks until the queue is empty and no task is executing. Never
// raises an error.
func (isl *Island) Wait() {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	for isl.pending > 0 || isl.busy {
		isl.cond.Wait()
	}
}

// WaitCheck waits, then atomically consumes and returns the earliest
// latched error, if any. Subsequent errors, once one has been
// consumed, are discarded.
func (isl *Island) WaitCheck() error {
	isl.Wait()
	isl.mu.Lock()
	err := isl.err
	isl.err = nil
	isl.mu.Unlock()
	if err != nil && isl.metrics != nil {
		isl.metrics.setIslandStatus(isl.name, IslandIdle)
	}
	return err
}

// loop is the island's single background worker: it drains the task queue
// strictly FIFO, one evolve step at a time, for the lifetime of the island.
func (isl *Island) loop() {
	for {
		isl.mu.Lock()
		for isl.pending == 0 && !isl.closed {
			isl.cond.Wait()
		}
		if isl.closed && isl.pending == 0 {
			isl.mu.Unlock()
			return
		}
		isl.pending--
		isl.busy = true
		isl.mu.Unlock()

		if isl.metrics != nil {
			isl.metrics.setIslandStatus(isl.name, IslandBusy)
		}

		isl.runStep()

		isl.mu.Lock()
		isl.busy = false
		status := IslandIdle
		if isl.err != nil {
			status = IslandError
		}
		isl.cond.Broadcast()
		isl.mu.Unlock()

		if isl.metrics != nil {
			isl.metrics.setIslandStatus(isl.name, status)
		}
	}
}

// runStep performs one evolve step: pre-evolve migration pull,
// Algorithm.Evolve via the UDI, install, post-evolve migration publish. Any
// failure latches isl.err and, for failures before the install step, leaves
// the Population untouched.
func (isl *Island) runStep() {
	ctx := context.Background()

	isl.mu.Lock()
	archi := isl.archi
	var before Population
	if archi != nil {
		before = isl.pop.Clone()
	}
	isl.mu.Unlock()

	if archi != nil {
		if err := archi.preEvolveHook(ctx, isl); err != nil {
			isl.mu.Lock()
			isl.pop = before
			isl.mu.Unlock()
			isl.latch(err)
			if isl.metrics != nil {
				isl.metrics.observeEvolveStep(isl.name, "pre-evolve-error")
			}
			return
		}
	}

	isl.mu.Lock()
	algo := isl.algo
	pop := isl.pop.Clone()
	isl.mu.Unlock()

	newAlgo, newPop, err := isl.udi.RunEvolve(ctx, algo, pop)
	if err != nil {
		if archi != nil {
			// drop the immigrants merged by the pre-evolve pull
			isl.mu.Lock()
			isl.pop = before
			isl.mu.Unlock()
		}
		isl.latch(err)
		if isl.metrics != nil {
			isl.metrics.observeEvolveStep(isl.name, "evolve-error")
		}
		return
	}

	isl.mu.Lock()
	isl.algo = newAlgo
	isl.pop = newPop
	isl.mu.Unlock()

	if archi != nil {
		if err := archi.postEvolveHook(ctx, isl); err != nil {
			// The evolved population is already committed: discarding it
			// here would contradict testable property 6 (N sequential
			// evolves must match one evolve(N)), since a publish failure
			// must not retroactively change what Algorithm.Evolve produced.
			isl.latch(err)
			if isl.metrics != nil {
				isl.metrics.observeEvolveStep(isl.name, "post-evolve-error")
			}
			return
		}
	}
	if isl.metrics != nil {
		isl.metrics.observeEvolveStep(isl.name, "ok")
	}
}

// latch records err as the island's latched failure, keeping only the
// earliest one until it is consumed by WaitCheck.
func (isl *Island) latch(err error) {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	if isl.err == nil {
		isl.err = err
	}
	isl.log.Warn("island evolve step failed", zap.String("island", isl.name), zap.Error(err))
}

// attach binds this island to an archipelago through a non-owning
// back-reference; called from Archipelago.pushBackIsland after the idx map
// mutex has been released, and from Archipelago.Load. The fixed lock order
// is island mutex before idx map mutex; attach takes only the island
// mutex and runs with no archipelago mutex held.
func (isl *Island) attach(archi *Archipelago) {
	isl.mu.Lock()
	isl.archi = archi
	isl.mu.Unlock()
}

// close stops the island's worker goroutine once its queue drains; called
// by Archipelago only after Wait()ing for every island to reach idle.
func (isl *Island) close() {
	isl.mu.Lock()
	isl.closed = true
	isl.cond.Broadcast()
	isl.mu.Unlock()
	if t, ok := isl.udi.(*ThreadUDI); ok {
		t.Close()
	}
}

// checkInvariants is an internal assertion for conditions that indicate a
// bug in this package rather than bad user input. No code path in the
// package calls it; Archipelago.PushBack does not run it.
func (isl *Island) checkInvariants() {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	if isl.pop.Problem() != isl.problem && isl.problem != nil {
		chk.Panic("island %q: population problem does not match island problem", isl.name)
	}
}
