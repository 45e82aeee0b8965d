// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"context"
	"math"
	"sort"

	"github.com/cpmech/gosl/io"
)

// Population owns the individuals of one island: aligned triples (ID, x, f)
// bound to a Problem, plus its own RNG state and seed.
type Population struct {
	problem Problem
	seed    int
	rng     *rng
	ids     []uint64
	xs      []DecisionVector
	fs      []FitnessVector
}

// NewPopulation creates an empty population bound to problem, seeded with
// seed (0 draws a fresh seed from the process-wide fallback generator; note
// that implicit seeding this way introduces hidden cross-island ordering,
// so callers that need reproducibility should pass an explicit seed).
func NewPopulation(problem Problem, seed int) Population {
	if seed == 0 {
		seed = globalSeed()
	}
	return Population{problem: problem, seed: seed, rng: newRNG(seed)}
}

// NewRandomPopulation creates a population of n individuals, each obtained
// via RandomDecisionVector followed by PushBack.
func NewRandomPopulation(ctx context.Context, problem Problem, n int, seed int) (Population, error) {
	pop := NewPopulation(problem, seed)
	for i := 0; i < n; i++ {
		x := pop.RandomDecisionVector()
		if err := pop.PushBack(ctx, x); err != nil {
			return Population{}, err
		}
	}
	return pop, nil
}

// Len is the number of individuals in the population.
func (p Population) Len() int { return len(p.ids) }

// Problem returns the Problem this population is bound to.
func (p Population) Problem() Problem { return p.problem }

// Seed returns the seed this population's RNG was constructed with.
func (p Population) Seed() int { return p.seed }

// IDs returns a read-only view of the individual identifiers.
func (p Population) IDs() []uint64 { return p.ids }

// Xs returns a read-only view of the decision vectors.
func (p Population) Xs() []DecisionVector { return p.xs }

// Fs returns a read-only view of the fitness vectors.
func (p Population) Fs() []FitnessVector { return p.fs }

// At returns the i-th individual as a standalone value.
func (p Population) At(i int) Individual {
	return Individual{ID: p.ids[i], X: p.xs[i], F: p.fs[i]}
}

// Clone returns a deep copy of p, including RNG state, so that continuing
// to draw from the clone does not perturb the original's sequence.
func (p Population) Clone() Population {
	out := Population{
		problem: p.problem,
		seed:    p.seed,
		rng:     &rng{seed: p.rng.seed, state: p.rng.state},
		ids:     append([]uint64(nil), p.ids...),
		xs:      make([]DecisionVector, len(p.xs)),
		fs:      make([]FitnessVector, len(p.fs)),
	}
	for i := range p.xs {
		out.xs[i] = p.xs[i].Clone()
		out.fs[i] = p.fs[i].Clone()
	}
	return out
}

// RandomDecisionVector draws a decision vector uniformly within the
// problem's bounds, rounding integer-declared components to the nearest
// grid point.
func (p Population) RandomDecisionVector() DecisionVector {
	b := p.problem.Bounds()
	x := make(DecisionVector, p.problem.Nx())
	for i := range x {
		v := p.rng.float64(b.Lo[i], b.Hi[i])
		if b.isInt(i) {
			v = math.Round(v)
		}
		x[i] = v
	}
	return x
}

// PushBack validates |x| == Nx, evaluates f = problem.Fitness(x), validates
// |f| == Nf, draws a fresh ID, and appends the triple. On any validation or
// evaluation failure the population is left unchanged (strong exception
// safety).
func (p *Population) PushBack(ctx context.Context, x DecisionVector) error {
	if err := validateX(p.problem, x); err != nil {
		return err
	}
	f, err := p.evalFitness(ctx, x)
	if err != nil {
		return err
	}
	if err := validateF(p.problem, f); err != nil {
		return err
	}
	p.ids = append(p.ids, p.rng.nextID())
	p.xs = append(p.xs, x.Clone())
	p.fs = append(p.fs, f)
	return nil
}

// PushBackBoth appends an already-evaluated individual without invoking the
// Problem, used by migration injection which merges
// emigrants that were evaluated by their originating island's Problem
// instance (assumed compatible: an Island's Population.Problem is always
// the Island's own Problem).
func (p *Population) PushBackBoth(x DecisionVector, f FitnessVector) error {
	if err := validateX(p.problem, x); err != nil {
		return err
	}
	if err := validateF(p.problem, f); err != nil {
		return err
	}
	p.ids = append(p.ids, p.rng.nextID())
	p.xs = append(p.xs, x.Clone())
	p.fs = append(p.fs, f.Clone())
	return nil
}

func (p *Population) evalFitness(ctx context.Context, x DecisionVector) (f FitnessVector, err error) {
	defer recoverAsUserFailure("Problem.Fitness", &err)
	f, err = p.problem.Fitness(ctx, x)
	if err != nil {
		err = wrapUserFailure(err, "Problem.Fitness failed")
	}
	return
}

// SetBoth overwrites individual i in place without re-evaluating; the ID is
// preserved.
func (p *Population) SetBoth(i int, x DecisionVector, f FitnessVector) error {
	if i < 0 || i >= p.Len() {
		return newErr(ErrOutOfRange, "index %d out of range [0,%d)", i, p.Len())
	}
	if err := validateX(p.problem, x); err != nil {
		return err
	}
	if err := validateF(p.problem, f); err != nil {
		return err
	}
	p.xs[i] = x.Clone()
	p.fs[i] = f.Clone()
	return nil
}

// SetX is equivalent to SetBoth(i, x, problem.Fitness(x)): it re-evaluates.
func (p *Population) SetX(ctx context.Context, i int, x DecisionVector) error {
	if i < 0 || i >= p.Len() {
		return newErr(ErrOutOfRange, "index %d out of range [0,%d)", i, p.Len())
	}
	if err := validateX(p.problem, x); err != nil {
		return err
	}
	f, err := p.evalFitness(ctx, x)
	if err != nil {
		return err
	}
	if err := validateF(p.problem, f); err != nil {
		return err
	}
	p.xs[i] = x.Clone()
	p.fs[i] = f
	return nil
}

// Champion returns the index of the best individual under the standard
// constrained ordering: feasible-first, then by objective, ties
// broken by aggregated constraint violation, using per-constraint tolerance
// tol (broadcast from a single scalar to length Nec+Nic if len(tol)==1).
// Valid only for single-objective problems; fails with ErrInvalidOperation
// if Nobj() > 1 or the population is empty.
func (p Population) Champion(tol []float64) (int, error) {
	if p.problem.Nobj() > 1 {
		return -1, newErr(ErrInvalidOperation, "champion is undefined for multiobjective problems (Nobj=%d)", p.problem.Nobj())
	}
	if p.Len() == 0 {
		return -1, newErr(ErrInvalidOperation, "champion is undefined for an empty population")
	}
	nec := p.problem.Nec()
	nCons := nec + p.problem.Nic()
	tol = broadcastTol(tol, nCons)
	best := 0
	for i := 1; i < p.Len(); i++ {
		if fitnessDominates(p.fs[i], p.fs[best], nec, nCons, tol) {
			best = i
		}
	}
	return best, nil
}

func broadcastTol(tol []float64, n int) []float64 {
	out := make([]float64, n)
	switch len(tol) {
	case 0:
		// zero tolerance by default
	case 1:
		for i := range out {
			out[i] = tol[0]
		}
	default:
		copy(out, tol)
	}
	return out
}

// fitnessDominates reports whether a is preferred over b under the
// constrained single-objective ordering: feasible individuals beat
// infeasible ones; among equally-(in)feasible individuals, lower objective
// wins; among infeasible individuals with equal objective standing, lower
// aggregated (tolerance-clipped) constraint violation wins.
func fitnessDominates(a, b FitnessVector, nec, nCons int, tol []float64) bool {
	aViol := aggregateViolation(a, nec, nCons, tol)
	bViol := aggregateViolation(b, nec, nCons, tol)
	aFeas := aViol <= 0
	bFeas := bViol <= 0
	if aFeas != bFeas {
		return aFeas
	}
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return aViol < bViol
}

// aggregateViolation sums the tolerance-clipped constraint violations found
// in f[1:], i.e. f[1:1+nCons]: equality constraints are treated as |h|-tol
// and inequality constraints as max(g-tol,0), both clipped at zero, matching
// the conventional pagmo-style fitness layout [obj, ec..., ic...] that
// FitnessVector follows.
func aggregateViolation(f FitnessVector, nec, nCons int, tol []float64) float64 {
	var viol float64
	for j := 0; j < nCons; j++ {
		c := f[1+j]
		if j < nec {
			c = math.Abs(c)
		}
		c -= tol[j]
		if c > 0 {
			viol += c
		}
	}
	return viol
}

// byObjective sorts a Population's indices by ascending f[0], used by
// SortByObjective.
type byObjective struct {
	p   *Population
	idx []int
}

func (b byObjective) Len() int      { return len(b.idx) }
func (b byObjective) Swap(i, j int) { b.idx[i], b.idx[j] = b.idx[j], b.idx[i] }
func (b byObjective) Less(i, j int) bool {
	return b.p.fs[b.idx[i]][0] < b.p.fs[b.idx[j]][0]
}

// SortByObjective reorders the population in place by ascending f[0]. Valid
// for single-objective problems only; multiobjective callers should use
// SortPopulationMO instead (pareto.go).
func (p *Population) SortByObjective() error {
	if p.problem.Nobj() > 1 {
		return newErr(ErrInvalidOperation, "SortByObjective is undefined for multiobjective problems (Nobj=%d)", p.problem.Nobj())
	}
	idx := make([]int, p.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.Sort(byObjective{p: p, idx: idx})
	p.reorder(idx)
	return nil
}

func (p *Population) reorder(idx []int) {
	ids := make([]uint64, len(idx))
	xs := make([]DecisionVector, len(idx))
	fs := make([]FitnessVector, len(idx))
	for newPos, oldPos := range idx {
		ids[newPos] = p.ids[oldPos]
		xs[newPos] = p.xs[oldPos]
		fs[newPos] = p.fs[oldPos]
	}
	p.ids, p.xs, p.fs = ids, xs, fs
}

// Report renders a fixed-width table of the population using
// github.com/cpmech/gosl/io.Sf to build aligned (ID, f) columns; x is left
// unformatted since it is unbounded in width for an opaque Problem.
func (p Population) Report() string {
	var out string
	out += io.Sf("%-22s%-14s%s\n", "id", "f[0]", "x")
	for i := range p.ids {
		fval := 0.0
		if len(p.fs[i]) > 0 {
			fval = p.fs[i][0]
		}
		out += io.Sf("%-22d%-14g%v\n", p.ids[i], fval, []float64(p.xs[i]))
	}
	return out
}
