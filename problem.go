// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import "context"

// Problem is the opaque evaluator handle: given a decision vector it
// returns a fitness vector, and it reports its own dimensions and bounds.
// User code can be swapped per-island without the core knowing the
// concrete type.
type Problem interface {
	// Fitness evaluates x, returning a FitnessVector of length Nf().
	Fitness(ctx context.Context, x DecisionVector) (FitnessVector, error)

	// Bounds returns the per-component lower/upper limits used by
	// Population.RandomDecisionVector.
	Bounds() Bounds

	Nx() int
	Nf() int
	Nobj() int
	Nec() int
	Nic() int

	// Name is descriptive only.
	Name() string
}

// BatchProblem is an optional capability: a Problem may additionally expose
// a vectorized fitness evaluation. Islands prefer it over looping Fitness
// when present and a BatchEvaluator was not separately supplied.
type BatchProblem interface {
	Problem
	BatchFitness(ctx context.Context, xs []DecisionVector) ([]FitnessVector, error)
}

// GradientProblem is an optional capability exposing the fitness Jacobian.
// archigoga never calls it itself; it exists purely so Algorithm
// implementations supplied by the embedder can type-assert for it.
type GradientProblem interface {
	Problem
	Gradient(ctx context.Context, x DecisionVector) ([]float64, error)
}

// validateX checks that x has the length Problem.Nx demands.
func validateX(p Problem, x DecisionVector) error {
	if len(x) != p.Nx() {
		return newErr(ErrDimensionMismatch, "decision vector has length %d, want %d (problem %q)", len(x), p.Nx(), p.Name())
	}
	return nil
}

// validateF checks that f has the length Problem.Nf demands.
func validateF(p Problem, f FitnessVector) error {
	if len(f) != p.Nf() {
		return newErr(ErrDimensionMismatch, "fitness vector has length %d, want %d (problem %q)", len(f), p.Nf(), p.Name())
	}
	return nil
}
