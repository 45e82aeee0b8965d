// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import "context"

// BatchEvaluator is an optional per-island collaborator that vectorizes
// fitness evaluation across a whole batch of decision vectors, independent
// of whether the bound Problem itself exposes BatchFitness (problem.go). An
// Island prefers an explicitly supplied BatchEvaluator over the Problem's
// own batch capability when both are present.
type BatchEvaluator interface {
	EvaluateBatch(ctx context.Context, problem Problem, xs []DecisionVector) ([]FitnessVector, error)
}

// batchEvaluatorFunc adapts a plain function to BatchEvaluator.
type batchEvaluatorFunc func(ctx context.Context, problem Problem, xs []DecisionVector) ([]FitnessVector, error)

func (f batchEvaluatorFunc) EvaluateBatch(ctx context.Context, problem Problem, xs []DecisionVector) ([]FitnessVector, error) {
	return f(ctx, problem, xs)
}

// BatchEvaluatorFunc returns a BatchEvaluator backed by f, for embedders who
// would rather hand over a closure than implement the interface.
func BatchEvaluatorFunc(f func(ctx context.Context, problem Problem, xs []DecisionVector) ([]FitnessVector, error)) BatchEvaluator {
	return batchEvaluatorFunc(f)
}
