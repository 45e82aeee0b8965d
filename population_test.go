// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRandomPopulation_Invariants(t *testing.T) {
	problem := sumSquaresProblem{nx: 3}
	pop, err := NewRandomPopulation(context.Background(), problem, 6, 7)
	require.NoError(t, err)
	require.Equal(t, 6, pop.Len())
	require.Len(t, pop.IDs(), 6)
	require.Len(t, pop.Xs(), 6)
	require.Len(t, pop.Fs(), 6)
	for i := 0; i < pop.Len(); i++ {
		require.Len(t, pop.Xs()[i], problem.Nx())
		require.Len(t, pop.Fs()[i], problem.Nf())
	}
}

func TestPushBack_ReadBackMatches(t *testing.T) {
	problem := sumSquaresProblem{nx: 2}
	pop := NewPopulation(problem, 1)
	x := DecisionVector{1, 2}
	require.NoError(t, pop.PushBack(context.Background(), x))
	require.Equal(t, 1, pop.Len())
	last := pop.At(pop.Len() - 1)
	require.Equal(t, x, last.X)
	wantF, err := problem.Fitness(context.Background(), x)
	require.NoError(t, err)
	require.Equal(t, wantF, last.F)
}

func TestPushBack_DimensionMismatchLeavesPopulationUnchanged(t *testing.T) {
	problem := sumSquaresProblem{nx: 2}
	pop := NewPopulation(problem, 1)
	require.NoError(t, pop.PushBack(context.Background(), DecisionVector{1, 2}))
	err := pop.PushBack(context.Background(), DecisionVector{1, 2, 3})
	require.Error(t, err)
	require.True(t, Is(err, ErrDimensionMismatch))
	require.Equal(t, 1, pop.Len())
}

func TestNewPopulation_DeterministicGivenSameSeed(t *testing.T) {
	problem := sumSquaresProblem{nx: 2}
	pop1, err := NewRandomPopulation(context.Background(), problem, 5, 123)
	require.NoError(t, err)
	pop2, err := NewRandomPopulation(context.Background(), problem, 5, 123)
	require.NoError(t, err)
	require.Equal(t, pop1.IDs(), pop2.IDs())
	require.Equal(t, pop1.Xs(), pop2.Xs())
}

func TestChampion_FeasibleFirstThenObjective(t *testing.T) {
	problem := sumSquaresProblem{nx: 1}
	pop := NewPopulation(problem, 1)
	require.NoError(t, pop.PushBackBoth(DecisionVector{3}, FitnessVector{9}))
	require.NoError(t, pop.PushBackBoth(DecisionVector{1}, FitnessVector{1}))
	require.NoError(t, pop.PushBackBoth(DecisionVector{2}, FitnessVector{4}))
	best, err := pop.Champion(nil)
	require.NoError(t, err)
	require.Equal(t, DecisionVector{1}, pop.At(best).X)
}

func TestChampion_RejectsMultiobjective(t *testing.T) {
	pop := NewPopulation(biObjectiveProblem{}, 1)
	require.NoError(t, pop.PushBackBoth(DecisionVector{1}, FitnessVector{1, 1}))
	_, err := pop.Champion(nil)
	require.Error(t, err)
	require.True(t, Is(err, ErrInvalidOperation))
}

func TestSetBoth_PreservesID(t *testing.T) {
	problem := sumSquaresProblem{nx: 1}
	pop := NewPopulation(problem, 1)
	require.NoError(t, pop.PushBackBoth(DecisionVector{1}, FitnessVector{1}))
	id := pop.At(0).ID
	require.NoError(t, pop.SetBoth(0, DecisionVector{2}, FitnessVector{4}))
	require.Equal(t, id, pop.At(0).ID)
	require.Equal(t, DecisionVector{2}, pop.At(0).X)
}

func TestClone_IsIndependent(t *testing.T) {
	problem := sumSquaresProblem{nx: 1}
	pop := NewPopulation(problem, 1)
	require.NoError(t, pop.PushBackBoth(DecisionVector{1}, FitnessVector{1}))
	clone := pop.Clone()
	require.NoError(t, clone.SetBoth(0, DecisionVector{9}, FitnessVector{81}))
	require.Equal(t, DecisionVector{1}, pop.At(0).X)
	require.Equal(t, DecisionVector{9}, clone.At(0).X)
}
