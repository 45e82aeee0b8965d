// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrantDB_PublishReadExtract(t *testing.T) {
	db := newMigrantDB(2)
	require.Equal(t, 2, db.size())

	var group IndividualsGroup
	group.Append(Individual{ID: 1, X: DecisionVector{1}, F: FitnessVector{1}})
	require.NoError(t, db.publish(0, group))

	read, err := db.read(0)
	require.NoError(t, err)
	require.Equal(t, 1, read.Len())

	// read does not clear the slot.
	read2, err := db.read(0)
	require.NoError(t, err)
	require.Equal(t, 1, read2.Len())

	extracted, err := db.extract(0)
	require.NoError(t, err)
	require.Equal(t, 1, extracted.Len())

	afterExtract, err := db.read(0)
	require.NoError(t, err)
	require.Equal(t, 0, afterExtract.Len())
}

func TestMigrantDB_OutOfRange(t *testing.T) {
	db := newMigrantDB(1)
	_, err := db.read(5)
	require.Error(t, err)
	require.True(t, Is(err, ErrOutOfRange))
}

func TestMigrantDB_SnapshotAndReplace(t *testing.T) {
	db := newMigrantDB(2)
	var g IndividualsGroup
	g.Append(Individual{ID: 1, X: DecisionVector{1}, F: FitnessVector{1}})
	require.NoError(t, db.publish(1, g))

	snap := db.snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, 1, snap[1].Len())

	db.replace([]IndividualsGroup{{}, {}})
	require.Equal(t, 0, db.snapshot()[1].Len())
}

func TestDefaultPull_ClipsWeight(t *testing.T) {
	r := newRNG(1)
	var group IndividualsGroup
	for i := 0; i < 10; i++ {
		group.Append(Individual{ID: uint64(i), X: DecisionVector{float64(i)}, F: FitnessVector{float64(i)}})
	}
	idx := DefaultPull(group, 2.0, r) // weight clipped to 1.0: every index pulled
	require.Len(t, idx, 10)

	idxNone := DefaultPull(group, -1.0, r) // weight clipped to 0.0: none pulled
	require.Empty(t, idxNone)
}

func TestDefaultSelect_SingleObjectiveIsChampion(t *testing.T) {
	problem := sumSquaresProblem{nx: 1}
	pop := NewPopulation(problem, 1)
	require.NoError(t, pop.PushBackBoth(DecisionVector{3}, FitnessVector{9}))
	require.NoError(t, pop.PushBackBoth(DecisionVector{1}, FitnessVector{1}))

	group, err := DefaultSelect(pop)
	require.NoError(t, err)
	require.Equal(t, 1, group.Len())
	require.Equal(t, DecisionVector{1}, group.At(0).X)
}

func TestDefaultSelect_MultiobjectiveUsesFrontZero(t *testing.T) {
	pop := NewPopulation(biObjectiveProblem{}, 1)
	require.NoError(t, pop.PushBackBoth(DecisionVector{0}, FitnessVector{0, 4}))
	require.NoError(t, pop.PushBackBoth(DecisionVector{1}, FitnessVector{1, 1}))
	require.NoError(t, pop.PushBackBoth(DecisionVector{2}, FitnessVector{4, 0}))

	group, err := DefaultSelect(pop)
	require.NoError(t, err)
	require.GreaterOrEqual(t, group.Len(), 1)
	require.LessOrEqual(t, group.Len(), 3)
}

func TestDefaultReplace_Appends(t *testing.T) {
	problem := sumSquaresProblem{nx: 1}
	pop := NewPopulation(problem, 1)
	require.NoError(t, pop.PushBackBoth(DecisionVector{1}, FitnessVector{1}))

	var incoming IndividualsGroup
	incoming.Append(Individual{ID: 99, X: DecisionVector{5}, F: FitnessVector{25}})
	require.NoError(t, DefaultReplace(&pop, incoming))
	require.Equal(t, 2, pop.Len())
	require.Equal(t, DecisionVector{5}, pop.At(1).X)
}
