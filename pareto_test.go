// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortPopulationMO_FrontZeroIsNonDominated(t *testing.T) {
	fs := []FitnessVector{
		{0, 4}, // front 0
		{1, 1}, // front 0
		{4, 0}, // front 0
		{2, 2}, // dominated by {1,1}
	}
	info := SortPopulationMO(fs, 2)
	require.Len(t, info, 4)
	require.Equal(t, 0, info[0].Front)
	require.Equal(t, 0, info[1].Front)
	require.Equal(t, 0, info[2].Front)
	require.Greater(t, info[3].Front, 0)
}

func TestSortPopulationMO_BoundaryCrowdingIsInfinite(t *testing.T) {
	fs := []FitnessVector{
		{0, 4},
		{1, 1},
		{4, 0},
	}
	info := SortPopulationMO(fs, 2)
	require.Equal(t, INF, info[0].Crowding)
	require.Equal(t, INF, info[2].Crowding)
}

func TestSortPopulationMO_EmptyInput(t *testing.T) {
	info := SortPopulationMO(nil, 2)
	require.Empty(t, info)
}

func TestDominatesMO(t *testing.T) {
	require.True(t, dominatesMO(FitnessVector{1, 1}, FitnessVector{2, 2}, 2))
	require.False(t, dominatesMO(FitnessVector{1, 2}, FitnessVector{2, 1}, 2))
}
