// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnconnectedTopology_NoEdges(t *testing.T) {
	topo := NewUnconnectedTopology()
	for i := 0; i < 5; i++ {
		topo.PushBack()
	}
	require.Equal(t, 5, topo.NumVertices())
	sources, weights, err := topo.GetConnections(4)
	require.NoError(t, err)
	require.Empty(t, sources)
	require.Empty(t, weights)
}

func TestFullyConnectedTopology_AllButSelf(t *testing.T) {
	topo := NewFullyConnectedTopology(1.0)
	for i := 0; i < 3; i++ {
		topo.PushBack()
	}
	sources, weights, err := topo.GetConnections(1)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 2}, sources)
	for _, w := range weights {
		require.Equal(t, 1.0, w)
	}
}

func TestRingTopology_SinglePredecessor(t *testing.T) {
	topo := NewRingTopology(0.5)
	for i := 0; i < 4; i++ {
		topo.PushBack()
	}
	sources, weights, err := topo.GetConnections(0)
	require.NoError(t, err)
	require.Equal(t, []int{3}, sources)
	require.Equal(t, []float64{0.5}, weights)
}

func TestTopology_OutOfRange(t *testing.T) {
	topo := NewUnconnectedTopology()
	topo.PushBack()
	_, _, err := topo.GetConnections(5)
	require.Error(t, err)
	require.True(t, Is(err, ErrOutOfRange))
}

func TestTopology_CloneIsIndependent(t *testing.T) {
	topo := NewFullyConnectedTopology(1.0)
	topo.PushBack()
	topo.PushBack()
	clone := topo.Clone()
	clone.PushBack()
	require.Equal(t, 2, topo.NumVertices())
	require.Equal(t, 3, clone.NumVertices())
}
