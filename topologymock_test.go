// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga_test

import (
	"context"
	"testing"

	archigoga "github.com/cpmech/archigoga"
	"github.com/cpmech/archigoga/archigogamock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// extProblem and extIdentity stand in for the package-internal test fixtures,
// which this external test package cannot see.
type extProblem struct{}

func (extProblem) Fitness(_ context.Context, x archigoga.DecisionVector) (archigoga.FitnessVector, error) {
	return archigoga.FitnessVector{x[0] * x[0]}, nil
}
func (extProblem) Bounds() archigoga.Bounds {
	return archigoga.Bounds{Lo: []float64{-5}, Hi: []float64{5}}
}
func (extProblem) Nx() int      { return 1 }
func (extProblem) Nf() int      { return 1 }
func (extProblem) Nobj() int    { return 1 }
func (extProblem) Nec() int     { return 0 }
func (extProblem) Nic() int     { return 0 }
func (extProblem) Name() string { return "ext" }

type extIdentity struct{}

func (extIdentity) Evolve(_ context.Context, pop archigoga.Population) (archigoga.Population, error) {
	return pop, nil
}
func (extIdentity) Name() string { return "identity" }

// TestArchipelago_PushBackGrowsTopology uses a generated gomock Topology to
// assert that Archipelago.PushBack grows the topology exactly once per
// island, independent of whatever edge policy the concrete Topology
// implements.
func TestArchipelago_PushBackGrowsTopology(t *testing.T) {
	ctrl := gomock.NewController(t)
	topo := archigogamock.NewMockTopology(ctrl)

	gomock.InOrder(
		topo.EXPECT().PushBack(),
		topo.EXPECT().PushBack(),
	)
	topo.EXPECT().NumVertices().Return(0).AnyTimes()

	archi := archigoga.NewArchipelago(archigoga.ArchipelagoOptions{Seed: 1, DefaultTopology: topo})
	problem := extProblem{}

	for i := 0; i < 2; i++ {
		_, err := archi.PushBack(context.Background(), extIdentity{}, problem, archigoga.IslandOptions{
			PopulationSize: 2, Seed: i + 1, UDI: archigoga.NewInlineUDI(),
		})
		require.NoError(t, err)
	}
}
