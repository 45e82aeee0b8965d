// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"context"
	"fmt"
)

// sumSquaresProblem is a tiny single-objective Problem used across tests:
// f(x) = sum(x_i^2), bounds [-5,5]^nx.
type sumSquaresProblem struct {
	nx int
}

func (p sumSquaresProblem) Fitness(ctx context.Context, x DecisionVector) (FitnessVector, error) {
	if len(x) != p.nx {
		return nil, fmt.Errorf("bad x length")
	}
	var s float64
	for _, v := range x {
		s += v * v
	}
	return FitnessVector{s}, nil
}

func (p sumSquaresProblem) Bounds() Bounds {
	lo := make([]float64, p.nx)
	hi := make([]float64, p.nx)
	for i := range lo {
		lo[i] = -5
		hi[i] = 5
	}
	return Bounds{Lo: lo, Hi: hi}
}

func (p sumSquaresProblem) Nx() int      { return p.nx }
func (p sumSquaresProblem) Nf() int      { return 1 }
func (p sumSquaresProblem) Nobj() int    { return 1 }
func (p sumSquaresProblem) Nec() int     { return 0 }
func (p sumSquaresProblem) Nic() int     { return 0 }
func (p sumSquaresProblem) Name() string { return "sum-squares" }

// biObjectiveProblem is a tiny nobj=2 Problem: f = (x0^2, (x0-2)^2).
type biObjectiveProblem struct{}

func (biObjectiveProblem) Fitness(ctx context.Context, x DecisionVector) (FitnessVector, error) {
	return FitnessVector{x[0] * x[0], (x[0] - 2) * (x[0] - 2)}, nil
}

func (biObjectiveProblem) Bounds() Bounds {
	return Bounds{Lo: []float64{-5}, Hi: []float64{5}}
}

func (biObjectiveProblem) Nx() int      { return 1 }
func (biObjectiveProblem) Nf() int      { return 2 }
func (biObjectiveProblem) Nobj() int    { return 2 }
func (biObjectiveProblem) Nec() int     { return 0 }
func (biObjectiveProblem) Nic() int     { return 0 }
func (biObjectiveProblem) Name() string { return "bi-objective" }

// identityAlgorithm returns the population unchanged (used in migration
// scenarios where the algorithm itself must not perturb x).
type identityAlgorithm struct{}

func (identityAlgorithm) Evolve(ctx context.Context, pop Population) (Population, error) {
	return pop, nil
}
func (identityAlgorithm) Name() string { return "identity" }

// gradientAlgorithm performs one step of gradient descent on f=sum(x^2):
// x <- x - lr*2*x, matching scenario A's "x <- x - 0.1*grad f(x)".
type gradientAlgorithm struct {
	lr float64
}

func (g gradientAlgorithm) Evolve(ctx context.Context, pop Population) (Population, error) {
	next := pop.Clone()
	for i, x := range next.Xs() {
		nx := make(DecisionVector, len(x))
		for j, v := range x {
			nx[j] = v - g.lr*2*v
		}
		if err := next.SetX(ctx, i, nx); err != nil {
			return pop, err
		}
	}
	return next, nil
}

func (gradientAlgorithm) Name() string { return "gradient" }

// countingAlgorithm counts how many times Evolve was called.
type countingAlgorithm struct {
	calls *int
}

func (c countingAlgorithm) Evolve(ctx context.Context, pop Population) (Population, error) {
	*c.calls++
	return pop, nil
}
func (countingAlgorithm) Name() string { return "counting" }

// failOnceAlgorithm fails on its n-th call (1-indexed), then behaves like
// identityAlgorithm forever after.
type failOnceAlgorithm struct {
	failOnCall int
	calls      *int
}

func (f failOnceAlgorithm) Evolve(ctx context.Context, pop Population) (Population, error) {
	*f.calls++
	if *f.calls == f.failOnCall {
		return pop, fmt.Errorf("simulated algorithm failure on call %d", *f.calls)
	}
	return pop, nil
}
func (failOnceAlgorithm) Name() string { return "fail-once" }

// panicAlgorithm always panics, exercising runAlgorithm's panic recovery.
type panicAlgorithm struct{}

func (panicAlgorithm) Evolve(ctx context.Context, pop Population) (Population, error) {
	panic("boom")
}
func (panicAlgorithm) Name() string { return "panic" }

// mockTopology is a hand-authored gomock-style fake implementing Topology,
// recording calls for assertions (playing the role go.uber.org/mock's
// generated mocks would).
type mockTopology struct {
	vertices    int
	connections map[int][]int
	weights     map[int][]float64
	pushBacks   int
}

func newMockTopology(vertices int) *mockTopology {
	return &mockTopology{vertices: vertices, connections: map[int][]int{}, weights: map[int][]float64{}}
}

func (m *mockTopology) PushBack() {
	m.vertices++
	m.pushBacks++
}

func (m *mockTopology) NumVertices() int { return m.vertices }

func (m *mockTopology) GetConnections(idx int) ([]int, []float64, error) {
	if idx < 0 || idx >= m.vertices {
		return nil, nil, newErr(ErrOutOfRange, "index %d out of range", idx)
	}
	return m.connections[idx], m.weights[idx], nil
}

func (m *mockTopology) Clone() Topology {
	out := newMockTopology(m.vertices)
	for k, v := range m.connections {
		out.connections[k] = append([]int(nil), v...)
	}
	for k, v := range m.weights {
		out.weights[k] = append([]float64(nil), v...)
	}
	return out
}
