// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archigoga is the concurrency and migration core of a parallel
// metaheuristic optimization framework: it orchestrates many independent
// evolutionary optimizers ("islands"), each running its own Population
// concurrently, while periodically exchanging individuals along a
// user-defined Topology.
//
// The package owns four things: the Population data model (population.go,
// individual.go), a type-erased plug-in boundary for user-supplied
// Problem/Algorithm/UDI/Topology/BatchEvaluator implementations (problem.go,
// algorithm.go, udi.go, topology.go, batch_evaluator.go), the per-island
// asynchronous evolve/wait lifecycle (island.go), and the Archipelago
// container that mediates migration between islands (archipelago.go,
// migrants.go). It deliberately does not implement any particular
// evolutionary algorithm, problem, or numerical utility — those are
// external collaborators satisfying the interfaces above.
package archigoga
