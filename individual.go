// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

// Individual is the essential (ID, x, f) triple of the data model: a plain
// value type carrying no algorithm-internal bookkeeping. Anything a
// particular selection step needs (front rank, crowding distance, ...)
// lives in a transient slice computed alongside it instead, see pareto.go.
type Individual struct {
	ID uint64
	X  DecisionVector
	F  FitnessVector
}

// Clone returns a deep copy of ind.
func (ind Individual) Clone() Individual {
	return Individual{ID: ind.ID, X: ind.X.Clone(), F: ind.F.Clone()}
}

// IndividualsGroup is three parallel sequences of equal length: the bulk
// transfer unit used by migration (MigrantDB) and by Population's batch
// getters.
type IndividualsGroup struct {
	IDs []uint64
	Xs  []DecisionVector
	Fs  []FitnessVector
}

// Len returns the number of individuals in the group.
func (g IndividualsGroup) Len() int { return len(g.IDs) }

// At returns the i-th individual in the group as a standalone Individual.
func (g IndividualsGroup) At(i int) Individual {
	return Individual{ID: g.IDs[i], X: g.Xs[i], F: g.Fs[i]}
}

// Append appends ind to the group.
func (g *IndividualsGroup) Append(ind Individual) {
	g.IDs = append(g.IDs, ind.ID)
	g.Xs = append(g.Xs, ind.X)
	g.Fs = append(g.Fs, ind.F)
}

// Clone returns a deep copy of the group.
func (g IndividualsGroup) Clone() IndividualsGroup {
	out := IndividualsGroup{
		IDs: append([]uint64(nil), g.IDs...),
		Xs:  make([]DecisionVector, len(g.Xs)),
		Fs:  make([]FitnessVector, len(g.Fs)),
	}
	for i := range g.Xs {
		out.Xs[i] = g.Xs[i].Clone()
		out.Fs[i] = g.Fs[i].Clone()
	}
	return out
}
