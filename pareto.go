// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"sort"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// FrontInfo carries the non-dominated-sorting outputs SortPopulationMO
// computes per individual: its Pareto front rank and crowding distance
// within that front.
type FrontInfo struct {
	Front    int
	Crowding float64
}

// SortPopulationMO performs non-dominated sorting plus crowding-distance
// computation over a multiobjective population's objective vectors
// (f[0:Nobj]). It is exposed standalone (not a
// Population method) because its caller in this package, the archipelago's
// default post-evolve emigrant selection policy (migrants.go), does not
// need to mutate the Population itself.
func SortPopulationMO(fs []FitnessVector, nobj int) []FrontInfo {
	n := len(fs)
	info := make([]FrontInfo, n)
	if n == 0 {
		return info
	}

	dominatedBy := make([][]int, n) // idom: individuals dominated by i
	dominatedCount := make([]int, n) // ndby: number of times i is dominated

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if dominatesMO(fs[i], fs[j], nobj) {
				dominatedBy[i] = append(dominatedBy[i], j)
			} else if dominatesMO(fs[j], fs[i], nobj) {
				dominatedCount[i]++
			}
		}
	}

	remaining := n
	frontOf := make([]int, n)
	for i := range frontOf {
		frontOf[i] = -1
	}
	front := 0
	ndby := append([]int(nil), dominatedCount...)
	for remaining > 0 {
		var current []int
		for i := 0; i < n; i++ {
			if frontOf[i] == -1 && ndby[i] == 0 {
				current = append(current, i)
			}
		}
		if len(current) == 0 {
			// defensive: break cycles caused by NaN fitness values rather
			// than looping forever; dump everything left into one last front.
			for i := 0; i < n; i++ {
				if frontOf[i] == -1 {
					current = append(current, i)
				}
			}
		}
		for _, i := range current {
			frontOf[i] = front
			remaining--
			for _, j := range dominatedBy[i] {
				if frontOf[j] == -1 {
					ndby[j]--
				}
			}
		}
		front++
	}

	for i := 0; i < n; i++ {
		info[i].Front = frontOf[i]
	}
	assignCrowding(fs, info, nobj)
	return info
}

// dominatesMO reports whether a Pareto-dominates b over the first nobj
// components of f: lower is better in every objective, strictly better in
// at least one.
func dominatesMO(a, b FitnessVector, nobj int) bool {
	aDom, _ := utl.DblsParetoMin(a[:nobj], b[:nobj])
	return aDom
}

// assignCrowding computes the crowding distance of each individual within
// its own front, per objective, summing normalized neighbor gaps — the
// standard NSGA-II definition, using gosl/la.VecMinMax for the
// per-objective span.
func assignCrowding(fs []FitnessVector, info []FrontInfo, nobj int) {
	maxFront := 0
	for _, fi := range info {
		if fi.Front > maxFront {
			maxFront = fi.Front
		}
	}
	for front := 0; front <= maxFront; front++ {
		var members []int
		for i, fi := range info {
			if fi.Front == front {
				members = append(members, i)
			}
		}
		if len(members) == 0 {
			continue
		}
		if len(members) <= 2 {
			for _, i := range members {
				info[i].Crowding = INF
			}
			continue
		}
		for _, obj := range rangeInt(nobj) {
			col := make([]float64, len(members))
			for k, m := range members {
				col[k] = fs[m][obj]
			}
			lo, hi := la.VecMinMax(col)
			sort.Slice(members, func(a, b int) bool {
				return fs[members[a]][obj] < fs[members[b]][obj]
			})
			info[members[0]].Crowding = INF
			info[members[len(members)-1]].Crowding = INF
			span := hi - lo
			if span < 1e-15 {
				span = 1e-15
			}
			for k := 1; k < len(members)-1; k++ {
				delta := fs[members[k+1]][obj] - fs[members[k-1]][obj]
				info[members[k]].Crowding += delta / span
			}
		}
	}
}

func rangeInt(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// INF is used as a boundary-individual crowding distance sentinel.
const INF = 1e+30
