// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"context"
)

// IslandFactory rebuilds the opaque, embedder-owned parts of one island
// (Problem, Algorithm, UDI, optional BatchEvaluator) from their raw encoded
// form. archigoga cannot decode these itself — they are user plug-ins — so
// Load delegates to a factory supplied by the embedder.
type IslandFactory func(ctx context.Context, rec IslandRecord) (algo Algorithm, problem Problem, udi UDI, batchEval BatchEvaluator, err error)

// ToRecord snapshots the archipelago into its persisted triple. The
// Problem/Algorithm/UDI/BatchEvaluator fields of each IslandRecord are left
// empty; an embedder wanting those encoded supplies its own island-level
// encode step before calling a Codec. The topology is encoded directly,
// since its built-in kinds are owned by this package rather than the
// embedder.
func (a *Archipelago) ToRecord() (ArchipelagoRecord, error) {
	rec := ArchipelagoRecord{}
	for _, isl := range a.islandsSnapshot() {
		pop := isl.GetPopulation()
		rec.Islands = append(rec.Islands, IslandRecord{
			Name:       isl.GetName(),
			Population: pop.ToRecord(),
		})
	}
	rec.MigrantDB = a.GetMigrantsDB()

	a.topoMu.RLock()
	topo := a.topo
	a.topoMu.RUnlock()
	raw, err := marshalTopology(topo)
	if err != nil {
		return ArchipelagoRecord{}, err
	}
	rec.TopologyRaw = raw
	return rec, nil
}

// Save encodes the archipelago's record via codec into w.
func (a *Archipelago) Save(codec Codec, w interface {
	Write(p []byte) (int, error)
}) error {
	rec, err := a.ToRecord()
	if err != nil {
		return err
	}
	return codec.Encode(w, rec)
}

// Load rebuilds a complete archipelago from rec using factory to
// reconstruct each island's opaque collaborators, and only on full success
// move-assigns it into a. Loading is atomic: a temporary archipelago is
// built first, and only on full success is it move-assigned into a (which
// first waits for a's own in-flight evolutions to finish). On any failure,
// a is left untouched.
func (a *Archipelago) Load(ctx context.Context, rec ArchipelagoRecord, factory IslandFactory, opts ArchipelagoOptions) error {
	tmp := NewArchipelago(opts)
	for _, isRec := range rec.Islands {
		algo, problem, udi, batchEval, err := factory(ctx, isRec)
		if err != nil {
			return wrapUserFailure(err, "island factory failed for %q", isRec.Name)
		}
		pop, err := FromRecord(problem, isRec.Population)
		if err != nil {
			return err
		}
		if _, err := tmp.PushBackPopulation(algo, pop, IslandOptions{Name: isRec.Name, UDI: udi, BatchEvaluator: batchEval}); err != nil {
			return err
		}
	}
	if err := tmp.SetMigrantsDB(rec.MigrantDB); err != nil {
		return err
	}
	if len(rec.TopologyRaw) > 0 {
		topo, err := unmarshalTopology(rec.TopologyRaw)
		if err != nil {
			return err
		}
		tmp.topoMu.Lock()
		tmp.topo = topo
		tmp.topoMu.Unlock()
	}

	a.waitAllIdle()
	for _, isl := range a.islandsSnapshot() {
		isl.close()
	}

	a.idxMu.Lock()
	a.islands = tmp.islands
	a.idxMap = tmp.idxMap
	a.idxMu.Unlock()

	a.topoMu.Lock()
	a.topo = tmp.topo
	a.topoMu.Unlock()

	a.migrants = tmp.migrants
	for _, isl := range a.islandsSnapshot() {
		isl.attach(a)
	}
	return nil
}
