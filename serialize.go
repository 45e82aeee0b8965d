// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"encoding/json"
	"io"
)

// Codec is the pluggable sink/source abstraction: no on-disk format is
// mandated, only that the serialization medium support primitive types and
// the composite records below. archigoga ships one default implementation
// (jsonCodec, below); an embedder may supply a binary Codec of their own
// (e.g. a protobuf-backed one) without archigoga caring.
type Codec interface {
	Encode(w io.Writer, v interface{}) error
	Decode(r io.Reader, v interface{}) error
}

type jsonCodec struct{}

// JSONCodec is the default Codec.
func JSONCodec() Codec { return jsonCodec{} }

func (jsonCodec) Encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

func (jsonCodec) Decode(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	return dec.Decode(v)
}

// IndividualRecord is the wire shape of one Individual.
type IndividualRecord struct {
	ID uint64    `json:"id"`
	X  []float64 `json:"x"`
	F  []float64 `json:"f"`
}

// PopulationRecord is the wire shape of a Population, minus its bound
// Problem (which is opaque user code and is persisted separately as
// whatever the embedder's own Problem serialization format is — archigoga
// only promises to round-trip IDs, Xs, Fs and the seed).
type PopulationRecord struct {
	Seed        int                `json:"seed"`
	Individuals []IndividualRecord `json:"individuals"`
}

// ToRecord converts p to its wire representation.
func (p Population) ToRecord() PopulationRecord {
	rec := PopulationRecord{Seed: p.seed}
	for i := range p.ids {
		rec.Individuals = append(rec.Individuals, IndividualRecord{
			ID: p.ids[i],
			X:  append([]float64(nil), p.xs[i]...),
			F:  append([]float64(nil), p.fs[i]...),
		})
	}
	return rec
}

// FromRecord rebuilds a Population bound to problem from rec, bypassing
// Problem.Fitness re-evaluation: the persisted fitness values are trusted,
// the same way PushBackBoth trusts caller-supplied fitness.
func FromRecord(problem Problem, rec PopulationRecord) (Population, error) {
	pop := NewPopulation(problem, rec.Seed)
	for _, ind := range rec.Individuals {
		if err := pop.PushBackBoth(DecisionVector(ind.X), FitnessVector(ind.F)); err != nil {
			return Population{}, err
		}
		pop.ids[len(pop.ids)-1] = ind.ID // PushBackBoth draws a fresh ID; restore the persisted one
	}
	return pop, nil
}

// IslandRecord is the wire shape of one Island: problem, algorithm, udi,
// population, and an optional batch evaluator. The Problem/Algorithm/UDI/
// BatchEvaluator fields are left as opaque JSON (json.RawMessage) because
// they are user-supplied plug-ins whose concrete encoding archigoga cannot
// know; only Population and Name are owned by this package.
type IslandRecord struct {
	Name           string           `json:"name"`
	Problem        json.RawMessage  `json:"problem,omitempty"`
	Algorithm      json.RawMessage  `json:"algorithm,omitempty"`
	UDI            json.RawMessage  `json:"udi,omitempty"`
	Population     PopulationRecord `json:"population"`
	BatchEvaluator json.RawMessage  `json:"batch_evaluator,omitempty"`
}

// ArchipelagoRecord is the wire shape of a whole Archipelago: the triple
// (islands, migrant_db, topology).
type ArchipelagoRecord struct {
	Islands     []IslandRecord     `json:"islands"`
	MigrantDB   []IndividualsGroup `json:"migrant_db"`
	TopologyRaw json.RawMessage    `json:"topology,omitempty"`
}

// topologyRecord is the wire shape of one of the built-in Topology kinds:
// a kind tag plus the parameters needed to rebuild it.
type topologyRecord struct {
	Kind   string  `json:"kind"`
	N      int     `json:"n"`
	Weight float64 `json:"weight,omitempty"`
}

// marshalTopology encodes one of the three built-in Topology kinds into its
// wire record. Topology implementations supplied by an embedder (including
// mocks) have no concrete kind to tag and cannot be round-tripped this way.
func marshalTopology(t Topology) (json.RawMessage, error) {
	switch v := t.(type) {
	case *unconnectedTopology:
		return json.Marshal(topologyRecord{Kind: "unconnected", N: v.NumVertices()})
	case *fullyConnectedTopology:
		return json.Marshal(topologyRecord{Kind: "fully_connected", N: v.NumVertices(), Weight: v.weight})
	case *ringTopology:
		return json.Marshal(topologyRecord{Kind: "ring", N: v.NumVertices(), Weight: v.weight})
	default:
		return nil, newErr(ErrInvalidOperation, "topology of type %T cannot be serialized", t)
	}
}

// unmarshalTopology rebuilds a built-in Topology from raw, growing it back
// to its recorded vertex count.
func unmarshalTopology(raw json.RawMessage) (Topology, error) {
	var rec topologyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	var t Topology
	switch rec.Kind {
	case "unconnected":
		t = NewUnconnectedTopology()
	case "fully_connected":
		t = NewFullyConnectedTopology(rec.Weight)
	case "ring":
		t = NewRingTopology(rec.Weight)
	default:
		return nil, newErr(ErrInvalidOperation, "unknown topology kind %q", rec.Kind)
	}
	for i := 0; i < rec.N; i++ {
		t.PushBack()
	}
	return t, nil
}

// toMigrantRecord converts an IndividualsGroup into the flat shape JSON
// round-trips cleanly (DecisionVector/FitnessVector are already []float64,
// so the default encoding already works; this helper exists for symmetry
// with ToRecord/FromRecord).
func (g IndividualsGroup) toMigrantRecord() []IndividualRecord {
	out := make([]IndividualRecord, g.Len())
	for i := 0; i < g.Len(); i++ {
		ind := g.At(i)
		out[i] = IndividualRecord{ID: ind.ID, X: []float64(ind.X), F: []float64(ind.F)}
	}
	return out
}
