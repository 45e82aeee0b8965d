// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// IslandOptions configures a single Island, replacing the scattershot of
// constructor-argument combinations an embedder would otherwise have to
// juggle directly.
type IslandOptions struct {
	// PopulationSize is used when constructing a fresh Population; ignored
	// when an existing Population is supplied to NewIslandFromPopulation.
	PopulationSize int

	// Seed seeds this island's Population RNG. Zero means "derive it from
	// the enclosing Archipelago's meta-RNG, or fall back to the process
	// generator if standalone".
	Seed int

	// UDI decides how evolution work is dispatched. Nil means "use the
	// enclosing Archipelago's ArchipelagoOptions.DefaultUDI", or
	// NewThreadUDI(1) (udi.go) for a standalone island built without one.
	UDI UDI

	// BatchEvaluator, if set, evaluates the initial random generation that
	// NewIsland builds, in place of the Problem's own (optional)
	// BatchFitness. Evolve steps and UDIs do not use it.
	BatchEvaluator BatchEvaluator

	// Name is descriptive only (Island.Name()).
	Name string
}

// Default fills unset fields: PopulationSize defaults to 24, Seed stays 0
// (meaning "derive").
func (o *IslandOptions) Default() {
	if o.PopulationSize == 0 {
		o.PopulationSize = 24
	}
}

// ArchipelagoOptions configures archipelago-wide defaults: the meta-RNG
// seed, the migration policy (migrants.go), and the default topology
// and UDI new islands inherit when none is specified per-island.
type ArchipelagoOptions struct {
	Seed             int
	MigrationPolicy  MigrationPolicy
	DefaultTopology  Topology
	DefaultUDI       func() UDI
	MaxIslands       int // 0 means DefaultMaxIslands
	MetricsNamespace string
}

// DefaultMaxIslands is the implementation-defined ceiling push_back enforces
//, chosen generously since the core is single-process.
const DefaultMaxIslands = 1 << 16

// Default fills unset fields: MaxIslands, DefaultTopology and DefaultUDI.
func (o *ArchipelagoOptions) Default() {
	if o.MaxIslands == 0 {
		o.MaxIslands = DefaultMaxIslands
	}
	if o.DefaultTopology == nil {
		o.DefaultTopology = NewUnconnectedTopology()
	}
	if o.DefaultUDI == nil {
		o.DefaultUDI = func() UDI { return NewThreadUDI(1) }
	}
}

// ReadArchipelagoOptions loads options from a JSON file: the raw bytes are
// read via gosl/io.ReadFile, defaulted first, then unmarshaled over the
// defaults; malformed input panics via gosl/chk (a programmer/deployment
// error, not part of the public error taxonomy).
func ReadArchipelagoOptions(path string) ArchipelagoOptions {
	var o ArchipelagoOptions
	o.Default()
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("cannot read archipelago options file %q", path)
	}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &o); err != nil {
			chk.Panic("cannot unmarshal archipelago options file %q: %v", path, err)
		}
	}
	return o
}
