// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import "context"

// Algorithm is the opaque population-to-population evolver: pure with
// respect to archipelago state, and required not to retain references to
// the Population it was handed once Evolve returns.
type Algorithm interface {
	// Evolve consumes pop by value semantics (the returned Population may
	// share no mutable backing storage with pop) and returns the evolved
	// generation.
	Evolve(ctx context.Context, pop Population) (Population, error)

	// Name is descriptive only.
	Name() string
}
