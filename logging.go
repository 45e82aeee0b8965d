// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

// This file documents archigoga's logging posture.
// A single *zap.Logger (go.uber.org/zap) is threaded from Archipelago down
// into every Island via Archipelago.SetLogger and Archipelago.pushBackIsland,
// so that migration and failure events from every island interleave in one
// structured stream. See Island.latch (island.go) for the one log line
// archigoga currently emits on the hot path: a Warn when an evolve step's
// error is latched, with the island name and cause attached as structured
// fields rather than formatted into the message, so that log aggregation can
// group failures by island without parsing text.
