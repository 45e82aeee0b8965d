// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archigoga

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metricsSet is the small registered metric surface: per-island
// evolve-step counters, migration counters, and an island-status gauge.
// It is entirely optional — an Archipelago built
// with ArchipelagoOptions.MetricsNamespace == "" carries a nil *metricsSet
// and every call site below already guards on that (island.go, archipelago.go).
type metricsSet struct {
	evolveSteps   *prometheus.CounterVec
	migrants      *prometheus.CounterVec
	islandStatus  *prometheus.GaugeVec
	registerOnce  *prometheus.Registry
}

// newMetricsSet registers (on a private registry, so multiple archipelagos
// in one process never collide on global registration the way a bare
// promauto.With(prometheus.DefaultRegisterer) would) the counters and
// gauges — archigoga itself exposes no HTTP endpoint, consistent with
// "no CLI... mandated".
func newMetricsSet(namespace string) *metricsSet {
	reg := prometheus.NewRegistry()
	m := &metricsSet{
		registerOnce: reg,
		evolveSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "island_evolve_steps_total",
			Help:      "Evolve steps completed per island, by outcome.",
		}, []string{"island", "outcome"}),
		migrants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migrants_total",
			Help:      "Individuals migrated, by direction (pulled/published).",
		}, []string{"direction"}),
		islandStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "island_status",
			Help:      "Last observed island status (0=idle,1=busy,2=error).",
		}, []string{"island"}),
	}
	reg.MustRegister(m.evolveSteps, m.migrants, m.islandStatus)
	return m
}

// Registry returns the private prometheus.Registry the metrics are
// registered on. metricsSet is unexported and Archipelago has no exported
// accessor for it, so code outside the package cannot reach this registry.
func (m *metricsSet) Registry() *prometheus.Registry { return m.registerOnce }

func (m *metricsSet) observeEvolveStep(island, outcome string) {
	m.evolveSteps.WithLabelValues(island, outcome).Inc()
}

func (m *metricsSet) observeMigration(direction string, count int) {
	m.migrants.WithLabelValues(direction).Add(float64(count))
}

func (m *metricsSet) setIslandStatus(island string, status IslandStatus) {
	m.islandStatus.WithLabelValues(island).Set(float64(status))
}
