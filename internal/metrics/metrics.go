// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics exposes Prometheus collectors for the HTTP layer, the
// public response cache and content lifecycle events.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "morphecms"

// Registry holds every morphecms collector. It is separate from the default
// registry so tests and multiple servers in one process do not collide.
var Registry = prometheus.NewRegistry()

// BuildInfo is always 1; the version lives in the label.
var BuildInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build information (always 1, version in labels)",
	},
	[]string{"version"},
)

// Cache metrics
var (
	CacheHits = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "public_cache_hits_total",
		Help:      "Public responses served from the cache",
	})

	CacheMisses = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "public_cache_misses_total",
		Help:      "Public responses that had to be built from the store",
	})

	CacheInvalidations = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "public_cache_invalidations_total",
		Help:      "Full invalidations of the public response cache",
	})
)

// ContentEvents counts content mutations by entity kind and action
// (created, updated, deleted).
var ContentEvents = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_events_total",
		Help:      "Content mutations by entity and action",
	},
	[]string{"entity", "action"},
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Init records the running version.
func Init(version string) {
	BuildInfo.WithLabelValues(version).Set(1)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
