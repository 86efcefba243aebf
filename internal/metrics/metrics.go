// Package metrics holds the prometheus collectors describing the road graph.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadgraph_mutations_total",
		Help: "Total map mutations applied, by operation",
	}, []string{"op"})
	NoopTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadgraph_noop_total",
		Help: "Total map mutations ignored because an ID was stale, by operation",
	}, []string{"op"})
	Dirt = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roadgraph_dirt",
		Help: "Latest map version counter",
	})
	Entities = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "roadgraph_entities",
		Help: "Live entities in the map, by kind",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(NoopTotal)
	prometheus.MustRegister(Dirt)
	prometheus.MustRegister(Entities)
}

// Mutation counts an applied operation
func Mutation(op string) {
	MutationsTotal.WithLabelValues(op).Inc()
}

// Noop counts an ignored operation
func Noop(op string) {
	NoopTotal.WithLabelValues(op).Inc()
}

// Handler exposes registered metrics for scraping
func Handler() http.Handler { return promhttp.Handler() }
