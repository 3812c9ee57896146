package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "costarnet_build_duration_seconds",
		Help:    "Time spent loading tables and building the network",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	graphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "costarnet_graph_nodes",
		Help: "Number of nodes in the network being served",
	})

	graphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "costarnet_graph_edges",
		Help: "Number of aggregated edges in the network being served",
	})

	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "costarnet_reloads_total",
		Help: "Load cycles by result",
	}, []string{"result"})

	costarCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "costarnet_costar_cache_total",
		Help: "Costar cache lookups by result",
	}, []string{"result"})
)
