package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "traininglog", Name: "api_requests_total", Help: "Handled API requests",
	}, []string{"method", "status"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "traininglog", Name: "handler_errors_total", Help: "Handler errors",
	})
	Exports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "traininglog", Name: "exports_total", Help: "Generated export files",
	}, []string{"format"})
	EntryCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "traininglog", Name: "entries", Help: "Training entries in the store",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "traininglog", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(APIRequests, HandlerErrors, Exports, EntryCount, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
