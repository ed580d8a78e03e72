package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(uploadsTotal, uploadBytes, exportsTotal)
}

var uploadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Total number of upload requests, labeled by outcome.",
	},
	[]string{"outcome"}, // 'accepted', 'rejected', 'failed'
)

var uploadBytes = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "upload_bytes",
		Help:    "Size distribution of accepted video uploads.",
		Buckets: prometheus.ExponentialBuckets(1<<20, 4, 8), // 1MB .. ~16GB
	},
)

var exportsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "exports_total",
		Help: "Total number of export downloads, labeled by format.",
	},
	[]string{"format"},
)

func IncUpload(outcome string) {
	uploadsTotal.WithLabelValues(norm(outcome)).Inc()
}

func ObserveUploadBytes(n int64) {
	if n > 0 {
		uploadBytes.Observe(float64(n))
	}
}

func IncExport(format string) {
	exportsTotal.WithLabelValues(norm(format)).Inc()
}
