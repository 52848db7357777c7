// Package metrics defines prometheus metrics to expose
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "invoicescan_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"method", "path"},
	)

	ResponseCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoicescan_http_response_codes_total",
			Help: "HTTP responses by route and status code",
		},
		[]string{"path", "code"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "invoicescan_extraction_duration_seconds",
			Help:    "Time spent in the invoice extractor in seconds",
			Buckets: []float64{.01, .1, .5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"mode"},
	)

	Extractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoicescan_extractions_total",
			Help: "Invoice extractions by mode and outcome (ok or the upstream error kind)",
		},
		[]string{"mode", "outcome"},
	)

	UploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "invoicescan_upload_bytes",
			Help:    "Size of uploaded invoice images in bytes",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 8),
		},
	)
)
