package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quotedesk_import_documents_total",
		Help: "Quotation documents processed, by final status.",
	}, []string{"status"})

	mergeOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quotedesk_import_merge_outcomes_total",
		Help: "Catalog merge outcomes produced by imports.",
	}, []string{"entity", "outcome"})

	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quotedesk_import_document_duration_seconds",
		Help:    "Time to parse and merge one quotation document.",
		Buckets: prometheus.DefBuckets,
	})
)
