package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profilesync",
			Name:      "uploads_total",
			Help:      "Profile upserts by outcome (created, updated, error).",
		},
		[]string{"result"},
	)

	bulkDecodeSkipsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "profilesync",
			Name:      "bulk_decode_skips_total",
			Help:      "Records silently skipped during listing because their payload did not decode.",
		},
	)
)
