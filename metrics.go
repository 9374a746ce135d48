// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

package wal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// logMetrics mirrors the instrumentation points of the log engine. When a
// Log is opened without WithRegisterer, these are registered against a
// private registry so every call site stays a safe no-op.
type logMetrics struct {
	bytesWritten          prometheus.Counter
	entriesWritten        prometheus.Counter
	appends               prometheus.Counter
	entryBytesRead        prometheus.Counter
	entriesRead           prometheus.Counter
	segmentRotations      prometheus.Counter
	entriesTruncated      *prometheus.CounterVec
	truncations           *prometheus.CounterVec
	lastSegmentAgeSeconds prometheus.Gauge
}

func newLogMetrics(reg prometheus.Registerer) *logMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	f := promauto.With(reg)
	return &logMetrics{
		bytesWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wal",
			Name:      "entry_bytes_written",
			Help:      "Bytes of log entry payload written, before framing overhead.",
		}),
		entriesWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wal",
			Name:      "entries_written",
			Help:      "Number of entries appended, across Write and WriteBatch.",
		}),
		appends: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wal",
			Name:      "appends",
			Help:      "Number of calls to Write or WriteBatch.",
		}),
		entryBytesRead: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wal",
			Name:      "entry_bytes_read",
			Help:      "Bytes of log entry payload returned by Read.",
		}),
		entriesRead: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wal",
			Name:      "entries_read",
			Help:      "Number of entries returned by successful Read calls.",
		}),
		segmentRotations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wal",
			Name:      "segment_rotations",
			Help:      "Number of times the active segment has been cycled.",
		}),
		entriesTruncated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wal",
			Name:      "entries_truncated",
			Help:      "Number of entries removed by TruncateFront/TruncateBack, by direction.",
		}, []string{"direction"}),
		truncations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wal",
			Name:      "truncations",
			Help:      "Number of truncation calls, by direction and success.",
		}, []string{"direction", "success"}),
		lastSegmentAgeSeconds: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "wal",
			Name:      "last_segment_age_seconds",
			Help:      "Seconds between creation and sealing of the most recently rotated segment.",
		}),
	}
}
