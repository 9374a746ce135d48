// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

package wal

import (
	gklog "github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/waldb/segwal/segment"
)

// Durability selects how aggressively the log pushes buffered bytes to
// stable storage.
type Durability int

const (
	// Low buffers entries and only flushes when MaxBufferSize is exceeded
	// or Sync is called explicitly.
	Low Durability = iota
	// Medium flushes to the OS on every Write/WriteBatch but never fsyncs.
	Medium
	// High flushes and fsyncs the active segment on every Write/WriteBatch.
	High
)

// LogFormat selects the on-disk entry framing.
type LogFormat = segment.Format

// On-disk framing choices for LogFormat.
const (
	Binary = segment.FormatBinary
	JSON   = segment.FormatJSON
)

// InMemoryPath is the sentinel directory that Open rejects with
// ErrInMemoryLog. This package only ever stores entries on disk.
const InMemoryPath = ":memory:"

const (
	// MaxReaders bounds the reader cache: at most this many open segment
	// readers exist at once, evicted least-recently-used.
	MaxReaders = 8

	// MaxBufferSize is the buffered-byte threshold above which a Low (or
	// higher) durability write forces a flush even without a tier change.
	MaxBufferSize = 8096

	// DefaultSegmentSize is the active-segment size above which the next
	// write rotates to a new segment: 50 MiB.
	DefaultSegmentSize int64 = 52428800
)

type options struct {
	durability  Durability
	segmentSize int64
	logFormat   LogFormat
	logger      gklog.Logger
	registerer  prometheus.Registerer
}

func defaultOptions() options {
	return options{
		durability:  High,
		segmentSize: DefaultSegmentSize,
		logFormat:   Binary,
		logger:      gklog.NewNopLogger(),
	}
}

// Option configures a Log at Open time.
type Option func(*options)

// WithDurability overrides the default (High) durability tier.
func WithDurability(d Durability) Option {
	return func(o *options) { o.durability = d }
}

// WithSegmentSize overrides the default (50 MiB) segment rotation
// threshold.
func WithSegmentSize(bytes int64) Option {
	return func(o *options) { o.segmentSize = bytes }
}

// WithLogFormat overrides the default (Binary) on-disk framing.
func WithLogFormat(f LogFormat) Option {
	return func(o *options) { o.logFormat = f }
}

// WithLogger attaches a structured logger used for recovery and segment
// lifecycle diagnostics. It never affects control flow. Defaults to a
// no-op logger.
func WithLogger(logger gklog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRegisterer attaches a Prometheus registerer that the log's counters
// and gauges are registered against. Defaults to a private, unregistered
// registry so metrics calls are always safe no-ops when unset.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}
