// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

package bench

import (
	"fmt"
	"testing"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/stretchr/testify/require"

	wal "github.com/waldb/segwal"
)

func timeNow() int64 {
	return time.Now().UnixNano()
}

func openBenchLog(b *testing.B, opts ...wal.Option) *wal.Log {
	b.Helper()
	l, err := wal.Open(b.TempDir(), opts...)
	require.NoError(b, err)
	b.Cleanup(func() { _ = l.Close() })
	return l
}

func logLatencies(b *testing.B, h *hdrhistogram.Histogram) {
	b.Helper()
	b.Logf("p50=%dns p90=%dns p99=%dns max=%dns",
		h.ValueAtQuantile(50), h.ValueAtQuantile(90), h.ValueAtQuantile(99), h.Max())
}

func BenchmarkWrite(b *testing.B) {
	for _, entrySize := range []int{64, 1024, 16384} {
		for _, v := range []string{"binary", "json"} {
			format := wal.Binary
			if v == "json" {
				format = wal.JSON
			}
			b.Run(fmt.Sprintf("entrySize=%d/v=%s", entrySize, v), func(b *testing.B) {
				l := openBenchLog(b, wal.WithLogFormat(format), wal.WithDurability(wal.Low))
				payload := make([]byte, entrySize)
				hist := hdrhistogram.New(1, 1_000_000_000, 3)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					start := timeNow()
					require.NoError(b, l.Write(uint64(i+1), payload))
					hist.RecordValue(int64(timeNow() - start))
				}
				b.StopTimer()
				logLatencies(b, hist)
			})
		}
	}
}

func BenchmarkWriteBatch(b *testing.B) {
	for _, entrySize := range []int{64, 1024} {
		for _, batchSize := range []int{1, 16, 64} {
			b.Run(fmt.Sprintf("entrySize=%d/batchSize=%d", entrySize, batchSize), func(b *testing.B) {
				l := openBenchLog(b, wal.WithDurability(wal.Low))
				payload := make([]byte, entrySize)
				batch := wal.NewBatch()
				hist := hdrhistogram.New(1, 1_000_000_000, 3)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					for j := 0; j < batchSize; j++ {
						batch.Write(payload)
					}
					start := timeNow()
					require.NoError(b, l.WriteBatch(batch))
					hist.RecordValue(int64(timeNow() - start))
				}
				b.StopTimer()
				logLatencies(b, hist)
			})
		}
	}
}

func BenchmarkRead(b *testing.B) {
	for _, entrySize := range []int{64, 1024, 16384} {
		b.Run(fmt.Sprintf("entrySize=%d", entrySize), func(b *testing.B) {
			l := openBenchLog(b, wal.WithDurability(wal.Low))
			payload := make([]byte, entrySize)
			const n = 1000
			for i := uint64(1); i <= n; i++ {
				require.NoError(b, l.Write(i, payload))
			}
			hist := hdrhistogram.New(1, 1_000_000_000, 3)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				index := uint64(i%n) + 1
				start := timeNow()
				_, err := l.Read(index)
				require.NoError(b, err)
				hist.RecordValue(int64(timeNow() - start))
			}
			b.StopTimer()
			logLatencies(b, hist)
		})
	}
}
