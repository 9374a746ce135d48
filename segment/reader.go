// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

package segment

import (
	"bufio"
	"fmt"
	"os"
)

// Reader is an open positional read handle over one segment file. It
// tracks where in the log's segment list it came from (SegmentIdx) and
// which index it expects to decode next (NextIndex), so the log engine's
// reader cache can match it against a requested index without re-scanning
// the file.
type Reader struct {
	SegmentIdx int
	NextIndex  uint64

	file *os.File
	br   *bufio.Reader
}

// OpenReader opens path for sequential reads starting at its first byte.
// nextIndex should be the start index of the segment (the first entry
// OpenReader's caller expects to decode).
func OpenReader(path string, segmentIdx int, nextIndex uint64) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		SegmentIdx: segmentIdx,
		NextIndex:  nextIndex,
		file:       f,
		br:         bufio.NewReader(f),
	}, nil
}

// Decode reads the next entry using the given on-disk framing.
func (r *Reader) Decode(format Format) (Entry, error) {
	switch format {
	case FormatBinary:
		return DecodeBinary(r.br)
	case FormatJSON:
		return DecodeJSON(r.br)
	default:
		return Entry{}, fmt.Errorf("segment: unknown log format %d", format)
	}
}

// Close releases the underlying file descriptor.
func (r *Reader) Close() error {
	return r.file.Close()
}
