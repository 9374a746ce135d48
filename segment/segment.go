// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

// Package segment implements the on-disk layout of a single WAL segment
// file: its name, its entry framing (binary and JSON Lines), and a
// positional reader over it. It has no notion of a log as a whole — that
// is the root wal package's job.
package segment

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	// NameWidth is the length of a finalized segment's file name: a
	// zero-padded, base-10 start index.
	NameWidth = 20

	// StartSuffix marks a segment file mid-truncate_front; EndSuffix marks
	// one mid-truncate_back. Both are resolved at Open time (see wal.go).
	StartSuffix = ".START"
	EndSuffix   = ".END"
)

// Segment is one file on disk holding a contiguous run of entries
// beginning at StartIndex.
type Segment struct {
	StartIndex uint64
	Path       string
}

// Name returns the canonical 20-digit decimal file name for a segment
// starting at startIndex.
func Name(startIndex uint64) string {
	return fmt.Sprintf("%0*d", NameWidth, startIndex)
}

// ScanResult is the outcome of scanning a log directory for segment files.
type ScanResult struct {
	// Segments is sorted ascending by StartIndex.
	Segments []Segment

	// StartMarkerPos is the position in Segments of the last .START marker,
	// or -1 if none was found.
	StartMarkerPos int

	// EndMarkerPos is the position in Segments of the first .END marker, or
	// -1 if none was found.
	EndMarkerPos int
}

type kind int

const (
	kindPlain kind = iota
	kindStart
	kindEnd
)

// Scan reads dir and returns every file that looks like a segment (or a
// truncation marker for one), sorted ascending by start index. Any other
// file in the directory is ignored.
func Scan(dir string) (ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ScanResult{}, err
	}

	type item struct {
		seg  Segment
		kind kind
	}
	items := make([]item, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()

		var k kind
		switch {
		case len(name) == NameWidth:
			k = kindPlain
		case len(name) == NameWidth+len(EndSuffix) && strings.HasSuffix(name, EndSuffix):
			k = kindEnd
		case len(name) == NameWidth+len(StartSuffix) && strings.HasSuffix(name, StartSuffix):
			k = kindStart
		default:
			continue
		}

		idx, err := strconv.ParseUint(name[:NameWidth], 10, 64)
		if err != nil || idx == 0 {
			continue
		}

		items = append(items, item{
			seg:  Segment{StartIndex: idx, Path: filepath.Join(dir, name)},
			kind: k,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].seg.StartIndex < items[j].seg.StartIndex
	})

	res := ScanResult{StartMarkerPos: -1, EndMarkerPos: -1}
	for i, it := range items {
		res.Segments = append(res.Segments, it.seg)
		switch it.kind {
		case kindStart:
			res.StartMarkerPos = i // keep the last one seen
		case kindEnd:
			if res.EndMarkerPos == -1 {
				res.EndMarkerPos = i // keep the first one seen
			}
		}
	}

	return res, nil
}
