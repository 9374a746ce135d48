// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

// Package wal implements a segmented, append-only write-ahead log: a
// durable, ordered store of opaque byte payloads keyed by an ascending
// uint64 index, split across bounded-size segment files on disk.
//
// A Log has exactly one owner at a time. There is no internal locking —
// concurrent calls from multiple goroutines against one Log are outside
// the contract; a caller that needs concurrency must serialize access
// itself. Distinct Log instances over distinct directories never
// interfere with each other.
package wal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	gklog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/waldb/segwal/segment"
)

// Log is a segmented write-ahead log rooted at a single directory.
//
// Log is not safe for concurrent use: every exported method assumes it is
// the only call in flight against the receiver.
type Log struct {
	dir         string
	durability  Durability
	segmentSize int64
	logFormat   LogFormat

	logger  gklog.Logger
	metrics *logMetrics

	closed bool

	segments   []segment.Segment
	firstIndex uint64
	lastIndex  uint64

	file                   *os.File
	writer                 *bufio.Writer
	fileSize               int64
	activeSegmentCreatedAt time.Time

	readers []*segment.Reader
}

// Open opens the log rooted at dir, creating dir and an initial empty
// segment if it does not already hold one, and recovering from any
// interrupted truncation (see recover). dir == ":memory:" is rejected
// with ErrInMemoryLog: this package only ever stores entries on disk.
func Open(dir string, opts ...Option) (*Log, error) {
	if dir == InMemoryPath {
		return nil, ErrInMemoryLog
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.segmentSize <= 0 {
		return nil, fmt.Errorf("wal: segment size must be positive, got %d", o.segmentSize)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fileErr("open: mkdir", err)
	}

	l := &Log{
		dir:         dir,
		durability:  o.durability,
		segmentSize: o.segmentSize,
		logFormat:   o.logFormat,
		logger:      o.logger,
		metrics:     newLogMetrics(o.registerer),
	}

	if err := l.recover(); err != nil {
		return nil, err
	}
	return l, nil
}

// recover reconciles the on-disk catalog with a possibly interrupted
// prior truncation, then opens the active segment and replays it to
// establish LastIndex. See spec §4.6.
func (l *Log) recover() error {
	res, err := segment.Scan(l.dir)
	if err != nil {
		return fileErr("recover: scan", err)
	}
	segments := res.Segments

	if len(segments) == 0 {
		path := filepath.Join(l.dir, segment.Name(1))
		f, err := os.Create(path)
		if err != nil {
			return fileErr("recover: create initial segment", err)
		}
		if err := f.Close(); err != nil {
			return fileErr("recover: create initial segment", err)
		}
		segments = []segment.Segment{{StartIndex: 1, Path: path}}
		level.Debug(l.logger).Log("msg", "created initial segment", "path", path)
	}

	if res.StartMarkerPos >= 0 {
		if res.EndMarkerPos >= 0 {
			return fmt.Errorf("%w: both .START and .END markers present", ErrCorrupt)
		}

		startPos := res.StartMarkerPos
		for i := 0; i < startPos; i++ {
			if err := os.Remove(segments[i].Path); err != nil {
				return fileErr("recover: remove pre-START segment", err)
			}
		}
		segments = segments[startPos:]

		finalPath := strings.TrimSuffix(segments[0].Path, segment.StartSuffix)
		if err := os.Rename(segments[0].Path, finalPath); err != nil {
			return fileErr("recover: resolve START marker", err)
		}
		segments[0].Path = finalPath
		level.Debug(l.logger).Log("msg", "resumed interrupted truncate_front", "first_index", segments[0].StartIndex)
	}

	if res.EndMarkerPos >= 0 {
		endPos := res.EndMarkerPos
		for i := len(segments) - 1; i > endPos; i-- {
			if err := os.Remove(segments[i].Path); err != nil {
				return fileErr("recover: remove post-END segment", err)
			}
		}
		segments = segments[:endPos+1]

		if len(segments) > 1 && segments[len(segments)-2].StartIndex == segments[len(segments)-1].StartIndex {
			segments[len(segments)-2] = segments[len(segments)-1]
			segments = segments[:len(segments)-1]
		}

		finalPath := strings.TrimSuffix(segments[len(segments)-1].Path, segment.EndSuffix)
		if err := os.Rename(segments[len(segments)-1].Path, finalPath); err != nil {
			return fileErr("recover: resolve END marker", err)
		}
		segments[len(segments)-1].Path = finalPath
		level.Debug(l.logger).Log("msg", "resumed interrupted truncate_back", "last_segment", segments[len(segments)-1].StartIndex)
	}

	last := segments[len(segments)-1]
	f, err := os.OpenFile(last.Path, os.O_RDWR, 0o644)
	if err != nil {
		return fileErr("recover: open active segment", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fileErr("recover: stat active segment", err)
	}
	fileSize := info.Size()

	lastIndex, err := decodeToEOF(f, l.logFormat)
	if err != nil {
		f.Close()
		return err
	}

	if _, err := f.Seek(fileSize, io.SeekStart); err != nil {
		f.Close()
		return fileErr("recover: seek to end", err)
	}

	l.segments = segments
	l.firstIndex = segments[0].StartIndex
	l.lastIndex = lastIndex
	l.file = f
	l.writer = bufio.NewWriter(f)
	l.fileSize = fileSize
	l.activeSegmentCreatedAt = time.Now()
	return nil
}

// decodeToEOF decodes entries from the start of f to EOF and returns the
// last index seen, or 0 if f is empty. Any non-EOF decode error is Corrupt.
func decodeToEOF(f *os.File, format LogFormat) (uint64, error) {
	br := bufio.NewReader(f)
	var last uint64
	for {
		e, err := decodeEntry(br, format)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return last, nil
			}
			return 0, translateDecodeErr(err)
		}
		last = e.Index
	}
}

func decodeEntry(r *bufio.Reader, format LogFormat) (segment.Entry, error) {
	switch format {
	case Binary:
		return segment.DecodeBinary(r)
	case JSON:
		return segment.DecodeJSON(r)
	default:
		return segment.Entry{}, fmt.Errorf("wal: unknown log format %d", format)
	}
}

func translateDecodeErr(err error) error {
	if errors.Is(err, segment.ErrCorrupt) {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return fileErr("decode", err)
}

// Write appends data at index, which must equal LastIndex()+1. The active
// segment is cycled first if it has reached its size threshold. The
// buffer is flushed when the durability tier requires it or the buffer
// has grown past MaxBufferSize.
func (l *Log) Write(index uint64, data []byte) error {
	if l.closed {
		return ErrClosed
	}
	if index != l.lastIndex+1 {
		return ErrOutOfOrder
	}

	if l.fileSize >= l.segmentSize {
		if err := l.cycle(); err != nil {
			return err
		}
	}

	if err := l.appendEntry(index, data); err != nil {
		return err
	}
	l.metrics.appends.Inc()
	l.metrics.entriesWritten.Inc()
	l.metrics.bytesWritten.Add(float64(len(data)))

	if l.durability >= Medium || l.writer.Buffered() > MaxBufferSize {
		if err := l.flush(); err != nil {
			return err
		}
	}

	l.lastIndex = index
	return nil
}

// WriteBatch appends every payload staged in b, assigning indices
// LastIndex()+1 .. LastIndex()+b.Len(). On success b is cleared. An
// inconsistent batch (sizes not summing to the staged bytes) fails with
// ErrOutOfOrder and leaves both the log and the batch unchanged.
func (l *Log) WriteBatch(b *Batch) error {
	if l.closed {
		return ErrClosed
	}
	if b.sizeSum() != len(b.data) {
		return ErrOutOfOrder
	}
	if b.Len() == 0 {
		return nil
	}

	if l.fileSize >= l.segmentSize {
		if err := l.cycle(); err != nil {
			return err
		}
	}

	offset := 0
	nBytes := 0
	for i, size := range b.sizes {
		index := l.lastIndex + uint64(i) + 1
		if err := l.appendEntry(index, b.data[offset:offset+size]); err != nil {
			return err
		}
		offset += size
		nBytes += size
	}
	l.metrics.appends.Inc()
	l.metrics.entriesWritten.Add(float64(len(b.sizes)))
	l.metrics.bytesWritten.Add(float64(nBytes))

	if l.durability >= Medium || l.writer.Buffered() >= MaxBufferSize {
		if err := l.flush(); err != nil {
			return err
		}
	}

	l.lastIndex += uint64(len(b.sizes))
	b.Clear()
	return nil
}

func (l *Log) appendEntry(index uint64, data []byte) error {
	var (
		n   int
		err error
	)
	switch l.logFormat {
	case Binary:
		n, err = segment.EncodeBinary(l.writer, segment.Entry{Index: index, Data: data})
	case JSON:
		n, err = segment.EncodeJSON(l.writer, segment.Entry{Index: index, Data: data}, l.fileSize > 0)
	default:
		return fmt.Errorf("wal: unknown log format %d", l.logFormat)
	}
	if err != nil {
		return fileErr("append", err)
	}
	l.fileSize += int64(n)
	return nil
}

// cycle closes out the active segment and starts a new one named after
// the next index to be written. Entries never straddle a cycle: it always
// runs before the next record is encoded, never mid-record.
func (l *Log) cycle() error {
	if err := l.flush(); err != nil {
		return err
	}

	nextStart := l.lastIndex + 1
	path := filepath.Join(l.dir, segment.Name(nextStart))
	f, err := os.Create(path)
	if err != nil {
		return fileErr("cycle: create segment", err)
	}

	age := time.Since(l.activeSegmentCreatedAt)
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			f.Close()
			return fileErr("cycle: close old segment", err)
		}
	}

	l.file = f
	l.writer = bufio.NewWriter(f)
	l.fileSize = 0
	l.activeSegmentCreatedAt = time.Now()
	l.segments = append(l.segments, segment.Segment{StartIndex: nextStart, Path: path})

	l.metrics.segmentRotations.Inc()
	l.metrics.lastSegmentAgeSeconds.Set(age.Seconds())
	level.Debug(l.logger).Log("msg", "segment rotated", "start_index", nextStart)
	return nil
}

func (l *Log) flush() error {
	if l.writer.Buffered() == 0 {
		return nil
	}
	if err := l.writer.Flush(); err != nil {
		return fileErr("flush", err)
	}
	if l.durability == High {
		if err := l.file.Sync(); err != nil {
			return fileErr("fsync", err)
		}
	}
	return nil
}

// Sync flushes any buffered bytes and forces an fsync of the active
// segment, regardless of the configured durability tier.
func (l *Log) Sync() error {
	if l.closed {
		return ErrClosed
	}
	if l.writer.Buffered() > 0 {
		if err := l.writer.Flush(); err != nil {
			return fileErr("sync: flush", err)
		}
	}
	if err := l.file.Sync(); err != nil {
		return fileErr("sync: fsync", err)
	}
	return nil
}

// FirstIndex returns the index of the first entry in the log, or 0 if the
// log holds no entries.
func (l *Log) FirstIndex() (uint64, error) {
	if l.closed {
		return 0, ErrClosed
	}
	if l.lastIndex == 0 {
		return 0, nil
	}
	return l.firstIndex, nil
}

// LastIndex returns the index of the last entry in the log, or 0 if the
// log holds no entries.
func (l *Log) LastIndex() (uint64, error) {
	if l.closed {
		return 0, ErrClosed
	}
	return l.lastIndex, nil
}

// Read returns the payload written at index. It is optimized for
// sequential access via the reader cache; random access that keeps
// missing the cache pays the cost of a fresh scan from the owning
// segment's start.
func (l *Log) Read(index uint64) ([]byte, error) {
	if l.closed {
		return nil, ErrClosed
	}
	if index == 0 || index < l.firstIndex || index > l.lastIndex {
		return nil, ErrNotFound
	}

	for i, r := range l.readers {
		if r.NextIndex == index {
			data, err := l.readFromCached(i)
			if err == nil {
				l.metrics.entriesRead.Inc()
				l.metrics.entryBytesRead.Add(float64(len(data)))
			}
			return data, err
		}
	}

	data, err := l.openReaderAndRead(index)
	if err == nil {
		l.metrics.entriesRead.Inc()
		l.metrics.entryBytesRead.Add(float64(len(data)))
	}
	return data, err
}

// readFromCached decodes the next entry from the reader at cache slot i,
// which the caller has already verified expects `index` next.
func (l *Log) readFromCached(i int) ([]byte, error) {
	for {
		r := l.readers[i]
		requested := r.NextIndex

		e, err := r.Decode(l.logFormat)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if r.SegmentIdx == len(l.segments)-1 {
					if l.writer.Buffered() > 0 {
						if ferr := l.flush(); ferr != nil {
							l.dropReader(i)
							return nil, ferr
						}
						continue
					}
					l.dropReader(i)
					return nil, fmt.Errorf("%w: unexpected end of active segment", ErrCorrupt)
				}
				// Exhausted a non-active segment: move on to the next one.
				l.dropReader(i)
				return l.openReaderAndRead(requested)
			}
			l.dropReader(i)
			return nil, translateDecodeErr(err)
		}

		if e.Index != requested {
			l.dropReader(i)
			return nil, fmt.Errorf("%w: expected index %d, got %d", ErrCorrupt, requested, e.Index)
		}

		r.NextIndex++
		if r.NextIndex == l.lastIndex+1 {
			l.dropReader(i)
		} else if i > 0 {
			// Move the reader to the front so eviction stays least-recently-used.
			l.readers = append(append([]*segment.Reader{r}, l.readers[:i]...), l.readers[i+1:]...)
		}
		return e.Data, nil
	}
}

// openReaderAndRead opens a fresh reader rooted at the segment owning
// index, decodes forward from that segment's start verifying contiguity,
// and returns the payload at index. The new reader is cached.
func (l *Log) openReaderAndRead(index uint64) ([]byte, error) {
	segIdx := l.findSegment(index)
	seg := l.segments[segIdx]

	if segIdx == len(l.segments)-1 && l.writer.Buffered() > 0 {
		if err := l.flush(); err != nil {
			return nil, err
		}
	}

	r, err := segment.OpenReader(seg.Path, segIdx, seg.StartIndex)
	if err != nil {
		return nil, fileErr("open reader", err)
	}

	expected := seg.StartIndex
	for {
		e, err := r.Decode(l.logFormat)
		if err != nil {
			r.Close()
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: segment ended before index %d", ErrCorrupt, index)
			}
			return nil, translateDecodeErr(err)
		}
		if e.Index != expected {
			r.Close()
			return nil, fmt.Errorf("%w: expected index %d, got %d", ErrCorrupt, expected, e.Index)
		}
		expected++

		if e.Index == index {
			r.NextIndex = expected
			l.insertReader(r)
			return e.Data, nil
		}
	}
}

// findSegment returns the position in l.segments of the segment whose
// StartIndex is the greatest not exceeding index. l.segments is never
// empty once the log is open, so this always returns a valid index when
// index >= l.firstIndex.
func (l *Log) findSegment(index uint64) int {
	i, j := 0, len(l.segments)
	for i < j {
		h := i + (j-i)/2
		if index >= l.segments[h].StartIndex {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}

func (l *Log) insertReader(r *segment.Reader) {
	l.readers = append([]*segment.Reader{r}, l.readers...)
	for len(l.readers) > MaxReaders {
		last := len(l.readers) - 1
		l.readers[last].Close()
		l.readers = l.readers[:last]
	}
}

func (l *Log) dropReader(i int) {
	l.readers[i].Close()
	l.readers = append(l.readers[:i], l.readers[i+1:]...)
}

func (l *Log) closeAllReaders() {
	for _, r := range l.readers {
		r.Close()
	}
	l.readers = nil
}

// TruncateFront makes index the new first entry in the log, deleting
// everything before it. It is a no-op if index already equals
// FirstIndex(). On disk, the kept remainder of the owning segment is
// copied to dir/TEMP, the segment files up to and including the owning
// one are removed, and TEMP is renamed to the new first segment's name.
// This method writes no .START marker.
func (l *Log) TruncateFront(index uint64) error {
	if l.closed {
		return ErrClosed
	}
	if index == 0 || index < l.firstIndex || index > l.lastIndex {
		return ErrOutOfRange
	}

	if err := l.flush(); err != nil {
		return err
	}
	l.closeAllReaders()

	if index == l.firstIndex {
		return nil
	}

	success := false
	defer func() {
		l.metrics.truncations.WithLabelValues("front", boolLabel(success)).Inc()
	}()

	segIdx := l.findSegment(index)
	seg := l.segments[segIdx]

	f, err := os.Open(seg.Path)
	if err != nil {
		return fileErr("truncate_front: open segment", err)
	}
	br := bufio.NewReader(f)

	removed := seg.StartIndex - l.firstIndex
	if index > seg.StartIndex {
		expected := seg.StartIndex
		found := false
		for {
			e, derr := decodeEntry(br, l.logFormat)
			if derr != nil {
				f.Close()
				if errors.Is(derr, io.EOF) {
					return fmt.Errorf("%w: truncate_front ran off the end of the segment", ErrCorrupt)
				}
				return translateDecodeErr(derr)
			}
			if e.Index != expected {
				f.Close()
				return fmt.Errorf("%w: expected index %d, got %d", ErrCorrupt, expected, e.Index)
			}
			expected++
			removed++
			if e.Index == index-1 {
				found = true
				break
			}
		}
		if !found {
			f.Close()
			return fmt.Errorf("%w: truncate_front target not found in segment", ErrCorrupt)
		}
	}

	tempPath := filepath.Join(l.dir, "TEMP")
	tempFile, err := os.Create(tempPath)
	if err != nil {
		f.Close()
		return fileErr("truncate_front: create temp file", err)
	}
	if _, err := io.Copy(tempFile, br); err != nil {
		tempFile.Close()
		f.Close()
		return fileErr("truncate_front: copy remainder", err)
	}
	if err := tempFile.Close(); err != nil {
		f.Close()
		return fileErr("truncate_front: close temp file", err)
	}
	if err := f.Close(); err != nil {
		return fileErr("truncate_front: close segment", err)
	}

	for i := 0; i <= segIdx; i++ {
		if err := os.Remove(l.segments[i].Path); err != nil {
			return fileErr("truncate_front: remove old segment", err)
		}
	}

	finalPath := filepath.Join(l.dir, segment.Name(index))
	if err := os.Rename(tempPath, finalPath); err != nil {
		return fileErr("truncate_front: rename temp file", err)
	}

	newSeg := segment.Segment{StartIndex: index, Path: finalPath}
	l.segments = append([]segment.Segment{newSeg}, l.segments[segIdx+1:]...)

	if len(l.segments) == 1 {
		if err := l.rebindActiveSegment(finalPath); err != nil {
			return err
		}
	}

	l.firstIndex = index
	l.metrics.entriesTruncated.WithLabelValues("front").Add(float64(removed))
	success = true
	level.Debug(l.logger).Log("msg", "truncated front", "new_first_index", index)
	return nil
}

// TruncateBack makes lastKeep the new last entry in the log, deleting
// everything after it. It is a no-op if lastKeep already equals
// LastIndex(). On disk, the owning segment's bytes up to and including
// lastKeep are copied to dir/TEMP, that segment and every later one are
// removed, and TEMP is renamed to the owning segment's path. This method
// writes no .END marker.
func (l *Log) TruncateBack(lastKeep uint64) error {
	if l.closed {
		return ErrClosed
	}
	if lastKeep == 0 || lastKeep < l.firstIndex || lastKeep > l.lastIndex {
		return ErrOutOfRange
	}

	if err := l.flush(); err != nil {
		return err
	}
	l.closeAllReaders()

	if lastKeep == l.lastIndex {
		return nil
	}

	success := false
	defer func() {
		l.metrics.truncations.WithLabelValues("back", boolLabel(success)).Inc()
	}()

	segIdx := l.findSegment(lastKeep)
	seg := l.segments[segIdx]

	f, err := os.Open(seg.Path)
	if err != nil {
		return fileErr("truncate_back: open segment", err)
	}
	br := bufio.NewReader(f)

	// Entries after lastKeep in the owning segment; trailing segments are
	// counted as their files are removed below.
	ownLast := l.lastIndex
	if segIdx+1 < len(l.segments) {
		ownLast = l.segments[segIdx+1].StartIndex - 1
	}
	removed := ownLast - lastKeep
	expected := seg.StartIndex
	found := false
	for {
		e, derr := decodeEntry(br, l.logFormat)
		if derr != nil {
			f.Close()
			if errors.Is(derr, io.EOF) {
				return fmt.Errorf("%w: truncate_back ran off the end of the segment", ErrCorrupt)
			}
			return translateDecodeErr(derr)
		}
		if e.Index != expected {
			f.Close()
			return fmt.Errorf("%w: expected index %d, got %d", ErrCorrupt, expected, e.Index)
		}
		expected++
		if e.Index == lastKeep {
			found = true
			break
		}
	}
	if !found {
		f.Close()
		return fmt.Errorf("%w: truncate_back target not found in segment", ErrCorrupt)
	}

	fdPos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		f.Close()
		return fileErr("truncate_back: tell position", err)
	}
	keepBytes := fdPos - int64(br.Buffered())

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return fileErr("truncate_back: rewind segment", err)
	}

	tempPath := filepath.Join(l.dir, "TEMP")
	tempFile, err := os.Create(tempPath)
	if err != nil {
		f.Close()
		return fileErr("truncate_back: create temp file", err)
	}
	if _, err := io.CopyN(tempFile, f, keepBytes); err != nil {
		tempFile.Close()
		f.Close()
		return fileErr("truncate_back: copy prefix", err)
	}
	if err := tempFile.Close(); err != nil {
		f.Close()
		return fileErr("truncate_back: close temp file", err)
	}
	if err := f.Close(); err != nil {
		return fileErr("truncate_back: close segment", err)
	}

	segPath := seg.Path
	for i := len(l.segments) - 1; i > segIdx; i-- {
		removed += l.countInSegment(i)
		if err := os.Remove(l.segments[i].Path); err != nil {
			return fileErr("truncate_back: remove trailing segment", err)
		}
	}
	if err := os.Remove(segPath); err != nil {
		return fileErr("truncate_back: remove old owning segment", err)
	}
	if err := os.Rename(tempPath, segPath); err != nil {
		return fileErr("truncate_back: rename temp file", err)
	}

	l.segments = append(l.segments[:segIdx], segment.Segment{StartIndex: seg.StartIndex, Path: segPath})

	if err := l.rebindActiveSegment(segPath); err != nil {
		return err
	}

	l.lastIndex = lastKeep
	l.metrics.entriesTruncated.WithLabelValues("back").Add(float64(removed))
	success = true
	level.Debug(l.logger).Log("msg", "truncated back", "new_last_index", lastKeep)
	return nil
}

// countInSegment is a best-effort accounting helper for the
// entries_truncated metric; it is never allowed to fail the truncation
// itself, so decode errors just stop the count short.
func (l *Log) countInSegment(i int) uint64 {
	seg := l.segments[i]
	f, err := os.Open(seg.Path)
	if err != nil {
		return 0
	}
	defer f.Close()
	br := bufio.NewReader(f)
	var n uint64
	for {
		if _, err := decodeEntry(br, l.logFormat); err != nil {
			return n
		}
		n++
	}
}

func (l *Log) rebindActiveSegment(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return fileErr("rebind active segment: open", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fileErr("rebind active segment: stat", err)
	}
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			f.Close()
			return fileErr("rebind active segment: close old", err)
		}
	}
	l.file = f
	l.writer = bufio.NewWriter(f)
	l.fileSize = info.Size()
	l.activeSegmentCreatedAt = time.Now()
	if _, err := f.Seek(info.Size(), io.SeekStart); err != nil {
		return fileErr("rebind active segment: seek", err)
	}
	return nil
}

// Close flushes any buffered bytes and releases all open file handles.
// Every operation after a successful Close fails with ErrClosed.
func (l *Log) Close() error {
	if l.closed {
		return ErrClosed
	}
	if err := l.flush(); err != nil {
		return err
	}
	l.closed = true
	l.segments = nil
	l.closeAllReaders()
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			return fileErr("close", err)
		}
	}
	return nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
