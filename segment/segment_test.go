// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

package segment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	require.Equal(t, "00000000000000000001", Name(1))
	require.Equal(t, "00000000000000123456", Name(123456))
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
}

func TestScanPlainSegments(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, Name(1))
	touch(t, dir, Name(501))
	touch(t, dir, Name(1001))
	touch(t, dir, "ignored.txt")
	touch(t, dir, "00000000000000000000") // index 0 is never valid, ignored

	res, err := Scan(dir)
	require.NoError(t, err)
	require.Equal(t, -1, res.StartMarkerPos)
	require.Equal(t, -1, res.EndMarkerPos)
	require.Len(t, res.Segments, 3)
	require.Equal(t, uint64(1), res.Segments[0].StartIndex)
	require.Equal(t, uint64(501), res.Segments[1].StartIndex)
	require.Equal(t, uint64(1001), res.Segments[2].StartIndex)
}

func TestScanStartMarker(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, Name(1))
	touch(t, dir, Name(501)+StartSuffix)
	touch(t, dir, Name(1001))

	res, err := Scan(dir)
	require.NoError(t, err)
	require.Equal(t, 1, res.StartMarkerPos)
	require.Equal(t, -1, res.EndMarkerPos)
	require.Len(t, res.Segments, 3)
}

func TestScanEndMarker(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, Name(1))
	touch(t, dir, Name(501))
	touch(t, dir, Name(1001)+EndSuffix)

	res, err := Scan(dir)
	require.NoError(t, err)
	require.Equal(t, -1, res.StartMarkerPos)
	require.Equal(t, 2, res.EndMarkerPos)
}

func TestScanEmptyDir(t *testing.T) {
	dir := t.TempDir()
	res, err := Scan(dir)
	require.NoError(t, err)
	require.Empty(t, res.Segments)
	require.Equal(t, -1, res.StartMarkerPos)
	require.Equal(t, -1, res.EndMarkerPos)
}
