// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

package segment

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []Entry{
		{Index: 1, Data: []byte("hello")},
		{Index: 2, Data: []byte{}},
		{Index: 3, Data: bytes.Repeat([]byte{0xAB}, 4096)},
	}

	for _, e := range want {
		n, err := EncodeBinary(&buf, e)
		require.NoError(t, err)
		require.Equal(t, binaryHeaderLen+len(e.Data), n)
	}

	br := bufio.NewReader(&buf)
	for _, e := range want {
		got, err := DecodeBinary(br)
		require.NoError(t, err)
		require.Equal(t, e.Index, got.Index)
		require.Equal(t, e.Data, got.Data)
	}

	_, err := DecodeBinary(br)
	require.ErrorIs(t, err, io.EOF)
}

func TestDecodeBinaryTruncatedHeaderIsCorrupt(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader([]byte{0, 0, 0, 1}))
	_, err := DecodeBinary(br)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestDecodeBinaryTruncatedPayloadIsCorrupt(t *testing.T) {
	var buf bytes.Buffer
	_, err := EncodeBinary(&buf, Entry{Index: 1, Data: []byte("0123456789")})
	require.NoError(t, err)

	truncated := buf.Bytes()[:buf.Len()-3]
	br := bufio.NewReader(bytes.NewReader(truncated))
	_, err = DecodeBinary(br)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestEncodeDecodeJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []Entry{
		{Index: 1, Data: []byte(`{"nested":true}`)},
		{Index: 2, Data: []byte("plain text")},
		{Index: 3, Data: []byte{}},
	}

	for i, e := range want {
		_, err := EncodeJSON(&buf, e, i > 0)
		require.NoError(t, err)
	}

	br := bufio.NewReader(&buf)
	for _, e := range want {
		got, err := DecodeJSON(br)
		require.NoError(t, err)
		require.Equal(t, e.Index, got.Index)
		require.Equal(t, e.Data, got.Data)
	}

	_, err := DecodeJSON(br)
	require.ErrorIs(t, err, io.EOF)
}

func TestDecodeJSONInvalidLineIsCorrupt(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("{not json"))
	_, err := DecodeJSON(br)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestCodecFuzzRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 256)

	for i := 0; i < 200; i++ {
		var data []byte
		f.Fuzz(&data)

		var buf bytes.Buffer
		_, err := EncodeBinary(&buf, Entry{Index: uint64(i + 1), Data: data})
		require.NoError(t, err)

		got, err := DecodeBinary(bufio.NewReader(&buf))
		require.NoError(t, err)
		require.Equal(t, uint64(i+1), got.Index)
		require.Equal(t, data, got.Data)
	}
}

func TestCodecFuzzJSONRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 64)

	var buf bytes.Buffer
	entries := make([]Entry, 50)
	for i := range entries {
		var s string
		f.Fuzz(&s)
		entries[i] = Entry{Index: uint64(i + 1), Data: []byte(s)}
		_, err := EncodeJSON(&buf, entries[i], i > 0)
		require.NoError(t, err)
	}

	br := bufio.NewReader(&buf)
	for _, want := range entries {
		got, err := DecodeJSON(br)
		require.NoError(t, err)
		require.Equal(t, want.Index, got.Index)
		require.Equal(t, want.Data, got.Data)
	}
	_, err := DecodeJSON(br)
	require.True(t, errors.Is(err, io.EOF))
}
