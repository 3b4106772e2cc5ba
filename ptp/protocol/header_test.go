/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testHeader() Header {
	return Header{
		SdoIDAndMsgType:    NewSdoIDAndMsgType(MessageSync, 1),
		Version:            Version,
		MessageLength:      SyncSize,
		DomainNumber:       24,
		FlagField:          FlagTwoStep | FlagTimeTraceable,
		CorrectionField:    0x0102030405060708,
		SourcePortIdentity: PortIdentity{0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7, 0xa8, 0xa9},
		SequenceID:         0xbeef,
		ControlField:       5,
		LogMessageInterval: -3,
	}
}

func TestNewSyncHeader(t *testing.T) {
	h := NewSyncHeader()
	want := Header{
		SdoIDAndMsgType: 0x10,
		Version:         2,
		MessageLength:   44,
		FlagField:       0x0600,
	}
	require.Equal(t, want, h)
	require.Equal(t, MessageSync, h.MessageType())

	h.SetSequence(42)
	require.Equal(t, uint16(42), h.SequenceID)
}

func TestHeaderMarshalDefault(t *testing.T) {
	h := NewSyncHeader()
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	want := []byte{
		0x10, 0x02, 0x00, 0x2c, 0x00, 0x00, 0x06, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00,
	}
	require.Equal(t, want, b)
	require.Len(t, b, HeaderSize)
}

func TestHeaderMarshalStandardLayout(t *testing.T) {
	h := testHeader()
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	want := []byte{
		0x10, 0x02, 0x00, 0x2c, 0x18, 0x00, 0x02, 0x08, // type, version, length, domain, reserved1, flags
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // correction
		0x00, 0x00, 0x00, 0x00, // reserved2
		0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7, 0xa8, 0xa9, // source port identity
		0xbe, 0xef, 0x05, 0xfd, // sequence, control, log interval
	}
	require.Equal(t, want, b)
}

// The old sender put sourcePortIdentity at offset 9. We keep standard layout by default
// and only reproduce that when LayoutLegacy is asked for explicitly.
func TestHeaderMarshalLegacyLayout(t *testing.T) {
	h := testHeader()
	b := make([]byte, HeaderSize)
	n, err := h.MarshalBinaryLayoutTo(b, LayoutLegacy)
	require.NoError(t, err)
	require.Equal(t, HeaderSize, n)
	want := []byte{
		0x10, 0x02, 0x00, 0x2c, 0x18, 0x00, 0x02, 0x08,
		0x01, 0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, // high byte of correction, then identity
		0xa7, 0xa8, 0xa9, 0x00, // rest of identity over reserved2
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // never written
		0xbe, 0xef, 0x05, 0xfd,
	}
	require.Equal(t, want, b)

	// default header has empty identity, so both layouts agree
	d := NewSyncHeader()
	std, err := d.MarshalBinary()
	require.NoError(t, err)
	legacy := make([]byte, HeaderSize)
	_, err = d.MarshalBinaryLayoutTo(legacy, LayoutLegacy)
	require.NoError(t, err)
	require.Equal(t, std, legacy)
}

func TestHeaderMarshalUnknownLayout(t *testing.T) {
	h := testHeader()
	b := make([]byte, HeaderSize)
	_, err := h.MarshalBinaryLayoutTo(b, Layout(42))
	require.Error(t, err)
}

func TestHeaderReservedAlwaysZero(t *testing.T) {
	h := testHeader()
	h.Reserved1 = 0xff
	h.Reserved2 = 0xffffffff
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, byte(0), b[5])
	require.Equal(t, []byte{0, 0, 0, 0}, b[16:20])
}

func TestHeaderRoundTrip(t *testing.T) {
	for _, h := range []Header{NewSyncHeader(), testHeader(), {}} {
		b, err := h.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, b, HeaderSize)
		got := Header{}
		require.NoError(t, got.UnmarshalBinary(b))
		require.Equal(t, h, got)
	}
}

func TestHeaderUnmarshalKeepsReserved(t *testing.T) {
	h := testHeader()
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	b[5] = 0x7
	b[19] = 0x9
	got := Header{}
	require.NoError(t, got.UnmarshalBinary(b))
	require.Equal(t, uint8(0x7), got.Reserved1)
	require.Equal(t, uint32(0x9), got.Reserved2)
}

func TestHeaderBufferTooSmall(t *testing.T) {
	h := testHeader()
	b := bytes.Repeat([]byte{0xaa}, HeaderSize-1)
	n, err := h.MarshalBinaryTo(b)
	require.ErrorIs(t, err, ErrBufferTooSmall)
	require.Equal(t, 0, n)
	require.Equal(t, bytes.Repeat([]byte{0xaa}, HeaderSize-1), b, "nothing must be written")

	_, err = h.MarshalBinaryLayoutTo(nil, LayoutLegacy)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestHeaderMarshalBigBuffer(t *testing.T) {
	h := testHeader()
	want, err := h.MarshalBinary()
	require.NoError(t, err)
	b := bytes.Repeat([]byte{0xaa}, HeaderSize+10)
	n, err := h.MarshalBinaryTo(b)
	require.NoError(t, err)
	require.Equal(t, HeaderSize, n)
	require.Equal(t, want, b[:n])
	require.Equal(t, bytes.Repeat([]byte{0xaa}, 10), b[n:], "bytes after header must be untouched")
}

func TestHeaderTruncatedInput(t *testing.T) {
	h := testHeader()
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	got := Header{}
	err = got.UnmarshalBinary(b[:HeaderSize-1])
	require.ErrorIs(t, err, ErrTruncatedInput)
	require.Equal(t, Header{}, got)
}

func TestHeaderFields(t *testing.T) {
	fields := HeaderFields()
	require.Len(t, fields, 12)
	pos := 0
	for _, f := range fields {
		require.Equal(t, pos, f.Offset, "field %s must follow previous one", f.Name)
		pos = f.End()
	}
	require.Equal(t, HeaderSize, pos)
	require.Equal(t, 20, hdrSourcePort.Offset)
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("standard")
	require.NoError(t, err)
	require.Equal(t, LayoutStandard, l)
	l, err = ParseLayout("legacy")
	require.NoError(t, err)
	require.Equal(t, LayoutLegacy, l)
	require.Equal(t, "legacy", l.String())
	_, err = ParseLayout("fancy")
	require.Error(t, err)
}
