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

package frame

import (
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/require"

	ptp "github.com/krethiundplethi/1588-playground/ptp/protocol"
)

func TestDecode(t *testing.T) {
	p := ptp.NewSync(7, 1234, ptp.Timestamp{Seconds: 1, Nanoseconds: 2})
	p.SourcePortIdentity = ptp.NewPortIdentity(0xaabbccfffeddeeff, 1)
	b := make([]byte, SyncFrameSize)
	_, err := Builder{}.BuildSyncTo(b, testEthernet(t), p)
	require.NoError(t, err)

	f, err := Decode(b)
	require.NoError(t, err)
	require.Equal(t, testEthernet(t), f.Ethernet)
	require.Equal(t, p, f.Sync)
	require.Nil(t, f.Padding)
	require.Empty(t, f.VLANs)
	require.Equal(t, EthernetHeaderSize, f.MessageOffset)
}

// tagged inserts 802.1Q tag after source MAC
func tagged(b []byte, tag ...byte) []byte {
	out := make([]byte, 0, len(b)+len(tag))
	out = append(out, b[:12]...)
	out = append(out, tag...)
	return append(out, b[12:]...)
}

func TestDecodeVLAN(t *testing.T) {
	p := ptp.NewSync(0, 42, ptp.Timestamp{Seconds: 1, Nanoseconds: 2})
	b := make([]byte, SyncFrameSize)
	_, err := Builder{}.BuildSyncTo(b, testEthernet(t), p)
	require.NoError(t, err)

	f, err := Decode(tagged(b, 0x81, 0x00, 0x00, 0x05))
	require.NoError(t, err)
	require.Equal(t, testEthernet(t), f.Ethernet)
	require.Equal(t, []VLAN{{ID: 5}}, f.VLANs)
	require.Equal(t, EthernetHeaderSize+4, f.MessageOffset)
	require.Equal(t, p, f.Sync)
	require.Nil(t, f.Padding)

	// QinQ, priority 3 on the inner tag
	f, err = Decode(tagged(b, 0x88, 0xa8, 0x00, 0x64, 0x81, 0x00, 0x60, 0x05))
	require.NoError(t, err)
	require.Equal(t, []VLAN{{ID: 100}, {ID: 5, Priority: 3}}, f.VLANs)
	require.Equal(t, EthernetHeaderSize+8, f.MessageOffset)
	require.Equal(t, p, f.Sync)

	// tagged frame carrying something else
	ip := make([]byte, len(b))
	copy(ip, b)
	ip[12], ip[13] = 0x08, 0x00
	_, err = Decode(tagged(ip, 0x81, 0x00, 0x00, 0x05))
	require.Error(t, err)
	require.Contains(t, err.Error(), "ethertype 0x800")
}

func TestDecodeTruncatedMetadata(t *testing.T) {
	h := ptp.NewSyncHeader()
	ts := ptp.Timestamp{Seconds: 1, Nanoseconds: 2}
	b, err := Build(testEthernet(t), &h, &ts)
	require.NoError(t, err)

	packet := gopacket.NewPacket(b[:SyncFrameSize-1], layers.LayerTypeEthernet, gopacket.Default)
	require.NotNil(t, packet.ErrorLayer())
	require.True(t, packet.Metadata().Truncated)

	// full length Follow_Up is not a sync, but it's not truncated either
	b[EthernetHeaderSize] = byte(ptp.NewSdoIDAndMsgType(ptp.MessageFollowUp, 1))
	packet = gopacket.NewPacket(b, layers.LayerTypeEthernet, gopacket.Default)
	require.NotNil(t, packet.ErrorLayer())
	require.False(t, packet.Metadata().Truncated)
}

func TestDecodeGopacket(t *testing.T) {
	h := ptp.NewSyncHeader()
	ts := ptp.Timestamp{Seconds: 1, Nanoseconds: 2}
	b, err := Build(testEthernet(t), &h, &ts)
	require.NoError(t, err)

	packet := gopacket.NewPacket(b, layers.LayerTypeEthernet, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())
	eth := packet.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	require.Equal(t, EtherTypePTP, eth.EthernetType)
	require.Equal(t, "PTP", eth.EthernetType.String())
	sl := packet.Layer(LayerTypeSync).(*SyncLayer)
	require.Equal(t, h, sl.Header)
	require.Equal(t, ts, sl.OriginTimestamp)
	require.Equal(t, b[EthernetHeaderSize:], sl.LayerContents())
	require.Empty(t, sl.LayerPayload())
}

func TestSerializeLayers(t *testing.T) {
	eth := testEthernet(t)
	p := ptp.NewSync(0, 0, ptp.Timestamp{Seconds: 1, Nanoseconds: 2})

	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{},
		&layers.Ethernet{SrcMAC: eth.Source, DstMAC: eth.Destination, EthernetType: EtherTypePTP},
		&SyncLayer{Sync: *p},
	)
	require.NoError(t, err)

	want, err := Builder{}.Build(eth, &p.Header, &p.OriginTimestamp)
	require.NoError(t, err)
	// gopacket pads Ethernet frames to 60 bytes
	require.Len(t, buf.Bytes(), 60)
	require.Equal(t, want, buf.Bytes()[:SyncFrameSize])
	require.Equal(t, []byte{0, 0}, buf.Bytes()[SyncFrameSize:])

	f, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, p, f.Sync)
	require.Equal(t, []byte{0, 0}, f.Padding)
}

func TestSerializeLayersOutOfRange(t *testing.T) {
	p := ptp.NewSync(0, 0, ptp.Timestamp{Seconds: ptp.MaxSeconds + 1})
	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, &SyncLayer{Sync: *p})
	require.ErrorIs(t, err, ptp.ErrOutOfRange)
}

func TestDecodeErrors(t *testing.T) {
	h := ptp.NewSyncHeader()
	ts := ptp.Timestamp{Seconds: 1, Nanoseconds: 2}
	good, err := Build(testEthernet(t), &h, &ts)
	require.NoError(t, err)

	t.Run("short ethernet", func(t *testing.T) {
		_, err := Decode(good[:10])
		require.ErrorIs(t, err, ptp.ErrTruncatedInput)
	})
	t.Run("short sync", func(t *testing.T) {
		_, err := Decode(good[:SyncFrameSize-1])
		require.ErrorIs(t, err, ptp.ErrTruncatedInput)
	})
	t.Run("wrong ethertype", func(t *testing.T) {
		b := make([]byte, len(good))
		copy(b, good)
		b[12], b[13] = 0x08, 0x00
		_, err := Decode(b)
		require.Error(t, err)
		require.Contains(t, err.Error(), "ethertype")
	})
	t.Run("not a sync", func(t *testing.T) {
		b := make([]byte, len(good))
		copy(b, good)
		b[EthernetHeaderSize] = 0x1b // announce
		_, err := Decode(b)
		require.Error(t, err)
		require.Contains(t, err.Error(), "not a sync message")
	})
}
