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
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	ptp "github.com/krethiundplethi/1588-playground/ptp/protocol"
)

// VLAN is 802.1Q tag found between source MAC and PTP EtherType
type VLAN struct {
	ID       uint16
	Priority uint8
}

// Frame is decoded Ethernet frame with PTP Sync inside
type Frame struct {
	Ethernet EthernetHeader
	// VLANs lists tags outermost first, empty for untagged frames
	VLANs []VLAN
	// MessageOffset is where PTP message starts in the frame
	MessageOffset int
	Sync          *ptp.Sync
	// Padding is whatever followed the message, if anything
	Padding []byte
}

// Decode parses raw Ethernet frame, possibly VLAN tagged. Only standard header layout is understood.
func Decode(b []byte) (*Frame, error) {
	if len(b) < EthernetHeaderSize {
		return nil, fmt.Errorf("decoding ethernet header: need %d bytes, got %d: %w", EthernetHeaderSize, len(b), ptp.ErrTruncatedInput)
	}
	packet := gopacket.NewPacket(b, layers.LayerTypeEthernet, gopacket.DecodeOptions{NoCopy: true})
	eth, ok := packet.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	if !ok {
		return nil, fmt.Errorf("not an ethernet frame")
	}
	f := &Frame{
		Ethernet: EthernetHeader{Destination: eth.DstMAC, Source: eth.SrcMAC},
	}
	etherType := eth.EthernetType
	for _, l := range packet.Layers() {
		if q, ok := l.(*layers.Dot1Q); ok {
			f.VLANs = append(f.VLANs, VLAN{ID: q.VLANIdentifier, Priority: q.Priority})
			etherType = q.Type
		}
	}
	if etherType != EtherTypePTP {
		return nil, fmt.Errorf("unexpected ethertype %#04x, want %#04x", uint16(etherType), uint16(EtherTypePTP))
	}
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		return nil, fmt.Errorf("decoding ptp message: %w", errLayer.Error())
	}
	sl, ok := packet.Layer(LayerTypeSync).(*SyncLayer)
	if !ok {
		return nil, fmt.Errorf("no ptp sync message in frame")
	}
	f.Sync = &sl.Sync
	f.MessageOffset = len(b) - len(sl.LayerContents()) - len(sl.LayerPayload())
	if len(sl.Payload) > 0 {
		f.Padding = sl.Payload
	}
	return f, nil
}
