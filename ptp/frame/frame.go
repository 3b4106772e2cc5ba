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

/*
Package frame puts PTP messages into raw Ethernet frames (PTP over IEEE 802.3, Annex F)
and takes them back out.

Building a frame is a pure function of its inputs: header and body are encoded
straight into the buffer provided by the caller, nothing is kept between calls.
*/
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	ptp "github.com/krethiundplethi/1588-playground/ptp/protocol"
)

const (
	// EthernetHeaderSize is destination MAC, source MAC and EtherType
	EthernetHeaderSize = 14
	// SyncFrameSize is the size of Ethernet frame carrying Sync message
	SyncFrameSize = EthernetHeaderSize + ptp.SyncSize
)

// ErrInvalidAddress is returned when MAC address is not EUI-48
var ErrInvalidAddress = errors.New("invalid hardware address")

// EthernetHeader describes Ethernet header of PTP frame. EtherType is always EtherTypePTP.
type EthernetHeader struct {
	Destination net.HardwareAddr
	Source      net.HardwareAddr
}

func checkMAC(what string, mac net.HardwareAddr) error {
	if len(mac) != 6 {
		return fmt.Errorf("%s %q: %w", what, mac, ErrInvalidAddress)
	}
	return nil
}

// MarshalBinaryTo writes Ethernet header into b
func (e *EthernetHeader) MarshalBinaryTo(b []byte) (int, error) {
	if err := checkMAC("destination", e.Destination); err != nil {
		return 0, err
	}
	if err := checkMAC("source", e.Source); err != nil {
		return 0, err
	}
	if len(b) < EthernetHeaderSize {
		return 0, fmt.Errorf("encoding ethernet header: need %d bytes, got %d: %w", EthernetHeaderSize, len(b), ptp.ErrBufferTooSmall)
	}
	copy(b[0:6], e.Destination)
	copy(b[6:12], e.Source)
	binary.BigEndian.PutUint16(b[12:14], uint16(EtherTypePTP))
	return EthernetHeaderSize, nil
}

// Builder assembles Ethernet frames with PTP Sync messages
type Builder struct {
	// Layout of PTP header, LayoutStandard unless talking to something very old
	Layout ptp.Layout
}

/*
BuildTo writes Ethernet header, PTP header and timestamp into b, in this order, and returns number of bytes written.
Any error aborts the whole thing and is returned as is. b is zeroed in this case,
so it never holds half of a frame.
*/
func (bl Builder) BuildTo(b []byte, eth EthernetHeader, header *ptp.Header, ts *ptp.Timestamp) (int, error) {
	if len(b) < SyncFrameSize {
		return 0, fmt.Errorf("encoding frame: need %d bytes, got %d: %w", SyncFrameSize, len(b), ptp.ErrBufferTooSmall)
	}
	n, err := bl.buildTo(b, eth, header, ts)
	if err != nil {
		clear(b[:SyncFrameSize])
		return 0, err
	}
	return n, nil
}

func (bl Builder) buildTo(b []byte, eth EthernetHeader, header *ptp.Header, ts *ptp.Timestamp) (int, error) {
	pos, err := eth.MarshalBinaryTo(b)
	if err != nil {
		return 0, err
	}
	n, err := header.MarshalBinaryLayoutTo(b[pos:], bl.Layout)
	if err != nil {
		return 0, err
	}
	pos += n
	n, err = ts.MarshalBinaryTo(b[pos:])
	if err != nil {
		return 0, err
	}
	return pos + n, nil
}

// Build returns newly allocated frame
func (bl Builder) Build(eth EthernetHeader, header *ptp.Header, ts *ptp.Timestamp) ([]byte, error) {
	b := make([]byte, SyncFrameSize)
	n, err := bl.BuildTo(b, eth, header, ts)
	if err != nil {
		return nil, err
	}
	return b[:n], nil
}

// BuildSyncTo is BuildTo for complete Sync message
func (bl Builder) BuildSyncTo(b []byte, eth EthernetHeader, p *ptp.Sync) (int, error) {
	return bl.BuildTo(b, eth, &p.Header, &p.OriginTimestamp)
}

// BuildTo writes Sync frame with standard header layout into b
func BuildTo(b []byte, eth EthernetHeader, header *ptp.Header, ts *ptp.Timestamp) (int, error) {
	return Builder{}.BuildTo(b, eth, header, ts)
}

// Build returns Sync frame with standard header layout
func Build(eth EthernetHeader, header *ptp.Header, ts *ptp.Timestamp) ([]byte, error) {
	return Builder{}.Build(eth, header, ts)
}
