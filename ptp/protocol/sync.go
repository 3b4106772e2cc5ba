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
	"fmt"
)

// SyncSize is the size of Sync message on the wire, which is also what goes into its MessageLength
const SyncSize = HeaderSize + TimestampSize

// SyncBody Table 26 Sync and Delay_Req message fields
type SyncBody struct {
	OriginTimestamp Timestamp
}

// Sync is a full Sync packet
type Sync struct {
	Header
	SyncBody
}

// Packet is an interface to abstract packets we can put on the wire
type Packet interface {
	MessageType() MessageType
	SetSequence(uint16)
	MarshalBinaryTo([]byte) (int, error)
	UnmarshalBinary([]byte) error
}

// NewSync returns Sync message with default header, given domain, sequence and origin timestamp
func NewSync(domain uint8, sequence uint16, origin Timestamp) *Sync {
	h := NewSyncHeader()
	h.DomainNumber = domain
	h.SequenceID = sequence
	return &Sync{
		Header:   h,
		SyncBody: SyncBody{OriginTimestamp: origin},
	}
}

// MarshalBinaryTo marshals Sync into b in standard layout
func (p *Sync) MarshalBinaryTo(b []byte) (int, error) {
	return p.MarshalBinaryLayoutTo(b, LayoutStandard)
}

// MarshalBinaryLayoutTo marshals Sync into b, header is written in requested layout.
// Size is checked before anything is written, so b is untouched on error.
func (p *Sync) MarshalBinaryLayoutTo(b []byte, layout Layout) (int, error) {
	if len(b) < SyncSize {
		return 0, bufferTooSmall("sync", SyncSize, len(b))
	}
	if p.OriginTimestamp.Seconds > MaxSeconds {
		return 0, fmt.Errorf("encoding sync: seconds %d doesn't fit 48 bits: %w", p.OriginTimestamp.Seconds, ErrOutOfRange)
	}
	n, err := p.Header.MarshalBinaryLayoutTo(b, layout)
	if err != nil {
		return 0, err
	}
	nn, err := p.OriginTimestamp.MarshalBinaryTo(b[n:])
	if err != nil {
		return 0, err
	}
	return n + nn, nil
}

// MarshalBinary converts packet to []bytes
func (p *Sync) MarshalBinary() ([]byte, error) {
	b := make([]byte, SyncSize)
	n, err := p.MarshalBinaryTo(b)
	return b[:n], err
}

// UnmarshalBinary parses []byte and populates struct fields
func (p *Sync) UnmarshalBinary(b []byte) error {
	if len(b) < SyncSize {
		return truncatedInput("sync", SyncSize, len(b))
	}
	if err := p.Header.UnmarshalBinary(b); err != nil {
		return err
	}
	if p.MessageType() != MessageSync {
		return fmt.Errorf("not a sync message: %s (%d)", p.MessageType(), p.MessageType())
	}
	if int(p.MessageLength) > len(b) {
		return truncatedInput("sync", int(p.MessageLength), len(b))
	}
	return p.OriginTimestamp.UnmarshalBinary(b[HeaderSize:])
}

// Bytes converts any packet to []bytes
func Bytes(p Packet) ([]byte, error) {
	b := make([]byte, SyncSize)
	n, err := p.MarshalBinaryTo(b)
	if err != nil {
		return nil, err
	}
	return b[:n], nil
}

// BytesTo marshals packet into provided buffer and returns number of bytes written
func BytesTo(p Packet, b []byte) (int, error) {
	return p.MarshalBinaryTo(b)
}

// FromBytes parses []byte into any packet
func FromBytes(rawBytes []byte, p Packet) error {
	return p.UnmarshalBinary(rawBytes)
}

// DecodeSync parses raw bytes as Sync message
func DecodeSync(b []byte) (*Sync, error) {
	p := &Sync{}
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return p, nil
}
