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

// all references are given for IEEE 1588-2008 Standard

import (
	"fmt"
)

// Version is what version of PTP protocol we implement
const Version uint8 = 2

// HeaderSize is the size of the common PTP header on the wire
const HeaderSize = 34

// Header Table 18 Common message header
type Header struct {
	SdoIDAndMsgType    SdoIDAndMsgType // first 4 bits is SdoId (transportSpecific), next 4 bits are msgtype
	Version            uint8
	MessageLength      uint16
	DomainNumber       uint8
	Reserved1          uint8 // always sent as zero
	FlagField          Flag
	CorrectionField    Correction
	Reserved2          uint32 // always sent as zero
	SourcePortIdentity PortIdentity
	SequenceID         uint16
	ControlField       uint8       // the use of this field is obsolete according to IEEE, unless it's ipv4
	LogMessageInterval LogInterval // see Table 24 Values of logMessageInterval field
}

// header fields, in wire order
var (
	hdrMsgType        = Field{"messageType", 0, 1}
	hdrVersion        = Field{"versionPTP", 1, 1}
	hdrLength         = Field{"messageLength", 2, 2}
	hdrDomain         = Field{"domainNumber", 4, 1}
	hdrReserved1      = Field{"reserved1", 5, 1}
	hdrFlags          = Field{"flagField", 6, 2}
	hdrCorrection     = Field{"correctionField", 8, 8}
	hdrReserved2      = Field{"reserved2", 16, 4}
	hdrSourcePort     = Field{"sourcePortIdentity", 20, 10}
	hdrSequence       = Field{"sequenceId", 30, 2}
	hdrControl        = Field{"controlField", 32, 1}
	hdrLogMsgInterval = Field{"logMessageInterval", 33, 1}
)

// HeaderFields lists header fields in wire order.
// It's what tools printing raw packets use to annotate bytes.
func HeaderFields() []Field {
	return []Field{
		hdrMsgType, hdrVersion, hdrLength, hdrDomain, hdrReserved1, hdrFlags,
		hdrCorrection, hdrReserved2, hdrSourcePort, hdrSequence, hdrControl, hdrLogMsgInterval,
	}
}

// Layout selects how the header is put on the wire
type Layout uint8

// Supported layouts
const (
	// LayoutStandard is IEEE 1588 Table 18 layout
	LayoutStandard Layout = iota
	/*
		LayoutLegacy reproduces output of the old gptp test sender, which copied sourcePortIdentity
		to offset 9, over the low 7 bytes of correctionField and the top 3 bytes of reserved2,
		leaving bytes 20-29 zero. Only useful to talk to receivers that were built against it.
	*/
	LayoutLegacy
)

// legacySourcePortOffset is where LayoutLegacy puts sourcePortIdentity
const legacySourcePortOffset = 9

// LayoutToString is a map from Layout to string
var LayoutToString = map[Layout]string{
	LayoutStandard: "standard",
	LayoutLegacy:   "legacy",
}

func (l Layout) String() string {
	return LayoutToString[l]
}

// ParseLayout returns Layout by its name
func ParseLayout(s string) (Layout, error) {
	for l, name := range LayoutToString {
		if name == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown layout %q", s)
}

// NewSyncHeader returns header with defaults for gPTP Sync message
func NewSyncHeader() Header {
	return Header{
		SdoIDAndMsgType: NewSdoIDAndMsgType(MessageSync, 1),
		Version:         Version,
		MessageLength:   SyncSize,
		FlagField:       FlagTwoStep | FlagUnicast,
	}
}

// MessageType returns MessageType
func (p *Header) MessageType() MessageType {
	return p.SdoIDAndMsgType.MsgType()
}

// SetSequence populates sequence field
func (p *Header) SetSequence(sequence uint16) {
	p.SequenceID = sequence
}

// MarshalBinaryTo marshals header into b using standard layout. b must be at least HeaderSize long.
func (p *Header) MarshalBinaryTo(b []byte) (int, error) {
	return p.MarshalBinaryLayoutTo(b, LayoutStandard)
}

// MarshalBinaryLayoutTo marshals header into b using requested layout
func (p *Header) MarshalBinaryLayoutTo(b []byte, layout Layout) (int, error) {
	if layout != LayoutStandard && layout != LayoutLegacy {
		return 0, fmt.Errorf("unsupported header layout %d", layout)
	}
	w, err := newWriter(b, HeaderSize, "header")
	if err != nil {
		return 0, err
	}
	w.putUint8(hdrMsgType, uint8(p.SdoIDAndMsgType))
	w.putUint8(hdrVersion, p.Version)
	w.putUint16(hdrLength, p.MessageLength)
	w.putUint8(hdrDomain, p.DomainNumber)
	w.zero(hdrReserved1)
	w.putUint16(hdrFlags, uint16(p.FlagField))
	w.putUint64(hdrCorrection, uint64(p.CorrectionField))
	w.zero(hdrReserved2)
	if layout == LayoutStandard {
		w.putBytes(hdrSourcePort, p.SourcePortIdentity[:])
	} else {
		w.zero(hdrSourcePort)
	}
	w.putUint16(hdrSequence, p.SequenceID)
	w.putUint8(hdrControl, p.ControlField)
	w.putUint8(hdrLogMsgInterval, uint8(p.LogMessageInterval))

	if layout == LayoutLegacy {
		copy(b[legacySourcePortOffset:legacySourcePortOffset+len(p.SourcePortIdentity)], p.SourcePortIdentity[:])
	}
	return w.len(), nil
}

// MarshalBinary converts header to []bytes
func (p *Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	n, err := p.MarshalBinaryTo(b)
	return b[:n], err
}

// UnmarshalBinary parses []byte in standard layout and populates struct fields
func (p *Header) UnmarshalBinary(b []byte) error {
	r, err := newReader(b, HeaderSize, "header")
	if err != nil {
		return err
	}
	p.SdoIDAndMsgType = SdoIDAndMsgType(r.uint8(hdrMsgType))
	p.Version = r.uint8(hdrVersion)
	p.MessageLength = r.uint16(hdrLength)
	p.DomainNumber = r.uint8(hdrDomain)
	p.Reserved1 = r.uint8(hdrReserved1)
	p.FlagField = Flag(r.uint16(hdrFlags))
	p.CorrectionField = Correction(r.uint64(hdrCorrection))
	p.Reserved2 = r.uint32(hdrReserved2)
	r.bytes(hdrSourcePort, p.SourcePortIdentity[:])
	p.SequenceID = r.uint16(hdrSequence)
	p.ControlField = r.uint8(hdrControl)
	p.LogMessageInterval = LogInterval(r.uint8(hdrLogMsgInterval))
	return nil
}
