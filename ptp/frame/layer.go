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
	"errors"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	ptp "github.com/krethiundplethi/1588-playground/ptp/protocol"
)

// EtherTypePTP is EtherType of PTP over IEEE 802.3
const EtherTypePTP layers.EthernetType = 0x88F7

// LayerTypeSync is gopacket layer type for PTP Sync message
var LayerTypeSync = gopacket.RegisterLayerType(1588, gopacket.LayerTypeMetadata{
	Name:    "PTPSync",
	Decoder: gopacket.DecodeFunc(decodeSync),
})

func init() {
	// teach gopacket Ethernet decoder about PTP
	layers.EthernetTypeMetadata[EtherTypePTP] = layers.EnumMetadata{
		DecodeWith: LayerTypeSync,
		Name:       "PTP",
		LayerType:  LayerTypeSync,
	}
}

// SyncLayer is PTP Sync message as gopacket layer
type SyncLayer struct {
	layers.BaseLayer
	ptp.Sync
}

// LayerType returns LayerTypeSync
func (s *SyncLayer) LayerType() gopacket.LayerType {
	return LayerTypeSync
}

// CanDecode returns LayerTypeSync
func (s *SyncLayer) CanDecode() gopacket.LayerClass {
	return LayerTypeSync
}

// NextLayerType is whatever padding follows the message
func (s *SyncLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypePayload
}

// DecodeFromBytes decodes Sync message from data
func (s *SyncLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := s.Sync.UnmarshalBinary(data); err != nil {
		if errors.Is(err, ptp.ErrTruncatedInput) {
			df.SetTruncated()
		}
		return err
	}
	s.BaseLayer = layers.BaseLayer{Contents: data[:ptp.SyncSize], Payload: data[ptp.SyncSize:]}
	return nil
}

// SerializeTo writes Sync message into gopacket serialize buffer
func (s *SyncLayer) SerializeTo(b gopacket.SerializeBuffer, _ gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(ptp.SyncSize)
	if err != nil {
		return err
	}
	if _, err := s.Sync.MarshalBinaryTo(bytes); err != nil {
		return fmt.Errorf("serializing %s: %w", LayerTypeSync, err)
	}
	return nil
}

func decodeSync(data []byte, p gopacket.PacketBuilder) error {
	s := &SyncLayer{}
	if err := s.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(s)
	return p.NextDecoder(s.NextLayerType())
}
