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

package transport

import (
	"fmt"
	"net"

	"github.com/google/gopacket/pcap"
	log "github.com/sirupsen/logrus"
)

// SnapshotLen is more than enough for PTP frames
const SnapshotLen = 1024

// PcapSender injects frames through libpcap.
// The handle is opened on first Send and stays bound to that interface.
type PcapSender struct {
	handle *pcap.Handle
	iface  string
}

// NewPcapSender returns PcapSender, nothing is opened yet
func NewPcapSender() *PcapSender {
	return &PcapSender{}
}

// Send writes the frame with pcap_sendpacket
func (s *PcapSender) Send(dst net.HardwareAddr, iface *Interface, b []byte) error {
	if err := checkSend(dst, iface, b); err != nil {
		return err
	}
	if s.handle == nil {
		handle, err := pcap.OpenLive(iface.Name, SnapshotLen, false, pcap.BlockForever)
		if err != nil {
			return &TransportError{Op: "open", Iface: iface.Name, Err: err}
		}
		log.Debugf("opened pcap handle on %s", iface.Name)
		s.handle = handle
		s.iface = iface.Name
	} else if s.iface != iface.Name {
		return &TransportError{Op: "send", Iface: iface.Name, Err: fmt.Errorf("pcap handle is bound to %s", s.iface)}
	}
	if err := s.handle.WritePacketData(b); err != nil {
		return &TransportError{Op: "write", Iface: iface.Name, Err: err}
	}
	return nil
}

// Close closes pcap handle, if any
func (s *PcapSender) Close() error {
	if s.handle != nil {
		s.handle.Close()
		s.handle = nil
	}
	return nil
}
