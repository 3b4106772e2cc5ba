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
	"net"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/krethiundplethi/1588-playground/hostendian"
	"github.com/krethiundplethi/1588-playground/ptp/frame"
)

// RawSocket sends frames over AF_PACKET socket. Needs CAP_NET_RAW.
type RawSocket struct {
	fd int
}

func ptpProto() uint16 {
	return hostendian.Htons(uint16(frame.EtherTypePTP))
}

// NewRawSocket opens packet socket bound to PTP EtherType
func NewRawSocket() (*RawSocket, error) {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(ptpProto()))
	if err != nil {
		return nil, &TransportError{Op: "socket", Err: err}
	}
	return &RawSocket{fd: fd}, nil
}

// linkAddr is where the kernel sends the frame
func linkAddr(dst net.HardwareAddr, iface *Interface) *unix.SockaddrLinklayer {
	sa := &unix.SockaddrLinklayer{
		Protocol: ptpProto(),
		Ifindex:  iface.Index,
		Halen:    uint8(len(dst)),
	}
	copy(sa.Addr[:], dst)
	return sa
}

// Send writes the whole frame in one sendto call
func (s *RawSocket) Send(dst net.HardwareAddr, iface *Interface, b []byte) error {
	if err := checkSend(dst, iface, b); err != nil {
		return err
	}
	log.Debugf("sendto fd %d ifindex %d dst %s", s.fd, iface.Index, dst)
	if err := unix.Sendto(s.fd, b, 0, linkAddr(dst, iface)); err != nil {
		return &TransportError{Op: "sendto", Iface: iface.Name, Err: err}
	}
	return nil
}

// Close closes the socket
func (s *RawSocket) Close() error {
	return unix.Close(s.fd)
}
