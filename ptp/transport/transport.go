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
Package transport puts complete Ethernet frames on the wire.

Every Send is a single attempt. Failures come back as *TransportError and are
never retried here.
*/
package transport

import (
	"bytes"
	"errors"
	"fmt"
	"net"

	"github.com/krethiundplethi/1588-playground/ptp/frame"
)

//go:generate mockgen -source=transport.go -destination=transport_mock.go -package=transport

// Transport sends one frame out of an interface
type Transport interface {
	Send(dst net.HardwareAddr, iface *Interface, b []byte) error
	Close() error
}

// Kind is a transport implementation
type Kind string

// Supported kinds
const (
	KindRaw  Kind = "raw"
	KindPcap Kind = "pcap"
)

// ParseKind returns Kind by its name, empty name means KindRaw
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindRaw:
		return KindRaw, nil
	case KindPcap:
		return KindPcap, nil
	}
	return "", fmt.Errorf("unknown transport %q", s)
}

// New returns transport of given kind
func New(kind Kind) (Transport, error) {
	switch kind {
	case "", KindRaw:
		s, err := NewRawSocket()
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindPcap:
		return NewPcapSender(), nil
	}
	return nil, fmt.Errorf("unknown transport %q", kind)
}

// TransportError is returned by every transport when it fails to send
type TransportError struct {
	Op    string
	Iface string
	Err   error
}

func (e *TransportError) Error() string {
	if e.Iface == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Iface, e.Err)
}

// Unwrap returns underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrDestinationMismatch means frame is addressed to someone else than dst
var ErrDestinationMismatch = errors.New("frame destination doesn't match")

// checkSend makes sure we don't hand garbage to the kernel
func checkSend(dst net.HardwareAddr, iface *Interface, b []byte) error {
	if iface == nil {
		return &TransportError{Op: "send", Err: errors.New("no interface")}
	}
	if len(dst) != 6 {
		return &TransportError{Op: "send", Iface: iface.Name, Err: fmt.Errorf("destination %q: %w", dst, frame.ErrInvalidAddress)}
	}
	if len(b) < frame.EthernetHeaderSize {
		return &TransportError{Op: "send", Iface: iface.Name, Err: fmt.Errorf("frame of %d bytes is too short", len(b))}
	}
	if !bytes.Equal(b[:6], dst) {
		return &TransportError{Op: "send", Iface: iface.Name, Err: fmt.Errorf("%w: %s vs %s", ErrDestinationMismatch, net.HardwareAddr(b[:6]), dst)}
	}
	return nil
}
