//go:build !linux

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
	"errors"
	"net"
)

var errNoPacketSockets = errors.New("packet sockets are only available on linux, use pcap transport")

// RawSocket is not available on this platform
type RawSocket struct{}

// NewRawSocket always fails on this platform
func NewRawSocket() (*RawSocket, error) {
	return nil, &TransportError{Op: "socket", Err: errNoPacketSockets}
}

// Send always fails on this platform
func (s *RawSocket) Send(_ net.HardwareAddr, iface *Interface, _ []byte) error {
	return &TransportError{Op: "sendto", Iface: iface.Name, Err: errNoPacketSockets}
}

// Close does nothing
func (s *RawSocket) Close() error {
	return nil
}
