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
Package syncsend builds a single PTP Sync frame from configuration and sends it.

There is no session here: one frame per Run, no retries, no follow up.
*/
package syncsend

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/krethiundplethi/1588-playground/ptp/frame"
	"github.com/krethiundplethi/1588-playground/ptp/transport"
)

// Sender sends one Sync frame
type Sender struct {
	Config    *Config
	Transport transport.Transport
	Lookup    func(name string) (*transport.Interface, error)
	Now       func() time.Time
	Out       io.Writer
}

// NewSender returns Sender using real interface lookup and clock
func NewSender(cfg *Config, t transport.Transport) *Sender {
	return &Sender{
		Config:    cfg,
		Transport: t,
		Lookup:    transport.LookupInterface,
		Now:       time.Now,
		Out:       os.Stdout,
	}
}

// Interface resolves configured interface
func (s *Sender) Interface() (*transport.Interface, error) {
	iface, err := s.Lookup(s.Config.Iface)
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", s.Config.Iface, err)
	}
	return iface, nil
}

// Frame builds the frame. iface provides source MAC unless it's configured explicitly, and can be nil then.
func (s *Sender) Frame(iface *transport.Interface) ([]byte, error) {
	dst, err := s.Config.DestinationMAC()
	if err != nil {
		return nil, err
	}
	src, err := s.Config.SourceMAC()
	if err != nil {
		return nil, err
	}
	if src == nil {
		if iface == nil {
			return nil, fmt.Errorf("source MAC is not configured and there is no interface to take it from")
		}
		src = iface.HardwareAddr
	}
	layout, err := s.Config.HeaderLayout()
	if err != nil {
		return nil, err
	}
	h, err := s.Config.Header(src)
	if err != nil {
		return nil, err
	}
	ts := s.Config.OriginTimestamp(s.Now())
	log.Debugf("header: %+v", h)
	log.Debugf("origin: %s", ts)

	return frame.Builder{Layout: layout}.Build(frame.EthernetHeader{Destination: dst, Source: src}, &h, &ts)
}

// Run builds the frame and sends it once. Transport errors are returned as is.
func (s *Sender) Run() error {
	iface, err := s.Interface()
	if err != nil {
		return err
	}
	b, err := s.Frame(iface)
	if err != nil {
		return fmt.Errorf("building frame: %w", err)
	}
	if s.Config.Dump {
		if err := Dump(s.Out, b); err != nil {
			return err
		}
	}
	dst := net.HardwareAddr(b[:6])
	log.Infof("Sending %d bytes to %s via %s", len(b), dst, iface.Name)
	if err := s.Transport.Send(dst, iface, b); err != nil {
		return err
	}
	log.Debugf("sent %d bytes", len(b))
	return nil
}
