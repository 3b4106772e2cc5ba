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

package syncsend

import (
	"fmt"
	"math"
	"net"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/krethiundplethi/1588-playground/ptp/frame"
	ptp "github.com/krethiundplethi/1588-playground/ptp/protocol"
	"github.com/krethiundplethi/1588-playground/ptp/transport"
)

// maxCorrectionNS is 2**47, correctionField can't hold this many nanoseconds
const maxCorrectionNS = 1 << 47

// special values of clock_identity
const (
	ClockIdentityZero = ""
	ClockIdentityAuto = "auto"
)

// Config specifies what Sync frame we send and how
type Config struct {
	Iface              string   `yaml:"iface"`
	Transport          string   `yaml:"transport"`
	Destination        string   `yaml:"destination"`
	Source             string   `yaml:"source"` // interface MAC if empty
	Layout             string   `yaml:"layout"`
	DomainNumber       uint8    `yaml:"domain_number"`
	SequenceID         uint16   `yaml:"sequence_id"`
	Flags              []string `yaml:"flags"`
	CorrectionNS       float64  `yaml:"correction_ns"`
	LogMessageInterval int8     `yaml:"log_message_interval"`
	ControlField       uint8    `yaml:"control_field"`
	ClockIdentity      string   `yaml:"clock_identity"` // "", "auto" or 001122.fffe.334455
	PortNumber         uint16   `yaml:"port_number"`
	Seconds            uint64   `yaml:"seconds"`
	Nanoseconds        uint32   `yaml:"nanoseconds"`
	UseCurrentTime     bool     `yaml:"use_current_time"`
	Dump               bool     `yaml:"dump"`
	LogFile            string   `yaml:"log_file"`
}

// DefaultConfig returns Config initialized with default values
func DefaultConfig() *Config {
	return &Config{
		Iface:       "eth0",
		Transport:   string(transport.KindRaw),
		Destination: "00:15:5d:73:fa:3b",
		Layout:      ptp.LayoutStandard.String(),
		Flags:       []string{"two_step", "unicast"},
		Seconds:     1,
		Nanoseconds: 2,
	}
}

func parseMAC(what, s string) (net.HardwareAddr, error) {
	mac, err := net.ParseMAC(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if len(mac) != 6 {
		return nil, fmt.Errorf("%s %q: %w", what, s, frame.ErrInvalidAddress)
	}
	return mac, nil
}

// DestinationMAC returns parsed destination address
func (c *Config) DestinationMAC() (net.HardwareAddr, error) {
	return parseMAC("destination", c.Destination)
}

// SourceMAC returns parsed source address, nil if it has to come from the interface
func (c *Config) SourceMAC() (net.HardwareAddr, error) {
	if c.Source == "" {
		return nil, nil
	}
	return parseMAC("source", c.Source)
}

// HeaderLayout returns parsed layout
func (c *Config) HeaderLayout() (ptp.Layout, error) {
	return ptp.ParseLayout(c.Layout)
}

// TransportKind returns parsed transport kind
func (c *Config) TransportKind() (transport.Kind, error) {
	return transport.ParseKind(c.Transport)
}

func (c *Config) clockIdentity(source net.HardwareAddr) (ptp.ClockIdentity, error) {
	switch c.ClockIdentity {
	case ClockIdentityZero:
		return 0, nil
	case ClockIdentityAuto:
		if source == nil {
			return 0, fmt.Errorf("clock_identity %q needs source MAC", ClockIdentityAuto)
		}
		return ptp.NewClockIdentity(source)
	}
	return ptp.ParseClockIdentity(c.ClockIdentity)
}

// Header builds PTP header from config. source is used when clock identity is derived from MAC.
func (c *Config) Header(source net.HardwareAddr) (ptp.Header, error) {
	h := ptp.NewSyncHeader()
	flags, err := ptp.ParseFlags(c.Flags)
	if err != nil {
		return h, err
	}
	clock, err := c.clockIdentity(source)
	if err != nil {
		return h, err
	}
	h.DomainNumber = c.DomainNumber
	h.SequenceID = c.SequenceID
	h.FlagField = flags
	h.CorrectionField = ptp.NewCorrection(c.CorrectionNS)
	h.LogMessageInterval = ptp.LogInterval(c.LogMessageInterval)
	h.ControlField = c.ControlField
	h.SourcePortIdentity = ptp.NewPortIdentity(clock, c.PortNumber)
	return h, nil
}

// OriginTimestamp returns timestamp to put into Sync, either configured or now
func (c *Config) OriginTimestamp(now time.Time) ptp.Timestamp {
	if c.UseCurrentTime {
		return ptp.NewTimestamp(now)
	}
	return ptp.Timestamp{Seconds: c.Seconds, Nanoseconds: c.Nanoseconds}
}

// Validate config is sane
func (c *Config) Validate() error {
	if c.Iface == "" {
		return fmt.Errorf("iface must be specified")
	}
	if _, err := c.TransportKind(); err != nil {
		return err
	}
	if _, err := c.DestinationMAC(); err != nil {
		return err
	}
	if _, err := c.SourceMAC(); err != nil {
		return err
	}
	if _, err := c.HeaderLayout(); err != nil {
		return err
	}
	if _, err := ptp.ParseFlags(c.Flags); err != nil {
		return err
	}
	if c.ClockIdentity != ClockIdentityZero && c.ClockIdentity != ClockIdentityAuto {
		if _, err := ptp.ParseClockIdentity(c.ClockIdentity); err != nil {
			return err
		}
	}
	// correctionField is ns * 2**16 in int64
	if math.IsNaN(c.CorrectionNS) || math.Abs(c.CorrectionNS) >= maxCorrectionNS {
		return fmt.Errorf("correction_ns %v doesn't fit correctionField: %w", c.CorrectionNS, ptp.ErrOutOfRange)
	}
	if !c.UseCurrentTime && c.Seconds > ptp.MaxSeconds {
		return fmt.Errorf("seconds %d doesn't fit 48 bits: %w", c.Seconds, ptp.ErrOutOfRange)
	}
	if !c.UseCurrentTime && c.Nanoseconds >= uint32(time.Second) {
		log.Warningf("nanoseconds %d is not less than 10^9, timestamp is not conformant", c.Nanoseconds)
	}
	if c.Layout == ptp.LayoutLegacy.String() {
		log.Warning("legacy header layout is enabled, sourcePortIdentity will be written at the wrong offset")
	}
	return nil
}

// ReadConfig reads config from the file
func ReadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	cData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(cData, &c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Overrides are values of CLI flags
type Overrides struct {
	Iface          string
	Transport      string
	Destination    string
	Source         string
	Layout         string
	DomainNumber   uint8
	SequenceID     uint16
	Seconds        uint64
	Nanoseconds    uint32
	UseCurrentTime bool
	Dump           bool
}

// PrepareConfig prepares final version of config based on defaults, CLI flags and on-disk config, and validates resulting config
func PrepareConfig(cfgPath string, o *Overrides, setFlags map[string]bool) (*Config, error) {
	cfg := DefaultConfig()
	var err error
	warn := func(name string) {
		log.Warningf("overriding %s from CLI flag", name)
	}
	if cfgPath != "" {
		cfg, err = ReadConfig(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("reading config from %q: %w", cfgPath, err)
		}
	}
	if o != nil {
		if setFlags["iface"] {
			warn("iface")
			cfg.Iface = o.Iface
		}
		if setFlags["transport"] {
			warn("transport")
			cfg.Transport = o.Transport
		}
		if setFlags["destination"] {
			warn("destination")
			cfg.Destination = o.Destination
		}
		if setFlags["source"] {
			warn("source")
			cfg.Source = o.Source
		}
		if setFlags["layout"] {
			warn("layout")
			cfg.Layout = o.Layout
		}
		if setFlags["domain"] {
			warn("domain")
			cfg.DomainNumber = o.DomainNumber
		}
		if setFlags["sequence"] {
			warn("sequence")
			cfg.SequenceID = o.SequenceID
		}
		if setFlags["seconds"] {
			warn("seconds")
			cfg.Seconds = o.Seconds
		}
		if setFlags["nanoseconds"] {
			warn("nanoseconds")
			cfg.Nanoseconds = o.Nanoseconds
		}
		if setFlags["now"] {
			warn("now")
			cfg.UseCurrentTime = o.UseCurrentTime
		}
		if setFlags["dump"] {
			cfg.Dump = o.Dump
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	log.Debugf("config: %+v", cfg)
	return cfg, nil
}
