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
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/krethiundplethi/1588-playground/ptp/frame"
	ptp "github.com/krethiundplethi/1588-playground/ptp/protocol"
)

type row struct {
	offset int
	width  int
	name   string
	value  string
}

func headerValue(h *ptp.Header, name string) string {
	switch name {
	case "messageType":
		return fmt.Sprintf("%s (sdoId %d)", h.MessageType(), h.SdoIDAndMsgType.SdoID())
	case "versionPTP":
		return fmt.Sprintf("%d", h.Version)
	case "messageLength":
		return fmt.Sprintf("%d", h.MessageLength)
	case "domainNumber":
		return fmt.Sprintf("%d", h.DomainNumber)
	case "reserved1":
		return fmt.Sprintf("%d", h.Reserved1)
	case "flagField":
		return fmt.Sprintf("0x%04x %s", uint16(h.FlagField), h.FlagField)
	case "correctionField":
		return h.CorrectionField.String()
	case "reserved2":
		return fmt.Sprintf("%d", h.Reserved2)
	case "sourcePortIdentity":
		return portValue(h.SourcePortIdentity)
	case "sequenceId":
		return fmt.Sprintf("%d", h.SequenceID)
	case "controlField":
		return fmt.Sprintf("%d", h.ControlField)
	case "logMessageInterval":
		return fmt.Sprintf("%d (%v)", h.LogMessageInterval, h.LogMessageInterval.Duration())
	}
	return ""
}

// portValue adds MAC address for identities built from EUI-48, they have ff:fe in the middle
func portValue(p ptp.PortIdentity) string {
	if p[3] != 0xff || p[4] != 0xfe {
		return p.String()
	}
	return fmt.Sprintf("%s (mac %s)", p, p.ClockIdentity().MAC())
}

func timestampValue(ts *ptp.Timestamp, name string) string {
	switch name {
	case "secondsField[47:32]":
		return fmt.Sprintf("%d", ts.Seconds>>32)
	case "secondsField[31:0]":
		return fmt.Sprintf("%d", uint32(ts.Seconds))
	case "nanosecondsField":
		return fmt.Sprintf("%d", ts.Nanoseconds)
	}
	return ""
}

func frameRows(f *frame.Frame) []row {
	rows := []row{
		{0, 6, "destination", f.Ethernet.Destination.String()},
		{6, 6, "source", f.Ethernet.Source.String()},
	}
	pos := 12
	for _, v := range f.VLANs {
		rows = append(rows, row{pos, 4, "vlanTag", fmt.Sprintf("vid %d pcp %d", v.ID, v.Priority)})
		pos += 4
	}
	rows = append(rows, row{pos, 2, "etherType", fmt.Sprintf("%#04x", uint16(frame.EtherTypePTP))})
	for _, fl := range ptp.HeaderFields() {
		rows = append(rows, row{f.MessageOffset + fl.Offset, fl.Width, fl.Name, headerValue(&f.Sync.Header, fl.Name)})
	}
	base := f.MessageOffset + ptp.HeaderSize
	for _, fl := range ptp.TimestampFields() {
		rows = append(rows, row{base + fl.Offset, fl.Width, fl.Name, timestampValue(&f.Sync.OriginTimestamp, fl.Name)})
	}
	return rows
}

// Dump prints frame as hex and, if it decodes, as a table of fields
func Dump(w io.Writer, b []byte) error {
	fmt.Fprintln(w, color.CyanString("Frame (%d bytes)", len(b)))
	fmt.Fprint(w, hex.Dump(b))

	f, err := frame.Decode(b)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", color.RedString("Can't decode:"), err)
		return nil
	}
	fmt.Fprintln(w, color.CyanString("Fields"))
	table := tablewriter.NewWriter(w)
	table.Header("offset", "width", "field", "value", "bytes")
	for _, r := range frameRows(f) {
		if err := table.Append([]string{
			fmt.Sprintf("%d", r.offset),
			fmt.Sprintf("%d", r.width),
			r.name,
			r.value,
			hex.EncodeToString(b[r.offset : r.offset+r.width]),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s, %s\n", color.GreenString("Sync:"), f.Sync.SourcePortIdentity, f.Sync.OriginTimestamp)
	if len(f.Padding) > 0 {
		fmt.Fprintf(w, "%d bytes of padding\n", len(f.Padding))
	}
	return nil
}
