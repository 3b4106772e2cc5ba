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
	"time"
)

// TimestampSize is the size of Timestamp on the wire
const TimestampSize = 10

// MaxSeconds is the biggest value secondsField (uint48) can hold
const MaxSeconds uint64 = 1<<48 - 1

// timestamp fields, in wire order
var (
	tsSecondsHigh = Field{"secondsField[47:32]", 0, 2}
	tsSecondsLow  = Field{"secondsField[31:0]", 2, 4}
	tsNanoseconds = Field{"nanosecondsField", 6, 4}
)

// TimestampFields lists timestamp fields in wire order
func TimestampFields() []Field {
	return []Field{tsSecondsHigh, tsSecondsLow, tsNanoseconds}
}

/*
Timestamp type represents a positive time with respect to the epoch.
The secondsField member is the integer portion of the timestamp in units of seconds.
The nanosecondsField member is the fractional portion of the timestamp in units of nanoseconds.
The nanosecondsField member is always less than 10**9 in a conformant timestamp, we only care it fits 32 bits.
For example:
+2.000000001 seconds is represented by secondsField = 0000 0000 0002 base 16 and nanosecondsField= 0000 0001 base 16.

Seconds is uint48 on the wire, so upper 16 bits must stay zero.
*/
type Timestamp struct {
	Seconds     uint64
	Nanoseconds uint32
}

// NewTimestamp allows to create Timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{
		Seconds:     uint64(t.Unix()),
		Nanoseconds: uint32(t.Nanosecond()),
	}
}

// Time turns Timestamp into normal Go time.Time
func (t Timestamp) Time() time.Time {
	if t.Empty() {
		return time.Time{}
	}
	return time.Unix(int64(t.Seconds), int64(t.Nanoseconds))
}

// Empty timestamp
func (t Timestamp) Empty() bool {
	return t.Nanoseconds == 0 && t.Seconds == 0
}

// String representation of the timestamp
func (t Timestamp) String() string {
	if t.Empty() {
		return "Timestamp(empty)"
	}
	return fmt.Sprintf("Timestamp(%d.%09ds)", t.Seconds, t.Nanoseconds)
}

// MarshalBinaryTo marshals timestamp into b. Seconds that don't fit 48 bits are an error, not truncated.
func (t *Timestamp) MarshalBinaryTo(b []byte) (int, error) {
	if t.Seconds > MaxSeconds {
		return 0, fmt.Errorf("encoding timestamp: seconds %d doesn't fit 48 bits: %w", t.Seconds, ErrOutOfRange)
	}
	w, err := newWriter(b, TimestampSize, "timestamp")
	if err != nil {
		return 0, err
	}
	w.putUint16(tsSecondsHigh, uint16(t.Seconds>>32))
	w.putUint32(tsSecondsLow, uint32(t.Seconds))
	w.putUint32(tsNanoseconds, t.Nanoseconds)
	return w.len(), nil
}

// MarshalBinary converts timestamp to []bytes
func (t *Timestamp) MarshalBinary() ([]byte, error) {
	b := make([]byte, TimestampSize)
	n, err := t.MarshalBinaryTo(b)
	return b[:n], err
}

// UnmarshalBinary parses []byte and populates struct fields
func (t *Timestamp) UnmarshalBinary(b []byte) error {
	r, err := newReader(b, TimestampSize, "timestamp")
	if err != nil {
		return err
	}
	t.Seconds = uint64(r.uint16(tsSecondsHigh))<<32 | uint64(r.uint32(tsSecondsLow))
	t.Nanoseconds = r.uint32(tsNanoseconds)
	return nil
}
