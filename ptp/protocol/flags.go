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
	"strings"
)

// Flag is a set of bits carried in the header flagField
type Flag uint16

// flags we know how to set, values match what gPTP senders put on the wire
const (
	FlagTimeTraceable Flag = 0x0008
	FlagTwoStep       Flag = 0x0200
	FlagUnicast       Flag = 0x0400
)

// order matters for String
var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagTwoStep, "TWO_STEP"},
	{FlagUnicast, "UNICAST"},
	{FlagTimeTraceable, "TIME_TRACEABLE"},
}

// Has reports whether all bits of x are set in f
func (f Flag) Has(x Flag) bool {
	return f&x == x
}

// String returns names of known flags joined by '|', unknown bits are printed in hex
func (f Flag) String() string {
	if f == 0 {
		return "NONE"
	}
	names := []string{}
	rest := f
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%04x", uint16(rest)))
	}
	return strings.Join(names, "|")
}

// ParseFlag returns Flag by its name, case insensitive. Both "two_step" and "TWO_STEP" work.
func ParseFlag(name string) (Flag, error) {
	for _, fn := range flagNames {
		if strings.EqualFold(fn.name, name) {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", name)
}

// ParseFlags combines list of flag names into Flag
func ParseFlags(names []string) (Flag, error) {
	var f Flag
	for _, n := range names {
		x, err := ParseFlag(n)
		if err != nil {
			return 0, err
		}
		f |= x
	}
	return f, nil
}
