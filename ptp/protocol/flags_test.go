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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagValues(t *testing.T) {
	require.Equal(t, Flag(0x0200), FlagTwoStep)
	require.Equal(t, Flag(0x0400), FlagUnicast)
	require.Equal(t, Flag(0x0008), FlagTimeTraceable)
	require.Equal(t, Flag(0x0600), FlagTwoStep|FlagUnicast)
}

func TestFlagHas(t *testing.T) {
	f := FlagTwoStep | FlagUnicast
	require.True(t, f.Has(FlagTwoStep))
	require.True(t, f.Has(FlagUnicast))
	require.True(t, f.Has(FlagTwoStep|FlagUnicast))
	require.False(t, f.Has(FlagTimeTraceable))
	require.False(t, f.Has(FlagTwoStep|FlagTimeTraceable))
}

func TestFlagString(t *testing.T) {
	require.Equal(t, "NONE", Flag(0).String())
	require.Equal(t, "TWO_STEP|UNICAST", (FlagTwoStep | FlagUnicast).String())
	require.Equal(t, "TWO_STEP|UNICAST|TIME_TRACEABLE", (FlagTwoStep | FlagUnicast | FlagTimeTraceable).String())
	require.Equal(t, "UNICAST|0x0001", (FlagUnicast | 1).String())
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags([]string{"two_step", "UNICAST"})
	require.NoError(t, err)
	require.Equal(t, FlagTwoStep|FlagUnicast, f)

	f, err = ParseFlags(nil)
	require.NoError(t, err)
	require.Equal(t, Flag(0), f)

	_, err = ParseFlags([]string{"time_traceable", "leap61"})
	require.Error(t, err)
}
