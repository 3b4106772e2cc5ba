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

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ptp "github.com/krethiundplethi/1588-playground/ptp/protocol"
	"github.com/krethiundplethi/1588-playground/ptp/syncsend"
)

// default Sync frame from aa:bb:cc:dd:ee:ff
const syncFrameHex = "00155d73fa3b aabbccddeeff 88f7" +
	"10 02 00 2c 00 00 06 00 00 00 00 00 00 00 00 00 00 00 00 00" +
	"00 00 00 00 00 00 00 00 00 00 00 00 00 00" +
	"00 00 00 00 00 01 00 00 00 02"

func TestParseHex(t *testing.T) {
	b, err := parseHex("0x88f7")
	require.NoError(t, err)
	require.Equal(t, []byte{0x88, 0xf7}, b)

	b, err = parseHex("aa:bb:cc\n dd\tee")
	require.NoError(t, err)
	require.Equal(t, []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee}, b)

	b, err = parseHex(syncFrameHex)
	require.NoError(t, err)
	require.Len(t, b, 58)

	_, err = parseHex("abc")
	require.Error(t, err)
	_, err = parseHex("zz")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, decode(&buf, syncFrameHex))
	require.Contains(t, buf.String(), "Frame (58 bytes)")
	require.Contains(t, buf.String(), "TWO_STEP|UNICAST")

	buf.Reset()
	vlanHex := strings.Replace(syncFrameHex, "aabbccddeeff ", "aabbccddeeff 8100 0005 ", 1)
	require.NoError(t, decode(&buf, vlanHex))
	require.Contains(t, buf.String(), "Frame (62 bytes)")
	require.Contains(t, buf.String(), "vid 5 pcp 0")

	buf.Reset()
	err := decode(&buf, syncFrameHex[:41])
	require.ErrorIs(t, err, ptp.ErrTruncatedInput)
	require.Empty(t, buf.String())
}

func TestDump(t *testing.T) {
	cfg := syncsend.DefaultConfig()
	cfg.Source = "aa:bb:cc:dd:ee:ff"
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, cfg))
	require.Contains(t, buf.String(), "00000000  00 15 5d 73 fa 3b aa bb  cc dd ee ff 88 f7 10 02")

	want, err := parseHex(syncFrameHex)
	require.NoError(t, err)
	var wantBuf bytes.Buffer
	require.NoError(t, syncsend.Dump(&wantBuf, want))
	require.Equal(t, wantBuf.String(), buf.String())
}
