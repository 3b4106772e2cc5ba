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
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/krethiundplethi/1588-playground/ptp/frame"
	"github.com/krethiundplethi/1588-playground/ptp/syncsend"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode captured Ethernet frame with PTP Sync inside",
	Args:  cobra.ExactArgs(1),
	Run:   runDecodeCmd,
}

func init() {
	RootCmd.AddCommand(decodeCmd)
}

// parseHex accepts what tcpdump -xx or wireshark copy give us
func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "", "0x", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parsing hex: %w", err)
	}
	return b, nil
}

func decode(w io.Writer, s string) error {
	b, err := parseHex(s)
	if err != nil {
		return err
	}
	if _, err := frame.Decode(b); err != nil {
		return fmt.Errorf("decoding frame: %w", err)
	}
	return syncsend.Dump(w, b)
}

func runDecodeCmd(_ *cobra.Command, args []string) {
	ConfigureVerbosity()
	if err := decode(os.Stdout, args[0]); err != nil {
		log.Fatal(err)
	}
}
