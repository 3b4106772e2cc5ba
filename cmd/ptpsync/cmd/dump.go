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
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/krethiundplethi/1588-playground/ptp/syncsend"
	"github.com/krethiundplethi/1588-playground/ptp/transport"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Build PTP Sync frame and print it without sending",
	Run:   runDumpCmd,
}

func init() {
	RootCmd.AddCommand(dumpCmd)
	addFrameFlags(dumpCmd)
}

func dump(w io.Writer, cfg *syncsend.Config) error {
	s := syncsend.NewSender(cfg, nil)
	var iface *transport.Interface
	// interface is only needed for its MAC
	if cfg.Source == "" {
		var err error
		if iface, err = s.Interface(); err != nil {
			return err
		}
	}
	b, err := s.Frame(iface)
	if err != nil {
		return err
	}
	return syncsend.Dump(w, b)
}

func runDumpCmd(c *cobra.Command, _ []string) {
	ConfigureVerbosity()
	cfg, err := prepareConfig(c)
	if err != nil {
		log.Fatal(err)
	}
	if err := dump(os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}
}
