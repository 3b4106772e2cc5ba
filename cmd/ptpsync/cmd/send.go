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
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/krethiundplethi/1588-playground/ptp/syncsend"
	"github.com/krethiundplethi/1588-playground/ptp/transport"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one PTP Sync frame",
	Run:   runSendCmd,
}

func init() {
	RootCmd.AddCommand(sendCmd)
	addFrameFlags(sendCmd)
	sendCmd.Flags().StringVarP(&overrides.Transport, "transport", "t", string(transport.KindRaw), "how to send: raw or pcap")
	sendCmd.Flags().BoolVar(&overrides.Dump, "dump", false, "print the frame before sending")
}

func send(cfg *syncsend.Config) error {
	kind, err := cfg.TransportKind()
	if err != nil {
		return err
	}
	t, err := transport.New(kind)
	if err != nil {
		return err
	}
	defer t.Close()
	return syncsend.NewSender(cfg, t).Run()
}

func runSendCmd(c *cobra.Command, _ []string) {
	ConfigureVerbosity()
	cfg, err := prepareConfig(c)
	if err != nil {
		log.Fatal(err)
	}
	if err := send(cfg); err != nil {
		log.Fatal(err)
	}
}
