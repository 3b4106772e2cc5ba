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
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/krethiundplethi/1588-playground/ptp/syncsend"
)

// RootCmd is a main entry point
var RootCmd = &cobra.Command{
	Use:   "ptpsync",
	Short: "Build and send a single PTP Sync frame over raw Ethernet",
}

// flags
var (
	rootVerboseFlag bool
	rootConfigFlag  string
	rootLogFileFlag string
)

// frame flags shared by send and dump
var overrides syncsend.Overrides

func init() {
	RootCmd.PersistentFlags().BoolVarP(&rootVerboseFlag, "verbose", "v", false, "verbose output")
	RootCmd.PersistentFlags().StringVarP(&rootConfigFlag, "config", "c", "", "path to the yaml config")
	RootCmd.PersistentFlags().StringVar(&rootLogFileFlag, "logfile", "", "also write logs to this file, rotated")
}

// ConfigureVerbosity configures log verbosity based on parsed flags. Needs to be called by any subcommand.
func ConfigureVerbosity() {
	log.SetLevel(log.InfoLevel)
	if rootVerboseFlag {
		log.SetLevel(log.DebugLevel)
	}
}

// ConfigureLogFile makes logs go to the file as well, flag wins over config
func ConfigureLogFile(cfgPath string) {
	path := rootLogFileFlag
	if path == "" {
		path = cfgPath
	}
	if path == "" {
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}))
}

func addFrameFlags(c *cobra.Command) {
	defaults := syncsend.DefaultConfig()
	flags := c.Flags()
	flags.StringVarP(&overrides.Iface, "iface", "i", defaults.Iface, "network interface to send from")
	flags.StringVarP(&overrides.Destination, "destination", "d", defaults.Destination, "destination MAC address")
	flags.StringVar(&overrides.Source, "source", defaults.Source, "source MAC address, interface address if empty")
	flags.StringVar(&overrides.Layout, "layout", defaults.Layout, "PTP header layout: standard or legacy")
	flags.Uint8Var(&overrides.DomainNumber, "domain", defaults.DomainNumber, "PTP domain number")
	flags.Uint16Var(&overrides.SequenceID, "sequence", defaults.SequenceID, "sequence ID")
	flags.Uint64Var(&overrides.Seconds, "seconds", defaults.Seconds, "origin timestamp seconds")
	flags.Uint32Var(&overrides.Nanoseconds, "nanoseconds", defaults.Nanoseconds, "origin timestamp nanoseconds")
	flags.BoolVar(&overrides.UseCurrentTime, "now", defaults.UseCurrentTime, "use current system time as origin timestamp")
}

func prepareConfig(c *cobra.Command) (*syncsend.Config, error) {
	setFlags := make(map[string]bool)
	c.Flags().Visit(func(f *pflag.Flag) {
		setFlags[f.Name] = true
	})
	cfg, err := syncsend.PrepareConfig(rootConfigFlag, &overrides, setFlags)
	if err != nil {
		return nil, err
	}
	ConfigureLogFile(cfg.LogFile)
	return cfg, nil
}

// Execute is the main entry point for CLI interface
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
