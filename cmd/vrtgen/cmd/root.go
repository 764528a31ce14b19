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
)

// RootCmd is vrtgen's entry point.
var RootCmd = &cobra.Command{
	Use:   "vrtgen",
	Short: "encode a VRT packet fixture described in INI into a raw word stream",
}

var outputFlag string

func init() {
	RootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output file (default: stdout)")
}

// Execute is the main entry point for the CLI.
func Execute() {
	log.SetLevel(log.InfoLevel)
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
