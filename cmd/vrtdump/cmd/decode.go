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
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ember91/libvrt-sub001/hostendian"
	"github.com/ember91/libvrt-sub001/internal/vrtstats"
	"github.com/ember91/libvrt-sub001/vrt"
)

func init() {
	RootCmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "decode back-to-back VRT packets from a raw big-endian word file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runDecode(args[0])
	},
}

// wordsFromFile reads a file of big-endian 32-bit words in its entirety.
// On a big-endian host the file's word order already matches the host's, so
// each word is taken directly rather than swapped byte by byte.
func wordsFromFile(path string) ([]uint32, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%s: length %d is not a multiple of 4", path, len(b))
	}
	w := make([]uint32, len(b)/4)
	if hostendian.IsBigEndian {
		for i := range w {
			w[i] = *(*uint32)(unsafe.Pointer(&b[i*4]))
		}
		return w, nil
	}
	for i := range w {
		w[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return w, nil
}

func runDecode(path string) error {
	w, err := wordsFromFile(path)
	if err != nil {
		return err
	}

	var exporter *vrtstats.Exporter
	if metricsPort != 0 {
		exporter = vrtstats.NewExporter()
		go exporter.Serve(metricsPort)
	}

	seq := 0
	for len(w) > 0 {
		var p vrt.Packet
		n := vrt.ReadPacket(w, &p)
		if exporter != nil {
			exporter.ObserveDecode(n, p.Header.PacketType)
		}
		if n < 0 {
			printDecodeError(seq, n)
			log.Fatalf("stopping at packet %d: %v", seq, vrt.DecodeError(n))
		}
		printReport(seq, &p)
		w = w[n:]
		seq++
	}
	return nil
}
