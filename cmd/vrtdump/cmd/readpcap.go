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
	"sync"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ember91/libvrt-sub001/internal/vrtstats"
	"github.com/ember91/libvrt-sub001/vrt"
)

var readPcapWorkersFlag int

func init() {
	readPcapCmd.Flags().IntVarP(&readPcapWorkersFlag, "workers", "w", 1, "number of goroutines decoding captured packets concurrently")
	RootCmd.AddCommand(readPcapCmd)
}

var readPcapCmd = &cobra.Command{
	Use:   "read-pcap <file>",
	Short: "decode VRT packets carried as UDP payloads in a pcap/pcapng capture",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runReadPcap(args[0])
	},
}

// packetHandle abstracts the handles returned by pcapgo.Reader and
// pcapgo.NgReader.
type packetHandle interface {
	gopacket.PacketDataSource
	LinkType() layers.LinkType
}

func openCapture(path string) (packetHandle, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	handle, err := pcapgo.NewNgReader(f, pcapgo.DefaultNgReaderOptions)
	if err != nil {
		if _, serr := f.Seek(0, 0); serr != nil {
			f.Close()
			return nil, func() {}, fmt.Errorf("seeking in %s: %w", path, serr)
		}
		handle, err = pcapgo.NewReader(f)
		if err != nil {
			f.Close()
			return nil, func() {}, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	return handle, func() { f.Close() }, nil
}

// udpPayloadToWords converts a UDP payload to a big-endian word buffer,
// copying it so the result outlives the gopacket-owned backing array.
func udpPayloadToWords(payload []byte) ([]uint32, error) {
	if len(payload)%4 != 0 {
		return nil, fmt.Errorf("udp payload length %d is not a multiple of 4", len(payload))
	}
	w := make([]uint32, len(payload)/4)
	for i := range w {
		w[i] = binary.BigEndian.Uint32(payload[i*4:])
	}
	return w, nil
}

func runReadPcap(path string) error {
	handle, closeFn, err := openCapture(path)
	if err != nil {
		return err
	}
	defer closeFn()

	var exporter *vrtstats.Exporter
	if metricsPort != 0 {
		exporter = vrtstats.NewExporter()
		go exporter.Serve(metricsPort)
	}

	eg := new(errgroup.Group)
	eg.SetLimit(readPcapWorkersFlag)
	printMu := new(sync.Mutex)

	seq := 0
	packetSource := gopacket.NewPacketSource(handle, handle.LinkType())
	for packet := range packetSource.Packets() {
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok {
			continue
		}
		mySeq := seq
		seq++
		payload := append([]byte(nil), udp.Payload...)

		eg.Go(func() error {
			w, err := udpPayloadToWords(payload)
			if err != nil {
				log.Warnf("packet %d: %v", mySeq, err)
				return nil
			}
			var p vrt.Packet
			n := vrt.ReadPacket(w, &p)
			if exporter != nil {
				exporter.ObserveDecode(n, p.Header.PacketType)
			}
			printMu.Lock()
			defer printMu.Unlock()
			if n < 0 {
				printDecodeError(mySeq, n)
				return nil
			}
			printReport(mySeq, &p)
			return nil
		})
	}
	return eg.Wait()
}
