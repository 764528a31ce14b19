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
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ember91/libvrt-sub001/vrt"
)

var okString = color.GreenString("[ OK ]")
var failString = color.RedString("[FAIL]")

// printDecodeError reports that ReadPacket returned the negative code rv for
// packet number seq.
func printDecodeError(seq int, rv int32) {
	fmt.Printf("%s packet %d: %v\n", failString, seq, vrt.DecodeError(rv))
}

// printReport renders a decoded packet as a two-column table of its
// top-level fields, plus an OK line.
func printReport(seq int, p *vrt.Packet) {
	fmt.Printf("%s packet %d\n", okString, seq)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"field", "value"})
	table.Append([]string{"packet type", p.Header.PacketType.String()})
	table.Append([]string{"packet size (words)", fmt.Sprintf("%d", p.Header.PacketSize)})
	table.Append([]string{"tsi", p.Header.Tsi.String()})
	table.Append([]string{"tsf", p.Header.Tsf.String()})
	if p.Header.PacketType.HasStreamID() {
		table.Append([]string{"stream id", fmt.Sprintf("%#08x", p.Fields.StreamID)})
	}
	if p.Header.PacketType.IsContext() {
		table.Append([]string{"has bandwidth", fmt.Sprintf("%v", p.IfContext.HasBandwidth)})
		if p.IfContext.HasBandwidth {
			table.Append([]string{"bandwidth (Hz)", fmt.Sprintf("%.2f", p.IfContext.Bandwidth)})
		}
	} else {
		table.Append([]string{"data words", fmt.Sprintf("%d", len(p.Data))})
	}
	table.Render()

	if debugFlag {
		spew.Dump(p)
	}
}
