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

	"github.com/go-ini/ini"
	"github.com/spf13/cobra"

	"github.com/ember91/libvrt-sub001/vrt"
)

func init() {
	RootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate <fixture.ini>",
	Short: "encode the packet described in fixture.ini",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runGenerate(args[0])
	},
}

var packetTypeByName = map[string]vrt.PacketType{
	"IfDataWithoutStreamId":  vrt.PacketTypeIfDataWithoutStreamID,
	"IfDataWithStreamId":     vrt.PacketTypeIfDataWithStreamID,
	"ExtDataWithoutStreamId": vrt.PacketTypeExtDataWithoutStreamID,
	"ExtDataWithStreamId":    vrt.PacketTypeExtDataWithStreamID,
	"IfContext":              vrt.PacketTypeIfContext,
	"ExtContext":             vrt.PacketTypeExtContext,
}

var tsiByName = map[string]vrt.Tsi{"None": vrt.TsiNone, "Utc": vrt.TsiUtc, "Gps": vrt.TsiGps, "Other": vrt.TsiOther}
var tsfByName = map[string]vrt.Tsf{
	"None":             vrt.TsfNone,
	"SampleCount":      vrt.TsfSampleCount,
	"RealTime":         vrt.TsfRealTime,
	"FreeRunningCount": vrt.TsfFreeRunningCount,
}

func packetFromFixture(cfg *ini.File) (vrt.Packet, error) {
	p := vrt.InitPacket()

	if h := cfg.Section("header"); h != nil {
		if v := h.Key("packet_type").MustString("IfDataWithoutStreamId"); true {
			pt, ok := packetTypeByName[v]
			if !ok {
				return p, fmt.Errorf("unknown packet_type %q", v)
			}
			p.Header.PacketType = pt
		}
		p.Header.HasClassID = h.Key("has_class_id").MustBool(false)
		p.Header.HasTrailer = h.Key("has_trailer").MustBool(false)
		p.Header.Tsm = h.Key("tsm").MustBool(false)
		if v := h.Key("tsi").MustString("None"); true {
			tsi, ok := tsiByName[v]
			if !ok {
				return p, fmt.Errorf("unknown tsi %q", v)
			}
			p.Header.Tsi = tsi
		}
		if v := h.Key("tsf").MustString("None"); true {
			tsf, ok := tsfByName[v]
			if !ok {
				return p, fmt.Errorf("unknown tsf %q", v)
			}
			p.Header.Tsf = tsf
		}
		p.Header.PacketCount = uint8(h.Key("packet_count").MustUint(0))
		p.Header.PacketSize = uint16(h.Key("packet_size").MustUint(0))
	}

	if f := cfg.Section("fields"); f != nil {
		p.Fields.StreamID = uint32(f.Key("stream_id").MustUint64(0))
		p.Fields.ClassID.Oui = uint32(f.Key("class_id_oui").MustUint64(0))
		p.Fields.ClassID.InformationClassCode = uint16(f.Key("information_class_code").MustUint(0))
		p.Fields.ClassID.PacketClassCode = uint16(f.Key("packet_class_code").MustUint(0))
		if p.Header.Tsi != vrt.TsiNone {
			p.Fields.IntegerTimestamp = uint32(f.Key("integer_timestamp").MustUint64(0))
		}
		if p.Header.Tsf != vrt.TsfNone {
			p.Fields.FractionalTimestamp = f.Key("fractional_timestamp").MustUint64(0)
		}
	}

	if p.Header.PacketType.IsContext() {
		if c := cfg.Section("if_context"); c != nil {
			if c.Key("has_bandwidth").MustBool(false) {
				p.IfContext.HasBandwidth = true
				p.IfContext.Bandwidth = c.Key("bandwidth").MustFloat64(0)
			}
			if c.Key("has_sample_rate").MustBool(false) {
				p.IfContext.HasSampleRate = true
				p.IfContext.SampleRate = c.Key("sample_rate").MustFloat64(0)
			}
			if c.Key("has_reference_point_identifier").MustBool(false) {
				p.IfContext.HasReferencePointIdentifier = true
				p.IfContext.ReferencePointIdentifier = uint32(c.Key("reference_point_identifier").MustUint64(0))
			}
		}
	} else if t := cfg.Section("trailer"); t != nil && p.Header.HasTrailer {
		p.Trailer.HasValidDataIndicator = t.Key("has_valid_data_indicator").MustBool(false)
		p.Trailer.ValidDataIndicator = t.Key("valid_data_indicator").MustBool(false)
		p.Trailer.HasCalibratedTimeIndicator = t.Key("has_calibrated_time_indicator").MustBool(false)
		p.Trailer.CalibratedTimeIndicator = t.Key("calibrated_time_indicator").MustBool(false)
	}

	return p, nil
}

func runGenerate(path string) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	p, err := packetFromFixture(cfg)
	if err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	w := make([]uint32, vrt.WordsPacket(&p))
	n := vrt.WritePacket(&p, w)
	if n < 0 {
		return fmt.Errorf("encoding packet: %w", vrt.DecodeError(n))
	}

	b := make([]byte, n*4)
	for i := int32(0); i < n; i++ {
		binary.BigEndian.PutUint32(b[i*4:], w[i])
	}

	if outputFlag == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(outputFlag, b, 0o644)
}
