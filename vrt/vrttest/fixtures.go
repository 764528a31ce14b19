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

// Package vrttest holds small packet builders, each exercising a single
// feature of the wire format, for tests that import vrt. vrt's own _test.go
// files build their packets inline and do not use this package.
package vrttest

import "github.com/ember91/libvrt-sub001/vrt"

// MinimalDataPacket returns an IfDataWithoutStreamId packet with every
// optional field absent, the smallest packet the format allows.
func MinimalDataPacket() vrt.Packet {
	return vrt.InitPacket()
}

// DataPacketWithPayload returns an IfDataWithStreamId packet carrying
// payload words and a trailer, for testing the Data-view and Trailer paths
// together.
func DataPacketWithPayload(payload []uint32) vrt.Packet {
	p := vrt.InitPacket()
	p.Header.PacketType = vrt.PacketTypeIfDataWithStreamID
	p.Header.HasTrailer = true
	p.Fields.StreamID = 0x01020304
	p.Data = payload
	return p
}

// ContextPacketWithBandwidth returns an IfContext packet with only the
// Bandwidth optional subfield present, for testing the indicator-driven
// walk in isolation.
func ContextPacketWithBandwidth(hz float64) vrt.Packet {
	p := vrt.InitPacket()
	p.Header.PacketType = vrt.PacketTypeIfContext
	p.Fields.StreamID = 0x0A0B0C0D
	p.IfContext.HasBandwidth = true
	p.IfContext.Bandwidth = hz
	return p
}

// EncodeOrPanic encodes p into a freshly allocated word buffer sized to fit
// it exactly, panicking on a negative vrt.Code. It exists to keep test
// setup terse; it is never used outside _test.go files.
func EncodeOrPanic(p *vrt.Packet) []uint32 {
	w := make([]uint32, vrt.WordsPacket(p))
	n := vrt.WritePacket(p, w)
	if n < 0 {
		panic(vrt.DecodeError(n))
	}
	return w[:n]
}
