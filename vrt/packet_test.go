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

package vrt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S1: an empty IfDataWithoutStreamId packet, no fields, no trailer.
func TestPacketS1(t *testing.T) {
	w := []uint32{0x00000001}
	var p Packet
	n := ReadPacket(w, &p)
	require.Equal(t, int32(1), n)
	require.Equal(t, PacketTypeIfDataWithoutStreamID, p.Header.PacketType)
	require.Empty(t, p.Data)
}

// S2: IfDataWithStreamId, UTC integer timestamp, stream id + timestamp fields.
func TestPacketS2(t *testing.T) {
	w := []uint32{0x10400003, 0xDEADBEEF, 0x5FE275F4}
	var p Packet
	n := ReadPacket(w, &p)
	require.Equal(t, int32(3), n)
	require.Equal(t, PacketTypeIfDataWithStreamID, p.Header.PacketType)
	require.Equal(t, uint32(0xDEADBEEF), p.Fields.StreamID)
	require.Equal(t, uint32(0x5FE275F4), p.Fields.IntegerTimestamp)
	require.Empty(t, p.Data)
}

func TestPacketRoundTripData(t *testing.T) {
	p := InitPacket()
	p.Header.PacketType = PacketTypeIfDataWithStreamID
	p.Header.HasTrailer = true
	p.Fields.StreamID = 7
	p.Data = []uint32{1, 2, 3}
	p.Trailer.HasValidDataIndicator = true
	p.Trailer.ValidDataIndicator = true

	w := make([]uint32, WordsPacket(&p))
	n := WritePacket(&p, w)
	require.Equal(t, int32(len(w)), n)
	require.Equal(t, uint16(len(w)), p.Header.PacketSize)

	var got Packet
	n = ReadPacket(w, &got)
	require.Equal(t, int32(len(w)), n)
	require.Equal(t, []uint32{1, 2, 3}, got.Data)
	require.True(t, got.Trailer.ValidDataIndicator)
}

func TestPacketRoundTripContext(t *testing.T) {
	p := InitPacket()
	p.Header.PacketType = PacketTypeIfContext
	p.Fields.StreamID = 1
	p.IfContext.HasBandwidth = true
	p.IfContext.Bandwidth = 1_000_000

	w := make([]uint32, WordsPacket(&p))
	n := WritePacket(&p, w)
	require.Equal(t, int32(len(w)), n)

	var got Packet
	n = ReadPacket(w, &got)
	require.Equal(t, int32(len(w)), n)
	require.True(t, got.IfContext.HasBandwidth)
	require.Nil(t, got.Data)
}

func TestPacketSizeMismatch(t *testing.T) {
	p := InitPacket()
	p.Header.PacketSize = 99
	w := make([]uint32, 100)
	require.Equal(t, int32(ErrBufSize), WritePacket(&p, w))
}

func TestPacketBufTooSmall(t *testing.T) {
	p := InitPacket()
	p.Data = []uint32{1, 2, 3}
	w := make([]uint32, 2)
	require.Equal(t, int32(ErrBufSize), WritePacket(&p, w))
}
