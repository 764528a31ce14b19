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

// S1: an empty IfDataWithoutStreamId header.
func TestReadHeaderS1(t *testing.T) {
	w := []uint32{0x00000001}
	var h Header
	n := ReadHeader(w, &h)
	require.Equal(t, int32(1), n)
	require.Equal(t, PacketTypeIfDataWithoutStreamID, h.PacketType)
	require.False(t, h.HasClassID)
	require.False(t, h.HasTrailer)
	require.False(t, h.Tsm)
	require.Equal(t, TsiNone, h.Tsi)
	require.Equal(t, TsfNone, h.Tsf)
	require.Equal(t, uint8(0), h.PacketCount)
	require.Equal(t, uint16(1), h.PacketSize)
}

// S2: IfDataWithStreamId with a UTC integer timestamp.
func TestReadHeaderS2(t *testing.T) {
	w := []uint32{0x10400003}
	var h Header
	n := ReadHeader(w, &h)
	require.Equal(t, int32(1), n)
	require.Equal(t, PacketTypeIfDataWithStreamID, h.PacketType)
	require.Equal(t, TsiUtc, h.Tsi)
	require.Equal(t, TsfNone, h.Tsf)
	require.Equal(t, uint16(3), h.PacketSize)
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		PacketType:  PacketTypeIfContext,
		HasClassID:  true,
		Tsi:         TsiGps,
		Tsf:         TsfRealTime,
		PacketCount: 0x0A,
		PacketSize:  42,
	}
	w := make([]uint32, 1)
	n := WriteHeader(&h, w)
	require.Equal(t, int32(1), n)

	var got Header
	n = ReadHeader(w, &got)
	require.Equal(t, int32(1), n)
	require.Equal(t, h, got)
}

func TestHeaderValidate(t *testing.T) {
	t.Run("invalid packet type", func(t *testing.T) {
		h := InitHeader()
		h.PacketType = PacketType(6)
		require.Equal(t, ErrPacketType, ValidateHeader(&h))
	})
	t.Run("context with trailer", func(t *testing.T) {
		h := InitHeader()
		h.PacketType = PacketTypeIfContext
		h.HasTrailer = true
		require.Equal(t, ErrTrailer, ValidateHeader(&h))
	})
	t.Run("data with tsm", func(t *testing.T) {
		h := InitHeader()
		h.Tsm = true
		require.Equal(t, ErrTsm, ValidateHeader(&h))
	})
	t.Run("packet count too large", func(t *testing.T) {
		h := InitHeader()
		h.PacketCount = 0x10
		require.Equal(t, ErrPacketCount, ValidateHeader(&h))
	})
	t.Run("valid", func(t *testing.T) {
		h := InitHeader()
		require.Equal(t, Code(0), ValidateHeader(&h))
	})
}

func TestHeaderBufTooSmall(t *testing.T) {
	var h Header
	require.Equal(t, int32(ErrBufSize), ReadHeader(nil, &h))
	require.Equal(t, int32(ErrBufSize), WriteHeader(&h, nil))
}
