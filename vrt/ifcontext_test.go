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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIfContextBandwidthOnly(t *testing.T) {
	ctx := InitIfContext()
	ctx.HasBandwidth = true
	ctx.Bandwidth = 20_000_000

	require.Equal(t, int32(3), WordsIfContext(&ctx))

	w := make([]uint32, 3)
	n := WriteIfContext(&ctx, w)
	require.Equal(t, int32(3), n)

	var got IfContext
	n = ReadIfContext(w, &got)
	require.Equal(t, int32(3), n)
	require.True(t, got.HasBandwidth)
	require.InDelta(t, ctx.Bandwidth, got.Bandwidth, 1.0/float64(uint32(1)<<radixFrequency))
	require.False(t, got.HasGain)
}

func TestIfContextIndicatorBitOrder(t *testing.T) {
	ctx := InitIfContext()
	ctx.ContextFieldChangeIndicator = true
	ctx.HasReferencePointIdentifier = true
	ctx.ReferencePointIdentifier = 1
	ctx.HasContextAssociationLists = true
	ctx.ContextAssociationLists = ContextAssociationLists{}

	w := make([]uint32, WordsIfContext(&ctx))
	n := WriteIfContext(&ctx, w)
	require.Greater(t, n, int32(0))
	require.Equal(t, uint32(1), w[0]>>31)
	require.Equal(t, uint32(1), (w[0]>>30)&1)
	require.Equal(t, uint32(1), (w[0]>>8)&1)
}

func TestIfContextGeolocationSentinel(t *testing.T) {
	ctx := InitIfContext()
	ctx.HasFormattedGpsGeolocation = true
	ctx.FormattedGpsGeolocation = Geolocation{
		Tsi:                 TsiNone,
		Tsf:                 TsfNone,
		IntegerTimestamp:    sentinelU32,
		FractionalTimestamp: sentinelU64,
		Latitude:            math.NaN(),
		Longitude:           math.NaN(),
		Altitude:            0,
		SpeedOverGround:     math.NaN(),
		HeadingAngle:        math.NaN(),
		TrackAngle:          math.NaN(),
		MagneticVariation:   math.NaN(),
	}

	w := make([]uint32, WordsIfContext(&ctx))
	n := WriteIfContext(&ctx, w)
	require.Greater(t, n, int32(0))

	var got IfContext
	n = ReadIfContext(w, &got)
	require.Greater(t, n, int32(0))
	require.True(t, math.IsNaN(got.FormattedGpsGeolocation.Latitude))
	require.True(t, math.IsNaN(got.FormattedGpsGeolocation.Longitude))
	require.Equal(t, sentinelU32, got.FormattedGpsGeolocation.IntegerTimestamp)
	require.Equal(t, sentinelU64, got.FormattedGpsGeolocation.FractionalTimestamp)
}

func TestIfContextGeolocationValidate(t *testing.T) {
	g := Geolocation{
		IntegerTimestamp:    sentinelU32,
		FractionalTimestamp: sentinelU64,
		Latitude:            91,
		Longitude:           math.NaN(),
		SpeedOverGround:     math.NaN(),
		HeadingAngle:        math.NaN(),
		TrackAngle:          math.NaN(),
		MagneticVariation:   math.NaN(),
	}
	require.Equal(t, ErrLatitude, validateGeolocation(&g))
}

func TestIfContextGeolocationValidateTimestampSentinelRequired(t *testing.T) {
	g := Geolocation{
		FractionalTimestamp: sentinelU64,
		IntegerTimestamp:    0x12345678,
		Latitude:            math.NaN(),
		Longitude:           math.NaN(),
		SpeedOverGround:     math.NaN(),
		HeadingAngle:        math.NaN(),
		TrackAngle:          math.NaN(),
		MagneticVariation:   math.NaN(),
	}
	require.Equal(t, ErrIntegerSecondTimestamp, validateGeolocation(&g))
}

func TestDecodeSpeedHighBitIsNotNegative(t *testing.T) {
	require.Equal(t, 32768.0, decodeSpeed(0x80000000, radixSpeedVelocity))
	require.Equal(t, uint32(0x80000000), encodeSpeed(32768.0, radixSpeedVelocity))
}

func TestIfContextDataPacketPayloadFormat(t *testing.T) {
	ctx := InitIfContext()
	ctx.HasDataPacketPayloadFormat = true
	ctx.DataPacketPayloadFormat = DataPacketPayloadFormat{
		PackingMethod:  PackingMethodLinkEfficient,
		RealOrComplex:  RealOrComplexComplexCartesian,
		DataItemFormat: DataItemFormatSignedFixedPoint,
		EventTagSize:   3,
		ChannelTagSize: 7,
		ItemPackingFieldSize: 16,
		DataItemSize:         16,
		RepeatCount:          1,
		VectorSize:           0,
	}

	w := make([]uint32, WordsIfContext(&ctx))
	n := WriteIfContext(&ctx, w)
	require.Greater(t, n, int32(0))

	var got IfContext
	n = ReadIfContext(w, &got)
	require.Greater(t, n, int32(0))
	require.Equal(t, ctx.DataPacketPayloadFormat, got.DataPacketPayloadFormat)
}

func TestIfContextGpsAscii(t *testing.T) {
	ctx := InitIfContext()
	ctx.HasGpsAscii = true
	ctx.GpsAscii = GPSASCII{
		Oui:           0x001122,
		NumberOfWords: 2,
		Words:         []uint32{0x48454C4C, 0x4F000000}, // "HELLO\0\0\0"
	}

	w := make([]uint32, WordsIfContext(&ctx))
	n := WriteIfContext(&ctx, w)
	require.Equal(t, int32(5), n)

	var got IfContext
	n = ReadIfContext(w, &got)
	require.Equal(t, int32(5), n)
	require.Equal(t, "HELLO", got.GpsAscii.Text())
}

func TestIfContextGpsAsciiEmpty(t *testing.T) {
	ctx := InitIfContext()
	ctx.HasGpsAscii = true

	w := make([]uint32, WordsIfContext(&ctx))
	n := WriteIfContext(&ctx, w)
	require.Equal(t, int32(3), n)

	var got IfContext
	n = ReadIfContext(w, &got)
	require.Equal(t, int32(3), n)
	require.Equal(t, uint32(0), got.GpsAscii.NumberOfWords)
	require.Nil(t, got.GpsAscii.Words)
}

func TestIfContextAssociationLists(t *testing.T) {
	ctx := InitIfContext()
	ctx.HasContextAssociationLists = true
	ctx.ContextAssociationLists = ContextAssociationLists{
		SourceListSize:          2,
		SystemListSize:          1,
		VectorComponentListSize: 0,
		HasAsyncChannelTagList:  true,
		AsyncChannelListSize:    1,
		SourceList:              []uint32{1, 2},
		SystemList:              []uint32{3},
		VectorComponentList:     nil,
		AsyncChannelList:        []uint32{4},
		AsyncChannelTagList:     []uint32{5},
	}

	w := make([]uint32, WordsIfContext(&ctx))
	n := WriteIfContext(&ctx, w)
	require.Greater(t, n, int32(0))

	var got IfContext
	n = ReadIfContext(w, &got)
	require.Greater(t, n, int32(0))
	require.Equal(t, []uint32{1, 2}, got.ContextAssociationLists.SourceList)
	require.Equal(t, []uint32{3}, got.ContextAssociationLists.SystemList)
	require.Equal(t, []uint32{4}, got.ContextAssociationLists.AsyncChannelList)
	require.Equal(t, []uint32{5}, got.ContextAssociationLists.AsyncChannelTagList)
}

func TestIfContextAssociationListsValidate(t *testing.T) {
	l := ContextAssociationLists{SourceListSize: 0x0200}
	ctx := InitIfContext()
	ctx.HasContextAssociationLists = true
	ctx.ContextAssociationLists = l
	require.Equal(t, ErrSourceListSize, ValidateIfContext(&ctx))
}

func TestIfContextValidateBandwidthNegative(t *testing.T) {
	ctx := InitIfContext()
	ctx.HasBandwidth = true
	ctx.Bandwidth = -1
	require.Equal(t, ErrBandwidth, ValidateIfContext(&ctx))
}

func TestIfContextBufTooSmall(t *testing.T) {
	ctx := InitIfContext()
	ctx.HasBandwidth = true
	ctx.Bandwidth = 1
	w := make([]uint32, 2)
	require.Equal(t, int32(ErrBufSize), WriteIfContext(&ctx, w))

	// indicator word claims bandwidth is present, but only one more word follows.
	short := []uint32{1 << 29, 0}
	var got IfContext
	require.Equal(t, int32(ErrBufSize), ReadIfContext(short, &got))
}
