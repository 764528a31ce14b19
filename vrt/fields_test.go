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

func TestFieldsRoundTrip(t *testing.T) {
	h := Header{
		PacketType: PacketTypeIfDataWithStreamID,
		HasClassID: true,
		Tsi:        TsiUtc,
		Tsf:        TsfSampleCount,
	}
	f := Fields{
		StreamID: 0xDEADBEEF,
		ClassID: ClassID{
			Oui:                   0x00AABBCC,
			InformationClassCode:  1,
			PacketClassCode:       2,
		},
		IntegerTimestamp:    0x5FE275F4,
		FractionalTimestamp: 123456789,
	}
	require.Equal(t, int32(6), WordsFields(&h))

	w := make([]uint32, 6)
	n := WriteFields(&h, &f, w)
	require.Equal(t, int32(6), n)

	var got Fields
	n = ReadFields(&h, w, &got)
	require.Equal(t, int32(6), n)
	require.Equal(t, f.StreamID, got.StreamID)
	require.Equal(t, f.ClassID, got.ClassID)
	require.Equal(t, f.IntegerTimestamp, got.IntegerTimestamp)
	require.Equal(t, f.FractionalTimestamp, got.FractionalTimestamp)
}

func TestFieldsTimestampsOmittedWhenNone(t *testing.T) {
	h := Header{PacketType: PacketTypeIfDataWithStreamID}
	f := InitFields()
	f.StreamID = 7
	f.IntegerTimestamp = 0x12345678 // ignored: Tsi is None
	f.FractionalTimestamp = 42      // ignored: Tsf is None

	w := make([]uint32, WordsFields(&h))
	n := WriteFields(&h, &f, w)
	require.Equal(t, int32(1), n)
	require.Equal(t, uint32(7), w[0])
}

func TestFieldsValidateOui(t *testing.T) {
	h := Header{HasClassID: true}
	f := InitFields()
	f.ClassID.Oui = 0x01000000
	require.Equal(t, ErrOui, ValidateFields(&h, &f))
}

func TestFieldsValidateRealTime(t *testing.T) {
	h := Header{Tsf: TsfRealTime}
	f := InitFields()
	f.FractionalTimestamp = 1_000_000_000_000
	require.Equal(t, ErrRealTime, ValidateFields(&h, &f))
}

func TestFieldsValidateRealTimeRejectsSentinel(t *testing.T) {
	h := Header{Tsf: TsfRealTime}
	f := InitFields()
	require.Equal(t, ErrRealTime, ValidateFields(&h, &f))
}

func TestFieldsBufTooSmall(t *testing.T) {
	h := Header{PacketType: PacketTypeIfDataWithStreamID}
	var f Fields
	require.Equal(t, int32(ErrBufSize), ReadFields(&h, nil, &f))
	require.Equal(t, int32(ErrBufSize), WriteFields(&h, &f, nil))
}
