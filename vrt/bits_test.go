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

func TestExtractInsert(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		var word uint32
		word = insert(word, 0x1F, 27, 5)
		require.Equal(t, uint32(0x1F), extract(word, 27, 5))
	})
	t.Run("insert masks value", func(t *testing.T) {
		word := insert(0, 0xFF, 0, 4)
		require.Equal(t, uint32(0x0F), word)
	})
	t.Run("insert does not clear destination", func(t *testing.T) {
		word := insert(0xFFFFFFFF, 0, 0, 4)
		require.Equal(t, uint32(0xFFFFFFFF), word)
	})
}

func TestB2UU2B(t *testing.T) {
	require.Equal(t, uint32(1), b2u(true))
	require.Equal(t, uint32(0), b2u(false))
	require.True(t, u2b(1))
	require.True(t, u2b(0xFFFFFFFF))
	require.False(t, u2b(0))
}

func TestU64BE(t *testing.T) {
	w := []uint32{0x12345678, 0x9ABCDEF0}
	require.Equal(t, uint64(0x123456789ABCDEF0), readU64BE(w))

	out := make([]uint32, 2)
	writeU64BE(0x123456789ABCDEF0, out)
	require.Equal(t, w, out)
}

func TestFixedPointRounding(t *testing.T) {
	t.Run("half away from zero positive", func(t *testing.T) {
		require.Equal(t, int32(3), roundF64ToI32(2.5))
	})
	t.Run("half away from zero negative", func(t *testing.T) {
		require.Equal(t, int32(-3), roundF64ToI32(-2.5))
	})
	t.Run("int16 rounding", func(t *testing.T) {
		require.Equal(t, int16(2), roundF32ToI16(1.5))
		require.Equal(t, int16(-2), roundF32ToI16(-1.5))
	})
}

func TestFixedPointConversion(t *testing.T) {
	t.Run("i32 radix20 round trip", func(t *testing.T) {
		v := 1000000.0
		raw := float64ToFixedI32(v, radixFrequency)
		got := fixedI32ToFloat64(raw, radixFrequency)
		require.InDelta(t, v, got, 1.0/float64(uint32(1)<<radixFrequency))
	})
	t.Run("i16 radix7 round trip", func(t *testing.T) {
		v := float32(-12.5)
		raw := float32ToFixedI16(v, radixReferenceLevel)
		got := fixedI16ToFloat32(raw, radixReferenceLevel)
		require.InDelta(t, v, got, 1.0/float32(uint32(1)<<radixReferenceLevel))
	})
	t.Run("i64 radix20 round trip", func(t *testing.T) {
		v := 8.79e12
		raw := float64ToFixedI64(v, radixFrequency)
		got := fixedI64ToFloat64(raw, radixFrequency)
		require.InDelta(t, v, got, 1.0)
	})
}
