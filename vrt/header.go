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

// Header is the first word of every VRT packet (§3.1).
type Header struct {
	PacketType  PacketType
	HasClassID  bool
	HasTrailer  bool
	Tsm         bool
	Tsi         Tsi
	Tsf         Tsf
	PacketCount uint8 // 4 bits, 0-15
	PacketSize  uint16
}

// InitHeader returns a Header with every field at its zero/default value,
// matching vrt_init_header's defaults in the reference implementation.
func InitHeader() Header {
	return Header{
		PacketType: PacketTypeIfDataWithoutStreamID,
	}
}

// WordsHeader returns the number of words a Header always occupies: 1.
func WordsHeader() int32 {
	return 1
}

// ValidateHeader checks h against §3.1's invariants and returns the first
// violation found, or 0 if h is valid.
func ValidateHeader(h *Header) Code {
	if !h.PacketType.IsValid() {
		return ErrPacketType
	}
	if h.PacketType.IsContext() && h.HasTrailer {
		return ErrTrailer
	}
	if !h.PacketType.IsContext() && h.Tsm {
		return ErrTsm
	}
	if !h.Tsi.IsValid() {
		return ErrTsi
	}
	if !h.Tsf.IsValid() {
		return ErrTsf
	}
	if h.PacketCount > 0x0F {
		return ErrPacketCount
	}
	return 0
}

// ReadHeader decodes a Header from the first word of w and returns the
// number of words consumed (always 1), or a negative Code on error.
func ReadHeader(w []uint32, h *Header) int32 {
	if len(w) < 1 {
		return int32(ErrBufSize)
	}
	word := w[0]
	h.PacketType = PacketType(extract(word, 28, 4))
	h.HasClassID = u2b(extract(word, 27, 1))
	h.HasTrailer = u2b(extract(word, 26, 1))
	h.Tsm = u2b(extract(word, 24, 1))
	h.Tsi = Tsi(extract(word, 22, 2))
	h.Tsf = Tsf(extract(word, 20, 2))
	h.PacketCount = uint8(extract(word, 16, 4))
	h.PacketSize = uint16(extract(word, 0, 16))
	return 1
}

// WriteHeader encodes h into the first word of w and returns the number of
// words written (always 1), or a negative Code on error.
func WriteHeader(h *Header, w []uint32) int32 {
	if len(w) < 1 {
		return int32(ErrBufSize)
	}
	if code := ValidateHeader(h); code != 0 {
		return int32(code)
	}
	var word uint32
	word = insert(word, uint32(h.PacketType), 28, 4)
	word = insert(word, b2u(h.HasClassID), 27, 1)
	word = insert(word, b2u(h.HasTrailer), 26, 1)
	word = insert(word, b2u(h.Tsm), 24, 1)
	word = insert(word, uint32(h.Tsi), 22, 2)
	word = insert(word, uint32(h.Tsf), 20, 2)
	word = insert(word, uint32(h.PacketCount), 16, 4)
	word = insert(word, uint32(h.PacketSize), 0, 16)
	w[0] = word
	return 1
}
