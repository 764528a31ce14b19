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

// ClassID is the Class Identifier field (§3.2), present when the header's
// HasClassID bit is set.
type ClassID struct {
	Oui              uint32 // 24 bits
	InformationClassCode uint16
	PacketClassCode  uint16
}

// Fields holds the optional words that follow the Header: Stream ID, Class
// ID, and the two-word Integer/Fractional Timestamp pair (§3.2).
type Fields struct {
	StreamID uint32

	HasClassID bool
	ClassID    ClassID

	HasIntegerTimestamp bool
	IntegerTimestamp    uint32 // seconds, or sentinelU32 when Tsi is None

	HasFractionalTimestamp bool
	FractionalTimestamp    uint64 // picoseconds or sample count, or sentinelU64 when Tsf is None
}

// InitFields returns a Fields with sentinel/zero defaults, matching
// vrt_init_fields.
func InitFields() Fields {
	return Fields{
		IntegerTimestamp:    sentinelU32,
		FractionalTimestamp: sentinelU64,
	}
}

// WordsFields returns how many words Fields occupies for the given header,
// i.e. the Stream ID, Class ID, and Timestamp words implied by h.
func WordsFields(h *Header) int32 {
	var n int32
	if h.PacketType.HasStreamID() {
		n++
	}
	if h.HasClassID {
		n += 2
	}
	if h.Tsi != TsiNone {
		n++
	}
	if h.Tsf != TsfNone {
		n += 2
	}
	return n
}

// ValidateFields checks f against §3.2's invariants given h, returning the
// first violation found, or 0 if valid.
func ValidateFields(h *Header, f *Fields) Code {
	if h.HasClassID && f.ClassID.Oui > 0x00FFFFFF {
		return ErrOui
	}
	if h.Tsf == TsfRealTime && f.FractionalTimestamp >= 1_000_000_000_000 {
		return ErrRealTime
	}
	return 0
}

// ReadFields decodes the Stream ID/Class ID/Timestamp words that follow a
// Header, as dictated by h, and returns the number of words consumed, or a
// negative Code on error.
func ReadFields(h *Header, w []uint32, f *Fields) int32 {
	need := WordsFields(h)
	if int32(len(w)) < need {
		return int32(ErrBufSize)
	}
	pos := int32(0)
	if h.PacketType.HasStreamID() {
		f.StreamID = w[pos]
		pos++
	}
	f.HasClassID = h.HasClassID
	if h.HasClassID {
		f.ClassID.Oui = extract(w[pos], 0, 24)
		pos++
		f.ClassID.InformationClassCode = uint16(extract(w[pos], 16, 16))
		f.ClassID.PacketClassCode = uint16(extract(w[pos], 0, 16))
		pos++
	}
	f.HasIntegerTimestamp = h.Tsi != TsiNone
	if h.Tsi != TsiNone {
		f.IntegerTimestamp = w[pos]
		pos++
	} else {
		f.IntegerTimestamp = sentinelU32
	}
	f.HasFractionalTimestamp = h.Tsf != TsfNone
	if h.Tsf != TsfNone {
		f.FractionalTimestamp = readU64BE(w[pos : pos+2])
		pos += 2
	} else {
		f.FractionalTimestamp = sentinelU64
	}
	return pos
}

// WriteFields encodes f into w as dictated by h, and returns the number of
// words written, or a negative Code on error. A timestamp whose TSI/TSF
// selector is None occupies no word and is not written, whatever its
// in-memory value.
func WriteFields(h *Header, f *Fields, w []uint32) int32 {
	need := WordsFields(h)
	if int32(len(w)) < need {
		return int32(ErrBufSize)
	}
	if code := ValidateFields(h, f); code != 0 {
		return int32(code)
	}
	pos := int32(0)
	if h.PacketType.HasStreamID() {
		w[pos] = f.StreamID
		pos++
	}
	if h.HasClassID {
		w[pos] = insert(0, f.ClassID.Oui, 0, 24)
		pos++
		var word uint32
		word = insert(word, uint32(f.ClassID.InformationClassCode), 16, 16)
		word = insert(word, uint32(f.ClassID.PacketClassCode), 0, 16)
		w[pos] = word
		pos++
	}
	if h.Tsi != TsiNone {
		w[pos] = f.IntegerTimestamp
		pos++
	}
	if h.Tsf != TsfNone {
		writeU64BE(f.FractionalTimestamp, w[pos:pos+2])
		pos += 2
	}
	return pos
}
