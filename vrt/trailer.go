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

// Trailer is the optional final word of a data packet (§3.3): twelve
// indicator bits, each with a presence flag and a value flag, plus an
// optional associated-context-packet count.
type Trailer struct {
	HasCalibratedTimeIndicator bool
	CalibratedTimeIndicator    bool

	HasValidDataIndicator bool
	ValidDataIndicator    bool

	HasReferenceLockIndicator bool
	ReferenceLockIndicator    bool

	HasAgcOrMgcIndicator bool
	AgcOrMgcIndicator    bool

	HasDetectedSignalIndicator bool
	DetectedSignalIndicator    bool

	HasSpectralInversionIndicator bool
	SpectralInversionIndicator    bool

	HasOverRangeIndicator bool
	OverRangeIndicator    bool

	HasSampleLossIndicator bool
	SampleLossIndicator    bool

	HasUserDefined11 bool
	UserDefined11    bool

	HasUserDefined10 bool
	UserDefined10    bool

	HasUserDefined9 bool
	UserDefined9    bool

	HasUserDefined8 bool
	UserDefined8    bool

	HasAssociatedContextPacketCount bool
	AssociatedContextPacketCount    uint8 // 7 bits
}

// InitTrailer returns a Trailer with every field at its zero value.
func InitTrailer() Trailer {
	return Trailer{}
}

// WordsTrailer returns the number of words a Trailer occupies for the given
// header: 0 if h.PacketType.IsContext(), else 1 if h.HasTrailer, else 0.
func WordsTrailer(h *Header) int32 {
	if h.PacketType.IsContext() {
		return 0
	}
	if h.HasTrailer {
		return 1
	}
	return 0
}

// ValidateTrailer checks t against §3.3's invariants and returns the first
// violation found, or 0 if valid.
func ValidateTrailer(t *Trailer) Code {
	if t.HasAssociatedContextPacketCount && t.AssociatedContextPacketCount > 0x7F {
		return ErrAssociatedContextPacketCount
	}
	return 0
}

// ReadTrailer decodes a Trailer word, if h says one is present, and returns
// the number of words consumed (0 or 1), or a negative Code on error.
func ReadTrailer(h *Header, w []uint32, t *Trailer) int32 {
	need := WordsTrailer(h)
	if need == 0 {
		*t = InitTrailer()
		return 0
	}
	if int32(len(w)) < need {
		return int32(ErrBufSize)
	}
	word := w[0]
	t.HasCalibratedTimeIndicator = u2b(extract(word, 31, 1))
	t.CalibratedTimeIndicator = u2b(extract(word, 19, 1))
	t.HasValidDataIndicator = u2b(extract(word, 30, 1))
	t.ValidDataIndicator = u2b(extract(word, 18, 1))
	t.HasReferenceLockIndicator = u2b(extract(word, 29, 1))
	t.ReferenceLockIndicator = u2b(extract(word, 17, 1))
	t.HasAgcOrMgcIndicator = u2b(extract(word, 28, 1))
	t.AgcOrMgcIndicator = u2b(extract(word, 16, 1))
	t.HasDetectedSignalIndicator = u2b(extract(word, 27, 1))
	t.DetectedSignalIndicator = u2b(extract(word, 15, 1))
	t.HasSpectralInversionIndicator = u2b(extract(word, 26, 1))
	t.SpectralInversionIndicator = u2b(extract(word, 14, 1))
	t.HasOverRangeIndicator = u2b(extract(word, 25, 1))
	t.OverRangeIndicator = u2b(extract(word, 13, 1))
	t.HasSampleLossIndicator = u2b(extract(word, 24, 1))
	t.SampleLossIndicator = u2b(extract(word, 12, 1))
	t.HasUserDefined11 = u2b(extract(word, 23, 1))
	t.UserDefined11 = t.HasUserDefined11 && u2b(extract(word, 11, 1))
	t.HasUserDefined10 = u2b(extract(word, 22, 1))
	t.UserDefined10 = t.HasUserDefined10 && u2b(extract(word, 10, 1))
	t.HasUserDefined9 = u2b(extract(word, 21, 1))
	t.UserDefined9 = t.HasUserDefined9 && u2b(extract(word, 9, 1))
	t.HasUserDefined8 = u2b(extract(word, 20, 1))
	t.UserDefined8 = t.HasUserDefined8 && u2b(extract(word, 8, 1))
	t.HasAssociatedContextPacketCount = u2b(extract(word, 7, 1))
	if t.HasAssociatedContextPacketCount {
		t.AssociatedContextPacketCount = uint8(extract(word, 0, 7))
	} else {
		t.AssociatedContextPacketCount = 0
	}
	return 1
}

// WriteTrailer encodes t into w if h says a trailer is present, and returns
// the number of words written (0 or 1), or a negative Code on error.
// Absent indicators leave both their presence and value bits zero.
func WriteTrailer(h *Header, t *Trailer, w []uint32) int32 {
	need := WordsTrailer(h)
	if need == 0 {
		return 0
	}
	if int32(len(w)) < need {
		return int32(ErrBufSize)
	}
	if code := ValidateTrailer(t); code != 0 {
		return int32(code)
	}
	var word uint32
	if t.HasCalibratedTimeIndicator {
		word = insert(word, 1, 31, 1)
		word = insert(word, b2u(t.CalibratedTimeIndicator), 19, 1)
	}
	if t.HasValidDataIndicator {
		word = insert(word, 1, 30, 1)
		word = insert(word, b2u(t.ValidDataIndicator), 18, 1)
	}
	if t.HasReferenceLockIndicator {
		word = insert(word, 1, 29, 1)
		word = insert(word, b2u(t.ReferenceLockIndicator), 17, 1)
	}
	if t.HasAgcOrMgcIndicator {
		word = insert(word, 1, 28, 1)
		word = insert(word, b2u(t.AgcOrMgcIndicator), 16, 1)
	}
	if t.HasDetectedSignalIndicator {
		word = insert(word, 1, 27, 1)
		word = insert(word, b2u(t.DetectedSignalIndicator), 15, 1)
	}
	if t.HasSpectralInversionIndicator {
		word = insert(word, 1, 26, 1)
		word = insert(word, b2u(t.SpectralInversionIndicator), 14, 1)
	}
	if t.HasOverRangeIndicator {
		word = insert(word, 1, 25, 1)
		word = insert(word, b2u(t.OverRangeIndicator), 13, 1)
	}
	if t.HasSampleLossIndicator {
		word = insert(word, 1, 24, 1)
		word = insert(word, b2u(t.SampleLossIndicator), 12, 1)
	}
	if t.HasUserDefined11 {
		word = insert(word, 1, 23, 1)
		word = insert(word, b2u(t.UserDefined11), 11, 1)
	}
	if t.HasUserDefined10 {
		word = insert(word, 1, 22, 1)
		word = insert(word, b2u(t.UserDefined10), 10, 1)
	}
	if t.HasUserDefined9 {
		word = insert(word, 1, 21, 1)
		word = insert(word, b2u(t.UserDefined9), 9, 1)
	}
	if t.HasUserDefined8 {
		word = insert(word, 1, 20, 1)
		word = insert(word, b2u(t.UserDefined8), 8, 1)
	}
	if t.HasAssociatedContextPacketCount {
		word = insert(word, 1, 7, 1)
		word = insert(word, uint32(t.AssociatedContextPacketCount), 0, 7)
	}
	w[0] = word
	return 1
}
