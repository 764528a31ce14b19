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

// Packet is the top-level facade over a single VRT packet: a Header,
// its Fields, and either an IfContext (context packets) or a raw Data
// payload plus optional Trailer (data packets). Data is a non-owning view
// into the buffer passed to ReadPacket.
type Packet struct {
	Header    Header
	Fields    Fields
	IfContext IfContext
	Data      []uint32
	Trailer   Trailer
}

// InitPacket returns a Packet with every section at its default value.
func InitPacket() Packet {
	return Packet{
		Header:    InitHeader(),
		Fields:    InitFields(),
		IfContext: InitIfContext(),
		Trailer:   InitTrailer(),
	}
}

// WordsPacket returns the total number of words p occupies.
func WordsPacket(p *Packet) int32 {
	n := WordsHeader() + WordsFields(&p.Header)
	if p.Header.PacketType.IsContext() {
		n += WordsIfContext(&p.IfContext)
	} else {
		n += int32(len(p.Data)) + WordsTrailer(&p.Header)
	}
	return n
}

// ReadPacket decodes a whole packet from w and returns the number of words
// consumed, or a negative Code on error. When the header's PacketSize is
// nonzero it is trusted to delimit the data payload from the trailer;
// otherwise the payload runs to the end of w minus any trailer word.
func ReadPacket(w []uint32, p *Packet) int32 {
	n := ReadHeader(w, &p.Header)
	if n < 0 {
		return n
	}
	pos := n

	n = ReadFields(&p.Header, w[pos:], &p.Fields)
	if n < 0 {
		return n
	}
	pos += n

	if p.Header.PacketType.IsContext() {
		n = ReadIfContext(w[pos:], &p.IfContext)
		if n < 0 {
			return n
		}
		pos += n
		p.Data = nil
		p.Trailer = InitTrailer()
		return pos
	}

	p.IfContext = InitIfContext()
	trailerWords := WordsTrailer(&p.Header)

	var dataWords int32
	if p.Header.PacketSize != 0 {
		dataWords = int32(p.Header.PacketSize) - pos - trailerWords
		if dataWords < 0 {
			return int32(ErrBufSize)
		}
	} else {
		dataWords = int32(len(w)) - pos - trailerWords
		if dataWords < 0 {
			return int32(ErrBufSize)
		}
	}
	if int32(len(w)) < pos+dataWords+trailerWords {
		return int32(ErrBufSize)
	}
	p.Data = w[pos : pos+dataWords]
	pos += dataWords

	n = ReadTrailer(&p.Header, w[pos:], &p.Trailer)
	if n < 0 {
		return n
	}
	pos += n
	return pos
}

// WritePacket encodes p into w and returns the number of words written, or
// a negative Code on error. If p.Header.PacketSize is zero it is filled in
// with the packet's actual word count before encoding; if it is nonzero it
// must already match that count.
func WritePacket(p *Packet, w []uint32) int32 {
	total := WordsPacket(p)
	if p.Header.PacketSize == 0 {
		p.Header.PacketSize = uint16(total)
	} else if int32(p.Header.PacketSize) != total {
		return int32(ErrBufSize)
	}
	if int32(len(w)) < total {
		return int32(ErrBufSize)
	}

	n := WriteHeader(&p.Header, w)
	if n < 0 {
		return n
	}
	pos := n

	n = WriteFields(&p.Header, &p.Fields, w[pos:])
	if n < 0 {
		return n
	}
	pos += n

	if p.Header.PacketType.IsContext() {
		n = WriteIfContext(&p.IfContext, w[pos:])
		if n < 0 {
			return n
		}
		pos += n
		return pos
	}

	copy(w[pos:pos+int32(len(p.Data))], p.Data)
	pos += int32(len(p.Data))

	n = WriteTrailer(&p.Header, &p.Trailer, w[pos:])
	if n < 0 {
		return n
	}
	pos += n
	return pos
}
