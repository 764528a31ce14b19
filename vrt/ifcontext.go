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

import "math"

// Fixed-point radix positions used throughout the IF-Context record
// (§3.6), taken from the standard's field definitions.
const (
	radixFrequency     = 20
	radixReferenceLevel = 7
	radixGain          = 7
	radixTemperature   = 6
	radixAngle         = 22
	radixAltitude      = 5
	radixSpeedVelocity = 16
)

// DeviceIdentifier identifies the device an IF-Context record describes.
type DeviceIdentifier struct {
	Oui        uint32 // 24 bits
	DeviceCode uint16
}

// Gain holds the two cascaded gain stages of §3.6.2's Gain subfield.
type Gain struct {
	Stage1 float32
	Stage2 float32
}

// StateAndEventIndicators is the §3.6.2 State and Event Indicators
// subfield: eight optional boolean indicators plus an always-present
// 8-bit user-defined field.
type StateAndEventIndicators struct {
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

	UserDefined uint8
}

// DataPacketPayloadFormat is the §3.6.3 Data Packet Payload Format
// subfield, describing how samples are packed into a data packet's payload.
type DataPacketPayloadFormat struct {
	PackingMethod          PackingMethod
	RealOrComplex          RealOrComplex
	DataItemFormat         DataItemFormat
	SampleComponentRepeat  bool
	EventTagSize           uint8 // 3 bits
	ChannelTagSize         uint8 // 4 bits
	ItemPackingFieldSize   uint8 // 6 bits
	DataItemSize           uint8 // 6 bits
	RepeatCount            uint16
	VectorSize             uint16
}

// Geolocation is the §3.6.4 Formatted GPS/INS Geolocation subfield. Latitude,
// Longitude, Altitude, SpeedOverGround, HeadingAngle, TrackAngle and
// MagneticVariation are math.NaN() when their raw encoding is the standard's
// unknown-value sentinel.
type Geolocation struct {
	Tsi Tsi
	Tsf Tsf
	Oui uint32 // 24 bits

	HasIntegerTimestamp bool
	IntegerTimestamp    uint32

	HasFractionalTimestamp bool
	FractionalTimestamp    uint64

	Latitude            float64 // degrees, [-90, 90]
	Longitude           float64 // degrees, [-180, 180]
	Altitude            float64 // meters
	SpeedOverGround     float64 // meters/second, >= 0
	HeadingAngle        float64 // degrees, [0, 359.999999761582]
	TrackAngle          float64 // degrees, [0, 359.999999761582]
	MagneticVariation   float64 // degrees, [-180, 180]
}

// Ephemeris is the §3.6.5 ECEF/Relative Ephemeris subfield. Unlike
// Geolocation, the standard places no range constraint on its numeric
// fields, so they carry no sentinel/NaN convention.
type Ephemeris struct {
	Tsi Tsi
	Tsf Tsf
	Oui uint32 // 24 bits

	HasIntegerTimestamp bool
	IntegerTimestamp    uint32

	HasFractionalTimestamp bool
	FractionalTimestamp    uint64

	PositionX, PositionY, PositionZ    float64
	AttitudeAlpha, AttitudeBeta, AttitudePhi float64
	VelocityDx, VelocityDy, VelocityDz float64
}

// GPSASCII is the §3.6.5 GPS ASCII subfield: a non-owning view over the
// words following the OUI/word-count pair, copied from neither the decoded
// struct nor any intermediate buffer.
type GPSASCII struct {
	Oui           uint32 // 24 bits
	NumberOfWords uint32
	Words         []uint32 // view into the buffer passed to ReadIfContext
}

// Text decodes Words as big-endian ASCII bytes, trimming trailing NUL
// padding. It allocates; callers on a hot path should read Words directly.
func (g *GPSASCII) Text() string {
	b := make([]byte, 0, len(g.Words)*4)
	for _, w := range g.Words {
		b = append(b, byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
	}
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}

// ContextAssociationLists is the §3.6.5 Context Association Lists subfield.
// Each list is a non-owning view into the buffer passed to ReadIfContext.
type ContextAssociationLists struct {
	SourceListSize          uint32 // 9 bits
	SystemListSize          uint32 // 9 bits
	VectorComponentListSize uint32 // 16 bits
	HasAsyncChannelTagList  bool
	AsyncChannelListSize    uint32 // 15 bits

	SourceList           []uint32
	SystemList           []uint32
	VectorComponentList  []uint32
	AsyncChannelList     []uint32
	AsyncChannelTagList  []uint32
}

// IfContext is the §3.4-3.6 IF-Context record carried by context packets.
// Each optional subfield has a Has* gate mirroring the Context Indicator
// Field's presence bits.
type IfContext struct {
	ContextFieldChangeIndicator bool

	HasReferencePointIdentifier bool
	ReferencePointIdentifier    uint32

	HasBandwidth bool
	Bandwidth    float64 // Hz, >= 0

	HasIfReferenceFrequency bool
	IfReferenceFrequency    float64 // Hz

	HasRfReferenceFrequency bool
	RfReferenceFrequency    float64 // Hz

	HasRfReferenceFrequencyOffset bool
	RfReferenceFrequencyOffset    float64 // Hz

	HasIfBandOffset bool
	IfBandOffset    float64 // Hz

	HasReferenceLevel bool
	ReferenceLevel    float32 // dBm

	HasGain bool
	Gain    Gain

	HasOverRangeCount bool
	OverRangeCount    uint32

	HasSampleRate bool
	SampleRate    float64 // Hz, >= 0

	HasTimestampAdjustment bool
	TimestampAdjustment    uint64 // picoseconds, raw (not fixed-point)

	HasTimestampCalibrationTime bool
	TimestampCalibrationTime    uint32 // seconds

	HasTemperature bool
	Temperature    float32 // degrees Celsius, >= -273.15

	HasDeviceIdentifier bool
	DeviceIdentifier    DeviceIdentifier

	HasStateAndEventIndicators bool
	StateAndEventIndicators    StateAndEventIndicators

	HasDataPacketPayloadFormat bool
	DataPacketPayloadFormat    DataPacketPayloadFormat

	HasFormattedGpsGeolocation bool
	FormattedGpsGeolocation    Geolocation

	HasFormattedInsGeolocation bool
	FormattedInsGeolocation    Geolocation

	HasEcefEphemeris bool
	EcefEphemeris    Ephemeris

	HasRelativeEphemeris bool
	RelativeEphemeris    Ephemeris

	HasEphemerisReferenceIdentifier bool
	EphemerisReferenceIdentifier    uint32

	HasGpsAscii bool
	GpsAscii    GPSASCII

	HasContextAssociationLists bool
	ContextAssociationLists    ContextAssociationLists
}

// InitIfContext returns an IfContext with every Has* flag false and every
// value at its zero/sentinel default.
func InitIfContext() IfContext {
	var ctx IfContext
	for _, g := range []*Geolocation{&ctx.FormattedGpsGeolocation, &ctx.FormattedInsGeolocation} {
		g.IntegerTimestamp, g.FractionalTimestamp = sentinelU32, sentinelU64
		g.Latitude, g.Longitude, g.Altitude, g.SpeedOverGround = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		g.HeadingAngle, g.TrackAngle, g.MagneticVariation = math.NaN(), math.NaN(), math.NaN()
	}
	for _, e := range []*Ephemeris{&ctx.EcefEphemeris, &ctx.RelativeEphemeris} {
		e.IntegerTimestamp, e.FractionalTimestamp = sentinelU32, sentinelU64
	}
	return ctx
}

const geolocationWords = 11
const ephemerisWords = 13

// WordsIfContext returns the number of words ctx occupies, including its
// indicator word.
func WordsIfContext(ctx *IfContext) int32 {
	n := int32(1)
	if ctx.HasReferencePointIdentifier {
		n++
	}
	if ctx.HasBandwidth {
		n += 2
	}
	if ctx.HasIfReferenceFrequency {
		n += 2
	}
	if ctx.HasRfReferenceFrequency {
		n += 2
	}
	if ctx.HasRfReferenceFrequencyOffset {
		n += 2
	}
	if ctx.HasIfBandOffset {
		n += 2
	}
	if ctx.HasReferenceLevel {
		n++
	}
	if ctx.HasGain {
		n++
	}
	if ctx.HasOverRangeCount {
		n++
	}
	if ctx.HasSampleRate {
		n += 2
	}
	if ctx.HasTimestampAdjustment {
		n += 2
	}
	if ctx.HasTimestampCalibrationTime {
		n++
	}
	if ctx.HasTemperature {
		n++
	}
	if ctx.HasDeviceIdentifier {
		n += 2
	}
	if ctx.HasStateAndEventIndicators {
		n++
	}
	if ctx.HasDataPacketPayloadFormat {
		n += 2
	}
	if ctx.HasFormattedGpsGeolocation {
		n += geolocationWords
	}
	if ctx.HasFormattedInsGeolocation {
		n += geolocationWords
	}
	if ctx.HasEcefEphemeris {
		n += ephemerisWords
	}
	if ctx.HasRelativeEphemeris {
		n += ephemerisWords
	}
	if ctx.HasEphemerisReferenceIdentifier {
		n++
	}
	if ctx.HasGpsAscii {
		n += 2 + int32(ctx.GpsAscii.NumberOfWords)
	}
	if ctx.HasContextAssociationLists {
		n += wordsContextAssociationLists(&ctx.ContextAssociationLists)
	}
	return n
}

func wordsContextAssociationLists(l *ContextAssociationLists) int32 {
	n := int32(2)
	n += int32(l.SourceListSize & 0x01FF)
	n += int32(l.SystemListSize & 0x01FF)
	n += int32(l.VectorComponentListSize)
	asyncSize := int32(l.AsyncChannelListSize & 0x7FFF)
	n += asyncSize
	if l.HasAsyncChannelTagList {
		n += asyncSize
	}
	return n
}

func validateGeolocation(g *Geolocation) Code {
	if !g.Tsi.IsValid() {
		return ErrTsi
	}
	if !g.Tsf.IsValid() {
		return ErrTsf
	}
	if g.Oui > 0x00FFFFFF {
		return ErrOui
	}
	if g.Tsi == TsiNone && g.IntegerTimestamp != sentinelU32 {
		return ErrIntegerSecondTimestamp
	}
	if g.Tsf == TsfNone && g.FractionalTimestamp != sentinelU64 {
		return ErrFractionalSecondTimestamp
	}
	if !math.IsNaN(g.Latitude) && (g.Latitude < -90 || g.Latitude > 90) {
		return ErrLatitude
	}
	if !math.IsNaN(g.Longitude) && (g.Longitude < -180 || g.Longitude > 180) {
		return ErrLongitude
	}
	if !math.IsNaN(g.SpeedOverGround) && g.SpeedOverGround < 0 {
		return ErrSpeedOverGround
	}
	if !math.IsNaN(g.HeadingAngle) && (g.HeadingAngle < 0 || g.HeadingAngle > 359.999999761582) {
		return ErrHeadingAngle
	}
	if !math.IsNaN(g.TrackAngle) && (g.TrackAngle < 0 || g.TrackAngle > 359.999999761582) {
		return ErrTrackAngle
	}
	if !math.IsNaN(g.MagneticVariation) && (g.MagneticVariation < -180 || g.MagneticVariation > 180) {
		return ErrMagneticVariation
	}
	return 0
}

func validateEphemeris(e *Ephemeris) Code {
	if !e.Tsi.IsValid() {
		return ErrTsi
	}
	if !e.Tsf.IsValid() {
		return ErrTsf
	}
	if e.Oui > 0x00FFFFFF {
		return ErrOui
	}
	if e.Tsi == TsiNone && e.IntegerTimestamp != sentinelU32 {
		return ErrIntegerSecondTimestamp
	}
	if e.Tsf == TsfNone && e.FractionalTimestamp != sentinelU64 {
		return ErrFractionalSecondTimestamp
	}
	return 0
}

// ValidateIfContext checks ctx against §3.6's invariants, returning the
// first violation found, or 0 if valid.
func ValidateIfContext(ctx *IfContext) Code {
	if ctx.HasBandwidth && ctx.Bandwidth < 0 {
		return ErrBandwidth
	}
	if ctx.HasSampleRate && ctx.SampleRate < 0 {
		return ErrSampleRate
	}
	if ctx.HasTemperature && ctx.Temperature < -273.15 {
		return ErrTemperature
	}
	if ctx.HasDeviceIdentifier && ctx.DeviceIdentifier.Oui > 0x00FFFFFF {
		return ErrOui
	}
	if ctx.HasDataPacketPayloadFormat {
		f := &ctx.DataPacketPayloadFormat
		if !f.RealOrComplex.IsValid() {
			return ErrRealOrComplex
		}
		if !f.DataItemFormat.IsValid() {
			return ErrDataItemFormat
		}
		if f.EventTagSize > 0x07 {
			return ErrEventTagSize
		}
		if f.ChannelTagSize > 0x0F {
			return ErrChannelTagSize
		}
		if f.ItemPackingFieldSize > 0x3F {
			return ErrItemPackingFieldSize
		}
		if f.DataItemSize > 0x3F {
			return ErrDataItemSize
		}
	}
	if ctx.HasFormattedGpsGeolocation {
		if code := validateGeolocation(&ctx.FormattedGpsGeolocation); code != 0 {
			return code
		}
	}
	if ctx.HasFormattedInsGeolocation {
		if code := validateGeolocation(&ctx.FormattedInsGeolocation); code != 0 {
			return code
		}
	}
	if ctx.HasEcefEphemeris {
		if code := validateEphemeris(&ctx.EcefEphemeris); code != 0 {
			return code
		}
	}
	if ctx.HasRelativeEphemeris {
		if code := validateEphemeris(&ctx.RelativeEphemeris); code != 0 {
			return code
		}
	}
	if ctx.HasContextAssociationLists {
		l := &ctx.ContextAssociationLists
		if l.SourceListSize > 0x01FF {
			return ErrSourceListSize
		}
		if l.SystemListSize > 0x01FF {
			return ErrSystemListSize
		}
		if l.AsyncChannelListSize > 0x7FFF {
			return ErrChannelListSize
		}
	}
	return 0
}

func readGeolocation(w []uint32, g *Geolocation) {
	word0 := w[0]
	g.Tsi = Tsi(extract(word0, 26, 2))
	g.Tsf = Tsf(extract(word0, 24, 2))
	g.Oui = extract(word0, 0, 24)

	g.HasIntegerTimestamp = g.Tsi != TsiNone
	if w[1] == sentinelU32 {
		g.IntegerTimestamp = sentinelU32
	} else {
		g.IntegerTimestamp = w[1]
	}
	frac := readU64BE(w[2:4])
	g.HasFractionalTimestamp = g.Tsf != TsfNone
	g.FractionalTimestamp = frac

	g.Latitude = decodeAngle(int32(w[4]), radixAngle)
	g.Longitude = decodeAngle(int32(w[5]), radixAngle)
	g.Altitude = decodeAngle(int32(w[6]), radixAltitude)
	g.SpeedOverGround = decodeSpeed(w[7], radixSpeedVelocity)
	g.HeadingAngle = decodeAngle(int32(w[8]), radixAngle)
	g.TrackAngle = decodeAngle(int32(w[9]), radixAngle)
	g.MagneticVariation = decodeAngle(int32(w[10]), radixAngle)
}

func decodeAngle(raw int32, radix uint) float64 {
	if raw == sentinelAngle {
		return math.NaN()
	}
	return fixedI32ToFloat64(raw, radix)
}

func encodeAngle(v float64, radix uint) int32 {
	if math.IsNaN(v) {
		return sentinelAngle
	}
	return float64ToFixedI32(v, radix)
}

// decodeSpeed is decodeAngle's unsigned counterpart: speed_over_ground is the
// one Geolocation field the format encodes as u32 fixed-point rather than i32.
func decodeSpeed(raw uint32, radix uint) float64 {
	if raw == uint32(sentinelAngle) {
		return math.NaN()
	}
	return fixedU32ToFloat64(raw, radix)
}

func encodeSpeed(v float64, radix uint) uint32 {
	if math.IsNaN(v) {
		return uint32(sentinelAngle)
	}
	return float64ToFixedU32(v, radix)
}

func writeGeolocation(g *Geolocation, w []uint32) {
	var word0 uint32
	word0 = insert(word0, uint32(g.Tsi), 26, 2)
	word0 = insert(word0, uint32(g.Tsf), 24, 2)
	word0 = insert(word0, g.Oui, 0, 24)
	w[0] = word0

	if g.Tsi == TsiNone {
		w[1] = sentinelU32
	} else {
		w[1] = g.IntegerTimestamp
	}
	if g.Tsf == TsfNone {
		writeU64BE(sentinelU64, w[2:4])
	} else {
		writeU64BE(g.FractionalTimestamp, w[2:4])
	}

	w[4] = uint32(encodeAngle(g.Latitude, radixAngle))
	w[5] = uint32(encodeAngle(g.Longitude, radixAngle))
	w[6] = uint32(encodeAngle(g.Altitude, radixAltitude))
	w[7] = encodeSpeed(g.SpeedOverGround, radixSpeedVelocity)
	w[8] = uint32(encodeAngle(g.HeadingAngle, radixAngle))
	w[9] = uint32(encodeAngle(g.TrackAngle, radixAngle))
	w[10] = uint32(encodeAngle(g.MagneticVariation, radixAngle))
}

func readEphemeris(w []uint32, e *Ephemeris) {
	word0 := w[0]
	e.Tsi = Tsi(extract(word0, 26, 2))
	e.Tsf = Tsf(extract(word0, 24, 2))
	e.Oui = extract(word0, 0, 24)

	e.HasIntegerTimestamp = e.Tsi != TsiNone
	e.IntegerTimestamp = w[1]
	e.HasFractionalTimestamp = e.Tsf != TsfNone
	e.FractionalTimestamp = readU64BE(w[2:4])

	e.PositionX = fixedI32ToFloat64(int32(w[4]), radixAltitude)
	e.PositionY = fixedI32ToFloat64(int32(w[5]), radixAltitude)
	e.PositionZ = fixedI32ToFloat64(int32(w[6]), radixAltitude)
	e.AttitudeAlpha = fixedI32ToFloat64(int32(w[7]), radixAngle)
	e.AttitudeBeta = fixedI32ToFloat64(int32(w[8]), radixAngle)
	e.AttitudePhi = fixedI32ToFloat64(int32(w[9]), radixAngle)
	e.VelocityDx = fixedI32ToFloat64(int32(w[10]), radixSpeedVelocity)
	e.VelocityDy = fixedI32ToFloat64(int32(w[11]), radixSpeedVelocity)
	e.VelocityDz = fixedI32ToFloat64(int32(w[12]), radixSpeedVelocity)
}

func writeEphemeris(e *Ephemeris, w []uint32) {
	var word0 uint32
	word0 = insert(word0, uint32(e.Tsi), 26, 2)
	word0 = insert(word0, uint32(e.Tsf), 24, 2)
	word0 = insert(word0, e.Oui, 0, 24)
	w[0] = word0

	if e.Tsi == TsiNone {
		w[1] = sentinelU32
	} else {
		w[1] = e.IntegerTimestamp
	}
	if e.Tsf == TsfNone {
		writeU64BE(sentinelU64, w[2:4])
	} else {
		writeU64BE(e.FractionalTimestamp, w[2:4])
	}

	w[4] = uint32(float64ToFixedI32(e.PositionX, radixAltitude))
	w[5] = uint32(float64ToFixedI32(e.PositionY, radixAltitude))
	w[6] = uint32(float64ToFixedI32(e.PositionZ, radixAltitude))
	w[7] = uint32(float64ToFixedI32(e.AttitudeAlpha, radixAngle))
	w[8] = uint32(float64ToFixedI32(e.AttitudeBeta, radixAngle))
	w[9] = uint32(float64ToFixedI32(e.AttitudePhi, radixAngle))
	w[10] = uint32(float64ToFixedI32(e.VelocityDx, radixSpeedVelocity))
	w[11] = uint32(float64ToFixedI32(e.VelocityDy, radixSpeedVelocity))
	w[12] = uint32(float64ToFixedI32(e.VelocityDz, radixSpeedVelocity))
}

// ReadIfContext decodes an IF-Context record from w, which must start at
// the record's indicator word (i.e. after the Header and its Fields), and
// returns the number of words consumed, or a negative Code on error.
// GPSASCII.Words and ContextAssociationLists' list fields are views into w;
// they remain valid only as long as w does.
func ReadIfContext(w []uint32, ctx *IfContext) int32 {
	if len(w) < 1 {
		return int32(ErrBufSize)
	}
	ind := w[0]
	ctx.ContextFieldChangeIndicator = u2b(extract(ind, 31, 1))
	ctx.HasReferencePointIdentifier = u2b(extract(ind, 30, 1))
	ctx.HasBandwidth = u2b(extract(ind, 29, 1))
	ctx.HasIfReferenceFrequency = u2b(extract(ind, 28, 1))
	ctx.HasRfReferenceFrequency = u2b(extract(ind, 27, 1))
	ctx.HasRfReferenceFrequencyOffset = u2b(extract(ind, 26, 1))
	ctx.HasIfBandOffset = u2b(extract(ind, 25, 1))
	ctx.HasReferenceLevel = u2b(extract(ind, 24, 1))
	ctx.HasGain = u2b(extract(ind, 23, 1))
	ctx.HasOverRangeCount = u2b(extract(ind, 22, 1))
	ctx.HasSampleRate = u2b(extract(ind, 21, 1))
	ctx.HasTimestampAdjustment = u2b(extract(ind, 20, 1))
	ctx.HasTimestampCalibrationTime = u2b(extract(ind, 19, 1))
	ctx.HasTemperature = u2b(extract(ind, 18, 1))
	ctx.HasDeviceIdentifier = u2b(extract(ind, 17, 1))
	ctx.HasStateAndEventIndicators = u2b(extract(ind, 16, 1))
	ctx.HasDataPacketPayloadFormat = u2b(extract(ind, 15, 1))
	ctx.HasFormattedGpsGeolocation = u2b(extract(ind, 14, 1))
	ctx.HasFormattedInsGeolocation = u2b(extract(ind, 13, 1))
	ctx.HasEcefEphemeris = u2b(extract(ind, 12, 1))
	ctx.HasRelativeEphemeris = u2b(extract(ind, 11, 1))
	ctx.HasEphemerisReferenceIdentifier = u2b(extract(ind, 10, 1))
	ctx.HasGpsAscii = u2b(extract(ind, 9, 1))
	ctx.HasContextAssociationLists = u2b(extract(ind, 8, 1))

	pos := int32(1)
	need := func(n int32) bool { return int32(len(w))-pos >= n }

	if ctx.HasReferencePointIdentifier {
		if !need(1) {
			return int32(ErrBufSize)
		}
		ctx.ReferencePointIdentifier = w[pos]
		pos++
	}
	if ctx.HasBandwidth {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.Bandwidth = fixedI64ToFloat64(int64(readU64BE(w[pos:pos+2])), radixFrequency)
		pos += 2
	}
	if ctx.HasIfReferenceFrequency {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.IfReferenceFrequency = fixedI64ToFloat64(int64(readU64BE(w[pos:pos+2])), radixFrequency)
		pos += 2
	}
	if ctx.HasRfReferenceFrequency {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.RfReferenceFrequency = fixedI64ToFloat64(int64(readU64BE(w[pos:pos+2])), radixFrequency)
		pos += 2
	}
	if ctx.HasRfReferenceFrequencyOffset {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.RfReferenceFrequencyOffset = fixedI64ToFloat64(int64(readU64BE(w[pos:pos+2])), radixFrequency)
		pos += 2
	}
	if ctx.HasIfBandOffset {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.IfBandOffset = fixedI64ToFloat64(int64(readU64BE(w[pos:pos+2])), radixFrequency)
		pos += 2
	}
	if ctx.HasReferenceLevel {
		if !need(1) {
			return int32(ErrBufSize)
		}
		ctx.ReferenceLevel = fixedI16ToFloat32(int16(extract(w[pos], 0, 16)), radixReferenceLevel)
		pos++
	}
	if ctx.HasGain {
		if !need(1) {
			return int32(ErrBufSize)
		}
		ctx.Gain.Stage1 = fixedI16ToFloat32(int16(extract(w[pos], 16, 16)), radixGain)
		ctx.Gain.Stage2 = fixedI16ToFloat32(int16(extract(w[pos], 0, 16)), radixGain)
		pos++
	}
	if ctx.HasOverRangeCount {
		if !need(1) {
			return int32(ErrBufSize)
		}
		ctx.OverRangeCount = w[pos]
		pos++
	}
	if ctx.HasSampleRate {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.SampleRate = fixedI64ToFloat64(int64(readU64BE(w[pos:pos+2])), radixFrequency)
		pos += 2
	}
	if ctx.HasTimestampAdjustment {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.TimestampAdjustment = readU64BE(w[pos : pos+2])
		pos += 2
	}
	if ctx.HasTimestampCalibrationTime {
		if !need(1) {
			return int32(ErrBufSize)
		}
		ctx.TimestampCalibrationTime = w[pos]
		pos++
	}
	if ctx.HasTemperature {
		if !need(1) {
			return int32(ErrBufSize)
		}
		ctx.Temperature = fixedI16ToFloat32(int16(extract(w[pos], 0, 16)), radixTemperature)
		pos++
	}
	if ctx.HasDeviceIdentifier {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.DeviceIdentifier.Oui = extract(w[pos], 0, 24)
		ctx.DeviceIdentifier.DeviceCode = uint16(extract(w[pos+1], 0, 16))
		pos += 2
	}
	if ctx.HasStateAndEventIndicators {
		if !need(1) {
			return int32(ErrBufSize)
		}
		readStateAndEventIndicators(w[pos], &ctx.StateAndEventIndicators)
		pos++
	}
	if ctx.HasDataPacketPayloadFormat {
		if !need(2) {
			return int32(ErrBufSize)
		}
		readDataPacketPayloadFormat(w[pos:pos+2], &ctx.DataPacketPayloadFormat)
		pos += 2
	}
	if ctx.HasFormattedGpsGeolocation {
		if !need(geolocationWords) {
			return int32(ErrBufSize)
		}
		readGeolocation(w[pos:pos+geolocationWords], &ctx.FormattedGpsGeolocation)
		pos += geolocationWords
	}
	if ctx.HasFormattedInsGeolocation {
		if !need(geolocationWords) {
			return int32(ErrBufSize)
		}
		readGeolocation(w[pos:pos+geolocationWords], &ctx.FormattedInsGeolocation)
		pos += geolocationWords
	}
	if ctx.HasEcefEphemeris {
		if !need(ephemerisWords) {
			return int32(ErrBufSize)
		}
		readEphemeris(w[pos:pos+ephemerisWords], &ctx.EcefEphemeris)
		pos += ephemerisWords
	}
	if ctx.HasRelativeEphemeris {
		if !need(ephemerisWords) {
			return int32(ErrBufSize)
		}
		readEphemeris(w[pos:pos+ephemerisWords], &ctx.RelativeEphemeris)
		pos += ephemerisWords
	}
	if ctx.HasEphemerisReferenceIdentifier {
		if !need(1) {
			return int32(ErrBufSize)
		}
		ctx.EphemerisReferenceIdentifier = w[pos]
		pos++
	}
	if ctx.HasGpsAscii {
		if !need(2) {
			return int32(ErrBufSize)
		}
		ctx.GpsAscii.Oui = extract(w[pos], 0, 24)
		ctx.GpsAscii.NumberOfWords = w[pos+1]
		pos += 2
		n := int32(ctx.GpsAscii.NumberOfWords)
		if n != 0 {
			if !need(n) {
				return int32(ErrBufSize)
			}
			ctx.GpsAscii.Words = w[pos : pos+n]
			pos += n
		} else {
			ctx.GpsAscii.Words = nil
		}
	}
	if ctx.HasContextAssociationLists {
		consumed := readContextAssociationLists(w[pos:], &ctx.ContextAssociationLists)
		if consumed < 0 {
			return consumed
		}
		pos += consumed
	}
	return pos
}

func readStateAndEventIndicators(word uint32, s *StateAndEventIndicators) {
	s.HasCalibratedTimeIndicator = u2b(extract(word, 31, 1))
	s.CalibratedTimeIndicator = u2b(extract(word, 19, 1))
	s.HasValidDataIndicator = u2b(extract(word, 30, 1))
	s.ValidDataIndicator = u2b(extract(word, 18, 1))
	s.HasReferenceLockIndicator = u2b(extract(word, 29, 1))
	s.ReferenceLockIndicator = u2b(extract(word, 17, 1))
	s.HasAgcOrMgcIndicator = u2b(extract(word, 28, 1))
	s.AgcOrMgcIndicator = u2b(extract(word, 16, 1))
	s.HasDetectedSignalIndicator = u2b(extract(word, 27, 1))
	s.DetectedSignalIndicator = u2b(extract(word, 15, 1))
	s.HasSpectralInversionIndicator = u2b(extract(word, 26, 1))
	s.SpectralInversionIndicator = u2b(extract(word, 14, 1))
	s.HasOverRangeIndicator = u2b(extract(word, 25, 1))
	s.OverRangeIndicator = u2b(extract(word, 13, 1))
	s.HasSampleLossIndicator = u2b(extract(word, 24, 1))
	s.SampleLossIndicator = u2b(extract(word, 12, 1))
	s.UserDefined = uint8(extract(word, 0, 8))
}

func writeStateAndEventIndicators(s *StateAndEventIndicators) uint32 {
	var word uint32
	if s.HasCalibratedTimeIndicator {
		word = insert(word, 1, 31, 1)
		word = insert(word, b2u(s.CalibratedTimeIndicator), 19, 1)
	}
	if s.HasValidDataIndicator {
		word = insert(word, 1, 30, 1)
		word = insert(word, b2u(s.ValidDataIndicator), 18, 1)
	}
	if s.HasReferenceLockIndicator {
		word = insert(word, 1, 29, 1)
		word = insert(word, b2u(s.ReferenceLockIndicator), 17, 1)
	}
	if s.HasAgcOrMgcIndicator {
		word = insert(word, 1, 28, 1)
		word = insert(word, b2u(s.AgcOrMgcIndicator), 16, 1)
	}
	if s.HasDetectedSignalIndicator {
		word = insert(word, 1, 27, 1)
		word = insert(word, b2u(s.DetectedSignalIndicator), 15, 1)
	}
	if s.HasSpectralInversionIndicator {
		word = insert(word, 1, 26, 1)
		word = insert(word, b2u(s.SpectralInversionIndicator), 14, 1)
	}
	if s.HasOverRangeIndicator {
		word = insert(word, 1, 25, 1)
		word = insert(word, b2u(s.OverRangeIndicator), 13, 1)
	}
	if s.HasSampleLossIndicator {
		word = insert(word, 1, 24, 1)
		word = insert(word, b2u(s.SampleLossIndicator), 12, 1)
	}
	word = insert(word, uint32(s.UserDefined), 0, 8)
	return word
}

func readDataPacketPayloadFormat(w []uint32, f *DataPacketPayloadFormat) {
	word0 := w[0]
	f.PackingMethod = PackingMethod(extract(word0, 31, 1))
	f.RealOrComplex = RealOrComplex(extract(word0, 29, 2))
	f.DataItemFormat = DataItemFormat(extract(word0, 24, 5))
	f.SampleComponentRepeat = u2b(extract(word0, 23, 1))
	f.EventTagSize = uint8(extract(word0, 20, 3))
	f.ChannelTagSize = uint8(extract(word0, 16, 4))
	f.ItemPackingFieldSize = uint8(extract(word0, 6, 6))
	f.DataItemSize = uint8(extract(word0, 0, 6))

	word1 := w[1]
	f.RepeatCount = uint16(extract(word1, 16, 16))
	f.VectorSize = uint16(extract(word1, 0, 16))
}

func writeDataPacketPayloadFormat(f *DataPacketPayloadFormat, w []uint32) {
	var word0 uint32
	word0 = insert(word0, uint32(f.PackingMethod), 31, 1)
	word0 = insert(word0, uint32(f.RealOrComplex), 29, 2)
	word0 = insert(word0, uint32(f.DataItemFormat), 24, 5)
	word0 = insert(word0, b2u(f.SampleComponentRepeat), 23, 1)
	word0 = insert(word0, uint32(f.EventTagSize), 20, 3)
	word0 = insert(word0, uint32(f.ChannelTagSize), 16, 4)
	word0 = insert(word0, uint32(f.ItemPackingFieldSize), 6, 6)
	word0 = insert(word0, uint32(f.DataItemSize), 0, 6)
	w[0] = word0

	var word1 uint32
	word1 = insert(word1, uint32(f.RepeatCount), 16, 16)
	word1 = insert(word1, uint32(f.VectorSize), 0, 16)
	w[1] = word1
}

func readContextAssociationLists(w []uint32, l *ContextAssociationLists) int32 {
	if len(w) < 2 {
		return int32(ErrBufSize)
	}
	word0 := w[0]
	l.SourceListSize = extract(word0, 16, 9)
	l.SystemListSize = extract(word0, 0, 9)
	word1 := w[1]
	l.VectorComponentListSize = extract(word1, 16, 16)
	l.HasAsyncChannelTagList = u2b(extract(word1, 15, 1))
	l.AsyncChannelListSize = extract(word1, 0, 15)

	pos := int32(2)
	take := func(n uint32) ([]uint32, int32) {
		end := pos + int32(n)
		if int32(len(w)) < end {
			return nil, int32(ErrBufSize)
		}
		s := w[pos:end]
		pos = end
		return s, 0
	}

	var code int32
	l.SourceList, code = take(l.SourceListSize)
	if code != 0 {
		return code
	}
	l.SystemList, code = take(l.SystemListSize)
	if code != 0 {
		return code
	}
	l.VectorComponentList, code = take(l.VectorComponentListSize)
	if code != 0 {
		return code
	}
	l.AsyncChannelList, code = take(l.AsyncChannelListSize)
	if code != 0 {
		return code
	}
	if l.HasAsyncChannelTagList {
		l.AsyncChannelTagList, code = take(l.AsyncChannelListSize)
		if code != 0 {
			return code
		}
	} else {
		l.AsyncChannelTagList = nil
	}
	return pos
}

func writeContextAssociationLists(l *ContextAssociationLists, w []uint32) int32 {
	need := wordsContextAssociationLists(l)
	if int32(len(w)) < need {
		return int32(ErrBufSize)
	}
	var word0 uint32
	word0 = insert(word0, l.SourceListSize, 16, 9)
	word0 = insert(word0, l.SystemListSize, 0, 9)
	w[0] = word0

	var word1 uint32
	word1 = insert(word1, l.VectorComponentListSize, 16, 16)
	word1 = insert(word1, b2u(l.HasAsyncChannelTagList), 15, 1)
	word1 = insert(word1, l.AsyncChannelListSize, 0, 15)
	w[1] = word1

	pos := int32(2)
	put := func(src []uint32, n uint32) {
		copy(w[pos:pos+int32(n)], src)
		pos += int32(n)
	}
	put(l.SourceList, l.SourceListSize&0x01FF)
	put(l.SystemList, l.SystemListSize&0x01FF)
	put(l.VectorComponentList, l.VectorComponentListSize)
	asyncSize := l.AsyncChannelListSize & 0x7FFF
	put(l.AsyncChannelList, asyncSize)
	if l.HasAsyncChannelTagList {
		put(l.AsyncChannelTagList, asyncSize)
	}
	return pos
}

// WriteIfContext encodes ctx into w and returns the number of words
// written, or a negative Code on error.
func WriteIfContext(ctx *IfContext, w []uint32) int32 {
	need := WordsIfContext(ctx)
	if int32(len(w)) < need {
		return int32(ErrBufSize)
	}
	if code := ValidateIfContext(ctx); code != 0 {
		return int32(code)
	}

	var ind uint32
	ind = insert(ind, b2u(ctx.ContextFieldChangeIndicator), 31, 1)
	ind = insert(ind, b2u(ctx.HasReferencePointIdentifier), 30, 1)
	ind = insert(ind, b2u(ctx.HasBandwidth), 29, 1)
	ind = insert(ind, b2u(ctx.HasIfReferenceFrequency), 28, 1)
	ind = insert(ind, b2u(ctx.HasRfReferenceFrequency), 27, 1)
	ind = insert(ind, b2u(ctx.HasRfReferenceFrequencyOffset), 26, 1)
	ind = insert(ind, b2u(ctx.HasIfBandOffset), 25, 1)
	ind = insert(ind, b2u(ctx.HasReferenceLevel), 24, 1)
	ind = insert(ind, b2u(ctx.HasGain), 23, 1)
	ind = insert(ind, b2u(ctx.HasOverRangeCount), 22, 1)
	ind = insert(ind, b2u(ctx.HasSampleRate), 21, 1)
	ind = insert(ind, b2u(ctx.HasTimestampAdjustment), 20, 1)
	ind = insert(ind, b2u(ctx.HasTimestampCalibrationTime), 19, 1)
	ind = insert(ind, b2u(ctx.HasTemperature), 18, 1)
	ind = insert(ind, b2u(ctx.HasDeviceIdentifier), 17, 1)
	ind = insert(ind, b2u(ctx.HasStateAndEventIndicators), 16, 1)
	ind = insert(ind, b2u(ctx.HasDataPacketPayloadFormat), 15, 1)
	ind = insert(ind, b2u(ctx.HasFormattedGpsGeolocation), 14, 1)
	ind = insert(ind, b2u(ctx.HasFormattedInsGeolocation), 13, 1)
	ind = insert(ind, b2u(ctx.HasEcefEphemeris), 12, 1)
	ind = insert(ind, b2u(ctx.HasRelativeEphemeris), 11, 1)
	ind = insert(ind, b2u(ctx.HasEphemerisReferenceIdentifier), 10, 1)
	ind = insert(ind, b2u(ctx.HasGpsAscii), 9, 1)
	ind = insert(ind, b2u(ctx.HasContextAssociationLists), 8, 1)
	w[0] = ind

	pos := int32(1)
	if ctx.HasReferencePointIdentifier {
		w[pos] = ctx.ReferencePointIdentifier
		pos++
	}
	if ctx.HasBandwidth {
		writeU64BE(uint64(float64ToFixedI64(ctx.Bandwidth, radixFrequency)), w[pos:pos+2])
		pos += 2
	}
	if ctx.HasIfReferenceFrequency {
		writeU64BE(uint64(float64ToFixedI64(ctx.IfReferenceFrequency, radixFrequency)), w[pos:pos+2])
		pos += 2
	}
	if ctx.HasRfReferenceFrequency {
		writeU64BE(uint64(float64ToFixedI64(ctx.RfReferenceFrequency, radixFrequency)), w[pos:pos+2])
		pos += 2
	}
	if ctx.HasRfReferenceFrequencyOffset {
		writeU64BE(uint64(float64ToFixedI64(ctx.RfReferenceFrequencyOffset, radixFrequency)), w[pos:pos+2])
		pos += 2
	}
	if ctx.HasIfBandOffset {
		writeU64BE(uint64(float64ToFixedI64(ctx.IfBandOffset, radixFrequency)), w[pos:pos+2])
		pos += 2
	}
	if ctx.HasReferenceLevel {
		w[pos] = insert(0, uint32(uint16(float32ToFixedI16(ctx.ReferenceLevel, radixReferenceLevel))), 0, 16)
		pos++
	}
	if ctx.HasGain {
		var word uint32
		word = insert(word, uint32(uint16(float32ToFixedI16(ctx.Gain.Stage1, radixGain))), 16, 16)
		word = insert(word, uint32(uint16(float32ToFixedI16(ctx.Gain.Stage2, radixGain))), 0, 16)
		w[pos] = word
		pos++
	}
	if ctx.HasOverRangeCount {
		w[pos] = ctx.OverRangeCount
		pos++
	}
	if ctx.HasSampleRate {
		writeU64BE(uint64(float64ToFixedI64(ctx.SampleRate, radixFrequency)), w[pos:pos+2])
		pos += 2
	}
	if ctx.HasTimestampAdjustment {
		writeU64BE(ctx.TimestampAdjustment, w[pos:pos+2])
		pos += 2
	}
	if ctx.HasTimestampCalibrationTime {
		w[pos] = ctx.TimestampCalibrationTime
		pos++
	}
	if ctx.HasTemperature {
		w[pos] = insert(0, uint32(uint16(float32ToFixedI16(ctx.Temperature, radixTemperature))), 0, 16)
		pos++
	}
	if ctx.HasDeviceIdentifier {
		w[pos] = insert(0, ctx.DeviceIdentifier.Oui, 0, 24)
		w[pos+1] = insert(0, uint32(ctx.DeviceIdentifier.DeviceCode), 0, 16)
		pos += 2
	}
	if ctx.HasStateAndEventIndicators {
		w[pos] = writeStateAndEventIndicators(&ctx.StateAndEventIndicators)
		pos++
	}
	if ctx.HasDataPacketPayloadFormat {
		writeDataPacketPayloadFormat(&ctx.DataPacketPayloadFormat, w[pos:pos+2])
		pos += 2
	}
	if ctx.HasFormattedGpsGeolocation {
		writeGeolocation(&ctx.FormattedGpsGeolocation, w[pos:pos+geolocationWords])
		pos += geolocationWords
	}
	if ctx.HasFormattedInsGeolocation {
		writeGeolocation(&ctx.FormattedInsGeolocation, w[pos:pos+geolocationWords])
		pos += geolocationWords
	}
	if ctx.HasEcefEphemeris {
		writeEphemeris(&ctx.EcefEphemeris, w[pos:pos+ephemerisWords])
		pos += ephemerisWords
	}
	if ctx.HasRelativeEphemeris {
		writeEphemeris(&ctx.RelativeEphemeris, w[pos:pos+ephemerisWords])
		pos += ephemerisWords
	}
	if ctx.HasEphemerisReferenceIdentifier {
		w[pos] = ctx.EphemerisReferenceIdentifier
		pos++
	}
	if ctx.HasGpsAscii {
		w[pos] = insert(0, ctx.GpsAscii.Oui, 0, 24)
		w[pos+1] = ctx.GpsAscii.NumberOfWords
		pos += 2
		n := int32(ctx.GpsAscii.NumberOfWords)
		if n != 0 {
			copy(w[pos:pos+n], ctx.GpsAscii.Words)
			pos += n
		}
	}
	if ctx.HasContextAssociationLists {
		consumed := writeContextAssociationLists(&ctx.ContextAssociationLists, w[pos:])
		if consumed < 0 {
			return consumed
		}
		pos += consumed
	}
	return pos
}
