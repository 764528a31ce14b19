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

/*
Package hostendian reports the byte order of the machine this code runs on.

vrt always reads and writes VRT words in the standard's big-endian order
regardless of host endianness; this package exists only for callers that
combine a big-endian VRT buffer with host-order data in the same structure
(e.g. a shared-memory record) and need to know which conversions, if any,
they must still do themselves.
*/
package hostendian

import (
	"encoding/binary"
	"unsafe"
)

// Order is the byte order of the host CPU.
var Order binary.ByteOrder = binary.LittleEndian

// IsBigEndian reports whether the host CPU is big endian.
var IsBigEndian bool

func init() {
	var i uint16 = 0x0100
	ptr := unsafe.Pointer(&i)
	if *(*byte)(ptr) == 0x01 {
		// host stores the MSB first
		IsBigEndian = true
		Order = binary.BigEndian
	}
}
