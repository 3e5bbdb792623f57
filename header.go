// Copyright 2013 Richard Lehane. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mscfb

import (
	"bytes"
	"encoding/binary"

	"github.com/go-restruct/restruct"
)

// lenHeaderRegion is the fixed 512-byte region holding the 76-byte
// header prefix plus the 109-entry inline DIFAT (spec.md §3).
const lenHeaderRegion = 512

var cfbSignature = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// headerRaw is the on-disk layout of the 512-byte header region,
// decoded in one shot with restruct rather than the teacher's manual
// byte-offset slicing - the fields still mirror the teacher's
// headerFields one for one.
type headerRaw struct {
	Signature               [8]byte
	CLSID                   [16]byte
	MinorVersion            uint16
	MajorVersion            uint16
	ByteOrderMark           uint16
	SectorShift             uint16
	MiniSectorShift         uint16
	Reserved                [6]byte
	NumDirectorySectors     uint32
	NumFATSectors           uint32
	FirstDirectorySectorLoc uint32
	TransactionSignature    uint32
	MiniStreamCutoffSize    uint32
	FirstMiniFATSectorLoc   uint32
	NumMiniFATSectors       uint32
	FirstDIFATSectorLoc     uint32
	NumDIFATSectors         uint32
	InlineDIFAT             [109]uint32
}

// header is the decoded, validated header plus the geometry it implies.
type header struct {
	raw      headerRaw
	geometry geometry
}

func decodeHeader(region []byte) (*header, error) {
	if len(region) < lenHeaderRegion {
		return nil, newError(KindInvalidFileFormat, "file shorter than header region", int64(len(region)))
	}
	var raw headerRaw
	if err := restruct.Unpack(region[:lenHeaderRegion], binary.LittleEndian, &raw); err != nil {
		return nil, newError(KindParseError, "malformed header: "+err.Error(), 0)
	}
	if !bytes.Equal(raw.Signature[:], cfbSignature[:]) {
		return nil, newError(KindInvalidFileFormat, "bad magic signature", 0)
	}
	if raw.ByteOrderMark != 0xFFFE {
		return nil, newError(KindInvalidFileFormat, "bad byte order mark", int64(raw.ByteOrderMark))
	}
	if raw.MiniSectorShift != 6 {
		return nil, newError(KindInvalidFileFormat, "bad mini sector shift", int64(raw.MiniSectorShift))
	}
	if raw.MiniStreamCutoffSize != uint32(miniStreamCutoffSize) {
		return nil, newError(KindInvalidFileFormat, "bad mini stream cutoff", int64(raw.MiniStreamCutoffSize))
	}
	for _, b := range raw.Reserved {
		if b != 0 {
			return nil, newError(KindInvalidFileFormat, "reserved header bytes not zero", 0)
		}
	}
	g, err := newGeometry(raw.MajorVersion)
	if err != nil {
		return nil, err
	}
	switch raw.MajorVersion {
	case 3:
		if raw.SectorShift != 9 {
			return nil, newError(KindInvalidFileFormat, "sector shift inconsistent with major version 3", int64(raw.SectorShift))
		}
		if raw.NumDirectorySectors != 0 {
			return nil, newError(KindInvalidFileFormat, "number of directory sectors must be zero in v3", int64(raw.NumDirectorySectors))
		}
	case 4:
		if raw.SectorShift != 12 {
			return nil, newError(KindInvalidFileFormat, "sector shift inconsistent with major version 4", int64(raw.SectorShift))
		}
	}
	return &header{raw: raw, geometry: g}, nil
}

// inlineDIFAT returns the 109 header-resident DIFAT entries, truncated
// to their valid (Regular) leading run.
func (h *header) inlineDIFAT() []uint32 {
	return validPrefix(h.raw.InlineDIFAT[:])
}
