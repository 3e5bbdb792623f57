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

// Sentinel values a raw FAT/DIFAT/mini-FAT u32 entry can take. Anything
// strictly less than maxRegSect addresses a real sector; everything else
// is a tag, not an index.
const (
	maxRegSect   uint32 = 0xFFFFFFFA // boundary marker, not a real sector
	notAppliSect uint32 = 0xFFFFFFFB // reserved
	difatSect    uint32 = 0xFFFFFFFC // slot holds a FAT sector that is itself a DIFAT sector
	fatSect      uint32 = 0xFFFFFFFD // slot holds a FAT sector
	endOfChain   uint32 = 0xFFFFFFFE // chain terminator
	freeSect     uint32 = 0xFFFFFFFF // unallocated
	noStream     uint32 = 0xFFFFFFFF // directory sibling/child "no link" sentinel, same bit pattern as freeSect
)

// SectorKind tags the variant of a SectorID.
type SectorKind uint8

const (
	KindRegular SectorKind = iota
	KindMaxRegular
	KindNotApplicable
	KindDIFAT
	KindFAT
	KindEndOfChain
	KindFree
)

func (k SectorKind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindMaxRegular:
		return "max-regular"
	case KindNotApplicable:
		return "not-applicable"
	case KindDIFAT:
		return "difat"
	case KindFAT:
		return "fat"
	case KindEndOfChain:
		return "end-of-chain"
	case KindFree:
		return "free"
	default:
		return "unknown"
	}
}

// SectorID is the tagged public form of a raw on-disk sector entry
// (see spec.md §3, "SectorId"). Internally the FAT, mini-FAT and DIFAT
// tables stay flat []uint32 for density; SectorID is what crosses the
// package boundary on DirectoryEntry.Chain and similar fields.
type SectorID struct {
	Kind  SectorKind
	Index uint32 // meaningful only when Kind == KindRegular
}

// isRegular reports whether a raw u32 table entry addresses a real sector.
func isRegular(v uint32) bool {
	return v < maxRegSect
}

// decodeSectorID converts a raw u32 into its tagged representation.
func decodeSectorID(v uint32) SectorID {
	switch v {
	case maxRegSect:
		return SectorID{Kind: KindMaxRegular}
	case notAppliSect:
		return SectorID{Kind: KindNotApplicable}
	case difatSect:
		return SectorID{Kind: KindDIFAT}
	case fatSect:
		return SectorID{Kind: KindFAT}
	case endOfChain:
		return SectorID{Kind: KindEndOfChain}
	case freeSect:
		return SectorID{Kind: KindFree}
	default:
		return SectorID{Kind: KindRegular, Index: v}
	}
}

// Regular reports whether the id is a real sector index, and if so, it.
func (s SectorID) Regular() (uint32, bool) {
	return s.Index, s.Kind == KindRegular
}

// validPrefix truncates raw at the first entry that is not Regular,
// i.e. the first sentinel value encountered. This is how inline-DIFAT
// padding (Free) and early chain termination (EndOfChain) are both
// handled by the same rule (spec.md §4.1).
func validPrefix(raw []uint32) []uint32 {
	for i, v := range raw {
		if !isRegular(v) {
			return raw[:i]
		}
	}
	return raw
}

// toSectorIDs converts a flat raw table slice to its tagged form, used
// only at API boundaries (DirectoryEntry.Chain) - hot internal walks
// stay on the raw uint32 representation.
func toSectorIDs(raw []uint32) []SectorID {
	out := make([]SectorID, len(raw))
	for i, v := range raw {
		out[i] = decodeSectorID(v)
	}
	return out
}

// geometry holds the version-dependent constants derived from the
// header's major version field (spec.md §3, "Geometry").
type geometry struct {
	majorVersion     uint16
	sectorSize       uint32 // 512 (v3) or 4096 (v4)
	entriesPerSector uint32 // sectorSize / 4
	dirEntriesPer    uint32 // sectorSize / 128
}

const (
	miniSectorSize       uint32 = 64   // fixed regardless of version
	miniStreamCutoffSize uint64 = 4096 // fixed, header field MUST match
)

func newGeometry(majorVersion uint16) (geometry, error) {
	var sectorSize uint32
	switch majorVersion {
	case 3:
		sectorSize = 512
	case 4:
		sectorSize = 4096
	default:
		return geometry{}, newError(KindInvalidFileFormat, "unsupported major version", int64(majorVersion))
	}
	return geometry{
		majorVersion:     majorVersion,
		sectorSize:       sectorSize,
		entriesPerSector: sectorSize / 4,
		dirEntriesPer:    sectorSize / 128,
	}, nil
}

// fanout is the number of mini-sectors packed into one normal sector:
// 8 for v3 (512/64), 64 for v4 (4096/64).
func (g geometry) fanout() uint32 {
	return g.sectorSize / miniSectorSize
}
