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
	"encoding/binary"
	"time"
	"unicode/utf16"

	"github.com/go-restruct/restruct"
)

// ObjectType is the kind of object a directory entry describes. The
// values are the on-disk object type byte.
type ObjectType uint8

const (
	Unknown     ObjectType = 0
	Storage     ObjectType = 1
	Stream      ObjectType = 2
	RootStorage ObjectType = 5
)

func (t ObjectType) String() string {
	switch t {
	case Storage:
		return "storage"
	case Stream:
		return "stream"
	case RootStorage:
		return "root storage"
	default:
		return "unknown"
	}
}

// Color is the red-black tree color flag carried on a directory entry.
// It is exposed for a client's own tree traversal; this package makes
// no use of it (spec.md §1 leaves name-based/tree lookup to the caller).
type Color uint8

const (
	Red Color = iota
	Black
)

// directoryEntryRaw is the on-disk 128-byte directory entry layout.
type directoryEntryRaw struct {
	RawName           [64]byte
	NameLength        uint16
	ObjectType        uint8
	Color             uint8
	LeftSibID         uint32
	RightSibID        uint32
	ChildID           uint32
	CLSID             [16]byte
	StateBits         uint32
	CreationTime      uint64
	ModifiedTime      uint64
	StartingSectorLoc uint32
	StreamSize        uint64
}

const lenDirEntry = 128

// DirectoryEntry is a decoded directory entry augmented with its
// precomputed sector chain (spec.md §3). Entries are immutable once
// Parse returns; Chain is owned by the entry, not shared.
type DirectoryEntry struct {
	Name          string
	ObjectType    ObjectType
	Color         Color
	LeftSibling   uint32 // noStream sentinel if absent
	RightSibling  uint32 // noStream sentinel if absent
	Child         uint32 // noStream sentinel if absent
	CLSID         [16]byte
	StateBits     uint32
	CreatedAt     time.Time
	ModifiedAt    time.Time
	StartSector   SectorID
	StreamSize    uint64
	Chain         []SectorID // nil for Storage/Unknown entries
	rawChain      []uint32   // hot internal form, reused by the stream reader
	miniResolved  bool       // Chain was walked via mini-FAT
}

// filetimeToTime converts a Windows FILETIME (100ns intervals since
// 1601-01-01 UTC) to a time.Time. A zero FILETIME (unrecorded) maps to
// the zero time.Time.
func filetimeToTime(ft uint64) time.Time {
	if ft == 0 {
		return time.Time{}
	}
	const filetimeEpochDiff = 116444736000000000 // 1601-01-01 to 1970-01-01, in 100ns ticks
	unixTicks := int64(ft) - filetimeEpochDiff
	return time.Unix(unixTicks/10000000, (unixTicks%10000000)*100).UTC()
}

func decodeName(raw [64]byte, nameLength uint16) string {
	if nameLength < 2 {
		return ""
	}
	codeUnits := (int(nameLength) - 2) / 2
	if codeUnits <= 0 {
		return ""
	}
	if codeUnits > 31 {
		codeUnits = 31
	}
	units := make([]uint16, codeUnits)
	for i := 0; i < codeUnits; i++ {
		units[i] = binary.LittleEndian.Uint16(raw[i*2 : i*2+2])
	}
	return string(utf16.Decode(units))
}

// loadDirectory walks the FAT chain from the header's directory head
// and decodes every fixed-size entry (spec.md §4.7). A decode failure
// inside any directory sector is a hard error - the REDESIGN FLAG of
// spec.md §4.7 applied over the original source's skip-on-error
// behavior (see DESIGN.md).
func (c *Container) loadDirectory() ([]*DirectoryEntry, error) {
	sectors, err := followChain(c.fat, c.header.raw.FirstDirectorySectorLoc)
	if err != nil {
		return nil, err
	}
	perSector := c.geometry.dirEntriesPer
	entries := make([]*DirectoryEntry, 0, uint32(len(sectors))*perSector)
	for _, sn := range sectors {
		buf, err := c.sector(sn)
		if err != nil {
			return nil, err
		}
		for i := uint32(0); i < perSector; i++ {
			off := i * lenDirEntry
			var raw directoryEntryRaw
			if err := restruct.Unpack(buf[off:off+lenDirEntry], binary.LittleEndian, &raw); err != nil {
				return nil, newError(KindParseError, "malformed directory entry: "+err.Error(), 0)
			}
			entry := c.decodeEntry(&raw)
			// Unused slots (padding out a directory sector) decode as
			// Unknown; they are not part of the logical entry set.
			if entry.ObjectType == Unknown {
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (c *Container) decodeEntry(raw *directoryEntryRaw) *DirectoryEntry {
	streamSize := raw.StreamSize
	if c.geometry.majorVersion == 3 {
		streamSize &= 0xFFFFFFFF // spec.md §3/§9: high 32 bits are not authoritative in v3
	}
	return &DirectoryEntry{
		Name:        decodeName(raw.RawName, raw.NameLength),
		ObjectType:  ObjectType(raw.ObjectType),
		Color:       Color(raw.Color),
		LeftSibling: raw.LeftSibID,
		RightSibling: raw.RightSibID,
		Child:       raw.ChildID,
		CLSID:       raw.CLSID,
		StateBits:   raw.StateBits,
		CreatedAt:   filetimeToTime(raw.CreationTime),
		ModifiedAt:  filetimeToTime(raw.ModifiedTime),
		StartSector: decodeSectorID(raw.StartingSectorLoc),
		StreamSize:  streamSize,
	}
}

// attachChains precomputes each entry's sector chain per spec.md §4.7:
// Stream entries below the mini-stream cutoff resolve via mini-FAT,
// Stream entries at or above it and the RootStorage entry resolve via
// FAT, Storage/Unknown entries get no chain.
func (c *Container) attachChains(entries []*DirectoryEntry) error {
	for _, e := range entries {
		start, ok := e.StartSector.Regular()
		switch e.ObjectType {
		case Stream:
			if !ok {
				continue
			}
			var chain []uint32
			var err error
			if e.StreamSize < miniStreamCutoffSize {
				chain, err = followChain(c.miniFAT, start)
				e.miniResolved = true
			} else {
				chain, err = followChain(c.fat, start)
			}
			if err != nil {
				return err
			}
			e.rawChain = chain
			e.Chain = toSectorIDs(chain)
		case RootStorage:
			if !ok {
				continue
			}
			chain, err := followChain(c.fat, start)
			if err != nil {
				return err
			}
			e.rawChain = chain
			e.Chain = toSectorIDs(chain)
		}
	}
	return nil
}
