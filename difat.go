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

import "encoding/binary"

// assembleDIFAT extends the header's inline DIFAT by walking the DIFAT
// sector chain (spec.md §4.4). Each DIFAT sector holds
// (entriesPerSector-1) FAT sector numbers followed by one "next DIFAT
// sector" pointer as its final entry.
func (c *Container) assembleDIFAT() ([]uint32, error) {
	difat := append([]uint32(nil), c.header.inlineDIFAT()...)

	numDifat := c.header.raw.NumDIFATSectors
	if numDifat == 0 {
		if uint32(len(difat)) != c.header.raw.NumFATSectors {
			return nil, newError(KindInvalidDifat, "assembled DIFAT length does not match number of FAT sectors", int64(len(difat)))
		}
		return difat, nil
	}

	perSector := c.geometry.entriesPerSector
	cur := c.header.raw.FirstDIFATSectorLoc
	visited := uint32(0)
	for isRegular(cur) {
		if visited >= numDifat {
			return nil, newError(KindInvalidDifat, "difat chain longer than number of difat sectors", int64(visited))
		}
		buf, err := c.sector(cur)
		if err != nil {
			return nil, err
		}
		entries := make([]uint32, perSector-1)
		for i := range entries {
			entries[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
		}
		next := binary.LittleEndian.Uint32(buf[len(buf)-4:])
		difat = append(difat, validPrefix(entries)...)
		visited++
		cur = next
	}
	if visited != numDifat {
		return nil, newError(KindInvalidDifat, "difat chain visited fewer sectors than header declares", int64(visited))
	}
	if uint32(len(difat)) != c.header.raw.NumFATSectors {
		return nil, newError(KindInvalidDifat, "assembled DIFAT length does not match number of FAT sectors", int64(len(difat)))
	}
	return difat, nil
}
