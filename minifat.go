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

// loadMiniFAT walks the FAT chain from the header's mini-FAT head and
// decodes every visited sector into a single flat mini-FAT table
// (spec.md §4.6).
func (c *Container) loadMiniFAT() ([]uint32, error) {
	head := c.header.raw.FirstMiniFATSectorLoc
	if !isRegular(head) {
		return nil, nil
	}
	sectors, err := followChain(c.fat, head)
	if err != nil {
		return nil, err
	}
	if uint32(len(sectors)) != c.header.raw.NumMiniFATSectors {
		return nil, newError(KindInvalidDifat, "mini-FAT sector count mismatch", int64(len(sectors)))
	}
	perSector := c.geometry.entriesPerSector
	miniFAT := make([]uint32, 0, uint32(len(sectors))*perSector)
	for _, sn := range sectors {
		buf, err := c.sector(sn)
		if err != nil {
			return nil, err
		}
		for i := uint32(0); i < perSector; i++ {
			miniFAT = append(miniFAT, binary.LittleEndian.Uint32(buf[i*4:i*4+4]))
		}
	}
	return miniFAT, nil
}
