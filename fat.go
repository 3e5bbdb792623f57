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

// loadFAT reads every FAT sector named by the assembled DIFAT and
// concatenates them into one flat table (spec.md §4.5).
func (c *Container) loadFAT() ([]uint32, error) {
	perSector := c.geometry.entriesPerSector
	fat := make([]uint32, 0, uint32(len(c.difat))*perSector)
	for _, k := range c.difat {
		buf, err := c.sector(k)
		if err != nil {
			return nil, err
		}
		for i := uint32(0); i < perSector; i++ {
			fat = append(fat, binary.LittleEndian.Uint32(buf[i*4:i*4+4]))
		}
	}
	return fat, nil
}

// followChain walks table starting at head, collecting Regular sector
// numbers until a non-Regular (terminating) value is reached. It is
// the shared implementation behind both the FAT-chain and
// mini-FAT-chain walks of spec.md §4.8.
func followChain(table []uint32, head uint32) ([]uint32, error) {
	if !isRegular(head) {
		return nil, nil
	}
	chain := make([]uint32, 0, 8)
	cur := head
	for isRegular(cur) {
		if len(chain) > len(table) {
			return nil, newError(KindInvalidEntryChain, "chain walk exceeded table length (cycle?)", int64(len(chain)))
		}
		if cur >= uint32(len(table)) {
			return nil, newError(KindInvalidEntryIndex, "chain entry out of table bounds", int64(cur))
		}
		chain = append(chain, cur)
		cur = table[cur]
	}
	return chain, nil
}
