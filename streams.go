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

// Read reassembles and returns the raw payload of entry (spec.md §4.9).
// The returned slice is freshly allocated on every call: the container
// retains no per-read state, so concurrent reads of distinct (or even
// the same) entries are safe.
func (c *Container) Read(entry *DirectoryEntry) ([]byte, error) {
	if c.state != stateParsed {
		return nil, newError(KindInvalidEntryChain, "container has not been parsed", 0)
	}
	if entry.StreamSize == 0 {
		return nil, newError(KindInvalidEntrySize, "stream size is zero", 0)
	}
	if entry.ObjectType == RootStorage || entry.StreamSize >= miniStreamCutoffSize {
		return c.readLarge(entry)
	}
	return c.readSmall(entry)
}

// readLarge reassembles a stream via the FAT path: each chain entry
// addresses one full sector directly.
func (c *Container) readLarge(entry *DirectoryEntry) ([]byte, error) {
	if entry.rawChain == nil {
		return nil, newError(KindInvalidEntryChain, "entry has no chain", 0)
	}
	size := entry.StreamSize
	sectorSize := uint64(c.geometry.sectorSize)
	needed := (size + sectorSize - 1) / sectorSize
	if uint64(len(entry.rawChain)) < needed {
		return nil, newError(KindInvalidEntryChain, "chain shorter than stream requires", int64(len(entry.rawChain)))
	}
	out := make([]byte, 0, size)
	var copied uint64
	for _, sn := range entry.rawChain {
		if copied >= size {
			break
		}
		buf, err := c.sector(sn)
		if err != nil {
			return nil, err
		}
		n := sectorSize
		if rem := size - copied; rem < n {
			n = rem
		}
		out = append(out, buf[:n]...)
		copied += n
	}
	return out, nil
}

// readSmall reassembles a stream via the mini-FAT path: each chain
// entry addresses a mini-sector, which must be resolved through the
// root storage's own FAT chain (the mini stream's backing store) -
// spec.md §4.9's corrected indirection formula.
func (c *Container) readSmall(entry *DirectoryEntry) ([]byte, error) {
	if entry.rawChain == nil {
		return nil, newError(KindInvalidEntryChain, "entry has no chain", 0)
	}
	if len(c.entries) == 0 {
		return nil, newError(KindInvalidEntryChain, "root storage is absent", 0)
	}
	root := c.entries[0]
	if root.rawChain == nil {
		return nil, newError(KindInvalidEntryChain, "root storage has no mini-stream chain", 0)
	}
	fanout := uint64(c.geometry.fanout())
	size := entry.StreamSize
	needed := (size + uint64(miniSectorSize) - 1) / uint64(miniSectorSize)
	if uint64(len(entry.rawChain)) < needed {
		return nil, newError(KindInvalidEntryChain, "chain shorter than stream requires", int64(len(entry.rawChain)))
	}
	out := make([]byte, 0, size)
	var copied uint64
	for _, m := range entry.rawChain {
		if copied >= size {
			break
		}
		outerIdx := uint64(m) / fanout
		if outerIdx >= uint64(len(root.rawChain)) {
			return nil, newError(KindInvalidEntryChain, "mini-sector resolves past root chain", int64(outerIdx))
		}
		outer := root.rawChain[outerIdx]
		buf, err := c.sector(outer)
		if err != nil {
			return nil, err
		}
		innerOffset := (uint64(m) % fanout) * uint64(miniSectorSize)
		n := uint64(miniSectorSize)
		if rem := size - copied; rem < n {
			n = rem
		}
		if innerOffset+n > uint64(len(buf)) {
			return nil, newError(KindInvalidEntryIndex, "mini-sector offset out of sector bounds", int64(innerOffset))
		}
		out = append(out, buf[innerOffset:innerOffset+n]...)
		copied += n
	}
	return out, nil
}
