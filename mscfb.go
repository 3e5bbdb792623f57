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

// Package mscfb implements a reader for Microsoft's Compound File Binary
// File Format (https://learn.microsoft.com/en-us/openspecs/windows_protocols/ms-cfb/).
//
// The Compound File Binary File Format - also known as OLE2 or the
// Component Object Model (COM) structured storage format - is a
// FAT-like filesystem embedded in a single file, historically used by
// MS Office documents, MSI installers and related formats. This package
// parses the container's header, allocation tables and directory tree,
// and exposes on-demand extraction of any stream's raw bytes. It does
// not interpret stream payloads, perform name-based lookup, or support
// writing - see spec.md for the full scope.
//
// Example:
//
//	src, closeFile, err := mscfb.OpenFile("test.doc")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer closeFile()
//	c, err := mscfb.Open(src)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := c.Parse(); err != nil {
//		log.Fatal(err)
//	}
//	for _, entry := range c.Entries() {
//		if entry.ObjectType == mscfb.Stream {
//			data, err := c.Read(entry)
//			...
//		}
//	}
package mscfb

import "io"

// Source is the random-access, length-known, read-only byte source the
// container reads from (spec.md §6). *bytes.Reader satisfies it; a file
// on disk is wrapped as a Source by OpenFile.
type Source interface {
	io.ReaderAt
	Size() int64
}

type state uint8

const (
	stateOpened state = iota
	stateParsed
)

// Container owns the byte source and the four assembled tables: DIFAT,
// FAT, mini-FAT and the directory vector (spec.md §3, "Container
// state"). It is built in two steps, Open then Parse, mirroring the
// Opened -> Parsed state machine of spec.md §4.9: only a Parsed
// container permits Read.
type Container struct {
	state    state
	header   *header
	geometry geometry

	body []byte // sector-indexed body, i.e. file bytes from geometry.sectorSize onward

	difat   []uint32
	fat     []uint32
	miniFAT []uint32
	entries []*DirectoryEntry
}

// Open decodes the header, partitions the body into sectors, and
// decodes the inline DIFAT. It does not touch the FAT, mini-FAT or
// directory - call Parse for that (spec.md §6).
func Open(src Source) (*Container, error) {
	size := src.Size()
	if size < lenHeaderRegion {
		return nil, newError(KindInvalidFileFormat, "file too small to hold a header", size)
	}
	buf := make([]byte, size)
	if _, err := src.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, wrapIOError("reading file contents", err)
	}

	h, err := decodeHeader(buf[:lenHeaderRegion])
	if err != nil {
		return nil, err
	}

	// Sector 0 is always the 512-byte header; for v4 files the rest of
	// that first sectorSize-byte region is padding that must be
	// skipped before the sector-indexed body begins (spec.md §3).
	bodyStart := int64(h.geometry.sectorSize)
	var body []byte
	if bodyStart < size {
		body = buf[bodyStart:]
	}

	return &Container{
		state:    stateOpened,
		header:   h,
		geometry: h.geometry,
		body:     body,
	}, nil
}

// sector returns body sector n, bounds-checked (spec.md §4.3).
func (c *Container) sector(n uint32) ([]byte, error) {
	ss := c.geometry.sectorSize
	start := uint64(n) * uint64(ss)
	end := start + uint64(ss)
	if end > uint64(len(c.body)) {
		return nil, newError(KindInvalidEntryIndex, "sector index out of body bounds", int64(n))
	}
	return c.body[start:end], nil
}

// Parse performs the §4.4-§4.7 assembly steps in order: DIFAT, FAT,
// mini-FAT, then the directory tree with per-entry chains precomputed.
// It is idempotent - calling Parse on an already-parsed container is a
// no-op.
func (c *Container) Parse() error {
	if c.state == stateParsed {
		return nil
	}

	difat, err := c.assembleDIFAT()
	if err != nil {
		return err
	}
	c.difat = difat

	fat, err := c.loadFAT()
	if err != nil {
		return err
	}
	c.fat = fat

	miniFAT, err := c.loadMiniFAT()
	if err != nil {
		return err
	}
	c.miniFAT = miniFAT

	entries, err := c.loadDirectory()
	if err != nil {
		return err
	}
	c.entries = entries
	if err := c.attachChains(entries); err != nil {
		return err
	}

	c.state = stateParsed
	return nil
}

// Entries returns the directory in on-disk order; entry 0 is always
// the root storage (spec.md §6). The slice and its entries are owned
// by the container and must not be mutated by callers.
func (c *Container) Entries() []*DirectoryEntry {
	return c.entries
}

// Version reports the container's major version (3 or 4).
func (c *Container) Version() uint16 {
	return c.geometry.majorVersion
}
