package mscfb

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// headerConfig describes the fields needed to build a synthetic 512-byte
// CFB header region for tests. Fields not listed take their required
// fixed values (magic, BOM, mini sector shift, mini stream cutoff).
type headerConfig struct {
	major              uint16
	numDirSectors      uint32
	numFATSectors      uint32
	firstDirSector     uint32
	firstMiniFATSector uint32
	numMiniFATSectors  uint32
	firstDIFATSector   uint32
	numDIFATSectors    uint32
	inlineDIFAT        [109]uint32
}

func buildHeaderBytes(cfg headerConfig) []byte {
	buf := new(bytes.Buffer)
	buf.Write(cfbSignature[:])
	buf.Write(make([]byte, 16)) // CLSID, zero
	binary.Write(buf, binary.LittleEndian, uint16(0x003E))
	binary.Write(buf, binary.LittleEndian, cfg.major)
	binary.Write(buf, binary.LittleEndian, uint16(0xFFFE))
	var shift uint16
	if cfg.major == 4 {
		shift = 12
	} else {
		shift = 9
	}
	binary.Write(buf, binary.LittleEndian, shift)
	binary.Write(buf, binary.LittleEndian, uint16(6))
	buf.Write(make([]byte, 6)) // reserved
	binary.Write(buf, binary.LittleEndian, cfg.numDirSectors)
	binary.Write(buf, binary.LittleEndian, cfg.numFATSectors)
	binary.Write(buf, binary.LittleEndian, cfg.firstDirSector)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // transaction signature
	binary.Write(buf, binary.LittleEndian, uint32(miniStreamCutoffSize))
	binary.Write(buf, binary.LittleEndian, cfg.firstMiniFATSector)
	binary.Write(buf, binary.LittleEndian, cfg.numMiniFATSectors)
	binary.Write(buf, binary.LittleEndian, cfg.firstDIFATSector)
	binary.Write(buf, binary.LittleEndian, cfg.numDIFATSectors)
	for _, v := range cfg.inlineDIFAT {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// freeFilledDIFAT returns a 109-entry inline DIFAT with only the leading
// regular entries set; the remainder is Free padding.
func freeFilledDIFAT(regular ...uint32) [109]uint32 {
	var d [109]uint32
	for i := range d {
		d[i] = freeSect
	}
	copy(d[:], regular)
	return d
}

type dirEntryConfig struct {
	name        string
	objectType  uint8
	color       uint8
	left        uint32
	right       uint32
	child       uint32
	startSector uint32
	streamSize  uint64
}

func buildDirEntryBytes(cfg dirEntryConfig) []byte {
	buf := new(bytes.Buffer)
	raw := make([]byte, 64)
	units := utf16.Encode([]rune(cfg.name))
	for i, u := range units {
		binary.LittleEndian.PutUint16(raw[i*2:], u)
	}
	buf.Write(raw)
	nameLen := uint16(0)
	if len(units) > 0 {
		nameLen = uint16((len(units) + 1) * 2)
	}
	binary.Write(buf, binary.LittleEndian, nameLen)
	buf.WriteByte(cfg.objectType)
	buf.WriteByte(cfg.color)
	binary.Write(buf, binary.LittleEndian, cfg.left)
	binary.Write(buf, binary.LittleEndian, cfg.right)
	binary.Write(buf, binary.LittleEndian, cfg.child)
	buf.Write(make([]byte, 16)) // CLSID
	binary.Write(buf, binary.LittleEndian, uint32(0))
	binary.Write(buf, binary.LittleEndian, uint64(0))
	binary.Write(buf, binary.LittleEndian, uint64(0))
	binary.Write(buf, binary.LittleEndian, cfg.startSector)
	binary.Write(buf, binary.LittleEndian, cfg.streamSize)
	return buf.Bytes()
}

func unusedDirEntryBytes() []byte {
	return buildDirEntryBytes(dirEntryConfig{left: noStream, right: noStream, child: noStream})
}

func uint32sToSector(vals []uint32, sectorSize uint32) []byte {
	out := make([]byte, sectorSize)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], v)
	}
	return out
}

// tableSector builds a full allocation-table sector (FAT, mini-FAT, or
// DIFAT-without-next), with leading explicitly given and the remaining
// slots padded with Free.
func tableSector(leading []uint32, entriesPerSector uint32) []byte {
	vals := make([]uint32, entriesPerSector)
	for i := range vals {
		vals[i] = freeSect
	}
	copy(vals, leading)
	return uint32sToSector(vals, entriesPerSector*4)
}

func padTo(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	out := make([]byte, size)
	copy(out, b)
	return out
}

// memSource is a minimal Source backed by an in-memory byte slice.
type memSource struct {
	buf []byte
}

func (m *memSource) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, m.buf[off:])
	return n, nil
}

func (m *memSource) Size() int64 { return int64(len(m.buf)) }
