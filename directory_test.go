package mscfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNameASCII(t *testing.T) {
	var raw [64]byte
	name := "Hello"
	for i, r := range name {
		raw[i*2] = byte(r)
	}
	// length counts the trailing NUL code unit too.
	assert.Equal(t, "Hello", decodeName(raw, uint16((len(name)+1)*2)))
}

// TestDecodeNameNonASCII guards against the "every other byte" shortcut
// the original source used in place of real UTF-16 decoding (spec.md
// §9): a non-Latin-1 code unit must survive intact, not get truncated
// to its low byte.
func TestDecodeNameNonASCII(t *testing.T) {
	var raw [64]byte
	// U+6F22 (漢), U+5B57 (字), little-endian.
	units := []uint16{0x6F22, 0x5B57}
	for i, u := range units {
		raw[i*2] = byte(u)
		raw[i*2+1] = byte(u >> 8)
	}
	got := decodeName(raw, uint16((len(units)+1)*2))
	assert.Equal(t, "漢字", got)
}

func TestDecodeNameEmpty(t *testing.T) {
	var raw [64]byte
	assert.Equal(t, "", decodeName(raw, 0))
}

func TestFiletimeToTimeZero(t *testing.T) {
	assert.True(t, filetimeToTime(0).IsZero())
}

func TestFiletimeToTimeEpoch(t *testing.T) {
	// 1970-01-01 00:00:00 UTC, the Unix epoch: ticks == the epoch
	// difference, so the converted Unix offset is zero.
	tm := filetimeToTime(116444736000000000)
	assert.Equal(t, int64(0), tm.Unix())
}

func TestAttachChainsSkipsStorageAndUnknown(t *testing.T) {
	c := &Container{
		fat:      []uint32{endOfChain},
		miniFAT:  []uint32{endOfChain},
		geometry: geometry{majorVersion: 3, sectorSize: 512, entriesPerSector: 128, dirEntriesPer: 4},
	}
	storage := &DirectoryEntry{ObjectType: Storage, StartSector: decodeSectorID(0)}
	unknown := &DirectoryEntry{ObjectType: Unknown, StartSector: decodeSectorID(0)}
	entries := []*DirectoryEntry{storage, unknown}
	require := assert.New(t)
	require.NoError(c.attachChains(entries))
	require.Nil(storage.Chain)
	require.Nil(unknown.Chain)
}

func TestAttachChainsRootStorageUsesFAT(t *testing.T) {
	c := &Container{
		fat:      []uint32{endOfChain},
		geometry: geometry{majorVersion: 3, sectorSize: 512, entriesPerSector: 128, dirEntriesPer: 4},
	}
	root := &DirectoryEntry{ObjectType: RootStorage, StartSector: decodeSectorID(0)}
	entries := []*DirectoryEntry{root}
	assert.NoError(t, c.attachChains(entries))
	assert.Equal(t, []uint32{0}, root.rawChain)
	assert.Len(t, root.Chain, 1)
}
