package debug

import "github.com/valerio/go-cretro/cretro/addr"

// MemoryReader provides read-only access to emulator memory for debug tools
type MemoryReader interface {
	Read(addr uint16) uint8
}

// SnapshotAround copies memory from before bytes ahead of pc to after bytes
// past it, clamped to the address space. The start stays instruction aligned
// relative to pc.
func SnapshotAround(reader MemoryReader, pc uint16, before, after int) *MemorySnapshot {
	start := int(pc) - before
	if start < 0 {
		start = int(pc) % 2
	}
	if (int(pc)-start)%2 != 0 {
		start++
	}
	end := int(pc) + after
	if end > int(addr.MaxAddress) {
		end = int(addr.MaxAddress)
	}
	if end < start {
		end = start
	}

	snapshot := &MemorySnapshot{
		StartAddr: uint16(start),
		Bytes:     make([]uint8, 0, end-start+1),
	}
	for a := start; a <= end; a++ {
		snapshot.Bytes = append(snapshot.Bytes, reader.Read(uint16(a)))
	}
	return snapshot
}
