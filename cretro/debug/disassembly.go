package debug

import (
	"github.com/valerio/go-cretro/cretro/disasm"
)

type DisasmLine struct {
	Address     uint16
	Instruction string
	IsCurrent   bool
}

// CreateDisassembly disassembles the snapshot and returns at most maxLines
// lines, centered on pc when it lies inside the snapshot.
func CreateDisassembly(snapshot *MemorySnapshot, pc uint16, maxLines int) []DisasmLine {
	if snapshot == nil || maxLines <= 0 {
		return nil
	}

	all := make([]DisasmLine, 0, len(snapshot.Bytes)/disasm.InstructionSize+1)
	pcIndex := -1
	for offset := 0; offset < len(snapshot.Bytes); {
		address := snapshot.StartAddr + uint16(offset)
		text, length := disasm.DisassembleBytes(snapshot.Bytes, offset)
		if address == pc {
			pcIndex = len(all)
		}
		all = append(all, DisasmLine{
			Address:     address,
			Instruction: text,
			IsCurrent:   address == pc,
		})
		offset += length
	}

	if pcIndex < 0 {
		if len(all) >= maxLines {
			all = all[:maxLines-1]
		}
		return append(all, DisasmLine{
			Address:     pc,
			Instruction: "[PC outside snapshot range]",
			IsCurrent:   true,
		})
	}

	start := pcIndex - maxLines/2
	if start < 0 {
		start = 0
	}
	end := start + maxLines
	if end > len(all) {
		end = len(all)
		start = max(end-maxLines, 0)
	}
	return all[start:end]
}
