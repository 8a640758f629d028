package cpu

// loadstore.go implements the load and store instruction families, including
// the unaligned LWL/LWR/SWL/SWR forms.
//
// Grounded on the original implementation's load/store handlers
// (core/src/cpu/cpu.rs's Load/Store match arms), re-expressed with Go's
// explicit error returns from the bus in place of the original's Result
// propagation, and the little-endian LWL/LWR/SWL/SWR byte tables from the
// MIPS I reference manual (see DESIGN.md's Open Question decision: the
// original implementation left these unimplemented).

func effAddr(cpu *CPU, ir Instruction) uint32 {
	return uint32(int32(cpu.Get(ir.Rs())) + ir.SignedImm16())
}

func (cpu *CPU) execLoad(ir Instruction, pc uint32, delaySlot bool, size int, signed bool) {
	addr := effAddr(cpu, ir)

	var (
		val uint32
		err error
	)

	switch size {
	case 1:
		var b byte
		if b, err = cpu.Bus.ReadByte(addr); err == nil {
			if signed {
				val = uint32(int32(int8(b)))
			} else {
				val = uint32(b)
			}
		}
	case 2:
		var h uint16
		if h, err = cpu.Bus.ReadHalf(addr); err == nil {
			if signed {
				val = uint32(int32(int16(h)))
			} else {
				val = uint32(h)
			}
		}
	case 4:
		val, err = cpu.Bus.ReadWord(addr)
	}

	if err != nil {
		cpu.raise(mapLoadErr(err), pc, delaySlot)
		return
	}

	cpu.scheduleLoad(ir.Rt(), val)
}

func (cpu *CPU) execStore(ir Instruction, pc uint32, delaySlot bool, size int) {
	addr := effAddr(cpu, ir)
	val := cpu.Get(ir.Rt())

	var err error

	switch size {
	case 1:
		err = cpu.Bus.WriteByte(addr, byte(val))
	case 2:
		err = cpu.Bus.WriteHalf(addr, uint16(val))
	case 4:
		err = cpu.Bus.WriteWord(addr, val)
	}

	if err != nil {
		cpu.raise(mapStoreErr(err), pc, delaySlot)
	}
}

// execLWL loads the most-significant bytes of an unaligned word into the
// high-order bytes of rt, preserving rt's low-order bytes; the merge point
// depends on the low two bits of the unaligned address.
func (cpu *CPU) execLWL(ir Instruction, pc uint32, delaySlot bool) {
	addr := effAddr(cpu, ir)

	word, err := cpu.Bus.ReadWord(addr &^ 3)
	if err != nil {
		cpu.raise(mapLoadErr(err), pc, delaySlot)
		return
	}

	rt := cpu.Get(ir.Rt())

	var merged uint32

	switch addr & 3 {
	case 0:
		merged = (rt & 0x00FFFFFF) | (word << 24)
	case 1:
		merged = (rt & 0x0000FFFF) | (word << 16)
	case 2:
		merged = (rt & 0x000000FF) | (word << 8)
	case 3:
		merged = word
	}

	cpu.scheduleLoad(ir.Rt(), merged)
}

// execLWR is LWL's mirror image: it loads the least-significant bytes of an
// unaligned word into the low-order bytes of rt.
func (cpu *CPU) execLWR(ir Instruction, pc uint32, delaySlot bool) {
	addr := effAddr(cpu, ir)

	word, err := cpu.Bus.ReadWord(addr &^ 3)
	if err != nil {
		cpu.raise(mapLoadErr(err), pc, delaySlot)
		return
	}

	rt := cpu.Get(ir.Rt())

	var merged uint32

	switch addr & 3 {
	case 0:
		merged = word
	case 1:
		merged = (rt & 0xFF000000) | (word >> 8)
	case 2:
		merged = (rt & 0xFFFF0000) | (word >> 16)
	case 3:
		merged = (rt & 0xFFFFFF00) | (word >> 24)
	}

	cpu.scheduleLoad(ir.Rt(), merged)
}

func (cpu *CPU) execSWL(ir Instruction, pc uint32, delaySlot bool) {
	addr := effAddr(cpu, ir)
	aligned := addr &^ 3

	word, err := cpu.Bus.ReadWord(aligned)
	if err != nil {
		cpu.raise(mapStoreErr(err), pc, delaySlot)
		return
	}

	rt := cpu.Get(ir.Rt())

	var merged uint32

	switch addr & 3 {
	case 0:
		merged = (word & 0xFFFFFF00) | (rt >> 24)
	case 1:
		merged = (word & 0xFFFF0000) | (rt >> 16)
	case 2:
		merged = (word & 0xFF000000) | (rt >> 8)
	case 3:
		merged = rt
	}

	if err := cpu.Bus.WriteWord(aligned, merged); err != nil {
		cpu.raise(mapStoreErr(err), pc, delaySlot)
	}
}

func (cpu *CPU) execSWR(ir Instruction, pc uint32, delaySlot bool) {
	addr := effAddr(cpu, ir)
	aligned := addr &^ 3

	word, err := cpu.Bus.ReadWord(aligned)
	if err != nil {
		cpu.raise(mapStoreErr(err), pc, delaySlot)
		return
	}

	rt := cpu.Get(ir.Rt())

	var merged uint32

	switch addr & 3 {
	case 0:
		merged = rt
	case 1:
		merged = (word & 0x000000FF) | (rt << 8)
	case 2:
		merged = (word & 0x0000FFFF) | (rt << 16)
	case 3:
		merged = (word & 0x00FFFFFF) | (rt << 24)
	}

	if err := cpu.Bus.WriteWord(aligned, merged); err != nil {
		cpu.raise(mapStoreErr(err), pc, delaySlot)
	}
}

// execLWC2 and execSWC2 move a word between memory and a coprocessor-2 (GTE)
// data register; unlike ordinary loads, the coprocessor writeback isn't
// staged through the load-delay slot, matching the GTE's synchronous
// register file.
func (cpu *CPU) execLWC2(ir Instruction, pc uint32, delaySlot bool) {
	addr := effAddr(cpu, ir)

	val, err := cpu.Bus.ReadWord(addr)
	if err != nil {
		cpu.raise(mapLoadErr(err), pc, delaySlot)
		return
	}

	if co := cpu.cop[2]; co != nil {
		co.MoveToData(ir.Rt(), val)
	}
}

func (cpu *CPU) execSWC2(ir Instruction, pc uint32, delaySlot bool) {
	addr := effAddr(cpu, ir)

	var val uint32
	if co := cpu.cop[2]; co != nil {
		val = co.MoveFromData(ir.Rt())
	}

	if err := cpu.Bus.WriteWord(addr, val); err != nil {
		cpu.raise(mapStoreErr(err), pc, delaySlot)
	}
}
