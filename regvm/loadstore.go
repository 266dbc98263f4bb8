package regvm

import "encoding/binary"

// execLoadStore implements §4.6. Addressing modes:
//   - register+16-bit-offset ("Offset16"): base register in B, offset in
//     Imm, single word.
//   - absolute address ("At"): address baked into Imm at translation time
//     (no base register), single word.
//   - register+32-bit-offset (plain, no suffix): base register in B, a
//     trailing Const32 word carries the full offset; the handler consumes
//     two words.
//
// All forms compute effective address = base + offset with both addends
// promoted to uint64 before the addition, so a base register near the top
// of the 32-bit range can never wrap back into an in-bounds address; if
// effective_address + access_size > memory size, the access traps
// MemoryOutOfBounds before any byte is touched. Byte order is
// little-endian throughout; alignment hints are not enforced (§4.6).
func (e *Executor) execLoadStore(instr I) (Outcome, bool, error) {
	mem := e.store.MemoryBytes(e.cache.DefaultMemory)

	switch instr.Op {
	// --- i32 loads ---
	case OpcodeI32Load, OpcodeI32LoadAt, OpcodeI32LoadOffset16:
		return e.load(instr, mem, 4, func(b []byte) V { return V(binary.LittleEndian.Uint32(b)) })
	case OpcodeI32Load8S, OpcodeI32Load8SAt, OpcodeI32Load8SOffset16:
		return e.load(instr, mem, 1, func(b []byte) V { return VFromI32(int32(int8(b[0]))) })
	case OpcodeI32Load8U, OpcodeI32Load8UAt, OpcodeI32Load8UOffset16:
		return e.load(instr, mem, 1, func(b []byte) V { return VFromU32(uint32(b[0])) })
	case OpcodeI32Load16S, OpcodeI32Load16SAt, OpcodeI32Load16SOffset16:
		return e.load(instr, mem, 2, func(b []byte) V { return VFromI32(int32(int16(binary.LittleEndian.Uint16(b)))) })
	case OpcodeI32Load16U, OpcodeI32Load16UAt, OpcodeI32Load16UOffset16:
		return e.load(instr, mem, 2, func(b []byte) V { return VFromU32(uint32(binary.LittleEndian.Uint16(b))) })

	// --- i64 loads ---
	case OpcodeI64Load, OpcodeI64LoadAt, OpcodeI64LoadOffset16:
		return e.load(instr, mem, 8, func(b []byte) V { return V(binary.LittleEndian.Uint64(b)) })
	case OpcodeI64Load8S, OpcodeI64Load8SAt, OpcodeI64Load8SOffset16:
		return e.load(instr, mem, 1, func(b []byte) V { return VFromI64(int64(int8(b[0]))) })
	case OpcodeI64Load8U, OpcodeI64Load8UAt, OpcodeI64Load8UOffset16:
		return e.load(instr, mem, 1, func(b []byte) V { return VFromU64(uint64(b[0])) })
	case OpcodeI64Load16S, OpcodeI64Load16SAt, OpcodeI64Load16SOffset16:
		return e.load(instr, mem, 2, func(b []byte) V { return VFromI64(int64(int16(binary.LittleEndian.Uint16(b)))) })
	case OpcodeI64Load16U, OpcodeI64Load16UAt, OpcodeI64Load16UOffset16:
		return e.load(instr, mem, 2, func(b []byte) V { return VFromU64(uint64(binary.LittleEndian.Uint16(b))) })
	case OpcodeI64Load32S, OpcodeI64Load32SAt, OpcodeI64Load32SOffset16:
		return e.load(instr, mem, 4, func(b []byte) V { return VFromI64(int64(int32(binary.LittleEndian.Uint32(b)))) })
	case OpcodeI64Load32U, OpcodeI64Load32UAt, OpcodeI64Load32UOffset16:
		return e.load(instr, mem, 4, func(b []byte) V { return VFromU64(uint64(binary.LittleEndian.Uint32(b))) })

	// --- float loads ---
	case OpcodeF32Load, OpcodeF32LoadAt, OpcodeF32LoadOffset16:
		return e.load(instr, mem, 4, func(b []byte) V { return V(binary.LittleEndian.Uint32(b)) })
	case OpcodeF64Load, OpcodeF64LoadAt, OpcodeF64LoadOffset16:
		return e.load(instr, mem, 8, func(b []byte) V { return V(binary.LittleEndian.Uint64(b)) })

	// --- i32 stores ---
	case OpcodeI32Store, OpcodeI32StoreAt, OpcodeI32StoreOffset16:
		return e.store4(instr, mem, e.u32(instr.C))
	case OpcodeI32StoreImm, OpcodeI32StoreImmAt, OpcodeI32StoreImmOffset16:
		return e.store4(instr, mem, uint32(instr.Imm))
	case OpcodeI32Store8, OpcodeI32Store8At, OpcodeI32Store8Offset16:
		return e.store1(instr, mem, byte(e.u32(instr.C)))
	case OpcodeI32Store8Imm:
		return e.store1(instr, mem, byte(instr.Imm))
	case OpcodeI32Store16, OpcodeI32Store16At, OpcodeI32Store16Offset16:
		return e.store2(instr, mem, uint16(e.u32(instr.C)))
	case OpcodeI32Store16Imm:
		return e.store2(instr, mem, uint16(instr.Imm))

	// --- i64 stores ---
	case OpcodeI64Store, OpcodeI64StoreAt, OpcodeI64StoreOffset16:
		return e.store8(instr, mem, e.u64(instr.C))
	case OpcodeI64StoreImm32, OpcodeI64StoreImm32At, OpcodeI64StoreImm32Offset16:
		return e.store8(instr, mem, uint64(int64(int32(instr.Imm))))
	case OpcodeI64Store8, OpcodeI64Store8At, OpcodeI64Store8Offset16:
		return e.store1(instr, mem, byte(e.u64(instr.C)))
	case OpcodeI64Store16, OpcodeI64Store16At, OpcodeI64Store16Offset16:
		return e.store2(instr, mem, uint16(e.u64(instr.C)))
	case OpcodeI64Store32, OpcodeI64Store32At, OpcodeI64Store32Offset16:
		return e.store4(instr, mem, uint32(e.u64(instr.C)))

	// --- float stores ---
	case OpcodeF32Store, OpcodeF32StoreAt, OpcodeF32StoreOffset16:
		return e.store4(instr, mem, e.u32(instr.C))
	case OpcodeF64Store, OpcodeF64StoreAt, OpcodeF64StoreOffset16:
		return e.store8(instr, mem, e.u64(instr.C))
	}
	return 0, true, errUnreachableCodeReached
}

// isExtendedAddressing reports whether op addresses memory via a trailing Const32
// word (the register+32-bit-offset form) rather than a baked-in 16-bit
// immediate or absolute address; extended forms consume two instruction
// words instead of one (§4.6).
func isExtendedAddressing(op Opcode) bool {
	switch op {
	case OpcodeI32Load, OpcodeI32Load8S, OpcodeI32Load8U, OpcodeI32Load16S, OpcodeI32Load16U,
		OpcodeI64Load, OpcodeI64Load8S, OpcodeI64Load8U, OpcodeI64Load16S, OpcodeI64Load16U,
		OpcodeI64Load32S, OpcodeI64Load32U, OpcodeF32Load, OpcodeF64Load,
		OpcodeI32Store, OpcodeI32StoreImm, OpcodeI32Store8, OpcodeI32Store16,
		OpcodeI64Store, OpcodeI64StoreImm32, OpcodeI64Store8, OpcodeI64Store16, OpcodeI64Store32,
		OpcodeF32Store, OpcodeF64Store:
		return true
	}
	return false
}

// isAbsoluteAddressing reports whether op's address is a translation-time
// constant baked into Imm, with no base register involved at all.
func isAbsoluteAddressing(op Opcode) bool {
	switch op {
	case OpcodeI32LoadAt, OpcodeI32Load8SAt, OpcodeI32Load8UAt, OpcodeI32Load16SAt, OpcodeI32Load16UAt,
		OpcodeI64LoadAt, OpcodeI64Load8SAt, OpcodeI64Load8UAt, OpcodeI64Load16SAt, OpcodeI64Load16UAt,
		OpcodeI64Load32SAt, OpcodeI64Load32UAt, OpcodeF32LoadAt, OpcodeF64LoadAt,
		OpcodeI32StoreAt, OpcodeI32StoreImmAt, OpcodeI32Store8At, OpcodeI32Store16At,
		OpcodeI64StoreAt, OpcodeI64StoreImm32At, OpcodeI64Store8At, OpcodeI64Store16At, OpcodeI64Store32At,
		OpcodeF32StoreAt, OpcodeF64StoreAt:
		return true
	}
	return false
}

// effectiveAddress resolves base+offset for instr and reports how many
// instruction words it occupied (1, or 2 for extended forms). The result is
// a uint64: both the base register and the offset are promoted before the
// addition, matching memory.go/table.go's bulk-op convention, so the sum
// itself can never wrap modulo 2^32 ahead of boundsCheck.
func (e *Executor) effectiveAddress(instr I) (addr uint64, words int) {
	switch {
	case isAbsoluteAddressing(instr.Op):
		return uint64(uint32(instr.Imm)), 1
	case isExtendedAddressing(instr.Op):
		offset := e.trailer(1).Aux
		return uint64(e.u32(instr.B)) + uint64(offset), 2
	default: // register + 16-bit offset
		return uint64(e.u32(instr.B)) + uint64(uint16(instr.Imm)), 1
	}
}

// boundsCheck rejects any access, including one whose addr already exceeds
// the uint32 range, before a single byte is touched.
func (e *Executor) boundsCheck(mem []byte, addr uint64, size int) error {
	if addr+uint64(size) > uint64(len(mem)) {
		return errMemoryOutOfBounds
	}
	return nil
}

func (e *Executor) load(instr I, mem []byte, size int, decode func([]byte) V) (Outcome, bool, error) {
	addr, words := e.effectiveAddress(instr)
	if err := e.boundsCheck(mem, addr, size); err != nil {
		return 0, true, err
	}
	e.values.set(e.base, instr.A, decode(mem[addr:addr+uint64(size)]))
	e.next(words)
	return 0, false, nil
}

func (e *Executor) store1(instr I, mem []byte, v byte) (Outcome, bool, error) {
	addr, words := e.effectiveAddress(instr)
	if err := e.boundsCheck(mem, addr, 1); err != nil {
		return 0, true, err
	}
	mem[addr] = v
	e.next(words)
	return 0, false, nil
}

func (e *Executor) store2(instr I, mem []byte, v uint16) (Outcome, bool, error) {
	addr, words := e.effectiveAddress(instr)
	if err := e.boundsCheck(mem, addr, 2); err != nil {
		return 0, true, err
	}
	binary.LittleEndian.PutUint16(mem[addr:], v)
	e.next(words)
	return 0, false, nil
}

func (e *Executor) store4(instr I, mem []byte, v uint32) (Outcome, bool, error) {
	addr, words := e.effectiveAddress(instr)
	if err := e.boundsCheck(mem, addr, 4); err != nil {
		return 0, true, err
	}
	binary.LittleEndian.PutUint32(mem[addr:], v)
	e.next(words)
	return 0, false, nil
}

func (e *Executor) store8(instr I, mem []byte, v uint64) (Outcome, bool, error) {
	addr, words := e.effectiveAddress(instr)
	if err := e.boundsCheck(mem, addr, 8); err != nil {
		return 0, true, err
	}
	binary.LittleEndian.PutUint64(mem[addr:], v)
	e.next(words)
	return 0, false, nil
}
