package regvm

// execMemoryBulk implements §4.7's memory-side bulk operations:
// memory.size/grow/fill/copy/init and data.drop. MemoryGrow may move the
// underlying buffer, so callers must treat any []byte obtained from
// Store.MemoryBytes before a grow as invalid afterward — regvm re-fetches
// it on the next load/store rather than caching it across instructions.
//
// dst/src/len triples take a register or an immediate operand depending on
// which of MemoryFill/MemoryFillImm (and similarly for other ops the
// translator specializes when a value is statically known, §4.7) is
// selected; copy/fill/init are atomic-all-or-nothing: bounds are checked
// before any byte is written.
func (e *Executor) execMemoryBulk(instr I) error {
	switch instr.Op {
	case OpcodeMemorySize:
		e.values.set(e.base, instr.A, VFromU32(e.store.MemorySize(e.cache.DefaultMemory)))
	case OpcodeMemoryGrow:
		prev := e.store.MemoryGrow(e.cache.DefaultMemory, e.u32(instr.B))
		e.values.set(e.base, instr.A, VFromI32(prev))
		// MemoryGrow may reallocate the backing store; sp/ip are indices
		// into the call stack and body, not into memory, so nothing here
		// needs re-seating (§9 Raw stack-pointer safety note doesn't apply
		// to memory growth, only value-stack growth).
	case OpcodeMemoryFill:
		return e.memoryFill(e.u32(instr.A), byte(e.u32(instr.B)), e.u32(instr.C))
	case OpcodeMemoryFillImm:
		return e.memoryFill(e.u32(instr.A), byte(instr.Imm), instr.Aux)
	case OpcodeMemoryCopy:
		return e.memoryCopy(e.u32(instr.A), e.u32(instr.B), e.u32(instr.C))
	case OpcodeMemoryInit:
		return e.store.MemoryInit(e.cache.DefaultMemory, e.u32(instr.A), e.u32(instr.B), e.u32(instr.C), instr.Aux)
	case OpcodeDataDrop:
		e.store.DataDrop(instr.Aux)
	}
	return nil
}

func (e *Executor) memoryFill(dst uint32, val byte, length uint32) error {
	mem := e.store.MemoryBytes(e.cache.DefaultMemory)
	if err := e.boundsCheck(mem, uint64(dst), int(length)); err != nil {
		return err
	}
	region := mem[dst : dst+length]
	for i := range region {
		region[i] = val
	}
	return nil
}

func (e *Executor) memoryCopy(dst, src, length uint32) error {
	mem := e.store.MemoryBytes(e.cache.DefaultMemory)
	if err := e.boundsCheck(mem, uint64(dst), int(length)); err != nil {
		return err
	}
	if err := e.boundsCheck(mem, uint64(src), int(length)); err != nil {
		return err
	}
	// copy handles overlap correctly regardless of direction (§4.7
	// scenario 4: MemoryCopy with overlap).
	copy(mem[dst:dst+length], mem[src:src+length])
	return nil
}
