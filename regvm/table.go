package regvm

// execTableBulk implements §4.7's table-side bulk operations, mirroring
// memory.go's structure: table.get/set/size/grow/fill/copy/init and
// elem.drop. Like MemoryGrow, TableGrow may relocate the table; regvm
// re-resolves the table handle through the Store on every access rather
// than caching a view of it.
func (e *Executor) execTableBulk(instr I) error {
	switch instr.Op {
	case OpcodeTableGet:
		v, err := e.store.TableGet(e.cache.DefaultTable, e.u32(instr.B))
		if err != nil {
			return err
		}
		e.values.set(e.base, instr.A, v)
	case OpcodeTableGetImm:
		v, err := e.store.TableGet(e.cache.DefaultTable, instr.Aux)
		if err != nil {
			return err
		}
		e.values.set(e.base, instr.A, v)
	case OpcodeTableSet:
		return e.store.TableSet(e.cache.DefaultTable, e.u32(instr.A), e.values.at(e.base, instr.B))
	case OpcodeTableSetImm:
		return e.store.TableSet(e.cache.DefaultTable, instr.Aux, e.values.at(e.base, instr.A))
	case OpcodeTableSize:
		e.values.set(e.base, instr.A, VFromU32(e.store.TableSize(e.cache.DefaultTable)))
	case OpcodeTableGrow:
		prev := e.store.TableGrow(e.cache.DefaultTable, e.u32(instr.B), e.values.at(e.base, instr.C))
		e.values.set(e.base, instr.A, VFromI32(prev))
	case OpcodeTableFill:
		return e.tableFill(e.u32(instr.A), e.values.at(e.base, instr.B), e.u32(instr.C))
	case OpcodeTableCopy:
		return e.tableCopy(e.u32(instr.A), e.u32(instr.B), e.u32(instr.C))
	case OpcodeTableInit:
		return e.store.TableInit(e.cache.DefaultTable, e.u32(instr.A), e.u32(instr.B), e.u32(instr.C), instr.Aux)
	case OpcodeElemDrop:
		e.store.ElemDrop(instr.Aux)
	}
	return nil
}

func (e *Executor) tableFill(dst uint32, val V, length uint32) error {
	size := e.store.TableSize(e.cache.DefaultTable)
	if uint64(dst)+uint64(length) > uint64(size) {
		return errTableOutOfBounds
	}
	for i := uint32(0); i < length; i++ {
		if err := e.store.TableSet(e.cache.DefaultTable, dst+i, val); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) tableCopy(dst, src, length uint32) error {
	size := e.store.TableSize(e.cache.DefaultTable)
	if uint64(dst)+uint64(length) > uint64(size) || uint64(src)+uint64(length) > uint64(size) {
		return errTableOutOfBounds
	}
	// Snapshot the source range before writing so an overlapping copy
	// never reads back a value this same op already wrote, matching
	// MemoryCopy's atomic-all-or-nothing intent for the table side too.
	buf := make([]V, length)
	for i := uint32(0); i < length; i++ {
		v, err := e.store.TableGet(e.cache.DefaultTable, src+i)
		if err != nil {
			return err
		}
		buf[i] = v
	}
	for i, v := range buf {
		if err := e.store.TableSet(e.cache.DefaultTable, dst+uint32(i), v); err != nil {
			return err
		}
	}
	return nil
}
