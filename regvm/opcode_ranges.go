package regvm

// These helpers partition the Opcode space into the families §4 documents.
// Opcodes were declared in contiguous iota blocks per family in instr.go
// specifically so that membership collapses to one range check each,
// keeping the dispatch loop's default arm (executor.go step) a short
// chain instead of a second giant switch.

func (e *Executor) isFusedBranch(op Opcode) bool {
	return op >= OpcodeBranchI32Eq && op <= OpcodeBranchI32XorEqzImm
}

func (e *Executor) isCompare(op Opcode) bool {
	return op >= OpcodeI32Eq && op <= OpcodeF64Ge
}

func (e *Executor) isArith(op Opcode) bool {
	return op >= OpcodeI32Add && op <= OpcodeF64Nearest
}

func (e *Executor) isConvert(op Opcode) bool {
	return op >= OpcodeI32WrapI64 && op <= OpcodeF64ReinterpretI64
}

func (e *Executor) isCopySelectGlobalRef(op Opcode) bool {
	return op >= OpcodeCopy && op <= OpcodeRefNull
}

func (e *Executor) isLoadStore(op Opcode) bool {
	return op >= OpcodeI32Load && op <= OpcodeF64StoreOffset16
}

func (e *Executor) isMemoryBulk(op Opcode) bool {
	return op >= OpcodeMemorySize && op <= OpcodeDataDrop
}

func (e *Executor) isTableBulk(op Opcode) bool {
	return op >= OpcodeTableGet && op <= OpcodeElemDrop
}

func (e *Executor) isCall(op Opcode) bool {
	return op >= OpcodeCallInternal0 && op <= OpcodeReturnCallIndirect
}
