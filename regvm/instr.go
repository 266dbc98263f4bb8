package regvm

// Opcode tags an instruction word. Go has no tagged-union type, so — as the
// teacher's ssa.Instruction does for its ~200 SSA opcodes — every
// instruction is represented by one flattened struct (I, below) whose
// fields are reinterpreted according to Opcode.
type Opcode uint16

const (
	_ Opcode = iota

	// --- trailer / parameter words: never dispatched directly. Reaching
	// one in the dispatch position traps UnreachableCodeReached (§4.1). ---

	// OpcodeParamRegister carries a single trailing register operand.
	OpcodeParamRegister
	// OpcodeParamRegister2 carries two trailing register operands.
	OpcodeParamRegister2
	// OpcodeParamRegister3 carries up to three trailing register operands,
	// also used to pack RegisterList/CallParams continuations
	// (copy_select_global_ref.go regListWords).
	OpcodeParamRegister3
	// OpcodeParamConst32 carries a 32-bit immediate, used by
	// extended-offset loads/stores (§4.6). Imm32 return/const forms carry
	// their value in the head word's Imm instead.
	OpcodeParamConst32
	// OpcodeParamCallIndirectParams carries (table, expected signature)
	// for an indirect call head (§4.8).
	OpcodeParamCallIndirectParams
	// OpcodeParamBranchTableTarget carries one branch-table target offset.
	OpcodeParamBranchTableTarget

	// --- control / dispatch-loop bookkeeping ---

	// OpcodeTrap unconditionally traps with the code carried in Aux.
	OpcodeTrap
	// OpcodeConsumeFuel subtracts Imm fuel units from the store's fuel
	// counter, trapping OutOfFuel on underflow (§4.9).
	OpcodeConsumeFuel

	// --- return family (§4.8 Return, supplemented per original_source
	// split by register count and immediate encoding width). ReturnNez*
	// forms test A as a condition register before returning, which shifts
	// their value operands over one slot relative to the unconditional
	// forms (call.go collectReturnValues). ---

	OpcodeReturn
	OpcodeReturnReg
	OpcodeReturnReg2
	OpcodeReturnReg3
	OpcodeReturnImm32
	OpcodeReturnI64Imm32
	OpcodeReturnF64Imm32
	OpcodeReturnSpan
	OpcodeReturnMany
	OpcodeReturnNez
	OpcodeReturnNezReg
	OpcodeReturnNezReg2
	OpcodeReturnNezImm32
	OpcodeReturnNezSpan
	OpcodeReturnNezMany

	// --- branch / branch table (§4.4) ---

	OpcodeBranch
	OpcodeBranchTable0
	OpcodeBranchTable1
	OpcodeBranchTable2
	OpcodeBranchTable3
	OpcodeBranchTableSpan
	OpcodeBranchTableMany

	// --- fused compare-branch (§4.3): one opcode per (type, comparator),
	// each with a register-register and register-immediate form, plus a
	// fallback and the boolean-triple fused forms. ---

	OpcodeBranchCmpFallback

	OpcodeBranchI32Eq
	OpcodeBranchI32EqImm
	OpcodeBranchI32Ne
	OpcodeBranchI32NeImm
	OpcodeBranchI32LtS
	OpcodeBranchI32LtSImm
	OpcodeBranchI32LtU
	OpcodeBranchI32LtUImm
	OpcodeBranchI32LeS
	OpcodeBranchI32LeSImm
	OpcodeBranchI32LeU
	OpcodeBranchI32LeUImm
	OpcodeBranchI32GtS
	OpcodeBranchI32GtSImm
	OpcodeBranchI32GtU
	OpcodeBranchI32GtUImm
	OpcodeBranchI32GeS
	OpcodeBranchI32GeSImm
	OpcodeBranchI32GeU
	OpcodeBranchI32GeUImm

	OpcodeBranchI64Eq
	OpcodeBranchI64EqImm
	OpcodeBranchI64Ne
	OpcodeBranchI64NeImm
	OpcodeBranchI64LtS
	OpcodeBranchI64LtSImm
	OpcodeBranchI64LtU
	OpcodeBranchI64LtUImm
	OpcodeBranchI64LeS
	OpcodeBranchI64LeSImm
	OpcodeBranchI64LeU
	OpcodeBranchI64LeUImm
	OpcodeBranchI64GtS
	OpcodeBranchI64GtSImm
	OpcodeBranchI64GtU
	OpcodeBranchI64GtUImm
	OpcodeBranchI64GeS
	OpcodeBranchI64GeSImm
	OpcodeBranchI64GeU
	OpcodeBranchI64GeUImm

	OpcodeBranchF32Eq
	OpcodeBranchF32Ne
	OpcodeBranchF32Lt
	OpcodeBranchF32Le
	OpcodeBranchF32Gt
	OpcodeBranchF32Ge
	OpcodeBranchF64Eq
	OpcodeBranchF64Ne
	OpcodeBranchF64Lt
	OpcodeBranchF64Le
	OpcodeBranchF64Gt
	OpcodeBranchF64Ge

	OpcodeBranchI32And
	OpcodeBranchI32AndImm
	OpcodeBranchI32Or
	OpcodeBranchI32OrImm
	OpcodeBranchI32Xor
	OpcodeBranchI32XorImm
	OpcodeBranchI32AndEqz
	OpcodeBranchI32AndEqzImm
	OpcodeBranchI32OrEqz
	OpcodeBranchI32OrEqzImm
	OpcodeBranchI32XorEqz
	OpcodeBranchI32XorEqzImm

	// --- plain comparisons, producing an i32 0/1 (§4.3) ---

	OpcodeI32Eq
	OpcodeI32EqImm
	OpcodeI32Ne
	OpcodeI32NeImm
	OpcodeI32LtS
	OpcodeI32LtSImm
	OpcodeI32LtU
	OpcodeI32LtUImm
	OpcodeI32LeS
	OpcodeI32LeSImm
	OpcodeI32LeU
	OpcodeI32LeUImm
	OpcodeI32GtS
	OpcodeI32GtSImm
	OpcodeI32GtU
	OpcodeI32GtUImm
	OpcodeI32GeS
	OpcodeI32GeSImm
	OpcodeI32GeU
	OpcodeI32GeUImm
	OpcodeI32Eqz

	OpcodeI64Eq
	OpcodeI64EqImm
	OpcodeI64Ne
	OpcodeI64NeImm
	OpcodeI64LtS
	OpcodeI64LtSImm
	OpcodeI64LtU
	OpcodeI64LtUImm
	OpcodeI64LeS
	OpcodeI64LeSImm
	OpcodeI64LeU
	OpcodeI64LeUImm
	OpcodeI64GtS
	OpcodeI64GtSImm
	OpcodeI64GtU
	OpcodeI64GtUImm
	OpcodeI64GeS
	OpcodeI64GeSImm
	OpcodeI64GeU
	OpcodeI64GeUImm
	OpcodeI64Eqz

	OpcodeF32Eq
	OpcodeF32Ne
	OpcodeF32Lt
	OpcodeF32Le
	OpcodeF32Gt
	OpcodeF32Ge
	OpcodeF64Eq
	OpcodeF64Ne
	OpcodeF64Lt
	OpcodeF64Le
	OpcodeF64Gt
	OpcodeF64Ge

	// --- arithmetic / bitwise / shift / rotate (§4.2), each with a
	// register-register form and, for non-commutative ops, both an
	// immediate and a reversed-immediate form. ---

	OpcodeI32Add
	OpcodeI32AddImm
	OpcodeI32Sub
	OpcodeI32SubImm
	OpcodeI32SubImmRev
	OpcodeI32Mul
	OpcodeI32MulImm
	OpcodeI32DivS
	OpcodeI32DivSImm
	OpcodeI32DivSImmRev
	OpcodeI32DivU
	OpcodeI32DivUImm
	OpcodeI32DivUImmRev
	OpcodeI32RemS
	OpcodeI32RemSImm
	OpcodeI32RemSImmRev
	OpcodeI32RemU
	OpcodeI32RemUImm
	OpcodeI32RemUImmRev
	OpcodeI32And
	OpcodeI32AndImm
	OpcodeI32Or
	OpcodeI32OrImm
	OpcodeI32Xor
	OpcodeI32XorImm
	OpcodeI32Shl
	OpcodeI32ShlImm
	OpcodeI32ShlImmRev
	OpcodeI32ShrS
	OpcodeI32ShrSImm
	OpcodeI32ShrSImmRev
	OpcodeI32ShrU
	OpcodeI32ShrUImm
	OpcodeI32ShrUImmRev
	OpcodeI32Rotl
	OpcodeI32RotlImm
	OpcodeI32RotlImmRev
	OpcodeI32Rotr
	OpcodeI32RotrImm
	OpcodeI32RotrImmRev
	OpcodeI32Clz
	OpcodeI32Ctz
	OpcodeI32Popcnt

	OpcodeI64Add
	OpcodeI64AddImm
	OpcodeI64Sub
	OpcodeI64SubImm
	OpcodeI64SubImmRev
	OpcodeI64Mul
	OpcodeI64MulImm
	OpcodeI64DivS
	OpcodeI64DivSImm
	OpcodeI64DivSImmRev
	OpcodeI64DivU
	OpcodeI64DivUImm
	OpcodeI64DivUImmRev
	OpcodeI64RemS
	OpcodeI64RemSImm
	OpcodeI64RemSImmRev
	OpcodeI64RemU
	OpcodeI64RemUImm
	OpcodeI64RemUImmRev
	OpcodeI64And
	OpcodeI64AndImm
	OpcodeI64Or
	OpcodeI64OrImm
	OpcodeI64Xor
	OpcodeI64XorImm
	OpcodeI64Shl
	OpcodeI64ShlImm
	OpcodeI64ShlImmRev
	OpcodeI64ShrS
	OpcodeI64ShrSImm
	OpcodeI64ShrSImmRev
	OpcodeI64ShrU
	OpcodeI64ShrUImm
	OpcodeI64ShrUImmRev
	OpcodeI64Rotl
	OpcodeI64RotlImm
	OpcodeI64RotlImmRev
	OpcodeI64Rotr
	OpcodeI64RotrImm
	OpcodeI64RotrImmRev
	OpcodeI64Clz
	OpcodeI64Ctz
	OpcodeI64Popcnt

	OpcodeF32Add
	OpcodeF32Sub
	OpcodeF32Mul
	OpcodeF32Div
	OpcodeF32Min
	OpcodeF32Max
	OpcodeF32Copysign
	OpcodeF32Abs
	OpcodeF32Neg
	OpcodeF32Sqrt
	OpcodeF32Ceil
	OpcodeF32Floor
	OpcodeF32Trunc
	OpcodeF32Nearest

	OpcodeF64Add
	OpcodeF64Sub
	OpcodeF64Mul
	OpcodeF64Div
	OpcodeF64Min
	OpcodeF64Max
	OpcodeF64Copysign
	OpcodeF64Abs
	OpcodeF64Neg
	OpcodeF64Sqrt
	OpcodeF64Ceil
	OpcodeF64Floor
	OpcodeF64Trunc
	OpcodeF64Nearest

	// --- conversions (§4.2) ---

	OpcodeI32WrapI64
	OpcodeI64ExtendI32S
	OpcodeI64ExtendI32U
	OpcodeI32Extend8S
	OpcodeI32Extend16S
	OpcodeI64Extend8S
	OpcodeI64Extend16S
	OpcodeI64Extend32S
	OpcodeF32DemoteF64
	OpcodeF64PromoteF32
	OpcodeF32ConvertI32S
	OpcodeF32ConvertI32U
	OpcodeF32ConvertI64S
	OpcodeF32ConvertI64U
	OpcodeF64ConvertI32S
	OpcodeF64ConvertI32U
	OpcodeF64ConvertI64S
	OpcodeF64ConvertI64U
	OpcodeI32TruncF32S
	OpcodeI32TruncF32U
	OpcodeI32TruncF64S
	OpcodeI32TruncF64U
	OpcodeI64TruncF32S
	OpcodeI64TruncF32U
	OpcodeI64TruncF64S
	OpcodeI64TruncF64U
	OpcodeI32TruncSatF32S
	OpcodeI32TruncSatF32U
	OpcodeI32TruncSatF64S
	OpcodeI32TruncSatF64U
	OpcodeI64TruncSatF32S
	OpcodeI64TruncSatF32U
	OpcodeI64TruncSatF64S
	OpcodeI64TruncSatF64U
	OpcodeI32ReinterpretF32
	OpcodeI64ReinterpretF64
	OpcodeF32ReinterpretI32
	OpcodeF64ReinterpretI64

	// --- copy / select / global / ref (§4.5) ---

	OpcodeCopy
	OpcodeCopyImm32
	OpcodeCopySpan
	OpcodeCopySpanNonOverlapping
	OpcodeCopyMany

	OpcodeSelect
	OpcodeSelectImm

	OpcodeGlobalGet
	OpcodeGlobalSet
	OpcodeGlobalSetImm16

	OpcodeRefFunc
	OpcodeRefIsNull
	OpcodeRefNull

	// --- loads/stores (§4.6): one opcode per (type, width/sign, addressing
	// mode). The register+16-bit-offset and absolute-address forms are
	// single word; the extended-offset forms consume a Const32 trailer. ---

	OpcodeI32Load
	OpcodeI32LoadAt
	OpcodeI32LoadOffset16
	OpcodeI32Load8S
	OpcodeI32Load8SAt
	OpcodeI32Load8SOffset16
	OpcodeI32Load8U
	OpcodeI32Load8UAt
	OpcodeI32Load8UOffset16
	OpcodeI32Load16S
	OpcodeI32Load16SAt
	OpcodeI32Load16SOffset16
	OpcodeI32Load16U
	OpcodeI32Load16UAt
	OpcodeI32Load16UOffset16

	OpcodeI64Load
	OpcodeI64LoadAt
	OpcodeI64LoadOffset16
	OpcodeI64Load8S
	OpcodeI64Load8SAt
	OpcodeI64Load8SOffset16
	OpcodeI64Load8U
	OpcodeI64Load8UAt
	OpcodeI64Load8UOffset16
	OpcodeI64Load16S
	OpcodeI64Load16SAt
	OpcodeI64Load16SOffset16
	OpcodeI64Load16U
	OpcodeI64Load16UAt
	OpcodeI64Load16UOffset16
	OpcodeI64Load32S
	OpcodeI64Load32SAt
	OpcodeI64Load32SOffset16
	OpcodeI64Load32U
	OpcodeI64Load32UAt
	OpcodeI64Load32UOffset16

	OpcodeF32Load
	OpcodeF32LoadAt
	OpcodeF32LoadOffset16
	OpcodeF64Load
	OpcodeF64LoadAt
	OpcodeF64LoadOffset16

	OpcodeI32Store
	OpcodeI32StoreAt
	OpcodeI32StoreOffset16
	OpcodeI32StoreImm
	OpcodeI32StoreImmAt
	OpcodeI32StoreImmOffset16
	OpcodeI32Store8
	OpcodeI32Store8At
	OpcodeI32Store8Offset16
	OpcodeI32Store8Imm
	OpcodeI32Store16
	OpcodeI32Store16At
	OpcodeI32Store16Offset16
	OpcodeI32Store16Imm

	OpcodeI64Store
	OpcodeI64StoreAt
	OpcodeI64StoreOffset16
	OpcodeI64StoreImm32
	OpcodeI64StoreImm32At
	OpcodeI64StoreImm32Offset16
	OpcodeI64Store8
	OpcodeI64Store8At
	OpcodeI64Store8Offset16
	OpcodeI64Store16
	OpcodeI64Store16At
	OpcodeI64Store16Offset16
	OpcodeI64Store32
	OpcodeI64Store32At
	OpcodeI64Store32Offset16

	OpcodeF32Store
	OpcodeF32StoreAt
	OpcodeF32StoreOffset16
	OpcodeF64Store
	OpcodeF64StoreAt
	OpcodeF64StoreOffset16

	// --- memory bulk ops (§4.7) ---

	OpcodeMemorySize
	OpcodeMemoryGrow
	OpcodeMemoryFill
	OpcodeMemoryFillImm
	OpcodeMemoryCopy
	OpcodeMemoryInit
	OpcodeDataDrop

	// --- table bulk ops (§4.7) ---

	OpcodeTableGet
	OpcodeTableGetImm
	OpcodeTableSet
	OpcodeTableSetImm
	OpcodeTableSize
	OpcodeTableGrow
	OpcodeTableFill
	OpcodeTableCopy
	OpcodeTableInit
	OpcodeElemDrop

	// --- call family (§4.8) ---

	OpcodeCallInternal0
	OpcodeCallInternal
	OpcodeCallImported0
	OpcodeCallImported
	OpcodeCallIndirect0
	OpcodeCallIndirect
	OpcodeReturnCallInternal0
	OpcodeReturnCallInternal
	OpcodeReturnCallImported0
	OpcodeReturnCallImported
	OpcodeReturnCallIndirect0
	OpcodeReturnCallIndirect

	opcodeCount
)

// I is one fixed-size instruction word (§3 Instruction word). Like the
// teacher's ssa.Instruction, Go's lack of tagged unions means every
// opcode's operands are folded into one flattened struct; a field's
// meaning depends entirely on Op. Most instructions fit in one I; some
// (calls with argument lists, branch tables, extended-offset loads) span
// several consecutive words whose tag is one of the OpcodeParam* trailer
// kinds and which are never themselves dispatched.
type I struct {
	Op Opcode
	// A, B, C are up to three register operands; their role (destination,
	// lhs, rhs, condition, ...) depends on Op.
	A, B, C R
	// Imm is a generic sign-extended immediate: a 16-bit register-immediate
	// operand, a branch offset, a fuel amount, or (widened) a 32/64-bit
	// constant for *Imm32/*Imm64 opcodes.
	Imm int64
	// Aux carries a secondary value whose meaning depends on Op: a trap
	// code, a segment/table/global/type index, a branch-table target
	// count, or a register-list length.
	Aux uint32
}
