package regvm

// execFusedBranch implements the fused compare-branch family (§4.3): if
// the comparison holds, ip += offset; otherwise ip advances past this one
// word. Fused forms exist for integer eq/ne/lt/le/gt/ge (signed and
// unsigned, i32 and i64), float eq/ne/lt/le/gt/ge (f32/f64, no immediate
// form — float constants aren't compressible the way integer ones are),
// and the i32 boolean triples and/or/xor and their *_eqz complements.
//
// Encoding convention used throughout: B is the lhs register, C is the rhs
// register (register-register form) or Imm holds the rhs immediate
// (register-immediate form), and Aux always holds the signed branch offset
// — kept out of Imm so the immediate forms don't have to share it with the
// operand value.
func (e *Executor) execFusedBranch(instr I) (Outcome, bool, error) {
	offset := int(int32(instr.Aux))
	taken := e.fusedBranchCond(instr)
	if taken {
		e.branch(offset)
	} else {
		e.next(1)
	}
	return 0, false, nil
}

func (e *Executor) fusedBranchCond(instr I) bool {
	switch instr.Op {
	case OpcodeBranchI32Eq:
		return e.i32(instr.B) == e.i32(instr.C)
	case OpcodeBranchI32EqImm:
		return e.i32(instr.B) == int32(instr.Imm)
	case OpcodeBranchI32Ne:
		return e.i32(instr.B) != e.i32(instr.C)
	case OpcodeBranchI32NeImm:
		return e.i32(instr.B) != int32(instr.Imm)
	case OpcodeBranchI32LtS:
		return e.i32(instr.B) < e.i32(instr.C)
	case OpcodeBranchI32LtSImm:
		return e.i32(instr.B) < int32(instr.Imm)
	case OpcodeBranchI32LtU:
		return e.u32(instr.B) < e.u32(instr.C)
	case OpcodeBranchI32LtUImm:
		return e.u32(instr.B) < uint32(instr.Imm)
	case OpcodeBranchI32LeS:
		return e.i32(instr.B) <= e.i32(instr.C)
	case OpcodeBranchI32LeSImm:
		return e.i32(instr.B) <= int32(instr.Imm)
	case OpcodeBranchI32LeU:
		return e.u32(instr.B) <= e.u32(instr.C)
	case OpcodeBranchI32LeUImm:
		return e.u32(instr.B) <= uint32(instr.Imm)
	case OpcodeBranchI32GtS:
		return e.i32(instr.B) > e.i32(instr.C)
	case OpcodeBranchI32GtSImm:
		return e.i32(instr.B) > int32(instr.Imm)
	case OpcodeBranchI32GtU:
		return e.u32(instr.B) > e.u32(instr.C)
	case OpcodeBranchI32GtUImm:
		return e.u32(instr.B) > uint32(instr.Imm)
	case OpcodeBranchI32GeS:
		return e.i32(instr.B) >= e.i32(instr.C)
	case OpcodeBranchI32GeSImm:
		return e.i32(instr.B) >= int32(instr.Imm)
	case OpcodeBranchI32GeU:
		return e.u32(instr.B) >= e.u32(instr.C)
	case OpcodeBranchI32GeUImm:
		return e.u32(instr.B) >= uint32(instr.Imm)

	case OpcodeBranchI64Eq:
		return e.i64(instr.B) == e.i64(instr.C)
	case OpcodeBranchI64EqImm:
		return e.i64(instr.B) == instr.Imm
	case OpcodeBranchI64Ne:
		return e.i64(instr.B) != e.i64(instr.C)
	case OpcodeBranchI64NeImm:
		return e.i64(instr.B) != instr.Imm
	case OpcodeBranchI64LtS:
		return e.i64(instr.B) < e.i64(instr.C)
	case OpcodeBranchI64LtSImm:
		return e.i64(instr.B) < instr.Imm
	case OpcodeBranchI64LtU:
		return e.u64(instr.B) < e.u64(instr.C)
	case OpcodeBranchI64LtUImm:
		return e.u64(instr.B) < uint64(instr.Imm)
	case OpcodeBranchI64LeS:
		return e.i64(instr.B) <= e.i64(instr.C)
	case OpcodeBranchI64LeSImm:
		return e.i64(instr.B) <= instr.Imm
	case OpcodeBranchI64LeU:
		return e.u64(instr.B) <= e.u64(instr.C)
	case OpcodeBranchI64LeUImm:
		return e.u64(instr.B) <= uint64(instr.Imm)
	case OpcodeBranchI64GtS:
		return e.i64(instr.B) > e.i64(instr.C)
	case OpcodeBranchI64GtSImm:
		return e.i64(instr.B) > instr.Imm
	case OpcodeBranchI64GtU:
		return e.u64(instr.B) > e.u64(instr.C)
	case OpcodeBranchI64GtUImm:
		return e.u64(instr.B) > uint64(instr.Imm)
	case OpcodeBranchI64GeS:
		return e.i64(instr.B) >= e.i64(instr.C)
	case OpcodeBranchI64GeSImm:
		return e.i64(instr.B) >= instr.Imm
	case OpcodeBranchI64GeU:
		return e.u64(instr.B) >= e.u64(instr.C)
	case OpcodeBranchI64GeUImm:
		return e.u64(instr.B) >= uint64(instr.Imm)

	case OpcodeBranchF32Eq:
		return e.f32(instr.B) == e.f32(instr.C)
	case OpcodeBranchF32Ne:
		return e.f32(instr.B) != e.f32(instr.C)
	case OpcodeBranchF32Lt:
		return e.f32(instr.B) < e.f32(instr.C)
	case OpcodeBranchF32Le:
		return e.f32(instr.B) <= e.f32(instr.C)
	case OpcodeBranchF32Gt:
		return e.f32(instr.B) > e.f32(instr.C)
	case OpcodeBranchF32Ge:
		return e.f32(instr.B) >= e.f32(instr.C)
	case OpcodeBranchF64Eq:
		return e.f64(instr.B) == e.f64(instr.C)
	case OpcodeBranchF64Ne:
		return e.f64(instr.B) != e.f64(instr.C)
	case OpcodeBranchF64Lt:
		return e.f64(instr.B) < e.f64(instr.C)
	case OpcodeBranchF64Le:
		return e.f64(instr.B) <= e.f64(instr.C)
	case OpcodeBranchF64Gt:
		return e.f64(instr.B) > e.f64(instr.C)
	case OpcodeBranchF64Ge:
		return e.f64(instr.B) >= e.f64(instr.C)

	case OpcodeBranchI32And:
		return e.u32(instr.B)&e.u32(instr.C) != 0
	case OpcodeBranchI32AndImm:
		return e.u32(instr.B)&uint32(instr.Imm) != 0
	case OpcodeBranchI32Or:
		return e.u32(instr.B)|e.u32(instr.C) != 0
	case OpcodeBranchI32OrImm:
		return e.u32(instr.B)|uint32(instr.Imm) != 0
	case OpcodeBranchI32Xor:
		return e.u32(instr.B)^e.u32(instr.C) != 0
	case OpcodeBranchI32XorImm:
		return e.u32(instr.B)^uint32(instr.Imm) != 0
	case OpcodeBranchI32AndEqz:
		return e.u32(instr.B)&e.u32(instr.C) == 0
	case OpcodeBranchI32AndEqzImm:
		return e.u32(instr.B)&uint32(instr.Imm) == 0
	case OpcodeBranchI32OrEqz:
		return e.u32(instr.B)|e.u32(instr.C) == 0
	case OpcodeBranchI32OrEqzImm:
		return e.u32(instr.B)|uint32(instr.Imm) == 0
	case OpcodeBranchI32XorEqz:
		return e.u32(instr.B)^e.u32(instr.C) == 0
	case OpcodeBranchI32XorEqzImm:
		return e.u32(instr.B)^uint32(instr.Imm) == 0
	}
	return false
}

// execBranchCmpFallback implements the fallback opcode §4.3 describes for
// comparisons that don't have a dedicated fused form: the head word
// carries both operand registers and the branch offset, and a trailer
// word's own Opcode names which plain comparator (compare.go) to apply.
func (e *Executor) execBranchCmpFallback(instr I) (Outcome, bool, error) {
	selector := e.trailer(1)
	cmp := I{Op: selector.Op, A: 0, B: instr.B, C: instr.C, Imm: instr.Imm}
	taken := e.compareCond(cmp)
	if taken {
		e.branch(int(int32(instr.Aux)))
	} else {
		e.next(2)
	}
	return 0, false, nil
}

// compareCond evaluates a plain comparison opcode (compare.go's family) to
// a bool without writing a result register, shared by the fallback fused
// branch above.
func (e *Executor) compareCond(instr I) bool {
	switch instr.Op {
	case OpcodeI32Eq:
		return e.i32(instr.B) == e.i32(instr.C)
	case OpcodeI32Ne:
		return e.i32(instr.B) != e.i32(instr.C)
	case OpcodeI32LtS:
		return e.i32(instr.B) < e.i32(instr.C)
	case OpcodeI32LtU:
		return e.u32(instr.B) < e.u32(instr.C)
	case OpcodeI32LeS:
		return e.i32(instr.B) <= e.i32(instr.C)
	case OpcodeI32LeU:
		return e.u32(instr.B) <= e.u32(instr.C)
	case OpcodeI32GtS:
		return e.i32(instr.B) > e.i32(instr.C)
	case OpcodeI32GtU:
		return e.u32(instr.B) > e.u32(instr.C)
	case OpcodeI32GeS:
		return e.i32(instr.B) >= e.i32(instr.C)
	case OpcodeI32GeU:
		return e.u32(instr.B) >= e.u32(instr.C)
	case OpcodeF32Eq:
		return e.f32(instr.B) == e.f32(instr.C)
	case OpcodeF32Ne:
		return e.f32(instr.B) != e.f32(instr.C)
	case OpcodeF64Eq:
		return e.f64(instr.B) == e.f64(instr.C)
	case OpcodeF64Ne:
		return e.f64(instr.B) != e.f64(instr.C)
	default:
		// Any comparator reachable here but not enumerated above is a
		// translator bug: the fallback form exists precisely to cover the
		// long tail, but an unknown selector can't be honored safely.
		return false
	}
}

// execBranchTable implements branch-table dispatch (§4.4): an index
// register selects among N trailer-encoded targets, clamping to the last
// (default) target when the index is out of range. BranchTable0..3 (and
// Span, Many) denote how many block-parameter values must be copied within
// the current frame before branching, to realize block-argument semantics
// in a register model — the copy always happens before the target offset
// is read, matching the call family's "results are staged, then control
// transfers" ordering.
//
// BranchTable0..3's fixed counts are cheap enough to pack in the head word
// itself: B is the contiguous source base, C the contiguous destination
// base, and the targets immediately follow as trailer words starting at
// offset 1. Span and Many need a dynamic count or a non-contiguous source
// list, so they spend one extra trailer word on a copy plan (A=dst base,
// Aux=count) before their own targets begin. Span copies from the head
// word's B as its contiguous source base; Many reads its sources from
// regListWords(count) packed source-register trailer words starting at
// offset 2, right after the plan word.
func (e *Executor) execBranchTable(instr I) (Outcome, bool, error) {
	switch instr.Op {
	case OpcodeBranchTable0:
		return e.branchTableDispatch(instr, instr.A, int(instr.Aux), 1)
	case OpcodeBranchTable1:
		e.copySpan(instr.C, instr.B, 1, true)
		return e.branchTableDispatch(instr, instr.A, int(instr.Aux), 1)
	case OpcodeBranchTable2:
		e.copySpan(instr.C, instr.B, 2, true)
		return e.branchTableDispatch(instr, instr.A, int(instr.Aux), 1)
	case OpcodeBranchTable3:
		e.copySpan(instr.C, instr.B, 3, true)
		return e.branchTableDispatch(instr, instr.A, int(instr.Aux), 1)
	case OpcodeBranchTableSpan:
		plan := e.trailer(1)
		count := int(plan.Aux)
		e.copySpan(plan.A, instr.B, count, true)
		return e.branchTableDispatch(instr, instr.A, int(instr.Aux), 2)
	case OpcodeBranchTableMany:
		plan := e.trailer(1)
		count := int(plan.Aux)
		srcs := e.readRegList(2, count)
		for i, src := range srcs {
			e.values.set(e.base, plan.A+R(i), e.values.at(e.base, src))
		}
		return e.branchTableDispatch(instr, instr.A, int(instr.Aux), 2+regListWords(count))
	}
	return 0, true, errUnreachableCodeReached
}

// branchTableDispatch reads the index register, clamps it to the default
// (last) target on out-of-range, and jumps to the selected target's
// offset. targetsFrom is the trailer offset, relative to the head word,
// where the list of per-target offsets begins.
func (e *Executor) branchTableDispatch(instr I, indexReg R, numTargets, targetsFrom int) (Outcome, bool, error) {
	index := int(e.u32(indexReg))
	if index < 0 || index >= numTargets {
		index = numTargets - 1 // clamp to default target
	}
	target := e.trailer(targetsFrom + index)
	e.branch(int(target.Imm))
	return 0, false, nil
}
