package regvm

// execCompare implements the plain-comparison family (§4.3): produces a
// canonical i32 0/1 in dst. Fused compare-branch forms share these same
// comparators; see branch.go.
func (e *Executor) execCompare(instr I) {
	dst := instr.A
	switch instr.Op {
	case OpcodeI32Eq:
		e.setBool(dst, e.i32(instr.B) == e.i32(instr.C))
	case OpcodeI32EqImm:
		e.setBool(dst, e.i32(instr.B) == int32(instr.Imm))
	case OpcodeI32Ne:
		e.setBool(dst, e.i32(instr.B) != e.i32(instr.C))
	case OpcodeI32NeImm:
		e.setBool(dst, e.i32(instr.B) != int32(instr.Imm))
	case OpcodeI32LtS:
		e.setBool(dst, e.i32(instr.B) < e.i32(instr.C))
	case OpcodeI32LtSImm:
		e.setBool(dst, e.i32(instr.B) < int32(instr.Imm))
	case OpcodeI32LtU:
		e.setBool(dst, e.u32(instr.B) < e.u32(instr.C))
	case OpcodeI32LtUImm:
		e.setBool(dst, e.u32(instr.B) < uint32(instr.Imm))
	case OpcodeI32LeS:
		e.setBool(dst, e.i32(instr.B) <= e.i32(instr.C))
	case OpcodeI32LeSImm:
		e.setBool(dst, e.i32(instr.B) <= int32(instr.Imm))
	case OpcodeI32LeU:
		e.setBool(dst, e.u32(instr.B) <= e.u32(instr.C))
	case OpcodeI32LeUImm:
		e.setBool(dst, e.u32(instr.B) <= uint32(instr.Imm))
	case OpcodeI32GtS:
		e.setBool(dst, e.i32(instr.B) > e.i32(instr.C))
	case OpcodeI32GtSImm:
		e.setBool(dst, e.i32(instr.B) > int32(instr.Imm))
	case OpcodeI32GtU:
		e.setBool(dst, e.u32(instr.B) > e.u32(instr.C))
	case OpcodeI32GtUImm:
		e.setBool(dst, e.u32(instr.B) > uint32(instr.Imm))
	case OpcodeI32GeS:
		e.setBool(dst, e.i32(instr.B) >= e.i32(instr.C))
	case OpcodeI32GeSImm:
		e.setBool(dst, e.i32(instr.B) >= int32(instr.Imm))
	case OpcodeI32GeU:
		e.setBool(dst, e.u32(instr.B) >= e.u32(instr.C))
	case OpcodeI32GeUImm:
		e.setBool(dst, e.u32(instr.B) >= uint32(instr.Imm))
	case OpcodeI32Eqz:
		e.setBool(dst, e.values.at(e.base, instr.B).IsZero32())

	case OpcodeI64Eq:
		e.setBool(dst, e.i64(instr.B) == e.i64(instr.C))
	case OpcodeI64EqImm:
		e.setBool(dst, e.i64(instr.B) == instr.Imm)
	case OpcodeI64Ne:
		e.setBool(dst, e.i64(instr.B) != e.i64(instr.C))
	case OpcodeI64NeImm:
		e.setBool(dst, e.i64(instr.B) != instr.Imm)
	case OpcodeI64LtS:
		e.setBool(dst, e.i64(instr.B) < e.i64(instr.C))
	case OpcodeI64LtSImm:
		e.setBool(dst, e.i64(instr.B) < instr.Imm)
	case OpcodeI64LtU:
		e.setBool(dst, e.u64(instr.B) < e.u64(instr.C))
	case OpcodeI64LtUImm:
		e.setBool(dst, e.u64(instr.B) < uint64(instr.Imm))
	case OpcodeI64LeS:
		e.setBool(dst, e.i64(instr.B) <= e.i64(instr.C))
	case OpcodeI64LeSImm:
		e.setBool(dst, e.i64(instr.B) <= instr.Imm)
	case OpcodeI64LeU:
		e.setBool(dst, e.u64(instr.B) <= e.u64(instr.C))
	case OpcodeI64LeUImm:
		e.setBool(dst, e.u64(instr.B) <= uint64(instr.Imm))
	case OpcodeI64GtS:
		e.setBool(dst, e.i64(instr.B) > e.i64(instr.C))
	case OpcodeI64GtSImm:
		e.setBool(dst, e.i64(instr.B) > instr.Imm)
	case OpcodeI64GtU:
		e.setBool(dst, e.u64(instr.B) > e.u64(instr.C))
	case OpcodeI64GtUImm:
		e.setBool(dst, e.u64(instr.B) > uint64(instr.Imm))
	case OpcodeI64GeS:
		e.setBool(dst, e.i64(instr.B) >= e.i64(instr.C))
	case OpcodeI64GeSImm:
		e.setBool(dst, e.i64(instr.B) >= instr.Imm)
	case OpcodeI64GeU:
		e.setBool(dst, e.u64(instr.B) >= e.u64(instr.C))
	case OpcodeI64GeUImm:
		e.setBool(dst, e.u64(instr.B) >= uint64(instr.Imm))
	case OpcodeI64Eqz:
		e.setBool(dst, e.values.at(e.base, instr.B).IsZero64())

	case OpcodeF32Eq:
		e.setBool(dst, e.f32(instr.B) == e.f32(instr.C))
	case OpcodeF32Ne:
		e.setBool(dst, e.f32(instr.B) != e.f32(instr.C))
	case OpcodeF32Lt:
		e.setBool(dst, e.f32(instr.B) < e.f32(instr.C))
	case OpcodeF32Le:
		e.setBool(dst, e.f32(instr.B) <= e.f32(instr.C))
	case OpcodeF32Gt:
		e.setBool(dst, e.f32(instr.B) > e.f32(instr.C))
	case OpcodeF32Ge:
		e.setBool(dst, e.f32(instr.B) >= e.f32(instr.C))

	case OpcodeF64Eq:
		e.setBool(dst, e.f64(instr.B) == e.f64(instr.C))
	case OpcodeF64Ne:
		e.setBool(dst, e.f64(instr.B) != e.f64(instr.C))
	case OpcodeF64Lt:
		e.setBool(dst, e.f64(instr.B) < e.f64(instr.C))
	case OpcodeF64Le:
		e.setBool(dst, e.f64(instr.B) <= e.f64(instr.C))
	case OpcodeF64Gt:
		e.setBool(dst, e.f64(instr.B) > e.f64(instr.C))
	case OpcodeF64Ge:
		e.setBool(dst, e.f64(instr.B) >= e.f64(instr.C))
	}
}

func (e *Executor) setBool(r R, b bool) { e.values.set(e.base, r, VFromBool(b)) }
