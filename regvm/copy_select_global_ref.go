package regvm

// execCopySelectGlobalRef implements §4.5: register-to-register copies,
// select, global get/set, and ref-func/ref-is-null/ref-null. All of these
// opcodes are straight-line (no control-flow or stack-geometry change), so
// the caller in executor.go advances ip by one afterward.
func (e *Executor) execCopySelectGlobalRef(instr I) error {
	switch instr.Op {
	case OpcodeCopy:
		e.values.set(e.base, instr.A, e.values.at(e.base, instr.B))
	case OpcodeCopyImm32:
		e.values.set(e.base, instr.A, V(uint32(instr.Imm)))
	case OpcodeCopySpan:
		e.copySpan(instr.A, instr.B, int(instr.Aux), true)
	case OpcodeCopySpanNonOverlapping:
		e.copySpan(instr.A, instr.B, int(instr.Aux), false)
	case OpcodeSelect:
		cond := e.values.at(e.base, R(instr.Aux))
		if !cond.IsZero32() {
			e.values.set(e.base, instr.A, e.values.at(e.base, instr.B))
		} else {
			e.values.set(e.base, instr.A, e.values.at(e.base, instr.C))
		}
	case OpcodeSelectImm:
		cond := e.values.at(e.base, R(instr.Aux))
		if !cond.IsZero32() {
			e.values.set(e.base, instr.A, V(uint64(instr.Imm)))
		} else {
			e.values.set(e.base, instr.A, e.values.at(e.base, instr.C))
		}

	case OpcodeGlobalGet:
		e.values.set(e.base, instr.A, e.store.GlobalGet(instr.Aux))
	case OpcodeGlobalSet:
		e.store.GlobalSet(instr.Aux, e.values.at(e.base, instr.A))
	case OpcodeGlobalSetImm16:
		e.store.GlobalSet(instr.Aux, V(uint32(instr.Imm)))

	case OpcodeRefFunc:
		e.values.set(e.base, instr.A, VFromFuncRef(e.store.ResolveFuncRef(instr.Aux)))
	case OpcodeRefIsNull:
		e.setBool(instr.A, e.values.at(e.base, instr.B).FuncRef() == NullFuncRef &&
			e.values.at(e.base, instr.B).ExternRef() == NullExternRef)
	case OpcodeRefNull:
		e.values.set(e.base, instr.A, 0)
	}
	return nil
}

// copySpan transfers a contiguous range of count registers from srcBase to
// dstBase. When directionAware is set, the copy walks from the high end
// down when the ranges overlap with dst > src (CopySpan, §4.5); when clear,
// it assumes the caller has already proven the ranges disjoint and always
// walks forward (CopySpanNonOverlapping).
func (e *Executor) copySpan(dstBase, srcBase R, count int, directionAware bool) {
	if directionAware && dstBase > srcBase {
		for i := count - 1; i >= 0; i-- {
			e.values.set(e.base, dstBase+R(i), e.values.at(e.base, srcBase+R(i)))
		}
		return
	}
	for i := 0; i < count; i++ {
		e.values.set(e.base, dstBase+R(i), e.values.at(e.base, srcBase+R(i)))
	}
}

// execCopyMany transfers a translator-emitted list of source registers
// (possibly spanning multiple trailer words, three per word) into a
// contiguous destination range starting at instr.A. Unlike the rest of
// §4.5, CopyMany is multi-word, so it is dispatched directly from
// executor.go's step rather than through the generic family handler.
func (e *Executor) execCopyMany(instr I) {
	count := int(instr.Aux)
	srcs := e.readRegList(1, count)
	for i, src := range srcs {
		e.values.set(e.base, instr.A+R(i), e.values.at(e.base, src))
	}
	e.next(1 + regListWords(count))
}

// readRegList decodes a packed register list starting at the trailer word
// offsetFromIP, three registers per word (A, B, C), matching
// OpcodeParamRegister3's role as a RegisterList continuation (§3
// Instruction word).
func (e *Executor) readRegList(offsetFromIP, count int) []R {
	out := make([]R, 0, count)
	for i := 0; i < count; {
		w := e.trailer(offsetFromIP + i/3)
		switch i % 3 {
		case 0:
			out = append(out, w.A)
		case 1:
			out = append(out, w.B)
		case 2:
			out = append(out, w.C)
		}
		i++
	}
	return out
}

// regListWords reports how many trailer words a count-register list
// occupies, three registers per word.
func regListWords(count int) int {
	return (count + 2) / 3
}
