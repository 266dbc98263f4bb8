package regvm

import "math"

// execConvert implements the conversion family (§4.2): wrapping/extending
// between integer widths, promoting/demoting between float widths,
// int<->float conversions, and same-width bit reinterpretation.
//
// trunc_f*_* traps InvalidConversionToInteger on NaN and IntegerOverflow on
// any finite input outside the target integer's representable range;
// trunc_sat_* never traps, clamping out-of-range inputs to the nearest
// bound and mapping NaN to zero (§4.2 Truncations).
func (e *Executor) execConvert(instr I) error {
	dst, src := instr.A, instr.B
	switch instr.Op {
	case OpcodeI32WrapI64:
		e.setI32(dst, int32(e.i64(src)))
	case OpcodeI64ExtendI32S:
		e.setI64(dst, int64(e.i32(src)))
	case OpcodeI64ExtendI32U:
		e.setU64(dst, uint64(e.u32(src)))
	case OpcodeI32Extend8S:
		e.setI32(dst, int32(int8(e.i32(src))))
	case OpcodeI32Extend16S:
		e.setI32(dst, int32(int16(e.i32(src))))
	case OpcodeI64Extend8S:
		e.setI64(dst, int64(int8(e.i64(src))))
	case OpcodeI64Extend16S:
		e.setI64(dst, int64(int16(e.i64(src))))
	case OpcodeI64Extend32S:
		e.setI64(dst, int64(int32(e.i64(src))))

	case OpcodeF32DemoteF64:
		e.setF32(dst, float32(e.f64(src)))
	case OpcodeF64PromoteF32:
		e.setF64(dst, float64(e.f32(src)))

	case OpcodeF32ConvertI32S:
		e.setF32(dst, float32(e.i32(src)))
	case OpcodeF32ConvertI32U:
		e.setF32(dst, float32(e.u32(src)))
	case OpcodeF32ConvertI64S:
		e.setF32(dst, float32(e.i64(src)))
	case OpcodeF32ConvertI64U:
		e.setF32(dst, float32(e.u64(src)))
	case OpcodeF64ConvertI32S:
		e.setF64(dst, float64(e.i32(src)))
	case OpcodeF64ConvertI32U:
		e.setF64(dst, float64(e.u32(src)))
	case OpcodeF64ConvertI64S:
		e.setF64(dst, float64(e.i64(src)))
	case OpcodeF64ConvertI64U:
		e.setF64(dst, float64(e.u64(src)))

	case OpcodeI32TruncF32S:
		v, err := truncToInt(float64(e.f32(src)), -2147483649, 2147483648)
		if err != nil {
			return err
		}
		e.setI32(dst, int32(v))
	case OpcodeI32TruncF32U:
		v, err := truncToUint(float64(e.f32(src)), 4294967296)
		if err != nil {
			return err
		}
		e.setU32(dst, uint32(v))
	case OpcodeI32TruncF64S:
		v, err := truncToInt(e.f64(src), -2147483649, 2147483648)
		if err != nil {
			return err
		}
		e.setI32(dst, int32(v))
	case OpcodeI32TruncF64U:
		v, err := truncToUint(e.f64(src), 4294967296)
		if err != nil {
			return err
		}
		e.setU32(dst, uint32(v))
	case OpcodeI64TruncF32S:
		v, err := truncToInt(float64(e.f32(src)), -9223372036854777856, 9223372036854775808)
		if err != nil {
			return err
		}
		e.setI64(dst, v)
	case OpcodeI64TruncF32U:
		v, err := truncToUint(float64(e.f32(src)), 18446744073709551616)
		if err != nil {
			return err
		}
		e.setU64(dst, v)
	case OpcodeI64TruncF64S:
		v, err := truncToInt(e.f64(src), -9223372036854777856, 9223372036854775808)
		if err != nil {
			return err
		}
		e.setI64(dst, v)
	case OpcodeI64TruncF64U:
		v, err := truncToUint(e.f64(src), 18446744073709551616)
		if err != nil {
			return err
		}
		e.setU64(dst, v)

	case OpcodeI32TruncSatF32S:
		e.setI32(dst, int32(truncSatToInt(float64(e.f32(src)), math.MinInt32, math.MaxInt32)))
	case OpcodeI32TruncSatF32U:
		e.setU32(dst, uint32(truncSatToUint(float64(e.f32(src)), math.MaxUint32)))
	case OpcodeI32TruncSatF64S:
		e.setI32(dst, int32(truncSatToInt(e.f64(src), math.MinInt32, math.MaxInt32)))
	case OpcodeI32TruncSatF64U:
		e.setU32(dst, uint32(truncSatToUint(e.f64(src), math.MaxUint32)))
	case OpcodeI64TruncSatF32S:
		e.setI64(dst, truncSatToInt(float64(e.f32(src)), math.MinInt64, math.MaxInt64))
	case OpcodeI64TruncSatF32U:
		e.setU64(dst, truncSatToUint(float64(e.f32(src)), math.MaxUint64))
	case OpcodeI64TruncSatF64S:
		e.setI64(dst, truncSatToInt(e.f64(src), math.MinInt64, math.MaxInt64))
	case OpcodeI64TruncSatF64U:
		e.setU64(dst, truncSatToUint(e.f64(src), math.MaxUint64))

	case OpcodeI32ReinterpretF32:
		e.setU32(dst, math.Float32bits(e.f32(src)))
	case OpcodeI64ReinterpretF64:
		e.setU64(dst, math.Float64bits(e.f64(src)))
	case OpcodeF32ReinterpretI32:
		e.setF32(dst, math.Float32frombits(e.u32(src)))
	case OpcodeF64ReinterpretI64:
		e.setF64(dst, math.Float64frombits(e.u64(src)))
	}
	return nil
}

// truncToInt implements the trapping trunc_s path: NaN traps
// InvalidConversionToInteger, and any finite value outside the open
// interval (lo, hi) traps IntegerOverflow (§4.2 Truncations). lo/hi are
// passed as the nearest float64 values lying outside each bound (e.g.
// -2^31-1 and 2^31 for i32; for i64, -2^63-2048, the next float64 below
// -2^63, and 2^63), since the true bounds themselves (e.g.
// math.MaxInt64) are not always exactly representable in float64 and a
// closed comparison against their rounded value would wrongly accept an
// out-of-range input.
func truncToInt(v, lo, hi float64) (int64, error) {
	if math.IsNaN(v) {
		return 0, errInvalidConversionToInteger
	}
	t := math.Trunc(v)
	if t <= lo || t >= hi {
		return 0, errIntegerOverflow
	}
	return int64(t), nil
}

// truncToUint is truncToInt's unsigned counterpart; hi is one past the
// true upper bound, for the same exact-representability reason.
func truncToUint(v, hi float64) (uint64, error) {
	if math.IsNaN(v) {
		return 0, errInvalidConversionToInteger
	}
	t := math.Trunc(v)
	if t < 0 || t >= hi {
		return 0, errIntegerOverflow
	}
	return uint64(t), nil
}

// truncSatToInt never traps: NaN saturates to 0, and out-of-range finite
// values clamp to the nearest bound (§4.2 Truncations). Unlike truncToInt,
// the comparison is closed, against float64(lo) and float64(hi)
// themselves: an input equal to a bound clamps to that same bound, and
// since float64(math.MaxInt64) rounds up to 2^63, an input of 2^63 still
// clamps to the literal integer bound rather than overflowing on the final
// int64(t) conversion.
func truncSatToInt(v float64, lo, hi int64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	t := math.Trunc(v)
	switch {
	case t <= float64(lo):
		return lo
	case t >= float64(hi):
		return hi
	default:
		return int64(t)
	}
}

func truncSatToUint(v float64, hi uint64) uint64 {
	if math.IsNaN(v) {
		return 0
	}
	t := math.Trunc(v)
	switch {
	case t <= 0:
		return 0
	case t >= float64(hi):
		return hi
	default:
		return uint64(t)
	}
}
