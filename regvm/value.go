// Package regvm implements the per-frame execution core of a register-based
// WebAssembly interpreter: dispatch loop, call/return protocol, register
// window, cached instance indirection, fuel accounting, and opcode
// semantics. Module parsing, validation, translation, instance linking, and
// persistent storage of memories/tables/globals are out of scope; regvm
// consumes them through the Store and CodeMap contracts in store.go and
// codemap.go.
package regvm

import "math"

// V is an untyped 64-bit value cell. Every register slot and every constant
// operand is a V; its bits are reinterpreted according to the type the
// executing instruction ascribes to it. This mirrors the teacher's
// `UntypedVal` and wazero's api.ValueType split between storage and
// interpretation.
type V uint64

// VFromI32 packs a signed 32-bit integer into a cell, sign bits discarded.
func VFromI32(v int32) V { return V(uint32(v)) }

// VFromU32 packs an unsigned 32-bit integer into a cell.
func VFromU32(v uint32) V { return V(v) }

// VFromI64 packs a signed 64-bit integer into a cell.
func VFromI64(v int64) V { return V(uint64(v)) }

// VFromU64 packs an unsigned 64-bit integer into a cell.
func VFromU64(v uint64) V { return V(v) }

// VFromF32 packs a float32 into a cell using its IEEE-754 bit pattern.
func VFromF32(v float32) V { return V(math.Float32bits(v)) }

// VFromF64 packs a float64 into a cell using its IEEE-754 bit pattern.
func VFromF64(v float64) V { return V(math.Float64bits(v)) }

// VFromBool packs a boolean as the canonical i32 0/1 cell used by
// comparisons (§4.3).
func VFromBool(b bool) V {
	if b {
		return 1
	}
	return 0
}

// I32 reinterprets the cell as a signed 32-bit integer.
func (v V) I32() int32 { return int32(uint32(v)) }

// U32 reinterprets the cell as an unsigned 32-bit integer.
func (v V) U32() uint32 { return uint32(v) }

// I64 reinterprets the cell as a signed 64-bit integer.
func (v V) I64() int64 { return int64(v) }

// U64 reinterprets the cell as an unsigned 64-bit integer.
func (v V) U64() uint64 { return uint64(v) }

// F32 reinterprets the cell as an IEEE-754 single-precision float.
func (v V) F32() float32 { return math.Float32frombits(uint32(v)) }

// F64 reinterprets the cell as an IEEE-754 double-precision float.
func (v V) F64() float64 { return math.Float64frombits(uint64(v)) }

// IsZero32 reports whether the low 32 bits of the cell are zero; this is the
// truthiness test used by i32.eqz, select and the ReturnNez conditions.
func (v V) IsZero32() bool { return v.U32() == 0 }

// IsZero64 is the 64-bit-width equivalent of IsZero32, used by i64 eqz forms.
func (v V) IsZero64() bool { return v.U64() == 0 }

// FuncRef is a guest function-reference handle; zero is the null reference.
type FuncRef uint32

// NullFuncRef is the canonical null function reference (§4.5 RefFunc,
// §4.8 Indirect call UninitializedElement check).
const NullFuncRef FuncRef = 0

// ExternRef is an opaque host-reference handle; zero is the null reference.
type ExternRef uint64

// NullExternRef is the canonical null external reference.
const NullExternRef ExternRef = 0

// VFromFuncRef packs a function reference into a cell.
func VFromFuncRef(r FuncRef) V { return V(r) }

// FuncRef reinterprets the cell as a function reference handle.
func (v V) FuncRef() FuncRef { return FuncRef(v.U32()) }

// VFromExternRef packs an external reference into a cell.
func VFromExternRef(r ExternRef) V { return V(r) }

// ExternRef reinterprets the cell as an external reference handle.
func (v V) ExternRef() ExternRef { return ExternRef(v) }
