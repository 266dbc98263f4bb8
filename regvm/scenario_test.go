package regvm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFib returns a CodeMap holding a single recursive function computing
// fib(n) the way two CallInternals would be translated from a guest
// `if n < 2 { n } else { fib(n-1) + fib(n-2) }` (§8 scenario 1).
//
// Registers: r0=n (param), r1=n-1, r2=fib(n-1), r3=n-2, r4=fib(n-2), r5=sum.
func buildFib() CodeMap {
	code := NewMapCodeMap()
	code.Define(0, &Body{
		NumRegisters: 6,
		NumParams:    1,
		NumResults:   1,
		Instrs: []I{
			{Op: OpcodeBranchI32LtSImm, B: 0, Imm: 2, Aux: 11}, // 0: n<2 -> base case at word 11
			{Op: OpcodeI32SubImm, A: 1, B: 0, Imm: 1},          // 1: r1 = n-1
			{Op: OpcodeCallInternal},                           // 2: call fib(r1) -> r2
			{A: 0, B: 2, Imm: (1 << 32) | 1, Aux: 0},            // 3: params (results=r2, argCount=1, callee=0)
			{A: 1},                                              // 4: arg list: r1
			{Op: OpcodeI32SubImm, A: 3, B: 0, Imm: 2},          // 5: r3 = n-2
			{Op: OpcodeCallInternal},                           // 6: call fib(r3) -> r4
			{A: 0, B: 4, Imm: (1 << 32) | 1, Aux: 0},            // 7: params
			{A: 3},                                              // 8: arg list: r3
			{Op: OpcodeI32Add, A: 5, B: 2, C: 4},                // 9: r5 = r2+r4
			{Op: OpcodeReturnReg, A: 5},                          // 10: return r5
			{Op: OpcodeReturnReg, A: 0},                          // 11: base case: return n
		},
	})
	return code
}

func TestFibonacci10(t *testing.T) {
	code := buildFib()
	store := NewMemoryStore()
	exec, err := NewExecutor(code, store, nil, 0, 0, []V{VFromI32(10)})
	require.NoError(t, err)

	outcome, err := exec.Run()
	require.NoError(t, err)
	require.Equal(t, OutcomeReturned, outcome)
	require.Len(t, exec.Results, 1)
	require.Equal(t, int32(55), exec.Results[0].I32())
}

// buildTailCounter returns a function that tail-calls itself n times,
// decrementing toward zero, the way a guest `loop { if n==0 {return 0} n-=1;
// continue }` translates into ReturnCallInternal (§8 scenario 2).
func buildTailCounter() CodeMap {
	code := NewMapCodeMap()
	code.Define(1, &Body{
		NumRegisters: 2,
		NumParams:    1,
		NumResults:   1,
		Instrs: []I{
			{Op: OpcodeBranchI32EqImm, B: 0, Imm: 0, Aux: 5}, // 0: n==0 -> word 5
			{Op: OpcodeI32SubImm, A: 1, B: 0, Imm: 1},        // 1: r1 = n-1
			{Op: OpcodeReturnCallInternal},                   // 2: tail-call self(r1)
			{A: 0, B: 0, Imm: (1 << 32) | 1, Aux: 1},          // 3: params (argCount=1, callee=1)
			{A: 1},                                            // 4: arg list: r1
			{Op: OpcodeReturnImm32, Imm: 0},                    // 5: return 0
		},
	})
	return code
}

func TestTailCallCounterToOneMillion(t *testing.T) {
	code := buildTailCounter()
	store := NewMemoryStore()
	exec, err := NewExecutor(code, store, nil, 1, 0, []V{VFromI32(1_000_000)})
	require.NoError(t, err)

	outcome, err := exec.Run()
	require.NoError(t, err)
	require.Equal(t, OutcomeReturned, outcome)
	require.Equal(t, int32(0), exec.Results[0].I32())
	require.LessOrEqual(t, exec.CallDepth(), 2, "tail calls must not grow the call stack")
}

func TestLoadOutOfBoundsTraps(t *testing.T) {
	code := NewMapCodeMap()
	code.Define(0, &Body{
		NumRegisters: 1,
		Instrs: []I{
			{Op: OpcodeI32LoadAt, A: 0, Imm: 100000}, // well past a single 64KiB page
		},
	})
	store := NewMemoryStore()
	mh := store.DefineMemory(1, 0)
	resolver := StaticResolver{View: CachedInstance{DefaultMemory: mh, HasMemory: true}}

	exec, err := NewExecutor(code, store, resolver, 0, 0, nil)
	require.NoError(t, err)

	_, err = exec.Run()
	tc, ok := AsTrapCode(err)
	require.True(t, ok)
	require.Equal(t, TrapMemoryOutOfBounds, tc)
}

func TestMemoryCopyOverlap(t *testing.T) {
	code := NewMapCodeMap()
	code.Define(0, &Body{
		NumRegisters: 3,
		NumParams:    3,
		Instrs: []I{
			{Op: OpcodeMemoryCopy, A: 0, B: 1, C: 2}, // dst=r0, src=r1, length=r2
			{Op: OpcodeReturn},
		},
	})
	store := NewMemoryStore()
	mh := store.DefineMemory(1, 0)
	mem := store.MemoryBytes(mh)
	for i := 0; i < 10; i++ {
		mem[i] = byte(i)
	}
	resolver := StaticResolver{View: CachedInstance{DefaultMemory: mh, HasMemory: true}}

	exec, err := NewExecutor(code, store, resolver, 0, 0, []V{VFromU32(2), VFromU32(0), VFromU32(5)})
	require.NoError(t, err)
	_, err = exec.Run()
	require.NoError(t, err)

	got := store.MemoryBytes(mh)[:10]
	require.Equal(t, []byte{0, 1, 0, 1, 2, 3, 4, 7, 8, 9}, got)
}

func TestFuelExhaustionOnThirdConsume(t *testing.T) {
	code := NewMapCodeMap()
	code.Define(0, &Body{
		Instrs: []I{
			{Op: OpcodeConsumeFuel, Imm: 50},
			{Op: OpcodeConsumeFuel, Imm: 50},
			{Op: OpcodeConsumeFuel, Imm: 50},
			{Op: OpcodeReturn},
		},
	})
	store := NewMemoryStore().WithFuel(125)
	exec, err := NewExecutor(code, store, nil, 0, 0, nil)
	require.NoError(t, err)

	_, err = exec.Run()
	tc, ok := AsTrapCode(err)
	require.True(t, ok)
	require.Equal(t, TrapOutOfFuel, tc)
	require.Equal(t, uint64(0), store.FuelRemaining(), "underflowed fuel pins at zero, never wraps")
}

func TestIndirectCallSignatureMismatch(t *testing.T) {
	code := NewMapCodeMap()
	code.Define(0, &Body{
		NumRegisters: 1,
		NumParams:    1,
		Instrs: []I{
			{Op: OpcodeCallIndirect, A: 0},
			{A: 0, B: 0, Imm: 0, Aux: 42}, // table 0, expected signature 42
		},
	})
	store := NewMemoryStore()
	th := store.DefineTable(1, 0, true)
	require.NoError(t, store.TableSet(th, 0, EncodeIndirectTarget(FuncIdentity{FuncIdx: 7, SignatureIdx: 99})))
	resolver := StaticResolver{View: CachedInstance{DefaultTable: th, HasTable: true}}

	exec, err := NewExecutor(code, store, resolver, 0, 0, []V{VFromU32(0)})
	require.NoError(t, err)
	_, err = exec.Run()
	tc, ok := AsTrapCode(err)
	require.True(t, ok)
	require.Equal(t, TrapBadSignature, tc)
}

func TestIndirectCallToNullTraps(t *testing.T) {
	code := NewMapCodeMap()
	code.Define(0, &Body{
		NumRegisters: 1,
		NumParams:    1,
		Instrs: []I{
			{Op: OpcodeCallIndirect, A: 0},
			{A: 0, B: 0, Imm: 0, Aux: 42},
		},
	})
	store := NewMemoryStore()
	th := store.DefineTable(1, 0, true) // left at NullFuncRef
	resolver := StaticResolver{View: CachedInstance{DefaultTable: th, HasTable: true}}

	exec, err := NewExecutor(code, store, resolver, 0, 0, []V{VFromU32(0)})
	require.NoError(t, err)
	_, err = exec.Run()
	tc, ok := AsTrapCode(err)
	require.True(t, ok)
	require.Equal(t, TrapIndirectCallToNull, tc)
}

func TestMemoryInitZeroLengthAgainstDroppedSegmentSucceeds(t *testing.T) {
	store := NewMemoryStore()
	mh := store.DefineMemory(1, 0)
	store.DefineDataSegment(5, []byte{1, 2, 3})
	store.DataDrop(5)

	require.NoError(t, store.MemoryInit(mh, 0, 0, 0, 5))
}

func TestTruncBoundaryOverflowsAtExactPowerOfTwo(t *testing.T) {
	// 2^63 is exactly representable in float64 but one past i64's true max
	// (2^63-1); the naive `t > float64(math.MaxInt64)` check used to let
	// this slip through, since float64(math.MaxInt64) itself rounds up to
	// 2^63.
	code := NewMapCodeMap()
	code.Define(0, &Body{
		NumRegisters: 2,
		Instrs: []I{
			{Op: OpcodeI64TruncF64S, A: 1, B: 0},
		},
	})
	store := NewMemoryStore()
	exec, err := NewExecutor(code, store, nil, 0, 0, []V{VFromF64(9223372036854775808.0)})
	require.NoError(t, err)

	_, err = exec.Run()
	tc, ok := AsTrapCode(err)
	require.True(t, ok)
	require.Equal(t, TrapIntegerOverflow, tc)
}

// buildTailCallToHost returns a two-function program where function 1
// tail-calls an imported (host) function instead of returning normally —
// the edge case a return-call crossing into host code must still honor:
// no callee frame is ever entered, so the result has to land in function
// 0's own result register once the host call resolves (§8 scenario,
// regression for the tail-to-host frame-popping fix).
func buildTailCallToHost() CodeMap {
	code := NewMapCodeMap()
	code.Define(0, &Body{
		NumRegisters: 2, NumParams: 1, NumResults: 1,
		Instrs: []I{
			{Op: OpcodeCallInternal},                 // 0: call g(r0) -> r0
			{A: 0, B: 0, Imm: (1 << 32) | 1, Aux: 1},  // 1: params (results=r0, argCount=1, callee=1)
			{A: 0},                                    // 2: arg list: r0
			{Op: OpcodeReturnReg, A: 0},                // 3: return whatever g produced
		},
	})
	code.Define(1, &Body{
		NumRegisters: 1, NumParams: 1, NumResults: 1,
		Instrs: []I{
			{Op: OpcodeReturnCallImported},             // 0: tail-call host func 99(r0)
			{A: 0, B: 0, Imm: (1 << 32) | 1, Aux: 99},  // 1: params (callee=99)
			{A: 0},                                      // 2: arg list: r0
		},
	})
	return code
}

func TestTailCallToHostPopsFrameInsteadOfResumingIt(t *testing.T) {
	code := buildTailCallToHost()
	store := NewMemoryStore()
	exec, err := NewExecutor(code, store, nil, 0, 0, []V{VFromI32(7)})
	require.NoError(t, err)

	outcome, err := exec.Run()
	require.NoError(t, err)
	require.Equal(t, OutcomeHostCall, outcome)
	require.True(t, exec.Pending.Tail)
	require.Equal(t, uint32(99), exec.Pending.FuncIdx)
	require.Equal(t, []V{VFromI32(7)}, exec.HostArgs())
	require.Equal(t, 2, exec.CallDepth(), "the tail-calling frame is still live until ResumeHost pops it")

	outcome, err = exec.ResumeHost([]V{VFromI32(42)})
	require.NoError(t, err)
	require.Equal(t, OutcomeReturned, outcome)
	require.Equal(t, int32(42), exec.Results[0].I32())
}

func TestTruncSatClampsTheSameBoundary(t *testing.T) {
	code := NewMapCodeMap()
	code.Define(0, &Body{
		NumRegisters: 2,
		Instrs: []I{
			{Op: OpcodeI64TruncSatF64S, A: 1, B: 0},
			{Op: OpcodeReturnReg, A: 1},
		},
	})
	store := NewMemoryStore()
	exec, err := NewExecutor(code, store, nil, 0, 0, []V{VFromF64(9223372036854775808.0)})
	require.NoError(t, err)

	_, err = exec.Run()
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), exec.Results[0].I64())
}
