package main

import "github.com/wazero-labs/rie/regvm"

// fibProgram returns a CodeMap holding a single recursive function
// computing fib(n) via two CallInternals, the demo embedder's stand-in for
// a translated guest module (no parser/translator ships in this repo;
// regvm consumes already-translated Bodies, per its package boundary).
func fibProgram() regvm.CodeMap {
	code := regvm.NewMapCodeMap()
	code.Define(0, &regvm.Body{
		NumRegisters: 6,
		NumParams:    1,
		NumResults:   1,
		Instrs: []regvm.I{
			{Op: regvm.OpcodeBranchI32LtSImm, B: 0, Imm: 2, Aux: 11},
			{Op: regvm.OpcodeI32SubImm, A: 1, B: 0, Imm: 1},
			{Op: regvm.OpcodeCallInternal},
			{A: 0, B: 2, Imm: (1 << 32) | 1, Aux: 0},
			{A: 1},
			{Op: regvm.OpcodeI32SubImm, A: 3, B: 0, Imm: 2},
			{Op: regvm.OpcodeCallInternal},
			{A: 0, B: 4, Imm: (1 << 32) | 1, Aux: 0},
			{A: 3},
			{Op: regvm.OpcodeI32Add, A: 5, B: 2, C: 4},
			{Op: regvm.OpcodeReturnReg, A: 5},
			{Op: regvm.OpcodeReturnReg, A: 0},
		},
	})
	return code
}

// counterProgram returns a function that tail-calls itself n times,
// decrementing to zero, demonstrating constant call-stack depth under
// recursion (§4.8 Tail call).
func counterProgram() regvm.CodeMap {
	code := regvm.NewMapCodeMap()
	code.Define(0, &regvm.Body{
		NumRegisters: 2,
		NumParams:    1,
		NumResults:   1,
		Instrs: []regvm.I{
			{Op: regvm.OpcodeBranchI32EqImm, B: 0, Imm: 0, Aux: 5},
			{Op: regvm.OpcodeI32SubImm, A: 1, B: 0, Imm: 1},
			{Op: regvm.OpcodeReturnCallInternal},
			{A: 0, B: 0, Imm: (1 << 32) | 1, Aux: 0},
			{A: 1},
			{Op: regvm.OpcodeReturnImm32, Imm: 0},
		},
	})
	return code
}
