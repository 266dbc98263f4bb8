package regvm

import "fmt"

// Executor drives one call stack to completion (§4.1 Dispatch loop
// contract). It owns no resources beyond the stacks and the cached
// instance view; memories, tables, globals and code live in Store and
// CodeMap, supplied at construction and re-used across Run calls so a
// host-call pause can be resumed.
type Executor struct {
	ip    int
	base  int
	frame *Frame

	values *ValueStack
	calls  *CallStack
	cache  CachedInstance

	code     CodeMap
	store    Store
	resolver InstanceResolver

	// Pending is populated when Run returns OutcomeHostCall.
	Pending HostCall

	// Results is populated when Run returns OutcomeReturned: the root
	// function's return values, in declaration order (§4.1 Outputs).
	Results []V
}

// NewExecutor constructs an executor over a fresh root frame. args are the
// root function's argument cells, written into the base of the frame's
// register window before the first instruction executes.
func NewExecutor(code CodeMap, store Store, resolver InstanceResolver, funcIdx, instanceID uint32, args []V) (*Executor, error) {
	body, ok := code.Body(funcIdx)
	if !ok {
		return nil, fmt.Errorf("regvm: unknown function index %d", funcIdx)
	}
	values := NewValueStack(256, DefaultValueStackLimit)
	calls := NewCallStack(DefaultCallStackLimit)

	if err := values.pushFrame(0, body.NumRegisters); err != nil {
		return nil, err
	}
	for i, a := range args {
		values.set(0, R(i), a)
	}

	root := Frame{
		Base:     0,
		Instance: instanceID,
		Body:     body,
		IsRoot:   true,
	}
	if err := calls.Push(root); err != nil {
		return nil, err
	}

	e := &Executor{
		ip:       0,
		base:     0,
		values:   values,
		calls:    calls,
		code:     code,
		store:    store,
		resolver: resolver,
	}
	e.frame = e.calls.Top()
	if resolver != nil {
		e.cache = resolver.Instance(instanceID)
	}
	return e, nil
}

// reseat re-derives any base-relative state from the current frame. In
// this implementation register windows are resolved through slice indices
// rather than raw pointers, so a ValueStack grow can never dangle e.base —
// unlike the teacher's raw stack pointer, an index survives reallocation
// by construction. Nothing calls reseat: enterFrame, execReturn and
// resumeTailHost set e.base from the new frame directly. It is kept so the
// invariant in §9 ("Raw stack-pointer safety") stays a visible, auditable
// property of the code rather than an accident of the representation.
func (e *Executor) reseat() { e.base = e.frame.Base }

// CallDepth reports the number of live call frames, the register-VM
// analogue of a native stack depth. Tail calls keep this constant across
// arbitrarily deep guest recursion (§4.8 Tail call); it exists for
// embedders that want to observe or bound that invariant (cmd/rierun's
// trace command reports it before and after a run).
func (e *Executor) CallDepth() int { return e.calls.Depth() }

// ResumeHostResult bundles the results of the host function named by a
// prior OutcomeHostCall pause (§4.8 Imported/host call, §9 Host-call
// suspension). ResumeHost takes the result slice directly, so nothing in
// this package consumes this type.
type ResumeHostResult struct {
	Results []V
}

// Run executes the dispatch loop until return-past-root, a host-call
// pause, or a trap (§4.1). Callers resume a paused executor through
// ResumeHost, which writes the host results back and re-enters this loop
// itself.
func (e *Executor) Run() (Outcome, error) {
	for {
		instr := e.frame.Body.Instrs[e.ip]
		outcome, done, err := e.step(instr)
		if err != nil {
			return 0, err
		}
		if done {
			return outcome, nil
		}
	}
}

// ResumeHost writes a completed host call's results into the paused
// frame's designated result registers and re-enters the dispatch loop. A
// host call made from a tail position has no callee frame to resume into,
// so it pops the paused frame instead (§4.8 Imported/host call + Tail
// call); see resumeTailHost.
func (e *Executor) ResumeHost(results []V) (Outcome, error) {
	if e.Pending.Tail {
		return e.resumeTailHost(results)
	}
	for i, v := range results {
		if i >= e.Pending.Results.Len {
			break
		}
		e.values.set(e.base, e.Pending.Results.At(i), v)
	}
	return e.Run()
}

// resumeTailHost completes a host call made in tail position: there is no
// callee frame to resume execution inside, so it pops the tail-calling
// frame and delivers results exactly as execReturn would for any other
// return, rather than re-entering Run at e.ip (which would read instruction
// words no translator ever emits live code at, past a terminal return-call).
func (e *Executor) resumeTailHost(results []V) (Outcome, error) {
	popped := e.calls.Pop()
	e.values.truncate(popped.Base)

	if popped.IsRoot {
		e.Results = results
		return OutcomeReturned, nil
	}

	caller := e.calls.Top()
	for i, v := range results {
		if i >= e.Pending.Results.Len {
			break
		}
		e.values.set(caller.Base, e.Pending.Results.At(i), v)
	}

	e.frame = caller
	e.base = caller.Base
	e.ip = popped.ReturnIP
	if popped.Instance != popped.ReturnInstance && e.resolver != nil {
		e.cache.refresh(e.resolver, popped.ReturnInstance)
	}
	return e.Run()
}

// step decodes and executes one instruction, reporting whether the
// dispatch loop should stop (returning outcome) or continue.
func (e *Executor) step(instr I) (outcome Outcome, done bool, err error) {
	switch instr.Op {
	// --- control ---
	case OpcodeTrap:
		return 0, true, TrapCode(instr.Aux)
	case OpcodeConsumeFuel:
		if underflowed := e.store.ConsumeFuel(uint64(instr.Imm)); underflowed {
			return 0, true, errOutOfFuel
		}
		e.next(1)

	// --- return family ---
	case OpcodeReturn, OpcodeReturnReg, OpcodeReturnReg2, OpcodeReturnReg3,
		OpcodeReturnImm32, OpcodeReturnI64Imm32, OpcodeReturnF64Imm32,
		OpcodeReturnSpan, OpcodeReturnMany:
		return e.execReturn(instr)
	case OpcodeReturnNez, OpcodeReturnNezReg, OpcodeReturnNezReg2,
		OpcodeReturnNezImm32, OpcodeReturnNezSpan, OpcodeReturnNezMany:
		if e.values.at(e.base, instr.A).IsZero32() {
			e.next(1)
			return 0, false, nil
		}
		return e.execReturn(instr)

	// --- branch family ---
	case OpcodeBranch:
		e.branch(int(int32(instr.Aux)))
	case OpcodeBranchTable0, OpcodeBranchTable1, OpcodeBranchTable2,
		OpcodeBranchTable3, OpcodeBranchTableSpan, OpcodeBranchTableMany:
		return e.execBranchTable(instr)
	case OpcodeBranchCmpFallback:
		return e.execBranchCmpFallback(instr)

	// --- multi-word §4.5 op, special-cased since it can't share the
	// generic single-word advance the rest of its family gets below ---
	case OpcodeCopyMany:
		e.execCopyMany(instr)

	default:
		if e.isFusedBranch(instr.Op) {
			return e.execFusedBranch(instr)
		}
		if e.isCompare(instr.Op) {
			e.execCompare(instr)
			e.next(1)
			return 0, false, nil
		}
		if e.isArith(instr.Op) {
			if err := e.execArith(instr); err != nil {
				return 0, true, err
			}
			e.next(1)
			return 0, false, nil
		}
		if e.isConvert(instr.Op) {
			if err := e.execConvert(instr); err != nil {
				return 0, true, err
			}
			e.next(1)
			return 0, false, nil
		}
		if e.isCopySelectGlobalRef(instr.Op) {
			if err := e.execCopySelectGlobalRef(instr); err != nil {
				return 0, true, err
			}
			e.next(1)
			return 0, false, nil
		}
		if e.isLoadStore(instr.Op) {
			return e.execLoadStore(instr)
		}
		if e.isMemoryBulk(instr.Op) {
			if err := e.execMemoryBulk(instr); err != nil {
				return 0, true, err
			}
			e.next(1)
			return 0, false, nil
		}
		if e.isTableBulk(instr.Op) {
			if err := e.execTableBulk(instr); err != nil {
				return 0, true, err
			}
			e.next(1)
			return 0, false, nil
		}
		if e.isCall(instr.Op) {
			return e.execCall(instr)
		}
		return 0, true, errUnreachableCodeReached
	}
	return 0, false, nil
}

// next advances ip by n words, the default "executed, move on" transition
// every handler that doesn't branch or call takes (§4.1).
func (e *Executor) next(n int) { e.ip += n }

// branch performs an unconditional relative jump (§4.4).
func (e *Executor) branch(offset int) { e.ip += offset }

// trailer reads the word n positions after the current instruction,
// used by extended-offset loads/stores and multi-word parameter forms.
// Encountering one in the dispatch position (via step, above) is itself a
// corruption signal; fetched directly like this it is the documented,
// intentional use (§3 Instruction word).
func (e *Executor) trailer(n int) I { return e.frame.Body.Instrs[e.ip+n] }
