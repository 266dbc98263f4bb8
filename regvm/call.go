package regvm

// callParams decodes the CallIndirectParams-style trailer word every call
// head carries immediately after itself (§3 Instruction word: trailer
// words carry parameters, never dispatched directly). Its fields are
// reused across the whole call family:
//
//   - tableHandle: the table to resolve against (CallIndirect* only).
//   - resultsBase, resultsLen: the caller's result-register span (normal
//     calls only; tail/return-calls reuse the frame's own Results).
//   - callee: the internal/imported function index, or — for indirect
//     calls — the expected dedup signature index checked against the
//     resolved callee's actual signature.
//   - argCount: how many trailer-encoded argument registers follow.
//
// resultsLen and argCount are packed into the trailer's Imm field as two
// unsigned 32-bit halves (resultsLen in the high word, argCount in the
// low word) rather than split across two fields, since every other
// trailer kind only carries A/B/C registers plus Aux.
type callParams struct {
	tableHandle TableHandle
	resultsBase R
	resultsLen  int
	callee      uint32
	argCount    int
}

func decodeCallParams(trailer I) callParams {
	raw := uint64(trailer.Imm)
	return callParams{
		tableHandle: TableHandle(trailer.A),
		resultsBase: trailer.B,
		callee:      trailer.Aux,
		resultsLen:  int(raw >> 32),
		argCount:    int(uint32(raw)),
	}
}

// wordsConsumed reports the total instruction words the head plus its
// params and argument-list trailers occupy.
func (p callParams) wordsConsumed() int { return 2 + regListWords(p.argCount) }

// execCall implements the call/return family's call side (§4.8): two axes
// — target kind (internal / imported / indirect) × return kind (normal /
// tail) — crossed with a translator-chosen {0, n}-argument encoding that,
// once decoded, the handler treats uniformly (argCount is simply 0).
func (e *Executor) execCall(instr I) (Outcome, bool, error) {
	params := decodeCallParams(e.trailer(1))
	args := e.gatherArgs(params)

	switch instr.Op {
	case OpcodeCallInternal0, OpcodeCallInternal:
		return e.callInternal(params, args, false)
	case OpcodeCallImported0, OpcodeCallImported:
		return e.callImported(params, args, false)
	case OpcodeCallIndirect0, OpcodeCallIndirect:
		return e.callIndirect(instr, params, args, false)
	case OpcodeReturnCallInternal0, OpcodeReturnCallInternal:
		return e.callInternal(params, args, true)
	case OpcodeReturnCallImported0, OpcodeReturnCallImported:
		// A tail call to a host function still must suspend for the host
		// invocation; there is no callee frame left to resume into once the
		// pause resolves, so dispatchHost targets this frame's own Results
		// (the caller-below's window) and ResumeHost pops this frame instead
		// of re-entering it (§4.8 Imported/host call + Tail call).
		return e.callImported(params, args, true)
	case OpcodeReturnCallIndirect0, OpcodeReturnCallIndirect:
		return e.callIndirect(instr, params, args, true)
	}
	return 0, true, errUnreachableCodeReached
}

func (e *Executor) gatherArgs(p callParams) []V {
	regs := e.readRegList(2, p.argCount)
	args := make([]V, len(regs))
	for i, r := range regs {
		args[i] = e.values.at(e.base, r)
	}
	return args
}

// callInternal pushes (or, if tail, reuses) a frame for an internal
// function body (§4.8 Normal call / Tail call).
func (e *Executor) callInternal(p callParams, args []V, tail bool) (Outcome, bool, error) {
	body, ok := e.code.Body(p.callee)
	if !ok {
		return 0, true, errUnreachableCodeReached
	}
	return e.enterFrame(body, args, p, tail, e.frame.Instance)
}

// callIndirect resolves (table, index) before entering exactly as
// callInternal does, additionally enforcing the null and signature checks
// §4.8 requires.
func (e *Executor) callIndirect(instr I, p callParams, args []V, tail bool) (Outcome, bool, error) {
	index := e.u32(instr.A)
	callee, err := e.store.ResolveIndirect(p.tableHandle, index)
	if err != nil {
		return 0, true, err
	}
	if callee.SignatureIdx != p.callee { // p.callee holds the expected signature here
		return 0, true, errBadSignature
	}
	if callee.IsHost {
		return e.dispatchHost(callee.FuncIdx, args, p, tail)
	}
	body, ok := e.code.Body(callee.FuncIdx)
	if !ok {
		return 0, true, errUnreachableCodeReached
	}
	return e.enterFrame(body, args, p, tail, callee.InstanceID)
}

// callImported always suspends the dispatch loop for the embedder to run
// the host function (§4.8 Imported/host call, §9 Host-call suspension).
func (e *Executor) callImported(p callParams, args []V, tail bool) (Outcome, bool, error) {
	return e.dispatchHost(p.callee, args, p, tail)
}

// dispatchHost advances ip past this call and its trailer words and
// returns the Host outcome, recording everything the embedder needs to
// invoke the host function and hand results back via ResumeHost. The
// gathered argument values are staged into a scratch region directly above
// the current frame's own registers, so HostCall.Args can be expressed as
// an ordinary RegisterSpan in the paused frame's window (HostArgs reads it
// back out the same way any result span is read).
//
// For a normal call, results land in this call's own results span
// (callParams.resultsBase/resultsLen, in the *current* frame's window). For
// a tail call there is no callee frame left to address a results span
// within — per callParams' own contract, tail/return-calls reuse the
// frame's own Results — so Results is instead this frame's Results field,
// addressing the caller-below's window, and ResumeHost pops this frame
// rather than resuming inside it.
func (e *Executor) dispatchHost(funcIdx uint32, args []V, p callParams, tail bool) (Outcome, bool, error) {
	e.next(p.wordsConsumed())

	argBase := R(e.frame.Body.NumRegisters)
	if err := e.values.ensure(e.base + int(argBase) + len(args)); err != nil {
		return 0, true, err
	}
	for i, a := range args {
		e.values.set(e.base, argBase+R(i), a)
	}

	results := RegisterSpan{Base: p.resultsBase, Len: p.resultsLen}
	if tail {
		results = e.frame.Results
	}

	e.Pending = HostCall{
		FuncIdx: funcIdx,
		Args:    RegisterSpan{Base: argBase, Len: len(args)},
		Results: results,
		Tail:    tail,
	}
	return OutcomeHostCall, true, nil
}

// HostArgs reads out the argument values of a paused host call, addressed
// through Pending.Args exactly as ResumeHost addresses Pending.Results.
func (e *Executor) HostArgs() []V {
	out := make([]V, e.Pending.Args.Len)
	for i := range out {
		out[i] = e.values.at(e.base, e.Pending.Args.At(i))
	}
	return out
}

// enterFrame implements both normal-call frame push and tail-call frame
// reuse (§4.8). For a normal call it pushes a fresh frame above the
// current top of the value stack; for a tail call it overwrites the
// caller's own frame slot in place, keeping call-stack depth constant
// (GLOSSARY Tail call).
func (e *Executor) enterFrame(body *Body, args []V, p callParams, tail bool, calleeInstance uint32) (Outcome, bool, error) {
	var newBase int
	if tail {
		newBase = e.frame.Base
	} else {
		newBase = len(e.values.cells)
	}
	if err := e.values.pushFrame(newBase, body.NumRegisters); err != nil {
		return 0, true, err
	}
	for i, a := range args {
		e.values.set(newBase, R(i), a)
	}

	if tail {
		top := *e.calls.Top()
		top.Base = newBase
		top.Body = body
		top.Instance = calleeInstance
		e.calls.ReplaceTop(top)
	} else {
		e.next(p.wordsConsumed())
		frame := Frame{
			ReturnIP:       e.ip,
			ReturnInstance: e.frame.Instance,
			Base:           newBase,
			Results:        RegisterSpan{Base: p.resultsBase, Len: p.resultsLen},
			Instance:       calleeInstance,
			Body:           body,
		}
		if err := e.calls.Push(frame); err != nil {
			return 0, true, err
		}
	}

	e.frame = e.calls.Top()
	e.base = newBase
	e.ip = 0
	if calleeInstance != e.cache.InstanceID && e.resolver != nil {
		e.cache.refresh(e.resolver, calleeInstance)
	}
	return 0, false, nil
}

// execReturn implements the return family (§4.8 Return, supplemented per
// original_source/instrs.rs's split by register count and immediate
// width). It copies the popped frame's result values into the caller's
// designated result registers, restores the caller's ip/base/instance, and
// signals OutcomeReturned if the popped frame was the root.
func (e *Executor) execReturn(instr I) (Outcome, bool, error) {
	results := e.collectReturnValues(instr)

	popped := e.calls.Pop()
	e.values.truncate(popped.Base)

	if popped.IsRoot {
		// There is no caller frame to address a result span relative to;
		// the root's return values are the whole computation's output,
		// handed back directly rather than through a register write (§4.1
		// Outputs).
		e.Results = results
		return OutcomeReturned, true, nil
	}

	caller := e.calls.Top()
	for i, v := range results {
		if i >= popped.Results.Len {
			break
		}
		e.values.set(caller.Base, popped.Results.At(i), v)
	}

	e.frame = caller
	e.base = caller.Base
	e.ip = popped.ReturnIP
	if popped.Instance != popped.ReturnInstance && e.resolver != nil {
		e.cache.refresh(e.resolver, popped.ReturnInstance)
	}
	return 0, false, nil
}

// collectReturnValues reads the result cells this return instruction names
// out of the *current* (about-to-be-popped) frame's window, before it is
// truncated away.
//
// The ReturnNez family's condition register (already tested in executor.go
// before execReturn is ever called) occupies A, so its value operands are
// shifted one slot over relative to the unconditional Return forms, which
// have no condition and so start their value operands at A.
func (e *Executor) collectReturnValues(instr I) []V {
	switch instr.Op {
	case OpcodeReturn, OpcodeReturnNez:
		return nil
	case OpcodeReturnReg:
		return []V{e.values.at(e.base, instr.A)}
	case OpcodeReturnNezReg:
		return []V{e.values.at(e.base, instr.B)}
	case OpcodeReturnReg2:
		return []V{e.values.at(e.base, instr.A), e.values.at(e.base, instr.B)}
	case OpcodeReturnNezReg2:
		return []V{e.values.at(e.base, instr.B), e.values.at(e.base, instr.C)}
	case OpcodeReturnReg3:
		return []V{e.values.at(e.base, instr.A), e.values.at(e.base, instr.B), e.values.at(e.base, instr.C)}
	case OpcodeReturnImm32:
		return []V{V(uint32(instr.Imm))}
	case OpcodeReturnNezImm32:
		return []V{V(uint32(instr.Imm))}
	case OpcodeReturnI64Imm32:
		return []V{VFromI64(instr.Imm)}
	case OpcodeReturnF64Imm32:
		return []V{VFromF64(float64(int32(instr.Imm)))}
	case OpcodeReturnSpan:
		n := int(instr.Aux)
		out := make([]V, n)
		for i := 0; i < n; i++ {
			out[i] = e.values.at(e.base, instr.A+R(i))
		}
		return out
	case OpcodeReturnNezSpan:
		n := int(instr.Aux)
		out := make([]V, n)
		for i := 0; i < n; i++ {
			out[i] = e.values.at(e.base, instr.B+R(i))
		}
		return out
	case OpcodeReturnMany:
		n := int(instr.Aux)
		regs := e.readRegList(1, n)
		out := make([]V, n)
		for i, r := range regs {
			out[i] = e.values.at(e.base, r)
		}
		return out
	case OpcodeReturnNezMany:
		// The condition occupies the head word's A field, so the packed
		// register list's trailer words start at the same offset as the
		// unconditional form: the condition costs no extra word, only the
		// A register slot already present in every head.
		n := int(instr.Aux)
		regs := e.readRegList(1, n)
		out := make([]V, n)
		for i, r := range regs {
			out[i] = e.values.at(e.base, r)
		}
		return out
	}
	return nil
}
