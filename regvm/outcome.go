package regvm

// Outcome is what the dispatch loop hands back to the outer driver: one of
// the three terminal states §4.1's contract names (§6 Outputs).
type Outcome uint8

const (
	// OutcomeReturned means execution returned past the root frame;
	// results are in Executor.Results.
	OutcomeReturned Outcome = iota
	// OutcomeHostCall means execution paused to let the embedder invoke a
	// host function; Executor.Pending describes what to call and where
	// to write its results (§4.8 Imported/host call, §9 Host-call
	// suspension).
	OutcomeHostCall
)

// HostCall describes a paused host-function invocation: which function,
// which registers (in the *paused* frame's window) hold the arguments, and
// which register span the results must be written back to before
// resuming.
//
// Tail marks a host call made from a tail position (ReturnCallImported, or
// ReturnCallIndirect resolving to a host function): there is no callee
// frame to resume into, so Results addresses the *paused frame's own
// caller's* window rather than the paused frame's, and ResumeHost pops the
// paused frame instead of re-entering it (§4.8 Imported/host call + Tail
// call).
type HostCall struct {
	FuncIdx uint32
	Args    RegisterSpan
	Results RegisterSpan
	Tail    bool
}
