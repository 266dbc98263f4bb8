// Package hostmodule is the demonstration "outer driver" §4.8/§9 assign to
// the embedder: it resolves host-call pauses reported by regvm.Executor and
// logs their dispatch with go.uber.org/zap, the way wippyai/wasm-runtime
// wires structured logging around a wazero core.
package hostmodule

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wazero-labs/rie/regvm"
)

// Func is a host function an embedder registers against a function index.
// It receives the paused call's argument cells and returns the result
// cells to write back before the dispatch loop resumes.
type Func func(args []regvm.V) ([]regvm.V, error)

// Registry maps host function indices to their Go implementations and logs
// every dispatch. Construct it with NewRegistry: the zero value has a nil
// function map and a nil logger, so Define and Dispatch on it panic.
type Registry struct {
	funcs map[uint32]Func
	log   *zap.Logger
}

// NewRegistry constructs a Registry that logs through log. A nil log is
// replaced with zap.NewNop(), matching the teacher's own "a library core
// stays silent" convention extended to this optional embedder layer.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{funcs: make(map[uint32]Func), log: log}
}

// Define registers fn under funcIdx, overwriting any previous registration.
func (r *Registry) Define(funcIdx uint32, fn Func) {
	r.funcs[funcIdx] = fn
}

// Dispatch runs the host function named by a paused Executor's Pending
// call, logs the invocation, and resumes the executor with the results.
// It returns the resumed Run outcome.
func (r *Registry) Dispatch(exec *regvm.Executor) (regvm.Outcome, error) {
	pending := exec.Pending
	fn, ok := r.funcs[pending.FuncIdx]
	if !ok {
		return 0, fmt.Errorf("hostmodule: no host function registered for index %d", pending.FuncIdx)
	}

	args := exec.HostArgs()
	r.log.Debug("host call dispatch",
		zap.Uint32("func_idx", pending.FuncIdx),
		zap.Int("arg_count", len(args)),
		zap.Int("result_count", pending.Results.Len),
	)

	results, err := fn(args)
	if err != nil {
		r.log.Warn("host call failed",
			zap.Uint32("func_idx", pending.FuncIdx),
			zap.Error(err),
		)
		return 0, err
	}

	return exec.ResumeHost(results)
}

// Drive runs exec to completion, dispatching every host-call pause through
// r until the root function returns or a trap occurs.
func (r *Registry) Drive(exec *regvm.Executor) (regvm.Outcome, error) {
	outcome, err := exec.Run()
	for err == nil && outcome == regvm.OutcomeHostCall {
		outcome, err = r.Dispatch(exec)
	}
	return outcome, err
}
