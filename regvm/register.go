package regvm

// R is a register index within the current frame's window (§3 Register).
// It is not a machine register: it is a small signed offset the translator
// guarantees is in-range for the body that references it. Negative indices
// address caller-supplied result slots; non-negative indices address
// locals and temporaries.
type R int16

// resolve returns the absolute value-stack index of r relative to a frame
// based at base. This is the sole place `R -> address` translation happens,
// matching §3's "Resolving R -> address is sp + R".
func (r R) resolve(base int) int { return base + int(r) }

// at reads the cell addressed by r in the frame based at base.
func (s *ValueStack) at(base int, r R) V { return s.cells[r.resolve(base)] }

// set writes the cell addressed by r in the frame based at base.
func (s *ValueStack) set(base int, r R, v V) { s.cells[r.resolve(base)] = v }
