package regvm

// FuelCounter is a small, embeddable fuel accounting helper that a Store
// implementation can compose to back FuelRemaining/ConsumeFuel (§4.9).
// ConsumeFuel itself is dispatched directly in executor.go's step, since it
// is a single-word, non-branching, non-trapping-by-default opcode: the
// only failure mode is underflow, reported back to the caller as
// TrapOutOfFuel.
//
// Per §4.9, the instruction never checks whether fuel metering is enabled
// — its presence in the stream is the only signal — so a Store that
// doesn't want metering simply never emits ConsumeFuel and never
// constructs a FuelCounter.
type FuelCounter struct {
	remaining uint64
}

// NewFuelCounter creates a counter seeded with budget units of fuel.
func NewFuelCounter(budget uint64) *FuelCounter {
	return &FuelCounter{remaining: budget}
}

// Remaining implements the FuelRemaining half of the Store contract.
func (f *FuelCounter) Remaining() uint64 { return f.remaining }

// Consume implements the ConsumeFuel half of the Store contract: it
// subtracts n and reports true if that would have driven the counter
// negative, in which case the counter is left at zero rather than
// wrapping (§8 invariant: "Fuel counter is monotonically non-increasing;
// it reaches zero at most once before an OutOfFuel trap").
func (f *FuelCounter) Consume(n uint64) (underflowed bool) {
	if n > f.remaining {
		f.remaining = 0
		return true
	}
	f.remaining -= n
	return false
}
