package regvm

// Store is the external, mutable collaborator that owns every linear
// memory, table, global, and segment in the program (§6 Inputs, §9 Cyclic
// references). regvm never allocates these resources itself: it addresses
// them through small integer handles resolved via the cached instance
// (instance.go), exactly the arena+index pattern the design notes call for.
//
// Implementations are free to back this however they like (flat byte
// slices, mmap'd regions, a database); regvm's only requirement is that
// every method below is safe to call repeatedly for the lifetime of an
// Executor and that writes are immediately visible to subsequent reads
// within the same Store (§5 Ordering).
type Store interface {
	// MemoryBytes returns the addressable byte slice for the memory
	// identified by handle. Implementations must return the *current*
	// slice — callers must not cache it across a MemoryGrow.
	MemoryBytes(handle MemoryHandle) []byte
	// MemoryGrow grows the memory by deltaPages 64KiB pages, returning the
	// previous size in pages, or -1 if the grow is refused (§4.7, §9 Open
	// questions: -1 is reported uniformly for both limit-exceeded and
	// allocator-refused).
	MemoryGrow(handle MemoryHandle, deltaPages uint32) int32
	// MemorySize returns the current memory size in pages.
	MemorySize(handle MemoryHandle) uint32
	// MemoryInit copies length bytes from the passive data segment at
	// segIdx, starting at srcOffset, into memory at dstOffset. It must
	// check bounds and the segment's dropped state atomically: no byte is
	// written if the copy would fail (§4.7).
	MemoryInit(handle MemoryHandle, dstOffset, srcOffset, length uint32, segIdx uint32) error
	// DataDrop marks a passive data segment as consumed (§4.7).
	DataDrop(segIdx uint32)

	// TableGet returns the cell at index in the table identified by
	// handle.
	TableGet(handle TableHandle, index uint32) (V, error)
	// TableSet writes the cell at index in the table identified by
	// handle.
	TableSet(handle TableHandle, index uint32, v V) error
	// TableSize returns the current table size in elements.
	TableSize(handle TableHandle) uint32
	// TableGrow grows the table by delta elements filled with init,
	// returning the previous size, or -1 if refused (§4.7, same
	// unification as MemoryGrow).
	TableGrow(handle TableHandle, delta uint32, init V) int32
	// TableInit copies length elements from the passive element segment
	// at segIdx into the table at dstOffset, starting at srcOffset.
	TableInit(handle TableHandle, dstOffset, srcOffset, length uint32, segIdx uint32) error
	// ElemDrop marks a passive element segment as consumed (§4.7).
	ElemDrop(segIdx uint32)

	// GlobalGet returns the current value of global idx in the active
	// instance.
	GlobalGet(idx uint32) V
	// GlobalSet writes global idx in the active instance.
	GlobalSet(idx uint32, v V)

	// ResolveFuncRef materializes a function-reference value for funcIdx
	// (§4.5 RefFunc).
	ResolveFuncRef(funcIdx uint32) FuncRef
	// ResolveIndirect resolves (table, index) to a callable function
	// identity and its signature, for CallIndirect (§4.8). err is
	// TrapTableOutOfBounds if index is out of range for the table, or
	// TrapIndirectCallToNull if the slot holds the null function
	// reference; it is nil on success.
	ResolveIndirect(handle TableHandle, index uint32) (callee FuncIdentity, err error)

	// FuelRemaining and ConsumeFuel back the ConsumeFuel opcode (§4.9).
	FuelRemaining() uint64
	ConsumeFuel(n uint64) (underflowed bool)
}

// MemoryHandle and TableHandle are small integer handles into a Store's
// arena of resources, per §9's arena+index design note.
type MemoryHandle uint32

// TableHandle indexes a table owned by the Store.
type TableHandle uint32

// FuncIdentity names a resolved callee: either an internal function body
// (looked up via CodeMap) or a host (imported) function, plus its dedup
// signature for CallIndirect's BadSignature check (§4.8).
type FuncIdentity struct {
	// FuncIdx is the global function index, used as the CodeMap key for
	// internal functions and as the host-function identity for imported
	// ones.
	FuncIdx uint32
	// IsHost reports whether FuncIdx names a host function (requiring a
	// dispatch pause, §4.8 Imported/host call) rather than an internal
	// body.
	IsHost bool
	// SignatureIdx is the callee's dedup signature identity, compared
	// against CallIndirect's expected type.
	SignatureIdx uint32
	// InstanceID identifies which instance owns FuncIdx, used to detect
	// cross-instance calls that must refresh the cached instance view
	// (§3 Cached instance invariant, §4.8).
	InstanceID uint32
}
