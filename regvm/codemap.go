package regvm

// Body is a translated function body: a flat sequence of tagged instruction
// words (§3 Instruction word). Bodies are owned by the CodeMap for the
// program's lifetime, so an ip derived from one stays valid for as long as
// any frame referencing it is live (§3 Lifecycle invariants).
type Body struct {
	// Instrs is the full instruction stream, head words interleaved with
	// their non-executable trailer words.
	Instrs []I
	// NumRegisters is the size of the register window this body needs,
	// locals plus temporaries, guaranteed by the translator to bound
	// every R the body references (§3 Register).
	NumRegisters int
	// NumParams is the number of leading registers that are call
	// arguments rather than locals.
	NumParams int
	// NumResults is the width of the result register span callers must
	// provide (§3 Call frame `results`).
	NumResults int
	// SignatureIdx is this function's dedup signature identity. The
	// CallIndirect check (§4.8) compares the FuncIdentity.SignatureIdx the
	// Store resolves, not this field.
	SignatureIdx uint32
	// InstanceID identifies the instance this body belongs to.
	InstanceID uint32
}

// CodeMap is the immutable mapping from function identity to translated
// body, the sole "Inputs to the core" item besides Store (§6). It never
// mutates once a program is loaded; regvm holds only a reference to it.
type CodeMap interface {
	// Body returns the translated body for funcIdx, or ok=false if the
	// index is unknown to this code map (a translator/linker invariant
	// violation rather than a guest-visible trap).
	Body(funcIdx uint32) (body *Body, ok bool)
}

// MapCodeMap is a minimal in-memory CodeMap, the register-VM equivalent of
// wazero's compiledModule table keyed by function index rather than module
// ID — sufficient for embedding and for this package's own tests.
type MapCodeMap struct {
	bodies map[uint32]*Body
}

// NewMapCodeMap constructs an empty MapCodeMap.
func NewMapCodeMap() *MapCodeMap {
	return &MapCodeMap{bodies: make(map[uint32]*Body)}
}

// Define registers body under funcIdx.
func (m *MapCodeMap) Define(funcIdx uint32, body *Body) {
	m.bodies[funcIdx] = body
}

// Body implements CodeMap.
func (m *MapCodeMap) Body(funcIdx uint32) (*Body, bool) {
	b, ok := m.bodies[funcIdx]
	return b, ok
}
