package regvm

// CachedInstance is a per-executor materialization of the active instance's
// imported resources, giving O(1) access to the default memory/table/
// globals without an indirection through a module-instance lookup on every
// opcode (§3 Cached instance, §4.1 Rationale). It is refreshed only on
// cross-instance call/return (§3 invariant, §5 Ordering).
type CachedInstance struct {
	InstanceID    uint32
	DefaultMemory MemoryHandle
	DefaultTable  TableHandle
	HasMemory     bool
	HasTable      bool
}

// InstanceResolver looks up the resource handles for an instance, backing
// CachedInstance refreshes on a cross-instance transition. It is supplied
// by the embedder alongside Store; unlike Store it is not on the opcode hot
// path, so it is a separate, smaller contract.
type InstanceResolver interface {
	// Instance returns the default memory/table handles for instanceID.
	Instance(instanceID uint32) CachedInstance
}

// refresh reseats the cached instance view for instanceID if it differs
// from the one already cached, per the §3 coherence invariant.
func (c *CachedInstance) refresh(r InstanceResolver, instanceID uint32) {
	if c.InstanceID == instanceID {
		return
	}
	*c = r.Instance(instanceID)
}
