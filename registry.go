package citygrid

import (
	"sync"
)

// Registry maps terrain names to small integer ids & back again.
//
// Cells on the grid only ever hold ids, names exist at the edges (export,
// downstream tile lookups). A Registry is created once by the owner & shared
// by pointer with every city built from it; it is safe for concurrent use.
type Registry struct {
	lock   sync.RWMutex
	byName map[string]uint16
	names  []string
}

// NewRegistry returns a Registry where "void" is already registered as id 0.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(string(Void))
	return r
}

// Register returns the id for name, assigning the next free id if the name
// is new. Calling Register again with the same name returns the same id.
func (r *Registry) Register(name string) uint16 {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.byName == nil { // zero value Registry, void is always 0
		r.byName = map[string]uint16{string(Void): 0}
		r.names = []string{string(Void)}
	}

	id, ok := r.byName[name]
	if ok {
		return id
	}

	id = uint16(len(r.names))
	r.byName[name] = id
	r.names = append(r.names, name)
	return id
}

// ID returns the id for name or 0 (void) if name is unknown
func (r *Registry) ID(name string) uint16 {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.byName[name]
}

// Name returns the name for id or "void" if id is unknown
func (r *Registry) Name(id uint16) string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if int(id) >= len(r.names) {
		return string(Void)
	}
	return r.names[id]
}

// Len returns how many names are registered (including void)
func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.names)
}
