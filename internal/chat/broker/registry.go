package broker

import "sync"

// Member - a party kept by Registry and addressed by broadcasts.
type Member interface {
	// ID - unique member identity.
	ID() string
	// Send - delivers single line to the member.
	Send(line string) error
	// Close - releases underlying connection. Must be safe to call several times.
	Close() error
}

// Registry - set of currently active members.
// The lock covers the set itself only and is never held during member IO.
type Registry struct {
	mu   sync.Mutex
	list map[string]Member
}

// NewRegistry - builds empty registry.
func NewRegistry() *Registry {
	return &Registry{
		list: make(map[string]Member),
	}
}

// Len - returns number of registered members.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.list)
}

// Add - registers member.
func (r *Registry) Add(m Member) error {
	if m == nil {
		return ErrNilMember
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.list[m.ID()]; ok {
		return ErrDuplicateMember
	}
	r.list[m.ID()] = m
	return nil
}

// Remove - unregisters member, reports whether it was present.
// Removing unknown member is not an error.
func (r *Registry) Remove(m Member) bool {
	if m == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if kept, ok := r.list[m.ID()]; !ok || kept != m {
		return false
	}
	delete(r.list, m.ID())
	return true
}

// Snapshot - returns point-in-time copy of registered members.
func (r *Registry) Snapshot() []Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make([]Member, 0, len(r.list))
	for _, m := range r.list {
		members = append(members, m)
	}
	return members
}
