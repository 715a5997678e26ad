package broker

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

type member struct {
	id string

	mu       sync.Mutex
	received []string
	fail     error
	closed   int
}

func newMember(id string) *member {
	return &member{id: id}
}

func (m *member) ID() string { return m.id }

func (m *member) Send(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.received = append(m.received, line)
	return nil
}

func (m *member) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

func (m *member) lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.received...)
}

func TestRegistry_Add(test *testing.T) {
	r := NewRegistry()
	m := newMember("m-1")
	if err := r.Add(m); err != nil {
		test.Error("Registry.Add: unexpected error", err)
	}
	if err := r.Add(m); err != ErrDuplicateMember {
		test.Error("Expected error:", ErrDuplicateMember, "got:", err)
	}
	if err := r.Add(newMember("m-1")); err != ErrDuplicateMember {
		test.Error("Expected error for the same ID:", ErrDuplicateMember, "got:", err)
	}
	if err := r.Add(nil); err != ErrNilMember {
		test.Error("Expected error:", ErrNilMember, "got:", err)
	}
	if r.Len() != 1 {
		test.Error("Unexpected registry len", r.Len())
	}
}

func TestRegistry_Remove(test *testing.T) {
	r := NewRegistry()
	m := newMember("m-1")
	r.Add(m)
	if r.Remove(newMember("m-1")) {
		test.Error("Registry.Remove: removed different member with the same ID")
	}
	if !r.Remove(m) {
		test.Error("Registry.Remove: member was not removed")
	}
	if r.Remove(m) {
		test.Error("Registry.Remove: repeated remove must be no-op")
	}
	if r.Remove(nil) {
		test.Error("Registry.Remove(nil): must be no-op")
	}
	if r.Len() != 0 {
		test.Error("Unexpected registry len", r.Len())
	}
}

func TestRegistry_SnapshotIsCopy(test *testing.T) {
	r := NewRegistry()
	r.Add(newMember("m-1"))
	r.Add(newMember("m-2"))
	snapshot := r.Snapshot()
	r.Add(newMember("m-3"))
	r.Remove(snapshot[0])
	if len(snapshot) != 2 {
		test.Error("Snapshot has changed after registry mutation", len(snapshot))
	}
	if r.Len() != 2 {
		test.Error("Unexpected registry len", r.Len())
	}
}

func TestRegistry_ConcurrentAddRemove(test *testing.T) {
	const workers, rounds = 32, 50
	r := NewRegistry()
	kept := make([]*member, workers)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				m := newMember(fmt.Sprintf("w%d-%d", w, i))
				if err := r.Add(m); err != nil {
					test.Error("Registry.Add: unexpected error", err)
					return
				}
				if n := len(r.Snapshot()); n < 1 || n > workers {
					test.Error("Snapshot size out of bounds", n)
				}
				if i == rounds-1 {
					kept[w] = m
					continue
				}
				if !r.Remove(m) {
					test.Error("Registry.Remove: member has gone", m.ID())
				}
			}
		}(w)
	}
	wg.Wait()

	if r.Len() != workers {
		test.Error("Expected registry len:", workers, "got:", r.Len())
	}
	seen := map[string]bool{}
	for _, m := range r.Snapshot() {
		if seen[m.ID()] {
			test.Error("Duplicated member in snapshot", m.ID())
		}
		seen[m.ID()] = true
	}
	for _, m := range kept {
		if !seen[m.ID()] {
			test.Error("Member is missed in snapshot", m.ID())
		}
	}
}

func TestRegistry_Broadcast(test *testing.T) {
	r := NewRegistry()
	alice, bob, carol := newMember("alice"), newMember("bob"), newMember("carol")
	bob.fail = errors.New("broken pipe")
	r.Add(alice)
	r.Add(bob)
	r.Add(carol)

	d := r.Broadcast("Alice: hello")
	if d.Recipients != 3 || d.Delivered() != 2 {
		test.Error("Unexpected delivery", d)
	}
	if d.Failed["bob"] != bob.fail {
		test.Error("Failed send is not reported", d.Failed)
	}
	for _, m := range []*member{alice, carol} {
		if lines := m.lines(); len(lines) != 1 || lines[0] != "Alice: hello" {
			test.Error(m.ID(), "unexpected lines", lines)
		}
	}
	if r.Len() != 3 {
		test.Error("Broadcast must not change registry", r.Len())
	}
}

func TestRegistry_BroadcastKeepsOrder(test *testing.T) {
	r := NewRegistry()
	m := newMember("m-1")
	r.Add(m)
	expected := []string{"1", "2", "3", "4"}
	for _, line := range expected {
		r.Broadcast(line)
	}
	actual := m.lines()
	for i := range expected {
		if actual[i] != expected[i] {
			test.Fatal("Unexpected order", actual)
		}
	}
}

func TestRegistry_BroadcastEmpty(test *testing.T) {
	d := NewRegistry().Broadcast("nobody")
	if d.Recipients != 0 || d.Failed != nil {
		test.Error("Unexpected delivery", d)
	}
}
