package arbiter

import (
	"errors"
	"sync"
)

// fakeMemory is a tiny in-process guest memory model: a map of 32-bit
// words guarded by a mutex, with an injectable fault address to
// exercise ErrInvalidMemory paths.
type fakeMemory struct {
	mu       sync.Mutex
	words    map[uint64]int32
	faultsAt map[uint64]bool
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{words: make(map[uint64]int32), faultsAt: make(map[uint64]bool)}
}

func (m *fakeMemory) set(addr uint64, v int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words[addr] = v
}

func (m *fakeMemory) get(addr uint64) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.words[addr]
}

func (m *fakeMemory) faultOn(addr uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faultsAt[addr] = true
}

func (m *fakeMemory) Read32(addr uint64) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.faultsAt[addr] {
		return 0, errors.New("unmapped address")
	}
	return m.words[addr], nil
}

func (m *fakeMemory) Write32(addr uint64, val int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.faultsAt[addr] {
		return errors.New("unmapped address")
	}
	m.words[addr] = val
	return nil
}
