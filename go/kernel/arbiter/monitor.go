package arbiter

import "sync"

// Memory is the guest memory access capability the arbiter needs: a
// plain 32-bit read, plus the plain write the exclusive monitor's
// store ultimately goes through. Implementations report failure only
// for genuinely inaccessible (unmapped) addresses.
type Memory interface {
	Read32(addr uint64) (int32, error)
	Write32(addr uint64, val int32) error
}

// ExclusiveMonitor is the simulated CPU's exclusive-monitor capability:
// load-exclusive marks a reservation on addr, and store-exclusive only
// succeeds if nothing has written that address since. Spurious store
// failure is a retry signal, never an error — real failures only come
// from the underlying Memory access itself.
type ExclusiveMonitor interface {
	ExclusiveRead32(addr uint64) (int32, error)
	ExclusiveWrite32(addr uint64, val int32) (ok bool, err error)
	ClearExclusive(addr uint64)
}

// monitor is the default ExclusiveMonitor: it layers a reservation
// table over a Memory, the same relationship the simulated ISA has to
// guest RAM. A reservation is lost the moment the observed value
// changes out from under it, modeling "another core's store hit my
// cache line" without needing real cache-line tracking.
type monitor struct {
	mem Memory

	mu     sync.Mutex
	held   map[uint64]int32
	writer func(addr uint64, val int32) error
}

// newMonitor builds a monitor over mem, whose stores go through write.
func newMonitor(mem Memory, write func(addr uint64, val int32) error) *monitor {
	return &monitor{mem: mem, held: make(map[uint64]int32), writer: write}
}

func (m *monitor) ExclusiveRead32(addr uint64) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.mem.Read32(addr)
	if err != nil {
		return 0, err
	}
	m.held[addr] = v
	return v, nil
}

func (m *monitor) ExclusiveWrite32(addr uint64, val int32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reserved, ok := m.held[addr]
	if !ok {
		return false, nil
	}
	delete(m.held, addr)
	cur, err := m.mem.Read32(addr)
	if err != nil {
		return false, err
	}
	if cur != reserved {
		return false, nil
	}
	if err := m.writer(addr, val); err != nil {
		return false, err
	}
	return true, nil
}

func (m *monitor) ClearExclusive(addr uint64) {
	m.mu.Lock()
	delete(m.held, addr)
	m.mu.Unlock()
}

// maxMonitorRetries bounds the store-failure retry loop. The reference
// kernel retries recursively until the store succeeds; this is a
// bounded iterative loop instead so pathological monitor churn can't
// grow the stack. In practice the scheduler lock already excludes
// every other arbiter path on the same address, so a store only ever
// loses its reservation to a guest write that bypassed the arbiter
// entirely; this cap just keeps that case from spinning forever if
// something is persistently hammering the word.
const maxMonitorRetries = 1 << 16

// decrementIfLessThan: exclusive-read addr; if the observed value is
// less than value, try to store value-1; retry on spurious store
// failure. Returns the value observed before any write.
func decrementIfLessThan(mon ExclusiveMonitor, addr uint64, value int32) (int32, error) {
	for i := 0; i < maxMonitorRetries; i++ {
		current, err := mon.ExclusiveRead32(addr)
		if err != nil {
			return 0, err
		}
		if current >= value {
			mon.ClearExclusive(addr)
			return current, nil
		}
		ok, err := mon.ExclusiveWrite32(addr, current-1)
		if err != nil {
			return 0, err
		}
		if ok {
			return current, nil
		}
	}
	return 0, errTooManyMonitorRetries
}

// updateIfEqual: exclusive-read addr; if it equals value, try to store
// newValue; retry on spurious store failure. Returns the value
// observed before any write.
func updateIfEqual(mon ExclusiveMonitor, addr uint64, value, newValue int32) (int32, error) {
	for i := 0; i < maxMonitorRetries; i++ {
		current, err := mon.ExclusiveRead32(addr)
		if err != nil {
			return 0, err
		}
		if current != value {
			mon.ClearExclusive(addr)
			return current, nil
		}
		ok, err := mon.ExclusiveWrite32(addr, newValue)
		if err != nil {
			return 0, err
		}
		if ok {
			return current, nil
		}
	}
	return 0, errTooManyMonitorRetries
}
