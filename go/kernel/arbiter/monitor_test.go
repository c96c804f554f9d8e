package arbiter

import "testing"

func TestMonitorExclusiveWriteLostOnRace(t *testing.T) {
	mem := newFakeMemory()
	mem.set(0x10, 5)
	mon := newMonitor(mem, mem.Write32)

	if v, err := mon.ExclusiveRead32(0x10); err != nil || v != 5 {
		t.Fatalf("ExclusiveRead32 = %d, %v", v, err)
	}

	// Simulate a racing writer that bypasses the monitor entirely.
	mem.set(0x10, 999)

	ok, err := mon.ExclusiveWrite32(0x10, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected store to lose its reservation")
	}
	if mem.get(0x10) != 999 {
		t.Fatal("failed store must not have written")
	}

	// A fresh reservation against the new value succeeds normally.
	if v, _ := mon.ExclusiveRead32(0x10); v != 999 {
		t.Fatal("expected reservation over the new value")
	}
	ok, err = mon.ExclusiveWrite32(0x10, 1000)
	if err != nil || !ok {
		t.Fatalf("expected fresh reservation to store: ok=%v err=%v", ok, err)
	}
	if mem.get(0x10) != 1000 {
		t.Fatal("store did not take effect")
	}
}

func TestMonitorPropagatesMemoryFault(t *testing.T) {
	mem := newFakeMemory()
	mem.faultOn(0x20)
	mon := newMonitor(mem, mem.Write32)
	if _, err := mon.ExclusiveRead32(0x20); err == nil {
		t.Fatal("expected fault from unmapped address")
	}
}

// racyMonitor fails the first N exclusive writes to simulate a
// spurious store-exclusive loss, then behaves like a plain monitor.
type racyMonitor struct {
	*monitor
	failsRemaining int
}

func (m *racyMonitor) ExclusiveWrite32(addr uint64, val int32) (bool, error) {
	if m.failsRemaining > 0 {
		m.failsRemaining--
		return false, nil
	}
	return m.monitor.ExclusiveWrite32(addr, val)
}

func TestDecrementIfLessThanRetriesOnSpuriousFailure(t *testing.T) {
	mem := newFakeMemory()
	mem.set(0x30, 3)
	mon := &racyMonitor{monitor: newMonitor(mem, mem.Write32), failsRemaining: 2}

	got, err := decrementIfLessThan(mon, 0x30, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected observed value 3, got %d", got)
	}
	if mem.get(0x30) != 2 {
		t.Fatalf("expected decrement to land at 2, got %d", mem.get(0x30))
	}
}

func TestDecrementIfLessThanNoWriteWhenNotLess(t *testing.T) {
	mem := newFakeMemory()
	mem.set(0x40, 10)
	mon := newMonitor(mem, mem.Write32)

	got, err := decrementIfLessThan(mon, 0x40, 5)
	if err != nil || got != 10 {
		t.Fatalf("got=%d err=%v", got, err)
	}
	if mem.get(0x40) != 10 {
		t.Fatal("predicate rejected; must not have written")
	}
}

func TestUpdateIfEqualRetriesOnSpuriousFailure(t *testing.T) {
	mem := newFakeMemory()
	mem.set(0x50, 7)
	mon := &racyMonitor{monitor: newMonitor(mem, mem.Write32), failsRemaining: 3}

	got, err := updateIfEqual(mon, 0x50, 7, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected observed value 7, got %d", got)
	}
	if mem.get(0x50) != 42 {
		t.Fatalf("expected store to land at 42, got %d", mem.get(0x50))
	}
}

func TestUpdateIfEqualNoWriteWhenNotEqual(t *testing.T) {
	mem := newFakeMemory()
	mem.set(0x60, 1)
	mon := newMonitor(mem, mem.Write32)

	got, err := updateIfEqual(mon, 0x60, 2, 99)
	if err != nil || got != 1 {
		t.Fatalf("got=%d err=%v", got, err)
	}
	if mem.get(0x60) != 1 {
		t.Fatal("mismatch predicate; must not have written")
	}
}

func TestUpdateIfEqualPropagatesFault(t *testing.T) {
	mem := newFakeMemory()
	mem.set(0x70, 1)
	mem.faultOn(0x70)
	mon := newMonitor(mem, mem.Write32)
	if _, err := updateIfEqual(mon, 0x70, 1, 2); err == nil {
		t.Fatal("expected fault to propagate")
	}
}
