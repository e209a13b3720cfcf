package memsim

import (
	"errors"
	"testing"
)

func TestAllocateStackOverflowIsAtomic(t *testing.T) {
	cfg := DefaultConfig()
	sim := NewSimulator(cfg)

	if err := sim.AllocateStack("f", 100); err != nil {
		t.Fatalf("AllocateStack(f, 100) error = %v", err)
	}
	before := sim.Snapshot()

	err := sim.AllocateStack("g", cfg.StackCapacity)
	if !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("AllocateStack(g, capacity) error = %v, want ErrStackOverflow", err)
	}

	after := sim.Snapshot()
	if after.StackUsed != before.StackUsed {
		t.Errorf("StackUsed = %d after failed push, want %d", after.StackUsed, before.StackUsed)
	}
	if after.ActiveFrames != 1 {
		t.Errorf("ActiveFrames = %d, want 1", after.ActiveFrames)
	}
}

func TestStackUsedMatchesFrameSum(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	sizes := []int{64, 128, 32}
	for i, size := range sizes {
		if err := sim.AllocateStack("fn", size); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	sum := 0
	for _, f := range sim.Frames() {
		sum += f.SizeBytes
	}
	if snap := sim.Snapshot(); snap.StackUsed != sum {
		t.Errorf("StackUsed = %d, want frame sum %d", snap.StackUsed, sum)
	}

	if err := sim.DeallocateStack(); err != nil {
		t.Fatalf("DeallocateStack: %v", err)
	}
	if snap := sim.Snapshot(); snap.StackUsed != 64+128 {
		t.Errorf("StackUsed after pop = %d, want %d", snap.StackUsed, 64+128)
	}
}

func TestDeallocateEmptyStack(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	if err := sim.DeallocateStack(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("DeallocateStack on empty = %v, want ErrEmptyStack", err)
	}
}

func TestHeapRoundTrip(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	addr, err := sim.AllocateHeap(64)
	if err != nil {
		t.Fatalf("AllocateHeap: %v", err)
	}
	if err := sim.DeallocateHeap(addr); err != nil {
		t.Fatalf("DeallocateHeap: %v", err)
	}
	if snap := sim.Snapshot(); snap.LeakCount != 0 {
		t.Errorf("LeakCount = %d, want 0", snap.LeakCount)
	}
	if snap := sim.Snapshot(); snap.HeapUsed != 0 {
		t.Errorf("HeapUsed = %d, want 0", snap.HeapUsed)
	}
}

func TestHeapAddressesMonotonic(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	a, _ := sim.AllocateHeap(16)
	if err := sim.DeallocateHeap(a); err != nil {
		t.Fatalf("DeallocateHeap: %v", err)
	}
	b, _ := sim.AllocateHeap(16)
	if b <= a {
		t.Errorf("second address %#x not past first %#x: freed space reused", b, a)
	}
	// The freed block stays in place, just unmarked.
	if len(sim.Blocks()) != 2 {
		t.Errorf("len(Blocks) = %d, want 2", len(sim.Blocks()))
	}
}

func TestHeapOverflow(t *testing.T) {
	cfg := DefaultConfig()
	sim := NewSimulator(cfg)
	if _, err := sim.AllocateHeap(cfg.HeapCapacity + 1); !errors.Is(err, ErrHeapOverflow) {
		t.Errorf("AllocateHeap(capacity+1) = %v, want ErrHeapOverflow", err)
	}
	if snap := sim.Snapshot(); snap.HeapUsed != 0 || snap.LeakCount != 0 {
		t.Errorf("failed allocation mutated state: %+v", snap)
	}
}

func TestInvalidFree(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	if err := sim.DeallocateHeap(0xdead); !errors.Is(err, ErrInvalidFree) {
		t.Errorf("DeallocateHeap(unknown) = %v, want ErrInvalidFree", err)
	}

	addr, _ := sim.AllocateHeap(8)
	if err := sim.DeallocateHeap(addr); err != nil {
		t.Fatalf("first free: %v", err)
	}
	if err := sim.DeallocateHeap(addr); !errors.Is(err, ErrInvalidFree) {
		t.Errorf("double free = %v, want ErrInvalidFree", err)
	}
}

func TestVariableShadowing(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	if err := sim.AllocateStack("outer", 32); err != nil {
		t.Fatal(err)
	}
	if err := sim.SetVariable("x", "1", "int"); err != nil {
		t.Fatal(err)
	}
	if err := sim.AllocateStack("inner", 32); err != nil {
		t.Fatal(err)
	}
	if err := sim.SetVariable("x", "2", "int"); err != nil {
		t.Fatal(err)
	}

	if v, ok := sim.GetVariable("x"); !ok || v.Value != "2" {
		t.Errorf("GetVariable(x) = %v, %v, want inner value 2", v, ok)
	}

	if err := sim.DeallocateStack(); err != nil {
		t.Fatal(err)
	}
	if v, ok := sim.GetVariable("x"); !ok || v.Value != "1" {
		t.Errorf("GetVariable(x) after pop = %v, %v, want outer value 1", v, ok)
	}

	if _, ok := sim.GetVariable("missing"); ok {
		t.Error("GetVariable(missing) found a binding")
	}
}

func TestSetVariableNeedsFrame(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	if err := sim.SetVariable("x", "1", "int"); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("SetVariable with no frame = %v, want ErrEmptyStack", err)
	}
}

func TestReset(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	_ = sim.AllocateStack("f", 64)
	_, _ = sim.AllocateHeap(64)
	sim.Reset()

	snap := sim.Snapshot()
	if snap.StackUsed != 0 || snap.HeapUsed != 0 || snap.ActiveFrames != 0 || snap.LeakCount != 0 {
		t.Errorf("snapshot after Reset = %+v, want zeroed usage", snap)
	}
}
