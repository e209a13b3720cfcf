package memsim

import (
	"strconv"

	"github.com/viktorexe/codeanatomy/analyze"
)

// Estimate drives a fresh simulator from statically detected features and
// returns the resulting usage snapshot. Nothing is executed: frame sizes
// come from the type-width table, every detected allocation call becomes one
// fixed-size heap block, and frees are applied in source order. The result
// is an estimate, not a measurement.
func Estimate(records []analyze.FeatureRecord, cfg Config) (Snapshot, error) {
	trace, err := EstimateTrace(records, cfg)
	if len(trace) == 0 {
		return Snapshot{StackCapacity: cfg.StackCapacity, HeapCapacity: cfg.HeapCapacity}, err
	}
	return trace[len(trace)-1], err
}

// EstimateTrace runs the same estimation as Estimate but records a snapshot
// after every simulated operation, for step-by-step visualization. On
// overflow the trace up to the failing operation is returned together with
// the error.
func EstimateTrace(records []analyze.FeatureRecord, cfg Config) ([]Snapshot, error) {
	return NewSimulator(cfg).replay(records)
}

// replay drives the simulator through the detected features, recording a
// snapshot after every operation.
func (s *Simulator) replay(records []analyze.FeatureRecord) ([]Snapshot, error) {
	cfg := s.Config()
	var trace []Snapshot
	step := func() {
		trace = append(trace, s.Snapshot())
	}
	step()

	localBytes := localStorageBytes(records, cfg)

	// One frame per detected function; the entry point's frame carries the
	// declared locals, since declarations are not attributed to functions.
	// Bindings go in right after that frame is pushed, while it is still on
	// top, so name lookups resolve against the frame that was sized for them.
	functions := analyze.OfKind(records, analyze.FeatureFunction)
	carrier := carrierIndex(functions)
	for i, fn := range functions {
		size := cfg.FrameOverhead
		if i == carrier {
			size += localBytes
		}
		if err := s.AllocateStack(fn.Attr("name"), size); err != nil {
			return trace, err
		}
		if i == carrier {
			for _, r := range analyze.OfKind(records, analyze.FeatureVariable) {
				_ = s.SetVariable(r.Attr("name"), "?", r.Attr("type"))
			}
		}
		step()
	}

	// Allocation and free calls in source order. A free with no outstanding
	// block is the detector's imbalance signal, not an invalid free here.
	var outstanding []int
	for _, r := range records {
		switch r.Kind {
		case analyze.FeatureMemoryAlloc:
			addr, err := s.AllocateHeap(cfg.HeapBlockEstimate)
			if err != nil {
				return trace, err
			}
			outstanding = append(outstanding, addr)
			step()
		case analyze.FeatureMemoryFree:
			if len(outstanding) == 0 {
				continue
			}
			addr := outstanding[0]
			outstanding = outstanding[1:]
			if err := s.DeallocateHeap(addr); err != nil {
				return trace, err
			}
			step()
		}
	}

	return trace, nil
}

// carrierIndex picks the frame that carries declared locals: the entry
// point when present, otherwise the first function.
func carrierIndex(functions []analyze.FeatureRecord) int {
	for i, fn := range functions {
		if fn.Attr("entryPoint") == "true" {
			return i
		}
	}
	return 0
}

// localStorageBytes sums the byte widths of declared variables and arrays.
func localStorageBytes(records []analyze.FeatureRecord, cfg Config) int {
	total := 0
	for _, r := range analyze.OfKind(records, analyze.FeatureVariable) {
		if depth := r.Attr("pointerDepth"); depth != "0" && depth != "" {
			total += cfg.PointerSize
		} else {
			total += cfg.TypeSize(r.Attr("type"))
		}
	}
	for _, r := range analyze.OfKind(records, analyze.FeatureArray) {
		width := cfg.TypeSize(r.Attr("type"))
		if n, err := strconv.Atoi(r.Attr("size")); err == nil {
			total += n * width
		} else {
			// No literal size in the declaration: count one element.
			total += width
		}
	}
	return total
}
