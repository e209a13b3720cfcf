package memsim

import "errors"

var (
	// ErrStackOverflow reports a frame push that would exceed the stack capacity.
	ErrStackOverflow = errors.New("stack overflow: frame exceeds remaining stack capacity")
	// ErrHeapOverflow reports an allocation that would exceed the heap capacity.
	ErrHeapOverflow = errors.New("heap overflow: allocation exceeds remaining heap capacity")
	// ErrInvalidFree reports a free of an address no block was allocated at.
	ErrInvalidFree = errors.New("invalid free: no block at that address")
	// ErrEmptyStack reports a pop from an empty frame stack.
	ErrEmptyStack = errors.New("stack empty: no frame to deallocate")
)

// heapBase is the address of the first simulated heap block.
const heapBase = 0x1000

// Variable is one named binding inside a stack frame.
type Variable struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Frame is one simulated function activation. Only the topmost frame is
// mutable through SetVariable.
type Frame struct {
	Owner       string              `json:"owner"`
	SizeBytes   int                 `json:"sizeBytes"`
	Variables   map[string]Variable `json:"variables,omitempty"`
	BaseAddress int                 `json:"baseAddress"`
}

// Block is one simulated heap region. Blocks are never removed: freeing
// flips Allocated to false, and the address is never reused within the same
// simulator instance.
type Block struct {
	Address   int  `json:"address"`
	SizeBytes int  `json:"sizeBytes"`
	Allocated bool `json:"allocated"`
}

// Snapshot is a read-only aggregate of simulator state, computed fresh on
// every call. LeakCount is the number of blocks still allocated.
type Snapshot struct {
	StackUsed     int `json:"stackUsed"`
	StackCapacity int `json:"stackCapacity"`
	HeapUsed      int `json:"heapUsed"`
	HeapCapacity  int `json:"heapCapacity"`
	ActiveFrames  int `json:"activeFrames"`
	LeakCount     int `json:"leakCount"`
}

// Simulator is a bounded virtual stack and heap. It is not safe for
// concurrent use and must not be shared across analyses: construct a fresh
// instance (or call Reset) per analysis.
type Simulator struct {
	cfg        Config
	frames     []*Frame
	blocks     []*Block
	stackUsed  int
	heapOffset int
}

// NewSimulator constructs a simulator bounded by cfg.
func NewSimulator(cfg Config) *Simulator {
	return &Simulator{cfg: cfg}
}

// Config returns the constant set the simulator was built with.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Reset discards all frames and blocks, returning the simulator to its
// initial state. Heap addresses restart from the base.
func (s *Simulator) Reset() {
	s.frames = nil
	s.blocks = nil
	s.stackUsed = 0
	s.heapOffset = 0
}

// AllocateStack pushes a frame of sizeBytes for ownerName. The rejection on
// overflow is atomic: no partial frame is left behind.
func (s *Simulator) AllocateStack(ownerName string, sizeBytes int) error {
	if s.stackUsed+sizeBytes > s.cfg.StackCapacity {
		return ErrStackOverflow
	}
	s.frames = append(s.frames, &Frame{
		Owner:       ownerName,
		SizeBytes:   sizeBytes,
		Variables:   make(map[string]Variable),
		BaseAddress: s.stackUsed,
	})
	s.stackUsed += sizeBytes
	return nil
}

// DeallocateStack pops the most recently pushed frame. Frames only leave in
// LIFO order.
func (s *Simulator) DeallocateStack() error {
	if len(s.frames) == 0 {
		return ErrEmptyStack
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.stackUsed -= top.SizeBytes
	return nil
}

// AllocateHeap appends a block at the next free address and returns the
// address. Addresses grow monotonically for the life of the simulator:
// freed space is never reused.
func (s *Simulator) AllocateHeap(sizeBytes int) (int, error) {
	if s.heapOffset+sizeBytes > s.cfg.HeapCapacity {
		return 0, ErrHeapOverflow
	}
	addr := heapBase + s.heapOffset
	s.blocks = append(s.blocks, &Block{
		Address:   addr,
		SizeBytes: sizeBytes,
		Allocated: true,
	})
	s.heapOffset += sizeBytes
	return addr, nil
}

// DeallocateHeap marks the block at address as freed. The block stays in
// place; only its Allocated flag flips.
func (s *Simulator) DeallocateHeap(address int) error {
	for _, b := range s.blocks {
		if b.Address == address {
			if !b.Allocated {
				return ErrInvalidFree
			}
			b.Allocated = false
			return nil
		}
	}
	return ErrInvalidFree
}

// SetVariable binds name in the topmost frame.
func (s *Simulator) SetVariable(name, value, typ string) error {
	if len(s.frames) == 0 {
		return ErrEmptyStack
	}
	top := s.frames[len(s.frames)-1]
	top.Variables[name] = Variable{Value: value, Type: typ}
	return nil
}

// GetVariable looks name up from the innermost frame outward, so nested
// frames shadow outer ones. The second result is false when no frame binds
// the name.
func (s *Simulator) GetVariable(name string) (Variable, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].Variables[name]; ok {
			return v, true
		}
	}
	return Variable{}, false
}

// Frames returns the active frames, bottom first.
func (s *Simulator) Frames() []*Frame {
	return s.frames
}

// Blocks returns every block ever allocated, freed ones included.
func (s *Simulator) Blocks() []*Block {
	return s.blocks
}

// Snapshot aggregates current usage. HeapUsed counts only blocks still
// allocated.
func (s *Simulator) Snapshot() Snapshot {
	heapUsed := 0
	leaks := 0
	for _, b := range s.blocks {
		if b.Allocated {
			heapUsed += b.SizeBytes
			leaks++
		}
	}
	return Snapshot{
		StackUsed:     s.stackUsed,
		StackCapacity: s.cfg.StackCapacity,
		HeapUsed:      heapUsed,
		HeapCapacity:  s.cfg.HeapCapacity,
		ActiveFrames:  len(s.frames),
		LeakCount:     leaks,
	}
}
