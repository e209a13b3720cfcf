package memsim

// Config carries every numeric constant of the simulation contract. The
// values are deliberately explicit rather than buried in the simulator:
// sibling implementations disagreed on them, so this is the one canonical
// set for this engine.
type Config struct {
	// StackCapacity is the total simulated stack size in bytes.
	StackCapacity int `json:"stackCapacity"`
	// HeapCapacity is the total simulated heap size in bytes.
	HeapCapacity int `json:"heapCapacity"`
	// TypeSizes maps primitive type names to their byte widths.
	TypeSizes map[string]int `json:"typeSizes"`
	// PointerSize is the byte width of any pointer-typed variable.
	PointerSize int `json:"pointerSize"`
	// FrameOverhead is the fixed per-call bookkeeping cost added to every
	// simulated stack frame.
	FrameOverhead int `json:"frameOverhead"`
	// HeapBlockEstimate is the assumed size of a heap block when the
	// allocation size cannot be read from the source.
	HeapBlockEstimate int `json:"heapBlockEstimate"`
}

// DefaultConfig returns the canonical constant set: an 8 KB stack, a 64 KB
// heap, C89-ish type widths, 16 bytes of call overhead per frame and a
// 64-byte estimate per detected allocation call.
func DefaultConfig() Config {
	return Config{
		StackCapacity: 8 * 1024,
		HeapCapacity:  64 * 1024,
		TypeSizes: map[string]int{
			"int":    4,
			"float":  4,
			"double": 8,
			"long":   8,
			"char":   1,
			"short":  2,
		},
		PointerSize:       8,
		FrameOverhead:     16,
		HeapBlockEstimate: 64,
	}
}

// TypeSize returns the byte width for a primitive type name, falling back
// to the int width for anything unknown.
func (c Config) TypeSize(name string) int {
	if size, ok := c.TypeSizes[name]; ok {
		return size
	}
	return c.TypeSizes["int"]
}
