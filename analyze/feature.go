package analyze

type FeatureKind int

const (
	FeatureInclude FeatureKind = iota
	FeatureFunction
	FeatureVariable
	FeatureStruct
	FeatureArray
	FeaturePointer
	FeatureLoop
	FeatureConditional
	FeatureMemoryAlloc
	FeatureMemoryFree
	FeatureRecursiveFunction
	FeatureAlgorithmShape
)

var featureKindNames = map[FeatureKind]string{
	FeatureInclude:           "Include",
	FeatureFunction:          "Function",
	FeatureVariable:          "Variable",
	FeatureStruct:            "Struct",
	FeatureArray:             "Array",
	FeaturePointer:           "Pointer",
	FeatureLoop:              "Loop",
	FeatureConditional:       "Conditional",
	FeatureMemoryAlloc:       "MemoryAlloc",
	FeatureMemoryFree:        "MemoryFree",
	FeatureRecursiveFunction: "RecursiveFunction",
	FeatureAlgorithmShape:    "AlgorithmShape",
}

func (k FeatureKind) String() string {
	if name, ok := featureKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k FeatureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FeatureRecord is one typed fact extracted from source text. Attributes
// carry rule-specific fields such as "type", "name", "size", "returnType"
// and "pointerDepth". Records of the same kind appear in first-match order.
type FeatureRecord struct {
	Kind       FeatureKind       `json:"kind"`
	Attributes map[string]string `json:"attributes,omitempty"`
	RawMatch   string            `json:"rawMatch,omitempty"`
}

// Attr returns the named attribute or "" when absent.
func (r FeatureRecord) Attr(name string) string {
	return r.Attributes[name]
}

// OfKind filters records by kind, preserving order.
func OfKind(records []FeatureRecord, kind FeatureKind) []FeatureRecord {
	var result []FeatureRecord
	for _, r := range records {
		if r.Kind == kind {
			result = append(result, r)
		}
	}
	return result
}
