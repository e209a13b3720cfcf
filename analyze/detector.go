package analyze

// Detect runs the ordered rule table against the raw source text and returns
// the extracted feature records. Rules see the full text, not the syntax
// tree, so constructs in unreachable or commented-out code may still be
// reported. That is a documented heuristic limitation, not a defect.
//
// Detect is pure: it holds no state between calls.
func Detect(source string) []FeatureRecord {
	var records []FeatureRecord
	for _, r := range ruleTable {
		records = append(records, r.detect(source)...)
	}
	records = dropShadowedPointers(records)

	if shape := detectShape(source, records); shape != nil {
		records = append(records, *shape)
	}
	return records
}

// dropShadowedPointers removes Pointer records that duplicate a declared
// variable with pointer stars; the Variable record already carries the
// pointer depth.
func dropShadowedPointers(records []FeatureRecord) []FeatureRecord {
	starred := make(map[string]bool)
	for _, r := range records {
		if r.Kind == FeatureVariable && r.Attr("pointerDepth") != "0" {
			starred[r.Attr("name")] = true
		}
	}

	result := records[:0]
	for _, r := range records {
		if r.Kind == FeaturePointer && starred[r.Attr("name")] {
			continue
		}
		result = append(result, r)
	}
	return result
}

// LeakRisk returns the allocation/free imbalance detected in the source:
// the number of allocation calls minus the number of free calls, floored at
// zero. This signal is independent of the memory simulator's own leak count.
func LeakRisk(records []FeatureRecord) int {
	allocs := len(OfKind(records, FeatureMemoryAlloc))
	frees := len(OfKind(records, FeatureMemoryFree))
	if allocs <= frees {
		return 0
	}
	return allocs - frees
}
