package analyze

import (
	"regexp"
	"strings"
)

var (
	insertFnRe = regexp.MustCompile(`\b(\w*insert\w*)\s*\(([^)]*)\)`)
	dpRe       = regexp.MustCompile(`\b(dp|memo)\s*\[`)
	sortRe     = regexp.MustCompile(`(?i)\bsort\w*\s*\(`)
	searchRe   = regexp.MustCompile(`(?i)\bsearch\w*\s*\(`)
)

// shapeCheck is one algorithm-shape heuristic. Checks run in fixed priority
// order; the first one that matches wins, so exactly one shape record is
// produced even when several shapes partially match.
type shapeCheck struct {
	shape   string
	summary string
	matches func(source string, records []FeatureRecord) bool
}

var shapeChecks = []shapeCheck{
	{
		shape:   "binary-search-tree",
		summary: "This program implements a binary search tree: a node structure holds left and right child pointers, and an insert routine places values relative to the root.",
		matches: isBinarySearchTree,
	},
	{
		shape:   "linked-list",
		summary: "This program implements a linked list: a node structure carries a pointer to the next element in the chain.",
		matches: isLinkedList,
	},
	{
		shape:   "sorting",
		summary: "This program implements a sorting algorithm, reordering elements into a defined sequence.",
		matches: func(source string, _ []FeatureRecord) bool {
			return sortRe.MatchString(source)
		},
	},
	{
		shape:   "searching",
		summary: "This program implements a searching algorithm, locating a target value within a collection.",
		matches: func(source string, _ []FeatureRecord) bool {
			return searchRe.MatchString(source)
		},
	},
	{
		shape:   "dynamic-programming",
		summary: "This program uses dynamic programming, caching intermediate results in a table to avoid recomputation.",
		matches: func(source string, _ []FeatureRecord) bool {
			return dpRe.MatchString(source)
		},
	},
	{
		shape:   "pointer-structure",
		summary: "This program builds a pointer-based data structure and traverses it recursively.",
		matches: isGenericPointerStructure,
	},
}

// detectShape selects at most one dominant algorithm shape, evaluated after
// all table rules so it can read the accumulated records.
func detectShape(source string, records []FeatureRecord) *FeatureRecord {
	for _, check := range shapeChecks {
		if check.matches(source, records) {
			return &FeatureRecord{
				Kind: FeatureAlgorithmShape,
				Attributes: map[string]string{
					"shape":   check.shape,
					"summary": check.summary,
				},
			}
		}
	}
	return nil
}

// isBinarySearchTree wants a struct with left and right fields plus an
// insert function whose parameters mention root or value.
func isBinarySearchTree(source string, records []FeatureRecord) bool {
	hasTreeStruct := false
	for _, r := range OfKind(records, FeatureStruct) {
		if strings.Contains(r.RawMatch, "left") && strings.Contains(r.RawMatch, "right") {
			hasTreeStruct = true
			break
		}
	}
	if !hasTreeStruct {
		return false
	}

	for _, m := range insertFnRe.FindAllStringSubmatch(source, -1) {
		params := m[2]
		if strings.Contains(params, "root") || strings.Contains(params, "value") {
			return true
		}
	}
	return false
}

func isLinkedList(_ string, records []FeatureRecord) bool {
	for _, r := range OfKind(records, FeatureStruct) {
		if strings.Contains(r.RawMatch, "next") {
			return true
		}
	}
	return false
}

func isGenericPointerStructure(_ string, records []FeatureRecord) bool {
	hasPointer := len(OfKind(records, FeaturePointer)) > 0
	if !hasPointer {
		for _, r := range OfKind(records, FeatureVariable) {
			if r.Attr("pointerDepth") != "0" {
				hasPointer = true
				break
			}
		}
	}
	hasStruct := len(OfKind(records, FeatureStruct)) > 0
	hasRecursion := len(OfKind(records, FeatureRecursiveFunction)) > 0
	return hasPointer && hasStruct && hasRecursion
}
