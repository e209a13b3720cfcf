package analyze

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// A rule is one entry of the ordered detection table. Rules run
// independently against the full raw source text, in table order; records
// from one rule keep their first-match order in the text.
type rule struct {
	name   string
	detect func(source string) []FeatureRecord
}

// ruleTable is the canonical detection order. The algorithm-shape rule is
// not listed here: it runs last, over the accumulated records (see Detect).
var ruleTable = []rule{
	{"includes", detectIncludes},
	{"functions", detectFunctions},
	{"variables", detectVariables},
	{"structs", detectStructs},
	{"arrays", detectArrays},
	{"pointers", detectPointers},
	{"loops", detectLoops},
	{"conditionals", detectConditionals},
	{"memory", detectMemory},
	{"recursion", detectRecursion},
}

const primitiveAlt = `void|int|float|double|char|long|short`

var (
	includeRe  = regexp.MustCompile(`#include\s*[<"]([^>"]+)[>"]`)
	functionRe = regexp.MustCompile(`\b(struct\s+\w+|` + primitiveAlt + `)\s*(\**)\s*(\w+)\s*\(([^)]*)\)\s*\{`)
	variableRe = regexp.MustCompile(`\b(int|float|double|char|long|short)\s+(\**)\s*(\w+)\s*(=[^;{}]*)?;`)
	structRe   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	arrayRe    = regexp.MustCompile(`\b(int|float|double|char|long|short)\s+(\w+)\s*\[([^\]]*)\]`)
	pointerRe  = regexp.MustCompile(`\b(struct\s+\w+|` + primitiveAlt + `)\s*(\*+)\s*(\w+)`)

	forRe     = regexp.MustCompile(`\bfor\s*\(`)
	whileRe   = regexp.MustCompile(`\bwhile\s*\(`)
	doWhileRe = regexp.MustCompile(`\bdo\s*\{`)
	ifRe      = regexp.MustCompile(`\bif\s*\(`)
	switchRe  = regexp.MustCompile(`\bswitch\s*\(`)

	mallocRe  = regexp.MustCompile(`\bmalloc\s*\(([^)]*)\)`)
	callocRe  = regexp.MustCompile(`\bcalloc\s*\(([^)]*)\)`)
	reallocRe = regexp.MustCompile(`\brealloc\s*\(([^)]*)\)`)
	freeRe    = regexp.MustCompile(`\bfree\s*\(([^)]*)\)`)
)

func detectIncludes(source string) []FeatureRecord {
	var records []FeatureRecord
	for _, m := range includeRe.FindAllStringSubmatch(source, -1) {
		records = append(records, FeatureRecord{
			Kind: FeatureInclude,
			Attributes: map[string]string{
				"header":      m[1],
				"description": DescribeHeader(m[1]),
			},
			RawMatch: m[0],
		})
	}
	return records
}

func detectFunctions(source string) []FeatureRecord {
	var records []FeatureRecord
	for _, m := range functionRe.FindAllStringSubmatch(source, -1) {
		returnType, stars, name, params := m[1], m[2], m[3], m[4]
		if isControlKeyword(name) {
			continue
		}
		attrs := map[string]string{
			"returnType": strings.Join(strings.Fields(returnType), " ") + stars,
			"name":       name,
			"params":     strings.TrimSpace(params),
		}
		if name == "main" {
			attrs["entryPoint"] = "true"
		}
		records = append(records, FeatureRecord{
			Kind:       FeatureFunction,
			Attributes: attrs,
			RawMatch:   m[0],
		})
	}
	return records
}

func isControlKeyword(name string) bool {
	switch name {
	case "if", "for", "while", "switch", "return", "sizeof":
		return true
	}
	return false
}

func detectVariables(source string) []FeatureRecord {
	var records []FeatureRecord
	for _, m := range variableRe.FindAllStringSubmatch(source, -1) {
		typ, stars, name, init := m[1], m[2], m[3], m[4]
		attrs := map[string]string{
			"type":         typ,
			"name":         name,
			"pointerDepth": strconv.Itoa(len(stars)),
		}
		if strings.TrimSpace(init) != "" {
			attrs["initialized"] = "true"
		}
		records = append(records, FeatureRecord{
			Kind:       FeatureVariable,
			Attributes: attrs,
			RawMatch:   m[0],
		})
	}
	return records
}

func detectStructs(source string) []FeatureRecord {
	var records []FeatureRecord
	for _, m := range structRe.FindAllStringSubmatch(source, -1) {
		records = append(records, FeatureRecord{
			Kind: FeatureStruct,
			Attributes: map[string]string{
				"name":    m[1],
				"members": strconv.Itoa(strings.Count(m[2], ";")),
			},
			RawMatch: m[0],
		})
	}
	return records
}

func detectArrays(source string) []FeatureRecord {
	var records []FeatureRecord
	for _, m := range arrayRe.FindAllStringSubmatch(source, -1) {
		size := strings.TrimSpace(m[3])
		if _, err := strconv.Atoi(size); err != nil {
			size = "dynamically determined"
		}
		records = append(records, FeatureRecord{
			Kind: FeatureArray,
			Attributes: map[string]string{
				"type": m[1],
				"name": m[2],
				"size": size,
			},
			RawMatch: m[0],
		})
	}
	return records
}

// detectPointers reports "type *name" occurrences. Matches that duplicate a
// starred variable declaration are filtered out later by Detect.
func detectPointers(source string) []FeatureRecord {
	var records []FeatureRecord
	for _, m := range pointerRe.FindAllStringSubmatch(source, -1) {
		records = append(records, FeatureRecord{
			Kind: FeaturePointer,
			Attributes: map[string]string{
				"type":         strings.Join(strings.Fields(m[1]), " "),
				"name":         m[3],
				"pointerDepth": strconv.Itoa(len(m[2])),
			},
			RawMatch: m[0],
		})
	}
	return records
}

func countRecord(kind FeatureKind, construct string, re *regexp.Regexp, source string) []FeatureRecord {
	n := len(re.FindAllStringIndex(source, -1))
	if n == 0 {
		return nil
	}
	return []FeatureRecord{{
		Kind: kind,
		Attributes: map[string]string{
			"construct": construct,
			"count":     strconv.Itoa(n),
		},
	}}
}

func detectLoops(source string) []FeatureRecord {
	var records []FeatureRecord
	records = append(records, countRecord(FeatureLoop, "for", forRe, source)...)
	records = append(records, countRecord(FeatureLoop, "while", whileRe, source)...)
	records = append(records, countRecord(FeatureLoop, "do-while", doWhileRe, source)...)
	return records
}

func detectConditionals(source string) []FeatureRecord {
	var records []FeatureRecord
	records = append(records, countRecord(FeatureConditional, "if", ifRe, source)...)
	records = append(records, countRecord(FeatureConditional, "switch", switchRe, source)...)
	return records
}

// detectMemory emits one record per allocation or free call, in text order
// across all call kinds.
func detectMemory(source string) []FeatureRecord {
	type match struct {
		pos    int
		record FeatureRecord
	}
	var matches []match

	collect := func(re *regexp.Regexp, kind FeatureKind, fn string, argAttr string) {
		idx := re.FindAllStringSubmatchIndex(source, -1)
		for _, m := range idx {
			arg := strings.TrimSpace(source[m[2]:m[3]])
			matches = append(matches, match{
				pos: m[0],
				record: FeatureRecord{
					Kind: kind,
					Attributes: map[string]string{
						"function": fn,
						argAttr:    arg,
					},
					RawMatch: source[m[0]:m[1]],
				},
			})
		}
	}

	collect(mallocRe, FeatureMemoryAlloc, "malloc", "size")
	collect(callocRe, FeatureMemoryAlloc, "calloc", "size")
	collect(reallocRe, FeatureMemoryAlloc, "realloc", "size")
	collect(freeRe, FeatureMemoryFree, "free", "target")

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	records := make([]FeatureRecord, 0, len(matches))
	for _, m := range matches {
		records = append(records, m.record)
	}
	return records
}

// detectRecursion flags a function as recursive when its own name reappears
// inside its body span. The body span is found by brace counting from the
// definition's opening brace.
func detectRecursion(source string) []FeatureRecord {
	var records []FeatureRecord
	for _, m := range functionRe.FindAllStringSubmatchIndex(source, -1) {
		name := source[m[6]:m[7]]
		if isControlKeyword(name) {
			continue
		}
		bodyStart := m[1] // just past the opening brace
		body := bodySpan(source, bodyStart)
		callRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
		if callRe.MatchString(body) {
			records = append(records, FeatureRecord{
				Kind:       FeatureRecursiveFunction,
				Attributes: map[string]string{"name": name},
				RawMatch:   source[m[0]:m[1]],
			})
		}
	}
	return records
}

// bodySpan returns the text from start up to the brace balancing the one
// already consumed before start.
func bodySpan(source string, start int) string {
	depth := 1
	for i := start; i < len(source); i++ {
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return source[start:i]
			}
		}
	}
	return source[start:]
}
