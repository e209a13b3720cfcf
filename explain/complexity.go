package explain

import (
	"strconv"

	"github.com/viktorexe/codeanatomy/analyze"
)

// Complexity weights are part of the engine contract, not tuning knobs.
const (
	weightFor      = 2
	weightWhile    = 2
	weightIf       = 1
	weightPointer  = 2
	weightAlloc    = 3
	weightStruct   = 2
	weightFunction = 1
)

// Band boundaries for the four ordinal complexity labels.
const (
	bandModerate = 5
	bandComplex  = 10
	bandAdvanced = 15
)

// Classification is the weighted complexity score with its ordinal label.
type Classification struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Classify computes the weighted complexity score over detected features and
// maps it onto one of the four bands.
func Classify(records []analyze.FeatureRecord) Classification {
	score := 0
	score += weightFor * constructCount(records, analyze.FeatureLoop, "for")
	score += weightWhile * constructCount(records, analyze.FeatureLoop, "while")
	score += weightIf * constructCount(records, analyze.FeatureConditional, "if")
	score += weightPointer * pointerUseCount(records)
	score += weightAlloc * allocCount(records)
	score += weightStruct * len(analyze.OfKind(records, analyze.FeatureStruct))
	score += weightFunction * len(analyze.OfKind(records, analyze.FeatureFunction))

	return Classification{Label: bandLabel(score), Score: score}
}

func bandLabel(score int) string {
	switch {
	case score < bandModerate:
		return "Simple"
	case score < bandComplex:
		return "Moderate"
	case score < bandAdvanced:
		return "Complex"
	default:
		return "Advanced"
	}
}

func constructCount(records []analyze.FeatureRecord, kind analyze.FeatureKind, construct string) int {
	for _, r := range analyze.OfKind(records, kind) {
		if r.Attr("construct") == construct {
			n, err := strconv.Atoi(r.Attr("count"))
			if err == nil {
				return n
			}
		}
	}
	return 0
}

func pointerUseCount(records []analyze.FeatureRecord) int {
	n := len(analyze.OfKind(records, analyze.FeaturePointer))
	for _, r := range analyze.OfKind(records, analyze.FeatureVariable) {
		if r.Attr("pointerDepth") != "0" && r.Attr("pointerDepth") != "" {
			n++
		}
	}
	return n
}

// allocCount weighs malloc and calloc calls; realloc reuses an existing
// block and is not scored.
func allocCount(records []analyze.FeatureRecord) int {
	n := 0
	for _, r := range analyze.OfKind(records, analyze.FeatureMemoryAlloc) {
		if fn := r.Attr("function"); fn == "malloc" || fn == "calloc" {
			n++
		}
	}
	return n
}
