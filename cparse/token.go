package cparse

import "strings"

// structural delimiters that become standalone tokens
var delimiters = []string{"{", "}", "(", ")", ";", ","}

// Tokenize splits C source text into a flat token stream. Structural
// delimiters are isolated as their own tokens; everything else splits on
// whitespace. The result, joined with single spaces, re-tokenizes to the
// same stream.
//
// Contents of string and character literals are not treated specially:
// delimiters and keywords inside literals tokenize exactly like code.
func Tokenize(source string) []string {
	padded := source
	for _, d := range delimiters {
		padded = strings.ReplaceAll(padded, d, " "+d+" ")
	}
	return strings.Fields(padded)
}
