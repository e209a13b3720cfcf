package cparse

import "fmt"

// Validation is the result of the advisory delimiter-balance scan.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateSyntax performs an independent linear scan over the raw source,
// counting brace and parenthesis nesting. A non-zero net count is reported
// as an "unbalanced" error. The check is advisory: it never blocks parsing
// or feature detection.
func ValidateSyntax(source string) Validation {
	braces := 0
	parens := 0
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '{':
			braces++
		case '}':
			braces--
		case '(':
			parens++
		case ')':
			parens--
		}
	}

	v := Validation{Valid: true, Errors: []string{}}
	if braces > 0 {
		v.Errors = append(v.Errors, fmt.Sprintf("unbalanced braces: %d unclosed '{'", braces))
	} else if braces < 0 {
		v.Errors = append(v.Errors, fmt.Sprintf("unbalanced braces: %d extra '}'", -braces))
	}
	if parens > 0 {
		v.Errors = append(v.Errors, fmt.Sprintf("unbalanced parentheses: %d unclosed '('", parens))
	} else if parens < 0 {
		v.Errors = append(v.Errors, fmt.Sprintf("unbalanced parentheses: %d extra ')'", -parens))
	}
	v.Valid = len(v.Errors) == 0
	return v
}
