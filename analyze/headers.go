package analyze

// headerDescriptions maps standard header names to one-sentence summaries of
// what they provide. Unknown headers fall back to a generic description.
var headerDescriptions = map[string]string{
	"stdio.h":  "standard input/output functions such as printf and scanf",
	"stdlib.h": "memory allocation and utility functions such as malloc and free",
	"string.h": "string manipulation functions such as strcpy and strlen",
	"math.h":   "mathematical functions such as sqrt and pow",
	"ctype.h":  "character classification functions such as isalpha and isdigit",
}

// DescribeHeader returns the semantic description for a header name.
func DescribeHeader(name string) string {
	if desc, ok := headerDescriptions[name]; ok {
		return desc
	}
	return "a custom header defined by this project"
}
