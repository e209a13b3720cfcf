package explain

import "fmt"

// overviewTone picks the opening sentence for the overview block based on
// the complexity band.
func overviewTone(label string) string {
	switch label {
	case "Simple":
		return "This is a simple C program with a straightforward structure."
	case "Moderate":
		return "This is a moderately involved C program combining several language constructs."
	case "Complex":
		return "This is a complex C program that layers control flow, pointers and dynamic memory."
	case "Advanced":
		return "This is an advanced C program with substantial algorithmic and memory-management machinery."
	default:
		return fmt.Sprintf("This C program is classified as %s.", label)
	}
}
