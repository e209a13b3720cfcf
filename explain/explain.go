package explain

import (
	"fmt"
	"strings"

	"github.com/viktorexe/codeanatomy/analyze"
)

// Category orders the explanation sections. Each category appears at most
// once in the output; categories with no triggering features are omitted.
type Category int

const (
	CategoryOverview Category = iota
	CategoryIncludes
	CategoryDataTypes
	CategoryFunctions
	CategoryVariables
	CategoryControlFlow
	CategoryMemory
	CategoryComplexity
	CategoryBestPractices
)

var categoryNames = map[Category]string{
	CategoryOverview:      "overview",
	CategoryIncludes:      "includes",
	CategoryDataTypes:     "data types",
	CategoryFunctions:     "functions",
	CategoryVariables:     "variables",
	CategoryControlFlow:   "control flow",
	CategoryMemory:        "memory",
	CategoryComplexity:    "complexity",
	CategoryBestPractices: "best practices",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Block is one titled unit of generated explanation.
type Block struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	CodeExcerpt string   `json:"codeExcerpt,omitempty"`
	Category    Category `json:"category"`
}

// Explanation is the ordered block sequence plus the complexity
// classification that shaped the overview.
type Explanation struct {
	Blocks     []Block        `json:"blocks"`
	Complexity Classification `json:"complexity"`
}

// Explain maps a feature-record set to explanation blocks in fixed category
// order. All sentences come from deterministic templates over record
// attributes; same records in, same blocks out.
func Explain(records []analyze.FeatureRecord) Explanation {
	c := Classify(records)
	e := Explanation{Complexity: c}

	builders := []func([]analyze.FeatureRecord, Classification) *Block{
		overviewBlock,
		includesBlock,
		dataTypesBlock,
		functionsBlock,
		variablesBlock,
		controlFlowBlock,
		memoryBlock,
		complexityBlock,
		bestPracticesBlock,
	}
	for _, build := range builders {
		if b := build(records, c); b != nil {
			e.Blocks = append(e.Blocks, *b)
		}
	}
	return e
}

// BlockOfCategory returns the block for a category, or nil when that
// category was omitted.
func (e Explanation) BlockOfCategory(cat Category) *Block {
	for i := range e.Blocks {
		if e.Blocks[i].Category == cat {
			return &e.Blocks[i]
		}
	}
	return nil
}

func overviewBlock(records []analyze.FeatureRecord, c Classification) *Block {
	if len(records) == 0 {
		return nil
	}
	var sentences []string
	sentences = append(sentences, overviewTone(c.Label))

	if shapes := analyze.OfKind(records, analyze.FeatureAlgorithmShape); len(shapes) > 0 {
		sentences = append(sentences, shapes[0].Attr("summary"))
	}

	return &Block{
		Title:    "Program Overview",
		Body:     strings.Join(sentences, " "),
		Category: CategoryOverview,
	}
}

func includesBlock(records []analyze.FeatureRecord, _ Classification) *Block {
	includes := analyze.OfKind(records, analyze.FeatureInclude)
	if len(includes) == 0 {
		return nil
	}
	var sentences []string
	for _, r := range includes {
		sentences = append(sentences, fmt.Sprintf(
			"The program includes <%s>, which provides %s.",
			r.Attr("header"), r.Attr("description")))
	}
	return &Block{
		Title:    "Included Headers",
		Body:     strings.Join(sentences, " "),
		Category: CategoryIncludes,
	}
}

func dataTypesBlock(records []analyze.FeatureRecord, _ Classification) *Block {
	structs := analyze.OfKind(records, analyze.FeatureStruct)
	if len(structs) == 0 {
		return nil
	}
	var sentences []string
	var excerpt string
	for _, r := range structs {
		sentences = append(sentences, fmt.Sprintf(
			"It defines a structure '%s' grouping %s member%s under one type.",
			r.Attr("name"), r.Attr("members"), plural(r.Attr("members"))))
		if excerpt == "" {
			excerpt = r.RawMatch
		}
	}
	return &Block{
		Title:       "Data Types",
		Body:        strings.Join(sentences, " "),
		CodeExcerpt: excerpt,
		Category:    CategoryDataTypes,
	}
}

func functionsBlock(records []analyze.FeatureRecord, _ Classification) *Block {
	functions := analyze.OfKind(records, analyze.FeatureFunction)
	if len(functions) == 0 {
		return nil
	}
	recursive := make(map[string]bool)
	for _, r := range analyze.OfKind(records, analyze.FeatureRecursiveFunction) {
		recursive[r.Attr("name")] = true
	}

	var sentences []string
	for _, r := range functions {
		name := r.Attr("name")
		switch {
		case r.Attr("entryPoint") == "true":
			sentences = append(sentences, fmt.Sprintf(
				"The function '%s' is the program entry point; execution starts here.", name))
		case r.Attr("params") == "" || r.Attr("params") == "void":
			sentences = append(sentences, fmt.Sprintf(
				"The function '%s' returns %s and takes no parameters.",
				name, r.Attr("returnType")))
		default:
			sentences = append(sentences, fmt.Sprintf(
				"The function '%s' returns %s and takes (%s).",
				name, r.Attr("returnType"), r.Attr("params")))
		}
		if recursive[name] {
			sentences = append(sentences, fmt.Sprintf(
				"'%s' calls itself, so it is recursive.", name))
		}
	}
	return &Block{
		Title:    "Functions",
		Body:     strings.Join(sentences, " "),
		Category: CategoryFunctions,
	}
}

func variablesBlock(records []analyze.FeatureRecord, _ Classification) *Block {
	variables := analyze.OfKind(records, analyze.FeatureVariable)
	arrays := analyze.OfKind(records, analyze.FeatureArray)
	pointers := analyze.OfKind(records, analyze.FeaturePointer)
	if len(variables) == 0 && len(arrays) == 0 && len(pointers) == 0 {
		return nil
	}

	var sentences []string
	for _, r := range variables {
		sentences = append(sentences, variableSentence(r))
	}
	for _, r := range arrays {
		if r.Attr("size") == "dynamically determined" {
			sentences = append(sentences, fmt.Sprintf(
				"The array '%s' holds %s elements; its length is dynamically determined.",
				r.Attr("name"), r.Attr("type")))
		} else {
			sentences = append(sentences, fmt.Sprintf(
				"The array '%s' holds %s elements of type %s.",
				r.Attr("name"), r.Attr("size"), r.Attr("type")))
		}
	}
	for _, r := range pointers {
		sentences = append(sentences, fmt.Sprintf(
			"'%s' is a pointer to %s.", r.Attr("name"), r.Attr("type")))
	}
	return &Block{
		Title:    "Variables",
		Body:     strings.Join(sentences, " "),
		Category: CategoryVariables,
	}
}

func variableSentence(r analyze.FeatureRecord) string {
	name, typ := r.Attr("name"), r.Attr("type")
	depth := r.Attr("pointerDepth")

	desc := fmt.Sprintf("a variable '%s' of type %s", name, typ)
	if depth == "1" {
		desc = fmt.Sprintf("a pointer '%s' to %s", name, typ)
	} else if depth != "0" && depth != "" {
		desc = fmt.Sprintf("a level-%s pointer '%s' to %s", depth, name, typ)
	}

	if r.Attr("initialized") == "true" {
		return fmt.Sprintf("The program declares %s, initialized at declaration.", desc)
	}
	return fmt.Sprintf(
		"The program declares %s, left with a garbage value until first assignment.", desc)
}

func controlFlowBlock(records []analyze.FeatureRecord, _ Classification) *Block {
	loops := analyze.OfKind(records, analyze.FeatureLoop)
	conds := analyze.OfKind(records, analyze.FeatureConditional)
	if len(loops) == 0 && len(conds) == 0 {
		return nil
	}

	var sentences []string
	for _, r := range loops {
		sentences = append(sentences, fmt.Sprintf(
			"It uses %s %s loop%s to repeat work.",
			r.Attr("count"), r.Attr("construct"), plural(r.Attr("count"))))
	}
	for _, r := range conds {
		sentences = append(sentences, fmt.Sprintf(
			"It branches with %s %s statement%s.",
			r.Attr("count"), r.Attr("construct"), plural(r.Attr("count"))))
	}
	return &Block{
		Title:    "Control Flow",
		Body:     strings.Join(sentences, " "),
		Category: CategoryControlFlow,
	}
}

func memoryBlock(records []analyze.FeatureRecord, _ Classification) *Block {
	allocs := analyze.OfKind(records, analyze.FeatureMemoryAlloc)
	frees := analyze.OfKind(records, analyze.FeatureMemoryFree)
	if len(allocs) == 0 && len(frees) == 0 {
		return nil
	}

	var sentences []string
	sentences = append(sentences, fmt.Sprintf(
		"The program allocates heap memory %d time%s and frees it %d time%s.",
		len(allocs), pluralN(len(allocs)), len(frees), pluralN(len(frees))))

	if risk := analyze.LeakRisk(records); risk > 0 {
		sentences = append(sentences, fmt.Sprintf(
			"Warning: %d allocation%s %s never freed, a potential memory leak.",
			risk, pluralN(risk), isAre(risk)))
	}
	return &Block{
		Title:    "Dynamic Memory",
		Body:     strings.Join(sentences, " "),
		Category: CategoryMemory,
	}
}

func complexityBlock(records []analyze.FeatureRecord, c Classification) *Block {
	if len(records) == 0 {
		return nil
	}
	return &Block{
		Title: "Complexity",
		Body: fmt.Sprintf(
			"Weighted complexity score: %d, which places this program in the %s band.",
			c.Score, c.Label),
		Category: CategoryComplexity,
	}
}

func bestPracticesBlock(records []analyze.FeatureRecord, _ Classification) *Block {
	var sentences []string

	if risk := analyze.LeakRisk(records); risk > 0 {
		sentences = append(sentences,
			"Every malloc or calloc call should have a matching free once the memory is no longer needed.")
	}
	for _, r := range analyze.OfKind(records, analyze.FeatureVariable) {
		if r.Attr("initialized") != "true" {
			sentences = append(sentences,
				"Initialize variables at declaration to avoid reading garbage values.")
			break
		}
	}

	if len(sentences) == 0 {
		return nil
	}
	return &Block{
		Title:    "Best Practices",
		Body:     strings.Join(sentences, " "),
		Category: CategoryBestPractices,
	}
}

func plural(count string) string {
	if count == "1" {
		return ""
	}
	return "s"
}

func pluralN(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func isAre(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}
