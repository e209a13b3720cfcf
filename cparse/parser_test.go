package cparse

import (
	"errors"
	"testing"
)

func TestParseMinimalProgram(t *testing.T) {
	tree, err := Parse("int main(){ return 0; }")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if tree.Kind != KindProgram {
		t.Errorf("root Kind = %v, want %v", tree.Kind, KindProgram)
	}

	fn := tree.FirstChildOfKind(KindFunction)
	if fn == nil {
		t.Fatal("no Function node in tree")
	}
	if got := fn.FirstChildOfKind(KindReturnType).Value; got != "int" {
		t.Errorf("ReturnType = %q, want %q", got, "int")
	}
	if got := fn.FirstChildOfKind(KindFunctionName).Value; got != "main" {
		t.Errorf("FunctionName = %q, want %q", got, "main")
	}

	block := fn.FirstChildOfKind(KindBlock)
	if block == nil {
		t.Fatal("no Block node under Function")
	}
	ret := block.FirstChildOfKind(KindReturnStatement)
	if ret == nil {
		t.Fatal("no ReturnStatement in block")
	}
	if ret.Value != "return 0 ;" {
		t.Errorf("ReturnStatement.Value = %q, want %q", ret.Value, "return 0 ;")
	}
}

func TestParseMissingEntryPoint(t *testing.T) {
	inputs := []string{
		"",
		"void helper() {}",
		"int mainly(){}",
		"#include <stdio.h>",
	}
	for _, input := range inputs {
		_, err := Parse(input)
		if !errors.Is(err, ErrMissingEntryPoint) {
			t.Errorf("Parse(%q) error = %v, want ErrMissingEntryPoint", input, err)
		}
	}
}

func TestParseIncludes(t *testing.T) {
	tree, err := Parse("#include <stdio.h>\n#include <stdlib.h>\nint main(){ return 0; }")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	includes := tree.ChildrenOfKind(KindInclude)
	if len(includes) != 2 {
		t.Fatalf("len(includes) = %d, want 2", len(includes))
	}
	if includes[0].Value != "<stdio.h>" {
		t.Errorf("includes[0].Value = %q, want %q", includes[0].Value, "<stdio.h>")
	}
}

func TestParseStatementClassification(t *testing.T) {
	src := `int main() {
		int x = 5;
		printf("%d", x);
		x = x + 1;
		return x;
	}`
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	block := tree.FirstChildOfKind(KindFunction).FirstChildOfKind(KindBlock)
	if block == nil {
		t.Fatal("no Block node")
	}

	counts := map[NodeKind]int{}
	for _, child := range block.Children {
		counts[child.Kind]++
	}
	want := map[NodeKind]int{
		KindDeclaration:         1,
		KindPrintfStatement:     1,
		KindExpressionStatement: 1,
		KindReturnStatement:     1,
	}
	for kind, n := range want {
		if counts[kind] != n {
			t.Errorf("%v count = %d, want %d", kind, counts[kind], n)
		}
	}

	decl := block.FirstChildOfKind(KindDeclaration)
	if got := decl.FirstChildOfKind(KindType).Value; got != "int" {
		t.Errorf("Declaration Type = %q, want %q", got, "int")
	}
	if got := decl.FirstChildOfKind(KindIdentifier).Value; got != "x" {
		t.Errorf("Declaration Identifier = %q, want %q", got, "x")
	}
}

func TestParseSkipsUnparsableTokens(t *testing.T) {
	// Garbage between functions is skipped, not fatal.
	src := "@@@ typedef weird ;;; int main(){ return 0; } $$$"
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fns := tree.ChildrenOfKind(KindFunction)
	if len(fns) != 1 {
		t.Errorf("len(functions) = %d, want 1", len(fns))
	}
}

func TestParseMultipleFunctions(t *testing.T) {
	src := `int add(int a, int b) { return a + b; }
	int main() { return add(1, 2); }`
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fns := tree.ChildrenOfKind(KindFunction)
	if len(fns) != 2 {
		t.Fatalf("len(functions) = %d, want 2", len(fns))
	}
	if got := fns[0].FirstChildOfKind(KindFunctionName).Value; got != "add" {
		t.Errorf("first function = %q, want %q", got, "add")
	}
	if got := fns[1].FirstChildOfKind(KindFunctionName).Value; got != "main" {
		t.Errorf("second function = %q, want %q", got, "main")
	}
}

func TestValidateSyntax(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		valid     bool
		numErrors int
	}{
		{"balanced", "int main() { return 0; }", true, 0},
		{"empty", "", true, 0},
		{"unclosed brace", "int main() {", false, 1},
		{"extra close", "int main() { } }", false, 1},
		{"unclosed paren", "int main( { }", false, 1},
		{"both unbalanced", "int main( {", false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateSyntax(tt.input)
			if v.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", v.Valid, tt.valid)
			}
			if len(v.Errors) != tt.numErrors {
				t.Errorf("len(Errors) = %d, want %d: %v", len(v.Errors), tt.numErrors, v.Errors)
			}
		})
	}
}

func TestValidateSyntaxUnclosedBraceMessage(t *testing.T) {
	v := ValidateSyntax("int main() {")
	if len(v.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(v.Errors))
	}
	if v.Errors[0] != "unbalanced braces: 1 unclosed '{'" {
		t.Errorf("Errors[0] = %q", v.Errors[0])
	}
}
