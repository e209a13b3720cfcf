package cparse

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyInput reports source text that produced no tokens.
	ErrEmptyInput = errors.New("empty input: nothing to parse")
	// ErrMissingEntryPoint reports source text without an "int main(" entry point.
	ErrMissingEntryPoint = errors.New("missing entry point: no 'int main(' found")
)

var primitiveTypes = map[string]bool{
	"void":   true,
	"int":    true,
	"float":  true,
	"double": true,
	"char":   true,
	"long":   true,
	"short":  true,
}

// IsPrimitiveType reports whether tok is one of the primitive type keywords
// the parser recognizes as the start of a function or declaration.
func IsPrimitiveType(tok string) bool {
	return primitiveTypes[tok]
}

type parser struct {
	tokens []string
	pos    int
}

// Parse builds a shallow syntax tree from C source text in a single
// left-to-right pass with no backtracking. Unparsable tokens between
// top-level constructs are skipped; the tree is best-effort, not exhaustive.
//
// The entry-point check is a literal substring match, done before any
// tokenization cost is spent on the tree.
func Parse(source string) (*Node, error) {
	if !strings.Contains(source, "int main(") {
		return nil, ErrMissingEntryPoint
	}

	tokens := Tokenize(source)
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}

	p := &parser{tokens: tokens}
	program := &Node{Kind: KindProgram}

	for p.at("#include") {
		program.AddChild(p.parseInclude())
	}

	for !p.eof() {
		if IsPrimitiveType(p.current()) {
			program.AddChild(p.parseFunction())
		} else {
			p.advance()
		}
	}

	return program, nil
}

func (p *parser) eof() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) current() string {
	if p.eof() {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *parser) at(tok string) bool {
	return p.current() == tok
}

func (p *parser) advance() string {
	tok := p.current()
	if !p.eof() {
		p.pos++
	}
	return tok
}

func (p *parser) parseInclude() *Node {
	node := &Node{Kind: KindInclude, Pos: p.pos}
	p.advance() // #include
	node.Value = p.advance()
	return node
}

// parseFunction consumes "type name ( ... ) { ... }". The parameter list is
// skipped verbatim up to the opening brace.
func (p *parser) parseFunction() *Node {
	node := &Node{Kind: KindFunction, Pos: p.pos}

	node.AddChild(&Node{Kind: KindReturnType, Value: p.advance(), Pos: p.pos - 1})
	node.AddChild(&Node{Kind: KindFunctionName, Value: p.advance(), Pos: p.pos - 1})

	for !p.eof() && !p.at("{") {
		p.advance()
	}
	if p.at("{") {
		node.AddChild(p.parseBlock())
	}
	return node
}

// parseBlock consumes a brace-delimited block, classifying each statement by
// its leading token. Statement bodies are not modeled beyond that: each
// statement greedily skips to the next ";".
func (p *parser) parseBlock() *Node {
	block := &Node{Kind: KindBlock, Pos: p.pos}
	p.advance() // {

	for !p.eof() && !p.at("}") {
		switch {
		case p.at("{"):
			block.AddChild(p.parseBlock())
		case p.at("printf"):
			block.AddChild(p.parseStatement(KindPrintfStatement))
		case p.at("return"):
			block.AddChild(p.parseStatement(KindReturnStatement))
		case IsPrimitiveType(p.current()):
			block.AddChild(p.parseDeclaration())
		default:
			block.AddChild(p.parseStatement(KindExpressionStatement))
		}
	}
	p.advance() // }
	return block
}

func (p *parser) parseDeclaration() *Node {
	node := &Node{Kind: KindDeclaration, Pos: p.pos}
	node.AddChild(&Node{Kind: KindType, Value: p.current(), Pos: p.pos})

	start := p.pos
	p.advance()
	if !p.eof() && !p.at(";") && !p.at("{") && !p.at("}") {
		node.AddChild(&Node{Kind: KindIdentifier, Value: p.current(), Pos: p.pos})
	}
	p.skipToSemicolon()
	node.Value = strings.Join(p.tokens[start:p.pos], " ")
	return node
}

func (p *parser) parseStatement(kind NodeKind) *Node {
	node := &Node{Kind: kind, Pos: p.pos}
	start := p.pos
	p.skipToSemicolon()
	node.Value = strings.Join(p.tokens[start:p.pos], " ")
	return node
}

// skipToSemicolon consumes tokens through the next ";", stopping early at a
// brace so block structure stays balanced.
func (p *parser) skipToSemicolon() {
	for !p.eof() && !p.at("{") && !p.at("}") {
		if p.at(";") {
			p.advance()
			return
		}
		p.advance()
	}
}
