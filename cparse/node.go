package cparse

type NodeKind int

const (
	KindProgram NodeKind = iota
	KindInclude
	KindFunction
	KindReturnType
	KindFunctionName
	KindBlock
	KindPrintfStatement
	KindReturnStatement
	KindDeclaration
	KindIdentifier
	KindType
	KindExpressionStatement
)

var nodeKindNames = map[NodeKind]string{
	KindProgram:             "Program",
	KindInclude:             "Include",
	KindFunction:            "Function",
	KindReturnType:          "ReturnType",
	KindFunctionName:        "FunctionName",
	KindBlock:               "Block",
	KindPrintfStatement:     "PrintfStatement",
	KindReturnStatement:     "ReturnStatement",
	KindDeclaration:         "Declaration",
	KindIdentifier:          "Identifier",
	KindType:                "Type",
	KindExpressionStatement: "ExpressionStatement",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is one element of the shallow syntax tree. Pos is the index of the
// node's first token in the token stream. Every node except the Program
// root is owned by exactly one parent.
type Node struct {
	Kind     NodeKind `json:"kind"`
	Value    string   `json:"value,omitempty"`
	Children []*Node  `json:"children,omitempty"`
	Pos      int      `json:"pos"`
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) String() string {
	return n.stringIndent(0)
}

func (n *Node) stringIndent(indent int) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Kind.String()
	if n.Value != "" {
		result += " " + n.Value
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent + 1)
	}
	return result
}
