// Package ast defines the abstract syntax tree (AST) for the Kaleidoscope
// language.
package ast

import "fmt"

type NodeKind int

const (
	EXPR_START NodeKind = iota // expression node start delimiter

	KIND_NUMBER_EXPR
	KIND_VARIABLE_EXPR
	KIND_BINARY_EXPR
	KIND_CALL_EXPR

	EXPR_END // expression node end delimiter

	KIND_PROTO
	KIND_FUNCTION
)

type Node struct {
	Kind NodeKind
	Node any
}

func (n *Node) IsExpr() bool {
	return n.Kind > EXPR_START && n.Kind < EXPR_END
}

func (n *Node) String() string {
	switch n.Kind {
	case KIND_NUMBER_EXPR:
		return "KIND_NUMBER_EXPR"
	case KIND_VARIABLE_EXPR:
		return "KIND_VARIABLE_EXPR"
	case KIND_BINARY_EXPR:
		return "KIND_BINARY_EXPR"
	case KIND_CALL_EXPR:
		return "KIND_CALL_EXPR"
	case KIND_PROTO:
		return "KIND_PROTO"
	case KIND_FUNCTION:
		return "KIND_FUNCTION"
	default:
		return fmt.Sprintf("Unknown Node Kind: %v", n.Kind)
	}
}
