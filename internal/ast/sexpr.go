package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Sexpr renders the tree in a canonical s-expression form:
//
//	(number 1)
//	(variable "a")
//	(binary "+" (number 1) (number 2))
//	(call "foo" (variable "a"))
//	(proto "foo" ("a" "b"))
//	(function (proto "" ()) (number 42))
//
// Numbers are formatted with strconv.FormatFloat 'g', so the rendering
// of a tree is deterministic.
func (n *Node) Sexpr() string {
	switch n.Kind {
	case KIND_NUMBER_EXPR:
		number := n.Node.(*NumberExpr)
		return fmt.Sprintf("(number %s)", strconv.FormatFloat(number.Val, 'g', -1, 64))
	case KIND_VARIABLE_EXPR:
		variable := n.Node.(*VariableExpr)
		return fmt.Sprintf("(variable %q)", variable.Name)
	case KIND_BINARY_EXPR:
		binary := n.Node.(*BinaryExpr)
		return fmt.Sprintf(
			"(binary %q %s %s)",
			string(binary.Op),
			binary.Left.Sexpr(),
			binary.Right.Sexpr(),
		)
	case KIND_CALL_EXPR:
		call := n.Node.(*CallExpr)
		var sexpr strings.Builder
		fmt.Fprintf(&sexpr, "(call %q", call.Callee)
		for _, arg := range call.Args {
			sexpr.WriteString(" ")
			sexpr.WriteString(arg.Sexpr())
		}
		sexpr.WriteString(")")
		return sexpr.String()
	case KIND_PROTO:
		return protoSexpr(n.Node.(*Proto))
	case KIND_FUNCTION:
		function := n.Node.(*Function)
		return fmt.Sprintf("(function %s %s)", protoSexpr(function.Proto), function.Body.Sexpr())
	default:
		return fmt.Sprintf("(unknown %d)", n.Kind)
	}
}

func protoSexpr(proto *Proto) string {
	params := make([]string, len(proto.Params))
	for i, param := range proto.Params {
		params[i] = strconv.Quote(param)
	}
	return fmt.Sprintf("(proto %q (%s))", proto.Name, strings.Join(params, " "))
}
