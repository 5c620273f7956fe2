package ast

// NumberExpr is a numeric literal, such as "1.0".
type NumberExpr struct {
	Val float64
}

// VariableExpr references a named value, such as "a". The only named
// values in the language are function parameters.
type VariableExpr struct {
	Name string
}

// BinaryExpr is a binary operator application. Op is the raw operator
// character, such as '+'.
type BinaryExpr struct {
	Left  *Node
	Op    rune
	Right *Node
}

// CallExpr is a function call, such as "foo(1, b)".
type CallExpr struct {
	Callee string
	Args   []*Node
}
