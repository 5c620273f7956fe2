package ast

// Proto is the prototype of a function: its name and the names of its
// parameters. The amount of parameters implies the type, since every
// value in the language is a double.
//
// A top-level expression is represented as an anonymous function, so
// its prototype has the empty string as name.
type Proto struct {
	Name   string
	Params []string
}

// Function is a full function definition.
type Function struct {
	Proto *Proto
	Body  *Node
}
