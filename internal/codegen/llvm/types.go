package llvm

import (
	"tinygo.org/x/go-llvm"
)

// Function pairs a declared function with its type. The builder needs
// both to emit a call against it.
type Function struct {
	Fn llvm.Value
	Ty llvm.Type
}

func NewFunctionValue(fn llvm.Value, ty llvm.Type) *Function {
	return &Function{Fn: fn, Ty: ty}
}
