package llvm

import (
	"fmt"
	"log"

	"github.com/athmas-shadow/llvm-kaleideoscope/internal/ast"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/diagnostics"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/scope"
	"tinygo.org/x/go-llvm"
)

// llvmCodegen is one compilation session: an LLVM context, the module
// that accumulates every emitted function, and the prototype registry
// that survives across top-level units.
type llvmCodegen struct {
	context llvm.Context
	module  llvm.Module
	builder llvm.Builder

	collector *diagnostics.Collector
	protos    map[string]*ast.Proto
}

func NewCG(moduleName string, collector *diagnostics.Collector) *llvmCodegen {
	context := llvm.NewContext()
	module := context.NewModule(moduleName)
	builder := context.NewBuilder()

	defaultTargetTriple := llvm.DefaultTargetTriple()
	module.SetTarget(defaultTargetTriple)

	return &llvmCodegen{
		context:   context,
		module:    module,
		builder:   builder,
		collector: collector,
		protos:    map[string]*ast.Proto{},
	}
}

// Module returns the module every emitted unit has accumulated into.
func (c *llvmCodegen) Module() llvm.Module {
	return c.module
}

// Emit lowers one top-level unit into the module and returns the
// resulting function value.
func (c *llvmCodegen) Emit(n *ast.Node) (llvm.Value, error) {
	switch n.Kind {
	case ast.KIND_PROTO:
		fnValue, err := c.emitProto(n.Node.(*ast.Proto))
		if err != nil {
			return llvm.Value{}, err
		}
		return fnValue.Fn, nil
	case ast.KIND_FUNCTION:
		return c.emitFunction(n.Node.(*ast.Function))
	default:
		log.Fatalf("unimplemented node on Emit: %s", n)
		return llvm.Value{}, nil
	}
}

// emitProto declares proto on the module with one double parameter per
// name and a double return type. A name the module already holds is
// reused as long as the arity matches, so externs and definitions can
// refer to each other in either order.
func (c *llvmCodegen) emitProto(proto *ast.Proto) (*Function, error) {
	fn := c.module.NamedFunction(proto.Name)
	if fn.IsNil() {
		fn = llvm.AddFunction(c.module, proto.Name, c.functionType(proto))
	} else if fn.ParamsCount() != len(proto.Params) {
		redeclared := diagnostics.Diag{
			Message: fmt.Sprintf(
				"function '%s' redeclared with %d parameters, previously %d",
				proto.Name,
				len(proto.Params),
				fn.ParamsCount(),
			),
		}
		c.collector.ReportAndSave(redeclared)
		return nil, diagnostics.COMPILER_ERROR_FOUND
	}

	// The latest prototype wins, so a definition renames the
	// parameters of an earlier extern
	for i, param := range fn.Params() {
		param.SetName(proto.Params[i])
	}
	c.protos[proto.Name] = proto

	return NewFunctionValue(fn, c.functionType(proto)), nil
}

// emitFunction lowers a definition: declare, open the entry block,
// bind the parameters into a fresh scope, emit the body and return its
// value. Any failure after the declaration exists erases the function
// from the module, so no half-built definition stays visible to later
// units.
func (c *llvmCodegen) emitFunction(function *ast.Function) (llvm.Value, error) {
	proto := function.Proto

	fnValue, err := c.emitProto(proto)
	if err != nil {
		return llvm.Value{}, err
	}

	if fnValue.Fn.BasicBlocksCount() != 0 {
		redefined := diagnostics.Diag{
			Message: fmt.Sprintf("function '%s' cannot be redefined", proto.Name),
		}
		c.collector.ReportAndSave(redefined)
		return llvm.Value{}, diagnostics.COMPILER_ERROR_FOUND
	}

	entry := c.context.AddBasicBlock(fnValue.Fn, "entry")
	c.builder.SetInsertPointAtEnd(entry)

	namedValues := scope.New[llvm.Value]()
	for i, param := range proto.Params {
		err := namedValues.Insert(param, fnValue.Fn.Param(i))
		if err != nil {
			log.Fatalf("duplicated parameter '%s' should have been rejected by the parser", param)
		}
	}

	body, err := c.emitExpr(function.Body, namedValues)
	if err != nil {
		fnValue.Fn.EraseFromParentAsFunction()
		return llvm.Value{}, err
	}
	c.builder.CreateRet(body)

	err = llvm.VerifyFunction(fnValue.Fn, llvm.ReturnStatusAction)
	if err != nil {
		fnValue.Fn.EraseFromParentAsFunction()
		brokenFunction := diagnostics.Diag{
			Message: fmt.Sprintf("function '%s' failed verification: %s", proto.Name, err),
		}
		c.collector.ReportAndSave(brokenFunction)
		return llvm.Value{}, diagnostics.COMPILER_ERROR_FOUND
	}

	return fnValue.Fn, nil
}

// emitExpr lowers one expression given the values in scope. Operands
// are emitted left to right.
func (c *llvmCodegen) emitExpr(expr *ast.Node, namedValues *scope.Scope[llvm.Value]) (llvm.Value, error) {
	switch expr.Kind {
	case ast.KIND_NUMBER_EXPR:
		number := expr.Node.(*ast.NumberExpr)
		return llvm.ConstFloat(c.context.DoubleType(), number.Val), nil
	case ast.KIND_VARIABLE_EXPR:
		variable := expr.Node.(*ast.VariableExpr)

		value, err := namedValues.Lookup(variable.Name)
		if err != nil {
			unknownVariable := diagnostics.Diag{
				Message: fmt.Sprintf("unknown variable '%s'", variable.Name),
			}
			c.collector.ReportAndSave(unknownVariable)
			return llvm.Value{}, diagnostics.COMPILER_ERROR_FOUND
		}
		return value, nil
	case ast.KIND_BINARY_EXPR:
		binary := expr.Node.(*ast.BinaryExpr)

		lhs, err := c.emitExpr(binary.Left, namedValues)
		if err != nil {
			return llvm.Value{}, err
		}
		rhs, err := c.emitExpr(binary.Right, namedValues)
		if err != nil {
			return llvm.Value{}, err
		}

		switch binary.Op {
		case '+':
			return c.builder.CreateFAdd(lhs, rhs, "addtmp"), nil
		case '-':
			return c.builder.CreateFSub(lhs, rhs, "subtmp"), nil
		case '*':
			return c.builder.CreateFMul(lhs, rhs, "multmp"), nil
		case '<':
			// The comparison gives an i1, the language only has doubles
			cmp := c.builder.CreateFCmp(llvm.FloatULT, lhs, rhs, "cmptmp")
			return c.builder.CreateUIToFP(cmp, c.context.DoubleType(), "booltmp"), nil
		default:
			invalidOperator := diagnostics.Diag{
				Message: fmt.Sprintf("invalid binary operator '%c'", binary.Op),
			}
			c.collector.ReportAndSave(invalidOperator)
			return llvm.Value{}, diagnostics.COMPILER_ERROR_FOUND
		}
	case ast.KIND_CALL_EXPR:
		call := expr.Node.(*ast.CallExpr)

		callee := c.getFunction(call.Callee)
		if callee == nil {
			unknownFunction := diagnostics.Diag{
				Message: fmt.Sprintf("unknown function '%s'", call.Callee),
			}
			c.collector.ReportAndSave(unknownFunction)
			return llvm.Value{}, diagnostics.COMPILER_ERROR_FOUND
		}

		if callee.Fn.ParamsCount() != len(call.Args) {
			wrongArity := diagnostics.Diag{
				Message: fmt.Sprintf(
					"function '%s' expects %d arguments, got %d",
					call.Callee,
					callee.Fn.ParamsCount(),
					len(call.Args),
				),
			}
			c.collector.ReportAndSave(wrongArity)
			return llvm.Value{}, diagnostics.COMPILER_ERROR_FOUND
		}

		args := make([]llvm.Value, len(call.Args))
		for i, arg := range call.Args {
			value, err := c.emitExpr(arg, namedValues)
			if err != nil {
				return llvm.Value{}, err
			}
			args[i] = value
		}

		return c.builder.CreateCall(callee.Ty, callee.Fn, args, "calltmp"), nil
	default:
		log.Fatalf("unimplemented expr on emitExpr: %s", expr)
		return llvm.Value{}, nil
	}
}

// getFunction resolves name to a declared function, re-declaring it
// from the prototype registry when the module no longer holds one.
func (c *llvmCodegen) getFunction(name string) *Function {
	proto, ok := c.protos[name]
	if !ok {
		return nil
	}

	fn := c.module.NamedFunction(name)
	if fn.IsNil() {
		fn = llvm.AddFunction(c.module, name, c.functionType(proto))
		for i, param := range fn.Params() {
			param.SetName(proto.Params[i])
		}
	}

	return NewFunctionValue(fn, c.functionType(proto))
}

// functionType builds the double(double, ...) type for proto; arity is
// the only thing that varies between functions.
func (c *llvmCodegen) functionType(proto *ast.Proto) llvm.Type {
	paramTypes := make([]llvm.Type, len(proto.Params))
	for i := range paramTypes {
		paramTypes[i] = c.context.DoubleType()
	}
	return llvm.FunctionType(c.context.DoubleType(), paramTypes, false)
}
