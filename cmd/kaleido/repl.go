package main

import (
	"fmt"
	"os"

	"github.com/athmas-shadow/llvm-kaleideoscope/internal/ast"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/codegen/llvm"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/diagnostics"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer/token"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/parser"
)

const PROMPT = "ready> "

// repl runs the interactive session: one top-level unit at a time,
// parse, emit, dump the function's IR, and keep going after errors.
// The accumulated module prints on stdout once the input ends, so a
// piped session leaves clean IR behind.
func repl() {
	collector := diagnostics.New()
	lex := lexer.New("", os.Stdin)
	p := parser.New(lex, collector)
	cg := llvm.NewCG("repl", collector)

	handle := func(parse func() (*ast.Node, error), parsed string) {
		node, err := parse()
		if err != nil {
			// Skip one token for error recovery
			p.Advance()
			return
		}
		fmt.Fprintln(os.Stderr, parsed)

		value, err := cg.Emit(node)
		if err == nil {
			value.Dump()
		}
	}

	// The first prompt comes before the parser pulls anything, since
	// reading the first token blocks on input
	fmt.Fprint(os.Stderr, PROMPT)
	p.Advance()

	for {
		fmt.Fprint(os.Stderr, PROMPT)

		switch {
		case p.Cur().Kind == token.EOF:
			fmt.Print(cg.Module().String())
			return
		case p.Cur().IsOperator(';'):
			// Top-level semicolons just separate units
			p.Advance()
		case p.Cur().Kind == token.DEF:
			handle(p.ParseDefinition, "Parsed a function definition.")
		case p.Cur().Kind == token.EXTERN:
			handle(p.ParseExtern, "Parsed an extern")
		default:
			handle(p.ParseTopLevelExpr, "Parsed a top-level expr")
		}
	}
}
