package parser

import (
	"strings"

	"github.com/athmas-shadow/llvm-kaleideoscope/internal/ast"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/diagnostics"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer/token"
)

const defaultFilename = "test.ks"

// NewFromString builds a ready-to-use parser over an in-memory source,
// with the lookahead already primed.
func NewFromString(src, filename string) *Parser {
	if filename == "" {
		filename = defaultFilename
	}

	collector := diagnostics.New()
	lex := lexer.New(filename, strings.NewReader(src))
	p := New(lex, collector)
	p.Advance()
	return p
}

// Collector exposes the diagnostics accumulated so far.
func (p *Parser) Collector() *diagnostics.Collector {
	return p.collector
}

func ParseExprFrom(expr, filename string) (*ast.Node, error) {
	p := NewFromString(expr, filename)
	return p.ParseExpression()
}

// ParseUnit parses a single top-level unit the way the driver
// dispatches one: 'def' and 'extern' by their keyword, anything else
// as a bare expression.
func (p *Parser) ParseUnit() (*ast.Node, error) {
	switch p.Cur().Kind {
	case token.DEF:
		return p.ParseDefinition()
	case token.EXTERN:
		return p.ParseExtern()
	default:
		return p.ParseTopLevelExpr()
	}
}

func ParseUnitFrom(src, filename string) (*ast.Node, error) {
	p := NewFromString(src, filename)
	return p.ParseUnit()
}
