package parser

import (
	"fmt"

	"github.com/athmas-shadow/llvm-kaleideoscope/internal/ast"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/diagnostics"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer/token"
)

// BINOP_PRECEDENCE ranks the binary operators; a higher number binds
// tighter. Operators outside this table never continue a binary
// expression.
var BINOP_PRECEDENCE map[rune]int = map[rune]int{
	'<': 10,
	'+': 20,
	'-': 20,
	'*': 40,
}

type Parser struct {
	lex       *lexer.Lexer
	collector *diagnostics.Collector

	// cur is the single token of lookahead. It is nil until the first
	// Advance, so an interactive driver can prompt before the parser
	// pulls anything from the input.
	cur *token.Token
}

func New(lex *lexer.Lexer, collector *diagnostics.Collector) *Parser {
	parser := new(Parser)
	parser.lex = lex
	parser.collector = collector
	return parser
}

// Advance pulls the next token from the lexer into the lookahead.
func (p *Parser) Advance() {
	p.cur = p.lex.Next()
}

// Cur returns the lookahead token.
func (p *Parser) Cur() *token.Token {
	return p.cur
}

// ParseExpression parses
//
//	expression := primary (operator primary)*
//
// with operator precedence resolved by parseBinOpRHS.
func (p *Parser) ParseExpression() (*ast.Node, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

// parseBinOpRHS absorbs operator-primary pairs into lhs for as long as
// the operator's precedence is at least exprPrec. When the operator
// after a right-hand operand binds tighter than the current one, the
// right side is grown first, so equal precedence associates left and
// higher precedence groups right.
func (p *Parser) parseBinOpRHS(exprPrec int, lhs *ast.Node) (*ast.Node, error) {
	for {
		tokPrec := p.curPrecedence()
		if tokPrec < exprPrec {
			return lhs, nil
		}

		op := p.cur.Op
		p.Advance()

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		nextPrec := p.curPrecedence()
		if tokPrec < nextPrec {
			rhs, err = p.parseBinOpRHS(tokPrec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		n := new(ast.Node)
		n.Kind = ast.KIND_BINARY_EXPR
		n.Node = &ast.BinaryExpr{Left: lhs, Op: op, Right: rhs}
		lhs = n
	}
}

// curPrecedence returns the precedence of the lookahead token, or -1
// when it cannot continue a binary expression.
func (p *Parser) curPrecedence() int {
	if p.cur.Kind != token.OPERATOR {
		return -1
	}
	precedence, ok := BINOP_PRECEDENCE[p.cur.Op]
	if !ok {
		return -1
	}
	return precedence
}

// parsePrimary parses
//
//	primary := number | identifier-or-call | '(' expression ')'
func (p *Parser) parsePrimary() (*ast.Node, error) {
	switch {
	case p.cur.Kind == token.NUMBER:
		return p.parseNumber()
	case p.cur.Kind == token.IDENTIFIER:
		return p.parseIdentifierOrCall()
	case p.cur.IsOperator('('):
		return p.parseParen()
	default:
		pos := p.cur.Pos
		unexpectedToken := diagnostics.Diag{
			Message: fmt.Sprintf(
				"%s: expected an expression, not '%s'",
				pos,
				p.cur.Name(),
			),
		}
		p.collector.ReportAndSave(unexpectedToken)
		return nil, diagnostics.COMPILER_ERROR_FOUND
	}
}

func (p *Parser) parseNumber() (*ast.Node, error) {
	number := new(ast.NumberExpr)
	number.Val = p.cur.Val
	p.Advance()

	n := new(ast.Node)
	n.Kind = ast.KIND_NUMBER_EXPR
	n.Node = number
	return n, nil
}

func (p *Parser) parseParen() (*ast.Node, error) {
	p.Advance() // (

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	closeParen, ok := p.expectOperator(')')
	if !ok {
		pos := closeParen.Pos
		expectedCloseParen := diagnostics.Diag{
			Message: fmt.Sprintf(
				"%s: expected ')', not '%s'",
				pos,
				closeParen.Name(),
			),
		}
		p.collector.ReportAndSave(expectedCloseParen)
		return nil, diagnostics.COMPILER_ERROR_FOUND
	}

	// No node for the parentheses themselves, grouping is already
	// explicit in the tree
	return expr, nil
}

// parseIdentifierOrCall parses an identifier, and when it is followed
// by '(', a call with a comma-separated argument list.
func (p *Parser) parseIdentifierOrCall() (*ast.Node, error) {
	name := p.cur.Lexeme
	p.Advance()

	if !p.cur.IsOperator('(') {
		variable := new(ast.VariableExpr)
		variable.Name = name

		n := new(ast.Node)
		n.Kind = ast.KIND_VARIABLE_EXPR
		n.Node = variable
		return n, nil
	}

	p.Advance() // (

	var args []*ast.Node
	if !p.cur.IsOperator(')') {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.cur.IsOperator(')') {
				break
			}

			comma, ok := p.expectOperator(',')
			if !ok {
				pos := comma.Pos
				expectedComma := diagnostics.Diag{
					Message: fmt.Sprintf(
						"%s: expected ')' or ',' in argument list, not '%s'",
						pos,
						comma.Name(),
					),
				}
				p.collector.ReportAndSave(expectedComma)
				return nil, diagnostics.COMPILER_ERROR_FOUND
			}
		}
	}

	p.Advance() // )

	call := new(ast.CallExpr)
	call.Callee = name
	call.Args = args

	n := new(ast.Node)
	n.Kind = ast.KIND_CALL_EXPR
	n.Node = call
	return n, nil
}

// ParsePrototype parses
//
//	prototype := identifier '(' identifier* ')'
//
// Parameters are separated by whitespace alone and must be pairwise
// distinct.
func (p *Parser) ParsePrototype() (*ast.Proto, error) {
	name, ok := p.expect(token.IDENTIFIER)
	if !ok {
		pos := name.Pos
		expectedName := diagnostics.Diag{
			Message: fmt.Sprintf(
				"%s: expected function name in prototype, not '%s'",
				pos,
				name.Name(),
			),
		}
		p.collector.ReportAndSave(expectedName)
		return nil, diagnostics.COMPILER_ERROR_FOUND
	}

	openParen, ok := p.expectOperator('(')
	if !ok {
		pos := openParen.Pos
		expectedOpenParen := diagnostics.Diag{
			Message: fmt.Sprintf(
				"%s: expected '(' in prototype, not '%s'",
				pos,
				openParen.Name(),
			),
		}
		p.collector.ReportAndSave(expectedOpenParen)
		return nil, diagnostics.COMPILER_ERROR_FOUND
	}

	var params []string
	seen := map[string]bool{}
	for p.cur.Kind == token.IDENTIFIER {
		param := p.cur.Lexeme
		if seen[param] {
			pos := p.cur.Pos
			duplicatedParam := diagnostics.Diag{
				Message: fmt.Sprintf(
					"%s: parameter '%s' declared more than once in prototype '%s'",
					pos,
					param,
					name.Lexeme,
				),
			}
			p.collector.ReportAndSave(duplicatedParam)
			return nil, diagnostics.COMPILER_ERROR_FOUND
		}
		seen[param] = true
		params = append(params, param)
		p.Advance()
	}

	closeParen, ok := p.expectOperator(')')
	if !ok {
		pos := closeParen.Pos
		expectedCloseParen := diagnostics.Diag{
			Message: fmt.Sprintf(
				"%s: expected ')' in prototype, not '%s'",
				pos,
				closeParen.Name(),
			),
		}
		p.collector.ReportAndSave(expectedCloseParen)
		return nil, diagnostics.COMPILER_ERROR_FOUND
	}

	proto := new(ast.Proto)
	proto.Name = name.Lexeme
	proto.Params = params
	return proto, nil
}

// ParseDefinition parses
//
//	definition := 'def' prototype expression
func (p *Parser) ParseDefinition() (*ast.Node, error) {
	def, ok := p.expect(token.DEF)
	if !ok {
		return nil, fmt.Errorf("expected 'def', not %s", def.Kind.String())
	}

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	function := new(ast.Function)
	function.Proto = proto
	function.Body = body

	n := new(ast.Node)
	n.Kind = ast.KIND_FUNCTION
	n.Node = function
	return n, nil
}

// ParseExtern parses
//
//	extern := 'extern' prototype
func (p *Parser) ParseExtern() (*ast.Node, error) {
	ext, ok := p.expect(token.EXTERN)
	if !ok {
		return nil, fmt.Errorf("expected 'extern', not %s", ext.Kind.String())
	}

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	n := new(ast.Node)
	n.Kind = ast.KIND_PROTO
	n.Node = proto
	return n, nil
}

// ParseTopLevelExpr wraps a bare expression into a function with an
// anonymous zero-parameter prototype, so it can be emitted like any
// other definition.
func (p *Parser) ParseTopLevelExpr() (*ast.Node, error) {
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	proto := new(ast.Proto)
	proto.Name = ""

	function := new(ast.Function)
	function.Proto = proto
	function.Body = body

	n := new(ast.Node)
	n.Kind = ast.KIND_FUNCTION
	n.Node = function
	return n, nil
}

func (p *Parser) expect(expectedKind token.Kind) (*token.Token, bool) {
	tok := p.cur
	if tok.Kind != expectedKind {
		return tok, false
	}
	p.Advance()
	return tok, true
}

func (p *Parser) expectOperator(operator rune) (*token.Token, bool) {
	tok := p.cur
	if !tok.IsOperator(operator) {
		return tok, false
	}
	p.Advance()
	return tok, true
}
