package token

import "fmt"

type Token struct {
	// Lexeme is the raw text of the token as it appeared in the source
	Lexeme string
	// Val is only meaningful for NUMBER tokens
	Val float64
	// Op is only meaningful for OPERATOR tokens
	Op   rune
	Kind Kind
	Pos  Pos
}

func New(lexeme string, kind Kind, position Pos) *Token {
	return &Token{Lexeme: lexeme, Kind: kind, Pos: position}
}

func NewNumber(lexeme string, value float64, position Pos) *Token {
	return &Token{Lexeme: lexeme, Val: value, Kind: NUMBER, Pos: position}
}

func NewOperator(operator rune, position Pos) *Token {
	return &Token{Lexeme: string(operator), Op: operator, Kind: OPERATOR, Pos: position}
}

// IsOperator tells whether the token is the single character operator.
func (token *Token) IsOperator(operator rune) bool {
	return token.Kind == OPERATOR && token.Op == operator
}

func (token *Token) Name() string {
	if token.Kind == IDENTIFIER || token.Kind == NUMBER || token.Kind == OPERATOR {
		return token.Lexeme
	}
	return token.Kind.String()
}

func (token *Token) String() string {
	return fmt.Sprintf("%s | %s | %s", token.Lexeme, token.Kind, token.Pos)
}
