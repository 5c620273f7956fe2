package lexer

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer/token"
)

const eof = '\000'

type Lexer struct {
	reader *bufio.Reader
	pos    token.Pos
}

func New(filename string, reader io.Reader) *Lexer {
	lexer := new(Lexer)

	lexer.reader = bufio.NewReader(reader)
	lexer.pos = token.NewPosition(filename, 1, 1)

	return lexer
}

func NewFromString(src string) *Lexer {
	return New("", strings.NewReader(src))
}

func NewFromFilePath(path string) (*Lexer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l := New(path, bytes.NewReader(src))
	return l, nil
}

func (lex *Lexer) Filename() string { return lex.pos.Filename }

// Next scans and returns the next token. Once the underlying reader is
// exhausted it keeps returning EOF tokens.
func (lex *Lexer) Next() *token.Token {
	lex.skipWhitespace()

	character := lex.peekChar()
	if character == eof {
		return token.New("", token.EOF, lex.pos)
	}

	return lex.getToken(character)
}

// Useful for testing
func (lex *Lexer) Tokenize() []*token.Token {
	var tokens []*token.Token
	for {
		tok := lex.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func (lex *Lexer) getToken(ch byte) *token.Token {
	switch {
	case isAlpha(ch):
		return lex.getIdOrKeyword()
	case isDigit(ch) || ch == '.':
		return lex.getNumber()
	case ch == '#':
		lex.skipComment()
		return lex.Next()
	default:
		operatorPosition := lex.pos
		lex.nextChar()
		return token.NewOperator(rune(ch), operatorPosition)
	}
}

func (lex *Lexer) getIdOrKeyword() *token.Token {
	identifierPosition := lex.pos
	identifier := lex.readWhile(
		func(chr byte) bool { return isAlpha(chr) || isDigit(chr) },
	)

	kind := token.IDENTIFIER
	if keyword, ok := token.KEYWORDS[identifier]; ok {
		kind = keyword
	}
	return token.New(identifier, kind, identifierPosition)
}

func (lex *Lexer) getNumber() *token.Token {
	numberPosition := lex.pos
	number := lex.readWhile(
		func(chr byte) bool { return isDigit(chr) || chr == '.' },
	)
	return token.NewNumber(number, numberValue(number), numberPosition)
}

// numberValue converts a lexeme made of digits and dots the way strtod
// does: everything from the second dot on is ignored, a lexeme with no
// usable digits converts to 0, and an out-of-range one saturates.
func numberValue(lexeme string) float64 {
	if first := strings.IndexByte(lexeme, '.'); first != -1 {
		if second := strings.IndexByte(lexeme[first+1:], '.'); second != -1 {
			lexeme = lexeme[:first+1+second]
		}
	}
	value, _ := strconv.ParseFloat(lexeme, 64)
	return value
}

// skipComment consumes a '#' comment up to, but not including, the end
// of the line. The caller rescans from there.
func (lex *Lexer) skipComment() {
	lex.readWhile(func(chr byte) bool { return chr != '\n' && chr != '\r' })
}

func (lex *Lexer) skipWhitespace() {
	lex.readWhile(func(chr byte) bool {
		return chr == ' ' || chr == '\t' || chr == '\n' || chr == '\r'
	})
}

func (lex *Lexer) readWhile(isValid func(byte) bool) string {
	var lexeme []byte

	for {
		character := lex.peekChar()
		if character == eof {
			break
		}

		if isValid(character) {
			lexeme = append(lexeme, character)
			lex.nextChar()
		} else {
			break
		}
	}

	return string(lexeme)
}

func (lex *Lexer) nextChar() byte {
	character, err := lex.reader.ReadByte()
	if err != nil {
		return eof
	}
	lex.pos.Move(character)
	return character
}

func (lex *Lexer) peekChar() byte {
	next, err := lex.reader.Peek(1)
	if err != nil {
		return eof
	}
	return next[0]
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
