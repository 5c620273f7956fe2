package token

import "log"

type Kind int

const (
	// EOF
	EOF Kind = iota

	// Keywords
	DEF
	EXTERN

	// Identifier
	IDENTIFIER

	// Numeric literal
	NUMBER

	// Any other single character, carried on Token.Op
	OPERATOR
)

var KEYWORDS map[string]Kind = map[string]Kind{
	"def":    DEF,
	"extern": EXTERN,
}

func (kind Kind) String() string {
	switch kind {
	case EOF:
		return "end of input"
	case DEF:
		return "def"
	case EXTERN:
		return "extern"
	case IDENTIFIER:
		return "identifier"
	case NUMBER:
		return "number"
	case OPERATOR:
		return "operator"
	default:
		log.Fatalf("String() method not defined for the following token kind '%d'", kind)
	}
	return ""
}
