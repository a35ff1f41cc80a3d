package parser

import "github.com/RReverser/espree/token"

// Precedence order for binary operators
const (
	_ int = iota
	LOWEST
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BITWISE_OR  // |
	BITWISE_XOR // ^
	BITWISE_AND // &
	EQUALS      // == != === !==
	RELATIONAL  // < > <= >= instanceof in
	SHIFT       // << >> >>>
	SUM         // + -
	PRODUCT     // * / %
)

// Precedences for each binary operator. All of them are left associative.
var precedences = map[string]int{
	"||":         LOGICAL_OR,
	"&&":         LOGICAL_AND,
	"|":          BITWISE_OR,
	"^":          BITWISE_XOR,
	"&":          BITWISE_AND,
	"==":         EQUALS,
	"!=":         EQUALS,
	"===":        EQUALS,
	"!==":        EQUALS,
	"<":          RELATIONAL,
	">":          RELATIONAL,
	"<=":         RELATIONAL,
	">=":         RELATIONAL,
	"instanceof": RELATIONAL,
	"in":         RELATIONAL,
	"<<":         SHIFT,
	">>":         SHIFT,
	">>>":        SHIFT,
	"+":          SUM,
	"-":          SUM,
	"*":          PRODUCT,
	"/":          PRODUCT,
	"%":          PRODUCT,
}

// binaryPrecedence returns the precedence of tok as a binary operator, or 0
// if it is not one here. "in" is not an operator inside a for statement head.
func (p *Parser) binaryPrecedence(tok token.Token) int {
	if tok.Type != token.Punctuator && tok.Type != token.Keyword {
		return 0
	}
	if tok.Value == "in" && !p.allowIn {
		return 0
	}
	return precedences[tok.Value]
}
