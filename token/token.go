// Package token defines the tokens produced when lexing ECMAScript source.
package token

import "fmt"

// Type describes the class of a token. The names match the token types
// reported by esprima-style tokenizers.
type Type string

// Token types
const (
	Boolean           Type = "Boolean"
	EOF               Type = "<end>"
	Identifier        Type = "Identifier"
	Keyword           Type = "Keyword"
	Null              Type = "Null"
	Numeric           Type = "Numeric"
	Punctuator        Type = "Punctuator"
	String            Type = "String"
	RegularExpression Type = "RegularExpression"
	Template          Type = "Template"
	JSXIdentifier     Type = "JSXIdentifier"
	JSXText           Type = "JSXText"
)

// Position points to a particular location in an input string. Offset and
// Column count Unicode code points; Line is 1-indexed and Column 0-indexed.
type Position struct {
	Offset int `json:"-"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Regex holds the parts of a regular expression literal.
type Regex struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

// Token represents one token lexed from the input source code.
type Token struct {
	Type Type
	// Value is the token text. Identifiers and keywords hold their name with
	// escapes decoded; every other token holds its source text.
	Value string
	// Cooked is the decoded value of string, template and JSX text tokens.
	Cooked string
	// Raw is the source text of a template chunk between its delimiters,
	// with line terminators normalized to "\n".
	Raw string
	// Number is the value of a numeric token.
	Number float64
	// Regex is set for regular expression tokens.
	Regex *Regex
	// Tail is set on a template chunk that ends with a backtick.
	Tail bool
	// Octal marks legacy octal literals and strings with octal escapes.
	Octal bool
	// Escaped marks identifiers spelled with unicode escapes.
	Escaped bool
	// NewlineBefore is set when a line terminator precedes the token.
	NewlineBefore bool

	StartPosition Position
	EndPosition   Position
}

// Start returns the offset of the first character of the token.
func (t Token) Start() int { return t.StartPosition.Offset }

// End returns the offset just past the token.
func (t Token) End() int { return t.EndPosition.Offset }

// Is reports whether the token is a punctuator or keyword with the given text.
func (t Token) Is(value string) bool {
	return (t.Type == Punctuator || t.Type == Keyword) && t.Value == value
}

// IsIdentifier reports whether the token is the identifier name (not a string
// or escaped spelling) given.
func (t Token) IsIdentifier(name string) bool {
	return t.Type == Identifier && t.Value == name && !t.Escaped
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Value)
}

// Comment is a line or block comment skipped by the lexer.
type Comment struct {
	Type          string
	Value         string
	StartPosition Position
	EndPosition   Position
}

var keywords = map[string]bool{
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"export":     true,
	"extends":    true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"import":     true,
	"in":         true,
	"instanceof": true,
	"new":        true,
	"return":     true,
	"super":      true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"try":        true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,
}

var strictReserved = map[string]bool{
	"implements": true,
	"interface":  true,
	"let":        true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"static":     true,
	"yield":      true,
}

// LookupIdentifier returns the token type for an identifier name: Keyword,
// Null, Boolean or Identifier.
func LookupIdentifier(name string) Type {
	switch {
	case keywords[name]:
		return Keyword
	case name == "null":
		return Null
	case name == "true" || name == "false":
		return Boolean
	}
	return Identifier
}

// IsKeyword reports whether name is a reserved word in every context.
func IsKeyword(name string) bool {
	return keywords[name]
}

// IsStrictModeReservedWord reports whether name is reserved in strict code only.
func IsStrictModeReservedWord(name string) bool {
	return strictReserved[name]
}

// IsRestrictedWord reports whether name may not be bound or assigned in
// strict code.
func IsRestrictedWord(name string) bool {
	return name == "eval" || name == "arguments"
}

var punctuators = map[string]bool{
	"{": true, "}": true, "(": true, ")": true, "[": true, "]": true,
	";": true, ",": true, "<": true, ">": true, "<=": true, ">=": true,
	"==": true, "!=": true, "===": true, "!==": true,
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"++": true, "--": true, "<<": true, ">>": true, ">>>": true,
	"&": true, "|": true, "^": true, "!": true, "~": true,
	"&&": true, "||": true, "?": true, ":": true, "=": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true, "^=": true,
	".": true, "...": true, "=>": true,
}

// IsPunctuator reports whether s is a complete punctuator.
func IsPunctuator(s string) bool {
	return punctuators[s]
}

// IsAssignmentOperator reports whether op is "=" or a compound assignment.
func IsAssignmentOperator(op string) bool {
	switch op {
	case "=", "+=", "-=", "*=", "/=", "%=", "<<=", ">>=", ">>>=", "&=", "|=", "^=":
		return true
	}
	return false
}
