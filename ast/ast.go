// Package ast defines the ESTree-shaped abstract syntax tree produced by the
// parser.
//
// Every node kind is a distinct struct whose JSON encoding carries a "type"
// tag followed by exactly the fields of that kind, so the field set of an
// encoded node depends only on its type.
package ast

import (
	"bytes"
	"encoding/json"

	"github.com/RReverser/espree/token"
)

// Node represents a portion of the syntax tree. The interface is sealed: only
// the node kinds defined in this package implement it.
type Node interface {
	// Type returns the ESTree type tag, e.g. "BinaryExpression".
	Type() string

	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	base() *Base
}

// Stmt represents a statement node, including declarations and module
// declarations.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Pattern represents a binding or assignment target.
type Pattern interface {
	Node
	patternNode()
}

// SourceLocation is the "loc" attached to nodes when requested.
type SourceLocation struct {
	Start token.Position `json:"start"`
	End   token.Position `json:"end"`
}

// Base holds the source span shared by every node. Range and Loc are only
// populated when the parse configuration asks for them.
type Base struct {
	Range *[2]int         `json:"range,omitempty"`
	Loc   *SourceLocation `json:"loc,omitempty"`

	start token.Position
	end   token.Position
}

func (b *Base) Pos() token.Position { return b.start }
func (b *Base) End() token.Position { return b.end }
func (b *Base) base() *Base         { return b }

// SetSpan records the source span of a node and fills in range and loc
// metadata as requested.
func SetSpan(n Node, start, end token.Position, withRange, withLoc bool) {
	b := n.base()
	b.start = start
	b.end = end
	b.Range = nil
	b.Loc = nil
	if withRange {
		b.Range = &[2]int{start.Offset, end.Offset}
	}
	if withLoc {
		b.Loc = &SourceLocation{Start: start, End: end}
	}
}

// withType prefixes an encoded object with its type tag.
func withType(typ string, data []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(data) + len(typ) + 12)
	buf.WriteString(`{"type":`)
	tag, _ := json.Marshal(typ)
	buf.Write(tag)
	if !bytes.Equal(data, []byte("{}")) {
		buf.WriteByte(',')
		buf.Write(data[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// Program is the root node.
type Program struct {
	Base
	Body       []Stmt `json:"body"`
	SourceType string `json:"sourceType"`

	// Tokens and Comments are only encoded when IncludeTokens and
	// IncludeComments are set.
	Tokens          []*Token   `json:"-"`
	Comments        []*Comment `json:"-"`
	IncludeTokens   bool       `json:"-"`
	IncludeComments bool       `json:"-"`
}

func (*Program) Type() string { return "Program" }

func (n *Program) MarshalJSON() ([]byte, error) {
	type plain Program
	out := struct {
		*plain
		Tokens   *[]*Token   `json:"tokens,omitempty"`
		Comments *[]*Comment `json:"comments,omitempty"`
	}{plain: (*plain)(n)}
	if n.IncludeTokens {
		tokens := n.Tokens
		if tokens == nil {
			tokens = []*Token{}
		}
		out.Tokens = &tokens
	}
	if n.IncludeComments {
		comments := n.Comments
		if comments == nil {
			comments = []*Comment{}
		}
		out.Comments = &comments
	}
	b, err := json.Marshal(out)
	return withType(n.Type(), b, err)
}

// Token is the encoded form of a lexical token in Program.tokens.
type Token struct {
	Type  token.Type      `json:"type"`
	Value string          `json:"value"`
	Regex *token.Regex    `json:"regex,omitempty"`
	Range *[2]int         `json:"range,omitempty"`
	Loc   *SourceLocation `json:"loc,omitempty"`
}

// Comment is the encoded form of a comment in Program.comments.
type Comment struct {
	Type  string          `json:"type"`
	Value string          `json:"value"`
	Range *[2]int         `json:"range,omitempty"`
	Loc   *SourceLocation `json:"loc,omitempty"`
}
