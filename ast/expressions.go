package ast

import (
	"encoding/json"
	"math"

	"github.com/RReverser/espree/token"
)

// Identifier is a name used as an expression, binding or property key.
type Identifier struct {
	Base
	Name string `json:"name"`
}

func (*Identifier) Type() string { return "Identifier" }
func (*Identifier) exprNode()    {}
func (*Identifier) patternNode() {}

func (n *Identifier) MarshalJSON() ([]byte, error) {
	type plain Identifier
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ThisExpression is the this keyword.
type ThisExpression struct {
	Base
}

func (*ThisExpression) Type() string { return "ThisExpression" }
func (*ThisExpression) exprNode()    {}

func (n *ThisExpression) MarshalJSON() ([]byte, error) {
	type plain ThisExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ArrayExpression elements are nil for holes and may be *SpreadElement.
type ArrayExpression struct {
	Base
	Elements []Expr `json:"elements"`
}

func (*ArrayExpression) Type() string { return "ArrayExpression" }
func (*ArrayExpression) exprNode()    {}

func (n *ArrayExpression) MarshalJSON() ([]byte, error) {
	type plain ArrayExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ObjectExpression properties are *Property or *ExperimentalSpreadProperty.
type ObjectExpression struct {
	Base
	Properties []Node `json:"properties"`
}

func (*ObjectExpression) Type() string { return "ObjectExpression" }
func (*ObjectExpression) exprNode()    {}

func (n *ObjectExpression) MarshalJSON() ([]byte, error) {
	type plain ObjectExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// Property Kind is "init", "get" or "set". Value is a Pattern inside an ObjectPattern.
type Property struct {
	Base
	Key       Expr   `json:"key"`
	Value     Node   `json:"value"`
	Kind      string `json:"kind"`
	Method    bool   `json:"method"`
	Shorthand bool   `json:"shorthand"`
	Computed  bool   `json:"computed"`
}

func (*Property) Type() string { return "Property" }

func (n *Property) MarshalJSON() ([]byte, error) {
	type plain Property
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// FunctionExpression has a nil ID when anonymous. It is also the value of methods and accessors.
type FunctionExpression struct {
	Base
	ID         *Identifier     `json:"id"`
	Params     []Pattern       `json:"params"`
	Body       *BlockStatement `json:"body"`
	Generator  bool            `json:"generator"`
	Expression bool            `json:"expression"`
}

func (*FunctionExpression) Type() string { return "FunctionExpression" }
func (*FunctionExpression) exprNode()    {}

func (n *FunctionExpression) MarshalJSON() ([]byte, error) {
	type plain FunctionExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ArrowFunctionExpression Body is a *BlockStatement, or an Expr when Expression is set.
type ArrowFunctionExpression struct {
	Base
	ID         *Identifier `json:"id"`
	Params     []Pattern   `json:"params"`
	Body       Node        `json:"body"`
	Generator  bool        `json:"generator"`
	Expression bool        `json:"expression"`
}

func (*ArrowFunctionExpression) Type() string { return "ArrowFunctionExpression" }
func (*ArrowFunctionExpression) exprNode()    {}

func (n *ArrowFunctionExpression) MarshalJSON() ([]byte, error) {
	type plain ArrowFunctionExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// UnaryExpression is a prefix operator applied to an operand; Prefix is always true.
type UnaryExpression struct {
	Base
	Operator string `json:"operator"`
	Argument Expr   `json:"argument"`
	Prefix   bool   `json:"prefix"`
}

func (*UnaryExpression) Type() string { return "UnaryExpression" }
func (*UnaryExpression) exprNode()    {}

func (n *UnaryExpression) MarshalJSON() ([]byte, error) {
	type plain UnaryExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// UpdateExpression is ++ or -- in prefix or postfix position.
type UpdateExpression struct {
	Base
	Operator string `json:"operator"`
	Argument Expr   `json:"argument"`
	Prefix   bool   `json:"prefix"`
}

func (*UpdateExpression) Type() string { return "UpdateExpression" }
func (*UpdateExpression) exprNode()    {}

func (n *UpdateExpression) MarshalJSON() ([]byte, error) {
	type plain UpdateExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// BinaryExpression covers arithmetic, bitwise, relational and equality operators.
type BinaryExpression struct {
	Base
	Operator string `json:"operator"`
	Left     Expr   `json:"left"`
	Right    Expr   `json:"right"`
}

func (*BinaryExpression) Type() string { return "BinaryExpression" }
func (*BinaryExpression) exprNode()    {}

func (n *BinaryExpression) MarshalJSON() ([]byte, error) {
	type plain BinaryExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// AssignmentExpression Left is a Pattern; member targets are *MemberExpression.
type AssignmentExpression struct {
	Base
	Operator string  `json:"operator"`
	Left     Pattern `json:"left"`
	Right    Expr    `json:"right"`
}

func (*AssignmentExpression) Type() string { return "AssignmentExpression" }
func (*AssignmentExpression) exprNode()    {}

func (n *AssignmentExpression) MarshalJSON() ([]byte, error) {
	type plain AssignmentExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// LogicalExpression is || or &&.
type LogicalExpression struct {
	Base
	Operator string `json:"operator"`
	Left     Expr   `json:"left"`
	Right    Expr   `json:"right"`
}

func (*LogicalExpression) Type() string { return "LogicalExpression" }
func (*LogicalExpression) exprNode()    {}

func (n *LogicalExpression) MarshalJSON() ([]byte, error) {
	type plain LogicalExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// MemberExpression Object may be *Super.
type MemberExpression struct {
	Base
	Object   Expr `json:"object"`
	Property Expr `json:"property"`
	Computed bool `json:"computed"`
}

func (*MemberExpression) Type() string { return "MemberExpression" }
func (*MemberExpression) exprNode()    {}
func (*MemberExpression) patternNode() {}

func (n *MemberExpression) MarshalJSON() ([]byte, error) {
	type plain MemberExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ConditionalExpression is the ternary operator.
type ConditionalExpression struct {
	Base
	Test       Expr `json:"test"`
	Consequent Expr `json:"consequent"`
	Alternate  Expr `json:"alternate"`
}

func (*ConditionalExpression) Type() string { return "ConditionalExpression" }
func (*ConditionalExpression) exprNode()    {}

func (n *ConditionalExpression) MarshalJSON() ([]byte, error) {
	type plain ConditionalExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// CallExpression arguments may include *SpreadElement.
type CallExpression struct {
	Base
	Callee    Expr   `json:"callee"`
	Arguments []Expr `json:"arguments"`
}

func (*CallExpression) Type() string { return "CallExpression" }
func (*CallExpression) exprNode()    {}

func (n *CallExpression) MarshalJSON() ([]byte, error) {
	type plain CallExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// NewExpression arguments may include *SpreadElement.
type NewExpression struct {
	Base
	Callee    Expr   `json:"callee"`
	Arguments []Expr `json:"arguments"`
}

func (*NewExpression) Type() string { return "NewExpression" }
func (*NewExpression) exprNode()    {}

func (n *NewExpression) MarshalJSON() ([]byte, error) {
	type plain NewExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// SequenceExpression is a comma separated list of expressions.
type SequenceExpression struct {
	Base
	Expressions []Expr `json:"expressions"`
}

func (*SequenceExpression) Type() string { return "SequenceExpression" }
func (*SequenceExpression) exprNode()    {}

func (n *SequenceExpression) MarshalJSON() ([]byte, error) {
	type plain SequenceExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// YieldExpression has a nil Argument for a bare yield.
type YieldExpression struct {
	Base
	Argument Expr `json:"argument"`
	Delegate bool `json:"delegate"`
}

func (*YieldExpression) Type() string { return "YieldExpression" }
func (*YieldExpression) exprNode()    {}

func (n *YieldExpression) MarshalJSON() ([]byte, error) {
	type plain YieldExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// TemplateLiteral always has one more quasi than expressions.
type TemplateLiteral struct {
	Base
	Quasis      []*TemplateElement `json:"quasis"`
	Expressions []Expr             `json:"expressions"`
}

func (*TemplateLiteral) Type() string { return "TemplateLiteral" }
func (*TemplateLiteral) exprNode()    {}

func (n *TemplateLiteral) MarshalJSON() ([]byte, error) {
	type plain TemplateLiteral
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// TaggedTemplateExpression is a template literal applied to a tag function.
type TaggedTemplateExpression struct {
	Base
	Tag   Expr             `json:"tag"`
	Quasi *TemplateLiteral `json:"quasi"`
}

func (*TaggedTemplateExpression) Type() string { return "TaggedTemplateExpression" }
func (*TaggedTemplateExpression) exprNode()    {}

func (n *TaggedTemplateExpression) MarshalJSON() ([]byte, error) {
	type plain TaggedTemplateExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// TemplateElement is one literal chunk of a template.
type TemplateElement struct {
	Base
	Value TemplateValue `json:"value"`
	Tail  bool          `json:"tail"`
}

func (*TemplateElement) Type() string { return "TemplateElement" }

func (n *TemplateElement) MarshalJSON() ([]byte, error) {
	type plain TemplateElement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ClassExpression has a nil ID when anonymous.
type ClassExpression struct {
	Base
	ID         *Identifier `json:"id"`
	SuperClass Expr        `json:"superClass"`
	Body       *ClassBody  `json:"body"`
}

func (*ClassExpression) Type() string { return "ClassExpression" }
func (*ClassExpression) exprNode()    {}

func (n *ClassExpression) MarshalJSON() ([]byte, error) {
	type plain ClassExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ClassBody holds the methods of a class.
type ClassBody struct {
	Base
	Body []*MethodDefinition `json:"body"`
}

func (*ClassBody) Type() string { return "ClassBody" }

func (n *ClassBody) MarshalJSON() ([]byte, error) {
	type plain ClassBody
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// MethodDefinition Kind is "constructor", "method", "get" or "set".
type MethodDefinition struct {
	Base
	Key      Expr                `json:"key"`
	Value    *FunctionExpression `json:"value"`
	Kind     string              `json:"kind"`
	Computed bool                `json:"computed"`
	Static   bool                `json:"static"`
}

func (*MethodDefinition) Type() string { return "MethodDefinition" }

func (n *MethodDefinition) MarshalJSON() ([]byte, error) {
	type plain MethodDefinition
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// MetaProperty is new.target.
type MetaProperty struct {
	Base
	Meta     *Identifier `json:"meta"`
	Property *Identifier `json:"property"`
}

func (*MetaProperty) Type() string { return "MetaProperty" }
func (*MetaProperty) exprNode()    {}

func (n *MetaProperty) MarshalJSON() ([]byte, error) {
	type plain MetaProperty
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// Super is the super keyword used as a callee or member object.
type Super struct {
	Base
}

func (*Super) Type() string { return "Super" }
func (*Super) exprNode()    {}

func (n *Super) MarshalJSON() ([]byte, error) {
	type plain Super
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// SpreadElement appears in array literals and argument lists.
type SpreadElement struct {
	Base
	Argument Expr `json:"argument"`
}

func (*SpreadElement) Type() string { return "SpreadElement" }
func (*SpreadElement) exprNode()    {}

func (n *SpreadElement) MarshalJSON() ([]byte, error) {
	type plain SpreadElement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ExperimentalSpreadProperty is {...expr} in an object literal.
type ExperimentalSpreadProperty struct {
	Base
	Argument Expr `json:"argument"`
}

func (*ExperimentalSpreadProperty) Type() string { return "ExperimentalSpreadProperty" }

func (n *ExperimentalSpreadProperty) MarshalJSON() ([]byte, error) {
	type plain ExperimentalSpreadProperty
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// TemplateValue is the raw and cooked text of a template element.
type TemplateValue struct {
	Raw    string `json:"raw"`
	Cooked string `json:"cooked"`
}

// Literal is a string, number, boolean, null or regular expression literal.
// Value holds a string, float64, bool or nil; it is nil for regular
// expressions, whose source parts are in Regex. Regex is encoded as null for
// every other literal.
type Literal struct {
	Base
	Value any          `json:"value"`
	Raw   string       `json:"raw"`
	Regex *token.Regex `json:"regex"`
}

func (*Literal) Type() string { return "Literal" }
func (*Literal) exprNode()    {}

func (n *Literal) MarshalJSON() ([]byte, error) {
	type plain Literal
	out := *n
	// JSON has no infinities; JSON.stringify uses null for them as well.
	if f, ok := out.Value.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		out.Value = nil
	}
	b, err := json.Marshal((*plain)(&out))
	return withType(n.Type(), b, err)
}
