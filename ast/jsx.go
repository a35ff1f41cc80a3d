package ast

import "encoding/json"

// JSXIdentifier is a tag or attribute name; it may contain dashes.
type JSXIdentifier struct {
	Base
	Name string `json:"name"`
}

func (*JSXIdentifier) Type() string { return "JSXIdentifier" }

func (n *JSXIdentifier) MarshalJSON() ([]byte, error) {
	type plain JSXIdentifier
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXNamespacedName is namespace:name.
type JSXNamespacedName struct {
	Base
	Namespace *JSXIdentifier `json:"namespace"`
	Name      *JSXIdentifier `json:"name"`
}

func (*JSXNamespacedName) Type() string { return "JSXNamespacedName" }

func (n *JSXNamespacedName) MarshalJSON() ([]byte, error) {
	type plain JSXNamespacedName
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXMemberExpression Object is a *JSXIdentifier or *JSXMemberExpression.
type JSXMemberExpression struct {
	Base
	Object   Node           `json:"object"`
	Property *JSXIdentifier `json:"property"`
}

func (*JSXMemberExpression) Type() string { return "JSXMemberExpression" }

func (n *JSXMemberExpression) MarshalJSON() ([]byte, error) {
	type plain JSXMemberExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXEmptyExpression is the content of an empty {} container.
type JSXEmptyExpression struct {
	Base
}

func (*JSXEmptyExpression) Type() string { return "JSXEmptyExpression" }

func (n *JSXEmptyExpression) MarshalJSON() ([]byte, error) {
	type plain JSXEmptyExpression
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXExpressionContainer Expression is an Expr or *JSXEmptyExpression.
type JSXExpressionContainer struct {
	Base
	Expression Node `json:"expression"`
}

func (*JSXExpressionContainer) Type() string { return "JSXExpressionContainer" }

func (n *JSXExpressionContainer) MarshalJSON() ([]byte, error) {
	type plain JSXExpressionContainer
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXElement ClosingElement is nil for self-closing elements.
type JSXElement struct {
	Base
	OpeningElement *JSXOpeningElement `json:"openingElement"`
	ClosingElement *JSXClosingElement `json:"closingElement"`
	Children       []Node             `json:"children"`
}

func (*JSXElement) Type() string { return "JSXElement" }
func (*JSXElement) exprNode()    {}

func (n *JSXElement) MarshalJSON() ([]byte, error) {
	type plain JSXElement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXOpeningElement attributes are *JSXAttribute or *JSXSpreadAttribute.
type JSXOpeningElement struct {
	Base
	Name        Node   `json:"name"`
	Attributes  []Node `json:"attributes"`
	SelfClosing bool   `json:"selfClosing"`
}

func (*JSXOpeningElement) Type() string { return "JSXOpeningElement" }

func (n *JSXOpeningElement) MarshalJSON() ([]byte, error) {
	type plain JSXOpeningElement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXClosingElement Name matches the opening element name.
type JSXClosingElement struct {
	Base
	Name Node `json:"name"`
}

func (*JSXClosingElement) Type() string { return "JSXClosingElement" }

func (n *JSXClosingElement) MarshalJSON() ([]byte, error) {
	type plain JSXClosingElement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXAttribute Value is nil for a bare attribute.
type JSXAttribute struct {
	Base
	Name  Node `json:"name"`
	Value Node `json:"value"`
}

func (*JSXAttribute) Type() string { return "JSXAttribute" }

func (n *JSXAttribute) MarshalJSON() ([]byte, error) {
	type plain JSXAttribute
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXSpreadAttribute is {...expr} among tag attributes.
type JSXSpreadAttribute struct {
	Base
	Argument Expr `json:"argument"`
}

func (*JSXSpreadAttribute) Type() string { return "JSXSpreadAttribute" }

func (n *JSXSpreadAttribute) MarshalJSON() ([]byte, error) {
	type plain JSXSpreadAttribute
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// JSXText Value has HTML entities decoded; Raw is the source text.
type JSXText struct {
	Base
	Value string `json:"value"`
	Raw   string `json:"raw"`
}

func (*JSXText) Type() string { return "JSXText" }

func (n *JSXText) MarshalJSON() ([]byte, error) {
	type plain JSXText
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}
