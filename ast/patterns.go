package ast

import "encoding/json"

// ObjectPattern properties are *Property or *ExperimentalRestProperty.
type ObjectPattern struct {
	Base
	Properties []Node `json:"properties"`
}

func (*ObjectPattern) Type() string { return "ObjectPattern" }
func (*ObjectPattern) patternNode() {}

func (n *ObjectPattern) MarshalJSON() ([]byte, error) {
	type plain ObjectPattern
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ArrayPattern elements are nil for holes.
type ArrayPattern struct {
	Base
	Elements []Pattern `json:"elements"`
}

func (*ArrayPattern) Type() string { return "ArrayPattern" }
func (*ArrayPattern) patternNode() {}

func (n *ArrayPattern) MarshalJSON() ([]byte, error) {
	type plain ArrayPattern
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// RestElement is a ...rest binding in parameters or array patterns.
type RestElement struct {
	Base
	Argument Pattern `json:"argument"`
}

func (*RestElement) Type() string { return "RestElement" }
func (*RestElement) patternNode() {}

func (n *RestElement) MarshalJSON() ([]byte, error) {
	type plain RestElement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// AssignmentPattern is a pattern with a default value.
type AssignmentPattern struct {
	Base
	Left  Pattern `json:"left"`
	Right Expr    `json:"right"`
}

func (*AssignmentPattern) Type() string { return "AssignmentPattern" }
func (*AssignmentPattern) patternNode() {}

func (n *AssignmentPattern) MarshalJSON() ([]byte, error) {
	type plain AssignmentPattern
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ExperimentalRestProperty is {...rest} in an object pattern.
type ExperimentalRestProperty struct {
	Base
	Argument Pattern `json:"argument"`
}

func (*ExperimentalRestProperty) Type() string { return "ExperimentalRestProperty" }

func (n *ExperimentalRestProperty) MarshalJSON() ([]byte, error) {
	type plain ExperimentalRestProperty
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}
