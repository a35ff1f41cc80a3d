package ast

import "encoding/json"

// ImportDeclaration specifiers are *ImportSpecifier, *ImportDefaultSpecifier or *ImportNamespaceSpecifier.
type ImportDeclaration struct {
	Base
	Specifiers []Node   `json:"specifiers"`
	Source     *Literal `json:"source"`
}

func (*ImportDeclaration) Type() string { return "ImportDeclaration" }
func (*ImportDeclaration) stmtNode()    {}

func (n *ImportDeclaration) MarshalJSON() ([]byte, error) {
	type plain ImportDeclaration
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ImportSpecifier is {imported as local}.
type ImportSpecifier struct {
	Base
	Local    *Identifier `json:"local"`
	Imported *Identifier `json:"imported"`
}

func (*ImportSpecifier) Type() string { return "ImportSpecifier" }

func (n *ImportSpecifier) MarshalJSON() ([]byte, error) {
	type plain ImportSpecifier
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ImportDefaultSpecifier binds the default export.
type ImportDefaultSpecifier struct {
	Base
	Local *Identifier `json:"local"`
}

func (*ImportDefaultSpecifier) Type() string { return "ImportDefaultSpecifier" }

func (n *ImportDefaultSpecifier) MarshalJSON() ([]byte, error) {
	type plain ImportDefaultSpecifier
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ImportNamespaceSpecifier is * as local.
type ImportNamespaceSpecifier struct {
	Base
	Local *Identifier `json:"local"`
}

func (*ImportNamespaceSpecifier) Type() string { return "ImportNamespaceSpecifier" }

func (n *ImportNamespaceSpecifier) MarshalJSON() ([]byte, error) {
	type plain ImportNamespaceSpecifier
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ExportNamedDeclaration has either a Declaration or Specifiers.
type ExportNamedDeclaration struct {
	Base
	Declaration Stmt               `json:"declaration"`
	Specifiers  []*ExportSpecifier `json:"specifiers"`
	Source      *Literal           `json:"source"`
}

func (*ExportNamedDeclaration) Type() string { return "ExportNamedDeclaration" }
func (*ExportNamedDeclaration) stmtNode()    {}

func (n *ExportNamedDeclaration) MarshalJSON() ([]byte, error) {
	type plain ExportNamedDeclaration
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ExportDefaultDeclaration Declaration is a declaration or an Expr.
type ExportDefaultDeclaration struct {
	Base
	Declaration Node `json:"declaration"`
}

func (*ExportDefaultDeclaration) Type() string { return "ExportDefaultDeclaration" }
func (*ExportDefaultDeclaration) stmtNode()    {}

func (n *ExportDefaultDeclaration) MarshalJSON() ([]byte, error) {
	type plain ExportDefaultDeclaration
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ExportAllDeclaration is export * from source.
type ExportAllDeclaration struct {
	Base
	Source *Literal `json:"source"`
}

func (*ExportAllDeclaration) Type() string { return "ExportAllDeclaration" }
func (*ExportAllDeclaration) stmtNode()    {}

func (n *ExportAllDeclaration) MarshalJSON() ([]byte, error) {
	type plain ExportAllDeclaration
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ExportSpecifier is {local as exported}.
type ExportSpecifier struct {
	Base
	Local    *Identifier `json:"local"`
	Exported *Identifier `json:"exported"`
}

func (*ExportSpecifier) Type() string { return "ExportSpecifier" }

func (n *ExportSpecifier) MarshalJSON() ([]byte, error) {
	type plain ExportSpecifier
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}
