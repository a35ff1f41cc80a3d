package ast

import "encoding/json"

// ExpressionStatement is an expression used as a statement.
type ExpressionStatement struct {
	Base
	Expression Expr `json:"expression"`
}

func (*ExpressionStatement) Type() string { return "ExpressionStatement" }
func (*ExpressionStatement) stmtNode()    {}

func (n *ExpressionStatement) MarshalJSON() ([]byte, error) {
	type plain ExpressionStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// BlockStatement is a braced list of statements.
type BlockStatement struct {
	Base
	Body []Stmt `json:"body"`
}

func (*BlockStatement) Type() string { return "BlockStatement" }
func (*BlockStatement) stmtNode()    {}

func (n *BlockStatement) MarshalJSON() ([]byte, error) {
	type plain BlockStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// EmptyStatement is a lone semicolon.
type EmptyStatement struct {
	Base
}

func (*EmptyStatement) Type() string { return "EmptyStatement" }
func (*EmptyStatement) stmtNode()    {}

func (n *EmptyStatement) MarshalJSON() ([]byte, error) {
	type plain EmptyStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// DebuggerStatement is the debugger statement.
type DebuggerStatement struct {
	Base
}

func (*DebuggerStatement) Type() string { return "DebuggerStatement" }
func (*DebuggerStatement) stmtNode()    {}

func (n *DebuggerStatement) MarshalJSON() ([]byte, error) {
	type plain DebuggerStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// WithStatement is only legal in sloppy mode code.
type WithStatement struct {
	Base
	Object Expr `json:"object"`
	Body   Stmt `json:"body"`
}

func (*WithStatement) Type() string { return "WithStatement" }
func (*WithStatement) stmtNode()    {}

func (n *WithStatement) MarshalJSON() ([]byte, error) {
	type plain WithStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ReturnStatement has a nil Argument for a bare return.
type ReturnStatement struct {
	Base
	Argument Expr `json:"argument"`
}

func (*ReturnStatement) Type() string { return "ReturnStatement" }
func (*ReturnStatement) stmtNode()    {}

func (n *ReturnStatement) MarshalJSON() ([]byte, error) {
	type plain ReturnStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// LabeledStatement attaches a label to its body.
type LabeledStatement struct {
	Base
	Label *Identifier `json:"label"`
	Body  Stmt        `json:"body"`
}

func (*LabeledStatement) Type() string { return "LabeledStatement" }
func (*LabeledStatement) stmtNode()    {}

func (n *LabeledStatement) MarshalJSON() ([]byte, error) {
	type plain LabeledStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// BreakStatement has a nil Label when no label is given.
type BreakStatement struct {
	Base
	Label *Identifier `json:"label"`
}

func (*BreakStatement) Type() string { return "BreakStatement" }
func (*BreakStatement) stmtNode()    {}

func (n *BreakStatement) MarshalJSON() ([]byte, error) {
	type plain BreakStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ContinueStatement has a nil Label when no label is given.
type ContinueStatement struct {
	Base
	Label *Identifier `json:"label"`
}

func (*ContinueStatement) Type() string { return "ContinueStatement" }
func (*ContinueStatement) stmtNode()    {}

func (n *ContinueStatement) MarshalJSON() ([]byte, error) {
	type plain ContinueStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// IfStatement has a nil Alternate when there is no else branch.
type IfStatement struct {
	Base
	Test       Expr `json:"test"`
	Consequent Stmt `json:"consequent"`
	Alternate  Stmt `json:"alternate"`
}

func (*IfStatement) Type() string { return "IfStatement" }
func (*IfStatement) stmtNode()    {}

func (n *IfStatement) MarshalJSON() ([]byte, error) {
	type plain IfStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// SwitchStatement holds the case clauses in source order.
type SwitchStatement struct {
	Base
	Discriminant Expr          `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
}

func (*SwitchStatement) Type() string { return "SwitchStatement" }
func (*SwitchStatement) stmtNode()    {}

func (n *SwitchStatement) MarshalJSON() ([]byte, error) {
	type plain SwitchStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// SwitchCase is one case clause; Test is nil for the default clause.
type SwitchCase struct {
	Base
	Test       Expr   `json:"test"`
	Consequent []Stmt `json:"consequent"`
}

func (*SwitchCase) Type() string { return "SwitchCase" }

func (n *SwitchCase) MarshalJSON() ([]byte, error) {
	type plain SwitchCase
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ThrowStatement throws its argument.
type ThrowStatement struct {
	Base
	Argument Expr `json:"argument"`
}

func (*ThrowStatement) Type() string { return "ThrowStatement" }
func (*ThrowStatement) stmtNode()    {}

func (n *ThrowStatement) MarshalJSON() ([]byte, error) {
	type plain ThrowStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// TryStatement has at least one of Handler and Finalizer.
type TryStatement struct {
	Base
	Block     *BlockStatement `json:"block"`
	Handler   *CatchClause    `json:"handler"`
	Finalizer *BlockStatement `json:"finalizer"`
}

func (*TryStatement) Type() string { return "TryStatement" }
func (*TryStatement) stmtNode()    {}

func (n *TryStatement) MarshalJSON() ([]byte, error) {
	type plain TryStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// CatchClause is the catch block of a try statement.
type CatchClause struct {
	Base
	Param Pattern         `json:"param"`
	Body  *BlockStatement `json:"body"`
}

func (*CatchClause) Type() string { return "CatchClause" }

func (n *CatchClause) MarshalJSON() ([]byte, error) {
	type plain CatchClause
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// WhileStatement is a while loop.
type WhileStatement struct {
	Base
	Test Expr `json:"test"`
	Body Stmt `json:"body"`
}

func (*WhileStatement) Type() string { return "WhileStatement" }
func (*WhileStatement) stmtNode()    {}

func (n *WhileStatement) MarshalJSON() ([]byte, error) {
	type plain WhileStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// DoWhileStatement is a do-while loop.
type DoWhileStatement struct {
	Base
	Body Stmt `json:"body"`
	Test Expr `json:"test"`
}

func (*DoWhileStatement) Type() string { return "DoWhileStatement" }
func (*DoWhileStatement) stmtNode()    {}

func (n *DoWhileStatement) MarshalJSON() ([]byte, error) {
	type plain DoWhileStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ForStatement Init is a *VariableDeclaration, an Expr or nil.
type ForStatement struct {
	Base
	Init   Node `json:"init"`
	Test   Expr `json:"test"`
	Update Expr `json:"update"`
	Body   Stmt `json:"body"`
}

func (*ForStatement) Type() string { return "ForStatement" }
func (*ForStatement) stmtNode()    {}

func (n *ForStatement) MarshalJSON() ([]byte, error) {
	type plain ForStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ForInStatement Left is a *VariableDeclaration or a Pattern.
type ForInStatement struct {
	Base
	Left  Node `json:"left"`
	Right Expr `json:"right"`
	Body  Stmt `json:"body"`
}

func (*ForInStatement) Type() string { return "ForInStatement" }
func (*ForInStatement) stmtNode()    {}

func (n *ForInStatement) MarshalJSON() ([]byte, error) {
	type plain ForInStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ForOfStatement Left is a *VariableDeclaration or a Pattern.
type ForOfStatement struct {
	Base
	Left  Node `json:"left"`
	Right Expr `json:"right"`
	Body  Stmt `json:"body"`
}

func (*ForOfStatement) Type() string { return "ForOfStatement" }
func (*ForOfStatement) stmtNode()    {}

func (n *ForOfStatement) MarshalJSON() ([]byte, error) {
	type plain ForOfStatement
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// FunctionDeclaration is a named function statement.
type FunctionDeclaration struct {
	Base
	ID         *Identifier     `json:"id"`
	Params     []Pattern       `json:"params"`
	Body       *BlockStatement `json:"body"`
	Generator  bool            `json:"generator"`
	Expression bool            `json:"expression"`
}

func (*FunctionDeclaration) Type() string { return "FunctionDeclaration" }
func (*FunctionDeclaration) stmtNode()    {}

func (n *FunctionDeclaration) MarshalJSON() ([]byte, error) {
	type plain FunctionDeclaration
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// VariableDeclaration Kind is "var", "let" or "const".
type VariableDeclaration struct {
	Base
	Declarations []*VariableDeclarator `json:"declarations"`
	Kind         string                `json:"kind"`
}

func (*VariableDeclaration) Type() string { return "VariableDeclaration" }
func (*VariableDeclaration) stmtNode()    {}

func (n *VariableDeclaration) MarshalJSON() ([]byte, error) {
	type plain VariableDeclaration
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// VariableDeclarator has a nil Init when no initializer is given.
type VariableDeclarator struct {
	Base
	ID   Pattern `json:"id"`
	Init Expr    `json:"init"`
}

func (*VariableDeclarator) Type() string { return "VariableDeclarator" }

func (n *VariableDeclarator) MarshalJSON() ([]byte, error) {
	type plain VariableDeclarator
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}

// ClassDeclaration has a nil SuperClass when there is no extends clause.
type ClassDeclaration struct {
	Base
	ID         *Identifier `json:"id"`
	SuperClass Expr        `json:"superClass"`
	Body       *ClassBody  `json:"body"`
}

func (*ClassDeclaration) Type() string { return "ClassDeclaration" }
func (*ClassDeclaration) stmtNode()    {}

func (n *ClassDeclaration) MarshalJSON() ([]byte, error) {
	type plain ClassDeclaration
	b, err := json.Marshal((*plain)(n))
	return withType(n.Type(), b, err)
}
