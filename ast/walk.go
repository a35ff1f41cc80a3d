package ast

import (
	"iter"
	"reflect"
)

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if isNil(node) {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	eachChild(node, func(child Node) bool {
		Walk(v, child)
		return true
	})
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// Children are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if isNil(n) {
				return true
			}
			if !yield(n) {
				return false
			}
			return eachChild(n, visit)
		}
		visit(root)
	}
}

// Children returns the non-nil direct children of a node in source order.
func Children(node Node) []Node {
	var children []Node
	eachChild(node, func(child Node) bool {
		children = append(children, child)
		return true
	})
	return children
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func each[T Node](nodes []T, f func(Node) bool) bool {
	for _, n := range nodes {
		if !visitChild(n, f) {
			return false
		}
	}
	return true
}

func visitChild(n Node, f func(Node) bool) bool {
	if isNil(n) {
		return true
	}
	return f(n)
}

func visitAll(f func(Node) bool, nodes ...Node) bool {
	for _, n := range nodes {
		if !visitChild(n, f) {
			return false
		}
	}
	return true
}

// eachChild calls f for each direct child of node in source order, stopping
// early when f returns false.
func eachChild(node Node, f func(Node) bool) bool {
	switch n := node.(type) {
	case *Program:
		return each(n.Body, f)

	// Statements
	case *ExpressionStatement:
		return visitChild(n.Expression, f)
	case *BlockStatement:
		return each(n.Body, f)
	case *WithStatement:
		return visitAll(f, n.Object, n.Body)
	case *ReturnStatement:
		return visitChild(n.Argument, f)
	case *LabeledStatement:
		return visitAll(f, n.Label, n.Body)
	case *BreakStatement:
		return visitChild(n.Label, f)
	case *ContinueStatement:
		return visitChild(n.Label, f)
	case *IfStatement:
		return visitAll(f, n.Test, n.Consequent, n.Alternate)
	case *SwitchStatement:
		return visitChild(n.Discriminant, f) && each(n.Cases, f)
	case *SwitchCase:
		return visitChild(n.Test, f) && each(n.Consequent, f)
	case *ThrowStatement:
		return visitChild(n.Argument, f)
	case *TryStatement:
		return visitAll(f, n.Block, n.Handler, n.Finalizer)
	case *CatchClause:
		return visitAll(f, n.Param, n.Body)
	case *WhileStatement:
		return visitAll(f, n.Test, n.Body)
	case *DoWhileStatement:
		return visitAll(f, n.Body, n.Test)
	case *ForStatement:
		return visitAll(f, n.Init, n.Test, n.Update, n.Body)
	case *ForInStatement:
		return visitAll(f, n.Left, n.Right, n.Body)
	case *ForOfStatement:
		return visitAll(f, n.Left, n.Right, n.Body)
	case *FunctionDeclaration:
		return visitChild(n.ID, f) && each(n.Params, f) && visitChild(n.Body, f)
	case *VariableDeclaration:
		return each(n.Declarations, f)
	case *VariableDeclarator:
		return visitAll(f, n.ID, n.Init)
	case *ClassDeclaration:
		return visitAll(f, n.ID, n.SuperClass, n.Body)

	// Expressions
	case *ArrayExpression:
		return each(n.Elements, f)
	case *ObjectExpression:
		return each(n.Properties, f)
	case *Property:
		if n.Shorthand {
			// key and value are the same source text
			return visitChild(n.Value, f)
		}
		return visitAll(f, n.Key, n.Value)
	case *FunctionExpression:
		return visitChild(n.ID, f) && each(n.Params, f) && visitChild(n.Body, f)
	case *ArrowFunctionExpression:
		return each(n.Params, f) && visitChild(n.Body, f)
	case *UnaryExpression:
		return visitChild(n.Argument, f)
	case *UpdateExpression:
		return visitChild(n.Argument, f)
	case *BinaryExpression:
		return visitAll(f, n.Left, n.Right)
	case *AssignmentExpression:
		return visitAll(f, n.Left, n.Right)
	case *LogicalExpression:
		return visitAll(f, n.Left, n.Right)
	case *MemberExpression:
		return visitAll(f, n.Object, n.Property)
	case *ConditionalExpression:
		return visitAll(f, n.Test, n.Consequent, n.Alternate)
	case *CallExpression:
		return visitChild(n.Callee, f) && each(n.Arguments, f)
	case *NewExpression:
		return visitChild(n.Callee, f) && each(n.Arguments, f)
	case *SequenceExpression:
		return each(n.Expressions, f)
	case *YieldExpression:
		return visitChild(n.Argument, f)
	case *TemplateLiteral:
		// quasis and expressions interleave in the source
		for i, q := range n.Quasis {
			if !visitChild(q, f) {
				return false
			}
			if i < len(n.Expressions) && !visitChild(n.Expressions[i], f) {
				return false
			}
		}
		return true
	case *TaggedTemplateExpression:
		return visitAll(f, n.Tag, n.Quasi)
	case *ClassExpression:
		return visitAll(f, n.ID, n.SuperClass, n.Body)
	case *ClassBody:
		return each(n.Body, f)
	case *MethodDefinition:
		return visitAll(f, n.Key, n.Value)
	case *MetaProperty:
		return visitAll(f, n.Meta, n.Property)
	case *SpreadElement:
		return visitChild(n.Argument, f)
	case *ExperimentalSpreadProperty:
		return visitChild(n.Argument, f)

	// Patterns
	case *ObjectPattern:
		return each(n.Properties, f)
	case *ArrayPattern:
		return each(n.Elements, f)
	case *RestElement:
		return visitChild(n.Argument, f)
	case *AssignmentPattern:
		return visitAll(f, n.Left, n.Right)
	case *ExperimentalRestProperty:
		return visitChild(n.Argument, f)

	// Modules
	case *ImportDeclaration:
		return each(n.Specifiers, f) && visitChild(n.Source, f)
	case *ImportSpecifier:
		if n.Imported != nil && n.Local != nil && n.Imported.Pos() == n.Local.Pos() {
			return visitChild(n.Local, f)
		}
		return visitAll(f, n.Imported, n.Local)
	case *ImportDefaultSpecifier:
		return visitChild(n.Local, f)
	case *ImportNamespaceSpecifier:
		return visitChild(n.Local, f)
	case *ExportNamedDeclaration:
		return visitChild(n.Declaration, f) && each(n.Specifiers, f) && visitChild(n.Source, f)
	case *ExportDefaultDeclaration:
		return visitChild(n.Declaration, f)
	case *ExportAllDeclaration:
		return visitChild(n.Source, f)
	case *ExportSpecifier:
		if n.Exported != nil && n.Local != nil && n.Exported.Pos() == n.Local.Pos() {
			return visitChild(n.Local, f)
		}
		return visitAll(f, n.Local, n.Exported)

	// JSX
	case *JSXNamespacedName:
		return visitAll(f, n.Namespace, n.Name)
	case *JSXMemberExpression:
		return visitAll(f, n.Object, n.Property)
	case *JSXExpressionContainer:
		return visitChild(n.Expression, f)
	case *JSXElement:
		return visitChild(n.OpeningElement, f) && each(n.Children, f) && visitChild(n.ClosingElement, f)
	case *JSXOpeningElement:
		return visitChild(n.Name, f) && each(n.Attributes, f)
	case *JSXClosingElement:
		return visitChild(n.Name, f)
	case *JSXAttribute:
		return visitAll(f, n.Name, n.Value)
	case *JSXSpreadAttribute:
		return visitChild(n.Argument, f)
	}
	// Identifier, Literal, ThisExpression, Super, EmptyStatement,
	// DebuggerStatement, TemplateElement, JSXIdentifier, JSXEmptyExpression
	// and JSXText have no children.
	return true
}
