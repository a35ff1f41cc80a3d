package parser

import (
	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// Pattern parsing methods for the Parser.
// This file contains methods that parse and validate binding and assignment
// targets:
// - Binding identifiers and destructuring patterns in declarations,
//   parameters and catch clauses
// - Reinterpretation of array and object literals as assignment patterns
// - Parameter list validation once a function's strictness is known

type bindingKind int

const (
	bindVar bindingKind = iota
	bindLexical
	bindCatch
	bindParam
)

// parseBindingTarget parses an identifier, array pattern or object pattern.
func (p *Parser) parseBindingTarget(kind bindingKind) ast.Pattern {
	p.enter()
	defer p.leave()
	switch {
	case p.match("["):
		return p.parseArrayPattern(kind)
	case p.match("{"):
		return p.parseObjectPattern(kind)
	}
	return p.parseBindingIdentifier(kind)
}

// parseBindingElement parses a binding target with an optional default.
func (p *Parser) parseBindingElement(kind bindingKind) ast.Pattern {
	start := p.cur.StartPosition
	target := p.parseBindingTarget(kind)
	if !p.eat("=") {
		return target
	}
	restore := p.allowingIn()
	right := p.parseAssignment()
	restore()
	return finish(p, start, &ast.AssignmentPattern{Left: target, Right: right})
}

func (p *Parser) parseBindingIdentifier(kind bindingKind) *ast.Identifier {
	tok := p.cur
	if tok.Type != token.Identifier || (p.fn.generator && tok.Value == "yield") {
		p.unexpected(tok)
	}
	// Parameters are checked once the function body shows whether the
	// function is strict.
	if kind != bindParam {
		p.checkBindingName(tok.Value, tok.StartPosition, kind)
	}
	p.next()
	return p.identifierAt(tok)
}

func (p *Parser) checkBindingName(name string, pos token.Position, kind bindingKind) {
	if kind == bindLexical && name == "let" {
		p.errorAt(errz.ErrInvalidSyntax, pos, "let is disallowed as a lexically bound name")
	}
	if !p.strict {
		return
	}
	if token.IsStrictModeReservedWord(name) {
		p.errorAt(errz.ErrStrictMode, pos, msgStrictReservedWord)
	}
	if token.IsRestrictedWord(name) {
		switch kind {
		case bindCatch:
			p.errorAt(errz.ErrStrictMode, pos, msgStrictCatchVariable)
		case bindParam:
			p.errorAt(errz.ErrStrictMode, pos, msgStrictParamName)
		default:
			p.errorAt(errz.ErrStrictMode, pos, msgStrictVarName)
		}
	}
}

func (p *Parser) parseArrayPattern(kind bindingKind) ast.Pattern {
	start := p.cur.StartPosition
	p.require(feature.Destructuring, p.cur)
	p.next()
	elements := []ast.Pattern{}
	for !p.match("]") {
		if p.eat(",") {
			elements = append(elements, nil)
			continue
		}
		if p.match("...") {
			restStart := p.cur.StartPosition
			p.next()
			arg := p.parseBindingTarget(kind)
			elements = append(elements, finish(p, restStart, &ast.RestElement{Argument: arg}))
			if !p.match("]") {
				p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, msgRestElementLast)
			}
			break
		}
		elements = append(elements, p.parseBindingElement(kind))
		if !p.match("]") {
			p.expect(",")
		}
	}
	p.next()
	return finish(p, start, &ast.ArrayPattern{Elements: elements})
}

func (p *Parser) parseObjectPattern(kind bindingKind) ast.Pattern {
	start := p.cur.StartPosition
	p.require(feature.Destructuring, p.cur)
	p.next()
	properties := []ast.Node{}
	for !p.match("}") {
		if p.match("...") {
			restStart := p.cur.StartPosition
			p.require(feature.ExperimentalObjectRestSpread, p.cur)
			p.next()
			arg := p.parseBindingIdentifier(kind)
			properties = append(properties, finish(p, restStart, &ast.ExperimentalRestProperty{Argument: arg}))
		} else {
			properties = append(properties, p.parseBindingProperty(kind))
		}
		if !p.match("}") {
			p.expect(",")
		}
	}
	p.next()
	return finish(p, start, &ast.ObjectPattern{Properties: properties})
}

func (p *Parser) parseBindingProperty(kind bindingKind) *ast.Property {
	start := p.cur.StartPosition
	keyTok := p.cur
	key, computed := p.parsePropertyKey(feature.ObjectLiteralComputedProperties)
	if p.eat(":") {
		value := p.parseBindingElement(kind)
		return finish(p, start, &ast.Property{Key: key, Value: value, Kind: "init", Computed: computed})
	}

	if computed || keyTok.Type != token.Identifier || (p.fn.generator && keyTok.Value == "yield") {
		p.unexpected(p.cur)
	}
	if kind != bindParam {
		p.checkBindingName(keyTok.Value, keyTok.StartPosition, kind)
	}
	var value ast.Node = p.identifierAt(keyTok)
	if p.eat("=") {
		restore := p.allowingIn()
		right := p.parseAssignment()
		restore()
		value = finish(p, start, &ast.AssignmentPattern{Left: value.(*ast.Identifier), Right: right})
	}
	return finish(p, start, &ast.Property{Key: key, Value: value, Kind: "init", Shorthand: true})
}

// toAssignTarget converts the left operand of "=" (or the head of a for-in
// or for-of statement) to an assignment target. msg describes an invalid
// target.
func (p *Parser) toAssignTarget(expr ast.Expr, msg string) ast.Pattern {
	switch e := expr.(type) {
	case *ast.Identifier:
		if p.strict && token.IsRestrictedWord(e.Name) {
			p.errorAt(errz.ErrStrictMode, e.Pos(), msgStrictLHSAssignment)
		}
		return e
	case *ast.MemberExpression:
		return e
	case *ast.ObjectExpression, *ast.ArrayExpression:
		p.requireAt(feature.Destructuring, expr.Pos())
		if p.parenthesized[expr] {
			p.errorAt(errz.ErrInvalidSyntax, expr.Pos(), msg)
		}
		p.discardCovers(expr.Pos(), expr.End())
		return p.toPattern(expr, msg)
	}
	p.errorAt(errz.ErrInvalidSyntax, expr.Pos(), msg)
	return nil
}

// toPattern converts an array or object literal, or an element of one, to
// the pattern it denotes.
func (p *Parser) toPattern(node ast.Node, msg string) ast.Pattern {
	switch n := node.(type) {
	case *ast.Identifier:
		if p.strict && token.IsRestrictedWord(n.Name) {
			p.errorAt(errz.ErrStrictMode, n.Pos(), msgStrictLHSAssignment)
		}
		return n
	case *ast.MemberExpression:
		return n
	case *ast.AssignmentPattern:
		n.Left = p.toPattern(n.Left, msg)
		return n
	case *ast.AssignmentExpression:
		if n.Operator == "=" {
			return spanOf(p, n, &ast.AssignmentPattern{Left: n.Left, Right: n.Right})
		}
	case *ast.ArrayExpression:
		if p.parenthesized[n] {
			break
		}
		elements := make([]ast.Pattern, 0, len(n.Elements))
		for i, el := range n.Elements {
			if el == nil {
				elements = append(elements, nil)
				continue
			}
			if spread, ok := el.(*ast.SpreadElement); ok {
				if i != len(n.Elements)-1 {
					p.errorAt(errz.ErrInvalidSyntax, spread.Pos(), msgRestElementLast)
				}
				arg := p.toPattern(spread.Argument, msg)
				elements = append(elements, spanOf(p, spread, &ast.RestElement{Argument: arg}))
				continue
			}
			elements = append(elements, p.toPattern(el, msg))
		}
		return spanOf(p, n, &ast.ArrayPattern{Elements: elements})
	case *ast.ObjectExpression:
		if p.parenthesized[n] {
			break
		}
		properties := make([]ast.Node, 0, len(n.Properties))
		for _, prop := range n.Properties {
			switch pr := prop.(type) {
			case *ast.Property:
				if pr.Kind != "init" || pr.Method {
					p.errorAt(errz.ErrInvalidSyntax, pr.Pos(), msg)
				}
				pr.Value = p.toPattern(pr.Value, msg)
				properties = append(properties, pr)
			case *ast.ExperimentalSpreadProperty:
				arg := p.toPattern(pr.Argument, msg)
				properties = append(properties, spanOf(p, pr, &ast.ExperimentalRestProperty{Argument: arg}))
			}
		}
		return spanOf(p, n, &ast.ObjectPattern{Properties: properties})
	}
	p.errorAt(errz.ErrInvalidSyntax, node.Pos(), msg)
	return nil
}

// boundNames appends the identifiers bound by a pattern to names.
func boundNames(node ast.Node, names []*ast.Identifier) []*ast.Identifier {
	switch n := node.(type) {
	case *ast.Identifier:
		return append(names, n)
	case *ast.AssignmentPattern:
		return boundNames(n.Left, names)
	case *ast.RestElement:
		return boundNames(n.Argument, names)
	case *ast.ExperimentalRestProperty:
		return boundNames(n.Argument, names)
	case *ast.ArrayPattern:
		for _, el := range n.Elements {
			if el != nil {
				names = boundNames(el, names)
			}
		}
	case *ast.ObjectPattern:
		for _, prop := range n.Properties {
			if pr, ok := prop.(*ast.Property); ok {
				names = boundNames(pr.Value, names)
			} else {
				names = boundNames(prop, names)
			}
		}
	}
	return names
}

// checkParams validates a parameter list against the current strictness.
// Duplicate names are also rejected when unique is set or the list is not
// simple.
func (p *Parser) checkParams(params []ast.Pattern, unique bool) {
	var names []*ast.Identifier
	for _, param := range params {
		if _, ok := param.(*ast.Identifier); !ok {
			unique = true
		}
		names = boundNames(param, names)
	}
	seen := make(map[string]bool, len(names))
	for _, id := range names {
		if p.strict {
			if token.IsRestrictedWord(id.Name) {
				p.errorAt(errz.ErrStrictMode, id.Pos(), msgStrictParamName)
			}
			if token.IsStrictModeReservedWord(id.Name) {
				p.errorAt(errz.ErrStrictMode, id.Pos(), msgStrictReservedWord)
			}
		}
		if seen[id.Name] && (unique || p.strict) {
			if p.strict {
				p.errorAt(errz.ErrStrictMode, id.Pos(), msgStrictParamDupe)
			}
			p.errorAt(errz.ErrInvalidSyntax, id.Pos(), msgParamDupe)
		}
		seen[id.Name] = true
	}
}

// checkFunctionName validates the name of a function against the current
// strictness.
func (p *Parser) checkFunctionName(id *ast.Identifier) {
	if id == nil || !p.strict {
		return
	}
	if token.IsRestrictedWord(id.Name) {
		p.errorAt(errz.ErrStrictMode, id.Pos(), msgStrictFunctionName)
	}
	if token.IsStrictModeReservedWord(id.Name) {
		p.errorAt(errz.ErrStrictMode, id.Pos(), msgStrictReservedWord)
	}
}
