package parser

import (
	"strconv"

	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

func (p *Parser) parseObjectLiteral() ast.Expr {
	start := p.cur.StartPosition
	p.next()
	defer p.allowingIn()()

	properties := []ast.Node{}
	seen := map[string]*propertyKinds{}
	proto := false
	for !p.match("}") {
		if p.match("...") {
			spreadStart := p.cur.StartPosition
			p.require(feature.ExperimentalObjectRestSpread, p.cur)
			p.next()
			arg := p.parseAssignment()
			properties = append(properties, finish(p, spreadStart, &ast.ExperimentalSpreadProperty{Argument: arg}))
		} else {
			prop := p.parseObjectProperty()
			p.checkDuplicateProperty(prop, seen, &proto)
			properties = append(properties, prop)
		}
		if !p.match("}") {
			p.expect(",")
		}
	}
	p.next()
	return finish(p, start, &ast.ObjectExpression{Properties: properties})
}

// startsPropertyKey reports whether tok can begin a property name.
func startsPropertyKey(tok token.Token) bool {
	switch tok.Type {
	case token.Identifier, token.Keyword, token.Boolean, token.Null, token.String, token.Numeric:
		return true
	}
	return tok.Is("[")
}

// parsePropertyKey parses a property name. A computed "[expr]" key needs
// the given feature.
func (p *Parser) parsePropertyKey(computedFeature feature.Feature) (ast.Expr, bool) {
	tok := p.cur
	switch tok.Type {
	case token.String, token.Numeric:
		return p.parseLiteral(), false
	case token.Identifier, token.Keyword, token.Boolean, token.Null:
		return p.parseIdentifierName(), false
	}
	if !tok.Is("[") {
		p.unexpected(tok)
	}
	p.require(computedFeature, tok)
	p.next()
	restore := p.allowingIn()
	key := p.parseAssignment()
	restore()
	p.expect("]")
	return key, true
}

func (p *Parser) parseObjectProperty() *ast.Property {
	start := p.cur.StartPosition
	tok := p.cur

	if tok.Is("*") {
		p.require(feature.Generators, tok)
		p.require(feature.ObjectLiteralShorthandMethods, tok)
		p.next()
		key, computed := p.parsePropertyKey(feature.ObjectLiteralComputedProperties)
		value := p.parseMethod(true, superGated)
		return finish(p, start, &ast.Property{Key: key, Value: value, Kind: "init", Method: true, Computed: computed})
	}

	if (tok.IsIdentifier("get") || tok.IsIdentifier("set")) && startsPropertyKey(p.peek()) {
		p.next()
		key, computed := p.parsePropertyKey(feature.ObjectLiteralComputedProperties)
		value := p.parseAccessor(tok.Value == "get", superGated)
		return finish(p, start, &ast.Property{Key: key, Value: value, Kind: tok.Value, Computed: computed})
	}

	key, computed := p.parsePropertyKey(feature.ObjectLiteralComputedProperties)
	switch {
	case p.eat(":"):
		value := p.parseAssignment()
		return finish(p, start, &ast.Property{Key: key, Value: value, Kind: "init", Computed: computed})
	case p.match("("):
		p.require(feature.ObjectLiteralShorthandMethods, p.cur)
		value := p.parseMethod(false, superGated)
		return finish(p, start, &ast.Property{Key: key, Value: value, Kind: "init", Method: true, Computed: computed})
	}

	// Shorthand {a} or, in a pattern, {a = 1}.
	if computed || tok.Type != token.Identifier || (p.fn.generator && tok.Value == "yield") {
		p.unexpected(p.cur)
	}
	if p.strict && token.IsStrictModeReservedWord(tok.Value) {
		p.errorAt(errz.ErrStrictMode, tok.StartPosition, msgStrictReservedWord)
	}
	if !p.features.Has(feature.ObjectLiteralShorthandProperties) {
		p.deferError(errz.NewUnsupported(tok.StartPosition, feature.ObjectLiteralShorthandProperties), tok.StartPosition)
	}
	value := p.identifierAt(tok)
	if !p.match("=") {
		return finish(p, start, &ast.Property{Key: key, Value: value, Kind: "init", Shorthand: true})
	}
	p.deferError(p.unexpectedError(p.cur), p.cur.StartPosition)
	p.next()
	right := p.parseAssignment()
	init := finish(p, start, &ast.AssignmentPattern{Left: value, Right: right})
	return finish(p, start, &ast.Property{Key: key, Value: init, Kind: "init", Shorthand: true})
}

type propertyKinds struct {
	data, get, set bool
}

// checkDuplicateProperty applies the ES5 rules for repeated property names,
// which the objectLiteralDuplicateProperties feature lifts. A repeated
// __proto__ data property is always an error.
func (p *Parser) checkDuplicateProperty(prop *ast.Property, seen map[string]*propertyKinds, proto *bool) {
	if prop.Computed {
		return
	}
	name, ok := propertyName(prop.Key)
	if !ok {
		return
	}
	if name == "__proto__" && prop.Kind == "init" && !prop.Shorthand && !prop.Method {
		if *proto {
			p.errorAt(errz.ErrInvalidSyntax, prop.Pos(), "Duplicate __proto__ fields are not allowed in object literals")
		}
		*proto = true
	}
	if p.features.Has(feature.ObjectLiteralDuplicateProperties) {
		return
	}

	kinds := seen[name]
	if kinds == nil {
		kinds = &propertyKinds{}
		seen[name] = kinds
	} else {
		switch prop.Kind {
		case "init":
			if kinds.data && p.strict {
				p.errorAt(errz.ErrStrictMode, prop.Pos(), "Duplicate data property in object literal not allowed in strict mode")
			}
			if kinds.get || kinds.set {
				p.errorAt(errz.ErrInvalidSyntax, prop.Pos(), "Object literal may not have data and accessor property with the same name")
			}
		case "get", "set":
			if kinds.data {
				p.errorAt(errz.ErrInvalidSyntax, prop.Pos(), "Object literal may not have data and accessor property with the same name")
			}
			if (prop.Kind == "get" && kinds.get) || (prop.Kind == "set" && kinds.set) {
				p.errorAt(errz.ErrInvalidSyntax, prop.Pos(), "Object literal may not have multiple get/set accessors with the same name")
			}
		}
	}
	switch prop.Kind {
	case "get":
		kinds.get = true
	case "set":
		kinds.set = true
	default:
		kinds.data = true
	}
}

// propertyName returns the static name of a non-computed key.
func propertyName(key ast.Expr) (string, bool) {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name, true
	case *ast.Literal:
		switch v := k.Value.(type) {
		case string:
			return v, true
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64), true
		}
	}
	return "", false
}
