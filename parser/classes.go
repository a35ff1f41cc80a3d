package parser

import (
	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// parseClassDeclaration parses a class declaration. The name may be omitted
// after "export default".
func (p *Parser) parseClassDeclaration(anonymous bool) ast.Stmt {
	start := p.cur.StartPosition
	p.expect("class")
	defer p.keepStrict()()
	p.strict = true

	var id *ast.Identifier
	if !anonymous || (!p.match("{") && !p.match("extends")) {
		id = p.parseClassName()
	}
	superClass, body := p.parseClassTail()
	return finish(p, start, &ast.ClassDeclaration{ID: id, SuperClass: superClass, Body: body})
}

func (p *Parser) parseClassExpression() ast.Expr {
	start := p.cur.StartPosition
	p.expect("class")
	defer p.keepStrict()()
	p.strict = true

	var id *ast.Identifier
	if p.cur.Type == token.Identifier {
		id = p.parseClassName()
	}
	superClass, body := p.parseClassTail()
	return finish(p, start, &ast.ClassExpression{ID: id, SuperClass: superClass, Body: body})
}

func (p *Parser) parseClassName() *ast.Identifier {
	return p.parseBindingIdentifier(bindLexical)
}

func (p *Parser) parseClassTail() (ast.Expr, *ast.ClassBody) {
	var superClass ast.Expr
	if p.eat("extends") {
		superClass = p.parseLeftHandSide(true)
	}

	start := p.cur.StartPosition
	p.expect("{")
	methods := []*ast.MethodDefinition{}
	constructor := false
	for !p.match("}") {
		if p.eat(";") {
			continue
		}
		m := p.parseClassElement()
		if m.Kind == "constructor" {
			if constructor {
				p.errorAt(errz.ErrInvalidSyntax, m.Pos(), "A class may only have one constructor")
			}
			constructor = true
		}
		methods = append(methods, m)
	}
	p.next()
	return superClass, finish(p, start, &ast.ClassBody{Body: methods})
}

func (p *Parser) parseClassElement() *ast.MethodDefinition {
	start := p.cur.StartPosition
	static := false
	if p.cur.IsIdentifier("static") && !p.peek().Is("(") {
		static = true
		p.next()
	}

	kind := "method"
	generator := false
	switch {
	case p.match("*"):
		p.require(feature.Generators, p.cur)
		p.next()
		generator = true
	case (p.cur.IsIdentifier("get") || p.cur.IsIdentifier("set")) && startsPropertyKey(p.peek()):
		kind = p.cur.Value
		p.next()
	}

	keyTok := p.cur
	key, computed := p.parsePropertyKey(feature.Classes)
	if !computed {
		name, _ := propertyName(key)
		switch {
		case !static && name == "constructor":
			if kind != "method" {
				p.errorAt(errz.ErrInvalidSyntax, keyTok.StartPosition, "Class constructor may not be an accessor")
			}
			if generator {
				p.errorAt(errz.ErrInvalidSyntax, keyTok.StartPosition, "Class constructor may not be a generator")
			}
			kind = "constructor"
		case static && name == "prototype":
			p.errorAt(errz.ErrInvalidSyntax, keyTok.StartPosition, "Classes may not have static property named prototype")
		}
	}

	var value *ast.FunctionExpression
	switch kind {
	case "get", "set":
		value = p.parseAccessor(kind == "get", superMethod)
	default:
		value = p.parseMethod(generator, superMethod)
	}
	return finish(p, start, &ast.MethodDefinition{
		Key:      key,
		Value:    value,
		Kind:     kind,
		Computed: computed,
		Static:   static,
	})
}
