package parser

import (
	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// parseFunctionDeclaration parses a function declaration. The name may be
// omitted after "export default".
func (p *Parser) parseFunctionDeclaration(anonymous bool) ast.Stmt {
	start := p.cur.StartPosition
	p.expect("function")
	generator := p.parseGeneratorStar()
	var id *ast.Identifier
	if !anonymous || !p.match("(") {
		id = p.parseFunctionName()
	}
	params, body := p.parseFunctionRest(id, generator)
	return finish(p, start, &ast.FunctionDeclaration{ID: id, Params: params, Body: body, Generator: generator})
}

func (p *Parser) parseFunctionExpression() ast.Expr {
	start := p.cur.StartPosition
	p.expect("function")
	generator := p.parseGeneratorStar()
	var id *ast.Identifier
	if !p.match("(") {
		id = p.parseFunctionName()
	}
	params, body := p.parseFunctionRest(id, generator)
	return finish(p, start, &ast.FunctionExpression{ID: id, Params: params, Body: body, Generator: generator})
}

func (p *Parser) parseGeneratorStar() bool {
	if !p.match("*") {
		return false
	}
	p.require(feature.Generators, p.cur)
	p.next()
	return true
}

func (p *Parser) parseFunctionName() *ast.Identifier {
	tok := p.cur
	if tok.Type != token.Identifier {
		p.unexpected(tok)
	}
	p.next()
	id := p.identifierAt(tok)
	p.checkFunctionName(id)
	return id
}

// keepStrict returns a function restoring the current strictness.
func (p *Parser) keepStrict() func() {
	strict := p.strict
	return func() { p.strict = strict }
}

// parseFunctionRest parses the parameters and body of a function or
// generator. The name and parameters are checked again if the body turns
// out to be strict.
func (p *Parser) parseFunctionRest(id *ast.Identifier, generator bool) ([]ast.Pattern, *ast.BlockStatement) {
	defer p.enterScope(&scope{
		generator:   generator,
		returnOK:    true,
		super:       superGated,
		newTargetOK: true,
	})()
	defer p.keepStrict()()

	params := p.parseParams()
	p.checkParams(params, false)
	body := p.parseFunctionBody(func() {
		p.checkFunctionName(id)
		p.checkParams(params, false)
	})
	return params, body
}

// parseMethod parses the parameters and body of an object or class method.
// Method parameter names must be unique.
func (p *Parser) parseMethod(generator bool, super superMode) *ast.FunctionExpression {
	start := p.cur.StartPosition
	defer p.enterScope(&scope{
		generator:   generator,
		returnOK:    true,
		super:       super,
		newTargetOK: true,
	})()
	defer p.keepStrict()()

	params := p.parseParams()
	p.checkParams(params, true)
	body := p.parseFunctionBody(func() { p.checkParams(params, true) })
	return finish(p, start, &ast.FunctionExpression{Params: params, Body: body, Generator: generator})
}

// parseAccessor parses the parameters and body of a getter, which takes
// none, or a setter, which takes exactly one.
func (p *Parser) parseAccessor(getter bool, super superMode) *ast.FunctionExpression {
	start := p.cur.StartPosition
	defer p.enterScope(&scope{
		returnOK:    true,
		super:       super,
		newTargetOK: true,
	})()
	defer p.keepStrict()()

	p.expect("(")
	params := []ast.Pattern{}
	if !getter {
		if p.match(")") || p.match("...") {
			p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, "Setter must have exactly one formal parameter.")
		}
		params = append(params, p.parseParam())
		if !p.match(")") {
			p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, "Setter must have exactly one formal parameter.")
		}
	} else if !p.match(")") {
		p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, "Getter must not have any formal parameters.")
	}
	p.next()
	p.checkParams(params, false)
	body := p.parseFunctionBody(func() { p.checkParams(params, false) })
	return finish(p, start, &ast.FunctionExpression{Params: params, Body: body})
}

// parseParams parses a parenthesized formal parameter list.
func (p *Parser) parseParams() []ast.Pattern {
	p.expect("(")
	params := []ast.Pattern{}
	for !p.match(")") {
		if p.match("...") {
			start := p.cur.StartPosition
			p.require(feature.RestParams, p.cur)
			p.next()
			arg := p.parseBindingTarget(bindParam)
			if p.match("=") {
				p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, msgDefaultRestParameter)
			}
			if !p.match(")") {
				p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, msgRestParameterLast)
			}
			params = append(params, finish(p, start, &ast.RestElement{Argument: arg}))
			break
		}
		params = append(params, p.parseParam())
		if p.match(")") {
			break
		}
		p.expect(",")
		if p.match(")") {
			p.unexpected(p.cur)
		}
	}
	p.next()
	return params
}

// parseParam parses one formal parameter with an optional default value.
func (p *Parser) parseParam() ast.Pattern {
	start := p.cur.StartPosition
	target := p.parseBindingTarget(bindParam)
	if !p.match("=") {
		return target
	}
	p.require(feature.DefaultParams, p.cur)
	p.next()
	restore := p.allowingIn()
	right := p.parseAssignment()
	restore()
	return finish(p, start, &ast.AssignmentPattern{Left: target, Right: right})
}

// parseFunctionBody parses a braced function body. onStrict runs when the
// body's directive prologue switches on strict mode.
func (p *Parser) parseFunctionBody(onStrict func()) *ast.BlockStatement {
	start := p.cur.StartPosition
	p.expect("{")
	body := p.parseBody(func() bool { return p.match("}") }, false, onStrict)
	p.next()
	return finish(p, start, &ast.BlockStatement{Body: body})
}

// parseArrowFunction parses "=>" and the arrow body for already parsed
// parameters starting at start.
func (p *Parser) parseArrowFunction(start token.Position, params []ast.Pattern) ast.Expr {
	p.expect("=>")
	defer p.enterScope(&scope{
		returnOK:    true,
		super:       p.fn.super,
		newTargetOK: p.fn.newTargetOK,
	})()
	defer p.keepStrict()()

	p.checkParams(params, true)
	if p.match("{") {
		body := p.parseFunctionBody(func() { p.checkParams(params, true) })
		return finish(p, start, &ast.ArrowFunctionExpression{Params: params, Body: body})
	}
	body := p.parseNestedAssignment()
	return finish(p, start, &ast.ArrowFunctionExpression{Params: params, Body: body, Expression: true})
}
