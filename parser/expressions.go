package parser

import (
	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// Expression parsing methods for the Parser.
// This file contains methods that parse expression constructs:
// - Sequence, assignment, conditional and yield expressions
// - Binary and logical operators by precedence climbing
// - Unary, update, member, call and new expressions
// - Primary expressions: literals, identifiers, groups, arrays, regexes
// - Arrow function disambiguation

// parseExpression parses an Expression: one or more assignment expressions
// separated by commas. Deferred object literal errors must be resolved by
// its end.
func (p *Parser) parseExpression() ast.Expr {
	mark := len(p.covers)
	expr := p.parseExpressionCover()
	p.checkCovers(mark)
	return expr
}

// parseExpressionCover parses an Expression that may still be reinterpreted
// as an assignment target by the caller.
func (p *Parser) parseExpressionCover() ast.Expr {
	start := p.cur.StartPosition
	expr := p.parseAssignment()
	if !p.match(",") {
		return expr
	}
	exprs := []ast.Expr{expr}
	for p.eat(",") {
		exprs = append(exprs, p.parseAssignment())
	}
	return finish(p, start, &ast.SequenceExpression{Expressions: exprs})
}

// allowingIn lifts the for-head restriction on "in" until the returned
// function is called.
func (p *Parser) allowingIn() func() {
	saved := p.allowIn
	p.allowIn = true
	return func() { p.allowIn = saved }
}

func (p *Parser) parseAssignment() ast.Expr {
	if p.fn.generator && p.cur.IsIdentifier("yield") {
		return p.parseYield()
	}
	if p.match("(") && p.features.Has(feature.ArrowFunctions) {
		if arrow := p.tryArrowFunction(); arrow != nil {
			return arrow
		}
	}

	start := p.cur.StartPosition
	first := p.cur
	expr := p.parseConditional()

	if p.match("=>") {
		return p.parseArrowFromExpression(start, first, expr)
	}
	if p.cur.Type != token.Punctuator || !token.IsAssignmentOperator(p.cur.Value) {
		return expr
	}

	op := p.cur.Value
	var target ast.Pattern
	if op == "=" {
		target = p.toAssignTarget(expr, msgInvalidLHS)
	} else {
		target = p.simpleTarget(expr, msgStrictLHSAssignment).(ast.Pattern)
	}
	p.next()
	right := p.parseNestedAssignment()
	return finish(p, start, &ast.AssignmentExpression{Operator: op, Left: target, Right: right})
}

// parseNestedAssignment parses an assignment expression in a right-recursive
// position, counting it against the nesting limit.
func (p *Parser) parseNestedAssignment() ast.Expr {
	p.enter()
	defer p.leave()
	return p.parseAssignment()
}

// tryArrowFunction parses an arrow function at "(" when a parameter list
// followed by "=>" can be read there. Otherwise the parser is left where it
// was, the failure is remembered for the offset, and nil is returned.
func (p *Parser) tryArrowFunction() ast.Expr {
	start := p.cur.StartPosition
	if _, failed := p.arrowFailures[start.Offset]; failed {
		return nil
	}
	var params []ast.Pattern
	err := p.try(func() {
		params = p.parseParams()
		if !p.match("=>") || p.cur.NewlineBefore {
			p.unexpected(p.cur)
		}
	})
	if err != nil {
		p.arrowFailures[start.Offset] = err
		p.log.Debug().
			Int("offset", start.Offset).
			Str("kind", err.Kind.String()).
			Str("feature", err.Feature).
			Msg("not arrow parameters, reparsing as parenthesized expression")
		return nil
	}
	return p.parseArrowFunction(start, params)
}

// parseArrowFromExpression handles "=>" following an expression: a lone
// identifier becomes the single parameter, anything else is an error.
func (p *Parser) parseArrowFromExpression(start token.Position, first token.Token, expr ast.Expr) ast.Expr {
	arrow := p.cur
	if id, ok := expr.(*ast.Identifier); ok && first.Type == token.Identifier && id.Pos() == first.StartPosition {
		p.require(feature.ArrowFunctions, arrow)
		if arrow.NewlineBefore {
			p.unexpected(arrow)
		}
		return p.parseArrowFunction(start, []ast.Pattern{id})
	}
	if err, ok := p.arrowFailures[start.Offset]; ok && err.Kind == errz.ErrUnsupportedFeature {
		p.fail(err)
	}
	p.require(feature.ArrowFunctions, arrow)
	p.unexpected(arrow)
	return nil
}

func (p *Parser) parseConditional() ast.Expr {
	start := p.cur.StartPosition
	test := p.parseBinary(LOWEST)
	if !p.match("?") {
		return test
	}
	p.next()
	restore := p.allowingIn()
	consequent := p.parseAssignment()
	restore()
	p.expect(":")
	alternate := p.parseNestedAssignment()
	return finish(p, start, &ast.ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate})
}

// parseBinary parses binary and logical operators binding tighter than
// minPrec.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	start := p.cur.StartPosition
	left := p.parseUnary()
	for {
		prec := p.binaryPrecedence(p.cur)
		if prec <= minPrec {
			return left
		}
		op := p.cur.Value
		p.next()
		right := p.parseBinary(prec)
		if op == "||" || op == "&&" {
			left = finish(p, start, &ast.LogicalExpression{Operator: op, Left: left, Right: right})
		} else {
			left = finish(p, start, &ast.BinaryExpression{Operator: op, Left: left, Right: right})
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	p.enter()
	defer p.leave()

	tok := p.cur
	start := tok.StartPosition
	switch {
	case tok.Type == token.Punctuator && (tok.Value == "++" || tok.Value == "--"):
		p.next()
		arg := p.simpleTarget(p.parseUnary(),
			"Prefix increment/decrement may not have eval or arguments operand in strict mode")
		return finish(p, start, &ast.UpdateExpression{Operator: tok.Value, Argument: arg, Prefix: true})

	case tok.Type == token.Punctuator && (tok.Value == "+" || tok.Value == "-" || tok.Value == "!" || tok.Value == "~"),
		tok.Type == token.Keyword && (tok.Value == "delete" || tok.Value == "void" || tok.Value == "typeof"):
		p.next()
		arg := p.parseUnary()
		if _, ok := arg.(*ast.Identifier); ok && tok.Value == "delete" && p.strict {
			p.errorAt(errz.ErrStrictMode, start, "Delete of an unqualified identifier in strict mode.")
		}
		return finish(p, start, &ast.UnaryExpression{Operator: tok.Value, Argument: arg, Prefix: true})
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.cur.StartPosition
	expr := p.parseLeftHandSide(true)
	if p.cur.Type != token.Punctuator || (p.cur.Value != "++" && p.cur.Value != "--") || p.cur.NewlineBefore {
		return expr
	}
	op := p.cur.Value
	arg := p.simpleTarget(expr,
		"Postfix increment/decrement may not have eval or arguments operand in strict mode")
	p.next()
	return finish(p, start, &ast.UpdateExpression{Operator: op, Argument: arg, Prefix: false})
}

// simpleTarget checks that expr is an identifier or member expression that
// may be assigned to.
func (p *Parser) simpleTarget(expr ast.Expr, strictMsg string) ast.Expr {
	switch e := expr.(type) {
	case *ast.Identifier:
		if p.strict && token.IsRestrictedWord(e.Name) {
			p.errorAt(errz.ErrStrictMode, e.Pos(), strictMsg)
		}
		return e
	case *ast.MemberExpression:
		return e
	}
	p.errorAt(errz.ErrInvalidSyntax, expr.Pos(), msgInvalidLHS)
	return nil
}

// parseLeftHandSide parses member accesses, calls and tagged templates.
// Calls are not part of a new expression's callee.
func (p *Parser) parseLeftHandSide(allowCall bool) ast.Expr {
	start := p.cur.StartPosition
	var expr ast.Expr
	if p.match("new") {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	for {
		switch {
		case p.match("."):
			p.next()
			property := p.parseIdentifierName()
			expr = finish(p, start, &ast.MemberExpression{Object: expr, Property: property})
		case p.match("["):
			p.next()
			restore := p.allowingIn()
			property := p.parseExpression()
			restore()
			p.expect("]")
			expr = finish(p, start, &ast.MemberExpression{Object: expr, Property: property, Computed: true})
		case allowCall && p.match("("):
			args := p.parseArguments()
			expr = finish(p, start, &ast.CallExpression{Callee: expr, Arguments: args})
		case p.cur.Type == token.Template:
			p.require(feature.TemplateStrings, p.cur)
			quasi := p.parseTemplateLiteral()
			expr = finish(p, start, &ast.TaggedTemplateExpression{Tag: expr, Quasi: quasi})
		default:
			return expr
		}
	}
}

func (p *Parser) parseNew() ast.Expr {
	start := p.cur.StartPosition
	newTok := p.cur
	p.next()

	if p.match(".") {
		p.requireAt(feature.NewTarget, start)
		p.next()
		if !p.cur.IsIdentifier("target") {
			p.unexpected(p.cur)
		}
		if !p.fn.newTargetOK {
			p.errorAt(errz.ErrInvalidSyntax, start, "new.target expression is not allowed here")
		}
		target := p.cur
		p.next()
		return finish(p, start, &ast.MetaProperty{
			Meta:     p.identifierAt(newTok),
			Property: p.identifierAt(target),
		})
	}

	callee := p.parseLeftHandSide(false)
	args := []ast.Expr{}
	if p.match("(") {
		args = p.parseArguments()
	}
	return finish(p, start, &ast.NewExpression{Callee: callee, Arguments: args})
}

func (p *Parser) parseArguments() []ast.Expr {
	p.expect("(")
	defer p.allowingIn()()
	args := []ast.Expr{}
	if !p.match(")") {
		for {
			if p.match("...") {
				args = append(args, p.parseSpreadElement())
			} else {
				args = append(args, p.parseAssignment())
			}
			if !p.eat(",") {
				break
			}
		}
	}
	p.expect(")")
	return args
}

func (p *Parser) parseSpreadElement() ast.Expr {
	start := p.cur.StartPosition
	p.require(feature.Spread, p.cur)
	p.next()
	arg := p.parseAssignment()
	return finish(p, start, &ast.SpreadElement{Argument: arg})
}

func (p *Parser) parseYield() ast.Expr {
	start := p.cur.StartPosition
	p.next()
	var arg ast.Expr
	delegate := false
	if !p.cur.NewlineBefore {
		if p.eat("*") {
			delegate = true
			arg = p.parseAssignment()
		} else if !p.atExpressionEnd() {
			arg = p.parseAssignment()
		}
	}
	return finish(p, start, &ast.YieldExpression{Argument: arg, Delegate: delegate})
}

// atExpressionEnd reports whether the lookahead cannot start an operand.
func (p *Parser) atExpressionEnd() bool {
	if p.cur.Type == token.EOF {
		return true
	}
	if p.cur.Type != token.Punctuator {
		return false
	}
	switch p.cur.Value {
	case ")", "]", "}", ",", ";", ":", "=>":
		return true
	}
	return false
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur
	start := tok.StartPosition
	switch tok.Type {
	case token.Identifier:
		return p.parseIdentifierReference()
	case token.Numeric, token.String, token.Boolean, token.Null:
		return p.parseLiteral()
	case token.Template:
		p.require(feature.TemplateStrings, tok)
		return p.parseTemplateLiteral()
	case token.Keyword:
		switch tok.Value {
		case "this":
			p.next()
			return finish(p, start, &ast.ThisExpression{})
		case "function":
			return p.parseFunctionExpression()
		case "class":
			p.require(feature.Classes, tok)
			return p.parseClassExpression()
		case "super":
			return p.parseSuper()
		}
	case token.Punctuator:
		switch tok.Value {
		case "(":
			return p.parseGroup()
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		case "/", "/=":
			return p.parseRegExp()
		case "<":
			p.require(feature.JSX, tok)
			return p.parseJSXElement()
		}
	}
	p.unexpected(tok)
	return nil
}

// identifierAt returns an identifier node spanning tok.
func (p *Parser) identifierAt(tok token.Token) *ast.Identifier {
	id := &ast.Identifier{Name: tok.Value}
	ast.SetSpan(id, tok.StartPosition, tok.EndPosition, p.withRange, p.withLoc)
	return id
}

func (p *Parser) parseIdentifierReference() *ast.Identifier {
	tok := p.cur
	if tok.Type != token.Identifier || (p.fn.generator && tok.Value == "yield") {
		p.unexpected(tok)
	}
	if p.strict && token.IsStrictModeReservedWord(tok.Value) {
		p.errorAt(errz.ErrStrictMode, tok.StartPosition, msgStrictReservedWord)
	}
	p.next()
	return p.identifierAt(tok)
}

// parseIdentifierName parses any IdentifierName, reserved words included,
// as used after "." and in property keys.
func (p *Parser) parseIdentifierName() *ast.Identifier {
	tok := p.cur
	switch tok.Type {
	case token.Identifier, token.Keyword, token.Boolean, token.Null:
	default:
		p.unexpected(tok)
	}
	p.next()
	return p.identifierAt(tok)
}

func (p *Parser) parseLiteral() *ast.Literal {
	tok := p.cur
	if tok.Octal && p.strict {
		p.errorAt(errz.ErrStrictMode, tok.StartPosition, msgStrictOctal)
	}
	p.next()
	lit := &ast.Literal{Raw: tok.Value}
	switch tok.Type {
	case token.Numeric:
		lit.Value = tok.Number
	case token.String:
		lit.Value = tok.Cooked
	case token.Boolean:
		lit.Value = tok.Value == "true"
	}
	return finish(p, tok.StartPosition, lit)
}

func (p *Parser) parseRegExp() ast.Expr {
	tok, err := p.l.ScanRegExp(p.cur)
	if err != nil {
		p.failErr(err)
	}
	p.cur = tok
	p.next()
	return finish(p, tok.StartPosition, &ast.Literal{Raw: tok.Value, Regex: tok.Regex})
}

func (p *Parser) parseSuper() ast.Expr {
	tok := p.cur
	switch p.fn.super {
	case superNone:
		p.unexpected(tok)
	case superGated:
		p.require(feature.SuperInFunctions, tok)
	}
	p.next()
	if !p.match("(") && !p.match(".") && !p.match("[") {
		p.unexpected(p.cur)
	}
	return finish(p, tok.StartPosition, &ast.Super{})
}

// parseGroup parses a parenthesized expression. When an arrow function was
// attempted at the same "(" and failed only because a feature is disabled,
// that error is reported instead of the group's own.
func (p *Parser) parseGroup() ast.Expr {
	start := p.cur.StartPosition
	var expr ast.Expr
	err := p.try(func() {
		p.next()
		restore := p.allowingIn()
		expr = p.parseExpression()
		restore()
		p.expect(")")
	})
	if err != nil {
		if arrowErr, ok := p.arrowFailures[start.Offset]; ok && arrowErr.Kind == errz.ErrUnsupportedFeature {
			p.fail(arrowErr)
		}
		if !p.features.Has(feature.ArrowFunctions) {
			if arrow, ok := p.arrowAhead(); ok {
				p.require(feature.ArrowFunctions, arrow)
			}
		}
		p.fail(err)
	}
	switch expr.(type) {
	case *ast.ObjectExpression, *ast.ArrayExpression:
		p.parenthesized[expr] = true
	}
	return expr
}

// arrowAhead reports whether the "(" at the lookahead starts an arrow
// parameter list, and returns its "=>" token. Parameter features are
// assumed on while looking. The parser position is not changed.
func (p *Parser) arrowAhead() (token.Token, bool) {
	saved := p.features
	p.features = saved.With(feature.DefaultParams, feature.RestParams, feature.Destructuring)
	defer func() { p.features = saved }()

	var arrow token.Token
	found := false
	p.try(func() {
		p.parseParams()
		if p.match("=>") && !p.cur.NewlineBefore {
			arrow, found = p.cur, true
		}
		p.unexpected(p.cur)
	})
	return arrow, found
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.cur.StartPosition
	p.next()
	defer p.allowingIn()()
	elements := []ast.Expr{}
	for !p.match("]") {
		if p.eat(",") {
			elements = append(elements, nil)
			continue
		}
		if p.match("...") {
			elements = append(elements, p.parseSpreadElement())
		} else {
			elements = append(elements, p.parseAssignment())
		}
		if !p.match("]") {
			p.expect(",")
		}
	}
	p.next()
	return finish(p, start, &ast.ArrayExpression{Elements: elements})
}

func (p *Parser) parseTemplateLiteral() *ast.TemplateLiteral {
	start := p.cur.StartPosition
	quasis := []*ast.TemplateElement{}
	exprs := []ast.Expr{}
	for {
		tok := p.cur
		if tok.Type != token.Template {
			p.unexpected(tok)
		}
		p.next()
		quasis = append(quasis, finish(p, tok.StartPosition, &ast.TemplateElement{
			Value: ast.TemplateValue{Raw: tok.Raw, Cooked: tok.Cooked},
			Tail:  tok.Tail,
		}))
		if tok.Tail {
			break
		}
		restore := p.allowingIn()
		exprs = append(exprs, p.parseExpression())
		restore()
		if !p.match("}") {
			p.unexpected(p.cur)
		}
		next, err := p.l.ScanTemplateContinuation(p.cur)
		if err != nil {
			p.failErr(err)
		}
		p.cur = next
	}
	return finish(p, start, &ast.TemplateLiteral{Quasis: quasis, Expressions: exprs})
}
