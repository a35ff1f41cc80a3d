package parser

import (
	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// Statement parsing methods for the Parser.
// This file contains methods that parse statement constructs:
// - Program and function bodies with their directive prologues
// - Declarations in statement list position (var, let, const)
// - Control flow (if, loops, switch, try, labels, jumps)
// - Expression statements and automatic semicolon insertion

const msgStrictFunction = "In strict mode code, functions can only be declared at top level or immediately within another function."

// parseBody parses a directive prologue followed by statement list items
// until done reports true. onStrict runs when a "use strict" directive
// switches the body to strict mode.
func (p *Parser) parseBody(done func() bool, topLevel bool, onStrict func()) []ast.Stmt {
	body := []ast.Stmt{}
	var octal *token.Token
	for p.cur.Type == token.String && !done() {
		tok := p.cur
		stmt := p.parseStatementListItem(topLevel)
		body = append(body, stmt)
		if !isDirective(stmt, tok) {
			break
		}
		if p.l.Slice(tok.Start()+1, tok.End()-1) == "use strict" {
			if !p.strict {
				p.strict = true
				if octal != nil {
					p.errorAt(errz.ErrStrictMode, octal.StartPosition, msgStrictOctal)
				}
				if onStrict != nil {
					onStrict()
				}
			}
		} else if tok.Octal && octal == nil {
			octal = &tok
		}
	}
	for !done() {
		if topLevel {
			p.checkContext()
		}
		body = append(body, p.parseStatementListItem(topLevel))
	}
	return body
}

// isDirective reports whether stmt is an expression statement consisting of
// exactly the string token tok.
func isDirective(stmt ast.Stmt, tok token.Token) bool {
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	lit, ok := es.Expression.(*ast.Literal)
	return ok && lit.Pos().Offset == tok.Start() && lit.End().Offset == tok.End()
}

// parseStatementListItem parses a statement or a declaration.
func (p *Parser) parseStatementListItem(topLevel bool) ast.Stmt {
	mark := len(p.covers)
	var stmt ast.Stmt
	switch {
	case p.match("function"):
		stmt = p.parseFunctionDeclaration(false)
	case p.match("class"):
		p.require(feature.Classes, p.cur)
		stmt = p.parseClassDeclaration(false)
	case p.match("const"):
		stmt = p.parseLexicalDeclaration()
	case p.cur.IsIdentifier("let") && p.isLetDeclaration():
		stmt = p.parseLexicalDeclaration()
	case p.match("import"), p.match("export"):
		stmt = p.parseModuleItem(topLevel)
	default:
		stmt = p.parseStatement()
	}
	p.checkCovers(mark)
	return stmt
}

// isLetDeclaration reports whether the "let" lookahead starts a declaration.
func (p *Parser) isLetDeclaration() bool {
	next := p.peek()
	return next.Type == token.Identifier || next.Is("[") || next.Is("{")
}

func (p *Parser) parseStatement() ast.Stmt {
	p.enter()
	defer p.leave()

	labels := p.pendingLabels
	p.pendingLabels = nil
	start := p.cur.StartPosition

	switch p.cur.Type {
	case token.Punctuator:
		switch p.cur.Value {
		case "{":
			return p.parseBlock()
		case ";":
			p.next()
			return finish(p, start, &ast.EmptyStatement{})
		}
	case token.Keyword:
		switch p.cur.Value {
		case "var":
			return p.parseVariableStatement()
		case "if":
			return p.parseIfStatement()
		case "for":
			markLoop(labels)
			return p.parseForStatement()
		case "while":
			markLoop(labels)
			return p.parseWhileStatement()
		case "do":
			markLoop(labels)
			return p.parseDoWhileStatement()
		case "break", "continue":
			return p.parseJumpStatement()
		case "return":
			return p.parseReturnStatement()
		case "switch":
			return p.parseSwitchStatement()
		case "throw":
			return p.parseThrowStatement()
		case "try":
			return p.parseTryStatement()
		case "with":
			return p.parseWithStatement()
		case "debugger":
			p.next()
			p.consumeSemicolon()
			return finish(p, start, &ast.DebuggerStatement{})
		case "function":
			if p.strict {
				p.errorAt(errz.ErrStrictMode, start, msgStrictFunction)
			}
			return p.parseFunctionDeclaration(false)
		case "const":
			p.require(feature.BlockBindings, p.cur)
			p.unexpected(p.cur)
		case "class":
			p.require(feature.Classes, p.cur)
			p.unexpected(p.cur)
		case "import", "export":
			p.moduleItemError(false)
		}
	}
	return p.parseExpressionStatement(labels)
}

func markLoop(labels []*label) {
	for _, l := range labels {
		l.loop = true
	}
}

// parseExpressionStatement parses an expression statement, or a labeled
// statement when the expression is a lone identifier followed by ":".
func (p *Parser) parseExpressionStatement(labels []*label) ast.Stmt {
	start := p.cur.StartPosition
	first := p.cur
	expr := p.parseExpression()

	if id, ok := expr.(*ast.Identifier); ok && first.Type == token.Identifier && p.match(":") &&
		id.Pos() == first.StartPosition && id.End() == first.EndPosition {
		p.next()
		l := p.pushLabel(first)
		defer p.popLabel()
		p.pendingLabels = append(labels, l)
		body := p.parseStatement()
		return finish(p, start, &ast.LabeledStatement{Label: id, Body: body})
	}

	p.consumeSemicolon()
	return finish(p, start, &ast.ExpressionStatement{Expression: expr})
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	start := p.cur.StartPosition
	p.expect("{")
	body := []ast.Stmt{}
	for !p.match("}") {
		body = append(body, p.parseStatementListItem(false))
	}
	p.next()
	return finish(p, start, &ast.BlockStatement{Body: body})
}

func (p *Parser) parseVariableStatement() ast.Stmt {
	start := p.cur.StartPosition
	p.next()
	decls := p.parseDeclarators("var")
	for _, d := range decls {
		p.checkInitializer("var", d, p.cur.StartPosition)
	}
	p.consumeSemicolon()
	return finish(p, start, &ast.VariableDeclaration{Declarations: decls, Kind: "var"})
}

// parseLexicalDeclaration parses a let or const declaration.
func (p *Parser) parseLexicalDeclaration() ast.Stmt {
	start := p.cur.StartPosition
	kind := p.cur.Value
	p.require(feature.BlockBindings, p.cur)
	p.next()
	decls := p.parseDeclarators(kind)
	for _, d := range decls {
		p.checkInitializer(kind, d, p.cur.StartPosition)
	}
	p.consumeSemicolon()
	return finish(p, start, &ast.VariableDeclaration{Declarations: decls, Kind: kind})
}

func (p *Parser) parseDeclarators(kind string) []*ast.VariableDeclarator {
	decls := []*ast.VariableDeclarator{}
	for {
		start := p.cur.StartPosition
		bk := bindVar
		if kind != "var" {
			bk = bindLexical
		}
		id := p.parseBindingTarget(bk)
		var init ast.Expr
		if p.eat("=") {
			init = p.parseAssignment()
		}
		decls = append(decls, finish(p, start, &ast.VariableDeclarator{ID: id, Init: init}))
		if !p.eat(",") {
			return decls
		}
	}
}

// checkInitializer rejects const and destructuring declarators without an
// initializer outside the head of a for-in or for-of statement.
func (p *Parser) checkInitializer(kind string, d *ast.VariableDeclarator, pos token.Position) {
	if d.Init != nil {
		return
	}
	if kind == "const" {
		p.errorAt(errz.ErrInvalidSyntax, pos, "Missing initializer in const declaration")
	}
	if _, ok := d.ID.(*ast.Identifier); !ok {
		p.errorAt(errz.ErrInvalidSyntax, pos, "Missing initializer in destructuring declaration")
	}
}

func (p *Parser) parseIfStatement() ast.Stmt {
	start := p.cur.StartPosition
	p.next()
	p.expect("(")
	test := p.parseExpression()
	p.expect(")")
	consequent := p.parseStatement()
	var alternate ast.Stmt
	if p.eat("else") {
		alternate = p.parseStatement()
	}
	return finish(p, start, &ast.IfStatement{Test: test, Consequent: consequent, Alternate: alternate})
}

func (p *Parser) parseWhileStatement() ast.Stmt {
	start := p.cur.StartPosition
	p.next()
	p.expect("(")
	test := p.parseExpression()
	p.expect(")")
	body := p.inLoop(p.parseStatement)
	return finish(p, start, &ast.WhileStatement{Test: test, Body: body})
}

func (p *Parser) parseDoWhileStatement() ast.Stmt {
	start := p.cur.StartPosition
	p.next()
	body := p.inLoop(p.parseStatement)
	p.expect("while")
	p.expect("(")
	test := p.parseExpression()
	p.expect(")")
	p.eat(";")
	return finish(p, start, &ast.DoWhileStatement{Body: body, Test: test})
}

func (p *Parser) parseForStatement() ast.Stmt {
	start := p.cur.StartPosition
	p.next()
	p.expect("(")

	var init ast.Node
	switch {
	case p.match(";"):
	case p.match("var"), p.match("const"), p.cur.IsIdentifier("let") && p.isLetDeclaration():
		declStart := p.cur.StartPosition
		kind := p.cur.Value
		if kind != "var" {
			p.require(feature.BlockBindings, p.cur)
		}
		p.next()
		p.allowIn = false
		decls := p.parseDeclarators(kind)
		p.allowIn = true
		decl := finish(p, declStart, &ast.VariableDeclaration{Declarations: decls, Kind: kind})
		if len(decls) == 1 && p.atForInOf() {
			if decls[0].Init != nil {
				p.errorAt(errz.ErrInvalidSyntax, decls[0].Pos(),
					"%s loop variable declaration may not have an initializer.", p.forLoopKind())
			}
			return p.parseForInOf(start, decl)
		}
		for _, d := range decls {
			p.checkInitializer(kind, d, p.cur.StartPosition)
		}
		init = decl
	default:
		mark := len(p.covers)
		p.allowIn = false
		expr := p.parseExpressionCover()
		p.allowIn = true
		if p.atForInOf() {
			msg := "Invalid left-hand side in " + p.forLoopKind()
			return p.parseForInOf(start, p.toAssignTarget(expr, msg))
		}
		p.checkCovers(mark)
		init = expr
	}

	p.expect(";")
	var test, update ast.Expr
	if !p.match(";") {
		test = p.parseExpression()
	}
	p.expect(";")
	if !p.match(")") {
		update = p.parseExpression()
	}
	p.expect(")")
	body := p.inLoop(p.parseStatement)
	return finish(p, start, &ast.ForStatement{Init: init, Test: test, Update: update, Body: body})
}

func (p *Parser) atForInOf() bool {
	return p.match("in") || p.cur.IsIdentifier("of")
}

func (p *Parser) forLoopKind() string {
	if p.match("in") {
		return "for-in"
	}
	return "for-of"
}

func (p *Parser) parseForInOf(start token.Position, left ast.Node) ast.Stmt {
	if p.eat("in") {
		right := p.parseExpression()
		p.expect(")")
		body := p.inLoop(p.parseStatement)
		return finish(p, start, &ast.ForInStatement{Left: left, Right: right, Body: body})
	}
	p.require(feature.ForOf, p.cur)
	p.next()
	right := p.parseAssignment()
	p.expect(")")
	body := p.inLoop(p.parseStatement)
	return finish(p, start, &ast.ForOfStatement{Left: left, Right: right, Body: body})
}

// parseJumpStatement parses break and continue.
func (p *Parser) parseJumpStatement() ast.Stmt {
	start := p.cur.StartPosition
	keyword := p.cur
	isBreak := keyword.Value == "break"
	p.next()

	var target *ast.Identifier
	if p.cur.Type == token.Identifier && !p.cur.NewlineBefore {
		tok := p.cur
		l := p.findLabel(tok.Value)
		if l == nil {
			p.errorAt(errz.ErrLabelResolution, tok.StartPosition, "Undefined label '%s'", tok.Value)
		}
		if !isBreak && !l.loop {
			p.errorAt(errz.ErrLabelResolution, tok.StartPosition, "Illegal continue statement")
		}
		p.next()
		target = finish(p, tok.StartPosition, &ast.Identifier{Name: tok.Value})
	} else if isBreak && p.fn.iteration == 0 && p.fn.switches == 0 {
		p.errorAt(errz.ErrLabelResolution, start, "Illegal break statement")
	} else if !isBreak && p.fn.iteration == 0 {
		p.errorAt(errz.ErrLabelResolution, start, "Illegal continue statement")
	}
	p.consumeSemicolon()

	if isBreak {
		return finish(p, start, &ast.BreakStatement{Label: target})
	}
	return finish(p, start, &ast.ContinueStatement{Label: target})
}

func (p *Parser) parseReturnStatement() ast.Stmt {
	start := p.cur.StartPosition
	if !p.fn.returnOK {
		err := errz.New(errz.ErrModuleGrammar, start, msgIllegalReturn)
		if !p.module {
			err.Feature = feature.GlobalReturn.String()
		}
		p.fail(err)
	}
	p.next()
	var arg ast.Expr
	if !p.match(";") && !p.match("}") && !p.cur.NewlineBefore && p.cur.Type != token.EOF {
		arg = p.parseExpression()
	}
	p.consumeSemicolon()
	return finish(p, start, &ast.ReturnStatement{Argument: arg})
}

func (p *Parser) parseThrowStatement() ast.Stmt {
	start := p.cur.StartPosition
	p.next()
	if p.cur.NewlineBefore {
		p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, "Illegal newline after throw")
	}
	arg := p.parseExpression()
	p.consumeSemicolon()
	return finish(p, start, &ast.ThrowStatement{Argument: arg})
}

func (p *Parser) parseTryStatement() ast.Stmt {
	start := p.cur.StartPosition
	p.next()
	block := p.parseBlock()

	var handler *ast.CatchClause
	if p.match("catch") {
		catchStart := p.cur.StartPosition
		p.next()
		p.expect("(")
		if p.match(")") {
			p.unexpected(p.cur)
		}
		param := p.parseBindingTarget(bindCatch)
		p.expect(")")
		body := p.parseBlock()
		handler = finish(p, catchStart, &ast.CatchClause{Param: param, Body: body})
	}

	var finalizer *ast.BlockStatement
	if p.eat("finally") {
		finalizer = p.parseBlock()
	}
	if handler == nil && finalizer == nil {
		p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, "Missing catch or finally after try")
	}
	return finish(p, start, &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer})
}

func (p *Parser) parseSwitchStatement() ast.Stmt {
	start := p.cur.StartPosition
	p.next()
	p.expect("(")
	discriminant := p.parseExpression()
	p.expect(")")
	p.expect("{")

	p.fn.switches++
	defer func() { p.fn.switches-- }()

	cases := []*ast.SwitchCase{}
	seenDefault := false
	for !p.match("}") {
		caseStart := p.cur.StartPosition
		var test ast.Expr
		if p.eat("case") {
			test = p.parseExpression()
		} else {
			if p.match("default") && seenDefault {
				p.errorAt(errz.ErrInvalidSyntax, caseStart, "More than one default clause in switch statement")
			}
			p.expect("default")
			seenDefault = true
		}
		p.expect(":")
		consequent := []ast.Stmt{}
		for !p.match("}") && !p.match("case") && !p.match("default") {
			consequent = append(consequent, p.parseStatementListItem(false))
		}
		cases = append(cases, finish(p, caseStart, &ast.SwitchCase{Test: test, Consequent: consequent}))
	}
	p.next()
	return finish(p, start, &ast.SwitchStatement{Discriminant: discriminant, Cases: cases})
}

func (p *Parser) parseWithStatement() ast.Stmt {
	start := p.cur.StartPosition
	if p.strict {
		p.errorAt(errz.ErrStrictMode, start, "Strict mode code may not include a with statement")
	}
	p.next()
	p.expect("(")
	object := p.parseExpression()
	p.expect(")")
	body := p.parseStatement()
	return finish(p, start, &ast.WithStatement{Object: object, Body: body})
}
