package parser

import (
	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/token"
)

// parseModuleItem parses an import or export declaration.
func (p *Parser) parseModuleItem(topLevel bool) ast.Stmt {
	p.moduleItemError(topLevel)
	if p.match("import") {
		return p.parseImportDeclaration()
	}
	return p.parseExportDeclaration()
}

// moduleItemError rejects an import or export declaration outside the top
// level of a module.
func (p *Parser) moduleItemError(topLevel bool) {
	if !p.module {
		p.errorAt(errz.ErrModuleGrammar, p.cur.StartPosition, msgModuleOnly)
	}
	if !topLevel {
		p.errorAt(errz.ErrModuleGrammar, p.cur.StartPosition, msgModuleTopLevel)
	}
}

// expectContextual consumes the identifier name, such as "from" or "as".
func (p *Parser) expectContextual(name string) {
	if !p.cur.IsIdentifier(name) {
		p.unexpected(p.cur)
	}
	p.next()
}

func (p *Parser) parseModuleSource() *ast.Literal {
	if p.cur.Type != token.String {
		p.unexpected(p.cur)
	}
	return p.parseLiteral()
}

func (p *Parser) parseImportDeclaration() ast.Stmt {
	start := p.cur.StartPosition
	p.next()

	specifiers := []ast.Node{}
	if p.cur.Type != token.String {
		if p.cur.Type == token.Identifier {
			local := p.parseBindingIdentifier(bindLexical)
			specifiers = append(specifiers, spanOf(p, local, &ast.ImportDefaultSpecifier{Local: local}))
			if p.eat(",") {
				specifiers = p.parseImportClause(specifiers)
			}
		} else {
			specifiers = p.parseImportClause(specifiers)
		}
		p.expectContextual("from")
	}
	source := p.parseModuleSource()
	p.consumeSemicolon()
	return finish(p, start, &ast.ImportDeclaration{Specifiers: specifiers, Source: source})
}

// parseImportClause parses a namespace import or a braced list of named
// imports.
func (p *Parser) parseImportClause(specifiers []ast.Node) []ast.Node {
	start := p.cur.StartPosition
	if p.eat("*") {
		p.expectContextual("as")
		local := p.parseBindingIdentifier(bindLexical)
		return append(specifiers, finish(p, start, &ast.ImportNamespaceSpecifier{Local: local}))
	}

	p.expect("{")
	for !p.match("}") {
		specStart := p.cur.StartPosition
		tok := p.cur
		imported := p.parseIdentifierName()
		var local *ast.Identifier
		if p.cur.IsIdentifier("as") {
			p.next()
			local = p.parseBindingIdentifier(bindLexical)
		} else {
			if tok.Type != token.Identifier {
				p.unexpected(tok)
			}
			p.checkBindingName(tok.Value, tok.StartPosition, bindLexical)
			local = p.identifierAt(tok)
		}
		specifiers = append(specifiers, finish(p, specStart, &ast.ImportSpecifier{Local: local, Imported: imported}))
		if !p.match("}") {
			p.expect(",")
		}
	}
	p.next()
	return specifiers
}

func (p *Parser) parseExportDeclaration() ast.Stmt {
	start := p.cur.StartPosition
	p.next()

	switch {
	case p.eat("default"):
		var decl ast.Node
		switch {
		case p.match("function"):
			decl = p.parseFunctionDeclaration(true)
		case p.match("class"):
			decl = p.parseClassDeclaration(true)
		default:
			decl = p.parseAssignment()
			p.consumeSemicolon()
		}
		return finish(p, start, &ast.ExportDefaultDeclaration{Declaration: decl})

	case p.eat("*"):
		p.expectContextual("from")
		source := p.parseModuleSource()
		p.consumeSemicolon()
		return finish(p, start, &ast.ExportAllDeclaration{Source: source})

	case p.eat("{"):
		specifiers := []*ast.ExportSpecifier{}
		// A reserved word may be re-exported from another module but
		// cannot name a local binding.
		var reserved *token.Token
		for !p.match("}") {
			specStart := p.cur.StartPosition
			tok := p.cur
			if tok.Type != token.Identifier && reserved == nil {
				reserved = &tok
			}
			local := p.parseIdentifierName()
			exported := p.identifierAt(tok)
			if p.cur.IsIdentifier("as") {
				p.next()
				exported = p.parseIdentifierName()
			}
			specifiers = append(specifiers, finish(p, specStart, &ast.ExportSpecifier{Local: local, Exported: exported}))
			if !p.match("}") {
				p.expect(",")
			}
		}
		p.next()
		var source *ast.Literal
		if p.cur.IsIdentifier("from") {
			p.next()
			source = p.parseModuleSource()
		} else if reserved != nil {
			p.unexpected(*reserved)
		}
		p.consumeSemicolon()
		return finish(p, start, &ast.ExportNamedDeclaration{Specifiers: specifiers, Source: source})
	}

	var decl ast.Stmt
	switch {
	case p.match("var"):
		decl = p.parseVariableStatement()
	case p.match("const"), p.cur.IsIdentifier("let") && p.isLetDeclaration():
		decl = p.parseLexicalDeclaration()
	case p.match("function"):
		decl = p.parseFunctionDeclaration(false)
	case p.match("class"):
		decl = p.parseClassDeclaration(false)
	default:
		p.unexpected(p.cur)
	}
	return finish(p, start, &ast.ExportNamedDeclaration{Declaration: decl, Specifiers: []*ast.ExportSpecifier{}})
}
