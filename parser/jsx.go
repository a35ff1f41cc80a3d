package parser

import (
	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/token"
)

// JSX parsing methods for the Parser.
// The lexer has separate modes for the inside of a tag and for element
// children; each token is scanned in the mode of the position it starts at,
// which is known when the previous token is consumed.

type scanFunc func() (token.Token, error)

// parseJSXElement parses an element at the "<" lookahead, in expression
// position. The token after the element is scanned in ordinary mode.
func (p *Parser) parseJSXElement() ast.Expr {
	start := p.cur.StartPosition
	p.advance(p.l.NextJSXTag)
	el := p.parseJSXElementAt(start, p.l.Next)
	if p.match("<") {
		p.errorAt(errz.ErrJSXStructure, p.cur.StartPosition, "Adjacent JSX elements must be wrapped in an enclosing tag")
	}
	return el
}

// parseJSXElementAt parses an element whose "<" has been consumed. after
// scans the token following the element.
func (p *Parser) parseJSXElementAt(start token.Position, after scanFunc) *ast.JSXElement {
	p.enter()
	defer p.leave()

	opening := p.parseJSXOpeningElement(start, after)
	children := []ast.Node{}
	if opening.SelfClosing {
		return finish(p, start, &ast.JSXElement{OpeningElement: opening, Children: children})
	}
	for {
		switch {
		case p.cur.Type == token.EOF:
			p.errorAt(errz.ErrJSXStructure, p.cur.StartPosition, msgUnexpectedEOS)
		case p.cur.Type == token.JSXText:
			tok := p.cur
			p.advance(p.l.NextJSXChild)
			children = append(children, finish(p, tok.StartPosition, &ast.JSXText{Value: tok.Cooked, Raw: tok.Value}))
		case p.match("{"):
			children = append(children, p.parseJSXExpressionContainer(p.l.NextJSXChild))
		case p.match("<"):
			childStart := p.cur.StartPosition
			p.advance(p.l.NextJSXTag)
			if p.match("/") {
				closing := p.parseJSXClosingElement(childStart, opening, start, after)
				return finish(p, start, &ast.JSXElement{
					OpeningElement: opening,
					ClosingElement: closing,
					Children:       children,
				})
			}
			children = append(children, p.parseJSXElementAt(childStart, p.l.NextJSXChild))
		default:
			p.unexpected(p.cur)
		}
	}
}

func (p *Parser) parseJSXOpeningElement(start token.Position, after scanFunc) *ast.JSXOpeningElement {
	name := p.parseJSXElementName()
	attributes := []ast.Node{}
	for !p.match("/") && !p.match(">") {
		attributes = append(attributes, p.parseJSXAttribute())
	}
	selfClosing := p.match("/")
	if selfClosing {
		p.advance(p.l.NextJSXTag)
		if !p.match(">") {
			p.unexpected(p.cur)
		}
		p.advance(after)
	} else {
		p.advance(p.l.NextJSXChild)
	}
	return finish(p, start, &ast.JSXOpeningElement{Name: name, Attributes: attributes, SelfClosing: selfClosing})
}

// parseJSXClosingElement parses a closing tag after its "</", which must
// name the same element as opening.
func (p *Parser) parseJSXClosingElement(start token.Position, opening *ast.JSXOpeningElement, openStart token.Position, after scanFunc) *ast.JSXClosingElement {
	p.advance(p.l.NextJSXTag)
	name := p.parseJSXElementName()
	if want := jsxName(opening.Name); jsxName(name) != want {
		p.fail(errz.New(errz.ErrJSXStructure, start,
			"Expected corresponding JSX closing tag for %s", want).WithRelated(openStart))
	}
	if !p.match(">") {
		p.unexpected(p.cur)
	}
	p.advance(after)
	return finish(p, start, &ast.JSXClosingElement{Name: name})
}

func (p *Parser) parseJSXIdentifier() *ast.JSXIdentifier {
	tok := p.cur
	if tok.Type != token.JSXIdentifier {
		p.unexpected(tok)
	}
	p.advance(p.l.NextJSXTag)
	return finish(p, tok.StartPosition, &ast.JSXIdentifier{Name: tok.Value})
}

// parseJSXElementName parses a tag name: a plain, namespaced or dotted name.
func (p *Parser) parseJSXElementName() ast.Node {
	start := p.cur.StartPosition
	name := p.parseJSXIdentifier()
	if p.match(":") {
		p.advance(p.l.NextJSXTag)
		local := p.parseJSXIdentifier()
		return finish(p, start, &ast.JSXNamespacedName{Namespace: name, Name: local})
	}
	var expr ast.Node = name
	for p.match(".") {
		p.advance(p.l.NextJSXTag)
		property := p.parseJSXIdentifier()
		expr = finish(p, start, &ast.JSXMemberExpression{Object: expr, Property: property})
	}
	return expr
}

func (p *Parser) parseJSXAttributeName() ast.Node {
	start := p.cur.StartPosition
	name := p.parseJSXIdentifier()
	if !p.match(":") {
		return name
	}
	p.advance(p.l.NextJSXTag)
	local := p.parseJSXIdentifier()
	return finish(p, start, &ast.JSXNamespacedName{Namespace: name, Name: local})
}

func (p *Parser) parseJSXAttribute() ast.Node {
	start := p.cur.StartPosition
	if p.match("{") {
		p.next()
		p.expect("...")
		restore := p.allowingIn()
		arg := p.parseAssignment()
		restore()
		if !p.match("}") {
			p.unexpected(p.cur)
		}
		p.advance(p.l.NextJSXTag)
		return finish(p, start, &ast.JSXSpreadAttribute{Argument: arg})
	}

	name := p.parseJSXAttributeName()
	var value ast.Node
	if p.match("=") {
		p.advance(p.l.NextJSXTag)
		value = p.parseJSXAttributeValue()
	}
	return finish(p, start, &ast.JSXAttribute{Name: name, Value: value})
}

func (p *Parser) parseJSXAttributeValue() ast.Node {
	tok := p.cur
	switch {
	case tok.Type == token.String:
		p.advance(p.l.NextJSXTag)
		return finish(p, tok.StartPosition, &ast.Literal{Value: tok.Cooked, Raw: tok.Value})
	case tok.Is("{"):
		container := p.parseJSXExpressionContainer(p.l.NextJSXTag)
		if _, empty := container.Expression.(*ast.JSXEmptyExpression); empty {
			p.errorAt(errz.ErrJSXStructure, tok.StartPosition, "JSX attributes must only be assigned a non-empty expression")
		}
		return container
	case tok.Is("<"):
		p.advance(p.l.NextJSXTag)
		return p.parseJSXElementAt(tok.StartPosition, p.l.NextJSXTag)
	}
	p.errorAt(errz.ErrJSXStructure, tok.StartPosition, "JSX value should be either an expression or a quoted JSX text")
	return nil
}

// parseJSXExpressionContainer parses "{expr}" or "{}" in a tag or among
// children. after scans the token following the "}".
func (p *Parser) parseJSXExpressionContainer(after scanFunc) *ast.JSXExpressionContainer {
	start := p.cur.StartPosition
	p.next()
	var expr ast.Node
	if p.match("}") {
		empty := &ast.JSXEmptyExpression{}
		ast.SetSpan(empty, p.prev.EndPosition, p.cur.StartPosition, p.withRange, p.withLoc)
		expr = empty
	} else {
		restore := p.allowingIn()
		expr = p.parseExpression()
		restore()
		if !p.match("}") {
			p.unexpected(p.cur)
		}
	}
	p.advance(after)
	return finish(p, start, &ast.JSXExpressionContainer{Expression: expr})
}

// jsxName returns the source form of a tag name, used to match closing tags.
func jsxName(node ast.Node) string {
	switch n := node.(type) {
	case *ast.JSXIdentifier:
		return n.Name
	case *ast.JSXNamespacedName:
		return n.Namespace.Name + ":" + n.Name.Name
	case *ast.JSXMemberExpression:
		return jsxName(n.Object) + "." + n.Property.Name
	}
	return ""
}
