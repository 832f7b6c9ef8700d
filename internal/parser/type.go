package parser

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/token"
)

// parseType parses a type expression. Modifiers (mut/const/*/&/?)
// nest to the left of their base type, matching spec.md's
// modifier-stacking grammar; [N] nests as a prefix array modifier.
func (p *Parser) parseType() ast.Type {
	loc := p.cur().Loc
	switch p.cur().Kind {
	case token.KwMut:
		p.advance()
		return ast.NewMutType(p.reg, loc, p.parseType())
	case token.KwConst:
		p.advance()
		return ast.NewConstType(p.reg, loc, p.parseType())
	case token.Star:
		p.advance()
		return ast.NewPtrType(p.reg, loc, p.parseType())
	case token.Amp:
		p.advance()
		return ast.NewRefType(p.reg, loc, p.parseType())
	case token.Question:
		p.advance()
		return ast.NewOptType(p.reg, loc, p.parseType())
	case token.LBracket:
		p.advance()
		var length ast.Expr
		if !p.at(token.RBracket) {
			length = p.parseExpr()
		}
		p.expect(token.RBracket, "']'")
		base := p.parseType()
		return ast.NewArrayType(p.reg, loc, base, length)
	case token.KwFun:
		return p.parseFunType()
	case token.Ident:
		return p.parseNameType()
	default:
		p.errorf(loc, "expected a type, got %q", p.cur().Value)
		p.advance()
		return ast.NewNameType(p.reg, loc, nil, "<error>", nil)
	}
}

func (p *Parser) parseFunType() ast.Type {
	loc := p.advance().Loc // fun
	p.expect(token.LParen, "'('")
	var params []ast.Type
	vararg := false
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Ellipsis) {
			p.advance()
			vararg = true
			break
		}
		params = append(params, p.parseType())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	var ret ast.Type
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	}
	return ast.NewFunType(p.reg, loc, params, ret, vararg)
}

func (p *Parser) parseNameType() ast.Type {
	loc := p.cur().Loc
	first, _ := p.expect(token.Ident, "type name")
	var qualifiers []string
	name := first.Value
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		qualifiers = append(qualifiers, name)
		seg, _ := p.expect(token.Ident, "type name")
		name = seg.Value
	}
	var args []ast.Type
	if p.at(token.Lt2) {
		p.advance()
		for !p.at(token.Gt) && !p.at(token.EOF) {
			args = append(args, p.parseType())
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.Gt, "'>'")
	}
	return ast.NewNameType(p.reg, loc, qualifiers, name, args)
}
