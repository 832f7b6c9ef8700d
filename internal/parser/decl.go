package parser

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/token"
)

func (p *Parser) parsePub() bool {
	if p.at(token.KwPub) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseDecl() ast.Decl {
	pub := p.parsePub()
	switch p.cur().Kind {
	case token.KwMod:
		return p.parseModDecl()
	case token.KwUse:
		return p.parseUseDecl()
	case token.KwFun, token.KwExtern:
		return p.parseFunDecl(pub)
	case token.KwStruct:
		return p.parseStructDecl(pub)
	case token.KwUnion:
		return p.parseUnionDecl(pub)
	case token.KwEnum:
		return p.parseEnumDecl(pub)
	case token.KwVar:
		return p.parseVarDecl(pub)
	case token.KwConst:
		return p.parseConstDecl(pub)
	default:
		p.errorf(p.cur().Loc, "expected a declaration, got %q", p.cur().Value)
		return nil
	}
}

func (p *Parser) parseModDecl() ast.Decl {
	loc := p.cur().Loc
	p.advance() // mod
	name, _ := p.expect(token.Ident, "module name")
	if _, ok := p.expect(token.LBrace, "'{'"); !ok {
		return nil
	}
	var decls []ast.Decl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		d := p.parseDecl()
		if d != nil {
			decls = append(decls, d)
		} else {
			p.synchronize()
		}
	}
	p.expect(token.RBrace, "'}'")
	return ast.NewModDecl(p.reg, loc, name.Value, decls)
}

func (p *Parser) parseUseDecl() ast.Decl {
	loc := p.cur().Loc
	p.advance() // use
	var path []string
	first, _ := p.expect(token.Ident, "module path segment")
	path = append(path, first.Value)
	for p.at(token.Dot) {
		p.advance()
		seg, ok := p.expect(token.Ident, "module path segment")
		if !ok {
			break
		}
		path = append(path, seg.Value)
	}
	p.expect(token.Semicolon, "';'")
	return ast.NewUseDecl(p.reg, loc, path)
}

func (p *Parser) parseGenericParams() []*ast.GenericParam {
	if !p.at(token.Lt2) {
		return nil
	}
	p.advance() // .<
	var params []*ast.GenericParam
	for !p.at(token.Gt) && !p.at(token.EOF) {
		name, ok := p.expect(token.Ident, "generic parameter name")
		if !ok {
			break
		}
		params = append(params, ast.NewGenericParam(p.reg, name.Loc, name.Value))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.Gt, "'>'")
	return params
}

func (p *Parser) parseFunDecl(pub bool) ast.Decl {
	loc := p.cur().Loc
	extern := false
	if p.at(token.KwExtern) {
		extern = true
		p.advance()
	}
	p.expect(token.KwFun, "'fun'")
	name, _ := p.expect(token.Ident, "function name")
	d := ast.NewFunDecl(p.reg, loc, name.Value)
	d.Pub = pub
	d.Extern = extern
	d.Generics = p.parseGenericParams()

	p.expect(token.LParen, "'('")
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Ellipsis) {
			p.advance()
			d.IsVararg = true
			break
		}
		pname, ok := p.expect(token.Ident, "parameter name")
		if !ok {
			break
		}
		p.expect(token.Colon, "':'")
		ptyp := p.parseType()
		d.Params = append(d.Params, ast.NewParam(p.reg, pname.Loc, pname.Value, ptyp))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")

	if p.at(token.Arrow) {
		p.advance()
		d.Return = p.parseType()
	}

	if extern || p.at(token.Semicolon) {
		p.expect(token.Semicolon, "';'")
		return d
	}
	d.Body = p.parseBlock()
	return d
}

func (p *Parser) parseStructDecl(pub bool) ast.Decl {
	loc := p.cur().Loc
	p.advance() // struct
	name, _ := p.expect(token.Ident, "struct name")
	d := ast.NewStructDecl(p.reg, loc, name.Value)
	d.Pub = pub
	d.Generics = p.parseGenericParams()
	p.expect(token.LBrace, "'{'")
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fname, ok := p.expect(token.Ident, "field name")
		if !ok {
			p.synchronize()
			continue
		}
		p.expect(token.Colon, "':'")
		ftyp := p.parseType()
		d.Fields = append(d.Fields, ast.NewStructField(p.reg, fname.Loc, fname.Value, ftyp))
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RBrace, "'}'")
	return d
}

func (p *Parser) parseUnionDecl(pub bool) ast.Decl {
	loc := p.cur().Loc
	p.advance() // union
	name, _ := p.expect(token.Ident, "union name")
	d := ast.NewUnionDecl(p.reg, loc, name.Value)
	d.Pub = pub
	p.expect(token.LBrace, "'{'")
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fname, ok := p.expect(token.Ident, "field name")
		if !ok {
			p.synchronize()
			continue
		}
		p.expect(token.Colon, "':'")
		ftyp := p.parseType()
		d.Fields = append(d.Fields, ast.NewStructField(p.reg, fname.Loc, fname.Value, ftyp))
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RBrace, "'}'")
	return d
}

func (p *Parser) parseEnumDecl(pub bool) ast.Decl {
	loc := p.cur().Loc
	p.advance() // enum
	name, _ := p.expect(token.Ident, "enum name")
	d := ast.NewEnumDecl(p.reg, loc, name.Value)
	d.Pub = pub
	p.expect(token.LBrace, "'{'")
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		cname, ok := p.expect(token.Ident, "enum constant name")
		if !ok {
			p.synchronize()
			continue
		}
		var value ast.Expr
		if p.at(token.Assign) {
			p.advance()
			value = p.parseExpr()
		}
		d.Constants = append(d.Constants, ast.NewEnumConstant(p.reg, cname.Loc, cname.Value, value))
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RBrace, "'}'")
	return d
}

func (p *Parser) parseVarDecl(pub bool) ast.Decl {
	loc := p.cur().Loc
	p.advance() // var
	mut := false
	if p.at(token.KwMut) {
		mut = true
		p.advance()
	}
	name, _ := p.expect(token.Ident, "variable name")
	var typ ast.Type
	if p.at(token.Colon) {
		p.advance()
		typ = p.parseType()
	}
	var init ast.Expr
	if p.at(token.Assign) {
		p.advance()
		init = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")
	d := ast.NewVarDecl(p.reg, loc, name.Value, typ, init)
	d.Pub = pub
	d.Mut = mut
	return d
}

func (p *Parser) parseConstDecl(pub bool) ast.Decl {
	loc := p.cur().Loc
	p.advance() // const
	name, _ := p.expect(token.Ident, "constant name")
	var typ ast.Type
	if p.at(token.Colon) {
		p.advance()
		typ = p.parseType()
	}
	p.expect(token.Assign, "'='")
	init := p.parseExpr()
	p.expect(token.Semicolon, "';'")
	d := ast.NewConstDecl(p.reg, loc, name.Value, typ, init)
	d.Pub = pub
	return d
}
