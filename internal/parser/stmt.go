package parser

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/token"
)

func (p *Parser) parseBlock() *ast.BlockStmt {
	loc := p.cur().Loc
	p.expect(token.LBrace, "'{'")
	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		} else {
			p.synchronize()
		}
		if p.bag.Full() {
			break
		}
	}
	p.expect(token.RBrace, "'}'")
	return ast.NewBlockStmt(p.reg, loc, stmts)
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwYield:
		return p.parseYield()
	case token.KwBreak:
		loc := p.advance().Loc
		p.expect(token.Semicolon, "';'")
		return ast.NewBreakStmt(p.reg, loc)
	case token.KwContinue:
		loc := p.advance().Loc
		p.expect(token.Semicolon, "';'")
		return ast.NewContinueStmt(p.reg, loc)
	case token.KwDefer:
		loc := p.advance().Loc
		body := p.parseStmt()
		if body == nil {
			return nil
		}
		return ast.NewDeferStmt(p.reg, loc, body)
	case token.KwVar:
		d := p.parseVarDecl(false)
		if d == nil {
			return nil
		}
		return d.(*ast.VarDecl)
	case token.KwConst:
		d := p.parseConstDecl(false)
		if d == nil {
			return nil
		}
		return d.(*ast.ConstDecl)
	case token.Semicolon:
		loc := p.advance().Loc
		return ast.NewExprStmt(p.reg, loc, nil)
	default:
		loc := p.cur().Loc
		e := p.parseExpr()
		p.expect(token.Semicolon, "';'")
		return ast.NewExprStmt(p.reg, loc, e)
	}
}

func (p *Parser) parseIf() ast.Stmt {
	loc := p.advance().Loc // if
	cond := p.parseExpr()
	then := p.parseBlock()
	var els ast.Stmt
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIfStmt(p.reg, loc, cond, then, els)
}

func (p *Parser) parseWhile() ast.Stmt {
	loc := p.advance().Loc // while
	cond := p.parseExpr()
	body := p.parseBlock()
	return ast.NewWhileStmt(p.reg, loc, cond, body)
}

func (p *Parser) parseFor() ast.Stmt {
	loc := p.advance().Loc // for
	p.expect(token.LParen, "'('")
	var init ast.Stmt
	if !p.at(token.Semicolon) {
		init = p.parseStmt()
	} else {
		p.advance()
	}
	var cond ast.Expr
	if !p.at(token.Semicolon) {
		cond = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")
	var post ast.Stmt
	if !p.at(token.RParen) {
		postLoc := p.cur().Loc
		post = ast.NewExprStmt(p.reg, postLoc, p.parseExpr())
	}
	p.expect(token.RParen, "')'")
	body := p.parseBlock()
	return ast.NewForStmt(p.reg, loc, init, cond, post, body)
}

func (p *Parser) parseReturn() ast.Stmt {
	loc := p.advance().Loc // return
	var value ast.Expr
	if !p.at(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")
	return ast.NewReturnStmt(p.reg, loc, value)
}

func (p *Parser) parseYield() ast.Stmt {
	loc := p.advance().Loc // yield
	value := p.parseExpr()
	p.expect(token.Semicolon, "';'")
	return ast.NewYieldStmt(p.reg, loc, value)
}
