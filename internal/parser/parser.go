// Package parser implements the recursive-descent declaration/statement
// parser and, for expressions, a direct port of
// original_source/src/stages/parser/shyd.c's Shunting-Yard algorithm
// (see shyd.go in this package).
package parser

import (
	"fmt"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/diag"
	"github.com/Baleg00/tau/internal/lexer"
	"github.com/Baleg00/tau/internal/source"
	"github.com/Baleg00/tau/internal/token"
)

// Parser turns one source.File into an *ast.File. It pre-scans the
// entire token stream up front (this compiler's files are single
// translation units, not an interactive stream), which keeps the
// recursive-descent and Shunting-Yard code free of lexer-error
// plumbing: lexical errors are reported while scanning and the bad
// input is left out of the token stream, and parsing doesn't start at
// all only when those errors fill the bag.
type Parser struct {
	reg  *ast.Registry
	bag  *diag.Bag
	file *source.File

	toks []token.Token
	pos  int
}

// New scans f's tokens and returns a Parser ready to parse
// declarations, reporting any lexical errors into bag.
func New(f *source.File, reg *ast.Registry, bag *diag.Bag) (*Parser, error) {
	lx := lexer.New(f)
	var toks []token.Token
	for {
		t, err := lx.Next()
		if err != nil {
			if lerr, ok := err.(*lexer.Error); ok {
				bag.Report(diag.Diagnostic{
					Severity: diag.SeverityError,
					Title:    lerr.Msg,
					Loc:      lerr.Loc,
				})
				if bag.Full() {
					return nil, fmt.Errorf("parser: too many lexical errors in %s", f.Path)
				}
				continue
			}
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return &Parser{reg: reg, bag: bag, file: f, toks: toks}, nil
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) errorf(loc source.Location, format string, args ...any) {
	p.bag.Report(diag.Diagnostic{
		Severity: diag.SeverityError,
		Title:    fmt.Sprintf(format, args...),
		Loc:      loc,
	})
}

// expect consumes the current token if it has kind k; otherwise it
// reports an error and leaves the current token in place. Skipping
// past bad input is left to synchronize, which ParseFile, parseBlock
// and parseModDecl call when a declaration or statement fails.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf(p.cur().Loc, "expected %s, got %q", what, p.cur().Value)
	return p.cur(), false
}

func (p *Parser) synchronize() {
	if !p.at(token.EOF) {
		p.advance()
	}
}

// ParseFile parses the whole token stream into an *ast.File.
func (p *Parser) ParseFile() *ast.File {
	var decls []ast.Decl
	start := p.cur().Loc
	for !p.at(token.EOF) {
		d := p.parseDecl()
		if d != nil {
			decls = append(decls, d)
		} else {
			p.synchronize()
		}
		if p.bag.Full() {
			break
		}
	}
	return ast.NewFile(p.reg, start, p.file.Path, decls)
}
