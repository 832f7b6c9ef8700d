// Package lexer scans Tau source text into a stream of tokens. It is
// a library boundary, not a standalone pass: callers get tokens one
// at a time via Next, the way a recursive-descent parser wants them,
// rather than through the teacher's text-pipe-to-stdout design.
//
// The scanning technique (byte-at-a-time over a small lookahead
// buffer, explicit handling of numeric-literal prefixes and escape
// sequences) follows lang/ylex/lexer.go.
package lexer

import (
	"fmt"
	"strings"

	"github.com/Baleg00/tau/internal/source"
	"github.com/Baleg00/tau/internal/token"
)

// Lexer scans a single source.File into tokens.
type Lexer struct {
	file   *source.File
	text   string
	pos    int // byte offset of the next unread rune
	fileID int
}

// New returns a Lexer over f.
func New(f *source.File) *Lexer {
	return &Lexer{file: f, text: f.Text, fileID: f.ID}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.text) {
		return 0
	}
	return l.text[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.text) {
		return 0
	}
	return l.text[l.pos+n]
}

func (l *Lexer) advance() byte {
	b := l.peek()
	l.pos++
	return b
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.text)
}

// Error is a lexical error with an attached location.
type Error struct {
	Loc source.Location
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func (l *Lexer) errorAt(start int, format string, args ...any) *Error {
	return &Error{
		Loc: source.Location{FileID: l.fileID, Offset: start, Length: l.pos - start},
		Msg: fmt.Sprintf(format, args...),
	}
}

// Next scans and returns the next token. At end of input it returns a
// token.EOF token. Scanning errors are returned rather than panicking
// so the parser can recover token-at-a-time.
func (l *Lexer) Next() (token.Token, error) {
	l.skipTrivia()
	start := l.pos
	if l.atEOF() {
		return l.tok(token.EOF, start), nil
	}

	c := l.peek()
	switch {
	case isIdentStart(c):
		return l.scanIdentifier(start)
	case isDigit(c):
		return l.scanNumber(start)
	case c == '"':
		return l.scanString(start)
	case c == '\'':
		return l.scanCharLiteral(start)
	default:
		return l.scanPunct(start)
	}
}

func (l *Lexer) tok(k token.Kind, start int) token.Token {
	return token.Token{
		Kind:  k,
		Value: l.text[start:l.pos],
		Loc:   source.Location{FileID: l.fileID, Offset: start, Length: l.pos - start},
	}
}

func (l *Lexer) skipTrivia() {
	for !l.atEOF() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekN(1) == '/' {
				for !l.atEOF() && l.peek() != '\n' {
					l.advance()
				}
				continue
			}
			if l.peekN(1) == '*' {
				l.advance()
				l.advance()
				for !l.atEOF() && !(l.peek() == '*' && l.peekN(1) == '/') {
					l.advance()
				}
				if !l.atEOF() {
					l.advance()
					l.advance()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) scanIdentifier(start int) (token.Token, error) {
	for !l.atEOF() && isIdentCont(l.peek()) {
		l.advance()
	}
	text := l.text[start:l.pos]
	if k, ok := token.Lookup(text); ok {
		return l.tok(k, start), nil
	}
	if text == "true" || text == "false" {
		return l.tok(token.BoolLit, start), nil
	}
	return l.tok(token.Ident, start), nil
}

// scanNumber handles decimal, 0x/0b/0o-prefixed integers (with '_'
// digit-group separators) and float literals with an optional
// fractional part and exponent, following ylex's scanNumber.
func (l *Lexer) scanNumber(start int) (token.Token, error) {
	isFloat := false
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advance()
		l.advance()
		for !l.atEOF() && (isHexDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
		return l.tok(token.IntLit, start), nil
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advance()
		l.advance()
		for !l.atEOF() && (l.peek() == '0' || l.peek() == '1' || l.peek() == '_') {
			l.advance()
		}
		return l.tok(token.IntLit, start), nil
	}
	if l.peek() == '0' && (l.peekN(1) == 'o' || l.peekN(1) == 'O') {
		l.advance()
		l.advance()
		for !l.atEOF() && ((l.peek() >= '0' && l.peek() <= '7') || l.peek() == '_') {
			l.advance()
		}
		return l.tok(token.IntLit, start), nil
	}
	for !l.atEOF() && (isDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		for !l.atEOF() && (isDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if isDigit(l.peek()) {
			isFloat = true
			for !l.atEOF() && isDigit(l.peek()) {
				l.advance()
			}
		} else {
			l.pos = save
		}
	}
	if isFloat {
		return l.tok(token.FloatLit, start), nil
	}
	return l.tok(token.IntLit, start), nil
}

func (l *Lexer) scanEscape(start int) error {
	if l.atEOF() {
		return l.errorAt(start, "unterminated escape sequence")
	}
	c := l.advance()
	switch c {
	case 'n', 't', 'r', '0', '\\', '\'', '"':
		return nil
	case 'x':
		for i := 0; i < 2; i++ {
			if !isHexDigit(l.peek()) {
				return l.errorAt(start, "invalid hex escape sequence")
			}
			l.advance()
		}
		return nil
	default:
		return l.errorAt(start, "unknown escape sequence '\\%c'", c)
	}
}

func (l *Lexer) scanCharLiteral(start int) (token.Token, error) {
	l.advance() // opening '
	if l.peek() == '\\' {
		l.advance()
		if err := l.scanEscape(start); err != nil {
			return token.Token{}, err
		}
	} else if !l.atEOF() {
		l.advance()
	}
	if l.peek() != '\'' {
		return token.Token{}, l.errorAt(start, "unterminated character literal")
	}
	l.advance()
	return l.tok(token.CharLit, start), nil
}

func (l *Lexer) scanString(start int) (token.Token, error) {
	l.advance() // opening "
	var b strings.Builder
	for {
		if l.atEOF() {
			return token.Token{}, l.errorAt(start, "unterminated string literal")
		}
		if l.peek() == '"' {
			l.advance()
			break
		}
		if l.peek() == '\\' {
			l.advance()
			if err := l.scanEscape(start); err != nil {
				return token.Token{}, err
			}
			continue
		}
		b.WriteByte(l.advance())
	}
	t := l.tok(token.StrLit, start)
	return t, nil
}

type punctRule struct {
	text string
	kind token.Kind
}

// Longest-match-first punctuation table.
var punctRules = []punctRule{
	{"...", token.Ellipsis},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"??", token.QuestionQuestion},
	{"==", token.Eq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AmpAmp},
	{"||", token.PipePipe},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusEq},
	{"-=", token.MinusEq},
	{"*=", token.StarEq},
	{"/=", token.SlashEq},
	{"%=", token.PercentEq},
	{"&=", token.AmpEq},
	{"|=", token.PipeEq},
	{"^=", token.CaretEq},
	{"..", token.DotDot},
	{".<", token.Lt2},
	{"(", token.LParen}, {")", token.RParen},
	{"{", token.LBrace}, {"}", token.RBrace},
	{"[", token.LBracket}, {"]", token.RBracket},
	{",", token.Comma}, {":", token.Colon}, {";", token.Semicolon},
	{".", token.Dot}, {"?", token.Question},
	{"+", token.Plus}, {"-", token.Minus}, {"*", token.Star}, {"/", token.Slash},
	{"%", token.Percent}, {"&", token.Amp}, {"|", token.Pipe}, {"^", token.Caret},
	{"~", token.Tilde}, {"!", token.Bang}, {"=", token.Assign},
	{"<", token.Lt}, {">", token.Gt},
}

func (l *Lexer) scanPunct(start int) (token.Token, error) {
	rest := l.text[start:]
	for _, r := range punctRules {
		if strings.HasPrefix(rest, r.text) {
			l.pos += len(r.text)
			return l.tok(r.kind, start), nil
		}
	}
	l.advance()
	return token.Token{}, l.errorAt(start, "unexpected character %q", l.text[start:l.pos])
}
