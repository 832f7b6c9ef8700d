// Package token defines the token kinds and Token value produced by
// the lexer boundary and consumed by the parser. Categories mirror
// the four-way split the lexer side of this compiler has always used
// ("KEY", "ID", "PUNCT", "LIT"), kept here as a typed enum instead of
// the teacher's raw strings.
package token

import "github.com/Baleg00/tau/internal/source"

// Kind is the specific lexical category of a Token.
type Kind int

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLit
	FloatLit
	StrLit
	CharLit
	BoolLit

	// Keywords
	KwMod
	KwUse
	KwFun
	KwStruct
	KwUnion
	KwEnum
	KwVar
	KwConst
	KwParam
	KwGeneric
	KwIf
	KwElse
	KwFor
	KwWhile
	KwDoWhile
	KwBreak
	KwContinue
	KwReturn
	KwYield
	KwDefer
	KwAs
	KwIs
	KwSizeof
	KwAlignof
	KwTypeof
	KwNull
	KwTrue
	KwFalse
	KwMut
	KwRef
	KwSelf
	KwExtern
	KwPub

	// Punctuation / operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	Arrow     // ->
	FatArrow  // =>
	Dot
	DotDot
	Ellipsis
	Question
	QuestionQuestion
	Plus
	PlusPlus
	PlusEq
	Minus
	MinusMinus
	MinusEq
	Star
	StarEq
	Slash
	SlashEq
	Percent
	PercentEq
	Amp
	AmpAmp
	AmpEq
	Pipe
	PipePipe
	PipeEq
	Caret
	CaretEq
	Tilde
	Bang
	BangEq
	Assign
	Eq
	Lt
	LtEq
	Shl
	ShlEq
	Gt
	GtEq
	Shr
	ShrEq
	Lt2 // generic specialization opener: .<
)

var keywords = map[string]Kind{
	"mod": KwMod, "use": KwUse, "fun": KwFun, "struct": KwStruct,
	"union": KwUnion, "enum": KwEnum, "var": KwVar, "const": KwConst,
	"param": KwParam, "generic": KwGeneric, "if": KwIf, "else": KwElse,
	"for": KwFor, "while": KwWhile, "do_while": KwDoWhile, "break": KwBreak,
	"continue": KwContinue, "return": KwReturn, "yield": KwYield,
	"defer": KwDefer, "as": KwAs, "is": KwIs, "sizeof": KwSizeof,
	"alignof": KwAlignof, "typeof": KwTypeof, "null": KwNull,
	"true": KwTrue, "false": KwFalse, "mut": KwMut, "ref": KwRef,
	"self": KwSelf, "extern": KwExtern, "pub": KwPub,
}

// Lookup returns the keyword Kind for ident, and ok=false if ident is
// not a reserved word (the caller should treat it as Ident instead).
func Lookup(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Token is a single lexical unit together with its source location
// and literal text.
type Token struct {
	Kind  Kind
	Value string
	Loc   source.Location
}

func (t Token) String() string {
	return t.Value
}

// IsKeyword reports whether k is one of the reserved-word kinds.
func IsKeyword(k Kind) bool {
	return k >= KwMod && k <= KwPub
}
