package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/source"
	"github.com/Baleg00/tau/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	reg := source.NewRegistry()
	f := reg.LoadString("test.tau", src)
	l := New(f)

	var toks []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestNext_IdentifiersAndKeywordsAreDistinguished(t *testing.T) {
	toks := scanAll(t, "fun counter")
	require.Equal(t, token.KwFun, toks[0].Kind)
	require.Equal(t, token.Ident, toks[1].Kind)
	require.Equal(t, "counter", toks[1].Value)
}

func TestNext_BoolKeywordsAreNotPlainIdentifiers(t *testing.T) {
	toks := scanAll(t, "true false")
	require.Equal(t, token.KwTrue, toks[0].Kind)
	require.Equal(t, token.KwFalse, toks[1].Kind)
}

func TestNext_NumberLiteralsByPrefix(t *testing.T) {
	toks := scanAll(t, "0x1F 0b101 0o17 42 3.14 1e10")
	require.Equal(t, []token.Kind{
		token.IntLit, token.IntLit, token.IntLit,
		token.IntLit, token.FloatLit, token.FloatLit,
	}, []token.Kind{toks[0].Kind, toks[1].Kind, toks[2].Kind, toks[3].Kind, toks[4].Kind, toks[5].Kind})
}

func TestNext_StringLiteralHandlesEscapes(t *testing.T) {
	toks := scanAll(t, `"line\n\t\"quoted\""`)
	require.Equal(t, token.StrLit, toks[0].Kind)
}

func TestNext_UnterminatedStringIsAnError(t *testing.T) {
	reg := source.NewRegistry()
	f := reg.LoadString("test.tau", `"never closed`)
	l := New(f)
	_, err := l.Next()
	require.Error(t, err)
}

func TestNext_LineAndBlockCommentsAreSkipped(t *testing.T) {
	toks := scanAll(t, "a // trailing comment\n/* block\ncomment */ b")
	require.Equal(t, token.Ident, toks[0].Kind)
	require.Equal(t, "a", toks[0].Value)
	require.Equal(t, token.Ident, toks[1].Kind)
	require.Equal(t, "b", toks[1].Value)
}

func TestNext_PunctuationPrefersLongestMatch(t *testing.T) {
	toks := scanAll(t, "-> ... == <= && ..")
	require.Equal(t, []token.Kind{
		token.Arrow, token.Ellipsis, token.Eq, token.LtEq, token.AmpAmp, token.DotDot,
	}, []token.Kind{toks[0].Kind, toks[1].Kind, toks[2].Kind, toks[3].Kind, toks[4].Kind, toks[5].Kind})
}

func TestNext_UnknownCharacterIsAnError(t *testing.T) {
	reg := source.NewRegistry()
	f := reg.LoadString("test.tau", "`")
	l := New(f)
	_, err := l.Next()
	require.Error(t, err)
}

func TestNext_EmptyInputYieldsEOFImmediately(t *testing.T) {
	toks := scanAll(t, "")
	require.Len(t, toks, 1)
	require.Equal(t, token.EOF, toks[0].Kind)
}
