package scanner_test

import (
	"testing"

	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, err := scanner.Scan("(){},.-+;*!= = == < <= > >= /")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMI, token.STAR,
		token.BANG_EQ, token.EQ, token.EQ_EQ, token.LT, token.LT_EQ,
		token.GT, token.GT_EQ, token.SLASH, token.EOF,
	}, kinds(toks))
}

func TestScanKeywordsAndIdent(t *testing.T) {
	toks, err := scanner.Scan("and class else false for fun if nil or print return super this true var while foo_bar")
	require.NoError(t, err)
	want := []token.Kind{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUN,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.IDENT, token.EOF,
	}
	require.Equal(t, want, kinds(toks))
}

func TestScanLineComment(t *testing.T) {
	toks, err := scanner.Scan("1 // comment\n2")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
}

func TestScanString(t *testing.T) {
	toks, err := scanner.Scan(`"hello world"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Str)
}

func TestScanMultilineString(t *testing.T) {
	toks, err := scanner.Scan("\"a\nb\"\n1")
	require.NoError(t, err)
	require.Equal(t, "a\nb", toks[0].Str)
	require.Equal(t, 3, toks[1].Line)
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := scanner.Scan(`"unterminated`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unterminated string.")
}

func TestScanNumbers(t *testing.T) {
	toks, err := scanner.Scan("123 1.5 1.")
	require.NoError(t, err)
	require.Equal(t, float64(123), toks[0].Num)
	require.Equal(t, 1.5, toks[1].Num)
	// trailing dot is not part of the number (requires a digit after '.')
	require.Equal(t, token.NUMBER, toks[2].Kind)
	require.Equal(t, "1", toks[2].Lexeme)
	require.Equal(t, token.DOT, toks[3].Kind)
}

func TestScanUnexpectedCharacterContinues(t *testing.T) {
	toks, err := scanner.Scan("1 @ 2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unexpected character.")
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
}

func TestScanIdentifierStopsAtNonASCII(t *testing.T) {
	toks, err := scanner.Scan("foo\xc3\xa9")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unexpected character.")
	require.Equal(t, token.IDENT, toks[0].Kind)
	require.Equal(t, "foo", toks[0].Lexeme)
}

func TestTokenOffsetsAreUnique(t *testing.T) {
	toks, err := scanner.Scan("a a a\na")
	require.NoError(t, err)
	seen := make(map[int]bool)
	for _, tok := range toks {
		require.False(t, seen[tok.Offset], "duplicate offset %d", tok.Offset)
		seen[tok.Offset] = true
	}
}
