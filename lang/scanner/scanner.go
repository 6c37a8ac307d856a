// Package scanner converts Lox source text into a token stream.
//
// The single-pass, byte-indexed design and the error-accumulation strategy
// (keep scanning after an error, collect them all, report together) follow
// the approach of the Go standard library's own scanner:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
package scanner

import (
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	goscanner "go/scanner"
	gotoken "go/token"

	"github.com/mna/lox/lang/token"
)

// Error and ErrorList are re-exported from the standard library's go/scanner
// package: the accumulate-then-report behavior needed here (scan, parse,
// and resolve errors are collected, sorted, and printed together) is
// exactly what go/scanner.ErrorList already implements, so there is no
// reason to reimplement it. The Msg field of each Error is expected to
// already hold the "Error<loc>: <msg>" portion; only the line recorded in
// Pos is used to print the final "[line L] " prefix.
type (
	Error     = goscanner.Error
	ErrorList = goscanner.ErrorList
)

// PrintError prints each error in err (which must be nil or an ErrorList) to
// w, one per line, in the format "[line L] <msg>".
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	list, ok := err.(ErrorList)
	if !ok {
		fmt.Fprintln(w, err)
		return
	}
	for _, e := range list {
		fmt.Fprintf(w, "[line %d] %s\n", e.Pos.Line, e.Msg)
	}
}

// AddError appends a static error at the given line to list, formatting msg
// with a location descriptor: empty, " at end", or " at '<lexeme>'".
func AddError(list *ErrorList, line int, loc, msg string) {
	list.Add(gotoken.Position{Line: line}, fmt.Sprintf("Error%s: %s", loc, msg))
}

// Scan tokenizes src in a single pass and returns the resulting tokens,
// always terminated by a single EOF token, plus any errors encountered. The
// error, if non-nil, is an ErrorList. Errors do not stop scanning.
func Scan(src string) ([]token.Token, error) {
	var s scanner
	s.init(src)
	for {
		tok := s.scan()
		s.tokens = append(s.tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	s.errs.Sort()
	return s.tokens, s.errs.Err()
}

type scanner struct {
	src    []byte
	off    int // byte offset of the next unread byte
	line   int
	tokens []token.Token
	errs   ErrorList
}

func (s *scanner) init(src string) {
	s.src = []byte(src)
	s.off = 0
	s.line = 1
}

func (s *scanner) isAtEnd() bool { return s.off >= len(s.src) }

func (s *scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.src[s.off]
}

func (s *scanner) peekNext() byte {
	if s.off+1 >= len(s.src) {
		return 0
	}
	return s.src[s.off+1]
}

// advance consumes and returns the next Unicode code point, advancing the
// byte offset by its encoded width so that subsequent offsets stay stable
// even for multi-byte runes. Identifier and keyword matching stays
// ASCII-only regardless (see isAlpha).
func (s *scanner) advance() rune {
	if s.isAtEnd() {
		return 0
	}
	b := s.src[s.off]
	if b < utf8.RuneSelf {
		s.off++
		return rune(b)
	}
	r, w := utf8.DecodeRune(s.src[s.off:])
	s.off += w
	return r
}

func (s *scanner) match(expected byte) bool {
	if s.isAtEnd() || s.src[s.off] != expected {
		return false
	}
	s.off++
	return true
}

func (s *scanner) errorf(loc, format string, args ...any) {
	AddError(&s.errs, s.line, loc, fmt.Sprintf(format, args...))
}

func (s *scanner) scan() token.Token {
	s.skipWhitespaceAndComments()

	start := s.off
	line := s.line
	if s.isAtEnd() {
		return token.Token{Kind: token.EOF, Line: line, Offset: start}
	}

	c := s.advance()
	switch {
	case isDigit(byte(c)):
		return s.number(start, line)
	case isAlpha(c):
		return s.identifier(start, line)
	case c == '"':
		return s.string(start, line)
	}

	mk := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Lexeme: string(s.src[start:s.off]), Line: line, Offset: start}
	}

	switch c {
	case '(':
		return mk(token.LPAREN)
	case ')':
		return mk(token.RPAREN)
	case '{':
		return mk(token.LBRACE)
	case '}':
		return mk(token.RBRACE)
	case ',':
		return mk(token.COMMA)
	case '.':
		return mk(token.DOT)
	case '-':
		return mk(token.MINUS)
	case '+':
		return mk(token.PLUS)
	case ';':
		return mk(token.SEMI)
	case '*':
		return mk(token.STAR)
	case '!':
		if s.match('=') {
			return mk(token.BANG_EQ)
		}
		return mk(token.BANG)
	case '=':
		if s.match('=') {
			return mk(token.EQ_EQ)
		}
		return mk(token.EQ)
	case '<':
		if s.match('=') {
			return mk(token.LT_EQ)
		}
		return mk(token.LT)
	case '>':
		if s.match('=') {
			return mk(token.GT_EQ)
		}
		return mk(token.GT)
	case '/':
		return mk(token.SLASH)
	}

	s.errorf("", "Unexpected character.")
	return s.scan()
}

// skipWhitespaceAndComments consumes spaces, tabs, carriage returns,
// newlines (bumping the line counter), and "//" line comments.
func (s *scanner) skipWhitespaceAndComments() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.off++
		case '\n':
			s.line++
			s.off++
		case '/':
			if s.peekNext() == '/' {
				for s.peek() != '\n' && !s.isAtEnd() {
					s.off++
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r) && r < utf8.RuneSelf
}

func isAlphaNumeric(r rune) bool { return isAlpha(r) || isDigit(byte(r)) }

func (s *scanner) number(start, line int) token.Token {
	for isDigit(s.peek()) {
		s.off++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.off++ // consume the '.'
		for isDigit(s.peek()) {
			s.off++
		}
	}
	lexeme := string(s.src[start:s.off])
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.errorf("", "Invalid number literal.")
	}
	return token.Token{Kind: token.NUMBER, Lexeme: lexeme, Line: line, Offset: start, Num: v}
}

func (s *scanner) identifier(start, line int) token.Token {
	// Identifiers are ASCII-only ([A-Za-z0-9_]* after the ASCII-only start
	// matched by isAlpha), so any non-ASCII byte ends the identifier here;
	// there is no multi-byte continuation to decode.
	for !s.isAtEnd() && s.src[s.off] < utf8.RuneSelf && isAlphaNumeric(rune(s.src[s.off])) {
		s.off++
	}
	lexeme := string(s.src[start:s.off])
	return token.Token{Kind: token.LookupIdent(lexeme), Lexeme: lexeme, Line: line, Offset: start}
}

func (s *scanner) string(start, line int) token.Token {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.off++
	}

	if s.isAtEnd() {
		s.errorf("", "Unterminated string.")
		return token.Token{Kind: token.STRING, Lexeme: string(s.src[start:s.off]), Line: line, Offset: start}
	}

	s.off++ // consume the closing quote
	lexeme := string(s.src[start:s.off])
	val := lexeme[1 : len(lexeme)-1]
	return token.Token{Kind: token.STRING, Lexeme: lexeme, Line: line, Offset: start, Str: val}
}
