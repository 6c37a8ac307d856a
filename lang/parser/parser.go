// Package parser implements the recursive-descent parser that turns a Lox
// token stream into a statement list and expression trees.
//
// Error recovery uses a panic/recover-to-statement-boundary strategy: a
// parse error panics with errPanicMode, which is recovered one statement up
// in Parse's declaration loop, after which the parser resynchronizes by
// skipping tokens until it sees a statement boundary.
package parser

import (
	"errors"
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

const maxArgs = 255

// Parse scans and parses src, returning the top-level statement list. The
// returned error, if non-nil, is a scanner.ErrorList; on error the returned
// statement list should be discarded — a phase that reports errors
// suppresses the phases after it.
func Parse(src string) ([]ast.Stmt, error) {
	toks, serr := scanner.Scan(src)
	if serr != nil {
		// a pass with errors suppresses later passes, so the parser never
		// runs over a token stream the scanner flagged.
		return nil, serr
	}

	var p parser
	p.tokens = toks

	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.safeDeclaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.errs.Sort()
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return stmts, nil
}

type parser struct {
	tokens []token.Token
	cur    int
	errs   scanner.ErrorList
}

var errPanicMode = errors.New("parse error")

func (p *parser) peek() token.Token     { return p.tokens[p.cur] }
func (p *parser) previous() token.Token { return p.tokens[p.cur-1] }
func (p *parser) isAtEnd() bool         { return p.peek().Kind == token.EOF }

func (p *parser) advance() token.Token {
	if !p.isAtEnd() {
		p.cur++
	}
	return p.previous()
}

func (p *parser) check(k token.Kind) bool {
	if p.isAtEnd() {
		return k == token.EOF
	}
	return p.peek().Kind == k
}

func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it is of kind k, otherwise records a
// parse error and unwinds to the nearest statement boundary via panic.
func (p *parser) expect(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAtCurrent(msg)
	panic(errPanicMode)
}

func (p *parser) loc(tok token.Token) string {
	if tok.Kind == token.EOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", tok.Lexeme)
}

func (p *parser) errorAt(tok token.Token, msg string) {
	scanner.AddError(&p.errs, tok.Line, p.loc(tok), msg)
}

func (p *parser) errorAtCurrent(msg string) { p.errorAt(p.peek(), msg) }

// synchronize discards the offending token, then further tokens until it is
// positioned at a likely statement boundary: just after a ';', or at the
// start of a new declaration/statement keyword.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMI {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// safeDeclaration runs declaration, recovering from a parse-error panic by
// synchronizing and returning nil (the caller skips the failed statement).
func (p *parser) safeDeclaration() (s ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	return p.declaration()
}

func (p *parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.funDecl("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	name := p.expect(token.IDENT, "Expect class name.")

	var super *ast.Variable
	if p.match(token.LT) {
		superName := p.expect(token.IDENT, "Expect superclass name.")
		super = &ast.Variable{Name: superName}
	}

	p.expect(token.LBRACE, "Expect '{' before class body.")
	var methods []*ast.Function
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.expect(token.RBRACE, "Expect '}' after class body.")

	return &ast.Class{Name: name, Superclass: super, Methods: methods}
}

func (p *parser) funDecl(kind string) ast.Stmt {
	return p.function(kind)
}

func (p *parser) function(kind string) *ast.Function {
	name := p.expect(token.IDENT, "Expect "+kind+" name.")
	p.expect(token.LPAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAtCurrent(fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.expect(token.IDENT, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "Expect ')' after parameters.")
	p.expect(token.LBRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.Function{Name: name, Params: params, Body: body}
}

func (p *parser) varDecl() ast.Stmt {
	name := p.expect(token.IDENT, "Expect variable name.")
	var init ast.Expr
	if p.match(token.EQ) {
		init = p.expression()
	}
	p.expect(token.SEMI, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.check(token.LBRACE):
		lbrace := p.advance()
		stmts := p.block()
		return &ast.Block{Lbrace: lbrace, Stmts: stmts, Rbrace: p.previous()}
	default:
		return p.exprStmt()
	}
}

// block parses "{" already consumed by the caller? No: block parses the
// statement list up to (not including) the closing '}', which it consumes.
// Callers that need the braces themselves (for Block.Span) handle them
// around the call; function bodies only need the statement list.
func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if s := p.safeDeclaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBRACE, "Expect '}' after block.")
	return stmts
}

func (p *parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.expect(token.SEMI, "Expect ';' after expression.")
	return &ast.Expression{Expr: expr}
}

func (p *parser) printStmt() ast.Stmt {
	kw := p.previous()
	expr := p.expression()
	p.expect(token.SEMI, "Expect ';' after value.")
	return &ast.Print{Keyword: kw, Expr: expr}
}

func (p *parser) returnStmt() ast.Stmt {
	kw := p.previous()
	var val ast.Expr
	if !p.check(token.SEMI) {
		val = p.expression()
	}
	p.expect(token.SEMI, "Expect ';' after return value.")
	return &ast.Return{Keyword: kw, Value: val}
}

func (p *parser) ifStmt() ast.Stmt {
	kw := p.previous()
	p.expect(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.expect(token.RPAREN, "Expect ')' after if condition.")
	then := p.statement()
	var elseStmt ast.Stmt
	if p.match(token.ELSE) {
		elseStmt = p.statement()
	}
	return &ast.If{Keyword: kw, Cond: cond, Then: then, ElseStmt: elseStmt}
}

func (p *parser) whileStmt() ast.Stmt {
	kw := p.previous()
	p.expect(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.expect(token.RPAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Keyword: kw, Cond: cond, Body: body}
}

// forStmt desugars "for (init; cond; inc) body" into
// "{ init; while (cond) { body; inc; } }" at parse time. This loses the
// original token positions for diagnostics raised inside the desugared loop
// body, a tradeoff accepted in exchange for keeping the evaluator free of a
// dedicated for-loop case.
func (p *parser) forStmt() ast.Stmt {
	kw := p.previous()
	p.expect(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMI):
		init = nil
	case p.check(token.VAR):
		p.advance()
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMI) {
		cond = p.expression()
	}
	p.expect(token.SEMI, "Expect ';' after loop condition.")

	var inc ast.Expr
	if !p.check(token.RPAREN) {
		inc = p.expression()
	}
	rparen := p.expect(token.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if inc != nil {
		body = &ast.Block{Lbrace: kw, Rbrace: rparen, Stmts: []ast.Stmt{body, &ast.Expression{Expr: inc}}}
	}
	if cond == nil {
		cond = &ast.Literal{Tok: kw, Value: true}
	}
	body = &ast.While{Keyword: kw, Cond: cond, Body: body}

	if init != nil {
		body = &ast.Block{Lbrace: kw, Rbrace: rparen, Stmts: []ast.Stmt{init, body}}
	}
	return body
}
