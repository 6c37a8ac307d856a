package ast

import "github.com/mna/lox/lang/token"

type (
	// Literal is a literal number, string, boolean, or nil. Value holds the
	// decoded Go value: float64, string, bool, or nil.
	Literal struct {
		Tok   token.Token
		Value interface{}
	}

	// Grouping is a parenthesized expression.
	Grouping struct {
		Lparen token.Token
		Expr   Expr
		Rparen token.Token
	}

	// Unary is a prefix unary expression, e.g. -x or !x.
	Unary struct {
		Op    token.Token
		Right Expr
	}

	// Binary is an arithmetic, comparison, or equality expression.
	Binary struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// Logical is a short-circuiting "and"/"or" expression.
	Logical struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// Variable is a reference to a named binding. Its lexical depth, if any,
	// lives in the resolver's depth map (lang/resolver.Bindings), keyed by
	// ResolveKey; it is never stored on the node itself.
	Variable struct {
		Name token.Token
	}

	// Assignment assigns a value to a named binding.
	Assignment struct {
		Name  token.Token
		Value Expr
	}

	// Call is a function or method call expression.
	Call struct {
		Callee Expr
		Paren  token.Token // closing ')', used for runtime error positions
		Args   []Expr
	}

	// Get reads a property or method from an object.
	Get struct {
		Object Expr
		Name   token.Token
	}

	// Set assigns a field on an object.
	Set struct {
		Object Expr
		Name   token.Token
		Value  Expr
	}

	// This refers to the implicit receiver inside a method body.
	This struct {
		Keyword token.Token
	}
)

func (e *Literal) exprNode()    {}
func (e *Grouping) exprNode()   {}
func (e *Unary) exprNode()      {}
func (e *Binary) exprNode()     {}
func (e *Logical) exprNode()    {}
func (e *Variable) exprNode()   {}
func (e *Assignment) exprNode() {}
func (e *Call) exprNode()       {}
func (e *Get) exprNode()        {}
func (e *Set) exprNode()        {}
func (e *This) exprNode()       {}

func (e *Variable) ResolveKey() token.Pos   { return e.Name.Pos() }
func (e *Assignment) ResolveKey() token.Pos { return e.Name.Pos() }
func (e *This) ResolveKey() token.Pos       { return e.Keyword.Pos() }

var (
	_ Resolvable = (*Variable)(nil)
	_ Resolvable = (*Assignment)(nil)
	_ Resolvable = (*This)(nil)
)

func (e *Literal) Span() (token.Pos, token.Pos) {
	p := e.Tok.Pos()
	return p, p + token.Pos(len(e.Tok.Lexeme))
}
func (e *Literal) Walk(Visitor) {}

func (e *Grouping) Span() (token.Pos, token.Pos) {
	return e.Lparen.Pos(), e.Rparen.Pos() + 1
}
func (e *Grouping) Walk(v Visitor) { Walk(v, e.Expr) }

func (e *Unary) Span() (token.Pos, token.Pos) {
	_, end := e.Right.Span()
	return e.Op.Pos(), end
}
func (e *Unary) Walk(v Visitor) { Walk(v, e.Right) }

func (e *Binary) Span() (token.Pos, token.Pos) {
	start, _ := e.Left.Span()
	_, end := e.Right.Span()
	return start, end
}
func (e *Binary) Walk(v Visitor) { Walk(v, e.Left); Walk(v, e.Right) }

func (e *Logical) Span() (token.Pos, token.Pos) {
	start, _ := e.Left.Span()
	_, end := e.Right.Span()
	return start, end
}
func (e *Logical) Walk(v Visitor) { Walk(v, e.Left); Walk(v, e.Right) }

func (e *Variable) Span() (token.Pos, token.Pos) {
	p := e.Name.Pos()
	return p, p + token.Pos(len(e.Name.Lexeme))
}
func (e *Variable) Walk(Visitor) {}

func (e *Assignment) Span() (token.Pos, token.Pos) {
	start := e.Name.Pos()
	_, end := e.Value.Span()
	return start, end
}
func (e *Assignment) Walk(v Visitor) { Walk(v, e.Value) }

func (e *Call) Span() (token.Pos, token.Pos) {
	start, _ := e.Callee.Span()
	return start, e.Paren.Pos() + 1
}
func (e *Call) Walk(v Visitor) {
	Walk(v, e.Callee)
	for _, a := range e.Args {
		Walk(v, a)
	}
}

func (e *Get) Span() (token.Pos, token.Pos) {
	start, _ := e.Object.Span()
	return start, e.Name.Pos() + token.Pos(len(e.Name.Lexeme))
}
func (e *Get) Walk(v Visitor) { Walk(v, e.Object) }

func (e *Set) Span() (token.Pos, token.Pos) {
	start, _ := e.Object.Span()
	_, end := e.Value.Span()
	return start, end
}
func (e *Set) Walk(v Visitor) { Walk(v, e.Object); Walk(v, e.Value) }

func (e *This) Span() (token.Pos, token.Pos) {
	p := e.Keyword.Pos()
	return p, p + token.Pos(len("this"))
}
func (e *This) Walk(Visitor) {}
