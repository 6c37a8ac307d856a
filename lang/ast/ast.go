// Package ast defines the Lox abstract syntax tree: the tagged expression
// and statement variants produced by lang/parser, annotated in place by
// lang/resolver, and walked by lang/interp.
package ast

import "github.com/mna/lox/lang/token"

// Node is implemented by every AST node. Span returns the node's start and
// end positions as token.Pos values (byte offset plus one), used by the AST
// printer and by diagnostics.
type Node interface {
	Span() (start, end token.Pos)
	Walk(v Visitor)
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Resolvable is implemented by the three expression forms whose identifier
// use must be bound to a lexical depth by the resolver: Variable,
// Assignment, and This. ResolveKey returns the stable, unique-per-occurrence
// key used by the resolver's depth map — the byte offset of the token that
// names the binding.
type Resolvable interface {
	Expr
	ResolveKey() token.Pos
}
