// Package resolver implements the static, depth-annotating pass that runs
// between the parser and the evaluator. It walks the statement list once,
// tracking a stack of lexical scopes, and records in a Bindings map how many
// enclosing scopes separate each variable reference from the scope that
// declares it. The evaluator consults that map instead of searching the
// environment chain at run time, which is what makes closures see the
// bindings of the scope they were defined in rather than whatever happens to
// be named the same at call time.
//
// The scope-stack/declare-define/resolveLocal structure, the panic-free
// error-accumulation strategy, and the use of scanner.ErrorList to report
// static errors give every reference a single depth-to-enclosing-scope
// number rather than a richer binding model (cells, free variables, labels):
// Lox's lexical scoping needs nothing more than that one integer per
// reference.
package resolver

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// Mode is a set of bit flags configuring the resolve pass.
type Mode uint

const (
	// NameBlocks assigns a stable, human-readable name ("block#1", "fn#2",
	// "class#3") to every scope it pushes, returned alongside the depth map.
	// It has no effect on Bindings or on evaluation; it exists purely to make
	// the "resolve" debug subcommand's output legible.
	NameBlocks Mode = 1 << iota
)

// Bindings is the resolver's output: for every Variable, Assignment, or This
// expression that refers to a local binding, Bindings[expr.ResolveKey()]
// holds the number of enclosing scopes to walk to find it. An absent entry
// means the reference resolves in the global environment.
type Bindings map[token.Pos]int

// funcKind classifies the function-like context the resolver currently sits
// inside, used to validate "return" and "this" usage.
type funcKind int

const (
	noFunction funcKind = iota
	inFunction
	inMethod
	inInitializer
)

// classKind classifies the class context the resolver currently sits inside.
type classKind int

const (
	noClass classKind = iota
	inClass
)

// Resolve performs the static pass over stmts, returning the populated depth
// map or a scanner.ErrorList if it finds statically detectable semantic
// errors (redeclaration in a non-global scope, return outside a function,
// return-with-value inside an initializer, this outside a class,
// self-inheritance, or reading a local variable from its own initializer).
// When mode includes NameBlocks, the second return value holds one name per
// scope pushed during the walk, in the order they were created; otherwise it
// is nil.
//
// stmts must come from a parse that reported no errors: a pass with errors
// suppresses the passes that would run after it.
func Resolve(stmts []ast.Stmt, mode Mode) (Bindings, []string, error) {
	var r resolver
	r.bindings = make(Bindings)
	r.mode = mode

	for _, s := range stmts {
		r.resolveStmt(s)
	}
	r.errs.Sort()
	if err := r.errs.Err(); err != nil {
		return nil, nil, err
	}
	return r.bindings, r.names, nil
}

// binding tracks whether a declared name has been fully defined yet, used to
// reject "var x = x;" style self-reference in an initializer.
type binding struct {
	defined bool
}

// scope is one lexical block's declared names. The global scope is never
// pushed onto r.scopes; names with no matching scope resolve as globals.
type scope struct {
	names map[string]*binding
}

type resolver struct {
	bindings Bindings
	errs     scanner.ErrorList
	scopes   []*scope
	mode     Mode

	names    []string
	blockSeq int
	fnSeq    int
	classSeq int

	currentFunction funcKind
	currentClass    classKind
}

func (r *resolver) errorf(tok token.Token, format string, args ...interface{}) {
	scanner.AddError(&r.errs, tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), fmt.Sprintf(format, args...))
}

// push opens a new scope, naming it per kind ("block", "fn", "class") when
// NameBlocks is set.
func (r *resolver) push(kind string) {
	r.scopes = append(r.scopes, &scope{names: make(map[string]*binding)})
	if r.mode&NameBlocks == 0 {
		return
	}
	switch kind {
	case "fn":
		r.fnSeq++
		r.names = append(r.names, fmt.Sprintf("fn#%d", r.fnSeq))
	case "class":
		r.classSeq++
		r.names = append(r.names, fmt.Sprintf("class#%d", r.classSeq))
	default:
		r.blockSeq++
		r.names = append(r.names, fmt.Sprintf("block#%d", r.blockSeq))
	}
}

func (r *resolver) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peek() *scope {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare inserts name into the innermost scope as declared-but-not-defined.
// Redeclaration in the same non-global scope is a static error; the global
// scope (an empty scope stack) permits redeclaration, matching a REPL's
// "var x = 1;" run twice.
func (r *resolver) declare(name token.Token) {
	s := r.peek()
	if s == nil {
		return
	}
	if _, ok := s.names[name.Lexeme]; ok {
		r.errorf(name, "Already a variable with this name in this scope.")
	}
	s.names[name.Lexeme] = &binding{}
}

func (r *resolver) define(name token.Token) {
	s := r.peek()
	if s == nil {
		return
	}
	s.names[name.Lexeme] = &binding{defined: true}
}

// resolveLocal searches the scope stack from innermost to outermost for
// name, recording the depth in r.bindings if found. A missing entry leaves
// the reference to be resolved against globals at evaluation time.
func (r *resolver) resolveLocal(expr ast.Resolvable, name token.Token) {
	for depth := len(r.scopes) - 1; depth >= 0; depth-- {
		if _, ok := r.scopes[depth].names[name.Lexeme]; ok {
			r.bindings[expr.ResolveKey()] = len(r.scopes) - 1 - depth
			return
		}
	}
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Expression:
		r.resolveExpr(s.Expr)
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Var:
		r.resolveVar(s)
	case *ast.Block:
		r.push("block")
		r.resolveStmts(s.Stmts)
		r.pop()
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.ElseStmt != nil {
			r.resolveStmt(s.ElseStmt)
		}
	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, inFunction)
	case *ast.Return:
		r.resolveReturn(s)
	case *ast.Class:
		r.resolveClass(s)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", s))
	}
}

// resolveVar implements the variable-in-own-initializer rule: name is
// declared (but not defined) before the initializer is resolved, so a
// reference to name inside its own initializer resolves against the
// not-yet-defined local and is rejected.
func (r *resolver) resolveVar(s *ast.Var) {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveInitializer(s.Name, s.Initializer)
	}
	r.define(s.Name)
}

func (r *resolver) resolveInitializer(name token.Token, init ast.Expr) {
	if sc := r.peek(); sc != nil {
		if b, ok := sc.names[name.Lexeme]; ok && !b.defined {
			var check ast.VisitorFunc
			check = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
				if v, ok := n.(*ast.Variable); ok && dir == ast.VisitEnter && v.Name.Lexeme == name.Lexeme {
					r.errorf(v.Name, "Can't read local variable in its own initializer.")
				}
				return check
			}
			ast.Walk(check, init)
		}
	}
	r.resolveExpr(init)
}

func (r *resolver) resolveReturn(s *ast.Return) {
	if r.currentFunction == noFunction {
		r.errorf(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == inInitializer {
			r.errorf(s.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
}

// resolveFunction pushes a scope for the parameters and body, resolving the
// body under the given funcKind so return/this validation inside it sees the
// right context. The enclosing funcKind is restored on exit, so nested
// functions do not leak their context into their enclosing scope.
func (r *resolver) resolveFunction(fn *ast.Function, kind funcKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosing }()

	r.push("fn")
	defer r.pop()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
}

// resolveClass rejects self-inheritance, then resolves each method with a
// scope binding "this", using Initializer context for a method literally
// named "init" so resolveReturn can reject "return <expr>;" inside it.
func (r *resolver) resolveClass(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = inClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorf(s.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.resolveExpr(s.Superclass)
		}
	}

	r.push("class")
	defer r.pop()
	r.define(thisBinding(s.Name))

	for _, m := range s.Methods {
		kind := inMethod
		if m.Name.Lexeme == "init" {
			kind = inInitializer
		}
		r.resolveFunction(m, kind)
	}
}

// thisBinding synthesizes the token used to seed the "this" name in a
// method's enclosing scope; only its Lexeme is consulted by declare/define.
func thisBinding(near token.Token) token.Token {
	return token.Token{Kind: token.THIS, Lexeme: "this", Line: near.Line, Offset: near.Offset}
}

func (r *resolver) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		// no sub-expressions, nothing to resolve
	case *ast.Grouping:
		r.resolveExpr(e.Expr)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Variable:
		r.resolveLocal(e, e.Name)
	case *ast.Assignment:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.currentClass == noClass {
			r.errorf(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", e))
	}
}
