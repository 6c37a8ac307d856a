// Package interp ties together the runtime object model (lang/values), the
// lexically-scoped Environment, and the tree-walking Evaluator that drives
// a parsed, resolved Lox program. It is the component that turns "AST plus
// depth map" into side effects and printed output.
package interp

import (
	"io"
	"os"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/values"
)

// Evaluator walks a resolved statement list, executing it against a
// long-lived global environment plus whatever scope is currently active.
// Reusing one Evaluator across multiple calls to Interpret is what gives
// the REPL a meaningful notion of a session: globals and any top-level
// var/fun/class declarations persist between lines.
type Evaluator struct {
	globals  *Environment
	env      *Environment
	bindings resolver.Bindings
	stdout   io.Writer
	limits   Limits
	depth    int
	steps    int
}

// New returns an Evaluator with a fresh global environment. A nil stdout
// defaults to os.Stdout.
func New(stdout io.Writer, limits Limits) *Evaluator {
	if stdout == nil {
		stdout = os.Stdout
	}
	g := NewGlobals()
	return &Evaluator{globals: g, env: g, stdout: stdout, limits: limits}
}

// Interpret resolves bindings against stmts' previously-computed depth map
// and executes the statements in e's current environment. It replaces e's
// bindings for the duration of this call; a REPL driver calls this once per
// parsed line/chunk, passing that chunk's own resolver.Bindings.
//
// stmts must come from a resolve pass that reported no errors: a pass with
// errors suppresses the passes that would run after it.
func (e *Evaluator) Interpret(stmts []ast.Stmt, bindings resolver.Bindings) error {
	e.bindings = bindings
	for _, s := range stmts {
		if err := e.execStmt(s); err != nil {
			if _, ok := err.(*returnSignal); ok {
				// a top-level "return" can only happen if the resolver let it
				// through, which it never does; treat it as a no-op rather than
				// letting the signal leak out as a reported error.
				return nil
			}
			return err
		}
	}
	return nil
}

// returnSignal is how a Return statement unwinds out of the statements
// executing a function body. It satisfies error so it can flow through the
// same (ast.Stmt) error-returning execStmt/callBody plumbing as a genuine
// runtime error, without the user ever observing it as an exception: only
// UserFn.Call (via callBody) is expected to catch it.
type returnSignal struct{ value values.Value }

func (r *returnSignal) Error() string { return "return outside of a function call" }

// callBody executes a function body in env, translating a returnSignal into
// its carried value. Any other error (a *RuntimeError, or a static error
// that somehow reached here) propagates unchanged.
func (e *Evaluator) callBody(body []ast.Stmt, env *Environment) (values.Value, error) {
	prev := e.env
	e.env = env
	defer func() { e.env = prev }()

	e.depth++
	if e.limits.MaxCallDepth > 0 && e.depth > e.limits.MaxCallDepth {
		e.depth--
		return nil, newRuntimeError(0, "Stack overflow.")
	}
	defer func() { e.depth-- }()

	for _, s := range body {
		if err := e.execStmt(s); err != nil {
			if rs, ok := err.(*returnSignal); ok {
				return rs.value, nil
			}
			return nil, err
		}
	}
	return nil, nil
}
