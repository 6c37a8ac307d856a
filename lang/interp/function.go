package interp

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/values"
)

// UserFn is a Lox function or method: a declaration plus the environment
// captured at the point the Function statement was executed, not at parse
// time — this is what lets a closure see the bindings in scope when it was
// declared. It implements values.Callable by closing over the *Evaluator
// that created it, rather than taking one as a Call parameter — that keeps
// values.Callable's signature usable by plain values like values.NativeFn
// that need no evaluator at all.
type UserFn struct {
	decl          *ast.Function
	closure       *Environment
	isInitializer bool
	eval          *Evaluator
}

func newUserFn(decl *ast.Function, closure *Environment, isInitializer bool, eval *Evaluator) *UserFn {
	return &UserFn{decl: decl, closure: closure, isInitializer: isInitializer, eval: eval}
}

func (f *UserFn) Type() string   { return "function" }
func (f *UserFn) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }
func (f *UserFn) Arity() int     { return len(f.decl.Params) }

// Bind returns a copy of f whose closure is a new scope binding "this" to
// instance, enclosed by f's original closure: a one-slot environment
// {this: instance} wrapping the original method closure.
func (f *UserFn) Bind(instance *Instance) *UserFn {
	env := NewChild(f.closure)
	env.Define("this", instance)
	return newUserFn(f.decl, env, f.isInitializer, f.eval)
}

// Call executes f's body in a fresh scope enclosed by its closure, with
// parameters bound to args. A returnSignal raised inside the body is
// converted to that value; falling off the end of the body yields nil. An
// initializer always yields the bound "this", regardless of what (if
// anything) its body returns.
func (f *UserFn) Call(args []values.Value) (values.Value, error) {
	env := NewChild(f.closure)
	for i, p := range f.decl.Params {
		env.Define(p.Lexeme, args[i])
	}

	result, err := f.eval.callBody(f.decl.Body, env)
	if f.isInitializer {
		this, _ := f.closure.GetAt(0, "this")
		return this, err
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		return values.NilValue, nil
	}
	return result, nil
}

var _ values.Callable = (*UserFn)(nil)
