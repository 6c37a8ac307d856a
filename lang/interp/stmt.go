package interp

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/values"
)

func (e *Evaluator) execStmt(s ast.Stmt) error {
	e.steps++
	if e.limits.MaxSteps > 0 && e.steps > e.limits.MaxSteps {
		return newRuntimeError(0, "Execution step limit exceeded.")
	}

	switch s := s.(type) {
	case *ast.Expression:
		_, err := e.evalExpr(s.Expr)
		return err

	case *ast.Print:
		v, err := e.evalExpr(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, v.String())
		return nil

	case *ast.Var:
		v := values.Value(values.NilValue)
		if s.Initializer != nil {
			var err error
			v, err = e.evalExpr(s.Initializer)
			if err != nil {
				return err
			}
		}
		e.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.Block:
		return e.execBlock(s.Stmts, NewChild(e.env))

	case *ast.If:
		cond, err := e.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		switch {
		case values.Truthy(cond):
			return e.execStmt(s.Then)
		case s.ElseStmt != nil:
			return e.execStmt(s.ElseStmt)
		}
		return nil

	case *ast.While:
		for {
			cond, err := e.evalExpr(s.Cond)
			if err != nil {
				return err
			}
			if !values.Truthy(cond) {
				return nil
			}
			if err := e.execStmt(s.Body); err != nil {
				return err
			}
		}

	case *ast.Function:
		fn := newUserFn(s, e.env, false, e)
		e.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.Return:
		v := values.Value(values.NilValue)
		if s.Value != nil {
			var err error
			v, err = e.evalExpr(s.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: v}

	case *ast.Class:
		return e.execClass(s)

	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", s))
	}
}

// execBlock runs stmts in env, which the caller has already set up enclosed
// by whatever scope should contain the block; e.env is restored to its
// prior value on the way out even if a *returnSignal or other error
// propagates through.
func (e *Evaluator) execBlock(stmts []ast.Stmt, env *Environment) error {
	prev := e.env
	e.env = env
	defer func() { e.env = prev }()

	for _, s := range stmts {
		if err := e.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// execClass evaluates a class declaration. The pre-define step lets a
// method body reference its own class by name through closure before the
// Class value exists; since "super" is not a supported expression in this
// implementation (see Class's doc comment), there is no environment scope
// to push for it — inheritance is resolved purely through Class.Superclass
// at method-lookup time.
func (e *Evaluator) execClass(s *ast.Class) error {
	e.env.Define(s.Name.Lexeme, values.NilValue)

	var super *Class
	if s.Superclass != nil {
		v, err := e.evalExpr(s.Superclass)
		if err != nil {
			return err
		}
		var ok bool
		super, ok = v.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name.Line, "Superclass must be a class.")
		}
	}

	methods := make(map[string]*UserFn, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = newUserFn(m, e.env, m.Name.Lexeme == "init", e)
	}

	class := newClass(s.Name.Lexeme, super, methods, e)
	e.env.Define(s.Name.Lexeme, class)
	return nil
}
