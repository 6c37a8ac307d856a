package interp

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
	"github.com/mna/lox/lang/values"
)

func (e *Evaluator) evalExpr(expr ast.Expr) (values.Value, error) {
	switch expr := expr.(type) {
	case *ast.Literal:
		return e.evalLiteral(expr)
	case *ast.Grouping:
		return e.evalExpr(expr.Expr)
	case *ast.Unary:
		return e.evalUnary(expr)
	case *ast.Binary:
		return e.evalBinary(expr)
	case *ast.Logical:
		return e.evalLogical(expr)
	case *ast.Variable:
		return e.lookupVariable(expr, expr.Name)
	case *ast.This:
		return e.lookupVariable(expr, expr.Keyword)
	case *ast.Assignment:
		return e.evalAssignment(expr)
	case *ast.Call:
		return e.evalCall(expr)
	case *ast.Get:
		return e.evalGet(expr)
	case *ast.Set:
		return e.evalSet(expr)
	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", expr))
	}
}

func (e *Evaluator) evalLiteral(expr *ast.Literal) (values.Value, error) {
	switch v := expr.Value.(type) {
	case nil:
		return values.NilValue, nil
	case float64:
		return values.Number(v), nil
	case string:
		return values.String(v), nil
	case bool:
		return values.Bool(v), nil
	default:
		panic(fmt.Sprintf("interp: unhandled literal value type %T", v))
	}
}

func (e *Evaluator) evalUnary(expr *ast.Unary) (values.Value, error) {
	right, err := e.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Kind {
	case token.MINUS:
		n, ok := right.(values.Number)
		if !ok {
			return nil, newRuntimeError(expr.Op.Line, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return values.Bool(!values.Truthy(right)), nil
	default:
		panic(fmt.Sprintf("interp: unhandled unary operator %v", expr.Op.Kind))
	}
}

func (e *Evaluator) evalLogical(expr *ast.Logical) (values.Value, error) {
	left, err := e.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Kind {
	case token.OR:
		if values.Truthy(left) {
			return left, nil
		}
	case token.AND:
		if !values.Truthy(left) {
			return left, nil
		}
	default:
		panic(fmt.Sprintf("interp: unhandled logical operator %v", expr.Op.Kind))
	}
	return e.evalExpr(expr.Right)
}

func (e *Evaluator) evalBinary(expr *ast.Binary) (values.Value, error) {
	left, err := e.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.EQ_EQ:
		return values.Bool(values.Equal(left, right)), nil
	case token.BANG_EQ:
		return values.Bool(!values.Equal(left, right)), nil
	case token.PLUS:
		if ln, ok := left.(values.Number); ok {
			if rn, ok := right.(values.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(values.String); ok {
			if rs, ok := right.(values.String); ok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(expr.Op.Line, "Operands must be two numbers or two strings.")
	}

	ln, lok := left.(values.Number)
	rn, rok := right.(values.Number)
	if !lok || !rok {
		return nil, newRuntimeError(expr.Op.Line, "Operands must be numbers.")
	}
	switch expr.Op.Kind {
	case token.MINUS:
		return ln - rn, nil
	case token.SLASH:
		return ln / rn, nil
	case token.STAR:
		return ln * rn, nil
	case token.GT:
		return values.Bool(ln > rn), nil
	case token.GT_EQ:
		return values.Bool(ln >= rn), nil
	case token.LT:
		return values.Bool(ln < rn), nil
	case token.LT_EQ:
		return values.Bool(ln <= rn), nil
	default:
		panic(fmt.Sprintf("interp: unhandled binary operator %v", expr.Op.Kind))
	}
}

// lookupVariable resolves a Variable or This node, consulting the depth map
// produced by the resolver before falling back to the global scope. An
// absent depth map entry means "this name resolves in globals", never
// "look for it somewhere between".
func (e *Evaluator) lookupVariable(node ast.Resolvable, name token.Token) (values.Value, error) {
	if depth, ok := e.bindings[node.ResolveKey()]; ok {
		if v, ok := e.env.GetAt(depth, name.Lexeme); ok {
			return v, nil
		}
	} else if v, ok := e.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, newRuntimeError(name.Line, "Undefined variable '%s'.", name.Lexeme)
}

func (e *Evaluator) evalAssignment(expr *ast.Assignment) (values.Value, error) {
	v, err := e.evalExpr(expr.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := e.bindings[expr.ResolveKey()]; ok {
		e.env.AssignAt(depth, expr.Name.Lexeme, v)
		return v, nil
	}
	if e.globals.Assign(expr.Name.Lexeme, v) {
		return v, nil
	}
	return nil, newRuntimeError(expr.Name.Line, "Undefined variable '%s'.", expr.Name.Lexeme)
}

func (e *Evaluator) evalCall(expr *ast.Call) (values.Value, error) {
	callee, err := e.evalExpr(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]values.Value, len(expr.Args))
	for i, a := range expr.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(values.Callable)
	if !ok {
		return nil, newRuntimeError(expr.Paren.Line, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(expr.Paren.Line, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(args)
}

func (e *Evaluator) evalGet(expr *ast.Get) (values.Value, error) {
	obj, err := e.evalExpr(expr.Object)
	if err != nil {
		return nil, err
	}
	holder, ok := obj.(values.HasAttrs)
	if !ok {
		return nil, newRuntimeError(expr.Name.Line, "Only instances have properties.")
	}
	v, ok := holder.Attr(expr.Name.Lexeme)
	if !ok {
		return nil, newRuntimeError(expr.Name.Line, "Undefined property '%s'.", expr.Name.Lexeme)
	}
	return v, nil
}

func (e *Evaluator) evalSet(expr *ast.Set) (values.Value, error) {
	obj, err := e.evalExpr(expr.Object)
	if err != nil {
		return nil, err
	}
	holder, ok := obj.(values.HasSetField)
	if !ok {
		return nil, newRuntimeError(expr.Name.Line, "Only instances have fields.")
	}
	v, err := e.evalExpr(expr.Value)
	if err != nil {
		return nil, err
	}
	if err := holder.SetAttr(expr.Name.Lexeme, v); err != nil {
		return nil, newRuntimeError(expr.Name.Line, "%s", err.Error())
	}
	return v, nil
}
