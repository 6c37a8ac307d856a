package resolver_test

import (
	"testing"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSrc(t *testing.T, src string) (resolver.Bindings, []ast.Stmt, error) {
	t.Helper()
	stmts, err := parser.Parse(src)
	require.NoError(t, err)
	b, _, rerr := resolver.Resolve(stmts, 0)
	return b, stmts, rerr
}

func TestResolveClosureCapturesLocal(t *testing.T) {
	bindings, stmts, err := resolveSrc(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
	`)
	require.NoError(t, err)

	outer := stmts[0].(*ast.Function)
	inner := outer.Body[1].(*ast.Function)
	assign := inner.Body[0].(*ast.Expression).Expr.(*ast.Assignment)

	depth, ok := bindings[assign.ResolveKey()]
	require.True(t, ok)
	assert.Equal(t, 1, depth)
}

func TestResolveGlobalReferenceHasNoEntry(t *testing.T) {
	bindings, stmts, err := resolveSrc(t, `
		var g = 1;
		print g;
	`)
	require.NoError(t, err)

	pr := stmts[1].(*ast.Print)
	v := pr.Expr.(*ast.Variable)
	_, ok := bindings[v.ResolveKey()]
	assert.False(t, ok)
}

func TestResolveOwnInitializerIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `
		var a = "outer";
		{
			var a = a;
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't read local variable in its own initializer.")
}

func TestResolveRedeclarationInSameScopeIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `
		fun f() {
			var a = 1;
			var a = 2;
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestResolveRedeclarationAtGlobalScopeIsAllowed(t *testing.T) {
	_, _, err := resolveSrc(t, `
		var a = 1;
		var a = 2;
	`)
	assert.NoError(t, err)
}

func TestResolveReturnOutsideFunctionIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `return 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestResolveReturnValueInsideInitializerIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `
		class Foo {
			init() {
				return 1;
			}
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return a value from an initializer.")
}

func TestResolveBareReturnInsideInitializerIsAllowed(t *testing.T) {
	_, _, err := resolveSrc(t, `
		class Foo {
			init() {
				return;
			}
		}
	`)
	assert.NoError(t, err)
}

func TestResolveThisOutsideClassIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `print this;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'this' outside of a class.")
}

func TestResolveThisInsideMethodResolvesLocally(t *testing.T) {
	bindings, stmts, err := resolveSrc(t, `
		class Foo {
			bar() {
				return this;
			}
		}
	`)
	require.NoError(t, err)

	cls := stmts[0].(*ast.Class)
	ret := cls.Methods[0].Body[0].(*ast.Return)
	this := ret.Value.(*ast.This)

	_, ok := bindings[this.ResolveKey()]
	assert.True(t, ok)
}

func TestResolveSelfInheritanceIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `class Oops < Oops {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A class can't inherit from itself.")
}

func TestResolveNameBlocksAssignsSequentialNames(t *testing.T) {
	stmts, err := parser.Parse(`
		fun f() {
			{
				var x = 1;
			}
		}
	`)
	require.NoError(t, err)

	_, names, err := resolver.Resolve(stmts, resolver.NameBlocks)
	require.NoError(t, err)
	assert.Equal(t, []string{"fn#1", "block#1"}, names)
}

func TestResolveShadowingAcrossScopesIsStaticNotDynamic(t *testing.T) {
	bindings, stmts, err := resolveSrc(t, `
		var a = "global";
		{
			fun showA() {
				print a;
			}
			showA();
			var a = "block";
			showA();
		}
	`)
	require.NoError(t, err)

	blk := stmts[1].(*ast.Block)
	showA := blk.Stmts[0].(*ast.Function)
	printStmt := showA.Body[0].(*ast.Print)
	v := printStmt.Expr.(*ast.Variable)

	_, ok := bindings[v.ResolveKey()]
	assert.False(t, ok, "showA's reference to 'a' must resolve against the global, not the later block-local 'a'")
}
