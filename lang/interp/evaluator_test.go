package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
)

// run parses, resolves, and interprets src against a fresh Evaluator,
// returning whatever it printed to stdout.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	stmts, err := parser.Parse(src)
	require.NoError(t, err)

	bindings, _, err := resolver.Resolve(stmts, 0)
	require.NoError(t, err)

	var out bytes.Buffer
	eval := interp.New(&out, interp.Limits{})
	err = eval.Interpret(stmts, bindings)
	return out.String(), err
}

func TestInterpretArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpretClosureCapturesCounterState(t *testing.T) {
	out, err := run(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestInterpretShadowingIsResolvedStaticallyNotDynamically(t *testing.T) {
	// Classic lexical-vs-dynamic-scope example: the inner "a" printed by
	// showA always refers to the global, never whatever "a" is in scope at
	// the *call* site, because the closure was captured where showA was
	// declared.
	out, err := run(t, `
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
	assert.Equal(t, "global\nglobal\n", out)
}

func TestInterpretClassInitAndMethod(t *testing.T) {
	out, err := run(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print "Hello, " + this.name + "!";
			}
		}
		var g = Greeter("world");
		g.greet();
	`)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", out)
}

func TestInterpretInheritanceOverridesMethod(t *testing.T) {
	out, err := run(t, `
		class Animal {
			speak() {
				print "...";
			}
		}
		class Dog < Animal {
			speak() {
				print "Woof";
			}
		}
		Dog().speak();
	`)
	require.NoError(t, err)
	assert.Equal(t, "Woof\n", out)
}

func TestInterpretInheritanceFallsBackToSuperclassMethod(t *testing.T) {
	out, err := run(t, `
		class Animal {
			speak() {
				print "...";
			}
		}
		class Dog < Animal {}
		Dog().speak();
	`)
	require.NoError(t, err)
	assert.Equal(t, "...\n", out)
}

func TestInterpretInitializerAlwaysReturnsInstanceRegardlessOfBody(t *testing.T) {
	out, err := run(t, `
		class Thing {
			init() {
				return;
			}
		}
		var t = Thing();
		print t;
	`)
	require.NoError(t, err)
	assert.Equal(t, "Thing instance\n", out)
}

func TestInterpretRuntimeTypeErrorOnBadOperand(t *testing.T) {
	_, err := run(t, `print -"nope";`)
	require.Error(t, err)
	rerr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Error(), "Operand must be a number.")
}

func TestInterpretOperandsMustBeNumbersForSubtraction(t *testing.T) {
	_, err := run(t, `print 1 - "x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be numbers.")
}

func TestInterpretPlusRejectsMixedOperandTypes(t *testing.T) {
	_, err := run(t, `print 1 + "x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
}

func TestInterpretOrShortCircuitsSkippingSideEffect(t *testing.T) {
	out, err := run(t, `
		fun sideEffect() {
			print "called";
			return true;
		}
		print true or sideEffect();
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
	assert.False(t, strings.Contains(out, "called"))
}

func TestInterpretAndShortCircuitsSkippingSideEffect(t *testing.T) {
	out, err := run(t, `
		fun sideEffect() {
			print "called";
			return true;
		}
		print false and sideEffect();
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
	assert.False(t, strings.Contains(out, "called"))
}

func TestInterpretCallArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		fun add(a, b) { return a + b; }
		add(1);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print missing;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'.")
}

func TestInterpretOnlyInstancesHaveProperties(t *testing.T) {
	_, err := run(t, `
		var n = 1;
		print n.foo;
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only instances have properties.")
}

func TestInterpretUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		class Empty {}
		print Empty().missing;
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined property 'missing'.")
}

func TestInterpretGlobalsPersistAcrossInterpretCalls(t *testing.T) {
	stmts1, err := parser.Parse(`var x = 1;`)
	require.NoError(t, err)
	bindings1, _, err := resolver.Resolve(stmts1, 0)
	require.NoError(t, err)

	var out bytes.Buffer
	eval := interp.New(&out, interp.Limits{})
	require.NoError(t, eval.Interpret(stmts1, bindings1))

	stmts2, err := parser.Parse(`print x + 1;`)
	require.NoError(t, err)
	bindings2, _, err := resolver.Resolve(stmts2, 0)
	require.NoError(t, err)
	require.NoError(t, eval.Interpret(stmts2, bindings2))

	assert.Equal(t, "2\n", out.String())
}

func TestInterpretMaxCallDepthReportsStackOverflow(t *testing.T) {
	stmts, err := parser.Parse(`
		fun recurse() {
			recurse();
		}
		recurse();
	`)
	require.NoError(t, err)
	bindings, _, err := resolver.Resolve(stmts, 0)
	require.NoError(t, err)

	var out bytes.Buffer
	eval := interp.New(&out, interp.Limits{MaxCallDepth: 10})
	err = eval.Interpret(stmts, bindings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stack overflow.")
}
