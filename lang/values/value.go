// Package values defines the runtime object model Lox programs manipulate:
// numbers, strings, booleans, nil, lists, and the Callable capability shared
// by native and user-defined functions. It knows nothing about environments
// or evaluation; lang/interp builds the evaluator, environment chain, and
// the function/class/instance types that need to call back into it on top
// of the types and interfaces defined here.
//
// The capability-interface style (a narrow Value interface plus optional
// marker interfaces like Callable and HasAttrs, queried with a type switch
// or assertion at the use site) keeps new value kinds pluggable without a
// central type-switch growing without bound; fewer capabilities are needed
// here than a general-purpose runtime would need, since Lox has no
// indexing, iteration, or custom binary/unary overloading.
package values

// Value is implemented by every runtime object a Lox program can hold.
type Value interface {
	// String returns the value's print representation, exactly as the
	// "print" statement renders it.
	String() string
	// Type returns a short, stable, lowercase type name for diagnostics
	// ("number", "string", "boolean", "nil", "function", "class", "instance",
	// "list").
	Type() string
}

// Callable is implemented by any value that may appear as the callee of a
// Call expression: NativeFn here, plus UserFn and Class in lang/interp.
type Callable interface {
	Value
	// Arity returns the number of arguments Call expects.
	Arity() int
	// Call invokes the callable with exactly Arity() arguments; the caller
	// (lang/interp's evaluator) is responsible for the arity check before
	// calling. UserFn and Class implementations close over the *Evaluator
	// that constructed them rather than receiving one here, since Callable
	// must stay expressible by plain values like NativeFn that need no
	// evaluator at all.
	Call(args []Value) (Value, error)
}

// HasAttrs is implemented by values whose fields or methods may be read by a
// Get expression (x.f). A (nil, false) result means "no such property";
// lang/interp turns that into an "Undefined property '<name>'." runtime
// error.
type HasAttrs interface {
	Value
	Attr(name string) (Value, bool)
}

// HasSetField is implemented by values whose fields may be written by a Set
// expression (x.f = v).
type HasSetField interface {
	HasAttrs
	SetAttr(name string, v Value) error
}

// Truthy reports Lox's truthiness rule: nil and false are false, everything
// else — including zero, an empty string, and an empty list — is true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports Lox's equality rule: primitives compare structurally
// (including the numeric/string cross-type-within-kind case, e.g. 1 ==
// 1.0), reference values (anything not Number/String/Bool/Nil) compare by
// identity, and values of different concrete Go types are never equal.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Nil:
		_, ok := b.(Nil)
		return ok
	default:
		return a == b
	}
}
