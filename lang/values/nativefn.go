package values

import "fmt"

// NativeFn is a built-in function implemented in Go. It needs no evaluator
// access, so unlike UserFn and Class (lang/interp) it can live here as a
// plain Value alongside a func closure.
type NativeFn struct {
	Name  string
	Args  int
	Impl  func(args []Value) (Value, error)
	Bound Value // optional receiver, set when binding a method-like native
}

func (n *NativeFn) Type() string   { return "function" }
func (n *NativeFn) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n *NativeFn) Arity() int     { return n.Args }

func (n *NativeFn) Call(args []Value) (Value, error) { return n.Impl(args) }

var _ Callable = (*NativeFn)(nil)
