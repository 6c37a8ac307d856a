package values

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// List is a growable sequence of values, exposed to Lox as a value with
// three properties accessed via Get: push (method, arity 1), pop (method,
// arity 0), and len (number field, a snapshot of the current length).
// Bracket indexing is deliberately not implemented: the parser's grammar has
// no index-expression production, so there is no syntax that could ever
// reach a List.Index method (see DESIGN.md).
type List struct {
	elements []Value
}

// NewList returns an empty list.
func NewList() *List { return &List{} }

func (l *List) Type() string { return "list" }

func (l *List) String() string {
	parts := make([]string, len(l.elements))
	for i, e := range l.elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Attr implements values.HasAttrs. "push" and "pop" are returned as
// NativeFn values bound to this list via closure; "len" is resolved
// immediately to the current length rather than returned as a callable.
func (l *List) Attr(name string) (Value, bool) {
	switch name {
	case "len":
		return Number(len(l.elements)), true
	case "push":
		return &NativeFn{
			Name: "push",
			Args: 1,
			Impl: func(args []Value) (Value, error) {
				l.elements = append(l.elements, args[0])
				return NilValue, nil
			},
		}, true
	case "pop":
		return &NativeFn{
			Name: "pop",
			Args: 0,
			Impl: func(args []Value) (Value, error) {
				if len(l.elements) == 0 {
					return nil, fmt.Errorf("Cannot pop from empty list.")
				}
				last := l.elements[len(l.elements)-1]
				l.elements = l.elements[:len(l.elements)-1]
				return last, nil
			},
		}, true
	default:
		return nil, false
	}
}

// Elements returns a defensive copy of l's backing slice, safe for a caller
// to range over without observing later pushes/pops.
func (l *List) Elements() []Value { return slices.Clone(l.elements) }

var _ HasAttrs = (*List)(nil)
