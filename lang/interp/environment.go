package interp

import (
	"github.com/dolthub/swiss"

	"github.com/mna/lox/lang/values"
)

// Environment is a single lexical scope: a mapping from name to value, plus
// an optional enclosing scope. Scopes form a chain rooted at the global
// environment; multiple closures may share a parent, so Environment values
// are always handled through a pointer and never copied.
//
// The global environment backs its table with a swiss.Map rather than a
// plain Go map: it is long-lived for the REPL's whole session, queried on
// every unqualified name lookup that isn't resolved to a local depth, and
// mutated far less often than it's read — exactly the access pattern
// swiss.Map is built for. Local (block/function) scopes stay plain Go maps:
// they are short-lived and usually hold only a handful of names, where a
// swiss.Map's fixed overhead isn't worth paying.
type Environment struct {
	enclosing *Environment
	values    map[string]values.Value
	globals   *swiss.Map[string, values.Value]
}

// NewGlobals returns a fresh global environment pre-populated with a copy of
// values.Universe, so that binding over or shadowing a native function in
// one Environment never affects another.
func NewGlobals() *Environment {
	g := swiss.NewMap[string, values.Value](uint32(len(values.Universe)))
	for name, fn := range values.Universe {
		g.Put(name, fn)
	}
	return &Environment{globals: g}
}

// NewChild returns a new scope enclosed by e.
func NewChild(e *Environment) *Environment {
	return &Environment{enclosing: e, values: make(map[string]values.Value)}
}

// isGlobal reports whether e is a global (swiss-backed) environment.
func (e *Environment) isGlobal() bool { return e.globals != nil }

// Define inserts or overwrites name in e's own scope.
func (e *Environment) Define(name string, v values.Value) {
	if e.isGlobal() {
		e.globals.Put(name, v)
		return
	}
	e.values[name] = v
}

// Get looks up name in e, then recursively in enclosing scopes.
func (e *Environment) Get(name string) (values.Value, bool) {
	if e.isGlobal() {
		return e.globals.Get(name)
	}
	if v, ok := e.values[name]; ok {
		return v, true
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, false
}

// Assign overwrites name in the nearest enclosing scope that owns it,
// reporting whether such a scope was found.
func (e *Environment) Assign(name string, v values.Value) bool {
	if e.isGlobal() {
		if _, ok := e.globals.Get(name); !ok {
			return false
		}
		e.globals.Put(name, v)
		return true
	}
	if _, ok := e.values[name]; ok {
		e.values[name] = v
		return true
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return false
}

// Ancestor walks depth enclosing hops up from e and returns that scope,
// bypassing a full chain walk for every access — used by GetAt/AssignAt once
// the resolver has already computed depth.
func (e *Environment) Ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt looks up name directly in the scope depth hops up from e, without
// falling further up the chain: the resolver guarantees the binding lives
// exactly there.
func (e *Environment) GetAt(depth int, name string) (values.Value, bool) {
	env := e.Ancestor(depth)
	if env.isGlobal() {
		return env.globals.Get(name)
	}
	v, ok := env.values[name]
	return v, ok
}

// AssignAt overwrites name in the scope depth hops up from e.
func (e *Environment) AssignAt(depth int, name string, v values.Value) {
	e.Ancestor(depth).Define(name, v)
}
