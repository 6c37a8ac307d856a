package interp

import "github.com/mna/lox/lang/values"

// Class is a Lox class value: a name, an optional superclass for method
// inheritance, and its own methods. It implements values.Callable: "calling"
// a class constructs an Instance.
//
// This implementation omits "super" as a language feature entirely (see
// DESIGN.md): the keyword scans and is reserved, but there is no super
// expression in the grammar, so Class only needs a Superclass reference for
// FindMethod's inheritance fallback, never for a super-expression lookup.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*UserFn
	eval       *Evaluator
}

func newClass(name string, superclass *Class, methods map[string]*UserFn, eval *Evaluator) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods, eval: eval}
}

func (c *Class) Type() string   { return "class" }
func (c *Class) String() string { return c.Name }

// FindMethod looks up name on c, then recursively on its superclass chain.
func (c *Class) FindMethod(name string) (*UserFn, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the initializer's arity, or 0 if the class has none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a fresh Instance, then runs its "init" method (if any)
// bound to that instance, and always returns the instance itself — never
// whatever the initializer's body returns.
func (c *Class) Call(args []values.Value) (values.Value, error) {
	inst := newInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(inst).Call(args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

var _ values.Callable = (*Class)(nil)
