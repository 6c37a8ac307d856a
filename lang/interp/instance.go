package interp

import (
	"github.com/dolthub/swiss"

	"github.com/mna/lox/lang/values"
)

// Instance is a Lox object: an immutable reference to its Class plus a
// growable set of fields. Field storage uses a swiss.Map for the same
// reason the global Environment does: instances whose fields are read far
// more than written — the common case for object method bodies reading
// "this.x" repeatedly — fit a swiss.Map's access pattern better than Go's
// built-in map once an instance accumulates more than a couple of fields.
// Unlike the global environment, an Instance's map is typically tiny; it is
// still routed through swiss.Map rather than a plain map so the two
// field-storage sites in this codebase share one implementation instead of
// picking a data structure per call site.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, values.Value]
}

func newInstance(class *Class) *Instance {
	return &Instance{class: class, fields: swiss.NewMap[string, values.Value](4)}
}

func (i *Instance) Type() string   { return "instance" }
func (i *Instance) String() string { return i.class.Name + " instance" }

// Attr returns the named field if i has one, otherwise the named method
// bound to i, otherwise (nil, false) — the evaluator turns that into an
// "Undefined property '<name>'." runtime error (see Evaluator.evalGet).
func (i *Instance) Attr(name string) (values.Value, bool) {
	if v, ok := i.fields.Get(name); ok {
		return v, true
	}
	if m, ok := i.class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// SetAttr assigns a field on i, creating it if absent. An instance's fields
// may grow and existing keys may be reassigned, but its class is frozen at
// construction.
func (i *Instance) SetAttr(name string, v values.Value) error {
	i.fields.Put(name, v)
	return nil
}

var (
	_ values.HasAttrs    = (*Instance)(nil)
	_ values.HasSetField = (*Instance)(nil)
)
