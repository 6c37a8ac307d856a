package values

import "strconv"

// Number is a Lox number, always a 64-bit float: Lox has no separate integer
// type and no arbitrary-precision arithmetic.
type Number float64

func (n Number) Type() string { return "number" }

// String formats n the way Go's own shortest round-trip float formatting
// does, except an integer-valued float prints without a fractional part
// ("1" rather than "1e+00" or "1.0").
func (n Number) String() string {
	f := float64(n)
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Bool is a Lox boolean.
type Bool bool

func (b Bool) Type() string   { return "boolean" }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// String is a Lox string. Lox has no escape sequences beyond what the
// scanner reads verbatim, so this is just the decoded literal text.
type String string

func (s String) Type() string   { return "string" }
func (s String) String() string { return string(s) }

// Nil is the singleton Lox nil value.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// NilValue is the single instance of Nil in circulation; equality and
// truthiness checks only ever need to compare against this.
var NilValue = Nil{}
