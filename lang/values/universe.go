package values

import "time"

// Universe holds the native functions available in every fresh global
// environment. Callers should not mutate this map directly;
// lang/interp.NewGlobals copies it into a fresh Environment per run so that
// binding a name over a native function in one REPL session cannot affect
// another.
var Universe = map[string]*NativeFn{
	"clock": {
		Name: "clock",
		Args: 0,
		Impl: func(args []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	},
}
