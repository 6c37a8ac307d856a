package interp

import "fmt"

// RuntimeError is raised by the evaluator for failures that can only be
// detected while running a program (undefined variables, type mismatches,
// arity mismatches, and so on), as opposed to the static scanner.ErrorList
// produced by the scan/parse/resolve passes. Keeping the two types distinct
// lets the caller (internal/loxcmd) pick the right exit code without
// inspecting error text.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Line)
}

func newRuntimeError(line int, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
