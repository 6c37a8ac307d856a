package loxcmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/interp"
)

// Repl runs the argument-less interactive loop: print the prompt, read one
// line, run it as a program, repeat; EOF on stdin exits with success. A
// single Evaluator persists across lines so top-level var/fun/class
// declarations and side effects accumulate across the session.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, _ []string) error {
	limits, err := interp.LimitsFromEnv()
	if err != nil {
		return &usageError{err.Error()}
	}
	eval := interp.New(stdio.Stdout, limits)

	scan := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, c.Prompt)
		if !scan.Scan() {
			return scan.Err()
		}
		// A line that fails to run is reported but does not end the session:
		// the REPL's whole point is to keep taking input after a mistake.
		_ = runSource(ctx, stdio, eval, scan.Text())
	}
}
