package loxcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
)

// Run executes a single script file, starting from a fresh global
// environment. It is the subcommand form of the bare "one argument -> file
// path" invocation.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		return &usageError{fmt.Sprintf("run: expected exactly one script path, got %d", len(args))}
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return &usageError{err.Error()}
	}

	limits, err := interp.LimitsFromEnv()
	if err != nil {
		return &usageError{err.Error()}
	}

	eval := interp.New(stdio.Stdout, limits)
	return runSource(ctx, stdio, eval, string(src))
}

// runSource scans, parses, resolves, and interprets src against eval,
// printing static errors and runtime errors to stdio.Stderr. It returns the
// underlying error unprinted-again so the caller (Main) can map it to an
// exit code without re-inspecting its text.
func runSource(ctx context.Context, stdio mainer.Stdio, eval *interp.Evaluator, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stmts, err := parser.Parse(src)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}

	bindings, _, err := resolver.Resolve(stmts, 0)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}

	if err := eval.Interpret(stmts, bindings); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return nil
}
