package loxcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
)

// Resolve runs the scanner, parser, and resolver phases over each file and
// prints one "scope: <name>" line per scope the resolver created (named via
// resolver.NameBlocks, in creation order), followed by the statement tree.
// The tree itself carries no scope names or resolved depths.
func (c *Cmd) Resolve(_ context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) == 0 {
		return &usageError{"resolve: at least one file must be provided"}
	}

	printer := ast.Printer{Output: stdio.Stdout}
	var lastErr error
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return &usageError{err.Error()}
		}

		stmts, err := parser.Parse(string(src))
		if err != nil {
			// A pass with errors suppresses later passes, so resolve never runs
			// over a tree the parser flagged.
			scanner.PrintError(stdio.Stderr, err)
			lastErr = err
			continue
		}

		_, names, err := resolver.Resolve(stmts, resolver.NameBlocks)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			lastErr = err
			continue
		}
		for _, n := range names {
			fmt.Fprintf(stdio.Stdout, "scope: %s\n", n)
		}
		if err := printer.Print(stmts); err != nil {
			return err
		}
	}
	return lastErr
}
