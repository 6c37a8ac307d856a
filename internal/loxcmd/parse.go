package loxcmd

import (
	"context"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/scanner"
)

// Parse runs the scanner and parser phases over each file and prints the
// resulting statement tree.
func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) == 0 {
		return &usageError{"parse: at least one file must be provided"}
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
			scanner.PrintError(stdio.Stderr, err)
			lastErr = err
			continue
		}
		if err := printer.Print(stmts); err != nil {
			return err
		}
	}
	return lastErr
}
