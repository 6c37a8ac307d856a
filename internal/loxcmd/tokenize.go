package loxcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/scanner"
)

// Tokenize runs the scanner phase over each file and prints the resulting
// tokens, one per line.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) == 0 {
		return &usageError{"tokenize: at least one file must be provided"}
	}

	var lastErr error
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return &usageError{err.Error()}
		}

		toks, err := scanner.Scan(string(src))
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%d: %s %q\n", tok.Line, tok.Kind, tok.Lexeme)
		}
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			lastErr = err
		}
	}
	return lastErr
}
