// Package loxcmd implements the lox binary's command-line surface: flag and
// environment-variable parsing, subcommand dispatch, and exit-code mapping.
// A Cmd struct driven by mna/mainer dispatches to its own
// run/repl/tokenize/parse/resolve methods via reflection (buildCmds).
package loxcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/scanner"
)

const binName = "lox"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s                       Start the REPL.
       %[1]s <script>                Run a script file.
       %[1]s <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the Lox programming language.

The <command> can be one of:
       run <path>                Run a script file (same as the
                                  bare "%[1]s <script>" form).
       repl                      Start the REPL explicitly.
       tokenize <path>...        Run the scanner phase and print the
                                  resulting tokens.
       parse <path>...           Run the parser phase and print the
                                  resulting abstract syntax tree.
       resolve <path>...         Run the parser and resolver phases,
                                  print the names of the scopes
                                  created, then the resulting AST.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Environment variables (override the defaults, never required):
       LOX_MAX_CALL_DEPTH        Maximum nested function call depth
                                  before "Stack overflow." (0, the
                                  default, means unlimited).
       LOX_PROMPT                REPL prompt string (default "> ").
`, binName)
)

// exit codes follow the Unix sysexits convention: 0 success, 64 usage
// error, 65 static (scan/parse/resolve) error, 70 runtime error.
const (
	exitSuccess mainer.ExitCode = 0
	exitUsage   mainer.ExitCode = 64
	exitStatic  mainer.ExitCode = 65
	exitRuntime mainer.ExitCode = 70
)

// usageError marks an argument-count or unknown-command problem detected
// after flag parsing succeeded, so Main can still report exit code 64 for it
// rather than the generic static/runtime codes.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// Cmd holds lox's parsed flags and the Lox program arguments following them.
// Its exported methods taking a context.Context, a mainer.Stdio, and a
// []string and returning an error (Run, Repl, Tokenize, Parse, Resolve) are
// the dispatch table buildCmds assembles.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	// Prompt is read from the "--prompt" flag or, per mainer's EnvPrefix
	// convention, the LOX_PROMPT environment variable.
	Prompt string `flag:"prompt"`

	args []string
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	return nil
}

// Main parses args, dispatches to the requested subcommand (or the REPL
// when none is given, matching the "no arguments" bare invocation), and
// returns the process exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return exitSuccess
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return exitSuccess
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	// Bare invocation with no positional arguments at all starts the REPL
	// directly, bypassing subcommand dispatch.
	if len(c.args) == 0 {
		return exitCodeFor(stdio, c.Repl(ctx, stdio, nil))
	}

	commands := buildCmds(c)
	cmdName := c.args[0]
	if cmdFn, ok := commands[cmdName]; ok {
		return exitCodeFor(stdio, cmdFn(ctx, stdio, c.args[1:]))
	}

	// Not a known subcommand name: treat a single bare argument as a script
	// path, e.g. "lox script.lox".
	if len(c.args) == 1 {
		return exitCodeFor(stdio, c.Run(ctx, stdio, c.args))
	}

	fmt.Fprintf(stdio.Stderr, "Usage: %s [script]\n", binName)
	return exitUsage
}

func exitCodeFor(stdio mainer.Stdio, err error) mainer.ExitCode {
	if err == nil {
		return exitSuccess
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stdio.Stderr, err)
		return exitUsage
	}
	if _, ok := err.(scanner.ErrorList); ok {
		// each command already printed the ErrorList via scanner.PrintError
		return exitStatic
	}
	var rerr *interp.RuntimeError
	if errors.As(err, &rerr) {
		// each command already printed rerr to stderr
		return exitRuntime
	}
	// an unclassified error (e.g. stdin closed mid-REPL-read): not a static
	// error, so treat it as a runtime/environment failure rather than 65.
	fmt.Fprintln(stdio.Stderr, err)
	return exitRuntime
}

// valid commands are those that take a context.Context, a mainer.Stdio, and
// a slice of strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
