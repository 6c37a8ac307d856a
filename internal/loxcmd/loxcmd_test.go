package loxcmd_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/mainer"

	"github.com/mna/lox/internal/filetest"
	"github.com/mna/lox/internal/loxcmd"
)

var testUpdateTokenizeTests = flag.Bool("test.update-tokenize-tests", false, "If set, replace expected tokenize test results with actual results.")

func TestTokenizeGolden(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			var c loxcmd.Cmd
			_ = c.Tokenize(ctx, stdio, []string{filepath.Join(srcDir, fi.Name())})
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateTokenizeTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateTokenizeTests)
		})
	}
}

func TestParsePrintsStatementTree(t *testing.T) {
	path := filepath.Join("testdata", "in", "print.lox")
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c loxcmd.Cmd
	err := c.Parse(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	assert.Empty(t, ebuf.String())
	assert.Contains(t, buf.String(), "print")
}

func TestResolvePrintsStatementTree(t *testing.T) {
	path := filepath.Join("testdata", "in", "print.lox")
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c loxcmd.Cmd
	err := c.Resolve(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	assert.Empty(t, ebuf.String())
	assert.Contains(t, buf.String(), "print")
}

func TestResolveReportsStaticErrorAndSkipsPrintingTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lox")
	require.NoError(t, writeFile(path, `class Oops < Oops {}`))

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c loxcmd.Cmd
	err := c.Resolve(context.Background(), stdio, []string{path})
	require.Error(t, err)
	assert.Contains(t, ebuf.String(), "Error")
	assert.Empty(t, buf.String())
}

func TestRunExecutesScriptAndPrintsOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.lox")
	require.NoError(t, writeFile(path, `print "hi";`))

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c loxcmd.Cmd
	err := c.Run(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	assert.Equal(t, "hi\n", buf.String())
	assert.Empty(t, ebuf.String())
}

func TestRunRejectsWrongArgumentCount(t *testing.T) {
	var c loxcmd.Cmd
	err := c.Run(context.Background(), mainer.Stdio{}, []string{"a.lox", "b.lox"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "expected exactly one script path"))
}

func TestMainDispatchesBareFileArgumentToRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.lox")
	require.NoError(t, writeFile(path, `print "hi";`))

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	c := loxcmd.Cmd{}
	code := c.Main([]string{"lox", path}, stdio)
	assert.Equal(t, mainer.ExitCode(0), code)
	assert.Equal(t, "hi\n", buf.String())
}

func TestMainReturnsRuntimeExitCodeOnRuntimeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lox")
	require.NoError(t, writeFile(path, `print 1 + "x";`))

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	c := loxcmd.Cmd{}
	code := c.Main([]string{"lox", "run", path}, stdio)
	assert.Equal(t, mainer.ExitCode(70), code)
}

func TestMainReturnsStaticExitCodeOnParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lox")
	require.NoError(t, writeFile(path, `print ;`))

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	c := loxcmd.Cmd{}
	code := c.Main([]string{"lox", "run", path}, stdio)
	assert.Equal(t, mainer.ExitCode(65), code)
}

func TestMainReturnsUsageExitCodeOnTooManyArguments(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	c := loxcmd.Cmd{}
	code := c.Main([]string{"lox", "one.lox", "two.lox"}, stdio)
	assert.Equal(t, mainer.ExitCode(64), code)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
