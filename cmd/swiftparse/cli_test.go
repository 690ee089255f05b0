package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCapturedStdout redirects os.Stdout for the duration of fn and
// returns whatever it wrote. reportResult writes straight to os.Stdout
// rather than cmd.OutOrStdout(), so capturing at the file-descriptor
// level is what a test here needs.
func withCapturedStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func withStdin(t *testing.T, content string, fn func()) {
	t.Helper()
	old := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	os.Stdin = r
	defer func() { os.Stdin = old }()

	fn()
}

func TestModuleSubcommandFromStdin(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"module", "--stdin"})

	var out string
	withStdin(t, "let x = 1\n", func() {
		out = withCapturedStdout(t, func() {
			require.NoError(t, cmd.Execute())
		})
	})
	assert.Contains(t, out, "parsed OK")
}

func TestExprSubcommandFromStdinWithASTDump(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"expr", "--stdin", "--ast"})

	var out string
	withStdin(t, "1 + 2", func() {
		out = withCapturedStdout(t, func() {
			require.NoError(t, cmd.Execute())
		})
	})
	assert.Contains(t, out, "parsed OK")
	assert.Contains(t, out, "ast.Expr")
}

func TestParseSubcommandRequiresFilesOrStdin(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"decl"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestBatchSubcommandRejectsUnknownMode(t *testing.T) {
	cmd := newRootCmd()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.swift")
	require.NoError(t, os.WriteFile(path, []byte("let x = 1\n"), 0o644))

	cmd.SetArgs([]string{"batch", "--mode", "bogus", path})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestBatchSubcommandParsesMultipleFilesCleanly(t *testing.T) {
	cmd := newRootCmd()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.swift")
	b := filepath.Join(dir, "b.swift")
	require.NoError(t, os.WriteFile(a, []byte("let x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("var y = 2\n"), 0o644))

	cmd.SetArgs([]string{"batch", "--mode", "module", "--concurrency", "1", a, b})

	out := withCapturedStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})
	assert.Contains(t, out, "a.swift")
	assert.Contains(t, out, "b.swift")
}
