package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janelang/shji/internal/cli/commands"
	"github.com/janelang/shji/internal/cli/config"
	"github.com/janelang/shji/internal/cli/testutil"
	rootutil "github.com/janelang/shji/internal/testutil"
)

// isolate keeps the user's own config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	config.ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "", "version")

	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "SHJI Version "+Version)
}

func TestRootRunsREPLOnPipedInput(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "let x = 6\nx * 7\n.exit\n", "--color", "never")

	require.NoError(t, res.Err)
	assert.Equal(t, "SHJI Version "+Version+"\n6\n42\n", res.Stdout)
	testutil.AssertNoANSI(t, res.Stdout)
}

func TestRootDebugFlag(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "1 + 2\n", "-d", "--color", "never")

	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Lexer Output:")
	assert.Contains(t, res.Stdout, "Reconstructed AST:")
	assert.Contains(t, res.Stdout, "(1 + 2)")
}

func TestRootColorAlways(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "1 / 0\n", "--color", "always")

	require.NoError(t, res.Err)
	assert.True(t, testutil.HasANSI(res.Stderr), "stderr: %q", res.Stderr)
	assert.Contains(t, res.Stderr, "division by zero")
}

func TestRootInvalidColor(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "", "--color", "purple", "version")

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "invalid color mode")
}

func TestRunCommand(t *testing.T) {
	isolate(t)
	path := rootutil.WriteSource(t, "prog.jn", "let a = 2\nlet b = a ^ 5\nb - 1\n")

	res := testutil.ExecuteCommand(t, NewRootCmd(), "", "run", path, "--color", "never")
	require.NoError(t, res.Err)
	assert.Equal(t, "31\n", res.Stdout)
}

func TestRunCommand_Stdin(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "for i in 3 { i }\n", "run", "-")

	require.NoError(t, res.Err)
	assert.NotEmpty(t, strings.TrimSpace(res.Stdout))
}

func TestRunCommand_Failure(t *testing.T) {
	isolate(t)
	path := rootutil.WriteSource(t, "bad.jn", "let a = 1\na + b\n")

	res := testutil.ExecuteCommand(t, NewRootCmd(), "", "run", path)
	require.ErrorIs(t, res.Err, commands.ErrEvaluationFailed)
	assert.Contains(t, res.Stderr, `variable "b" was uninitialized`)
}

func TestRunCommand_DumpEnv(t *testing.T) {
	src := "let x = 3\nlet big = 5L\nlet ok = x == 3\n"

	t.Run("yaml", func(t *testing.T) {
		isolate(t)
		res := testutil.ExecuteCommand(t, NewRootCmd(), src, "run", "-", "--dump-env", "yaml")
		require.NoError(t, res.Err)
		assert.Contains(t, res.Stdout, "big:\n  kind: i64\n  value: 5\n")
		assert.Contains(t, res.Stdout, "ok:\n  kind: bool\n  value: true\n")
	})

	t.Run("json", func(t *testing.T) {
		isolate(t)
		res := testutil.ExecuteCommand(t, NewRootCmd(), src, "run", "-", "--dump-env", "json")
		require.NoError(t, res.Err)
		assert.Contains(t, res.Stdout, `"x": {`)
		assert.Contains(t, res.Stdout, `"kind": "i32"`)
		assert.Contains(t, res.Stdout, `"value": 3`)
		assert.Contains(t, res.Stdout, `"value": true`)
	})

	t.Run("table", func(t *testing.T) {
		isolate(t)
		res := testutil.ExecuteCommand(t, NewRootCmd(), src, "run", "-", "--dump-env", "table")
		require.NoError(t, res.Err)
		assert.Contains(t, res.Stdout, "NAME")
		assert.Contains(t, res.Stdout, "i64")
	})

	t.Run("unknown format", func(t *testing.T) {
		isolate(t)
		res := testutil.ExecuteCommand(t, NewRootCmd(), src, "run", "-", "--dump-env", "xml")
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "invalid --dump-env format")
	})
}

func TestRunCommand_WatchNeedsFile(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "1", "run", "-", "--watch")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "--watch needs a file")
}

func TestTokensCommand(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "let x = 1", "tokens", "-")

	require.NoError(t, res.Err)
	for _, want := range []string{"LET", "IDENT", "INT", "EOF"} {
		assert.Contains(t, res.Stdout, want)
	}
}

func TestTokensCommand_JSONAndLexError(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), `x = "s"`, "tokens", "-", "--json", "--color", "never")

	require.ErrorIs(t, res.Err, commands.ErrEvaluationFailed)
	assert.Contains(t, res.Stdout, `"type": "IDENT"`)
	assert.Contains(t, res.Stderr, "string literals are not supported yet")
}

func TestASTCommand(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"source", []string{"let x = (1 + (2 * 3))"}},
		{"dump", []string{`{Token "let" Expression {Token "let" Name {Token "x"`}},
		{"stats", []string{"Integer", "Infix", "TOTAL"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			isolate(t)
			res := testutil.ExecuteCommand(t, NewRootCmd(), "let x = 1 + 2 * 3", "ast", "-", "--format", tt.format, "--color", "never")
			require.NoError(t, res.Err)
			for _, want := range tt.want {
				assert.Contains(t, res.Stdout, want)
			}
		})
	}
}

func TestASTCommand_Diagnostics(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "1 +", "ast", "-", "-f", "source")

	require.ErrorIs(t, res.Err, commands.ErrEvaluationFailed)
	assert.Contains(t, res.Stderr, "no unary production")
}

func TestHistoryCommand(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "nested", "transcript.db")

	res := testutil.ExecuteCommand(t, NewRootCmd(), "let q = 9\nq + 1\n", "--transcript", db)
	require.NoError(t, res.Err)
	_, err := os.Stat(db)
	require.NoError(t, err)

	config.ResetConfig()
	res = testutil.ExecuteCommand(t, NewRootCmd(), "", "history", "--transcript", db, "--limit", "1")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "q + 1")
	assert.NotContains(t, res.Stdout, "let q = 9")

	config.ResetConfig()
	res = testutil.ExecuteCommand(t, NewRootCmd(), "", "history", "--transcript", db, "--json")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, `"Input": "let q = 9"`)
}

func TestHistoryCommand_NoTranscript(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "", "history")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "no transcript configured")
}

func TestConfigFileAndEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("shji.yaml", []byte("debug: true\ncolor: never\n"), 0600))
	t.Setenv("SHJI_DEBUG", "false")

	res := testutil.ExecuteCommand(t, NewRootCmd(), "5\n", "repl")
	require.NoError(t, res.Err)
	assert.NotContains(t, res.Stdout, "Lexer Output:")
	assert.Contains(t, res.Stdout, "5\n")
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	res := testutil.ExecuteCommand(t, NewRootCmd(), "", "completion", "bash")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "shji")
}
