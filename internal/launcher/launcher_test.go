package launcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, root, body string) string {
	t.Helper()
	dir := filepath.Join(root, ImageDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	script := filepath.Join(dir, ScriptName)
	require.NoError(t, os.WriteFile(script, []byte(body), 0o644))
	return script
}

func shell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	return "/bin/sh"
}

func TestRunMissingScript(t *testing.T) {
	root := t.TempDir()
	l := &Launcher{Root: root, Interpreter: filepath.Join(root, "never-run")}

	code, err := l.Run(context.Background())
	assert.Equal(t, 1, code)
	assert.True(t, errors.Is(err, ErrScriptNotFound))
	assert.Contains(t, err.Error(), l.ScriptPath())
}

func TestRunForwardsExitCode(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "exit 7\n")
	l := &Launcher{Root: root, Interpreter: shell(t)}

	code, err := l.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestRunInScriptDir(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "pwd\necho done >&2\n")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	l := &Launcher{Root: root, Interpreter: shell(t), Stdout: stdout, Stderr: stderr}

	code, err := l.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	want, err := filepath.EvalSymlinks(filepath.Join(root, ImageDir))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "done\n", stderr.String())
}

func TestRunStartFailure(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "exit 0\n")
	l := &Launcher{Root: root, Interpreter: filepath.Join(root, "missing-python")}

	code, err := l.Run(context.Background())
	assert.Equal(t, 1, code)
	assert.Error(t, err)
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "exit 0\n")
	nested := filepath.Join(root, "app", "src", "main")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindRoot(nested))
	assert.Equal(t, root, FindRoot(root))

	lonely := t.TempDir()
	assert.Equal(t, lonely, FindRoot(lonely))
}
