package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mpromonet/tflite-inspect/internal/launcher"
	"github.com/mpromonet/tflite-inspect/internal/logger"
)

func TestRunMissingScript(t *testing.T) {
	wd := t.TempDir()
	stderr := &bytes.Buffer{}
	script := filepath.Join(wd, launcher.ImageDir, launcher.ScriptName)
	// touch would create the script if it were ever spawned
	code := run(context.Background(), wd, "/usr/bin/touch", strings.NewReader(""), &bytes.Buffer{}, stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), script)
	assert.NoFileExists(t, script)
}

func TestRunExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	root := t.TempDir()
	dir := filepath.Join(root, launcher.ImageDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, launcher.ScriptName), []byte("exit 7\n"), 0o644))
	nested := filepath.Join(root, "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	core, logs := observer.New(zap.DebugLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	code := run(context.Background(), nested, "/bin/sh", strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, 7, code)

	finished := logs.FilterMessage("script finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(7), finished[0].ContextMap()["code"])
}
