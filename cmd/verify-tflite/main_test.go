package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpromonet/tflite-inspect/internal/inspect"
	"github.com/mpromonet/tflite-inspect/internal/interp"
	"github.com/mpromonet/tflite-inspect/internal/tensor"
)

type staticRuntime struct{}

func (staticRuntime) Inputs() []tensor.Info {
	return []tensor.Info{{Index: 0, Name: "images", Type: tensor.UInt8, Shape: []int{1, 2, 2, 3}}}
}

func (staticRuntime) Outputs() []tensor.Info {
	return []tensor.Info{{Index: 0, Name: "output", Type: tensor.Float32, Shape: []int{1, 10, 6}}}
}

func (staticRuntime) SetInput(int, tensor.ZeroInput) error { return nil }
func (staticRuntime) Invoke() error                        { return nil }
func (staticRuntime) OutputValues(int) ([]float32, error)  { return make([]float32, 60), nil }
func (staticRuntime) Close()                               {}

func failOpen(err error) openFunc {
	return func(string, interp.Options) (inspect.Runtime, error) { return nil, err }
}

func modelFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.tflite")
	require.NoError(t, os.WriteFile(path, []byte("TFL3"), 0o644))
	return path
}

func TestRunMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "yolox_float16.tflite")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	code := run([]string{missing}, stdout, stderr, failOpen(errors.New("must not open")))
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "model file not found: "+missing)
	assert.Contains(t, stdout.String(), "usage: verify-tflite")
}

func TestRunMissingRuntime(t *testing.T) {
	stdout := &bytes.Buffer{}
	code := run([]string{modelFile(t)}, stdout, &bytes.Buffer{}, failOpen(errors.Wrap(interp.ErrRuntimeUnavailable, "no cgo")))
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "libtensorflowlite_c")
}

func TestRunRuntimeFailure(t *testing.T) {
	stdout := &bytes.Buffer{}
	code := run([]string{modelFile(t)}, stdout, &bytes.Buffer{}, failOpen(errors.Wrap(interp.ErrLoad, "cannot create interpreter")))
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
}

func TestRunReport(t *testing.T) {
	stdout := &bytes.Buffer{}
	var threads int
	open := func(_ string, opts interp.Options) (inspect.Runtime, error) {
		threads = opts.Threads
		return staticRuntime{}, nil
	}
	code := run([]string{"--threads", "2", modelFile(t)}, stdout, &bytes.Buffer{}, open)
	assert.Equal(t, 0, code)
	assert.Equal(t, 2, threads)
	assert.Contains(t, stdout.String(), "num_boxes=10, box_size=6")
}

func TestRunBadFlags(t *testing.T) {
	stderr := &bytes.Buffer{}
	assert.Equal(t, 1, run([]string{"--threads", "x"}, &bytes.Buffer{}, stderr, openModel))
	assert.Contains(t, stderr.String(), "usage: verify-tflite")

	assert.Equal(t, 0, run([]string{"--help"}, &bytes.Buffer{}, &bytes.Buffer{}, openModel))
}
