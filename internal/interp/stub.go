//go:build !cgo

package interp

import (
	"github.com/pkg/errors"

	"github.com/mpromonet/tflite-inspect/internal/tensor"
)

// Model is unusable without cgo. Every method reports ErrRuntimeUnavailable.
type Model struct{}

func Open(path string, opts Options) (*Model, error) {
	opts.logger().Debug("built without cgo")
	return nil, errors.Wrapf(ErrRuntimeUnavailable, "cannot load %s", path)
}

func (m *Model) Close() {}

func (m *Model) Inputs() []tensor.Info  { return nil }
func (m *Model) Outputs() []tensor.Info { return nil }

func (m *Model) SetInput(int, tensor.ZeroInput) error { return ErrRuntimeUnavailable }
func (m *Model) SetInputImage(int, string) error      { return ErrRuntimeUnavailable }
func (m *Model) Invoke() error                        { return ErrRuntimeUnavailable }

func (m *Model) OutputValues(int) ([]float32, error) { return nil, ErrRuntimeUnavailable }
