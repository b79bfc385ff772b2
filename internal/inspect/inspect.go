// Package inspect runs the one-shot model check: metadata, a single dummy
// inference and a summary of every output tensor.
package inspect

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mpromonet/tflite-inspect/internal/tensor"
)

// ErrModelNotFound is returned when the model path is not a regular file.
var ErrModelNotFound = errors.New("model file not found")

// Runtime is a loaded model with allocated tensors.
type Runtime interface {
	Inputs() []tensor.Info
	Outputs() []tensor.Info
	// SetInput copies buf into input slot index.
	SetInput(index int, buf tensor.ZeroInput) error
	Invoke() error
	// OutputValues returns the flattened contents of output slot index,
	// widened to float32.
	OutputValues(index int) ([]float32, error)
	Close()
}

// ImageLoader is implemented by runtimes that can fill an input from an
// image file.
type ImageLoader interface {
	SetInputImage(index int, path string) error
}

// Opener loads a model file.
type Opener func(path string) (Runtime, error)

type Options struct {
	ModelPath   string
	ImagePath   string
	PreviewRows int
}

type Inspector struct {
	open Opener
	out  io.Writer
	log  *zap.Logger
}

func New(open Opener, out io.Writer, log *zap.Logger) *Inspector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inspector{open: open, out: out, log: log}
}

// CheckModel reports ErrModelNotFound unless path is a regular file.
func CheckModel(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return errors.Wrap(ErrModelNotFound, path)
	}
	return nil
}

// Run writes the full report for opts.ModelPath.
func (in *Inspector) Run(opts Options) error {
	if err := CheckModel(opts.ModelPath); err != nil {
		return err
	}

	rt, err := in.open(opts.ModelPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	r := &report{w: in.out}
	r.header(opts.ModelPath)

	inputs := rt.Inputs()
	outputs := rt.Outputs()
	r.infos("inputs", inputs)
	r.infos("outputs", outputs)
	if len(inputs) == 0 {
		return errors.New("model declares no input tensor")
	}

	if err := in.fill(rt, inputs[0], opts.ImagePath); err != nil {
		return err
	}
	if err := rt.Invoke(); err != nil {
		return err
	}

	if opts.ImagePath != "" {
		r.section("outputs after one inference (" + opts.ImagePath + ")")
	} else {
		r.section("outputs after one dummy inference (zero input)")
	}
	for _, info := range outputs {
		values, err := rt.OutputValues(info.Index)
		if err != nil {
			in.log.Warn("cannot read output", zap.Int("index", info.Index), zap.Error(err))
			r.unreadable(info, err)
			continue
		}
		r.output(info, values, opts.PreviewRows)
	}
	r.footer()
	return r.err
}

func (in *Inspector) fill(rt Runtime, input tensor.Info, image string) error {
	if image != "" {
		loader, ok := rt.(ImageLoader)
		if !ok {
			return errors.New("runtime cannot load images")
		}
		in.log.Debug("image input", zap.String("path", image), zap.Ints("shape", input.Shape))
		return loader.SetInputImage(input.Index, image)
	}
	buf := tensor.NewZeroInput(input)
	in.log.Debug("zero input",
		zap.Stringer("dtype", buf.Type),
		zap.Ints("shape", buf.Shape),
		zap.Int("elements", buf.Len()))
	return rt.SetInput(input.Index, buf)
}
