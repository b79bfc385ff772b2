//go:build cgo

package interp

import (
	"unsafe"

	"github.com/mattn/go-tflite"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mpromonet/tflite-inspect/internal/tensor"
)

// tfliteFloat16 is kTfLiteFloat16. go-tflite stops its TensorType list at
// Int8.
const tfliteFloat16 tflite.TensorType = 10

type Model struct {
	model    *tflite.Model
	options  *tflite.InterpreterOptions
	interp   *tflite.Interpreter
	delegate interface{ Delete() }
	log      *zap.Logger
}

// Open loads the model at path and allocates its tensors.
func Open(path string, opts Options) (*Model, error) {
	log := opts.logger()

	model := tflite.NewModelFromFile(path)
	if model == nil {
		return nil, errors.Wrapf(ErrLoad, "cannot load model %s", path)
	}
	m := &Model{model: model, log: log}

	m.options = tflite.NewInterpreterOptions()
	m.options.SetNumThread(opts.Threads)
	m.options.SetErrorReporter(func(msg string, _ interface{}) {
		log.Warn("tflite", zap.String("msg", msg))
	}, nil)
	if opts.EdgeTPU {
		m.delegate = addEdgeTPU(m.options, log)
	}

	m.interp = tflite.NewInterpreter(model, m.options)
	if m.interp == nil {
		m.Close()
		return nil, errors.Wrap(ErrLoad, "cannot create interpreter")
	}

	status := m.interp.AllocateTensors()
	if status != tflite.OK {
		m.Close()
		return nil, errors.Wrapf(ErrLoad, "allocate failed: %v", status)
	}
	log.Debug("model loaded",
		zap.String("path", path),
		zap.Int("threads", opts.Threads),
		zap.Int("inputs", m.interp.GetInputTensorCount()),
		zap.Int("outputs", m.interp.GetOutputTensorCount()))
	return m, nil
}

func (m *Model) Close() {
	if m.interp != nil {
		m.interp.Delete()
		m.interp = nil
	}
	if m.delegate != nil {
		m.delegate.Delete()
		m.delegate = nil
	}
	if m.options != nil {
		m.options.Delete()
		m.options = nil
	}
	if m.model != nil {
		m.model.Delete()
		m.model = nil
	}
}

func (m *Model) Inputs() []tensor.Info {
	infos := make([]tensor.Info, m.interp.GetInputTensorCount())
	for idx := range infos {
		infos[idx] = describe(idx, m.interp.GetInputTensor(idx))
	}
	return infos
}

func (m *Model) Outputs() []tensor.Info {
	infos := make([]tensor.Info, m.interp.GetOutputTensorCount())
	for idx := range infos {
		infos[idx] = describe(idx, m.interp.GetOutputTensor(idx))
	}
	return infos
}

// SetInput copies a zero buffer into input slot index. The buffer type must
// match the declared tensor type.
func (m *Model) SetInput(index int, buf tensor.ZeroInput) error {
	input := m.interp.GetInputTensor(index)
	if input == nil {
		return errors.Errorf("no input tensor %d", index)
	}
	if got := dtypeOf(input.Type()); got != buf.Type {
		return errors.Errorf("input %d is %s, buffer is %s", index, got, buf.Type)
	}
	dst := rawBytes(input)

	switch buf.Type {
	case tensor.Float32:
		if len(buf.Float32s)*4 != len(dst) {
			return sizeMismatch(index, len(dst), len(buf.Float32s)*4)
		}
		if err := input.SetFloat32s(buf.Float32s); err != nil {
			return errors.Wrapf(err, "set input %d", index)
		}
	case tensor.UInt8:
		if len(buf.UInt8s) != len(dst) {
			return sizeMismatch(index, len(dst), len(buf.UInt8s))
		}
		if err := input.SetUint8s(buf.UInt8s); err != nil {
			return errors.Wrapf(err, "set input %d", index)
		}
	case tensor.Int8:
		if len(buf.Int8s) != len(dst) {
			return sizeMismatch(index, len(dst), len(buf.Int8s))
		}
		if err := input.SetInt8s(buf.Int8s); err != nil {
			return errors.Wrapf(err, "set input %d", index)
		}
	default:
		if len(buf.Raw) < len(dst) {
			return sizeMismatch(index, len(dst), len(buf.Raw))
		}
		copy(dst, buf.Raw)
	}
	return nil
}

func (m *Model) Invoke() error {
	status := m.interp.Invoke()
	m.log.Debug("invoke", zap.Any("status", status))
	if status != tflite.OK {
		return errors.Wrapf(ErrInvoke, "status %v", status)
	}
	return nil
}

func (m *Model) OutputValues(index int) ([]float32, error) {
	output := m.interp.GetOutputTensor(index)
	if output == nil {
		return nil, errors.Errorf("no output tensor %d", index)
	}
	switch output.Type() {
	case tflite.Float32:
		return copySlice(output.Float32s()), nil
	case tfliteFloat16:
		return tensor.Halfs(rawBytes(output)), nil
	case tflite.UInt8:
		return tensor.Widen(output.UInt8s()), nil
	case tflite.Int8:
		return tensor.Widen(output.Int8s()), nil
	case tflite.Int16:
		return tensor.Widen(output.Int16s()), nil
	case tflite.Int32:
		return tensor.Widen(output.Int32s()), nil
	case tflite.Int64:
		return tensor.Widen(output.Int64s()), nil
	case tflite.Bool:
		return tensor.Bools(rawBytes(output)), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "output %d is %s", index, dtypeOf(output.Type()))
}

func describe(index int, t *tflite.Tensor) tensor.Info {
	q := t.QuantizationParams()
	return tensor.Info{
		Index: index,
		Name:  t.Name(),
		Type:  dtypeOf(t.Type()),
		Shape: getTensorShape(t),
		Quant: tensor.Quantization{Scale: float64(q.Scale), ZeroPoint: int(q.ZeroPoint)},
	}
}

func getTensorShape(t *tflite.Tensor) []int {
	shape := []int{}
	for idx := 0; idx < t.NumDims(); idx++ {
		shape = append(shape, t.Dim(idx))
	}
	return shape
}

func dtypeOf(t tflite.TensorType) tensor.DType {
	switch t {
	case tflite.Float32:
		return tensor.Float32
	case tfliteFloat16:
		return tensor.Float16
	case tflite.Int8:
		return tensor.Int8
	case tflite.UInt8:
		return tensor.UInt8
	case tflite.Int16:
		return tensor.Int16
	case tflite.Int32:
		return tensor.Int32
	case tflite.Int64:
		return tensor.Int64
	case tflite.Bool:
		return tensor.Bool
	case tflite.String:
		return tensor.String
	case tflite.Complex64:
		return tensor.Complex64
	}
	return tensor.NoType
}

func rawBytes(t *tflite.Tensor) []byte {
	if t.ByteSize() == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(t.Data()), int(t.ByteSize()))
}

func copySlice(f []float32) []float32 {
	ff := make([]float32, len(f))
	copy(ff, f)
	return ff
}

func sizeMismatch(index, want, got int) error {
	return errors.Errorf("input %d holds %d bytes, buffer has %d", index, want, got)
}
