//go:build cgo

package interp

import (
	"image"

	"github.com/mattn/go-tflite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// SetInputImage decodes the image at path, converts it to RGB, resizes it to
// the NHWC input and copies it in: raw 0..255 for uint8 inputs, scaled to
// 0..1 for float32 inputs.
func (m *Model) SetInputImage(index int, path string) error {
	input := m.interp.GetInputTensor(index)
	if input == nil {
		return errors.Errorf("no input tensor %d", index)
	}
	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		return errors.Wrapf(ErrImage, "cannot decode %s", path)
	}
	m.log.Debug("image", zap.String("path", path), zap.Int("cols", img.Cols()), zap.Int("rows", img.Rows()))
	return fillInput(input, img)
}

func fillInput(input *tflite.Tensor, img gocv.Mat) error {
	if input.NumDims() != 4 {
		return errors.Wrapf(ErrImage, "input shape %v is not NHWC", getTensorShape(input))
	}
	wantedHeight := input.Dim(1)
	wantedWidth := input.Dim(2)

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(img, &rgb, gocv.ColorBGRToRGB)

	resized := gocv.NewMat()
	defer resized.Close()
	rgb.ConvertTo(&resized, gocv.MatTypeCV32F)
	gocv.Resize(resized, &resized, image.Pt(wantedWidth, wantedHeight), 0, 0, gocv.InterpolationDefault)

	v, err := resized.DataPtrFloat32()
	if err != nil {
		return errors.Wrap(err, "read resized image")
	}
	elements := input.Dim(1) * input.Dim(2) * input.Dim(3)
	if len(v) != elements {
		return errors.Wrapf(ErrImage, "resized image has %d values, input wants %d", len(v), elements)
	}

	switch input.Type() {
	case tflite.UInt8:
		ptr := make([]uint8, len(v))
		for i := 0; i < len(v); i++ {
			ptr[i] = uint8(v[i])
		}
		if err := input.SetUint8s(ptr); err != nil {
			return errors.Wrap(err, "set image input")
		}
	case tflite.Float32:
		for i := 0; i < len(v); i++ {
			v[i] = v[i] / 255
		}
		if err := input.SetFloat32s(v); err != nil {
			return errors.Wrap(err, "set image input")
		}
	default:
		return errors.Wrapf(ErrUnsupportedType, "image input is %s", dtypeOf(input.Type()))
	}
	return nil
}
