// Package interp loads TFLite models through the TensorFlow Lite C API.
//
// The binding needs cgo and libtensorflowlite_c at link time (and OpenCV
// for image input). Builds without cgo get a stub whose Open always fails
// with ErrRuntimeUnavailable.
package interp

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrRuntimeUnavailable = errors.New("tensorflow lite runtime unavailable")
	ErrLoad               = errors.New("model load failed")
	ErrInvoke             = errors.New("invoke failed")
	ErrUnsupportedType    = errors.New("unsupported tensor type")
	ErrImage              = errors.New("image input failed")
)

// InstallHint tells the user how to get a build with the runtime linked in.
const InstallHint = "tensorflow lite runtime required: install libtensorflowlite_c (and OpenCV for --image), then rebuild with CGO_ENABLED=1"

type Options struct {
	Threads int
	// EdgeTPU attaches the first Edge TPU found. Builds without the edgetpu
	// tag log that the delegate is missing and run on the CPU.
	EdgeTPU bool
	Logger  *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
