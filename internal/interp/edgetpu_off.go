//go:build cgo && !edgetpu

package interp

import (
	"github.com/mattn/go-tflite"
	"go.uber.org/zap"
)

func addEdgeTPU(_ *tflite.InterpreterOptions, log *zap.Logger) interface{ Delete() } {
	log.Warn("edge TPU support not built in (rebuild with -tags edgetpu), running on CPU")
	return nil
}
