//go:build cgo && edgetpu

package interp

import (
	"github.com/mattn/go-tflite"
	"github.com/mattn/go-tflite/delegates/edgetpu"
	"go.uber.org/zap"
)

func addEdgeTPU(options *tflite.InterpreterOptions, log *zap.Logger) interface{ Delete() } {
	devices, err := edgetpu.DeviceList()
	if err != nil {
		log.Warn("could not get edge TPU devices", zap.Error(err))
	}
	if len(devices) == 0 {
		log.Info("no edge TPU devices found, running on CPU")
		return nil
	}
	delegate := edgetpu.New(devices[0])
	if delegate == nil {
		log.Warn("cannot create edge TPU delegate, running on CPU")
		return nil
	}
	options.AddDelegate(delegate)
	log.Info("edge TPU attached", zap.Int("devices", len(devices)))
	return delegate
}
