// Command verify-tflite loads a TFLite detector, prints its tensor metadata
// and summarizes the outputs of one dummy inference.
//
//	verify-tflite [flags] [tflite path]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mpromonet/tflite-inspect/internal/config"
	"github.com/mpromonet/tflite-inspect/internal/inspect"
	"github.com/mpromonet/tflite-inspect/internal/interp"
	"github.com/mpromonet/tflite-inspect/internal/logger"
)

const program = "verify-tflite"

type openFunc func(path string, opts interp.Options) (inspect.Runtime, error)

func openModel(path string, opts interp.Options) (inspect.Runtime, error) {
	m, err := interp.Open(path, opts)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, openModel))
}

func run(args []string, stdout, stderr io.Writer, open openFunc) int {
	cfg, err := config.Load(program, args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, config.Usage(program))
		return 1
	}

	if err := logger.InitDevelopment(cfg.Verbose); err != nil {
		fmt.Fprintln(stderr, "logger:", err)
		return 1
	}
	defer logger.Sync()
	log := logger.Log()

	opts := interp.Options{Threads: cfg.Threads, EdgeTPU: cfg.EdgeTPU, Logger: log}
	in := inspect.New(func(path string) (inspect.Runtime, error) {
		return open(path, opts)
	}, stdout, log)

	err = in.Run(inspect.Options{
		ModelPath:   cfg.ModelPath,
		ImagePath:   cfg.ImagePath,
		PreviewRows: cfg.PreviewRows,
	})
	switch {
	case err == nil:
		return 0
	case errors.Is(err, inspect.ErrModelNotFound):
		fmt.Fprintf(stdout, "model file not found: %s\n", cfg.ModelPath)
		fmt.Fprintln(stdout, config.Usage(program))
	case errors.Is(err, interp.ErrRuntimeUnavailable):
		fmt.Fprintln(stdout, interp.InstallHint)
	default:
		log.Error("inspection failed", zap.String("model", cfg.ModelPath), zap.Error(err))
	}
	return 1
}
