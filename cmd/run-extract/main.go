// Command run-extract runs the product image dimension extraction script from
// its own directory and exits with the script's exit code.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mpromonet/tflite-inspect/internal/launcher"
	"github.com/mpromonet/tflite-inspect/internal/logger"
)

func main() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "run-extract:", err)
		os.Exit(1)
	}
	if err := logger.InitDevelopment(false); err != nil {
		fmt.Fprintln(os.Stderr, "run-extract:", err)
		os.Exit(1)
	}
	code := run(context.Background(), wd, "", os.Stdin, os.Stdout, os.Stderr)
	logger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, wd, interpreter string, stdin io.Reader, stdout, stderr io.Writer) int {
	l := &launcher.Launcher{
		Root:        launcher.FindRoot(wd),
		Interpreter: interpreter,
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
		Log:         logger.Log(),
	}
	code, err := l.Run(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "run-extract:", err)
	}
	logger.S().Debugw("script finished", "code", code)
	return code
}
