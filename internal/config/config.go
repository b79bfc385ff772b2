package config

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mpromonet/tflite-inspect/internal/tensor"
)

// DefaultModelPath is where the app keeps its bundled detector.
var DefaultModelPath = filepath.Join("app", "src", "main", "assets", "yolox_float16.tflite")

type Config struct {
	ModelPath   string
	ImagePath   string
	Threads     int
	EdgeTPU     bool
	Verbose     bool
	PreviewRows int
}

// Usage is the one-line synopsis printed on bad invocations.
func Usage(program string) string {
	return fmt.Sprintf("usage: %s [flags] [tflite path]\n  e.g. %s %s", program, program, DefaultModelPath)
}

// Load parses args for program. Flags take precedence over an optional
// --config YAML file, which takes precedence over the defaults. The first
// positional argument, when present, is the model path.
func Load(program string, args []string, out io.Writer) (*Config, error) {
	fs := pflag.NewFlagSet(program, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(out, Usage(program))
		fs.PrintDefaults()
	}
	fs.String("config", "", "optional YAML file with the same keys as the flags")
	fs.String("image", "", "feed this image instead of the zero input")
	fs.Int("threads", 4, "interpreter threads")
	fs.Bool("edgetpu", false, "attach the first Edge TPU device")
	fs.BoolP("verbose", "v", false, "debug logging")
	fs.Int("rows", tensor.DefaultPreviewN, "candidates shown in the box preview")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}

	v := viper.New()
	v.SetDefault("model", DefaultModelPath)
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", file)
		}
	}
	if fs.NArg() == 1 {
		v.Set("model", fs.Arg(0))
	}

	cfg := &Config{
		ModelPath:   v.GetString("model"),
		ImagePath:   v.GetString("image"),
		Threads:     v.GetInt("threads"),
		EdgeTPU:     v.GetBool("edgetpu"),
		Verbose:     v.GetBool("verbose"),
		PreviewRows: v.GetInt("rows"),
	}
	if cfg.Threads < 1 {
		return nil, errors.Errorf("threads must be positive, got %d", cfg.Threads)
	}
	if cfg.PreviewRows < 0 {
		return nil, errors.Errorf("rows must not be negative, got %d", cfg.PreviewRows)
	}
	return cfg, nil
}
