// Package launcher starts the product image extraction script from inside its
// own directory, so the script's relative paths and the non-ASCII directory
// name resolve regardless of where the launcher runs.
package launcher

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	ImageDir   = "상품 이미지"
	ScriptName = "extract_meta_dimensions.py"

	maxAscend = 10
)

var (
	ErrScriptNotFound = errors.New("script not found")
	ErrNoInterpreter  = errors.New("no python interpreter on PATH")
)

// Interpreters are tried in order when Launcher.Interpreter is empty.
var Interpreters = []string{"python3", "python"}

type Launcher struct {
	Root        string
	Interpreter string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    *zap.Logger
}

// FindRoot ascends from start until a directory containing ImageDir is found.
// It returns start when none of the parents has one.
func FindRoot(start string) string {
	cur := start
	for i := 0; i < maxAscend; i++ {
		if dirExists(filepath.Join(cur, ImageDir)) {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return start
}

func (l *Launcher) ScriptPath() string {
	return filepath.Join(l.Root, ImageDir, ScriptName)
}

// LookupInterpreter returns the first entry of Interpreters found on PATH.
func LookupInterpreter() (string, error) {
	for _, name := range Interpreters {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrNoInterpreter
}

// Run starts the script, waits for it and returns its exit code. A missing
// script or a failed start returns 1 and an error; the child is only spawned
// once the script is known to exist.
func (l *Launcher) Run(ctx context.Context) (int, error) {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	script := l.ScriptPath()
	if !fileExists(script) {
		return 1, errors.Wrap(ErrScriptNotFound, script)
	}

	interpreter := l.Interpreter
	if interpreter == "" {
		var err error
		if interpreter, err = LookupInterpreter(); err != nil {
			return 1, err
		}
	}

	cmd := exec.CommandContext(ctx, interpreter, script)
	cmd.Dir = filepath.Dir(script)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	log.Debug("starting", zap.String("interpreter", interpreter), zap.String("script", script), zap.String("dir", cmd.Dir))
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				return 1, errors.Wrap(err, "script terminated")
			}
			return code, nil
		}
		return 1, errors.Wrap(err, "start script")
	}
	return 0, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
