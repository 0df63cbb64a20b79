package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jsphweid/pianobench/util"
)

var (
	ErrMissingAssets    = errors.New("audio files missing")
	ErrConversionFailed = errors.New("audio conversion failed")
)

// Resolver maps catalog filenames to rendered audio on disk and runs the
// conversion script once when something is missing.
type Resolver struct {
	AudioDir      string
	ConvertScript string
	SourceExt     string
	TargetExt     string

	// Out receives progress lines, defaults to os.Stdout
	Out io.Writer
}

func (r *Resolver) Path(filename string) string {
	return filepath.Join(r.AudioDir, util.ReplaceExt(filename, r.SourceExt, r.TargetExt))
}

func (r *Resolver) missing(paths []string) []string {
	var res []string
	for _, p := range paths {
		if !util.FileExists(p) {
			res = append(res, p)
		}
	}
	return res
}

// Ensure checks that every path exists. If some do not, the conversion
// script runs once and the paths are checked again. Either failure is
// returned as an error wrapping ErrConversionFailed or ErrMissingAssets.
func (r *Resolver) Ensure(ctx context.Context, paths ...string) error {
	if len(r.missing(paths)) == 0 {
		return nil
	}

	fmt.Fprintln(r.out(), "Missing audio files. Attempting to run conversion script...")
	if err := r.Convert(ctx); err != nil {
		return err
	}

	if missing := r.missing(paths); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, p := range missing {
			names[i] = filepath.Base(p)
		}
		return fmt.Errorf("%w: %s still not found after conversion", ErrMissingAssets, strings.Join(names, ", "))
	}
	return nil
}

func (r *Resolver) Convert(ctx context.Context) error {
	if !util.FileExists(r.ConvertScript) {
		return fmt.Errorf("%w: script %s not found", ErrConversionFailed, r.ConvertScript)
	}

	cmd := exec.CommandContext(ctx, "bash", r.ConvertScript)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w (is ffmpeg installed?): %v: %s", ErrConversionFailed, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (r *Resolver) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}
