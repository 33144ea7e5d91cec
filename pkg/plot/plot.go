package plot

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rmt1947/cov-swn/pkg/util"
	"go.uber.org/zap"
)

type Options struct {
	OutputDir string
	SVG       bool
	Program   string           // recorded in the gnuplot script
	Now       func() time.Time // defaults to time.Now
}

type Output struct {
	DataPath    string
	CommandPath string
	SVGPath     string // empty when not rendered
}

// Plot merges up to MAX_INPUTS run files into DATA_FILE, writes a gnuplot script for it and,
// when requested, renders the SVG directly.
func Plot(ctx context.Context, inputs []Input, opts Options, logger *zap.Logger) (*Output, error) {
	if len(inputs) == 0 || len(inputs) > MAX_INPUTS {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"expected 1 to %d filename-headername pairs, got %d", MAX_INPUTS, len(inputs))
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now()

	series, err := LoadAll(ctx, inputs)
	if err != nil {
		return nil, err
	}

	out := &Output{
		DataPath:    filepath.Join(opts.OutputDir, DATA_FILE),
		CommandPath: filepath.Join(opts.OutputDir, COMMAND_FILE),
	}
	if err := writeFile(out.DataPath, func(f *os.File) error { return WriteData(f, series) }); err != nil {
		return nil, err
	}
	if err := writeFile(out.CommandPath, func(f *os.File) error {
		return WriteCommands(f, series, opts.Program, now)
	}); err != nil {
		return nil, err
	}
	logger.Info("plot data written", zap.String("data", out.DataPath), zap.String("commands", out.CommandPath))

	if opts.SVG {
		svgPath := filepath.Join(opts.OutputDir, series[0].Header+".svg")
		if err := writeFile(svgPath, func(f *os.File) error {
			return RenderSVG(f, series, Title(now))
		}); err != nil {
			return nil, err
		}
		out.SVGPath = svgPath
		logger.Info("chart rendered", zap.String("svg", svgPath))
	}
	return out, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return util.WrapErrorf(err, util.ErrResource, "cannot open output file: %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return util.WrapErrorf(err, util.ErrResource, "cannot write output file: %s", path)
	}
	if err := f.Close(); err != nil {
		return util.WrapErrorf(err, util.ErrResource, "cannot close file %s", path)
	}
	return nil
}
