package plot

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/rmt1947/cov-swn/pkg/util"
	"golang.org/x/sync/errgroup"
)

const MAX_INPUTS = 4

// Input names a run file and the column heading to plot from it.
type Input struct {
	Path   string
	Header string
}

// Series is the selected column of one input against its first column.
type Series struct {
	Input
	Column int
	X      []float64
	Y      []float64
}

func (s *Series) Len() int {
	return len(s.X)
}

// ReadSeries reads a whitespace-separated table whose first line holds the column headings.
func ReadSeries(r io.Reader, in Input) (*Series, error) {
	br := bufio.NewReader(r)
	line, err := util.ReadLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "input file has no first line: %s", in.Path)
		}
		return nil, util.WrapErrorf(err, util.ErrResource, "cannot read input file: %s", in.Path)
	}
	headers := strings.Fields(line)

	s := &Series{Input: in, Column: -1, X: []float64{}, Y: []float64{}}
	for i, h := range headers {
		if h == in.Header {
			s.Column = i
			break
		}
	}
	if s.Column < 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "heading not found: %s", in.Header)
	}

	for lineNo := 2; ; lineNo++ {
		line, err := util.ReadLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrResource, "cannot read input file: %s", in.Path)
		}
		tokens := strings.Fields(line)
		if len(tokens) > len(headers) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"more columns than headings at line %d in file %s", lineNo, in.Path)
		}
		if len(tokens) <= s.Column {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"insufficient data at line %d in file %s", lineNo, in.Path)
		}
		vals := make([]float64, len(tokens))
		for col, tok := range tokens {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrBadParamInput,
					"cannot understand data at column %d, line %d in file %s", col, lineNo, in.Path)
			}
			vals[col] = v
		}
		s.X = append(s.X, vals[0])
		s.Y = append(s.Y, vals[s.Column])
	}
	return s, nil
}

// Load opens one input, decompressing it when the name ends in .bz2.
func Load(in Input) (*Series, error) {
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "cannot open input file: %s", in.Path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(in.Path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "cannot decompress input file: %s", in.Path)
		}
		defer bz.Close()
		r = bz
	}
	return ReadSeries(r, in)
}

// LoadAll reads every input concurrently. The result keeps the order of inputs.
func LoadAll(ctx context.Context, inputs []Input) ([]*Series, error) {
	series := make([]*Series, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Load(in)
			if err != nil {
				return err
			}
			series[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return series, nil
}
