package agenda

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/rmt1947/cov-swn/pkg/util"
	"go.uber.org/zap"
)

/*
Parse reads the text agenda format, one entry per line:

	seedcov seedswn manynode halfdegree beta chance inert incubating recovery outdir

Seeds are hexadecimal, outdir is a directory, every other field is min:step:max. Blank lines
are ignored and a token starting with '#' begins a comment; '#' inside a token is kept. A comment that cuts a line short of ten fields silences
the line; any other line with the wrong number of fields is logged and skipped. Every other
malformed field is an error that stops parsing.
*/
func Parse(r io.Reader, baseDir string, logger *zap.Logger) ([]Entry, error) {
	br := bufio.NewReader(r)
	entries := []Entry{}
	for lineNo := 1; ; lineNo++ {
		line, err := util.ReadLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrResource, "failed to read entire file")
		}

		fields, commented := stripComment(strings.Fields(line))
		if len(fields) == 0 {
			continue
		}
		if len(fields) != NUMBER_OF_FIELDS {
			if commented && len(fields) < NUMBER_OF_FIELDS {
				continue
			}
			logger.Warn("agenda line has the wrong number of fields: ignored",
				zap.Int("line", lineNo), zap.Int("fields", len(fields)))
			continue
		}

		var raw [NUMBER_OF_FIELDS]string
		copy(raw[:], fields)
		e, err := fieldParser{line: lineNo, baseDir: baseDir}.entry(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// stripComment drops the first token starting with '#' and everything after it.
func stripComment(fields []string) ([]string, bool) {
	for i, f := range fields {
		if strings.HasPrefix(f, "#") {
			return fields[:i], true
		}
	}
	return fields, false
}
