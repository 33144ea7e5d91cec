package agenda

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmt1947/cov-swn/pkg/epidemic"
	"github.com/rmt1947/cov-swn/pkg/util"
	"go.uber.org/zap"
)

const (
	NUMBER_OF_FIELDS = 10
	MAX_FIELD_LENGTH = 30 // a field or range component this long is rejected

	FIELD_SEEDCOV    = 1
	FIELD_SEEDSWN    = 2
	FIELD_MANYNODE   = 3
	FIELD_HALFDEGREE = 4
	FIELD_BETA       = 5
	FIELD_CHANCE     = 6
	FIELD_INERT      = 7
	FIELD_INCUBATING = 8
	FIELD_RECOVERY   = 9
	FIELD_OUTDIR     = 10

	BETA_PRECISION   = 3
	CHANCE_PRECISION = 2
	INERT_PRECISION  = 2

	floatTolerance = 1e-9
)

// IntRange is min:step:max. A zero step means the single value Min.
type IntRange struct {
	Min, Step, Max int
}

func (r IntRange) Values() []int {
	if r.Step == 0 {
		return []int{r.Min}
	}
	vals := make([]int, 0, (r.Max-r.Min)/r.Step+1)
	for v := r.Min; v <= r.Max; v += r.Step {
		vals = append(vals, v)
	}
	return vals
}

// FloatRange is min:step:max. Values are generated as Min + i*Step, so the number of values
// does not depend on accumulated rounding error, and are rounded to the precision the run
// prints them with.
type FloatRange struct {
	Min, Step, Max float64
}

func (r FloatRange) Values(precision uint) []float64 {
	if r.Step == 0 {
		return []float64{util.RoundFloat(r.Min, precision)}
	}
	count := int(math.Floor((r.Max-r.Min)/r.Step+floatTolerance)) + 1
	vals := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		vals = append(vals, util.RoundFloat(r.Min+float64(i)*r.Step, precision))
	}
	return vals
}

// Entry is one agenda line: a cartesian product of runs sharing seeds and output directory.
type Entry struct {
	Line       int
	SeedCov    uint32
	SeedSwn    uint32
	ManyNode   IntRange
	HalfDegree IntRange
	Beta       FloatRange
	Chance     FloatRange
	Inert      FloatRange
	Incubating IntRange
	Recovery   IntRange
	OutputDir  string
}

type Job struct {
	Line      int
	Params    epidemic.Params
	OutputDir string
}

// Jobs expands the entry, innermost loop last: manynode, halfdegree, beta, chance, inert,
// incubating, recovery.
func (e Entry) Jobs() []Job {
	jobs := []Job{}
	for _, manyNode := range e.ManyNode.Values() {
		for _, halfDegree := range e.HalfDegree.Values() {
			for _, beta := range e.Beta.Values(BETA_PRECISION) {
				for _, chance := range e.Chance.Values(CHANCE_PRECISION) {
					for _, inert := range e.Inert.Values(INERT_PRECISION) {
						for _, incubating := range e.Incubating.Values() {
							for _, recovery := range e.Recovery.Values() {
								jobs = append(jobs, Job{
									Line: e.Line,
									Params: epidemic.Params{
										SeedCov:    e.SeedCov,
										SeedSwn:    e.SeedSwn,
										ManyNode:   manyNode,
										HalfDegree: halfDegree,
										Beta:       beta,
										Chance:     chance,
										Inert:      inert,
										Incubating: incubating,
										Recovery:   recovery,
									},
									OutputDir: e.OutputDir,
								})
							}
						}
					}
				}
			}
		}
	}
	return jobs
}

func Jobs(entries []Entry) []Job {
	jobs := []Job{}
	for _, e := range entries {
		jobs = append(jobs, e.Jobs()...)
	}
	return jobs
}

// Load reads an agenda file. Files ending in .yaml or .yml are YAML; anything else is the
// line-oriented text format. Relative output directories resolve against the working directory.
func Load(path string, logger *zap.Logger) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "cannot open input file: %s", path)
	}
	defer f.Close()

	wd, err := os.Getwd()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrResource, "cannot resolve working directory")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f, wd)
	default:
		return Parse(f, wd, logger)
	}
}

// fieldParser turns raw field text into typed values, reporting errors with line and field.
type fieldParser struct {
	line    int
	baseDir string
}

func (fp fieldParser) errorf(field int, text, what string) error {
	return util.WrapErrorf(nil, util.ErrBadParamInput, "at line %d, %s field %d: >%s<", fp.line, what, field, text)
}

func (fp fieldParser) seed(field int, text string) (uint32, error) {
	if len(text) >= MAX_FIELD_LENGTH {
		return 0, fp.errorf(field, text, "excessively long")
	}
	if strings.Contains(text, ":") {
		return 0, fp.errorf(field, text, "unexpected colons in")
	}
	seed, err := ParseSeed(text)
	if err != nil {
		return 0, fp.errorf(field, text, "unconvertible hexadecimal")
	}
	return seed, nil
}

func (fp fieldParser) components(field int, text string) ([3]string, error) {
	var parts [3]string
	split := strings.Split(text, ":")
	switch {
	case len(split) == 1:
		return parts, fp.errorf(field, text, "missing colons in")
	case len(split) == 2:
		return parts, fp.errorf(field, text, "unpaired colon in")
	case len(split) > 3:
		return parts, fp.errorf(field, text, "too many colons in")
	}
	for i, s := range split {
		if len(s) >= MAX_FIELD_LENGTH {
			return parts, fp.errorf(field, text, "excessively long")
		}
		parts[i] = s
	}
	return parts, nil
}

func (fp fieldParser) intRange(field int, text string) (IntRange, error) {
	parts, err := fp.components(field, text)
	if err != nil {
		return IntRange{}, err
	}
	var vals [3]int
	for i, s := range parts {
		v, err := strconv.Atoi(s)
		if err != nil {
			return IntRange{}, fp.errorf(field, s, "unconvertible integer")
		}
		if v < 0 {
			return IntRange{}, fp.errorf(field, s, "negative integer")
		}
		vals[i] = v
	}
	if vals[0] > vals[2] {
		return IntRange{}, fp.errorf(field, text, "min > max in")
	}
	return IntRange{Min: vals[0], Step: vals[1], Max: vals[2]}, nil
}

func (fp fieldParser) floatRange(field int, text string) (FloatRange, error) {
	parts, err := fp.components(field, text)
	if err != nil {
		return FloatRange{}, err
	}
	var vals [3]float64
	for i, s := range parts {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return FloatRange{}, fp.errorf(field, s, "unconvertible float")
		}
		if v < 0 {
			return FloatRange{}, fp.errorf(field, s, "negative float")
		}
		vals[i] = v
	}
	if vals[0] > vals[2] {
		return FloatRange{}, fp.errorf(field, text, "min > max in")
	}
	if math.Abs(vals[1]) < 1e-7 {
		vals[1] = 0
	}
	return FloatRange{Min: vals[0], Step: vals[1], Max: vals[2]}, nil
}

func (fp fieldParser) outputDir(field int, text string) (string, error) {
	if strings.Contains(text, ":") {
		return "", fp.errorf(field, text, "unexpected colons in")
	}
	dir := text
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(fp.baseDir, dir)
	}
	st, err := os.Stat(dir)
	if err != nil {
		return "", fp.errorf(field, dir, "missing output directory in")
	}
	if !st.IsDir() {
		return "", fp.errorf(field, dir, "not a directory in")
	}
	return dir, nil
}

// entry parses the ten fields of one agenda line in order, stopping at the first bad one.
func (fp fieldParser) entry(fields [NUMBER_OF_FIELDS]string) (Entry, error) {
	var (
		e   = Entry{Line: fp.line}
		err error
	)
	if e.SeedCov, err = fp.seed(FIELD_SEEDCOV, fields[0]); err != nil {
		return e, err
	}
	if e.SeedSwn, err = fp.seed(FIELD_SEEDSWN, fields[1]); err != nil {
		return e, err
	}
	if e.ManyNode, err = fp.intRange(FIELD_MANYNODE, fields[2]); err != nil {
		return e, err
	}
	if e.HalfDegree, err = fp.intRange(FIELD_HALFDEGREE, fields[3]); err != nil {
		return e, err
	}
	if e.Beta, err = fp.floatRange(FIELD_BETA, fields[4]); err != nil {
		return e, err
	}
	if e.Chance, err = fp.floatRange(FIELD_CHANCE, fields[5]); err != nil {
		return e, err
	}
	if e.Inert, err = fp.floatRange(FIELD_INERT, fields[6]); err != nil {
		return e, err
	}
	if e.Incubating, err = fp.intRange(FIELD_INCUBATING, fields[7]); err != nil {
		return e, err
	}
	if e.Recovery, err = fp.intRange(FIELD_RECOVERY, fields[8]); err != nil {
		return e, err
	}
	if e.OutputDir, err = fp.outputDir(FIELD_OUTDIR, fields[9]); err != nil {
		return e, err
	}
	return e, nil
}

// ParseSeed reads a 32-bit hexadecimal seed with an optional 0x prefix.
func ParseSeed(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
