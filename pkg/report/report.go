package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/rmt1947/cov-swn/pkg/epidemic"
	"github.com/rmt1947/cov-swn/pkg/metrics"
	"github.com/rmt1947/cov-swn/pkg/util"
	"go.uber.org/zap"
)

const (
	HEADER = "Day Infected Uninfected Contacts"
	// COMPRESSED_SUFFIX is appended to the file name of bzip2-compressed output.
	COMPRESSED_SUFFIX = ".bz2"
)

// TrimOutputDir removes at most one trailing slash.
func TrimOutputDir(outdir string) string {
	return strings.TrimSuffix(outdir, "/")
}

// FileName names the output file of a run after every parameter it depends on, e.g.
// OUT/DEADBEEF0BADF00D-1000-3-0.100-0.05-0.20-3-14.
func FileName(outdir string, p epidemic.Params) string {
	return fmt.Sprintf("%s/%08X%08X-%d-%d-%5.3f-%4.2f-%4.2f-%d-%d",
		TrimOutputDir(outdir), p.SeedCov, p.SeedSwn, p.ManyNode, p.HalfDegree,
		p.Beta, p.Chance, p.Inert, p.Incubating, p.Recovery)
}

// WriteSeries writes the header followed by one row per day.
func WriteSeries(w io.Writer, series []metrics.DayStats) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, HEADER); err != nil {
		return err
	}
	for _, st := range series {
		if _, err := fmt.Fprintf(bw, "%3d  %7.4f  %7.4f  %7.4f\n",
			st.Day, st.Infected, st.Uninfected, st.Contacts); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// File is an output file under construction. Rows go to a temporary sibling of the final
// path; Commit renames it into place, so a failed run never leaves a partial file behind.
type File struct {
	path     string
	tmp      *os.File
	compress bool
	logger   *zap.Logger
}

// Create opens the temporary file next to path. It is called before the run starts so an
// unusable output directory is reported without simulating anything. With compress set the
// rows are bzip2-compressed and COMPRESSED_SUFFIX is appended to path.
func Create(path string, compress bool, logger *zap.Logger) (*File, error) {
	if compress {
		path += COMPRESSED_SUFFIX
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "cannot open output file: %s", path)
	}
	return &File{path: path, tmp: tmp, compress: compress, logger: logger}, nil
}

func (f *File) GetPath() string {
	return f.path
}

func (f *File) write(series []metrics.DayStats) error {
	if !f.compress {
		return WriteSeries(f.tmp, series)
	}
	bz, err := bzip2.NewWriter(f.tmp, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := WriteSeries(bz, series); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func (f *File) Commit(series []metrics.DayStats) error {
	if err := f.write(series); err != nil {
		f.Abort()
		return util.WrapErrorf(err, util.ErrResource, "cannot write output file: %s", f.path)
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return util.WrapErrorf(err, util.ErrResource, "cannot close output file: %s", f.path)
	}
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		os.Remove(f.tmp.Name())
		return util.WrapErrorf(err, util.ErrResource, "cannot rename output file: %s", f.path)
	}
	f.logger.Debug("output file written", zap.String("path", f.path), zap.Int("rows", len(series)))
	return nil
}

// Abort discards the temporary file.
func (f *File) Abort() {
	name := f.tmp.Name()
	f.tmp.Close()
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		f.logger.Warn("cannot remove temporary output file", zap.String("path", name), zap.Error(err))
	}
}
