package smallworld

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rmt1947/cov-swn/pkg/degreedist"
	"go.uber.org/zap"
)

// PMF_TOLERANCE bounds how far the reported theoretical distribution may stray from a total of 1.
const PMF_TOLERANCE = 1e-7

// WriteDegreeReport writes the empirical degree distribution next to the Barrat-Weigt
// prediction [2] and returns the total theoretical mass it reported. A total outside
// PMF_TOLERANCE is logged, never returned as an error.
//
// [2] A. Barrat & M. Weigt 1999 arXiv:cond-mat/9903411v2.
func (nw *Network) WriteDegreeReport(w io.Writer, logger *zap.Logger) (float64, error) {
	bw := bufio.NewWriter(w)
	n := nw.NumberOfVertices()
	k := nw.halfDegree

	fmt.Fprintf(bw, "%7d=manynode, %d=halfdegree, %5.3f=beta\n\n", n, k, nw.beta)
	fmt.Fprintf(bw, "  Degree   Node count   Fraction     Ref.[2]\n")

	chkNodes, chkMass := 0, 0.0
	overflow := nw.tally.OverflowBin()
	for bin := 0; bin < overflow; bin++ {
		p := degreedist.Probability(k, nw.beta, bin)
		fmt.Fprintf(bw, "  %4d       %7d    %8.6f    %8.6f\n",
			bin, nw.tally.GetCount(bin), nw.tally.Fraction(bin), p)
		chkNodes += nw.tally.GetCount(bin)
		chkMass += p
	}

	tail := degreedist.Tail(k, nw.beta, overflow)
	fmt.Fprintf(bw, ">=%4d       %7d    %8.6f    %8.6f\n",
		overflow, nw.tally.GetCount(overflow), nw.tally.Fraction(overflow), tail)
	chkNodes += nw.tally.GetCount(overflow)
	chkMass += tail

	if err := bw.Flush(); err != nil {
		return chkMass, err
	}

	if chkNodes != n {
		logger.Warn("degree report does not cover every node",
			zap.Int("reported", chkNodes), zap.Int("manynode", n))
	}
	if math.Abs(1-chkMass) >= PMF_TOLERANCE {
		logger.Warn("theoretical degree distribution does not sum to one",
			zap.Float64("total", chkMass))
	}
	return chkMass, nil
}

// WriteDegreeReportFile writes the report to path. Failures are logged and otherwise ignored:
// the report is a diagnostic and never stops a run.
func (nw *Network) WriteDegreeReportFile(path string, logger *zap.Logger) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("cannot open degree report file", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := nw.WriteDegreeReport(f, logger); err != nil {
		logger.Warn("cannot write degree report file", zap.String("path", path), zap.Error(err))
	}
}
