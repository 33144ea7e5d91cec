package metrics

import (
	"fmt"

	"github.com/rmt1947/cov-swn/pkg/util"
)

// BINS_PER_HALF_DEGREE sizes the histogram: 6*halfdegree bins, the last one collecting every
// degree >= 6*halfdegree-1.
const BINS_PER_HALF_DEGREE = 6

type DegreeTally struct {
	halfDegree int
	counts     []int
	total      int
}

func NewDegreeTally(halfDegree int) *DegreeTally {
	util.AssertPanic(halfDegree > 0, "metrics: degree tally needs a positive half-degree")
	return &DegreeTally{
		halfDegree: halfDegree,
		counts:     make([]int, BINS_PER_HALF_DEGREE*halfDegree),
	}
}

func (dt *DegreeTally) Add(degree int) {
	bin := degree
	if bin >= len(dt.counts) {
		bin = len(dt.counts) - 1
	}
	dt.counts[bin]++
	dt.total++
}

func (dt *DegreeTally) NumberOfBins() int {
	return len(dt.counts)
}

// OverflowBin is the index of the bin holding every degree >= OverflowBin().
func (dt *DegreeTally) OverflowBin() int {
	return len(dt.counts) - 1
}

func (dt *DegreeTally) GetCount(bin int) int {
	return dt.counts[bin]
}

func (dt *DegreeTally) GetCounts() []int {
	return dt.counts
}

func (dt *DegreeTally) Sum() int {
	sum := 0
	for _, c := range dt.counts {
		sum += c
	}
	return sum
}

func (dt *DegreeTally) Fraction(bin int) float64 {
	if dt.total == 0 {
		return 0
	}
	return float64(dt.counts[bin]) / float64(dt.total)
}

// AssertTotal panics unless the bins account for exactly numberOfVertices nodes.
func (dt *DegreeTally) AssertTotal(numberOfVertices int) {
	sum := dt.Sum()
	util.AssertPanic(sum == numberOfVertices && sum == dt.total,
		fmt.Sprintf("metrics: degree tally holds %d nodes, graph has %d", sum, numberOfVertices))
}
