package random

import (
	"github.com/rmt1947/cov-swn/pkg/util"
	"golang.org/x/exp/rand"
)

// Resolution is the denominator of every quantized probability.
const Resolution = 1024

// Threshold is a probability scaled to an integer in [0, Resolution].
type Threshold int

// Quantize converts p to a Threshold, rounding half to even. Values that land outside
// [0, Resolution] are rejected.
func Quantize(p float64) (Threshold, error) {
	t := int(util.RoundHalfEven(Resolution * p))
	if t < 0 || t > Resolution {
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "probability %v out of range", p)
	}
	return Threshold(t), nil
}

func (t Threshold) Probability() float64 {
	return float64(t) / Resolution
}

// Stream is one seeded sequence of draws. Each logical consumer (graph construction,
// epidemic) owns its own Stream; none are shared.
type Stream struct {
	rd *rand.Rand
}

func NewStream(seed uint32) *Stream {
	return &Stream{rd: rand.New(rand.NewSource(uint64(seed)))}
}

// Intn draws uniformly from [0, n).
func (s *Stream) Intn(n int) int {
	return s.rd.Intn(n)
}

func (s *Stream) Draw1024() int {
	return s.rd.Intn(Resolution)
}

// Bernoulli consumes exactly one draw and succeeds when it falls below t.
func (s *Stream) Bernoulli(t Threshold) bool {
	return s.Draw1024() < int(t)
}
