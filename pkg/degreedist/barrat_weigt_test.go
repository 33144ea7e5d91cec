package degreedist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbabilityBelowHalfDegreeIsZero(t *testing.T) {
	for c := 0; c < 4; c++ {
		assert.Equal(t, 0.0, Probability(4, 0.3, c))
	}
}

func TestProbabilityUnrewiredLattice(t *testing.T) {
	k := 3
	for c := 0; c < 20; c++ {
		want := 0.0
		if c == 2*k {
			want = 1.0
		}
		assert.InDelta(t, want, Probability(k, 0, c), 1e-15, "degree %d", c)
	}
}

func TestProbabilityKnownValue(t *testing.T) {
	// k=1: P(1) = beta * e^-beta, P(2) = (1-beta) e^-beta + beta * beta e^-beta
	beta := 0.25
	e := math.Exp(-beta)
	assert.InDelta(t, beta*e, Probability(1, beta, 1), 1e-12)
	assert.InDelta(t, (1-beta)*e+beta*beta*e, Probability(1, beta, 2), 1e-12)
}

func TestProbabilitySumsToOne(t *testing.T) {
	testCases := []struct {
		name string
		k    int
		beta float64
	}{
		{name: "lattice", k: 3, beta: 0},
		{name: "weak rewiring", k: 2, beta: 0.05},
		{name: "mid rewiring", k: 5, beta: 0.5},
		{name: "strong rewiring", k: 3, beta: 0.95},
		{name: "wide lattice", k: 10, beta: 0.2},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			sum := 0.0
			for c := tt.k; ; c++ {
				p := Probability(tt.k, tt.beta, c)
				sum += p
				if p < NEGLIGIBLE && c >= 2*tt.k {
					break
				}
			}
			assert.InDelta(t, 1.0, sum, 1e-7)
			assert.InDelta(t, 1.0, Tail(tt.k, tt.beta, tt.k), 1e-7)
		})
	}
}

func TestTailSplitsTotal(t *testing.T) {
	k, beta := 3, 0.4
	head := 0.0
	for c := 0; c < 6*k-1; c++ {
		head += Probability(k, beta, c)
	}
	assert.InDelta(t, 1.0, head+Tail(k, beta, 6*k-1), 1e-7)
}
