// Package degreedist gives the degree distribution of a Watts-Strogatz network rewired lap by lap.
//
// A. Barrat & M. Weigt 1999 "On the properties of small-world network models",
// arXiv:cond-mat/9903411v2, eq. (5).
package degreedist

import "math"

// NEGLIGIBLE is the term size below which a tail sum stops.
const NEGLIGIBLE = 1e-8

/*
Probability of a vertex having degree c, for half-degree k and rewiring probability beta:

	P(c) = sum_{n=0}^{min(k, c-k)} C(k,n) (1-beta)^n beta^(k-n) (k beta)^(c-k-n) e^(-k beta) / (c-k-n)!

n counts the k "own" lattice links that survived, c-k-n the links received from other vertices'
rewiring (Poisson with mean k beta).
*/
func Probability(k int, beta float64, c int) float64 {
	if c < k {
		return 0
	}

	rate := float64(k) * beta
	decay := math.Exp(-rate)
	sum := 0.0
	for n := 0; n <= k && n <= c-k; n++ {
		sum += binomial(k, n) *
			math.Pow(1-beta, float64(n)) *
			math.Pow(beta, float64(k-n)) *
			poissonTerm(rate, c-k-n) * decay
	}
	return sum
}

// Tail sums Probability from degree `from` upwards until a term becomes negligible.
// At least one term is always included.
func Tail(k int, beta float64, from int) float64 {
	tail := 0.0
	for c := from; ; c++ {
		p := Probability(k, beta, c)
		tail += p
		if math.Abs(p) < NEGLIGIBLE && c >= 2*k {
			break
		}
	}
	return tail
}

func binomial(k, n int) float64 {
	r := 1.0
	for j := 0; j < n; j++ {
		r = r * float64(k-j) / float64(j+1)
	}
	return math.Round(r)
}

// poissonTerm returns rate^m / m! without forming either factor on its own.
func poissonTerm(rate float64, m int) float64 {
	t := 1.0
	for j := 1; j <= m; j++ {
		t = t * rate / float64(j)
	}
	return t
}
