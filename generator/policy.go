package generator

import (
	"math"
	"math/rand/v2"
)

// Policy chooses one of the alternatives given their scores. scores is never empty
// and contains no negative infinities.
type Policy interface {
	Choose(rng *rand.Rand, scores []float64) int
}

// Proportional picks an alternative with probability proportional to 2^score.
type Proportional struct{}

func (Proportional) Choose(rng *rand.Rand, scores []float64) int {
	top := math.Inf(-1)
	for _, s := range scores {
		if s > top {
			top = s
		}
	}

	weights := make([]float64, len(scores))
	total := 0.0
	for i, s := range scores {
		weights[i] = math.Exp2(s - top)
		total += weights[i]
	}

	left := rng.Float64() * total
	for i, w := range weights {
		left -= w
		if left < 0 {
			return i
		}
	}
	return len(scores) - 1
}

// Greedy picks the best scoring alternative, ties are broken at random.
type Greedy struct{}

func (Greedy) Choose(rng *rand.Rand, scores []float64) int {
	var best []int
	for i, s := range scores {
		switch {
		case len(best) == 0 || s > scores[best[0]]:
			best = append(best[:0], i)
		case s == scores[best[0]]:
			best = append(best, i)
		}
	}
	return best[rng.IntN(len(best))]
}
