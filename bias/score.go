package bias

import "math"

// Bits is the width of the hashed values being scored.
const Bits = 32

// treeBiasTolerance is how far a tree-seeding cell may stray from 0.5
// before it counts against a hash.
const treeBiasTolerance = 0.35

// Matrix is a per bit-pair measurement, indexed [input bit][output bit].
type Matrix [Bits][Bits]float64

// AvalancheScore compares a measured avalanche bias matrix against what a
// proper nested uniform scramble would show. Only pairs where the output
// bit is above the input bit are scored; lower is better.
func AvalancheScore(m *Matrix) float64 {
	score := 0.0
	for out := 0; out < Bits; out++ {
		for in := 0; in < out; in++ {
			diff := m[in][out] - Reference[out]
			score += diff * diff
		}
	}
	return score
}

// TreeScore counts the tree-seeding cells above the diagonal that are too
// far from 0.5.
func TreeScore(m *Matrix) float64 {
	score := 0.0
	for x := 0; x < Bits; x++ {
		for y := x + 1; y < Bits; y++ {
			if math.Abs(m[x][y]-0.5) > treeBiasTolerance {
				score++
			}
		}
	}
	return score
}

// Score is the combined ranking score of a hash candidate.
func Score(avalanche, tree *Matrix) float64 {
	return TreeScore(tree) + AvalancheScore(avalanche)
}
