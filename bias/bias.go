// Package bias estimates the expected bias of a balanced binary scramble
// tree at a given bit depth.
//
// The bias at a depth is the expected normalized distance from an even
// split over all 2^population equally likely binary sequences, where
// population = 2^(bit-1). Binomial coefficients collapse the 2^population
// sequences into population+1 distinct one-counts, and the sum is kept in
// fixed-point big integers until the very last division.
package bias

import (
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/scramblebias/combinatorics"
)

const (
	// Precision is the fixed-point scale for imbalance magnitudes. Results
	// are exact multiples of 1/Precision.
	Precision = 1000000
	// DefaultMaxBit is the deepest bit computed before the cost guard kicks
	// in. Work grows roughly with 4^bit.
	DefaultMaxBit = 15
)

// Result is the outcome of a bias computation. Computed is false when the
// cost guard refused the bit; Message then says why.
type Result struct {
	Bit      int     `json:"bit" yaml:"bit"`
	Value    float64 `json:"value" yaml:"value"`
	Computed bool    `json:"computed" yaml:"computed"`
	Message  string  `json:"message,omitempty" yaml:"message,omitempty"`
}

// OK reports whether r holds a computed value.
func (r Result) OK() bool {
	return r.Computed
}

type Estimator struct {
	maxBit int
	logger zerolog.Logger
}

// NewEstimator returns an estimator with the default ceiling that logs
// through the global logger.
func NewEstimator() *Estimator {
	return &Estimator{
		maxBit: DefaultMaxBit,
		logger: log.Logger,
	}
}

func (e *Estimator) SetMaxBit(bit int) {
	e.maxBit = bit
}

func (e *Estimator) MaxBit() int {
	return e.maxBit
}

func (e *Estimator) SetLogger(l zerolog.Logger) {
	e.logger = l
}

var defaultEstimator = NewEstimator()

// ExpectedBias computes the bias at bit with the default estimator.
func ExpectedBias(bit int) Result {
	return defaultEstimator.ExpectedBias(bit)
}

// Population returns the number of binary items at bit, 2^(bit-1).
// It is 0 for bit <= 0.
func Population(bit int) int64 {
	if bit <= 0 {
		return 0
	}
	return int64(1) << (bit - 1)
}

// ExpectedBias returns the expected bias of the scramble tree at bit,
// zero indexed. Non-positive bits have no imbalance and yield 0.
func (e *Estimator) ExpectedBias(bit int) Result {
	if bit <= 0 {
		return Result{Bit: bit, Value: 0.0, Computed: true}
	}
	if bit > e.maxBit {
		msg := fmt.Sprintf("bit %d is too expensive to compute exactly; the limit is %d", bit, e.maxBit)
		e.logger.Warn().Int("bit", bit).Int("max-bit", e.maxBit).Msg(msg)
		return Result{Bit: bit, Computed: false, Message: msg}
	}

	start := time.Now()
	population := Population(bit)

	acc := new(big.Int)
	term := new(big.Int)
	magnitude := new(big.Int)
	for i := int64(0); i <= population; i++ {
		c := combinatorics.Combination(population, i)
		magnitude.SetInt64(imbalance(i, population))
		acc.Add(acc, term.Mul(c, magnitude))
	}

	// Divide by the number of configurations, 2^population.
	acc.Rsh(acc, uint(population))
	value := float64(acc.Int64()) / Precision

	e.logger.Debug().Int("bit", bit).Int64("population", population).
		Dur("elapsed", time.Since(start)).Float64("bias", value).Msg("computed-bias")
	return Result{Bit: bit, Value: value, Computed: true}
}

// imbalance is how far a split of i ones out of population is from even,
// in units of 1/Precision.
func imbalance(i, population int64) int64 {
	d := Precision*i/population*2 - Precision
	if d < 0 {
		return -d
	}
	return d
}
