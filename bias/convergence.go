package bias

import (
	"math"

	"github.com/domino14/scramblebias/stats"
)

// SqrtHalf is the value the ratio of consecutive biases tends to.
var SqrtHalf = math.Sqrt(0.5)

// Ratio is bias(Bit) / bias(Bit-1).
type Ratio struct {
	Bit   int     `json:"bit" yaml:"bit"`
	Value float64 `json:"value" yaml:"value"`
}

// Convergence summarizes how consecutive bias ratios approach SqrtHalf.
type Convergence struct {
	Ratios     []Ratio `json:"ratios" yaml:"ratios"`
	Mean       float64 `json:"mean" yaml:"mean"`
	Stdev      float64 `json:"stdev" yaml:"stdev"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Interval   float64 `json:"interval" yaml:"interval"`
	Last       float64 `json:"last" yaml:"last"`
	Distance   float64 `json:"distance" yaml:"distance"`
}

// Ratios returns the ratio of every pair of adjacent rows that both have a
// value. Pairs whose lower value is zero are skipped.
func Ratios(rows []Row) []Ratio {
	ratios := []Ratio{}
	for i := 1; i < len(rows); i++ {
		if rows[i].Bit != rows[i-1].Bit+1 {
			continue
		}
		prev, ok := rows[i-1].Best()
		if !ok || prev == 0 {
			continue
		}
		cur, ok := rows[i].Best()
		if !ok {
			continue
		}
		ratios = append(ratios, Ratio{Bit: rows[i].Bit, Value: cur / prev})
	}
	return ratios
}

// AnalyzeConvergence summarizes the ratios of rows. confidence is in
// percent and sets the width of Interval around Mean.
func AnalyzeConvergence(rows []Row, confidence float64) Convergence {
	c := Convergence{Ratios: Ratios(rows), Confidence: confidence}
	if len(c.Ratios) == 0 {
		return c
	}
	s := &stats.Statistic{}
	for _, r := range c.Ratios {
		s.Push(r.Value)
	}
	c.Mean = s.Mean()
	c.Stdev = s.Stdev()
	c.Interval = s.Interval(confidence)
	c.Last = s.Last()
	c.Distance = math.Abs(c.Last - SqrtHalf)
	return c
}
