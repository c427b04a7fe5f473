package bias

import (
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func referenceOnlyEstimator() *Estimator {
	e := NewEstimator()
	e.SetLogger(zerolog.Nop())
	e.SetMaxBit(0)
	return e
}

func TestTable(t *testing.T) {
	is := is.New(t)
	e := NewEstimator()
	e.SetLogger(zerolog.Nop())
	e.SetMaxBit(6)

	rows := Table(e, 0, 20)
	is.Equal(len(rows), 21)
	for i, r := range rows {
		is.Equal(r.Bit, i)
		is.Equal(r.Population, Population(i))
		is.Equal(r.Computed, i <= 6)
		is.Equal(r.Extrapolated, i > 15)
		is.True(r.Reference != nil)
		is.Equal(*r.Reference, Reference[i])
		if r.Computed {
			is.Equal(r.Value, Reference[i])
			is.Equal(r.Message, "")
		} else {
			is.True(r.Message != "")
		}
		v, ok := r.Best()
		is.True(ok)
		is.Equal(v, Reference[i])
	}
}

func TestTableOutsideReference(t *testing.T) {
	is := is.New(t)
	rows := Table(referenceOnlyEstimator(), 30, 33)
	is.Equal(len(rows), 4)
	is.True(rows[1].Reference != nil)
	is.True(rows[2].Reference == nil)
	_, ok := rows[3].Best()
	is.True(!ok)
}

func TestTableEmpty(t *testing.T) {
	is := is.New(t)
	is.Equal(len(Table(referenceOnlyEstimator(), 5, 4)), 0)
	is.Equal(len(Table(referenceOnlyEstimator(), 4, 4)), 1)
}

func TestRatios(t *testing.T) {
	is := is.New(t)
	rows := Table(referenceOnlyEstimator(), 0, 4)
	ratios := Ratios(rows)
	// bit 0 is zero so the 0->1 pair is skipped.
	is.Equal(len(ratios), 3)
	is.Equal(ratios[0], Ratio{Bit: 2, Value: 0.5})
	is.Equal(ratios[1], Ratio{Bit: 3, Value: 0.75})
	assert.InDelta(t, 0.729165, ratios[2].Value, 1e-6)

	// Non-adjacent rows are not paired.
	gapped := []Row{rows[1], rows[3], rows[4]}
	is.Equal(len(Ratios(gapped)), 1)
}

func TestAnalyzeConvergence(t *testing.T) {
	is := is.New(t)
	rows := Table(referenceOnlyEstimator(), 5, 15)
	c := AnalyzeConvergence(rows, 95)
	is.Equal(len(c.Ratios), 10)
	is.Equal(c.Confidence, 95.0)
	is.Equal(c.Ratios[len(c.Ratios)-1].Bit, 15)
	assert.InDelta(t, SqrtHalf, c.Last, 1e-4)
	assert.InDelta(t, SqrtHalf, c.Mean, 5e-3)
	is.True(c.Mean > SqrtHalf)
	is.True(c.Stdev > 0)
	is.True(c.Interval > 0)
	is.True(c.Distance < 1e-4)
}

func TestAnalyzeConvergenceEmpty(t *testing.T) {
	is := is.New(t)
	c := AnalyzeConvergence(Table(referenceOnlyEstimator(), 0, 1), 95)
	is.Equal(len(c.Ratios), 0)
	is.Equal(c.Mean, 0.0)
	is.Equal(c.Distance, 0.0)
}
