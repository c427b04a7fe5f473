package bias

import (
	"github.com/samber/lo"
)

// Row is one bit of a bias table.
type Row struct {
	Bit          int      `json:"bit" yaml:"bit"`
	Population   int64    `json:"population" yaml:"population"`
	Computed     bool     `json:"computed" yaml:"computed"`
	Value        float64  `json:"value" yaml:"value"`
	Message      string   `json:"message,omitempty" yaml:"message,omitempty"`
	Reference    *float64 `json:"reference,omitempty" yaml:"reference,omitempty"`
	Extrapolated bool     `json:"extrapolated" yaml:"extrapolated"`
}

// Best returns the computed value if there is one, otherwise the reference
// value. ok is false when neither exists.
func (r Row) Best() (v float64, ok bool) {
	if r.Computed {
		return r.Value, true
	}
	if r.Reference != nil {
		return *r.Reference, true
	}
	return 0, false
}

// Table computes one row per bit in [from, to]. Bits past the estimator's
// ceiling are left uncomputed and carry only their reference value.
func Table(e *Estimator, from, to int) []Row {
	if to < from {
		return nil
	}
	return lo.Map(lo.RangeFrom(from, to-from+1), func(bit int, _ int) Row {
		res := e.ExpectedBias(bit)
		row := Row{
			Bit:          bit,
			Population:   Population(bit),
			Computed:     res.Computed,
			Value:        res.Value,
			Message:      res.Message,
			Extrapolated: Extrapolated(bit),
		}
		if ref, ok := ReferenceValue(bit); ok {
			row.Reference = &ref
		}
		return row
	})
}
