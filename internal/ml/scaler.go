package ml

import (
	"errors"
	"fmt"
	"math"
)

// StandardScaler standardizes feature columns to zero mean and unit
// variance. Columns with zero variance pass through unscaled.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// NewStandardScaler creates an unfitted scaler
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// IsFitted reports whether Fit has been called
func (s *StandardScaler) IsFitted() bool {
	return len(s.Mean) > 0
}

// Fit computes per-column mean and standard deviation
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return errors.New("scaler: empty feature matrix")
	}

	cols := len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)

	for _, row := range X {
		for c, v := range row {
			s.Mean[c] += v
		}
	}
	n := float64(len(X))
	for c := range s.Mean {
		s.Mean[c] /= n
	}

	for _, row := range X {
		for c, v := range row {
			d := v - s.Mean[c]
			s.Std[c] += d * d
		}
	}
	for c := range s.Std {
		s.Std[c] = math.Sqrt(s.Std[c] / n)
		if s.Std[c] == 0 {
			s.Std[c] = 1
		}
	}

	return nil
}

// Transform standardizes rows using the fitted statistics. Row width
// must match the fitted column count; a silent pad or truncate would
// standardize features by the wrong column's statistics.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.IsFitted() {
		return nil, ErrNotFitted
	}

	cols := len(s.Mean)
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != cols {
			return nil, fmt.Errorf("scaler: row has %d features, fitted on %d", len(row), cols)
		}
		scaled := make([]float64, cols)
		for c, v := range row {
			scaled[c] = (v - s.Mean[c]) / s.Std[c]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits the scaler and standardizes the batch in one pass
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
