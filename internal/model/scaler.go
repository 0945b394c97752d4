package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// StandardScaler is a one-dimensional center/scale transform fitted at
// training time and applied to the raw transaction amount before scoring.
type StandardScaler struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// ReferenceAmounts is the fixed sample used to synthesize a replacement
// scaler when the exported artifact is missing.
var ReferenceAmounts = []float64{0, 1, 25, 77, 2125.87}

// LoadScaler reads a fitted scaler artifact from path.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured artifact search list
	if err != nil {
		return nil, fmt.Errorf("read scaler artifact: %w", err)
	}

	var s StandardScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scaler artifact: %w", err)
	}
	return &s, nil
}

// FitScaler fits a standard scaler on samples using the population
// standard deviation. A zero or near-zero deviation degrades to pure
// centering so Transform stays well-defined.
func FitScaler(samples []float64) *StandardScaler {
	if len(samples) == 0 {
		return &StandardScaler{Mean: 0, Std: 1}
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(len(samples))

	var sq float64
	for _, v := range samples {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(samples)))
	if std < 1e-12 {
		std = 1
	}

	return &StandardScaler{Mean: mean, Std: std}
}

// Transform applies the forward transform to a single value.
func (s *StandardScaler) Transform(v float64) float64 {
	std := s.Std
	if std == 0 {
		std = 1
	}
	return (v - s.Mean) / std
}
