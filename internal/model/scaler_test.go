package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitScaler_ReferenceAmounts(t *testing.T) {
	s := FitScaler(ReferenceAmounts)

	// Mean of {0, 1, 25, 77, 2125.87}
	assert.InDelta(t, 445.774, s.Mean, 1e-9)
	assert.Greater(t, s.Std, 0.0)

	// Centering: transforming the mean yields zero
	assert.InDelta(t, 0.0, s.Transform(s.Mean), 1e-12)
}

func TestFitScaler_ConstantSample(t *testing.T) {
	s := FitScaler([]float64{5, 5, 5})
	assert.Equal(t, 1.0, s.Std)
	assert.InDelta(t, 0.0, s.Transform(5), 1e-12)
}

func TestFitScaler_Empty(t *testing.T) {
	s := FitScaler(nil)
	assert.InDelta(t, 3.0, s.Transform(3), 1e-12)
}

func TestTransform_ZeroStdDegradesToCentering(t *testing.T) {
	s := &StandardScaler{Mean: 10, Std: 0}
	assert.InDelta(t, -7.0, s.Transform(3), 1e-12)
}

func TestLoadScaler(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "amount_scaler.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mean":88.35,"std":250.12}`), 0o600))

	s, err := LoadScaler(path)
	require.NoError(t, err)
	assert.InDelta(t, 88.35, s.Mean, 1e-12)
	assert.InDelta(t, 0.0, s.Transform(88.35), 1e-12)
}

func TestLoadScaler_MissingFile(t *testing.T) {
	_, err := LoadScaler(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
