// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// FixtureClassifierJSON is a logistic model over 29 features that scores
// the reference normal transaction below 0.5 and the reference fraud
// transaction above 0.5. Weights load on V10 and V14.
func FixtureClassifierJSON(t *testing.T) []byte {
	t.Helper()

	weights := make([]float64, 29)
	weights[9] = -0.4
	weights[13] = -0.6

	data, err := json.Marshal(map[string]any{
		"model_type":   "logistic_regression",
		"num_features": 29,
		"intercept":    -2.0,
		"weights":      weights,
	})
	if err != nil {
		t.Fatalf("marshal fixture classifier: %v", err)
	}
	return data
}

// WriteModelDir writes a complete artifact set into a temp directory and
// returns its path.
func WriteModelDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	write(t, dir, "fraud_model.json", FixtureClassifierJSON(t))
	write(t, dir, "amount_scaler.json", []byte(`{"mean":88.35,"std":250.12}`))

	names := make([]string, 0, 29)
	for i := 1; i <= 28; i++ {
		names = append(names, "V"+strconv.Itoa(i))
	}
	names = append(names, "Amount_Norm")
	data, err := json.Marshal(names)
	if err != nil {
		t.Fatalf("marshal feature names: %v", err)
	}
	write(t, dir, "feature_names.json", data)

	write(t, dir, "model_metadata.json", []byte(`{
		"model_type": "logistic_regression",
		"version": "2.0.0",
		"num_features": 29,
		"trained_at": "2026-05-12T09:30:00Z",
		"test_metrics": {"auc": 0.97, "recall": 0.88}
	}`))

	return dir
}

// WriteClassifierOnlyDir writes just the classifier artifact so loaders
// exercise their fallbacks for everything else.
func WriteClassifierOnlyDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	write(t, dir, "fraud_model.json", FixtureClassifierJSON(t))
	return dir
}

func write(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
