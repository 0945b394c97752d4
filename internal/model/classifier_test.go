package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logisticFixture builds a small logistic model over 29 features that
// separates the reference normal/fraud transactions on V10 and V14.
func logisticFixture() *Classifier {
	weights := make([]float64, 29)
	weights[9] = -0.4  // V10
	weights[13] = -0.6 // V14
	return &Classifier{
		ModelType:   "logistic_regression",
		NumFeatures: 29,
		Intercept:   -2.0,
		Weights:     weights,
	}
}

// treeFixture builds a single-tree ensemble splitting on V14.
func treeFixture() *Classifier {
	return &Classifier{
		ModelType:   "xgboost",
		NumFeatures: 29,
		BaseScore:   0,
		Trees: []Tree{{
			Feature:   []int{13, -1, -1},
			Threshold: []float64{-4.0, 0, 0},
			Left:      []int{1, -1, -1},
			Right:     []int{2, -1, -1},
			Value:     []float64{0, 3.0, -2.5},
		}},
	}
}

func TestLogistic_ProbabilitiesSumToOne(t *testing.T) {
	c := logisticFixture()
	x := make([]float64, 29)
	x[13] = -3.2

	proba, err := c.PredictProba(x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-9)
	assert.GreaterOrEqual(t, proba[1], 0.0)
	assert.LessOrEqual(t, proba[1], 1.0)
}

func TestLogistic_LabelMatchesProbability(t *testing.T) {
	c := logisticFixture()

	low := make([]float64, 29) // margin = intercept = -2.0
	label, err := c.Predict(low)
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	high := make([]float64, 29)
	high[13] = -8.0 // margin = -2.0 + 4.8 = 2.8
	label, err = c.Predict(high)
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestTree_EvalBothBranches(t *testing.T) {
	c := treeFixture()

	fraudy := make([]float64, 29)
	fraudy[13] = -7.7
	proba, err := c.PredictProba(fraudy)
	require.NoError(t, err)
	assert.Greater(t, proba[1], 0.9)

	normal := make([]float64, 29)
	normal[13] = -0.3
	proba, err = c.PredictProba(normal)
	require.NoError(t, err)
	assert.Less(t, proba[1], 0.1)
}

func TestPredict_Deterministic(t *testing.T) {
	c := treeFixture()
	x := make([]float64, 29)
	x[13] = -5.1

	first, err := c.PredictProba(x)
	require.NoError(t, err)
	second, err := c.PredictProba(x)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPredict_FeatureMismatch(t *testing.T) {
	c := logisticFixture()
	_, err := c.PredictProba(make([]float64, 5))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFeatureMismatch)
}

func TestLoadClassifier_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fraud_model.json")

	data, err := json.Marshal(logisticFixture())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := LoadClassifier(path)
	require.NoError(t, err)
	assert.Equal(t, 29, c.NumFeatures)
	assert.Equal(t, "logistic_regression", c.ModelType)
}

func TestLoadClassifier_MissingFile(t *testing.T) {
	_, err := LoadClassifier(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadClassifier_RejectsEmptyModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fraud_model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model_type":"xgboost","num_features":29}`), 0o600))

	_, err := LoadClassifier(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func TestLoadClassifier_RejectsWeightMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fraud_model.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"model_type":"logistic_regression","num_features":29,"weights":[1,2,3]}`), 0o600))

	_, err := LoadClassifier(path)
	assert.Error(t, err)
}
