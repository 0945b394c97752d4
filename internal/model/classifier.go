// Package model implements in-process evaluation of the exported fraud
// classifier and its companion artifacts.
//
// The training pipeline exports the fitted model as a JSON document in one
// of two kinds: a gradient-boosted tree ensemble (per-tree node arrays, the
// summed leaf margins plus base score pushed through a sigmoid) or a plain
// logistic regression (weight vector plus intercept). Both produce a fraud
// probability in [0, 1]; the predicted label is 1 when probability >= 0.5.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Sentinel errors for classifier misuse.
var (
	ErrFeatureMismatch = errors.New("feature vector length does not match model")
	ErrEmptyModel      = errors.New("model has neither trees nor weights")
)

// Tree is a single regression tree in array layout. Node i is a leaf when
// Feature[i] < 0; otherwise samples with x[Feature[i]] < Threshold[i] go to
// Left[i], the rest to Right[i]. Leaf margins live in Value.
type Tree struct {
	Feature   []int     `json:"feature"`
	Threshold []float64 `json:"threshold"`
	Left      []int     `json:"left"`
	Right     []int     `json:"right"`
	Value     []float64 `json:"value"`
}

// Classifier is a loaded binary fraud classifier.
type Classifier struct {
	ModelType   string    `json:"model_type"`
	NumFeatures int       `json:"num_features"`
	BaseScore   float64   `json:"base_score"`
	Trees       []Tree    `json:"trees,omitempty"`
	Weights     []float64 `json:"weights,omitempty"`
	Intercept   float64   `json:"intercept"`
}

// LoadClassifier reads and validates a classifier artifact from path.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured artifact search list
	if err != nil {
		return nil, fmt.Errorf("read classifier artifact: %w", err)
	}

	var c Classifier
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse classifier artifact: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier artifact %s: %w", path, err)
	}
	return &c, nil
}

func (c *Classifier) validate() error {
	if c.NumFeatures <= 0 {
		return errors.New("num_features must be positive")
	}
	if len(c.Trees) == 0 && len(c.Weights) == 0 {
		return ErrEmptyModel
	}
	if len(c.Weights) > 0 && len(c.Weights) != c.NumFeatures {
		return fmt.Errorf("weights length %d != num_features %d", len(c.Weights), c.NumFeatures)
	}
	for i, t := range c.Trees {
		n := len(t.Feature)
		if n == 0 || len(t.Threshold) != n || len(t.Left) != n || len(t.Right) != n || len(t.Value) != n {
			return fmt.Errorf("tree %d has inconsistent node arrays", i)
		}
	}
	return nil
}

// PredictProba returns the class probability distribution [normal, fraud]
// for a single feature vector. The two entries always sum to 1.
func (c *Classifier) PredictProba(x []float64) ([2]float64, error) {
	margin, err := c.margin(x)
	if err != nil {
		return [2]float64{}, err
	}
	pFraud := sigmoid(margin)
	return [2]float64{1 - pFraud, pFraud}, nil
}

// Predict returns the binary label (0 = normal, 1 = fraud) for x.
func (c *Classifier) Predict(x []float64) (int, error) {
	proba, err := c.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if proba[1] >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

// margin computes the raw log-odds score for x.
func (c *Classifier) margin(x []float64) (float64, error) {
	if len(x) != c.NumFeatures {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureMismatch, len(x), c.NumFeatures)
	}

	if len(c.Trees) > 0 {
		margin := c.BaseScore
		for i := range c.Trees {
			leaf, err := c.Trees[i].eval(x)
			if err != nil {
				return 0, fmt.Errorf("tree %d: %w", i, err)
			}
			margin += leaf
		}
		return margin, nil
	}

	margin := c.Intercept
	for i, w := range c.Weights {
		margin += w * x[i]
	}
	return margin, nil
}

// eval walks the tree from the root and returns the leaf margin.
func (t *Tree) eval(x []float64) (float64, error) {
	node := 0
	// Bounded by node count: a well-formed tree terminates long before this.
	for steps := 0; steps <= len(t.Feature); steps++ {
		f := t.Feature[node]
		if f < 0 {
			return t.Value[node], nil
		}
		if f >= len(x) {
			return 0, fmt.Errorf("split feature index %d out of range", f)
		}
		var next int
		if x[f] < t.Threshold[node] {
			next = t.Left[node]
		} else {
			next = t.Right[node]
		}
		if next < 0 || next >= len(t.Feature) {
			return 0, fmt.Errorf("child index %d out of range", next)
		}
		node = next
	}
	return 0, errors.New("tree traversal did not reach a leaf")
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
