// Package scoring runs the fraud classifier over validated transactions
// and derives the risk tier, recommended action, and confidence tier from
// the fraud probability.
package scoring

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/cardwatch/fraudscore/internal/artifacts"
	"github.com/cardwatch/fraudscore/internal/metrics"
)

// RiskTier buckets the fraud probability into five discrete levels.
type RiskTier string

const (
	RiskVeryHigh RiskTier = "VERY_HIGH"
	RiskHigh     RiskTier = "HIGH"
	RiskMedium   RiskTier = "MEDIUM"
	RiskLow      RiskTier = "LOW"
	RiskVeryLow  RiskTier = "VERY_LOW"
)

// Action is the recommended handling for a scored transaction. It follows
// the discrete label, not the risk tier, so the two can disagree near the
// decision boundary.
type Action string

const (
	ActionBlock   Action = "BLOCK"
	ActionApprove Action = "APPROVE"
)

// Confidence reflects how far the fraud probability sits from the 0.5
// decision boundary. Only two tiers exist.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
)

// Status strings reported to callers.
const (
	StatusFraud  = "FRAUDE"
	StatusNormal = "NORMAL"
)

// ErrNotReady is returned by Score when no classifier is loaded.
var ErrNotReady = errors.New("model not loaded")

// PredictionResult is the outcome of scoring one transaction.
type PredictionResult struct {
	Label       int
	FraudProba  float64
	NormalProba float64
	Status      string
	RiskTier    RiskTier
	Action      Action
	Confidence  Confidence
}

// Context holds the loaded artifact bundle behind a readiness flag. It is
// written once during startup and read-only afterwards, so request
// handlers read it without locking.
type Context struct {
	bundle *artifacts.Bundle
	ready  atomic.Bool
	logger *slog.Logger
}

// NewContext creates an unready scoring context.
func NewContext(logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{logger: logger}
}

// Load resolves artifacts from the candidate directories and flips the
// context ready on success. A failed load leaves the context unready and
// returns the cause; the process keeps serving health and info endpoints.
func (c *Context) Load(dirs []string) error {
	resolver := artifacts.NewResolver(dirs, c.logger)
	bundle, err := resolver.Load()
	if err != nil {
		metrics.ModelLoaded.Set(0)
		return err
	}

	c.bundle = bundle
	c.ready.Store(true)
	metrics.ModelLoaded.Set(1)
	c.logger.Info("scoring context ready",
		"model_type", bundle.Classifier.ModelType,
		"model_version", bundle.Metadata.Version,
		"num_features", bundle.Classifier.NumFeatures,
	)
	return nil
}

// Ready reports whether a classifier is loaded.
func (c *Context) Ready() bool {
	return c.ready.Load()
}

// Bundle returns the loaded artifacts, or nil before a successful Load.
func (c *Context) Bundle() *artifacts.Bundle {
	return c.bundle
}

// Score runs the classifier over a preprocessed feature vector. It must
// only be called after Ready reports true; unready contexts reject the
// call without touching the classifier.
func (c *Context) Score(vector []float64) (result *PredictionResult, err error) {
	if !c.Ready() {
		return nil, ErrNotReady
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			metrics.InferenceErrorsTotal.Inc()
			err = fmt.Errorf("inference panic: %v", r)
			result = nil
		}
	}()

	proba, err := c.bundle.Classifier.PredictProba(vector)
	if err != nil {
		metrics.InferenceErrorsTotal.Inc()
		return nil, fmt.Errorf("predict: %w", err)
	}

	pFraud := proba[1]
	label := 0
	status := StatusNormal
	if pFraud >= 0.5 {
		label = 1
		status = StatusFraud
	}

	result = &PredictionResult{
		Label:       label,
		FraudProba:  pFraud,
		NormalProba: proba[0],
		Status:      status,
		RiskTier:    RiskTierFor(pFraud),
		Action:      actionFor(label),
		Confidence:  ConfidenceFor(pFraud),
	}

	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(status).Inc()
	metrics.FraudProbability.Observe(pFraud)

	return result, nil
}

// RiskTierFor maps a fraud probability onto closed-open tier bins.
func RiskTierFor(p float64) RiskTier {
	switch {
	case p >= 0.8:
		return RiskVeryHigh
	case p >= 0.6:
		return RiskHigh
	case p >= 0.4:
		return RiskMedium
	case p >= 0.2:
		return RiskLow
	default:
		return RiskVeryLow
	}
}

// ConfidenceFor maps distance from the decision boundary onto the two
// confidence tiers.
func ConfidenceFor(p float64) Confidence {
	if math.Abs(p-0.5) > 0.3 {
		return ConfidenceHigh
	}
	return ConfidenceMedium
}

func actionFor(label int) Action {
	if label == 1 {
		return ActionBlock
	}
	return ActionApprove
}
