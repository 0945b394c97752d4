package scoring

import (
	"fmt"
	"time"
)

// HealthStatus is the outcome of a health probe.
type HealthStatus struct {
	Status      string    `json:"status"`
	ModelStatus string    `json:"model_status"`
	Timestamp   time.Time `json:"timestamp"`
}

// HealthCheck probes the scoring context. A ready context additionally
// runs one smoke prediction on an all-zero vector; a failing smoke test
// reports degraded without flipping readiness.
func (c *Context) HealthCheck() HealthStatus {
	now := time.Now().UTC()

	if !c.Ready() {
		return HealthStatus{Status: "degraded", ModelStatus: "error", Timestamp: now}
	}

	// Smoke test goes straight to the classifier so probes never show up
	// in the prediction counters.
	zero := make([]float64, c.bundle.Classifier.NumFeatures)
	if err := c.smokePredict(zero); err != nil {
		c.logger.Warn("health smoke prediction failed", "error", err)
		return HealthStatus{Status: "degraded", ModelStatus: "error", Timestamp: now}
	}

	return HealthStatus{Status: "healthy", ModelStatus: "loaded", Timestamp: now}
}

func (c *Context) smokePredict(vector []float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("smoke prediction panic: %v", r)
		}
	}()
	_, err = c.bundle.Classifier.PredictProba(vector)
	return err
}
