package server

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cardwatch/fraudscore/internal/logging"
	"github.com/cardwatch/fraudscore/internal/realtime"
	"github.com/cardwatch/fraudscore/internal/scoring"
	"github.com/cardwatch/fraudscore/internal/traces"
)

// PredictionResponse is the wire shape for a scored transaction.
type PredictionResponse struct {
	Prediction struct {
		Label       int     `json:"label"`
		Status      string  `json:"status"`
		FraudProba  float64 `json:"fraud_probability"`
		NormalProba float64 `json:"normal_probability"`
	} `json:"prediction"`
	Risk struct {
		Tier       string `json:"tier"`
		Action     string `json:"recommended_action"`
		Confidence string `json:"confidence"`
	} `json:"risk"`
	Metadata struct {
		Timestamp        string  `json:"timestamp"`
		ProcessingTimeMS float64 `json:"processing_time_ms"`
		ModelType        string  `json:"model_type"`
		APIVersion       string  `json:"api_version"`
	} `json:"metadata"`
}

// assembleResponse combines a scoring result with request timing and
// static model metadata. Probabilities are rounded to 4 decimals on the
// wire only.
func (s *Server) assembleResponse(result *scoring.PredictionResult, start time.Time) PredictionResponse {
	var resp PredictionResponse
	resp.Prediction.Label = result.Label
	resp.Prediction.Status = result.Status
	resp.Prediction.FraudProba = round4(result.FraudProba)
	resp.Prediction.NormalProba = round4(result.NormalProba)
	resp.Risk.Tier = string(result.RiskTier)
	resp.Risk.Action = string(result.Action)
	resp.Risk.Confidence = string(result.Confidence)
	resp.Metadata.Timestamp = time.Now().UTC().Format(time.RFC3339)
	resp.Metadata.ProcessingTimeMS = elapsedMS(start)
	resp.Metadata.ModelType = s.scoringCtx.Bundle().Classifier.ModelType
	resp.Metadata.APIVersion = APIVersion
	return resp
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func elapsedMS(start time.Time) float64 {
	ms := float64(time.Since(start).Microseconds()) / 1000.0
	if ms < 0 {
		return 0
	}
	return ms
}

// predictHandler handles POST /predict
func (s *Server) predictHandler(c *gin.Context) {
	start := time.Now()
	ctx, span := traces.StartSpan(c.Request.Context(), "predict")
	defer span.End()

	if !s.scoringCtx.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "model_unavailable",
			"message": "Model is not loaded. Scoring is unavailable.",
		})
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_json",
			"message": "Request body must be a JSON object",
		})
		return
	}

	tx, verr := scoring.ParseTransaction(payload)
	if verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"field":   verr.Field,
			"message": verr.Message,
		})
		return
	}

	result, err := s.scoringCtx.Score(s.scoringCtx.Preprocess(tx))
	if err != nil {
		logging.L(ctx).Error("scoring failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "inference_error",
			"message": "Prediction failed",
		})
		return
	}

	span.SetAttributes(
		traces.PredictionStatus(result.Status),
		traces.RiskTier(string(result.RiskTier)),
		traces.FraudProbability(result.FraudProba),
	)

	resp := s.assembleResponse(result, start)

	s.realtimeHub.BroadcastPrediction(realtime.PredictionEvent{
		Status:     result.Status,
		FraudProba: resp.Prediction.FraudProba,
		RiskTier:   string(result.RiskTier),
		Action:     string(result.Action),
		Amount:     tx.Amount,
		ElapsedMS:  resp.Metadata.ProcessingTimeMS,
	})

	c.JSON(http.StatusOK, resp)
}

// testNormalHandler handles GET /test
func (s *Server) testNormalHandler(c *gin.Context) {
	s.runSelfTest(c, scoring.ReferenceNormal(), "Reference normal transaction (expected: NORMAL)")
}

// testFraudHandler handles GET /test/fraud
func (s *Server) testFraudHandler(c *gin.Context) {
	s.runSelfTest(c, scoring.ReferenceFraud(), "Reference fraud transaction (expected: FRAUDE)")
}

func (s *Server) runSelfTest(c *gin.Context, payload map[string]any, description string) {
	start := time.Now()

	if !s.scoringCtx.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "model_unavailable",
			"message": "Model is not loaded. Self-test is unavailable.",
		})
		return
	}

	tx, verr := scoring.ParseTransaction(payload)
	if verr != nil {
		// Reference payloads are fixed; a validation failure here is a bug.
		logging.L(c.Request.Context()).Error("reference payload rejected", "error", verr)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Self-test payload rejected",
		})
		return
	}

	result, err := s.scoringCtx.Score(s.scoringCtx.Preprocess(tx))
	if err != nil {
		logging.L(c.Request.Context()).Error("self-test scoring failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "inference_error",
			"message": "Self-test prediction failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test": gin.H{
			"description": description,
			"input":       payload,
		},
		"result": s.assembleResponse(result, start),
	})
}

// infoHandler handles GET /info
func (s *Server) infoHandler(c *gin.Context) {
	info := gin.H{
		"name":        "fraudscore",
		"description": "Credit card fraud detection scoring API",
		"api_version": APIVersion,
		"model_ready": s.scoringCtx.Ready(),
	}

	if b := s.scoringCtx.Bundle(); b != nil {
		model := gin.H{
			"type":         b.Metadata.ModelType,
			"version":      b.Metadata.Version,
			"num_features": b.Classifier.NumFeatures,
			"trained_at":   b.Metadata.TrainedAt,
		}
		if len(b.Metadata.TestMetrics) > 0 {
			model["test_metrics"] = b.Metadata.TestMetrics
		}
		info["model"] = model
		info["features"] = b.FeatureNames
	}

	c.JSON(http.StatusOK, info)
}

// healthHandler handles GET /health
func (s *Server) healthHandler(c *gin.Context) {
	hs := s.scoringCtx.HealthCheck()

	httpStatus := http.StatusOK
	if hs.Status != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":      hs.Status,
		"model":       hs.ModelStatus,
		"api_version": APIVersion,
		"timestamp":   hs.Timestamp.Format(time.RFC3339),
	})
}

func (s *Server) livenessHandler(c *gin.Context) {
	if !s.healthy.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	// Readiness requires both the HTTP layer and the model
	if !s.ready.Load() || !s.scoringCtx.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
