package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	client *FraudscoreClient
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client *FraudscoreClient) *Handlers {
	return &Handlers{client: client}
}

// HandleScoreTransaction scores a transaction payload.
func (h *Handlers) HandleScoreTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetArguments()["transaction"]
	payload, ok := raw.(map[string]any)
	if !ok || len(payload) == 0 {
		return mcp.NewToolResultError("transaction must be a JSON object with fields V1..V28 and Amount"), nil
	}

	result, err := h.client.ScoreTransaction(ctx, payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Scoring failed: %v", err)), nil
	}

	text, err := formatPrediction(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse prediction: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleCheckHealth reports the scoring service health.
func (h *Handlers) HandleCheckHealth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := h.client.GetHealth(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Health check failed: %v", err)), nil
	}

	var hs struct {
		Status    string `json:"status"`
		Model     string `json:"model"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &hs); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse health response: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Service: %s\n", hs.Status)
	fmt.Fprintf(&sb, "Model: %s\n", hs.Model)
	if hs.Timestamp != "" {
		fmt.Fprintf(&sb, "Checked at: %s\n", hs.Timestamp)
	}
	if hs.Status != "healthy" {
		sb.WriteString("\nThe model is unavailable. Scoring requests will be rejected until it is restored.")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// HandleModelInfo returns model metadata.
func (h *Handlers) HandleModelInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := h.client.GetModelInfo(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get model info: %v", err)), nil
	}

	var info struct {
		APIVersion string `json:"api_version"`
		ModelReady bool   `json:"model_ready"`
		Model      struct {
			Type        string             `json:"type"`
			Version     string             `json:"version"`
			NumFeatures int                `json:"num_features"`
			TrainedAt   string             `json:"trained_at"`
			TestMetrics map[string]float64 `json:"test_metrics"`
		} `json:"model"`
		Features []string `json:"features"`
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse model info: %v", err)), nil
	}

	if !info.ModelReady {
		return mcp.NewToolResultText("No model is loaded. The service is running in degraded mode."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Model: %s (version %s)\n", info.Model.Type, info.Model.Version)
	fmt.Fprintf(&sb, "Features: %d\n", info.Model.NumFeatures)
	fmt.Fprintf(&sb, "Trained: %s\n", info.Model.TrainedAt)
	fmt.Fprintf(&sb, "API version: %s\n", info.APIVersion)
	if len(info.Model.TestMetrics) > 0 {
		sb.WriteString("Test metrics:\n")
		for name, value := range info.Model.TestMetrics {
			fmt.Fprintf(&sb, "  %s: %.4f\n", name, value)
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// HandleRunSelfTest runs a reference transaction through the service.
func (h *Handlers) HandleRunSelfTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenario := req.GetString("scenario", "normal")

	raw, err := h.client.RunSelfTest(ctx, scenario)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Self-test failed: %v", err)), nil
	}

	var st struct {
		Test struct {
			Description string `json:"description"`
		} `json:"test"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse self-test response: %v", err)), nil
	}

	text, err := formatPrediction(st.Result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse prediction: %v", err)), nil
	}

	return mcp.NewToolResultText(st.Test.Description + "\n\n" + text), nil
}

// formatPrediction renders a prediction response as readable text.
func formatPrediction(raw json.RawMessage) (string, error) {
	var pr struct {
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
			ProcessingTimeMS float64 `json:"processing_time_ms"`
			ModelType        string  `json:"model_type"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(raw, &pr); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Verdict: %s (label %d)\n", pr.Prediction.Status, pr.Prediction.Label)
	fmt.Fprintf(&sb, "Fraud probability: %.4f\n", pr.Prediction.FraudProba)
	fmt.Fprintf(&sb, "Risk tier: %s\n", pr.Risk.Tier)
	fmt.Fprintf(&sb, "Recommended action: %s\n", pr.Risk.Action)
	fmt.Fprintf(&sb, "Confidence: %s\n", pr.Risk.Confidence)
	fmt.Fprintf(&sb, "Scored in %.2f ms by %s model\n", pr.Metadata.ProcessingTimeMS, pr.Metadata.ModelType)

	return sb.String(), nil
}
