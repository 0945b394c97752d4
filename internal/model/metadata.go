package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata describes the exported model. Purely informational; scoring
// never branches on it.
type Metadata struct {
	ModelType   string             `json:"model_type"`
	Version     string             `json:"version"`
	NumFeatures int                `json:"num_features"`
	TrainedAt   string             `json:"trained_at"`
	TestMetrics map[string]float64 `json:"test_metrics,omitempty"`
}

// LoadMetadata reads a metadata artifact from path.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured artifact search list
	if err != nil {
		return nil, fmt.Errorf("read metadata artifact: %w", err)
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse metadata artifact: %w", err)
	}
	return &m, nil
}
