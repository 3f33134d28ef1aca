package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/service"
)

// Model provenance labels reported through Describe and the introspection
// endpoints.
const (
	SourceArtifact  = "artifact"
	SourceSynthetic = "synthetic"
)

// LinearModel implements port.Model over a trained linear-regression
// artifact: an intercept plus one weight per feature column.
type LinearModel struct {
	intercept float64
	weights   []float64
}

// linearArtifact is the on-disk JSON shape of the model artifact.
type linearArtifact struct {
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// LoadLinearModel reads the model artifact from disk. A weight count that
// does not match the feature vector width means the artifact belongs to a
// different feature contract and is rejected.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}

	var artifact linearArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	if len(artifact.Weights) != service.VectorSize {
		return nil, fmt.Errorf("model artifact %s has %d weights, want %d",
			path, len(artifact.Weights), service.VectorSize)
	}

	return &LinearModel{
		intercept: artifact.Intercept,
		weights:   artifact.Weights,
	}, nil
}

// Predict computes the linear combination of features and weights. Output is
// raw regression; callers clamp to [0,1].
func (m *LinearModel) Predict(_ context.Context, features []float64) (float64, error) {
	if len(features) != len(m.weights) {
		return 0, fmt.Errorf("feature vector has %d slots, model expects %d",
			len(features), len(m.weights))
	}

	score := m.intercept
	for i, f := range features {
		score += m.weights[i] * f
	}
	return score, nil
}

// Describe reports the model's provenance.
func (m *LinearModel) Describe() string { return SourceArtifact }
