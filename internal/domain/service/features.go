package service

import (
	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
)

// FeatureColumns is the fixed column order the model was trained against.
// Reordering this slice silently corrupts every score; treat it as part of
// the model contract.
var FeatureColumns = []string{"ip_region", "device_type", "user_role", "action", "hour", "sessionPeriod"}

// VectorSize is the width of the encoded feature vector.
const VectorSize = 6

// BuildResult is an encoded feature vector plus the names of any columns
// that were filled by a fallback code instead of a clean encoding.
type BuildResult struct {
	Vector        []float64
	DegradedSlots []string
}

// VectorBuilder assembles the six-slot feature vector from a prediction
// input: four categorical encodings followed by the two numeric features.
type VectorBuilder struct {
	encoders *EncoderRegistry
}

// NewVectorBuilder creates a VectorBuilder over the given registry.
func NewVectorBuilder(encoders *EncoderRegistry) *VectorBuilder {
	return &VectorBuilder{encoders: encoders}
}

// Build encodes the input into the fixed-order vector. Building never fails:
// a slot that cannot be cleanly encoded degrades to its fallback code and is
// reported in DegradedSlots.
func (b *VectorBuilder) Build(in model.PredictionInput) BuildResult {
	categorical := []struct {
		column string
		value  string
	}{
		{"ip_region", in.IPRegion},
		{"device_type", in.DeviceType},
		{"user_role", in.UserRole},
		{"action", in.Action},
	}

	vector := make([]float64, 0, VectorSize)
	var degraded []string

	for _, c := range categorical {
		res := b.encoders.Encode(c.column, c.value)
		if res.Degraded {
			degraded = append(degraded, c.column)
		}
		vector = append(vector, float64(res.Code))
	}

	vector = append(vector, float64(in.Hour), float64(in.SessionPeriod))

	return BuildResult{Vector: vector, DegradedSlots: degraded}
}
