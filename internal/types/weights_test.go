//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeights_Normalized(t *testing.T) {
	w := Weights{Skills: 2, Experience: 1, Education: 1, Certifications: 0, Tools: 0}.Normalized()
	assert.InDelta(t, 0.5, w.Skills, 1e-12)
	assert.InDelta(t, 0.25, w.Experience, 1e-12)
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
}

func TestWeights_NormalizedIsIdempotent(t *testing.T) {
	once := Weights{Skills: 0.45, Experience: 0.30, Education: 0.15, Certifications: 0.07, Tools: 0.03}.Normalized()
	twice := once.Normalized()
	assert.InDelta(t, once.Skills, twice.Skills, 1e-12)
	assert.InDelta(t, once.Tools, twice.Tools, 1e-12)
	assert.InDelta(t, 1.0, twice.Sum(), 1e-9)
}

func TestWeights_NormalizedZeroSum(t *testing.T) {
	w := Weights{}.Normalized()
	assert.Equal(t, Weights{}, w)

	neg := Weights{Skills: -1, Tools: 0.5}.Normalized()
	assert.False(t, math.IsNaN(neg.Skills))
	assert.False(t, math.IsInf(neg.Tools, 0))
}

func TestWeightOverride_Apply(t *testing.T) {
	base := Weights{Skills: 0.45, Experience: 0.30, Education: 0.20, Certifications: 0.03, Tools: 0.02}

	assert.Equal(t, base, (*WeightOverride)(nil).Apply(base))

	got := (&WeightOverride{Skills: Float64Ptr(0.9), Tools: Float64Ptr(0)}).Apply(base)
	assert.Equal(t, 0.9, got.Skills)
	assert.Equal(t, 0.30, got.Experience)
	assert.Equal(t, 0.0, got.Tools)
}
