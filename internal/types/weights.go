package types

import (
	"fmt"
	"math"
)

// weightEpsilon floors the weight sum so renormalization never divides by zero.
const weightEpsilon = 0.0001

// Weights are the per-dimension multipliers applied to sub-scores.
type Weights struct {
	Skills         float64 `json:"skills" mapstructure:"skills"`
	Experience     float64 `json:"experience" mapstructure:"experience"`
	Education      float64 `json:"education" mapstructure:"education"`
	Certifications float64 `json:"certifications" mapstructure:"certifications"`
	Tools          float64 `json:"tools" mapstructure:"tools"`
}

// WeightOverride is a partial weight map supplied with a vacancy. Missing keys
// take the value of the fallback passed to Apply.
type WeightOverride struct {
	Skills         *float64 `json:"skills,omitempty" mapstructure:"skills"`
	Experience     *float64 `json:"experience,omitempty" mapstructure:"experience"`
	Education      *float64 `json:"education,omitempty" mapstructure:"education"`
	Certifications *float64 `json:"certifications,omitempty" mapstructure:"certifications"`
	Tools          *float64 `json:"tools,omitempty" mapstructure:"tools"`
}

// Sum returns the total of the five weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Certifications + w.Tools
}

// Normalized divides every weight by the sum, floored at a small epsilon.
// Applying it twice yields the same result.
func (w Weights) Normalized() Weights {
	sum := math.Max(weightEpsilon, w.Sum())
	return Weights{
		Skills:         w.Skills / sum,
		Experience:     w.Experience / sum,
		Education:      w.Education / sum,
		Certifications: w.Certifications / sum,
		Tools:          w.Tools / sum,
	}
}

// Apply overlays the override onto fallback.
func (o *WeightOverride) Apply(fallback Weights) Weights {
	if o == nil {
		return fallback
	}
	out := fallback
	pick := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	pick(&out.Skills, o.Skills)
	pick(&out.Experience, o.Experience)
	pick(&out.Education, o.Education)
	pick(&out.Certifications, o.Certifications)
	pick(&out.Tools, o.Tools)
	return out
}

// Validate rejects negative or non-finite weights.
func (o *WeightOverride) Validate() error {
	if o == nil {
		return nil
	}
	for name, v := range map[string]*float64{
		"skills":         o.Skills,
		"experience":     o.Experience,
		"education":      o.Education,
		"certifications": o.Certifications,
		"tools":          o.Tools,
	} {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
			return fmt.Errorf("weight %s must be a non-negative number, got %v", name, *v)
		}
	}
	return nil
}

// Float64Ptr returns a pointer to f.
func Float64Ptr(f float64) *float64 {
	return &f
}
