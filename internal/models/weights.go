// internal/models/weights.go
package models

// Weights holds one signed real weight per area, shared across every
// scenario in a comparison. Negative and zero weights are valid.
type Weights struct {
	Strength    float64 `json:"S"`
	Weakness    float64 `json:"W"`
	Opportunity float64 `json:"O"`
	Threat      float64 `json:"T"`
}

// DefaultWeights lets strengths and opportunities add to the total and
// weaknesses and threats subtract from it.
func DefaultWeights() Weights {
	return Weights{
		Strength:    1,
		Weakness:    -1,
		Opportunity: 1,
		Threat:      -1,
	}
}

// ForArea returns the weight applied to the given area.
func (w Weights) ForArea(area Area) float64 {
	switch area {
	case AreaStrength:
		return w.Strength
	case AreaWeakness:
		return w.Weakness
	case AreaOpportunity:
		return w.Opportunity
	case AreaThreat:
		return w.Threat
	}
	return 0
}
