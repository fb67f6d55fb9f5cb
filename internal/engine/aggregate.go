// internal/engine/aggregate.go
package engine

import (
	"sort"

	"swot-engine/internal/models"
)

// RankedScenario is the derived, never-stored statistics row for one
// scenario: per-area means and the weighted total.
type RankedScenario struct {
	ID    string                  `json:"id"`
	Name  string                  `json:"name"`
	Means map[models.Area]float64 `json:"means"`
	Total float64                 `json:"total"`
}

// Means computes the arithmetic mean of the scored criteria per area.
// Unscored criteria (nil score) contribute neither to the sum nor to the
// count; an explicit zero contributes as a real value. An area without any
// scored criterion has mean 0.
func Means(s *models.Scenario) map[models.Area]float64 {
	means := make(map[models.Area]float64, len(models.AllAreas))
	for _, area := range models.AllAreas {
		sum := 0.0
		count := 0
		for _, c := range s.Criteria[area] {
			if c.Score == nil {
				continue
			}
			sum += float64(*c.Score)
			count++
		}
		if count == 0 {
			means[area] = 0
			continue
		}
		means[area] = sum / float64(count)
	}
	return means
}

// Total is the dot product of the four per-area means with the weights.
func Total(means map[models.Area]float64, w models.Weights) float64 {
	total := 0.0
	for _, area := range models.AllAreas {
		total += means[area] * w.ForArea(area)
	}
	return total
}

// Rank computes statistics for every scenario and orders them by total,
// highest first. The sort is stable so tied scenarios keep their input
// order. Rank never mutates its inputs.
func Rank(scenarios []*models.Scenario, w models.Weights) []RankedScenario {
	ranked := make([]RankedScenario, 0, len(scenarios))
	for _, s := range scenarios {
		means := Means(s)
		ranked = append(ranked, RankedScenario{
			ID:    s.ID,
			Name:  s.Name,
			Means: means,
			Total: Total(means, w),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	return ranked
}
