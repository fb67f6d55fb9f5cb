// internal/judge/service.go
package judge

import (
	"context"
	"sync"

	"swot-engine/internal/common/logger"
	"swot-engine/internal/common/metrics"
	"swot-engine/internal/engine"
	"swot-engine/internal/models"
	"swot-engine/internal/scoring"
)

// Result is the scoring response: area tag → criterion id → snapped score.
// A criterion whose judgment failed contributes no entry at all.
type Result map[string]map[string]float64

// Service turns an inbound scoring request into per-criterion judgments.
// Criteria within an area are judged concurrently; a failed judgment is
// omitted from the result rather than failing the whole request.
type Service struct {
	judge  Judge
	logger logger.Logger
}

func NewService(j Judge, log logger.Logger) *Service {
	return &Service{judge: j, logger: log}
}

// Score judges every criterion of the request. Raw judgments are snapped
// before inclusion, so every value in the result is a scale member.
func (s *Service) Score(ctx context.Context, request *scoring.Request) Result {
	result := make(Result, len(models.AllAreas))
	for _, area := range models.AllAreas {
		result[string(area)] = s.scoreArea(ctx, request, area)
	}
	return result
}

func (s *Service) scoreArea(ctx context.Context, request *scoring.Request, area models.Area) map[string]float64 {
	bucket := request.Criteria[string(area)]
	scored := make(map[string]float64, len(bucket))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, criterion := range bucket {
		wg.Add(1)
		go func(criterion scoring.CriterionRef) {
			defer wg.Done()

			raw, err := s.judge.Judge(ctx, &Input{
				ScenarioName:        request.Scenario.Name,
				ScenarioDescription: request.Scenario.Description,
				Area:                area,
				CriterionText:       criterion.Text,
				Mode:                request.Mode,
			})
			if err != nil {
				metrics.JudgmentsIssued.WithLabelValues(string(area), "failed").Inc()
				s.logger.Warn("Judgment failed, omitting criterion", map[string]interface{}{
					"area":        string(area),
					"criterionId": criterion.ID,
					"error":       err.Error(),
				})
				return
			}

			metrics.JudgmentsIssued.WithLabelValues(string(area), "scored").Inc()
			mu.Lock()
			scored[criterion.ID] = float64(engine.Snap(raw))
			mu.Unlock()
		}(criterion)
	}
	wg.Wait()

	return scored
}
