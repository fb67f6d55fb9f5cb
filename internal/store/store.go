// internal/store/store.go
package store

import (
	"context"
	"strings"

	"swot-engine/internal/models"
)

// Store owns the scenario set and the shared comparison weights. Reads
// return deep copies; callers never observe in-place mutation.
//
// Invariants enforced by every implementation:
//   - every scenario carries all four area buckets, possibly empty
//   - criterion order within an area is insertion order
//   - the scenario set never becomes empty (deleting the last one fails)
//   - scores are either nil (unscored), the explicit zero, or scale members
type Store interface {
	ListScenarios(ctx context.Context) ([]*models.Scenario, error)
	GetScenario(ctx context.Context, scenarioID string) (*models.Scenario, error)
	CreateScenario(ctx context.Context, name, description string) (*models.Scenario, error)
	UpdateScenario(ctx context.Context, scenarioID, name, description string) (*models.Scenario, error)
	DeleteScenario(ctx context.Context, scenarioID string) error

	AddCriterion(ctx context.Context, scenarioID string, area models.Area, text string) (*models.Criterion, error)
	ImportCriteria(ctx context.Context, scenarioID string, area models.Area, lines string) ([]models.Criterion, error)
	UpdateCriterionText(ctx context.Context, scenarioID string, area models.Area, criterionID, text string) error
	SetScore(ctx context.Context, scenarioID string, area models.Area, criterionID string, score *int) error
	DeleteCriterion(ctx context.Context, scenarioID string, area models.Area, criterionID string) error

	AddAttachment(ctx context.Context, scenarioID, name string) error
	RemoveAttachment(ctx context.Context, scenarioID, name string) error

	Weights(ctx context.Context) (models.Weights, error)
	SetWeights(ctx context.Context, w models.Weights) error
}

// SplitImportLines turns a bulk text-line import into criterion texts, one
// per non-blank line.
func SplitImportLines(lines string) []string {
	parts := strings.Split(lines, "\n")
	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		text := strings.TrimSpace(part)
		if text == "" {
			continue
		}
		texts = append(texts, text)
	}
	return texts
}
