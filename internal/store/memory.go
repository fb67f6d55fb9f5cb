// internal/store/memory.go
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"swot-engine/internal/common/errors"
	"swot-engine/internal/engine"
	"swot-engine/internal/models"
)

// MemoryStore keeps the scenario set in process memory. It is the default
// backend; the data model does not require persistence.
type MemoryStore struct {
	mu        sync.RWMutex
	scenarios map[string]*models.Scenario
	order     []string
	weights   models.Weights
}

// NewMemoryStore seeds the store with one empty scenario so the "at least
// one scenario" invariant holds from the start.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		scenarios: make(map[string]*models.Scenario),
		weights:   models.DefaultWeights(),
	}
	first := models.NewScenario("Scenario 1", "")
	s.scenarios[first.ID] = first
	s.order = append(s.order, first.ID)
	return s
}

func (s *MemoryStore) ListScenarios(_ context.Context) ([]*models.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Scenario, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.scenarios[id].Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetScenario(_ context.Context, scenarioID string) (*models.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return nil, errors.NewScenarioNotFoundError(scenarioID)
	}
	return scenario.Clone(), nil
}

func (s *MemoryStore) CreateScenario(_ context.Context, name, description string) (*models.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario := models.NewScenario(name, description)
	s.scenarios[scenario.ID] = scenario
	s.order = append(s.order, scenario.ID)
	return scenario.Clone(), nil
}

func (s *MemoryStore) UpdateScenario(_ context.Context, scenarioID, name, description string) (*models.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return nil, errors.NewScenarioNotFoundError(scenarioID)
	}
	scenario.Name = name
	scenario.Description = description
	return scenario.Clone(), nil
}

func (s *MemoryStore) DeleteScenario(_ context.Context, scenarioID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.scenarios[scenarioID]; !exists {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	if len(s.order) == 1 {
		return errors.NewLastScenarioDeleteError(scenarioID)
	}

	delete(s.scenarios, scenarioID)
	for i, id := range s.order {
		if id == scenarioID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) AddCriterion(_ context.Context, scenarioID string, area models.Area, text string) (*models.Criterion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return nil, errors.NewScenarioNotFoundError(scenarioID)
	}

	criterion := models.Criterion{ID: uuid.NewString(), Text: text}
	scenario.Criteria[area] = append(scenario.Criteria[area], criterion)
	return &criterion, nil
}

func (s *MemoryStore) ImportCriteria(_ context.Context, scenarioID string, area models.Area, lines string) ([]models.Criterion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return nil, errors.NewScenarioNotFoundError(scenarioID)
	}

	texts := SplitImportLines(lines)
	added := make([]models.Criterion, 0, len(texts))
	for _, text := range texts {
		criterion := models.Criterion{ID: uuid.NewString(), Text: text}
		scenario.Criteria[area] = append(scenario.Criteria[area], criterion)
		added = append(added, criterion)
	}
	return added, nil
}

func (s *MemoryStore) UpdateCriterionText(_ context.Context, scenarioID string, area models.Area, criterionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	criterion, found := scenario.FindCriterion(area, criterionID)
	if !found {
		return errors.NewCriterionNotFoundError(criterionID)
	}
	criterion.Text = text
	return nil
}

func (s *MemoryStore) SetScore(_ context.Context, scenarioID string, area models.Area, criterionID string, score *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	criterion, found := scenario.FindCriterion(area, criterionID)
	if !found {
		return errors.NewCriterionNotFoundError(criterionID)
	}
	if score != nil && !engine.IsValidScore(*score) {
		return errors.NewInvalidScoreValueError(*score)
	}
	if score == nil {
		criterion.Score = nil
		return nil
	}
	v := *score
	criterion.Score = &v
	return nil
}

func (s *MemoryStore) DeleteCriterion(_ context.Context, scenarioID string, area models.Area, criterionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	bucket := scenario.Criteria[area]
	for i := range bucket {
		if bucket[i].ID == criterionID {
			scenario.Criteria[area] = append(bucket[:i], bucket[i+1:]...)
			return nil
		}
	}
	return errors.NewCriterionNotFoundError(criterionID)
}

func (s *MemoryStore) AddAttachment(_ context.Context, scenarioID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	scenario.Attachments = append(scenario.Attachments, name)
	return nil
}

func (s *MemoryStore) RemoveAttachment(_ context.Context, scenarioID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, exists := s.scenarios[scenarioID]
	if !exists {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	for i, attachment := range scenario.Attachments {
		if attachment == name {
			scenario.Attachments = append(scenario.Attachments[:i], scenario.Attachments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) Weights(_ context.Context) (models.Weights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights, nil
}

func (s *MemoryStore) SetWeights(_ context.Context, w models.Weights) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = w
	return nil
}
