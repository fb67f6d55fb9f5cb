// internal/store/memory_test.go
package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swot-engine/internal/common/errors"
	"swot-engine/internal/models"
)

func TestNewMemoryStore_SeedsFirstScenario(t *testing.T) {
	s := NewMemoryStore()

	scenarios, err := s.ListScenarios(context.Background())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "Scenario 1", scenarios[0].Name)
	for _, area := range models.AllAreas {
		assert.NotNil(t, scenarios[0].Criteria[area], "every area bucket present")
	}

	weights, err := s.Weights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultWeights(), weights)
}

func TestMemoryStore_ListPreservesInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		_, err := s.CreateScenario(ctx, name, "")
		require.NoError(t, err)
	}

	scenarios, err := s.ListScenarios(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 4)
	assert.Equal(t, "Scenario 1", scenarios[0].Name)
	assert.Equal(t, "alpha", scenarios[1].Name)
	assert.Equal(t, "beta", scenarios[2].Name)
	assert.Equal(t, "gamma", scenarios[3].Name)
}

func TestMemoryStore_DeleteLastScenarioForbidden(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	scenarios, err := s.ListScenarios(ctx)
	require.NoError(t, err)

	err = s.DeleteScenario(ctx, scenarios[0].ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLastScenarioDelete))

	second, err := s.CreateScenario(ctx, "second", "")
	require.NoError(t, err)
	require.NoError(t, s.DeleteScenario(ctx, scenarios[0].ID))

	err = s.DeleteScenario(ctx, second.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLastScenarioDelete), "the new sole scenario is protected too")
}

func TestMemoryStore_DeleteUnknownScenario(t *testing.T) {
	s := NewMemoryStore()

	err := s.DeleteScenario(context.Background(), "missing")
	assert.True(t, errors.IsCode(err, errors.ErrCodeScenarioNotFound))
}

func TestMemoryStore_CriteriaInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	scenarios, _ := s.ListScenarios(ctx)
	id := scenarios[0].ID

	for _, text := range []string{"first", "second", "third"} {
		_, err := s.AddCriterion(ctx, id, models.AreaOpportunity, text)
		require.NoError(t, err)
	}

	got, err := s.GetScenario(ctx, id)
	require.NoError(t, err)
	bucket := got.Criteria[models.AreaOpportunity]
	require.Len(t, bucket, 3)
	assert.Equal(t, "first", bucket[0].Text)
	assert.Equal(t, "second", bucket[1].Text)
	assert.Equal(t, "third", bucket[2].Text)
}

func TestMemoryStore_ImportCriteriaSkipsBlankLines(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	scenarios, _ := s.ListScenarios(ctx)
	id := scenarios[0].ID

	added, err := s.ImportCriteria(ctx, id, models.AreaWeakness, "one\n\n  two  \n\t\nthree\n")
	require.NoError(t, err)
	require.Len(t, added, 3)
	assert.Equal(t, "two", added[1].Text, "surrounding whitespace trimmed")
}

func TestMemoryStore_SetScoreValidation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	scenarios, _ := s.ListScenarios(ctx)
	id := scenarios[0].ID
	criterion, err := s.AddCriterion(ctx, id, models.AreaStrength, "market share")
	require.NoError(t, err)

	four := 4
	err = s.SetScore(ctx, id, models.AreaStrength, criterion.ID, &four)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidScoreValue))

	zero := 0
	require.NoError(t, s.SetScore(ctx, id, models.AreaStrength, criterion.ID, &zero))

	thirteen := 13
	require.NoError(t, s.SetScore(ctx, id, models.AreaStrength, criterion.ID, &thirteen))

	require.NoError(t, s.SetScore(ctx, id, models.AreaStrength, criterion.ID, nil))
	got, err := s.GetScenario(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Criteria[models.AreaStrength][0].Score, "nil clears the score")
}

func TestMemoryStore_ReadsAreIsolatedCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	scenarios, _ := s.ListScenarios(ctx)
	id := scenarios[0].ID
	criterion, err := s.AddCriterion(ctx, id, models.AreaThreat, "regulation")
	require.NoError(t, err)

	got, err := s.GetScenario(ctx, id)
	require.NoError(t, err)
	got.Name = "tampered"
	got.Criteria[models.AreaThreat][0].Text = "tampered"
	eight := 8
	got.Criteria[models.AreaThreat][0].Score = &eight

	fresh, err := s.GetScenario(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Scenario 1", fresh.Name)
	assert.Equal(t, "regulation", fresh.Criteria[models.AreaThreat][0].Text)
	assert.Nil(t, fresh.Criteria[models.AreaThreat][0].Score)
	assert.Equal(t, criterion.ID, fresh.Criteria[models.AreaThreat][0].ID)
}

func TestMemoryStore_Attachments(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	scenarios, _ := s.ListScenarios(ctx)
	id := scenarios[0].ID

	require.NoError(t, s.AddAttachment(ctx, id, "market-study.pdf"))
	require.NoError(t, s.AddAttachment(ctx, id, "forecast.xlsx"))
	require.NoError(t, s.RemoveAttachment(ctx, id, "market-study.pdf"))

	got, err := s.GetScenario(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"forecast.xlsx"}, got.Attachments)
}

func TestMemoryStore_UpdateAndDeleteCriterion(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	scenarios, _ := s.ListScenarios(ctx)
	id := scenarios[0].ID
	criterion, err := s.AddCriterion(ctx, id, models.AreaWeakness, "old text")
	require.NoError(t, err)

	require.NoError(t, s.UpdateCriterionText(ctx, id, models.AreaWeakness, criterion.ID, "new text"))
	got, _ := s.GetScenario(ctx, id)
	assert.Equal(t, "new text", got.Criteria[models.AreaWeakness][0].Text)

	err = s.UpdateCriterionText(ctx, id, models.AreaStrength, criterion.ID, "x")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCriterionNotFound), "lookup is scoped to the area")

	require.NoError(t, s.DeleteCriterion(ctx, id, models.AreaWeakness, criterion.ID))
	got, _ = s.GetScenario(ctx, id)
	assert.Empty(t, got.Criteria[models.AreaWeakness])
}

func TestMemoryStore_SetWeights(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	custom := models.Weights{Strength: 2, Weakness: -0.5, Opportunity: 1.5, Threat: -2}
	require.NoError(t, s.SetWeights(ctx, custom))

	got, err := s.Weights(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}
