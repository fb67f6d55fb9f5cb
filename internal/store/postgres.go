// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"swot-engine/internal/common/errors"
	"swot-engine/internal/engine"
	"swot-engine/internal/models"
)

// PostgresStore persists the scenario set through database/sql with the
// lib/pq driver. Criterion ordering is kept in an explicit position column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tables and seeds the first scenario and the
// default weights when the store is empty.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			attachments JSONB NOT NULL DEFAULT '[]',
			position BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS criteria (
			id TEXT PRIMARY KEY,
			scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
			area TEXT NOT NULL,
			text TEXT NOT NULL,
			score INT,
			position BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS comparison_weights (
			id INT PRIMARY KEY DEFAULT 1,
			strength DOUBLE PRECISION NOT NULL,
			weakness DOUBLE PRECISION NOT NULL,
			opportunity DOUBLE PRECISION NOT NULL,
			threat DOUBLE PRECISION NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.NewQueryExecutionFailedError("ensure-schema", err)
		}
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scenarios`).Scan(&count); err != nil {
		return errors.NewQueryExecutionFailedError("ensure-schema", err)
	}
	if count == 0 {
		if _, err := s.CreateScenario(ctx, "Scenario 1", ""); err != nil {
			return err
		}
	}

	w := models.DefaultWeights()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comparison_weights (id, strength, weakness, opportunity, threat)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		w.Strength, w.Weakness, w.Opportunity, w.Threat)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func (s *PostgresStore) ListScenarios(ctx context.Context) ([]*models.Scenario, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, attachments FROM scenarios ORDER BY position`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list-scenarios", err)
	}
	defer rows.Close()

	scenarios := []*models.Scenario{}
	byID := map[string]*models.Scenario{}
	for rows.Next() {
		scenario := &models.Scenario{}
		var attachments []byte
		if err := rows.Scan(&scenario.ID, &scenario.Name, &scenario.Description, &attachments); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list-scenarios", err)
		}
		if err := json.Unmarshal(attachments, &scenario.Attachments); err != nil {
			scenario.Attachments = []string{}
		}
		scenario.Normalize()
		scenarios = append(scenarios, scenario)
		byID[scenario.ID] = scenario
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list-scenarios", err)
	}

	criteriaRows, err := s.db.QueryContext(ctx, `
		SELECT scenario_id, id, area, text, score FROM criteria ORDER BY position`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list-criteria", err)
	}
	defer criteriaRows.Close()

	for criteriaRows.Next() {
		var scenarioID, areaStr string
		var criterion models.Criterion
		var score sql.NullInt64
		if err := criteriaRows.Scan(&scenarioID, &criterion.ID, &areaStr, &criterion.Text, &score); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list-criteria", err)
		}
		if score.Valid {
			v := int(score.Int64)
			criterion.Score = &v
		}
		scenario, exists := byID[scenarioID]
		if !exists {
			continue
		}
		area, ok := models.ParseArea(areaStr)
		if !ok {
			continue
		}
		scenario.Criteria[area] = append(scenario.Criteria[area], criterion)
	}
	if err := criteriaRows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list-criteria", err)
	}

	return scenarios, nil
}

func (s *PostgresStore) GetScenario(ctx context.Context, scenarioID string) (*models.Scenario, error) {
	scenarios, err := s.ListScenarios(ctx)
	if err != nil {
		return nil, err
	}
	for _, scenario := range scenarios {
		if scenario.ID == scenarioID {
			return scenario, nil
		}
	}
	return nil, errors.NewScenarioNotFoundError(scenarioID)
}

func (s *PostgresStore) CreateScenario(ctx context.Context, name, description string) (*models.Scenario, error) {
	scenario := models.NewScenario(name, description)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, description, attachments, position)
		VALUES ($1, $2, $3, '[]', (SELECT COALESCE(MAX(position), 0) + 1 FROM scenarios))`,
		scenario.ID, scenario.Name, scenario.Description)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}
	return scenario, nil
}

func (s *PostgresStore) UpdateScenario(ctx context.Context, scenarioID, name, description string) (*models.Scenario, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE scenarios SET name = $2, description = $3 WHERE id = $1`,
		scenarioID, name, description)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("update-scenario", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, errors.NewScenarioNotFoundError(scenarioID)
	}
	return s.GetScenario(ctx, scenarioID)
}

func (s *PostgresStore) DeleteScenario(ctx context.Context, scenarioID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM scenarios`).Scan(&count); err != nil {
		return errors.NewQueryExecutionFailedError("delete-scenario", err)
	}
	if count <= 1 {
		return errors.NewLastScenarioDeleteError(scenarioID)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM scenarios WHERE id = $1`, scenarioID)
	if err != nil {
		return errors.NewQueryExecutionFailedError("delete-scenario", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	if err := tx.Commit(); err != nil {
		return errors.NewQueryExecutionFailedError("delete-scenario", err)
	}
	return nil
}

func (s *PostgresStore) AddCriterion(ctx context.Context, scenarioID string, area models.Area, text string) (*models.Criterion, error) {
	criterion := models.Criterion{ID: uuid.NewString(), Text: text}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO criteria (id, scenario_id, area, text, score, position)
		SELECT $1, id, $3, $4, NULL, (SELECT COALESCE(MAX(position), 0) + 1 FROM criteria)
		FROM scenarios WHERE id = $2`,
		criterion.ID, scenarioID, string(area), text)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, errors.NewScenarioNotFoundError(scenarioID)
	}
	return &criterion, nil
}

func (s *PostgresStore) ImportCriteria(ctx context.Context, scenarioID string, area models.Area, lines string) ([]models.Criterion, error) {
	texts := SplitImportLines(lines)
	added := make([]models.Criterion, 0, len(texts))
	for _, text := range texts {
		criterion, err := s.AddCriterion(ctx, scenarioID, area, text)
		if err != nil {
			return nil, err
		}
		added = append(added, *criterion)
	}
	return added, nil
}

func (s *PostgresStore) UpdateCriterionText(ctx context.Context, scenarioID string, area models.Area, criterionID, text string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE criteria SET text = $4 WHERE id = $1 AND scenario_id = $2 AND area = $3`,
		criterionID, scenarioID, string(area), text)
	if err != nil {
		return errors.NewQueryExecutionFailedError("update-criterion", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewCriterionNotFoundError(criterionID)
	}
	return nil
}

func (s *PostgresStore) SetScore(ctx context.Context, scenarioID string, area models.Area, criterionID string, score *int) error {
	if score != nil && !engine.IsValidScore(*score) {
		return errors.NewInvalidScoreValueError(*score)
	}

	var value sql.NullInt64
	if score != nil {
		value = sql.NullInt64{Int64: int64(*score), Valid: true}
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE criteria SET score = $4 WHERE id = $1 AND scenario_id = $2 AND area = $3`,
		criterionID, scenarioID, string(area), value)
	if err != nil {
		return errors.NewQueryExecutionFailedError("set-score", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewCriterionNotFoundError(criterionID)
	}
	return nil
}

func (s *PostgresStore) DeleteCriterion(ctx context.Context, scenarioID string, area models.Area, criterionID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM criteria WHERE id = $1 AND scenario_id = $2 AND area = $3`,
		criterionID, scenarioID, string(area))
	if err != nil {
		return errors.NewQueryExecutionFailedError("delete-criterion", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewCriterionNotFoundError(criterionID)
	}
	return nil
}

func (s *PostgresStore) AddAttachment(ctx context.Context, scenarioID, name string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE scenarios SET attachments = attachments || to_jsonb($2::text) WHERE id = $1`,
		scenarioID, name)
	if err != nil {
		return errors.NewQueryExecutionFailedError("add-attachment", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	return nil
}

func (s *PostgresStore) RemoveAttachment(ctx context.Context, scenarioID, name string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE scenarios SET attachments = attachments - $2 WHERE id = $1`,
		scenarioID, name)
	if err != nil {
		return errors.NewQueryExecutionFailedError("remove-attachment", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewScenarioNotFoundError(scenarioID)
	}
	return nil
}

func (s *PostgresStore) Weights(ctx context.Context) (models.Weights, error) {
	var w models.Weights
	err := s.db.QueryRowContext(ctx, `
		SELECT strength, weakness, opportunity, threat FROM comparison_weights WHERE id = 1`).
		Scan(&w.Strength, &w.Weakness, &w.Opportunity, &w.Threat)
	if err == sql.ErrNoRows {
		return models.DefaultWeights(), nil
	}
	if err != nil {
		return models.Weights{}, errors.NewQueryExecutionFailedError("get-weights", err)
	}
	return w, nil
}

func (s *PostgresStore) SetWeights(ctx context.Context, w models.Weights) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comparison_weights (id, strength, weakness, opportunity, threat)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			strength = EXCLUDED.strength,
			weakness = EXCLUDED.weakness,
			opportunity = EXCLUDED.opportunity,
			threat = EXCLUDED.threat`,
		w.Strength, w.Weakness, w.Opportunity, w.Threat)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}
