// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"swot-engine/internal/common/errors"
	"swot-engine/internal/common/logger"
	"swot-engine/internal/common/validation"
	"swot-engine/internal/engine"
	"swot-engine/internal/models"
	"swot-engine/internal/scoring"
	"swot-engine/internal/store"
)

// Scorer runs one external scoring round trip for a scenario.
type Scorer interface {
	ScoreScenario(ctx context.Context, scenario *models.Scenario, set scoring.ScoreSetter) (int, error)
}

// Handler wires the scenario store and the scoring orchestrator into HTTP.
type Handler struct {
	store  store.Store
	scorer Scorer
	logger logger.Logger
}

func NewHandler(s store.Store, scorer Scorer, log logger.Logger) *Handler {
	return &Handler{store: s, scorer: scorer, logger: log}
}

var scenarioBodySchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"name"},
	"properties": map[string]interface{}{
		"name":        map[string]interface{}{"type": "string", "minLength": 1},
		"description": map[string]interface{}{"type": "string"},
	},
}

type scenarioBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.store.ListScenarios(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, scenarios)
}

func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.store.GetScenario(r.Context(), chi.URLParam(r, "scenarioID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, scenario)
}

func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeScenarioBody(w, r)
	if !ok {
		return
	}
	scenario, err := h.store.CreateScenario(r.Context(), body.Name, body.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("Scenario created", map[string]interface{}{"scenarioId": scenario.ID})
	h.writeJSON(w, http.StatusCreated, scenario)
}

func (h *Handler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeScenarioBody(w, r)
	if !ok {
		return
	}
	scenario, err := h.store.UpdateScenario(r.Context(), chi.URLParam(r, "scenarioID"), body.Name, body.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, scenario)
}

func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "scenarioID")
	if err := h.store.DeleteScenario(r.Context(), scenarioID); err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("Scenario deleted", map[string]interface{}{"scenarioId": scenarioID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddCriterion(w http.ResponseWriter, r *http.Request) {
	area, ok := h.parseArea(w, r)
	if !ok {
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		h.writeError(w, errors.NewValidationFailedError("text is required"))
		return
	}
	criterion, err := h.store.AddCriterion(r.Context(), chi.URLParam(r, "scenarioID"), area, body.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, criterion)
}

func (h *Handler) ImportCriteria(w http.ResponseWriter, r *http.Request) {
	area, ok := h.parseArea(w, r)
	if !ok {
		return
	}
	var body struct {
		Lines string `json:"lines"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, errors.NewValidationFailedError("lines is required"))
		return
	}
	added, err := h.store.ImportCriteria(r.Context(), chi.URLParam(r, "scenarioID"), area, body.Lines)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, added)
}

func (h *Handler) UpdateCriterion(w http.ResponseWriter, r *http.Request) {
	area, ok := h.parseArea(w, r)
	if !ok {
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		h.writeError(w, errors.NewValidationFailedError("text is required"))
		return
	}
	err := h.store.UpdateCriterionText(r.Context(), chi.URLParam(r, "scenarioID"), area, chi.URLParam(r, "criterionID"), body.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetScore(w http.ResponseWriter, r *http.Request) {
	area, ok := h.parseArea(w, r)
	if !ok {
		return
	}
	var body struct {
		Score *int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, errors.NewValidationFailedError("score must be an integer or null"))
		return
	}
	err := h.store.SetScore(r.Context(), chi.URLParam(r, "scenarioID"), area, chi.URLParam(r, "criterionID"), body.Score)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteCriterion(w http.ResponseWriter, r *http.Request) {
	area, ok := h.parseArea(w, r)
	if !ok {
		return
	}
	err := h.store.DeleteCriterion(r.Context(), chi.URLParam(r, "scenarioID"), area, chi.URLParam(r, "criterionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		h.writeError(w, errors.NewValidationFailedError("name is required"))
		return
	}
	if err := h.store.AddAttachment(r.Context(), chi.URLParam(r, "scenarioID"), body.Name); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveAttachment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		h.writeError(w, errors.NewValidationFailedError("name is required"))
		return
	}
	if err := h.store.RemoveAttachment(r.Context(), chi.URLParam(r, "scenarioID"), body.Name); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetWeights(w http.ResponseWriter, r *http.Request) {
	weights, err := h.store.Weights(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, weights)
}

func (h *Handler) SetWeights(w http.ResponseWriter, r *http.Request) {
	var weights models.Weights
	if err := json.NewDecoder(r.Body).Decode(&weights); err != nil {
		h.writeError(w, errors.NewValidationFailedError("weights must be numbers keyed by area"))
		return
	}
	if err := h.store.SetWeights(r.Context(), weights); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, weights)
}

// GetComparison ranks all scenarios by their weighted totals.
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.store.ListScenarios(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	weights, err := h.store.Weights(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"weights": weights,
		"ranking": engine.Rank(scenarios, weights),
	})
}

// TriggerScoring runs the external scoring attempt for one scenario and
// persists the snapped results. A failed attempt writes nothing.
func (h *Handler) TriggerScoring(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "scenarioID")
	scenario, err := h.store.GetScenario(r.Context(), scenarioID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	applied, err := h.scorer.ScoreScenario(r.Context(), scenario, func(ctx context.Context, area models.Area, criterionID string, score int) error {
		return h.store.SetScore(ctx, scenarioID, area, criterionID, &score)
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	updated, err := h.store.GetScenario(r.Context(), scenarioID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"applied":  applied,
		"scenario": updated,
	})
}

func (h *Handler) decodeScenarioBody(w http.ResponseWriter, r *http.Request) (*scenarioBody, bool) {
	raw := json.RawMessage{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeError(w, errors.NewValidationFailedError("request body must be JSON"))
		return nil, false
	}
	if result := validation.ValidateJSON(raw, scenarioBodySchema); !result.Valid {
		h.writeError(w, errors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; ")))
		return nil, false
	}
	var body scenarioBody
	if err := json.Unmarshal(raw, &body); err != nil {
		h.writeError(w, errors.NewValidationFailedError(err.Error()))
		return nil, false
	}
	return &body, true
}

func (h *Handler) parseArea(w http.ResponseWriter, r *http.Request) (models.Area, bool) {
	raw := chi.URLParam(r, "area")
	area, ok := models.ParseArea(raw)
	if !ok {
		h.writeError(w, errors.NewInvalidAreaError(raw))
		return "", false
	}
	return area, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	stdErr := errors.AsStandardError(err)
	h.logger.Warn("Request failed", map[string]interface{}{
		"code":    string(stdErr.Code),
		"message": stdErr.Message,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errors.HTTPStatus(stdErr.Code))
	json.NewEncoder(w).Encode(map[string]interface{}{"error": stdErr})
}
