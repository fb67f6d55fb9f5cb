// internal/judge/handler.go
package judge

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"swot-engine/internal/common/errors"
	"swot-engine/internal/common/logger"
	"swot-engine/internal/common/validation"
	"swot-engine/internal/scoring"
)

// requestSchema is the accepted inbound scoring request shape.
var requestSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"scenario", "criteria", "scale", "mode"},
	"properties": map[string]interface{}{
		"scenario": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"name"},
			"properties": map[string]interface{}{
				"name":        map[string]interface{}{"type": "string"},
				"description": map[string]interface{}{"type": "string"},
			},
		},
		"criteria": map[string]interface{}{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]interface{}{
				"S": criteriaListSchema(),
				"W": criteriaListSchema(),
				"O": criteriaListSchema(),
				"T": criteriaListSchema(),
			},
		},
		"scale": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]interface{}{"type": "integer"},
		},
		"mode": map[string]interface{}{"type": "string"},
	},
}

func criteriaListSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"id", "text"},
			"properties": map[string]interface{}{
				"id":   map[string]interface{}{"type": "string"},
				"text": map[string]interface{}{"type": "string"},
			},
		},
	}
}

// Handler exposes the scoring service over HTTP.
type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Score handles POST /api/score.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, errors.NewValidationFailedError("failed to read request body"))
		return
	}

	if result := validation.ValidateJSON(body, requestSchema); !result.Valid {
		h.writeError(w, errors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; ")))
		return
	}

	var request scoring.Request
	if err := json.Unmarshal(body, &request); err != nil {
		h.writeError(w, errors.NewValidationFailedError(err.Error()))
		return
	}

	h.logger.Info("Scoring request received", map[string]interface{}{
		"scenario": request.Scenario.Name,
		"mode":     request.Mode,
	})

	response := h.service.Score(r.Context(), &request)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) writeError(w http.ResponseWriter, err *errors.StandardError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errors.HTTPStatus(err.Code))
	json.NewEncoder(w).Encode(map[string]interface{}{"error": err})
}
