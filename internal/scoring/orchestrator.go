// internal/scoring/orchestrator.go
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"swot-engine/internal/common/config"
	"swot-engine/internal/common/errors"
	"swot-engine/internal/common/httpclient"
	"swot-engine/internal/common/logger"
	"swot-engine/internal/common/metrics"
	"swot-engine/internal/common/validation"
	"swot-engine/internal/engine"
	"swot-engine/internal/models"
)

const serviceLabel = "scenario-manager"

// ScoreSetter persists one snapped score. The orchestrator calls it only
// after the whole response has been accepted.
type ScoreSetter func(ctx context.Context, area models.Area, criterionID string, score int) error

// Orchestrator drives a single-shot scoring round trip against the
// external endpoint. There are no retries: a rejected, unreachable or
// malformed outcome surfaces as-is and writes nothing.
type Orchestrator struct {
	client      *httpclient.Client
	endpointURL string
	mode        string
	logger      logger.Logger
}

func NewOrchestrator(cfg config.ScoringConfig, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		client:      httpclient.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
		endpointURL: cfg.EndpointURL,
		mode:        cfg.Mode,
		logger:      log,
	}
}

// ScoreScenario runs the full round trip for one scenario: build the
// payload, call the endpoint, validate the response and apply the snapped
// scores through set. It returns the number of criteria updated.
func (o *Orchestrator) ScoreScenario(ctx context.Context, scenario *models.Scenario, set ScoreSetter) (int, error) {
	metrics.ScoringAttemptsActive.WithLabelValues(serviceLabel).Inc()
	defer metrics.ScoringAttemptsActive.WithLabelValues(serviceLabel).Dec()
	started := time.Now()

	response, err := o.requestScores(ctx, scenario)
	if err != nil {
		metrics.ScoringAttemptsFailed.WithLabelValues(serviceLabel, string(errors.AsStandardError(err).Code)).Inc()
		return 0, err
	}

	applied, err := o.apply(ctx, scenario, response, set)
	if err != nil {
		metrics.ScoringAttemptsFailed.WithLabelValues(serviceLabel, string(errors.AsStandardError(err).Code)).Inc()
		return applied, err
	}

	metrics.ScoringAttemptsCompleted.WithLabelValues(serviceLabel).Inc()
	metrics.ScoringAttemptDuration.WithLabelValues(serviceLabel).Observe(time.Since(started).Seconds())
	o.logger.Info("Scoring attempt applied", map[string]interface{}{
		"scenarioId": scenario.ID,
		"applied":    applied,
		"durationMs": time.Since(started).Milliseconds(),
	})
	return applied, nil
}

func (o *Orchestrator) requestScores(ctx context.Context, scenario *models.Scenario) (Response, error) {
	if strings.TrimSpace(o.endpointURL) == "" {
		return nil, errors.NewValidationFailedError("scoring endpoint URL is not configured")
	}

	payload, err := json.Marshal(BuildRequest(scenario, o.mode))
	if err != nil {
		return nil, errors.NewValidationFailedError("failed to encode scoring request: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpointURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewValidationFailedError("failed to build scoring request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Error("Scoring endpoint unreachable", map[string]interface{}{
			"scenarioId": scenario.ID,
			"endpoint":   o.endpointURL,
			"error":      err.Error(),
		})
		return nil, errors.NewEndpointUnreachableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewEndpointUnreachableError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		o.logger.Warn("Scoring endpoint rejected the request", map[string]interface{}{
			"scenarioId": scenario.ID,
			"statusCode": resp.StatusCode,
		})
		return nil, errors.NewEndpointRejectedError(resp.StatusCode, resp.Status, string(body))
	}

	if result := validation.ValidateJSON(body, responseSchema); !result.Valid {
		return nil, errors.NewMalformedResponseError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.NewMalformedResponseError(err.Error())
	}
	return response, nil
}

// apply walks every criterion of the scenario and writes a snapped score
// when the response carries a finite number for it. Absent entries and
// non-numeric or non-finite values leave the criterion untouched.
func (o *Orchestrator) apply(ctx context.Context, scenario *models.Scenario, response Response, set ScoreSetter) (int, error) {
	applied := 0
	for _, area := range models.AllAreas {
		areaScores := response[string(area)]
		if areaScores == nil {
			continue
		}
		for _, criterion := range scenario.Criteria[area] {
			raw, present := areaScores[criterion.ID]
			if !present {
				continue
			}
			value, numeric := raw.(float64)
			if !numeric || math.IsNaN(value) || math.IsInf(value, 0) {
				o.logger.Debug("Non-numeric score ignored", map[string]interface{}{
					"scenarioId":  scenario.ID,
					"area":        string(area),
					"criterionId": criterion.ID,
				})
				continue
			}
			if err := set(ctx, area, criterion.ID, engine.Snap(value)); err != nil {
				return applied, err
			}
			applied++
		}
	}
	return applied, nil
}
