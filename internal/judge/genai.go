// internal/judge/genai.go
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"swot-engine/internal/common/config"
	"swot-engine/internal/common/errors"
	"swot-engine/internal/common/logger"
	"swot-engine/internal/engine"
	"swot-engine/internal/models"
)

// areaQuestions phrase the judgment per SWOT area so the model rates the
// criterion in the right direction.
var areaQuestions = map[models.Area]string{
	models.AreaStrength:    "How strongly does this internal strength support the scenario?",
	models.AreaWeakness:    "How severely does this internal weakness undermine the scenario?",
	models.AreaOpportunity: "How much upside does this external opportunity offer the scenario?",
	models.AreaThreat:      "How much risk does this external threat pose to the scenario?",
}

// GenAIJudge calls a text-generation API and parses the generated text as
// a number. It relies on the request context for timeouts, not on an HTTP
// client timeout.
type GenAIJudge struct {
	config config.JudgeConfig
	client *http.Client
	logger logger.Logger
}

func NewGenAIJudge(cfg config.JudgeConfig, log logger.Logger) *GenAIJudge {
	return &GenAIJudge{
		config: cfg,
		client: &http.Client{},
		logger: log.With(map[string]interface{}{
			"component": "genai-judge",
		}),
	}
}

func (j *GenAIJudge) Judge(ctx context.Context, input *Input) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(j.config.Timeout)*time.Millisecond)
	defer cancel()

	requestBody := map[string]interface{}{
		"prompt":      j.buildPrompt(input),
		"model":       j.config.Model,
		"temperature": j.config.Temperature,
		"max_tokens":  16,
	}
	body, _ := json.Marshal(requestBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.config.GenAIBaseURL+"/api/ai/generate", bytes.NewBuffer(body))
	if err != nil {
		return 0, errors.NewJudgeCallFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if j.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+j.config.APIKey)
	}

	resp, err := j.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, errors.NewJudgeTimeoutError()
		}
		return 0, errors.NewJudgeCallFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.NewJudgeCallFailedError(fmt.Errorf("status %d", resp.StatusCode))
	}

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return 0, errors.NewJudgeCallFailedError(fmt.Errorf("decode error: %v", err))
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(apiResponse.Text), 64)
	if err != nil {
		j.logger.Warn("Judge returned non-numeric text, treating as 0", map[string]interface{}{
			"area": string(input.Area),
			"text": apiResponse.Text,
		})
		return 0, nil
	}
	return value, nil
}

func (j *GenAIJudge) buildPrompt(input *Input) string {
	var parts []string

	parts = append(parts, "You are a strategy analyst rating SWOT criteria for a business scenario.")
	parts = append(parts, fmt.Sprintf("\nScenario: %s", input.ScenarioName))
	if input.ScenarioDescription != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", input.ScenarioDescription))
	}
	parts = append(parts, fmt.Sprintf("\nCriterion: %s", input.CriterionText))
	parts = append(parts, fmt.Sprintf("Question: %s", areaQuestions[input.Area]))

	scaleText := make([]string, len(engine.Scale))
	for i, member := range engine.Scale {
		scaleText[i] = strconv.Itoa(member)
	}
	parts = append(parts, "\nInstructions:")
	parts = append(parts, fmt.Sprintf("- Rate on this scale: %s", strings.Join(scaleText, ", ")))
	if input.Mode == "deep_research" {
		parts = append(parts, "- Research the scenario context thoroughly before rating")
	}
	parts = append(parts, "- Respond with a single number and nothing else")

	parts = append(parts, "\nRating:")

	return strings.Join(parts, "\n")
}
