// internal/judge/genai_test.go
package judge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swot-engine/internal/common/config"
	"swot-engine/internal/common/errors"
	"swot-engine/internal/common/logger"
	"swot-engine/internal/models"
)

func judgeInput() *Input {
	return &Input{
		ScenarioName:        "Expand east",
		ScenarioDescription: "Open two new regional branches",
		Area:                models.AreaStrength,
		CriterionText:       "strong brand recognition",
		Mode:                "deep_research",
	}
}

func newGenAIJudge(baseURL string) *GenAIJudge {
	return NewGenAIJudge(config.JudgeConfig{
		GenAIBaseURL: baseURL,
		APIKey:       "test-key",
		Model:        "analyst-v1",
		Temperature:  0.2,
		Timeout:      2000,
	}, logger.NewNoOpLogger())
}

func TestGenAIJudge_ParsesNumericText(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(`{"text":" 8 "}`))
	}))
	defer server.Close()

	value, err := newGenAIJudge(server.URL).Judge(context.Background(), judgeInput())
	require.NoError(t, err)
	assert.Equal(t, 8.0, value)

	prompt := captured["prompt"].(string)
	assert.Contains(t, prompt, "Expand east")
	assert.Contains(t, prompt, "strong brand recognition")
	assert.Contains(t, prompt, "1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987, 1597")
	assert.Equal(t, "analyst-v1", captured["model"])
	assert.Equal(t, 0.2, captured["temperature"])
}

func TestGenAIJudge_NonNumericTextIsRawZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"this criterion seems moderately relevant"}`))
	}))
	defer server.Close()

	value, err := newGenAIJudge(server.URL).Judge(context.Background(), judgeInput())
	require.NoError(t, err, "a non-numeric judgment is a success with raw 0")
	assert.Equal(t, 0.0, value)
}

func TestGenAIJudge_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newGenAIJudge(server.URL).Judge(context.Background(), judgeInput())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeJudgeCallFailed))
}

func TestGenAIJudge_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newGenAIJudge(server.URL).Judge(context.Background(), judgeInput())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeJudgeCallFailed))
}
