// internal/judge/handler_test.go
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swot-engine/internal/common/logger"
)

func newTestHandler(j Judge) *Handler {
	return NewHandler(NewService(j, logger.NewNoOpLogger()), logger.NewNoOpLogger())
}

func TestHandlerScore_ReturnsSnappedJudgments(t *testing.T) {
	j := Func(func(_ context.Context, input *Input) (float64, error) {
		return 10, nil
	})
	handler := newTestHandler(j)

	body, _ := json.Marshal(scoringRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/score", bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Score(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var result Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	require.Len(t, result["S"], 3)
	assert.Equal(t, 8.0, result["S"]["s1"])
	assert.NotNil(t, result["W"], "all area keys present even when empty")
}

func TestHandlerScore_RejectsInvalidShape(t *testing.T) {
	handler := newTestHandler(Func(func(_ context.Context, _ *Input) (float64, error) {
		t.Fatal("judge must not run for an invalid request")
		return 0, nil
	}))

	tests := []struct {
		name string
		body string
	}{
		{"not JSON", `score this please`},
		{"missing mode", `{"scenario":{"name":"x"},"criteria":{},"scale":[1]}`},
		{"criteria with unknown area", `{"scenario":{"name":"x"},"criteria":{"X":[]},"scale":[1],"mode":"deep_research"}`},
		{"criterion without text", `{"scenario":{"name":"x"},"criteria":{"S":[{"id":"c1"}]},"scale":[1],"mode":"deep_research"}`},
		{"empty scale", `{"scenario":{"name":"x"},"criteria":{},"scale":[],"mode":"deep_research"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/score", bytes.NewReader([]byte(tt.body)))
			recorder := httptest.NewRecorder()

			handler.Score(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var errBody map[string]map[string]interface{}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errBody))
			assert.Equal(t, "VALIDATION_FAILED", errBody["error"]["code"])
		})
	}
}
