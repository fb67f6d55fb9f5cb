// internal/scoring/orchestrator_test.go
package scoring

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

type recordedWrite struct {
	area        models.Area
	criterionID string
	score       int
}

type recordingSetter struct {
	writes []recordedWrite
}

func (r *recordingSetter) set(_ context.Context, area models.Area, criterionID string, score int) error {
	r.writes = append(r.writes, recordedWrite{area: area, criterionID: criterionID, score: score})
	return nil
}

func testScenario() *models.Scenario {
	s := models.NewScenario("Expand east", "Open two new regional branches")
	s.ID = "scenario-1"
	s.Criteria[models.AreaStrength] = []models.Criterion{
		{ID: "c1", Text: "strong brand"},
		{ID: "c2", Text: "trained staff"},
	}
	s.Criteria[models.AreaThreat] = []models.Criterion{
		{ID: "c3", Text: "new competitor"},
	}
	return s
}

func newTestOrchestrator(endpointURL string) *Orchestrator {
	return NewOrchestrator(config.ScoringConfig{
		EndpointURL: endpointURL,
		Mode:        "deep_research",
		Timeout:     2000,
	}, logger.NewNoOpLogger())
}

func TestScoreScenario_PayloadShape(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	setter := &recordingSetter{}
	_, err := newTestOrchestrator(server.URL).ScoreScenario(context.Background(), testScenario(), setter.set)
	require.NoError(t, err)

	scenario := captured["scenario"].(map[string]interface{})
	assert.Equal(t, "Expand east", scenario["name"])
	assert.Equal(t, "Open two new regional branches", scenario["description"])
	assert.Equal(t, "deep_research", captured["mode"])

	scale := captured["scale"].([]interface{})
	require.Len(t, scale, 16)
	assert.Equal(t, 1.0, scale[0])
	assert.Equal(t, 1597.0, scale[15])

	criteria := captured["criteria"].(map[string]interface{})
	for _, area := range []string{"S", "W", "O", "T"} {
		assert.Contains(t, criteria, area, "all four area keys always present")
	}
	strengths := criteria["S"].([]interface{})
	require.Len(t, strengths, 2)
	first := strengths[0].(map[string]interface{})
	assert.Equal(t, "c1", first["id"])
	assert.Equal(t, "strong brand", first["text"])
	assert.NotContains(t, first, "score", "existing scores are never transmitted")
}

func TestScoreScenario_AppliesSnappedScores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// c1 scored off-scale, c2 judged but non-numeric, c3 exact member.
		w.Write([]byte(`{"S":{"c1":10,"c2":null},"T":{"c3":21}}`))
	}))
	defer server.Close()

	setter := &recordingSetter{}
	applied, err := newTestOrchestrator(server.URL).ScoreScenario(context.Background(), testScenario(), setter.set)
	require.NoError(t, err)

	assert.Equal(t, 2, applied)
	require.Len(t, setter.writes, 2)
	assert.Equal(t, recordedWrite{area: models.AreaStrength, criterionID: "c1", score: 8}, setter.writes[0])
	assert.Equal(t, recordedWrite{area: models.AreaThreat, criterionID: "c3", score: 21}, setter.writes[1])
}

func TestScoreScenario_NonNumericValuesStayUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"S":{"c1":0.2,"c2":"8"},"T":{"c3":null}}`))
	}))
	defer server.Close()

	setter := &recordingSetter{}
	applied, err := newTestOrchestrator(server.URL).ScoreScenario(context.Background(), testScenario(), setter.set)
	require.NoError(t, err, "non-numeric entries are not errors")

	assert.Equal(t, 1, applied)
	require.Len(t, setter.writes, 1)
	assert.Equal(t, "c1", setter.writes[0].criterionID)
	assert.Equal(t, 1, setter.writes[0].score, "sub-1 values snap to the lowest member, never 0")
}

func TestScoreScenario_UnknownCriterionIDSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"S":{"ghost":5,"c1":5}}`))
	}))
	defer server.Close()

	setter := &recordingSetter{}
	applied, err := newTestOrchestrator(server.URL).ScoreScenario(context.Background(), testScenario(), setter.set)
	require.NoError(t, err)

	assert.Equal(t, 1, applied)
	require.Len(t, setter.writes, 1)
	assert.Equal(t, "c1", setter.writes[0].criterionID)
}

func TestScoreScenario_EndpointRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("scoring backend down for maintenance"))
	}))
	defer server.Close()

	setter := &recordingSetter{}
	_, err := newTestOrchestrator(server.URL).ScoreScenario(context.Background(), testScenario(), setter.set)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEndpointRejected))
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, http.StatusServiceUnavailable, stdErr.Metadata["statusCode"])
	assert.Equal(t, "scoring backend down for maintenance", stdErr.Details)
	assert.Empty(t, setter.writes, "a rejected attempt writes nothing")
}

func TestScoreScenario_EndpointUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	setter := &recordingSetter{}
	_, err := newTestOrchestrator(server.URL).ScoreScenario(context.Background(), testScenario(), setter.set)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEndpointUnreachable))
	assert.Empty(t, setter.writes)
}

func TestScoreScenario_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", `scores incoming`},
		{"top level is an array", `[]`},
		{"top level is a number", `42`},
		{"unknown area key", `{"X":{"c1":5}}`},
		{"area maps to an array", `{"S":[1,2]}`},
		{"area maps to a number", `{"S":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			setter := &recordingSetter{}
			_, err := newTestOrchestrator(server.URL).ScoreScenario(context.Background(), testScenario(), setter.set)

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedResponse))
			assert.Empty(t, setter.writes, "a malformed response writes nothing")
		})
	}
}

func TestScoreScenario_EndpointNotConfigured(t *testing.T) {
	setter := &recordingSetter{}
	_, err := newTestOrchestrator("").ScoreScenario(context.Background(), testScenario(), setter.set)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidationFailed))
	assert.Empty(t, setter.writes)
}
