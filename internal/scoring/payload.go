// internal/scoring/payload.go
package scoring

import (
	"swot-engine/internal/engine"
	"swot-engine/internal/models"
)

// CriterionRef is the wire form of a criterion sent to the scoring
// endpoint. Existing scores are never transmitted.
type CriterionRef struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ScenarioDescriptor is the wire form of the scenario under evaluation.
type ScenarioDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Request is the payload POSTed to the external scoring endpoint.
type Request struct {
	Scenario ScenarioDescriptor        `json:"scenario"`
	Criteria map[string][]CriterionRef `json:"criteria"`
	Scale    []int                     `json:"scale"`
	Mode     string                    `json:"mode"`
}

// BuildRequest assembles the outbound payload. All four area keys are
// always present, each holding the criteria in insertion order.
func BuildRequest(scenario *models.Scenario, mode string) *Request {
	criteria := make(map[string][]CriterionRef, len(models.AllAreas))
	for _, area := range models.AllAreas {
		refs := make([]CriterionRef, 0, len(scenario.Criteria[area]))
		for _, criterion := range scenario.Criteria[area] {
			refs = append(refs, CriterionRef{ID: criterion.ID, Text: criterion.Text})
		}
		criteria[string(area)] = refs
	}
	return &Request{
		Scenario: ScenarioDescriptor{Name: scenario.Name, Description: scenario.Description},
		Criteria: criteria,
		Scale:    engine.Scale,
		Mode:     mode,
	}
}

// Response is the decoded endpoint response: area tag → criterion id →
// raw value. Any area or id may be omitted. Values stay untyped on
// purpose: a present but non-numeric value is not a malformed response,
// it just leaves that criterion unscored.
type Response map[string]map[string]interface{}

// responseSchema is the accepted endpoint response shape. Anything that
// fails it is treated as a malformed response and nothing is written.
var responseSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"S": areaResultSchema(),
		"W": areaResultSchema(),
		"O": areaResultSchema(),
		"T": areaResultSchema(),
	},
}

func areaResultSchema() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
