// internal/models/scenario.go
package models

import (
	"github.com/google/uuid"
)

// Area is one of the four fixed SWOT tags. The wire representation matches
// the scoring contract ("S", "W", "O", "T").
type Area string

const (
	AreaStrength    Area = "S"
	AreaWeakness    Area = "W"
	AreaOpportunity Area = "O"
	AreaThreat      Area = "T"
)

// AllAreas lists the four areas in their canonical order.
var AllAreas = []Area{AreaStrength, AreaWeakness, AreaOpportunity, AreaThreat}

// ParseArea maps a string onto an Area tag.
func ParseArea(s string) (Area, bool) {
	switch Area(s) {
	case AreaStrength, AreaWeakness, AreaOpportunity, AreaThreat:
		return Area(s), true
	}
	return "", false
}

// Criterion is one free-text SWOT consideration. Score is nil while the
// criterion is unscored; an explicit 0 is a real score and contributes to
// averages, unlike nil.
type Criterion struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Score *int   `json:"score,omitempty"`
}

// Scenario is one decision alternative. Criteria always carries all four
// area buckets (possibly empty); order within a bucket is insertion order.
type Scenario struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Attachments []string             `json:"attachments"`
	Criteria    map[Area][]Criterion `json:"criteria"`
}

// NewScenario creates a scenario with all four area buckets initialized.
func NewScenario(name, description string) *Scenario {
	return &Scenario{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Attachments: []string{},
		Criteria:    emptyCriteria(),
	}
}

func emptyCriteria() map[Area][]Criterion {
	buckets := make(map[Area][]Criterion, len(AllAreas))
	for _, area := range AllAreas {
		buckets[area] = []Criterion{}
	}
	return buckets
}

// Normalize guarantees the four-bucket invariant after external decoding.
func (s *Scenario) Normalize() {
	if s.Criteria == nil {
		s.Criteria = emptyCriteria()
		return
	}
	for _, area := range AllAreas {
		if s.Criteria[area] == nil {
			s.Criteria[area] = []Criterion{}
		}
	}
	if s.Attachments == nil {
		s.Attachments = []string{}
	}
}

// Clone returns a deep copy so readers never observe in-place mutation.
func (s *Scenario) Clone() *Scenario {
	out := &Scenario{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Attachments: append([]string{}, s.Attachments...),
		Criteria:    make(map[Area][]Criterion, len(AllAreas)),
	}
	for _, area := range AllAreas {
		bucket := make([]Criterion, len(s.Criteria[area]))
		for i, c := range s.Criteria[area] {
			copied := c
			if c.Score != nil {
				v := *c.Score
				copied.Score = &v
			}
			bucket[i] = copied
		}
		out.Criteria[area] = bucket
	}
	return out
}

// FindCriterion looks a criterion up by area and id.
func (s *Scenario) FindCriterion(area Area, criterionID string) (*Criterion, bool) {
	bucket := s.Criteria[area]
	for i := range bucket {
		if bucket[i].ID == criterionID {
			return &bucket[i], true
		}
	}
	return nil, false
}
