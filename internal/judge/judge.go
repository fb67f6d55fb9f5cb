// internal/judge/judge.go
package judge

import (
	"context"

	"swot-engine/internal/models"
)

// Input is one criterion judgment request.
type Input struct {
	ScenarioName        string
	ScenarioDescription string
	Area                models.Area
	CriterionText       string
	Mode                string
}

// Judge produces a raw relevance value for one criterion. The value is not
// yet snapped onto the scale; the caller decides what to do with it. A
// successful but non-numeric judgment comes back as raw 0.
type Judge interface {
	Judge(ctx context.Context, input *Input) (float64, error)
}

// Func adapts a plain function to the Judge interface.
type Func func(ctx context.Context, input *Input) (float64, error)

func (f Func) Judge(ctx context.Context, input *Input) (float64, error) {
	return f(ctx, input)
}
