// Package narrative produces a short justification for a recommendation.
//
// The text is display-only. Nothing in the interview or the EV computation
// depends on what a Generator returns.
package narrative

import (
	"context"
	"fmt"
)

// Unavailable is returned in place of a justification when generation fails.
const Unavailable = "(Strategic narrative unavailable.)"

// Request describes the recommendation to justify.
type Request struct {
	Scenario   string
	BestMove   string
	WeightedEV float64
}

// Generator writes a justification. Implementations return Unavailable
// instead of an error so callers can always display the result.
type Generator interface {
	Justify(ctx context.Context, req Request) string
}

// Static is a Generator that never calls out and summarizes the numbers.
type Static struct{}

func (Static) Justify(_ context.Context, req Request) string {
	return fmt.Sprintf("Within '%s', %s contributes the most expected value (%.1f) of the available moves.",
		req.Scenario, req.BestMove, req.WeightedEV)
}
