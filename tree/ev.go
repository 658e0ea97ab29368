package tree

import "math"

// ComputeEV evaluates the tree rooted at n bottom-up and stores the result on
// every visited strategy node. An empty node evaluates to 0 and keeps its
// expected value unset.
func ComputeEV(n *StrategyNode) float64 {
	if len(n.Children) == 0 {
		return 0.0
	}

	values := make([]float64, len(n.Children))
	for i, child := range n.Children {
		values[i] = ChildEV(child)
	}

	var ev float64
	if n.Type == Decision {
		ev = math.Inf(-1)
		for _, v := range values {
			if v > ev { // first maximum wins on ties
				ev = v
			}
		}
	} else {
		for i, child := range n.Children {
			ev += child.Probability() * values[i]
		}
	}

	n.ExpectedValue = &ev
	return ev
}

// ChildEV evaluates a single child slot. Outcomes return their payoff; their
// probability is applied by the parent.
func ChildEV(c Child) float64 {
	switch c.kind {
	case OutcomeKind:
		return c.outcome.Value
	case NodeKind:
		return ComputeEV(c.node)
	default:
		return 0.0
	}
}
