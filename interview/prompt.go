package interview

import (
	"fmt"

	"navigator/rank"
)

// Prompt is the question for the current state.
func (c *Controller) Prompt() string {
	s := c.state
	switch s.Phase {
	case Start:
		return "Welcome, Architect. What is the name of this strategy?"

	case GetCount:
		return fmt.Sprintf("How many Outcomes are possible for '%s'?", c.activeName())

	case CollectOutcomes:
		switch s.Step {
		case AwaitingName:
			return fmt.Sprintf("What is Outcome %d called?", s.CurrentIndex+1)
		case AwaitingProb:
			return fmt.Sprintf("What is the probability (%%) for '%s'? (Current budget remaining: %.1f%%)",
				s.Pending.name(), s.RemainingBudget()*100)
		case AwaitingValue:
			return fmt.Sprintf("What is the financial value/payoff of '%s'? (Enter 0 if you plan to drill deeper later)",
				s.Pending.name())
		}

	case DecideNextStep:
		summary := rank.NothingRanked
		if active, err := c.Active(); err == nil {
			summary = rank.Summary(active)
		}
		return fmt.Sprintf("Current Rankings:\n%s\n\nWould you like to 'drill' deeper into one of these outcomes, or are we '%s'?",
			summary, FinishedKeyword)

	case Complete:
		return fmt.Sprintf("Analysis of '%s' is complete.", c.Root().Name)
	}
	return ""
}

func (c *Controller) activeName() string {
	active, err := c.Active()
	if err != nil {
		return ""
	}
	return active.Name
}
