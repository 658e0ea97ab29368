package interview

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"navigator/tree"
)

// commit appends the pending outcome to the active node and re-evaluates the
// tree. The last outcome absorbs any probability left over, so a node's
// outcomes always sum to 1.
func (c *Controller) commit() error {
	p := c.state.Pending
	if p.Name == nil || p.Probability == nil || p.Value == nil {
		return fmt.Errorf("commit: incomplete outcome %q", p.name())
	}

	parent, err := c.Active()
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	outcome, err := tree.NewOutcome(*p.Name, *p.Probability, *p.Value)
	if err != nil {
		c.rollbackProbability()
		return fmt.Errorf("commit: %w", err)
	}

	total := c.state.RunningTotal + outcome.Probability
	last := c.state.isLastOutcome()
	if last && math.Abs(total-1.0) > tree.Tolerance {
		remainder := math.Max(0, 1.0-c.state.RunningTotal) // running total may overshoot within tolerance
		outcome, err = outcome.WithProbability(remainder)
		if err != nil {
			c.rollbackProbability()
			return fmt.Errorf("commit: %w", err)
		}
		log.Info().Msgf("normalized probability of %q from %.4f to %.4f", outcome.Name, *p.Probability, remainder)
		total = 1.0
	}

	parent.Append(tree.OutcomeChild(outcome))
	tree.ComputeEV(c.state.Root)
	log.Info().Msgf("committed outcome %d of %d under %q: %q p=%.4f value=%.2f",
		c.state.CurrentIndex+1, c.state.TargetCount, parent.Name, outcome.Name, outcome.Probability, outcome.Value)

	c.state.RunningTotal = total
	c.state.Pending = Pending{}
	if last {
		c.state.Phase = DecideNextStep
		c.state.Step = AwaitingInput
		return nil
	}
	c.state.CurrentIndex++
	c.state.Step = AwaitingName
	return nil
}

// rollbackProbability returns to the probability question, keeping the name.
func (c *Controller) rollbackProbability() {
	c.state.Pending.Probability = nil
	c.state.Pending.Value = nil
	c.state.Step = AwaitingProb
}
