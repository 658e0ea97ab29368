package interview

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"navigator/tree"
)

// FinishedKeyword ends the interview at the decide step.
const FinishedKeyword = "finished"

// Result reports what a single answer did.
type Result struct {
	Advanced  bool  // false means the same question is asked again
	Retry     error // why the answer was rejected, nil when advanced
	Committed bool  // an outcome was added to the tree
	Promoted  bool  // an outcome was turned into a strategy node
	Prompt    string
}

type Controller struct {
	state State
}

func NewController() *Controller {
	return &Controller{
		state: State{
			Phase: Start,
			Step:  AwaitingInput,
		},
	}
}

// State returns a copy of the controller state. The tree is shared.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Root() *tree.StrategyNode {
	return c.state.Root
}

func (c *Controller) Done() bool {
	return c.state.Phase == Complete
}

// Active resolves the node currently being populated.
func (c *Controller) Active() (*tree.StrategyNode, error) {
	if c.state.Root == nil {
		return nil, fmt.Errorf("%w: no root yet", tree.ErrInvalidPath)
	}
	return c.state.Root.Resolve(c.state.Active)
}

// Breadcrumb lists node names from the root to the active node.
func (c *Controller) Breadcrumb() []string {
	if c.state.Root == nil {
		return nil
	}
	names, err := c.state.Root.Names(c.state.Active)
	if err != nil {
		return nil
	}
	return names
}

// Submit consumes one answer. A completed outcome is committed within the
// same call, so the returned prompt always reflects the updated tree.
func (c *Controller) Submit(input string) Result {
	before := c.state
	res := Result{}

	err := c.apply(input, &res)
	if err == nil && c.state.Phase == CollectOutcomes && c.state.Step == Commit {
		err = c.commit()
		res.Committed = err == nil
	}

	if err != nil {
		log.Debug().
			Err(err).
			Stringer("phase", c.state.Phase).
			Stringer("step", c.state.Step).
			Msg("answer rejected")
		res.Retry = err
	} else {
		res.Advanced = true
		log.Debug().
			Stringer("from_phase", before.Phase).
			Stringer("from_step", before.Step).
			Stringer("phase", c.state.Phase).
			Stringer("step", c.state.Step).
			Msg("interview advanced")
	}
	res.Prompt = c.Prompt()
	return res
}

func (c *Controller) apply(input string, res *Result) error {
	switch c.state.Phase {
	case Start:
		return c.defineRoot(input)
	case GetCount:
		return c.setCount(input)
	case CollectOutcomes:
		return c.collect(input)
	case DecideNextStep:
		return c.decide(input, res)
	default:
		return ErrComplete
	}
}

func (c *Controller) defineRoot(input string) error {
	name := strings.TrimSpace(input)
	if name == "" {
		return ErrEmptyName
	}
	c.state.Root = tree.NewStrategyNode(name, tree.WithType(tree.Decision))
	c.state.Active = tree.Path{}
	c.state.Phase = GetCount
	log.Info().Msgf("started strategy %q", name)
	return nil
}

func (c *Controller) setCount(input string) error {
	count, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrParse, input)
	}
	if count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	c.state.TargetCount = count
	c.state.CurrentIndex = 0
	c.state.RunningTotal = 0
	c.state.Pending = Pending{}
	c.state.Phase = CollectOutcomes
	c.state.Step = AwaitingName
	return nil
}

func (c *Controller) collect(input string) error {
	switch c.state.Step {
	case AwaitingName:
		name := strings.TrimSpace(input)
		if name == "" {
			return ErrEmptyName
		}
		c.state.Pending.Name = &name
		c.state.Step = AwaitingProb
		return nil

	case AwaitingProb:
		p, err := parsePercent(input)
		if err != nil {
			return err
		}
		if err := tree.ValidateProbability(p); err != nil {
			return err
		}
		// The last slot absorbs whatever is left, so only earlier slots can overdraw.
		if !c.state.isLastOutcome() && c.state.RunningTotal+p > 1.0+tree.Tolerance {
			return fmt.Errorf("%w: %.1f%% left", ErrBudgetExceeded, c.state.RemainingBudget()*100)
		}
		c.state.Pending.Probability = &p
		c.state.Step = AwaitingValue
		return nil

	case AwaitingValue:
		v, err := parseNumber(input)
		if err != nil {
			return err
		}
		c.state.Pending.Value = &v
		c.state.Step = Commit
		return nil

	default:
		return fmt.Errorf("unexpected step %s", c.state.Step)
	}
}

func (c *Controller) decide(input string, res *Result) error {
	// Surrounding whitespace is ignored on purpose for both the keyword and
	// child names; names are stored trimmed when they are collected.
	answer := strings.TrimSpace(input)
	if strings.EqualFold(answer, FinishedKeyword) {
		c.state.Phase = Complete
		log.Info().Msgf("completed strategy %q", c.state.Root.Name)
		return nil
	}

	parent, err := c.Active()
	if err != nil {
		return err
	}
	i, ok := parent.FindChild(answer)
	if !ok {
		return fmt.Errorf("%w: %q", ErrLookupMiss, answer)
	}

	if _, isOutcome := parent.Children[i].Outcome(); isOutcome {
		node, err := parent.Promote(i)
		if err != nil {
			return err
		}
		res.Promoted = true
		log.Info().Msgf("promoted outcome %q to a chance node", node.Name)
	}

	c.state.Active = c.state.Active.Child(i)
	c.state.Phase = GetCount
	return nil
}

func parsePercent(input string) (float64, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(input, "%", ""))
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	return v / 100.0, nil
}

func parseNumber(input string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrParse, input)
	}
	return v, nil
}
