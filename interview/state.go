// Package interview builds a strategy tree one answer at a time.
//
// A Controller is a two-level state machine. The phase decides what the next
// answer means; while collecting outcomes the step narrows it to a name, a
// probability or a payoff. Every completed outcome is committed to the tree
// and the whole tree is re-evaluated before the next prompt is produced.
package interview

import (
	"errors"
	"fmt"

	"navigator/tree"
)

type Phase uint8

const (
	Start Phase = iota
	GetCount
	CollectOutcomes
	DecideNextStep
	Complete
)

var phaseStr = [...]string{
	"START",
	"GET_COUNT",
	"COLLECT_OUTCOMES",
	"DECIDE_NEXT_STEP",
	"COMPLETE",
}

func (p Phase) String() string {
	if int(p) >= len(phaseStr) {
		return fmt.Sprintf("Phase(%d)", p)
	}
	return phaseStr[p]
}

// Step is the sub-state used during CollectOutcomes.
type Step uint8

const (
	AwaitingName Step = iota
	AwaitingProb
	AwaitingValue
	Commit
	AwaitingInput
)

var stepStr = [...]string{
	"AWAITING_NAME",
	"AWAITING_PROB",
	"AWAITING_VALUE",
	"COMMIT",
	"AWAITING_INPUT",
}

func (s Step) String() string {
	if int(s) >= len(stepStr) {
		return fmt.Sprintf("Step(%d)", s)
	}
	return stepStr[s]
}

// Answers rejected by the controller. The state is left unchanged and the
// same question is asked again.
var (
	ErrParse          = errors.New("answer is not a number")
	ErrInvalidCount   = errors.New("outcome count must be at least 1")
	ErrBudgetExceeded = errors.New("probability exceeds the remaining budget")
	ErrEmptyName      = errors.New("name must not be empty")
	ErrLookupMiss     = errors.New("no outcome with that name")
	ErrComplete       = errors.New("interview is complete")
)

// Pending holds the fields of the outcome being collected.
type Pending struct {
	Name        *string
	Probability *float64
	Value       *float64
}

func (p Pending) IsEmpty() bool {
	return p.Name == nil && p.Probability == nil && p.Value == nil
}

func (p Pending) name() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}

// State is the full position of an interview.
type State struct {
	Phase        Phase
	Step         Step
	TargetCount  int
	CurrentIndex int
	RunningTotal float64 // sum of committed probabilities under the active node
	Pending      Pending
	Root         *tree.StrategyNode
	Active       tree.Path // node currently being populated, relative to Root
}

func (s State) isLastOutcome() bool {
	return s.CurrentIndex+1 == s.TargetCount
}

// RemainingBudget is the probability not yet assigned under the active node.
func (s State) RemainingBudget() float64 {
	return 1.0 - s.RunningTotal
}
