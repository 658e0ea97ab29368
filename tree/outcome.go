package tree

import "fmt"

// ValidationError reports a field outside its allowed range.
type ValidationError struct {
	Field string
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: must be within [0, 1]", e.Field, e.Value)
}

// Outcome is a terminal payoff reached with some probability.
type Outcome struct {
	Name        string
	Probability float64
	Value       float64
}

func NewOutcome(name string, probability, value float64) (Outcome, error) {
	if err := ValidateProbability(probability); err != nil {
		return Outcome{}, err
	}
	return Outcome{Name: name, Probability: probability, Value: value}, nil
}

// WithProbability returns a copy of o with a corrected probability.
func (o Outcome) WithProbability(probability float64) (Outcome, error) {
	return NewOutcome(o.Name, probability, o.Value)
}

// ValidateProbability reports a ValidationError unless p is within [0, 1].
func ValidateProbability(p float64) error {
	// NaN fails both comparisons, so test the accepted range instead.
	if !(p >= 0 && p <= 1) {
		return &ValidationError{Field: "probability", Value: p}
	}
	return nil
}

type Kind uint8

const (
	_ Kind = iota
	OutcomeKind
	NodeKind
)

// Child is a slot in a node's children: either an Outcome or a nested
// StrategyNode. The zero Child holds neither.
type Child struct {
	kind    Kind
	outcome Outcome
	node    *StrategyNode
}

func OutcomeChild(o Outcome) Child {
	return Child{kind: OutcomeKind, outcome: o}
}

func NodeChild(n *StrategyNode) Child {
	return Child{kind: NodeKind, node: n}
}

func (c Child) Kind() Kind {
	return c.kind
}

func (c Child) Outcome() (Outcome, bool) {
	return c.outcome, c.kind == OutcomeKind
}

func (c Child) Node() (*StrategyNode, bool) {
	return c.node, c.kind == NodeKind
}

func (c Child) Name() string {
	switch c.kind {
	case OutcomeKind:
		return c.outcome.Name
	case NodeKind:
		return c.node.Name
	default:
		return ""
	}
}

func (c Child) Probability() float64 {
	switch c.kind {
	case OutcomeKind:
		return c.outcome.Probability
	case NodeKind:
		return c.node.Probability
	default:
		return 0
	}
}

// Value returns the payoff of an outcome or the computed expected value of a
// node. It reports false for nodes that have not been evaluated.
func (c Child) Value() (float64, bool) {
	switch c.kind {
	case OutcomeKind:
		return c.outcome.Value, true
	case NodeKind:
		if c.node.ExpectedValue == nil {
			return 0, false
		}
		return *c.node.ExpectedValue, true
	default:
		return 0, false
	}
}

// WeightedValue is the child's probability times its value.
func (c Child) WeightedValue() (float64, bool) {
	v, ok := c.Value()
	if !ok {
		return 0, false
	}
	return c.Probability() * v, true
}
