package tree

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Probability sums within Tolerance of 1.0 are treated as complete.
const Tolerance = 1e-4

var ErrInvalidPath = errors.New("path does not resolve to a strategy node")

type NodeType uint8

const (
	Chance NodeType = iota
	Decision
)

var nodeTypeStr = [...]string{
	"chance",
	"decision",
}

func (t NodeType) String() string {
	if int(t) >= len(nodeTypeStr) {
		return fmt.Sprintf("NodeType(%d)", t)
	}
	return nodeTypeStr[t]
}

// StrategyNode is an internal or root node of a strategy tree. Decision nodes
// take the best child, chance nodes weight children by probability.
type StrategyNode struct {
	Name          string
	Type          NodeType
	Children      []Child
	ExpectedValue *float64 // nil until computed
	Probability   float64  // probability of reaching this node from its parent
}

type NodeOption func(n *StrategyNode)

func WithType(t NodeType) NodeOption {
	return func(n *StrategyNode) {
		n.Type = t
	}
}

func WithProbability(p float64) NodeOption {
	return func(n *StrategyNode) {
		n.Probability = p
	}
}

func WithChildren(children ...Child) NodeOption {
	return func(n *StrategyNode) {
		n.Children = append(n.Children, children...)
	}
}

// NewStrategyNode creates an empty chance node with probability 1.0 unless
// options say otherwise.
func NewStrategyNode(name string, options ...NodeOption) *StrategyNode {
	n := &StrategyNode{ // Default values
		Name:        name,
		Type:        Chance,
		Children:    []Child{},
		Probability: 1.0,
	}
	for _, option := range options {
		option(n)
	}
	return n
}

// Append adds a child at the end. Existing children are never reordered.
func (n *StrategyNode) Append(child Child) {
	n.Children = append(n.Children, child)
}

// FindChild returns the index of the first child with the given name.
func (n *StrategyNode) FindChild(name string) (int, bool) {
	i := slices.IndexFunc(n.Children, func(c Child) bool {
		return c.Name() == name
	})
	return i, i >= 0
}

// Promote replaces the outcome at index i with an empty chance node carrying
// the outcome's name and probability, and returns the new node.
func (n *StrategyNode) Promote(i int) (*StrategyNode, error) {
	if i < 0 || i >= len(n.Children) {
		return nil, fmt.Errorf("promote child %d of %q: index out of range", i, n.Name)
	}
	outcome, ok := n.Children[i].Outcome()
	if !ok {
		return nil, fmt.Errorf("promote child %d of %q: already a strategy node", i, n.Name)
	}
	node := NewStrategyNode(outcome.Name, WithType(Chance), WithProbability(outcome.Probability))
	n.Children[i] = NodeChild(node)
	return node, nil
}

// Path addresses a node by the child indices leading to it from the root.
// The empty path is the root itself.
type Path []int

// Child returns a new path one level deeper. The receiver is not modified.
func (p Path) Child(i int) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, i)
}

// Resolve follows p from n and returns the strategy node it addresses.
func (n *StrategyNode) Resolve(p Path) (*StrategyNode, error) {
	current := n
	for depth, i := range p {
		if i < 0 || i >= len(current.Children) {
			return nil, fmt.Errorf("%w: index %d at depth %d", ErrInvalidPath, i, depth)
		}
		next, ok := current.Children[i].Node()
		if !ok {
			return nil, fmt.Errorf("%w: child %d at depth %d is an outcome", ErrInvalidPath, i, depth)
		}
		current = next
	}
	return current, nil
}

// Names returns the node names along p, starting with the root.
func (n *StrategyNode) Names(p Path) ([]string, error) {
	names := []string{n.Name}
	for i := range p {
		node, err := n.Resolve(p[:i+1])
		if err != nil {
			return nil, err
		}
		names = append(names, node.Name)
	}
	return names, nil
}
