// Package rank orders a node's children by weighted expected value and
// formats them as recommendations.
package rank

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"navigator/tree"
)

// NothingRanked is returned by Summary when no child can be ranked yet.
const NothingRanked = "No moves analyzed yet."

const maxRecommendations = 3

var labels = [maxRecommendations]string{
	"optimal move",
	"second-best move",
	"third-best move",
}

// Entry is a ranked child.
type Entry struct {
	Index       int // position in the parent's children
	Name        string
	Probability float64
	Value       float64 // payoff for outcomes, expected value for nodes
	WeightedEV  float64
}

// Rank returns the eligible children of n sorted by weighted EV, highest
// first. Ties keep insertion order. Nodes without a computed EV are skipped.
func Rank(n *tree.StrategyNode) []Entry {
	entries := make([]Entry, 0, len(n.Children))
	for i, child := range n.Children {
		value, ok := child.Value()
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Index:       i,
			Name:        child.Name(),
			Probability: child.Probability(),
			Value:       value,
			WeightedEV:  child.Probability() * value,
		})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case a.WeightedEV > b.WeightedEV:
			return -1
		case a.WeightedEV < b.WeightedEV:
			return 1
		default:
			return 0
		}
	})
	return entries
}

// Best returns the highest ranked child of n.
func Best(n *tree.StrategyNode) (Entry, bool) {
	entries := Rank(n)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Summary describes at most the top three children of n in one sentence.
func Summary(n *tree.StrategyNode) string {
	entries := Rank(n)
	if len(entries) == 0 {
		return NothingRanked
	}
	if len(entries) > maxRecommendations {
		entries = entries[:maxRecommendations]
	}

	clauses := make([]string, len(entries))
	for i, e := range entries {
		clauses[i] = fmt.Sprintf("%s is [%s] with an EV of [%.2f] ([%.2f] at [%.0f]%%)",
			labels[i], e.Name, e.WeightedEV, e.Value, e.Probability*100)
	}
	return "The " + strings.Join(clauses, ", the ") + "."
}
