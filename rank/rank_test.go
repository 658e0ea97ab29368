package rank

import (
	"testing"

	"github.com/stretchr/testify/require"

	"navigator/tree"
)

func outcome(t *testing.T, name string, p, v float64) tree.Child {
	t.Helper()
	o, err := tree.NewOutcome(name, p, v)
	require.NoError(t, err)
	return tree.OutcomeChild(o)
}

func TestSummary(t *testing.T) {
	t.Run("two outcomes", func(t *testing.T) {
		root := tree.NewStrategyNode("Bond Strategy", tree.WithChildren(
			outcome(t, "Aggressive Long Bonds", 0.6, 2000.0),
			outcome(t, "Short Term Cash", 0.4, 500.0),
		))
		tree.ComputeEV(root)

		got := Summary(root)

		require.Equal(t, "The optimal move is [Aggressive Long Bonds] with an EV of [1200.00] ([2000.00] at [60]%), "+
			"the second-best move is [Short Term Cash] with an EV of [200.00] ([500.00] at [40]%).", got)
	})

	t.Run("single eligible child", func(t *testing.T) {
		root := tree.NewStrategyNode("Solo", tree.WithChildren(outcome(t, "Only", 1.0, 5.0)))

		require.Equal(t, "The optimal move is [Only] with an EV of [5.00] ([5.00] at [100]%).", Summary(root))
	})

	t.Run("at most three clauses", func(t *testing.T) {
		root := tree.NewStrategyNode("Many", tree.WithChildren(
			outcome(t, "A", 0.1, 10.0),
			outcome(t, "B", 0.2, 10.0),
			outcome(t, "C", 0.3, 10.0),
			outcome(t, "D", 0.4, 10.0),
		))

		got := Summary(root)

		require.Equal(t, "The optimal move is [D] with an EV of [4.00] ([10.00] at [40]%), "+
			"the second-best move is [C] with an EV of [3.00] ([10.00] at [30]%), "+
			"the third-best move is [B] with an EV of [2.00] ([10.00] at [20]%).", got)
	})

	t.Run("nothing ranked yet", func(t *testing.T) {
		root := tree.NewStrategyNode("Empty", tree.WithChildren(
			tree.NodeChild(tree.NewStrategyNode("Unevaluated")),
		))

		require.Equal(t, NothingRanked, Summary(root))
	})
}

func TestRank(t *testing.T) {
	t.Run("ties keep insertion order", func(t *testing.T) {
		root := tree.NewStrategyNode("Ties", tree.WithChildren(
			outcome(t, "First", 0.5, 10.0),
			outcome(t, "Second", 0.25, 20.0),
			outcome(t, "Third", 0.25, 30.0),
		))

		entries := Rank(root)

		require.Len(t, entries, 3)
		require.Equal(t, "Third", entries[0].Name)
		require.Equal(t, "First", entries[1].Name, "Equal weighted EVs should keep insertion order")
		require.Equal(t, "Second", entries[2].Name)
		require.Equal(t, 0, entries[1].Index)
	})

	t.Run("skips unevaluated nodes and ranks evaluated ones", func(t *testing.T) {
		evaluated := tree.NewStrategyNode("Evaluated", tree.WithProbability(0.5), tree.WithChildren(
			outcome(t, "Inner", 1.0, 100.0),
		))
		root := tree.NewStrategyNode("Mixed", tree.WithChildren(
			tree.NodeChild(tree.NewStrategyNode("Pending", tree.WithProbability(0.2))),
			tree.NodeChild(evaluated),
			outcome(t, "Leaf", 0.3, 10.0),
		))
		tree.ComputeEV(root)

		entries := Rank(root)

		require.Len(t, entries, 2, "Empty nested node should be excluded")
		require.Equal(t, "Evaluated", entries[0].Name)
		require.Equal(t, 50.0, entries[0].WeightedEV)
		require.Equal(t, 100.0, entries[0].Value)

		best, ok := Best(root)
		require.True(t, ok)
		require.Equal(t, "Evaluated", best.Name)
	})

	t.Run("ranking does not reorder children", func(t *testing.T) {
		root := tree.NewStrategyNode("Stable", tree.WithChildren(
			outcome(t, "Low", 0.5, 1.0),
			outcome(t, "High", 0.5, 9.0),
		))

		Rank(root)

		require.Equal(t, "Low", root.Children[0].Name())
		require.Equal(t, "High", root.Children[1].Name())
	})

	t.Run("no best when nothing is eligible", func(t *testing.T) {
		_, ok := Best(tree.NewStrategyNode("Empty"))
		require.False(t, ok)
	})
}
