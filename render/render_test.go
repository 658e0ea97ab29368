package render

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

func TestTree(t *testing.T) {
	t.Run("flat chance node", func(t *testing.T) {
		root := tree.NewStrategyNode("TLT Choice", tree.WithChildren(
			outcome(t, "Up", 0.4, 22.0),
			outcome(t, "Down", 0.6, -12.0),
		))
		tree.ComputeEV(root)

		want := "Scenario: TLT Choice [chance] | EV: 1.6\n" +
			"  ├── (P=0.40, Payoff=22.00) -> Up | EV: 8.8\n" +
			"  └── (P=0.60, Payoff=-12.00) -> Down | EV: -7.2"
		require.Equal(t, want, Tree(root))
	})

	t.Run("nested nodes are indented", func(t *testing.T) {
		stocks := tree.NewStrategyNode("Stocks", tree.WithProbability(0.5), tree.WithChildren(
			outcome(t, "Boom", 0.5, 300.0),
			outcome(t, "Bust", 0.5, -100.0),
		))
		root := tree.NewStrategyNode("Retirement", tree.WithType(tree.Decision), tree.WithChildren(
			tree.NodeChild(stocks),
			outcome(t, "Cash", 0.5, 50.0),
			tree.NodeChild(tree.NewStrategyNode("Later", tree.WithProbability(0.1))),
		))
		tree.ComputeEV(root)

		want := "Scenario: Retirement [decision] | EV: 100.0\n" +
			"  ├── (P=0.50, Payoff=100.00) -> Stocks [chance] | EV: 50.0\n" +
			"  │   ├── (P=0.50, Payoff=300.00) -> Boom | EV: 150.0\n" +
			"  │   └── (P=0.50, Payoff=-100.00) -> Bust | EV: -50.0\n" +
			"  ├── (P=0.50, Payoff=50.00) -> Cash | EV: 25.0\n" +
			"  └── (P=0.10, Payoff=?) -> Later [chance] | EV: ?"
		require.Equal(t, want, Tree(root))
	})

	t.Run("empty node", func(t *testing.T) {
		require.Equal(t, "No outcomes to display.", Tree(tree.NewStrategyNode("Nothing")))
	})
}
