package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustOutcome(t *testing.T, name string, p, v float64) Child {
	t.Helper()
	o, err := NewOutcome(name, p, v)
	require.NoError(t, err)
	return OutcomeChild(o)
}

func TestComputeEV(t *testing.T) {
	t.Run("chance node weights outcomes by probability", func(t *testing.T) {
		root := NewStrategyNode("TLT Choice", WithChildren(
			mustOutcome(t, "Up", 0.4, 22.0),
			mustOutcome(t, "Same", 0.35, 5.0),
			mustOutcome(t, "Down", 0.25, -12.0),
		))

		got := ComputeEV(root)

		require.InDelta(t, 7.55, got, 1e-9, "EV should be the probability-weighted sum")
		require.NotNil(t, root.ExpectedValue, "EV should be stored on the node")
		require.InDelta(t, 7.55, *root.ExpectedValue, 1e-9)
	})

	t.Run("decision node takes the best child and ignores child probabilities", func(t *testing.T) {
		safe := NewStrategyNode("Safe Path", WithProbability(0.5), WithChildren(
			mustOutcome(t, "Guaranteed", 1.0, 10.0),
		))
		risky := NewStrategyNode("Risky Path", WithProbability(0.5), WithChildren(
			mustOutcome(t, "High Reward", 1.0, 20.0),
		))
		root := NewStrategyNode("Root Decision", WithType(Decision), WithChildren(
			NodeChild(safe), NodeChild(risky),
		))

		got := ComputeEV(root)

		require.Equal(t, 20.0, got, "Decision should pick the max child EV")
		require.Equal(t, 10.0, *safe.ExpectedValue, "Nested nodes should be annotated")
		require.Equal(t, 20.0, *risky.ExpectedValue, "Nested nodes should be annotated")
	})

	t.Run("decision node with only negative children", func(t *testing.T) {
		root := NewStrategyNode("Bad Options", WithType(Decision), WithChildren(
			mustOutcome(t, "Lose a little", 0.5, -1.0),
			mustOutcome(t, "Lose a lot", 0.5, -100.0),
		))

		require.Equal(t, -1.0, ComputeEV(root))
	})

	t.Run("empty node evaluates to zero", func(t *testing.T) {
		root := NewStrategyNode("Empty")

		require.Equal(t, 0.0, ComputeEV(root))
		require.Nil(t, root.ExpectedValue, "Empty node should stay unevaluated")
	})

	t.Run("empty nested node contributes nothing", func(t *testing.T) {
		drilled := NewStrategyNode("Drilled", WithProbability(0.5))
		root := NewStrategyNode("Root", WithChildren(
			NodeChild(drilled),
			mustOutcome(t, "Other", 0.5, 10.0),
		))

		require.Equal(t, 5.0, ComputeEV(root))
	})

	t.Run("outcome child returns its own value", func(t *testing.T) {
		require.Equal(t, 42.0, ChildEV(mustOutcome(t, "Payoff", 0.1, 42.0)))
	})

	t.Run("recomputation is idempotent", func(t *testing.T) {
		inner := NewStrategyNode("Inner", WithProbability(0.3), WithChildren(
			mustOutcome(t, "A", 0.5, 100.0),
			mustOutcome(t, "B", 0.5, -20.0),
		))
		root := NewStrategyNode("Root", WithType(Decision), WithChildren(
			NodeChild(inner),
			mustOutcome(t, "C", 0.7, 30.0),
		))

		first := ComputeEV(root)
		firstInner := *inner.ExpectedValue
		second := ComputeEV(root)

		require.Equal(t, first, second, "Repeated evaluation should not drift")
		require.Equal(t, firstInner, *inner.ExpectedValue, "Repeated evaluation should not drift")
		require.Equal(t, 40.0, second)
	})
}
