// Package render draws a strategy tree as text.
package render

import (
	"fmt"
	"strings"

	"navigator/tree"
)

const emptyTree = "No outcomes to display."

// Tree renders n and all nested nodes, one branch per line, with each
// branch's weighted EV.
func Tree(n *tree.StrategyNode) string {
	if len(n.Children) == 0 {
		return emptyTree
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s [%s]", n.Name, n.Type)
	if n.ExpectedValue != nil {
		fmt.Fprintf(&b, " | EV: %.1f", *n.ExpectedValue)
	}
	writeChildren(&b, n, "  ")
	return b.String()
}

func writeChildren(b *strings.Builder, n *tree.StrategyNode, indent string) {
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		connector, nested := "├── ", "│   "
		if last {
			connector, nested = "└── ", "    "
		}

		payoff, ev := "?", "?"
		if v, ok := child.Value(); ok {
			payoff = fmt.Sprintf("%.2f", v)
			ev = fmt.Sprintf("%.1f", child.Probability()*v)
		}

		fmt.Fprintf(b, "\n%s%s(P=%.2f, Payoff=%s) -> %s", indent, connector, child.Probability(), payoff, child.Name())
		node, isNode := child.Node()
		if isNode {
			fmt.Fprintf(b, " [%s]", node.Type)
		}
		fmt.Fprintf(b, " | EV: %s", ev)

		if isNode {
			writeChildren(b, node, indent+nested)
		}
	}
}
