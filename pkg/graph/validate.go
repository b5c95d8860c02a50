package graph

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants every built graph satisfies:
// one entry and one exit, dense ids, well-formed function subgraphs, and an
// outgoing edge on every reachable node other than an exit.
func Validate(g *Graph) error {
	var errs []error
	entries, exits := 0, 0
	for idx, node := range g.Nodes {
		if node.ID != idx {
			errs = append(errs, fmt.Errorf("node at index %d has id %d", idx, node.ID))
		}
		switch node.Kind {
		case KindEntry:
			entries++
		case KindExit:
			exits++
		}
	}
	if entries != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one entry node, found %d", entries))
	}
	if exits != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one exit node, found %d", exits))
	}
	if _, ok := g.Node(g.Entry); !ok {
		errs = append(errs, fmt.Errorf("entry id %d does not exist", g.Entry))
	}

	starts := []int{g.Entry}
	for _, node := range g.Nodes {
		if node.Kind != KindFunctionDef {
			continue
		}
		sub := node.Payload.Subgraph
		if sub == nil {
			continue
		}
		entry, okEntry := g.Node(sub.Entry)
		exit, okExit := g.Node(sub.Exit)
		if !okEntry || entry.Kind != KindFunctionEntry || !okExit || exit.Kind != KindFunctionExit {
			errs = append(errs, fmt.Errorf("function %q (node %d) has a malformed subgraph", node.Payload.Name, node.ID))
			continue
		}
		starts = append(starts, sub.Entry)
	}

	for _, id := range reachable(g, starts) {
		node := g.Nodes[id]
		if node.Kind == KindExit || node.Kind == KindFunctionExit {
			continue
		}
		if len(node.Successors) == 0 {
			errs = append(errs, fmt.Errorf("node %d (%s) has no outgoing edge", node.ID, node.Kind))
		}
	}
	return errors.Join(errs...)
}

func reachable(g *Graph, starts []int) []int {
	seen := make(map[int]bool, len(g.Nodes))
	var order []int
	stack := append([]int{}, starts...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		if _, ok := g.Node(id); !ok {
			continue
		}
		seen[id] = true
		order = append(order, id)
		stack = append(stack, g.Nodes[id].Successors...)
	}
	return order
}
