// Package graph defines the logic graph: a control-flow graph whose nodes
// carry statement payloads and whose labeled edges encode branching and
// looping. Build lowers an AST program into a graph.
package graph

import "fmt"

// Kind identifies what a node does when executed.
type Kind string

const (
	KindEntry           Kind = "entry"
	KindExit            Kind = "exit"
	KindAssignment      Kind = "assignment"
	KindOutput          Kind = "output"
	KindInput           Kind = "input"
	KindIf              Kind = "if"
	KindThenEntry       Kind = "then_entry"
	KindElseEntry       Kind = "else_entry"
	KindMerge           Kind = "merge"
	KindWhile           Kind = "while"
	KindForSetup        Kind = "for_setup"
	KindForCondition    Kind = "for_condition"
	KindRepeatSetup     Kind = "repeat_setup"
	KindRepeatCondition Kind = "repeat_condition"
	KindFunctionDef     Kind = "function_def"
	KindFunctionEntry   Kind = "function_entry"
	KindFunctionExit    Kind = "function_exit"
	KindFunctionCall    Kind = "function_call"
	KindReturn          Kind = "return"
	KindBreak           Kind = "break"
	KindContinue        Kind = "continue"
	KindLoopExit        Kind = "loop_exit"
	KindFileRead        Kind = "file_read"
	KindFileWrite       Kind = "file_write"
	KindListAppend      Kind = "list_append"
)

// Label tags an edge with the reason it is taken.
type Label string

const (
	LabelNext       Label = "next"
	LabelThen       Label = "then"
	LabelElse       Label = "else"
	LabelElseSkip   Label = "else_skip"
	LabelExit       Label = "exit"
	LabelLoopBack   Label = "loop_back"
	LabelBreakTo    Label = "break_to"
	LabelContinueTo Label = "continue_to"
	LabelThenExit   Label = "then_exit"
	LabelElseExit   Label = "else_exit"
)

// Node is one vertex of the logic graph. Successors and Predecessors list
// neighbour ids in edge insertion order.
type Node struct {
	ID           int
	Kind         Kind
	Payload      Payload
	Successors   []int
	Predecessors []int

	out []Edge
}

type Edge struct {
	From  int
	To    int
	Label Label
}

// Graph owns its nodes; ids are dense and equal to the node's index.
type Graph struct {
	Nodes []*Node
	Edges []Edge
	Entry int
	Exit  int
}

func New() *Graph {
	return &Graph{Entry: -1, Exit: -1}
}

// AddNode appends a node with the next id. The first entry and exit nodes
// become the graph's entry and exit.
func (g *Graph) AddNode(kind Kind, payload Payload) *Node {
	node := &Node{ID: len(g.Nodes), Kind: kind, Payload: payload}
	g.Nodes = append(g.Nodes, node)
	switch kind {
	case KindEntry:
		if g.Entry < 0 {
			g.Entry = node.ID
		}
	case KindExit:
		if g.Exit < 0 {
			g.Exit = node.ID
		}
	}
	return node
}

func (g *Graph) AddEdge(from, to int, label Label) error {
	if _, ok := g.Node(from); !ok {
		return fmt.Errorf("graph: edge source %d does not exist", from)
	}
	if _, ok := g.Node(to); !ok {
		return fmt.Errorf("graph: edge target %d does not exist", to)
	}
	if label == "" {
		label = LabelNext
	}
	g.connect(from, to, label)
	return nil
}

// connect assumes both ids exist.
func (g *Graph) connect(from, to int, label Label) {
	edge := Edge{From: from, To: to, Label: label}
	g.Edges = append(g.Edges, edge)
	src, dst := g.Nodes[from], g.Nodes[to]
	src.out = append(src.out, edge)
	src.Successors = append(src.Successors, to)
	dst.Predecessors = append(dst.Predecessors, from)
}

func (g *Graph) Node(id int) (*Node, bool) {
	if g == nil || id < 0 || id >= len(g.Nodes) {
		return nil, false
	}
	return g.Nodes[id], true
}

// Next is the default successor: the first outgoing edge.
func (n *Node) Next() (int, bool) {
	if len(n.Successors) == 0 {
		return 0, false
	}
	return n.Successors[0], true
}

// Follow returns the first successor reached through an edge with label.
func (n *Node) Follow(label Label) (int, bool) {
	for _, edge := range n.out {
		if edge.Label == label {
			return edge.To, true
		}
	}
	return 0, false
}

// FollowOther returns the first successor whose edge label is not label.
func (n *Node) FollowOther(label Label) (int, bool) {
	for _, edge := range n.out {
		if edge.Label != label {
			return edge.To, true
		}
	}
	return 0, false
}

func (n *Node) Out() []Edge {
	return n.out
}
