package main

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/poojapathak0/vyra/pkg/graph"
)

var graphCommand = cli.Command{
	Name:      "graph",
	Usage:     "Print a program's logic graph as node and edge tables",
	ArgsUsage: "<program>",
	Action:    showGraph,
}

func showGraph(ctx *cli.Context) error {
	src, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	g := src.Graph

	nodes := tablewriter.NewWriter(ctx.App.Writer)
	nodes.SetHeader([]string{"ID", "Type", "Line", "Detail", "Successors"})
	nodes.SetAutoWrapText(false)
	for _, node := range g.Nodes {
		line := ""
		if node.Payload.Line > 0 {
			line = strconv.Itoa(node.Payload.Line)
		}
		nodes.Append([]string{strconv.Itoa(node.ID), string(node.Kind), line, nodeDetail(node), joinIDs(node.Successors)})
	}
	nodes.Render()

	edges := tablewriter.NewWriter(ctx.App.Writer)
	edges.SetHeader([]string{"From", "To", "Label"})
	for _, edge := range g.Edges {
		edges.Append([]string{strconv.Itoa(edge.From), strconv.Itoa(edge.To), string(edge.Label)})
	}
	edges.Render()
	return nil
}

// nodeDetail names the variable, function or label a node is about.
func nodeDetail(node *graph.Node) string {
	p := node.Payload
	switch node.Kind {
	case graph.KindAssignment, graph.KindInput, graph.KindFileRead:
		return p.Variable
	case graph.KindForSetup, graph.KindForCondition:
		return p.Iterator
	case graph.KindFunctionDef:
		detail := p.Name + "(" + strings.Join(p.Parameters, ", ") + ")"
		if p.Subgraph != nil {
			detail += " -> " + strconv.Itoa(p.Subgraph.Entry) + ".." + strconv.Itoa(p.Subgraph.Exit)
		}
		return detail
	case graph.KindFunctionCall:
		return p.Function
	default:
		return p.Label
	}
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for idx, id := range ids {
		parts[idx] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
