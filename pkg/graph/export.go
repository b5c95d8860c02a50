package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Document is the JSON interchange form of a logic graph.
type Document struct {
	Nodes []DocumentNode `json:"nodes"`
	Edges []DocumentEdge `json:"edges"`
	Entry *int           `json:"entry"`
	Exit  *int           `json:"exit"`
}

type DocumentNode struct {
	ID           int            `json:"id"`
	Type         Kind           `json:"type"`
	Data         map[string]any `json:"data"`
	Successors   []int          `json:"successors"`
	Predecessors []int          `json:"predecessors"`
}

type DocumentEdge struct {
	From int   `json:"from"`
	To   int   `json:"to"`
	Type Label `json:"type"`
}

func (g *Graph) Export() Document {
	doc := Document{
		Nodes: make([]DocumentNode, 0, len(g.Nodes)),
		Edges: make([]DocumentEdge, 0, len(g.Edges)),
	}
	for _, node := range g.Nodes {
		doc.Nodes = append(doc.Nodes, DocumentNode{
			ID:           node.ID,
			Type:         node.Kind,
			Data:         encodePayload(node.Kind, node.Payload),
			Successors:   append([]int{}, node.Successors...),
			Predecessors: append([]int{}, node.Predecessors...),
		})
	}
	for _, edge := range g.Edges {
		doc.Edges = append(doc.Edges, DocumentEdge{From: edge.From, To: edge.To, Type: edge.Label})
	}
	if g.Entry >= 0 {
		entry := g.Entry
		doc.Entry = &entry
	}
	if g.Exit >= 0 {
		exit := g.Exit
		doc.Exit = &exit
	}
	return doc
}

// WriteJSON writes the exported graph indented with two spaces.
func (g *Graph) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(g.Export())
}

// ReadJSON rebuilds a graph from its exported JSON form.
func ReadJSON(r io.Reader) (*Graph, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("graph: decode: %w", err)
	}
	return FromMap(raw)
}

// IsDocument reports whether decoded data looks like an exported graph.
func IsDocument(raw any) bool {
	doc, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	_, hasNodes := doc["nodes"]
	_, hasEdges := doc["edges"]
	return hasNodes && hasEdges
}

// FromMap rebuilds a graph from an exported document decoded into generic
// maps (JSON with UseNumber, or YAML).
func FromMap(raw map[string]any) (*Graph, error) {
	nodesRaw, _ := raw["nodes"].([]any)
	type pending struct {
		id   int
		kind Kind
		data map[string]any
	}
	nodes := make([]pending, 0, len(nodesRaw))
	for _, item := range nodesRaw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("graph: node entry is %T, not an object", item)
		}
		kind, _ := obj["type"].(string)
		data, _ := obj["data"].(map[string]any)
		nodes = append(nodes, pending{id: intValue(obj["id"]), kind: Kind(kind), data: data})
	}
	sort.Slice(nodes, func(a, b int) bool { return nodes[a].id < nodes[b].id })

	g := New()
	for idx, n := range nodes {
		if n.id != idx {
			return nil, fmt.Errorf("graph: node ids are not dense (expected %d, got %d)", idx, n.id)
		}
		payload, err := decodePayload(n.kind, n.data)
		if err != nil {
			return nil, fmt.Errorf("graph: node %d (%s): %w", n.id, n.kind, err)
		}
		g.AddNode(n.kind, payload)
	}

	edgesRaw, _ := raw["edges"].([]any)
	for _, item := range edgesRaw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("graph: edge entry is %T, not an object", item)
		}
		label, _ := obj["type"].(string)
		if err := g.AddEdge(intValue(obj["from"]), intValue(obj["to"]), Label(label)); err != nil {
			return nil, err
		}
	}
	if v, ok := raw["entry"]; ok && v != nil {
		g.Entry = intValue(v)
	}
	if v, ok := raw["exit"]; ok && v != nil {
		g.Exit = intValue(v)
	}
	return g, nil
}
