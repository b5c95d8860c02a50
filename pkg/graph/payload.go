package graph

import (
	"fmt"

	"github.com/poojapathak0/vyra/pkg/ast"
	"github.com/poojapathak0/vyra/pkg/expr"
)

// Payload is the statement data a node carries. Only the fields relevant to
// the node's kind are set.
type Payload struct {
	Label string
	Line  int

	Variable    string
	Value       expr.Expr
	Expressions []expr.Expr
	Newline     bool
	Prompt      string
	InputType   string
	Condition   expr.Expr

	Iterator string
	Iterable expr.Expr
	Count    expr.Expr

	Name       string
	Parameters []string
	Body       []ast.Statement
	Subgraph   *Subgraph

	Function  string
	Arguments []expr.Expr

	FilePath expr.Expr
	Content  expr.Expr
	Mode     string
	List     expr.Expr
}

// Subgraph locates a lowered function body inside the owning graph.
type Subgraph struct {
	Entry int
	Exit  int
}

func encodePayload(kind Kind, p Payload) map[string]any {
	data := map[string]any{}
	if p.Label != "" {
		data["label"] = p.Label
	}
	if p.Line > 0 {
		data["line"] = p.Line
	}
	switch kind {
	case KindAssignment:
		data["variable"] = p.Variable
		data["value"] = expr.Encode(p.Value)
	case KindOutput:
		data["expressions"] = expr.EncodeList(p.Expressions)
		data["newline"] = p.Newline
	case KindInput:
		data["prompt"] = p.Prompt
		data["variable"] = p.Variable
		data["input_type"] = p.InputType
	case KindIf, KindWhile:
		data["condition"] = expr.Encode(p.Condition)
	case KindForSetup, KindForCondition:
		data["iterator"] = p.Iterator
		data["iterable"] = expr.Encode(p.Iterable)
	case KindRepeatSetup, KindRepeatCondition:
		data["count"] = expr.Encode(p.Count)
	case KindFunctionDef:
		params := make([]any, len(p.Parameters))
		for idx, name := range p.Parameters {
			params[idx] = name
		}
		data["name"] = p.Name
		data["parameters"] = params
		data["body"] = ast.EncodeStatements(p.Body)
		if p.Subgraph != nil {
			data["entry"] = p.Subgraph.Entry
			data["exit"] = p.Subgraph.Exit
		}
	case KindFunctionEntry, KindFunctionExit:
		data["name"] = p.Name
	case KindFunctionCall:
		data["function"] = p.Function
		data["arguments"] = expr.EncodeList(p.Arguments)
	case KindReturn:
		data["value"] = expr.Encode(p.Value)
	case KindFileRead:
		data["filepath"] = expr.Encode(p.FilePath)
		data["variable"] = p.Variable
		data["mode"] = p.Mode
	case KindFileWrite:
		data["filepath"] = expr.Encode(p.FilePath)
		data["content"] = expr.Encode(p.Content)
		data["mode"] = p.Mode
	case KindListAppend:
		data["list"] = expr.Encode(p.List)
		data["value"] = expr.Encode(p.Value)
	}
	return data
}

func decodePayload(kind Kind, data map[string]any) (Payload, error) {
	var p Payload
	var err error
	p.Label, _ = data["label"].(string)
	p.Line = intValue(data["line"])
	p.Variable, _ = data["variable"].(string)
	p.Prompt, _ = data["prompt"].(string)
	p.InputType, _ = data["input_type"].(string)
	p.Iterator, _ = data["iterator"].(string)
	p.Name, _ = data["name"].(string)
	p.Function, _ = data["function"].(string)
	p.Mode, _ = data["mode"].(string)
	if kind == KindOutput {
		p.Newline = true
		if v, ok := data["newline"].(bool); ok {
			p.Newline = v
		}
	}

	decoders := []struct {
		key    string
		target *expr.Expr
	}{
		{"value", &p.Value},
		{"condition", &p.Condition},
		{"iterable", &p.Iterable},
		{"count", &p.Count},
		{"filepath", &p.FilePath},
		{"content", &p.Content},
		{"list", &p.List},
	}
	for _, d := range decoders {
		if *d.target, err = expr.Decode(data[d.key]); err != nil {
			return p, fmt.Errorf("%s: %w", d.key, err)
		}
	}
	if p.Expressions, err = expr.DecodeList(data["expressions"]); err != nil {
		return p, fmt.Errorf("expressions: %w", err)
	}
	if p.Arguments, err = expr.DecodeList(data["arguments"]); err != nil {
		return p, fmt.Errorf("arguments: %w", err)
	}
	if kind == KindFunctionDef {
		if params, ok := data["parameters"].([]any); ok {
			for _, raw := range params {
				name, ok := raw.(string)
				if !ok {
					return p, fmt.Errorf("parameters: expected string, got %T", raw)
				}
				p.Parameters = append(p.Parameters, name)
			}
		}
		if p.Body, err = ast.DecodeStatements(data["body"]); err != nil {
			return p, fmt.Errorf("body: %w", err)
		}
		if _, ok := data["entry"]; ok {
			p.Subgraph = &Subgraph{Entry: intValue(data["entry"]), Exit: intValue(data["exit"])}
		}
	}
	return p, nil
}

func intValue(raw any) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case interface{ Int64() (int64, error) }:
		n, _ := v.Int64()
		return int(n)
	}
	return 0
}
