package ast

import (
	"fmt"
	"io/fs"

	"github.com/poojapathak0/vyra/pkg/expr"
)

// EncodeStatement converts a statement into the map form used by graph
// payloads and program documents.
func EncodeStatement(stmt Statement) map[string]any {
	out := map[string]any{"type": string(stmt.StatementType())}
	if line := stmt.SourceLine(); line > 0 {
		out["line"] = line
	}
	switch s := stmt.(type) {
	case *Assignment:
		out["variable"] = s.Variable
		out["value"] = expr.Encode(s.Value)
	case *Output:
		out["expressions"] = expr.EncodeList(s.Expressions)
		out["newline"] = s.Newline
	case *Input:
		out["prompt"] = s.Prompt
		out["variable"] = s.Variable
		out["input_type"] = s.InputType
	case *If:
		out["condition"] = expr.Encode(s.Condition)
		out["then"] = EncodeStatements(s.Then)
		if len(s.Else) > 0 {
			out["else"] = EncodeStatements(s.Else)
		} else {
			out["else"] = nil
		}
	case *While:
		out["condition"] = expr.Encode(s.Condition)
		out["body"] = EncodeStatements(s.Body)
	case *ForEach:
		out["iterator"] = s.Iterator
		out["iterable"] = expr.Encode(s.Iterable)
		out["body"] = EncodeStatements(s.Body)
	case *Repeat:
		out["count"] = expr.Encode(s.Count)
		out["body"] = EncodeStatements(s.Body)
	case *FunctionDef:
		out["name"] = s.Name
		out["parameters"] = stringList(s.Parameters)
		out["body"] = EncodeStatements(s.Body)
	case *Call:
		out["function"] = s.Function
		out["arguments"] = expr.EncodeList(s.Arguments)
	case *Return:
		if s.Value != nil {
			out["value"] = expr.Encode(s.Value)
		} else {
			out["value"] = nil
		}
	case *ListAppend:
		out["list"] = expr.Encode(s.List)
		out["value"] = expr.Encode(s.Value)
	case *FileRead:
		out["filepath"] = expr.Encode(s.FilePath)
		out["variable"] = s.Variable
		out["mode"] = s.Mode
	case *FileWrite:
		out["filepath"] = expr.Encode(s.FilePath)
		out["content"] = expr.Encode(s.Content)
		out["mode"] = s.Mode
	}
	return out
}

func EncodeStatements(stmts []Statement) []any {
	out := make([]any, len(stmts))
	for idx, stmt := range stmts {
		out[idx] = EncodeStatement(stmt)
	}
	return out
}

func stringList(values []string) []any {
	out := make([]any, len(values))
	for idx, v := range values {
		out[idx] = v
	}
	return out
}

// DecodeProgram accepts either {"statements": [...]} or a bare statement list.
func DecodeProgram(raw any) (*Program, error) {
	switch doc := raw.(type) {
	case map[string]any:
		stmts, err := DecodeStatements(doc["statements"])
		if err != nil {
			return nil, err
		}
		return &Program{Statements: stmts}, nil
	case []any:
		stmts, err := DecodeStatements(doc)
		if err != nil {
			return nil, err
		}
		return &Program{Statements: stmts}, nil
	default:
		return nil, fmt.Errorf("program: expected object or list, got %T", raw)
	}
}

func DecodeStatements(raw any) ([]Statement, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected statement list, got %T", raw)
	}
	out := make([]Statement, 0, len(items))
	for _, item := range items {
		stmt, err := DecodeStatement(item)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func DecodeStatement(raw any) (Statement, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("statement: expected object, got %T", raw)
	}
	typ, _ := node["type"].(string)
	stmt, err := decodeStatement(node, StatementType(typ))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", typ, err)
	}
	return stmt, nil
}

func decodeStatement(node map[string]any, typ StatementType) (Statement, error) {
	span := Span{Line: intField(node, "line")}
	switch typ {
	case StatementAssignment:
		value, err := expr.Decode(node["value"])
		if err != nil {
			return nil, err
		}
		return &Assignment{Span: span, Variable: stringField(node, "variable"), Value: value}, nil
	case StatementOutput:
		exprs, err := expr.DecodeList(node["expressions"])
		if err != nil {
			return nil, err
		}
		newline := true
		if v, ok := node["newline"].(bool); ok {
			newline = v
		}
		return &Output{Span: span, Expressions: exprs, Newline: newline}, nil
	case StatementInput:
		inputType := stringField(node, "input_type")
		if inputType == "" {
			inputType = "text"
		}
		return &Input{Span: span, Prompt: stringField(node, "prompt"), Variable: stringField(node, "variable"), InputType: inputType}, nil
	case StatementIf:
		cond, err := expr.Decode(node["condition"])
		if err != nil {
			return nil, err
		}
		then, err := DecodeStatements(node["then"])
		if err != nil {
			return nil, err
		}
		otherwise, err := DecodeStatements(node["else"])
		if err != nil {
			return nil, err
		}
		return &If{Span: span, Condition: cond, Then: then, Else: otherwise}, nil
	case StatementWhile:
		cond, err := expr.Decode(node["condition"])
		if err != nil {
			return nil, err
		}
		body, err := DecodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return &While{Span: span, Condition: cond, Body: body}, nil
	case StatementForEach:
		iterable, err := expr.Decode(node["iterable"])
		if err != nil {
			return nil, err
		}
		body, err := DecodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return &ForEach{Span: span, Iterator: stringField(node, "iterator"), Iterable: iterable, Body: body}, nil
	case StatementRepeat:
		count, err := expr.Decode(node["count"])
		if err != nil {
			return nil, err
		}
		body, err := DecodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return &Repeat{Span: span, Count: count, Body: body}, nil
	case StatementFunctionDef:
		body, err := DecodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		params, err := stringListField(node, "parameters")
		if err != nil {
			return nil, err
		}
		return &FunctionDef{Span: span, Name: stringField(node, "name"), Parameters: params, Body: body}, nil
	case StatementCall:
		args, err := expr.DecodeList(node["arguments"])
		if err != nil {
			return nil, err
		}
		return &Call{Span: span, Function: stringField(node, "function"), Arguments: args}, nil
	case StatementReturn:
		value, err := expr.Decode(node["value"])
		if err != nil {
			return nil, err
		}
		return &Return{Span: span, Value: value}, nil
	case StatementBreak:
		return &Break{Span: span}, nil
	case StatementContinue:
		return &Continue{Span: span}, nil
	case StatementListAppend:
		list, err := expr.Decode(node["list"])
		if err != nil {
			return nil, err
		}
		value, err := expr.Decode(node["value"])
		if err != nil {
			return nil, err
		}
		return &ListAppend{Span: span, List: list, Value: value}, nil
	case StatementFileRead:
		path, err := expr.Decode(node["filepath"])
		if err != nil {
			return nil, err
		}
		return &FileRead{Span: span, FilePath: path, Variable: stringField(node, "variable"), Mode: stringField(node, "mode")}, nil
	case StatementFileWrite:
		path, err := expr.Decode(node["filepath"])
		if err != nil {
			return nil, err
		}
		content, err := expr.Decode(node["content"])
		if err != nil {
			return nil, err
		}
		return &FileWrite{Span: span, FilePath: path, Content: content, Mode: stringField(node, "mode")}, nil
	default:
		return nil, fs.ErrInvalid
	}
}

func stringField(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}

func intField(node map[string]any, key string) int {
	switch v := node[key].(type) {
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

func stringListField(node map[string]any, key string) ([]string, error) {
	raw, ok := node[key].([]any)
	if !ok {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected string, got %T", key, item)
		}
		out = append(out, s)
	}
	return out, nil
}
