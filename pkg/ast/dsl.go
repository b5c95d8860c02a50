package ast

import "github.com/poojapathak0/vyra/pkg/expr"

func Prog(stmts ...Statement) *Program { return &Program{Statements: stmts} }

func Block(stmts ...Statement) []Statement { return stmts }

func Set(name string, value expr.Expr) *Assignment {
	return &Assignment{Variable: name, Value: value}
}

func Display(exprs ...expr.Expr) *Output {
	return &Output{Expressions: exprs, Newline: true}
}

func Ask(prompt, variable, inputType string) *Input {
	return &Input{Prompt: prompt, Variable: variable, InputType: inputType}
}

func IfElse(cond expr.Expr, then, otherwise []Statement) *If {
	return &If{Condition: cond, Then: then, Else: otherwise}
}

func When(cond expr.Expr, then ...Statement) *If {
	return &If{Condition: cond, Then: then}
}

func Loop(cond expr.Expr, body ...Statement) *While {
	return &While{Condition: cond, Body: body}
}

func Each(iterator string, iterable expr.Expr, body ...Statement) *ForEach {
	return &ForEach{Iterator: iterator, Iterable: iterable, Body: body}
}

func Times(count expr.Expr, body ...Statement) *Repeat {
	return &Repeat{Count: count, Body: body}
}

func Fn(name string, params []string, body ...Statement) *FunctionDef {
	return &FunctionDef{Name: name, Parameters: params, Body: body}
}

func CallStmt(name string, args ...expr.Expr) *Call {
	return &Call{Function: name, Arguments: args}
}

func Ret(value expr.Expr) *Return { return &Return{Value: value} }

func Brk() *Break { return &Break{} }

func Cont() *Continue { return &Continue{} }

func Push(list string, value expr.Expr) *ListAppend {
	return &ListAppend{List: expr.Var(list), Value: value}
}

func ReadFile(path expr.Expr, variable, mode string) *FileRead {
	return &FileRead{FilePath: path, Variable: variable, Mode: mode}
}

func WriteFile(path, content expr.Expr, mode string) *FileWrite {
	return &FileWrite{FilePath: path, Content: content, Mode: mode}
}
