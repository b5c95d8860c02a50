// Package ast holds the statement tree produced by the English-language
// parser. The same statements are lowered into a logic graph and, inside
// function bodies, executed directly by the statement-tree interpreter.
package ast

import "github.com/poojapathak0/vyra/pkg/expr"

// StatementType names a statement variant; it doubles as the serialized
// "type" key.
type StatementType string

const (
	StatementAssignment  StatementType = "assignment"
	StatementOutput      StatementType = "output"
	StatementInput       StatementType = "input"
	StatementIf          StatementType = "if"
	StatementWhile       StatementType = "while"
	StatementForEach     StatementType = "for_each"
	StatementRepeat      StatementType = "repeat"
	StatementFunctionDef StatementType = "function_def"
	StatementCall        StatementType = "function_call"
	StatementReturn      StatementType = "return"
	StatementBreak       StatementType = "break"
	StatementContinue    StatementType = "continue"
	StatementListAppend  StatementType = "list_append"
	StatementFileRead    StatementType = "file_read"
	StatementFileWrite   StatementType = "file_write"
)

// Statement is implemented by every statement node.
type Statement interface {
	StatementType() StatementType
	SourceLine() int
}

// Span records the source line a statement came from (0 when unknown).
type Span struct {
	Line int
}

func (s Span) SourceLine() int { return s.Line }

// Program is the root of a parsed source file.
type Program struct {
	Statements []Statement
}

type Assignment struct {
	Span
	Variable string
	Value    expr.Expr
}

func (*Assignment) StatementType() StatementType { return StatementAssignment }

type Output struct {
	Span
	Expressions []expr.Expr
	Newline     bool
}

func (*Output) StatementType() StatementType { return StatementOutput }

// Input prompts and binds the line read. InputType is "text", "number" or
// "password".
type Input struct {
	Span
	Prompt    string
	Variable  string
	InputType string
}

func (*Input) StatementType() StatementType { return StatementInput }

type If struct {
	Span
	Condition expr.Expr
	Then      []Statement
	Else      []Statement
}

func (*If) StatementType() StatementType { return StatementIf }

type While struct {
	Span
	Condition expr.Expr
	Body      []Statement
}

func (*While) StatementType() StatementType { return StatementWhile }

type ForEach struct {
	Span
	Iterator string
	Iterable expr.Expr
	Body     []Statement
}

func (*ForEach) StatementType() StatementType { return StatementForEach }

type Repeat struct {
	Span
	Count expr.Expr
	Body  []Statement
}

func (*Repeat) StatementType() StatementType { return StatementRepeat }

type FunctionDef struct {
	Span
	Name       string
	Parameters []string
	Body       []Statement
}

func (*FunctionDef) StatementType() StatementType { return StatementFunctionDef }

// Call is a function call used as a statement; its result is discarded.
type Call struct {
	Span
	Function  string
	Arguments []expr.Expr
}

func (*Call) StatementType() StatementType { return StatementCall }

// Return carries an optional value; a nil Value returns null.
type Return struct {
	Span
	Value expr.Expr
}

func (*Return) StatementType() StatementType { return StatementReturn }

type Break struct {
	Span
}

func (*Break) StatementType() StatementType { return StatementBreak }

type Continue struct {
	Span
}

func (*Continue) StatementType() StatementType { return StatementContinue }

// ListAppend appends Value to the list bound to List, which must be a
// variable reference.
type ListAppend struct {
	Span
	List  expr.Expr
	Value expr.Expr
}

func (*ListAppend) StatementType() StatementType { return StatementListAppend }

// FileRead binds the contents of FilePath to Variable. Mode is "text" or
// "json".
type FileRead struct {
	Span
	FilePath expr.Expr
	Variable string
	Mode     string
}

func (*FileRead) StatementType() StatementType { return StatementFileRead }

type FileWrite struct {
	Span
	FilePath expr.Expr
	Content  expr.Expr
	Mode     string
}

func (*FileWrite) StatementType() StatementType { return StatementFileWrite }
