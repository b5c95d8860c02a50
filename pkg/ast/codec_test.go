package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/poojapathak0/vyra/pkg/expr"
)

const ageProgram = `
statements:
  - type: assignment
    line: 1
    variable: age
    value: {type: literal, value: 20, value_type: number}
  - type: if
    line: 2
    condition:
      type: comparison
      operator: ">="
      left: {type: variable, name: age}
      right: {type: literal, value: 18}
    then:
      - type: output
        expressions: [{type: literal, value: Adult}]
    else:
      - type: output
        newline: false
        expressions: [{type: literal, value: Minor}]
`

func TestDecodeProgramFromYAML(t *testing.T) {
	var raw any
	require.NoError(t, yaml.Unmarshal([]byte(ageProgram), &raw))

	prog, err := DecodeProgram(raw)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	assign, ok := prog.Statements[0].(*Assignment)
	require.True(t, ok, "got %T", prog.Statements[0])
	require.Equal(t, "age", assign.Variable)
	require.Equal(t, 1, assign.SourceLine())
	require.Equal(t, expr.Int(20), assign.Value)

	branch := prog.Statements[1].(*If)
	require.Equal(t, 2, branch.SourceLine())
	require.Len(t, branch.Then, 1)
	require.True(t, branch.Then[0].(*Output).Newline, "newline defaults to true")
	require.False(t, branch.Else[0].(*Output).Newline)
}

func TestDecodeStatementRejectsUnknownType(t *testing.T) {
	_, err := DecodeStatement(map[string]any{"type": "include", "path": "x.yaml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "include")
}

func TestEncodeStatementRoundTripsFunctionDef(t *testing.T) {
	def := Fn("add", []string{"a", "b"},
		Ret(expr.Bin("+", expr.Var("a"), expr.Var("b"))),
	)
	encoded := EncodeStatement(def)
	require.Equal(t, "function_def", encoded["type"])
	require.Equal(t, []any{"a", "b"}, encoded["parameters"])

	back, err := DecodeStatement(encoded)
	require.NoError(t, err)
	require.Equal(t, def, back)
}
