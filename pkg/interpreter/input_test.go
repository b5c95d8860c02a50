package interpreter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poojapathak0/vyra/pkg/ast"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestInputStatements(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Ask("Age? ", "age", "number"),
			ast.Ask("Name? ", "name", "text"),
			ast.Ask("", "ratio", "text"),
			ast.Ask("", "code", "password"),
		), func(o *Options) {
			o.Stdin = strings.NewReader("42\nAlice\n3.5\r\ns3cret")
		})
		require.NoError(t, res.err)
		assert.Equal(t, "Age? Name? ", res.out)
		assert.Equal(t, runtime.Int(42), res.global("age"))
		assert.Equal(t, runtime.String("Alice"), res.global("name"))
		assert.Equal(t, runtime.Float(3.5), res.global("ratio"))
		assert.Equal(t, runtime.String("s3cret"), res.global("code"))
	})
}

func TestInputAtEOFFails(t *testing.T) {
	res := runProgram(t, ExecGraph, ast.Prog(ast.Ask("> ", "x", "text")))
	require.ErrorIs(t, res.err, ErrInput)
	assert.Contains(t, res.err.Error(), "read input for 'x'")
	assert.Equal(t, "> ", res.out)
}

func TestCoerceInput(t *testing.T) {
	cases := []struct {
		text, inputType string
		want            runtime.Value
	}{
		{"12", "text", runtime.Int(12)},
		{"-12", "text", runtime.Int(-12)},
		{"1.25", "text", runtime.Float(1.25)},
		{"1.2.3", "text", runtime.String("1.2.3")},
		{"-", "text", runtime.String("-")},
		{"12a", "text", runtime.String("12a")},
		{" 7 ", "number", runtime.Int(7)},
		{"seven", "number", runtime.String("seven")},
		{"", "text", runtime.String("")},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, coerceInput(tc.text, tc.inputType), "%q as %s", tc.text, tc.inputType)
	}
}
