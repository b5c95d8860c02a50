package interpreter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/poojapathak0/vyra/pkg/ast"
	"github.com/poojapathak0/vyra/pkg/graph"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

var execModes = []ExecMode{ExecGraph, ExecTree}

type runResult struct {
	out    string
	value  runtime.Value
	err    error
	interp *Interpreter
}

func (r runResult) global(name string) runtime.Value {
	return r.interp.Context().Globals()[name]
}

func runProgram(t *testing.T, mode ExecMode, prog *ast.Program, configure ...func(*Options)) runResult {
	t.Helper()
	var out bytes.Buffer
	opts := Options{
		Mode:       mode,
		Stdout:     &out,
		Stdin:      strings.NewReader(""),
		RandomSeed: 42,
		Sleep:      func(time.Duration) {},
	}
	for _, fn := range configure {
		fn(&opts)
	}
	interp := New(opts)
	value, err := interp.Execute(graph.Build(prog))
	return runResult{out: out.String(), value: value, err: err, interp: interp}
}

func forEachMode(t *testing.T, fn func(t *testing.T, mode ExecMode)) {
	t.Helper()
	for _, mode := range execModes {
		mode := mode
		t.Run(string(mode), func(t *testing.T) {
			fn(t, mode)
		})
	}
}
