package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poojapathak0/vyra/pkg/ast"
	"github.com/poojapathak0/vyra/pkg/expr"
	"github.com/poojapathak0/vyra/pkg/graph"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

func TestScenarioSumList(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Set("numbers", expr.List(expr.Int(1), expr.Int(2), expr.Int(3), expr.Int(4), expr.Int(5))),
			ast.Set("sum", expr.Int(0)),
			ast.Each("n", expr.Var("numbers"),
				ast.Set("sum", expr.Bin("+", expr.Var("sum"), expr.Var("n"))),
			),
			ast.Display(expr.Var("sum")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "15\n", res.out)
	})
}

func TestScenarioAgeCheck(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		prog := func(age int64) *ast.Program {
			return ast.Prog(
				ast.Set("age", expr.Int(age)),
				ast.IfElse(expr.Cmp(">=", expr.Var("age"), expr.Int(18)),
					ast.Block(ast.Display(expr.Str("Adult"))),
					ast.Block(ast.Display(expr.Str("Minor"))),
				),
			)
		}
		res := runProgram(t, mode, prog(20))
		require.NoError(t, res.err)
		assert.Equal(t, "Adult\n", res.out)

		res = runProgram(t, mode, prog(12))
		require.NoError(t, res.err)
		assert.Equal(t, "Minor\n", res.out)
	})
}

func TestScenarioFunctionCall(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("add", []string{"a", "b"},
				ast.Ret(expr.Bin("+", expr.Var("a"), expr.Var("b"))),
			),
			ast.Set("result", expr.Call("add", expr.Int(5), expr.Int(3))),
			ast.Display(expr.Var("result")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "8\n", res.out)
		assert.Equal(t, 1, res.interp.Context().ScopeDepth())
	})
}

func TestScenarioWhileCounter(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Set("count", expr.Int(0)),
			ast.Loop(expr.Cmp("<", expr.Var("count"), expr.Int(3)),
				ast.Set("count", expr.Bin("+", expr.Var("count"), expr.Int(1))),
				ast.Display(expr.Var("count")),
			),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "1\n2\n3\n", res.out)
	})
}

func TestScenarioBreakAtFive(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Set("i", expr.Int(0)),
			ast.Loop(expr.Cmp("<", expr.Var("i"), expr.Int(10)),
				ast.Set("i", expr.Bin("+", expr.Var("i"), expr.Int(1))),
				ast.When(expr.Cmp("==", expr.Var("i"), expr.Int(5)), ast.Brk()),
			),
			ast.Display(expr.Var("i")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "5\n", res.out)
	})
}

func TestExecutionIsDeterministic(t *testing.T) {
	prog := ast.Prog(
		ast.Set("xs", expr.List(expr.Int(3), expr.Int(1), expr.Int(2))),
		ast.CallStmt("sort", expr.Var("xs")),
		ast.Display(expr.Var("xs"), expr.Call("random_number", expr.Int(1), expr.Int(6))),
	)
	g := graph.Build(prog)
	var firstOut, secondOut bytes.Buffer
	first := New(Options{Stdout: &firstOut, RandomSeed: 7})
	second := New(Options{Stdout: &secondOut, RandomSeed: 7})
	_, err := first.Execute(g)
	require.NoError(t, err)
	_, err = second.Execute(g)
	require.NoError(t, err)
	assert.Equal(t, firstOut.String(), secondOut.String())

	_, err = first.Execute(g)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Context().ScopeDepth(), "every execution starts from a fresh context")
}

func TestIterationCeiling(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(ast.Loop(expr.Bool(true))))
		require.Error(t, res.err)
		assert.True(t, errors.Is(res.err, ErrSafetyLimit), "got %v", res.err)

		res = runProgram(t, mode, ast.Prog(
			ast.Fn("spin", nil, ast.Loop(expr.Bool(true), ast.Set("x", expr.Int(1)))),
			ast.CallStmt("spin"),
		))
		require.Error(t, res.err)
		assert.True(t, errors.Is(res.err, ErrSafetyLimit), "got %v", res.err)
	})
}

func TestIterationCeilingIsConfigurable(t *testing.T) {
	prog := ast.Prog(ast.Times(expr.Int(50), ast.Set("x", expr.Int(1))))
	res := runProgram(t, ExecGraph, prog, func(o *Options) { o.MaxIterations = 20 })
	require.ErrorIs(t, res.err, ErrSafetyLimit)
	assert.Contains(t, res.err.Error(), "20")
}

func TestFunctionBodiesCountLoopIterations(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		body := ast.Block(
			ast.Set("total", expr.Int(0)),
			ast.Times(expr.Var("n"),
				ast.Set("total", expr.Bin("+", expr.Var("total"), expr.Int(1))),
				ast.Set("total", expr.Bin("+", expr.Var("total"), expr.Int(1))),
			),
			ast.Ret(expr.Var("total")),
		)
		limit := func(o *Options) { o.MaxIterations = 20 }
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("twice", []string{"n"}, body...),
			ast.Display(expr.Call("twice", expr.Int(10))),
		), limit)
		require.NoError(t, res.err)
		assert.Equal(t, "20\n", res.out)

		res = runProgram(t, mode, ast.Prog(
			ast.Fn("twice", []string{"n"}, body...),
			ast.Display(expr.Call("twice", expr.Int(25))),
		), limit)
		require.ErrorIs(t, res.err, ErrSafetyLimit)
	})
}

func TestCallDepthLimit(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("down", []string{"n"},
				ast.Ret(expr.Call("down", expr.Bin("+", expr.Var("n"), expr.Int(1)))),
			),
			ast.Display(expr.Call("down", expr.Int(0))),
		))
		require.ErrorIs(t, res.err, ErrSafetyLimit)
		assert.Contains(t, res.err.Error(), "call depth (200)")
		assert.Equal(t, 1, res.interp.Context().ScopeDepth(), "scopes are popped on the error path")
	})
}

func TestBreakTargetsNearestLoop(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		body := ast.Block(
			ast.Set("outer", expr.Int(0)),
			ast.Loop(expr.Cmp("<", expr.Var("outer"), expr.Int(3)),
				ast.Set("outer", expr.Bin("+", expr.Var("outer"), expr.Int(1))),
				ast.Loop(expr.Bool(true), ast.Brk()),
			),
			ast.Ret(expr.Var("outer")),
		)
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("count", nil, body...),
			ast.Display(expr.Call("count")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "3\n", res.out)
	})
}

func TestBreakOutsideLoopFallsThrough(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("stray", []string{"n"},
				ast.When(expr.Bool(true), ast.Brk()),
				ast.Cont(),
				ast.Ret(expr.Bin("*", expr.Var("n"), expr.Int(2))),
			),
			ast.Set("out", expr.List()),
			ast.Each("n", expr.List(expr.Int(1), expr.Int(2)),
				ast.Push("out", expr.Call("stray", expr.Var("n"))),
			),
			ast.Display(expr.Var("out")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "[2, 4]\n", res.out)
	})
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("odds", []string{"xs"},
				ast.Set("out", expr.List()),
				ast.Each("x", expr.Var("xs"),
					ast.When(expr.Cmp("==", expr.Bin("%", expr.Var("x"), expr.Int(2)), expr.Int(0)), ast.Cont()),
					ast.Push("out", expr.Var("x")),
				),
				ast.Ret(expr.Var("out")),
			),
			ast.Display(expr.Call("odds", expr.List(expr.Int(1), expr.Int(2), expr.Int(3), expr.Int(4), expr.Int(5)))),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "[1, 3, 5]\n", res.out)
	})
}

func TestReturnFromInsideLoop(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("first_even", []string{"xs"},
				ast.Each("x", expr.Var("xs"),
					ast.When(expr.Cmp("==", expr.Bin("%", expr.Var("x"), expr.Int(2)), expr.Int(0)),
						ast.Ret(expr.Var("x")),
					),
				),
				ast.Ret(expr.Null()),
			),
			ast.Display(expr.Call("first_even", expr.List(expr.Int(1), expr.Int(3), expr.Int(4), expr.Int(6)))),
			ast.Display(expr.Call("first_even", expr.List(expr.Int(1)))),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "4\nNone\n", res.out)
	})
}

func TestNestedRepeatsKeepSeparateCounters(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Set("c", expr.Int(0)),
			ast.Times(expr.Int(2),
				ast.Times(expr.Int(3), ast.Set("c", expr.Bin("+", expr.Var("c"), expr.Int(1)))),
			),
			ast.Display(expr.Var("c")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "6\n", res.out)
	})
}

func TestTopLevelReturnStopsExecution(t *testing.T) {
	res := runProgram(t, ExecGraph, ast.Prog(
		ast.Set("x", expr.Int(1)),
		ast.Ret(expr.Bin("+", expr.Var("x"), expr.Int(1))),
		ast.Display(expr.Str("unreachable")),
	))
	require.NoError(t, res.err)
	assert.Equal(t, "", res.out)
	assert.Equal(t, runtime.Int(2), res.value)

	res = runProgram(t, ExecGraph, ast.Prog(ast.Display(expr.Str("hi"))))
	require.NoError(t, res.err)
	assert.Equal(t, runtime.Null, res.value)
}

func TestListsAreSharedByReference(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Set("a", expr.List(expr.Int(1))),
			ast.Set("b", expr.Var("a")),
			ast.Push("b", expr.Int(2)),
			ast.Fn("grow", []string{"xs"}, ast.CallStmt("append", expr.Var("xs"), expr.Int(3))),
			ast.CallStmt("grow", expr.Var("a")),
			ast.Display(expr.Var("a")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "[1, 2, 3]\n", res.out)
	})
}

func TestListAppendRebindsNonList(t *testing.T) {
	res := runProgram(t, ExecGraph, ast.Prog(
		ast.Set("x", expr.Int(5)),
		ast.Push("x", expr.Str("a")),
		ast.Display(expr.Var("x")),
	))
	require.NoError(t, res.err)
	assert.Equal(t, "['a']\n", res.out)
}

func TestFunctionScopes(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Set("greeting", expr.Str("hi")),
			ast.Fn("shout", nil,
				ast.Set("local", expr.Int(1)),
				ast.Ret(expr.Call("upper", expr.Var("greeting"))),
			),
			ast.Display(expr.Call("shout")),
			ast.Display(expr.Var("local")),
		))
		require.ErrorIs(t, res.err, ErrUnresolvedIdentifier)
		assert.Equal(t, "HI\n", res.out)
		assert.Contains(t, res.err.Error(), "variable 'local' is not defined")
	})
}

func TestParameterBinding(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("first", []string{"a", "b"}, ast.Ret(expr.Var("a"))),
			ast.Display(expr.Call("first", expr.Int(1), expr.Int(2), expr.Int(3))),
			ast.Display(expr.Call("first")),
		))
		require.ErrorIs(t, res.err, ErrUnresolvedIdentifier)
		assert.Equal(t, "1\n", res.out)
	})
}

func TestBuiltinsTakePrecedence(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("len", []string{"x"}, ast.Ret(expr.Int(-1))),
			ast.Fn("sort", []string{"x"}, ast.Display(expr.Str("user sort"))),
			ast.Set("xs", expr.List(expr.Int(2), expr.Int(1))),
			ast.Display(expr.Call("  LEN ", expr.Var("xs"))),
			ast.CallStmt("sort", expr.Var("xs")),
			ast.Display(expr.Var("xs")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "2\n[1, 2]\n", res.out)
	})
}

func TestUnresolvedFunction(t *testing.T) {
	res := runProgram(t, ExecGraph, ast.Prog(ast.CallStmt("missing")))
	require.ErrorIs(t, res.err, ErrUnresolvedIdentifier)

	var rtErr *RuntimeError
	require.ErrorAs(t, res.err, &rtErr)
	assert.Equal(t, CategoryUnresolvedIdentifier, rtErr.Category)
	assert.Equal(t, 1, rtErr.NodeID)
}

func TestDivisionAndModuloByZero(t *testing.T) {
	res := runProgram(t, ExecGraph, ast.Prog(
		ast.Display(expr.Bin("/", expr.Int(10), expr.Int(0))),
		ast.Display(expr.Bin("%", expr.Int(7), expr.Int(0))),
		ast.Display(expr.Bin("/", expr.Int(7), expr.Int(2))),
		ast.Display(expr.Bin("%", expr.Int(-7), expr.Int(3))),
	))
	require.NoError(t, res.err)
	assert.Equal(t, "inf\n0\n3.5\n2\n", res.out)
}

func TestOutputWithoutNewline(t *testing.T) {
	res := runProgram(t, ExecGraph, ast.Prog(
		&ast.Output{Expressions: []expr.Expr{expr.Str("a"), expr.Int(1), expr.Flt(2)}},
		ast.Display(expr.Bool(true), expr.Null()),
	))
	require.NoError(t, res.err)
	assert.Equal(t, "a12.0TrueNone\n", res.out)
}

func TestOutputConcatenatesWithoutSeparator(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("greet", []string{"name"}, ast.Display(expr.Str("Hello, "), expr.Var("name"))),
			ast.CallStmt("greet", expr.Str("Bob")),
			ast.Display(expr.Str("Hello, "), expr.Str("Bob")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "Hello, Bob\nHello, Bob\n", res.out)
	})
}

func TestListBuiltinsReturnTheList(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("grow", []string{"xs"},
				ast.Set("ys", expr.Call("append", expr.Var("xs"), expr.Int(2))),
				ast.Ret(expr.Var("ys")),
			),
			ast.Set("xs", expr.List(expr.Int(3), expr.Int(1))),
			ast.Set("ys", expr.Call("grow", expr.Var("xs"))),
			ast.Set("zs", expr.Call("sort", expr.Var("xs"))),
			ast.Set("ws", expr.Call("remove", expr.Var("xs"), expr.Int(9))),
			ast.Display(expr.Var("ys")),
			ast.Display(expr.Var("zs")),
			ast.Display(expr.Var("ws")),
			ast.Display(expr.Call("append", expr.Var("xs"), expr.Int(4), expr.Int(5))),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "[1, 2, 3]\n[1, 2, 3]\n[1, 2, 3]\n[1, 2, 3, 4]\n", res.out)
	})
}

func TestForEachOverString(t *testing.T) {
	forEachMode(t, func(t *testing.T, mode ExecMode) {
		res := runProgram(t, mode, ast.Prog(
			ast.Fn("spell", []string{"word"},
				ast.Each("ch", expr.Var("word"), ast.Display(expr.Var("ch"))),
			),
			ast.CallStmt("spell", expr.Str("ab")),
		))
		require.NoError(t, res.err)
		assert.Equal(t, "a\nb\n", res.out)
	})
}

func TestForEachOverNonIterable(t *testing.T) {
	res := runProgram(t, ExecGraph, ast.Prog(ast.Each("x", expr.Int(3))))
	require.ErrorIs(t, res.err, ErrTypeMismatch)
}

func TestMissingEntryIsGraphIntegrityError(t *testing.T) {
	interp := New(Options{Stdout: new(bytes.Buffer)})
	_, err := interp.Execute(graph.New())
	require.ErrorIs(t, err, ErrGraphIntegrity)
}

func TestMissingSuccessorStopsSilently(t *testing.T) {
	g := graph.New()
	entry := g.AddNode(graph.KindEntry, graph.Payload{Label: "START"})
	out := g.AddNode(graph.KindOutput, graph.Payload{Expressions: []expr.Expr{expr.Str("once")}, Newline: true})
	require.NoError(t, g.AddEdge(entry.ID, out.ID, graph.LabelNext))

	var buf bytes.Buffer
	_, err := New(Options{Stdout: &buf}).Execute(g)
	require.NoError(t, err)
	assert.Equal(t, "once\n", buf.String())
}

func TestGraphModeFallsBackToStatementTree(t *testing.T) {
	g := graph.Build(ast.Prog(
		ast.Fn("twice", []string{"x"}, ast.Ret(expr.Bin("*", expr.Var("x"), expr.Int(2)))),
		ast.Display(expr.Call("twice", expr.Int(21))),
	))
	g.Nodes[1].Payload.Subgraph = nil

	var buf bytes.Buffer
	_, err := New(Options{Stdout: &buf, Mode: ExecGraph}).Execute(g)
	require.NoError(t, err)
	assert.Equal(t, "42\n", buf.String())
}

func TestErrorsCarrySourceLine(t *testing.T) {
	assign := ast.Set("y", expr.Var("nope"))
	assign.Line = 7
	res := runProgram(t, ExecGraph, ast.Prog(assign))
	require.Error(t, res.err)
	assert.Equal(t, "line 7: variable 'nope' is not defined", res.err.Error())
}
