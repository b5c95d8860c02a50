package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

func TestExecutionContextScopes(t *testing.T) {
	ctx := NewExecutionContext()
	ctx.Set("x", runtime.Int(1))
	ctx.PushScope()
	ctx.Set("x", runtime.Int(2))
	ctx.Set("y", runtime.Int(3))

	v, err := ctx.Get("x")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(2), v, "inner binding shadows the global")

	ctx.PopScope()
	v, err = ctx.Get("x")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(1), v)
	_, err = ctx.Get("y")
	require.ErrorIs(t, err, ErrUnresolvedIdentifier)
	assert.EqualError(t, err, "variable 'y' is not defined")

	ctx.PopScope()
	ctx.PopScope()
	assert.Equal(t, 1, ctx.ScopeDepth(), "the global scope is never popped")
	assert.Equal(t, map[string]runtime.Value{"x": runtime.Int(1)}, ctx.Globals())
}

func TestExecutionContextReturnFlag(t *testing.T) {
	ctx := NewExecutionContext()
	v, pending := ctx.takeReturn()
	assert.False(t, pending)
	assert.True(t, runtime.IsNull(v))

	ctx.setReturn(runtime.String("done"))
	v, pending = ctx.takeReturn()
	assert.True(t, pending)
	assert.Equal(t, runtime.String("done"), v)

	_, pending = ctx.takeReturn()
	assert.False(t, pending, "taking the return clears it")
}

func TestSessionLimits(t *testing.T) {
	s := newSession(2, 1)
	require.NoError(t, s.tick())
	require.NoError(t, s.tick())
	require.ErrorIs(t, s.tick(), ErrSafetyLimit)

	require.NoError(t, s.enter("f"))
	s.frame().setLoop(4, &loopState{limit: 3})
	_, ok := s.frame().loop(4)
	assert.True(t, ok)
	err := s.enter("g")
	require.ErrorIs(t, err, ErrSafetyLimit)
	assert.EqualError(t, err, "maximum call depth (1) exceeded in 'g'")

	s.leave()
	_, ok = s.frame().loop(4)
	assert.False(t, ok, "loop state belongs to the frame that created it")
}

func TestParseExecMode(t *testing.T) {
	for in, want := range map[string]ExecMode{"": ExecGraph, "graph": ExecGraph, " Tree ": ExecTree} {
		got, err := ParseExecMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseExecMode("bytecode")
	assert.EqualError(t, err, "unknown exec mode 'bytecode' (expected graph or tree)")
}
