package interpreter

import (
	"github.com/poojapathak0/vyra/pkg/ast"
	"github.com/poojapathak0/vyra/pkg/graph"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

// Function is a user-defined function. Body is always present; Subgraph is
// set when the body was lowered into Graph.
type Function struct {
	Name       string
	Parameters []string
	Body       []ast.Statement
	Graph      *graph.Graph
	Subgraph   *graph.Subgraph
}

// ExecutionContext is the mutable state of one execution: a stack of
// variable scopes whose bottom (global) scope is never popped, the function
// table, and the pending-return flag used by the graph walker.
type ExecutionContext struct {
	scopes       []map[string]runtime.Value
	functions    map[string]*Function
	shouldReturn bool
	returnValue  runtime.Value
}

func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		scopes:      []map[string]runtime.Value{make(map[string]runtime.Value)},
		functions:   make(map[string]*Function),
		returnValue: runtime.Null,
	}
}

func (c *ExecutionContext) PushScope() {
	c.scopes = append(c.scopes, make(map[string]runtime.Value))
}

// PopScope never removes the global scope.
func (c *ExecutionContext) PopScope() {
	if len(c.scopes) > 1 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

func (c *ExecutionContext) ScopeDepth() int {
	return len(c.scopes)
}

// Set binds name in the innermost scope.
func (c *ExecutionContext) Set(name string, value runtime.Value) {
	c.scopes[len(c.scopes)-1][name] = value
}

// Get searches scopes from innermost to outermost.
func (c *ExecutionContext) Get(name string) (runtime.Value, error) {
	for idx := len(c.scopes) - 1; idx >= 0; idx-- {
		if value, ok := c.scopes[idx][name]; ok {
			return value, nil
		}
	}
	return nil, newError(CategoryUnresolvedIdentifier, "variable '%s' is not defined", name)
}

// Globals returns a copy of the global scope.
func (c *ExecutionContext) Globals() map[string]runtime.Value {
	out := make(map[string]runtime.Value, len(c.scopes[0]))
	for name, value := range c.scopes[0] {
		out[name] = value
	}
	return out
}

func (c *ExecutionContext) DefineFunction(fn *Function) {
	c.functions[fn.Name] = fn
}

func (c *ExecutionContext) Function(name string) (*Function, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}

func (c *ExecutionContext) setReturn(value runtime.Value) {
	c.shouldReturn = true
	c.returnValue = value
}

// takeReturn clears the pending return and hands back its value.
func (c *ExecutionContext) takeReturn() (runtime.Value, bool) {
	if !c.shouldReturn {
		return runtime.Null, false
	}
	value := c.returnValue
	c.shouldReturn = false
	c.returnValue = runtime.Null
	return value, true
}
