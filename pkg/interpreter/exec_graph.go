package interpreter

import (
	"github.com/poojapathak0/vyra/pkg/graph"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

// walk executes nodes from start until a node has no successor, a node id
// is missing, or a return is pending. Top-level code counts every node
// against the iteration ceiling; function bodies count loop iterations only,
// the same as the statement-tree interpreter.
func (i *Interpreter) walk(g *graph.Graph, start int) error {
	current := start
	for {
		if !i.inFunction() {
			if err := i.session.tick(); err != nil {
				return err
			}
		}
		node, ok := g.Node(current)
		if !ok {
			return nil
		}
		i.log.Trace("Executing node", "id", node.ID, "kind", node.Kind, "line", node.Payload.Line)
		next, ok, err := i.step(g, node)
		if err != nil {
			return annotate(err, node.Payload.Line, node.ID)
		}
		if i.ctx.shouldReturn || !ok {
			return nil
		}
		current = next
	}
}

func (i *Interpreter) step(g *graph.Graph, node *graph.Node) (int, bool, error) {
	p := &node.Payload
	switch node.Kind {
	case graph.KindExit, graph.KindFunctionExit:
		return 0, false, nil

	case graph.KindAssignment:
		if err := i.assign(p.Variable, p.Value); err != nil {
			return 0, false, err
		}
	case graph.KindOutput:
		if err := i.output(p.Expressions, p.Newline); err != nil {
			return 0, false, err
		}
	case graph.KindInput:
		if err := i.input(p.Prompt, p.Variable, p.InputType); err != nil {
			return 0, false, err
		}
	case graph.KindFunctionCall:
		if err := i.callStatement(p.Function, p.Arguments); err != nil {
			return 0, false, err
		}
	case graph.KindListAppend:
		if err := i.appendToList(p.List, p.Value); err != nil {
			return 0, false, err
		}
	case graph.KindFileRead:
		if err := i.readFile(p.FilePath, p.Variable, p.Mode); err != nil {
			return 0, false, err
		}
	case graph.KindFileWrite:
		if err := i.writeFile(p.FilePath, p.Content, p.Mode); err != nil {
			return 0, false, err
		}

	case graph.KindIf:
		truthy, err := i.condition(p.Condition)
		if err != nil {
			return 0, false, err
		}
		if truthy {
			next, ok := node.Follow(graph.LabelThen)
			return next, ok, nil
		}
		if next, ok := node.Follow(graph.LabelElse); ok {
			return next, true, nil
		}
		next, ok := node.Follow(graph.LabelElseSkip)
		return next, ok, nil

	case graph.KindWhile:
		if err := i.tickLoop(); err != nil {
			return 0, false, err
		}
		truthy, err := i.condition(p.Condition)
		if err != nil {
			return 0, false, err
		}
		return loopBranch(node, truthy)

	case graph.KindForSetup:
		iterable, err := i.evaluate(p.Iterable)
		if err != nil {
			return 0, false, err
		}
		cursor, err := runtime.NewCursor(iterable)
		if err != nil {
			return 0, false, typeError("cannot loop over '%s': %v", p.Iterator, err)
		}
		i.session.frame().setLoop(node.ID, &loopState{cursor: cursor})
	case graph.KindForCondition:
		if err := i.tickLoop(); err != nil {
			return 0, false, err
		}
		state, err := i.loopStateFor(g, node, graph.KindForSetup)
		if err != nil {
			return 0, false, err
		}
		value, more := state.cursor.Next()
		if more {
			i.ctx.Set(p.Iterator, value)
		}
		return loopBranch(node, more)

	case graph.KindRepeatSetup:
		limit, err := i.repeatCount(p.Count)
		if err != nil {
			return 0, false, err
		}
		i.session.frame().setLoop(node.ID, &loopState{limit: limit})
	case graph.KindRepeatCondition:
		state, err := i.loopStateFor(g, node, graph.KindRepeatSetup)
		if err != nil {
			return 0, false, err
		}
		more := state.counter < state.limit
		if more {
			if err := i.tickLoop(); err != nil {
				return 0, false, err
			}
			state.counter++
		}
		return loopBranch(node, more)

	case graph.KindFunctionDef:
		i.defineFunction(&Function{
			Name:       p.Name,
			Parameters: p.Parameters,
			Body:       p.Body,
			Graph:      g,
			Subgraph:   p.Subgraph,
		})
	case graph.KindReturn:
		value, err := i.evaluate(p.Value)
		if err != nil {
			return 0, false, err
		}
		i.ctx.setReturn(value)
		return 0, false, nil
	case graph.KindBreak:
		if next, ok := node.Follow(graph.LabelBreakTo); ok {
			return next, true, nil
		}
	case graph.KindContinue:
		if next, ok := node.Follow(graph.LabelContinueTo); ok {
			return next, true, nil
		}
	}
	next, ok := node.Next()
	return next, ok, nil
}

func (i *Interpreter) inFunction() bool {
	return i.session.depth > 0
}

// tickLoop counts one loop check inside a function body.
func (i *Interpreter) tickLoop() error {
	if !i.inFunction() {
		return nil
	}
	return i.session.tick()
}

// loopBranch enters the body while more is true and leaves through the exit
// edge otherwise.
func loopBranch(node *graph.Node, more bool) (int, bool, error) {
	if more {
		next, ok := node.FollowOther(graph.LabelExit)
		return next, ok, nil
	}
	next, ok := node.Follow(graph.LabelExit)
	return next, ok, nil
}

// loopStateFor finds the state stored by the setup node that precedes a
// loop condition node.
func (i *Interpreter) loopStateFor(g *graph.Graph, cond *graph.Node, setupKind graph.Kind) (*loopState, error) {
	for _, pred := range cond.Predecessors {
		setup, ok := g.Node(pred)
		if !ok || setup.Kind != setupKind {
			continue
		}
		if state, ok := i.session.frame().loop(setup.ID); ok {
			return state, nil
		}
	}
	return nil, newError(CategoryGraphIntegrity, "%s node %d was reached before its loop was set up", cond.Kind, cond.ID)
}
