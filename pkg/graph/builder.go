package graph

import "github.com/poojapathak0/vyra/pkg/ast"

type loopTargets struct {
	breakTarget    int
	continueTarget int
}

type builder struct {
	graph *Graph
	loops []loopTargets
}

// Build lowers a program into a logic graph in a single forward pass. The
// entry node gets id 0 and the exit node the highest id. Function bodies are
// lowered into detached function_entry/function_exit subgraphs.
func Build(prog *ast.Program) *Graph {
	b := &builder{graph: New()}
	entry := b.graph.AddNode(KindEntry, Payload{Label: "START"})
	var stmts []ast.Statement
	if prog != nil {
		stmts = prog.Statements
	}
	tail := b.lowerBlock(stmts, entry.ID)
	exit := b.graph.AddNode(KindExit, Payload{Label: "END"})
	b.graph.connect(tail, exit.ID, LabelNext)
	return b.graph
}

func (b *builder) lowerBlock(stmts []ast.Statement, from int) int {
	current := from
	for _, stmt := range stmts {
		current = b.lower(stmt, current)
	}
	return current
}

func (b *builder) emit(from int, kind Kind, payload Payload) *Node {
	node := b.graph.AddNode(kind, payload)
	b.graph.connect(from, node.ID, LabelNext)
	return node
}

func (b *builder) pushLoop(breakTarget, continueTarget int) {
	b.loops = append(b.loops, loopTargets{breakTarget: breakTarget, continueTarget: continueTarget})
}

func (b *builder) popLoop() {
	b.loops = b.loops[:len(b.loops)-1]
}

func (b *builder) currentLoop() (loopTargets, bool) {
	if len(b.loops) == 0 {
		return loopTargets{}, false
	}
	return b.loops[len(b.loops)-1], true
}

func (b *builder) lower(stmt ast.Statement, from int) int {
	line := stmt.SourceLine()
	switch s := stmt.(type) {
	case *ast.Assignment:
		return b.emit(from, KindAssignment, Payload{Line: line, Variable: s.Variable, Value: s.Value}).ID
	case *ast.Output:
		return b.emit(from, KindOutput, Payload{Line: line, Expressions: s.Expressions, Newline: s.Newline}).ID
	case *ast.Input:
		return b.emit(from, KindInput, Payload{Line: line, Prompt: s.Prompt, Variable: s.Variable, InputType: s.InputType}).ID
	case *ast.Call:
		return b.emit(from, KindFunctionCall, Payload{Line: line, Function: s.Function, Arguments: s.Arguments}).ID
	case *ast.Return:
		return b.emit(from, KindReturn, Payload{Line: line, Value: s.Value}).ID
	case *ast.ListAppend:
		return b.emit(from, KindListAppend, Payload{Line: line, List: s.List, Value: s.Value}).ID
	case *ast.FileRead:
		return b.emit(from, KindFileRead, Payload{Line: line, FilePath: s.FilePath, Variable: s.Variable, Mode: s.Mode}).ID
	case *ast.FileWrite:
		return b.emit(from, KindFileWrite, Payload{Line: line, FilePath: s.FilePath, Content: s.Content, Mode: s.Mode}).ID
	case *ast.Break:
		node := b.emit(from, KindBreak, Payload{Line: line})
		if loop, ok := b.currentLoop(); ok {
			b.graph.connect(node.ID, loop.breakTarget, LabelBreakTo)
		}
		return node.ID
	case *ast.Continue:
		node := b.emit(from, KindContinue, Payload{Line: line})
		if loop, ok := b.currentLoop(); ok {
			b.graph.connect(node.ID, loop.continueTarget, LabelContinueTo)
		}
		return node.ID
	case *ast.If:
		return b.lowerIf(s, from)
	case *ast.While:
		cond := b.emit(from, KindWhile, Payload{Line: line, Condition: s.Condition})
		return b.lowerLoopBody(cond.ID, s.Body)
	case *ast.ForEach:
		payload := Payload{Line: line, Iterator: s.Iterator, Iterable: s.Iterable}
		setup := b.emit(from, KindForSetup, payload)
		cond := b.emit(setup.ID, KindForCondition, payload)
		return b.lowerLoopBody(cond.ID, s.Body)
	case *ast.Repeat:
		payload := Payload{Line: line, Count: s.Count}
		setup := b.emit(from, KindRepeatSetup, payload)
		cond := b.emit(setup.ID, KindRepeatCondition, payload)
		return b.lowerLoopBody(cond.ID, s.Body)
	case *ast.FunctionDef:
		return b.lowerFunction(s, from)
	default:
		return from
	}
}

func (b *builder) lowerIf(s *ast.If, from int) int {
	cond := b.emit(from, KindIf, Payload{Line: s.SourceLine(), Condition: s.Condition})
	merge := b.graph.AddNode(KindMerge, Payload{Label: "merge"})

	thenEntry := b.graph.AddNode(KindThenEntry, Payload{Label: "then"})
	b.graph.connect(cond.ID, thenEntry.ID, LabelThen)
	thenTail := b.lowerBlock(s.Then, thenEntry.ID)
	b.graph.connect(thenTail, merge.ID, LabelThenExit)

	if len(s.Else) > 0 {
		elseEntry := b.graph.AddNode(KindElseEntry, Payload{Label: "else"})
		b.graph.connect(cond.ID, elseEntry.ID, LabelElse)
		elseTail := b.lowerBlock(s.Else, elseEntry.ID)
		b.graph.connect(elseTail, merge.ID, LabelElseExit)
	} else {
		b.graph.connect(cond.ID, merge.ID, LabelElseSkip)
	}
	return merge.ID
}

// lowerLoopBody wires a loop whose condition node is cond: the body hangs off
// cond, its tail loops back, and the exit edge leaves to a fresh loop_exit.
func (b *builder) lowerLoopBody(cond int, body []ast.Statement) int {
	loopExit := b.graph.AddNode(KindLoopExit, Payload{Label: "loop_exit"})
	b.pushLoop(loopExit.ID, cond)
	tail := b.lowerBlock(body, cond)
	b.graph.connect(tail, cond, LabelLoopBack)
	b.graph.connect(cond, loopExit.ID, LabelExit)
	b.popLoop()
	return loopExit.ID
}

func (b *builder) lowerFunction(s *ast.FunctionDef, from int) int {
	def := b.emit(from, KindFunctionDef, Payload{
		Line:       s.SourceLine(),
		Name:       s.Name,
		Parameters: s.Parameters,
		Body:       s.Body,
	})

	saved := b.loops
	b.loops = nil
	entry := b.graph.AddNode(KindFunctionEntry, Payload{Name: s.Name})
	tail := b.lowerBlock(s.Body, entry.ID)
	exit := b.graph.AddNode(KindFunctionExit, Payload{Name: s.Name})
	b.graph.connect(tail, exit.ID, LabelNext)
	b.loops = saved

	def.Payload.Subgraph = &Subgraph{Entry: entry.ID, Exit: exit.ID}
	return def.ID
}
