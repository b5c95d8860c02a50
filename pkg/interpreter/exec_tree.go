package interpreter

import (
	"github.com/poojapathak0/vyra/pkg/ast"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

type execStatus int

const (
	statusOK execStatus = iota
	statusReturn
	statusBreak
	statusContinue
)

func (s execStatus) String() string {
	switch s {
	case statusReturn:
		return "return"
	case statusBreak:
		return "break"
	case statusContinue:
		return "continue"
	default:
		return "ok"
	}
}

// runBlock executes statements in order; the first non-ok status stops the
// block and is handed to the caller.
func (i *Interpreter) runBlock(stmts []ast.Statement) (execStatus, runtime.Value, error) {
	for _, stmt := range stmts {
		status, value, err := i.runStatement(stmt)
		if err != nil {
			return statusOK, nil, annotate(err, stmt.SourceLine(), -1)
		}
		if status != statusOK {
			return status, value, nil
		}
	}
	return statusOK, nil, nil
}

func (i *Interpreter) runStatement(stmt ast.Statement) (execStatus, runtime.Value, error) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return statusOK, nil, i.assign(s.Variable, s.Value)
	case *ast.Output:
		return statusOK, nil, i.output(s.Expressions, s.Newline)
	case *ast.Input:
		return statusOK, nil, i.input(s.Prompt, s.Variable, s.InputType)
	case *ast.Call:
		return statusOK, nil, i.callStatement(s.Function, s.Arguments)
	case *ast.ListAppend:
		return statusOK, nil, i.appendToList(s.List, s.Value)
	case *ast.FileRead:
		return statusOK, nil, i.readFile(s.FilePath, s.Variable, s.Mode)
	case *ast.FileWrite:
		return statusOK, nil, i.writeFile(s.FilePath, s.Content, s.Mode)
	case *ast.FunctionDef:
		i.defineFunction(&Function{Name: s.Name, Parameters: s.Parameters, Body: s.Body})
		return statusOK, nil, nil
	case *ast.Return:
		value, err := i.evaluate(s.Value)
		if err != nil {
			return statusOK, nil, err
		}
		return statusReturn, value, nil
	case *ast.Break:
		if i.session.frame().treeLoops == 0 {
			return statusOK, nil, nil
		}
		return statusBreak, nil, nil
	case *ast.Continue:
		if i.session.frame().treeLoops == 0 {
			return statusOK, nil, nil
		}
		return statusContinue, nil, nil
	case *ast.If:
		truthy, err := i.condition(s.Condition)
		if err != nil {
			return statusOK, nil, err
		}
		if truthy {
			return i.runBlock(s.Then)
		}
		return i.runBlock(s.Else)
	case *ast.While:
		defer i.enterTreeLoop()()
		for {
			if err := i.session.tick(); err != nil {
				return statusOK, nil, err
			}
			truthy, err := i.condition(s.Condition)
			if err != nil {
				return statusOK, nil, err
			}
			if !truthy {
				return statusOK, nil, nil
			}
			if status, value, done, err := i.loopBody(s.Body); done {
				return status, value, err
			}
		}
	case *ast.ForEach:
		iterable, err := i.evaluate(s.Iterable)
		if err != nil {
			return statusOK, nil, err
		}
		cursor, err := runtime.NewCursor(iterable)
		if err != nil {
			return statusOK, nil, typeError("cannot loop over '%s': %v", s.Iterator, err)
		}
		defer i.enterTreeLoop()()
		for {
			if err := i.session.tick(); err != nil {
				return statusOK, nil, err
			}
			item, more := cursor.Next()
			if !more {
				return statusOK, nil, nil
			}
			i.ctx.Set(s.Iterator, item)
			if status, value, done, err := i.loopBody(s.Body); done {
				return status, value, err
			}
		}
	case *ast.Repeat:
		limit, err := i.repeatCount(s.Count)
		if err != nil {
			return statusOK, nil, err
		}
		defer i.enterTreeLoop()()
		for n := int64(0); n < limit; n++ {
			if err := i.session.tick(); err != nil {
				return statusOK, nil, err
			}
			if status, value, done, err := i.loopBody(s.Body); done {
				return status, value, err
			}
		}
		return statusOK, nil, nil
	}
	return statusOK, nil, nil
}

// enterTreeLoop marks a loop as running in the current call. Outside any
// loop, break and continue fall through to the next statement as they do in
// the graph walker.
func (i *Interpreter) enterTreeLoop() func() {
	f := i.session.frame()
	f.treeLoops++
	return func() { f.treeLoops-- }
}

// loopBody runs one iteration. done reports that the enclosing loop must
// stop: on error, on break (consumed here) or on return (propagated).
func (i *Interpreter) loopBody(body []ast.Statement) (execStatus, runtime.Value, bool, error) {
	status, value, err := i.runBlock(body)
	switch {
	case err != nil:
		return statusOK, nil, true, err
	case status == statusReturn:
		return statusReturn, value, true, nil
	case status == statusBreak:
		return statusOK, nil, true, nil
	default:
		return statusOK, nil, false, nil
	}
}
