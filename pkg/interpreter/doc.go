// Package interpreter executes logic graphs. The graph walker dispatches on
// node kind and follows labeled edges; user function bodies run either as
// lowered subgraphs (ExecGraph) or through the statement-tree interpreter
// (ExecTree). Both modes share one ExecutionContext, one builtin table and
// the same safety limits, and are kept in parity by the fixture suite under
// testdata/.
package interpreter
