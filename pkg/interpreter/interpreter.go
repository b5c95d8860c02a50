package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/poojapathak0/vyra/pkg/graph"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

const (
	DefaultMaxIterations = 100000
	DefaultMaxCallDepth  = 200
)

// ExecMode selects how user function bodies run.
type ExecMode string

const (
	// ExecGraph walks the function's lowered subgraph.
	ExecGraph ExecMode = "graph"
	// ExecTree runs the function's statement tree directly.
	ExecTree ExecMode = "tree"
)

func ParseExecMode(value string) (ExecMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ExecGraph):
		return ExecGraph, nil
	case string(ExecTree):
		return ExecTree, nil
	default:
		return ExecGraph, fmt.Errorf("unknown exec mode '%s' (expected graph or tree)", value)
	}
}

// Options configures an Interpreter. Zero values select the defaults.
type Options struct {
	Mode          ExecMode
	Stdout        io.Writer
	Stdin         io.Reader
	MaxIterations int
	MaxCallDepth  int
	// RandomSeed seeds random_number, random_choice and shuffle; 0 seeds from
	// the clock.
	RandomSeed int64
	Logger     log.Logger
	Now        func() time.Time
	Sleep      func(time.Duration)
}

type Interpreter struct {
	mode          ExecMode
	out           io.Writer
	stdin         io.Reader
	in            *bufio.Reader
	maxIterations int
	maxCallDepth  int
	rand          *rand.Rand
	now           func() time.Time
	sleep         func(time.Duration)
	baseLog       log.Logger
	log           log.Logger

	ctx     *ExecutionContext
	session *session
}

func New(opts Options) *Interpreter {
	i := &Interpreter{
		mode:          opts.Mode,
		out:           opts.Stdout,
		stdin:         opts.Stdin,
		maxIterations: opts.MaxIterations,
		maxCallDepth:  opts.MaxCallDepth,
		now:           opts.Now,
		sleep:         opts.Sleep,
		baseLog:       opts.Logger,
	}
	if i.mode == "" {
		i.mode = ExecGraph
	}
	if i.out == nil {
		i.out = os.Stdout
	}
	if i.stdin == nil {
		i.stdin = os.Stdin
	}
	i.in = bufio.NewReader(i.stdin)
	if i.maxIterations <= 0 {
		i.maxIterations = DefaultMaxIterations
	}
	if i.maxCallDepth <= 0 {
		i.maxCallDepth = DefaultMaxCallDepth
	}
	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	i.rand = rand.New(rand.NewSource(seed))
	if i.now == nil {
		i.now = time.Now
	}
	if i.sleep == nil {
		i.sleep = time.Sleep
	}
	if i.baseLog == nil {
		i.baseLog = log.Root()
	}
	i.log = i.baseLog
	i.ctx = NewExecutionContext()
	return i
}

func (i *Interpreter) Mode() ExecMode {
	return i.mode
}

// Context exposes the state left behind by the most recent Execute.
func (i *Interpreter) Context() *ExecutionContext {
	return i.ctx
}

// Execute runs g from its entry node with a fresh context and returns the
// value of a top-level return, or null.
func (i *Interpreter) Execute(g *graph.Graph) (runtime.Value, error) {
	i.ctx = NewExecutionContext()
	i.session = newSession(i.maxIterations, i.maxCallDepth)
	i.log = i.baseLog.New("session", i.session.id)

	if g == nil {
		return nil, newError(CategoryGraphIntegrity, "no graph to execute")
	}
	if _, ok := g.Node(g.Entry); !ok {
		return nil, newError(CategoryGraphIntegrity, "graph has no entry node")
	}
	i.log.Debug("Execution started", "nodes", len(g.Nodes), "mode", i.mode)
	start := time.Now()
	if err := i.walk(g, g.Entry); err != nil {
		i.log.Debug("Execution failed", "err", err, "steps", i.session.iterations)
		return nil, err
	}
	result, _ := i.ctx.takeReturn()
	i.log.Debug("Execution finished", "steps", i.session.iterations, "elapsed", time.Since(start))
	return result, nil
}
