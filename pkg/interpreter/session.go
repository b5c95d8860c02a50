package interpreter

import (
	"github.com/google/uuid"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

// loopState is the hidden iteration state of one for/repeat loop, keyed by
// its setup node.
type loopState struct {
	cursor  *runtime.Cursor
	counter int64
	limit   int64
}

type frame struct {
	function string
	loops    map[int]*loopState
	// depth of statement-tree loops currently running in this call
	treeLoops int
}

func (f *frame) loop(setupID int) (*loopState, bool) {
	state, ok := f.loops[setupID]
	return state, ok
}

func (f *frame) setLoop(setupID int, state *loopState) {
	if f.loops == nil {
		f.loops = make(map[int]*loopState)
	}
	f.loops[setupID] = state
}

// session carries the per-execution counters. frames is allocated once with
// room for the deepest permitted call chain.
type session struct {
	id            string
	iterations    int
	maxIterations int
	depth         int
	maxDepth      int
	frames        []frame
}

func newSession(maxIterations, maxDepth int) *session {
	frames := make([]frame, 1, maxDepth+1)
	frames[0] = frame{function: "<main>"}
	return &session{
		id:            uuid.New().String(),
		maxIterations: maxIterations,
		maxDepth:      maxDepth,
		frames:        frames,
	}
}

// tick counts one executed node or loop iteration.
func (s *session) tick() error {
	s.iterations++
	if s.iterations > s.maxIterations {
		return newError(CategorySafetyLimit, "maximum iterations (%d) exceeded; possible infinite loop", s.maxIterations)
	}
	return nil
}

func (s *session) enter(function string) error {
	if s.depth >= s.maxDepth {
		return newError(CategorySafetyLimit, "maximum call depth (%d) exceeded in '%s'", s.maxDepth, function)
	}
	s.depth++
	s.frames = append(s.frames, frame{function: function})
	return nil
}

func (s *session) leave() {
	last := len(s.frames) - 1
	s.frames[last] = frame{}
	s.frames = s.frames[:last]
	s.depth--
}

func (s *session) frame() *frame {
	return &s.frames[len(s.frames)-1]
}
