// package puzzle wraps the gameplay state of each puzzle with a uniform
// lifecycle, undo/redo history and cutscene orchestration.
package puzzle

import (
	"golang.org/x/image/draw"

	"github.com/mzki/puzzlescene/access"
	"github.com/mzki/puzzlescene/scene"
	"github.com/mzki/puzzlescene/signal"
	"github.com/mzki/puzzlescene/uiadapter/event/input"
)

// Puzzle is the gameplay state of one puzzle, whose player action is
// represented by command C. C must be reversible by Unapply.
type Puzzle[C any] interface {
	// lifecycle marker which is persisted with the gameplay state.
	Access() access.State
	SetAccess(access.State)

	// IsSolved is the solved predicate of the gameplay state.
	IsSolved() bool

	// HandleInput applies user input to the gameplay state and returns
	// the command performed. It returns false if ev changes nothing.
	HandleInput(ev input.Event) (C, bool)

	// Apply redoes cmd, Unapply undoes cmd.
	Apply(cmd C)
	Unapply(cmd C)

	// Solve force-sets the gameplay state solved, Reset sets it initial.
	Solve()
	Reset()

	// Draw draws the gameplay state and stage of scenes onto dst.
	Draw(dst draw.Image, stage *scene.Stage)
}

// SignalHandler is optionally implemented by Puzzle to receive
// signals emitted by scenes. See Session.Update.
type SignalHandler interface {
	HandleSignal(s signal.Signal)
}
