package puzzle

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/mzki/puzzlescene/access"
	"github.com/mzki/puzzlescene/history"
	"github.com/mzki/puzzlescene/scene"
	"github.com/mzki/puzzlescene/signal"
	"github.com/mzki/puzzlescene/uiadapter/event/input"
	"github.com/mzki/puzzlescene/util/log"
)

// Mode is the state of Session.
type Mode int8

const (
	Idle          Mode = iota // gameplay is active.
	PlayingIntro              // intro scene owns input.
	PlayingOutro              // outro scene owns input.
	PlayingExtra              // extra scene, e.g. character talk, owns input.
)

var modeNames = [...]string{
	Idle:         "idle",
	PlayingIntro: "playing-intro",
	PlayingOutro: "playing-outro",
	PlayingExtra: "playing-extra",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Outcome tells the caller what happened by an event.
type Outcome struct {
	// the event is consumed by a scene and must not be used for gameplay.
	Consumed bool
	// the active scene is finished by the event.
	SceneFinished bool
	// a command is performed and pushed to undo history.
	Command bool
	// the puzzle is solved by the event.
	Solved bool
	// quit is requested.
	Quit bool
}

// trigger starts an extra scene by clicking an actor or an area.
type trigger struct {
	actor    scene.Handle
	byActor  bool
	area     image.Rectangle
	compiled *scene.Scene
}

// Session is the controller of one puzzle. It composes access state,
// scenes, signal queue and undo/redo history of the puzzle.
//
// Session is not safe for concurrent use; it is driven by one game loop.
type Session[C any] struct {
	puzzle   Puzzle[C]
	catalog  scene.Catalog
	viewport image.Rectangle
	config   Config

	intro, outro *scene.Scene
	triggers     []trigger

	mode   Mode
	cursor *scene.Cursor
	stage  *scene.Stage

	history *history.History[C]
	queue   *signal.Queue
}

// New compiles intro and outro scripts, which may be nil for no scene,
// and starts intro if the puzzle is not visited yet.
// Unresolved resources in the scripts are reported here.
func New[C any](catalog scene.Catalog, viewport image.Rectangle, p Puzzle[C], intro, outro scene.Action, config Config) (*Session[C], error) {
	if p == nil {
		return nil, fmt.Errorf("puzzle: nil puzzle")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &Session[C]{
		puzzle:   p,
		catalog:  catalog,
		viewport: viewport,
		config:   config,
		stage:    scene.NewStage(),
		history:  history.New[C](config.History),
		queue:    signal.NewQueue(),
	}

	var err error
	if s.intro, err = compileOrNil(intro, catalog); err != nil {
		return nil, fmt.Errorf("puzzle: intro: %w", err)
	}
	if s.outro, err = compileOrNil(outro, catalog); err != nil {
		return nil, fmt.Errorf("puzzle: outro: %w", err)
	}

	s.Visit()
	return s, nil
}

func compileOrNil(script scene.Action, catalog scene.Catalog) (*scene.Scene, error) {
	if script == nil {
		return nil, nil
	}
	return scene.Compile(script, catalog)
}

// Visit marks the puzzle visited and starts intro on first entry.
// It does nothing for already visited puzzle.
func (s *Session[C]) Visit() {
	a := s.puzzle.Access()
	if !a.Visit() {
		return
	}
	s.puzzle.SetAccess(a)
	log.Debugf("puzzle: first visit, access %v", a)
	s.startScene(s.intro, PlayingIntro)
}

func (s *Session[C]) startScene(sc *scene.Scene, mode Mode) {
	if sc == nil {
		s.cursor = nil
		s.mode = Idle
		return
	}
	s.cursor = sc.StartOn(s.stage, s.queue, s.config.Scene)
	s.mode = mode
	log.Debugf("puzzle: start scene, mode %v", mode)
	if s.cursor.Finished() {
		s.endScene()
	}
}

func (s *Session[C]) endScene() {
	log.Debugf("puzzle: scene finished, mode %v", s.mode)
	s.cursor = nil
	s.mode = Idle
}

// HandleEvent forwards ev to the active scene. A tick event advances the
// scene by its elapsed time. While a scene is active every event is consumed
// by it, even the one finishing the scene. Without active scene, the event
// is left for gameplay and Outcome.Consumed is false.
func (s *Session[C]) HandleEvent(ev input.Event) Outcome {
	if ev.Type == input.EventQuit {
		return Outcome{Quit: true}
	}
	if s.cursor == nil {
		return Outcome{}
	}
	var elapsed = ev.Elapsed
	if ev.Type != input.EventTick {
		elapsed = 0
	}
	if s.cursor.Advance(elapsed, ev) {
		return Outcome{Consumed: true}
	}
	s.endScene()
	return Outcome{Consumed: true, SceneFinished: true}
}

// Update runs whole flow for ev: the active scene first, then extra scene
// triggers, then gameplay. A command from gameplay is pushed to undo history
// and solving the puzzle starts outro. Signals are forwarded to the puzzle
// if it implements SignalHandler, otherwise they are kept for DrainQueue.
func (s *Session[C]) Update(ev input.Event) Outcome {
	out := s.update(ev)
	s.forwardSignals()
	return out
}

func (s *Session[C]) update(ev input.Event) Outcome {
	out := s.HandleEvent(ev)
	if out.Consumed || out.Quit {
		return out
	}
	if s.BeginCharacterSceneOnClick(ev) {
		return Outcome{Consumed: true}
	}
	if s.puzzle.Access().IsSolved() {
		return out
	}
	cmd, ok := s.puzzle.HandleInput(ev)
	if !ok {
		return out
	}
	s.PushUndo(cmd)
	out.Command = true
	if s.puzzle.IsSolved() {
		s.BeginOutroScene()
		out.Solved = true
	}
	return out
}

func (s *Session[C]) forwardSignals() {
	h, ok := s.puzzle.(SignalHandler)
	if !ok {
		return
	}
	for _, sig := range s.queue.Drain() {
		h.HandleSignal(sig)
	}
}

// BeginOutroScene marks the puzzle solved, clears history and starts outro.
// It panics if the puzzle is not solved, since callers must check
// the solved predicate first.
func (s *Session[C]) BeginOutroScene() {
	if !s.puzzle.IsSolved() {
		panic("puzzle: BeginOutroScene is called before the puzzle is solved")
	}
	a := s.puzzle.Access()
	if a.Solve() {
		s.puzzle.SetAccess(a)
	}
	s.ClearUndoRedo()
	s.startScene(s.outro, PlayingOutro)
}

// AddCharacterScene registers script played when actor h on the stage is clicked.
func (s *Session[C]) AddCharacterScene(h scene.Handle, script scene.Action) error {
	sc, err := scene.Compile(script, s.catalog)
	if err != nil {
		return fmt.Errorf("puzzle: character scene %d: %w", h, err)
	}
	s.triggers = append(s.triggers, trigger{actor: h, byActor: true, compiled: sc})
	return nil
}

// AddAreaScene registers script played when area in the viewport is clicked.
func (s *Session[C]) AddAreaScene(area image.Rectangle, script scene.Action) error {
	area = area.Intersect(s.viewport)
	if area.Empty() {
		return fmt.Errorf("puzzle: area %v is out of viewport %v", area, s.viewport)
	}
	sc, err := scene.Compile(script, s.catalog)
	if err != nil {
		return fmt.Errorf("puzzle: area scene %v: %w", area, err)
	}
	s.triggers = append(s.triggers, trigger{area: area, compiled: sc})
	return nil
}

// BeginCharacterSceneOnClick starts the extra scene registered for the
// clicked location, and returns true if started. It does nothing while
// another scene is active, or for non pointer-down event.
func (s *Session[C]) BeginCharacterSceneOnClick(ev input.Event) bool {
	if ev.Type != input.EventPointerDown || s.cursor != nil {
		return false
	}
	if !ev.Pos.In(s.viewport) {
		return false
	}
	hit, hasHit := s.stage.ActorAt(ev.Pos)
	for _, t := range s.triggers {
		if (t.byActor && hasHit && t.actor == hit) || (!t.byActor && ev.Pos.In(t.area)) {
			s.startScene(t.compiled, PlayingExtra)
			return true
		}
	}
	return false
}

// SkipScene abandons the active scene. Its open dialogues are closed,
// other effects already applied to the stage are kept.
// It returns false if no scene is active.
func (s *Session[C]) SkipScene() bool {
	if s.cursor == nil {
		return false
	}
	log.Debugf("puzzle: scene skipped, mode %v", s.mode)
	s.cursor.Abandon()
	s.cursor = nil
	s.mode = Idle
	return true
}

// Solve force-sets the puzzle solved and starts outro regardless of progress.
func (s *Session[C]) Solve() {
	s.SkipScene()
	s.puzzle.Solve()
	s.BeginOutroScene()
}

// Reset sets the puzzle initial. Access goes back to Visited and
// the stage, history and pending signals are discarded.
func (s *Session[C]) Reset() {
	s.SkipScene()
	s.stage = scene.NewStage()
	s.puzzle.Reset()
	a := s.puzzle.Access()
	a.Reset()
	s.puzzle.SetAccess(a)
	s.ClearUndoRedo()
	s.queue.Clear()
}

// locked reports whether gameplay mutation is not allowed now.
func (s *Session[C]) locked() bool {
	return s.cursor != nil || s.puzzle.Access().IsSolved()
}

// Undo reverts the latest command. It does nothing while a scene
// is active or after solved.
func (s *Session[C]) Undo() bool {
	if s.locked() {
		return false
	}
	cmd, ok := s.PopUndo()
	if ok {
		s.puzzle.Unapply(cmd)
	}
	return ok
}

// Redo re-applies the latest undone command. It does nothing while
// a scene is active or after solved.
func (s *Session[C]) Redo() bool {
	if s.locked() {
		return false
	}
	cmd, ok := s.PopRedo()
	if ok {
		s.puzzle.Apply(cmd)
	}
	return ok
}

// PushUndo records cmd and clears redo history.
// It does nothing while a scene is active or after solved.
func (s *Session[C]) PushUndo(cmd C) {
	if s.locked() {
		log.Debugf("puzzle: history is locked, mode %v, access %v", s.mode, s.puzzle.Access())
		return
	}
	s.history.Push(cmd)
}

// PopUndo moves the latest command to redo history and returns it.
// It returns false with empty history, while a scene is active
// or after solved.
func (s *Session[C]) PopUndo() (C, bool) {
	if s.locked() {
		var zero C
		return zero, false
	}
	return s.history.PopUndo()
}

// PopRedo moves the latest undone command back to undo history and returns it.
// It returns false as PopUndo does.
func (s *Session[C]) PopRedo() (C, bool) {
	if s.locked() {
		var zero C
		return zero, false
	}
	return s.history.PopRedo()
}

// ClearUndoRedo empties both histories. It is never locked.
func (s *Session[C]) ClearUndoRedo() { s.history.Clear() }

func (s *Session[C]) CanUndo() bool { return !s.locked() && s.history.CanUndo() }
func (s *Session[C]) CanRedo() bool { return !s.locked() && s.history.CanRedo() }

// DrainQueue returns signals emitted since last drain, in emission order.
func (s *Session[C]) DrainQueue() []signal.Signal { return s.queue.Drain() }

// Draw draws the puzzle with the stage shared by all scenes of the session.
func (s *Session[C]) Draw(dst draw.Image) {
	s.puzzle.Draw(dst, s.stage)
}

func (s *Session[C]) Mode() Mode                { return s.mode }
func (s *Session[C]) Access() access.State      { return s.puzzle.Access() }
func (s *Session[C]) Puzzle() Puzzle[C]         { return s.puzzle }
func (s *Session[C]) Stage() *scene.Stage       { return s.stage }
func (s *Session[C]) Viewport() image.Rectangle { return s.viewport }

// SceneActive returns whether a scene owns input now.
func (s *Session[C]) SceneActive() bool { return s.cursor != nil }
