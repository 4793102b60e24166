package puzzle_test

import (
	"errors"
	"fmt"
	"image"
	"reflect"
	"testing"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"

	"github.com/mzki/puzzlescene/access"
	"github.com/mzki/puzzlescene/puzzle"
	"github.com/mzki/puzzlescene/scene"
	"github.com/mzki/puzzlescene/signal"
	"github.com/mzki/puzzlescene/uiadapter/event/input"
)

// toggle flips one lamp. Applying it twice restores the state.
type toggle int

// lamps is a puzzle solved when every lamp is on.
// Clicking at (10*i, 0) toggles i-th lamp.
type lamps struct {
	on      [4]bool
	access  access.State
	draws   int
	signals []signal.Signal
}

func (l *lamps) Access() access.State     { return l.access }
func (l *lamps) SetAccess(a access.State) { l.access = a }

func (l *lamps) IsSolved() bool {
	for _, on := range l.on {
		if !on {
			return false
		}
	}
	return true
}

func (l *lamps) HandleInput(ev input.Event) (toggle, bool) {
	if ev.Type != input.EventPointerDown || ev.Pos.Y >= 10 {
		return 0, false
	}
	i := ev.Pos.X / 10
	if i < 0 || i >= len(l.on) {
		return 0, false
	}
	l.Apply(toggle(i))
	return toggle(i), true
}

func (l *lamps) Apply(cmd toggle)   { l.on[cmd] = !l.on[cmd] }
func (l *lamps) Unapply(cmd toggle) { l.on[cmd] = !l.on[cmd] }
func (l *lamps) Solve()             { l.on = [4]bool{true, true, true, true} }
func (l *lamps) Reset()             { l.on = [4]bool{} }

func (l *lamps) Draw(dst draw.Image, stage *scene.Stage) { l.draws++ }

// signalLamps receives signals from scenes.
type signalLamps struct {
	lamps
}

func (l *signalLamps) HandleSignal(s signal.Signal) { l.signals = append(l.signals, s) }

type catalog struct{}

func (catalog) Sprite(name string) (scene.Sprite, error) {
	if name == "hero" {
		return scene.Sprite{Name: name, Frames: 1, Size: image.Pt(20, 20)}, nil
	}
	return scene.Sprite{}, fmt.Errorf("%w: %s", scene.ErrResourceNotFound, name)
}

func (catalog) Sound(name string) (scene.Sound, error) { return scene.Sound{Name: name}, nil }

func (catalog) Background(name string) (scene.Background, error) {
	return scene.Background{Name: name}, nil
}

var viewport = image.Rect(0, 0, 320, 240)

func click(i int) input.Event { return input.NewPointerDown(10*i+1, 1) }

var (
	talkIntro = scene.Seq(
		scene.Place{Actor: 1, Sprite: "hero", Pos: scene.Pos(100, 100)},
		scene.Talk{Actor: 1, Text: "Turn on every lamp."},
	)
	outro = scene.Seq(
		scene.Signal{Kind: 1, Value: 0},
		scene.Wait{Duration: time.Second},
		scene.Signal{Kind: 1, Value: 1},
	)
)

func newSession(t *testing.T, p puzzle.Puzzle[toggle], intro scene.Action) *puzzle.Session[toggle] {
	t.Helper()
	s, err := puzzle.New[toggle](catalog{}, viewport, p, intro, outro, puzzle.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestIntroTalkScenario(t *testing.T) {
	p := &lamps{}
	s := newSession(t, p, talkIntro)

	if s.Mode() != puzzle.PlayingIntro {
		t.Fatalf("first entry must play intro, got %v", s.Mode())
	}
	if p.Access() != access.Visited {
		t.Errorf("access must be visited, got %v", p.Access())
	}

	out := s.HandleEvent(input.NewKeyPress(key.CodeA, 'a'))
	if !out.Consumed || out.SceneFinished {
		t.Errorf("non dismissal event must be consumed by scene, got %+v", out)
	}
	if s.Mode() != puzzle.PlayingIntro {
		t.Errorf("intro must be still active, got %v", s.Mode())
	}

	out = s.HandleEvent(input.NewPointerDown(5, 5))
	if !out.Consumed || !out.SceneFinished {
		t.Errorf("dismissal must finish intro, got %+v", out)
	}
	if s.Mode() != puzzle.Idle || s.SceneActive() {
		t.Errorf("control must return to gameplay, got %v", s.Mode())
	}
	if out := s.HandleEvent(click(0)); out.Consumed {
		t.Errorf("event must be left for gameplay after intro")
	}
}

func TestVisitedPuzzleStartsIdle(t *testing.T) {
	p := &lamps{access: access.Visited}
	s := newSession(t, p, talkIntro)
	if s.Mode() != puzzle.Idle {
		t.Errorf("visited puzzle must start idle, got %v", s.Mode())
	}
	s.Visit()
	if s.Mode() != puzzle.Idle {
		t.Errorf("Visit on visited puzzle must not start intro")
	}
}

func TestSceneLocksGameplay(t *testing.T) {
	p := &lamps{}
	s := newSession(t, p, talkIntro)

	// the click dismisses intro and must not toggle a lamp.
	out := s.Update(click(0))
	if !out.SceneFinished || out.Command {
		t.Errorf("unexpected outcome %+v", out)
	}
	if p.on[0] {
		t.Errorf("event consumed by scene must not reach gameplay")
	}
	if out := s.Update(click(0)); !out.Command || !p.on[0] {
		t.Errorf("gameplay must receive event after intro, got %+v", out)
	}
}

func TestUndoRedo(t *testing.T) {
	p := &lamps{access: access.Visited}
	s := newSession(t, p, nil)

	s.Update(click(0))
	s.Update(click(1))
	s.Update(input.NewPointerDown(1, 100)) // no command
	if !s.CanUndo() || s.CanRedo() {
		t.Fatal("undo only must be available")
	}

	if !s.Undo() || p.on[1] {
		t.Errorf("undo must revert lamp 1")
	}
	if !s.Undo() || p.on[0] {
		t.Errorf("undo must revert lamp 0")
	}
	if s.Undo() {
		t.Errorf("undo with empty history must be no-op")
	}
	if !s.Redo() || !p.on[0] {
		t.Errorf("redo must re-apply lamp 0")
	}

	// new command clears redo.
	s.Update(click(2))
	if s.CanRedo() {
		t.Errorf("new command must clear redo")
	}
}

func TestHistoryPlumbing(t *testing.T) {
	s := newSession(t, &lamps{access: access.Visited}, nil)
	for i := 0; i < 3; i++ {
		s.PushUndo(toggle(i))
	}
	for i := 2; i >= 0; i-- {
		if cmd, ok := s.PopUndo(); !ok || cmd != toggle(i) {
			t.Errorf("PopUndo: got %v %v, expect %v", cmd, ok, i)
		}
	}
	for i := 0; i < 3; i++ {
		if cmd, ok := s.PopRedo(); !ok || cmd != toggle(i) {
			t.Errorf("PopRedo: got %v %v, expect %v", cmd, ok, i)
		}
	}
	s.ClearUndoRedo()
	if _, ok := s.PopUndo(); ok {
		t.Errorf("PopUndo after clear must return nothing")
	}
	if _, ok := s.PopRedo(); ok {
		t.Errorf("PopRedo after clear must return nothing")
	}
}

func TestHistoryLockedByScene(t *testing.T) {
	p := &lamps{access: access.Visited}
	s := newSession(t, p, nil)
	s.PushUndo(toggle(0))
	s.PushUndo(toggle(1))
	s.PopUndo()

	p.Solve()
	s.BeginOutroScene()
	if s.Mode() != puzzle.PlayingOutro {
		t.Fatalf("outro must be playing, got %v", s.Mode())
	}
	for _, name := range []string{"outro", "solved"} {
		s.PushUndo(toggle(2))
		if _, ok := s.PopUndo(); ok || s.CanUndo() {
			t.Errorf("%s: PopUndo must be locked", name)
		}
		if _, ok := s.PopRedo(); ok || s.CanRedo() {
			t.Errorf("%s: PopRedo must be locked", name)
		}
		s.HandleEvent(input.NewTick(time.Second)) // finishes outro.
	}
	if s.Mode() != puzzle.Idle {
		t.Errorf("outro must be finished, got %v", s.Mode())
	}

	// reset unlocks history, which is cleared.
	s.Reset()
	if _, ok := s.PopUndo(); ok {
		t.Errorf("history must be empty after reset")
	}
	s.PushUndo(toggle(3))
	if cmd, ok := s.PopUndo(); !ok || cmd != toggle(3) {
		t.Errorf("history must be unlocked after reset, got %v %v", cmd, ok)
	}
}

func TestSolveWithoutOutroClosesDialogue(t *testing.T) {
	p := &lamps{}
	s, err := puzzle.New[toggle](catalog{}, viewport, p, talkIntro, nil, puzzle.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Stage().Dialogue(); !ok {
		t.Fatal("intro dialogue must be open")
	}

	s.Solve()
	if s.Mode() != puzzle.Idle || p.Access() != access.Solved {
		t.Errorf("got mode %v, access %v", s.Mode(), p.Access())
	}
	if _, ok := s.Stage().Dialogue(); ok {
		t.Errorf("dialogue of skipped intro must not be left open")
	}
	if _, ok := s.Stage().Actor(1); !ok {
		t.Errorf("actor placed by intro must be kept")
	}
}

func TestSolveByPlay(t *testing.T) {
	p := &signalLamps{lamps: lamps{access: access.Visited}}
	s := newSession(t, p, nil)

	var out puzzle.Outcome
	for i := 0; i < 4; i++ {
		out = s.Update(click(i))
	}
	if !out.Solved {
		t.Fatalf("last move must solve the puzzle, got %+v", out)
	}
	if p.Access() != access.Solved {
		t.Errorf("access must be solved, got %v", p.Access())
	}
	if s.Mode() != puzzle.PlayingOutro {
		t.Errorf("outro must be playing, got %v", s.Mode())
	}
	if s.CanUndo() || s.Undo() {
		t.Errorf("history must be cleared and locked after solved")
	}
	if expect := []signal.Signal{{Kind: 1, Value: 0}}; !reflect.DeepEqual(p.signals, expect) {
		t.Errorf("signals: got %v, expect %v", p.signals, expect)
	}

	s.Update(input.NewTick(time.Second))
	if s.Mode() != puzzle.Idle {
		t.Errorf("outro must be finished, got %v", s.Mode())
	}
	if expect := []signal.Signal{{Kind: 1, Value: 0}, {Kind: 1, Value: 1}}; !reflect.DeepEqual(p.signals, expect) {
		t.Errorf("signals: got %v, expect %v", p.signals, expect)
	}

	// solved state is immutable by gameplay.
	if out := s.Update(click(0)); out.Command || !p.on[0] {
		t.Errorf("solved puzzle must ignore gameplay, got %+v", out)
	}
}

func TestSolveShortcut(t *testing.T) {
	p := &lamps{}
	s := newSession(t, p, talkIntro)

	s.Solve()
	if p.Access() != access.Solved {
		t.Errorf("access must be solved, got %v", p.Access())
	}
	if _, ok := s.PopUndo(); ok {
		t.Errorf("history must be cleared by solve")
	}
	if s.Mode() != puzzle.PlayingOutro {
		t.Errorf("outro must be started, got %v", s.Mode())
	}
	// skipped intro keeps its actors but not its dialogue.
	if _, ok := s.Stage().Actor(1); !ok {
		t.Errorf("actor placed by intro must be kept")
	}
	if _, ok := s.Stage().Dialogue(); ok {
		t.Errorf("dialogue of skipped intro must be closed")
	}
}

func TestDrainQueue(t *testing.T) {
	p := &lamps{access: access.Visited}
	s := newSession(t, p, nil)
	s.Solve()

	s.HandleEvent(input.NewTick(2 * time.Second))
	expect := []signal.Signal{{Kind: 1, Value: 0}, {Kind: 1, Value: 1}}
	if got := s.DrainQueue(); !reflect.DeepEqual(got, expect) {
		t.Errorf("got %v, expect %v", got, expect)
	}
	if got := s.DrainQueue(); len(got) != 0 {
		t.Errorf("second drain must be empty, got %v", got)
	}
}

func TestBeginOutroBeforeSolvedPanics(t *testing.T) {
	s := newSession(t, &lamps{access: access.Visited}, nil)
	defer func() {
		if rec := recover(); rec == nil {
			t.Errorf("BeginOutroScene before solved must panic")
		}
	}()
	s.BeginOutroScene()
}

func TestReset(t *testing.T) {
	p := &lamps{access: access.Visited}
	s := newSession(t, p, nil)
	s.Solve()
	s.Reset()

	if p.Access() != access.Visited {
		t.Errorf("reset must return access to visited, got %v", p.Access())
	}
	if p.IsSolved() || s.SceneActive() || s.Mode() != puzzle.Idle {
		t.Errorf("reset must return to initial idle state")
	}
	if len(s.DrainQueue()) != 0 {
		t.Errorf("reset must discard signals")
	}
	if len(s.Stage().Actors()) != 0 {
		t.Errorf("reset must clear the stage")
	}
	if out := s.Update(click(3)); !out.Command {
		t.Errorf("gameplay must be active after reset")
	}
}

func TestCharacterScene(t *testing.T) {
	p := &lamps{}
	s := newSession(t, p, talkIntro)
	if err := s.AddCharacterScene(1, scene.Talk{Actor: 1, Text: "Hello again."}); err != nil {
		t.Fatal(err)
	}

	// triggers are ignored while intro is active.
	if s.BeginCharacterSceneOnClick(input.NewPointerDown(110, 110)) {
		t.Errorf("trigger must be ignored while another scene is active")
	}
	s.Update(input.NewPointerDown(0, 200)) // dismiss intro

	if s.BeginCharacterSceneOnClick(input.NewPointerDown(50, 50)) {
		t.Errorf("click out of the actor must not start scene")
	}
	if s.BeginCharacterSceneOnClick(input.NewPointerUp(110, 110)) {
		t.Errorf("pointer up must not start scene")
	}
	if out := s.Update(input.NewPointerDown(110, 110)); !out.Consumed {
		t.Errorf("click on actor must be consumed by trigger, got %+v", out)
	}
	if s.Mode() != puzzle.PlayingExtra {
		t.Fatalf("extra scene must be playing, got %v", s.Mode())
	}
	if d, ok := s.Stage().Dialogue(); !ok || d.Text != "Hello again." {
		t.Errorf("extra scene dialogue must be open, got %+v", d)
	}
	s.Update(input.NewKeyPress(key.CodeReturnEnter, -1))
	if s.Mode() != puzzle.Idle {
		t.Errorf("extra scene must finish, got %v", s.Mode())
	}
}

func TestAreaScene(t *testing.T) {
	s := newSession(t, &lamps{access: access.Visited}, nil)
	if err := s.AddAreaScene(image.Rect(200, 200, 400, 400), scene.Wait{Duration: time.Second}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddAreaScene(image.Rect(1000, 1000, 1010, 1010), scene.Wait{}); err == nil {
		t.Errorf("area out of viewport must be error")
	}
	if !s.BeginCharacterSceneOnClick(input.NewPointerDown(250, 230)) {
		t.Fatal("click in area must start scene")
	}
	if !s.SkipScene() || s.Mode() != puzzle.Idle {
		t.Errorf("SkipScene must abandon the scene")
	}
	if s.SkipScene() {
		t.Errorf("SkipScene without scene must return false")
	}
	if s.BeginCharacterSceneOnClick(input.NewPointerDown(330, 230)) {
		t.Errorf("click out of viewport must be ignored")
	}
}

func TestCompileErrorOnNew(t *testing.T) {
	_, err := puzzle.New[toggle](catalog{}, viewport, &lamps{}, scene.Place{Actor: 1, Sprite: "ghost"}, nil, puzzle.Config{})
	if !errors.Is(err, scene.ErrResourceNotFound) {
		t.Errorf("unresolved sprite must fail New, got %v", err)
	}

	s := newSession(t, &lamps{access: access.Visited}, nil)
	if err := s.AddCharacterScene(2, scene.Place{Actor: 2, Sprite: "ghost"}); !errors.Is(err, scene.ErrResourceNotFound) {
		t.Errorf("unresolved sprite must fail AddCharacterScene, got %v", err)
	}
}

func TestQuitAndDraw(t *testing.T) {
	p := &lamps{}
	s := newSession(t, p, talkIntro)
	if out := s.Update(input.NewQuit()); !out.Quit {
		t.Errorf("quit must be reported")
	}
	s.Draw(image.NewRGBA(viewport))
	if p.draws != 1 {
		t.Errorf("Draw must be delegated to puzzle")
	}
}
