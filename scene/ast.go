package scene

import (
	"time"

	"golang.org/x/image/math/f64"
)

// Handle identifies a placed actor within a scene.
// Negative handles are scenery, which is positioned the same way
// as characters but always drawn behind them and never clicked.
type Handle int

// IsScenery returns whether h is reserved for scenery.
func (h Handle) IsScenery() bool { return h < 0 }

// Position on the stage in pixels, x to right and y to down.
type Position = f64.Vec2

// Pos is shorthand for Position{x, y}.
func Pos(x, y float64) Position { return Position{x, y} }

// Action is a node of the scene script. It is one of
// the types declared in this file.
type Action interface {
	isAction()
}

// Sequence runs Actions one by one in order.
type Sequence struct {
	Actions []Action
}

// Parallel runs all of Actions together and finishes when every one is finished.
type Parallel struct {
	Actions []Action
}

// Repeat runs Action repeatedly between Min and Max times.
// Only Min == Max is a fixed count. When Min < Max, Min times are run.
type Repeat struct {
	Min, Max int
	Action   Action
}

// Wait does nothing during Duration.
type Wait struct {
	Duration time.Duration
}

// Place puts Sprite at Pos as Actor. Placing existing Actor again
// replaces its sprite.
type Place struct {
	Actor  Handle
	Sprite string
	Frame  int
	Pos    Position
}

// Remove removes Actor from the stage.
type Remove struct {
	Actor Handle
}

// SetPosition moves Actor to Pos immediately.
type SetPosition struct {
	Actor Handle
	Pos   Position
}

// SetFrame changes displayed frame of Actor's sprite.
type SetFrame struct {
	Actor Handle
	Frame int
}

// Slide moves Actor linearly to To during Duration.
type Slide struct {
	Actor Handle
	To    Position
	// mirror sprite horizontally while and after sliding.
	Flip bool
	// bring actor to the front of draw order.
	Front    bool
	Duration time.Duration
}

// Jump moves Actor to To along a parabolic arc during Duration.
type Jump struct {
	Actor    Handle
	To       Position
	Duration time.Duration
}

// SetVisible shows or hides Actor.
type SetVisible struct {
	Actor   Handle
	Visible bool
}

// SetLight dims (Dark) or restores (!Dark) the whole scene.
type SetLight struct {
	Dark bool
}

// Talk opens a dialogue box near Actor and waits for user dismissal.
type Talk struct {
	Actor  Handle
	Style  TalkStyle
	Anchor TalkAnchor
	Text   string
}

// PlaySound emits a sound cue.
type PlaySound struct {
	Sound string
}

// SetBackground changes the background image.
type SetBackground struct {
	Name string
}

// Signal pushes (Kind, Value) to the signal queue of the puzzle.
type Signal struct {
	Kind, Value int
}

func (Sequence) isAction()      {}
func (Parallel) isAction()      {}
func (Repeat) isAction()        {}
func (Wait) isAction()          {}
func (Place) isAction()         {}
func (Remove) isAction()        {}
func (SetPosition) isAction()   {}
func (SetFrame) isAction()      {}
func (Slide) isAction()         {}
func (Jump) isAction()          {}
func (SetVisible) isAction()    {}
func (SetLight) isAction()      {}
func (Talk) isAction()          {}
func (PlaySound) isAction()     {}
func (SetBackground) isAction() {}
func (Signal) isAction()        {}

// Seq is shorthand for Sequence{actions}.
func Seq(actions ...Action) Action { return Sequence{Actions: actions} }

// Par is shorthand for Parallel{actions}.
func Par(actions ...Action) Action { return Parallel{Actions: actions} }

// Loop is shorthand for Repeat with fixed count n.
func Loop(n int, a Action) Action { return Repeat{Min: n, Max: n, Action: a} }

// Light and Dark are shorthand for SetLight.
func Light() Action { return SetLight{Dark: false} }
func Dark() Action  { return SetLight{Dark: true} }

// TalkStyle is visual style of dialogue box.
type TalkStyle int8

const (
	TalkNormal  TalkStyle = iota // speech balloon
	TalkThought                  // thought bubble
	TalkSystem                   // narration or system message.
)

var talkStyleNames = [...]string{
	TalkNormal:  "normal",
	TalkThought: "thought",
	TalkSystem:  "system",
}

func (s TalkStyle) String() string {
	if s >= 0 && int(s) < len(talkStyleNames) {
		return talkStyleNames[s]
	}
	return "unknown"
}

// TalkAnchor is the side of actor where dialogue box is placed.
type TalkAnchor int8

const (
	AnchorAbove TalkAnchor = iota
	AnchorBelow
	AnchorLeft
	AnchorRight
)

var talkAnchorNames = [...]string{
	AnchorAbove: "above",
	AnchorBelow: "below",
	AnchorLeft:  "left",
	AnchorRight: "right",
}

func (a TalkAnchor) String() string {
	if a >= 0 && int(a) < len(talkAnchorNames) {
		return talkAnchorNames[a]
	}
	return "unknown"
}

// ParseTalkStyle returns TalkStyle named by name.
func ParseTalkStyle(name string) (TalkStyle, bool) {
	for i, n := range talkStyleNames {
		if n == name {
			return TalkStyle(i), true
		}
	}
	return TalkNormal, false
}

// ParseTalkAnchor returns TalkAnchor named by name.
func ParseTalkAnchor(name string) (TalkAnchor, bool) {
	for i, n := range talkAnchorNames {
		if n == name {
			return TalkAnchor(i), true
		}
	}
	return AnchorAbove, false
}
