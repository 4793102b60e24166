// package input defines the discrete input events delivered to puzzles once per tick.
package input

import (
	"image"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// Event has information of one user input or clock tick.
type Event struct {
	Type EventType

	// pointer location for EventPointer*.
	Pos image.Point
	// pointer button for EventPointer*.
	Button mouse.Button

	// key code and rune for EventKeyPress. Rune is -1 for non-character key.
	Code key.Code
	Rune rune

	// elapsed time since previous tick for EventTick.
	Elapsed time.Duration
}

type EventType int8

const (
	EventNone         EventType = iota // dummy event
	EventPointerDown                   // pointer pressed
	EventPointerUp                     // pointer released
	EventPointerMove                   // pointer moved, with or without button.
	EventKeyPress                      // key pressed
	EventTick                          // clock tick which carries elapsed time.
	EventQuit                          // terminate signal
)

var eventTypeNames = [...]string{
	EventNone:        "none",
	EventPointerDown: "pointer-down",
	EventPointerUp:   "pointer-up",
	EventPointerMove: "pointer-move",
	EventKeyPress:    "key-press",
	EventTick:        "tick",
	EventQuit:        "quit",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// make pointer down event at (x, y) by left button.
func NewPointerDown(x, y int) Event {
	return Event{Type: EventPointerDown, Pos: image.Pt(x, y), Button: mouse.ButtonLeft}
}

func NewPointerUp(x, y int) Event {
	return Event{Type: EventPointerUp, Pos: image.Pt(x, y), Button: mouse.ButtonLeft}
}

func NewPointerMove(x, y int) Event {
	return Event{Type: EventPointerMove, Pos: image.Pt(x, y)}
}

// make key press event. r should be -1 if code has no character.
func NewKeyPress(code key.Code, r rune) Event {
	return Event{Type: EventKeyPress, Code: code, Rune: r}
}

// make clock tick event carrying elapsed time.
func NewTick(elapsed time.Duration) Event {
	if elapsed < 0 {
		elapsed = 0
	}
	return Event{Type: EventTick, Elapsed: elapsed}
}

// make quit event.
func NewQuit() Event {
	return Event{Type: EventQuit}
}

// IsPointer returns whether e is any of pointer event.
func (e Event) IsPointer() bool {
	switch e.Type {
	case EventPointerDown, EventPointerUp, EventPointerMove:
		return true
	}
	return false
}

// confirm keys which dismiss dialogue.
var confirmKeys = map[key.Code]bool{
	key.CodeReturnEnter: true,
	key.CodeKeypadEnter: true,
	key.CodeSpacebar:    true,
	key.CodeEscape:      true,
	key.CodeZ:           true,
}

// IsDismissal returns whether e closes an open dialogue,
// that is a pointer press or a confirm key press.
func (e Event) IsDismissal() bool {
	switch e.Type {
	case EventPointerDown:
		return true
	case EventKeyPress:
		return confirmKeys[e.Code]
	}
	return false
}

// FromMouse converts mouse.Event from the platform driver into Event.
// Wheel and unknown directions are converted to EventNone.
func FromMouse(e mouse.Event) Event {
	ev := Event{
		Pos:    image.Pt(int(e.X), int(e.Y)),
		Button: e.Button,
	}
	if e.Button.IsWheel() {
		ev.Type = EventNone
		return ev
	}
	switch e.Direction {
	case mouse.DirPress:
		ev.Type = EventPointerDown
	case mouse.DirRelease:
		ev.Type = EventPointerUp
	case mouse.DirNone:
		ev.Type = EventPointerMove
	default:
		ev.Type = EventNone
	}
	return ev
}

// FromKey converts key.Event from the platform driver into Event.
// Only key press is meaningful, other directions are converted to EventNone.
func FromKey(e key.Event) Event {
	if e.Direction != key.DirPress {
		return Event{Type: EventNone}
	}
	return NewKeyPress(e.Code, e.Rune)
}
