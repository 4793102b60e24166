package scene

import (
	"image"
	"sort"
)

// Actor is a placed sprite on the stage.
type Actor struct {
	Handle   Handle
	Sprite   Sprite
	Frame    int
	Pos      Position // top-left corner of the sprite.
	Mirrored bool     // mirrored horizontally.
	Visible  bool
}

// Bounds returns the area covered by the actor's sprite.
func (a Actor) Bounds() image.Rectangle {
	min := image.Pt(int(a.Pos[0]), int(a.Pos[1]))
	return image.Rectangle{Min: min, Max: min.Add(a.Sprite.Size)}
}

// Dialogue is an open dialogue box.
type Dialogue struct {
	Actor  Handle
	Style  TalkStyle
	Anchor TalkAnchor
	Text   string
	// Text wrapped by the configured dialogue width.
	Lines []string
	// columns of the widest line, for sizing the box.
	Columns int
	// point on the actor where the box is attached to.
	At Position
}

// Stage is the observable result of scene playback, which is
// drawn by the renderer once per frame.
type Stage struct {
	actors map[Handle]*Actor
	order  []Handle // draw order, back to front.

	background    Background
	hasBackground bool
	dark          bool

	dialogues    []openDialogue // back to front.
	nextDialogue int
	sounds       []Sound
}

type openDialogue struct {
	id int
	Dialogue
}

// NewStage returns an empty stage.
func NewStage() *Stage {
	return &Stage{actors: make(map[Handle]*Actor)}
}

// Actor returns the actor placed as h.
func (s *Stage) Actor(h Handle) (Actor, bool) {
	a, ok := s.actors[h]
	if !ok {
		return Actor{}, false
	}
	return *a, true
}

// Actors returns placed actors in draw order, back to front.
// Scenery is always behind characters.
func (s *Stage) Actors() []Actor {
	out := make([]Actor, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, *s.actors[h])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Handle.IsScenery() && !out[j].Handle.IsScenery()
	})
	return out
}

// ActorAt returns the front-most visible character whose bounds contains p.
// Scenery is never returned.
func (s *Stage) ActorAt(p image.Point) (Handle, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		a := s.actors[s.order[i]]
		if a.Handle.IsScenery() || !a.Visible {
			continue
		}
		if p.In(a.Bounds()) {
			return a.Handle, true
		}
	}
	return 0, false
}

// Background returns current background if set.
func (s *Stage) Background() (Background, bool) {
	return s.background, s.hasBackground
}

// IsDark returns whether whole scene is dimmed.
func (s *Stage) IsDark() bool { return s.dark }

// Dialogue returns the front-most open dialogue if any.
// It is the one closed by the next dismissal.
func (s *Stage) Dialogue() (Dialogue, bool) {
	if len(s.dialogues) == 0 {
		return Dialogue{}, false
	}
	return s.dialogues[len(s.dialogues)-1].Dialogue, true
}

// Dialogues returns all of open dialogues, back to front.
// More than one is open when Talks run in parallel.
func (s *Stage) Dialogues() []Dialogue {
	out := make([]Dialogue, 0, len(s.dialogues))
	for _, d := range s.dialogues {
		out = append(out, d.Dialogue)
	}
	return out
}

// TakeSounds returns sound cues emitted since last call, in emission order.
func (s *Stage) TakeSounds() []Sound {
	out := s.sounds
	s.sounds = nil
	return out
}

func (s *Stage) place(h Handle, sp Sprite, frame int, pos Position) {
	if a, ok := s.actors[h]; ok {
		a.Sprite = sp
		a.Frame = frame
		a.Pos = pos
		return
	}
	s.actors[h] = &Actor{Handle: h, Sprite: sp, Frame: frame, Pos: pos, Visible: true}
	s.order = append(s.order, h)
}

func (s *Stage) remove(h Handle) {
	if _, ok := s.actors[h]; !ok {
		return
	}
	delete(s.actors, h)
	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Stage) bringToFront(h Handle) {
	for i, oh := range s.order {
		if oh == h {
			s.order = append(append(s.order[:i], s.order[i+1:]...), h)
			return
		}
	}
}

// openDialogue puts d in front of other dialogues and returns its id.
func (s *Stage) openDialogue(d Dialogue) int {
	if a, ok := s.actors[d.Actor]; ok {
		d.At = anchorPoint(a, d.Anchor)
	}
	s.nextDialogue++
	s.dialogues = append(s.dialogues, openDialogue{id: s.nextDialogue, Dialogue: d})
	return s.nextDialogue
}

// dialogueCovered returns whether another dialogue is opened in front of id.
// A closed id is never covered.
func (s *Stage) dialogueCovered(id int) bool {
	for i, d := range s.dialogues {
		if d.id == id {
			return i != len(s.dialogues)-1
		}
	}
	return false
}

func (s *Stage) closeDialogue(id int) {
	for i, d := range s.dialogues {
		if d.id == id {
			s.dialogues = append(s.dialogues[:i], s.dialogues[i+1:]...)
			return
		}
	}
}

func (s *Stage) closeAllDialogues() { s.dialogues = nil }

func anchorPoint(a *Actor, anchor TalkAnchor) Position {
	w, h := float64(a.Sprite.Size.X), float64(a.Sprite.Size.Y)
	x, y := a.Pos[0], a.Pos[1]
	switch anchor {
	case AnchorBelow:
		return Position{x + w/2, y + h}
	case AnchorLeft:
		return Position{x, y + h/2}
	case AnchorRight:
		return Position{x + w, y + h/2}
	default:
		return Position{x + w/2, y}
	}
}
