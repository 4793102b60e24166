package scene

import (
	"sort"

	"github.com/mzki/puzzlescene/signal"
)

// Scene is a compiled scene script. It is immutable and
// can be started any number of times, even concurrently.
type Scene struct {
	nodes []node

	sprites     map[string]Sprite
	sounds      map[string]Sound
	backgrounds map[string]Background
}

// Start allocates a fresh Cursor on an empty stage and evaluates the scene
// until it needs time or user input. Signal actions push to queue,
// which may be nil to discard signals.
func (s *Scene) Start(queue *signal.Queue, config Config) *Cursor {
	return s.StartOn(NewStage(), queue, config)
}

// StartOn is like Start but plays the scene on the given stage, so that
// actors placed by former scenes are kept. Dialogues left open by
// former scenes are closed first.
func (s *Scene) StartOn(stage *Stage, queue *signal.Queue, config Config) *Cursor {
	stage.closeAllDialogues()
	c := &Cursor{
		scene:  s,
		states: make([]nodeState, len(s.nodes)),
		stage:  stage,
		queue:  queue,
		config: config,
	}
	c.Advance(0, noEvent)
	return c
}

// Sprites returns all of sprites referenced by the scene, sorted by name.
// It is useful for preloading images before playback.
func (s *Scene) Sprites() []Sprite {
	names := make([]string, 0, len(s.sprites))
	for name := range s.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Sprite, 0, len(names))
	for _, name := range names {
		out = append(out, s.sprites[name])
	}
	return out
}

// Sounds returns all of sounds referenced by the scene, sorted by name.
func (s *Scene) Sounds() []Sound {
	out := make([]Sound, 0, len(s.sounds))
	for _, snd := range s.sounds {
		out = append(out, snd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Backgrounds returns all of backgrounds referenced by the scene, sorted by name.
func (s *Scene) Backgrounds() []Background {
	out := make([]Background, 0, len(s.backgrounds))
	for _, bg := range s.backgrounds {
		out = append(out, bg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
