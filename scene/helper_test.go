package scene_test

import (
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/mzki/puzzlescene/scene"
	"github.com/mzki/puzzlescene/signal"
	"github.com/mzki/puzzlescene/uiadapter/event/input"
)

// testCatalog is an in-memory scene.Catalog.
type testCatalog struct {
	sprites     map[string]scene.Sprite
	sounds      map[string]bool
	backgrounds map[string]bool
}

func newTestCatalog() *testCatalog {
	return &testCatalog{
		sprites: map[string]scene.Sprite{
			"hero":  {Name: "hero", Frames: 4, Size: image.Pt(32, 48)},
			"cat":   {Name: "cat", Frames: 2, Size: image.Pt(16, 16)},
			"tree":  {Name: "tree", Frames: 1, Size: image.Pt(64, 64)},
			"blank": {Name: "blank"},
		},
		sounds:      map[string]bool{"beep": true, "chime": true},
		backgrounds: map[string]bool{"lab": true, "garden": true},
	}
}

func (c *testCatalog) Sprite(name string) (scene.Sprite, error) {
	if sp, ok := c.sprites[name]; ok {
		return sp, nil
	}
	return scene.Sprite{}, fmt.Errorf("%w: sprite %s", scene.ErrResourceNotFound, name)
}

func (c *testCatalog) Sound(name string) (scene.Sound, error) {
	if c.sounds[name] {
		return scene.Sound{Name: name}, nil
	}
	return scene.Sound{}, fmt.Errorf("%w: sound %s", scene.ErrResourceNotFound, name)
}

func (c *testCatalog) Background(name string) (scene.Background, error) {
	if c.backgrounds[name] {
		return scene.Background{Name: name}, nil
	}
	return scene.Background{}, fmt.Errorf("%w: background %s", scene.ErrResourceNotFound, name)
}

func mustCompile(t *testing.T, script scene.Action) *scene.Scene {
	t.Helper()
	s, err := scene.Compile(script, newTestCatalog())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return s
}

func startScene(t *testing.T, script scene.Action) (*scene.Cursor, *signal.Queue) {
	t.Helper()
	q := signal.NewQueue()
	return mustCompile(t, script).Start(q, scene.Config{}), q
}

var none = input.Event{}

// playTicks advances c by fixed ticks until finished and returns
// number of ticks used. It fails after limit ticks.
func playTicks(t *testing.T, c *scene.Cursor, delta time.Duration, limit int) int {
	t.Helper()
	for n := 1; n <= limit; n++ {
		if !c.Advance(delta, none) {
			return n
		}
	}
	t.Fatalf("scene does not finish within %d ticks", limit)
	return -1
}
