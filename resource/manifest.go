// Package resource provides scene.Catalog backed by a TOML manifest.
package resource

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/mzki/puzzlescene/filesystem"
	"github.com/mzki/puzzlescene/infra/serialize/toml"
	"github.com/mzki/puzzlescene/scene"
)

// SpriteEntry is a sprite sheet declared in the manifest.
type SpriteEntry struct {
	File   string `toml:"file"`
	Frames int    `toml:"frames"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type SoundEntry struct {
	File string `toml:"file"`
}

type BackgroundEntry struct {
	File string `toml:"file"`
}

// Manifest lists resources available to scene scripts.
//
//	[sprites.hero]
//	file = "img/hero.png"
//	frames = 4
//	width = 32
//	height = 48
//
//	[sounds.beep]
//	file = "se/beep.wav"
//
//	[backgrounds.lab]
//	file = "bg/lab.png"
//
// Manifest implements scene.Catalog.
type Manifest struct {
	Sprites     map[string]SpriteEntry     `toml:"sprites"`
	Sounds      map[string]SoundEntry      `toml:"sounds"`
	Backgrounds map[string]BackgroundEntry `toml:"backgrounds"`
}

var ErrInvalidManifest = errors.New("resource: invalid manifest")

// LoadManifest reads and validates manifest file from ldr.
func LoadManifest(ldr filesystem.Loader, file string) (*Manifest, error) {
	m := &Manifest{}
	if err := toml.DecodeFileFrom(ldr, file, m); err != nil {
		return nil, fmt.Errorf("resource: load manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate reports all of invalid entries at once.
func (m *Manifest) Validate() error {
	var problems []string
	for _, name := range sortedKeys(m.Sprites) {
		e := m.Sprites[name]
		if e.Frames < 0 {
			problems = append(problems, fmt.Sprintf("sprite %s: negative frames %d", name, e.Frames))
		}
		if e.Width < 0 || e.Height < 0 {
			problems = append(problems, fmt.Sprintf("sprite %s: negative size %dx%d", name, e.Width, e.Height))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidManifest, problems)
}

func (m *Manifest) Sprite(name string) (scene.Sprite, error) {
	e, ok := m.Sprites[name]
	if !ok {
		return scene.Sprite{}, fmt.Errorf("%w: sprite %q", scene.ErrResourceNotFound, name)
	}
	return scene.Sprite{Name: name, Frames: e.Frames, Size: image.Pt(e.Width, e.Height)}, nil
}

func (m *Manifest) Sound(name string) (scene.Sound, error) {
	if _, ok := m.Sounds[name]; !ok {
		return scene.Sound{}, fmt.Errorf("%w: sound %q", scene.ErrResourceNotFound, name)
	}
	return scene.Sound{Name: name}, nil
}

func (m *Manifest) Background(name string) (scene.Background, error) {
	if _, ok := m.Backgrounds[name]; !ok {
		return scene.Background{}, fmt.Errorf("%w: background %q", scene.ErrResourceNotFound, name)
	}
	return scene.Background{Name: name}, nil
}

// SpriteNames returns declared sprite names in sorted order.
func (m *Manifest) SpriteNames() []string { return sortedKeys(m.Sprites) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
